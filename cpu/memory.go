package cpu

func (c *CPU) opLB(in Instruction) error {
	addr, err := c.effective(in, 1, ExcAddressLoad)
	if err != nil {
		return err
	}
	c.SetReg(in.Word.Rt(), uint32(int32(int8(c.ReadU8(addr)))))
	return nil
}

func (c *CPU) opLBU(in Instruction) error {
	addr, err := c.effective(in, 1, ExcAddressLoad)
	if err != nil {
		return err
	}
	c.SetReg(in.Word.Rt(), uint32(c.ReadU8(addr)))
	return nil
}

func (c *CPU) opLH(in Instruction) error {
	addr, err := c.effective(in, 2, ExcAddressLoad)
	if err != nil {
		return err
	}
	c.SetReg(in.Word.Rt(), uint32(int32(int16(c.ReadU16(addr)))))
	return nil
}

func (c *CPU) opLHU(in Instruction) error {
	addr, err := c.effective(in, 2, ExcAddressLoad)
	if err != nil {
		return err
	}
	c.SetReg(in.Word.Rt(), uint32(c.ReadU16(addr)))
	return nil
}

func (c *CPU) opLW(in Instruction) error {
	addr, err := c.effective(in, 4, ExcAddressLoad)
	if err != nil {
		return err
	}
	c.SetReg(in.Word.Rt(), c.ReadU32(addr))
	return nil
}

// opLWL merges the high-order bytes of an unaligned word into rt.
func (c *CPU) opLWL(in Instruction) error {
	addr, err := c.effective(in, 1, ExcAddressLoad)
	if err != nil {
		return err
	}
	cur := c.Reg(in.Word.Rt())
	w := c.ReadU32(addr &^ 3)
	var v uint32
	switch addr & 3 {
	case 0:
		v = cur&0x00FFFFFF | w<<24
	case 1:
		v = cur&0x0000FFFF | w<<16
	case 2:
		v = cur&0x000000FF | w<<8
	case 3:
		v = w
	}
	c.SetReg(in.Word.Rt(), v)
	return nil
}

// opLWR merges the low-order bytes of an unaligned word into rt.
func (c *CPU) opLWR(in Instruction) error {
	addr, err := c.effective(in, 1, ExcAddressLoad)
	if err != nil {
		return err
	}
	cur := c.Reg(in.Word.Rt())
	w := c.ReadU32(addr &^ 3)
	var v uint32
	switch addr & 3 {
	case 0:
		v = w
	case 1:
		v = cur&0xFF000000 | w>>8
	case 2:
		v = cur&0xFFFF0000 | w>>16
	case 3:
		v = cur&0xFFFFFF00 | w>>24
	}
	c.SetReg(in.Word.Rt(), v)
	return nil
}

func (c *CPU) opSB(in Instruction) error {
	addr, err := c.effective(in, 1, ExcAddressStore)
	if err != nil {
		return err
	}
	c.WriteU8(addr, uint8(c.Reg(in.Word.Rt())))
	return nil
}

func (c *CPU) opSH(in Instruction) error {
	addr, err := c.effective(in, 2, ExcAddressStore)
	if err != nil {
		return err
	}
	c.WriteU16(addr, uint16(c.Reg(in.Word.Rt())))
	return nil
}

func (c *CPU) opSW(in Instruction) error {
	addr, err := c.effective(in, 4, ExcAddressStore)
	if err != nil {
		return err
	}
	c.WriteU32(addr, c.Reg(in.Word.Rt()))
	return nil
}

// opSWL stores the high-order bytes of rt into an unaligned word.
func (c *CPU) opSWL(in Instruction) error {
	addr, err := c.effective(in, 1, ExcAddressStore)
	if err != nil {
		return err
	}
	v := c.Reg(in.Word.Rt())
	aligned := addr &^ 3
	mem := c.ReadU32(aligned)
	switch addr & 3 {
	case 0:
		mem = mem&0xFFFFFF00 | v>>24
	case 1:
		mem = mem&0xFFFF0000 | v>>16
	case 2:
		mem = mem&0xFF000000 | v>>8
	case 3:
		mem = v
	}
	c.WriteU32(aligned, mem)
	return nil
}

// opSWR stores the low-order bytes of rt into an unaligned word.
func (c *CPU) opSWR(in Instruction) error {
	addr, err := c.effective(in, 1, ExcAddressStore)
	if err != nil {
		return err
	}
	v := c.Reg(in.Word.Rt())
	aligned := addr &^ 3
	mem := c.ReadU32(aligned)
	switch addr & 3 {
	case 0:
		mem = v
	case 1:
		mem = mem&0x000000FF | v<<8
	case 2:
		mem = mem&0x0000FFFF | v<<16
	case 3:
		mem = mem&0x00FFFFFF | v<<24
	}
	c.WriteU32(aligned, mem)
	return nil
}
