package cpu

// addOverflows reports whether a + b overflows as a signed 32-bit sum.
func addOverflows(a, b, sum uint32) bool {
	return (a^sum)&(b^sum)&0x80000000 != 0
}

// subOverflows reports whether a - b overflows as a signed 32-bit difference.
func subOverflows(a, b, diff uint32) bool {
	return (a^b)&(a^diff)&0x80000000 != 0
}

// opADD traps on signed overflow and leaves rd untouched when it does.
func (c *CPU) opADD(in Instruction) error {
	a, b := c.Reg(in.Word.Rs()), c.Reg(in.Word.Rt())
	sum := a + b
	if addOverflows(a, b, sum) {
		return &Exception{Code: ExcOverflow}
	}
	c.SetReg(in.Word.Rd(), sum)
	return nil
}

func (c *CPU) opADDU(in Instruction) error {
	c.SetReg(in.Word.Rd(), c.Reg(in.Word.Rs())+c.Reg(in.Word.Rt()))
	return nil
}

func (c *CPU) opSUB(in Instruction) error {
	a, b := c.Reg(in.Word.Rs()), c.Reg(in.Word.Rt())
	diff := a - b
	if subOverflows(a, b, diff) {
		return &Exception{Code: ExcOverflow}
	}
	c.SetReg(in.Word.Rd(), diff)
	return nil
}

func (c *CPU) opSUBU(in Instruction) error {
	c.SetReg(in.Word.Rd(), c.Reg(in.Word.Rs())-c.Reg(in.Word.Rt()))
	return nil
}

func (c *CPU) opADDI(in Instruction) error {
	a, b := c.Reg(in.Word.Rs()), in.Word.ImmSE()
	sum := a + b
	if addOverflows(a, b, sum) {
		return &Exception{Code: ExcOverflow}
	}
	c.SetReg(in.Word.Rt(), sum)
	return nil
}

func (c *CPU) opADDIU(in Instruction) error {
	c.SetReg(in.Word.Rt(), c.Reg(in.Word.Rs())+in.Word.ImmSE())
	return nil
}

// opMULT multiplies as signed values into HI:LO.
func (c *CPU) opMULT(in Instruction) error {
	p := int64(int32(c.Reg(in.Word.Rs()))) * int64(int32(c.Reg(in.Word.Rt())))
	c.HI, c.LO = uint32(uint64(p)>>32), uint32(p)
	return nil
}

func (c *CPU) opMULTU(in Instruction) error {
	p := uint64(c.Reg(in.Word.Rs())) * uint64(c.Reg(in.Word.Rt()))
	c.HI, c.LO = uint32(p>>32), uint32(p)
	return nil
}

// opDIV divides as signed values. Division by zero and 80000000h / -1
// do not trap; they leave the values the hardware produces.
func (c *CPU) opDIV(in Instruction) error {
	n, d := int32(c.Reg(in.Word.Rs())), int32(c.Reg(in.Word.Rt()))
	switch {
	case d == 0:
		c.HI = uint32(n)
		if n >= 0 {
			c.LO = 0xFFFFFFFF
		} else {
			c.LO = 1
		}
	case uint32(n) == 0x80000000 && d == -1:
		c.HI, c.LO = 0, 0x80000000
	default:
		c.HI, c.LO = uint32(n%d), uint32(n/d)
	}
	return nil
}

func (c *CPU) opDIVU(in Instruction) error {
	n, d := c.Reg(in.Word.Rs()), c.Reg(in.Word.Rt())
	if d == 0 {
		c.HI, c.LO = n, 0xFFFFFFFF
		return nil
	}
	c.HI, c.LO = n%d, n/d
	return nil
}
