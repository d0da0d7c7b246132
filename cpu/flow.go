package cpu

// branch schedules a transfer after the delay slot. When taken, the
// target is the delay slot address plus the shifted offset. c.PC already
// holds the delay slot address while a handler runs.
func (c *CPU) branch(in Instruction, taken bool) {
	c.branching = true
	c.taken = taken
	if taken {
		c.NextPC = c.PC + in.Word.ImmSE()<<2
	}
}

// jump schedules an unconditional transfer to target.
func (c *CPU) jump(target uint32) {
	c.branching = true
	c.taken = true
	c.NextPC = target
}

// link returns the return address of the executing instruction.
func (c *CPU) link() uint32 {
	return c.current + 8
}

func (c *CPU) opJ(in Instruction) error {
	c.jump(c.PC&0xF0000000 | in.Word.Target()<<2)
	return nil
}

func (c *CPU) opJAL(in Instruction) error {
	c.jump(c.PC&0xF0000000 | in.Word.Target()<<2)
	c.SetReg(RegRA, c.link())
	return nil
}

func (c *CPU) opJR(in Instruction) error {
	c.jump(c.Reg(in.Word.Rs()))
	return nil
}

// opJALR reads rs before linking, so rd may equal rs.
func (c *CPU) opJALR(in Instruction) error {
	c.jump(c.Reg(in.Word.Rs()))
	c.SetReg(in.Word.Rd(), c.link())
	return nil
}

func (c *CPU) opBEQ(in Instruction) error {
	c.branch(in, c.Reg(in.Word.Rs()) == c.Reg(in.Word.Rt()))
	return nil
}

func (c *CPU) opBNE(in Instruction) error {
	c.branch(in, c.Reg(in.Word.Rs()) != c.Reg(in.Word.Rt()))
	return nil
}

func (c *CPU) opBLEZ(in Instruction) error {
	c.branch(in, int32(c.Reg(in.Word.Rs())) <= 0)
	return nil
}

func (c *CPU) opBGTZ(in Instruction) error {
	c.branch(in, int32(c.Reg(in.Word.Rs())) > 0)
	return nil
}

// opBcondZ implements every REGIMM encoding. Bit 16 selects GEZ over LTZ;
// rt 10h and 11h write the link register whether or not the branch is taken.
func (c *CPU) opBcondZ(in Instruction) error {
	rt := in.Word.Rt()
	v := int32(c.Reg(in.Word.Rs()))
	taken := v < 0
	if rt&1 != 0 {
		taken = v >= 0
	}
	c.branch(in, taken)
	if rt&0x1E == 0x10 {
		c.SetReg(RegRA, c.link())
	}
	return nil
}
