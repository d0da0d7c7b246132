package cpu

func (c *CPU) opAND(in Instruction) error {
	c.SetReg(in.Word.Rd(), c.Reg(in.Word.Rs())&c.Reg(in.Word.Rt()))
	return nil
}

func (c *CPU) opOR(in Instruction) error {
	c.SetReg(in.Word.Rd(), c.Reg(in.Word.Rs())|c.Reg(in.Word.Rt()))
	return nil
}

func (c *CPU) opXOR(in Instruction) error {
	c.SetReg(in.Word.Rd(), c.Reg(in.Word.Rs())^c.Reg(in.Word.Rt()))
	return nil
}

func (c *CPU) opNOR(in Instruction) error {
	c.SetReg(in.Word.Rd(), ^(c.Reg(in.Word.Rs()) | c.Reg(in.Word.Rt())))
	return nil
}

// The logical immediates zero-extend.

func (c *CPU) opANDI(in Instruction) error {
	c.SetReg(in.Word.Rt(), c.Reg(in.Word.Rs())&in.Word.Imm())
	return nil
}

func (c *CPU) opORI(in Instruction) error {
	c.SetReg(in.Word.Rt(), c.Reg(in.Word.Rs())|in.Word.Imm())
	return nil
}

func (c *CPU) opXORI(in Instruction) error {
	c.SetReg(in.Word.Rt(), c.Reg(in.Word.Rs())^in.Word.Imm())
	return nil
}

func bit(b bool) uint32 {
	if b {
		return 1
	}
	return 0
}

func (c *CPU) opSLT(in Instruction) error {
	c.SetReg(in.Word.Rd(), bit(int32(c.Reg(in.Word.Rs())) < int32(c.Reg(in.Word.Rt()))))
	return nil
}

func (c *CPU) opSLTU(in Instruction) error {
	c.SetReg(in.Word.Rd(), bit(c.Reg(in.Word.Rs()) < c.Reg(in.Word.Rt())))
	return nil
}

func (c *CPU) opSLTI(in Instruction) error {
	c.SetReg(in.Word.Rt(), bit(int32(c.Reg(in.Word.Rs())) < int32(in.Word.ImmSE())))
	return nil
}

// opSLTIU compares unsigned against the sign-extended immediate.
func (c *CPU) opSLTIU(in Instruction) error {
	c.SetReg(in.Word.Rt(), bit(c.Reg(in.Word.Rs()) < in.Word.ImmSE()))
	return nil
}

// Shifts. The variable forms use the low five bits of rs.

func (c *CPU) opSLL(in Instruction) error {
	c.SetReg(in.Word.Rd(), c.Reg(in.Word.Rt())<<in.Word.Shamt())
	return nil
}

func (c *CPU) opSRL(in Instruction) error {
	c.SetReg(in.Word.Rd(), c.Reg(in.Word.Rt())>>in.Word.Shamt())
	return nil
}

func (c *CPU) opSRA(in Instruction) error {
	c.SetReg(in.Word.Rd(), uint32(int32(c.Reg(in.Word.Rt()))>>in.Word.Shamt()))
	return nil
}

func (c *CPU) opSLLV(in Instruction) error {
	c.SetReg(in.Word.Rd(), c.Reg(in.Word.Rt())<<(c.Reg(in.Word.Rs())&31))
	return nil
}

func (c *CPU) opSRLV(in Instruction) error {
	c.SetReg(in.Word.Rd(), c.Reg(in.Word.Rt())>>(c.Reg(in.Word.Rs())&31))
	return nil
}

func (c *CPU) opSRAV(in Instruction) error {
	c.SetReg(in.Word.Rd(), uint32(int32(c.Reg(in.Word.Rt()))>>(c.Reg(in.Word.Rs())&31)))
	return nil
}
