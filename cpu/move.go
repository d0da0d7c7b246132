package cpu

import "fmt"

func (c *CPU) opMFHI(in Instruction) error {
	c.SetReg(in.Word.Rd(), c.HI)
	return nil
}

func (c *CPU) opMTHI(in Instruction) error {
	c.HI = c.Reg(in.Word.Rs())
	return nil
}

func (c *CPU) opMFLO(in Instruction) error {
	c.SetReg(in.Word.Rd(), c.LO)
	return nil
}

func (c *CPU) opMTLO(in Instruction) error {
	c.LO = c.Reg(in.Word.Rs())
	return nil
}

// opLUI loads the immediate into the upper halfword without a bus access.
func (c *CPU) opLUI(in Instruction) error {
	c.SetReg(in.Word.Rt(), in.Word.Imm()<<16)
	return nil
}

// coprocessor returns coprocessor n if the status register allows its use.
// COP0 is always usable in kernel mode. COP1 and COP3 do not exist.
func (c *CPU) coprocessor(n uint8) (Coprocessor, error) {
	sr := c.COP0.SR
	switch {
	case n == 0 && (!sr.KUc() || sr.CU(0)):
		return c.COP0, nil
	case n == 2 && sr.CU(2):
		return c.GTE, nil
	}
	c.log.WithField("pc", fmt.Sprintf("%08x", c.current)).Debugf("coprocessor %d unusable", n)
	return nil, &Exception{Code: ExcCoprocessor, Cop: n}
}

// controlRegister maps the rd field to the control half of the register
// contract.
const controlRegister = 32

func (c *CPU) opMFC(in Instruction) error {
	cop, err := c.coprocessor(in.Cop)
	if err != nil {
		return err
	}
	c.SetReg(in.Word.Rt(), cop.ReadRegister(in.Word.Rd()))
	return nil
}

func (c *CPU) opCFC(in Instruction) error {
	cop, err := c.coprocessor(in.Cop)
	if err != nil {
		return err
	}
	c.SetReg(in.Word.Rt(), cop.ReadRegister(controlRegister+in.Word.Rd()))
	return nil
}

func (c *CPU) opMTC(in Instruction) error {
	cop, err := c.coprocessor(in.Cop)
	if err != nil {
		return err
	}
	cop.WriteRegister(in.Word.Rd(), c.Reg(in.Word.Rt()))
	return nil
}

func (c *CPU) opCTC(in Instruction) error {
	cop, err := c.coprocessor(in.Cop)
	if err != nil {
		return err
	}
	cop.WriteRegister(controlRegister+in.Word.Rd(), c.Reg(in.Word.Rt()))
	return nil
}

// opRFE restores the mode stack after an exception.
func (c *CPU) opRFE(in Instruction) error {
	if _, err := c.coprocessor(0); err != nil {
		return err
	}
	c.COP0.rfe()
	return nil
}

// opCOP2 issues a GTE command.
func (c *CPU) opCOP2(in Instruction) error {
	if _, err := c.coprocessor(2); err != nil {
		return err
	}
	if err := c.GTE.Execute(in.Word.Command()); err != nil {
		return fmt.Errorf("gte: %w", err)
	}
	return nil
}

// opLWC loads a word into a coprocessor data register. Only the GTE
// accepts these transfers.
func (c *CPU) opLWC(in Instruction) error {
	if in.Cop != 2 {
		return &Exception{Code: ExcCoprocessor, Cop: in.Cop}
	}
	if _, err := c.coprocessor(2); err != nil {
		return err
	}
	addr, err := c.effective(in, 4, ExcAddressLoad)
	if err != nil {
		return err
	}
	c.GTE.WriteRegister(in.Word.Rt(), c.ReadU32(addr))
	return nil
}

// opSWC stores a coprocessor data register.
func (c *CPU) opSWC(in Instruction) error {
	if in.Cop != 2 {
		return &Exception{Code: ExcCoprocessor, Cop: in.Cop}
	}
	if _, err := c.coprocessor(2); err != nil {
		return err
	}
	addr, err := c.effective(in, 4, ExcAddressStore)
	if err != nil {
		return err
	}
	c.WriteU32(addr, c.GTE.ReadRegister(in.Word.Rt()))
	return nil
}
