package cpu

import (
	"errors"
	"fmt"
)

// Step executes a single instruction. Traps are taken as COP0 exceptions
// and do not produce an error; an error is returned only when the host
// has to decide what happens next.
func (c *CPU) Step() error {
	if c.halted {
		return ErrHalted
	}

	pc := c.PC
	if c.cfg.Observer != nil {
		c.cfg.Observer.BeforeStep(View{c}, pc)
	}

	c.current = pc
	c.delaySlot, c.delayTaken, c.delayTarget = c.branching, c.taken, c.NextPC
	c.branching, c.taken = false, false

	if c.COP0.interruptPending() {
		if err := c.completeGTE(pc); err != nil {
			return err
		}
		c.raise(&Exception{Code: ExcInterrupt})
		return nil
	}

	// Fetch
	if pc&3 != 0 || (c.COP0.SR.KUc() && Kernel(pc)) {
		c.raise(&Exception{Code: ExcAddressLoad, BadVaddr: pc})
		return nil
	}
	word := c.bus.Read32(Canonicalize(pc))

	// Decode
	inst := Decode(word)
	if inst.Op == OpInvalid && c.cfg.StrictDecode {
		c.branching, c.taken = c.delaySlot, c.delayTaken
		return &ReservedInstructionError{PC: pc, Word: word}
	}

	c.PC = c.NextPC
	c.NextPC += 4

	// Execute
	err := inst.Handler(c, inst)
	c.Steps++
	if err == nil {
		return nil
	}
	var exc *Exception
	if errors.As(err, &exc) {
		c.raise(exc)
		return nil
	}
	return fmt.Errorf("execution failed at %08x (%s): %w", pc, inst.Op, err)
}

// completeGTE runs the GTE command at pc when an interrupt is taken on it.
// The command still completes on hardware, and the kernel handler steps
// EPC past it. In a delay slot EPC names the branch, so the command is
// left to run again after the return.
func (c *CPU) completeGTE(pc uint32) error {
	sr := c.COP0.SR
	if c.delaySlot || pc&3 != 0 || !sr.CU(2) || (sr.KUc() && Kernel(pc)) {
		return nil
	}
	inst := Decode(c.bus.Read32(Canonicalize(pc)))
	if inst.Op == OpInvalid || inst.Cop != 2 || inst.Word.Rs() < COPCO {
		return nil
	}
	if err := c.GTE.Execute(inst.Word.Command()); err != nil {
		return fmt.Errorf("gte: %w", err)
	}
	c.Steps++
	return nil
}

// Run steps until n instructions have executed or Step fails.
func (c *CPU) Run(n uint64) error {
	for range n {
		if err := c.Step(); err != nil {
			return err
		}
	}
	return nil
}
