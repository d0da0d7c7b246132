// Package cpu implements the R3000A MIPS-I core of the PlayStation: the
// instruction decoder, the integer pipeline with its branch delay slot,
// COP0 exception handling and the COP2 transfers to the GTE.
package cpu

import (
	"github.com/sirupsen/logrus"

	"github.com/Urethramancer/psx/gte"
)

// DefaultResetVector is the BIOS entry point.
const DefaultResetVector = 0xBFC00000

// Config holds the options for New.
type Config struct {
	// ResetVector is the first PC. Zero selects DefaultResetVector.
	ResetVector uint32
	// StrictDecode makes Step return *ReservedInstructionError for words
	// that do not decode instead of raising the RI exception.
	StrictDecode bool
	// Observer is called before every instruction.
	Observer Observer
	// Logger receives diagnostics. Nil selects the logrus standard logger.
	Logger logrus.FieldLogger
}

// CPU is one R3000A core with its coprocessors.
type CPU struct {
	// PC is the address of the next instruction, NextPC the one after.
	PC     uint32
	NextPC uint32
	// HI and LO hold multiply and divide results.
	HI, LO uint32

	COP0 *COP0
	GTE  *gte.GTE

	// Steps counts executed instructions.
	Steps uint64

	gpr [32]uint32
	bus Bus
	cfg Config
	log logrus.FieldLogger

	// current is the address of the executing instruction.
	current uint32
	// branching and taken describe the instruction just executed;
	// delaySlot, delayTaken and delayTarget the branch before it.
	branching   bool
	taken       bool
	delaySlot   bool
	delayTaken  bool
	delayTarget uint32
	halted      bool
}

// New creates a CPU on bus and resets it.
func New(bus Bus, cfg Config) *CPU {
	if cfg.ResetVector == 0 {
		cfg.ResetVector = DefaultResetVector
	}
	if cfg.Logger == nil {
		cfg.Logger = logrus.StandardLogger()
	}
	c := &CPU{
		bus:  bus,
		cfg:  cfg,
		log:  cfg.Logger.WithField("component", "cpu"),
		COP0: newCOP0(cfg.Logger),
		GTE:  gte.New(cfg.Logger),
	}
	c.Reset()
	return c
}

// Reset clears the register file and both coprocessors and jumps to the
// reset vector in kernel mode with boot exception vectors.
func (c *CPU) Reset() {
	c.gpr = [32]uint32{}
	c.HI, c.LO = 0, 0
	c.PC = c.cfg.ResetVector
	c.NextPC = c.PC + 4
	c.Steps = 0
	c.branching, c.taken = false, false
	c.delaySlot, c.delayTaken = false, false
	c.halted = false
	*c.COP0 = COP0{log: c.COP0.log, SR: SRBEV}
	c.GTE.Reset()
}

// Reg returns general purpose register i. r0 always reads zero.
func (c *CPU) Reg(i uint32) uint32 {
	return c.gpr[i&31]
}

// SetReg writes general purpose register i. Writes to r0 are discarded.
func (c *CPU) SetReg(i, v uint32) {
	if i&31 == 0 {
		return
	}
	c.gpr[i&31] = v
}

// Jump moves execution to addr, discarding any pending branch.
func (c *CPU) Jump(addr uint32) {
	c.PC = addr
	c.NextPC = addr + 4
	c.branching = false
	c.taken = false
}

// Halt stops the CPU. Subsequent calls to Step return ErrHalted.
func (c *CPU) Halt() {
	c.halted = true
}

// Halted reports whether Halt was called.
func (c *CPU) Halted() bool {
	return c.halted
}

// SetInterrupt drives the external interrupt line (cause bit 10).
func (c *CPU) SetInterrupt(on bool) {
	c.COP0.setHardwareInterrupt(on)
}

// RegisterInfo names one register value for inspection.
type RegisterInfo struct {
	Name  string
	Value uint32
}

// Registers returns the register file in GDB's MIPS order: r0..r31, sr,
// lo, hi, badvaddr, cause, pc.
func (c *CPU) Registers() []RegisterInfo {
	out := make([]RegisterInfo, 0, 38)
	for i, name := range RegisterNames {
		out = append(out, RegisterInfo{Name: name, Value: c.gpr[i]})
	}
	return append(out,
		RegisterInfo{Name: "sr", Value: uint32(c.COP0.SR)},
		RegisterInfo{Name: "lo", Value: c.LO},
		RegisterInfo{Name: "hi", Value: c.HI},
		RegisterInfo{Name: "badvaddr", Value: c.COP0.BadVaddr},
		RegisterInfo{Name: "cause", Value: uint32(c.COP0.Cause)},
		RegisterInfo{Name: "pc", Value: c.PC},
	)
}

// Observer is notified before every instruction. It sees the CPU through
// a View and cannot change its state.
type Observer interface {
	BeforeStep(v View, pc uint32)
}

// ObserverFunc adapts a function to Observer.
type ObserverFunc func(v View, pc uint32)

// BeforeStep calls f.
func (f ObserverFunc) BeforeStep(v View, pc uint32) { f(v, pc) }

// Observers fans one call out to several observers in order.
type Observers []Observer

// BeforeStep calls every observer.
func (o Observers) BeforeStep(v View, pc uint32) {
	for _, x := range o {
		x.BeforeStep(v, pc)
	}
}

// View is a read-only window on a CPU.
type View struct {
	c *CPU
}

// Reg returns general purpose register i.
func (v View) Reg(i uint32) uint32 { return v.c.Reg(i) }

// HI returns the HI register.
func (v View) HI() uint32 { return v.c.HI }

// LO returns the LO register.
func (v View) LO() uint32 { return v.c.LO }

// Status returns the COP0 status register.
func (v View) Status() Status { return v.c.COP0.SR }

// Steps returns the number of executed instructions.
func (v View) Steps() uint64 { return v.c.Steps }

// Read8 reads a byte from the bus at a virtual address.
func (v View) Read8(addr uint32) uint8 { return v.c.bus.Read8(Canonicalize(addr)) }

// Read32 reads a word from the bus at a virtual address.
func (v View) Read32(addr uint32) uint32 { return v.c.bus.Read32(Canonicalize(addr)) }

// Registers returns the register file in GDB order.
func (v View) Registers() []RegisterInfo { return v.c.Registers() }
