// Package bios observes the CPU at BIOS entry points. Hooks run before the
// instruction at their address and see the CPU through a read-only view.
package bios

import (
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/Urethramancer/psx/cpu"
)

// Call tables of the kernel. A function is selected by t1 before jumping
// to the table address.
const (
	TableA = 0xA0
	TableB = 0xB0
	TableC = 0xC0
)

// Hook runs before the instruction at its address.
type Hook func(v cpu.View)

// Hooks is an address-keyed hook table. It implements cpu.Observer.
// Addresses are compared after segment canonicalization, so a hook on 0xA0
// also fires at 0x800000A0 and 0xA00000A0.
type Hooks struct {
	hooks map[uint32][]Hook
	log   logrus.FieldLogger
}

// NewHooks returns an empty table. A nil logger selects the logrus
// standard logger.
func NewHooks(log logrus.FieldLogger) *Hooks {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Hooks{
		hooks: make(map[uint32][]Hook),
		log:   log.WithField("component", "bios"),
	}
}

// On adds fn at addr. Hooks at one address run in the order they were added.
func (h *Hooks) On(addr uint32, fn Hook) {
	addr = cpu.Canonicalize(addr)
	h.hooks[addr] = append(h.hooks[addr], fn)
}

// OnCall adds fn for a function number in table, which is TableA, TableB
// or TableC.
func (h *Hooks) OnCall(table, number uint32, fn Hook) {
	h.On(table, func(v cpu.View) {
		if v.Reg(cpu.RegT1)&0xFF == number {
			fn(v)
		}
	})
}

// BeforeStep implements cpu.Observer.
func (h *Hooks) BeforeStep(v cpu.View, pc uint32) {
	list, ok := h.hooks[cpu.Canonicalize(pc)]
	if !ok {
		return
	}
	h.log.WithField("pc", fmt.Sprintf("%08x", pc)).Tracef("%d hooks", len(list))
	for _, fn := range list {
		fn(v)
	}
}
