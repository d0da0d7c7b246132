package bios

import (
	"github.com/Urethramancer/psx/cpu"
)

// Entry is one traced instruction.
type Entry struct {
	PC   uint32
	Word uint32
}

// Instruction decodes the traced word.
func (e Entry) Instruction() cpu.Instruction {
	return cpu.Decode(e.Word)
}

// Trace keeps the last instructions executed. It implements cpu.Observer.
type Trace struct {
	ring []Entry
	next int
	full bool
}

// NewTrace keeps up to n entries.
func NewTrace(n int) *Trace {
	if n < 1 {
		n = 1
	}
	return &Trace{ring: make([]Entry, n)}
}

// BeforeStep implements cpu.Observer.
func (t *Trace) BeforeStep(v cpu.View, pc uint32) {
	t.ring[t.next] = Entry{PC: pc, Word: v.Read32(pc)}
	t.next++
	if t.next == len(t.ring) {
		t.next = 0
		t.full = true
	}
}

// Entries returns the trace, oldest first.
func (t *Trace) Entries() []Entry {
	if !t.full {
		return append([]Entry(nil), t.ring[:t.next]...)
	}
	out := make([]Entry, 0, len(t.ring))
	out = append(out, t.ring[t.next:]...)
	return append(out, t.ring[:t.next]...)
}

// Len returns the number of entries held.
func (t *Trace) Len() int {
	if t.full {
		return len(t.ring)
	}
	return t.next
}
