// Package disassembler turns PlayStation machine code back into source the
// assembler accepts.
package disassembler

import (
	"fmt"
	"strings"

	"github.com/Urethramancer/psx/cpu"
	"github.com/Urethramancer/psx/gte"
)

// Decode returns the mnemonic and operands of word at pc. Branch targets
// are printed as addresses.
func Decode(word, pc uint32) (string, string) {
	return format(cpu.Decode(word), pc, nil)
}

// reg names a general purpose register.
func reg(r uint32) string {
	return "$" + cpu.RegisterNames[r&31]
}

// format renders in. label may supply a name for branch targets.
func format(in cpu.Instruction, pc uint32, label func(uint32) (string, bool)) (string, string) {
	w := in.Word
	mn := in.Op.String()

	target := func() string {
		addr, _ := branchTarget(in, pc)
		if label != nil {
			if name, ok := label(addr); ok {
				return name
			}
		}
		return fmt.Sprintf("0x%08x", addr)
	}

	switch in.Op {
	case cpu.OpInvalid:
		return ".word", fmt.Sprintf("0x%08x", uint32(w))

	case cpu.OpSLL, cpu.OpSRL, cpu.OpSRA:
		if w == 0 {
			return "nop", ""
		}
		return mn, fmt.Sprintf("%s, %s, %d", reg(w.Rd()), reg(w.Rt()), w.Shamt())
	case cpu.OpSLLV, cpu.OpSRLV, cpu.OpSRAV:
		return mn, fmt.Sprintf("%s, %s, %s", reg(w.Rd()), reg(w.Rt()), reg(w.Rs()))

	case cpu.OpJR:
		return mn, reg(w.Rs())
	case cpu.OpJALR:
		if w.Rd() == cpu.RegRA {
			return mn, reg(w.Rs())
		}
		return mn, fmt.Sprintf("%s, %s", reg(w.Rd()), reg(w.Rs()))

	case cpu.OpSYSCALL, cpu.OpBREAK:
		if code := uint32(w) >> 6 & 0xFFFFF; code != 0 {
			return mn, fmt.Sprintf("0x%x", code)
		}
		return mn, ""

	case cpu.OpMFHI, cpu.OpMFLO:
		return mn, reg(w.Rd())
	case cpu.OpMTHI, cpu.OpMTLO:
		return mn, reg(w.Rs())
	case cpu.OpMULT, cpu.OpMULTU, cpu.OpDIV, cpu.OpDIVU:
		return mn, fmt.Sprintf("%s, %s", reg(w.Rs()), reg(w.Rt()))
	case cpu.OpADD, cpu.OpADDU, cpu.OpSUB, cpu.OpSUBU,
		cpu.OpAND, cpu.OpOR, cpu.OpXOR, cpu.OpNOR, cpu.OpSLT, cpu.OpSLTU:
		return mn, fmt.Sprintf("%s, %s, %s", reg(w.Rd()), reg(w.Rs()), reg(w.Rt()))

	case cpu.OpBLTZ, cpu.OpBGEZ, cpu.OpBLTZAL, cpu.OpBGEZAL, cpu.OpBLEZ, cpu.OpBGTZ:
		return mn, fmt.Sprintf("%s, %s", reg(w.Rs()), target())
	case cpu.OpBEQ, cpu.OpBNE:
		if in.Op == cpu.OpBEQ && w.Rs() == 0 && w.Rt() == 0 {
			return "b", target()
		}
		return mn, fmt.Sprintf("%s, %s, %s", reg(w.Rs()), reg(w.Rt()), target())
	case cpu.OpJ, cpu.OpJAL:
		return mn, target()

	case cpu.OpADDI, cpu.OpADDIU, cpu.OpSLTI, cpu.OpSLTIU:
		return mn, fmt.Sprintf("%s, %s, %d", reg(w.Rt()), reg(w.Rs()), int16(w.Imm()))
	case cpu.OpANDI, cpu.OpORI, cpu.OpXORI:
		return mn, fmt.Sprintf("%s, %s, 0x%x", reg(w.Rt()), reg(w.Rs()), w.Imm())
	case cpu.OpLUI:
		return mn, fmt.Sprintf("%s, 0x%x", reg(w.Rt()), w.Imm())

	case cpu.OpLB, cpu.OpLH, cpu.OpLWL, cpu.OpLW, cpu.OpLBU, cpu.OpLHU, cpu.OpLWR,
		cpu.OpSB, cpu.OpSH, cpu.OpSWL, cpu.OpSW, cpu.OpSWR:
		return mn, fmt.Sprintf("%s, %d(%s)", reg(w.Rt()), int16(w.Imm()), reg(w.Rs()))
	case cpu.OpLWC, cpu.OpSWC:
		return fmt.Sprintf("%s%d", mn, in.Cop), fmt.Sprintf("$%d, %d(%s)", w.Rt(), int16(w.Imm()), reg(w.Rs()))

	case cpu.OpMFC, cpu.OpCFC, cpu.OpMTC, cpu.OpCTC:
		return fmt.Sprintf("%s%d", mn, in.Cop), fmt.Sprintf("%s, $%d", reg(w.Rt()), w.Rd())
	case cpu.OpRFE:
		return mn, ""
	}

	if in.Op.IsGTE() {
		return mn, gteOperands(gte.DecodeCommand(w.Command()))
	}
	return ".word", fmt.Sprintf("0x%08x", uint32(w))
}

// gteOperands lists the command options in assembler syntax.
func gteOperands(c gte.Command) string {
	var opts []string
	if c.SF {
		opts = append(opts, "sf")
	}
	if c.LM {
		opts = append(opts, "lm")
	}
	if c.Op == gte.MVMVA {
		opts = append(opts,
			fmt.Sprintf("mx=%d", c.MX),
			fmt.Sprintf("v=%d", c.V),
			fmt.Sprintf("cv=%d", c.CV))
	}
	return strings.Join(opts, ", ")
}

// labelName generates a label string based on the address and its context.
func labelName(addr uint32, labelType LabelType) string {
	prefix := "loc_"
	switch labelType {
	case SubroutineEntry:
		prefix = "sub_"
	}
	return fmt.Sprintf("%s%08X", prefix, addr)
}

// addrQueue is a simple worklist queue for addresses to decode.
type addrQueue struct {
	items []uint32
	seen  map[uint32]bool
}

func newQueue() *addrQueue {
	return &addrQueue{seen: make(map[uint32]bool)}
}

func (q *addrQueue) push(addr uint32) {
	addr &^= 3 // Align to word boundary
	if !q.seen[addr] {
		q.items = append(q.items, addr)
		q.seen[addr] = true
	}
}

func (q *addrQueue) pop() (uint32, bool) {
	if len(q.items) == 0 {
		return 0, false
	}
	a := q.items[0]
	q.items = q.items[1:]
	return a, true
}
