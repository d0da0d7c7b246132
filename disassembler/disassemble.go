package disassembler

import (
	"fmt"
	"strings"

	"github.com/Urethramancer/psx/cpu"
)

// LabelType defines the context of a label.
type LabelType int

const (
	// JumpTarget is for a branch or jump (beq, j, etc.).
	JumpTarget LabelType = iota
	// SubroutineEntry is for a jal, bltzal or bgezal target.
	SubroutineEntry
)

// Instruction represents a single decoded word at a specific address.
type Instruction struct {
	Address uint32
	Word    uint32
	Decoded cpu.Instruction
	IsCode  bool // Flag to mark as reachable code
}

// Disassemble renders code loaded at base as assembler source. Control flow
// is followed from base and from every entry point; words that are never
// reached are rendered as data.
func Disassemble(code []byte, base uint32, entries ...uint32) (string, error) {
	if len(code) == 0 {
		return "", nil
	}
	end := base + uint32(len(code)&^3)

	// --- STAGE 1: Linear Sweep ---
	words := cpu.BytesToWords(code[:len(code)&^3])
	instructions := make(map[uint32]*Instruction, len(words))
	for i, w := range words {
		addr := base + uint32(i*4)
		instructions[addr] = &Instruction{
			Address: addr,
			Word:    w,
			Decoded: cpu.Decode(w),
		}
	}

	// --- STAGE 2: Control Flow Analysis ---
	labelTargets := make(map[uint32]LabelType)
	q := newQueue()
	q.push(base)
	for _, e := range entries {
		q.push(e)
	}

	for {
		addr, ok := q.pop()
		if !ok {
			break
		}

		inst, exists := instructions[addr]
		if !exists || inst.Decoded.Op == cpu.OpInvalid {
			continue
		}
		inst.IsCode = true

		if isTerminal(inst.Decoded) {
			// The delay slot still executes.
			if slot, ok := instructions[addr+4]; ok && slot.Decoded.Op != cpu.OpInvalid {
				slot.IsCode = true
			}
		} else {
			q.push(addr + 4)
		}

		if target, ok := branchTarget(inst.Decoded, addr); ok && target >= base && target < end {
			q.push(target)
			if isCall(inst.Decoded) {
				labelTargets[target] = SubroutineEntry
			} else if _, exists := labelTargets[target]; !exists {
				labelTargets[target] = JumpTarget
			}
		}
	}

	label := func(addr uint32) (string, bool) {
		lt, ok := labelTargets[addr]
		if !ok {
			return "", false
		}
		if inst, exists := instructions[addr]; !exists || !inst.IsCode {
			return "", false
		}
		return labelName(addr, lt), true
	}

	// --- STAGE 3: Render Final Output ---
	var out strings.Builder
	stringCounter := 1
	codeEnd := base + uint32(len(code))

	for pc := base; pc < codeEnd; {
		// If the current address is not marked as code, find the end of the
		// data block and pass it to the data analyzer.
		if inst, isCode := instructions[pc]; !isCode || !inst.IsCode {
			dataEnd := pc
			for dataEnd < codeEnd {
				if inst, isCode := instructions[dataEnd]; isCode && inst.IsCode {
					break
				}
				dataEnd += 4
			}
			dataEnd = min(dataEnd, codeEnd)
			out.WriteString(analyzeAndFormatData(code[pc-base:dataEnd-base], pc, &stringCounter))
			pc = dataEnd
			continue
		}

		if name, ok := label(pc); ok {
			fmt.Fprintf(&out, "%s:\n", name)
		}

		inst := instructions[pc]
		mn, ops := format(inst.Decoded, pc, label)
		if ops != "" {
			fmt.Fprintf(&out, "    %-8s %s\n", mn, ops)
		} else {
			fmt.Fprintf(&out, "    %s\n", mn)
		}
		pc += 4
	}

	return out.String(), nil
}

// isTerminal checks if an instruction unconditionally stops linear execution
// after its delay slot.
func isTerminal(in cpu.Instruction) bool {
	switch in.Op {
	case cpu.OpJ, cpu.OpJR:
		return true
	case cpu.OpBEQ:
		return in.Word.Rs() == in.Word.Rt()
	}
	return false
}

// isCall reports whether the instruction links before branching.
func isCall(in cpu.Instruction) bool {
	switch in.Op {
	case cpu.OpJAL, cpu.OpBLTZAL, cpu.OpBGEZAL:
		return true
	}
	return false
}

// branchTarget returns the destination of a branch or jump at pc. Register
// jumps have no static target.
func branchTarget(in cpu.Instruction, pc uint32) (uint32, bool) {
	switch in.Op {
	case cpu.OpJ, cpu.OpJAL:
		return (pc+4)&0xF0000000 | in.Word.Target()<<2, true
	case cpu.OpBEQ, cpu.OpBNE, cpu.OpBLEZ, cpu.OpBGTZ,
		cpu.OpBLTZ, cpu.OpBGEZ, cpu.OpBLTZAL, cpu.OpBGEZAL:
		return pc + 4 + in.Word.ImmSE()<<2, true
	}
	return 0, false
}
