// Package assembler translates MIPS R3000A and GTE assembly into machine
// code for the PlayStation.
package assembler

import (
	"errors"
	"fmt"
	"strings"

	"github.com/Urethramancer/psx/gte"
)

var (
	// ErrUnknownMnemonic is returned for instructions the assembler lacks.
	ErrUnknownMnemonic = errors.New("unknown mnemonic")
	// ErrUndefinedSymbol is returned for labels and symbols never defined.
	ErrUndefinedSymbol = errors.New("undefined symbol")
	// ErrBadRegister is returned for malformed register operands.
	ErrBadRegister = errors.New("invalid register")
	// ErrOutOfRange is returned when a value does not fit its field.
	ErrOutOfRange = errors.New("value out of range")
	// ErrOperands is returned for a wrong number of operands.
	ErrOperands = errors.New("wrong number of operands")
)

// LineError ties an error to the source line that caused it.
type LineError struct {
	Line   int
	Source string
	Err    error
}

func (e *LineError) Error() string {
	return fmt.Sprintf("line %d: %s: %v", e.Line, e.Source, e.Err)
}

func (e *LineError) Unwrap() error {
	return e.Err
}

// maxPasses bounds the label resolution loop.
const maxPasses = 16

// Assembler holds the state for the assembly process.
type Assembler struct {
	symbols map[string]int64
	labels  map[string]uint32
}

// New creates a new Assembler instance.
func New() *Assembler {
	return &Assembler{
		symbols: make(map[string]int64),
		labels:  make(map[string]uint32),
	}
}

// Label returns the address of a label from the last Assemble call.
func (asm *Assembler) Label(name string) (uint32, bool) {
	addr, ok := asm.labels[strings.ToLower(name)]
	return addr, ok
}

// Assemble takes MIPS assembly code and returns little-endian machine code
// for loading at baseAddress.
func (asm *Assembler) Assemble(src string, baseAddress uint32) ([]byte, error) {
	lines := strings.Split(strings.ReplaceAll(src, "\r\n", "\n"), "\n")

	nodes, err := asm.parseLines(lines)
	if err != nil {
		return nil, fmt.Errorf("parsing error: %w", err)
	}

	// Pass: resolve label addresses and node sizes until stable.
	for pass := 0; ; pass++ {
		if pass == maxPasses {
			return nil, errors.New("label addresses did not settle")
		}
		pc := baseAddress
		changed := false
		for _, n := range nodes {
			if n.Type == NodeLabel {
				if addr, ok := asm.labels[n.Label]; !ok || addr != pc {
					asm.labels[n.Label] = pc
					changed = true
				}
				continue
			}

			size, err := asm.getSize(n, pc)
			if err != nil {
				return nil, n.wrap(fmt.Errorf("error calculating size: %w", err))
			}
			if n.Size != size {
				changed = true
			}
			n.Size = size
			pc += size
		}
		if !changed {
			break
		}
	}

	// Generate machine code.
	var machineCode []byte
	pc := baseAddress
	for _, n := range nodes {
		var code []byte
		var err error

		switch n.Type {
		case NodeLabel:
			// Labels do not emit code.
			continue
		case NodeDirective:
			code, err = asm.generateDirectiveCode(n, pc)
		case NodeInstruction:
			code, err = asm.generateInstructionCode(n, pc)
		}

		if err != nil {
			return nil, n.wrap(err)
		}
		if uint32(len(code)) != n.Size {
			return nil, n.wrap(fmt.Errorf("emitted %d bytes, sized %d", len(code), n.Size))
		}
		machineCode = append(machineCode, code...)
		pc += n.Size
	}

	return machineCode, nil
}

// parseLines converts raw source lines into a slice of Node objects.
func (asm *Assembler) parseLines(lines []string) ([]*Node, error) {
	var nodes []*Node
	for i, line := range lines {
		line = strings.TrimSpace(stripComment(line))
		if line == "" || strings.HasPrefix(line, "*") {
			continue
		}

		if m := reLabel.FindStringSubmatch(line); m != nil {
			nodes = append(nodes, &Node{Type: NodeLabel, Label: strings.ToLower(m[1]), Parts: []string{m[1] + ":"}, Line: i + 1})
			line = strings.TrimSpace(m[2])
		}

		if line == "" {
			continue
		}

		var mnemonic, operandStr string
		firstSpace := strings.IndexAny(line, " \t")
		if firstSpace == -1 {
			mnemonic = line
		} else {
			mnemonic = line[:firstSpace]
			operandStr = strings.TrimSpace(line[firstSpace:])
		}

		nodeParts := []string{mnemonic}
		if operandStr != "" {
			nodeParts = append(nodeParts, operandStr)
		}

		if strings.HasPrefix(mnemonic, ".") {
			n := &Node{Type: NodeDirective, Parts: nodeParts, Line: i + 1}
			if err := asm.defineSymbol(n); err != nil {
				return nil, n.wrap(err)
			}
			nodes = append(nodes, n)
			continue
		}

		mn, err := ParseMnemonic(mnemonic)
		if err == nil && !known(mn) {
			err = fmt.Errorf("%w: %s", ErrUnknownMnemonic, mnemonic)
		}
		if err != nil {
			return nil, &LineError{Line: i + 1, Source: line, Err: err}
		}

		var operands []string
		if operandStr != "" {
			operands = splitOperands(operandStr)
		}
		nodes = append(nodes, &Node{Type: NodeInstruction, Mnemonic: mn, Operands: operands, Parts: nodeParts, Line: i + 1})
	}
	return nodes, nil
}

// known reports whether mn has an assembler.
func known(mn Mnemonic) bool {
	if _, ok := instructionSet[mn.Value]; ok {
		return true
	}
	_, ok := gte.Lookup(mn.Value)
	return ok
}

// getSize returns the bytes a node emits at pc.
func (asm *Assembler) getSize(n *Node, pc uint32) (uint32, error) {
	if n.Type == NodeDirective {
		return asm.getDirectiveSize(n, pc)
	}
	return asm.getInstructionSize(n), nil
}

// getInstructionSize returns the bytes an instruction node emits.
func (asm *Assembler) getInstructionSize(n *Node) uint32 {
	switch n.Mnemonic.Value {
	case "la":
		return 8
	case "li":
		return getSizeLi(n, asm)
	}
	return 4
}

// generateInstructionCode dispatches to the appropriate instruction assembler.
func (asm *Assembler) generateInstructionCode(n *Node, pc uint32) ([]byte, error) {
	if op, ok := gte.Lookup(n.Mnemonic.Value); ok {
		w, err := assembleGTE(op, n.Operands)
		if err != nil {
			return nil, err
		}
		return words(w), nil
	}

	fn, ok := instructionSet[n.Mnemonic.Value]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownMnemonic, n.Mnemonic)
	}
	code, err := fn(asm, n, pc)
	if err != nil {
		return nil, err
	}
	return words(code...), nil
}

// assembleFunc encodes one instruction node at pc.
type assembleFunc func(asm *Assembler, n *Node, pc uint32) ([]uint32, error)

// instructionSet maps mnemonics to their assemblers.
var instructionSet map[string]assembleFunc

func init() {
	instructionSet = map[string]assembleFunc{
		"nop": assembleNop, "move": assembleMove, "li": assembleLi, "la": assembleLa, "b": assembleB,

		"jr": assembleJr, "jalr": assembleJalr, "j": assembleJump, "jal": assembleJump,
		"syscall": assembleTrap, "break": assembleTrap,

		"mfhi": assembleMoveFrom, "mflo": assembleMoveFrom,
		"mthi": assembleMoveTo, "mtlo": assembleMoveTo,
		"lui": assembleLui,
		"mfc": assembleCopMove, "cfc": assembleCopMove, "mtc": assembleCopMove, "ctc": assembleCopMove,
		"lwc": assembleCopMemory, "swc": assembleCopMemory,
		"rfe": assembleRfe,
	}
	for name := range aluFunct {
		instructionSet[name] = assembleALU
	}
	for name := range shiftFunct {
		instructionSet[name] = assembleShift
	}
	for name := range shiftVFunct {
		instructionSet[name] = assembleShiftV
	}
	for name := range mulDivFunct {
		instructionSet[name] = assembleMulDiv
	}
	for name := range immOpcode {
		instructionSet[name] = assembleImmediate
	}
	for name := range branchOpcode {
		instructionSet[name] = assembleBranch
	}
	for name := range branchZ {
		instructionSet[name] = assembleBranchZ
	}
	for name := range memoryOpcode {
		instructionSet[name] = assembleMemory
	}
}

// expect checks the operand count of n.
func expect(n *Node, count int) error {
	if len(n.Operands) != count {
		return fmt.Errorf("%w: %s takes %d, got %d", ErrOperands, n.Mnemonic, count, len(n.Operands))
	}
	return nil
}

// registers parses every operand of n as a general purpose register.
func registers(n *Node, count int) ([]uint32, error) {
	if err := expect(n, count); err != nil {
		return nil, err
	}
	regs := make([]uint32, count)
	for i, s := range n.Operands {
		r, err := parseRegister(s)
		if err != nil {
			return nil, err
		}
		regs[i] = r
	}
	return regs, nil
}
