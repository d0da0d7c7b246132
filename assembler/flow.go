package assembler

import (
	"fmt"

	"github.com/Urethramancer/psx/cpu"
)

var branchOpcode = map[string]uint32{
	"beq": cpu.OPBEQ, "bne": cpu.OPBNE,
}

// branchZ maps compare-with-zero branches to their opcode and rt field.
var branchZ = map[string][2]uint32{
	"blez":   {cpu.OPBLEZ, 0},
	"bgtz":   {cpu.OPBGTZ, 0},
	"bltz":   {cpu.OPREGIMM, cpu.RTBLTZ},
	"bgez":   {cpu.OPREGIMM, cpu.RTBGEZ},
	"bltzal": {cpu.OPREGIMM, cpu.RTBLTZAL},
	"bgezal": {cpu.OPREGIMM, cpu.RTBGEZAL},
}

// branch encodes a conditional branch to the expression in operand.
func (asm *Assembler) branch(op, rs, rt uint32, operand string, pc uint32) (uint32, error) {
	target, err := asm.evaluate(operand)
	if err != nil {
		return 0, err
	}
	off, err := branchOffset(pc, target)
	if err != nil {
		return 0, err
	}
	return formI(op, rs, rt, off), nil
}

func assembleBranch(asm *Assembler, n *Node, pc uint32) ([]uint32, error) {
	if err := expect(n, 3); err != nil {
		return nil, err
	}
	rs, err := parseRegister(n.Operands[0])
	if err != nil {
		return nil, err
	}
	rt, err := parseRegister(n.Operands[1])
	if err != nil {
		return nil, err
	}
	w, err := asm.branch(branchOpcode[n.Mnemonic.Value], rs, rt, n.Operands[2], pc)
	if err != nil {
		return nil, err
	}
	return []uint32{w}, nil
}

func assembleBranchZ(asm *Assembler, n *Node, pc uint32) ([]uint32, error) {
	if err := expect(n, 2); err != nil {
		return nil, err
	}
	rs, err := parseRegister(n.Operands[0])
	if err != nil {
		return nil, err
	}
	enc := branchZ[n.Mnemonic.Value]
	w, err := asm.branch(enc[0], rs, enc[1], n.Operands[1], pc)
	if err != nil {
		return nil, err
	}
	return []uint32{w}, nil
}

func assembleJump(asm *Assembler, n *Node, pc uint32) ([]uint32, error) {
	if err := expect(n, 1); err != nil {
		return nil, err
	}
	v, err := asm.evaluate(n.Operands[0])
	if err != nil {
		return nil, err
	}
	target, err := jumpTarget(pc, v)
	if err != nil {
		return nil, err
	}
	op := uint32(cpu.OPJ)
	if n.Mnemonic.Value == "jal" {
		op = cpu.OPJAL
	}
	return []uint32{formJ(op, target)}, nil
}

func assembleJr(asm *Assembler, n *Node, pc uint32) ([]uint32, error) {
	r, err := registers(n, 1)
	if err != nil {
		return nil, err
	}
	return []uint32{formR(cpu.OPSPECIAL, r[0], 0, 0, 0, cpu.FNJR)}, nil
}

// assembleJalr accepts "jalr rs" (link in ra) and "jalr rd, rs".
func assembleJalr(asm *Assembler, n *Node, pc uint32) ([]uint32, error) {
	switch len(n.Operands) {
	case 1:
		rs, err := parseRegister(n.Operands[0])
		if err != nil {
			return nil, err
		}
		return []uint32{formR(cpu.OPSPECIAL, rs, 0, cpu.RegRA, 0, cpu.FNJALR)}, nil
	case 2:
		r, err := registers(n, 2)
		if err != nil {
			return nil, err
		}
		return []uint32{formR(cpu.OPSPECIAL, r[1], 0, r[0], 0, cpu.FNJALR)}, nil
	}
	return nil, fmt.Errorf("%w: jalr takes 1 or 2", ErrOperands)
}

// assembleTrap encodes syscall and break with an optional 20-bit code.
func assembleTrap(asm *Assembler, n *Node, pc uint32) ([]uint32, error) {
	funct := uint32(cpu.FNSYSCALL)
	if n.Mnemonic.Value == "break" {
		funct = cpu.FNBREAK
	}
	var code int64
	switch len(n.Operands) {
	case 0:
	case 1:
		var err error
		code, err = asm.evaluate(n.Operands[0])
		if err != nil {
			return nil, err
		}
		if code < 0 || code > 0xFFFFF {
			return nil, fmt.Errorf("%w: code %#x", ErrOutOfRange, code)
		}
	default:
		return nil, fmt.Errorf("%w: %s takes at most 1", ErrOperands, n.Mnemonic)
	}
	return []uint32{uint32(code)<<6 | funct}, nil
}
