package assembler

import (
	"fmt"

	"github.com/Urethramancer/psx/cpu"
)

// Three-register ALU operations: op rd, rs, rt.
var aluFunct = map[string]uint32{
	"add": cpu.FNADD, "addu": cpu.FNADDU, "sub": cpu.FNSUB, "subu": cpu.FNSUBU,
	"and": cpu.FNAND, "or": cpu.FNOR, "xor": cpu.FNXOR, "nor": cpu.FNNOR,
	"slt": cpu.FNSLT, "sltu": cpu.FNSLTU,
}

// Shifts by a constant: op rd, rt, sa.
var shiftFunct = map[string]uint32{
	"sll": cpu.FNSLL, "srl": cpu.FNSRL, "sra": cpu.FNSRA,
}

// Shifts by a register: op rd, rt, rs.
var shiftVFunct = map[string]uint32{
	"sllv": cpu.FNSLLV, "srlv": cpu.FNSRLV, "srav": cpu.FNSRAV,
}

var mulDivFunct = map[string]uint32{
	"mult": cpu.FNMULT, "multu": cpu.FNMULTU, "div": cpu.FNDIV, "divu": cpu.FNDIVU,
}

// Immediate ALU operations: op rt, rs, imm.
var immOpcode = map[string]uint32{
	"addi": cpu.OPADDI, "addiu": cpu.OPADDIU, "slti": cpu.OPSLTI, "sltiu": cpu.OPSLTIU,
	"andi": cpu.OPANDI, "ori": cpu.OPORI, "xori": cpu.OPXORI,
}

func assembleALU(asm *Assembler, n *Node, pc uint32) ([]uint32, error) {
	r, err := registers(n, 3)
	if err != nil {
		return nil, err
	}
	return []uint32{formR(cpu.OPSPECIAL, r[1], r[2], r[0], 0, aluFunct[n.Mnemonic.Value])}, nil
}

func assembleShift(asm *Assembler, n *Node, pc uint32) ([]uint32, error) {
	if err := expect(n, 3); err != nil {
		return nil, err
	}
	rd, err := parseRegister(n.Operands[0])
	if err != nil {
		return nil, err
	}
	rt, err := parseRegister(n.Operands[1])
	if err != nil {
		return nil, err
	}
	sa, err := asm.evaluate(n.Operands[2])
	if err != nil {
		return nil, err
	}
	if sa < 0 || sa > 31 {
		return nil, fmt.Errorf("%w: shift amount %d", ErrOutOfRange, sa)
	}
	return []uint32{formR(cpu.OPSPECIAL, 0, rt, rd, uint32(sa), shiftFunct[n.Mnemonic.Value])}, nil
}

func assembleShiftV(asm *Assembler, n *Node, pc uint32) ([]uint32, error) {
	r, err := registers(n, 3)
	if err != nil {
		return nil, err
	}
	return []uint32{formR(cpu.OPSPECIAL, r[2], r[1], r[0], 0, shiftVFunct[n.Mnemonic.Value])}, nil
}

func assembleMulDiv(asm *Assembler, n *Node, pc uint32) ([]uint32, error) {
	r, err := registers(n, 2)
	if err != nil {
		return nil, err
	}
	return []uint32{formR(cpu.OPSPECIAL, r[0], r[1], 0, 0, mulDivFunct[n.Mnemonic.Value])}, nil
}

func assembleImmediate(asm *Assembler, n *Node, pc uint32) ([]uint32, error) {
	if err := expect(n, 3); err != nil {
		return nil, err
	}
	rt, err := parseRegister(n.Operands[0])
	if err != nil {
		return nil, err
	}
	rs, err := parseRegister(n.Operands[1])
	if err != nil {
		return nil, err
	}
	imm, err := asm.evaluate(n.Operands[2])
	if err != nil {
		return nil, err
	}
	if err = checkImmediate(imm); err != nil {
		return nil, err
	}
	return []uint32{formI(immOpcode[n.Mnemonic.Value], rs, rt, imm)}, nil
}
