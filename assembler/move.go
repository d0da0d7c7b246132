package assembler

import "github.com/Urethramancer/psx/cpu"

// Loads and stores: op rt, offset(base).
var memoryOpcode = map[string]uint32{
	"lb": cpu.OPLB, "lh": cpu.OPLH, "lwl": cpu.OPLWL, "lw": cpu.OPLW,
	"lbu": cpu.OPLBU, "lhu": cpu.OPLHU, "lwr": cpu.OPLWR,
	"sb": cpu.OPSB, "sh": cpu.OPSH, "swl": cpu.OPSWL, "sw": cpu.OPSW, "swr": cpu.OPSWR,
}

// copMoveFormat holds the format field of the coprocessor moves.
var copMoveFormat = map[string]uint32{
	"mfc": cpu.COPMF, "cfc": cpu.COPCF, "mtc": cpu.COPMT, "ctc": cpu.COPCT,
}

func assembleMemory(asm *Assembler, n *Node, pc uint32) ([]uint32, error) {
	if err := expect(n, 2); err != nil {
		return nil, err
	}
	rt, err := parseRegister(n.Operands[0])
	if err != nil {
		return nil, err
	}
	off, base, err := asm.parseMemory(n.Operands[1])
	if err != nil {
		return nil, err
	}
	return []uint32{formI(memoryOpcode[n.Mnemonic.Value], base, rt, off)}, nil
}

// assembleMoveFrom encodes mfhi and mflo.
func assembleMoveFrom(asm *Assembler, n *Node, pc uint32) ([]uint32, error) {
	r, err := registers(n, 1)
	if err != nil {
		return nil, err
	}
	funct := uint32(cpu.FNMFHI)
	if n.Mnemonic.Value == "mflo" {
		funct = cpu.FNMFLO
	}
	return []uint32{formR(cpu.OPSPECIAL, 0, 0, r[0], 0, funct)}, nil
}

// assembleMoveTo encodes mthi and mtlo.
func assembleMoveTo(asm *Assembler, n *Node, pc uint32) ([]uint32, error) {
	r, err := registers(n, 1)
	if err != nil {
		return nil, err
	}
	funct := uint32(cpu.FNMTHI)
	if n.Mnemonic.Value == "mtlo" {
		funct = cpu.FNMTLO
	}
	return []uint32{formR(cpu.OPSPECIAL, r[0], 0, 0, 0, funct)}, nil
}

func assembleLui(asm *Assembler, n *Node, pc uint32) ([]uint32, error) {
	if err := expect(n, 2); err != nil {
		return nil, err
	}
	rt, err := parseRegister(n.Operands[0])
	if err != nil {
		return nil, err
	}
	imm, err := asm.evaluate(n.Operands[1])
	if err != nil {
		return nil, err
	}
	if err = checkImmediate(imm); err != nil {
		return nil, err
	}
	return []uint32{formI(cpu.OPLUI, 0, rt, imm)}, nil
}

// assembleCopMove encodes mfcN, cfcN, mtcN and ctcN: op rt, $rd.
func assembleCopMove(asm *Assembler, n *Node, pc uint32) ([]uint32, error) {
	if err := expect(n, 2); err != nil {
		return nil, err
	}
	rt, err := parseRegister(n.Operands[0])
	if err != nil {
		return nil, err
	}
	rd, err := parseCopRegister(n.Operands[1])
	if err != nil {
		return nil, err
	}
	op := cpu.OPCOP0 + uint32(n.Mnemonic.Cop)
	return []uint32{formR(op, copMoveFormat[n.Mnemonic.Value], rt, rd, 0, 0)}, nil
}

// assembleCopMemory encodes lwcN and swcN: op $rt, offset(base).
func assembleCopMemory(asm *Assembler, n *Node, pc uint32) ([]uint32, error) {
	if err := expect(n, 2); err != nil {
		return nil, err
	}
	rt, err := parseCopRegister(n.Operands[0])
	if err != nil {
		return nil, err
	}
	off, base, err := asm.parseMemory(n.Operands[1])
	if err != nil {
		return nil, err
	}
	op := cpu.OPLWC0 + uint32(n.Mnemonic.Cop)
	if n.Mnemonic.Value == "swc" {
		op = cpu.OPSWC0 + uint32(n.Mnemonic.Cop)
	}
	return []uint32{formI(op, base, rt, off)}, nil
}

func assembleRfe(asm *Assembler, n *Node, pc uint32) ([]uint32, error) {
	if err := expect(n, 0); err != nil {
		return nil, err
	}
	return []uint32{formR(cpu.OPCOP0, cpu.COPCO, 0, 0, 0, cpu.FNRFE)}, nil
}
