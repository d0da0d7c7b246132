package assembler

import (
	"fmt"

	"github.com/Urethramancer/psx/cpu"
)

func assembleNop(asm *Assembler, n *Node, pc uint32) ([]uint32, error) {
	if err := expect(n, 0); err != nil {
		return nil, err
	}
	return []uint32{0}, nil
}

// assembleMove encodes "move rd, rs" as addu rd, rs, $zero.
func assembleMove(asm *Assembler, n *Node, pc uint32) ([]uint32, error) {
	r, err := registers(n, 2)
	if err != nil {
		return nil, err
	}
	return []uint32{formR(cpu.OPSPECIAL, r[1], cpu.RegZero, r[0], 0, cpu.FNADDU)}, nil
}

// assembleB encodes "b target" as beq $zero, $zero, target.
func assembleB(asm *Assembler, n *Node, pc uint32) ([]uint32, error) {
	if err := expect(n, 1); err != nil {
		return nil, err
	}
	w, err := asm.branch(cpu.OPBEQ, 0, 0, n.Operands[0], pc)
	if err != nil {
		return nil, err
	}
	return []uint32{w}, nil
}

// liValue evaluates the constant of an li node.
func (asm *Assembler) liValue(n *Node) (uint32, error) {
	if err := expect(n, 2); err != nil {
		return 0, err
	}
	v, err := asm.evaluate(n.Operands[1])
	if err != nil {
		return 0, err
	}
	if v < -0x80000000 || v > 0xFFFFFFFF {
		return 0, fmt.Errorf("%w: %d", ErrOutOfRange, v)
	}
	return uint32(v), nil
}

// getSizeLi returns 4 when the constant fits one instruction. Unresolved
// values take the long form until they settle.
func getSizeLi(n *Node, asm *Assembler) uint32 {
	v, err := asm.liValue(n)
	if err != nil {
		return 8
	}
	return uint32(len(liWords(0, v))) * 4
}

// liWords picks the shortest sequence loading v into rt.
func liWords(rt, v uint32) []uint32 {
	switch {
	case int32(v) >= -0x8000 && int32(v) <= 0x7FFF:
		return []uint32{formI(cpu.OPADDIU, cpu.RegZero, rt, int64(v))}
	case v <= 0xFFFF:
		return []uint32{formI(cpu.OPORI, cpu.RegZero, rt, int64(v))}
	case v&0xFFFF == 0:
		return []uint32{formI(cpu.OPLUI, 0, rt, int64(v>>16))}
	}
	return []uint32{
		formI(cpu.OPLUI, 0, rt, int64(v>>16)),
		formI(cpu.OPORI, rt, rt, int64(v&0xFFFF)),
	}
}

func assembleLi(asm *Assembler, n *Node, pc uint32) ([]uint32, error) {
	v, err := asm.liValue(n)
	if err != nil {
		return nil, err
	}
	rt, err := parseRegister(n.Operands[0])
	if err != nil {
		return nil, err
	}
	return liWords(rt, v), nil
}

// assembleLa loads an address with lui and addiu, so a label may move
// between passes without changing the size.
func assembleLa(asm *Assembler, n *Node, pc uint32) ([]uint32, error) {
	if err := expect(n, 2); err != nil {
		return nil, err
	}
	rt, err := parseRegister(n.Operands[0])
	if err != nil {
		return nil, err
	}
	v, err := asm.evaluate(n.Operands[1])
	if err != nil {
		return nil, err
	}
	addr := uint32(v)
	return []uint32{
		formI(cpu.OPLUI, 0, rt, int64(hi(addr))),
		formI(cpu.OPADDIU, rt, rt, int64(lo(addr))),
	}, nil
}
