package assembler

import (
	"fmt"

	"github.com/Urethramancer/psx/cpu"
)

func formR(op, rs, rt, rd, shamt, funct uint32) uint32 {
	return op<<26 | rs<<21 | rt<<16 | rd<<11 | shamt<<6 | funct
}

func formI(op, rs, rt uint32, imm int64) uint32 {
	return op<<26 | rs<<21 | rt<<16 | uint32(imm)&0xFFFF
}

func formJ(op, target uint32) uint32 {
	return op<<26 | target>>2&0x3FFFFFF
}

// fits16 accepts both signed and unsigned spellings of a halfword.
func fits16(v int64) bool {
	return v >= -0x8000 && v <= 0xFFFF
}

// checkImmediate validates a 16-bit immediate field.
func checkImmediate(v int64) error {
	if !fits16(v) {
		return fmt.Errorf("%w: immediate %d", ErrOutOfRange, v)
	}
	return nil
}

// branchOffset computes the offset field of a branch at pc.
func branchOffset(pc uint32, target int64) (int64, error) {
	if target&3 != 0 {
		return 0, fmt.Errorf("%w: misaligned branch target %#x", ErrOutOfRange, target)
	}
	off := (target - int64(pc) - 4) >> 2
	if off < -0x8000 || off > 0x7FFF {
		return 0, fmt.Errorf("%w: branch to %#x from %#x", ErrOutOfRange, target, pc)
	}
	return off, nil
}

// jumpTarget checks that target shares the 256 MiB region of the delay slot.
func jumpTarget(pc uint32, target int64) (uint32, error) {
	t := uint32(target)
	if target&3 != 0 || (pc+4)&0xF0000000 != t&0xF0000000 {
		return 0, fmt.Errorf("%w: jump to %#x from %#x", ErrOutOfRange, target, pc)
	}
	return t, nil
}

// hi and lo split an address for a lui/addiu pair.
func hi(v uint32) uint32 { return (v + 0x8000) >> 16 }
func lo(v uint32) uint32 { return v & 0xFFFF }

func words(w ...uint32) []byte {
	return cpu.WordsToBytes(w)
}
