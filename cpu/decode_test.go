package cpu

import (
	"reflect"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDecode(t *testing.T) {
	tests := []struct {
		word  uint32
		op    Op
		shape Shape
		cop   uint8
	}{
		{0x00000000, OpSLL, ShapeRegister, 0},
		{0x03E00008, OpJR, ShapeRegister, 0},
		{0x0000000C, OpSYSCALL, ShapeRegister, 0},
		{0x0C000000, OpJAL, ShapeJump, 0},
		{0x04110000, OpBGEZAL, ShapeImmediate, 0},
		{0x04100000, OpBLTZAL, ShapeImmediate, 0},
		{0x04020000, OpBLTZ, ShapeImmediate, 0},
		{0x04130000, OpBGEZ, ShapeImmediate, 0},
		{0x3C011F80, OpLUI, ShapeImmediate, 0},
		{0x8C220000, OpLW, ShapeImmediate, 0},
		{0x40026000, OpMFC, ShapeCoprocessor, 0},
		{0x40826000, OpMTC, ShapeCoprocessor, 0},
		{0x42000010, OpRFE, ShapeCoprocessor, 0},
		{0x44000000, OpMFC, ShapeCoprocessor, 1},
		{0x48020800, OpMFC, ShapeCoprocessor, 2},
		{0x48C2F800, OpCTC, ShapeCoprocessor, 2},
		{0x4A180001, OpRTPS, ShapeCoprocessor, 2},
		{0x4A280030, OpRTPT, ShapeCoprocessor, 2},
		{0x4A49E012, OpMVMVA, ShapeCoprocessor, 2},
		{0x4B90003F, OpNCCT, ShapeCoprocessor, 2},
		{0xC8000000, OpLWC, ShapeImmediate, 2},
		{0xE8000000, OpSWC, ShapeImmediate, 2},
		{0xC0000000, OpLWC, ShapeImmediate, 0},
		{0x4A000002, OpInvalid, ShapeInvalid, 0},
		{0x42000001, OpInvalid, ShapeInvalid, 0},
		{0x40200000, OpInvalid, ShapeInvalid, 0},
		{0x0000003F, OpInvalid, ShapeInvalid, 0},
		{0xFC000000, OpInvalid, ShapeInvalid, 0},
	}
	for _, tc := range tests {
		in := Decode(tc.word)
		require.Equal(t, tc.op, in.Op, "%08x", tc.word)
		require.Equal(t, tc.shape, in.Shape, "%08x", tc.word)
		require.Equal(t, tc.cop, in.Cop, "%08x", tc.word)
		require.Equal(t, Word(tc.word), in.Word)
		require.NotNil(t, in.Handler)
	}
}

func TestDecodeIsIdempotent(t *testing.T) {
	w := uint32(0x12345678)
	for range 20000 {
		a, b := Decode(w), Decode(w)
		require.Equal(t, a.Op, b.Op)
		require.Equal(t, a.Shape, b.Shape)
		require.Equal(t, a.Cop, b.Cop)
		require.Equal(t, reflect.ValueOf(a.Handler).Pointer(), reflect.ValueOf(b.Handler).Pointer())
		require.Equal(t, a.Op == OpInvalid, a.Shape == ShapeInvalid)
		w = w*1664525 + 1013904223
	}
}

func TestWordFields(t *testing.T) {
	w := Word(0x8FBF0014) // lw ra, 20(sp)
	require.Equal(t, uint32(OPLW), w.Opcode())
	require.Equal(t, uint32(RegSP), w.Rs())
	require.Equal(t, uint32(RegRA), w.Rt())
	require.Equal(t, uint32(0x14), w.Imm())

	w = Word(0x2508FFFC) // addiu t0, t0, -4
	require.Equal(t, uint32(0xFFFC), w.Imm())
	require.Equal(t, uint32(0xFFFFFFFC), w.ImmSE())

	w = Word(0x000A4880) // sll t1, t2, 2
	require.Equal(t, uint32(10), w.Rt())
	require.Equal(t, uint32(9), w.Rd())
	require.Equal(t, uint32(2), w.Shamt())
	require.Equal(t, uint32(FNSLL), w.Funct())

	w = Word(0x0BF00040)
	require.Equal(t, uint32(0x3F00040), w.Target())

	w = Word(0x4A180001)
	require.Equal(t, uint8(2), w.CopNum())
	require.Equal(t, uint32(0x0180001), w.Command())
}

func TestOpNames(t *testing.T) {
	for op := range opCount {
		require.NotEmpty(t, op.String(), "op %d", op)
	}
	require.Equal(t, "invalid", Op(200).String())
	require.True(t, OpRTPS.IsGTE())
	require.False(t, OpRFE.IsGTE())
	require.True(t, OpBLTZAL.IsBranch())
	require.False(t, OpSYSCALL.IsBranch())
}
