package gte_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Urethramancer/psx/gte"
)

func TestDataRegisterRoundTrip(t *testing.T) {
	g := gte.New(nil)
	tests := []struct {
		reg      uint32
		in, want uint32
	}{
		{gte.RegVXY0, 0x8001_7FFF, 0x8001_7FFF},
		{gte.RegVZ1, 0x0000_8000, 0xFFFF_8000},
		{gte.RegVZ2, 0x1234_0010, 0x0000_0010},
		{gte.RegRGBC, 0x2C10_2030, 0x2C10_2030},
		{gte.RegOTZ, 0xFFFF_8000, 0x0000_8000},
		{gte.RegIR0, 0x0000_F000, 0xFFFF_F000},
		{gte.RegIR3, 0x0001_0001, 0x0000_0001},
		{gte.RegSZ2, 0xFFFF_FFFF, 0x0000_FFFF},
		{gte.RegRES1, 0xDEAD_BEEF, 0xDEAD_BEEF},
		{gte.RegMAC2, 0x8000_0000, 0x8000_0000},
	}
	for _, tc := range tests {
		g.WriteRegister(tc.reg, tc.in)
		require.Equal(t, tc.want, g.ReadRegister(tc.reg), gte.RegisterName(tc.reg))
	}
}

func TestSXYPPushesFIFO(t *testing.T) {
	g := gte.New(nil)
	g.WriteRegister(gte.RegSXY0, 0x0001_0001)
	g.WriteRegister(gte.RegSXY1, 0x0002_0002)
	g.WriteRegister(gte.RegSXY2, 0x0003_0003)
	g.WriteRegister(gte.RegSXYP, 0x0004_0004)

	require.Equal(t, uint32(0x0002_0002), g.ReadRegister(gte.RegSXY0))
	require.Equal(t, uint32(0x0003_0003), g.ReadRegister(gte.RegSXY1))
	require.Equal(t, uint32(0x0004_0004), g.ReadRegister(gte.RegSXY2))
	require.Equal(t, uint32(0x0004_0004), g.ReadRegister(gte.RegSXYP))
}

func TestIRGBAndORGB(t *testing.T) {
	g := gte.New(nil)
	g.WriteRegister(gte.RegIRGB, 0x7FFF)
	require.Equal(t, [4]int16{0, 0xF80, 0xF80, 0xF80}, g.IR)
	require.Equal(t, uint32(0x7FFF), g.ReadRegister(gte.RegORGB))

	g.IR = [4]int16{0, -0x100, 0x0380, 0x7FFF}
	require.Equal(t, uint32(0x1F<<10|0x07<<5|0), g.ReadRegister(gte.RegORGB))
	require.Equal(t, g.ReadRegister(gte.RegORGB), g.ReadRegister(gte.RegIRGB))

	// ORGB is read only.
	g.WriteRegister(gte.RegORGB, 0)
	require.Equal(t, int16(0x7FFF), g.IR[3])
}

func TestLeadingZeroCount(t *testing.T) {
	tests := []struct {
		in, want uint32
	}{
		{0, 32},
		{1, 31},
		{0x7FFF_FFFF, 1},
		{0xFFFF_FFFF, 32},
		{0x8000_0000, 1},
		{0xFF00_0000, 8},
		{0x0000_FFFF, 16},
	}
	g := gte.New(nil)
	for _, tc := range tests {
		g.WriteRegister(gte.RegLZCS, tc.in)
		require.Equal(t, tc.in, g.ReadRegister(gte.RegLZCS))
		require.Equal(t, tc.want, g.ReadRegister(gte.RegLZCR), "lzcs=%08X", tc.in)
	}
	g.WriteRegister(gte.RegLZCR, 5)
	require.Equal(t, uint32(16), g.ReadRegister(gte.RegLZCR))
}

func TestControlMatrixPacking(t *testing.T) {
	g := gte.New(nil)
	g.WriteRegister(gte.RegRT11RT12, 0x0002_0001)
	g.WriteRegister(gte.RegRT13RT21, 0x0004_0003)
	g.WriteRegister(gte.RegRT22RT23, 0x0006_0005)
	g.WriteRegister(gte.RegRT31RT32, 0x0008_0007)
	g.WriteRegister(gte.RegRT33, 0xFFFF_F009)
	require.Equal(t, gte.Matrix{{1, 2, 3}, {4, 5, 6}, {7, 8, -0xFF7}}, g.RT)
	require.Equal(t, uint32(0xFFFF_F009), g.ReadRegister(gte.RegRT33))

	g.WriteRegister(gte.RegLB3, 0x0000_7FFF)
	require.Equal(t, int16(0x7FFF), g.LCM[2][2])
	g.WriteRegister(gte.RegL13L21, 0x8000_1000)
	require.Equal(t, int16(0x1000), g.LLM[0][2])
	require.Equal(t, int16(-0x8000), g.LLM[1][0])
	require.Equal(t, uint32(0x8000_1000), g.ReadRegister(gte.RegL13L21))
}

func TestControlScalarQuirks(t *testing.T) {
	g := gte.New(nil)

	// H is unsigned for the divider but reads back sign extended.
	g.WriteRegister(gte.RegH, 0x8000)
	require.Equal(t, uint16(0x8000), g.H)
	require.Equal(t, uint32(0xFFFF_8000), g.ReadRegister(gte.RegH))

	g.WriteRegister(gte.RegDQA, 0x0000_FFFF)
	require.Equal(t, uint32(0xFFFF_FFFF), g.ReadRegister(gte.RegDQA))
	g.WriteRegister(gte.RegZSF3, 0x0000_0AAA)
	require.Equal(t, uint32(0x0AAA), g.ReadRegister(gte.RegZSF3))
	g.WriteRegister(gte.RegOFX, 0x8000_0000)
	require.Equal(t, int32(-0x8000_0000), g.OFX)
}

func TestFlagRegisterWrite(t *testing.T) {
	g := gte.New(nil)
	g.WriteRegister(gte.RegFLAG, 0xFFFF_FFFF)
	require.Equal(t, uint32(0xFFFF_F000), g.ReadRegister(gte.RegFLAG))

	// Colour and IR0 bits do not raise the summary bit.
	g.WriteRegister(gte.RegFLAG, gte.FlagColorRSat|gte.FlagIR0Sat)
	require.Equal(t, uint32(gte.FlagColorRSat|gte.FlagIR0Sat), g.ReadRegister(gte.RegFLAG))

	g.WriteRegister(gte.RegFLAG, gte.FlagDivide)
	require.Equal(t, uint32(gte.FlagDivide|gte.FlagError), g.ReadRegister(gte.RegFLAG))
}

func TestUnknownRegister(t *testing.T) {
	g := gte.New(nil)
	g.WriteRegister(64, 0x1234)
	require.Zero(t, g.ReadRegister(64))
	require.Equal(t, "?", gte.RegisterName(64))
	require.Equal(t, "flag", gte.RegisterName(gte.RegFLAG))
}
