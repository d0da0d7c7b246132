package gte

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSetIRBoundaries(t *testing.T) {
	tests := []struct {
		in   int32
		lm   bool
		want int16
		sat  bool
	}{
		{-0x8001, false, -0x8000, true},
		{-0x8000, false, -0x8000, false},
		{0, false, 0, false},
		{0x7FFF, false, 0x7FFF, false},
		{0x8000, false, 0x7FFF, true},
		{-1, true, 0, true},
		{0, true, 0, false},
		{0x7FFF, true, 0x7FFF, false},
		{0x8000, true, 0x7FFF, true},
	}
	for i := 1; i <= 3; i++ {
		for _, tc := range tests {
			g := New(nil)
			g.setIR(i, tc.in, tc.lm)
			require.Equal(t, tc.want, g.IR[i], "IR%d in=%d lm=%v", i, tc.in, tc.lm)
			require.Equal(t, tc.sat, g.Flag(flagIRSat[i]), "IR%d in=%d lm=%v", i, tc.in, tc.lm)
			// IR3 saturation is not summarised in bit 31.
			require.Equal(t, tc.sat && i != 3, g.Flag(FlagError))
		}
	}
}

func TestSetIR0(t *testing.T) {
	g := New(nil)
	g.setIR0(0x1001)
	require.Equal(t, int16(0x1000), g.IR[0])
	require.True(t, g.Flag(FlagIR0Sat))
	// IR0 is not part of the error summary.
	require.False(t, g.Flag(FlagError))

	g.FLAG = 0
	g.setIR0(-1)
	require.Equal(t, int16(0), g.IR[0])
	require.True(t, g.Flag(FlagIR0Sat))
}

func TestCheckMAC(t *testing.T) {
	g := New(nil)
	g.checkMAC(1, mac123Max)
	g.checkMAC(2, mac123Min)
	require.Zero(t, g.FLAG)

	g.checkMAC(1, mac123Max+1)
	g.checkMAC(2, mac123Min-1)
	g.checkMAC(0, mac0Max+1)
	g.checkMAC(0, mac0Min-1)
	require.Equal(t, uint32(FlagMAC1Pos|FlagMAC2Neg|FlagMAC0Pos|FlagMAC0Neg|FlagError), g.FLAG)
}

func TestExtendMACWraps(t *testing.T) {
	g := New(nil)
	require.Equal(t, int64(mac123Min), g.extendMAC(3, mac123Max+1))
	require.True(t, g.Flag(FlagMAC3Pos))
	// MAC0 is checked but never wrapped.
	require.Equal(t, int64(mac0Max+1), g.extendMAC(0, mac0Max+1))
}

func TestPushFIFOs(t *testing.T) {
	g := New(nil)
	for i := range int32(5) {
		g.pushSZ(i + 1)
	}
	require.Equal(t, [4]uint16{2, 3, 4, 5}, g.SZ)

	g.pushSZ(0x10000)
	require.Equal(t, uint16(0xFFFF), g.SZ[3])
	require.True(t, g.Flag(FlagSZ3OTZSat))

	g.FLAG = 0
	g.pushSXY(-0x401, 0x400)
	require.Equal(t, XY{-0x400, 0x3FF}, g.SXY[2])
	require.True(t, g.Flag(FlagSX2Sat|FlagSY2Sat|FlagError))
}

func TestPushColor(t *testing.T) {
	g := New(nil)
	g.RGBC = Color{0, 0, 0, 0x30}
	g.MAC = [4]int32{0, -1, 0x7F0, 0x1000}
	g.pushColor()
	require.Equal(t, Color{0, 0x7F, 0xFF, 0x30}, g.RGB[2])
	// Colour saturation is not summarised in bit 31.
	require.Equal(t, uint32(FlagColorRSat|FlagColorBSat), g.FLAG)
}
