package gte_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Urethramancer/psx/gte"
)

// cmd builds a command word from an opcode and optional sf/lm bits.
func cmd(op gte.Opcode, sf, lm bool) uint32 {
	w := uint32(op)
	if sf {
		w |= 1 << 19
	}
	if lm {
		w |= 1 << 10
	}
	return w
}

func mvmva(mx, v, cv uint32, sf, lm bool) uint32 {
	return cmd(gte.MVMVA, sf, lm) | mx<<17 | v<<15 | cv<<13
}

var identity = gte.Matrix{{0x1000, 0, 0}, {0, 0x1000, 0}, {0, 0, 0x1000}}

// macIRFlags are the accumulator overflow and IR saturation bits.
const macIRFlags = 0x7FC00000

func run(t *testing.T, g *gte.GTE, word uint32) {
	t.Helper()
	require.NoError(t, g.Execute(word))
}

func TestDecodeCommand(t *testing.T) {
	c := gte.DecodeCommand(0x4A49E012)
	require.Equal(t, gte.MVMVA, c.Op)
	require.True(t, c.SF)
	require.False(t, c.LM)
	require.Equal(t, uint8(0), c.MX)
	require.Equal(t, uint8(3), c.V)
	require.Equal(t, uint8(3), c.CV)
	require.Equal(t, uint(12), c.Shift())
	require.Equal(t, "mvmva mx=0 v=3 cv=3 sf", c.String())

	c = gte.DecodeCommand(0x4A180001)
	require.Equal(t, gte.RTPS, c.Op)
	require.True(t, c.SF)
	require.Equal(t, "rtps sf", c.String())
}

func TestLookup(t *testing.T) {
	op, ok := gte.Lookup("ncdt")
	require.True(t, ok)
	require.Equal(t, gte.NCDT, op)
	_, ok = gte.Lookup("frob")
	require.False(t, ok)
	require.False(t, gte.Opcode(0x02).Valid())
	require.Equal(t, "cop2 02", gte.Opcode(0x02).String())
}

func TestUnknownCommand(t *testing.T) {
	g := gte.New(nil)
	g.FLAG = gte.FlagDivide
	err := g.Execute(0x02)
	require.True(t, errors.Is(err, gte.ErrUnknownCommand))
	require.Equal(t, uint32(gte.FlagDivide), g.FLAG)
}

func TestFlagClearedBeforeEveryCommand(t *testing.T) {
	for op := range gte.Opcode(64) {
		if !op.Valid() {
			continue
		}
		t.Run(op.String(), func(t *testing.T) {
			// Same inputs, once with FLAG clear and once with every
			// writable bit set: the results must match.
			clean := gte.New(nil)
			clean.H = 0x100
			clean.SZ = [4]uint16{0x400, 0x400, 0x400, 0x400}
			dirty := gte.New(nil)
			dirty.H = clean.H
			dirty.SZ = clean.SZ
			dirty.WriteRegister(gte.RegFLAG, 0xFFFFFFFF)

			run(t, clean, uint32(op))
			run(t, dirty, uint32(op))
			require.Equal(t, clean.FLAG, dirty.FLAG)
		})
	}
}

func TestRTPSZeroVertex(t *testing.T) {
	g := gte.New(nil)
	g.RT = identity
	run(t, g, cmd(gte.RTPS, true, false))

	require.Equal(t, [4]int16{0, 0, 0, 0}, g.IR)
	require.Equal(t, int32(0), g.MAC[1])
	require.Equal(t, int32(0), g.MAC[2])
	require.Equal(t, int32(0), g.MAC[3])
	require.Zero(t, g.FLAG&macIRFlags)
	// SZ3 is zero, so the projection divide overflows.
	require.True(t, g.Flag(gte.FlagDivide))
	require.Equal(t, uint16(0), g.SZ[3])
}

func TestRTPSProjection(t *testing.T) {
	g := gte.New(nil)
	g.RT = identity
	g.TR = [3]int32{0, 0, 0x400}
	g.V[0] = gte.Vector{0x100, 0x80, 0}
	g.H = 0x200
	g.OFX = 0x10 << 16
	g.OFY = -0x20 << 16
	g.DQA = 0x100
	g.DQB = 0x10000
	run(t, g, cmd(gte.RTPS, true, false))

	require.Equal(t, [4]int32{g.MAC[0], 0x100, 0x80, 0x400}, g.MAC)
	require.Equal(t, [4]int16{g.IR[0], 0x100, 0x80, 0x400}, g.IR)
	require.Equal(t, uint16(0x400), g.SZ[3])
	// quotient 8000h: SX = 8000h*100h/10000h + 10h, SY = 8000h*80h/10000h - 20h
	require.Equal(t, gte.XY{X: 0x90, Y: 0x20}, g.SXY[2])
	// MAC0 = 8000h*100h + 10000h, IR0 = MAC0/1000h
	require.Equal(t, int32(0x810000), g.MAC[0])
	require.Equal(t, int16(0x810), g.IR[0])
	require.Zero(t, g.FLAG)
}

func TestRTPSIR3FlagFollowsShiftedMAC3(t *testing.T) {
	g := gte.New(nil)
	g.RT = identity
	g.V[0] = gte.Vector{0, 0, 0x7FFF}
	g.TR = [3]int32{0, 0, 0x10}
	g.H = 0x100
	// sf=0: MAC3 = 7FFFh*1000h + 10000h is far outside IR3's range and
	// IR3 saturates, but MAC3 SAR 12 = 800Fh so only then is the flag set.
	run(t, g, cmd(gte.RTPS, false, false))
	require.Equal(t, int16(0x7FFF), g.IR[3])
	require.True(t, g.Flag(gte.FlagIR3Sat))

	g.V[0] = gte.Vector{0, 0, 0x7000}
	g.TR = [3]int32{}
	run(t, g, cmd(gte.RTPS, false, false))
	require.Equal(t, int16(0x7FFF), g.IR[3])
	require.False(t, g.Flag(gte.FlagIR3Sat))
}

func TestRTPSSaturatesScreenCoordinates(t *testing.T) {
	g := gte.New(nil)
	g.RT = identity
	g.V[0] = gte.Vector{0x4000, -0x4000, 0x10}
	g.H = 0x1000
	run(t, g, cmd(gte.RTPS, true, false))

	require.Equal(t, gte.XY{X: 0x3FF, Y: -0x400}, g.SXY[2])
	require.True(t, g.Flag(gte.FlagSX2Sat|gte.FlagSY2Sat|gte.FlagError))
}

func TestRTPTFIFOOrdering(t *testing.T) {
	g := gte.New(nil)
	g.RT = identity
	g.TR = [3]int32{0, 0, 0x400}
	g.H = 0x200
	xs := []int16{0x10, 0x20, 0x30, 0x40, 0x50}
	for _, x := range xs {
		g.V[0] = gte.Vector{x * 2, 0, 0}
		run(t, g, cmd(gte.RTPS, true, false))
	}
	require.Equal(t, int16(0x50), g.SXY[2].X)
	require.Equal(t, int16(0x40), g.SXY[1].X)
	require.Equal(t, int16(0x30), g.SXY[0].X)

	g.V = [3]gte.Vector{{2, 0, 0}, {4, 0, 0}, {6, 0, 0}}
	g.TR = [3]int32{0, 0, 0}
	g.RT = identity
	g.V[0][2], g.V[1][2], g.V[2][2] = 0x100, 0x200, 0x300
	run(t, g, cmd(gte.RTPT, true, false))
	require.Equal(t, [4]uint16{0x400, 0x100, 0x200, 0x300}, g.SZ)
}

func TestNCLIP(t *testing.T) {
	g := gte.New(nil)
	g.SXY = [3]gte.XY{{0, 0}, {10, 0}, {0, 10}}
	run(t, g, cmd(gte.NCLIP, false, false))
	require.Equal(t, int32(100), g.MAC[0])

	g.SXY = [3]gte.XY{{0, 0}, {0, 10}, {10, 0}}
	run(t, g, cmd(gte.NCLIP, false, false))
	require.Equal(t, int32(-100), g.MAC[0])
	require.Zero(t, g.FLAG)

	g.SXY = [3]gte.XY{{-0x8000, -0x8000}, {0x7FFF, -0x8000}, {-0x8000, 0x7FFF}}
	run(t, g, cmd(gte.NCLIP, false, false))
	require.True(t, g.Flag(gte.FlagMAC0Pos|gte.FlagError))
}

func TestOuterProduct(t *testing.T) {
	g := gte.New(nil)
	g.RT = gte.Matrix{{2, 0, 0}, {0, 3, 0}, {0, 0, 4}}
	g.IR = [4]int16{0, 1, 1, 1}
	run(t, g, cmd(gte.OP, false, false))
	require.Equal(t, [4]int16{0, -1, 2, -1}, g.IR)
	require.Zero(t, g.FLAG)

	g.IR = [4]int16{0, 1, 1, 1}
	run(t, g, cmd(gte.OP, false, true))
	require.Equal(t, [4]int16{0, 0, 2, 0}, g.IR)
	require.Equal(t, int32(-1), g.MAC[1])
	require.True(t, g.Flag(gte.FlagIR1Sat|gte.FlagIR3Sat))
	require.False(t, g.Flag(gte.FlagIR2Sat))
}

func TestSQR(t *testing.T) {
	g := gte.New(nil)
	g.IR = [4]int16{0, 2, -3, 0x200}
	run(t, g, cmd(gte.SQR, false, false))
	require.Equal(t, [4]int32{0, 4, 9, 0x40000}, g.MAC)
	require.Equal(t, [4]int16{0, 4, 9, 0x7FFF}, g.IR)
	require.Equal(t, uint32(gte.FlagIR3Sat), g.FLAG)

	g.IR = [4]int16{0, 0x1000, 0x800, 0}
	run(t, g, cmd(gte.SQR, true, false))
	require.Equal(t, [4]int16{0, 0x1000, 0x400, 0}, g.IR)
}

func TestAVSZ(t *testing.T) {
	g := gte.New(nil)
	g.ZSF3 = 0x0AAA
	run(t, g, cmd(gte.AVSZ3, false, false))
	require.Equal(t, int32(0), g.MAC[0])
	require.Equal(t, uint16(0), g.OTZ)
	require.Zero(t, g.FLAG)

	g.ZSF4 = 0x100
	g.SZ = [4]uint16{0x1000, 0x1000, 0x1000, 0x1000}
	run(t, g, cmd(gte.AVSZ4, false, false))
	require.Equal(t, int32(0x400000), g.MAC[0])
	require.Equal(t, uint16(0x400), g.OTZ)

	g.ZSF3 = -1
	run(t, g, cmd(gte.AVSZ3, false, false))
	require.Equal(t, int32(-0x3000), g.MAC[0])
	require.Equal(t, uint16(0), g.OTZ)
	require.True(t, g.Flag(gte.FlagSZ3OTZSat|gte.FlagError))
}

func TestMVMVA(t *testing.T) {
	g := gte.New(nil)
	g.LLM = identity
	g.BK = [3]int32{1, 2, 3}
	g.IR = [4]int16{0, 0x10, 0x20, 0x30}
	run(t, g, mvmva(gte.MatrixLight, gte.VectorIR, gte.TranslationBK, true, false))
	require.Equal(t, [4]int16{0, 0x11, 0x22, 0x33}, g.IR)

	g.V[1] = gte.Vector{-5, 6, 7}
	run(t, g, mvmva(gte.MatrixLight, gte.VectorV1, gte.TranslationNone, true, true))
	require.Equal(t, [4]int16{0, 0, 6, 7}, g.IR)
	require.Equal(t, int32(-5), g.MAC[1])
	require.True(t, g.Flag(gte.FlagIR1Sat))
}

func TestMVMVAFarColorDropsFirstColumn(t *testing.T) {
	g := gte.New(nil)
	g.RT = gte.Matrix{{0x1000, 0x1000, 0}, {0, 0, 0}, {0, 0, 0}}
	g.V[0] = gte.Vector{1, 2, 0}
	run(t, g, mvmva(gte.MatrixRotation, gte.VectorV0, gte.TranslationFC, false, false))
	require.Equal(t, int32(0x2000), g.MAC[1])
	require.Equal(t, int16(0x2000), g.IR[1])
	require.Zero(t, g.FLAG)

	// The dropped partial sum still reaches the IR saturation flag.
	g.FC = [3]int32{0x7FFF, 0, 0}
	run(t, g, mvmva(gte.MatrixRotation, gte.VectorV0, gte.TranslationFC, false, false))
	require.Equal(t, int16(0x2000), g.IR[1])
	require.True(t, g.Flag(gte.FlagIR1Sat))
}

func TestMVMVAReservedMatrix(t *testing.T) {
	g := gte.New(nil)
	g.RGBC = gte.Color{0x10, 0, 0, 0}
	g.IR = [4]int16{0x1000, 0, 0, 0}
	g.RT = gte.Matrix{{0, 0, 0x1000}, {0, 0x800, 0}, {0, 0, 0}}
	g.V[2] = gte.Vector{1, 2, 3}
	run(t, g, mvmva(gte.MatrixReserved, gte.VectorV2, gte.TranslationNone, false, false))
	// row 0: [-R<<4, R<<4, IR0], row 1: RT13 x3, row 2: RT22 x3
	require.Equal(t, int32(-0x100+0x200+0x3000), g.MAC[1])
	require.Equal(t, int32(0x1000*6), g.MAC[2])
	require.Equal(t, int32(0x800*6), g.MAC[3])
}

func TestMACOverflowFlags(t *testing.T) {
	g := gte.New(nil)
	g.RT = gte.Matrix{{0x7FFF, 0, 0}, {-0x8000, 0, 0}, {0, 0, 0}}
	g.TR = [3]int32{0x7FFFFFFF, -0x80000000, 0}
	g.V[0] = gte.Vector{0x7FFF, 0x7FFF, 0}
	run(t, g, mvmva(gte.MatrixRotation, gte.VectorV0, gte.TranslationTR, true, false))
	require.True(t, g.Flag(gte.FlagMAC1Pos))
	require.True(t, g.Flag(gte.FlagMAC2Neg))
	require.False(t, g.Flag(gte.FlagMAC3Pos))
	require.True(t, g.Flag(gte.FlagError))
}

func TestGPFPushesColor(t *testing.T) {
	g := gte.New(nil)
	g.RGBC = gte.Color{0, 0, 0, 0x2C}
	g.IR = [4]int16{0x1000, 0x100, 0x200, 0x7FFF}
	run(t, g, cmd(gte.GPF, true, false))
	require.Equal(t, [4]int32{0, 0x100, 0x200, 0x7FFF}, g.MAC)
	require.Equal(t, gte.Color{0x10, 0x20, 0xFF, 0x2C}, g.RGB[2])
	require.Equal(t, uint32(gte.FlagColorBSat), g.FLAG)

	run(t, g, cmd(gte.GPL, true, false))
	require.Equal(t, [4]int32{0, 0x200, 0x400, 0xFFFE}, g.MAC)
	require.Equal(t, gte.Color{0x10, 0x20, 0xFF, 0x2C}, g.RGB[1])
	require.Equal(t, gte.Color{0x20, 0x40, 0xFF, 0x2C}, g.RGB[2])
}

func TestDPCSFarColorZero(t *testing.T) {
	g := gte.New(nil)
	g.RGBC = gte.Color{0x80, 0x40, 0x20, 0x30}
	run(t, g, cmd(gte.DPCS, true, false))
	require.Equal(t, [4]int32{0, 0x800, 0x400, 0x200}, g.MAC)
	require.Equal(t, gte.Color{0x80, 0x40, 0x20, 0x30}, g.RGB[2])
	require.Zero(t, g.FLAG)
}

func TestDPCTReadsOldestFIFOEntry(t *testing.T) {
	g := gte.New(nil)
	g.RGB = [3]gte.Color{{1, 1, 1, 0}, {2, 2, 2, 0}, {3, 3, 3, 0}}
	g.RGBC[3] = 0x40
	run(t, g, cmd(gte.DPCT, true, false))
	require.Equal(t, [3]gte.Color{{1, 1, 1, 0x40}, {2, 2, 2, 0x40}, {3, 3, 3, 0x40}}, g.RGB)
}

func TestINTPL(t *testing.T) {
	g := gte.New(nil)
	g.IR = [4]int16{0x1000, 0x100, 0x200, 0x300}
	g.FC = [3]int32{0x10, 0x20, 0x30}
	run(t, g, cmd(gte.INTPL, true, false))
	require.Equal(t, [4]int32{0, 0x10, 0x20, 0x30}, g.MAC)
	require.Equal(t, gte.Color{1, 2, 3, 0}, g.RGB[2])
}

func TestCC(t *testing.T) {
	g := gte.New(nil)
	g.LCM = identity
	g.IR = [4]int16{0, 0x800, 0x800, 0x800}
	g.RGBC = gte.Color{0xFF, 0x80, 0x10, 0x2C}
	run(t, g, cmd(gte.CC, true, false))
	require.Equal(t, [4]int32{0, 0x7F8, 0x400, 0x80}, g.MAC)
	require.Equal(t, gte.Color{0x7F, 0x40, 0x08, 0x2C}, g.RGB[2])
	require.Zero(t, g.FLAG)
}

func TestNCSAndNCT(t *testing.T) {
	g := gte.New(nil)
	g.LLM = identity
	g.LCM = identity
	g.BK = [3]int32{0x10, 0x20, 0x30}
	g.V = [3]gte.Vector{{0x100, 0x200, 0x300}, {0x110, 0x210, 0x310}, {0x120, 0x220, 0x320}}
	run(t, g, cmd(gte.NCS, true, true))
	require.Equal(t, [4]int16{0, 0x110, 0x220, 0x330}, g.IR)
	require.Equal(t, gte.Color{0x11, 0x22, 0x33, 0}, g.RGB[2])

	run(t, g, cmd(gte.NCT, true, true))
	require.Equal(t, gte.Color{0x11, 0x22, 0x33, 0}, g.RGB[0])
	require.Equal(t, gte.Color{0x12, 0x23, 0x34, 0}, g.RGB[1])
	require.Equal(t, gte.Color{0x13, 0x24, 0x35, 0}, g.RGB[2])
}

func TestNCCSAndNCDS(t *testing.T) {
	g := gte.New(nil)
	g.LLM = identity
	g.LCM = identity
	g.V[0] = gte.Vector{0x800, 0x800, 0x800}
	g.RGBC = gte.Color{0xFF, 0x80, 0x10, 0}
	run(t, g, cmd(gte.NCCS, true, true))
	require.Equal(t, gte.Color{0x7F, 0x40, 0x08, 0}, g.RGB[2])

	// With IR0 = 0 depth cueing leaves the colour untouched.
	g.IR[0] = 0
	run(t, g, cmd(gte.NCDS, true, true))
	require.Equal(t, gte.Color{0x7F, 0x40, 0x08, 0}, g.RGB[2])

	// With IR0 = 1000h the result is the far colour.
	g.FC = [3]int32{0x100, 0x200, 0x300}
	g.IR[0] = 0x1000
	run(t, g, cmd(gte.NCDS, true, true))
	require.Equal(t, gte.Color{0x10, 0x20, 0x30, 0}, g.RGB[2])
}

func TestCDPAndDCPL(t *testing.T) {
	g := gte.New(nil)
	g.LCM = identity
	g.IR = [4]int16{0, 0x1000, 0x1000, 0x1000}
	g.RGBC = gte.Color{0x40, 0x50, 0x60, 0}
	run(t, g, cmd(gte.CDP, true, false))
	require.Equal(t, gte.Color{0x40, 0x50, 0x60, 0}, g.RGB[2])

	g.IR = [4]int16{0, 0x1000, 0x800, 0}
	run(t, g, cmd(gte.DCPL, true, false))
	require.Equal(t, gte.Color{0x40, 0x28, 0, 0}, g.RGB[2])
}

func TestEncodeCanonicalWords(t *testing.T) {
	words := []uint32{
		0x0180001, 0x1400006, 0x170000C, 0x0780010, 0x0980011, 0x0400012,
		0x0E80013, 0x1280014, 0x0F80016, 0x108001B, 0x138001C, 0x0C8001E,
		0x0D80020, 0x0A00428, 0x0680029, 0x0F8002A, 0x158002D, 0x168002E,
		0x0280030, 0x190003D, 0x1A0003E, 0x118003F,
	}
	for _, w := range words {
		c := gte.DecodeCommand(w)
		require.True(t, c.Op.Valid(), "%07x", w)
		require.Equal(t, w, c.Encode(), "%07x", w)
	}

	c := gte.Command{Op: gte.MVMVA, SF: true, LM: true, MX: gte.MatrixLight, V: gte.VectorIR, CV: gte.TranslationNone}
	require.Equal(t, uint32(0x04BE412), c.Encode())
	c.Raw = c.Encode()
	require.Equal(t, c, gte.DecodeCommand(c.Raw))
}
