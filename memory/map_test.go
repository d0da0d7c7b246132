package memory_test

import (
	"io"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"

	"github.com/Urethramancer/psx/memory"
)

func quiet() logrus.FieldLogger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

func newMap(t *testing.T, bios []byte) *memory.Map {
	t.Helper()
	m, err := memory.New(memory.Config{BIOS: bios, Logger: quiet()})
	require.NoError(t, err)
	return m
}

func TestRAMMirrorsAndSegments(t *testing.T) {
	m := newMap(t, nil)
	m.Write32(0x00001000, 0xDEADBEEF)

	for _, addr := range []uint32{
		0x00001000, 0x80001000, 0xA0001000,
		0x00201000, 0x00401000, 0x00601000,
	} {
		require.Equal(t, uint32(0xDEADBEEF), m.Read32(addr), "%08x", addr)
	}
	require.Equal(t, uint8(0xEF), m.Read8(0x00001000))
	require.Equal(t, uint8(0xDE), m.Read8(0x80001003))
	require.Equal(t, uint16(0xDEAD), m.Read16(0xA0001002))
}

func TestSmallerRAMMirrorsMore(t *testing.T) {
	m, err := memory.New(memory.Config{RAMSize: 1 << 20, Logger: quiet()})
	require.NoError(t, err)
	m.Write8(0x10, 0x5A)
	require.Equal(t, uint8(0x5A), m.Read8(0x00100010))

	_, err = memory.New(memory.Config{RAMSize: 3 << 20, Logger: quiet()})
	require.Error(t, err)
}

func TestScratchpad(t *testing.T) {
	m := newMap(t, nil)
	m.Write16(0x1F800010, 0x1234)
	require.Equal(t, uint16(0x1234), m.Read16(0x9F800010))
	require.Equal(t, uint16(0x1234), m.Scratchpad.Read16(0x10))
	require.Zero(t, m.Read16(0x00000010))
}

func TestBIOSIsReadOnly(t *testing.T) {
	m := newMap(t, []byte{0x13, 0x00, 0x0B, 0x3C})
	require.Equal(t, uint32(0x3C0B0013), m.Read32(0xBFC00000))
	require.Equal(t, uint32(0x3C0B0013), m.Read32(0x9FC00000))

	m.Write32(0xBFC00000, 0)
	m.Write8(0xBFC00001, 0xFF)
	require.Equal(t, uint32(0x3C0B0013), m.Read32(0xBFC00000))

	_, err := memory.New(memory.Config{BIOS: make([]byte, memory.BIOSSize+1), Logger: quiet()})
	require.ErrorIs(t, err, memory.ErrBIOSTooLarge)
}

func TestCacheControl(t *testing.T) {
	m := newMap(t, nil)
	m.Write32(0xFFFE0130, 0x0001E988)
	require.Equal(t, uint32(0x0001E988), m.CacheControl())
	require.Equal(t, uint32(0x0001E988), m.Read32(0xFFFE0130))

	m.Write8(0xFFFE0131, 0x00)
	require.Equal(t, uint32(0x00010088), m.CacheControl())
	require.Equal(t, uint16(0x0001), m.Read16(0xFFFE0132))
}

func TestIOFallbackKeepsWrites(t *testing.T) {
	m := newMap(t, nil)
	m.Write32(0x1F801060, 0x00000B88)
	require.Equal(t, uint32(0x00000B88), m.Read32(0xBF801060))
	m.Write16(0x1F801C00, 0x7FFF)
	require.Equal(t, uint16(0x7FFF), m.Read16(0x1F801C00))
}

func TestExpansionFloatsHigh(t *testing.T) {
	m := newMap(t, nil)
	require.Equal(t, uint32(0xFFFFFFFF), m.Read32(0x1F000084))
	require.Equal(t, uint8(0xFF), m.Read8(0x1F000000))
	m.Write32(0x1F000000, 0)
	require.Equal(t, uint32(0xFFFFFFFF), m.Read32(0x1F000000))
}

func TestUnmappedReadsZero(t *testing.T) {
	m := newMap(t, nil)
	m.Write32(0x1F900000, 0xFFFFFFFF)
	require.Zero(t, m.Read32(0x1F900000))
	require.Zero(t, m.Read8(0xC0000000))
}

type register struct {
	last  uint32
	reads int
}

func (r *register) Read8(uint32) uint8 {
	r.reads++
	return uint8(r.last)
}

func (r *register) Read16(uint32) uint16 {
	r.reads++
	return uint16(r.last)
}

func (r *register) Read32(off uint32) uint32 {
	r.reads++
	return r.last + off
}

func (r *register) Write8(_ uint32, v uint8)   { r.last = uint32(v) }
func (r *register) Write16(_ uint32, v uint16) { r.last = uint32(v) }
func (r *register) Write32(_ uint32, v uint32) { r.last = v }

func TestAttachOverridesStandardRegions(t *testing.T) {
	m := newMap(t, nil)
	dev := &register{}
	m.Attach(memory.Range{Start: 0x1F801810, Length: 8}, dev)

	m.Write32(0xBF801810, 0x1000)
	require.Equal(t, uint32(0x1000), dev.last)
	require.Equal(t, uint32(0x1004), m.Read32(0x1F801814))
	require.Equal(t, 1, dev.reads)

	// Neighbouring ports still reach the fallback.
	m.Write32(0x1F801818, 0xAB)
	require.Equal(t, uint32(0xAB), m.Read32(0x1F801818))
	require.Equal(t, uint32(0x1000), dev.last)
}

func TestLoad(t *testing.T) {
	m := newMap(t, nil)
	require.NoError(t, m.Load(0x80010000, []byte{1, 2, 3, 4}))
	require.Equal(t, uint32(0x04030201), m.Read32(0x00010000))

	require.NoError(t, m.Load(0xBFC00100, []byte{0xAA}))
	require.Equal(t, uint8(0xAA), m.Read8(0xBFC00100))

	require.ErrorIs(t, m.Load(0x1F000000, []byte{0}), memory.ErrNotMemory)
	require.Error(t, m.Load(0x1F8003FF, []byte{0, 0}))
}

func TestRange(t *testing.T) {
	r := memory.Range{Start: 0xFFFFFFF0, Length: 0x10}
	require.True(t, r.Contains(0xFFFFFFFF))
	require.False(t, r.Contains(0xFFFFFFEF))
	require.Equal(t, uint32(0xF), r.Offset(0xFFFFFFFF))
	require.False(t, memory.ScratchpadRange.Contains(0x1F800400))
}

func TestConcurrentAccess(t *testing.T) {
	m := newMap(t, nil)
	var g errgroup.Group
	for w := range uint32(8) {
		g.Go(func() error {
			base := 0x80000000 + w*0x1000
			for i := uint32(0); i < 256; i++ {
				m.Write32(base+i*4, w<<16|i)
			}
			return nil
		})
	}
	require.NoError(t, g.Wait())
	for w := range uint32(8) {
		require.Equal(t, w<<16|255, m.Read32(w*0x1000+255*4))
	}
}
