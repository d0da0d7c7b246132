package bios_test

import (
	"bytes"
	"errors"
	"io"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"

	"github.com/Urethramancer/psx/bios"
	"github.com/Urethramancer/psx/cpu"
	"github.com/Urethramancer/psx/memory"
)

func quiet() logrus.FieldLogger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

func newCPU(t *testing.T, obs cpu.Observer) (*cpu.CPU, *memory.Map) {
	t.Helper()
	m, err := memory.New(memory.Config{Logger: quiet()})
	require.NoError(t, err)
	return cpu.New(m, cpu.Config{Observer: obs, Logger: quiet()}), m
}

// call runs one step at a kernel table entry with t1 and a0 set.
func call(t *testing.T, c *cpu.CPU, table, fn, a0 uint32) {
	t.Helper()
	c.SetReg(cpu.RegT1, fn)
	c.SetReg(cpu.RegA0, a0)
	c.Jump(table)
	require.NoError(t, c.Step())
}

func TestHooksMatchAcrossSegments(t *testing.T) {
	h := bios.NewHooks(quiet())
	var hits []uint32
	h.On(0x800000B0, func(v cpu.View) { hits = append(hits, v.Reg(cpu.RegT1)) })
	h.On(0xB0, func(v cpu.View) { hits = append(hits, 100) })

	c, _ := newCPU(t, h)
	call(t, c, 0xB0, 7, 0)
	call(t, c, 0xA00000B0, 8, 0)
	call(t, c, 0xA0, 9, 0)
	require.Equal(t, []uint32{7, 100, 8, 100}, hits)
}

func TestOnCallSelectsFunction(t *testing.T) {
	h := bios.NewHooks(quiet())
	var n int
	h.OnCall(bios.TableC, 0x12, func(cpu.View) { n++ })

	c, _ := newCPU(t, h)
	call(t, c, 0xC0, 0x12, 0)
	call(t, c, 0xC0, 0x13, 0)
	call(t, c, 0xC0, 0x112, 0)
	require.Equal(t, 2, n)
}

func TestTTY(t *testing.T) {
	var out bytes.Buffer
	h := bios.NewHooks(quiet())
	bios.NewTTY(&out, quiet()).Install(h)

	c, m := newCPU(t, h)
	require.NoError(t, m.Load(0x80001000, []byte("llo\x00ignored")))

	call(t, c, 0xA0, 0x3C, 'H')
	call(t, c, 0xB0, 0x3D, 'e')
	call(t, c, 0xA0, 0x3E, 0x80001000)
	call(t, c, 0xB0, 0x3F, 0x80001000)
	call(t, c, 0xA0, 0x3D, '!')
	require.Equal(t, "Hellollo", out.String())
}

func TestTTYBoundsUnterminatedStrings(t *testing.T) {
	var out bytes.Buffer
	h := bios.NewHooks(quiet())
	bios.NewTTY(&out, quiet()).Install(h)

	c, m := newCPU(t, h)
	require.NoError(t, m.Load(0x80002000, bytes.Repeat([]byte{'x'}, 4096)))
	call(t, c, 0xB0, 0x3F, 0x80002000)
	require.Equal(t, 1024, out.Len())
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, errors.New("closed") }

func TestTTYWriteErrorsDoNotStopTheCPU(t *testing.T) {
	h := bios.NewHooks(quiet())
	bios.NewTTY(failingWriter{}, quiet()).Install(h)
	c, _ := newCPU(t, h)
	call(t, c, 0xA0, 0x3C, 'x')
	require.Equal(t, uint32(0xA4), c.PC)
}

func TestTrace(t *testing.T) {
	tr := bios.NewTrace(3)
	c, m := newCPU(t, tr)
	require.NoError(t, m.Load(0x80010000, cpu.WordsToBytes([]uint32{
		0x24080001, // addiu t0, zero, 1
		0x24090002, // addiu t1, zero, 2
		0x240A0003, // addiu t2, zero, 3
		0x240B0004, // addiu t3, zero, 4
	})))
	c.Jump(0x80010000)

	require.NoError(t, c.Step())
	require.Equal(t, 1, tr.Len())
	require.Equal(t, []bios.Entry{{PC: 0x80010000, Word: 0x24080001}}, tr.Entries())

	require.NoError(t, c.Run(3))
	require.Equal(t, 3, tr.Len())
	e := tr.Entries()
	require.Equal(t, uint32(0x80010004), e[0].PC)
	require.Equal(t, uint32(0x80010008), e[1].PC)
	require.Equal(t, uint32(0x8001000C), e[2].PC)
	require.Equal(t, cpu.OpADDIU, e[2].Instruction().Op)
}

func TestObserversCombine(t *testing.T) {
	var out bytes.Buffer
	h := bios.NewHooks(quiet())
	bios.NewTTY(&out, quiet()).Install(h)
	tr := bios.NewTrace(4)

	c, _ := newCPU(t, cpu.Observers{h, tr})
	call(t, c, 0xA0, 0x3C, 'Z')
	require.Equal(t, "Z", out.String())
	require.Equal(t, uint32(0xA0), tr.Entries()[0].PC)
}
