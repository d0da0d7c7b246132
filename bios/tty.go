package bios

import (
	"io"

	"github.com/sirupsen/logrus"

	"github.com/Urethramancer/psx/cpu"
)

// Console output functions of the kernel call tables.
const (
	putcharA = 0x3C
	putsA    = 0x3E
	putcharB = 0x3D
	putsB    = 0x3F
)

// maxString bounds puts so a missing terminator cannot run away.
const maxString = 1024

// TTY copies what programs print through the BIOS to a writer.
type TTY struct {
	w   io.Writer
	log logrus.FieldLogger
	buf []byte
}

// NewTTY writes console output to w.
func NewTTY(w io.Writer, log logrus.FieldLogger) *TTY {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &TTY{w: w, log: log.WithField("component", "bios")}
}

// Install registers the putchar and puts entry points in h.
func (t *TTY) Install(h *Hooks) {
	h.OnCall(TableA, putcharA, t.putchar)
	h.OnCall(TableB, putcharB, t.putchar)
	h.OnCall(TableA, putsA, t.puts)
	h.OnCall(TableB, putsB, t.puts)
}

func (t *TTY) putchar(v cpu.View) {
	t.write([]byte{byte(v.Reg(cpu.RegA0))})
}

func (t *TTY) puts(v cpu.View) {
	t.buf = t.buf[:0]
	addr := v.Reg(cpu.RegA0)
	for range maxString {
		b := v.Read8(addr)
		if b == 0 {
			break
		}
		t.buf = append(t.buf, b)
		addr++
	}
	t.write(t.buf)
}

func (t *TTY) write(p []byte) {
	if _, err := t.w.Write(p); err != nil {
		t.log.WithError(err).Warn("tty write failed")
	}
}
