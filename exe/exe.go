// Package exe reads PS-X EXE executables and loads them for the CPU.
package exe

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"

	"github.com/Urethramancer/psx/cpu"
)

// HeaderSize is the length of the header that precedes the text section.
const HeaderSize = 0x800

// Magic starts every executable.
const Magic = "PS-X EXE"

var (
	// ErrBadMagic is returned for files that do not start with Magic.
	ErrBadMagic = errors.New("not a PS-X EXE")
	// ErrTruncated is returned when the file is shorter than its header says.
	ErrTruncated = errors.New("truncated executable")
)

// Loader is where an executable is copied. memory.Map satisfies it.
type Loader interface {
	Load(addr uint32, data []byte) error
}

// Header is the fixed part of the file.
type Header struct {
	PC          uint32
	GP          uint32
	TextAddr    uint32
	TextSize    uint32
	DataAddr    uint32
	DataSize    uint32
	BSSAddr     uint32
	BSSSize     uint32
	StackBase   uint32
	StackOffset uint32
	// Region is the licence marker, such as "Sony Computer Entertainment
	// Inc. for North America area".
	Region string
}

// raw mirrors the on-disk layout from offset 0x10.
type raw struct {
	PC, GP             uint32
	TextAddr, TextSize uint32
	DataAddr, DataSize uint32
	BSSAddr, BSSSize   uint32
	StackBase          uint32
	StackOffset        uint32
}

// Executable is a parsed file.
type Executable struct {
	Header
	Text []byte
}

// Parse decodes a complete file image.
func Parse(data []byte) (*Executable, error) {
	if len(data) < HeaderSize {
		return nil, fmt.Errorf("%w: %d byte header", ErrTruncated, len(data))
	}
	if string(data[:len(Magic)]) != Magic {
		return nil, ErrBadMagic
	}

	var r raw
	if err := binary.Read(bytes.NewReader(data[0x10:0x38]), binary.LittleEndian, &r); err != nil {
		return nil, fmt.Errorf("header: %w", err)
	}
	x := &Executable{Header: Header{
		PC:          r.PC,
		GP:          r.GP,
		TextAddr:    r.TextAddr,
		TextSize:    r.TextSize,
		DataAddr:    r.DataAddr,
		DataSize:    r.DataSize,
		BSSAddr:     r.BSSAddr,
		BSSSize:     r.BSSSize,
		StackBase:   r.StackBase,
		StackOffset: r.StackOffset,
		Region:      region(data[0x4C:HeaderSize]),
	}}

	end := uint64(HeaderSize) + uint64(x.TextSize)
	if end > uint64(len(data)) {
		return nil, fmt.Errorf("%w: text needs %#x bytes, have %#x", ErrTruncated, x.TextSize, len(data)-HeaderSize)
	}
	x.Text = data[HeaderSize:end]
	return x, nil
}

// Read parses an executable from r.
func Read(r io.Reader) (*Executable, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	return Parse(data)
}

func region(b []byte) string {
	if i := bytes.IndexByte(b, 0); i >= 0 {
		b = b[:i]
	}
	return string(b)
}

// Load copies the text section and clears the BSS.
func (x *Executable) Load(l Loader) error {
	if err := l.Load(x.TextAddr, x.Text); err != nil {
		return fmt.Errorf("text: %w", err)
	}
	if x.BSSSize > 0 {
		if err := l.Load(x.BSSAddr, make([]byte, x.BSSSize)); err != nil {
			return fmt.Errorf("bss: %w", err)
		}
	}
	return nil
}

// Start points c at the entry point with gp set. sp and fp are set when the
// header names a stack.
func (x *Executable) Start(c *cpu.CPU) {
	c.SetReg(cpu.RegGP, x.GP)
	if x.StackBase != 0 {
		sp := x.StackBase + x.StackOffset
		c.SetReg(cpu.RegSP, sp)
		c.SetReg(cpu.RegFP, sp)
	}
	c.Jump(x.PC)
}

// Build assembles a file image around text. It is the inverse of Parse.
func Build(h Header, text []byte) []byte {
	h.TextSize = uint32(len(text)+HeaderSize-1) &^ (HeaderSize - 1)
	out := make([]byte, HeaderSize+int(h.TextSize))
	copy(out, Magic)
	r := raw{
		PC:          h.PC,
		GP:          h.GP,
		TextAddr:    h.TextAddr,
		TextSize:    h.TextSize,
		DataAddr:    h.DataAddr,
		DataSize:    h.DataSize,
		BSSAddr:     h.BSSAddr,
		BSSSize:     h.BSSSize,
		StackBase:   h.StackBase,
		StackOffset: h.StackOffset,
	}
	var buf bytes.Buffer
	// bytes.Buffer writes cannot fail.
	_ = binary.Write(&buf, binary.LittleEndian, r)
	copy(out[0x10:], buf.Bytes())
	copy(out[0x4C:HeaderSize-1], h.Region)
	copy(out[HeaderSize:], text)
	return out
}
