// Package gte implements the PlayStation geometry transformation engine,
// the fixed-point vector coprocessor wired to the CPU as COP2.
//
// The engine owns 64 registers: 32 data registers (vertices, colours,
// intermediate IR values, the screen XY/Z and colour FIFOs, the MAC
// accumulators) and 32 control registers (rotation, light and light-colour
// matrices, translation and colour vectors, projection constants and FLAG).
// Commands are issued with Execute and operate entirely on this state.
package gte

import (
	"github.com/sirupsen/logrus"
)

// Vector is a 3-component 16-bit vector (VX, VY, VZ).
type Vector [3]int16

// Matrix is a 3x3 matrix of 1.3.12 fixed-point entries, row major.
type Matrix [3][3]int16

// XY is one screen coordinate pair of the SXY FIFO.
type XY struct {
	X, Y int16
}

// Color is an RGB triple plus the GPU command code byte.
type Color [4]uint8

// GTE holds the complete coprocessor 2 register state.
type GTE struct {
	// V are the three model vertices VXY0/VZ0 .. VXY2/VZ2.
	V [3]Vector
	// RGBC is the input colour and GPU code.
	RGBC Color
	// OTZ is the average Z value used for ordering tables.
	OTZ uint16
	// IR holds IR0..IR3.
	IR [4]int16
	// SXY is the screen XY FIFO, SXY[2] being the newest entry.
	SXY [3]XY
	// SZ is the screen Z FIFO, SZ[3] being the newest entry.
	SZ [4]uint16
	// RGB is the colour FIFO, RGB[2] being the newest entry.
	RGB [3]Color
	// RES1 is the prohibited data register 23. It keeps whatever is written.
	RES1 uint32
	// MAC holds MAC0..MAC3.
	MAC [4]int32
	// LZCS is the leading zero count source; LZCR its result.
	LZCS uint32
	LZCR uint32

	// RT is the rotation matrix and TR the translation vector.
	RT Matrix
	TR [3]int32
	// LLM is the light source matrix.
	LLM Matrix
	// BK is the background colour.
	BK [3]int32
	// LCM is the light colour matrix.
	LCM Matrix
	// FC is the far colour.
	FC [3]int32
	// OFX and OFY are the screen offsets (16.16).
	OFX, OFY int32
	// H is the projection plane distance.
	H uint16
	// DQA and DQB are the depth cueing coefficient and offset.
	DQA int16
	DQB int32
	// ZSF3 and ZSF4 are the AVSZ3/AVSZ4 scale factors.
	ZSF3, ZSF4 int16
	// FLAG is the calculation error register.
	FLAG uint32

	log logrus.FieldLogger
}

// New returns a GTE with all registers cleared. A nil logger selects the
// logrus standard logger.
func New(log logrus.FieldLogger) *GTE {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &GTE{log: log.WithField("component", "gte")}
}

// Reset clears every register.
func (g *GTE) Reset() {
	log := g.log
	*g = GTE{log: log}
}

// Flag reports whether all bits of mask are set in FLAG.
func (g *GTE) Flag(mask uint32) bool {
	return g.FLAG&mask == mask
}
