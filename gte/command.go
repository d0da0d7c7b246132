package gte

import (
	"errors"
	"fmt"
)

// Opcode is the 6-bit command number in bits 5..0 of a COP2 command word.
type Opcode uint8

// Command opcodes.
const (
	RTPS  Opcode = 0x01
	NCLIP Opcode = 0x06
	OP    Opcode = 0x0C
	DPCS  Opcode = 0x10
	INTPL Opcode = 0x11
	MVMVA Opcode = 0x12
	NCDS  Opcode = 0x13
	CDP   Opcode = 0x14
	NCDT  Opcode = 0x16
	NCCS  Opcode = 0x1B
	CC    Opcode = 0x1C
	NCS   Opcode = 0x1E
	NCT   Opcode = 0x20
	SQR   Opcode = 0x28
	DCPL  Opcode = 0x29
	DPCT  Opcode = 0x2A
	AVSZ3 Opcode = 0x2D
	AVSZ4 Opcode = 0x2E
	RTPT  Opcode = 0x30
	GPF   Opcode = 0x3D
	GPL   Opcode = 0x3E
	NCCT  Opcode = 0x3F
)

// ErrUnknownCommand is returned by Execute for opcodes the GTE lacks.
var ErrUnknownCommand = errors.New("unknown gte command")

// MVMVA operand selectors.
const (
	MatrixRotation   = 0
	MatrixLight      = 1
	MatrixColor      = 2
	MatrixReserved   = 3
	VectorV0         = 0
	VectorV1         = 1
	VectorV2         = 2
	VectorIR         = 3
	TranslationTR    = 0
	TranslationBK    = 1
	TranslationFC    = 2
	TranslationNone  = 3
	commandMask      = 0x3F
	commandSFBit     = 1 << 19
	commandLMBit     = 1 << 10
	commandMXShift   = 17
	commandVShift    = 15
	commandCVShift   = 13
	commandFieldMask = 3
	commandTagShift  = 20
)

// Command is a decoded COP2 command word.
type Command struct {
	Raw uint32
	Op  Opcode
	// SF selects a 12-bit fractional shift of the results.
	SF bool
	// LM clamps IR1..IR3 to non-negative values.
	LM bool
	// MX, V and CV select the MVMVA matrix, vector and translation.
	MX, V, CV uint8
}

// DecodeCommand splits a COP2 command word into its fields.
func DecodeCommand(word uint32) Command {
	return Command{
		Raw: word,
		Op:  Opcode(word & commandMask),
		SF:  word&commandSFBit != 0,
		LM:  word&commandLMBit != 0,
		MX:  uint8(word >> commandMXShift & commandFieldMask),
		V:   uint8(word >> commandVShift & commandFieldMask),
		CV:  uint8(word >> commandCVShift & commandFieldMask),
	}
}

// Shift returns the right shift applied to results: 12 with sf, else 0.
func (c Command) Shift() uint {
	if c.SF {
		return 12
	}
	return 0
}

func (c Command) String() string {
	s := c.Op.String()
	if c.Op == MVMVA {
		s += fmt.Sprintf(" mx=%d v=%d cv=%d", c.MX, c.V, c.CV)
	}
	if c.SF {
		s += " sf"
	}
	if c.LM {
		s += " lm"
	}
	return s
}

type handler func(g *GTE, c Command)

type commandInfo struct {
	name string
	// tag is the value of bits 24..20 that commands are issued with. The
	// hardware ignores it.
	tag uint32
	run handler
}

var commands [64]commandInfo

func init() {
	for op, info := range map[Opcode]commandInfo{
		RTPS:  {"rtps", 0x01, (*GTE).rtps},
		NCLIP: {"nclip", 0x14, (*GTE).nclip},
		OP:    {"op", 0x17, (*GTE).outerProduct},
		DPCS:  {"dpcs", 0x07, (*GTE).dpcs},
		INTPL: {"intpl", 0x09, (*GTE).intpl},
		MVMVA: {"mvmva", 0x04, (*GTE).mvmva},
		NCDS:  {"ncds", 0x0E, (*GTE).ncds},
		CDP:   {"cdp", 0x12, (*GTE).cdp},
		NCDT:  {"ncdt", 0x0F, (*GTE).ncdt},
		NCCS:  {"nccs", 0x10, (*GTE).nccs},
		CC:    {"cc", 0x13, (*GTE).cc},
		NCS:   {"ncs", 0x0C, (*GTE).ncs},
		NCT:   {"nct", 0x0D, (*GTE).nct},
		SQR:   {"sqr", 0x0A, (*GTE).sqr},
		DCPL:  {"dcpl", 0x06, (*GTE).dcpl},
		DPCT:  {"dpct", 0x0F, (*GTE).dpct},
		AVSZ3: {"avsz3", 0x15, (*GTE).avsz3},
		AVSZ4: {"avsz4", 0x16, (*GTE).avsz4},
		RTPT:  {"rtpt", 0x02, (*GTE).rtpt},
		GPF:   {"gpf", 0x19, (*GTE).gpf},
		GPL:   {"gpl", 0x1A, (*GTE).gpl},
		NCCT:  {"ncct", 0x11, (*GTE).ncct},
	} {
		commands[op] = info
	}
}

// Encode builds the 25-bit command field from c. Raw is ignored.
func (c Command) Encode() uint32 {
	w := uint32(c.Op)&commandMask |
		uint32(c.MX&commandFieldMask)<<commandMXShift |
		uint32(c.V&commandFieldMask)<<commandVShift |
		uint32(c.CV&commandFieldMask)<<commandCVShift
	if c.SF {
		w |= commandSFBit
	}
	if c.LM {
		w |= commandLMBit
	}
	if c.Op.Valid() {
		w |= commands[c.Op].tag << commandTagShift
	}
	return w
}

// Valid reports whether op names an implemented command.
func (op Opcode) Valid() bool {
	return int(op) < len(commands) && commands[op].run != nil
}

func (op Opcode) String() string {
	if !op.Valid() {
		return fmt.Sprintf("cop2 %02x", uint8(op))
	}
	return commands[op].name
}

// Lookup returns the opcode with the given mnemonic.
func Lookup(name string) (Opcode, bool) {
	for op, info := range commands {
		if info.run != nil && info.name == name {
			return Opcode(op), true
		}
	}
	return 0, false
}

// Execute runs one command. FLAG is cleared before the command starts and
// collects every overflow and saturation the command raises.
func (g *GTE) Execute(word uint32) error {
	c := DecodeCommand(word)
	if !c.Op.Valid() {
		return fmt.Errorf("%w: %08x", ErrUnknownCommand, word)
	}
	g.FLAG = 0
	commands[c.Op].run(g, c)
	return nil
}
