package cpu

// Word is a raw 32-bit instruction word.
type Word uint32

// Opcode returns the primary opcode, bits 31..26.
func (w Word) Opcode() uint32 { return uint32(w) >> 26 }

// Rs returns bits 25..21. For coprocessor instructions this is the format.
func (w Word) Rs() uint32 { return uint32(w) >> 21 & 0x1F }

// Rt returns bits 20..16.
func (w Word) Rt() uint32 { return uint32(w) >> 16 & 0x1F }

// Rd returns bits 15..11.
func (w Word) Rd() uint32 { return uint32(w) >> 11 & 0x1F }

// Shamt returns the shift amount, bits 10..6.
func (w Word) Shamt() uint32 { return uint32(w) >> 6 & 0x1F }

// Funct returns bits 5..0.
func (w Word) Funct() uint32 { return uint32(w) & 0x3F }

// Imm returns the zero-extended 16-bit immediate.
func (w Word) Imm() uint32 { return uint32(w) & 0xFFFF }

// ImmSE returns the sign-extended 16-bit immediate.
func (w Word) ImmSE() uint32 { return uint32(int32(int16(w))) }

// Target returns the 26-bit jump target field.
func (w Word) Target() uint32 { return uint32(w) & 0x3FFFFFF }

// CopNum returns the coprocessor number, bits 27..26.
func (w Word) CopNum() uint8 { return uint8(uint32(w) >> 26 & 3) }

// Command returns the 25-bit coprocessor command, bits 24..0.
func (w Word) Command() uint32 { return uint32(w) & 0x1FFFFFF }

// Shape classifies the operand layout of an instruction.
type Shape uint8

// Instruction shapes.
const (
	ShapeInvalid Shape = iota
	ShapeRegister
	ShapeImmediate
	ShapeJump
	ShapeCoprocessor
)

// Handler executes one decoded instruction. A trap is reported by
// returning an *Exception before any architectural state is changed.
type Handler func(c *CPU, in Instruction) error

// Instruction is a decoded instruction word bound to its handler.
type Instruction struct {
	Word    Word
	Op      Op
	Shape   Shape
	Cop     uint8
	Handler Handler
}

// Decode turns a 32-bit word into an Instruction. Words that do not map
// to an operation decode to OpInvalid with the invalid handler; Decode
// never fails and is safe for concurrent use.
func Decode(word uint32) Instruction {
	w := Word(word)
	var e entry
	switch op := w.Opcode(); {
	case op == OPSPECIAL:
		e = special[w.Funct()]
	case op == OPREGIMM:
		e = regimm[w.Rt()]
	case op >= OPCOP0 && op <= OPCOP3:
		e = decodeCop(w)
	default:
		e = other[op]
	}

	if e.run == nil {
		return Instruction{Word: w, Op: OpInvalid, Shape: ShapeInvalid, Handler: (*CPU).opInvalid}
	}

	in := Instruction{Word: w, Op: e.op, Shape: e.shape, Handler: e.run}
	if e.shape == ShapeCoprocessor || e.op == OpLWC || e.op == OpSWC {
		in.Cop = w.CopNum()
	}
	return in
}

// decodeCop selects the entry for a COPn word from its format field.
func decodeCop(w Word) entry {
	n := w.CopNum()
	format := w.Rs()
	if format < COPCO {
		return copFormat[format]
	}
	switch {
	case n == 0 && w.Funct() == FNRFE:
		return rfe
	case n == 2:
		return gteTable[w.Funct()]
	}
	return entry{}
}
