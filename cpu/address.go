package cpu

// Bus is the memory interface the core issues requests on. Addresses are
// physical: the core canonicalizes every address before a request.
type Bus interface {
	Read8(addr uint32) uint8
	Read16(addr uint32) uint16
	Read32(addr uint32) uint32
	Write8(addr uint32, v uint8)
	Write16(addr uint32, v uint16)
	Write32(addr uint32, v uint32)
}

// Coprocessor is the register contract shared by COP0 and the GTE.
// Indices 0..31 are data registers, 32..63 control registers.
type Coprocessor interface {
	ReadRegister(index uint32) uint32
	WriteRegister(index, value uint32)
}

// Segment boundaries.
const (
	KUSEG = 0x00000000
	KSEG0 = 0x80000000
	KSEG1 = 0xA0000000
	KSEG2 = 0xC0000000
)

// segmentMask is indexed by the top three address bits. KSEG0 drops bit 31,
// KSEG1 drops bits 31..29, KUSEG and KSEG2 pass through.
var segmentMask = [8]uint32{
	0xFFFFFFFF, 0xFFFFFFFF, 0xFFFFFFFF, 0xFFFFFFFF,
	0x7FFFFFFF,
	0x1FFFFFFF,
	0xFFFFFFFF, 0xFFFFFFFF,
}

// Canonicalize maps a virtual address to the physical address seen by the bus.
func Canonicalize(addr uint32) uint32 {
	return addr & segmentMask[addr>>29]
}

// Kernel reports whether addr lies in the kernel segments.
func Kernel(addr uint32) bool {
	return addr >= KSEG0
}

// effective computes rs + offset for a load or store of size bytes and
// checks alignment and the user-mode segment restriction.
func (c *CPU) effective(in Instruction, size uint32, code ExceptionCode) (uint32, error) {
	addr := c.Reg(in.Word.Rs()) + in.Word.ImmSE()
	if addr&(size-1) != 0 || (c.COP0.Status().KUc() && Kernel(addr)) {
		return 0, &Exception{Code: code, BadVaddr: addr}
	}
	return addr, nil
}
