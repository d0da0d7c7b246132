package memory

// Range is a window of physical addresses [Start, Start+Length).
type Range struct {
	Start  uint32
	Length uint32
}

// Contains reports whether addr falls inside r.
func (r Range) Contains(addr uint32) bool {
	return addr >= r.Start && addr-r.Start < r.Length
}

// Offset returns addr relative to Start. The caller checks Contains first.
func (r Range) Offset(addr uint32) uint32 {
	return addr - r.Start
}

// Physical regions of the console.
var (
	RAMRange          = Range{0x00000000, 0x00800000}
	ExpansionRange    = Range{0x1F000000, 0x00800000}
	ScratchpadRange   = Range{0x1F800000, 0x00000400}
	IORange           = Range{0x1F801000, 0x00002000}
	BIOSRange         = Range{0x1FC00000, BIOSSize}
	CacheControlRange = Range{0xFFFE0130, 4}
)

// Sizes of the backing stores.
const (
	RAMSize        = 2 << 20
	ScratchpadSize = 1 << 10
	BIOSSize       = 512 << 10
)
