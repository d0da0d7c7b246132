package memory

import (
	"errors"
	"fmt"
)

var (
	// ErrBIOSTooLarge is returned when the BIOS image exceeds the ROM.
	ErrBIOSTooLarge = errors.New("BIOS image larger than 512 KiB")
	// ErrNotMemory is returned by Load for addresses without a backing store.
	ErrNotMemory = errors.New("address is not backed by memory")
)

// ioPorts stands in for the peripherals. Writes are kept so the BIOS reads
// back what it configured.
type ioPorts struct {
	*Block
}

func (p *ioPorts) trace(offset, v uint32) {
	p.log.WithField("port", fmt.Sprintf("%08x", IORange.Start+offset)).Debugf("io write %08x", v)
}

func (p *ioPorts) Write8(offset uint32, v uint8) {
	p.trace(offset, uint32(v))
	p.Block.Write8(offset, v)
}

func (p *ioPorts) Write16(offset uint32, v uint16) {
	p.trace(offset, uint32(v))
	p.Block.Write16(offset, v)
}

func (p *ioPorts) Write32(offset uint32, v uint32) {
	p.trace(offset, v)
	p.Block.Write32(offset, v)
}

// openBus is the unpopulated expansion port. Reads float high.
type openBus struct{}

func (openBus) Read8(uint32) uint8     { return 0xFF }
func (openBus) Read16(uint32) uint16   { return 0xFFFF }
func (openBus) Read32(uint32) uint32   { return 0xFFFFFFFF }
func (openBus) Write8(uint32, uint8)   {}
func (openBus) Write16(uint32, uint16) {}
func (openBus) Write32(uint32, uint32) {}

// cacheControl is the single register at FFFE0130.
type cacheControl uint32

func (c *cacheControl) Read8(offset uint32) uint8   { return uint8(*c >> (8 * (offset & 3))) }
func (c *cacheControl) Read16(offset uint32) uint16 { return uint16(*c >> (8 * (offset & 2))) }
func (c *cacheControl) Read32(uint32) uint32        { return uint32(*c) }

func (c *cacheControl) Write8(offset uint32, v uint8) {
	shift := 8 * (offset & 3)
	*c = *c&^(0xFF<<shift) | cacheControl(v)<<shift
}

func (c *cacheControl) Write16(offset uint32, v uint16) {
	shift := 8 * (offset & 2)
	*c = *c&^(0xFFFF<<shift) | cacheControl(v)<<shift
}

func (c *cacheControl) Write32(_ uint32, v uint32) {
	*c = cacheControl(v)
}
