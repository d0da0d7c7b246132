package cpu

// ReadU8 reads a byte at a virtual address.
func (c *CPU) ReadU8(addr uint32) uint8 {
	return c.bus.Read8(Canonicalize(addr))
}

// ReadU16 reads a little-endian halfword at a virtual address.
func (c *CPU) ReadU16(addr uint32) uint16 {
	return c.bus.Read16(Canonicalize(addr))
}

// ReadU32 reads a little-endian word at a virtual address.
func (c *CPU) ReadU32(addr uint32) uint32 {
	return c.bus.Read32(Canonicalize(addr))
}

// WriteU8 writes a byte at a virtual address. Writes are dropped while
// the cache is isolated.
func (c *CPU) WriteU8(addr uint32, v uint8) {
	if c.COP0.SR.IsC() {
		return
	}
	c.bus.Write8(Canonicalize(addr), v)
}

// WriteU16 writes a little-endian halfword at a virtual address.
func (c *CPU) WriteU16(addr uint32, v uint16) {
	if c.COP0.SR.IsC() {
		return
	}
	c.bus.Write16(Canonicalize(addr), v)
}

// WriteU32 writes a little-endian word at a virtual address.
func (c *CPU) WriteU32(addr uint32, v uint32) {
	if c.COP0.SR.IsC() {
		return
	}
	c.bus.Write32(Canonicalize(addr), v)
}
