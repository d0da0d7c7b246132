// Package memory provides a reference PlayStation memory map for the CPU
// core: mirrored main RAM, the scratchpad, the BIOS ROM, the cache control
// register and a fallback for the I/O ports.
package memory

import (
	"fmt"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/Urethramancer/psx/cpu"
)

// Device is a memory-mapped peripheral. It receives offsets relative to the
// start of its Range.
type Device = cpu.Bus

// Config holds the options for New.
type Config struct {
	// RAMSize is the installed main RAM. Zero selects RAMSize. It is
	// mirrored across the 8 MiB RAM window.
	RAMSize uint32
	// BIOS is copied into the ROM. It may be shorter than BIOSSize.
	BIOS []byte
	// Logger receives diagnostics. Nil selects the logrus standard logger.
	Logger logrus.FieldLogger
}

type region struct {
	Range
	dev Device
}

// Map is the physical address space. It implements cpu.Bus and is safe for
// concurrent use.
type Map struct {
	mu      sync.Mutex
	regions []region

	RAM        *Block
	Scratchpad *Block
	BIOS       *Block
	IO         *Block

	cacheControl uint32
	log          logrus.FieldLogger
}

// New builds the map with its standard regions.
func New(cfg Config) (*Map, error) {
	if cfg.Logger == nil {
		cfg.Logger = logrus.StandardLogger()
	}
	if cfg.RAMSize == 0 {
		cfg.RAMSize = RAMSize
	}
	if cfg.RAMSize&(cfg.RAMSize-1) != 0 || cfg.RAMSize > RAMRange.Length {
		return nil, fmt.Errorf("invalid RAM size %#x", cfg.RAMSize)
	}
	if len(cfg.BIOS) > BIOSSize {
		return nil, fmt.Errorf("%w: %d bytes", ErrBIOSTooLarge, len(cfg.BIOS))
	}

	log := cfg.Logger.WithField("component", "memory")
	m := &Map{
		RAM:        NewBlock("ram", cfg.RAMSize, log),
		Scratchpad: NewBlock("scratchpad", ScratchpadSize, log),
		BIOS:       NewBlock("bios", BIOSSize, log),
		IO:         NewBlock("io", IORange.Length, log),
		log:        log,
	}
	if err := m.BIOS.Load(0, cfg.BIOS); err != nil {
		return nil, err
	}
	m.BIOS.readOnly = true

	m.regions = []region{
		{RAMRange, m.RAM},
		{ScratchpadRange, m.Scratchpad},
		{BIOSRange, m.BIOS},
		{IORange, &ioPorts{m.IO}},
		{ExpansionRange, openBus{}},
		{CacheControlRange, (*cacheControl)(&m.cacheControl)},
	}
	return m, nil
}

// Attach maps dev over r. Later attachments take precedence over earlier
// ones and over the standard regions.
func (m *Map) Attach(r Range, dev Device) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.regions = append([]region{{r, dev}}, m.regions...)
	m.log.WithField("start", fmt.Sprintf("%08x", r.Start)).Debugf("attached %#x byte device", r.Length)
}

// CacheControl returns the last value written to the cache control register.
func (m *Map) CacheControl() uint32 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.cacheControl
}

// Load copies data into the address space at addr, one byte per request.
// Read-only regions are written through their backing store.
func (m *Map) Load(addr uint32, data []byte) error {
	addr = cpu.Canonicalize(addr)
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, r := range m.regions {
		if !r.Contains(addr) {
			continue
		}
		if b, ok := r.dev.(*Block); ok {
			return b.Load(r.Offset(addr)&(uint32(len(b.data))-1), data)
		}
	}
	return fmt.Errorf("%w: %08x", ErrNotMemory, addr)
}

// lookup finds the device for addr. The caller holds m.mu.
func (m *Map) lookup(addr uint32) (Device, uint32) {
	for _, r := range m.regions {
		if r.Contains(addr) {
			return r.dev, r.Offset(addr)
		}
	}
	return nil, 0
}

func (m *Map) unmapped(op string, addr uint32) {
	m.log.WithField("addr", fmt.Sprintf("%08x", addr)).Warnf("unmapped %s", op)
}

func (m *Map) Read8(addr uint32) uint8 {
	addr = cpu.Canonicalize(addr)
	m.mu.Lock()
	defer m.mu.Unlock()
	dev, off := m.lookup(addr)
	if dev == nil {
		m.unmapped("read8", addr)
		return 0
	}
	return dev.Read8(off)
}

func (m *Map) Read16(addr uint32) uint16 {
	addr = cpu.Canonicalize(addr)
	m.mu.Lock()
	defer m.mu.Unlock()
	dev, off := m.lookup(addr)
	if dev == nil {
		m.unmapped("read16", addr)
		return 0
	}
	return dev.Read16(off)
}

func (m *Map) Read32(addr uint32) uint32 {
	addr = cpu.Canonicalize(addr)
	m.mu.Lock()
	defer m.mu.Unlock()
	dev, off := m.lookup(addr)
	if dev == nil {
		m.unmapped("read32", addr)
		return 0
	}
	return dev.Read32(off)
}

func (m *Map) Write8(addr uint32, v uint8) {
	addr = cpu.Canonicalize(addr)
	m.mu.Lock()
	defer m.mu.Unlock()
	dev, off := m.lookup(addr)
	if dev == nil {
		m.unmapped("write8", addr)
		return
	}
	dev.Write8(off, v)
}

func (m *Map) Write16(addr uint32, v uint16) {
	addr = cpu.Canonicalize(addr)
	m.mu.Lock()
	defer m.mu.Unlock()
	dev, off := m.lookup(addr)
	if dev == nil {
		m.unmapped("write16", addr)
		return
	}
	dev.Write16(off, v)
}

func (m *Map) Write32(addr uint32, v uint32) {
	addr = cpu.Canonicalize(addr)
	m.mu.Lock()
	defer m.mu.Unlock()
	dev, off := m.lookup(addr)
	if dev == nil {
		m.unmapped("write32", addr)
		return
	}
	dev.Write32(off, v)
}
