package memory

import (
	"encoding/binary"
	"fmt"

	"github.com/sirupsen/logrus"
)

// Block is a little-endian byte store addressed by offset. Offsets past the
// end wrap, so a Block smaller than its Range mirrors.
type Block struct {
	name     string
	data     []byte
	readOnly bool
	log      logrus.FieldLogger
}

// NewBlock allocates size bytes. Size must be a power of two.
func NewBlock(name string, size uint32, log logrus.FieldLogger) *Block {
	return &Block{
		name: name,
		data: make([]byte, size),
		log:  log.WithField("block", name),
	}
}

// Bytes exposes the backing store.
func (b *Block) Bytes() []byte {
	return b.data
}

// Load copies data to offset. It ignores the read-only flag.
func (b *Block) Load(offset uint32, data []byte) error {
	if uint64(offset)+uint64(len(data)) > uint64(len(b.data)) {
		return fmt.Errorf("%s: %d bytes at %#x exceed %#x", b.name, len(data), offset, len(b.data))
	}
	copy(b.data[offset:], data)
	return nil
}

func (b *Block) index(offset, size uint32) uint32 {
	return offset & (uint32(len(b.data)) - 1) &^ (size - 1)
}

func (b *Block) Read8(offset uint32) uint8 {
	return b.data[b.index(offset, 1)]
}

func (b *Block) Read16(offset uint32) uint16 {
	return binary.LittleEndian.Uint16(b.data[b.index(offset, 2):])
}

func (b *Block) Read32(offset uint32) uint32 {
	return binary.LittleEndian.Uint32(b.data[b.index(offset, 4):])
}

// writable logs and refuses writes to read-only blocks.
func (b *Block) writable(offset uint32) bool {
	if b.readOnly {
		b.log.WithField("offset", fmt.Sprintf("%06x", offset)).Debug("write to read-only block dropped")
		return false
	}
	return true
}

func (b *Block) Write8(offset uint32, v uint8) {
	if b.writable(offset) {
		b.data[b.index(offset, 1)] = v
	}
}

func (b *Block) Write16(offset uint32, v uint16) {
	if b.writable(offset) {
		binary.LittleEndian.PutUint16(b.data[b.index(offset, 2):], v)
	}
}

func (b *Block) Write32(offset uint32, v uint32) {
	if b.writable(offset) {
		binary.LittleEndian.PutUint32(b.data[b.index(offset, 4):], v)
	}
}
