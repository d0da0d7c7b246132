package cpu

import (
	"encoding/binary"
)

// WordsToBytes converts instruction words to little-endian bytes.
func WordsToBytes(words []uint32) []byte {
	out := make([]byte, len(words)*4)
	for i, w := range words {
		binary.LittleEndian.PutUint32(out[i*4:], w)
	}
	return out
}

// BytesToWords interprets bytes as little-endian words. A trailing partial
// word is padded with zeros.
func BytesToWords(b []byte) []uint32 {
	if r := len(b) % 4; r != 0 {
		b = append(b[:len(b):len(b)], make([]byte, 4-r)...)
	}
	out := make([]uint32, len(b)/4)
	for i := range out {
		out[i] = binary.LittleEndian.Uint32(b[i*4:])
	}
	return out
}
