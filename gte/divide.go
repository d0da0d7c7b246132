package gte

import "math/bits"

// unrTable is the 257-entry reciprocal seed table of the hardware divider.
var unrTable = func() (t [0x101]uint32) {
	for i := range t {
		v := (0x40000/(i+0x100)+1)/2 - 0x101
		t[i] = uint32(max(v, 0))
	}
	return t
}()

// Divide computes the projection quotient (H * 20000h / SZ3 + 1) / 2 the
// way the GTE does: a table lookup refined by one Newton-Raphson step.
// The result is not an exact division. When h >= 2*sz the divider
// overflows, the quotient is 1FFFFh and overflow is reported. Results
// marginally above 1FFFFh are clamped without reporting overflow.
func Divide(h, sz uint16) (quotient uint32, overflow bool) {
	n, d := uint64(h), uint64(sz)
	if n >= d*2 {
		return 0x1FFFF, true
	}

	z := uint(bits.LeadingZeros16(sz))
	n <<= z
	d <<= z

	u := uint64(unrTable[(d-0x7FC0)>>7]) + 0x101
	d = (0x2000080 - d*u) >> 8
	d = (0x0000080 + d*u) >> 8

	return uint32(min(0x1FFFF, (n*d+0x8000)>>16)), false
}

// divide runs Divide and records an overflow in FLAG.
func (g *GTE) divide(h, sz uint16) uint32 {
	q, overflow := Divide(h, sz)
	if overflow {
		g.setFlag(FlagDivide)
	}
	return q
}
