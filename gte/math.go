package gte

import "golang.org/x/exp/constraints"

// Accumulator ranges. MAC1-3 are 44 bits wide internally, MAC0 is 32.
const (
	mac123Max = 1<<43 - 1
	mac123Min = -(1 << 43)
	mac0Max   = 1<<31 - 1
	mac0Min   = -(1 << 31)
)

// saturate clamps v into [lo, hi] and reports whether it had to.
func saturate[T constraints.Integer](v, lo, hi T) (T, bool) {
	switch {
	case v < lo:
		return lo, true
	case v > hi:
		return hi, true
	}
	return v, false
}

// clamp saturates v and raises flag when it was out of range.
func clamp[T constraints.Signed](g *GTE, v, lo, hi T, flag uint32) T {
	v, out := saturate(v, lo, hi)
	if out {
		g.setFlag(flag)
	}
	return v
}

// checkMAC raises the overflow flag of accumulator i when v does not fit.
// The value itself is returned unchanged.
func (g *GTE) checkMAC(i int, v int64) int64 {
	lo, hi := int64(mac123Min), int64(mac123Max)
	if i == 0 {
		lo, hi = mac0Min, mac0Max
	}
	switch {
	case v > hi:
		g.setFlag(flagMACPos[i])
	case v < lo:
		g.setFlag(flagMACNeg[i])
	}
	return v
}

// extendMAC checks an intermediate sum and wraps it to the accumulator
// width, the way the hardware carries partial sums between additions.
func (g *GTE) extendMAC(i int, v int64) int64 {
	g.checkMAC(i, v)
	if i == 0 {
		return v
	}
	return v << 20 >> 20
}

// setMAC checks v, shifts it right by shift and stores it in MACi.
// The shifted 64-bit value is returned.
func (g *GTE) setMAC(i int, v int64, shift uint) int64 {
	g.checkMAC(i, v)
	v >>= shift
	g.MAC[i] = int32(v)
	return v
}

// setIR saturates v into IR1..IR3: -8000h..7FFFh, or 0..7FFFh with lm.
func (g *GTE) setIR(i int, v int32, lm bool) {
	lo := int32(-0x8000)
	if lm {
		lo = 0
	}
	g.IR[i] = int16(clamp(g, v, lo, 0x7FFF, flagIRSat[i]))
}

// setIR0 saturates v into IR0 (0..1000h).
func (g *GTE) setIR0(v int32) {
	g.IR[0] = int16(clamp(g, v, 0, 0x1000, FlagIR0Sat))
}

// setMACAndIR stores v >> shift in MACi and the saturated result in IRi.
func (g *GTE) setMACAndIR(i int, v int64, shift uint, lm bool) {
	g.setMAC(i, v, shift)
	g.setIR(i, g.MAC[i], lm)
}

// pushSZ shifts the Z FIFO and appends v saturated to 0..FFFFh.
func (g *GTE) pushSZ(v int32) {
	g.SZ[0], g.SZ[1], g.SZ[2] = g.SZ[1], g.SZ[2], g.SZ[3]
	g.SZ[3] = uint16(clamp(g, v, 0, 0xFFFF, FlagSZ3OTZSat))
}

// pushSXY shifts the XY FIFO and appends (x, y) saturated to -400h..3FFh.
func (g *GTE) pushSXY(x, y int64) {
	g.SXY[0], g.SXY[1] = g.SXY[1], g.SXY[2]
	g.SXY[2] = XY{
		X: int16(clamp(g, x, -0x400, 0x3FF, FlagSX2Sat)),
		Y: int16(clamp(g, y, -0x400, 0x3FF, FlagSY2Sat)),
	}
}

// pushColor shifts the colour FIFO and appends MAC1..3 / 16 saturated to
// 0..FFh, carrying the code byte over from RGBC.
func (g *GTE) pushColor() {
	var c Color
	for i := range 3 {
		c[i] = uint8(clamp(g, g.MAC[i+1]>>4, 0, 0xFF, flagRGBSat[i]))
	}
	c[3] = g.RGBC[3]
	g.RGB[0], g.RGB[1], g.RGB[2] = g.RGB[1], g.RGB[2], c
}

// setOTZ saturates v into OTZ (0..FFFFh).
func (g *GTE) setOTZ(v int32) {
	g.OTZ = uint16(clamp(g, v, 0, 0xFFFF, FlagSZ3OTZSat))
}

// irVector returns IR1..IR3 as a vector operand.
func (g *GTE) irVector() Vector {
	return Vector{g.IR[1], g.IR[2], g.IR[3]}
}

// rgbTimesIR returns [R*IR1, G*IR2, B*IR3] SHL 4.
func (g *GTE) rgbTimesIR() [3]int64 {
	var out [3]int64
	for i := range 3 {
		out[i] = int64(g.RGBC[i]) * int64(g.IR[i+1]) << 4
	}
	return out
}
