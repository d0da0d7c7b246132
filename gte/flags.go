package gte

// FLAG register bits. Guest software reads these positions directly.
const (
	FlagIR0Sat    = 1 << 12 // IR0 saturated to 0..+1000h
	FlagSY2Sat    = 1 << 13 // SY2 saturated to -400h..+3FFh
	FlagSX2Sat    = 1 << 14 // SX2 saturated to -400h..+3FFh
	FlagMAC0Neg   = 1 << 15 // MAC0 result below -2^31
	FlagMAC0Pos   = 1 << 16 // MAC0 result above 2^31-1
	FlagDivide    = 1 << 17 // divide overflow, quotient forced to 1FFFFh
	FlagSZ3OTZSat = 1 << 18 // SZ3 or OTZ saturated to 0..FFFFh
	FlagColorBSat = 1 << 19 // colour FIFO B saturated to 0..FFh
	FlagColorGSat = 1 << 20 // colour FIFO G saturated to 0..FFh
	FlagColorRSat = 1 << 21 // colour FIFO R saturated to 0..FFh
	FlagIR3Sat    = 1 << 22 // IR3 saturated
	FlagIR2Sat    = 1 << 23 // IR2 saturated
	FlagIR1Sat    = 1 << 24 // IR1 saturated
	FlagMAC3Neg   = 1 << 25 // MAC3 result below -2^43
	FlagMAC2Neg   = 1 << 26 // MAC2 result below -2^43
	FlagMAC1Neg   = 1 << 27 // MAC1 result below -2^43
	FlagMAC3Pos   = 1 << 28 // MAC3 result above 2^43-1
	FlagMAC2Pos   = 1 << 29 // MAC2 result above 2^43-1
	FlagMAC1Pos   = 1 << 30 // MAC1 result above 2^43-1
	FlagError     = 1 << 31 // summary: any of bits 30..23 or 18..13

	// flagErrorMask selects the bits summarised by FlagError.
	flagErrorMask = 0x7F87E000
	// flagWritable selects the bits a CTC2 write may set directly.
	flagWritable = 0x7FFFF000
)

var (
	flagMACPos = [4]uint32{FlagMAC0Pos, FlagMAC1Pos, FlagMAC2Pos, FlagMAC3Pos}
	flagMACNeg = [4]uint32{FlagMAC0Neg, FlagMAC1Neg, FlagMAC2Neg, FlagMAC3Neg}
	flagIRSat  = [4]uint32{FlagIR0Sat, FlagIR1Sat, FlagIR2Sat, FlagIR3Sat}
	flagRGBSat = [3]uint32{FlagColorRSat, FlagColorGSat, FlagColorBSat}
)

// setFlag ORs bits into FLAG and keeps the summary bit in step.
func (g *GTE) setFlag(bits uint32) {
	g.FLAG |= bits
	if g.FLAG&flagErrorMask != 0 {
		g.FLAG |= FlagError
	}
}

// setFlagRegister replaces FLAG with the writable bits of v.
func (g *GTE) setFlagRegister(v uint32) {
	g.FLAG = 0
	g.setFlag(v & flagWritable)
}
