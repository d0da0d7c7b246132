package gte

import "math/bits"

// Register indices of the uniform coprocessor contract. Data registers are
// 0..31, control registers 32..63.
const (
	RegVXY0 = iota
	RegVZ0
	RegVXY1
	RegVZ1
	RegVXY2
	RegVZ2
	RegRGBC
	RegOTZ
	RegIR0
	RegIR1
	RegIR2
	RegIR3
	RegSXY0
	RegSXY1
	RegSXY2
	RegSXYP
	RegSZ0
	RegSZ1
	RegSZ2
	RegSZ3
	RegRGB0
	RegRGB1
	RegRGB2
	RegRES1
	RegMAC0
	RegMAC1
	RegMAC2
	RegMAC3
	RegIRGB
	RegORGB
	RegLZCS
	RegLZCR

	RegRT11RT12
	RegRT13RT21
	RegRT22RT23
	RegRT31RT32
	RegRT33
	RegTRX
	RegTRY
	RegTRZ
	RegL11L12
	RegL13L21
	RegL22L23
	RegL31L32
	RegL33
	RegRBK
	RegGBK
	RegBBK
	RegLR1LR2
	RegLR3LG1
	RegLG2LG3
	RegLB1LB2
	RegLB3
	RegRFC
	RegGFC
	RegBFC
	RegOFX
	RegOFY
	RegH
	RegDQA
	RegDQB
	RegZSF3
	RegZSF4
	RegFLAG

	// NumRegisters is the size of the register file.
	NumRegisters
)

var registerNames = [NumRegisters]string{
	"vxy0", "vz0", "vxy1", "vz1", "vxy2", "vz2", "rgbc", "otz",
	"ir0", "ir1", "ir2", "ir3", "sxy0", "sxy1", "sxy2", "sxyp",
	"sz0", "sz1", "sz2", "sz3", "rgb0", "rgb1", "rgb2", "res1",
	"mac0", "mac1", "mac2", "mac3", "irgb", "orgb", "lzcs", "lzcr",
	"rt11rt12", "rt13rt21", "rt22rt23", "rt31rt32", "rt33", "trx", "try", "trz",
	"l11l12", "l13l21", "l22l23", "l31l32", "l33", "rbk", "gbk", "bbk",
	"lr1lr2", "lr3lg1", "lg2lg3", "lb1lb2", "lb3", "rfc", "gfc", "bfc",
	"ofx", "ofy", "h", "dqa", "dqb", "zsf3", "zsf4", "flag",
}

// RegisterName returns the conventional name of register index i.
func RegisterName(i uint32) string {
	if i >= NumRegisters {
		return "?"
	}
	return registerNames[i]
}

func pack16(lo, hi int16) uint32 {
	return uint32(uint16(lo)) | uint32(uint16(hi))<<16
}

func unpack16(v uint32) (lo, hi int16) {
	return int16(v), int16(v >> 16)
}

func packColor(c Color) uint32 {
	return uint32(c[0]) | uint32(c[1])<<8 | uint32(c[2])<<16 | uint32(c[3])<<24
}

func unpackColor(v uint32) Color {
	return Color{uint8(v), uint8(v >> 8), uint8(v >> 16), uint8(v >> 24)}
}

// readMatrix returns the packed word at offset 0..4 of a matrix block.
// Entries are stored pairwise in row-major order; offset 4 holds the last
// entry alone, sign extended.
func readMatrix(m *Matrix, off uint32) uint32 {
	if off == 4 {
		return uint32(int32(m[2][2]))
	}
	a, b := off*2, off*2+1
	return pack16(m[a/3][a%3], m[b/3][b%3])
}

func writeMatrix(m *Matrix, off, v uint32) {
	if off == 4 {
		m[2][2] = int16(v)
		return
	}
	a, b := off*2, off*2+1
	m[a/3][a%3], m[b/3][b%3] = unpack16(v)
}

// orgb converts IR1..IR3 into a 15-bit colour, each channel IR/80h
// saturated to 0..1Fh.
func (g *GTE) orgb() uint32 {
	var out uint32
	for i := range 3 {
		c, _ := saturate(int32(g.IR[i+1])>>7, 0, 0x1F)
		out |= uint32(c) << (5 * i)
	}
	return out
}

// setLZCS stores v and counts its leading sign bits into LZCR.
func (g *GTE) setLZCS(v uint32) {
	g.LZCS = v
	if int32(v) < 0 {
		v = ^v
	}
	g.LZCR = uint32(bits.LeadingZeros32(v))
}

// ReadRegister returns register i (0..63) as seen by MFC2, CFC2 and SWC2.
func (g *GTE) ReadRegister(i uint32) uint32 {
	switch {
	case i < 32:
		return g.readData(i)
	case i < NumRegisters:
		return g.readControl(i - 32)
	}
	g.log.WithField("index", i).Debug("read from unknown register")
	return 0
}

// WriteRegister stores v in register i (0..63) as MTC2, CTC2 and LWC2 do.
func (g *GTE) WriteRegister(i, v uint32) {
	switch {
	case i < 32:
		g.writeData(i, v)
	case i < NumRegisters:
		g.writeControl(i-32, v)
	default:
		g.log.WithField("index", i).Debug("write to unknown register dropped")
	}
}

func (g *GTE) readData(i uint32) uint32 {
	switch i {
	case RegVXY0, RegVXY1, RegVXY2:
		v := &g.V[i/2]
		return pack16(v[0], v[1])
	case RegVZ0, RegVZ1, RegVZ2:
		return uint32(int32(g.V[i/2][2]))
	case RegRGBC:
		return packColor(g.RGBC)
	case RegOTZ:
		return uint32(g.OTZ)
	case RegIR0, RegIR1, RegIR2, RegIR3:
		return uint32(int32(g.IR[i-RegIR0]))
	case RegSXY0, RegSXY1, RegSXY2:
		xy := g.SXY[i-RegSXY0]
		return pack16(xy.X, xy.Y)
	case RegSXYP:
		return pack16(g.SXY[2].X, g.SXY[2].Y)
	case RegSZ0, RegSZ1, RegSZ2, RegSZ3:
		return uint32(g.SZ[i-RegSZ0])
	case RegRGB0, RegRGB1, RegRGB2:
		return packColor(g.RGB[i-RegRGB0])
	case RegRES1:
		return g.RES1
	case RegMAC0, RegMAC1, RegMAC2, RegMAC3:
		return uint32(g.MAC[i-RegMAC0])
	case RegIRGB, RegORGB:
		return g.orgb()
	case RegLZCS:
		return g.LZCS
	case RegLZCR:
		return g.LZCR
	}
	return 0
}

func (g *GTE) writeData(i, v uint32) {
	switch i {
	case RegVXY0, RegVXY1, RegVXY2:
		x, y := unpack16(v)
		g.V[i/2][0], g.V[i/2][1] = x, y
	case RegVZ0, RegVZ1, RegVZ2:
		g.V[i/2][2] = int16(v)
	case RegRGBC:
		g.RGBC = unpackColor(v)
	case RegOTZ:
		g.OTZ = uint16(v)
	case RegIR0, RegIR1, RegIR2, RegIR3:
		g.IR[i-RegIR0] = int16(v)
	case RegSXY0, RegSXY1, RegSXY2:
		x, y := unpack16(v)
		g.SXY[i-RegSXY0] = XY{x, y}
	case RegSXYP:
		x, y := unpack16(v)
		g.SXY[0], g.SXY[1], g.SXY[2] = g.SXY[1], g.SXY[2], XY{x, y}
	case RegSZ0, RegSZ1, RegSZ2, RegSZ3:
		g.SZ[i-RegSZ0] = uint16(v)
	case RegRGB0, RegRGB1, RegRGB2:
		g.RGB[i-RegRGB0] = unpackColor(v)
	case RegRES1:
		g.RES1 = v
	case RegMAC0, RegMAC1, RegMAC2, RegMAC3:
		g.MAC[i-RegMAC0] = int32(v)
	case RegIRGB:
		for c := range 3 {
			g.IR[c+1] = int16((v >> (5 * c) & 0x1F) << 7)
		}
	case RegORGB, RegLZCR:
		// read only
	case RegLZCS:
		g.setLZCS(v)
	}
}

func (g *GTE) readControl(i uint32) uint32 {
	switch r := i + 32; r {
	case RegRT11RT12, RegRT13RT21, RegRT22RT23, RegRT31RT32, RegRT33:
		return readMatrix(&g.RT, r-RegRT11RT12)
	case RegTRX, RegTRY, RegTRZ:
		return uint32(g.TR[r-RegTRX])
	case RegL11L12, RegL13L21, RegL22L23, RegL31L32, RegL33:
		return readMatrix(&g.LLM, r-RegL11L12)
	case RegRBK, RegGBK, RegBBK:
		return uint32(g.BK[r-RegRBK])
	case RegLR1LR2, RegLR3LG1, RegLG2LG3, RegLB1LB2, RegLB3:
		return readMatrix(&g.LCM, r-RegLR1LR2)
	case RegRFC, RegGFC, RegBFC:
		return uint32(g.FC[r-RegRFC])
	case RegOFX:
		return uint32(g.OFX)
	case RegOFY:
		return uint32(g.OFY)
	case RegH:
		// H is unsigned but reads back sign extended.
		return uint32(int32(int16(g.H)))
	case RegDQA:
		return uint32(int32(g.DQA))
	case RegDQB:
		return uint32(g.DQB)
	case RegZSF3:
		return uint32(int32(g.ZSF3))
	case RegZSF4:
		return uint32(int32(g.ZSF4))
	case RegFLAG:
		return g.FLAG
	}
	return 0
}

func (g *GTE) writeControl(i, v uint32) {
	switch r := i + 32; r {
	case RegRT11RT12, RegRT13RT21, RegRT22RT23, RegRT31RT32, RegRT33:
		writeMatrix(&g.RT, r-RegRT11RT12, v)
	case RegTRX, RegTRY, RegTRZ:
		g.TR[r-RegTRX] = int32(v)
	case RegL11L12, RegL13L21, RegL22L23, RegL31L32, RegL33:
		writeMatrix(&g.LLM, r-RegL11L12, v)
	case RegRBK, RegGBK, RegBBK:
		g.BK[r-RegRBK] = int32(v)
	case RegLR1LR2, RegLR3LG1, RegLG2LG3, RegLB1LB2, RegLB3:
		writeMatrix(&g.LCM, r-RegLR1LR2, v)
	case RegRFC, RegGFC, RegBFC:
		g.FC[r-RegRFC] = int32(v)
	case RegOFX:
		g.OFX = int32(v)
	case RegOFY:
		g.OFY = int32(v)
	case RegH:
		g.H = uint16(v)
	case RegDQA:
		g.DQA = int16(v)
	case RegDQB:
		g.DQB = int32(v)
	case RegZSF3:
		g.ZSF3 = int16(v)
	case RegZSF4:
		g.ZSF4 = int16(v)
	case RegFLAG:
		g.setFlagRegister(v)
	}
}
