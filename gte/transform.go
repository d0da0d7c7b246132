package gte

// mulMatVec computes [MAC1..3] = (T*1000h + M*v) SAR shift and saturates
// the results into IR1..IR3. Each partial sum is overflow checked.
func (g *GTE) mulMatVec(m *Matrix, t [3]int32, v Vector, shift uint, lm bool) {
	for i := range 3 {
		acc := g.extendMAC(i+1, int64(t[i])<<12+int64(m[i][0])*int64(v[0]))
		acc = g.extendMAC(i+1, acc+int64(m[i][1])*int64(v[1]))
		g.setMACAndIR(i+1, acc+int64(m[i][2])*int64(v[2]), shift, lm)
	}
}

// mulMatVecFarColor reproduces MVMVA with cv=2: the far colour term and
// the first column only reach the IR saturation flags, the stored result
// is built from the second and third columns alone.
func (g *GTE) mulMatVecFarColor(m *Matrix, t [3]int32, v Vector, shift uint, lm bool) {
	for i := range 3 {
		acc := g.extendMAC(i+1, g.extendMAC(i+1, int64(t[i])<<12+int64(m[i][0])*int64(v[0])))
		g.setIR(i+1, int32(acc>>shift), false)
		acc = g.extendMAC(i+1, int64(m[i][1])*int64(v[1]))
		g.setMACAndIR(i+1, acc+int64(m[i][2])*int64(v[2]), shift, lm)
	}
}

// rtp perspective-transforms one vertex and pushes the SZ and SXY FIFOs.
// IR0 and MAC0 are only updated for the last vertex of a command.
func (g *GTE) rtp(v Vector, shift uint, lm, last bool) {
	var z int64
	for i := range 3 {
		acc := g.extendMAC(i+1, int64(g.TR[i])<<12+int64(g.RT[i][0])*int64(v[0]))
		acc = g.extendMAC(i+1, acc+int64(g.RT[i][1])*int64(v[1]))
		acc += int64(g.RT[i][2]) * int64(v[2])
		g.setMAC(i+1, acc, shift)
		z = acc
	}
	g.setIR(1, g.MAC[1], lm)
	g.setIR(2, g.MAC[2], lm)

	// IR3 is saturated from MAC3, but its flag follows MAC3 SAR 12
	// against the signed range whatever sf and lm say.
	if z12 := int32(z >> 12); z12 < -0x8000 || z12 > 0x7FFF {
		g.setFlag(FlagIR3Sat)
	}
	lo := int32(-0x8000)
	if lm {
		lo = 0
	}
	ir3, _ := saturate(g.MAC[3], lo, 0x7FFF)
	g.IR[3] = int16(ir3)

	g.pushSZ(int32(z >> 12))

	q := int64(g.divide(g.H, g.SZ[3]))
	sx := g.checkMAC(0, q*int64(g.IR[1])+int64(g.OFX))
	sy := g.checkMAC(0, q*int64(g.IR[2])+int64(g.OFY))
	g.pushSXY(sx>>16, sy>>16)

	if last {
		dq := g.setMAC(0, q*int64(g.DQA)+int64(g.DQB), 0)
		g.setIR0(int32(dq >> 12))
	}
}

func (g *GTE) rtps(c Command) {
	g.rtp(g.V[0], c.Shift(), c.LM, true)
}

func (g *GTE) rtpt(c Command) {
	for i := range 3 {
		g.rtp(g.V[i], c.Shift(), c.LM, i == 2)
	}
}

// nclip stores the signed area of the SXY FIFO triangle in MAC0.
func (g *GTE) nclip(Command) {
	s0, s1, s2 := g.SXY[0], g.SXY[1], g.SXY[2]
	x0, y0 := int64(s0.X), int64(s0.Y)
	x1, y1 := int64(s1.X), int64(s1.Y)
	x2, y2 := int64(s2.X), int64(s2.Y)
	g.setMAC(0, x0*y1+x1*y2+x2*y0-x0*y2-x1*y0-x2*y1, 0)
}

// outerProduct computes the cross product of IR and the RT diagonal.
func (g *GTE) outerProduct(c Command) {
	d1, d2, d3 := int64(g.RT[0][0]), int64(g.RT[1][1]), int64(g.RT[2][2])
	ir1, ir2, ir3 := int64(g.IR[1]), int64(g.IR[2]), int64(g.IR[3])
	g.setMACAndIR(1, ir3*d2-ir2*d3, c.Shift(), c.LM)
	g.setMACAndIR(2, ir1*d3-ir3*d1, c.Shift(), c.LM)
	g.setMACAndIR(3, ir2*d1-ir1*d2, c.Shift(), c.LM)
}

func (g *GTE) sqr(c Command) {
	for i := 1; i <= 3; i++ {
		ir := int64(g.IR[i])
		g.setMACAndIR(i, ir*ir, c.Shift(), c.LM)
	}
}

// avsz3 computes OTZ = ZSF3 * (SZ1+SZ2+SZ3) / 1000h.
func (g *GTE) avsz3(Command) {
	sum := int64(g.SZ[1]) + int64(g.SZ[2]) + int64(g.SZ[3])
	v := g.setMAC(0, int64(g.ZSF3)*sum, 0)
	g.setOTZ(int32(v >> 12))
}

// avsz4 computes OTZ = ZSF4 * (SZ0+SZ1+SZ2+SZ3) / 1000h.
func (g *GTE) avsz4(Command) {
	sum := int64(g.SZ[0]) + int64(g.SZ[1]) + int64(g.SZ[2]) + int64(g.SZ[3])
	v := g.setMAC(0, int64(g.ZSF4)*sum, 0)
	g.setOTZ(int32(v >> 12))
}

// reservedMatrix builds the garbage matrix selected by MVMVA mx=3.
func (g *GTE) reservedMatrix() Matrix {
	r := int16(uint16(g.RGBC[0]) << 4)
	return Matrix{
		{-r, r, g.IR[0]},
		{g.RT[0][2], g.RT[0][2], g.RT[0][2]},
		{g.RT[1][1], g.RT[1][1], g.RT[1][1]},
	}
}

func (g *GTE) mvmva(c Command) {
	var m Matrix
	switch c.MX {
	case MatrixRotation:
		m = g.RT
	case MatrixLight:
		m = g.LLM
	case MatrixColor:
		m = g.LCM
	default:
		m = g.reservedMatrix()
	}

	var v Vector
	if c.V == VectorIR {
		v = g.irVector()
	} else {
		v = g.V[c.V]
	}

	switch c.CV {
	case TranslationTR:
		g.mulMatVec(&m, g.TR, v, c.Shift(), c.LM)
	case TranslationBK:
		g.mulMatVec(&m, g.BK, v, c.Shift(), c.LM)
	case TranslationFC:
		g.mulMatVecFarColor(&m, g.FC, v, c.Shift(), c.LM)
	default:
		g.mulMatVec(&m, [3]int32{}, v, c.Shift(), c.LM)
	}
}
