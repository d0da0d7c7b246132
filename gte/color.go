package gte

// interpolate blends in towards the far colour by IR0:
//
//	IR   = ((FC SHL 12) - in) SAR shift     (saturated without lm)
//	MAC  = (IR * IR0 + in) SAR shift
func (g *GTE) interpolate(in [3]int64, shift uint, lm bool) {
	for i := range 3 {
		g.setMACAndIR(i+1, int64(g.FC[i])<<12-in[i], shift, false)
	}
	for i := range 3 {
		g.setMACAndIR(i+1, int64(g.IR[i+1])*int64(g.IR[0])+in[i], shift, lm)
	}
}

// macVector returns MAC1..MAC3 widened for use as interpolation input.
func (g *GTE) macVector() [3]int64 {
	return [3]int64{int64(g.MAC[1]), int64(g.MAC[2]), int64(g.MAC[3])}
}

// lightVertex runs the light matrix then the light colour matrix over v,
// leaving the lit colour in IR1..IR3.
func (g *GTE) lightVertex(v Vector, shift uint, lm bool) {
	g.mulMatVec(&g.LLM, [3]int32{}, v, shift, lm)
	g.mulMatVec(&g.LCM, g.BK, g.irVector(), shift, lm)
}

// colorizeIR multiplies IR1..IR3 by the RGBC colour and pushes the result.
func (g *GTE) colorizeIR(shift uint, lm bool) {
	in := g.rgbTimesIR()
	for i := range 3 {
		g.setMAC(i+1, in[i], 0)
	}
	for i := range 3 {
		g.setMACAndIR(i+1, int64(g.MAC[i+1]), shift, lm)
	}
	g.pushColor()
}

func (g *GTE) ncs(c Command) {
	g.lightVertex(g.V[0], c.Shift(), c.LM)
	g.pushColor()
}

func (g *GTE) nct(c Command) {
	for i := range 3 {
		g.lightVertex(g.V[i], c.Shift(), c.LM)
		g.pushColor()
	}
}

func (g *GTE) nccs(c Command) {
	g.lightVertex(g.V[0], c.Shift(), c.LM)
	g.colorizeIR(c.Shift(), c.LM)
}

func (g *GTE) ncct(c Command) {
	for i := range 3 {
		g.lightVertex(g.V[i], c.Shift(), c.LM)
		g.colorizeIR(c.Shift(), c.LM)
	}
}

func (g *GTE) ncds(c Command) {
	g.lightVertex(g.V[0], c.Shift(), c.LM)
	g.interpolate(g.rgbTimesIR(), c.Shift(), c.LM)
	g.pushColor()
}

func (g *GTE) ncdt(c Command) {
	for i := range 3 {
		g.lightVertex(g.V[i], c.Shift(), c.LM)
		g.interpolate(g.rgbTimesIR(), c.Shift(), c.LM)
		g.pushColor()
	}
}

// cc applies the light colour matrix to IR and colours the result.
func (g *GTE) cc(c Command) {
	g.mulMatVec(&g.LCM, g.BK, g.irVector(), c.Shift(), c.LM)
	g.colorizeIR(c.Shift(), c.LM)
}

// cdp is cc followed by depth cueing towards the far colour.
func (g *GTE) cdp(c Command) {
	g.mulMatVec(&g.LCM, g.BK, g.irVector(), c.Shift(), c.LM)
	g.interpolate(g.rgbTimesIR(), c.Shift(), c.LM)
	g.pushColor()
}

// depthCue interpolates a colour towards FC and pushes it.
func (g *GTE) depthCue(col Color, shift uint, lm bool) {
	for i := range 3 {
		g.setMAC(i+1, int64(col[i])<<16, 0)
	}
	g.interpolate(g.macVector(), shift, lm)
	g.pushColor()
}

func (g *GTE) dpcs(c Command) {
	g.depthCue(g.RGBC, c.Shift(), c.LM)
}

// dpct depth-cues the colour FIFO three times, each pass reading the
// oldest entry of the FIFO as it stands.
func (g *GTE) dpct(c Command) {
	for range 3 {
		g.depthCue(g.RGB[0], c.Shift(), c.LM)
	}
}

func (g *GTE) dcpl(c Command) {
	in := g.rgbTimesIR()
	for i := range 3 {
		g.setMAC(i+1, in[i], 0)
	}
	g.interpolate(g.macVector(), c.Shift(), c.LM)
	g.pushColor()
}

func (g *GTE) intpl(c Command) {
	for i := range 3 {
		g.setMAC(i+1, int64(g.IR[i+1])<<12, 0)
	}
	g.interpolate(g.macVector(), c.Shift(), c.LM)
	g.pushColor()
}

// gpf computes IR * IR0 and pushes the colour.
func (g *GTE) gpf(c Command) {
	for i := range 3 {
		g.setMACAndIR(i+1, int64(g.IR[i+1])*int64(g.IR[0]), c.Shift(), c.LM)
	}
	g.pushColor()
}

// gpl adds IR * IR0 to the current MAC values and pushes the colour.
func (g *GTE) gpl(c Command) {
	shift := c.Shift()
	for i := range 3 {
		g.setMACAndIR(i+1, int64(g.IR[i+1])*int64(g.IR[0])+int64(g.MAC[i+1])<<shift, shift, c.LM)
	}
	g.pushColor()
}
