package cpu

import "github.com/Urethramancer/psx/gte"

type entry struct {
	op    Op
	shape Shape
	run   Handler
}

// Dispatch tables. They are filled once by init and never written again.
var (
	special   [64]entry
	regimm    [32]entry
	other     [64]entry
	copFormat [COPCO]entry
	gteTable  [64]entry
	rfe       entry
)

// gteOps lists the GTE command tags by command number.
var gteOps = map[gte.Opcode]Op{
	gte.RTPS: OpRTPS, gte.NCLIP: OpNCLIP, gte.OP: OpOP, gte.DPCS: OpDPCS,
	gte.INTPL: OpINTPL, gte.MVMVA: OpMVMVA, gte.NCDS: OpNCDS, gte.CDP: OpCDP,
	gte.NCDT: OpNCDT, gte.NCCS: OpNCCS, gte.CC: OpCC, gte.NCS: OpNCS,
	gte.NCT: OpNCT, gte.SQR: OpSQR, gte.DCPL: OpDCPL, gte.DPCT: OpDPCT,
	gte.AVSZ3: OpAVSZ3, gte.AVSZ4: OpAVSZ4, gte.RTPT: OpRTPT, gte.GPF: OpGPF,
	gte.GPL: OpGPL, gte.NCCT: OpNCCT,
}

func init() {
	r := func(op Op, h Handler) entry { return entry{op, ShapeRegister, h} }
	i := func(op Op, h Handler) entry { return entry{op, ShapeImmediate, h} }

	special[FNSLL] = r(OpSLL, (*CPU).opSLL)
	special[FNSRL] = r(OpSRL, (*CPU).opSRL)
	special[FNSRA] = r(OpSRA, (*CPU).opSRA)
	special[FNSLLV] = r(OpSLLV, (*CPU).opSLLV)
	special[FNSRLV] = r(OpSRLV, (*CPU).opSRLV)
	special[FNSRAV] = r(OpSRAV, (*CPU).opSRAV)
	special[FNJR] = r(OpJR, (*CPU).opJR)
	special[FNJALR] = r(OpJALR, (*CPU).opJALR)
	special[FNSYSCALL] = r(OpSYSCALL, (*CPU).opSYSCALL)
	special[FNBREAK] = r(OpBREAK, (*CPU).opBREAK)
	special[FNMFHI] = r(OpMFHI, (*CPU).opMFHI)
	special[FNMTHI] = r(OpMTHI, (*CPU).opMTHI)
	special[FNMFLO] = r(OpMFLO, (*CPU).opMFLO)
	special[FNMTLO] = r(OpMTLO, (*CPU).opMTLO)
	special[FNMULT] = r(OpMULT, (*CPU).opMULT)
	special[FNMULTU] = r(OpMULTU, (*CPU).opMULTU)
	special[FNDIV] = r(OpDIV, (*CPU).opDIV)
	special[FNDIVU] = r(OpDIVU, (*CPU).opDIVU)
	special[FNADD] = r(OpADD, (*CPU).opADD)
	special[FNADDU] = r(OpADDU, (*CPU).opADDU)
	special[FNSUB] = r(OpSUB, (*CPU).opSUB)
	special[FNSUBU] = r(OpSUBU, (*CPU).opSUBU)
	special[FNAND] = r(OpAND, (*CPU).opAND)
	special[FNOR] = r(OpOR, (*CPU).opOR)
	special[FNXOR] = r(OpXOR, (*CPU).opXOR)
	special[FNNOR] = r(OpNOR, (*CPU).opNOR)
	special[FNSLT] = r(OpSLT, (*CPU).opSLT)
	special[FNSLTU] = r(OpSLTU, (*CPU).opSLTU)

	// The R3000A decodes every REGIMM rt value: bit 0 picks GEZ over LTZ
	// and rt 10h/11h link.
	for rt := range regimm {
		gez := rt&1 != 0
		link := rt&0x1E == 0x10
		var op Op
		switch {
		case gez && link:
			op = OpBGEZAL
		case link:
			op = OpBLTZAL
		case gez:
			op = OpBGEZ
		default:
			op = OpBLTZ
		}
		regimm[rt] = i(op, (*CPU).opBcondZ)
	}

	other[OPJ] = entry{OpJ, ShapeJump, (*CPU).opJ}
	other[OPJAL] = entry{OpJAL, ShapeJump, (*CPU).opJAL}
	other[OPBEQ] = i(OpBEQ, (*CPU).opBEQ)
	other[OPBNE] = i(OpBNE, (*CPU).opBNE)
	other[OPBLEZ] = i(OpBLEZ, (*CPU).opBLEZ)
	other[OPBGTZ] = i(OpBGTZ, (*CPU).opBGTZ)
	other[OPADDI] = i(OpADDI, (*CPU).opADDI)
	other[OPADDIU] = i(OpADDIU, (*CPU).opADDIU)
	other[OPSLTI] = i(OpSLTI, (*CPU).opSLTI)
	other[OPSLTIU] = i(OpSLTIU, (*CPU).opSLTIU)
	other[OPANDI] = i(OpANDI, (*CPU).opANDI)
	other[OPORI] = i(OpORI, (*CPU).opORI)
	other[OPXORI] = i(OpXORI, (*CPU).opXORI)
	other[OPLUI] = i(OpLUI, (*CPU).opLUI)
	other[OPLB] = i(OpLB, (*CPU).opLB)
	other[OPLH] = i(OpLH, (*CPU).opLH)
	other[OPLWL] = i(OpLWL, (*CPU).opLWL)
	other[OPLW] = i(OpLW, (*CPU).opLW)
	other[OPLBU] = i(OpLBU, (*CPU).opLBU)
	other[OPLHU] = i(OpLHU, (*CPU).opLHU)
	other[OPLWR] = i(OpLWR, (*CPU).opLWR)
	other[OPSB] = i(OpSB, (*CPU).opSB)
	other[OPSH] = i(OpSH, (*CPU).opSH)
	other[OPSWL] = i(OpSWL, (*CPU).opSWL)
	other[OPSW] = i(OpSW, (*CPU).opSW)
	other[OPSWR] = i(OpSWR, (*CPU).opSWR)
	for n := range 4 {
		other[OPLWC0+n] = i(OpLWC, (*CPU).opLWC)
		other[OPSWC0+n] = i(OpSWC, (*CPU).opSWC)
	}

	rfe = entry{OpRFE, ShapeCoprocessor, (*CPU).opRFE}
	copFormat[COPMF] = entry{OpMFC, ShapeCoprocessor, (*CPU).opMFC}
	copFormat[COPCF] = entry{OpCFC, ShapeCoprocessor, (*CPU).opCFC}
	copFormat[COPMT] = entry{OpMTC, ShapeCoprocessor, (*CPU).opMTC}
	copFormat[COPCT] = entry{OpCTC, ShapeCoprocessor, (*CPU).opCTC}

	for cmd, op := range gteOps {
		gteTable[cmd] = entry{op, ShapeCoprocessor, (*CPU).opCOP2}
	}
}
