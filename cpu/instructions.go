package cpu

// Primary opcodes, bits 31..26.
const (
	OPSPECIAL = 0x00
	OPREGIMM  = 0x01
	OPJ       = 0x02
	OPJAL     = 0x03
	OPBEQ     = 0x04
	OPBNE     = 0x05
	OPBLEZ    = 0x06
	OPBGTZ    = 0x07
	OPADDI    = 0x08
	OPADDIU   = 0x09
	OPSLTI    = 0x0A
	OPSLTIU   = 0x0B
	OPANDI    = 0x0C
	OPORI     = 0x0D
	OPXORI    = 0x0E
	OPLUI     = 0x0F
	OPCOP0    = 0x10
	OPCOP1    = 0x11
	OPCOP2    = 0x12
	OPCOP3    = 0x13
	OPLB      = 0x20
	OPLH      = 0x21
	OPLWL     = 0x22
	OPLW      = 0x23
	OPLBU     = 0x24
	OPLHU     = 0x25
	OPLWR     = 0x26
	OPSB      = 0x28
	OPSH      = 0x29
	OPSWL     = 0x2A
	OPSW      = 0x2B
	OPSWR     = 0x2E
	OPLWC0    = 0x30
	OPLWC2    = 0x32
	OPLWC3    = 0x33
	OPSWC0    = 0x38
	OPSWC2    = 0x3A
	OPSWC3    = 0x3B
)

// SPECIAL function codes, bits 5..0.
const (
	FNSLL     = 0x00
	FNSRL     = 0x02
	FNSRA     = 0x03
	FNSLLV    = 0x04
	FNSRLV    = 0x06
	FNSRAV    = 0x07
	FNJR      = 0x08
	FNJALR    = 0x09
	FNSYSCALL = 0x0C
	FNBREAK   = 0x0D
	FNMFHI    = 0x10
	FNMTHI    = 0x11
	FNMFLO    = 0x12
	FNMTLO    = 0x13
	FNMULT    = 0x18
	FNMULTU   = 0x19
	FNDIV     = 0x1A
	FNDIVU    = 0x1B
	FNADD     = 0x20
	FNADDU    = 0x21
	FNSUB     = 0x22
	FNSUBU    = 0x23
	FNAND     = 0x24
	FNOR      = 0x25
	FNXOR     = 0x26
	FNNOR     = 0x27
	FNSLT     = 0x2A
	FNSLTU    = 0x2B
)

// REGIMM rt codes, bits 20..16.
const (
	RTBLTZ   = 0x00
	RTBGEZ   = 0x01
	RTBLTZAL = 0x10
	RTBGEZAL = 0x11
)

// Coprocessor formats in the rs field, and the COP0 RFE function.
const (
	COPMF = 0x00
	COPCF = 0x02
	COPMT = 0x04
	COPCT = 0x06
	COPCO = 0x10
	FNRFE = 0x10
)

// Op identifies a decoded operation. Coprocessor operations carry their
// coprocessor number in Instruction.Cop.
type Op uint8

// Operations.
const (
	OpInvalid Op = iota

	// SPECIAL
	OpSLL
	OpSRL
	OpSRA
	OpSLLV
	OpSRLV
	OpSRAV
	OpJR
	OpJALR
	OpSYSCALL
	OpBREAK
	OpMFHI
	OpMTHI
	OpMFLO
	OpMTLO
	OpMULT
	OpMULTU
	OpDIV
	OpDIVU
	OpADD
	OpADDU
	OpSUB
	OpSUBU
	OpAND
	OpOR
	OpXOR
	OpNOR
	OpSLT
	OpSLTU

	// REGIMM
	OpBLTZ
	OpBGEZ
	OpBLTZAL
	OpBGEZAL

	// Primary
	OpJ
	OpJAL
	OpBEQ
	OpBNE
	OpBLEZ
	OpBGTZ
	OpADDI
	OpADDIU
	OpSLTI
	OpSLTIU
	OpANDI
	OpORI
	OpXORI
	OpLUI
	OpLB
	OpLH
	OpLWL
	OpLW
	OpLBU
	OpLHU
	OpLWR
	OpSB
	OpSH
	OpSWL
	OpSW
	OpSWR
	OpLWC
	OpSWC

	// Coprocessor
	OpMFC
	OpCFC
	OpMTC
	OpCTC
	OpRFE

	// GTE commands
	OpRTPS
	OpNCLIP
	OpOP
	OpDPCS
	OpINTPL
	OpMVMVA
	OpNCDS
	OpCDP
	OpNCDT
	OpNCCS
	OpCC
	OpNCS
	OpNCT
	OpSQR
	OpDCPL
	OpDPCT
	OpAVSZ3
	OpAVSZ4
	OpRTPT
	OpGPF
	OpGPL
	OpNCCT

	opCount
)

// Mnemonics maps each Op to its assembler name. Coprocessor mnemonics
// carry no number; the disassembler appends Instruction.Cop.
var Mnemonics = [opCount]string{
	OpInvalid: "invalid", OpSLL: "sll", OpSRL: "srl", OpSRA: "sra",
	OpSLLV: "sllv", OpSRLV: "srlv", OpSRAV: "srav",
	OpJR: "jr", OpJALR: "jalr",
	OpSYSCALL: "syscall", OpBREAK: "break",
	OpMFHI: "mfhi", OpMTHI: "mthi", OpMFLO: "mflo", OpMTLO: "mtlo",
	OpMULT: "mult", OpMULTU: "multu", OpDIV: "div", OpDIVU: "divu",
	OpADD: "add", OpADDU: "addu", OpSUB: "sub", OpSUBU: "subu",
	OpAND: "and", OpOR: "or", OpXOR: "xor", OpNOR: "nor",
	OpSLT: "slt", OpSLTU: "sltu",
	OpBLTZ: "bltz", OpBGEZ: "bgez", OpBLTZAL: "bltzal", OpBGEZAL: "bgezal",
	OpJ: "j", OpJAL: "jal",
	OpBEQ: "beq", OpBNE: "bne", OpBLEZ: "blez", OpBGTZ: "bgtz",
	OpADDI: "addi", OpADDIU: "addiu", OpSLTI: "slti", OpSLTIU: "sltiu",
	OpANDI: "andi", OpORI: "ori", OpXORI: "xori", OpLUI: "lui",
	OpLB: "lb", OpLH: "lh", OpLWL: "lwl", OpLW: "lw",
	OpLBU: "lbu", OpLHU: "lhu", OpLWR: "lwr",
	OpSB: "sb", OpSH: "sh", OpSWL: "swl", OpSW: "sw", OpSWR: "swr",
	OpLWC: "lwc", OpSWC: "swc",
	OpMFC: "mfc", OpCFC: "cfc", OpMTC: "mtc", OpCTC: "ctc", OpRFE: "rfe",
	OpRTPS: "rtps", OpNCLIP: "nclip", OpOP: "op", OpDPCS: "dpcs",
	OpINTPL: "intpl", OpMVMVA: "mvmva", OpNCDS: "ncds", OpCDP: "cdp",
	OpNCDT: "ncdt", OpNCCS: "nccs", OpCC: "cc", OpNCS: "ncs", OpNCT: "nct",
	OpSQR: "sqr", OpDCPL: "dcpl", OpDPCT: "dpct", OpAVSZ3: "avsz3",
	OpAVSZ4: "avsz4", OpRTPT: "rtpt", OpGPF: "gpf", OpGPL: "gpl",
	OpNCCT: "ncct",
}

func (op Op) String() string {
	if op >= opCount {
		return Mnemonics[OpInvalid]
	}
	return Mnemonics[op]
}

// IsGTE reports whether op is a GTE command.
func (op Op) IsGTE() bool {
	return op >= OpRTPS && op <= OpNCCT
}

// IsBranch reports whether op transfers control after a delay slot.
func (op Op) IsBranch() bool {
	switch op {
	case OpJ, OpJAL, OpJR, OpJALR, OpBEQ, OpBNE, OpBLEZ, OpBGTZ,
		OpBLTZ, OpBGEZ, OpBLTZAL, OpBGEZAL:
		return true
	}
	return false
}

// RegisterNames are the conventional MIPS names of r0..r31.
var RegisterNames = [32]string{
	"zero", "at", "v0", "v1", "a0", "a1", "a2", "a3",
	"t0", "t1", "t2", "t3", "t4", "t5", "t6", "t7",
	"s0", "s1", "s2", "s3", "s4", "s5", "s6", "s7",
	"t8", "t9", "k0", "k1", "gp", "sp", "fp", "ra",
}

// Register numbers with a fixed role.
const (
	RegZero = 0
	RegAT   = 1
	RegV0   = 2
	RegA0   = 4
	RegT1   = 9
	RegGP   = 28
	RegSP   = 29
	RegFP   = 30
	RegRA   = 31
)
