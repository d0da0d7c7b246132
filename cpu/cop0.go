package cpu

import (
	"github.com/sirupsen/logrus"
)

// COP0 register indices.
const (
	COP0BPC      = 3
	COP0BDA      = 5
	COP0JumpDest = 6
	COP0DCIC     = 7
	COP0BadVaddr = 8
	COP0BDAM     = 9
	COP0BPCM     = 11
	COP0SR       = 12
	COP0Cause    = 13
	COP0EPC      = 14
	COP0PRID     = 15
)

// PRID is the processor revision reported by cop0r15.
const PRID = 0x00000002

// Exception vectors.
const (
	VectorGeneral     = 0x80000080
	VectorGeneralBoot = 0xBFC00180
)

// COP0 is the system control coprocessor.
type COP0 struct {
	// Breakpoint registers.
	BPC, BDA, DCIC, BDAM, BPCM uint32
	// JumpDest holds the branch target of the last delay-slot exception.
	JumpDest uint32
	// BadVaddr is the address of the last address error.
	BadVaddr uint32
	SR       Status
	Cause    Cause
	// EPC is the return address of the last exception.
	EPC uint32

	log logrus.FieldLogger
}

func newCOP0(log logrus.FieldLogger) *COP0 {
	return &COP0{log: log.WithField("component", "cop0")}
}

// Status returns SR.
func (z *COP0) Status() Status { return z.SR }

// ReadRegister implements Coprocessor.
func (z *COP0) ReadRegister(index uint32) uint32 {
	switch index {
	case COP0BPC:
		return z.BPC
	case COP0BDA:
		return z.BDA
	case COP0JumpDest:
		return z.JumpDest
	case COP0DCIC:
		return z.DCIC
	case COP0BadVaddr:
		return z.BadVaddr
	case COP0BDAM:
		return z.BDAM
	case COP0BPCM:
		return z.BPCM
	case COP0SR:
		return uint32(z.SR)
	case COP0Cause:
		return uint32(z.Cause)
	case COP0EPC:
		return z.EPC
	case COP0PRID:
		return PRID
	}
	z.log.WithField("register", index).Debug("read from unknown register")
	return 0
}

// WriteRegister implements Coprocessor. Read-only registers ignore writes.
func (z *COP0) WriteRegister(index, v uint32) {
	switch index {
	case COP0BPC:
		z.BPC = v
	case COP0BDA:
		z.BDA = v
	case COP0DCIC:
		z.DCIC = v
	case COP0BDAM:
		z.BDAM = v
	case COP0BPCM:
		z.BPCM = v
	case COP0SR:
		z.SR = Status(v)
	case COP0Cause:
		z.Cause = z.Cause&^CauseSW | Cause(v)&CauseSW
	case COP0JumpDest, COP0BadVaddr, COP0EPC, COP0PRID:
	default:
		z.log.WithFields(logrus.Fields{"register": index, "value": v}).Debug("write to unknown register dropped")
	}
}

// enter records an exception and returns the handler address.
func (z *COP0) enter(e *Exception, pc uint32, delay, taken bool, target uint32) uint32 {
	z.SR = z.SR.push()

	cause := z.Cause &^ (CauseExcMask | CauseCEMask | CauseBT | CauseBD)
	cause |= Cause(e.Code) << CauseExcShift
	if e.Code == ExcCoprocessor {
		cause |= Cause(e.Cop) << CauseCEShift
	}

	z.EPC = pc
	if delay {
		z.EPC = pc - 4
		cause |= CauseBD
		if taken {
			cause |= CauseBT
			z.JumpDest = target
		}
	}
	z.Cause = cause

	if e.Code == ExcAddressLoad || e.Code == ExcAddressStore {
		z.BadVaddr = e.BadVaddr
	}

	if z.SR.BEV() {
		return VectorGeneralBoot
	}
	return VectorGeneral
}

// rfe pops the mode stack.
func (z *COP0) rfe() {
	z.SR = z.SR.pop()
}

// interruptPending reports whether an unmasked interrupt is waiting and
// interrupts are enabled.
func (z *COP0) interruptPending() bool {
	return z.SR.IEc() && z.SR.IM()&z.Cause.IP() != 0
}

// setHardwareInterrupt drives the external interrupt line, cause bit 10.
func (z *COP0) setHardwareInterrupt(on bool) {
	if on {
		z.Cause |= CauseHW
	} else {
		z.Cause &^= CauseHW
	}
}
