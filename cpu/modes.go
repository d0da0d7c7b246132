package cpu

// Status is the COP0 status register (SR, cop0r12).
type Status uint32

// Status register bits.
const (
	SRIEc = 1 << 0  // current interrupt enable
	SRKUc = 1 << 1  // current mode, set for user
	SRIEp = 1 << 2  // previous interrupt enable
	SRKUp = 1 << 3  // previous mode
	SRIEo = 1 << 4  // old interrupt enable
	SRKUo = 1 << 5  // old mode
	SRIsC = 1 << 16 // isolate cache
	SRBEV = 1 << 22 // boot exception vectors
	SRCU0 = 1 << 28 // coprocessor 0 usable in user mode

	srModeMask = 0x3F
	srIMShift  = 8
)

// IEc reports whether interrupts are enabled.
func (s Status) IEc() bool { return s&SRIEc != 0 }

// KUc reports whether the CPU runs in user mode.
func (s Status) KUc() bool { return s&SRKUc != 0 }

// IsC reports whether the data cache is isolated from memory.
func (s Status) IsC() bool { return s&SRIsC != 0 }

// BEV reports whether exceptions vector into the BIOS ROM.
func (s Status) BEV() bool { return s&SRBEV != 0 }

// CU reports whether coprocessor n is marked usable.
func (s Status) CU(n uint8) bool { return s&(SRCU0<<n) != 0 }

// IM returns the interrupt mask, bits 15..8.
func (s Status) IM() uint32 { return uint32(s) >> srIMShift & 0xFF }

// push enters exception mode: the three mode pairs shift left by two
// and the current pair becomes kernel with interrupts off.
func (s Status) push() Status {
	mode := uint32(s) & srModeMask
	return Status(uint32(s)&^srModeMask | mode<<2&srModeMask)
}

// pop restores the previous mode pair. The old pair stays as it was.
func (s Status) pop() Status {
	mode := uint32(s) & srModeMask
	return Status(uint32(s)&^0xF | mode>>2&0xF)
}

// Cause is the COP0 cause register (cop0r13).
type Cause uint32

// Cause register fields.
const (
	CauseExcShift = 2
	CauseExcMask  = 0x1F << CauseExcShift
	CauseSW       = 3 << 8 // software interrupt bits, writable
	CauseHW       = 1 << 10
	CauseCEShift  = 28
	CauseCEMask   = 3 << CauseCEShift
	CauseBT       = 1 << 30
	CauseBD       = 1 << 31
)

// ExcCode returns the code of the last exception.
func (c Cause) ExcCode() ExceptionCode {
	return ExceptionCode(uint32(c) & CauseExcMask >> CauseExcShift)
}

// IP returns the pending interrupt bits, 15..8.
func (c Cause) IP() uint32 { return uint32(c) >> 8 & 0xFF }

// CE returns the coprocessor number of the last unusable coprocessor.
func (c Cause) CE() uint8 { return uint8(uint32(c) & CauseCEMask >> CauseCEShift) }

// BT reports whether the branch before the faulting delay slot was taken.
func (c Cause) BT() bool { return c&CauseBT != 0 }

// BD reports whether the last exception hit a branch delay slot.
func (c Cause) BD() bool { return c&CauseBD != 0 }
