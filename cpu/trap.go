package cpu

import (
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"
)

// ExceptionCode is the ExcCode field of the cause register.
type ExceptionCode uint8

// Exception codes.
const (
	ExcInterrupt      ExceptionCode = 0
	ExcAddressLoad    ExceptionCode = 4
	ExcAddressStore   ExceptionCode = 5
	ExcBusInstruction ExceptionCode = 6
	ExcBusData        ExceptionCode = 7
	ExcSyscall        ExceptionCode = 8
	ExcBreakpoint     ExceptionCode = 9
	ExcReserved       ExceptionCode = 10
	ExcCoprocessor    ExceptionCode = 11
	ExcOverflow       ExceptionCode = 12
)

const exceptionCodeCount = 32

var exceptionNames = [exceptionCodeCount]string{
	ExcInterrupt:      "Int",
	1:                 "Mod",
	2:                 "TLBL",
	3:                 "TLBS",
	ExcAddressLoad:    "AdEL",
	ExcAddressStore:   "AdES",
	ExcBusInstruction: "IBE",
	ExcBusData:        "DBE",
	ExcSyscall:        "Sys",
	ExcBreakpoint:     "Bp",
	ExcReserved:       "RI",
	ExcCoprocessor:    "CpU",
	ExcOverflow:       "Ov",
}

func (e ExceptionCode) String() string {
	if int(e) < len(exceptionNames) && exceptionNames[e] != "" {
		return exceptionNames[e]
	}
	return fmt.Sprintf("exc%d", uint8(e))
}

// Exception is a synchronous trap raised by an instruction. Handlers
// return it instead of changing state; Step turns it into exception entry.
type Exception struct {
	Code ExceptionCode
	// Cop is the coprocessor number for ExcCoprocessor.
	Cop uint8
	// BadVaddr is the faulting address for address errors.
	BadVaddr uint32
}

func (e *Exception) Error() string {
	switch e.Code {
	case ExcAddressLoad, ExcAddressStore:
		return fmt.Sprintf("%s exception at address %08x", e.Code, e.BadVaddr)
	case ExcCoprocessor:
		return fmt.Sprintf("%s exception for cop%d", e.Code, e.Cop)
	}
	return fmt.Sprintf("%s exception", e.Code)
}

// ErrHalted is returned by Step once the CPU has been halted.
var ErrHalted = errors.New("cpu halted")

// ReservedInstructionError is returned by Step in strict decode mode when
// the next word does not decode. No state is changed.
type ReservedInstructionError struct {
	PC   uint32
	Word uint32
}

func (e *ReservedInstructionError) Error() string {
	return fmt.Sprintf("reserved instruction %08x at %08x", e.Word, e.PC)
}

// opSYSCALL raises the system call exception.
func (c *CPU) opSYSCALL(Instruction) error {
	return &Exception{Code: ExcSyscall}
}

// opBREAK raises the breakpoint exception.
func (c *CPU) opBREAK(Instruction) error {
	return &Exception{Code: ExcBreakpoint}
}

// opInvalid raises the reserved instruction exception. Coprocessor words
// raise CpU instead when the coprocessor is absent or unusable.
func (c *CPU) opInvalid(in Instruction) error {
	if op := in.Word.Opcode(); op >= OPCOP0 && op <= OPCOP3 {
		if _, err := c.coprocessor(in.Word.CopNum()); err != nil {
			return err
		}
	}
	c.log.WithFields(logrus.Fields{
		"pc":   fmt.Sprintf("%08x", c.current),
		"word": fmt.Sprintf("%08x", uint32(in.Word)),
	}).Debug("reserved instruction")
	return &Exception{Code: ExcReserved}
}

// raise performs exception entry for e at the current instruction.
func (c *CPU) raise(e *Exception) {
	c.log.WithFields(logrus.Fields{
		"pc":    fmt.Sprintf("%08x", c.current),
		"code":  e.Code.String(),
		"delay": c.delaySlot,
	}).Trace("exception")

	handler := c.COP0.enter(e, c.current, c.delaySlot, c.delayTaken, c.delayTarget)
	c.PC = handler
	c.NextPC = handler + 4
	c.branching = false
	c.taken = false
}
