package m68k

import "fmt"

// Vector numbers, original_source/m68kcpu.h's EXCEPTION_* constants.
const (
	vectorReset              = 0
	vectorBusError           = 2
	vectorAddressError       = 3
	vectorIllegalInstruction = 4
	vectorZeroDivide         = 5
	vectorCHK                = 6
	vectorTrapV              = 7
	vectorPrivilegeViolation = 8
	vectorTrace              = 9
	vectorLineA              = 10
	vectorLineF              = 11
	vectorFormatError        = 14
	vectorUninitializedInt   = 15
	vectorSpurious           = 24
	vectorAutovectorBase     = 24
	vectorTrapBase           = 32
	vectorMMUConfiguration   = 56
)

// Every exception error an instruction handler returns implements this
// unexported interface in addition to the plain error interface, exposing
// the vector that step() hands to the exception engine. Execute returns
// only a cycle count; these errors do not reach the host.
type cpuError interface {
	error
	Vector() int
}

// BusError reports a host- or MMU-signalled access fault (vector 2).
type BusError struct {
	Address uint32
	Write   bool
	FC      uint8
}

func (e BusError) Error() string {
	dir := "read"
	if e.Write {
		dir = "write"
	}
	return fmt.Sprintf("bus error: %s at %#08x (fc=%d)", dir, e.Address, e.FC)
}

func (e BusError) Vector() int { return vectorBusError }

// AddressError reports an odd-address word/long access on a variant that
// enforces alignment (vector 3).
type AddressError struct {
	Address   uint32
	Write     bool
	FC        uint8
	Instruction bool
}

func (e AddressError) Error() string {
	dir := "read"
	if e.Write {
		dir = "write"
	}
	return fmt.Sprintf("address error: %s at %#08x (fc=%d)", dir, e.Address, e.FC)
}

func (e AddressError) Vector() int { return vectorAddressError }

// IllegalInstruction reports an opcode with no decode-table entry for the
// active variant, or an unimplemented-but-reserved encoding (vector 4).
type IllegalInstruction struct {
	Opcode uint16
	PC     uint32
}

func (e IllegalInstruction) Error() string {
	return fmt.Sprintf("illegal instruction %#04x at %#08x", e.Opcode, e.PC)
}

func (e IllegalInstruction) Vector() int { return vectorIllegalInstruction }

// LineAEmulator reports a 1010-group opcode (vector 10).
type LineAEmulator struct {
	Opcode uint16
}

func (e LineAEmulator) Error() string {
	return fmt.Sprintf("line-A opcode %#04x", e.Opcode)
}

func (e LineAEmulator) Vector() int { return vectorLineA }

// LineFEmulator reports a 1111-group opcode (vector 11), used for
// unimplemented coprocessor/MMU instructions.
type LineFEmulator struct {
	Opcode uint16
}

func (e LineFEmulator) Error() string {
	return fmt.Sprintf("line-F opcode %#04x", e.Opcode)
}

func (e LineFEmulator) Vector() int { return vectorLineF }

// PrivilegeViolation reports a supervisor-only instruction executed in
// user mode (vector 8).
type PrivilegeViolation struct {
	Opcode uint16
	PC     uint32
}

func (e PrivilegeViolation) Error() string {
	return fmt.Sprintf("privilege violation: %#04x at %#08x", e.Opcode, e.PC)
}

func (e PrivilegeViolation) Vector() int { return vectorPrivilegeViolation }

// FormatError reports an RTE that popped an unrecognised stack-frame
// format word (vector 14, 010-and-later only).
type FormatError struct {
	FormatWord uint16
}

func (e FormatError) Error() string {
	return fmt.Sprintf("format error: frame word %#04x", e.FormatWord)
}

func (e FormatError) Vector() int { return vectorFormatError }

// ZeroDivide reports a DIVS/DIVU by zero (vector 5).
type ZeroDivide struct {
	PC uint32
}

func (e ZeroDivide) Error() string { return fmt.Sprintf("zero divide at %#08x", e.PC) }
func (e ZeroDivide) Vector() int   { return vectorZeroDivide }

// CHKException reports a CHK bounds trap (vector 6).
type CHKException struct {
	PC uint32
}

func (e CHKException) Error() string { return fmt.Sprintf("CHK trap at %#08x", e.PC) }
func (e CHKException) Vector() int   { return vectorCHK }

// TrapVException reports a TRAPV overflow trap (vector 7).
type TrapVException struct {
	PC uint32
}

func (e TrapVException) Error() string { return fmt.Sprintf("TRAPV trap at %#08x", e.PC) }
func (e TrapVException) Vector() int   { return vectorTrapV }

// DoubleFault reports a fault encountered while already stacking an
// exception frame, which halts the processor until the next reset
// (spec.md §4.6 run_mode).
type DoubleFault struct {
	Cause error
}

func (e DoubleFault) Error() string {
	return fmt.Sprintf("double fault, CPU halted: %v", e.Cause)
}

func (e DoubleFault) Vector() int { return -1 }
