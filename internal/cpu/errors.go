package cpu

import "fmt"

// ErrUnknownOpcode indicates the CPU fetched an opcode that has no defined
// behavior on real hardware. Match it with errors.Is, or errors.As against
// *UnknownOpcodeError for the offending opcode and PC.
var ErrUnknownOpcode = fmt.Errorf("unknown opcode")

// UnknownOpcodeError reports the opcode byte and the program counter value
// it was fetched from. It wraps ErrUnknownOpcode so callers can match on
// errors.Is(err, cpu.ErrUnknownOpcode).
type UnknownOpcodeError struct {
	Opcode uint8
	PC     uint16
	// CB is true when the opcode was fetched from the CB-prefixed plane.
	CB bool
}

// Error implements the error interface.
func (e *UnknownOpcodeError) Error() string {
	if e.CB {
		return fmt.Sprintf("unknown CB opcode 0x%02X at PC=0x%04X", e.Opcode, e.PC)
	}
	return fmt.Sprintf("unknown opcode 0x%02X at PC=0x%04X", e.Opcode, e.PC)
}

// Unwrap allows errors.Is(err, ErrUnknownOpcode) to succeed.
func (e *UnknownOpcodeError) Unwrap() error {
	return ErrUnknownOpcode
}

func (c *CPU) unknownOpcode(opcode uint8, pc uint16, cb bool) error {
	return &UnknownOpcodeError{Opcode: opcode, PC: pc, CB: cb}
}
