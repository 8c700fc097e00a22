package cpu

// Flag bit positions within F. Only the top nibble of F is ever nonzero;
// the bottom nibble reads as zero on real hardware.
const (
	FlagZ uint8 = 1 << 7 // result was zero
	FlagN uint8 = 1 << 6 // last op was a subtraction
	FlagH uint8 = 1 << 5 // carry out of bit 3
	FlagC uint8 = 1 << 4 // carry out of bit 7 (or borrow)
)

// Registers holds the SM83 register file: six general-purpose 8-bit
// registers addressable in BC/DE/HL pairs, the accumulator/flags pair AF,
// and the two 16-bit pointers SP and PC.
type Registers struct {
	A, F uint8
	B, C uint8
	D, E uint8
	H, L uint8

	SP uint16
	PC uint16
}

// NewRegisters returns the register file in the state a DMG leaves it
// after its boot ROM hands off to the cartridge at PC=0x0100.
func NewRegisters() *Registers {
	return &Registers{
		A: 0x01, F: 0xB0,
		B: 0x00, C: 0x13,
		D: 0x00, E: 0xD8,
		H: 0x01, L: 0x4D,
		SP: 0xFFFE,
		PC: 0x0100,
	}
}

func pair(hi, lo uint8) uint16 {
	return uint16(hi)<<8 | uint16(lo)
}

func split(value uint16) (hi, lo uint8) {
	return uint8(value >> 8), uint8(value) //nolint:gosec // G115: intentional byte extraction from a 16-bit pair
}

// AF returns the accumulator and flags as a single 16-bit pair.
func (r *Registers) AF() uint16 { return pair(r.A, r.F) }

// BC returns B and C as a single 16-bit pair.
func (r *Registers) BC() uint16 { return pair(r.B, r.C) }

// DE returns D and E as a single 16-bit pair.
func (r *Registers) DE() uint16 { return pair(r.D, r.E) }

// HL returns H and L as a single 16-bit pair.
func (r *Registers) HL() uint16 { return pair(r.H, r.L) }

// SetAF loads the accumulator and flags from a 16-bit pair. The low nibble
// of F is masked off: those bits don't exist on real hardware.
func (r *Registers) SetAF(value uint16) {
	r.A, r.F = split(value)
	r.F &= 0xF0
}

// SetBC loads B and C from a 16-bit pair.
func (r *Registers) SetBC(value uint16) { r.B, r.C = split(value) }

// SetDE loads D and E from a 16-bit pair.
func (r *Registers) SetDE(value uint16) { r.D, r.E = split(value) }

// SetHL loads H and L from a 16-bit pair.
func (r *Registers) SetHL(value uint16) { r.H, r.L = split(value) }

// GetFlag reports whether the given flag bit is set in F.
func (r *Registers) GetFlag(flag uint8) bool {
	return r.F&flag != 0
}

// SetFlag forces a flag bit on.
func (r *Registers) SetFlag(flag uint8) {
	r.F |= flag
}

// ClearFlag forces a flag bit off.
func (r *Registers) ClearFlag(flag uint8) {
	r.F &^= flag
}

// SetFlagTo sets or clears a flag bit according to value, collapsing the
// usual if/else at call sites that compute a flag from a condition.
func (r *Registers) SetFlagTo(flag uint8, value bool) {
	if value {
		r.SetFlag(flag)
	} else {
		r.ClearFlag(flag)
	}
}

// ZeroFlag reports the Z flag.
func (r *Registers) ZeroFlag() bool { return r.GetFlag(FlagZ) }

// SubtractFlag reports the N flag.
func (r *Registers) SubtractFlag() bool { return r.GetFlag(FlagN) }

// HalfCarryFlag reports the H flag.
func (r *Registers) HalfCarryFlag() bool { return r.GetFlag(FlagH) }

// CarryFlag reports the C flag.
func (r *Registers) CarryFlag() bool { return r.GetFlag(FlagC) }
