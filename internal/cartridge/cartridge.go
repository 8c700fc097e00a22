package cartridge

import (
	"errors"
	"fmt"
)

// Cartridge abstracts over the memory-bank-controller variants: ROM-only
// and MBC1 today, with the switch in New as the seam for adding more.
type Cartridge interface {
	// Read serves the ROM space (0x0000-0x7FFF) or cartridge RAM space
	// (0xA000-0xBFFF), applying whatever bank is currently selected.
	Read(addr uint16) uint8

	// Write targets either MBC control registers (ROM space) or cartridge
	// RAM, depending on address.
	Write(addr uint16, value uint8)

	Header() *Header
	HasBattery() bool

	// GetRAM/SetRAM round-trip battery-backed save data.
	GetRAM() []byte
	SetRAM(data []byte) error
}

// ErrInvalidCartridgeType indicates an unsupported or unknown cartridge type.
var ErrInvalidCartridgeType = errors.New("invalid or unsupported cartridge type")

// ErrROMSizeMismatch indicates the ROM size doesn't match the header.
var ErrROMSizeMismatch = errors.New("ROM size does not match header")

// ErrROMTooLarge indicates the ROM size exceeds the maximum allowed size.
var ErrROMTooLarge = errors.New("ROM size exceeds maximum allowed size of 8 MiB")

// maxROMSize bounds how large a ROM image New will accept (8 MiB covers
// every cartridge type this package implements).
const maxROMSize = 8 * 1024 * 1024

// New parses rom's header and constructs the Cartridge implementation its
// declared type calls for.
func New(rom []byte) (Cartridge, error) {
	if len(rom) > maxROMSize {
		return nil, fmt.Errorf("%w: got %d bytes", ErrROMTooLarge, len(rom))
	}

	header, err := ParseHeader(rom)
	if err != nil {
		return nil, fmt.Errorf("failed to parse header: %w", err)
	}

	if expected := header.GetROMSizeBytes(); len(rom) < expected {
		return nil, fmt.Errorf("%w: expected %d bytes, got %d",
			ErrROMSizeMismatch, expected, len(rom))
	}

	cartType := CartridgeType(header.CartridgeType)
	switch cartType {
	case TypeROMOnly, TypeROMRAM, TypeROMRAMBattery:
		return newROMOnly(rom, header)
	case TypeMBC1, TypeMBC1RAM, TypeMBC1RAMBattery:
		return newMBC1(rom, header)
	default:
		return nil, fmt.Errorf("%w: type 0x%02X (%s)",
			ErrInvalidCartridgeType, byte(cartType), cartType.String())
	}
}
