// Package cpu implements the Sharp SM83 CPU emulation for the Game Boy.
package cpu

import (
	"fmt"

	"github.com/harris-jacob/gb-emulator/internal/interrupt"
)

// Memory interface for CPU to access memory bus.
type Memory interface {
	Read(addr uint16) uint8
	Write(addr uint16, value uint8)
}

// CPU represents the Sharp SM83 CPU.
type CPU struct {
	Registers *Registers
	Memory    Memory

	// interrupts performs priority dispatch over the bus-resident IF/IE
	// registers; see internal/interrupt.
	interrupts *interrupt.Controller

	// Interrupt master enable flag. Unlike IF/IE this is not bus-addressable
	// hardware state: it lives only in the CPU and is gated by EI/DI/RETI.
	IME bool

	// Pending IME for EI instruction (delayed enable).
	// EI sets this flag; the next Step turns it into IME=true before that
	// step's interrupt check.
	pendingIME bool

	// Halt and stop states
	halted  bool
	stopped bool

	// HALT bug: when HALT is executed with IME=0 and an interrupt pending,
	// the PC doesn't increment after the next instruction fetch, causing
	// the first byte to be read twice.
	haltBug bool

	// wasHaltBug snapshots haltBug for the duration of one handler call,
	// since haltBug itself is cleared right after the opcode fetch (so a
	// multi-byte instruction's operand fetches behave normally).
	wasHaltBug bool

	// Cycle counter
	Cycles uint64
}

// New creates a new CPU instance.
func New(mem Memory) *CPU {
	return &CPU{
		Registers:  NewRegisters(),
		Memory:     mem,
		interrupts: interrupt.NewController(),
		IME:        false,
		halted:     false,
		stopped:    false,
		Cycles:     0,
	}
}

// Halted reports whether the CPU is in the HALT low-power state.
func (c *CPU) Halted() bool {
	return c.halted
}

// Stopped reports whether the CPU is in the STOP low-power state. STOP is
// exited only by an external signal (the host clearing it via Resume), not
// by the core itself — see spec §4G's STOP/HALT state machine.
func (c *CPU) Stopped() bool {
	return c.stopped
}

// Resume clears a pending STOP state. The core never calls this itself;
// it exists for the host to invoke once the external wake condition
// (joypad input on real hardware) has occurred.
func (c *CPU) Resume() {
	c.stopped = false
}

// Step executes at most one instruction, servicing a pending interrupt
// first if one is due, and returns the number of clock cycles elapsed.
func (c *CPU) Step() (uint8, error) {
	if c.stopped {
		return 0, nil
	}

	// An EI executed last step becomes effective now, before this step's
	// interrupt check or fetch — the one-instruction delay from spec §4D.
	if c.pendingIME {
		c.IME = true
		c.pendingIME = false
	}

	if c.halted {
		pending := c.interrupts.Pending(c.Memory)
		if pending == 0 {
			// Idle M-cycle; nothing to dispatch and nothing to fetch.
			c.Cycles += 4
			return 4, nil
		}
		// A pending, enabled interrupt always wakes HALT, whether or not
		// IME will actually service it this step.
		c.halted = false
	}

	if cycles := c.dispatchInterrupt(); cycles > 0 {
		c.Cycles += uint64(cycles)
		return cycles, nil
	}

	pc := c.Registers.PC
	opcode := c.fetchByte()

	// The haltBug flag only affects the opcode fetch that follows a HALT
	// executed with IME disabled and an interrupt pending; snapshot it, then
	// clear it before any operand fetches the handler performs.
	c.wasHaltBug = c.haltBug
	c.haltBug = false

	var cycles uint8
	var err error
	if opcode == 0xCB {
		cbOpcode := c.fetchByte()
		cycles = c.executeCB(cbOpcode)
	} else {
		cycles, err = c.execute(opcode, pc)
	}
	if err != nil {
		return 0, err
	}

	c.Cycles += uint64(cycles)
	return cycles, nil
}

// dispatchInterrupt runs the §4D priority-dispatch algorithm once. It
// returns the number of cycles consumed (20 on a serviced interrupt, 0 if
// none was serviced) so Step can account for it the same way it accounts
// for an executed instruction.
func (c *CPU) dispatchInterrupt() uint8 {
	if !c.IME {
		return 0
	}

	pending := c.interrupts.Pending(c.Memory)
	if pending == 0 {
		return 0
	}

	source, ok := c.interrupts.Highest(pending)
	if !ok {
		return 0
	}

	c.IME = false
	c.pendingIME = false
	c.interrupts.Acknowledge(c.Memory, source)
	c.push(c.Registers.PC)
	c.Registers.PC = source.Vector()

	return 20
}

// RequestInterrupt sets the IF bit for source, the same effect an external
// peripheral (PPU, timer, serial, joypad) has when it raises its line.
func (c *CPU) RequestInterrupt(source interrupt.Source) {
	c.interrupts.Request(c.Memory, source)
}

// fetchByte fetches the next byte from memory and increments PC.
func (c *CPU) fetchByte() uint8 {
	value := c.Memory.Read(c.Registers.PC)

	// HALT bug: when haltBug is active, the PC doesn't increment on the first fetch,
	// causing the byte to be read again.
	if !c.haltBug {
		c.Registers.PC++
	}

	return value
}

// fetchWord fetches the next word (16-bit) from memory and increments PC.
func (c *CPU) fetchWord() uint16 {
	low := uint16(c.fetchByte())
	high := uint16(c.fetchByte())
	return high<<8 | low
}

// push pushes a 16-bit value onto the stack.
// Note: SP is decremented first (pre-decrement), then values are written.
func (c *CPU) push(value uint16) {
	c.Registers.SP -= 2
	c.Memory.Write(c.Registers.SP, uint8(value))      //nolint:gosec // G115: Intentional byte extraction from 16-bit value
	c.Memory.Write(c.Registers.SP+1, uint8(value>>8)) //nolint:gosec // G115: Intentional byte extraction from 16-bit value
}

// pop pops a 16-bit value from the stack.
// Note: Values are read first, then SP is incremented (post-increment).
// This asymmetry with push() is intentional and matches Game Boy hardware behavior.
func (c *CPU) pop() uint16 {
	low := uint16(c.Memory.Read(c.Registers.SP))
	high := uint16(c.Memory.Read(c.Registers.SP + 1))
	c.Registers.SP += 2
	return high<<8 | low
}

// Trace formats a single debug line: PC, SP, the opcode about to be
// fetched, and register contents. Intended for the CLI's --debug mode,
// called before Step so PC/opcode reflect the instruction Step is about
// to execute.
func (c *CPU) Trace() string {
	opcode := c.Memory.Read(c.Registers.PC)
	r := c.Registers
	return fmt.Sprintf(
		"PC=%04X SP=%04X OP=%02X AF=%04X BC=%04X DE=%04X HL=%04X IME=%v",
		r.PC, r.SP, opcode, r.AF(), r.BC(), r.DE(), r.HL(), c.IME,
	)
}
