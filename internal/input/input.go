// Package input implements Game Boy joypad input handling.
package input

// joypadInterruptBit is the interrupt-flag bit number for joypad (P10-P13)
// transitions, matching the controller's priority-ordered Joypad source.
const joypadInterruptBit = 4

// Joypad models the P1/JOYP register (0xFF00): two selectable 4-button
// groups (action, direction) multiplexed onto the same four input lines.
type Joypad struct {
	selectAction    bool // P15; 0 selects the action-button group
	selectDirection bool // P14; 0 selects the direction-button group

	buttonA      bool
	buttonB      bool
	buttonStart  bool
	buttonSelect bool
	buttonUp     bool
	buttonDown   bool
	buttonLeft   bool
	buttonRight  bool

	requestInterrupt func(uint8)
}

// New returns a Joypad with both button groups deselected, matching the
// register's reset state.
func New(requestInterrupt func(uint8)) *Joypad {
	return &Joypad{
		selectAction:     true,
		selectDirection:  true,
		requestInterrupt: requestInterrupt,
	}
}

// opposes returns the d-pad direction opposite to button, or "" for a
// non-directional button.
func opposes(button string) string {
	switch button {
	case "Up":
		return "Down"
	case "Down":
		return "Up"
	case "Left":
		return "Right"
	case "Right":
		return "Left"
	default:
		return ""
	}
}

// pressed returns a pointer to the button's state so callers can read or
// mutate it without a second switch.
func (j *Joypad) pressed(button string) *bool {
	switch button {
	case "A":
		return &j.buttonA
	case "B":
		return &j.buttonB
	case "Start":
		return &j.buttonStart
	case "Select":
		return &j.buttonSelect
	case "Up":
		return &j.buttonUp
	case "Down":
		return &j.buttonDown
	case "Left":
		return &j.buttonLeft
	case "Right":
		return &j.buttonRight
	default:
		return nil
	}
}

// Read returns the current P1/JOYP value: bits 6-7 always read 1, bits 4-5
// reflect the selection written by the CPU, and bits 0-3 report the
// selected group's buttons (0 = pressed).
func (j *Joypad) Read() uint8 {
	result := uint8(0xC0)

	if j.selectAction {
		result |= 0x20
	}
	if j.selectDirection {
		result |= 0x10
	}

	lines := uint8(0x0F)
	if !j.selectAction {
		lines &^= j.lineBits(j.buttonA, j.buttonB, j.buttonSelect, j.buttonStart)
	}
	if !j.selectDirection {
		lines &^= j.lineBits(j.buttonRight, j.buttonLeft, j.buttonUp, j.buttonDown)
	}

	return result | lines
}

// lineBits packs four button states into bits 0-3 in the order the caller
// supplies them (bit 0 = first argument).
func (j *Joypad) lineBits(bit0, bit1, bit2, bit3 bool) uint8 {
	var v uint8
	if bit0 {
		v |= 0x01
	}
	if bit1 {
		v |= 0x02
	}
	if bit2 {
		v |= 0x04
	}
	if bit3 {
		v |= 0x08
	}
	return v
}

// Write updates the selection bits (P14/P15); the button lines themselves
// are read-only from the CPU's perspective.
func (j *Joypad) Write(value uint8) {
	j.selectAction = value&0x20 != 0
	j.selectDirection = value&0x10 != 0
}

// PressButton marks button as held. The joypad interrupt fires on the
// released-to-pressed transition. Opposing d-pad directions can't both be
// held at once: pressing one while its opposite is already down leaves the
// line unset.
func (j *Joypad) PressButton(button string) {
	state := j.pressed(button)
	if state == nil {
		return
	}

	wasPressed := *state

	if opp := j.pressed(opposes(button)); opp == nil || !*opp {
		*state = true
	}

	if !wasPressed && *state && j.requestInterrupt != nil {
		j.requestInterrupt(joypadInterruptBit)
	}
}

// ReleaseButton marks button as released.
func (j *Joypad) ReleaseButton(button string) {
	if state := j.pressed(button); state != nil {
		*state = false
	}
}
