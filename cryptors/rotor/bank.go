package rotor

import (
	"fmt"
	"strings"

	"github.com/bgallie/enigma/cryptors"
)

// Slots is the number of rotors in a bank.
const Slots = 3

// Bank is the set of three rotors in the machine.  Slot 0 holds the right
// most rotor, which steps on every key press and is the first to see the
// signal from the plugboard.
type Bank struct {
	slots [Slots]*Rotor
}

// NewBank builds a bank from rotors given in the order they are read in the
// machine's windows: left, middle, right.
func NewBank(left, middle, right *Rotor) *Bank {
	return &Bank{slots: [Slots]*Rotor{right, middle, left}}
}

// Rotor returns the rotor in slot i, where slot 0 is the right most rotor.
func (b *Bank) Rotor(i int) *Rotor {
	return b.slots[i]
}

// Step advances the rotors for one key press.  The middle rotor carries the
// left rotor and itself when it sits at its notch, which makes it step on
// two consecutive key presses.
func (b *Bank) Step() {
	right, middle, left := b.slots[0], b.slots[1], b.slots[2]
	if middle.AtNotch() {
		middle.Step()
		left.Step()
	} else if right.AtNotch() {
		middle.Step()
	}
	right.Step()
}

// Forward passes c through the rotors from right to left.
func (b *Bank) Forward(c int) int {
	for _, r := range b.slots {
		c = r.Forward(c)
	}
	return c
}

// Backward passes c through the rotors from left to right.
func (b *Bank) Backward(c int) int {
	for i := Slots - 1; i >= 0; i-- {
		c = b.slots[i].Backward(c)
	}
	return c
}

// Reset returns every rotor to the position it was built with.
func (b *Bank) Reset() {
	for _, r := range b.slots {
		r.Reset()
	}
}

// Positions returns the rotor positions left to right.
func (b *Bank) Positions() [Slots]int {
	var p [Slots]int
	for i := range p {
		p[i] = b.slots[Slots-1-i].Position()
	}
	return p
}

// SetPositions turns the rotors, given left to right, to p.  Nothing is
// changed if any position is out of range.
func (b *Bank) SetPositions(p [Slots]int) error {
	for i, v := range p {
		if !cryptors.ValidContact(v) {
			return cryptors.NewConfigurationError(fmt.Sprintf("positions[%d]", i), v, "must be between 0 and 25")
		}
	}
	for i, v := range p {
		_ = b.slots[Slots-1-i].SetPosition(v)
	}
	return nil
}

// Indicator returns the letters showing in the rotor windows, left to right.
func (b *Bank) Indicator() string {
	var sb strings.Builder
	for _, p := range b.Positions() {
		sb.WriteRune(cryptors.Letter(p))
	}
	return sb.String()
}
