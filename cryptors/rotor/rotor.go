// rotor
package rotor

import (
	"bytes"
	"fmt"

	"github.com/bgallie/enigma/cryptors"
)

// Rotor is one wired wheel of the machine.  The wiring and ring setting are
// fixed when the rotor is built; only the position changes.
type Rotor struct {
	id       Identity
	wiring   *wiring
	ring     int
	start    int
	position int
}

// New returns rotor id with the given ring setting and starting position,
// both in the range 0 - 25.
func New(id Identity, ring, position int) (*Rotor, error) {
	if !id.Valid() {
		return nil, cryptors.NewConfigurationError("rotor", int(id), "unknown rotor")
	}
	if !cryptors.ValidContact(ring) {
		return nil, cryptors.NewConfigurationError("ring", ring, "must be between 0 and 25")
	}
	if !cryptors.ValidContact(position) {
		return nil, cryptors.NewConfigurationError("position", position, "must be between 0 and 25")
	}
	var r Rotor
	r.id = id
	r.wiring = wirings[id]
	r.ring = ring
	r.start, r.position = position, position
	return &r, nil
}

func (r *Rotor) Identity() Identity {
	return r.id
}

func (r *Rotor) RingSetting() int {
	return r.ring
}

func (r *Rotor) Position() int {
	return r.position
}

// SetPosition turns the rotor to position.  Reset still returns to the
// position the rotor was built with.
func (r *Rotor) SetPosition(position int) error {
	if !cryptors.ValidContact(position) {
		return cryptors.NewConfigurationError("position", position, "must be between 0 and 25")
	}
	r.position = position
	return nil
}

// Reset returns the rotor to the position it was built with.
func (r *Rotor) Reset() {
	r.position = r.start
}

// Step advances the rotor by one letter.
func (r *Rotor) Step() {
	r.position = (r.position + 1) % cryptors.AlphabetSize
}

// AtNotch reports whether the next step of this rotor carries its left
// neighbour along.
func (r *Rotor) AtNotch() bool {
	return r.position == r.wiring.notch
}

// Forward passes contact c from the right hand side of the rotor to the left.
func (r *Rotor) Forward(c int) int {
	shift := r.position - r.ring
	return cryptors.Mod(r.wiring.forward[cryptors.Mod(c+shift)] - shift)
}

// Backward is the inverse of Forward.
func (r *Rotor) Backward(c int) int {
	shift := r.position - r.ring
	return cryptors.Mod(r.wiring.backward[cryptors.Mod(c+shift)] - shift)
}

func (r *Rotor) String() string {
	var output bytes.Buffer
	output.WriteString(fmt.Sprintf("rotor.New(%s, %d, %d) [", r.id, r.ring, r.position))
	for i := 0; i < cryptors.AlphabetSize; i++ {
		output.WriteRune(cryptors.Letter(r.Forward(i)))
	}
	output.WriteString("]")
	return output.String()
}
