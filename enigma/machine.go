// Package enigma simulates the three rotor Enigma I.
//
// A Machine is built from a Settings value and enciphers text one letter at a
// time.  Enciphering is reciprocal: after Reset the same machine turns the
// ciphertext back into the plaintext.  Letters are returned in upper case;
// anything that is not an ASCII letter passes through unchanged and does not
// move the rotors.
//
// A Machine is not safe for concurrent use.  Separate machines share only
// immutable wiring and may run in parallel.
package enigma

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/bgallie/enigma/cryptors"
	"github.com/bgallie/enigma/cryptors/plugboard"
	"github.com/bgallie/enigma/cryptors/reflector"
	"github.com/bgallie/enigma/cryptors/rotor"
)

type Machine struct {
	settings  Settings
	plugboard *plugboard.Plugboard
	bank      *rotor.Bank
	reflector *reflector.Reflector
	path      []cryptors.Crypter // Stages between the keyboard and the reflector.
}

// New builds a machine from s.  It returns a *cryptors.ConfigurationError
// naming the first bad setting, and never a partly built machine.
func New(s Settings) (*Machine, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}

	var rotors [rotor.Slots]*rotor.Rotor
	for i, name := range s.Rotors {
		id, err := rotor.ParseIdentity(name)
		if err != nil {
			return nil, withField(err, fmt.Sprintf("rotors[%d]", i))
		}
		rotors[i], err = rotor.New(id, s.Rings[i], s.Positions[i])
		if err != nil {
			return nil, err
		}
	}

	pb, err := plugboard.New(s.Plugboard)
	if err != nil {
		return nil, err
	}

	refl, err := reflector.Lookup(s.Reflector)
	if err != nil {
		return nil, err
	}

	m := &Machine{
		settings:  s.clone(),
		plugboard: pb,
		bank:      rotor.NewBank(rotors[0], rotors[1], rotors[2]),
		reflector: refl,
	}
	m.settings.Reflector = refl.Name()
	m.path = []cryptors.Crypter{m.plugboard, m.bank}
	return m, nil
}

func withField(err error, field string) error {
	if ce, ok := err.(*cryptors.ConfigurationError); ok {
		return ce.WithField(field)
	}
	return err
}

// Process enciphers text.  Letters are upper cased and enciphered, stepping
// the rotors once each; every other rune is copied as is.  Bytes that are not
// valid UTF-8 are copied as is too.
func (m *Machine) Process(text string) string {
	var sb strings.Builder
	sb.Grow(len(text))
	for i := 0; i < len(text); {
		r, size := utf8.DecodeRuneInString(text[i:])
		if r == utf8.RuneError && size == 1 {
			sb.WriteByte(text[i])
		} else {
			sb.WriteRune(m.ProcessRune(r))
		}
		i += size
	}
	return sb.String()
}

// ProcessRune enciphers a single rune the same way Process does.
func (m *Machine) ProcessRune(r rune) rune {
	c, ok := cryptors.Index(r)
	if !ok {
		return r
	}
	m.bank.Step()
	return cryptors.Letter(m.encipher(c))
}

// encipher sends contact c through the machine with the rotors where they
// currently stand.
func (m *Machine) encipher(c int) int {
	for _, stage := range m.path {
		c = stage.Forward(c)
	}
	c = m.reflector.Reflect(c)
	for i := len(m.path) - 1; i >= 0; i-- {
		c = m.path[i].Backward(c)
	}
	return c
}

// Reset turns the rotors back to the positions the machine was built with.
// Ring settings, wiring and the plugboard never change.
func (m *Machine) Reset() {
	m.bank.Reset()
}

// Positions returns the current rotor positions, left to right.
func (m *Machine) Positions() [rotor.Slots]int {
	return m.bank.Positions()
}

// SetPositions turns the rotors to p, left to right.  Reset still returns to
// the positions in the machine's settings.
func (m *Machine) SetPositions(p [rotor.Slots]int) error {
	return m.bank.SetPositions(p)
}

// SetIndicator is SetPositions with the positions given as window letters.
func (m *Machine) SetIndicator(indicator string) error {
	vals, err := ParseSettings(indicator)
	if err != nil || len(vals) != rotor.Slots || !isLetters(indicator) {
		return cryptors.NewConfigurationError("indicator", indicator, "must be three letters")
	}
	return m.SetPositions([rotor.Slots]int{vals[0], vals[1], vals[2]})
}

// Indicator returns the letters currently showing in the rotor windows.
func (m *Machine) Indicator() string {
	return m.bank.Indicator()
}

// Settings returns the settings the machine was built from, with the
// reflector name filled in.
func (m *Machine) Settings() Settings {
	return m.settings.clone()
}

func (s Settings) clone() Settings {
	c := s
	c.Rotors = append([]string(nil), s.Rotors...)
	c.Positions = append([]int(nil), s.Positions...)
	c.Rings = append([]int(nil), s.Rings...)
	c.Plugboard = append([]string{}, s.Plugboard...)
	return c
}

func (m *Machine) String() string {
	return fmt.Sprintf("enigma %s %s rings %s %s %s",
		m.reflector.Name(),
		strings.Join(m.settings.Rotors, "-"),
		FormatSettings(m.settings.Rings),
		m.Indicator(),
		strings.Join(m.plugboard.Pairs(), " "))
}
