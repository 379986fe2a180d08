package rotor

import (
	"strconv"
	"strings"

	"github.com/bgallie/enigma/cryptors"
)

// Identity selects one of the Enigma I rotors.
type Identity int

const (
	I Identity = iota
	II
	III
	IV
	V
	numIdentities
)

var identityNames = [numIdentities]string{"I", "II", "III", "IV", "V"}

// wiring is the fixed part of a rotor.  There is one per identity and it is
// shared by every Rotor built from that identity.
type wiring struct {
	forward  [cryptors.AlphabetSize]int
	backward [cryptors.AlphabetSize]int
	notch    int
}

var wirings [numIdentities]*wiring

func init() {
	tables := [numIdentities]struct {
		wiring string
		notch  rune
	}{
		I:   {"EKMFLGDQVZNTOWYHXUSPAIBRCJ", 'Q'},
		II:  {"AJDKSIRUXBLHWTMCQGZNPYFVOE", 'E'},
		III: {"BDFHJLCPRTXVZNYEIWGAKMUSQO", 'V'},
		IV:  {"ESOVPZJAYQUIRHXLNFTGKDCMWB", 'J'},
		V:   {"VZBRGITYUPSDNHLXAWMJQOFECK", 'Z'},
	}
	for id, t := range tables {
		w := &wiring{forward: cryptors.ParseWiring(t.wiring)}
		w.backward = cryptors.Invert(w.forward)
		w.notch, _ = cryptors.Index(t.notch)
		wirings[id] = w
	}
}

// Identities returns every rotor identity in order.
func Identities() []Identity {
	ids := make([]Identity, numIdentities)
	for i := range ids {
		ids[i] = Identity(i)
	}
	return ids
}

func (id Identity) Valid() bool {
	return id >= 0 && id < numIdentities
}

func (id Identity) String() string {
	if !id.Valid() {
		return "Identity(" + strconv.Itoa(int(id)) + ")"
	}
	return identityNames[id]
}

// Notch returns the window letter at which the rotor carries its left
// neighbour.
func (id Identity) Notch() rune {
	return cryptors.Letter(wirings[id].notch)
}

// ParseIdentity accepts a roman numeral ("I" through "V", any case) or a zero
// based rotor number ("0" is rotor I).
func ParseIdentity(s string) (Identity, error) {
	name := strings.ToUpper(strings.TrimSpace(s))
	names := make([]string, 0, numIdentities)
	for _, id := range Identities() {
		if id.String() == name {
			return id, nil
		}
		names = append(names, id.String())
	}
	if n, err := strconv.Atoi(name); err == nil && Identity(n).Valid() {
		return Identity(n), nil
	}
	return 0, cryptors.NewConfigurationError("rotor", s,
		"unknown rotor, expected one of %s", strings.Join(names, ", "))
}
