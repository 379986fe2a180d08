// Package reflector provides the fixed reflectors (Umkehrwalze) of the
// Enigma I.  A reflector has no moving parts, so the values here are shared
// by every machine.
package reflector

import (
	"strings"

	"github.com/bgallie/enigma/cryptors"
)

// Reflector is an involution of the alphabet with no fixed point.
type Reflector struct {
	name   string
	wiring [cryptors.AlphabetSize]int
}

var (
	B = mustNew("B", "YRUHQSLDPXNGOKMIEBFZCWVJAT")
	C = mustNew("C", "FVPJIAOYEDRZXWGCTKUQSBNMHL")

	// Default is the reflector used when none is named.
	Default = B

	byName = map[string]*Reflector{"B": B, "C": C}
)

func mustNew(name, wiring string) *Reflector {
	r := &Reflector{name: name, wiring: cryptors.ParseWiring(wiring)}
	for i, v := range r.wiring {
		if v == i || r.wiring[v] != i {
			panic("reflector: wiring " + name + " is not a fixed point free involution")
		}
	}
	return r
}

// Lookup returns the reflector with the given name.  An empty name selects
// the default reflector.
func Lookup(name string) (*Reflector, error) {
	n := strings.ToUpper(strings.TrimSpace(name))
	if n == "" {
		return Default, nil
	}
	if r, ok := byName[n]; ok {
		return r, nil
	}
	return nil, cryptors.NewConfigurationError("reflector", name, "unknown reflector, expected B or C")
}

func (r *Reflector) Name() string {
	return r.name
}

// Reflect returns the contact wired to c.
func (r *Reflector) Reflect(c int) int {
	return r.wiring[c]
}

func (r *Reflector) Forward(c int) int {
	return r.wiring[c]
}

func (r *Reflector) Backward(c int) int {
	return r.wiring[c]
}

func (r *Reflector) String() string {
	var sb strings.Builder
	for _, v := range r.wiring {
		sb.WriteRune(cryptors.Letter(v))
	}
	return r.name + " [" + sb.String() + "]"
}
