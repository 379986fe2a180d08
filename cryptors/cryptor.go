// Package cryptors holds the pieces shared by the permutation stages of the
// enigma machine: the alphabet, the Crypter interface and the configuration
// error type.
package cryptors

import "github.com/bgallie/enigma/cryptors/bitops"

const (
	// AlphabetSize is the number of contacts on every rotor, reflector and
	// the plugboard.
	AlphabetSize = 26
	// Alphabet in contact order.
	Alphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"
)

// Crypter is a single permutation stage in the signal path.  Forward is
// applied on the way in to the reflector and Backward on the way out, so
// Backward must be the inverse of Forward for the machine to be reciprocal.
type Crypter interface {
	Forward(c int) int
	Backward(c int) int
}

// Mod reduces n to the range [0, AlphabetSize).
func Mod(n int) int {
	n %= AlphabetSize
	if n < 0 {
		n += AlphabetSize
	}
	return n
}

// Index returns the contact index of an ASCII letter, ignoring case.  The
// second return value is false for anything that is not a letter.
func Index(r rune) (int, bool) {
	switch {
	case r >= 'A' && r <= 'Z':
		return int(r - 'A'), true
	case r >= 'a' && r <= 'z':
		return int(r - 'a'), true
	}
	return 0, false
}

// Letter returns the uppercase letter for contact c.
func Letter(c int) rune {
	return rune(Alphabet[Mod(c)])
}

// ValidContact reports whether c is a contact index.
func ValidContact(c int) bool {
	return c >= 0 && c < AlphabetSize
}

// ParseWiring converts a 26 letter wiring string into a contact table.  It
// panics if the string is not a permutation of the alphabet; wiring tables
// are compiled in constants, so a bad one is a programming error.
func ParseWiring(wiring string) [AlphabetSize]int {
	var tbl [AlphabetSize]int
	seen := bitops.NewSet(AlphabetSize)
	if len(wiring) != AlphabetSize {
		panic("cryptors: wiring must have exactly 26 letters: " + wiring)
	}
	for i, r := range wiring {
		c, ok := Index(r)
		if !ok || bitops.GetBit(seen, uint(c)) {
			panic("cryptors: wiring is not a permutation of the alphabet: " + wiring)
		}
		bitops.SetBit(seen, uint(c))
		tbl[i] = c
	}
	return tbl
}

// Invert returns the inverse permutation of tbl.
func Invert(tbl [AlphabetSize]int) [AlphabetSize]int {
	var inv [AlphabetSize]int
	for i, v := range tbl {
		inv[v] = i
	}
	return inv
}
