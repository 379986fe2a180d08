// plugboard project plugboard.go
package plugboard

import (
	"bytes"
	"fmt"
	"sort"
	"strings"

	"github.com/bgallie/enigma/cryptors"
	"github.com/bgallie/enigma/cryptors/bitops"
)

// MaximumPairs is the number of cables that fit on the plugboard.
const MaximumPairs = cryptors.AlphabetSize / 2

// Plugboard is the Steckerbrett.  Every cable swaps a pair of letters;
// letters without a cable pass straight through.
type Plugboard struct {
	pairs []string                          // Normalized pairs, sorted.
	swap  [cryptors.AlphabetSize]int        // Swap table created from the pairs.
	used  [cryptors.AlphabetSize/8 + 1]byte // Letters carrying a cable.
}

// New creates a plugboard from a list of letter pairs such as "QW" or "q-w".
// A pair may use a single space, '-' or ':' between the letters.
func New(pairs []string) (*Plugboard, error) {
	var p Plugboard
	for i := range p.swap {
		p.swap[i] = i
	}

	for i, pair := range pairs {
		field := fmt.Sprintf("plugboard[%d]", i)
		a, b, err := parsePair(pair)
		if err != nil {
			return nil, err.WithField(field)
		}
		if a == b {
			return nil, cryptors.NewConfigurationError(field, pair, "pair connects %c to itself", cryptors.Letter(a))
		}
		for _, c := range []int{a, b} {
			if bitops.GetBit(p.used[:], uint(c)) {
				return nil, cryptors.NewConfigurationError(field, pair, "letter %c is already plugged", cryptors.Letter(c))
			}
			bitops.SetBit(p.used[:], uint(c))
		}
		p.swap[a], p.swap[b] = b, a
		if a > b {
			a, b = b, a
		}
		p.pairs = append(p.pairs, string([]rune{cryptors.Letter(a), cryptors.Letter(b)}))
	}

	sort.Strings(p.pairs)
	return &p, nil
}

func parsePair(pair string) (int, int, *cryptors.ConfigurationError) {
	s := strings.TrimSpace(pair)
	if len(s) == 3 && strings.ContainsRune(" -:", rune(s[1])) {
		s = s[:1] + s[2:]
	}
	r := []rune(s)
	if len(r) != 2 {
		return 0, 0, cryptors.NewConfigurationError("plugboard", pair, "a pair must name exactly two letters")
	}
	a, ok := cryptors.Index(r[0])
	if !ok {
		return 0, 0, cryptors.NewConfigurationError("plugboard", pair, "%q is not a letter", r[0])
	}
	b, ok := cryptors.Index(r[1])
	if !ok {
		return 0, 0, cryptors.NewConfigurationError("plugboard", pair, "%q is not a letter", r[1])
	}
	return a, b, nil
}

// Swap returns the letter cabled to c, or c if it has no cable.
func (p *Plugboard) Swap(c int) int {
	return p.swap[c]
}

func (p *Plugboard) Forward(c int) int {
	return p.swap[c]
}

func (p *Plugboard) Backward(c int) int {
	return p.swap[c]
}

// Pairs returns the cabled pairs in normalized form ("EQ", "RW", ...).
func (p *Plugboard) Pairs() []string {
	return append([]string(nil), p.pairs...)
}

func (p *Plugboard) String() string {
	var output bytes.Buffer
	output.WriteString("plugboard.New([]string{")
	for i, v := range p.pairs {
		if i > 0 {
			output.WriteString(", ")
		}
		output.WriteString(fmt.Sprintf("%q", v))
	}
	output.WriteString("})")
	return output.String()
}
