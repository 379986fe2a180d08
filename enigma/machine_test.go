package enigma

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bgallie/enigma/cryptors"
	"github.com/bgallie/enigma/cryptors/rotor"
)

func settings(rotors string, positions, rings string, plugboard string) Settings {
	p, _ := ParseSettings(positions)
	r, _ := ParseSettings(rings)
	return Settings{
		Rotors:    ParseRotors(rotors),
		Positions: p,
		Rings:     r,
		Plugboard: ParsePlugboard(plugboard),
	}
}

func mustMachine(t *testing.T, s Settings) *Machine {
	t.Helper()
	m, err := New(s)
	require.NoError(t, err)
	return m
}

func TestKnownVectors(t *testing.T) {
	tests := []struct {
		name     string
		settings Settings
		in       string
		want     string
	}{
		{
			name:     "hello world with two cables",
			settings: settings("I II III", "AAA", "AAA", "QW ER"),
			in:       "HELLOWORLD",
			want:     "ICBDAFMYAZ",
		},
		{
			name:     "bare machine",
			settings: settings("I II III", "AAA", "AAA", ""),
			in:       "AAAAA",
			want:     "BDZGO",
		},
		{
			name:     "ring settings BBB",
			settings: settings("I II III", "AAA", "BBB", ""),
			in:       "AAAAA",
			want:     "EWTYX",
		},
		{
			name:     "rotor III carries the middle rotor",
			settings: settings("I II III", "AAA", "AAA", ""),
			in:       strings.Repeat("A", 30),
			want:     "BDZGOWCXLTKSBTMCDLPBMUQOFXYHCX",
		},
		{
			name: "reflector C with rotors IV V II",
			settings: Settings{
				Rotors:    []string{"IV", "V", "II"},
				Positions: []int{5, 10, 15},
				Rings:     []int{3, 7, 11},
				Plugboard: []string{"AZ", "BY", "CX"},
				Reflector: "C",
			},
			in:   "THEQUICKBROWNFOXJUMPSOVERTHELAZYDOG",
			want: "ULZECHRDSNMJYUQJCCKCHBUZDRNVREHOPJS",
		},
		{
			name:     "numeric rotor ids and a reused rotor",
			settings: settings("0,0,0", "0,0,0", "0,0,0", ""),
			in:       "HELLOWORLD",
			want:     "GMHWPIZSZM",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := mustMachine(t, tt.settings)
			assert.Equal(t, tt.want, m.Process(tt.in))
		})
	}
}

func TestReciprocity(t *testing.T) {
	m := mustMachine(t, settings("I II III", "AAA", "AAA", "QW ER"))
	cipher := m.Process("HELLOWORLD")
	m.Reset()
	assert.Equal(t, "HELLOWORLD", m.Process(cipher))

	// Two machines with the same key agree as well.
	m1 := mustMachine(t, settings("V I IV", "XYZ", "CAT", "AB CD EF"))
	m2 := mustMachine(t, settings("V I IV", "XYZ", "CAT", "AB CD EF"))
	msg := "ATTACKATDAWNTHEBRIDGEISTAKEN"
	assert.Equal(t, msg, m2.Process(m1.Process(msg)))
}

func TestPunctuationPassesThrough(t *testing.T) {
	m := mustMachine(t, settings("I II III", "AAA", "AAA", "QW ER"))
	assert.Equal(t, "ICBDA, FMYAZ!", m.Process("Hello, World!"))

	m = mustMachine(t, settings("I II III", "AAA", "AAA", ""))
	got := m.Process("HELLO, WORLD!")
	assert.Equal(t, "ILBDA, AMTAZ!", got)

	m = mustMachine(t, settings("I II III", "AAA", "AAA", ""))
	assert.Equal(t, "123 ½ ... ", m.Process("123 ½ ... "))
	assert.Equal(t, "AAA", m.Indicator(), "punctuation must not step the rotors")
}

func TestCaseIsNormalized(t *testing.T) {
	upper := mustMachine(t, settings("I II III", "AAA", "AAA", "")).Process("HELLO")
	lower := mustMachine(t, settings("I II III", "AAA", "AAA", "")).Process("hello")
	mixed := mustMachine(t, settings("I II III", "AAA", "AAA", "")).Process("hElLo")
	assert.Equal(t, upper, lower)
	assert.Equal(t, upper, mixed)
	assert.Equal(t, strings.ToUpper(upper), upper)
}

func TestConfigurationSensitivity(t *testing.T) {
	base := mustMachine(t, settings("I II III", "AAA", "AAA", "")).Process("HELLO")
	assert.NotEqual(t, "HELLO", base)

	for name, s := range map[string]Settings{
		"position":  settings("I II III", "BAA", "AAA", ""),
		"ring":      settings("I II III", "AAA", "BAA", ""),
		"plugboard": settings("I II III", "AAA", "AAA", "HX"),
		"rotor":     settings("I II IV", "AAA", "AAA", ""),
		"reflector": {Rotors: []string{"I", "II", "III"}, Positions: []int{0, 0, 0}, Rings: []int{0, 0, 0}, Reflector: "C"},
	} {
		t.Run(name, func(t *testing.T) {
			assert.NotEqual(t, base, mustMachine(t, s).Process("HELLO"))
		})
	}
}

func TestPlugboardSwapsLetters(t *testing.T) {
	m := mustMachine(t, settings("I II III", "AAA", "AAA", "AB"))
	a := m.Process("A")
	assert.NotEqual(t, a, m.Process("B"))
}

func TestNoLetterEnciphersToItself(t *testing.T) {
	m := mustMachine(t, settings("III I II", "QEV", "AZM", "PO ML IU"))
	in := strings.Repeat("ABCDEFGHIJKLMNOPQRSTUVWXYZ", 40)
	out := m.Process(in)
	for i := range in {
		assert.NotEqual(t, in[i], out[i], "position %d", i)
	}
}

func TestReset(t *testing.T) {
	m := mustMachine(t, settings("I II III", "ADU", "CCC", "QW"))
	first := m.Process("SOMELONGERMESSAGE")
	assert.NotEqual(t, "ADU", m.Indicator())
	m.Reset()
	assert.Equal(t, "ADU", m.Indicator())
	assert.Equal(t, first, m.Process("SOMELONGERMESSAGE"))
	assert.Equal(t, []int{2, 2, 2}, m.Settings().Rings)
}

func TestSetIndicator(t *testing.T) {
	m := mustMachine(t, settings("I II III", "AAA", "AAA", ""))
	require.NoError(t, m.SetIndicator("adu"))
	assert.Equal(t, [rotor.Slots]int{0, 3, 20}, m.Positions())
	m.Process("AAA")
	assert.Equal(t, "BFX", m.Indicator())

	require.NoError(t, m.SetIndicator("ADU"))
	for _, bad := range []string{"AB", "ABCD", "A1C", "0,1,2"} {
		assert.ErrorIs(t, m.SetIndicator(bad), cryptors.ErrConfiguration, bad)
	}
	assert.Equal(t, "ADU", m.Indicator())
}

func TestResetIgnoresIndicator(t *testing.T) {
	m := mustMachine(t, settings("I II III", "AAA", "AAA", "QW ER"))
	require.NoError(t, m.SetIndicator("XYZ"))
	m.Process("SOMETEXT")
	m.Reset()
	assert.Equal(t, "AAA", m.Indicator())
	assert.Equal(t, []int{0, 0, 0}, m.Settings().Positions)
	assert.Equal(t, "ICBDAFMYAZ", m.Process("HELLOWORLD"))
}

func TestInvalidUTF8PassesThrough(t *testing.T) {
	m := mustMachine(t, settings("I II III", "AAA", "AAA", ""))
	out := m.Process("A\xffB")
	require.Len(t, out, 3)
	assert.Equal(t, byte(0xff), out[1])
	assert.Equal(t, "B", out[:1])

	m.Reset()
	assert.Equal(t, "A\xffB", m.Process(out))
}

func TestNewRejectsBadSettings(t *testing.T) {
	good := func() Settings { return settings("I II III", "AAA", "AAA", "QW ER") }
	tests := []struct {
		name   string
		modify func(*Settings)
		field  string
	}{
		{"unknown rotor", func(s *Settings) { s.Rotors[1] = "VI" }, "rotors[1]"},
		{"two rotors", func(s *Settings) { s.Rotors = s.Rotors[:2] }, "rotors"},
		{"position too large", func(s *Settings) { s.Positions[2] = 26 }, "positions[2]"},
		{"negative ring", func(s *Settings) { s.Rings[0] = -1 }, "rings[0]"},
		{"missing rings", func(s *Settings) { s.Rings = nil }, "rings"},
		{"pair to itself", func(s *Settings) { s.Plugboard = []string{"AA"} }, "plugboard[0]"},
		{"letter reused", func(s *Settings) { s.Plugboard = []string{"AB", "BC"} }, "plugboard[1]"},
		{"bad character", func(s *Settings) { s.Plugboard = []string{"A?"} }, "plugboard[0]"},
		{"unknown reflector", func(s *Settings) { s.Reflector = "A" }, "reflector"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := good()
			tt.modify(&s)
			m, err := New(s)
			assert.Nil(t, m)
			var ce *cryptors.ConfigurationError
			require.ErrorAs(t, err, &ce)
			assert.Equal(t, tt.field, ce.Field)
			assert.ErrorIs(t, err, cryptors.ErrConfiguration)
		})
	}
}

func TestSettingsAreCopied(t *testing.T) {
	s := settings("I II III", "AAA", "AAA", "QW")
	m := mustMachine(t, s)
	s.Positions[0] = 5
	s.Rotors[0] = "V"
	got := m.Settings()
	assert.Equal(t, []int{0, 0, 0}, got.Positions)
	assert.Equal(t, []string{"I", "II", "III"}, got.Rotors)
	assert.Equal(t, "B", got.Reflector)
	assert.Equal(t, "enigma B I-II-III rings AAA AAA QW", m.String())
}
