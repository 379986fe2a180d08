package enigma

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseSettings(t *testing.T) {
	tests := []struct {
		in   string
		want []int
	}{
		{"", nil},
		{"AAA", []int{0, 0, 0}},
		{"adu", []int{0, 3, 20}},
		{"0,3,20", []int{0, 3, 20}},
		{"1 2 3", []int{1, 2, 3}},
		{" 25, 0 ,7 ", []int{25, 0, 7}},
		{"99", []int{99}},
	}
	for _, tt := range tests {
		got, err := ParseSettings(tt.in)
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}

	_, err := ParseSettings("A,B,3")
	assert.Error(t, err)
}

func TestParseLists(t *testing.T) {
	assert.Equal(t, []string{"I", "II", "III"}, ParseRotors("I-II-III"))
	assert.Equal(t, []string{"IV", "V", "I"}, ParseRotors("IV V,I"))
	assert.Equal(t, []string{"QW", "ER"}, ParsePlugboard("QW ER"))
	assert.Equal(t, []string{"QW", "ER"}, ParsePlugboard("QW,ER"))
	assert.Empty(t, ParsePlugboard("  "))
	assert.Equal(t, "ADU", FormatSettings([]int{0, 3, 20}))
}

func TestDefaultSettings(t *testing.T) {
	s := DefaultSettings()
	require.NoError(t, s.Validate())
	m, err := New(s)
	require.NoError(t, err)
	assert.Equal(t, "BDZGO", m.Process("AAAAA"))
}

func TestValidateMessages(t *testing.T) {
	s := DefaultSettings()
	s.Plugboard = []string{"AB", "CD", "EF", "GH", "IJ", "KL", "MN", "OP", "QR", "ST", "UV", "WX", "YZ", "AB"}
	err := s.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "plugboard")
	assert.Contains(t, err.Error(), "no more than 13 values are allowed")

	s = DefaultSettings()
	s.Positions = []int{0, 30, 0}
	err = s.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "positions[1] [30]: must be between 0 and 25")

	s = DefaultSettings()
	s.Rotors[2] = "VIII"
	err = s.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "rotors[2] [VIII]: unknown rotor, expected one of I, II, III, IV, V")
}
