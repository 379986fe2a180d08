package enigma

import (
	"errors"
	"fmt"
	"reflect"
	"strconv"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"

	"github.com/bgallie/enigma/cryptors"
	"github.com/bgallie/enigma/cryptors/plugboard"
	"github.com/bgallie/enigma/cryptors/rotor"
)

// Settings is the daily key of a machine.  Rotors, Positions and Rings are
// listed left to right, the way the operator reads them in the windows.
type Settings struct {
	Rotors    []string `yaml:"rotors" validate:"len=3,dive,rotor"`
	Positions []int    `yaml:"positions" validate:"len=3,dive,min=0,max=25"`
	Rings     []int    `yaml:"rings" validate:"len=3,dive,min=0,max=25"`
	Plugboard []string `yaml:"plugboard" validate:"max=13,dive,plugpair"`
	Reflector string   `yaml:"reflector,omitempty" validate:"omitempty,reflector"`
}

// DefaultSettings returns rotors I-II-III at AAA with rings AAA, an empty
// plugboard and reflector B.
func DefaultSettings() Settings {
	return Settings{
		Rotors:    []string{"I", "II", "III"},
		Positions: []int{0, 0, 0},
		Rings:     []int{0, 0, 0},
		Plugboard: []string{},
		Reflector: "B",
	}
}

var (
	validate     *validator.Validate
	validateOnce sync.Once
)

func settingsValidator() *validator.Validate {
	validateOnce.Do(func() {
		v := validator.New()
		v.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("yaml"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			return name
		})
		_ = v.RegisterValidation("rotor", validateRotor)
		_ = v.RegisterValidation("plugpair", validatePlugPair)
		_ = v.RegisterValidation("reflector", validateReflector)
		validate = v
	})
	return validate
}

func validateRotor(fl validator.FieldLevel) bool {
	_, err := rotor.ParseIdentity(fl.Field().String())
	return err == nil
}

func validatePlugPair(fl validator.FieldLevel) bool {
	_, err := plugboard.New([]string{fl.Field().String()})
	return err == nil
}

func validateReflector(fl validator.FieldLevel) bool {
	switch strings.ToUpper(strings.TrimSpace(fl.Field().String())) {
	case "B", "C":
		return true
	}
	return false
}

// Validate checks the shape of the settings.  Conflicts between plugboard
// pairs are found when the machine is built.
func (s Settings) Validate() error {
	err := settingsValidator().Struct(s)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return err
	}
	fe := verrs[0]
	return cryptors.NewConfigurationError(fe.Field(), fe.Value(), "%s", describe(fe))
}

func describe(fe validator.FieldError) string {
	switch fe.Tag() {
	case "len":
		return "exactly " + fe.Param() + " values are required"
	case "max":
		if fe.Kind() == reflect.Slice {
			return "no more than " + fe.Param() + " values are allowed"
		}
		return "must be between 0 and 25"
	case "min":
		return "must be between 0 and 25"
	case "rotor":
		var names []string
		for _, id := range rotor.Identities() {
			names = append(names, id.String())
		}
		return "unknown rotor, expected one of " + strings.Join(names, ", ")
	case "plugpair":
		return "a pair must name two different letters"
	case "reflector":
		return "unknown reflector, expected B or C"
	}
	return "failed the " + fe.Tag() + " check"
}

// ParseSettings reads rotor positions or ring settings written either as
// letters ("ADU") or as numbers separated by commas or spaces ("0,3,20").
func ParseSettings(s string) ([]int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	if isLetters(s) {
		vals := make([]int, 0, len(s))
		for _, r := range s {
			c, _ := cryptors.Index(r)
			vals = append(vals, c)
		}
		return vals, nil
	}
	flds := splitList(s)
	vals := make([]int, 0, len(flds))
	for _, f := range flds {
		v, err := strconv.Atoi(f)
		if err != nil {
			return nil, fmt.Errorf("enigma: %q is neither a letter nor a number", f)
		}
		vals = append(vals, v)
	}
	return vals, nil
}

// ParseRotors splits a rotor order such as "I-II-III", "I II III" or
// "0,1,2".
func ParseRotors(s string) []string {
	return splitList(strings.ReplaceAll(s, "-", " "))
}

// ParsePlugboard splits a plugboard description such as "QW ER" or
// "QW,ER".
func ParsePlugboard(s string) []string {
	return splitList(s)
}

func splitList(s string) []string {
	return strings.FieldsFunc(s, func(r rune) bool {
		return r == ',' || r == ' ' || r == '\t'
	})
}

func isLetters(s string) bool {
	for _, r := range s {
		if _, ok := cryptors.Index(r); !ok {
			return false
		}
	}
	return true
}

// FormatSettings writes positions or ring settings as window letters.
func FormatSettings(vals []int) string {
	var sb strings.Builder
	for _, v := range vals {
		sb.WriteRune(cryptors.Letter(v))
	}
	return sb.String()
}
