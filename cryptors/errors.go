package cryptors

import (
	"errors"
	"fmt"
)

// ErrConfiguration is matched by every ConfigurationError through errors.Is.
var ErrConfiguration = errors.New("invalid machine configuration")

// ConfigurationError reports a machine setting that can not be used.  Field
// names the offending setting, e.g. "rotors[1]" or "plugboard[3]".
type ConfigurationError struct {
	Field  string
	Value  interface{}
	Reason string
}

// NewConfigurationError returns a *ConfigurationError for field.
func NewConfigurationError(field string, value interface{}, format string, args ...interface{}) *ConfigurationError {
	return &ConfigurationError{
		Field:  field,
		Value:  value,
		Reason: fmt.Sprintf(format, args...),
	}
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("%s: %s [%v]: %s", ErrConfiguration, e.Field, e.Value, e.Reason)
}

func (e *ConfigurationError) Is(target error) bool {
	return target == ErrConfiguration
}

// WithField returns a copy of e with its field name replaced.  It lets a
// caller that knows where a value came from (a slot in a list of settings)
// refine the name used by a lower level constructor.
func (e *ConfigurationError) WithField(field string) *ConfigurationError {
	c := *e
	c.Field = field
	return &c
}
