package config

import (
	"errors"
	"fmt"
)

var (
	// ErrUnknownKey classifies strict-mode failures caused by a section or
	// option the Config does not define. Use errors.Is instead of string matching.
	ErrUnknownKey = errors.New("unknown config key")

	// ErrUnsupportedFormat is returned when no Loader handles a file extension.
	ErrUnsupportedFormat = errors.New("unsupported config format")
)

// OptionError reports a value that could not be converted to its option's type.
type OptionError struct {
	Section string
	Key     string
	Origin  string
	Want    string
	Err     error
}

// Error implements the error interface.
func (e *OptionError) Error() string {
	return fmt.Sprintf("%s: option %s.%s: expected %s: %v", e.Origin, e.Section, e.Key, e.Want, e.Err)
}

// Unwrap exposes the underlying conversion error.
func (e *OptionError) Unwrap() error {
	return e.Err
}
