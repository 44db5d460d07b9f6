package lloyd

import (
	"errors"
	"fmt"
)

// ErrInvalidConfiguration is the sentinel matched by every configuration
// failure. Use errors.Is(err, ErrInvalidConfiguration) to detect it.
var ErrInvalidConfiguration = errors.New("invalid configuration")

// InvalidConfigurationError describes why a run was rejected before the
// first iteration.
type InvalidConfigurationError struct {
	Field  string
	Reason string
}

func (e *InvalidConfigurationError) Error() string {
	return fmt.Sprintf("invalid configuration: %s: %s", e.Field, e.Reason)
}

func (e *InvalidConfigurationError) Unwrap() error { return ErrInvalidConfiguration }

func invalid(field, format string, args ...any) error {
	return &InvalidConfigurationError{Field: field, Reason: fmt.Sprintf(format, args...)}
}
