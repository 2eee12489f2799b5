package generate

import "fmt"

// ValidationError reports client input that was rejected before any encoder
// ran. Message is user-facing.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func newValidationError(field, format string, args ...interface{}) *ValidationError {
	return &ValidationError{Field: field, Message: fmt.Sprintf(format, args...)}
}

// EncodingError wraps a failure raised by the symbology or QR encoder for
// input that passed pre-validation.
type EncodingError struct {
	Format string
	Data   string
	Err    error
}

func (e *EncodingError) Error() string {
	return fmt.Sprintf("invalid data %q for format %q: %v", e.Data, e.Format, e.Err)
}

func (e *EncodingError) Unwrap() error { return e.Err }
