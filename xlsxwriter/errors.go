package xlsxwriter

import "fmt"

// RangeError indicates that an address, row or column index is outside the
// declared bounds of the worksheet grid.
type RangeError struct {
	Message string
}

func (e *RangeError) Error() string {
	return e.Message
}

// NewRangeError creates a new RangeError with the given message.
func NewRangeError(format string, args ...interface{}) *RangeError {
	return &RangeError{Message: fmt.Sprintf(format, args...)}
}

// FormatError indicates malformed address or range text, or a malformed
// auxiliary string such as a sheet name.
type FormatError struct {
	Message string
}

func (e *FormatError) Error() string {
	return e.Message
}

// NewFormatError creates a new FormatError with the given message.
func NewFormatError(format string, args ...interface{}) *FormatError {
	return &FormatError{Message: fmt.Sprintf(format, args...)}
}

// StyleError indicates a missing style or style-component reference, looked
// up by hash or by name. A StyleError means the style graph is internally
// inconsistent; it is a defect, not a recoverable condition.
type StyleError struct {
	Message string
}

func (e *StyleError) Error() string {
	return e.Message
}

// NewStyleError creates a new StyleError with the given message.
func NewStyleError(format string, args ...interface{}) *StyleError {
	return &StyleError{Message: fmt.Sprintf(format, args...)}
}

// IOError indicates a container or stream failure during document assembly
// or packaging. It always wraps the underlying cause.
type IOError struct {
	Message string
	Cause   error
}

func (e *IOError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *IOError) Unwrap() error {
	return e.Cause
}

// NewIOError creates a new IOError wrapping cause.
func NewIOError(cause error, format string, args ...interface{}) *IOError {
	return &IOError{Message: fmt.Sprintf(format, args...), Cause: cause}
}
