package toolbox

import (
	"errors"
	"fmt"
)

// ErrInFlight is returned when a tool is asked to start a request while its
// previous request is still outstanding.
var ErrInFlight = errors.New("a request is already in progress for this tool")

// Notice is the short title and description shown to the user for an error
type Notice struct {
	Title       string
	Description string
}

// ValidationError reports a required field that is missing, detected before
// any request is dispatched.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed for %s: %s", e.Field, e.Reason)
}

// Notice returns the user-facing notification for the error
func (e *ValidationError) Notice() Notice {
	return Notice{Title: "Missing information", Description: e.Reason}
}

// RequestFailedError reports a non-2xx response or a transport failure.
// The status code is kept for logging only.
type RequestFailedError struct {
	Endpoint   string
	StatusCode int
	Err        error
}

func (e *RequestFailedError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("request to %s failed with status %d", e.Endpoint, e.StatusCode)
	}
	return fmt.Sprintf("request to %s failed: %v", e.Endpoint, e.Err)
}

func (e *RequestFailedError) Unwrap() error {
	return e.Err
}

// Notice returns the user-facing notification for the error
func (e *RequestFailedError) Notice() Notice {
	return Notice{Title: "Generation failed", Description: "Something went wrong. Please try again."}
}

// ClipboardError reports a clipboard write rejected by the platform
type ClipboardError struct {
	Err error
}

func (e *ClipboardError) Error() string {
	return fmt.Sprintf("failed to copy to clipboard: %v", e.Err)
}

func (e *ClipboardError) Unwrap() error {
	return e.Err
}

// Notice returns the user-facing notification for the error
func (e *ClipboardError) Notice() Notice {
	return Notice{Title: "Copy failed", Description: "Could not copy the text to the clipboard."}
}

func newValidationError(field, reason string) error {
	return &ValidationError{Field: field, Reason: reason}
}

func required(field, value string) error {
	if isBlank(value) {
		return newValidationError(field, fmt.Sprintf("%s is required", field))
	}
	return nil
}

// IsValidation returns true if err is or wraps a ValidationError
func IsValidation(err error) bool {
	var target *ValidationError
	return errors.As(err, &target)
}

// IsRequestFailed returns true if err is or wraps a RequestFailedError
func IsRequestFailed(err error) bool {
	var target *RequestFailedError
	return errors.As(err, &target)
}

// IsClipboard returns true if err is or wraps a ClipboardError
func IsClipboard(err error) bool {
	var target *ClipboardError
	return errors.As(err, &target)
}

// NoticeFor maps any error returned by this package to a user notification
func NoticeFor(err error) Notice {
	var (
		validation *ValidationError
		request    *RequestFailedError
		clip       *ClipboardError
	)
	switch {
	case err == nil:
		return Notice{}
	case errors.As(err, &validation):
		return validation.Notice()
	case errors.As(err, &request):
		return request.Notice()
	case errors.As(err, &clip):
		return clip.Notice()
	case errors.Is(err, ErrInFlight):
		return Notice{Title: "Please wait", Description: "The previous request is still running."}
	default:
		return Notice{Title: "Error", Description: err.Error()}
	}
}
