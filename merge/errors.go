package merge

import "fmt"

// ErrorCode identifies the class of failure in a MergeError, matching the
// structured error codes of the external interface.
type ErrorCode string

const (
	// ErrNoImages is raised when the input list is empty.
	ErrNoImages ErrorCode = "NO_IMAGES"
	// ErrInvalidInput is raised when an input element isn't a byte buffer.
	// Go's static typing ([][]byte) enforces this at compile time for the
	// Merge entry point, so this code is never produced by this package; it
	// is kept for parity with the external error taxonomy documented in
	// spec.md, for front-ends that decode untyped input before calling Merge.
	ErrInvalidInput ErrorCode = "INVALID_INPUT"
	// ErrDecodeFailed is raised when an image fails to decode.
	ErrDecodeFailed ErrorCode = "DECODE_FAILED"
	// ErrTooLarge is raised when the planned output exceeds MaxOutputPixels.
	ErrTooLarge ErrorCode = "TOO_LARGE"
	// ErrInternal covers encoder failures and 32-bit canvas overflow.
	ErrInternal ErrorCode = "INTERNAL_ERROR"
)

// MergeError is the structured error returned by Merge. Only the fields
// relevant to Code are populated; the rest are zero values.
type MergeError struct {
	Code    ErrorCode
	Message string

	// DECODE_FAILED
	FileIndex int
	FileName  string

	// TOO_LARGE
	Width, Height, Pixels, Max uint64
}

func (e *MergeError) Error() string {
	switch e.Code {
	case ErrNoImages:
		return "no images provided"
	case ErrDecodeFailed:
		if e.FileName != "" {
			return fmt.Sprintf("failed to decode image at index %d: %s (file: %s)", e.FileIndex, e.Message, e.FileName)
		}
		return fmt.Sprintf("failed to decode image at index %d: %s", e.FileIndex, e.Message)
	case ErrTooLarge:
		return fmt.Sprintf("output too large: %dx%d = %d pixels exceeds limit of %d pixels", e.Width, e.Height, e.Pixels, e.Max)
	case ErrInvalidInput:
		return fmt.Sprintf("invalid input at index %d: %s", e.FileIndex, e.Message)
	default:
		return fmt.Sprintf("internal error: %s", e.Message)
	}
}

func newNoImagesError() *MergeError {
	return &MergeError{Code: ErrNoImages, Message: "no images provided"}
}

func newDecodeError(index int, fileName string, cause error) *MergeError {
	return &MergeError{Code: ErrDecodeFailed, Message: cause.Error(), FileIndex: index, FileName: fileName}
}

func newTooLargeError(width, height, pixels, max uint64) *MergeError {
	return &MergeError{Code: ErrTooLarge, Message: "output exceeds pixel cap", Width: width, Height: height, Pixels: pixels, Max: max}
}

func newInternalError(message string) *MergeError {
	return &MergeError{Code: ErrInternal, Message: message}
}
