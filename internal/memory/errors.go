package memory

import "fmt"

// Error codes for the memory subsystem.
const (
	CodeSchemaInvalid    = "MEMORY_SCHEMA_INVALID"
	CodeStorageTransient = "MEMORY_STORAGE_TRANSIENT"
	CodeSummarizerFailed = "MEMORY_SUMMARIZER_FAILED"
	CodeInvalidConfig    = "MEMORY_INVALID_CONFIG"
)

// MemoryError is a coded error. Retryable marks failures the caller may
// retry externally; the subsystem never retries internally.
type MemoryError struct {
	Code      string
	Message   string
	Retryable bool
	Cause     error
}

func (e *MemoryError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *MemoryError) Unwrap() error {
	return e.Cause
}

// Is matches by code so callers can test against sentinel values.
func (e *MemoryError) Is(target error) bool {
	t, ok := target.(*MemoryError)
	if !ok {
		return false
	}
	return e.Code == t.Code
}

func newStorageError(message string, cause error) *MemoryError {
	return &MemoryError{
		Code:      CodeStorageTransient,
		Message:   message,
		Retryable: true,
		Cause:     cause,
	}
}

func newSummarizerError(message string, cause error) *MemoryError {
	return &MemoryError{
		Code:      CodeSummarizerFailed,
		Message:   message,
		Retryable: true,
		Cause:     cause,
	}
}

func newConfigError(message string) *MemoryError {
	return &MemoryError{
		Code:    CodeInvalidConfig,
		Message: message,
	}
}

// Sentinels for errors.Is checks.
var (
	ErrStorageTransient = &MemoryError{Code: CodeStorageTransient}
	ErrSummarizerFailed = &MemoryError{Code: CodeSummarizerFailed}
	ErrInvalidConfig    = &MemoryError{Code: CodeInvalidConfig}
)
