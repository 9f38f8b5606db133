package builder

import "errors"

var (
	// ErrInvalidInput indicates a required input was blank.
	ErrInvalidInput = errors.New("invalid input")

	// ErrValidation indicates the resume record failed form validation.
	ErrValidation = errors.New("resume validation failed")

	// ErrBusy indicates the same action is already running for the user.
	ErrBusy = errors.New("request already in progress")

	// ErrInvalidLLMOutput indicates the model returned unparseable output.
	ErrInvalidLLMOutput = errors.New("invalid llm output")

	// ErrInputTooLarge indicates the prompt exceeds the configured token budget.
	ErrInputTooLarge = errors.New("input too large")
)

// InputError carries the user-facing message for a blank input.
type InputError struct {
	Message string
}

func (e *InputError) Error() string {
	return e.Message
}

// Is makes errors.Is(err, ErrInvalidInput) hold for every InputError.
func (e *InputError) Is(target error) bool {
	return target == ErrInvalidInput
}

func inputError(msg string) error {
	return &InputError{Message: msg}
}
