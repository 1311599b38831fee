package errors

import "fmt"

// ConfigError reports an invalid or incomplete configuration field.
type ConfigError struct {
	Field   string
	Message string
	Err     error
}

func (e *ConfigError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("config error [%s]: %s: %v", e.Field, e.Message, e.Err)
	}
	return fmt.Sprintf("config error [%s]: %s", e.Field, e.Message)
}

func (e *ConfigError) Unwrap() error {
	return e.Err
}

func NewConfigError(field, message string, err error) *ConfigError {
	return &ConfigError{Field: field, Message: message, Err: err}
}

// JudgeUnavailableError indicates the judgment collaborator could not be
// reached within the configured number of attempts.
type JudgeUnavailableError struct {
	Attempts int
	Err      error
}

func (e *JudgeUnavailableError) Error() string {
	return fmt.Sprintf("judgment collaborator unavailable after %d attempts: %v", e.Attempts, e.Err)
}

func (e *JudgeUnavailableError) Unwrap() error {
	return e.Err
}

// WorksheetNotFoundError indicates a logical table is missing from the
// spreadsheet backend.
type WorksheetNotFoundError struct {
	Name string
}

func (e *WorksheetNotFoundError) Error() string {
	return fmt.Sprintf("worksheet '%s' not found in spreadsheet", e.Name)
}
