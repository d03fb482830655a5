package bitcoin

import "fmt"

type ErrorCode string

const (
	ERR_INPUT_FORMAT ErrorCode = "INPUT_FORMAT_ERROR"
	ERR_VERIFICATION ErrorCode = "VERIFICATION_ERROR"
	ERR_STRUCTURAL   ErrorCode = "STRUCTURAL_ERROR"
)

// VerifyError is the typed error for every rejected input or failed check.
// Field names the offending argument when one can be singled out.
type VerifyError struct {
	Code  ErrorCode
	Field string
	Msg   string
}

func (e *VerifyError) Error() string {
	if e == nil {
		return "<nil>"
	}
	switch {
	case e.Field != "" && e.Msg != "":
		return fmt.Sprintf("%s: %s: %s", e.Code, e.Field, e.Msg)
	case e.Msg != "":
		return fmt.Sprintf("%s: %s", e.Code, e.Msg)
	default:
		return string(e.Code)
	}
}

func NewError(code ErrorCode, field string, msg string) *VerifyError {
	return &VerifyError{Code: code, Field: field, Msg: msg}
}

func verr(code ErrorCode, field string, msg string) *VerifyError {
	return NewError(code, field, msg)
}
