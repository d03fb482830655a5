package bitcoin

// ResultError mirrors VerifyError in the wire-friendly result shape.
type ResultError struct {
	Kind    ErrorCode `json:"kind"`
	Message string    `json:"message"`
}

// Result is the uniform output contract of every verification operation.
// Operations return it directly and never let an error escape the public
// boundary; a rejected or failed call carries Valid=false and a populated
// Err instead.
type Result struct {
	Valid   bool           `json:"valid"`
	Details map[string]any `json:"details,omitempty"`
	Err     *ResultError   `json:"error,omitempty"`
}

func failed(e *VerifyError) Result {
	msg := e.Msg
	if e.Field != "" {
		msg = e.Field + ": " + e.Msg
	}
	return Result{Valid: false, Err: &ResultError{Kind: e.Code, Message: msg}}
}

// ResultFromError converts an error into a failed Result. Errors that are not
// a *VerifyError are treated as backend failures.
func ResultFromError(err error) Result {
	if ve, ok := err.(*VerifyError); ok {
		return failed(ve)
	}
	return Result{Valid: false, Err: &ResultError{Kind: ERR_VERIFICATION, Message: err.Error()}}
}
