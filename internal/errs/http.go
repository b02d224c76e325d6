package errs

// FieldError represents a field-level validation error (typical for forms).
// Example:
//
//	{ "field": "email", "error": "invalid email format" }
type FieldError struct {
	// Field is the field name/key the error relates to (e.g. "email").
	Field string `json:"field"`

	// Error is the human-readable error message.
	Error string `json:"error"`
}

// ActionType is a string-based enum describing what the client should do.
type ActionType string

const (
	// ActionTypeRedirect tells the client it should redirect somewhere.
	// Usually "Value" holds the URL or route.
	ActionTypeRedirect ActionType = "redirect"
)

// Action describes an optional "what the client should do next" instruction.
type Action struct {
	// Type is the kind of action (e.g. "redirect").
	Type ActionType `json:"type"`

	// Message is human-readable guidance for the client/UI.
	Message string `json:"message"`

	// Value is the payload for the action (e.g. redirect URL).
	Value string `json:"value"`
}

// HTTPError is the error shape returned to API clients, serialized as JSON.
//
// Fields:
//   - Code: machine-friendly error code (e.g. "BAD_REQUEST").
//   - Message: human-friendly message.
//   - Status: HTTP status code.
//   - Override: flag to let middleware decide whether to override the message.
//   - Errors: list of per-field errors (validation).
//   - Action: client instruction, action to be taken (optional).
type HTTPError struct {
	Code     string `json:"code"`
	Message  string `json:"message"`
	Status   int    `json:"status"`
	Override bool   `json:"override"`

	// Errors holds field-level validation errors, typically for form inputs.
	Errors []FieldError `json:"errors"`

	// Action is an optional client instruction (redirect, etc.).
	Action *Action `json:"action"`

	// PlainText makes the global error handler answer with Message as a
	// text/plain body instead of the JSON error shape.
	PlainText bool `json:"-"`
}

func (e *HTTPError) Error() string {
	return e.Message
}

// Is matches any *HTTPError, regardless of code or status.
func (e *HTTPError) Is(target error) bool {
	_, ok := target.(*HTTPError)
	return ok
}

// WithMessage returns a copy of e with Message replaced.
func (e *HTTPError) WithMessage(message string) *HTTPError {
	return &HTTPError{
		Code:      e.Code,
		Message:   message,
		Status:    e.Status,
		Override:  e.Override,
		Errors:    e.Errors,
		Action:    e.Action,
		PlainText: e.PlainText,
	}
}

// AsPlainText returns a copy of this HTTPError rendered as a text/plain body.
//
// Used by endpoints whose clients expect a bare message on failure, e.g.
//
//	404 "Customer with ID 7 not found."
func (e *HTTPError) AsPlainText() *HTTPError {
	copied := e.WithMessage(e.Message)
	copied.PlainText = true
	return copied
}
