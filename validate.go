package booklend

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// FieldError describes one rejected input field
type FieldError struct {
	Location string `json:"location"`
	Field    string `json:"path"`
	Message  string `json:"msg"`
	Value    any    `json:"value,omitempty"`
}

// ValidationError holds every field error found for a single request
type ValidationError struct {
	Errors []FieldError `json:"errors"`
}

func (e *ValidationError) Error() string {
	msgs := make([]string, 0, len(e.Errors))
	for _, fe := range e.Errors {
		msgs = append(msgs, fe.Field+": "+fe.Message)
	}
	return "validation failed: " + strings.Join(msgs, ", ")
}

// Check is a single predicate. It returns a field error when the input is
// rejected and an error when the predicate itself could not be evaluated.
type Check func(ctx context.Context) (*FieldError, error)

// Validate runs all checks in order and collects their field errors.
// It returns a *ValidationError when at least one check rejected its input.
func Validate(ctx context.Context, checks ...Check) error {
	var errs []FieldError
	for _, check := range checks {
		fe, err := check(ctx)
		if err != nil {
			return err
		}
		if fe != nil {
			errs = append(errs, *fe)
		}
	}
	if len(errs) > 0 {
		return &ValidationError{Errors: errs}
	}
	return nil
}

// IsEmail rejects values that are not a valid email address
func IsEmail(location, field, value, msg string) Check {
	return func(context.Context) (*FieldError, error) {
		if err := validate.Var(value, "required,email"); err != nil {
			return &FieldError{Location: location, Field: field, Message: msg, Value: value}, nil
		}
		return nil, nil
	}
}

// NotEmpty rejects empty values, whitespace counts as content
func NotEmpty(location, field, value, msg string) Check {
	return func(context.Context) (*FieldError, error) {
		if value == "" {
			return &FieldError{Location: location, Field: field, Message: msg, Value: value}, nil
		}
		return nil, nil
	}
}

// Present rejects a missing, null or empty string value
func Present(location, field string, value json.RawMessage, msg string) Check {
	return func(context.Context) (*FieldError, error) {
		switch string(bytes.TrimSpace(value)) {
		case "", "null", `""`:
			return &FieldError{Location: location, Field: field, Message: msg, Value: rawValue(value)}, nil
		}
		return nil, nil
	}
}

// IntBetween rejects anything that is not an integer in [lo, hi]. Numeric
// strings such as "4" are accepted.
func IntBetween(location, field string, value json.RawMessage, lo, hi int64, msg string) Check {
	return func(context.Context) (*FieldError, error) {
		n, ok := intValue(value)
		if !ok || n < lo || n > hi {
			return &FieldError{Location: location, Field: field, Message: msg, Value: rawValue(value)}, nil
		}
		return nil, nil
	}
}

// intValue reads an integer from a JSON number or a JSON string holding one
func intValue(raw json.RawMessage) (int64, bool) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		return 0, false
	}
	if raw[0] == '"' {
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return 0, false
		}
		raw = []byte(s)
	}
	n, err := json.Number(raw).Int64()
	if err != nil {
		return 0, false
	}
	return n, true
}

// rawValue is the decoded value for error reports, nil when nothing was sent
func rawValue(raw json.RawMessage) any {
	if len(bytes.TrimSpace(raw)) == 0 {
		return nil
	}
	var v any
	if err := json.Unmarshal(raw, &v); err != nil {
		return string(raw)
	}
	return v
}

// Custom wraps a predicate that needs the store, e.g. a uniqueness lookup.
// The predicate returns true when the value is accepted.
func Custom(location, field string, value any, msg string, ok func(ctx context.Context) (bool, error)) Check {
	return func(ctx context.Context) (*FieldError, error) {
		accepted, err := ok(ctx)
		if err != nil {
			return nil, err
		}
		if !accepted {
			return &FieldError{Location: location, Field: field, Message: msg, Value: value}, nil
		}
		return nil, nil
	}
}
