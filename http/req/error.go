package req

import (
	"fmt"
	"strings"

	"github.com/xy-planning-network/burrow"
)

// A ValidationError reports a field of a payload whose value breaks a rule.
type ValidationError struct {
	Field string `json:"field"`
	Value any    `json:"value"`
	Rule  string `json:"rule"`
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s breaks %s (got %v)", e.Field, e.Rule, e.Value)
}

// ValidationErrors collects every rule a payload breaks.
type ValidationErrors []ValidationError

func (errs ValidationErrors) Error() string {
	msgs := make([]string, len(errs))
	for i, e := range errs {
		msgs[i] = e.Error()
	}

	return strings.Join(msgs, "; ")
}

// Fields names the fields breaking a rule, in the order they are checked.
func (errs ValidationErrors) Fields() []string {
	fields := make([]string, 0, len(errs))
	for _, e := range errs {
		fields = append(fields, e.Field)
	}

	return fields
}

// Unwrap exposes burrow.ErrNotValid, so routers respond with 400 Bad Request.
func (ValidationErrors) Unwrap() error { return burrow.ErrNotValid }
