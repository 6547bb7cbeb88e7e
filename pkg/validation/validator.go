// Package validation turns schema descriptors into pure value validators.
// Validators never mutate their input: validating the same values twice
// yields the same outcome, and successful validation returns the values
// unchanged so callers can rely on round-trip identity.
package validation

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/goliatone/go-resetform/pkg/schema"
)

// Values holds the current form values keyed by field name.
type Values map[string]string

// Clone returns an independent copy of the value map.
func (v Values) Clone() Values {
	if v == nil {
		return nil
	}
	out := make(Values, len(v))
	for key, value := range v {
		out[key] = value
	}
	return out
}

// FieldError attaches a display message to a single field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (e FieldError) Error() string {
	return e.Field + ": " + e.Message
}

// Errors collects field-level failures from one validation pass.
type Errors []FieldError

func (e Errors) Error() string {
	if len(e) == 0 {
		return "validation: no errors"
	}
	parts := make([]string, len(e))
	for i, fieldErr := range e {
		parts[i] = fieldErr.Error()
	}
	return "validation: " + strings.Join(parts, "; ")
}

// For returns the message attached to the named field, or "".
func (e Errors) For(field string) string {
	for _, fieldErr := range e {
		if fieldErr.Field == field {
			return fieldErr.Message
		}
	}
	return ""
}

// ByField returns the errors as a field -> message map. Only the first
// message per field is kept; the reset form surfaces one inline slot each.
func (e Errors) ByField() map[string]string {
	if len(e) == 0 {
		return nil
	}
	out := make(map[string]string, len(e))
	for _, fieldErr := range e {
		if _, exists := out[fieldErr.Field]; exists {
			continue
		}
		out[fieldErr.Field] = fieldErr.Message
	}
	return out
}

type fieldRules struct {
	required bool
	email    bool
	minLen   *int
	maxLen   *int
	pattern  *regexp.Regexp
}

// Validator evaluates Values against the rules compiled from a schema.Form.
type Validator struct {
	form  schema.Form
	rules map[string]fieldRules
	order []string
}

// New compiles the form's validation rules. Invalid pattern expressions fail
// construction rather than every later Validate call.
func New(form schema.Form) (*Validator, error) {
	rules := make(map[string]fieldRules, len(form.Fields))
	order := make([]string, 0, len(form.Fields))

	for _, field := range form.Fields {
		compiled := fieldRules{
			required: field.Required,
			email:    field.IsEmail(),
		}
		for _, rule := range field.Validations {
			switch rule.Kind {
			case schema.ValidationRuleMinLength:
				if value, ok := parseInt(rule.Params["value"]); ok {
					compiled.minLen = &value
				}
			case schema.ValidationRuleMaxLength:
				if value, ok := parseInt(rule.Params["value"]); ok {
					compiled.maxLen = &value
				}
			case schema.ValidationRulePattern:
				expr := rule.Params["pattern"]
				if expr == "" {
					continue
				}
				re, err := regexp.Compile(expr)
				if err != nil {
					return nil, fmt.Errorf("validation: field %s: compile pattern: %w", field.Name, err)
				}
				compiled.pattern = re
			}
		}
		rules[field.Name] = compiled
		order = append(order, field.Name)
	}

	return &Validator{form: form, rules: rules, order: order}, nil
}

// MustNew panics on compile failure. Useful for the built-in descriptors.
func MustNew(form schema.Form) *Validator {
	v, err := New(form)
	if err != nil {
		panic(err)
	}
	return v
}

// Form returns the descriptor the validator was compiled from.
func (v *Validator) Form() schema.Form {
	return v.form
}

// Validate checks the supplied values against the compiled rules. On success
// it returns the values unchanged and a nil error slice; on failure each
// offending field carries exactly one message.
func (v *Validator) Validate(values Values) (Values, Errors) {
	var errs Errors
	for _, name := range v.order {
		rules := v.rules[name]
		if message := rules.check(values[name]); message != "" {
			errs = append(errs, FieldError{Field: name, Message: message})
		}
	}
	if len(errs) > 0 {
		return values, errs
	}
	return values, nil
}

func (r fieldRules) check(value string) string {
	// Email fields collapse every failure (including empty input) into the
	// fixed address message so the inline slot stays stable across retries.
	if r.email {
		if !schema.ValidEmailAddress(value) {
			return schema.InvalidEmailMessage
		}
	} else if r.required && strings.TrimSpace(value) == "" {
		return "This field is required"
	}

	if value == "" {
		return ""
	}
	if r.minLen != nil && len(value) < *r.minLen {
		return fmt.Sprintf("Must be at least %d characters", *r.minLen)
	}
	if r.maxLen != nil && len(value) > *r.maxLen {
		return fmt.Sprintf("Must be at most %d characters", *r.maxLen)
	}
	if r.pattern != nil && !r.pattern.MatchString(value) {
		return "Does not match the required pattern"
	}
	return ""
}

func parseInt(raw string) (int, bool) {
	if raw == "" {
		return 0, false
	}
	value, err := strconv.Atoi(raw)
	return value, err == nil
}
