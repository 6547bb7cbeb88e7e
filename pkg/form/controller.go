// Package form owns the field value and error state for one form instance
// and gates the submit effect on validation success.
package form

import (
	"context"
	"fmt"

	"github.com/goliatone/go-resetform/pkg/schema"
	"github.com/goliatone/go-resetform/pkg/validation"
)

// State reflects the outcome of the most recent validation pass.
type State string

const (
	// StateInvalid is the initial state; an empty required field does not
	// validate, so a fresh controller starts here.
	StateInvalid State = "invalid"
	StateValid   State = "valid"
)

// SubmitFunc receives the validated values when the submit gate opens. The
// real reset request lives behind this callback; the controller never talks
// to a backend itself.
type SubmitFunc func(ctx context.Context, values validation.Values) error

// Option configures a Controller during construction.
type Option func(*Controller)

// WithOnSubmit installs the submit effect callback.
func WithOnSubmit(fn SubmitFunc) Option {
	return func(c *Controller) {
		c.onSubmit = fn
	}
}

// WithInitialValues seeds field values before the first render.
func WithInitialValues(values validation.Values) Option {
	return func(c *Controller) {
		for name, value := range values {
			c.values[name] = value
		}
	}
}

// Controller binds the form's fields to their current values and validation
// messages. It is owned by a single page view and is not safe for concurrent
// use; every mutation happens as a discrete reaction to one input event.
type Controller struct {
	form      schema.Form
	validator *validation.Validator
	onSubmit  SubmitFunc

	values validation.Values
	errors map[string]string
	state  State
}

// New constructs a controller for the given descriptor, compiling its
// validation rules up front.
func New(f schema.Form, options ...Option) (*Controller, error) {
	validator, err := validation.New(f)
	if err != nil {
		return nil, err
	}

	c := &Controller{
		form:      f,
		validator: validator,
		values:    make(validation.Values, len(f.Fields)),
		state:     StateInvalid,
	}
	for _, field := range f.Fields {
		c.values[field.Name] = field.Default
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(c)
	}
	return c, nil
}

// Form returns the descriptor the controller was built from.
func (c *Controller) Form() schema.Form {
	return c.form
}

// SetValue stores the value unconditionally. No validation runs on keystroke;
// revalidation happens on the next submit.
func (c *Controller) SetValue(name, value string) {
	c.values[name] = value
}

// Value returns the current value for a field.
func (c *Controller) Value(name string) string {
	return c.values[name]
}

// Values returns a copy of the current field values.
func (c *Controller) Values() validation.Values {
	return c.values.Clone()
}

// ErrorFor returns the message attached to a field after the last validation
// pass, or "" when the field passed.
func (c *Controller) ErrorFor(name string) string {
	return c.errors[name]
}

// Errors returns the field -> message map from the last validation pass.
func (c *Controller) Errors() map[string]string {
	if len(c.errors) == 0 {
		return nil
	}
	out := make(map[string]string, len(c.errors))
	for name, message := range c.errors {
		out[name] = message
	}
	return out
}

// State reports Invalid or Valid based on the last validation pass.
func (c *Controller) State() State {
	return c.state
}

// Validate runs the compiled rules against the current values, replacing any
// stored messages. It returns the field errors, nil when everything passed.
func (c *Controller) Validate() validation.Errors {
	_, errs := c.validator.Validate(c.values)
	c.errors = errs.ByField()
	if len(errs) > 0 {
		c.state = StateInvalid
	} else {
		c.state = StateValid
	}
	return errs
}

// Submit runs the validation gate. On failure the errors stay stored for the
// next render and ErrValidationFailed is returned without touching the
// callback. On success the callback receives a copy of the validated values;
// the controller stays submittable afterwards, there is no locked state.
func (c *Controller) Submit(ctx context.Context) error {
	if errs := c.Validate(); len(errs) > 0 {
		return ErrValidationFailed
	}
	if c.onSubmit == nil {
		return nil
	}
	if err := c.onSubmit(ctx, c.values.Clone()); err != nil {
		return fmt.Errorf("form: submit: %w", err)
	}
	return nil
}
