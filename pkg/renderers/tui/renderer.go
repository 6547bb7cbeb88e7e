// Package tui collects form values interactively in the terminal, enforcing
// the same validation gate the HTML page applies on submit.
package tui

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"sort"
	"strings"

	"github.com/goliatone/go-resetform/pkg/render"
	"github.com/goliatone/go-resetform/pkg/schema"
	"github.com/goliatone/go-resetform/pkg/validation"
)

const defaultMaxAttempts = 5

// Renderer implements render.Renderer for terminal-driven sessions. Each
// field is prompted for, the collected values run through the form validator,
// and invalid fields are re-prompted until the gate opens.
type Renderer struct {
	driver       PromptDriver
	outputFormat OutputFormat
	maxAttempts  int
}

// New constructs a TUI renderer with defaults (survey driver, JSON output).
func New(options ...Option) (*Renderer, error) {
	driver, err := newSurveyDriver()
	if err != nil {
		return nil, err
	}

	r := &Renderer{
		driver:       driver,
		outputFormat: OutputFormatJSON,
		maxAttempts:  defaultMaxAttempts,
	}

	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(r)
	}

	if r.driver == nil {
		r.driver, err = newSurveyDriver()
		if err != nil {
			return nil, err
		}
	}

	return r, nil
}

// Name reports the renderer identifier.
func (r *Renderer) Name() string {
	return "tui"
}

// ContentType reports the serialization format used by Render.
func (r *Renderer) ContentType() string {
	switch r.outputFormat {
	case OutputFormatFormURLEncoded:
		return "application/x-www-form-urlencoded"
	case OutputFormatPrettyText:
		return "text/plain"
	default:
		return "application/json"
	}
}

// Render prompts for every field, validates the collected values, and
// serializes them once validation passes. Values from opts seed the prompt
// defaults.
func (r *Renderer) Render(ctx context.Context, form schema.Form, opts render.RenderOptions) ([]byte, error) {
	if ctx == nil {
		return nil, errors.New("tui: context is required")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if r.driver == nil {
		return nil, errors.New("tui: prompt driver is nil")
	}

	validator, err := validation.New(form)
	if err != nil {
		return nil, fmt.Errorf("tui: build validator: %w", err)
	}

	values := make(validation.Values, len(form.Fields))

	pending := form.Fields
	for attempt := 0; len(pending) > 0; attempt++ {
		if r.maxAttempts > 0 && attempt >= r.maxAttempts {
			names := make([]string, 0, len(pending))
			for _, field := range pending {
				names = append(names, field.Name)
			}
			return nil, fmt.Errorf("tui: fields %s still invalid after %d attempts", strings.Join(names, ", "), attempt)
		}

		for _, field := range pending {
			response, err := r.promptField(ctx, field, values)
			if err != nil {
				return nil, err
			}
			values[field.Name] = response
		}

		_, errs := validator.Validate(values)
		if len(errs) == 0 {
			break
		}

		byField := errs.ByField()
		retry := make([]schema.Field, 0, len(errs))
		for _, field := range pending {
			msg, bad := byField[field.Name]
			if !bad {
				continue
			}
			if err := r.driver.Info(ctx, fmt.Sprintf("%s: %s", fieldLabel(field), msg)); err != nil {
				return nil, err
			}
			retry = append(retry, field)
		}
		pending = retry
	}

	return r.serialize(form, values)
}

func (r *Renderer) promptField(ctx context.Context, field schema.Field, values validation.Values) (string, error) {
	label := fieldLabel(field)
	help := strings.TrimSpace(field.Description)

	defaultVal := field.Default
	if prev, ok := values[field.Name]; ok && prev != "" {
		defaultVal = prev
	}

	cfg := InputConfig{
		Message:     label,
		Default:     defaultVal,
		Help:        help,
		Placeholder: field.Placeholder,
	}

	switch {
	case field.Format == "password":
		return r.driver.Password(ctx, cfg)
	case field.Type == schema.FieldTypeBoolean:
		resp, err := r.driver.Confirm(ctx, ConfirmConfig{
			Message: label,
			Default: defaultVal == "true",
			Help:    help,
		})
		if err != nil {
			return "", err
		}
		if resp {
			return "true", nil
		}
		return "false", nil
	default:
		return r.driver.Input(ctx, cfg)
	}
}

func (r *Renderer) serialize(form schema.Form, values validation.Values) ([]byte, error) {
	switch r.outputFormat {
	case OutputFormatFormURLEncoded:
		encoded := url.Values{}
		for name, value := range values {
			encoded.Set(name, value)
		}
		return []byte(encoded.Encode()), nil
	case OutputFormatPrettyText:
		names := make([]string, 0, len(values))
		for name := range values {
			names = append(names, name)
		}
		sort.Strings(names)

		var b strings.Builder
		for _, name := range names {
			b.WriteString(name)
			b.WriteString(": ")
			b.WriteString(values[name])
			b.WriteString("\n")
		}
		return []byte(b.String()), nil
	default:
		payload, err := json.Marshal(values)
		if err != nil {
			return nil, fmt.Errorf("tui: marshal values: %w", err)
		}
		return payload, nil
	}
}

func fieldLabel(field schema.Field) string {
	if field.Label != "" {
		return field.Label
	}
	return field.Name
}
