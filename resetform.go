// Package resetform assembles the password reset request flow: the canonical
// form descriptor, the submit-gated controller, and the renderers that turn
// the descriptor into HTML or terminal prompts.
package resetform

import (
	"context"
	"fmt"

	"github.com/goliatone/go-resetform/pkg/form"
	"github.com/goliatone/go-resetform/pkg/openapi"
	"github.com/goliatone/go-resetform/pkg/render"
	"github.com/goliatone/go-resetform/pkg/renderers/vanilla"
	"github.com/goliatone/go-resetform/pkg/schema"
)

// RenderOptions describes per-request overrides renderers use to prefill
// values or surface validation errors.
type RenderOptions = render.RenderOptions

// SubmitFunc is invoked with the validated values when the submit gate opens.
type SubmitFunc = form.SubmitFunc

// RequestForm returns the canonical password reset request descriptor: a
// single required email field posting to the reset endpoint.
func RequestForm() schema.Form {
	return schema.ResetRequestForm()
}

// NewController builds a submit-gated controller for the supplied descriptor.
func NewController(descriptor schema.Form, options ...form.Option) (*form.Controller, error) {
	return form.New(descriptor, options...)
}

// NewRequestController builds a controller for the canonical reset request
// form wired to the supplied submit callback.
func NewRequestController(onSubmit SubmitFunc) (*form.Controller, error) {
	return form.New(schema.ResetRequestForm(), form.WithOnSubmit(onSubmit))
}

// DefaultRegistry returns a renderer registry with the vanilla HTML renderer
// pre-registered.
func DefaultRegistry() (*render.Registry, error) {
	registry := render.NewRegistry()

	html, err := vanilla.New()
	if err != nil {
		return nil, fmt.Errorf("resetform: build vanilla renderer: %w", err)
	}
	if err := registry.Register(html); err != nil {
		return nil, err
	}
	return registry, nil
}

// FormFromSource loads an OpenAPI document from the source and extracts the
// descriptor for the named operation. Callers needing loader configuration
// (fs.FS entries, HTTP clients) should construct the loader and parser
// directly from pkg/openapi.
func FormFromSource(ctx context.Context, source openapi.Source, operationID string) (schema.Form, error) {
	doc, err := openapi.NewLoader().Load(ctx, source)
	if err != nil {
		return schema.Form{}, err
	}
	return openapi.NewParser().Form(ctx, doc, operationID)
}

// FormFromDocument extracts the descriptor for the named operation from a
// pre-loaded document, bypassing the loader stage.
func FormFromDocument(ctx context.Context, doc openapi.Document, operationID string) (schema.Form, error) {
	return openapi.NewParser().Form(ctx, doc, operationID)
}

// GenerateHTML renders the descriptor for an OpenAPI operation using the
// vanilla renderer. It is the simplest entry point for callers that just want
// the page markup.
func GenerateHTML(ctx context.Context, source openapi.Source, operationID string, options RenderOptions) ([]byte, error) {
	descriptor, err := FormFromSource(ctx, source, operationID)
	if err != nil {
		return nil, err
	}

	renderer, err := vanilla.New()
	if err != nil {
		return nil, fmt.Errorf("resetform: build vanilla renderer: %w", err)
	}
	return renderer.Render(ctx, descriptor, options)
}
