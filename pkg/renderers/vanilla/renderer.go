// Package vanilla renders the reset form as a self-contained HTML page:
// labeled inputs, an inline error slot per field, the submit button, and the
// navigation link back to the login page.
package vanilla

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"sort"
	"strings"

	"github.com/goliatone/go-resetform/pkg/render"
	rendertemplate "github.com/goliatone/go-resetform/pkg/render/template"
	gotemplate "github.com/goliatone/go-resetform/pkg/render/template/gotemplate"
	"github.com/goliatone/go-resetform/pkg/schema"
)

const (
	pageTemplate    = "templates/page"
	confirmTemplate = "templates/confirm"
)

type Option func(*config)

type config struct {
	templateFS       fs.FS
	templateRenderer rendertemplate.TemplateRenderer
}

// WithTemplatesFS supplies an alternate template bundle via fs.FS.
func WithTemplatesFS(files fs.FS) Option {
	return func(cfg *config) {
		cfg.templateFS = files
	}
}

// WithTemplatesDir loads templates from a directory on disk.
func WithTemplatesDir(path string) Option {
	return func(cfg *config) {
		if path == "" {
			return
		}
		cfg.templateFS = os.DirFS(path)
	}
}

// WithTemplateRenderer injects a custom template renderer implementation.
func WithTemplateRenderer(renderer rendertemplate.TemplateRenderer) Option {
	return func(cfg *config) {
		if renderer != nil {
			cfg.templateRenderer = renderer
		}
	}
}

type Renderer struct {
	templates rendertemplate.TemplateRenderer
}

// New constructs the vanilla renderer applying any provided options.
func New(options ...Option) (*Renderer, error) {
	cfg := config{templateFS: TemplatesFS()}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(&cfg)
	}

	if cfg.templateFS == nil {
		cfg.templateFS = TemplatesFS()
	}

	renderer := cfg.templateRenderer
	if renderer == nil {
		engine, err := gotemplate.New(
			gotemplate.WithFS(cfg.templateFS),
			gotemplate.WithExtension(".tmpl"),
		)
		if err != nil {
			return nil, fmt.Errorf("vanilla renderer: configure template renderer: %w", err)
		}
		renderer = engine
	}

	return &Renderer{templates: renderer}, nil
}

func (r *Renderer) Name() string {
	return "vanilla"
}

func (r *Renderer) ContentType() string {
	return "text/html; charset=utf-8"
}

// Render produces the full page for the form. Values and Errors from the
// options prefill the inputs and populate the inline error slots.
func (r *Renderer) Render(_ context.Context, form schema.Form, options render.RenderOptions) ([]byte, error) {
	if r.templates == nil {
		return nil, fmt.Errorf("vanilla renderer: template renderer is nil")
	}

	result, err := r.templates.RenderTemplate(pageTemplate, pageContext(form, options))
	if err != nil {
		return nil, fmt.Errorf("vanilla renderer: render template: %w", err)
	}
	return []byte(result), nil
}

// RenderConfirmation produces the post-submit view shown once the submit gate
// opened and the reset effect fired.
func (r *Renderer) RenderConfirmation(_ context.Context, form schema.Form, email string, options render.RenderOptions) ([]byte, error) {
	if r.templates == nil {
		return nil, fmt.Errorf("vanilla renderer: template renderer is nil")
	}

	ctx := chromeContext(form, options)
	ctx["email"] = email

	result, err := r.templates.RenderTemplate(confirmTemplate, ctx)
	if err != nil {
		return nil, fmt.Errorf("vanilla renderer: render template: %w", err)
	}
	return []byte(result), nil
}

func pageContext(form schema.Form, options render.RenderOptions) map[string]any {
	ctx := chromeContext(form, options)

	fields := make([]map[string]any, 0, len(form.Fields))
	for _, field := range form.Fields {
		fields = append(fields, fieldContext(field, options))
	}
	ctx["fields"] = fields
	ctx["action"] = form.Endpoint
	ctx["method"] = formMethod(form)
	ctx["submit_label"] = submitLabel(form)
	return ctx
}

func chromeContext(form schema.Form, options render.RenderOptions) map[string]any {
	ctx := map[string]any{
		"title":      pageTitle(form),
		"summary":    sanitizeHelpMarkup(form.Summary),
		"login_path": loginPath(options),
	}
	if options.Theme != nil {
		ctx["theme_class"] = themeClass(options.Theme.Theme, options.Theme.Variant)
		ctx["theme_css"] = themeCSSVars(options.Theme.CSSVars)
	}
	return ctx
}

func fieldContext(field schema.Field, options render.RenderOptions) map[string]any {
	value := field.Default
	if prefill, ok := options.Values[field.Name]; ok {
		value = prefill
	}

	return map[string]any{
		"id":          "field-" + field.Name,
		"name":        field.Name,
		"input_type":  inputType(field),
		"label":       fieldLabel(field),
		"placeholder": field.Placeholder,
		"help":        sanitizeHelpMarkup(field.Description),
		"value":       value,
		"required":    field.Required,
		"error":       options.Errors[field.Name],
	}
}

func inputType(field schema.Field) string {
	switch {
	case field.IsEmail():
		return "email"
	case field.Format == "password":
		return "password"
	case field.Type == schema.FieldTypeInteger:
		return "number"
	case field.Type == schema.FieldTypeBoolean:
		return "checkbox"
	default:
		return "text"
	}
}

func fieldLabel(field schema.Field) string {
	if field.Label != "" {
		return field.Label
	}
	return field.Name
}

func pageTitle(form schema.Form) string {
	if form.Title != "" {
		return form.Title
	}
	return form.ID
}

func formMethod(form schema.Form) string {
	method := strings.ToUpper(strings.TrimSpace(form.Method))
	// Browsers only submit GET/POST natively; everything else rides on POST.
	if method == "" || method != "GET" {
		return "POST"
	}
	return method
}

func submitLabel(form schema.Form) string {
	if form.SubmitLabel != "" {
		return form.SubmitLabel
	}
	return "Submit"
}

func loginPath(options render.RenderOptions) string {
	if strings.TrimSpace(options.LoginPath) != "" {
		return options.LoginPath
	}
	return schema.DefaultLoginPath
}

func themeClass(name, variant string) string {
	parts := make([]string, 0, 2)
	if name != "" {
		parts = append(parts, "theme-"+name)
	}
	if variant != "" {
		parts = append(parts, "theme-"+name+"--"+variant)
	}
	return strings.Join(parts, " ")
}

func themeCSSVars(vars map[string]string) string {
	if len(vars) == 0 {
		return ""
	}
	var b strings.Builder
	for _, name := range sortedKeys(vars) {
		b.WriteString(name)
		b.WriteString(": ")
		b.WriteString(vars[name])
		b.WriteString("; ")
	}
	return strings.TrimSpace(b.String())
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for key := range m {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}
