package openapi

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"

	"github.com/goliatone/go-resetform/pkg/schema"
)

const (
	submitLabelExtension = "x-submit-label"
	placeholderExtension = "x-placeholder"
	labelExtension       = "x-label"
)

// ParserOption configures a Parser.
type ParserOption func(*Parser)

// WithValidation runs kin-openapi document validation before extraction.
func WithValidation() ParserOption {
	return func(p *Parser) {
		p.validate = true
	}
}

// Parser extracts form descriptors from OpenAPI documents using kin-openapi.
// Each operation with a JSON request body becomes one schema.Form keyed by
// its operationId.
type Parser struct {
	validate bool
}

// NewParser constructs a Parser with the given options.
func NewParser(options ...ParserOption) *Parser {
	p := &Parser{}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(p)
	}
	return p
}

// Forms converts a Document into form descriptors keyed by operationId.
// Operations without an operationId are keyed as "method:path".
func (p *Parser) Forms(ctx context.Context, doc Document) (map[string]schema.Form, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	raw := doc.Raw()
	if len(raw) == 0 {
		return nil, errors.New("openapi parser: document payload is empty")
	}

	loader := &openapi3.Loader{Context: ctx}
	spec, err := loader.LoadFromData(raw)
	if err != nil {
		return nil, fmt.Errorf("openapi parser: load document: %w", err)
	}

	if p.validate {
		if err := spec.Validate(ctx, openapi3.DisableExamplesValidation()); err != nil {
			return nil, fmt.Errorf("openapi parser: validate: %w", err)
		}
	}

	if spec.Paths == nil || spec.Paths.Len() == 0 {
		return nil, errors.New("openapi parser: document does not contain any paths")
	}

	forms := make(map[string]schema.Form)
	for path, item := range spec.Paths.Map() {
		if item == nil {
			continue
		}
		collectForm(forms, "GET", path, item.Get)
		collectForm(forms, "PUT", path, item.Put)
		collectForm(forms, "POST", path, item.Post)
		collectForm(forms, "DELETE", path, item.Delete)
		collectForm(forms, "PATCH", path, item.Patch)
	}

	if len(forms) == 0 {
		return nil, errors.New("openapi parser: no operations extracted")
	}
	return forms, nil
}

// Form extracts the descriptor for a single operation.
func (p *Parser) Form(ctx context.Context, doc Document, operationID string) (schema.Form, error) {
	forms, err := p.Forms(ctx, doc)
	if err != nil {
		return schema.Form{}, err
	}
	form, ok := forms[operationID]
	if !ok {
		known := make([]string, 0, len(forms))
		for id := range forms {
			known = append(known, id)
		}
		sort.Strings(known)
		return schema.Form{}, fmt.Errorf("openapi parser: operation %q not found (have: %s)", operationID, strings.Join(known, ", "))
	}
	return form, nil
}

func collectForm(target map[string]schema.Form, method, path string, operation *openapi3.Operation) {
	if operation == nil {
		return
	}

	opID := operation.OperationID
	if opID == "" {
		opID = strings.ToLower(method) + ":" + path
	}

	form := schema.Form{
		ID:       opID,
		Title:    operation.Summary,
		Endpoint: path,
		Method:   method,
		Summary:  operation.Description,
		Fields:   extractFields(operation.RequestBody),
	}
	if label, ok := stringExtension(operation.Extensions, submitLabelExtension); ok {
		form.SubmitLabel = label
	}

	target[opID] = form
}

func extractFields(requestBody *openapi3.RequestBodyRef) []schema.Field {
	if requestBody == nil || requestBody.Value == nil {
		return nil
	}

	var body *openapi3.Schema
	content := requestBody.Value.Content
	for _, mediaType := range []string{"application/json", "application/x-www-form-urlencoded"} {
		if mt, ok := content[mediaType]; ok && mt.Schema != nil && mt.Schema.Value != nil {
			body = mt.Schema.Value
			break
		}
	}
	if body == nil || len(body.Properties) == 0 {
		return nil
	}

	required := make(map[string]bool, len(body.Required))
	for _, name := range body.Required {
		required[name] = true
	}

	names := make([]string, 0, len(body.Properties))
	for name := range body.Properties {
		names = append(names, name)
	}
	sort.Strings(names)

	fields := make([]schema.Field, 0, len(names))
	for _, name := range names {
		ref := body.Properties[name]
		if ref == nil || ref.Value == nil {
			continue
		}
		fields = append(fields, convertField(name, ref.Value, required[name]))
	}
	return fields
}

func convertField(name string, src *openapi3.Schema, required bool) schema.Field {
	field := schema.Field{
		Name:        name,
		Type:        fieldType(src.Type),
		Format:      src.Format,
		Required:    required,
		Label:       src.Title,
		Description: src.Description,
	}

	if src.Default != nil {
		field.Default = fmt.Sprint(src.Default)
	}
	if placeholder, ok := stringExtension(src.Extensions, placeholderExtension); ok {
		field.Placeholder = placeholder
	}
	if label, ok := stringExtension(src.Extensions, labelExtension); ok {
		field.Label = label
	}

	if src.Format != "" {
		field.Validations = append(field.Validations, schema.ValidationRule{
			Kind:   schema.ValidationRuleFormat,
			Params: map[string]string{"format": src.Format},
		})
	}
	if src.MinLength != 0 {
		field.Validations = append(field.Validations, schema.ValidationRule{
			Kind:   schema.ValidationRuleMinLength,
			Params: map[string]string{"value": strconv.FormatUint(src.MinLength, 10)},
		})
	}
	if src.MaxLength != nil {
		field.Validations = append(field.Validations, schema.ValidationRule{
			Kind:   schema.ValidationRuleMaxLength,
			Params: map[string]string{"value": strconv.FormatUint(*src.MaxLength, 10)},
		})
	}
	if src.Pattern != "" {
		field.Validations = append(field.Validations, schema.ValidationRule{
			Kind:   schema.ValidationRulePattern,
			Params: map[string]string{"pattern": src.Pattern},
		})
	}

	return field
}

func fieldType(types *openapi3.Types) schema.FieldType {
	switch firstSchemaType(types) {
	case "integer", "number":
		return schema.FieldTypeInteger
	case "boolean":
		return schema.FieldTypeBoolean
	default:
		return schema.FieldTypeString
	}
}

func firstSchemaType(types *openapi3.Types) string {
	if types == nil {
		return ""
	}
	values := types.Slice()
	if len(values) == 0 {
		return ""
	}
	return values[0]
}

func stringExtension(extensions map[string]any, key string) (string, bool) {
	if len(extensions) == 0 {
		return "", false
	}
	value, ok := extensions[key].(string)
	if !ok || value == "" {
		return "", false
	}
	return value, true
}
