package openapi

import (
	"context"
	"testing"

	"github.com/goliatone/go-resetform/pkg/schema"
)

const resetDocJSON = `{
  "openapi": "3.0.3",
  "info": {"title": "Accounts", "version": "1.0.0"},
  "paths": {
    "/password-reset": {
      "post": {
        "operationId": "requestPasswordReset",
        "summary": "Forgot Password",
        "description": "Request a password reset link by email.",
        "x-submit-label": "Send Reset Link",
        "requestBody": {
          "required": true,
          "content": {
            "application/json": {
              "schema": {
                "type": "object",
                "required": ["email"],
                "properties": {
                  "email": {
                    "type": "string",
                    "format": "email",
                    "title": "Email",
                    "x-placeholder": "you@example.com"
                  }
                }
              }
            }
          }
        },
        "responses": {"204": {"description": "Accepted"}}
      }
    }
  }
}`

func testDocument(t *testing.T, payload string) Document {
	t.Helper()
	return MustNewDocument(SourceFromFS("openapi.json"), []byte(payload))
}

func TestFormsExtractsResetOperation(t *testing.T) {
	parser := NewParser()
	forms, err := parser.Forms(context.Background(), testDocument(t, resetDocJSON))
	if err != nil {
		t.Fatalf("forms: %v", err)
	}

	form, ok := forms["requestPasswordReset"]
	if !ok {
		t.Fatalf("operation missing, have %v", forms)
	}
	if form.Endpoint != "/password-reset" || form.Method != "POST" {
		t.Fatalf("unexpected endpoint %s %s", form.Method, form.Endpoint)
	}
	if form.Title != "Forgot Password" {
		t.Fatalf("unexpected title %q", form.Title)
	}
	if form.SubmitLabel != "Send Reset Link" {
		t.Fatalf("unexpected submit label %q", form.SubmitLabel)
	}

	if len(form.Fields) != 1 {
		t.Fatalf("expected one field, got %d", len(form.Fields))
	}
	field := form.Fields[0]
	if field.Name != "email" || !field.Required {
		t.Fatalf("unexpected field %+v", field)
	}
	if !field.IsEmail() {
		t.Fatalf("email format lost in conversion: %+v", field)
	}
	if field.Label != "Email" || field.Placeholder != "you@example.com" {
		t.Fatalf("presentation metadata lost: %+v", field)
	}
}

func TestFormLooksUpOperation(t *testing.T) {
	parser := NewParser()
	doc := testDocument(t, resetDocJSON)

	if _, err := parser.Form(context.Background(), doc, "requestPasswordReset"); err != nil {
		t.Fatalf("form: %v", err)
	}
	if _, err := parser.Form(context.Background(), doc, "missingOperation"); err == nil {
		t.Fatalf("expected error for unknown operation")
	}
}

func TestFormsRejectsEmptyDocuments(t *testing.T) {
	parser := NewParser()
	doc := testDocument(t, `{"openapi": "3.0.3", "info": {"title": "Empty", "version": "1.0.0"}, "paths": {}}`)
	if _, err := parser.Forms(context.Background(), doc); err == nil {
		t.Fatalf("expected error for document without paths")
	}
}

func TestConvertFieldValidationRules(t *testing.T) {
	doc := testDocument(t, `{
  "openapi": "3.0.3",
  "info": {"title": "Accounts", "version": "1.0.0"},
  "paths": {
    "/signup": {
      "post": {
        "operationId": "signup",
        "requestBody": {
          "content": {
            "application/json": {
              "schema": {
                "type": "object",
                "required": ["username"],
                "properties": {
                  "username": {
                    "type": "string",
                    "minLength": 3,
                    "maxLength": 20,
                    "pattern": "^[a-z]+$"
                  },
                  "age": {"type": "integer"},
                  "subscribe": {"type": "boolean"}
                }
              }
            }
          }
        },
        "responses": {"204": {"description": "Created"}}
      }
    }
  }
}`)

	form, err := NewParser().Form(context.Background(), doc, "signup")
	if err != nil {
		t.Fatalf("form: %v", err)
	}

	// Fields come back sorted by name.
	if len(form.Fields) != 3 {
		t.Fatalf("expected three fields, got %+v", form.Fields)
	}
	if form.Fields[0].Name != "age" || form.Fields[0].Type != schema.FieldTypeInteger {
		t.Fatalf("unexpected first field %+v", form.Fields[0])
	}
	if form.Fields[1].Name != "subscribe" || form.Fields[1].Type != schema.FieldTypeBoolean {
		t.Fatalf("unexpected second field %+v", form.Fields[1])
	}

	username := form.Fields[2]
	if username.Name != "username" {
		t.Fatalf("unexpected third field %+v", username)
	}
	kinds := make(map[string]map[string]string, len(username.Validations))
	for _, rule := range username.Validations {
		kinds[rule.Kind] = rule.Params
	}
	if kinds[schema.ValidationRuleMinLength]["value"] != "3" {
		t.Fatalf("minLength rule missing: %+v", username.Validations)
	}
	if kinds[schema.ValidationRuleMaxLength]["value"] != "20" {
		t.Fatalf("maxLength rule missing: %+v", username.Validations)
	}
	if kinds[schema.ValidationRulePattern]["pattern"] != "^[a-z]+$" {
		t.Fatalf("pattern rule missing: %+v", username.Validations)
	}
}
