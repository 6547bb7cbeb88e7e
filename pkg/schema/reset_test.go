package schema

import "testing"

func TestResetRequestForm(t *testing.T) {
	form := ResetRequestForm()

	if form.ID != ResetRequestFormID {
		t.Fatalf("unexpected form ID %q", form.ID)
	}
	if form.Endpoint != ResetRequestPath {
		t.Fatalf("unexpected endpoint %q", form.Endpoint)
	}
	if form.Method != "POST" {
		t.Fatalf("unexpected method %q", form.Method)
	}
	if form.SubmitLabel != "Send Reset Link" {
		t.Fatalf("unexpected submit label %q", form.SubmitLabel)
	}

	field, ok := form.Field(ResetRequestField)
	if !ok {
		t.Fatalf("email field missing from descriptor")
	}
	if !field.Required {
		t.Fatalf("email field must be required")
	}
	if !field.IsEmail() {
		t.Fatalf("email field must carry the email format")
	}
}

func TestFieldIsEmail(t *testing.T) {
	byFormat := Field{Name: "email", Format: FormatEmail}
	if !byFormat.IsEmail() {
		t.Fatalf("format email not detected")
	}

	byRule := Field{
		Name: "email",
		Validations: []ValidationRule{
			{Kind: ValidationRuleFormat, Params: map[string]string{"format": FormatEmail}},
		},
	}
	if !byRule.IsEmail() {
		t.Fatalf("format rule not detected")
	}

	plain := Field{Name: "username"}
	if plain.IsEmail() {
		t.Fatalf("plain field misdetected as email")
	}
}
