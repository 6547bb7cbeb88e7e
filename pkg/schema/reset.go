package schema

// Canonical identifiers for the password-reset request page.
const (
	ResetRequestFormID  = "password-reset:request"
	ResetRequestPath    = "/password-reset"
	ResetRequestField   = "email"
	ResetSubmitLabel    = "Send Reset Link"
	DefaultLoginPath    = "/login"
	InvalidEmailMessage = "Invalid email address"
)

// ResetRequestForm returns the built-in descriptor for the forgot-password
// page: a single required email field posted to the reset endpoint. Callers
// driving the form from an OpenAPI document get an equivalent descriptor from
// the openapi package instead.
func ResetRequestForm() Form {
	return Form{
		ID:          ResetRequestFormID,
		Title:       "Forgot Password",
		Endpoint:    ResetRequestPath,
		Method:      "POST",
		Summary:     "Enter the email address for your account and we will send you a reset link.",
		SubmitLabel: ResetSubmitLabel,
		Fields: []Field{
			{
				Name:        ResetRequestField,
				Type:        FieldTypeString,
				Format:      FormatEmail,
				Required:    true,
				Label:       "Email",
				Placeholder: "you@example.com",
				Validations: []ValidationRule{
					{
						Kind:   ValidationRuleFormat,
						Params: map[string]string{"format": FormatEmail},
					},
				},
			},
		},
	}
}
