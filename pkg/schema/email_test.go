package schema

import "testing"

func TestValidEmailAddress(t *testing.T) {
	cases := []struct {
		name  string
		value string
		want  bool
	}{
		{name: "simple address", value: "john@example.com", want: true},
		{name: "subdomain", value: "john@mail.example.co.uk", want: true},
		{name: "plus tag", value: "john+reset@example.com", want: true},
		{name: "quoted-ish local", value: "first.last@example.com", want: true},
		{name: "empty", value: "", want: false},
		{name: "whitespace only", value: "   ", want: false},
		{name: "missing at", value: "not-an-email", want: false},
		{name: "missing local", value: "@example.com", want: false},
		{name: "missing domain", value: "john@", want: false},
		{name: "domain without dot", value: "john@example", want: false},
		{name: "empty domain label", value: "john@example..com", want: false},
		{name: "trailing dot", value: "john@example.com.", want: false},
		{name: "leading dot domain", value: "john@.example.com", want: false},
		{name: "surrounding spaces", value: " john@example.com ", want: false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := ValidEmailAddress(tc.value); got != tc.want {
				t.Fatalf("ValidEmailAddress(%q) = %v, want %v", tc.value, got, tc.want)
			}
		})
	}
}
