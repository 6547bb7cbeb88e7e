package form

import (
	"context"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-resetform/pkg/schema"
	"github.com/goliatone/go-resetform/pkg/validation"
)

func TestSubmitBlocksInvalidValues(t *testing.T) {
	calls := 0
	controller, err := New(schema.ResetRequestForm(), WithOnSubmit(func(context.Context, validation.Values) error {
		calls++
		return nil
	}))
	if err != nil {
		t.Fatalf("new controller: %v", err)
	}

	err = controller.Submit(context.Background())
	if !errors.Is(err, ErrValidationFailed) {
		t.Fatalf("submit error = %v, want ErrValidationFailed", err)
	}
	if calls != 0 {
		t.Fatalf("callback fired %d times on invalid submit", calls)
	}
	if controller.State() != StateInvalid {
		t.Fatalf("state = %q, want %q", controller.State(), StateInvalid)
	}
	if got := controller.ErrorFor("email"); got != schema.InvalidEmailMessage {
		t.Fatalf("field message = %q, want %q", got, schema.InvalidEmailMessage)
	}
}

func TestSubmitFiresCallbackOncePerValidSubmit(t *testing.T) {
	var received []validation.Values
	controller, err := New(schema.ResetRequestForm(), WithOnSubmit(func(_ context.Context, values validation.Values) error {
		received = append(received, values)
		return nil
	}))
	if err != nil {
		t.Fatalf("new controller: %v", err)
	}

	controller.SetValue("email", "john@example.com")
	if err := controller.Submit(context.Background()); err != nil {
		t.Fatalf("submit: %v", err)
	}

	if len(received) != 1 {
		t.Fatalf("callback fired %d times, want 1", len(received))
	}
	want := validation.Values{"email": "john@example.com"}
	if diff := cmp.Diff(want, received[0]); diff != "" {
		t.Fatalf("callback values (-want +got):\n%s", diff)
	}
	if controller.State() != StateValid {
		t.Fatalf("state = %q, want %q", controller.State(), StateValid)
	}
	if got := controller.ErrorFor("email"); got != "" {
		t.Fatalf("unexpected field message %q after success", got)
	}
}

func TestSubmitRecoversAfterCorrection(t *testing.T) {
	calls := 0
	controller, err := New(schema.ResetRequestForm(), WithOnSubmit(func(context.Context, validation.Values) error {
		calls++
		return nil
	}))
	if err != nil {
		t.Fatalf("new controller: %v", err)
	}

	controller.SetValue("email", "broken")
	if err := controller.Submit(context.Background()); !errors.Is(err, ErrValidationFailed) {
		t.Fatalf("first submit error = %v, want ErrValidationFailed", err)
	}

	controller.SetValue("email", "john@example.com")
	if err := controller.Submit(context.Background()); err != nil {
		t.Fatalf("second submit: %v", err)
	}

	// No locked state: a third valid submit fires the callback again.
	if err := controller.Submit(context.Background()); err != nil {
		t.Fatalf("third submit: %v", err)
	}
	if calls != 2 {
		t.Fatalf("callback fired %d times, want 2", calls)
	}
}

func TestSetValueDoesNotValidate(t *testing.T) {
	controller, err := New(schema.ResetRequestForm())
	if err != nil {
		t.Fatalf("new controller: %v", err)
	}

	controller.SetValue("email", "broken")
	if got := controller.ErrorFor("email"); got != "" {
		t.Fatalf("SetValue triggered validation: %q", got)
	}
	if controller.State() != StateInvalid {
		t.Fatalf("state = %q, want initial %q", controller.State(), StateInvalid)
	}
}

func TestSubmitWrapsCallbackError(t *testing.T) {
	boom := errors.New("smtp unavailable")
	controller, err := New(schema.ResetRequestForm(), WithOnSubmit(func(context.Context, validation.Values) error {
		return boom
	}))
	if err != nil {
		t.Fatalf("new controller: %v", err)
	}

	controller.SetValue("email", "john@example.com")
	err = controller.Submit(context.Background())
	if !errors.Is(err, boom) {
		t.Fatalf("submit error = %v, want wrapped %v", err, boom)
	}
	if errors.Is(err, ErrValidationFailed) {
		t.Fatalf("callback failure must not masquerade as validation failure")
	}
}

func TestWithInitialValuesSeedsState(t *testing.T) {
	controller, err := New(schema.ResetRequestForm(), WithInitialValues(validation.Values{"email": "seed@example.com"}))
	if err != nil {
		t.Fatalf("new controller: %v", err)
	}
	if got := controller.Value("email"); got != "seed@example.com" {
		t.Fatalf("seeded value = %q", got)
	}
}
