package openapi

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"testing/fstest"
)

const resetDocYAML = `openapi: 3.0.3
info:
  title: Accounts
  version: 1.0.0
paths:
  /password-reset:
    post:
      operationId: requestPasswordReset
      requestBody:
        content:
          application/json:
            schema:
              type: object
              required: [email]
              properties:
                email:
                  type: string
                  format: email
      responses:
        "204":
          description: Accepted
`

func TestLoadFromFS(t *testing.T) {
	loader := NewLoader(WithFileSystem(fstest.MapFS{
		"specs/accounts.yaml": {Data: []byte(resetDocYAML)},
	}))

	doc, err := loader.Load(context.Background(), SourceFromFS("specs/accounts.yaml"))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if doc.Location() != "specs/accounts.yaml" {
		t.Fatalf("unexpected location %q", doc.Location())
	}
}

func TestLoadNormalizesYAMLToJSON(t *testing.T) {
	loader := NewLoader(WithFileSystem(fstest.MapFS{
		"accounts.yaml": {Data: []byte(resetDocYAML)},
	}))

	doc, err := loader.Load(context.Background(), SourceFromFS("accounts.yaml"))
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	raw := string(doc.Raw())
	if !strings.HasPrefix(raw, "{") {
		t.Fatalf("payload not normalized to JSON: %q", raw)
	}

	// The normalized payload must still parse end to end.
	if _, err := NewParser().Form(context.Background(), doc, "requestPasswordReset"); err != nil {
		t.Fatalf("parse normalized document: %v", err)
	}
}

func TestLoadFromHTTP(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/yaml")
		_, _ = w.Write([]byte(resetDocYAML))
	}))
	defer ts.Close()

	loader := NewLoader(WithHTTPClient(ts.Client()))
	doc, err := loader.Load(context.Background(), SourceFromURL(ts.URL))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(doc.Raw()) == 0 {
		t.Fatalf("empty payload")
	}
}

func TestLoadHTTPDisabledWithoutClient(t *testing.T) {
	loader := NewLoader()
	if _, err := loader.Load(context.Background(), SourceFromURL("http://example.com/spec.json")); err == nil {
		t.Fatalf("expected error when http support is disabled")
	}
}

func TestLoadHTTPStatusError(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer ts.Close()

	loader := NewLoader(WithHTTPClient(ts.Client()))
	if _, err := loader.Load(context.Background(), SourceFromURL(ts.URL)); err == nil {
		t.Fatalf("expected error for non-200 response")
	}
}

func TestLoadRequiresConfiguredFS(t *testing.T) {
	loader := NewLoader()
	if _, err := loader.Load(context.Background(), SourceFromFS("missing.yaml")); err == nil {
		t.Fatalf("expected error without configured filesystem")
	}
}

func TestSourceKinds(t *testing.T) {
	if got := SourceFromFile("./specs/doc.json").Kind(); got != SourceKindFile {
		t.Fatalf("file kind = %q", got)
	}
	if got := SourceFromFS("doc.json").Kind(); got != SourceKindFS {
		t.Fatalf("fs kind = %q", got)
	}
	if got := SourceFromURL("https://example.com/doc.json").Kind(); got != SourceKindURL {
		t.Fatalf("url kind = %q", got)
	}
}

func TestSourceFromURLPanicsOnInvalid(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatalf("expected panic for invalid URL")
		}
	}()
	SourceFromURL("not a url")
}
