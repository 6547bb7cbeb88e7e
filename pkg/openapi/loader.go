package openapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"net/http"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

const defaultRequestTimeout = 10 * time.Second

// LoaderOption configures a Loader.
type LoaderOption func(*Loader)

// WithFileSystem supplies the fs.FS consulted for SourceKindFS sources.
func WithFileSystem(filesystem fs.FS) LoaderOption {
	return func(l *Loader) {
		l.fs = filesystem
	}
}

// WithHTTPClient enables SourceKindURL sources using the provided client.
func WithHTTPClient(client *http.Client) LoaderOption {
	return func(l *Loader) {
		l.http = client
	}
}

// WithRequestTimeout bounds HTTP fetches when no client timeout is set.
func WithRequestTimeout(timeout time.Duration) LoaderOption {
	return func(l *Loader) {
		if timeout > 0 {
			l.timeout = timeout
		}
	}
}

// Loader fetches documents from files, fs.FS entries, or HTTP endpoints and
// normalizes YAML payloads to JSON.
type Loader struct {
	fs      fs.FS
	http    *http.Client
	timeout time.Duration
}

// NewLoader constructs a Loader. HTTP sources stay disabled unless an HTTP
// client is supplied.
func NewLoader(options ...LoaderOption) *Loader {
	l := &Loader{timeout: defaultRequestTimeout}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(l)
	}
	if l.http != nil && l.http.Timeout == 0 {
		clone := *l.http
		clone.Timeout = l.timeout
		l.http = &clone
	}
	return l
}

// Load fetches a document from the provided source and wraps it in a Document.
func (l *Loader) Load(ctx context.Context, src Source) (Document, error) {
	if src == nil {
		return Document{}, errors.New("openapi loader: source is nil")
	}

	var (
		data []byte
		err  error
	)

	switch src.Kind() {
	case SourceKindFile:
		data, err = loadFile(ctx, src.Location())
	case SourceKindFS:
		data, err = loadFromFS(ctx, l.fs, src.Location())
	case SourceKindURL:
		if l.http == nil {
			return Document{}, errors.New("openapi loader: http support disabled")
		}
		data, err = loadHTTP(ctx, l.http, src.Location())
	default:
		err = errors.New("openapi loader: unsupported source kind")
	}
	if err != nil {
		return Document{}, err
	}

	data, err = normalizeJSON(data)
	if err != nil {
		return Document{}, fmt.Errorf("openapi loader: normalize %s: %w", src.Location(), err)
	}

	return NewDocument(src, data)
}

func loadFile(ctx context.Context, path string) ([]byte, error) {
	if path == "" {
		return nil, errors.New("openapi loader: file path is required")
	}
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("openapi loader: read %s: %w", path, err)
	}
	return data, nil
}

func loadFromFS(ctx context.Context, filesystem fs.FS, name string) ([]byte, error) {
	if filesystem == nil {
		return nil, errors.New("openapi loader: filesystem is not configured")
	}
	if name == "" {
		return nil, errors.New("openapi loader: fs path is required")
	}
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	data, err := fs.ReadFile(filesystem, name)
	if err != nil {
		return nil, err
	}
	return data, nil
}

func loadHTTP(ctx context.Context, client *http.Client, rawURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("openapi loader: build request: %w", err)
	}
	req.Header.Set("Accept", "application/json, application/yaml")

	res, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("openapi loader: fetch %s: %w", rawURL, err)
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("openapi loader: fetch %s: unexpected status %d", rawURL, res.StatusCode)
	}

	data, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, fmt.Errorf("openapi loader: read %s: %w", rawURL, err)
	}
	return data, nil
}

// normalizeJSON passes JSON payloads through untouched and converts YAML
// payloads to JSON so every Document carries a JSON body.
func normalizeJSON(data []byte) ([]byte, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return nil, errors.New("payload is empty")
	}
	if trimmed[0] == '{' || trimmed[0] == '[' {
		return data, nil
	}

	var decoded any
	if err := yaml.Unmarshal(data, &decoded); err != nil {
		return nil, fmt.Errorf("decode yaml: %w", err)
	}
	encoded, err := json.Marshal(decoded)
	if err != nil {
		return nil, fmt.Errorf("encode json: %w", err)
	}
	return encoded, nil
}
