package render

import (
	"context"

	"github.com/goliatone/go-resetform/pkg/schema"
)

// Renderer converts a form descriptor into a byte representation (an HTML
// page, a terminal session payload, etc.).
type Renderer interface {
	Name() string
	ContentType() string
	Render(ctx context.Context, form schema.Form, options RenderOptions) ([]byte, error)
}
