package render

import theme "github.com/goliatone/go-theme"

// RenderOptions describe per-request data renderers can use to customise
// output without mutating the descriptor pipeline.
type RenderOptions struct {
	// Values pre-populates rendered controls keyed by field name, so a failed
	// submit re-renders with the user's input intact.
	Values map[string]string
	// Errors surfaces validation feedback keyed by field name. The vanilla
	// renderer maps these into the inline slot beneath each input.
	Errors map[string]string
	// LoginPath overrides the destination of the "back to login" link. The
	// link target never depends on form state.
	LoginPath string
	// Theme carries a resolved go-theme renderer config. When present the
	// vanilla renderer injects its CSS variables and theme class names.
	Theme *theme.RendererConfig
}
