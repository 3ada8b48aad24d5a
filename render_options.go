package mdorg

// RenderOption configures stream conversion.
type RenderOption func(*renderConfig)

type renderConfig struct {
	noFrontMatter bool
}

// WithFrontMatterFilter enables or disables stripping of leading front
// matter (---, +++ or ;;; delimited) before conversion. Enabled by default.
func WithFrontMatterFilter(enabled bool) RenderOption {
	return func(cfg *renderConfig) {
		cfg.noFrontMatter = !enabled
	}
}
