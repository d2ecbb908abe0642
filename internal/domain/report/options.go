package report

import "github.com/okian/polarreport/internal/domain/efficiency"

// Option applies a configuration option to the Composer.
type Option func(*Composer)

// WithTitle sets the title page text.
func WithTitle(title string) Option {
	return func(c *Composer) {
		if title != "" {
			c.title = title
		}
	}
}

// WithContents toggles the table-of-contents page and detail page footers.
func WithContents(enabled bool) Option {
	return func(c *Composer) {
		c.contents = enabled
	}
}

// WithExtractor sets the extractor whose drag floor decides which samples
// appear on the CL/CD chart.
func WithExtractor(e *efficiency.Extractor) Option {
	return func(c *Composer) {
		if e != nil {
			c.extractor = e
		}
	}
}
