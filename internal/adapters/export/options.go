package export

// Option configures the workbook's document properties.
type Option func(*props)

type props struct {
	runID string
	title string
}

// WithRunID records the run identifier in the workbook properties.
func WithRunID(id string) Option {
	return func(p *props) {
		p.runID = id
	}
}

// WithTitle sets the workbook title property.
func WithTitle(title string) Option {
	return func(p *props) {
		if title != "" {
			p.title = title
		}
	}
}
