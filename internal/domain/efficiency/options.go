package efficiency

// Option applies a configuration option to the Extractor.
type Option func(*Extractor)

// WithMinDrag sets the drag floor for eligible samples. Negative values are ignored.
func WithMinDrag(minDrag float64) Option {
	return func(e *Extractor) {
		if minDrag >= 0 {
			e.minDrag = minDrag
		}
	}
}
