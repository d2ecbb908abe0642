package polar

// Option applies a configuration option to the Parser.
type Option func(*Parser)

// WithHeaderLines sets how many lines precede the sample table.
func WithHeaderLines(n int) Option {
	return func(p *Parser) {
		if n >= 0 {
			p.headerLines = n
		}
	}
}

// WithIdentityScanLines sets how many leading lines are searched for the airfoil name.
func WithIdentityScanLines(n int) Option {
	return func(p *Parser) {
		if n > 0 {
			p.identityScanLines = n
		}
	}
}
