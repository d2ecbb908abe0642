package model

// SkippedFile records an input file excluded from the report.
type SkippedFile struct {
	Source string
	Stage  string
	Err    error
}

// Reason returns the error text, or an empty string.
func (s SkippedFile) Reason() string {
	if s.Err == nil {
		return ""
	}
	return s.Err.Error()
}
