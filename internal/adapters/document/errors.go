package document

import "errors"

var (
	ErrFinalized       = errors.New("document already finalized")
	ErrEmptyDocument   = errors.New("document has no pages")
	ErrUnknownPageKind = errors.New("unknown page kind")
)
