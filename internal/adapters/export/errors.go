package export

import "errors"

// ErrBuildWorkbook is returned when the summary workbook cannot be assembled.
var ErrBuildWorkbook = errors.New("build summary workbook")
