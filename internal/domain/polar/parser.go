// Package polar parses XFOIL-style polar text files into AirfoilPolar values.
//
// A polar file starts with a free-text header. Two header lines matter: the
// identity line ("Calculated polar for: <name>") and the flow condition line
// carrying "Re = <mantissa> e <exponent>". After a fixed number of header
// lines the body is a whitespace-delimited table with seven numeric columns.
package polar

import (
	"bufio"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/okian/polarreport/internal/domain/model"
)

// Default parser configuration constants.
const (
	defaultHeaderLines        = 13
	defaultIdentityScanLines  = 5
	identityMarker            = "Calculated polar for"
	reynoldsMarker            = "Re ="
	sampleColumns             = 7
	reynoldsTokensAfterMarker = 3
	maxLineBytes              = 1 << 20
)

// Columns lists the table schema in file order.
var Columns = [sampleColumns]string{"alpha", "CL", "CD", "CDp", "CM", "Top_Xtr", "Bot_Xtr"}

// Issue is a soft identity problem. It never fails a parse.
type Issue string

// Soft identity issues reported alongside a parsed polar.
const (
	IssueNameMissing       Issue = "airfoil name marker not found"
	IssueReynoldsMissing   Issue = "reynolds marker not found"
	IssueReynoldsMalformed Issue = "reynolds value malformed"
)

// Result is a parsed polar plus any soft identity issues.
type Result struct {
	Polar  model.AirfoilPolar
	Issues []Issue
}

// Parser turns polar file content into a Result.
type Parser struct {
	headerLines       int
	identityScanLines int
}

// New creates a Parser with configuration options.
func New(opts ...Option) *Parser {
	p := &Parser{
		headerLines:       defaultHeaderLines,
		identityScanLines: defaultIdentityScanLines,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Parse reads a whole polar file. source is used for error messages and
// captions only. Any malformed table row fails the file with a *model.DataError.
func (p *Parser) Parse(source string, r io.Reader) (Result, error) {
	lines, err := readLines(r)
	if err != nil {
		return Result{}, fmt.Errorf("%w: read %s: %w", model.ErrIO, source, err)
	}

	res := Result{Polar: model.AirfoilPolar{Source: source}}

	name, ok := p.airfoilName(lines)
	if !ok {
		res.Issues = append(res.Issues, IssueNameMissing)
	}
	res.Polar.Name = name

	re, issue := reynolds(lines)
	if issue != "" {
		res.Issues = append(res.Issues, issue)
	}
	res.Polar.Reynolds = re

	samples, err := p.samples(source, lines)
	if err != nil {
		return Result{}, err
	}
	res.Polar.Samples = samples
	return res, nil
}

// Parse parses with the default configuration.
func Parse(source string, r io.Reader) (Result, error) {
	return New().Parse(source, r)
}

func readLines(r io.Reader) ([]string, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), maxLineBytes)
	var lines []string
	for sc.Scan() {
		lines = append(lines, sc.Text())
	}
	return lines, sc.Err()
}

// airfoilName looks for the identity marker in the first few lines.
func (p *Parser) airfoilName(lines []string) (string, bool) {
	for i := 0; i < len(lines) && i < p.identityScanLines; i++ {
		line := lines[i]
		if !strings.Contains(line, identityMarker) {
			continue
		}
		name := line
		if idx := strings.LastIndex(line, ":"); idx >= 0 {
			name = line[idx+1:]
		}
		if name = strings.TrimSpace(name); name != "" {
			return name, true
		}
	}
	return model.UnknownAirfoil, false
}

// reynolds rebuilds "<mantissa> e <exponent>" found after the marker.
func reynolds(lines []string) (model.Reynolds, Issue) {
	for _, line := range lines {
		idx := strings.Index(line, reynoldsMarker)
		if idx < 0 {
			continue
		}
		tokens := strings.Fields(line[idx+len(reynoldsMarker):])
		if len(tokens) < reynoldsTokensAfterMarker {
			return model.UnknownReynolds(), IssueReynoldsMalformed
		}
		v, err := strconv.ParseFloat(tokens[0]+"e"+tokens[2], 64)
		if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
			return model.UnknownReynolds(), IssueReynoldsMalformed
		}
		return model.KnownReynolds(v), ""
	}
	return model.UnknownReynolds(), IssueReynoldsMissing
}

func (p *Parser) samples(source string, lines []string) ([]model.PolarSample, error) {
	if len(lines) <= p.headerLines {
		return nil, model.NewDataError(source, "no sample rows after header")
	}

	var out []model.PolarSample
	for i := p.headerLines; i < len(lines); i++ {
		fields := strings.Fields(lines[i])
		if len(fields) == 0 {
			continue
		}
		s, err := parseRow(fields)
		if err != nil {
			err.Source = source
			err.Line = i + 1
			return nil, err
		}
		out = append(out, s)
	}

	if len(out) == 0 {
		return nil, model.NewDataError(source, "no sample rows after header")
	}
	return out, nil
}

func parseRow(fields []string) (model.PolarSample, *model.DataError) {
	if len(fields) != sampleColumns {
		return model.PolarSample{}, &model.DataError{
			Reason: fmt.Sprintf("expected %d fields, got %d", sampleColumns, len(fields)),
		}
	}

	var vals [sampleColumns]float64
	for i, f := range fields {
		v, err := strconv.ParseFloat(f, 64)
		if err != nil {
			return model.PolarSample{}, &model.DataError{Reason: "invalid " + Columns[i], Err: err}
		}
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return model.PolarSample{}, &model.DataError{Reason: "non-finite " + Columns[i]}
		}
		vals[i] = v
	}

	return model.PolarSample{
		Alpha:  vals[0],
		CL:     vals[1],
		CD:     vals[2],
		CDp:    vals[3],
		CM:     vals[4],
		TopXtr: vals[5],
		BotXtr: vals[6],
	}, nil
}
