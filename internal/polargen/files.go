package polargen

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/okian/polarreport/pkg/logger"
)

// File permission constants.
const (
	directoryPermission = 0o750
	filePermission      = 0o600
)

// Constants for series variation.
const (
	camberStep   = 0.07
	camberBase   = 0.05
	camberCycle  = 7
	dragStep     = 0.0004
	dragCycle    = 3
	baseReynolds = 5e5
	reynoldsStep = 2.5e5
	reynoldsMod  = 5
)

// Series returns n specs with varied camber, drag and Reynolds number.
// The result is deterministic for a given n.
func Series(n int) []Spec {
	specs := make([]Spec, 0, n)
	for i := 0; i < n; i++ {
		s := Default(fmt.Sprintf("SYN %04d", i+1), baseReynolds+reynoldsStep*float64(i%reynoldsMod))
		s.CL0 = camberBase + camberStep*float64((i*3)%camberCycle)
		s.CD0 += dragStep * float64(i%dragCycle)
		specs = append(specs, s)
	}
	return specs
}

// FileName derives a file name from the airfoil name.
func FileName(s Spec) string {
	name := strings.ToLower(strings.TrimSpace(s.Name))
	if name == "" {
		name = "polar"
	}
	name = strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '-', r == '_':
			return r
		default:
			return '_'
		}
	}, name)
	return name + ".txt"
}

// WriteDir writes every spec into dir and returns the written paths in order.
func WriteDir(ctx context.Context, dir string, specs []Spec) ([]string, error) {
	if err := os.MkdirAll(dir, directoryPermission); err != nil {
		return nil, fmt.Errorf("create directory %s: %w", dir, err)
	}

	paths := make([]string, 0, len(specs))
	for _, s := range specs {
		if err := ctx.Err(); err != nil {
			return paths, fmt.Errorf("context cancelled during generation: %w", err)
		}
		path := filepath.Join(dir, FileName(s))
		if err := os.WriteFile(path, []byte(s.Render()), filePermission); err != nil {
			return paths, fmt.Errorf("write %s: %w", path, err)
		}
		paths = append(paths, path)
	}

	logger.Get().Info(ctx, "generated polar files",
		logger.String("dir", dir),
		logger.Int("count", len(paths)),
	)
	return paths, nil
}
