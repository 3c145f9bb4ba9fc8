package app

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/sergi/go-diff/diffmatchpatch"

	"github.com/corey/apistub/internal/ports"
)

// ErrDrift is returned by Check when the destination tree does not match
// what generate would write.
var ErrDrift = errors.New("stub tree out of date")

// DriftKind classifies a mismatch.
type DriftKind int

const (
	// DriftMissing: a stub should exist but does not.
	DriftMissing DriftKind = iota
	// DriftChanged: the stub exists with different content.
	DriftChanged
	// DriftStale: a stub exists for a source that no longer yields any type.
	DriftStale
)

func (k DriftKind) String() string {
	switch k {
	case DriftMissing:
		return "missing"
	case DriftChanged:
		return "changed"
	case DriftStale:
		return "stale"
	default:
		return "unknown"
	}
}

// Drift is one out-of-date stub.
type Drift struct {
	Path string
	Kind DriftKind
	Diff string // line diff, on-disk (-) against regenerated (+)
}

// CheckReport is the outcome of Check.
type CheckReport struct {
	*Summary
	Drifts []Drift
}

// Check regenerates every stub in memory and compares it with what reader
// holds. It returns ErrDrift (possibly joined with processing errors) when
// any stub is missing, different or stale.
func (g *Generator) Check(ctx context.Context, reader ports.StubReader) (*CheckReport, error) {
	files, err := Discover(g.cfg)
	if err != nil {
		return nil, err
	}

	var (
		mu     sync.Mutex
		drifts []Drift
	)
	record := func(d Drift) {
		mu.Lock()
		drifts = append(drifts, d)
		mu.Unlock()
		g.log.Debug("drift", "path", d.Path, "kind", d.Kind.String())
	}

	sum, procErr := g.process(ctx, files, false, func(rel string, content []byte) error {
		existing, ok, err := reader.ReadStub(rel)
		if err != nil {
			return err
		}
		switch {
		case content == nil && ok:
			record(Drift{Path: rel, Kind: DriftStale, Diff: LineDiff(string(existing), "")})
		case content == nil:
		case !ok:
			record(Drift{Path: rel, Kind: DriftMissing})
		case string(existing) != string(content):
			record(Drift{Path: rel, Kind: DriftChanged, Diff: LineDiff(string(existing), string(content))})
		}
		return nil
	})

	sort.Slice(drifts, func(i, j int) bool { return drifts[i].Path < drifts[j].Path })
	report := &CheckReport{Summary: sum, Drifts: drifts}

	var errs []error
	if procErr != nil {
		errs = append(errs, procErr)
	}
	if len(drifts) > 0 {
		errs = append(errs, fmt.Errorf("%w: %d file(s)", ErrDrift, len(drifts)))
	}
	g.log.Info("checked", "files", sum.Files, "drifted", len(drifts))
	return report, errors.Join(errs...)
}

// diffContext is the number of unchanged lines shown around each change.
const diffContext = 2

// LineDiff renders a line-oriented diff of two texts. Unchanged runs longer
// than twice the context are elided with a "@@" marker.
func LineDiff(have, want string) string {
	if have == want {
		return ""
	}
	dmp := diffmatchpatch.New()
	a, b, lines := dmp.DiffLinesToChars(have, want)
	diffs := dmp.DiffCharsToLines(dmp.DiffMain(a, b, false), lines)

	var sb strings.Builder
	for i, d := range diffs {
		ls := splitLines(d.Text)
		switch d.Type {
		case diffmatchpatch.DiffDelete:
			writeLines(&sb, "-", ls)
		case diffmatchpatch.DiffInsert:
			writeLines(&sb, "+", ls)
		case diffmatchpatch.DiffEqual:
			head, tail := diffContext, diffContext
			if i == 0 {
				head = 0
			}
			if i == len(diffs)-1 {
				tail = 0
			}
			if len(ls) <= head+tail {
				writeLines(&sb, " ", ls)
				continue
			}
			writeLines(&sb, " ", ls[:head])
			sb.WriteString("@@\n")
			writeLines(&sb, " ", ls[len(ls)-tail:])
		}
	}
	return sb.String()
}

func splitLines(s string) []string {
	ls := strings.SplitAfter(s, "\n")
	if len(ls) > 0 && ls[len(ls)-1] == "" {
		ls = ls[:len(ls)-1]
	}
	return ls
}

func writeLines(sb *strings.Builder, prefix string, ls []string) {
	for _, l := range ls {
		sb.WriteString(prefix)
		sb.WriteString(strings.TrimSuffix(l, "\n"))
		sb.WriteString("\n")
	}
}
