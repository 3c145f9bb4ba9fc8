package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/fatih/color"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"github.com/corey/apistub/internal/app"
)

var (
	bold   = color.New(color.Bold).SprintFunc()
	green  = color.New(color.FgGreen).SprintFunc()
	yellow = color.New(color.FgYellow).SprintFunc()
	red    = color.New(color.FgRed).SprintFunc()
	cyan   = color.New(color.FgCyan).SprintFunc()
	gray   = color.New(color.FgHiBlack).SprintFunc()
)

// printSummary reports a generate run.
//
//	⚡ 412 files │ 388 written │ 24 skipped │ 1.9 MB │ 840ms
//	  301 unchanged since the last run
//	  removed 1,203 members, 96 types, 57 imports │ erased 5,870 bodies
func printSummary(w io.Writer, c *app.Config, s *app.Summary) {
	fmt.Fprintf(w, "%s %s files │ %s written │ %s skipped │ %s │ %s\n",
		bold("⚡"),
		humanize.Comma(int64(s.Files)),
		green(humanize.Comma(int64(s.Written))),
		gray(humanize.Comma(int64(s.Skipped))),
		humanize.Bytes(uint64(s.Bytes)),
		s.Duration.Round(1e6))
	if s.Cached > 0 {
		fmt.Fprintf(w, "  %s\n", gray(fmt.Sprintf("%s unchanged since the last run", humanize.Comma(int64(s.Cached)))))
	}
	fmt.Fprintf(w, "  removed %s members, %s types, %s imports │ erased %s bodies │ kept %s delegations\n",
		humanize.Comma(int64(s.Totals.MembersRemoved)),
		humanize.Comma(int64(s.Totals.TypesRemoved)),
		humanize.Comma(int64(s.Totals.ImportsRemoved)),
		humanize.Comma(int64(s.Totals.BodiesErased)),
		humanize.Comma(int64(s.Totals.InvocationsPreserved)))
	if s.Failed > 0 {
		fmt.Fprintf(w, "  %s\n", red(fmt.Sprintf("%d failed", s.Failed)))
	}
	fmt.Fprintf(w, "  %s → %s\n", cyan(c.SourceRoot), cyan(c.DestRoot))
}

// printFileResult reports one regenerated file in watch mode.
func printFileResult(w io.Writer, r app.FileResult) {
	switch {
	case r.Err != nil:
		fmt.Fprintf(w, "%s %s: %v\n", red("✗"), r.Path, r.Err)
	case r.Emitted:
		fmt.Fprintf(w, "%s %s %s\n", green("✓"), r.Path, gray(humanize.Bytes(uint64(r.Bytes))))
	default:
		fmt.Fprintf(w, "%s %s %s\n", yellow("–"), r.Path, gray("no public types"))
	}
}

// printCheck reports drift as a table, optionally followed by diffs.
func printCheck(w io.Writer, r *app.CheckReport, withDiff bool) {
	if len(r.Drifts) == 0 {
		fmt.Fprintf(w, "%s %s stubs up to date\n", green("✓"), humanize.Comma(int64(r.Written)))
		return
	}

	tbl := table.NewWriter()
	tbl.SetStyle(table.StyleLight)
	tbl.Style().Options.DrawBorder = false
	tbl.Style().Options.SeparateColumns = false
	tbl.Style().Format.Footer = text.FormatDefault
	tbl.AppendHeader(table.Row{"Status", "Stub", "Changed lines"})
	for _, d := range r.Drifts {
		tbl.AppendRow(table.Row{driftLabel(d.Kind), d.Path, changedLines(d.Diff)})
	}
	tbl.AppendFooter(table.Row{"", fmt.Sprintf("%d of %d out of date", len(r.Drifts), r.Files), ""})
	fmt.Fprintln(w, tbl.Render())

	if !withDiff {
		return
	}
	for _, d := range r.Drifts {
		if d.Diff == "" {
			continue
		}
		fmt.Fprintf(w, "\n%s\n", bold(d.Path))
		for _, line := range strings.SplitAfter(strings.TrimSuffix(d.Diff, "\n"), "\n") {
			switch {
			case strings.HasPrefix(line, "+"):
				fmt.Fprint(w, green(line))
			case strings.HasPrefix(line, "-"):
				fmt.Fprint(w, red(line))
			case strings.HasPrefix(line, "@@"):
				fmt.Fprint(w, cyan(line))
			default:
				fmt.Fprint(w, line)
			}
		}
		fmt.Fprintln(w)
	}
}

func driftLabel(k app.DriftKind) string {
	switch k {
	case app.DriftMissing:
		return yellow(k.String())
	case app.DriftStale:
		return gray(k.String())
	default:
		return red(k.String())
	}
}

// changedLines counts added and removed lines in a diff.
func changedLines(diff string) string {
	var add, del int
	for _, line := range strings.Split(diff, "\n") {
		switch {
		case strings.HasPrefix(line, "+"):
			add++
		case strings.HasPrefix(line, "-"):
			del++
		}
	}
	if add == 0 && del == 0 {
		return "-"
	}
	return fmt.Sprintf("+%d -%d", add, del)
}
