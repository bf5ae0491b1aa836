package pipeline

import (
	"fmt"
	"strings"
)

// Result is the single outcome of one pipeline run. It is a plain value,
// owned by the caller, and marshals to deterministic JSON: no maps, no
// timestamps, no randomness anywhere in it.
type Result struct {
	OK           bool     `json:"ok"`
	ErrorCount   int      `json:"errorCount"`
	WarningCount int      `json:"warningCount"`
	Findings     Findings `json:"findings"`
	Tree         *Node    `json:"tree"`
	Stats        Stats    `json:"stats"`
}

// maxListed caps how many findings of one severity the human summary prints
// in full. The machine result always carries all of them.
const maxListed = 25

// Summary renders the run for humans: counts, errors then warnings in row
// order, node statistics, and a one-line verdict. The output is meant for a
// CI log or a pull-request comment, so a non-technical editor can locate
// every defect by row and column.
func (r Result) Summary() string {
	var b strings.Builder

	fmt.Fprintf(&b, "content validation: %s, %s\n",
		plural(r.ErrorCount, "error"), plural(r.WarningCount, "warning"))

	writeGroup(&b, "errors", r.Findings.BySeverity(SeverityError))
	writeGroup(&b, "warnings", r.Findings.BySeverity(SeverityWarning))

	b.WriteString("\n")
	if r.Tree == nil {
		b.WriteString("no document built\n")
	} else {
		fmt.Fprintf(&b, "built %s, %s, %s, %s, %s, %s\n",
			plural(r.Stats.Courses, "course"),
			plural(r.Stats.Units, "unit"),
			plural(r.Stats.Topics, "topic"),
			plural(r.Stats.Problems, "problem"),
			plural(r.Stats.Steps, "step"),
			plural(r.Stats.Answers, "answer"))
	}

	if r.OK {
		b.WriteString("validation passed\n")
	} else {
		b.WriteString("validation failed\n")
	}
	return b.String()
}

func writeGroup(b *strings.Builder, title string, fs Findings) {
	if len(fs) == 0 {
		return
	}

	fmt.Fprintf(b, "\n%s:\n", title)
	for i, f := range fs {
		if i == maxListed {
			fmt.Fprintf(b, "  ... and %d more %s\n", len(fs)-maxListed, title)
			break
		}
		b.WriteString("  " + formatFinding(f) + "\n")
	}
}

func formatFinding(f Finding) string {
	var loc string
	switch {
	case f.RowIndex == 0:
		loc = "sheet"
	case f.Column != "":
		loc = fmt.Sprintf("row %d, %s", f.RowIndex, f.Column)
	default:
		loc = fmt.Sprintf("row %d", f.RowIndex)
	}
	return fmt.Sprintf("%s: %s (%s)", loc, f.Message, f.Code)
}

func plural(n int, noun string) string {
	if n == 1 {
		return fmt.Sprintf("1 %s", noun)
	}
	return fmt.Sprintf("%d %ss", n, noun)
}
