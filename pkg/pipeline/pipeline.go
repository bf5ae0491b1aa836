package pipeline

import (
	"fmt"

	"github.com/curricle/contentkit/pkg/schema"
	"github.com/curricle/contentkit/pkg/table"
)

// Run validates the table against the schema and builds the content
// document. It is a pure function: no I/O, no shared state, no panics on
// malformed input — a defective sheet is a first-class outcome carried in
// the Result, never an error. Concurrent runs over different tables need no
// coordination.
//
// A missing required header is the one fatal case: without the schema no row
// can be classified, so the run reports the missing headers and returns a
// nil tree. Every other defect is recoverable — the offending subtree is
// pruned, the rest of the document is built, and all findings of the run are
// reported together.
func Run(t *table.Table, sch schema.Schema) Result {
	if t == nil {
		t = table.New(nil, nil)
	}

	if missing := sch.Missing(t.Headers()); len(missing) > 0 {
		var findings Findings
		for _, h := range missing {
			findings = append(findings, Finding{
				Severity: SeverityError,
				Column:   h,
				Code:     CodeMissingRequiredHeader,
				Message:  fmt.Sprintf("sheet is missing the required header %q", h),
			})
		}
		return Result{
			OK:         false,
			ErrorCount: len(findings),
			Findings:   findings,
			Tree:       nil,
		}
	}

	rows, findings := normalizeRows(t, sch)
	a := analyze(rows)

	findings = append(findings, a.findings...)
	findings.sortByRow()

	tree, stats := buildTree(a)

	return Result{
		OK:           findings.ErrorCount() == 0,
		ErrorCount:   findings.ErrorCount(),
		WarningCount: findings.WarningCount(),
		Findings:     findings,
		Tree:         tree,
		Stats:        stats,
	}
}
