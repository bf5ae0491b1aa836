package pipeline

import (
	"fmt"
	"strings"

	"github.com/curricle/contentkit/pkg/schema"
)

// stepStat accumulates everything attached to one declared step during the
// validation fold. pruned steps stay declared (answers still resolve against
// them) but are left out of the document.
type stepStat struct {
	row     NormalizedRow
	answers []NormalizedRow
	pruned  bool
}

// problemStat accumulates one declared problem and its steps in first-seen
// order.
type problemStat struct {
	row    NormalizedRow
	steps  []*stepStat
	pruned bool
}

// analysis is the validator's output: the ordered findings plus the grouped
// rows the hierarchy builder consumes. Rows excluded by a finding (orphans,
// duplicates, unclassifiable rows) simply never appear in the grouping.
type analysis struct {
	findings Findings
	problems []*problemStat
}

// keySep joins identifier tuple segments. A control character cannot appear
// in cell content, so joined keys cannot collide with each other.
const keySep = "\x1f"

func problemKey(r NormalizedRow) string {
	return strings.Join([]string{r.Course, r.Unit, r.Topic, r.ProblemID}, keySep)
}

// analyze folds the normalized rows left to right, maintaining the current
// problem/step context as explicit local state. It enforces the recoverable
// rules (orphans, duplicates, empty text, childless problems and steps) and
// records every violation without stopping: one run surfaces every issue the
// sheet has.
//
// Explicit parent references are authoritative. A step naming a problem other
// than the one currently open, or an answer naming a foreign step, is an
// orphan and is skipped rather than guessed into a wrong parent.
func analyze(rows []NormalizedRow) analysis {
	var a analysis

	problems := make(map[string]*problemStat)
	steps := make(map[string]*stepStat)

	var curProblem *problemStat
	var curStep *stepStat

	for _, r := range rows {
		switch r.Kind {
		case KindProblem:
			curStep = nil

			key := problemKey(r)
			if first, ok := problems[key]; ok {
				a.findings = append(a.findings, duplicateFinding(r, first.row, "problem", r.ProblemID, schema.ColProblemID))
				curProblem = first
				continue
			}

			ps := &problemStat{row: r}
			problems[key] = ps
			a.problems = append(a.problems, ps)
			curProblem = ps

			if r.Text == "" {
				ps.pruned = true
				a.findings = append(a.findings, Finding{
					Severity: SeverityError,
					RowIndex: r.RowIndex,
					Column:   schema.ColText,
					Code:     CodeEmptyText,
					Message:  fmt.Sprintf("problem %q has blank instructional text", r.ProblemID),
				})
			}

		case KindStep:
			if curProblem == nil {
				a.findings = append(a.findings, Finding{
					Severity: SeverityError,
					RowIndex: r.RowIndex,
					Column:   schema.ColStepID,
					Code:     CodeOrphanStep,
					Message:  fmt.Sprintf("step %q appears before any problem", r.StepID),
				})
				continue
			}
			if r.ProblemID != "" && r.ProblemID != curProblem.row.ProblemID {
				a.findings = append(a.findings, Finding{
					Severity: SeverityError,
					RowIndex: r.RowIndex,
					Column:   schema.ColProblemID,
					Code:     CodeOrphanStep,
					Message: fmt.Sprintf("step %q references problem %q but follows problem %q",
						r.StepID, r.ProblemID, curProblem.row.ProblemID),
				})
				continue
			}

			key := problemKey(curProblem.row) + keySep + r.StepID
			if first, ok := steps[key]; ok {
				a.findings = append(a.findings, duplicateFinding(r, first.row, "step", r.StepID, schema.ColStepID))
				curStep = first
				continue
			}

			ss := &stepStat{row: r}
			steps[key] = ss
			curProblem.steps = append(curProblem.steps, ss)
			curStep = ss

			if r.Text == "" {
				ss.pruned = true
				a.findings = append(a.findings, Finding{
					Severity: SeverityError,
					RowIndex: r.RowIndex,
					Column:   schema.ColText,
					Code:     CodeEmptyText,
					Message:  fmt.Sprintf("step %q has blank instructional text", r.StepID),
				})
			}

		case KindAnswer:
			if curStep == nil {
				a.findings = append(a.findings, Finding{
					Severity: SeverityError,
					RowIndex: r.RowIndex,
					Column:   schema.ColStepID,
					Code:     CodeOrphanAnswer,
					Message:  "answer row is not preceded by a step",
				})
				continue
			}
			if r.StepID != "" && r.StepID != curStep.row.StepID {
				a.findings = append(a.findings, Finding{
					Severity: SeverityError,
					RowIndex: r.RowIndex,
					Column:   schema.ColStepID,
					Code:     CodeOrphanAnswer,
					Message: fmt.Sprintf("answer references step %q but follows step %q",
						r.StepID, curStep.row.StepID),
				})
				continue
			}

			curStep.answers = append(curStep.answers, r)

		case KindUnclassifiable:
			// Already reported by the normalizer; excluded from grouping.
		}
	}

	// Childless checks run after the fold so that a problem re-opened by a
	// duplicate row still counts steps attached through either occurrence.
	for _, ps := range a.problems {
		if len(ps.steps) == 0 {
			ps.pruned = true
			a.findings = append(a.findings, Finding{
				Severity: SeverityError,
				RowIndex: ps.row.RowIndex,
				Column:   schema.ColProblemID,
				Code:     CodeProblemWithoutSteps,
				Message:  fmt.Sprintf("problem %q has no steps", ps.row.ProblemID),
			})
			continue
		}
		for _, ss := range ps.steps {
			if len(ss.answers) == 0 {
				ss.pruned = true
				a.findings = append(a.findings, Finding{
					Severity: SeverityError,
					RowIndex: ss.row.RowIndex,
					Column:   schema.ColStepID,
					Code:     CodeStepWithoutAnswer,
					Message:  fmt.Sprintf("step %q of problem %q has no answer", ss.row.StepID, ps.row.ProblemID),
				})
			}
		}
	}

	return a
}

// duplicateFinding reports a repeated identifier tuple. A byte-identical
// repeat is only a warning — re-exported sheets commonly duplicate rows — but
// a repeat with diverging content is an error because neither version can be
// trusted.
func duplicateFinding(dup, first NormalizedRow, kind, id, column string) Finding {
	if sameContent(dup, first) {
		return Finding{
			Severity: SeverityWarning,
			RowIndex: dup.RowIndex,
			Column:   column,
			Code:     CodeDuplicateID,
			Message:  fmt.Sprintf("%s %q repeats row %d with identical content", kind, id, first.RowIndex),
		}
	}
	return Finding{
		Severity: SeverityError,
		RowIndex: dup.RowIndex,
		Column:   column,
		Code:     CodeDuplicateID,
		Message:  fmt.Sprintf("%s %q repeats row %d with different content", kind, id, first.RowIndex),
	}
}

func sameContent(a, b NormalizedRow) bool {
	if a.Text != b.Text || a.AnswerRaw != b.AnswerRaw || a.Hints != b.Hints {
		return false
	}
	switch {
	case a.Difficulty == nil && b.Difficulty == nil:
		return true
	case a.Difficulty == nil || b.Difficulty == nil:
		return false
	default:
		return *a.Difficulty == *b.Difficulty
	}
}
