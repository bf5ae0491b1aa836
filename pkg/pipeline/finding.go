package pipeline

import "sort"

// Severity classifies how a finding affects the run outcome. Errors make the
// run fail; warnings never do.
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
)

// Code identifies the rule a finding was produced by. Codes are part of the
// machine-readable contract; CI tooling matches on them.
type Code string

const (
	// CodeMissingRequiredHeader is fatal: the sheet lacks a header without
	// which rows cannot be classified. Nothing downstream runs.
	CodeMissingRequiredHeader Code = "missing-required-header"

	// CodeMalformedRow flags records whose cell count deviates from the
	// header row. The record is padded or truncated and still processed.
	CodeMalformedRow Code = "malformed-row"

	// CodeUnclassifiableRow flags rows carrying content but no problem,
	// step, or answer identifier. The row is excluded from the document.
	CodeUnclassifiableRow Code = "unclassifiable-row"

	// CodeCoercionFailed flags a typed field whose cell could not be
	// parsed. The field is left null; the row survives.
	CodeCoercionFailed Code = "coercion-failed"

	CodeProblemWithoutSteps Code = "problem-without-steps"
	CodeStepWithoutAnswer   Code = "step-without-answer"
	CodeOrphanStep          Code = "orphan-step"
	CodeOrphanAnswer        Code = "orphan-answer"
	CodeDuplicateID         Code = "duplicate-id"
	CodeEmptyText           Code = "empty-text"
)

// Finding is one reported structural defect or warning. Findings are
// immutable once created; the pipeline only ever appends to the list.
//
// RowIndex is the row number as the editor sees it in the spreadsheet UI
// (1-based, counting the header row). RowIndex 0 marks table-level findings
// such as a missing header.
type Finding struct {
	Severity Severity `json:"severity"`
	RowIndex int      `json:"rowIndex,omitempty"`
	Column   string   `json:"column,omitempty"`
	Code     Code     `json:"code"`
	Message  string   `json:"message"`
}

// Findings is the ordered list of everything a run surfaced.
type Findings []Finding

// ErrorCount returns the number of error-severity findings.
func (fs Findings) ErrorCount() int {
	n := 0
	for _, f := range fs {
		if f.Severity == SeverityError {
			n++
		}
	}
	return n
}

// WarningCount returns the number of warning-severity findings.
func (fs Findings) WarningCount() int {
	n := 0
	for _, f := range fs {
		if f.Severity == SeverityWarning {
			n++
		}
	}
	return n
}

// HasCode reports whether any finding carries the given code.
func (fs Findings) HasCode(code Code) bool {
	for _, f := range fs {
		if f.Code == code {
			return true
		}
	}
	return false
}

// BySeverity returns the findings of the given severity, preserving order.
func (fs Findings) BySeverity(sev Severity) Findings {
	var out Findings
	for _, f := range fs {
		if f.Severity == sev {
			out = append(out, f)
		}
	}
	return out
}

// sortByRow orders findings by row locator, keeping the emission order of
// findings on the same row. Table-level findings (RowIndex 0) sort first.
func (fs Findings) sortByRow() {
	sort.SliceStable(fs, func(i, j int) bool {
		return fs[i].RowIndex < fs[j].RowIndex
	})
}
