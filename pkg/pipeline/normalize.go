package pipeline

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/curricle/contentkit/pkg/schema"
	"github.com/curricle/contentkit/pkg/table"
)

// rowOffset converts a zero-based data-row index to the row number an editor
// sees in the spreadsheet UI (header row counts as row 1).
const rowOffset = 2

// thousandsSep matches a comma used as a digit-group separator, as in
// "12,345". Commas in coordinate pairs like "(3, 4)" do not match because the
// group after the comma is not exactly three digits followed by a boundary.
var thousandsSep = regexp.MustCompile(`(\d),(\d{3})\b`)

// normalizeRows projects every source row into a NormalizedRow, collecting
// findings for rows that cannot be classified and for cells that resist
// lenient coercion. Blank rows are dropped without comment; sheets routinely
// carry trailing empty lines. Row indexes always reflect the source position,
// so locators stay accurate regardless of skipped rows.
func normalizeRows(t *table.Table, sch schema.Schema) ([]NormalizedRow, Findings) {
	ragged := make(map[int]bool, len(t.RaggedRows()))
	for _, i := range t.RaggedRows() {
		ragged[i] = true
	}

	var rows []NormalizedRow
	var findings Findings

	for i := 0; i < t.Len(); i++ {
		src := t.Row(i)
		if src.IsEmpty() {
			continue
		}

		rowIndex := i + rowOffset
		if ragged[i] {
			findings = append(findings, Finding{
				Severity: SeverityWarning,
				RowIndex: rowIndex,
				Code:     CodeMalformedRow,
				Message:  "cell count does not match the header row",
			})
		}

		row := NormalizedRow{
			RowIndex:   rowIndex,
			ProblemID:  src.Get(schema.ColProblemID),
			StepID:     src.Get(schema.ColStepID),
			Text:       src.Get(schema.ColText),
			AnswerRaw:  src.Get(schema.ColAnswerValue),
			AnswerType: src.Get(schema.ColAnswerType),
			Course:     src.Get(schema.ColCourse),
			Unit:       src.Get(schema.ColUnit),
			Topic:      src.Get(schema.ColTopic),
			Hints:      src.Get(schema.ColHints),
		}

		switch {
		case row.AnswerRaw != "":
			row.Kind = KindAnswer
		case row.StepID != "":
			row.Kind = KindStep
		case row.ProblemID != "":
			row.Kind = KindProblem
		default:
			row.Kind = KindUnclassifiable
			findings = append(findings, Finding{
				Severity: SeverityError,
				RowIndex: rowIndex,
				Code:     CodeUnclassifiableRow,
				Message:  "row has no problem, step, or answer identifier",
			})
		}

		if row.Kind == KindAnswer {
			value, err := coerceAnswer(row.AnswerRaw, row.AnswerType)
			if err != nil {
				findings = append(findings, Finding{
					Severity: SeverityWarning,
					RowIndex: rowIndex,
					Column:   schema.ColAnswerValue,
					Code:     CodeCoercionFailed,
					Message:  err.Error(),
				})
			} else {
				row.AnswerValue = value
			}
		}

		if raw := src.Get(schema.ColDifficulty); raw != "" {
			if v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64); err == nil {
				row.Difficulty = &v
			} else {
				findings = append(findings, Finding{
					Severity: SeverityWarning,
					RowIndex: rowIndex,
					Column:   schema.ColDifficulty,
					Code:     CodeCoercionFailed,
					Message:  fmt.Sprintf("cannot interpret %q as a difficulty number", raw),
				})
			}
		}

		rows = append(rows, row)
	}

	return rows, findings
}

// coerceAnswer parses the answer cell according to its declared type.
// Parsing is deliberately lenient — editors type "Yes" for booleans and
// "1,200" for numbers — but a cell that still resists parsing is reported
// and left untyped rather than guessed.
func coerceAnswer(raw, answerType string) (any, error) {
	switch strings.ToLower(answerType) {
	case "numeric", "number", "float", "int", "integer":
		cleaned := raw
		for {
			next := thousandsSep.ReplaceAllString(cleaned, "$1$2")
			if next == cleaned {
				break
			}
			cleaned = next
		}
		v, err := strconv.ParseFloat(strings.TrimSpace(cleaned), 64)
		if err != nil {
			return nil, fmt.Errorf("cannot interpret %q as a numeric answer", raw)
		}
		return v, nil

	case "boolean", "bool":
		switch strings.ToLower(strings.TrimSpace(raw)) {
		case "true", "t", "yes", "y", "1":
			return true, nil
		case "false", "f", "no", "n", "0":
			return false, nil
		}
		return nil, fmt.Errorf("cannot interpret %q as a boolean answer", raw)

	default:
		// Untyped and free-text answers keep the cell as written.
		return raw, nil
	}
}
