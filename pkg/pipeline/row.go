package pipeline

// RowKind is the inferred role of a source row, decided by which identifying
// columns are populated. The most specific populated column wins: a row with
// an answer value is an answer even when it also names a step (the step id is
// then its parent reference), and a step id implies a step over a problem.
type RowKind string

const (
	KindProblem        RowKind = "problem"
	KindStep           RowKind = "step"
	KindAnswer         RowKind = "answer"
	KindUnclassifiable RowKind = "unclassifiable"
)

// NormalizedRow is the typed projection of one source row. String fields are
// trimmed; fields absent from the source stay zero, never defaulted. The
// struct is a value and is discarded after the document is built.
type NormalizedRow struct {
	// RowIndex is the spreadsheet row number the editor sees (1-based,
	// counting the header row).
	RowIndex int

	Kind RowKind

	ProblemID string
	StepID    string
	Text      string

	// AnswerRaw is the cell as written; AnswerValue is its typed reading
	// (string, float64, or bool per AnswerType), nil when empty or when
	// coercion failed.
	AnswerRaw   string
	AnswerValue any
	AnswerType  string

	Course string
	Unit   string
	Topic  string

	Hints      string
	Difficulty *float64
}
