package schema

// Canonical column names of the content sheet. Header matching is
// case-sensitive; sources whose columns are named differently are remapped
// with a Mapping before the pipeline runs.
const (
	ColProblemID   = "problem id"
	ColStepID      = "step id"
	ColAnswerValue = "answer value"
	ColAnswerType  = "answer type"
	ColText        = "text"
	ColTopic       = "topic"
	ColUnit        = "unit"
	ColCourse      = "course"
	ColHints       = "hints"
	ColDifficulty  = "difficulty"
)

// Schema declares which columns a content sheet must and may carry.
type Schema struct {
	required []string
	known    []string
}

// Default returns the content-sheet schema. The required set is the minimum
// without which no row can be classified or located; the remaining known
// columns degrade to null fields when absent.
func Default() Schema {
	return Schema{
		required: []string{ColProblemID, ColStepID, ColAnswerValue, ColText},
		known: []string{
			ColProblemID, ColStepID, ColAnswerValue, ColAnswerType, ColText,
			ColTopic, ColUnit, ColCourse, ColHints, ColDifficulty,
		},
	}
}

// Required returns the headers without which the pipeline cannot run.
func (s Schema) Required() []string {
	out := make([]string, len(s.required))
	copy(out, s.required)
	return out
}

// Known returns every header the schema understands, required and optional.
func (s Schema) Known() []string {
	out := make([]string, len(s.known))
	copy(out, s.known)
	return out
}

// IsKnown reports whether the named column is part of the schema.
func (s Schema) IsKnown(name string) bool {
	for _, k := range s.known {
		if k == name {
			return true
		}
	}
	return false
}

// Missing returns the required headers absent from the given header row, in
// schema order. An empty result means the source is structurally usable.
func (s Schema) Missing(headers []string) []string {
	present := make(map[string]bool, len(headers))
	for _, h := range headers {
		present[h] = true
	}

	var missing []string
	for _, req := range s.required {
		if !present[req] {
			missing = append(missing, req)
		}
	}
	return missing
}
