package pipeline_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/curricle/contentkit/pkg/pipeline"
	"github.com/curricle/contentkit/pkg/schema"
	"github.com/curricle/contentkit/pkg/table"
)

var testHeaders = []string{
	schema.ColCourse, schema.ColUnit, schema.ColTopic,
	schema.ColProblemID, schema.ColStepID, schema.ColText,
	schema.ColAnswerValue, schema.ColAnswerType,
	schema.ColHints, schema.ColDifficulty,
}

func newTable(records ...[]string) *table.Table {
	return table.New(testHeaders, records)
}

func problemRow(course, unit, topic, pid, text string) []string {
	return []string{course, unit, topic, pid, "", text, "", "", "", ""}
}

func stepRow(pid, sid, text string) []string {
	return []string{"", "", "", pid, sid, text, "", "", "", ""}
}

func answerRow(sid, value, answerType string) []string {
	return []string{"", "", "", "", sid, "", value, answerType, "", ""}
}

// findNode walks the tree depth-first for the first node of the given kind
// and name.
func findNode(n *pipeline.Node, kind pipeline.NodeKind, name string) *pipeline.Node {
	if n == nil {
		return nil
	}
	if n.Kind == kind && n.Name == name {
		return n
	}
	for _, c := range n.Children {
		if found := findNode(c, kind, name); found != nil {
			return found
		}
	}
	return nil
}

func TestRun_MissingRequiredHeader(t *testing.T) {
	// Scenario A: the sheet lacks the "answer value" column.
	headers := []string{
		schema.ColCourse, schema.ColUnit, schema.ColTopic,
		schema.ColProblemID, schema.ColStepID, schema.ColText,
	}
	src := table.New(headers, [][]string{
		[]string{"Algebra", "U1", "T1", "P1", "", "Solve for x"},
	})

	result := pipeline.Run(src, schema.Default())

	assert.False(t, result.OK, "missing header must fail the run")
	require.Len(t, result.Findings, 1, "exactly one finding for one missing header")
	assert.Equal(t, pipeline.CodeMissingRequiredHeader, result.Findings[0].Code)
	assert.Equal(t, schema.ColAnswerValue, result.Findings[0].Column)
	assert.Equal(t, pipeline.SeverityError, result.Findings[0].Severity)
	assert.Nil(t, result.Tree, "no tree can be built without the schema")
}

func TestRun_StepWithoutAnswer(t *testing.T) {
	// Scenario B: S1 has an answer, S2 has none.
	src := newTable(
		problemRow("Algebra", "U1", "T1", "P1", "Linear equations"),
		stepRow("P1", "S1", "Isolate x"),
		answerRow("S1", "42", "numeric"),
		stepRow("P1", "S2", "Check your work"),
	)

	result := pipeline.Run(src, schema.Default())

	assert.False(t, result.OK)
	require.Len(t, result.Findings, 1)
	assert.Equal(t, pipeline.CodeStepWithoutAnswer, result.Findings[0].Code)
	assert.Equal(t, 5, result.Findings[0].RowIndex, "locator must point at S2's spreadsheet row")

	problem := findNode(result.Tree, pipeline.NodeProblem, "P1")
	require.NotNil(t, problem, "P1 must survive with its valid subtree")
	require.Len(t, problem.Children, 1, "only S1 remains")
	step := problem.Children[0]
	assert.Equal(t, "S1", step.Name)
	require.Len(t, step.Children, 1, "S1 keeps its answer")
	assert.Equal(t, float64(42), step.Children[0].AnswerValue)
}

func TestRun_WellFormedSheet(t *testing.T) {
	// Scenario C: two problems, each with one step and one answer.
	src := newTable(
		problemRow("Algebra", "U1", "T1", "P1", "Linear equations"),
		stepRow("P1", "S1", "Isolate x"),
		answerRow("S1", "42", "numeric"),
		problemRow("Algebra", "U1", "T1", "P2", "Quadratic equations"),
		stepRow("P2", "S1", "Factor"),
		answerRow("S1", "7", "numeric"),
	)

	first := pipeline.Run(src, schema.Default())
	second := pipeline.Run(src, schema.Default())

	assert.True(t, first.OK)
	assert.Empty(t, first.Findings)
	assert.Equal(t, 2, first.Stats.Problems)
	assert.Equal(t, 2, first.Stats.Steps)
	assert.Equal(t, 2, first.Stats.Answers)

	p1 := findNode(first.Tree, pipeline.NodeProblem, "P1")
	p2 := findNode(first.Tree, pipeline.NodeProblem, "P2")
	require.NotNil(t, p1)
	require.NotNil(t, p2)
	assert.Equal(t, "algebra/u1/t1/p1", p1.ID)
	assert.Equal(t, "algebra/u1/t1/p2", p2.ID)
	require.Len(t, p1.Children, 1)
	require.Len(t, p1.Children[0].Children, 1, "each step carries exactly one answer")

	firstJSON, err := json.Marshal(first)
	require.NoError(t, err)
	secondJSON, err := json.Marshal(second)
	require.NoError(t, err)
	assert.Equal(t, firstJSON, secondJSON, "two runs over the same input must be byte-identical")
}

func TestRun_IdsIgnoreUnrelatedRowOrder(t *testing.T) {
	p1 := [][]string{
		problemRow("Algebra", "U1", "T1", "P1", "Linear equations"),
		stepRow("P1", "S1", "Isolate x"),
		answerRow("S1", "42", "numeric"),
	}
	p2 := [][]string{
		problemRow("Algebra", "U1", "T1", "P2", "Quadratic equations"),
		stepRow("P2", "S1", "Factor"),
		answerRow("S1", "7", "numeric"),
	}

	forward := pipeline.Run(newTable(append(append([][]string{}, p1...), p2...)...), schema.Default())
	reversed := pipeline.Run(newTable(append(append([][]string{}, p2...), p1...)...), schema.Default())

	for _, name := range []string{"P1", "P2"} {
		a := findNode(forward.Tree, pipeline.NodeProblem, name)
		b := findNode(reversed.Tree, pipeline.NodeProblem, name)
		require.NotNil(t, a)
		require.NotNil(t, b)
		assert.Equal(t, a.ID, b.ID, "id of %s must not depend on unrelated row order", name)
		require.Len(t, a.Children, 1)
		require.Len(t, b.Children, 1)
		assert.Equal(t, a.Children[0].ID, b.Children[0].ID)
	}
}

func TestRun_SiblingOrderFollowsSource(t *testing.T) {
	src := newTable(
		problemRow("Algebra", "U1", "T1", "P2", "Second in name, first in sheet"),
		stepRow("P2", "S1", "Step"),
		answerRow("S1", "1", "numeric"),
		problemRow("Algebra", "U1", "T1", "P1", "First in name, second in sheet"),
		stepRow("P1", "S1", "Step"),
		answerRow("S1", "2", "numeric"),
	)

	result := pipeline.Run(src, schema.Default())

	topic := findNode(result.Tree, pipeline.NodeTopic, "T1")
	require.NotNil(t, topic)
	require.Len(t, topic.Children, 2)
	assert.Equal(t, "P2", topic.Children[0].Name, "sheet order wins, not name order")
	assert.Equal(t, "P1", topic.Children[1].Name)
}

func TestRun_PruningKeepsSiblings(t *testing.T) {
	src := newTable(
		problemRow("Algebra", "U1", "T1", "P1", "Problem one"),
		stepRow("P1", "S1", "Good step"),
		answerRow("S1", "1", "numeric"),
		stepRow("P9", "S2", "References a problem that is not open"),
		problemRow("Algebra", "U1", "T1", "P2", "Problem two"),
		stepRow("P2", "S1", "Also good"),
		answerRow("S1", "2", "numeric"),
	)

	result := pipeline.Run(src, schema.Default())

	assert.False(t, result.OK)
	require.Len(t, result.Findings, 1)
	assert.Equal(t, pipeline.CodeOrphanStep, result.Findings[0].Code)

	p1 := findNode(result.Tree, pipeline.NodeProblem, "P1")
	require.NotNil(t, p1, "P1 survives minus the orphaned step")
	require.Len(t, p1.Children, 1)
	assert.Equal(t, "S1", p1.Children[0].Name)

	assert.NotNil(t, findNode(result.Tree, pipeline.NodeProblem, "P2"),
		"sibling problems are untouched by the pruning")
	assert.Nil(t, findNode(result.Tree, pipeline.NodeStep, "S2"))
}

func TestRun_AllViolationsSurfaceInOneRun(t *testing.T) {
	src := newTable(
		answerRow("S0", "1", "numeric"), // answer before any step
		problemRow("Algebra", "U1", "T1", "P1", ""), // blank text
		problemRow("Algebra", "U1", "T1", "P2", "No steps follow me"),
		problemRow("Algebra", "U1", "T1", "P3", "Fine so far"),
		stepRow("P3", "S1", "Step without answer"),
		[]string{"", "", "", "", "", "", "", "", "left a note here", ""}, // no identifiers
		problemRow("Algebra", "U1", "T1", "P3", "Different text, same id"),
	)

	result := pipeline.Run(src, schema.Default())

	assert.False(t, result.OK)
	for _, code := range []pipeline.Code{
		pipeline.CodeOrphanAnswer,
		pipeline.CodeEmptyText,
		pipeline.CodeProblemWithoutSteps,
		pipeline.CodeStepWithoutAnswer,
		pipeline.CodeUnclassifiableRow,
		pipeline.CodeDuplicateID,
	} {
		assert.True(t, result.Findings.HasCode(code), "run must surface %s", code)
	}
}

func TestRun_NilTable(t *testing.T) {
	result := pipeline.Run(nil, schema.Default())

	assert.False(t, result.OK, "a nil table has no headers and fails the schema check")
	assert.True(t, result.Findings.HasCode(pipeline.CodeMissingRequiredHeader))
	assert.Nil(t, result.Tree)
}

func TestRun_FindingsOrderedByRow(t *testing.T) {
	src := newTable(
		problemRow("Algebra", "U1", "T1", "P1", ""), // row 2: empty-text
		problemRow("Algebra", "U1", "T1", "P2", "Ok"),
		stepRow("P2", "S1", "No answer"), // row 4: step-without-answer
		answerRow("S9", "1", "numeric"),  // row 5: orphan-answer (wrong step)
	)

	result := pipeline.Run(src, schema.Default())

	require.GreaterOrEqual(t, len(result.Findings), 3)
	for i := 1; i < len(result.Findings); i++ {
		assert.LessOrEqual(t, result.Findings[i-1].RowIndex, result.Findings[i].RowIndex,
			"findings must be ordered by row locator")
	}
}
