// Package pipeline turns a loosely structured content sheet into a validated
// hierarchical document (course → unit → topic → problem → step → answer) and
// reports every structural defect with a row/column locator.
//
// The pipeline is one deterministic pass over an immutable table:
//
//	result := pipeline.Run(t, schema.Default())
//	fmt.Print(result.Summary())          // human report
//	json.Marshal(result)                 // machine report
//
// Rows are first normalized into typed rows, classified as problem, step, or
// answer by which identifying columns are populated. The validator then folds
// the row sequence once, enforcing structural rules (orphans, duplicates,
// blank text, problems without steps, steps without answers) and collecting
// every violation — an editor should see all defects after one run, not one
// per run. Finally the builder assembles the document, pruning only the
// subtrees a finding condemned.
//
// Node identifiers are slug paths of the node's ancestry, so unchanged
// content keeps byte-identical ids across runs and downstream consumers can
// diff generated documents.
//
// Missing required headers are the single fatal case: the run reports them
// and returns a nil tree, because nothing about the rows can be trusted
// without the schema. Warnings (lenient coercions, repeated identical rows)
// never affect the outcome.
package pipeline
