// Package schema declares the column contract of the content sheet: which
// headers are required for a run to proceed at all, which are understood but
// optional, and how sources with differently named columns are remapped to
// the canonical names.
//
// The required set (problem id, step id, answer value, text) is deliberately
// minimal — it is the set without which rows cannot be classified or errors
// located. Grouping columns (course, unit, topic) and answer metadata degrade
// to null fields when absent instead of blocking the run.
package schema
