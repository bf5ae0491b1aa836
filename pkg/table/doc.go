// Package table models the raw tabular input of the content pipeline: an
// ordered header row plus ordered data rows, as produced by a spreadsheet
// CSV export.
//
// A Table is an immutable snapshot. Cells are looked up by header name and
// returned trimmed; unknown headers read as empty strings so callers stay
// forward-compatible with sheets that grow extra columns. Ragged records
// (cell count differing from the header row) are padded or truncated and
// their indexes retained for reporting instead of failing the read, because
// real exports produce them constantly.
//
// Usage:
//
//	t, err := table.ReadCSV(resp.Body)
//	if err != nil {
//		return err
//	}
//	for i := 0; i < t.Len(); i++ {
//		row := t.Row(i)
//		_ = row.Get("problem id")
//	}
package table
