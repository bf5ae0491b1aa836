// Package sheets downloads publicly viewable Google Sheets through their CSV
// export endpoints and decodes them into tables for the content pipeline.
//
// This is orchestration glue, deliberately outside the pipeline core: the
// pipeline itself never performs I/O. Only public sheets are supported —
// there is no credential handling here; authenticated access is a separate
// concern of the deployment environment.
package sheets
