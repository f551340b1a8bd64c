// Package calendar loads the daily-content table that drives frame
// rendering and narration synthesis.
//
// The table is a UTF-8 CSV with a header row; files exported from
// spreadsheet tools often carry a byte-order mark, which the loader strips.
// Records are header-keyed so callers can address both the well-known
// calendar columns and ad hoc columns chosen on the command line.
package calendar
