// Package ringstore keeps a time-bounded table of panel readings in a CSV
// file.
//
// A Store is opened on a path with the column labels its dataset declares.
// Every AddRecord appends one row in call order, drops rows older than the
// retention window (72 hours by default) measured from the store's clock,
// and rewrites the whole file. Columns that hold no value in any retained
// row are left out of the file, so readers must treat a missing column as
// "no data".
//
// The file is written to a temporary name and renamed into place. A killed
// process leaves the previous contents intact. There is no locking: two
// overlapping writers for the same path lose one of the appends.
//
// The CSV layout matches what pandas writes for a timezone-aware index:
//
//	TimeStamp,WindSpeedAvg [kts],WindDir [°]
//	2026-02-16 10:54:00-05:00,12.5,270
//
// Timestamps without an offset are read as wall-clock time in the store's
// location.
package ringstore
