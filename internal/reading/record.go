package reading

import (
	"sort"
	"time"
)

// Record is one timestamp-keyed row: the panel's own reading time plus the
// remaining named values of a capture. Values are keyed by column label.
type Record struct {
	Time   time.Time
	Values map[string]Value
}

// Get returns the value stored under column, or an absent value.
func (r Record) Get(column string) Value {
	return r.Values[column]
}

// Columns returns the record's column labels in sorted order.
func (r Record) Columns() []string {
	cols := make([]string, 0, len(r.Values))
	for c := range r.Values {
		cols = append(cols, c)
	}
	sort.Strings(cols)
	return cols
}

// Equal reports whether two records hold the same instant and values. A
// column that is absent in one record and missing from the other counts as
// equal, matching how empty columns are dropped from persisted stores.
func (r Record) Equal(o Record) bool {
	if !r.Time.Equal(o.Time) {
		return false
	}
	for c, v := range r.Values {
		if !v.Equal(o.Values[c]) {
			return false
		}
	}
	for c, v := range o.Values {
		if _, ok := r.Values[c]; !ok && !v.IsAbsent() {
			return false
		}
	}
	return true
}
