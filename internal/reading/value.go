package reading

import (
	"math"
	"strconv"
	"time"
)

// Kind is the variant held by a Value.
type Kind uint8

const (
	// Absent is the not-a-number marker: no usable value.
	Absent Kind = iota
	// Number is a floating-point reading.
	Number
	// Timestamp is a timezone-aware point in time.
	Timestamp
)

// String returns a lower-case name for the kind.
func (k Kind) String() string {
	switch k {
	case Number:
		return "number"
	case Timestamp:
		return "timestamp"
	default:
		return "absent"
	}
}

// Outcome records how a Value was obtained from recognized text.
type Outcome uint8

const (
	// OK means the text decoded cleanly (and was in range, if a range applies).
	OK Outcome = iota
	// Corrected means the raw number was out of range and a single ÷10
	// brought it back inside.
	Corrected
	// OutOfRange means neither the raw number nor its ÷10 fit the range.
	OutOfRange
	// Unparseable means the recognized text could not be decoded at all.
	Unparseable
	// Fallback means a timestamp could not be decoded and the wall clock
	// was substituted.
	Fallback
)

// String returns a lower-case name for the outcome.
func (o Outcome) String() string {
	switch o {
	case OK:
		return "ok"
	case Corrected:
		return "corrected"
	case OutOfRange:
		return "out_of_range"
	case Unparseable:
		return "unparseable"
	case Fallback:
		return "fallback"
	default:
		return "unknown"
	}
}

// Value is a tagged union of number, timestamp, or absent.
// The zero Value is absent.
type Value struct {
	kind    Kind
	num     float64
	ts      time.Time
	outcome Outcome
}

// NumberValue wraps a number. NaN becomes an absent value.
func NumberValue(v float64) Value {
	if math.IsNaN(v) {
		return Value{}
	}
	return Value{kind: Number, num: v}
}

// TimeValue wraps a timestamp. A zero time becomes an absent value.
func TimeValue(t time.Time) Value {
	if t.IsZero() {
		return Value{}
	}
	return Value{kind: Timestamp, ts: t}
}

// Missing returns an absent value tagged with the outcome that produced it.
func Missing(o Outcome) Value {
	return Value{outcome: o}
}

// WithOutcome returns a copy of v tagged with o.
func (v Value) WithOutcome(o Outcome) Value {
	v.outcome = o
	return v
}

// Kind returns the variant held by v.
func (v Value) Kind() Kind { return v.kind }

// Outcome returns the decode outcome v was tagged with.
func (v Value) Outcome() Outcome { return v.outcome }

// IsAbsent reports whether v holds no usable value.
func (v Value) IsAbsent() bool { return v.kind == Absent }

// Float returns the number held by v, or NaN for any other kind.
func (v Value) Float() float64 {
	if v.kind != Number {
		return math.NaN()
	}
	return v.num
}

// Time returns the timestamp held by v.
func (v Value) Time() (time.Time, bool) {
	if v.kind != Timestamp {
		return time.Time{}, false
	}
	return v.ts, true
}

// Equal compares the held data of two values. Outcomes are ignored and
// timestamps compare by instant.
func (v Value) Equal(o Value) bool {
	if v.kind != o.kind {
		return false
	}
	switch v.kind {
	case Number:
		return v.num == o.num
	case Timestamp:
		return v.ts.Equal(o.ts)
	default:
		return true
	}
}

// String formats v for logs.
func (v Value) String() string {
	switch v.kind {
	case Number:
		return strconv.FormatFloat(v.num, 'f', -1, 64)
	case Timestamp:
		return v.ts.Format(time.RFC3339)
	default:
		return "NaN"
	}
}
