package reading

import (
	"math"
	"testing"
	"time"
)

func TestNumberValue(t *testing.T) {
	v := NumberValue(35.1)
	if v.Kind() != Number {
		t.Fatalf("Kind: got %s, want number", v.Kind())
	}
	if v.Float() != 35.1 {
		t.Errorf("Float: got %v, want 35.1", v.Float())
	}
	if _, ok := v.Time(); ok {
		t.Error("Time should not be available on a number")
	}
}

func TestNumberValue_NaNIsAbsent(t *testing.T) {
	v := NumberValue(math.NaN())
	if !v.IsAbsent() {
		t.Fatalf("NaN should be absent, got %s", v.Kind())
	}
	if !math.IsNaN(v.Float()) {
		t.Errorf("Float of absent value should be NaN, got %v", v.Float())
	}
}

func TestTimeValue(t *testing.T) {
	ts := time.Date(2026, 2, 16, 10, 54, 0, 0, time.UTC)
	v := TimeValue(ts)
	got, ok := v.Time()
	if !ok || !got.Equal(ts) {
		t.Fatalf("Time: got %v (%v), want %v", got, ok, ts)
	}
	if !math.IsNaN(v.Float()) {
		t.Error("Float of a timestamp should be NaN")
	}
	if !TimeValue(time.Time{}).IsAbsent() {
		t.Error("zero time should be absent")
	}
}

func TestMissing(t *testing.T) {
	v := Missing(OutOfRange)
	if !v.IsAbsent() {
		t.Error("Missing should be absent")
	}
	if v.Outcome() != OutOfRange {
		t.Errorf("Outcome: got %s, want out_of_range", v.Outcome())
	}
}

func TestValueEqual(t *testing.T) {
	est := time.FixedZone("EST", -5*3600)
	ts := time.Date(2026, 2, 16, 10, 54, 0, 0, est)

	tests := []struct {
		name string
		a, b Value
		want bool
	}{
		{"same number", NumberValue(1.5), NumberValue(1.5), true},
		{"different number", NumberValue(1.5), NumberValue(1.6), false},
		{"outcome ignored", NumberValue(3.5).WithOutcome(Corrected), NumberValue(3.5), true},
		{"same instant other zone", TimeValue(ts), TimeValue(ts.UTC()), true},
		{"absent vs absent", Missing(Unparseable), Value{}, true},
		{"absent vs number", Value{}, NumberValue(0), false},
		{"number vs time", NumberValue(0), TimeValue(ts), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.a.Equal(tt.b); got != tt.want {
				t.Errorf("Equal: got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestRecordEqual_IgnoresDroppedEmptyColumns(t *testing.T) {
	ts := time.Date(2026, 2, 16, 10, 54, 0, 0, time.UTC)
	a := Record{Time: ts, Values: map[string]Value{
		"WindDir [°]": NumberValue(270),
		"RelHum [%]":  Missing(Unparseable),
	}}
	b := Record{Time: ts, Values: map[string]Value{
		"WindDir [°]": NumberValue(270),
	}}
	if !a.Equal(b) || !b.Equal(a) {
		t.Error("records differing only by an absent column should be equal")
	}

	b.Values["AirTemp [°F]"] = NumberValue(41)
	if a.Equal(b) {
		t.Error("records with an extra present column should differ")
	}
}

func TestFieldNames(t *testing.T) {
	seen := make(map[string]Field)
	for f := Field(0); f < fieldCount; f++ {
		name := f.String()
		if name == "" {
			t.Errorf("field %d has no name", int(f))
		}
		if prev, dup := seen[name]; dup {
			t.Errorf("fields %d and %d share the name %q", int(prev), int(f), name)
		}
		seen[name] = f

		parsed, ok := ParseField(name)
		if !ok || parsed != f {
			t.Errorf("ParseField(%q): got %d (%v), want %d", name, int(parsed), ok, int(f))
		}
	}

	if TimeStamp.String() != IndexColumn {
		t.Errorf("TimeStamp label: got %q, want %q", TimeStamp.String(), IndexColumn)
	}
	if Field(-1).Valid() || fieldCount.Valid() {
		t.Error("out-of-range fields should not be valid")
	}
	if _, ok := ParseField("Bogus"); ok {
		t.Error("ParseField should reject unknown labels")
	}
}
