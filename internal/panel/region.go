package panel

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/ironsheep/buoy-capture/internal/imaging"
	"github.com/ironsheep/buoy-capture/internal/ocr"
	"github.com/ironsheep/buoy-capture/internal/reading"
)

// ErrUnknownField is returned when a field is not part of a layout.
var ErrUnknownField = errors.New("field not in layout")

// ContentType says what a region holds.
type ContentType int

const (
	// NumericContent is a signed decimal number.
	NumericContent ContentType = iota
	// TimestampContent is a time of day with weekday and date, no year.
	TimestampContent
)

// String returns "numeric" or "timestamp".
func (c ContentType) String() string {
	if c == TimestampContent {
		return "timestamp"
	}
	return "numeric"
}

// Charset returns the OCR whitelist for the content type.
func (c ContentType) Charset() ocr.Charset {
	if c == TimestampContent {
		return ocr.DateCharset
	}
	return ocr.NumericCharset
}

// Range is an inclusive plausible interval for a numeric region.
type Range struct {
	Min float64 `json:"min"`
	Max float64 `json:"max" validate:"gtefield=Min"`
}

// Contains reports whether Min <= v <= Max.
func (r Range) Contains(v float64) bool {
	return v >= r.Min && v <= r.Max
}

// String formats r as "[min, max]".
func (r Range) String() string {
	return fmt.Sprintf("[%g, %g]", r.Min, r.Max)
}

// RegionDef is the static description of one value on a panel.
type RegionDef struct {
	Bounds imaging.Region `json:"bounds"`
	Type   ContentType    `json:"type" validate:"oneof=0 1"`
	Range  *Range         `json:"range,omitempty"`
}

// Layout maps every field a panel prints to its region.
type Layout map[reading.Field]RegionDef

// Fields returns the layout's fields in declaration order.
func (l Layout) Fields() []reading.Field {
	fields := make([]reading.Field, 0, len(l))
	for f := range l {
		fields = append(fields, f)
	}
	sort.Slice(fields, func(i, j int) bool { return fields[i] < fields[j] })
	return fields
}

// Columns returns the column labels of the layout's fields in declaration
// order, index column first.
func (l Layout) Columns() []string {
	fields := l.Fields()
	cols := make([]string, len(fields))
	for i, f := range fields {
		cols[i] = f.String()
	}
	return cols
}

// Clone returns an independent copy of l.
func (l Layout) Clone() Layout {
	out := make(Layout, len(l))
	for f, def := range l {
		if def.Range != nil {
			r := *def.Range
			def.Range = &r
		}
		out[f] = def
	}
	return out
}

var validate = validator.New()

// Validate checks that l has an index timestamp, only declared fields, well
// formed rectangles and ranges, and no range on a timestamp region.
func (l Layout) Validate() error {
	if _, ok := l[reading.TimeStamp]; !ok {
		return fmt.Errorf("layout has no %s region", reading.TimeStamp)
	}
	for _, f := range l.Fields() {
		def := l[f]
		if !f.Valid() {
			return fmt.Errorf("layout contains undeclared field %d", int(f))
		}
		if err := validate.Struct(def); err != nil {
			return fmt.Errorf("invalid region for %s: %w", f, err)
		}
		if def.Type == TimestampContent && def.Range != nil {
			return fmt.Errorf("invalid region for %s: timestamp regions take no range", f)
		}
	}
	return nil
}

// contentTypeFor infers the content type from the column label: anything
// with "Time" in its name is a timestamp.
func contentTypeFor(f reading.Field) ContentType {
	if strings.Contains(f.String(), "Time") {
		return TimestampContent
	}
	return NumericContent
}

type entry struct {
	field reading.Field
	def   RegionDef
}

func at(f reading.Field, left, top, right, bottom int, rng *Range) entry {
	return entry{f, RegionDef{
		Bounds: imaging.Rect(left, top, right, bottom),
		Type:   contentTypeFor(f),
		Range:  rng,
	}}
}

func within(min, max float64) *Range {
	return &Range{Min: min, Max: max}
}

func build(entries ...entry) Layout {
	l := make(Layout, len(entries))
	for _, e := range entries {
		l[e.field] = e.def
	}
	return l
}

// WindLayout returns the regions of the wind and weather sensor panel.
func WindLayout() Layout {
	return build(
		at(reading.TimeStamp, 100, 62, 294, 78, nil),
		at(reading.WindSpeedAvgKts, 21, 307, 63, 327, within(0, 60)),
		at(reading.WindSpeedGstKts, 116, 307, 158, 327, within(0, 60)),
		at(reading.WindSpeedAvgMph, 21, 334, 63, 351, within(0, 70)),
		at(reading.WindSpeedGstMph, 116, 332, 158, 351, within(0, 70)),
		at(reading.WindSpeedAvgMps, 21, 358, 63, 375, within(0, 31)),
		at(reading.WindSpeedGstMps, 116, 358, 158, 375, within(0, 31)),
		at(reading.WindDir, 230, 320, 287, 339, within(0, 360)),
		at(reading.AirTempF, 410, 169, 471, 188, within(-20, 110)),
		at(reading.AirTempC, 409, 221, 471, 238, within(-30, 40)),
		at(reading.BaromPresMmHg, 391, 415, 449, 434, within(25, 32.5)),
		at(reading.BaromPresMB, 467, 415, 537, 434, within(850, 1100)),
		at(reading.DewPointF, 505, 322, 552, 341, within(-20, 110)),
		at(reading.DewPointC, 563, 322, 605, 341, within(-30, 40)),
		at(reading.RelHum, 391, 323, 448, 341, within(0, 100)),
		at(reading.WindSpeedM24, 112, 412, 150, 435, within(0, 60)),
		at(reading.WindDirM24, 271, 412, 300, 433, within(0, 360)),
		at(reading.WindTimeM24, 114, 433, 299, 454, nil),
	)
}

// WaveLayout returns the regions of the wave sensor panel.
func WaveLayout() Layout {
	return build(
		at(reading.TimeStamp, 100, 62, 294, 78, nil),
		at(reading.WaveHgtSigFt, 68, 329, 112, 346, within(0, 12)),
		at(reading.WaveHgtMaxFt, 168, 329, 212, 346, within(0, 12)),
		at(reading.WaveHgtSigM, 68, 353, 112, 371, within(0, 3.7)),
		at(reading.WaveHgtMaxM, 168, 353, 212, 371, within(0, 3.7)),
		at(reading.WaveDir, 292, 320, 347, 340, within(0, 360)),
		at(reading.WavPerAvg, 479, 193, 539, 211, nil),
		at(reading.WavPerDom, 479, 251, 539, 269, nil),
		at(reading.WaveHgt24, 169, 413, 207, 433, within(0, 12)),
		at(reading.WaveDirM24, 327, 412, 354, 433, within(0, 360)),
		at(reading.WavePerAvgM24, 440, 412, 468, 430, nil),
		at(reading.WavePerDomM24, 540, 412, 570, 430, nil),
		at(reading.WaveTimeM24, 169, 433, 363, 455, nil),
	)
}
