package panel

import (
	"strings"
	"testing"

	"github.com/ironsheep/buoy-capture/internal/imaging"
	"github.com/ironsheep/buoy-capture/internal/ocr"
	"github.com/ironsheep/buoy-capture/internal/reading"
)

func TestLayouts_Validate(t *testing.T) {
	for name, l := range map[string]Layout{"wind": WindLayout(), "wave": WaveLayout()} {
		t.Run(name, func(t *testing.T) {
			if err := l.Validate(); err != nil {
				t.Fatalf("Validate failed: %v", err)
			}
			if l.Fields()[0] != reading.TimeStamp {
				t.Errorf("first field = %s, want %s", l.Fields()[0], reading.TimeStamp)
			}
		})
	}
}

func TestLayouts_Sizes(t *testing.T) {
	if n := len(WindLayout()); n != 18 {
		t.Errorf("wind layout has %d regions, want 18", n)
	}
	if n := len(WaveLayout()); n != 13 {
		t.Errorf("wave layout has %d regions, want 13", n)
	}
}

func TestLayouts_ContentTypeFromName(t *testing.T) {
	for _, l := range []Layout{WindLayout(), WaveLayout()} {
		for f, def := range l {
			isTime := strings.Contains(f.String(), "Time")
			if isTime != (def.Type == TimestampContent) {
				t.Errorf("%s: type = %s", f, def.Type)
			}
			if def.Type == TimestampContent && def.Range != nil {
				t.Errorf("%s: timestamp region has a range", f)
			}
		}
	}
}

func TestWindLayout_Values(t *testing.T) {
	l := WindLayout()

	def := l[reading.WindSpeedAvgKts]
	if def.Bounds != imaging.Rect(21, 307, 63, 327) {
		t.Errorf("bounds = %s", def.Bounds)
	}
	if def.Range == nil || *def.Range != (Range{Min: 0, Max: 60}) {
		t.Errorf("range = %v, want [0, 60]", def.Range)
	}

	if r := l[reading.BaromPresMmHg].Range; r == nil || r.Max != 32.5 {
		t.Errorf("barometer range = %v", r)
	}
	if l[reading.WindTimeM24].Type != TimestampContent {
		t.Error("WindTimeM24 should be a timestamp region")
	}
}

func TestWaveLayout_UnrangedPeriods(t *testing.T) {
	l := WaveLayout()
	for _, f := range []reading.Field{reading.WavPerAvg, reading.WavPerDom, reading.WavePerAvgM24, reading.WavePerDomM24} {
		if l[f].Range != nil {
			t.Errorf("%s should have no range", f)
		}
	}
}

func TestLayout_Columns(t *testing.T) {
	cols := WaveLayout().Columns()
	if cols[0] != reading.IndexColumn {
		t.Errorf("first column = %q, want %q", cols[0], reading.IndexColumn)
	}
	if cols[len(cols)-1] != "WaveTimeM24" {
		t.Errorf("last column = %q", cols[len(cols)-1])
	}
}

func TestLayout_Clone(t *testing.T) {
	orig := WindLayout()
	c := orig.Clone()

	c[reading.WindDir].Range.Max = 1
	delete(c, reading.RelHum)

	if orig[reading.WindDir].Range.Max != 360 {
		t.Error("clone shares range with original")
	}
	if _, ok := orig[reading.RelHum]; !ok {
		t.Error("deleting from clone changed original")
	}
}

func TestLayout_ValidateErrors(t *testing.T) {
	tests := []struct {
		name   string
		layout Layout
		errMsg string
	}{
		{
			name:   "missing timestamp",
			layout: Layout{reading.WindDir: {Bounds: imaging.Rect(0, 0, 10, 10)}},
			errMsg: "no TimeStamp",
		},
		{
			name: "inverted rectangle",
			layout: Layout{
				reading.TimeStamp: {Bounds: imaging.Rect(0, 0, 10, 10), Type: TimestampContent},
				reading.WindDir:   {Bounds: imaging.Rect(20, 0, 10, 10)},
			},
			errMsg: "WindDir",
		},
		{
			name: "inverted range",
			layout: Layout{
				reading.TimeStamp: {Bounds: imaging.Rect(0, 0, 10, 10), Type: TimestampContent},
				reading.WindDir:   {Bounds: imaging.Rect(0, 0, 10, 10), Range: &Range{Min: 10, Max: 1}},
			},
			errMsg: "WindDir",
		},
		{
			name: "range on timestamp",
			layout: Layout{
				reading.TimeStamp: {Bounds: imaging.Rect(0, 0, 10, 10), Type: TimestampContent, Range: &Range{Max: 1}},
			},
			errMsg: "take no range",
		},
		{
			name: "undeclared field",
			layout: Layout{
				reading.TimeStamp:  {Bounds: imaging.Rect(0, 0, 10, 10), Type: TimestampContent},
				reading.Field(999): {Bounds: imaging.Rect(0, 0, 10, 10)},
			},
			errMsg: "undeclared field",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.layout.Validate()
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tt.errMsg) {
				t.Errorf("error %q should contain %q", err, tt.errMsg)
			}
		})
	}
}

func TestContentType_Charset(t *testing.T) {
	if NumericContent.Charset() != ocr.NumericCharset {
		t.Error("numeric regions should use the numeric whitelist")
	}
	if TimestampContent.Charset() != ocr.DateCharset {
		t.Error("timestamp regions should use the date whitelist")
	}
}
