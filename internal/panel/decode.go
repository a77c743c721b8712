package panel

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/ironsheep/buoy-capture/internal/logger"
	"github.com/ironsheep/buoy-capture/internal/reading"
)

// DefaultPublishDelay is added to every decoded panel timestamp.
const DefaultPublishDelay = 4 * time.Minute

// Accepted timestamp layouts, tried in order. The panel never prints a year;
// one is appended before parsing.
var timestampLayouts = []string{
	"3:04:05 PM Mon Jan _2, 2006",
	"3:04:05 PM MonJan _2, 2006",
	"3:04:05 PM Jan _2, 2006",
}

// Zone abbreviations are stripped because the panel does not switch them
// reliably at daylight saving transitions.
var zoneReplacer = strings.NewReplacer("EST, ", "", "EDT, ", "")

// Decoder converts recognized text into reading values.
type Decoder struct {
	loc   *time.Location
	delay time.Duration
	now   func() time.Time
	log   *logger.Logger
}

// NewDecoder creates a decoder that interprets panel times in loc and shifts
// them by delay. A nil now uses time.Now; a nil log discards.
func NewDecoder(loc *time.Location, delay time.Duration, now func() time.Time, log *logger.Logger) *Decoder {
	if loc == nil {
		loc = time.Local
	}
	if now == nil {
		now = time.Now
	}
	if log == nil {
		log = logger.Discard()
	}
	return &Decoder{loc: loc, delay: delay, now: now, log: log}
}

// Number decodes a numeric region. Text that does not parse is Unparseable.
// A value outside rng gets exactly one ÷10 correction; if that is still out
// of range the result is OutOfRange.
func (d *Decoder) Number(field reading.Field, text string, rng *Range) reading.Value {
	stripped := strings.TrimSpace(text)
	d.log.Debug("numeric text", logger.Fields{"field": field.String(), "raw": text, "stripped": stripped})

	v, err := strconv.ParseFloat(stripped, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		d.log.Debug("numeric text unparseable", logger.Fields{"field": field.String(), "text": stripped})
		return reading.Missing(reading.Unparseable)
	}

	if rng == nil || rng.Contains(v) {
		return reading.NumberValue(v)
	}

	d.log.Warnf("Value %g is outside expected range %s for key '%s'", v, rng, field)
	fixed := v / 10
	if rng.Contains(fixed) {
		d.log.Warnf("Value %g fixed to %g", v, fixed)
		return reading.NumberValue(fixed).WithOutcome(reading.Corrected)
	}
	return reading.Missing(reading.OutOfRange)
}

// Timestamp decodes a timestamp region. When no layout matches, the current
// time in the local zone is substituted, without the publication delay, and
// a critical entry is logged.
func (d *Decoder) Timestamp(field reading.Field, text string) reading.Value {
	now := d.now().In(d.loc)

	s := fmt.Sprintf("%s, %d", strings.TrimSpace(text), now.Year())
	d.log.Debug("time string", logger.Fields{"field": field.String(), "raw": s})
	s = zoneReplacer.Replace(s)
	d.log.Debug("time string", logger.Fields{"field": field.String(), "stripped": s})

	for _, layout := range timestampLayouts {
		t, err := time.ParseInLocation(layout, s, d.loc)
		if err != nil {
			continue
		}
		t = t.Add(d.delay)
		d.log.Debug("time string decoded", logger.Fields{"field": field.String(), "time": t.Format(time.RFC3339)})
		return reading.TimeValue(t)
	}

	d.log.Critical(fmt.Sprintf("Can't decode date string, using current time '%s'", s), nil,
		logger.Fields{"field": field.String()})
	return reading.TimeValue(now).WithOutcome(reading.Fallback)
}
