package panel

import (
	"fmt"
	"image"
	"os"
	"time"

	"github.com/ironsheep/buoy-capture/internal/imaging"
	"github.com/ironsheep/buoy-capture/internal/logger"
	"github.com/ironsheep/buoy-capture/internal/ocr"
	"github.com/ironsheep/buoy-capture/internal/reading"
)

// Config holds the extractor settings that are not part of a layout.
type Config struct {
	// Location is the fixed zone panel times are printed in.
	Location *time.Location

	// PublishDelay is added to decoded panel times.
	PublishDelay time.Duration

	// Preprocess controls crop preparation. A zero Upscale means
	// imaging.DefaultUpscale.
	Preprocess imaging.PreprocessOptions

	// Now replaces time.Now for the year and the fallback timestamp.
	Now func() time.Time

	Logger *logger.Logger
}

// Extractor reads every region of a layout from panel images.
type Extractor struct {
	layout Layout
	ocr    ocr.Recognizer
	dec    *Decoder
	pre    imaging.PreprocessOptions
	log    *logger.Logger
}

// NewExtractor validates layout and keeps its own copy of it.
func NewExtractor(layout Layout, rec ocr.Recognizer, cfg Config) (*Extractor, error) {
	if rec == nil {
		return nil, fmt.Errorf("recognizer is required")
	}
	if err := layout.Validate(); err != nil {
		return nil, err
	}

	log := cfg.Logger
	if log == nil {
		log = logger.Discard()
	}
	pre := cfg.Preprocess
	if pre.Upscale == 0 {
		pre.Upscale = imaging.DefaultUpscale
	}

	return &Extractor{
		layout: layout.Clone(),
		ocr:    rec,
		dec:    NewDecoder(cfg.Location, cfg.PublishDelay, cfg.Now, log),
		pre:    pre,
		log:    log,
	}, nil
}

// Layout returns a copy of the extractor's layout.
func (e *Extractor) Layout() Layout {
	return e.layout.Clone()
}

// Extract decodes every region of the panel image at imagePath. Only a
// failure to read the image itself is an error; region failures are
// reported through the values' outcomes.
func (e *Extractor) Extract(imagePath string) (*Result, error) {
	img, err := imaging.Load(imagePath)
	if err != nil {
		return nil, err
	}

	dims := imaging.GetDimensions(img)
	e.log.Debug("panel loaded", logger.Fields{"path": imagePath, "width": dims.Width, "height": dims.Height})

	fields := e.layout.Fields()
	values := make(map[reading.Field]reading.Value, len(fields))
	for _, f := range fields {
		def := e.layout[f]
		e.log.Debug("extracting region", logger.Fields{
			"field":  f.String(),
			"bounds": def.Bounds.String(),
			"size":   fmt.Sprintf("%dx%d", def.Bounds.Width(), def.Bounds.Height()),
			"type":   def.Type.String(),
		})
		values[f] = e.extractRegion(img, f, def)
	}

	return &Result{fields: fields, values: values}, nil
}

func (e *Extractor) extractRegion(img image.Image, f reading.Field, def RegionDef) reading.Value {
	text, err := e.recognize(img, def)
	if err != nil {
		e.log.Error(fmt.Sprintf("recognition failed for '%s'", f), err)
		if def.Type == NumericContent {
			return reading.Missing(reading.Unparseable)
		}
		// Empty text never parses, so the timestamp takes the fallback.
		text = ""
	}

	if def.Type == TimestampContent {
		return e.dec.Timestamp(f, text)
	}
	return e.dec.Number(f, text, def.Range)
}

func (e *Extractor) recognize(img image.Image, def RegionDef) (string, error) {
	crop, err := imaging.Crop(img, def.Bounds)
	if err != nil {
		return "", err
	}

	path, err := imaging.SaveTemp(imaging.Preprocess(crop, e.pre), "buoy-region")
	if err != nil {
		return "", err
	}
	defer os.Remove(path)

	return e.ocr.Recognize(path, def.Type.Charset())
}

// Result is the decoded content of one panel image.
type Result struct {
	fields []reading.Field
	values map[reading.Field]reading.Value
}

// Fields returns the fields the result holds, in declaration order.
func (r *Result) Fields() []reading.Field {
	out := make([]reading.Field, len(r.fields))
	copy(out, r.fields)
	return out
}

// Get returns the value decoded for f.
func (r *Result) Get(f reading.Field) (reading.Value, error) {
	v, ok := r.values[f]
	if !ok {
		return reading.Value{}, fmt.Errorf("%w: %s", ErrUnknownField, f)
	}
	return v, nil
}

// Time returns the panel's own reading time.
func (r *Result) Time() time.Time {
	t, _ := r.values[reading.TimeStamp].Time()
	return t
}

// Record converts the result into a single store row keyed by Time.
func (r *Result) Record() reading.Record {
	rec := reading.Record{
		Time:   r.Time(),
		Values: make(map[string]reading.Value, len(r.fields)),
	}
	for _, f := range r.fields {
		if f == reading.TimeStamp {
			continue
		}
		rec.Values[f.String()] = r.values[f]
	}
	return rec
}
