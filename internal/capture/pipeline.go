package capture

import (
	"context"
	"fmt"
	"time"

	"github.com/ironsheep/buoy-capture/internal/imaging"
	"github.com/ironsheep/buoy-capture/internal/logger"
	"github.com/ironsheep/buoy-capture/internal/ocr"
	"github.com/ironsheep/buoy-capture/internal/panel"
	"github.com/ironsheep/buoy-capture/internal/reading"
	"github.com/ironsheep/buoy-capture/internal/ringstore"
)

// Fetcher downloads a URL to a local file.
type Fetcher interface {
	Fetch(ctx context.Context, url, dest string) error
}

// Paths are the files one dataset uses.
type Paths struct {
	// Staging receives the fetched panel image.
	Staging string
	// Store is the dataset's ring store file.
	Store string
}

// Options configures a Pipeline.
type Options struct {
	BaseURL    string
	Fetcher    Fetcher
	Recognizer ocr.Recognizer

	Wind Paths
	Wave Paths

	Location     *time.Location
	PublishDelay time.Duration
	Retention    time.Duration
	Preprocess   imaging.PreprocessOptions

	// Now replaces time.Now for decoding and retention.
	Now func() time.Time

	Logger *logger.Logger
}

// Pipeline runs capture cycles.
type Pipeline struct {
	opts Options
	log  *logger.Logger
}

// Summary describes one completed cycle.
type Summary struct {
	Dataset Dataset
	Source  Source
	Record  reading.Record
	Absent  int
	Rows    int
}

// NewPipeline checks opts and fills in defaults.
func NewPipeline(opts Options) (*Pipeline, error) {
	if opts.Fetcher == nil {
		return nil, fmt.Errorf("fetcher is required")
	}
	if opts.Recognizer == nil {
		return nil, fmt.Errorf("recognizer is required")
	}
	if opts.BaseURL == "" {
		return nil, fmt.Errorf("base URL is required")
	}
	for _, p := range []Paths{opts.Wind, opts.Wave} {
		if p.Staging == "" || p.Store == "" {
			return nil, fmt.Errorf("staging and store paths are required for both datasets")
		}
	}
	if opts.Location == nil {
		opts.Location = time.Local
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	log := opts.Logger
	if log == nil {
		log = logger.Discard()
	}
	return &Pipeline{opts: opts, log: log}, nil
}

func (p *Pipeline) paths(d Dataset) Paths {
	if d == Wave {
		return p.opts.Wave
	}
	return p.opts.Wind
}

// Run fetches the dataset's panel from src, extracts it and appends the
// record to the dataset's store.
func (p *Pipeline) Run(ctx context.Context, d Dataset, src Source) (*Summary, error) {
	log := p.log.WithFields(logger.Fields{"dataset": d.String(), "source": src.ID})
	log.Info(fmt.Sprintf("--- %s %s Data Read:", src.Name, d))

	paths := p.paths(d)
	layout := d.Layout()

	url := src.ImageURL(p.opts.BaseURL, d)
	if err := p.opts.Fetcher.Fetch(ctx, url, paths.Staging); err != nil {
		return nil, fmt.Errorf("failed to fetch %s panel: %w", d, err)
	}

	ex, err := panel.NewExtractor(layout, p.opts.Recognizer, panel.Config{
		Location:     p.opts.Location,
		PublishDelay: p.opts.PublishDelay,
		Preprocess:   p.opts.Preprocess,
		Now:          p.opts.Now,
		Logger:       log,
	})
	if err != nil {
		return nil, err
	}

	res, err := ex.Extract(paths.Staging)
	if err != nil {
		return nil, fmt.Errorf("failed to extract %s panel: %w", d, err)
	}
	rec := res.Record()

	absent := 0
	for _, f := range res.Fields() {
		v, _ := res.Get(f)
		if v.IsAbsent() {
			absent++
		}
		log.Debug("decoded", logger.Fields{"field": f.String(), "value": v.String(), "outcome": v.Outcome().String()})
	}
	log.Debug("time", logger.Fields{"timestamp": res.Time().Format("2006-01-02 03:04:05 PM MST")})

	store, err := ringstore.Open(paths.Store, layout.Columns(), ringstore.Options{
		Retention: p.opts.Retention,
		Location:  p.opts.Location,
		Now:       p.opts.Now,
		Logger:    log,
	})
	if err != nil {
		return nil, err
	}
	if err := store.AddRecord(rec); err != nil {
		return nil, err
	}

	log.Info("record stored", logger.Fields{
		"timestamp": rec.Time.Format(time.RFC3339),
		"absent":    absent,
		"rows":      store.Len(),
	})

	return &Summary{Dataset: d, Source: src, Record: rec, Absent: absent, Rows: store.Len()}, nil
}
