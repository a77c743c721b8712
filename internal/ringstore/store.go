package ringstore

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/google/renameio/v2"

	"github.com/ironsheep/buoy-capture/internal/logger"
	"github.com/ironsheep/buoy-capture/internal/reading"
)

// DefaultRetention is how far back a store keeps records.
const DefaultRetention = 72 * time.Hour

// Options configures a Store. Zero values select the defaults.
type Options struct {
	// Retention defaults to DefaultRetention.
	Retention time.Duration

	// Location is the fixed local zone. Defaults to time.Local.
	Location *time.Location

	// Now replaces time.Now for the retention cutoff.
	Now func() time.Time

	Logger *logger.Logger
}

// Store is an append-only, age-bounded table persisted to one CSV file.
// It is not safe for concurrent use.
type Store struct {
	path      string
	columns   []string
	known     map[string]bool
	records   []reading.Record
	retention time.Duration
	loc       *time.Location
	now       func() time.Time
	log       *logger.Logger
}

// Open creates a store for the given column labels backed by path. If path
// exists its rows are loaded; a missing file is an empty store. The index
// column label may appear in columns and is ignored.
func Open(path string, columns []string, opts Options) (*Store, error) {
	if path == "" {
		return nil, fmt.Errorf("store path is required")
	}

	s := &Store{
		path:      path,
		known:     make(map[string]bool),
		retention: opts.Retention,
		loc:       opts.Location,
		now:       opts.Now,
		log:       opts.Logger,
	}
	if s.retention <= 0 {
		s.retention = DefaultRetention
	}
	if s.loc == nil {
		s.loc = time.Local
	}
	if s.now == nil {
		s.now = time.Now
	}
	if s.log == nil {
		s.log = logger.Discard()
	}

	s.addColumns(columns)

	if err := s.load(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Store) addColumns(columns []string) {
	for _, c := range columns {
		if c == reading.IndexColumn || s.known[c] {
			continue
		}
		s.known[c] = true
		s.columns = append(s.columns, c)
	}
}

func (s *Store) load() error {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			s.log.Debug("no store file yet, starting empty", logger.Fields{"path": s.path})
			return nil
		}
		return fmt.Errorf("failed to read store: %w", err)
	}

	res, err := decodeCSV(bytes.NewReader(data), s.loc)
	if err != nil {
		return fmt.Errorf("failed to parse store %s: %w", s.path, err)
	}
	for _, msg := range res.errors {
		s.log.Warn("store row problem", logger.Fields{"path": s.path, "detail": msg})
	}

	s.addColumns(res.columns)
	s.records = res.records
	s.log.Debug("store loaded", logger.Fields{"path": s.path, "rows": len(s.records)})
	return nil
}

// Path returns the backing file path.
func (s *Store) Path() string { return s.path }

// Retention returns the configured retention window.
func (s *Store) Retention() time.Duration { return s.retention }

// Columns returns every known column label: the declared ones in order,
// then any extra ones met in the file or in records.
func (s *Store) Columns() []string {
	out := make([]string, len(s.columns))
	copy(out, s.columns)
	return out
}

// Len returns the number of retained records.
func (s *Store) Len() int { return len(s.records) }

// Data returns the retained records in append order. The slice is the
// store's own; callers must not modify it.
func (s *Store) Data() []reading.Record { return s.records }

// Latest returns the most recently appended record.
func (s *Store) Latest() (reading.Record, bool) {
	if len(s.records) == 0 {
		return reading.Record{}, false
	}
	return s.records[len(s.records)-1], true
}

// AddRecord appends rec, drops records older than the retention window and
// rewrites the file. Records are kept in call order and duplicate
// timestamps are allowed.
func (s *Store) AddRecord(rec reading.Record) error {
	if rec.Time.IsZero() {
		return fmt.Errorf("record has no timestamp")
	}

	row := reading.Record{
		Time:   rec.Time.In(s.loc),
		Values: make(map[string]reading.Value, len(rec.Values)),
	}
	for c, v := range rec.Values {
		if c == reading.IndexColumn {
			continue
		}
		row.Values[c] = v
	}
	s.addColumns(rec.Columns())

	s.records = append(s.records, row)

	s.truncate()
	return s.save()
}

// truncate drops every record strictly older than now minus retention.
func (s *Store) truncate() {
	cutoff := s.now().In(s.loc).Add(-s.retention)

	kept := s.records[:0]
	dropped := 0
	for _, r := range s.records {
		if r.Time.Before(cutoff) {
			dropped++
			continue
		}
		kept = append(kept, r)
	}
	// Clear the tail so dropped records can be collected.
	for i := len(kept); i < len(s.records); i++ {
		s.records[i] = reading.Record{}
	}
	s.records = kept

	if dropped > 0 {
		s.log.Debug("dropped expired records", logger.Fields{
			"dropped": dropped,
			"cutoff":  cutoff.Format(time.RFC3339),
		})
	}
}

// populatedColumns returns the known columns holding at least one value.
func (s *Store) populatedColumns() []string {
	var out []string
	for _, c := range s.columns {
		for _, r := range s.records {
			if !r.Values[c].IsAbsent() {
				out = append(out, c)
				break
			}
		}
	}
	return out
}

func (s *Store) save() error {
	cols := s.populatedColumns()
	data, err := encodeCSV(cols, s.records, s.loc)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(s.path), 0755); err != nil {
		return fmt.Errorf("failed to create store directory: %w", err)
	}
	if err := renameio.WriteFile(s.path, data, 0644); err != nil {
		return fmt.Errorf("failed to write store: %w", err)
	}

	s.log.Debug("store saved", logger.Fields{
		"path":    s.path,
		"rows":    len(s.records),
		"columns": len(cols),
	})
	return nil
}
