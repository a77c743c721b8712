package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"
	_ "time/tzdata"

	"github.com/ironsheep/buoy-capture/internal/capture"
	"github.com/ironsheep/buoy-capture/internal/config"
	"github.com/ironsheep/buoy-capture/internal/reading"
	"github.com/ironsheep/buoy-capture/internal/ringstore"
)

// Version information - set by ldflags during build
var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

const prog = "buoy-show"

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet(prog, flag.ContinueOnError)
	fs.SetOutput(stderr)
	dataset := fs.String("dataset", "wind", "Dataset to show: wind or wave")
	latest := fs.Bool("latest", false, "Show only the most recent record")
	asJSON := fs.Bool("json", false, "Print JSON instead of a table")
	only := fs.String("columns", "", "Comma-separated column labels to show (default all)")
	version := fs.Bool("version", false, "Print version information")

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		return 2
	}

	if *version {
		fmt.Fprintf(stdout, "%s %s\n", prog, Version)
		fmt.Fprintf(stdout, "  Build time: %s\n", BuildTime)
		fmt.Fprintf(stdout, "  Git commit: %s\n", GitCommit)
		return 0
	}

	var d capture.Dataset
	switch *dataset {
	case "wind":
		d = capture.Wind
	case "wave":
		d = capture.Wave
	default:
		fmt.Fprintf(stderr, "unknown dataset %q: choose wind or wave\n", *dataset)
		return 2
	}

	columns, err := selectColumns(d, *only)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 2
	}

	cfg, err := config.Load(context.Background())
	if err != nil {
		fmt.Fprintf(stderr, "configuration error: %v\n", err)
		return 1
	}

	path := cfg.WindStorePath()
	if d == capture.Wave {
		path = cfg.WaveStorePath()
	}

	store, err := ringstore.Open(path, d.Layout().Columns(), ringstore.Options{
		Retention: cfg.Retention,
		Location:  cfg.Location(),
	})
	if err != nil {
		fmt.Fprintf(stderr, "failed to open %s: %v\n", path, err)
		return 1
	}

	if columns == nil {
		columns = store.Columns()
	}

	rows := store.Data()
	if *latest {
		rows = nil
		if r, ok := store.Latest(); ok {
			rows = []reading.Record{r}
		}
	}

	if *asJSON {
		err = writeJSON(stdout, columns, rows, cfg.Location())
	} else {
		err = writeTable(stdout, columns, rows, cfg.Location())
	}
	if err != nil {
		fmt.Fprintf(stderr, "output error: %v\n", err)
		return 1
	}
	return 0
}

// selectColumns validates a comma-separated list of column labels against
// the dataset's layout. An empty list selects every column.
func selectColumns(d capture.Dataset, list string) ([]string, error) {
	if strings.TrimSpace(list) == "" {
		return nil, nil
	}
	layout := d.Layout()

	var out []string
	for _, name := range strings.Split(list, ",") {
		name = strings.TrimSpace(name)
		f, ok := reading.ParseField(name)
		if !ok {
			return nil, fmt.Errorf("unknown column %q", name)
		}
		if f == reading.TimeStamp {
			continue
		}
		if _, ok := layout[f]; !ok {
			return nil, fmt.Errorf("column %q is not part of the %s dataset", name, d)
		}
		out = append(out, name)
	}
	return out, nil
}

func cell(v reading.Value, loc *time.Location) string {
	switch v.Kind() {
	case reading.Number:
		return strconv.FormatFloat(v.Float(), 'f', -1, 64)
	case reading.Timestamp:
		t, _ := v.Time()
		return t.In(loc).Format("2006-01-02 15:04:05 MST")
	default:
		return ""
	}
}

func writeTable(w io.Writer, columns []string, rows []reading.Record, loc *time.Location) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)

	fmt.Fprint(tw, reading.IndexColumn)
	for _, c := range columns {
		fmt.Fprintf(tw, "\t%s", c)
	}
	fmt.Fprintln(tw)

	for _, r := range rows {
		fmt.Fprint(tw, r.Time.In(loc).Format("2006-01-02 15:04:05 MST"))
		for _, c := range columns {
			fmt.Fprintf(tw, "\t%s", cell(r.Get(c), loc))
		}
		fmt.Fprintln(tw)
	}
	return tw.Flush()
}

func writeJSON(w io.Writer, columns []string, rows []reading.Record, loc *time.Location) error {
	out := make([]map[string]interface{}, 0, len(rows))
	for _, r := range rows {
		m := map[string]interface{}{reading.IndexColumn: r.Time.In(loc).Format(time.RFC3339)}
		for _, c := range columns {
			v := r.Get(c)
			switch v.Kind() {
			case reading.Number:
				m[c] = v.Float()
			case reading.Timestamp:
				t, _ := v.Time()
				m[c] = t.In(loc).Format(time.RFC3339)
			default:
				m[c] = nil
			}
		}
		out = append(out, m)
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}
