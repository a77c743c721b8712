package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/anthonynsimon/bild/imgio"

	"github.com/ironsheep/buoy-capture/internal/capture"
	"github.com/ironsheep/buoy-capture/internal/config"
	"github.com/ironsheep/buoy-capture/internal/fetch"
	"github.com/ironsheep/buoy-capture/internal/imaging"
	"github.com/ironsheep/buoy-capture/internal/logger"
)

// Version information - set by ldflags during build
var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

const prog = "panel-overlay"

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet(prog, flag.ContinueOnError)
	fs.SetOutput(stderr)
	dataset := fs.String("dataset", "wind", "Panel layout to draw: wind or wave")
	source := fs.String("source", capture.DefaultSource, "Buoy to fetch the panel from")
	in := fs.String("in", "", "Use a local panel image instead of fetching")
	out := fs.String("out", "", "Output PNG (default <BUOY_TMP_DIR>/<dataset>_overlay.png)")
	grid := fs.Int("grid", 0, "Draw a coordinate grid every n pixels")
	hex := fs.String("color", "#FF0000", "Outline colour")
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

	outline, err := imaging.ParseHexColor(*hex)
	if err != nil {
		fmt.Fprintf(stderr, "invalid color %q: %v\n", *hex, err)
		return 2
	}

	ctx := context.Background()
	cfg, err := config.Load(ctx)
	if err != nil {
		fmt.Fprintf(stderr, "configuration error: %v\n", err)
		return 1
	}

	panelPath := *in
	if panelPath == "" {
		src, err := capture.LookupSource(*source)
		if err != nil {
			fmt.Fprintln(stderr, err)
			return 2
		}
		panelPath = filepath.Join(cfg.TmpDir, d.String()+"_panel.png")
		f := fetch.New(cfg.FetchTimeout, logger.New(logger.Config{Level: logger.WARN, Output: stderr}))
		if err := f.Fetch(ctx, src.ImageURL(cfg.BaseURL, d), panelPath); err != nil {
			fmt.Fprintf(stderr, "fetch failed: %v\n", err)
			return 1
		}
	}

	img, err := imaging.Load(panelPath)
	if err != nil {
		fmt.Fprintf(stderr, "%v\n", err)
		return 1
	}

	layout := d.Layout()
	labels := make([]imaging.Label, 0, len(layout))
	for _, f := range layout.Fields() {
		labels = append(labels, imaging.Label{Name: f.String(), Region: layout[f].Bounds})
	}

	result := imaging.Overlay(img, labels, imaging.OverlayOptions{Outline: outline, GridSpacing: *grid})

	dest := *out
	if dest == "" {
		dest = filepath.Join(cfg.TmpDir, d.String()+"_overlay.png")
	}
	if err := os.MkdirAll(filepath.Dir(dest), 0755); err != nil {
		fmt.Fprintf(stderr, "failed to create output directory: %v\n", err)
		return 1
	}
	if err := imgio.Save(dest, result, imgio.PNGEncoder()); err != nil {
		fmt.Fprintf(stderr, "failed to write %s: %v\n", dest, err)
		return 1
	}

	fmt.Fprintln(stdout, dest)
	return 0
}
