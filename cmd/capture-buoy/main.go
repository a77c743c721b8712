package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
	_ "time/tzdata"

	"github.com/google/uuid"

	"github.com/ironsheep/buoy-capture/internal/capture"
	"github.com/ironsheep/buoy-capture/internal/config"
	"github.com/ironsheep/buoy-capture/internal/fetch"
	"github.com/ironsheep/buoy-capture/internal/imaging"
	"github.com/ironsheep/buoy-capture/internal/logger"
	"github.com/ironsheep/buoy-capture/internal/ocr"
)

// Version information - set by ldflags during build
var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

const prog = "capture-buoy"

type options struct {
	wind    bool
	wave    bool
	source  string
	version bool
}

func parseArgs(args []string, stderr io.Writer) (*options, error) {
	fs := flag.NewFlagSet(prog, flag.ContinueOnError)
	fs.SetOutput(stderr)

	var o options
	fs.BoolVar(&o.wind, "z", false, "Gather wind information")
	fs.BoolVar(&o.wind, "wind", false, "Gather wind information")
	fs.BoolVar(&o.wave, "w", false, "Gather wave information")
	fs.BoolVar(&o.wave, "wave", false, "Gather wave information")
	fs.StringVar(&o.source, "s", capture.DefaultSource, "Select buoy to farm")
	fs.StringVar(&o.source, "source", capture.DefaultSource, "Select buoy to farm")
	fs.BoolVar(&o.version, "version", false, "Print version information")
	fs.BoolVar(&o.version, "v", false, "Print version information")

	fs.Usage = func() {
		fmt.Fprintf(stderr, "%s - fetches the wind and wave data from the Long Island Sound buoys using OCR\n\n", prog)
		fmt.Fprintf(stderr, "Usage: %s [-z|--wind] [-w|--wave] [-s|--source {%s}]\n\n", prog, strings.Join(capture.SourceIDs(), ","))
		fmt.Fprintln(stderr, "Options:")
		fmt.Fprintln(stderr, "  -z, --wind       Gather wind information")
		fmt.Fprintln(stderr, "  -w, --wave       Gather wave information")
		fmt.Fprintf(stderr, "  -s, --source     Select buoy to farm (default %s)\n", capture.DefaultSource)
		fmt.Fprintln(stderr, "  -v, --version    Print version information")
		fmt.Fprintln(stderr)
		fmt.Fprintln(stderr, "Environment variables (or .env):")
		fmt.Fprintln(stderr, "  BUOY_DATA_DIR, BUOY_TMP_DIR, BUOY_LOG_FILE, BUOY_LOG_LEVEL, BUOY_LOG_FORMAT,")
		fmt.Fprintln(stderr, "  BUOY_TIMEZONE, BUOY_RETENTION, BUOY_PUBLISH_DELAY, BUOY_BASE_URL,")
		fmt.Fprintln(stderr, "  BUOY_FETCH_TIMEOUT, BUOY_OCR_LANGUAGE, BUOY_OCR_AUTO_INVERT, BUOY_UPSCALE,")
		fmt.Fprintln(stderr, "  TESSDATA_PREFIX")
	}

	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if fs.NArg() > 0 {
		fs.Usage()
		return nil, fmt.Errorf("unexpected arguments: %s", strings.Join(fs.Args(), " "))
	}
	return &o, nil
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	opts, err := parseArgs(args, stderr)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		fmt.Fprintln(stderr, err)
		return 2
	}

	if opts.version {
		fmt.Fprintf(stdout, "%s %s\n", prog, Version)
		fmt.Fprintf(stdout, "  Build time: %s\n", BuildTime)
		fmt.Fprintf(stdout, "  Git commit: %s\n", GitCommit)
		return 0
	}

	src, err := capture.LookupSource(opts.source)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 2
	}

	ctx := context.Background()
	cfg, err := config.Load(ctx)
	if err != nil {
		fmt.Fprintf(stderr, "configuration error: %v\n", err)
		return 1
	}

	log, closeLog, err := openLogger(cfg, stderr)
	if err != nil {
		fmt.Fprintf(stderr, "logging error: %v\n", err)
		return 1
	}
	defer closeLog()

	log = log.WithFields(logger.Fields{"run": uuid.NewString()})

	var datasets []capture.Dataset
	if opts.wind {
		datasets = append(datasets, capture.Wind)
	}
	if opts.wave {
		datasets = append(datasets, capture.Wave)
	}
	if len(datasets) == 0 {
		log.Warn("nothing to capture: pass --wind and/or --wave")
		return 0
	}

	tess, err := ocr.NewTesseract(ocr.Options{
		Language:       cfg.OCRLanguage,
		TessdataPrefix: cfg.TessdataPrefix,
	})
	if err != nil {
		log.Error("failed to start OCR engine", err)
		return 1
	}
	defer tess.Close()
	log.Debug("OCR engine ready", logger.Fields{"tesseract": tess.Version(), "version": Version})

	pre := imaging.DefaultPreprocessOptions()
	pre.Upscale = cfg.Upscale
	pre.AutoInvert = cfg.OCRAutoInvert

	pipeline, err := capture.NewPipeline(capture.Options{
		BaseURL:      cfg.BaseURL,
		Fetcher:      fetch.New(cfg.FetchTimeout, log.WithComponent("fetch")),
		Recognizer:   tess,
		Wind:         capture.Paths{Staging: cfg.WindStagingPath(), Store: cfg.WindStorePath()},
		Wave:         capture.Paths{Staging: cfg.WaveStagingPath(), Store: cfg.WaveStorePath()},
		Location:     cfg.Location(),
		PublishDelay: cfg.PublishDelay,
		Retention:    cfg.Retention,
		Preprocess:   pre,
		Logger:       log.WithComponent("capture"),
	})
	if err != nil {
		log.Error("failed to set up capture", err)
		return 1
	}

	status := 0
	for _, d := range datasets {
		if _, err := pipeline.Run(ctx, d, src); err != nil {
			log.Error(fmt.Sprintf("%s capture failed", d), err, logger.Fields{"source": src.ID})
			status = 1
		}
	}
	return status
}

// openLogger writes to the configured log file, or to stderr when none is
// set.
func openLogger(cfg *config.Config, stderr io.Writer) (*logger.Logger, func(), error) {
	lc, err := cfg.LoggerConfig()
	if err != nil {
		return nil, nil, err
	}

	if cfg.LogFile == "" {
		lc.Output = stderr
		return logger.New(lc), func() {}, nil
	}

	f, err := logger.OpenFile(cfg.LogFile)
	if err != nil {
		return nil, nil, err
	}
	lc.Output = f
	return logger.New(lc), func() { f.Close() }, nil
}
