// Package config loads the capture settings from the environment.
package config

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/sethvargo/go-envconfig"

	"github.com/ironsheep/buoy-capture/internal/logger"
)

// Config holds all settings of the capture tools.
type Config struct {
	// Storage
	DataDir string `env:"BUOY_DATA_DIR,default=../resources" validate:"required"`
	TmpDir  string `env:"BUOY_TMP_DIR,default=../resources/tmp" validate:"required"`

	// Logging. An empty LogFile writes to stderr.
	LogFile   string `env:"BUOY_LOG_FILE,default=../resources/tmp/OCRDataCapture.log"`
	LogLevel  string `env:"BUOY_LOG_LEVEL,default=info" validate:"oneof=debug info warn warning error critical"`
	LogFormat string `env:"BUOY_LOG_FORMAT,default=text" validate:"oneof=text json"`

	// Time handling
	Timezone     string        `env:"BUOY_TIMEZONE,default=America/New_York" validate:"required"`
	Retention    time.Duration `env:"BUOY_RETENTION,default=72h" validate:"gt=0"`
	PublishDelay time.Duration `env:"BUOY_PUBLISH_DELAY,default=4m" validate:"gte=0"`

	// Source
	BaseURL      string        `env:"BUOY_BASE_URL,default=https://clydebank.dms.uconn.edu" validate:"url"`
	FetchTimeout time.Duration `env:"BUOY_FETCH_TIMEOUT,default=30s" validate:"gt=0"`

	// Recognition
	OCRLanguage    string `env:"BUOY_OCR_LANGUAGE,default=eng" validate:"required"`
	OCRAutoInvert  bool   `env:"BUOY_OCR_AUTO_INVERT,default=false"`
	Upscale        int    `env:"BUOY_UPSCALE,default=2" validate:"gte=1,lte=8"`
	TessdataPrefix string `env:"TESSDATA_PREFIX"`

	location *time.Location
}

var validate = validator.New()

// Load reads an optional .env file from the working directory and then the
// process environment. Variables already set take precedence over .env.
func Load(ctx context.Context) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to read .env: %w", err)
	}
	return load(ctx, envconfig.OsLookuper())
}

func load(ctx context.Context, lookuper envconfig.Lookuper) (*Config, error) {
	var cfg Config
	if err := envconfig.ProcessWith(ctx, &envconfig.Config{
		Target:   &cfg,
		Lookuper: lookuper,
	}); err != nil {
		return nil, fmt.Errorf("failed to process config: %w", err)
	}

	if err := validate.Struct(&cfg); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	loc, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		return nil, fmt.Errorf("invalid BUOY_TIMEZONE: %w", err)
	}
	cfg.location = loc

	return &cfg, nil
}

// Location returns the fixed local zone.
func (c *Config) Location() *time.Location {
	if c.location == nil {
		return time.Local
	}
	return c.location
}

// LoggerConfig returns the level and format settings for logger.New. The
// output is left for the caller to open.
func (c *Config) LoggerConfig() (logger.Config, error) {
	level, err := logger.ParseLevel(c.LogLevel)
	if err != nil {
		return logger.Config{}, err
	}
	format, err := logger.ParseFormat(c.LogFormat)
	if err != nil {
		return logger.Config{}, err
	}
	return logger.Config{Level: level, Format: format}, nil
}

// WindStorePath is the wind dataset file.
func (c *Config) WindStorePath() string { return filepath.Join(c.DataDir, "wind_data.csv") }

// WaveStorePath is the wave dataset file.
func (c *Config) WaveStorePath() string { return filepath.Join(c.DataDir, "wave_data.csv") }

// WindStagingPath is where the fetched wind panel is written.
func (c *Config) WindStagingPath() string { return filepath.Join(c.TmpDir, "wind_panel.png") }

// WaveStagingPath is where the fetched wave panel is written.
func (c *Config) WaveStagingPath() string { return filepath.Join(c.TmpDir, "wave_panel.png") }
