package config

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
	_ "time/tzdata"

	"github.com/sethvargo/go-envconfig"

	"github.com/ironsheep/buoy-capture/internal/logger"
)

func TestLoad(t *testing.T) {
	tests := []struct {
		name        string
		envVars     map[string]string
		expectError string
		validate    func(*testing.T, *Config)
	}{
		{
			name:    "defaults",
			envVars: map[string]string{},
			validate: func(t *testing.T, cfg *Config) {
				if cfg.DataDir != "../resources" {
					t.Errorf("Expected default DataDir '../resources', got '%s'", cfg.DataDir)
				}
				if cfg.TmpDir != "../resources/tmp" {
					t.Errorf("Expected default TmpDir '../resources/tmp', got '%s'", cfg.TmpDir)
				}
				if cfg.Retention != 72*time.Hour {
					t.Errorf("Expected default Retention 72h, got %v", cfg.Retention)
				}
				if cfg.PublishDelay != 4*time.Minute {
					t.Errorf("Expected default PublishDelay 4m, got %v", cfg.PublishDelay)
				}
				if cfg.FetchTimeout != 30*time.Second {
					t.Errorf("Expected default FetchTimeout 30s, got %v", cfg.FetchTimeout)
				}
				if cfg.BaseURL != "https://clydebank.dms.uconn.edu" {
					t.Errorf("Expected default BaseURL, got '%s'", cfg.BaseURL)
				}
				if cfg.Upscale != 2 {
					t.Errorf("Expected default Upscale 2, got %d", cfg.Upscale)
				}
				if cfg.OCRAutoInvert {
					t.Error("Expected OCRAutoInvert to default to false")
				}
				if cfg.Location().String() != "America/New_York" {
					t.Errorf("Expected location America/New_York, got %s", cfg.Location())
				}
			},
		},
		{
			name: "custom values",
			envVars: map[string]string{
				"BUOY_DATA_DIR":        "/var/lib/buoy",
				"BUOY_TMP_DIR":         "/tmp/buoy",
				"BUOY_LOG_LEVEL":       "debug",
				"BUOY_LOG_FORMAT":      "json",
				"BUOY_TIMEZONE":        "UTC",
				"BUOY_RETENTION":       "24h",
				"BUOY_PUBLISH_DELAY":   "0s",
				"BUOY_OCR_AUTO_INVERT": "true",
				"BUOY_UPSCALE":         "3",
				"TESSDATA_PREFIX":      "/usr/share/tessdata",
			},
			validate: func(t *testing.T, cfg *Config) {
				if cfg.WindStorePath() != "/var/lib/buoy/wind_data.csv" {
					t.Errorf("WindStorePath = %s", cfg.WindStorePath())
				}
				if cfg.WaveStagingPath() != "/tmp/buoy/wave_panel.png" {
					t.Errorf("WaveStagingPath = %s", cfg.WaveStagingPath())
				}
				if cfg.Retention != 24*time.Hour {
					t.Errorf("Retention = %v", cfg.Retention)
				}
				if cfg.PublishDelay != 0 {
					t.Errorf("PublishDelay = %v", cfg.PublishDelay)
				}
				if !cfg.OCRAutoInvert || cfg.Upscale != 3 {
					t.Errorf("OCR settings = %v, %d", cfg.OCRAutoInvert, cfg.Upscale)
				}
				if cfg.TessdataPrefix != "/usr/share/tessdata" {
					t.Errorf("TessdataPrefix = %s", cfg.TessdataPrefix)
				}
				if cfg.Location() != time.UTC {
					t.Errorf("Location = %v", cfg.Location())
				}

				lc, err := cfg.LoggerConfig()
				if err != nil {
					t.Fatalf("LoggerConfig failed: %v", err)
				}
				if lc.Level != logger.DEBUG || lc.Format != logger.JSONFormat {
					t.Errorf("LoggerConfig = %+v", lc)
				}
			},
		},
		{
			name:        "bad log level",
			envVars:     map[string]string{"BUOY_LOG_LEVEL": "verbose"},
			expectError: "LogLevel",
		},
		{
			name:        "bad duration",
			envVars:     map[string]string{"BUOY_RETENTION": "three days"},
			expectError: "failed to process config",
		},
		{
			name:        "zero retention",
			envVars:     map[string]string{"BUOY_RETENTION": "0s"},
			expectError: "Retention",
		},
		{
			name:        "unknown zone",
			envVars:     map[string]string{"BUOY_TIMEZONE": "Atlantis/Harbor"},
			expectError: "BUOY_TIMEZONE",
		},
		{
			name:        "bad url",
			envVars:     map[string]string{"BUOY_BASE_URL": "not a url"},
			expectError: "BaseURL",
		},
		{
			name:        "upscale out of bounds",
			envVars:     map[string]string{"BUOY_UPSCALE": "0"},
			expectError: "Upscale",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := load(context.Background(), envconfig.MapLookuper(tt.envVars))

			if tt.expectError != "" {
				if err == nil {
					t.Fatalf("Expected error containing %q", tt.expectError)
				}
				if !strings.Contains(err.Error(), tt.expectError) {
					t.Errorf("Expected error containing %q, got %v", tt.expectError, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}
			if tt.validate != nil {
				tt.validate(t, cfg)
			}
		})
	}
}

func TestLoad_DotEnv(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, ".env"), []byte("BUOY_DATA_DIR=/from/dotenv\nBUOY_UPSCALE=4\n"), 0644); err != nil {
		t.Fatalf("failed to write .env: %v", err)
	}

	wd, err := os.Getwd()
	if err != nil {
		t.Fatalf("Getwd failed: %v", err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatalf("Chdir failed: %v", err)
	}
	defer os.Chdir(wd)

	// godotenv does not override variables that are already set. The Setenv
	// calls also restore both variables after the test.
	t.Setenv("BUOY_UPSCALE", "5")
	t.Setenv("BUOY_DATA_DIR", "")
	os.Unsetenv("BUOY_DATA_DIR")

	cfg, err := Load(context.Background())
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.DataDir != "/from/dotenv" {
		t.Errorf("DataDir = %s, want value from .env", cfg.DataDir)
	}
	if cfg.Upscale != 5 {
		t.Errorf("Upscale = %d, want environment to win over .env", cfg.Upscale)
	}
}

func TestLoad_NoDotEnv(t *testing.T) {
	wd, err := os.Getwd()
	if err != nil {
		t.Fatalf("Getwd failed: %v", err)
	}
	if err := os.Chdir(t.TempDir()); err != nil {
		t.Fatalf("Chdir failed: %v", err)
	}
	defer os.Chdir(wd)

	if _, err := Load(context.Background()); err != nil {
		t.Errorf("missing .env should not be an error: %v", err)
	}
}
