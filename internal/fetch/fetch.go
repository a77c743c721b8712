// Package fetch downloads buoy panel images to a local staging path.
package fetch

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/ironsheep/buoy-capture/internal/logger"
)

// DefaultTimeout bounds one image download.
const DefaultTimeout = 30 * time.Second

// ErrBadStatus is returned when the server answers with anything but 200.
var ErrBadStatus = errors.New("unexpected HTTP status")

// Fetcher downloads images. Failures are returned to the caller; nothing is
// retried.
type Fetcher struct {
	client *resty.Client
	buster func() int
	log    *logger.Logger
}

// New creates a fetcher with its own HTTP client.
func New(timeout time.Duration, log *logger.Logger) *Fetcher {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	client := resty.New()
	client.SetTimeout(timeout)
	return NewWithClient(client, log)
}

// NewWithClient creates a fetcher around an existing client.
func NewWithClient(client *resty.Client, log *logger.Logger) *Fetcher {
	if log == nil {
		log = logger.Discard()
	}
	return &Fetcher{
		client: client,
		buster: func() int { return rand.Intn(1000) },
		log:    log,
	}
}

// Fetch downloads url and writes the body to dest, creating its directory.
// A random query string keeps intermediate caches from serving a stale panel.
func (f *Fetcher) Fetch(ctx context.Context, url, dest string) error {
	busted := fmt.Sprintf("%s?%d", url, f.buster())
	f.log.Debug("fetching image", logger.Fields{"url": busted})

	resp, err := f.client.R().
		SetContext(ctx).
		Get(busted)
	if err != nil {
		return fmt.Errorf("failed to fetch %s: %w", url, err)
	}
	if resp.StatusCode() != http.StatusOK {
		return fmt.Errorf("%w: %s returned %d", ErrBadStatus, url, resp.StatusCode())
	}

	if err := os.MkdirAll(filepath.Dir(dest), 0755); err != nil {
		return fmt.Errorf("failed to create staging directory: %w", err)
	}
	if err := os.WriteFile(dest, resp.Body(), 0644); err != nil {
		return fmt.Errorf("failed to write image: %w", err)
	}

	f.log.Debug("image saved", logger.Fields{"path": dest, "bytes": len(resp.Body())})
	return nil
}
