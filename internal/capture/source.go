package capture

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/ironsheep/buoy-capture/internal/panel"
)

// ErrUnknownSource is returned for a source id that is not in the table.
var ErrUnknownSource = errors.New("unknown buoy source")

// Dataset selects which panel of a buoy is captured.
type Dataset int

const (
	Wind Dataset = iota
	Wave
)

// String returns "wind" or "wave".
func (d Dataset) String() string {
	if d == Wave {
		return "wave"
	}
	return "wind"
}

// Layout returns the panel layout of the dataset.
func (d Dataset) Layout() panel.Layout {
	if d == Wave {
		return panel.WaveLayout()
	}
	return panel.WindLayout()
}

// Source is one buoy and the image names of its panels.
type Source struct {
	ID        string
	Name      string
	WindImage string
	WaveImage string
}

// ImageURL returns the panel image URL of the dataset under baseURL.
func (s Source) ImageURL(baseURL string, d Dataset) string {
	img := s.WindImage
	if d == Wave {
		img = s.WaveImage
	}
	return strings.TrimRight(baseURL, "/") + "/" + img
}

// DefaultSource is captured when no source is named.
const DefaultSource = "exrx"

var sources = map[string]Source{
	"exrx": {ID: "exrx", Name: "Execution Rocks", WindImage: "exrx_wxSens2.png", WaveImage: "exrx_wavs.png"},
	"wlis": {ID: "wlis", Name: "Western Long Island Sound", WindImage: "wlis_wxSens1.png", WaveImage: "wlis_wavs.png"},
	"clis": {ID: "clis", Name: "Central Long Island Sound", WindImage: "clis_wxSens1.png", WaveImage: "clis_wavs.png"},
}

// LookupSource finds a source by id.
func LookupSource(id string) (Source, error) {
	s, ok := sources[strings.ToLower(strings.TrimSpace(id))]
	if !ok {
		return Source{}, fmt.Errorf("%w: %q (choose from %s)", ErrUnknownSource, id, strings.Join(SourceIDs(), ", "))
	}
	return s, nil
}

// SourceIDs lists the known source ids in sorted order.
func SourceIDs() []string {
	ids := make([]string, 0, len(sources))
	for id := range sources {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
