// Package jsonloader loads per-entity datasets from JSON files
// produced by the data pipeline.
package jsonloader

import (
	"context"
	"encoding/json"
	"fmt"
	"path/filepath"
	"regexp"
	"strings"

	"golang.org/x/text/unicode/norm"

	"github.com/user/heatgrid/pkg/colorscale"
	"github.com/user/heatgrid/pkg/ports"
	"github.com/user/heatgrid/pkg/timegrid"
)

// fileDataset mirrors the JSON layout of one exported dataset file.
type fileDataset struct {
	Entity     string     `json:"entity"`
	Metric     string     `json:"metric"`
	Years      []int      `json:"years"`
	Data       []fileCell `json:"data"`
	ColorScale struct {
		Domain []float64 `json:"domain"`
	} `json:"colorScale"`
}

type fileCell struct {
	Year       int      `json:"year"`
	Month      int      `json:"month"`
	Value      *float64 `json:"value"`
	Births     *float64 `json:"births,omitempty"`
	Population *float64 `json:"population,omitempty"`
	Source     string   `json:"source"`
}

// Loader implements ports.DatasetLoader over a directory of JSON
// files named <entity>__<metric>.json.
type Loader struct {
	fs  ports.FileSystem
	dir string
	log ports.Logger
}

// New creates a loader rooted at dir.
func New(fs ports.FileSystem, dir string, log ports.Logger) *Loader {
	return &Loader{fs: fs, dir: dir, log: log.WithComponent("loader")}
}

// LoadOne loads the dataset for a single entity.
func (l *Loader) LoadOne(ctx context.Context, entityID, metric string) (*timegrid.Dataset, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	path := filepath.Join(l.dir, fmt.Sprintf("%s__%s.json", NormalizeEntityID(entityID), metric))
	l.log.Debug("Reading %s", path)

	raw, err := l.fs.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read dataset %s: %w", path, err)
	}

	var file fileDataset
	if err := json.Unmarshal(raw, &file); err != nil {
		return nil, fmt.Errorf("parse dataset %s: %w", path, err)
	}

	cells := make([]timegrid.Cell, len(file.Data))
	for i, c := range file.Data {
		if c.Month < 1 || c.Month > timegrid.MonthsPerYear {
			return nil, fmt.Errorf("dataset %s: cell %d has month %d", path, i, c.Month)
		}
		cells[i] = timegrid.Cell{
			Year:       c.Year,
			Month:      c.Month,
			Value:      c.Value,
			Births:     c.Births,
			Population: c.Population,
			Source:     c.Source,
		}
	}

	ds := &timegrid.Dataset{
		EntityID: entityID,
		MetricID: metric,
		Years:    timegrid.YearsOf(cells),
		Cells:    cells,
	}

	family := colorscale.DefaultFamily(metric)
	if len(file.ColorScale.Domain) >= 2 {
		ds.Scale = timegrid.ScaleSpec{
			Domain: colorscale.WorkingDomain(file.ColorScale.Domain[0], file.ColorScale.Domain[len(file.ColorScale.Domain)-1]),
			Family: family,
			Metric: metric,
		}
	} else {
		ds.Scale = colorscale.SpecFor(ds, family)
	}

	if err := ds.Validate(); err != nil {
		return nil, fmt.Errorf("dataset %s: %w", path, err)
	}
	return ds, nil
}

// LoadMany loads datasets for several entities. Entities that fail to
// load are omitted from the result map; callers diff the requested
// list against the map keys to detect partial failure.
func (l *Loader) LoadMany(ctx context.Context, entityIDs []string, metric string) (map[string]*timegrid.Dataset, error) {
	out := make(map[string]*timegrid.Dataset, len(entityIDs))
	for _, id := range entityIDs {
		if err := ctx.Err(); err != nil {
			return out, err
		}
		ds, err := l.LoadOne(ctx, id, metric)
		if err != nil {
			l.log.Warn("Entity %s failed to load: %v", id, err)
			continue
		}
		out[id] = ds
	}
	return out, nil
}

var nonLetter = regexp.MustCompile(`[^a-zA-Z\s]`)

// NormalizeEntityID converts an entity name to its file-name form:
// diacritics and non-letter characters are removed, spaces become
// hyphens.
func NormalizeEntityID(name string) string {
	name = norm.NFC.String(name)
	name = nonLetter.ReplaceAllString(name, "")
	return strings.ReplaceAll(name, " ", "-")
}

var _ ports.DatasetLoader = (*Loader)(nil)
