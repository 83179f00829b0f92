package ports

import (
	"context"

	"github.com/user/heatgrid/pkg/timegrid"
)

// DatasetLoader supplies one dataset per entity/metric pair.
type DatasetLoader interface {
	// LoadOne loads the dataset for a single entity.
	LoadOne(ctx context.Context, entityID, metric string) (*timegrid.Dataset, error)

	// LoadMany loads datasets for several entities. Entities that fail
	// to load are omitted from the result map rather than failing the
	// whole call; callers diff the requested list against the map keys
	// to detect partial failure.
	LoadMany(ctx context.Context, entityIDs []string, metric string) (map[string]*timegrid.Dataset, error)
}
