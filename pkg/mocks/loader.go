// Package mocks provides hand-written fakes for the port interfaces.
package mocks

import (
	"context"

	"github.com/user/heatgrid/pkg/ports"
	"github.com/user/heatgrid/pkg/timegrid"
)

// Loader is a mock implementation of ports.DatasetLoader.
type Loader struct {
	LoadOneFunc  func(ctx context.Context, entityID, metric string) (*timegrid.Dataset, error)
	LoadManyFunc func(ctx context.Context, entityIDs []string, metric string) (map[string]*timegrid.Dataset, error)
}

func (m *Loader) LoadOne(ctx context.Context, entityID, metric string) (*timegrid.Dataset, error) {
	if m.LoadOneFunc != nil {
		return m.LoadOneFunc(ctx, entityID, metric)
	}
	return &timegrid.Dataset{EntityID: entityID, MetricID: metric}, nil
}

func (m *Loader) LoadMany(ctx context.Context, entityIDs []string, metric string) (map[string]*timegrid.Dataset, error) {
	if m.LoadManyFunc != nil {
		return m.LoadManyFunc(ctx, entityIDs, metric)
	}
	out := make(map[string]*timegrid.Dataset, len(entityIDs))
	for _, id := range entityIDs {
		ds, err := m.LoadOne(ctx, id, metric)
		if err != nil {
			continue
		}
		out[id] = ds
	}
	return out, nil
}

var _ ports.DatasetLoader = (*Loader)(nil)
