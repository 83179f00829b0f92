package mocks

import (
	"context"

	"github.com/user/heatgrid/pkg/ports"
)

// Snapshotter is a mock implementation of ports.Snapshotter.
type Snapshotter struct {
	SnapshotFunc func(ctx context.Context, url string, width, height int) ([]byte, error)
}

func (m *Snapshotter) Snapshot(ctx context.Context, url string, width, height int) ([]byte, error) {
	if m.SnapshotFunc != nil {
		return m.SnapshotFunc(ctx, url, width, height)
	}
	return []byte{}, nil
}

var _ ports.Snapshotter = (*Snapshotter)(nil)
