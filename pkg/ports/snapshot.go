package ports

import "context"

// Snapshotter captures a rendered HTML document as a PNG image.
type Snapshotter interface {
	// Snapshot loads the URL (typically file://) at the given viewport
	// size and returns PNG bytes.
	Snapshot(ctx context.Context, url string, width, height int) ([]byte, error)
}
