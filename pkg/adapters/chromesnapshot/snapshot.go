// Package chromesnapshot captures exported HTML charts as PNG images
// using a headless Chrome instance.
package chromesnapshot

import (
	"context"
	"fmt"
	"time"

	"github.com/chromedp/cdproto/emulation"
	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"

	"github.com/user/heatgrid/pkg/ports"
)

// Snapshotter implements ports.Snapshotter with chromedp.
type Snapshotter struct {
	log ports.Logger
	// SettleDelay is how long to wait after navigation for chart
	// scripts to finish drawing.
	SettleDelay time.Duration
}

// New creates a snapshotter.
func New(log ports.Logger) *Snapshotter {
	return &Snapshotter{log: log.WithComponent("snapshot"), SettleDelay: 500 * time.Millisecond}
}

// Snapshot loads the URL at the given viewport size and returns PNG bytes.
func (s *Snapshotter) Snapshot(ctx context.Context, url string, width, height int) ([]byte, error) {
	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", "new"),
		chromedp.Flag("no-sandbox", true),
		chromedp.Flag("disable-dev-shm-usage", true),
		chromedp.Flag("hide-scrollbars", true),
		chromedp.Flag("mute-audio", true),
	)

	allocCtx, allocCancel := chromedp.NewExecAllocator(ctx, opts...)
	defer allocCancel()

	browserCtx, cancel := chromedp.NewContext(allocCtx)
	defer cancel()

	var buf []byte
	err := chromedp.Run(browserCtx,
		chromedp.ActionFunc(func(ctx context.Context) error {
			return emulation.SetDeviceMetricsOverride(int64(width), int64(height), 1, false).Do(ctx)
		}),
		chromedp.Navigate(url),
		chromedp.Sleep(s.SettleDelay),
		chromedp.ActionFunc(func(ctx context.Context) error {
			var err error
			buf, err = page.CaptureScreenshot().
				WithFormat(page.CaptureScreenshotFormatPng).
				Do(ctx)
			return err
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("capture snapshot of %s: %w", url, err)
	}

	s.log.Debug("Snapshot captured: %d bytes", len(buf))
	return buf, nil
}

var _ ports.Snapshotter = (*Snapshotter)(nil)
