// Package orchestrator coordinates the full heatmap flows: loading
// datasets, aligning them for comparison, mounting interactive grids
// on a surface, and writing static PNG and HTML exports.
package orchestrator

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	"path/filepath"

	"github.com/user/heatgrid/pkg/colorscale"
	"github.com/user/heatgrid/pkg/compare"
	"github.com/user/heatgrid/pkg/config"
	"github.com/user/heatgrid/pkg/export"
	"github.com/user/heatgrid/pkg/grid"
	"github.com/user/heatgrid/pkg/hoverstore"
	"github.com/user/heatgrid/pkg/ports"
	"github.com/user/heatgrid/pkg/timegrid"
	"github.com/user/heatgrid/pkg/zones"
)

// ErrSuperseded is returned when a load completed after a newer
// request had already started. The stale result is discarded instead
// of overwriting the newer state.
var ErrSuperseded = errors.New("request superseded by a newer one")

// ErrNoDatasets is returned when none of the requested entities could
// be loaded.
var ErrNoDatasets = errors.New("no datasets could be loaded")

// ScaleMode selects how comparison datasets share a color domain.
type ScaleMode string

const (
	// ScaleUnified maps every dataset through one shared domain, the
	// exact min/max across all of them.
	ScaleUnified ScaleMode = "unified"
	// ScalePerEntity keeps each dataset's own domain.
	ScalePerEntity ScaleMode = "per-entity"
)

// ParseScaleMode parses a string into a ScaleMode, defaulting to
// unified for unknown input.
func ParseScaleMode(s string) ScaleMode {
	if s == string(ScalePerEntity) {
		return ScalePerEntity
	}
	return ScaleUnified
}

const compareLabelHeight = 24

// Orchestrator wires the loader, renderer, and filesystem ports into
// the user-facing flows. All methods are single-threaded on the host
// loop; a monotonically increasing generation number marks each
// load-bearing call so that a result arriving after a newer call
// started is discarded.
type Orchestrator struct {
	loader   ports.DatasetLoader
	renderer ports.Renderer
	fs       ports.FileSystem
	log      ports.Logger
	cfg      config.Config

	gen int
}

// New creates an orchestrator over the given ports.
func New(loader ports.DatasetLoader, renderer ports.Renderer, fs ports.FileSystem, log ports.Logger, cfg config.Config) *Orchestrator {
	return &Orchestrator{
		loader:   loader,
		renderer: renderer,
		fs:       fs,
		log:      log.WithComponent("orchestrator"),
		cfg:      cfg,
	}
}

// beginRequest marks the start of a load-bearing call and returns its
// generation number.
func (o *Orchestrator) beginRequest() int {
	o.gen++
	return o.gen
}

// stale reports whether a newer request started after gen.
func (o *Orchestrator) stale(gen int) bool {
	return gen != o.gen
}

// RenderOne loads one entity and writes its heatmap as a PNG file.
// A nil window renders the dataset's full year span. When thumbPath is
// non-empty a quarter-size preview is written alongside.
func (o *Orchestrator) RenderOne(ctx context.Context, entityID string, window *compare.YearRange, outPath, thumbPath string) error {
	gen := o.beginRequest()

	d, err := o.loader.LoadOne(ctx, entityID, o.cfg.Metric)
	if err != nil {
		return fmt.Errorf("load %s: %w", entityID, err)
	}
	if o.stale(gen) {
		o.log.Debug("discarding stale load result for %s", entityID)
		return ErrSuperseded
	}

	aligned := o.alignOwn(d, window)
	img, err := export.RenderGrid(o.renderer, aligned, o.cfg.RasterOptions())
	if err != nil {
		return fmt.Errorf("render %s: %w", entityID, err)
	}
	if err := o.writePNG(img, outPath); err != nil {
		return err
	}
	o.log.Info("Heatmap saved to %s", outPath)

	if thumbPath != "" {
		b := img.Bounds()
		thumb := o.renderer.ResizeImage(img, b.Dx()/4, b.Dy()/4)
		if err := o.writePNG(thumb, thumbPath); err != nil {
			return err
		}
		o.log.Info("Thumbnail saved to %s", thumbPath)
	}
	return nil
}

// Compare loads several entities, aligns them to their union year
// window, and writes a vertically stacked comparison PNG. Entities
// that fail to load are skipped with a warning; the call fails only
// when none loads.
func (o *Orchestrator) Compare(ctx context.Context, entityIDs []string, mode ScaleMode, window *compare.YearRange, outPath string) error {
	gen := o.beginRequest()

	datasets, r, err := o.loadAligned(ctx, gen, entityIDs)
	if err != nil {
		return err
	}
	if window != nil {
		start, end := zones.ClampRange(window.Start, window.End)
		r = compare.YearRange{Start: start, End: end}
	}

	var override *timegrid.ScaleSpec
	if mode == ScaleUnified {
		spec := compare.UnifiedScale(datasets, r, o.familyFor(o.cfg.Metric), o.cfg.Metric)
		override = &spec
	}

	opts := o.cfg.RasterOptions()
	images := make([]image.Image, 0, len(datasets))
	height := 0
	for _, d := range datasets {
		img, err := export.RenderGrid(o.renderer, compare.Align(d, r, override), opts)
		if err != nil {
			return fmt.Errorf("render %s: %w", d.EntityID, err)
		}
		images = append(images, img)
		height += compareLabelHeight + img.Bounds().Dy()
	}

	canvas := o.renderer.CreateCanvas(opts.Width, height, opts.Background)
	style := ports.TextStyle{
		FontSize: opts.FontSize + 2,
		FontPath: opts.FontPath,
		Color:    opts.TextColor,
		Align:    ports.AlignLeft,
	}
	y := 0
	for i, d := range datasets {
		canvas.DrawText(d.EntityID, 8, float64(y)+compareLabelHeight/2, style)
		canvas.DrawImage(images[i], 0, y+compareLabelHeight)
		y += compareLabelHeight + images[i].Bounds().Dy()
	}

	if err := o.writePNG(canvas.ToImage(), outPath); err != nil {
		return err
	}
	o.log.Info("Comparison saved to %s (%d entities, %d-%d)", outPath, len(datasets), r.Start, r.End)
	return nil
}

// ExportHTML loads one entity and writes an interactive HTML chart.
// When snapshotPath is non-empty the page is also captured as a PNG
// through the snapshotter.
func (o *Orchestrator) ExportHTML(ctx context.Context, entityID, outPath string, snap ports.Snapshotter, snapshotPath string) error {
	gen := o.beginRequest()

	d, err := o.loader.LoadOne(ctx, entityID, o.cfg.Metric)
	if err != nil {
		return fmt.Errorf("load %s: %w", entityID, err)
	}
	if o.stale(gen) {
		o.log.Debug("discarding stale load result for %s", entityID)
		return ErrSuperseded
	}

	aligned := o.alignOwn(d, nil)
	var buf bytes.Buffer
	if err := export.WriteHTML(&buf, aligned, entityID); err != nil {
		return fmt.Errorf("build chart for %s: %w", entityID, err)
	}
	if err := o.fs.WriteFile(outPath, buf.Bytes()); err != nil {
		return fmt.Errorf("write %s: %w", outPath, err)
	}
	o.log.Info("Chart saved to %s", outPath)

	if snapshotPath == "" {
		return nil
	}
	if snap == nil {
		return errors.New("snapshot requested without a snapshotter")
	}
	abs, err := filepath.Abs(outPath)
	if err != nil {
		return fmt.Errorf("resolve %s: %w", outPath, err)
	}
	png, err := snap.Snapshot(ctx, "file://"+abs, o.cfg.Width, 560)
	if err != nil {
		return fmt.Errorf("capture %s: %w", outPath, err)
	}
	if err := o.fs.WriteFile(snapshotPath, png); err != nil {
		return fmt.Errorf("write %s: %w", snapshotPath, err)
	}
	o.log.Info("Snapshot saved to %s", snapshotPath)
	return nil
}

// Zones loads one entity and returns its year-range availability
// zones over the full span.
func (o *Orchestrator) Zones(ctx context.Context, entityID string) ([]timegrid.DataZone, error) {
	d, err := o.loader.LoadOne(ctx, entityID, o.cfg.Metric)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", entityID, err)
	}
	min, max, ok := d.YearRange()
	if !ok {
		return zones.Analyze(0, 0, nil), nil
	}
	return zones.Analyze(min, max, d.Years), nil
}

// View is a mounted interactive comparison: one grid per entity
// stacked on the surface, sharing a hover store and a legend
// indicator element.
type View struct {
	Store     *hoverstore.Store
	Indicator ports.Element

	orch         *Orchestrator
	grids        []*grid.Renderer
	data         []*timegrid.Aligned
	tooltipLayer ports.Element
	containers   []ports.Element
	unsubscribe  func()
	destroyed    bool
}

// Mount loads the requested entities and builds one interactive grid
// per dataset on the surface, stacked vertically. Hovering any cell
// publishes its value to the shared store, which drives the legend
// indicator element.
func (o *Orchestrator) Mount(ctx context.Context, surface ports.Surface, entityIDs []string, mode ScaleMode) (*View, error) {
	gen := o.beginRequest()

	datasets, r, err := o.loadAligned(ctx, gen, entityIDs)
	if err != nil {
		return nil, err
	}

	var override *timegrid.ScaleSpec
	if mode == ScaleUnified {
		spec := compare.UnifiedScale(datasets, r, o.familyFor(o.cfg.Metric), o.cfg.Metric)
		override = &spec
	}

	root := surface.Root()
	viewport := surface.Viewport()

	tooltipLayer := surface.CreateElement("tooltip-layer")
	tooltipLayer.SetBox(ports.Rect{Width: viewport.Width, Height: viewport.Height})
	root.AppendChild(tooltipLayer)

	indicator := surface.CreateElement("legend-indicator")
	indicator.SetAttr("hidden", "true")
	root.AppendChild(indicator)

	store := hoverstore.New()
	metric := o.cfg.Metric
	unsubscribe := store.Subscribe(func(v *float64) {
		if v == nil {
			indicator.SetAttr("hidden", "true")
			indicator.SetText("")
			return
		}
		indicator.RemoveAttr("hidden")
		indicator.SetText(colorscale.FormatValue(v, metric))
	})

	view := &View{
		Store:        store,
		Indicator:    indicator,
		orch:         o,
		tooltipLayer: tooltipLayer,
		unsubscribe:  unsubscribe,
	}

	panelHeight := viewport.Height / float64(len(datasets))
	gridCfg := o.cfg.GridConfig()
	for i, d := range datasets {
		container := surface.CreateElement("grid-container")
		container.SetBox(ports.Rect{
			Y:      float64(i) * panelHeight,
			Width:  viewport.Width,
			Height: panelHeight,
		})
		root.AppendChild(container)

		aligned := compare.Align(d, r, override)
		g, err := grid.New(surface, container, aligned, gridCfg, tooltipLayer, o.log, store.Set)
		if err != nil {
			view.Destroy()
			return nil, fmt.Errorf("mount grid for %s: %w", d.EntityID, err)
		}
		view.grids = append(view.grids, g)
		view.data = append(view.data, aligned)
		view.containers = append(view.containers, container)
	}

	// The tooltip layer stays above every grid panel.
	tooltipLayer.Raise()

	o.log.Info("Mounted %d grids for years %d-%d", len(view.grids), r.Start, r.End)
	return view, nil
}

// Grids returns the mounted grid renderers in entity order.
func (v *View) Grids() []*grid.Renderer {
	return v.grids
}

// SetWindow updates every grid to a new year window.
func (v *View) SetWindow(window compare.YearRange) {
	if v.destroyed {
		return
	}
	for i, g := range v.grids {
		g.Update(v.data[i], window)
	}
}

// Destroy tears down every grid and the shared elements. It is
// idempotent.
func (v *View) Destroy() {
	if v.destroyed {
		return
	}
	v.destroyed = true
	for _, g := range v.grids {
		g.Destroy()
	}
	v.unsubscribe()
	for _, container := range v.containers {
		container.Remove()
	}
	v.Indicator.Remove()
	v.tooltipLayer.Remove()
}

// loadAligned loads the requested entities, warns about the ones that
// failed, and returns the remainder in request order together with
// their union year window.
func (o *Orchestrator) loadAligned(ctx context.Context, gen int, entityIDs []string) ([]*timegrid.Dataset, compare.YearRange, error) {
	loaded, err := o.loader.LoadMany(ctx, entityIDs, o.cfg.Metric)
	if err != nil {
		return nil, compare.YearRange{}, fmt.Errorf("load datasets: %w", err)
	}
	if o.stale(gen) {
		o.log.Debug("discarding stale load result for %d entities", len(entityIDs))
		return nil, compare.YearRange{}, ErrSuperseded
	}

	datasets := make([]*timegrid.Dataset, 0, len(entityIDs))
	for _, id := range entityIDs {
		d, ok := loaded[id]
		if !ok {
			o.log.Warn("Entity %s could not be loaded, skipping", id)
			continue
		}
		datasets = append(datasets, d)
	}
	if len(datasets) == 0 {
		return nil, compare.YearRange{}, ErrNoDatasets
	}

	r, ok := compare.CommonYearRange(datasets)
	if !ok {
		// Every dataset is empty; align to a degenerate single-year
		// window so downstream code still has a valid range.
		r = compare.YearRange{Start: 0, End: 0}
	}
	return datasets, r, nil
}

// alignOwn aligns a dataset to the requested window, or to its own
// full span when no window is given.
func (o *Orchestrator) alignOwn(d *timegrid.Dataset, window *compare.YearRange) *timegrid.Aligned {
	if window != nil {
		start, end := zones.ClampRange(window.Start, window.End)
		return compare.Align(d, compare.YearRange{Start: start, End: end}, nil)
	}
	min, max, ok := d.YearRange()
	if !ok {
		return &timegrid.Aligned{Dataset: *d}
	}
	return compare.Align(d, compare.YearRange{Start: min, End: max}, nil)
}

// familyFor picks the palette family for a metric, diverging for the
// signed seasonality metrics.
func (o *Orchestrator) familyFor(metric string) timegrid.Family {
	return colorscale.DefaultFamily(metric)
}

func (o *Orchestrator) writePNG(img image.Image, outPath string) error {
	data, err := o.renderer.EncodePNG(img)
	if err != nil {
		return fmt.Errorf("encode PNG: %w", err)
	}
	if err := o.fs.WriteFile(outPath, data); err != nil {
		return fmt.Errorf("write %s: %w", outPath, err)
	}
	return nil
}
