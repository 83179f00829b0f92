// Package main provides the CLI entry point for heatgrid.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/ideamans/go-l10n"
	"github.com/urfave/cli/v2"

	"github.com/user/heatgrid/pkg/adapters/chromesnapshot"
	"github.com/user/heatgrid/pkg/adapters/ggrenderer"
	"github.com/user/heatgrid/pkg/adapters/jsonloader"
	"github.com/user/heatgrid/pkg/adapters/logger"
	"github.com/user/heatgrid/pkg/adapters/osfilesystem"
	"github.com/user/heatgrid/pkg/compare"
	"github.com/user/heatgrid/pkg/config"
	"github.com/user/heatgrid/pkg/orchestrator"
	"github.com/user/heatgrid/pkg/ports"
)

var version = "dev"

func main() {
	app := &cli.App{
		Name:    "heatgrid",
		Usage:   l10n.T("Render month-by-year heatmaps from exported datasets."),
		Version: version,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"C"},
				Usage:   l10n.T("Path to a YAML configuration file."),
			},
			&cli.StringFlag{
				Name:  "data-dir",
				Usage: l10n.T("Directory containing dataset JSON files."),
			},
			&cli.StringFlag{
				Name:    "metric",
				Aliases: []string{"m"},
				Usage:   l10n.T("Metric to render (births, daily_fertility_rate, ...)."),
			},
			&cli.StringFlag{
				Name:    "log-level",
				Aliases: []string{"l"},
				Value:   "info",
				Usage:   l10n.T("Log level (debug, info, warn, error)."),
			},
			&cli.BoolFlag{
				Name:    "quiet",
				Aliases: []string{"Q"},
				Usage:   l10n.T("Suppress all log output."),
			},
		},
		Commands: []*cli.Command{
			renderCommand(),
			compareCommand(),
			exportCommand(),
			zonesCommand(),
			versionCommand(),
		},
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		fmt.Fprintln(os.Stderr, l10n.T("Interrupted, shutting down..."))
		cancel()
	}()

	if err := app.RunContext(ctx, os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func renderCommand() *cli.Command {
	return &cli.Command{
		Name:      "render",
		Usage:     l10n.T("Render one entity's heatmap as a PNG file."),
		ArgsUsage: "<entity>",
		Flags: append(windowFlags(),
			&cli.StringFlag{
				Name:    "output",
				Aliases: []string{"o"},
				Value:   "heatmap.png",
				Usage:   l10n.T("Output PNG file path."),
			},
			&cli.StringFlag{
				Name:  "thumbnail",
				Usage: l10n.T("Also write a quarter-size preview PNG at this path."),
			},
		),
		Action: func(c *cli.Context) error {
			entity, err := singleEntity(c)
			if err != nil {
				return err
			}
			orch, _, err := buildOrchestrator(c)
			if err != nil {
				return err
			}
			return orch.RenderOne(c.Context, entity, window(c), c.String("output"), c.String("thumbnail"))
		},
	}
}

func compareCommand() *cli.Command {
	return &cli.Command{
		Name:      "compare",
		Usage:     l10n.T("Render several entities stacked for comparison."),
		ArgsUsage: "<entity> <entity> [entity...]",
		Flags: append(windowFlags(),
			&cli.StringFlag{
				Name:    "output",
				Aliases: []string{"o"},
				Value:   "compare.png",
				Usage:   l10n.T("Output PNG file path."),
			},
			&cli.StringFlag{
				Name:    "scale",
				Aliases: []string{"s"},
				Value:   string(orchestrator.ScaleUnified),
				Usage:   l10n.T("Color scale mode (unified or per-entity)."),
			},
		),
		Action: func(c *cli.Context) error {
			entities := c.Args().Slice()
			if len(entities) < 2 {
				return cli.Exit(l10n.T("compare needs at least two entities"), 2)
			}
			orch, _, err := buildOrchestrator(c)
			if err != nil {
				return err
			}
			mode := orchestrator.ParseScaleMode(c.String("scale"))
			return orch.Compare(c.Context, entities, mode, window(c), c.String("output"))
		},
	}
}

func exportCommand() *cli.Command {
	return &cli.Command{
		Name:      "export",
		Usage:     l10n.T("Export one entity's heatmap as an interactive HTML chart."),
		ArgsUsage: "<entity>",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "output",
				Aliases: []string{"o"},
				Value:   "heatmap.html",
				Usage:   l10n.T("Output HTML file path."),
			},
			&cli.StringFlag{
				Name:  "snapshot",
				Usage: l10n.T("Also capture the chart as a PNG at this path."),
			},
		},
		Action: func(c *cli.Context) error {
			entity, err := singleEntity(c)
			if err != nil {
				return err
			}
			orch, log, err := buildOrchestrator(c)
			if err != nil {
				return err
			}
			var snap ports.Snapshotter
			if c.String("snapshot") != "" {
				snap = chromesnapshot.New(log)
			}
			return orch.ExportHTML(c.Context, entity, c.String("output"), snap, c.String("snapshot"))
		},
	}
}

func zonesCommand() *cli.Command {
	return &cli.Command{
		Name:      "zones",
		Usage:     l10n.T("Print the data-availability zones for one entity."),
		ArgsUsage: "<entity>",
		Action: func(c *cli.Context) error {
			entity, err := singleEntity(c)
			if err != nil {
				return err
			}
			orch, _, err := buildOrchestrator(c)
			if err != nil {
				return err
			}
			zs, err := orch.Zones(c.Context, entity)
			if err != nil {
				return err
			}
			for _, z := range zs {
				state := l10n.T("no data")
				if z.HasData {
					state = l10n.T("data")
				}
				fmt.Printf("%d-%d\t%s\n", z.Start, z.End, state)
			}
			return nil
		},
	}
}

func versionCommand() *cli.Command {
	return &cli.Command{
		Name:  "version",
		Usage: l10n.T("Show version information."),
		Action: func(c *cli.Context) error {
			fmt.Println(l10n.F("heatgrid version %s", version))
			return nil
		},
	}
}

func windowFlags() []cli.Flag {
	return []cli.Flag{
		&cli.IntFlag{
			Name:  "from",
			Usage: l10n.T("First year of the window (default: full span)."),
		},
		&cli.IntFlag{
			Name:  "to",
			Usage: l10n.T("Last year of the window (default: full span)."),
		},
	}
}

// window builds the optional year window from --from/--to. Both unset
// means the full span.
func window(c *cli.Context) *compare.YearRange {
	from, to := c.Int("from"), c.Int("to")
	if from == 0 && to == 0 {
		return nil
	}
	if from == 0 {
		from = to
	}
	if to == 0 {
		to = from
	}
	return &compare.YearRange{Start: from, End: to}
}

func singleEntity(c *cli.Context) (string, error) {
	if c.Args().Len() != 1 {
		return "", cli.Exit(l10n.T("exactly one entity is required"), 2)
	}
	return c.Args().First(), nil
}

// buildOrchestrator assembles the adapters and configuration shared by
// every command.
func buildOrchestrator(c *cli.Context) (*orchestrator.Orchestrator, ports.Logger, error) {
	cfg := config.Defaults()
	if path := c.String("config"); path != "" {
		loaded, err := config.LoadFromFile(path)
		if err != nil {
			return nil, nil, fmt.Errorf("load config %s: %w", path, err)
		}
		cfg = loaded
	}
	if dir := c.String("data-dir"); dir != "" {
		cfg.DataDir = dir
	}
	if metric := c.String("metric"); metric != "" {
		cfg.Metric = metric
	}

	var log ports.Logger
	if c.Bool("quiet") {
		log = logger.NewNoop()
	} else {
		log = logger.NewConsole(ports.ParseLogLevel(c.String("log-level")))
	}

	fs := osfilesystem.New()
	loader := jsonloader.New(fs, cfg.DataDir, log)
	renderer := ggrenderer.New()

	return orchestrator.New(loader, renderer, fs, log, cfg), log, nil
}
