package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	_ "github.com/joho/godotenv/autoload"
	"github.com/urfave/cli/v3"

	"github.com/aayoawoyemi/Ori-Mnemos/internal"
	"github.com/aayoawoyemi/Ori-Mnemos/internal/engine"
	pkgconfig "github.com/aayoawoyemi/Ori-Mnemos/pkg/config"
)

func loadConfig(cmd *cli.Command) (*internal.Config, error) {
	cfg := internal.NewDefaultConfig()
	path := cmd.String("config")
	if path == "" {
		return cfg, nil
	}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil
	}
	if err := pkgconfig.Load(path, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	return cfg, nil
}

func runAction(ctx context.Context, cmd *cli.Command, action internal.Action) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	return internal.Run(ctx, internal.WithConfig(cfg), internal.WithAction(action))
}

func main() {
	configFlag := &cli.StringFlag{
		Name:        "config",
		Aliases:     []string{"c"},
		Usage:       "path to config file",
		DefaultText: "config/config.yaml",
		Value:       "config/config.yaml",
		Sources:     cli.EnvVars("ORI_CONFIG_FILE"),
	}
	limitFlag := &cli.IntFlag{
		Name:    "limit",
		Aliases: []string{"n"},
		Usage:   "maximum number of results",
	}

	cmd := &cli.Command{
		Name:  "ori",
		Usage: "Local, file-backed memory and retrieval engine for autonomous agents",
		Commands: []*cli.Command{
			{
				Name:  "query",
				Usage: "run the full ranked retrieval pipeline for a query",
				Flags: []cli.Flag{configFlag, limitFlag},
				Action: func(ctx context.Context, cmd *cli.Command) error {
					query := cmd.Args().First()
					limit := int(cmd.Int("limit"))
					return runAction(ctx, cmd, func(ctx context.Context, e *engine.Engine) (any, error) {
						return e.QueryRanked(ctx, query, limit)
					})
				},
			},
			{
				Name:  "similar",
				Usage: "run the composite similarity signal alone",
				Flags: []cli.Flag{configFlag, limitFlag},
				Action: func(ctx context.Context, cmd *cli.Command) error {
					query := cmd.Args().First()
					limit := int(cmd.Int("limit"))
					return runAction(ctx, cmd, func(ctx context.Context, e *engine.Engine) (any, error) {
						return e.QuerySimilar(ctx, query, limit)
					})
				},
			},
			{
				Name:  "important",
				Usage: "rank notes by graph authority",
				Flags: []cli.Flag{configFlag, limitFlag},
				Action: func(ctx context.Context, cmd *cli.Command) error {
					limit := int(cmd.Int("limit"))
					return runAction(ctx, cmd, func(ctx context.Context, e *engine.Engine) (any, error) {
						return e.QueryImportant(limit)
					})
				},
			},
			{
				Name:  "fading",
				Usage: "list notes below a vitality threshold",
				Flags: []cli.Flag{
					configFlag, limitFlag,
					&cli.FloatFlag{Name: "threshold", Usage: "vitality threshold", Value: 0.3},
				},
				Action: func(ctx context.Context, cmd *cli.Command) error {
					limit := int(cmd.Int("limit"))
					threshold := cmd.Float("threshold")
					return runAction(ctx, cmd, func(ctx context.Context, e *engine.Engine) (any, error) {
						return e.QueryFading(threshold, limit)
					})
				},
			},
			{
				Name:  "orphans",
				Usage: "list notes with no incoming links",
				Flags: []cli.Flag{configFlag},
				Action: func(ctx context.Context, cmd *cli.Command) error {
					return runAction(ctx, cmd, func(ctx context.Context, e *engine.Engine) (any, error) {
						return e.QueryOrphans()
					})
				},
			},
			{
				Name:  "dangling",
				Usage: "list link targets that name no existing note",
				Flags: []cli.Flag{configFlag},
				Action: func(ctx context.Context, cmd *cli.Command) error {
					return runAction(ctx, cmd, func(ctx context.Context, e *engine.Engine) (any, error) {
						return e.QueryDangling()
					})
				},
			},
			{
				Name:  "backlinks",
				Usage: "list the notes linking to a title",
				Flags: []cli.Flag{configFlag},
				Action: func(ctx context.Context, cmd *cli.Command) error {
					title := cmd.Args().First()
					return runAction(ctx, cmd, func(ctx context.Context, e *engine.Engine) (any, error) {
						return e.QueryBacklinks(title)
					})
				},
			},
			{
				Name:  "cross-project",
				Usage: "list notes that bridge more than one project",
				Flags: []cli.Flag{configFlag},
				Action: func(ctx context.Context, cmd *cli.Command) error {
					return runAction(ctx, cmd, func(ctx context.Context, e *engine.Engine) (any, error) {
						return e.QueryCrossProject()
					})
				},
			},
			{
				Name:  "index",
				Usage: "run one embedding build pass",
				Flags: []cli.Flag{
					configFlag,
					&cli.BoolFlag{Name: "force", Usage: "recompute every note regardless of content hash"},
				},
				Action: func(ctx context.Context, cmd *cli.Command) error {
					force := cmd.Bool("force")
					return runAction(ctx, cmd, func(ctx context.Context, e *engine.Engine) (any, error) {
						return e.IndexBuild(ctx, force)
					})
				},
			},
			{
				Name:  "graph",
				Usage: "report link-graph metrics and communities",
				Flags: []cli.Flag{configFlag},
				Commands: []*cli.Command{
					{
						Name:  "metrics",
						Usage: "corpus-wide link graph statistics",
						Flags: []cli.Flag{configFlag},
						Action: func(ctx context.Context, cmd *cli.Command) error {
							return runAction(ctx, cmd, func(ctx context.Context, e *engine.Engine) (any, error) {
								return e.GraphMetrics()
							})
						},
					},
					{
						Name:  "communities",
						Usage: "detected communities and their members",
						Flags: []cli.Flag{configFlag},
						Action: func(ctx context.Context, cmd *cli.Command) error {
							return runAction(ctx, cmd, func(ctx context.Context, e *engine.Engine) (any, error) {
								return e.GraphCommunities()
							})
						},
					},
				},
			},
		},
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		slog.Error("application error", slog.String("error", err.Error()))
		os.Exit(1)
	}
}
