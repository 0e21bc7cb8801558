package cli

import (
	"context"
	"log/slog"

	"github.com/urfave/cli/v3"

	"github.com/m-mizutani/dirhook/pkg/cli/config"
	"github.com/m-mizutani/dirhook/pkg/domain/types"
	"github.com/m-mizutani/dirhook/pkg/utils/ctxlog"
)

// Run runs the CLI application
func Run(ctx context.Context, args []string) error {
	var loggerCfg config.Logger
	var logger *slog.Logger

	app := &cli.Command{
		Name:    "dirhook",
		Usage:   "Serve a project directory over HTTP and resync it on GitHub push",
		Version: types.Version,
		Flags:   loggerCfg.Flags(),
		Before: func(ctx context.Context, c *cli.Command) (context.Context, error) {
			var err error
			logger, err = loggerCfg.Configure()
			if err != nil {
				return nil, err
			}

			slog.SetDefault(logger)
			ctx = ctxlog.With(ctx, logger)
			return ctx, nil
		},
		Commands: []*cli.Command{
			cmdServe(),
			cmdTree(),
		},
	}

	if err := app.Run(ctx, args); err != nil {
		if logger == nil {
			logger = slog.Default()
		}
		logger.Error("CLI execution failed", slog.Any("error", err))
		return err
	}

	return nil
}

// loadProject merges the optional config file into the flag values and
// validates the result
func loadProject(c *cli.Command, project *config.Project, gh *config.GitHub, sync *config.Sync) error {
	if project.ConfigFile != "" {
		file, err := config.LoadFile(project.ConfigFile)
		if err != nil {
			return err
		}
		file.Apply(c.IsSet, project, gh, sync)
	}

	return project.Validate()
}
