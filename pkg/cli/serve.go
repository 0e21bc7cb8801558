package cli

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"

	"github.com/m-mizutani/dirhook/pkg/cli/config"
	controller "github.com/m-mizutani/dirhook/pkg/controller/http"
	"github.com/m-mizutani/dirhook/pkg/domain/interfaces"
	"github.com/m-mizutani/dirhook/pkg/infra/fs"
	"github.com/m-mizutani/dirhook/pkg/infra/memory"
	"github.com/m-mizutani/dirhook/pkg/infra/script"
	"github.com/m-mizutani/dirhook/pkg/usecase"
	"github.com/m-mizutani/dirhook/pkg/utils/async"
	"github.com/m-mizutani/dirhook/pkg/utils/ctxlog"
)

func cmdServe() *cli.Command {
	var (
		serverCfg  config.Server
		projectCfg config.Project
		githubCfg  config.GitHub
		syncCfg    config.Sync
		sentryCfg  config.Sentry
	)

	var flags []cli.Flag
	flags = append(flags, serverCfg.Flags()...)
	flags = append(flags, projectCfg.Flags()...)
	flags = append(flags, githubCfg.Flags()...)
	flags = append(flags, syncCfg.Flags()...)
	flags = append(flags, sentryCfg.Flags()...)

	return &cli.Command{
		Name:    "serve",
		Aliases: []string{"s"},
		Usage:   "Start HTTP server",
		Flags:   flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			logger := ctxlog.From(ctx)

			if err := loadProject(c, &projectCfg, &githubCfg, &syncCfg); err != nil {
				return goerr.Wrap(err, "invalid project configuration")
			}
			if err := githubCfg.Validate(); err != nil {
				return goerr.Wrap(err, "invalid GitHub configuration")
			}
			if err := syncCfg.Validate(); err != nil {
				return goerr.Wrap(err, "invalid sync configuration")
			}

			flush, err := sentryCfg.Configure()
			if err != nil {
				return err
			}
			defer flush()

			logger.Info("Starting dirhook server",
				slog.String("addr", serverCfg.Addr),
				slog.Any("project", projectCfg),
				slog.Any("github", githubCfg),
				slog.Any("sync", syncCfg),
				slog.Any("sentry", sentryCfg),
			)

			walker, err := fs.NewWalker(projectCfg.RootDir, projectCfg.Exclusions)
			if err != nil {
				return err
			}

			registry := memory.NewScanRegistry(memory.WithTTL(syncCfg.ScanTTL))

			var runner interfaces.SyncRunner
			if syncCfg.Script != "" {
				runner = script.NewRunner(syncCfg.Script,
					script.WithTimeout(syncCfg.Timeout),
					script.WithWorkingDir(projectCfg.RootDir),
				)
			}

			// Create use cases
			webhookUC := usecase.NewWebhook(githubCfg.Branch, runner,
				usecase.WithSyncDispatcher(async.NewPool(syncCfg.Workers)),
			)
			structureUC := usecase.NewStructure(walker)
			scanUC := usecase.NewScan(walker, registry)

			// Create HTTP server with options
			server, err := controller.NewServer(
				ctx,
				webhookUC,
				structureUC,
				scanUC,
				controller.WithAddr(serverCfg.Addr),
				controller.WithWebhookSecret(githubCfg.WebhookSecret),
				controller.WithProjectName(walker.ProjectName()),
			)
			if err != nil {
				return goerr.Wrap(err, "failed to create HTTP server")
			}

			// Start server in goroutine
			errCh := make(chan error, 1)
			go func() {
				logger.Info("HTTP server starting",
					slog.String("addr", serverCfg.Addr),
					slog.String("project", walker.ProjectName()),
				)
				if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					errCh <- goerr.Wrap(err, "HTTP server error", goerr.V("addr", serverCfg.Addr))
				}
			}()

			// Wait for interrupt signal
			sigChan := make(chan os.Signal, 1)
			signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
			defer signal.Stop(sigChan)

			select {
			case <-ctx.Done():
				logger.Info("Context cancelled, shutting down...")
			case sig := <-sigChan:
				logger.Info("Signal received, shutting down...", slog.Any("signal", sig))
			case err := <-errCh:
				return err
			}

			// Graceful shutdown
			shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 10*time.Second)
			defer cancel()

			if err := server.Shutdown(shutdownCtx); err != nil {
				return goerr.Wrap(err, "failed to shutdown server gracefully")
			}

			logger.Info("Server shutdown complete")
			return nil
		},
	}
}
