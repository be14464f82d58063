package cli

import (
	"context"
	"log/slog"
	"time"

	githubadapter "github.com/ericfisherdev/reviewsync/internal/adapter/driven/github"
	sqliteadapter "github.com/ericfisherdev/reviewsync/internal/adapter/driven/sqlite"
	"github.com/ericfisherdev/reviewsync/internal/application"
	"github.com/ericfisherdev/reviewsync/internal/config"
	"github.com/ericfisherdev/reviewsync/internal/domain/port/driven"
)

// runSync wires the adapters and runs the sync: a single pass by default, or
// a ticker loop when REVIEWSYNC_SYNC_INTERVAL is set (unless --once).
func runSync(ctx context.Context, opts *Options) error {
	cfg, err := config.Load(opts.EnvFile)
	if err != nil {
		return err
	}
	slog.Info("config loaded",
		"source_repo", cfg.SourceRepo,
		"target_repo", cfg.TargetRepo,
		"base_branch", cfg.BaseBranch,
		"pr_author", cfg.PRAuthor,
		"bot_login", cfg.BotLogin,
		"dry_run", opts.DryRun,
	)

	client := githubadapter.NewClient(cfg.GitHubToken)

	var journal driven.JournalStore
	if cfg.DBPath != "" {
		db, err := sqliteadapter.NewDB(cfg.DBPath)
		if err != nil {
			return err
		}
		defer func() {
			if closeErr := db.Close(); closeErr != nil {
				slog.Error("error closing journal database", "error", closeErr)
			}
		}()
		if err := sqliteadapter.RunMigrations(db.Writer); err != nil {
			return err
		}
		journal = sqliteadapter.NewJournalRepo(db)
		slog.Info("journal opened", "path", cfg.DBPath)
	}

	poster := application.NewPoster(client, cfg.MaxAttempts, cfg.RetryBackoff)
	svc := application.NewSyncService(client, client, journal, poster, application.SyncOptions{
		SourceRepo:    cfg.SourceRepo,
		TargetRepo:    cfg.TargetRepo,
		BaseBranch:    cfg.BaseBranch,
		PRAuthor:      cfg.PRAuthor,
		BotLogin:      cfg.BotLogin,
		SummaryMarker: cfg.SummaryMarker,
		FooterMarker:  cfg.FooterMarker,
		PostPace:      cfg.PostPace,
		DryRun:        opts.DryRun,
	})

	if cfg.SyncInterval <= 0 || opts.Once {
		_, err := svc.Run(ctx)
		return err
	}

	if _, err := svc.Run(ctx); err != nil {
		slog.Error("sync pass failed", "error", err)
	}

	ticker := time.NewTicker(cfg.SyncInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			slog.Info("sync loop stopped")
			return nil
		case <-ticker.C:
			if _, err := svc.Run(ctx); err != nil {
				slog.Error("sync pass failed", "error", err)
			}
		}
	}
}
