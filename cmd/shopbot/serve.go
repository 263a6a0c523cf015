package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/robfig/cron/v3"
	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"

	"github.com/rshoplabs/shopbot/internal/catalog"
	"github.com/rshoplabs/shopbot/internal/channel/telegram"
	"github.com/rshoplabs/shopbot/internal/completion"
	"github.com/rshoplabs/shopbot/internal/config"
	"github.com/rshoplabs/shopbot/internal/db"
	"github.com/rshoplabs/shopbot/internal/executor"
	"github.com/rshoplabs/shopbot/internal/intent"
	"github.com/rshoplabs/shopbot/internal/logger"
	"github.com/rshoplabs/shopbot/internal/media"
	"github.com/rshoplabs/shopbot/internal/pending"
	"github.com/rshoplabs/shopbot/internal/server"
)

func runServe() {
	fx.New(
		fx.Provide(
			provideConfig,
			provideLogger,
			provideDBConn,
			catalog.NewStore,
			provideCompletionClient,
			provideInterpreter,
			provideTracker,
			provideExecutor,
			provideMediaService,
			provideBot,
			provideServer,
		),
		fx.Invoke(
			startBot,
			startPruner,
			startServer,
		),
		fx.WithLogger(func(logger *slog.Logger) fxevent.Logger {
			return &fxevent.SlogLogger{Logger: logger.With(slog.String("component", "fx"))}
		}),
	).Run()
}

func provideConfig() (config.Config, error) {
	cfgPath := os.Getenv("CONFIG_PATH")
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return config.Config{}, fmt.Errorf("load config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return config.Config{}, err
	}
	return cfg, nil
}

func provideLogger(cfg config.Config) *slog.Logger {
	logger.Init(cfg.Log.Level, cfg.Log.Format)
	return logger.L
}

func provideDBConn(lc fx.Lifecycle, cfg config.Config) (*pgxpool.Pool, error) {
	conn, err := db.Open(context.Background(), cfg.Postgres)
	if err != nil {
		return nil, fmt.Errorf("db connect: %w", err)
	}
	lc.Append(fx.Hook{OnStop: func(ctx context.Context) error { conn.Close(); return nil }})
	return conn, nil
}

func provideCompletionClient(log *slog.Logger, cfg config.Config) (completion.Client, error) {
	return completion.New(log, cfg.Completion)
}

func provideInterpreter(log *slog.Logger, client completion.Client, store *catalog.Store, cfg config.Config) *intent.Interpreter {
	return intent.NewInterpreter(log, client, store, cfg.Completion.TimeoutDuration())
}

func provideTracker(log *slog.Logger, cfg config.Config) *pending.Tracker {
	return pending.NewTracker(log, cfg.Media.MaxProductImages, cfg.Media.MaxCategoryImages)
}

func provideExecutor(log *slog.Logger, store *catalog.Store) *executor.Executor {
	return executor.NewExecutor(log, store)
}

func provideMediaService(log *slog.Logger, store *catalog.Store, cfg config.Config) *media.Service {
	uploader := media.NewFTPUploader(log, cfg.FTP)
	return media.NewService(log, store, uploader)
}

func provideBot(
	log *slog.Logger,
	cfg config.Config,
	interpreter *intent.Interpreter,
	exec *executor.Executor,
	tracker *pending.Tracker,
	mediaService *media.Service,
) (*telegram.Bot, error) {
	return telegram.NewBot(log, cfg.Telegram, interpreter, exec, tracker, mediaService)
}

func provideServer(log *slog.Logger, cfg config.Config, pool *pgxpool.Pool) *server.Server {
	return server.NewServer(log, cfg.Server.Addr, pool)
}

func startBot(lc fx.Lifecycle, bot *telegram.Bot) {
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	lc.Append(fx.Hook{
		OnStart: func(_ context.Context) error {
			go func() {
				defer close(done)
				bot.Run(ctx)
			}()
			return nil
		},
		OnStop: func(stopCtx context.Context) error {
			cancel()
			select {
			case <-done:
				return nil
			case <-stopCtx.Done():
				return stopCtx.Err()
			}
		},
	})
}

// startPruner drops pending image sets nobody finished, so an abandoned
// upload session does not pin stale references forever.
func startPruner(lc fx.Lifecycle, logger *slog.Logger, tracker *pending.Tracker, cfg config.Config) {
	ttl := cfg.Media.PendingTTLDuration()
	c := cron.New()
	_, err := c.AddFunc("@every 1h", func() {
		if dropped := tracker.PruneStale(ttl); dropped > 0 {
			logger.Info("pruned stale pending media", slog.Int("users", dropped))
		}
	})
	if err != nil {
		logger.Error("pruner schedule failed", slog.Any("error", err))
		return
	}
	lc.Append(fx.Hook{
		OnStart: func(context.Context) error { c.Start(); return nil },
		OnStop: func(ctx context.Context) error {
			select {
			case <-c.Stop().Done():
				return nil
			case <-ctx.Done():
				return ctx.Err()
			}
		},
	})
}

func startServer(lc fx.Lifecycle, logger *slog.Logger, srv *server.Server, shutdowner fx.Shutdowner) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					logger.Error("server failed", slog.Any("error", err))
					_ = shutdowner.Shutdown()
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			if err := srv.Stop(ctx); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return fmt.Errorf("server stop: %w", err)
			}
			return nil
		},
	})
}
