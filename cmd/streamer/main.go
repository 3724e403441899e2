package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/maxviazov/user-stream-service/internal/cache"
	"github.com/maxviazov/user-stream-service/internal/config"
	"github.com/maxviazov/user-stream-service/internal/logger"
	"github.com/maxviazov/user-stream-service/internal/repository"
	"github.com/maxviazov/user-stream-service/internal/repository/postgres"
	"github.com/maxviazov/user-stream-service/internal/service"
	"github.com/maxviazov/user-stream-service/internal/stream"
)

// app carries everything the subcommands need once the root command has
// finished bootstrapping. Built in PersistentPreRunE, torn down after.
type app struct {
	cfg      *config.Config
	log      zerolog.Logger
	pool     *repository.Pool
	pages    *cache.PageCache
	repo     repository.UserRepository
	streamer *stream.Streamer
	svc      service.UserStreamService
	seeder   repository.Seeder
	pinger   repository.Pinger
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a := &app{}
	root := newRootCmd(a)
	if err := root.ExecuteContext(ctx); err != nil {
		log.Fatalf("❌ %v", err)
	}
}

func newRootCmd(a *app) *cobra.Command {
	var configPath string

	root := &cobra.Command{
		Use:           "streamer",
		Short:         "Stream, batch and paginate rows of the user_data table",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.bootstrap(cmd.Context(), configPath)
		},
		PersistentPostRun: func(*cobra.Command, []string) {
			a.shutdown()
		},
	}
	root.PersistentFlags().StringVar(&configPath, "config", "config.yaml", "path to the config file")

	root.AddCommand(
		newStreamCmd(a),
		newBatchesCmd(a),
		newPaginateCmd(a),
		newLazyCmd(a),
		newAvgAgeCmd(a),
		newConcurrentCmd(a),
		newSeedCmd(a),
		newPingCmd(a),
	)
	return root
}

func (a *app) bootstrap(ctx context.Context, configPath string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	appLogger, err := logger.New(&cfg.Logger)
	if err != nil {
		return err
	}

	pool, err := repository.NewPool(ctx, cfg, &appLogger)
	if err != nil {
		return err
	}

	var pages *cache.PageCache
	if cfg.Stream.Cache.Enabled {
		pages, err = cache.New(cfg.Stream.Cache.MaxEntries, time.Duration(cfg.Stream.Cache.TTLSeconds)*time.Second)
		if err != nil {
			pool.Close()
			return err
		}
	}

	repo := postgres.NewUserRepository(pool.Pgx(), pages)
	streamer := stream.New(repo, appLogger)

	a.cfg = cfg
	a.log = appLogger
	a.pool = pool
	a.pages = pages
	a.repo = repo
	a.streamer = streamer
	a.svc = service.NewUserStreamService(streamer, cfg.Stream.FilterAge, cfg.Stream.OlderThanAge, appLogger)
	a.seeder = postgres.NewSeeder(pool.Pgx(), appLogger)
	a.pinger = postgres.NewPinger(pool.Pgx())
	return nil
}

func (a *app) shutdown() {
	if a.pages != nil {
		a.pages.Close()
	}
	if a.pool != nil {
		a.pool.Close()
	}
}
