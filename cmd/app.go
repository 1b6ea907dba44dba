package cmd

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/zjrosen/hyperstore/internal/cachemanager"
	"github.com/zjrosen/hyperstore/internal/config"
	"github.com/zjrosen/hyperstore/internal/containers/domain"
	"github.com/zjrosen/hyperstore/internal/containers/store"
	"github.com/zjrosen/hyperstore/internal/infrastructure/sqlite"
	"github.com/zjrosen/hyperstore/internal/log"
	"github.com/zjrosen/hyperstore/internal/pubsub"
	"github.com/zjrosen/hyperstore/internal/tracing"
)

// app carries per-invocation state shared by the subcommands. Resources
// are opened lazily so commands such as validate never touch the database.
type app struct {
	v       *viper.Viper
	cfgFile string
	cfg     config.Config

	db       *sqlite.DB
	repo     domain.ContainerRepository
	cache    cachemanager.CacheManager[string, *domain.Container]
	provider *tracing.Provider
	broker   *pubsub.Broker[store.ContainerEvent]

	stopEvents context.CancelFunc
	eventsDone sync.WaitGroup
	closeLog   func()
}

// init loads configuration and configures logging.
func (a *app) init(cmd *cobra.Command) error {
	if cmd.Annotations[skipConfigLoad] == "true" {
		a.cfg = config.Defaults()
		return nil
	}

	cfg, err := config.Load(a.v, a.cfgFile)
	if err != nil {
		return err
	}
	a.cfg = cfg

	debug := a.v.GetBool("debug")
	if !debug && !cfg.Log.Enabled {
		return nil
	}

	if cfg.Log.Path != "" {
		cleanup, err := log.Init(cfg.Log.Path)
		if err != nil {
			return err
		}
		a.closeLog = cleanup
	} else {
		a.closeLog = log.InitWriter(cmd.ErrOrStderr())
	}

	level := log.LevelDebug
	if !debug {
		// Validated by config.Load.
		level, _ = log.ParseLevel(cfg.Log.Level)
	}
	log.SetMinLevel(level)
	log.Debug(log.CatCLI, "Running command", "command", cmd.CommandPath(), "db", cfg.Database.Path)
	return nil
}

// openDB opens the configured database. backup copies an existing file to
// <path>.bak first and is only requested by migrate.
func (a *app) openDB(backup bool) (*sqlite.DB, error) {
	if a.db != nil {
		return a.db, nil
	}
	dbCfg := a.cfg.Database
	db, err := sqlite.NewDB(dbCfg.Path,
		sqlite.WithMaxOpenConns(dbCfg.MaxOpenConns),
		sqlite.WithBusyTimeout(dbCfg.BusyTimeout()),
		sqlite.WithBackup(backup && dbCfg.BackupBeforeMigrate),
	)
	if err != nil {
		return nil, &domain.StorageError{Op: "open database", Err: err}
	}
	a.db = db
	return db, nil
}

// repository opens the database, provisions the schema and returns the
// repository wrapped with the configured cache, event and tracing layers.
func (a *app) repository(ctx context.Context) (domain.ContainerRepository, error) {
	if a.repo != nil {
		return a.repo, nil
	}

	db, err := a.openDB(false)
	if err != nil {
		return nil, err
	}
	if err := db.Migrate(ctx); err != nil {
		return nil, err
	}

	provider, err := tracing.NewProvider(a.cfg.Tracing.Tracing())
	if err != nil {
		return nil, fmt.Errorf("starting tracing: %w", err)
	}
	a.provider = provider

	opts := store.Options{}
	if provider.Enabled() {
		opts.Tracer = provider.Tracer()
	}
	if a.cfg.Cache.Enabled {
		ttl := a.cfg.Cache.TTL
		if ttl == 0 {
			ttl = cachemanager.DefaultExpiration
		}
		a.cache = cachemanager.NewInMemoryCacheManager[string, *domain.Container]("containers", ttl, cachemanager.DefaultCleanupInterval)
		opts.Cache = a.cache
		opts.CacheTTL = ttl
	}

	a.broker = pubsub.NewBroker[store.ContainerEvent]()
	opts.Publisher = a.broker
	a.watchEvents()

	a.repo = store.Wrap(db.ContainerRepository(), opts)
	return a.repo, nil
}

// watchEvents logs every change published by the repository.
func (a *app) watchEvents() {
	ctx, cancel := context.WithCancel(context.Background())
	a.stopEvents = cancel
	events := a.broker.Subscribe(ctx)

	a.eventsDone.Add(1)
	go func() {
		defer a.eventsDone.Done()
		pubsub.Consume(ctx, events, func(e pubsub.Event[store.ContainerEvent]) {
			log.Info(log.CatCLI, "Container changed",
				"event", e.Type, "name", e.Payload.Name, "id", e.Payload.ID, "status", e.Payload.Status)
		})
	}()
}

// close releases everything opened during the command.
func (a *app) close(ctx context.Context) error {
	var errs []error

	if a.broker != nil {
		// Closing the broker ends the consumer once buffered events are logged.
		a.broker.Close()
		a.eventsDone.Wait()
		a.stopEvents()
		if dropped := a.broker.Dropped(); dropped > 0 {
			log.Warn(log.CatCLI, "Container events were not logged", "dropped", dropped)
		}
	}
	if a.provider != nil {
		if err := a.provider.Shutdown(context.WithoutCancel(ctx)); err != nil {
			errs = append(errs, fmt.Errorf("flushing traces: %w", err))
		}
	}
	if a.db != nil {
		if err := a.db.Close(); err != nil {
			errs = append(errs, fmt.Errorf("closing database: %w", err))
		}
	}
	if a.closeLog != nil {
		a.closeLog()
	}

	a.db, a.repo, a.cache, a.provider, a.broker = nil, nil, nil, nil, nil
	return errors.Join(errs...)
}
