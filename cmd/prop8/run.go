package main

import (
	"context"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/omupade20/prop8/internal/barstore"
	"github.com/omupade20/prop8/internal/config"
	"github.com/omupade20/prop8/internal/feed"
	"github.com/omupade20/prop8/internal/logger"
	"github.com/omupade20/prop8/internal/metrics"
	"github.com/omupade20/prop8/internal/server"
	"github.com/omupade20/prop8/internal/strategy"
	"github.com/omupade20/prop8/internal/strategy/engine_v1"
	"github.com/urfave/cli/v3"
	"go.uber.org/zap"
)

func runCommand() *cli.Command {
	return &cli.Command{
		Name:   "run",
		Usage:  "Stream bars from the feed, evaluate every close and log execute decisions",
		Flags:  []cli.Flag{configFlagDef()},
		Action: runAction,
	}
}

// pipeline is the wired store, engine and dispatcher shared by run and replay.
type pipeline struct {
	cfg     config.Config
	log     *logger.Logger
	metrics *metrics.Metrics
	store   *barstore.BarStore
	engine  *engine_v1.Engine
	session *time.Location
}

func newPipeline(cfg config.Config, log *logger.Logger, opts ...barstore.Option) (*pipeline, error) {
	kind, err := cfg.StrategyKind()
	if err != nil {
		return nil, err
	}

	strat, err := strategy.New(kind, cfg.Strategy.Params)
	if err != nil {
		return nil, err
	}

	session, err := cfg.SessionLocation()
	if err != nil {
		return nil, err
	}

	m := metrics.New()
	storeOpts := append([]barstore.Option{
		barstore.WithCapacity(cfg.Store.Capacity),
		barstore.WithSnapshotPath(cfg.Store.SnapshotPath),
		barstore.WithMetrics(m),
	}, opts...)

	store := barstore.New(log.Named("barstore"), storeOpts...)
	engine := engine_v1.NewEngine(store, strat,
		engine_v1.WithConfig(cfg.EngineConfig()),
		engine_v1.WithMetrics(m),
		engine_v1.WithLogger(log.Named("engine")),
	)

	return &pipeline{cfg: cfg, log: log, metrics: m, store: store, engine: engine, session: session}, nil
}

// dispatch registers the VWAP session tracker and a dispatcher calling handler
// for execute decisions.
func (p *pipeline) dispatch(ctx context.Context, handler strategy.DecisionHandler) func() {
	unregisterSession := p.store.RegisterOnBarClose(engine_v1.NewSessionTracker(p.engine, p.session))

	dispatcher := engine_v1.NewDispatcher(ctx, p.engine, p.store, handler, p.cfg.Alerts, p.metrics, p.log.Named("dispatcher"))
	unregisterDispatcher := p.store.RegisterOnBarClose(dispatcher)

	return func() {
		unregisterDispatcher()
		unregisterSession()
	}
}

func loadConfig(cmd *cli.Command) (config.Config, *logger.Logger, error) {
	cfg, err := config.Load(cmd.String(configFlag))
	if err != nil {
		return config.Config{}, nil, err
	}

	log, err := logger.NewLoggerWithLevel(cfg.Log.Level)
	if err != nil {
		return config.Config{}, nil, err
	}

	return cfg, log, nil
}

func runAction(ctx context.Context, cmd *cli.Command) error {
	cfg, log, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	p, err := newPipeline(cfg, log)
	if err != nil {
		return err
	}

	if cfg.Store.SnapshotPath != "" {
		loaded, err := p.store.LoadSnapshot("")
		if err != nil {
			return err
		}

		log.Info("Startup snapshot", zap.Bool("loaded", loaded), zap.Strings("instruments", p.store.Instruments()))
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	unregister := p.dispatch(ctx, engine_v1.NewLogHandler(log.Named("alerts")))
	defer unregister()

	var wg sync.WaitGroup
	errCh := make(chan error, 2)

	if cfg.Server.Addr != "" {
		srv := server.New(p.store, p.engine, server.WithMetrics(p.metrics), server.WithLogger(log.Named("server")))

		wg.Add(1)
		go func() {
			defer wg.Done()

			if err := srv.Run(ctx, cfg.Server.Addr); err != nil {
				errCh <- err
			}
		}()
	}

	if cfg.Feed.URL != "" {
		f := feed.New(cfg.Feed.URL, cfg.Feed.Instruments, p.store,
			feed.WithReconnectDelay(cfg.Feed.ReconnectDelay),
			feed.WithMetrics(p.metrics),
			feed.WithLogger(log.Named("feed")),
		)

		wg.Add(1)
		go func() {
			defer wg.Done()
			// Run only returns once ctx is done
			_ = f.Run(ctx)
		}()
	}

	if cfg.Store.SnapshotPath != "" && cfg.Store.SnapshotInterval > 0 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			p.saveEvery(ctx, cfg.Store.SnapshotInterval)
		}()
	}

	log.Info("prop8 running",
		zap.String("strategy", string(p.engine.Kind())),
		zap.String("feed", cfg.Feed.URL),
		zap.String("addr", cfg.Server.Addr),
	)

	var runErr error

	select {
	case <-ctx.Done():
	case runErr = <-errCh:
		stop()
	}

	wg.Wait()

	if cfg.Store.SnapshotPath != "" {
		if err := p.store.SaveSnapshot(""); err != nil {
			log.Error("Shutdown snapshot failed", zap.Error(err))

			if runErr == nil {
				runErr = err
			}
		}
	}

	log.Info("prop8 stopped")

	return runErr
}

func (p *pipeline) saveEvery(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := p.store.SaveSnapshot(""); err != nil {
				p.log.Error("Periodic snapshot failed", zap.Error(err))
			}
		}
	}
}
