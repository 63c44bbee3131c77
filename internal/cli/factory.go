package cli

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/aretw0/airdesk"
	"github.com/aretw0/airdesk/internal/config"
	"github.com/aretw0/airdesk/internal/fixtures"
	"github.com/aretw0/airdesk/pkg/adapters/dispatch"
	"github.com/aretw0/airdesk/pkg/adapters/memory"
	redisadapter "github.com/aretw0/airdesk/pkg/adapters/redis"
	"github.com/aretw0/airdesk/pkg/location"
	"github.com/aretw0/airdesk/pkg/observability"
	"github.com/aretw0/airdesk/pkg/persistence/middleware"
	"github.com/aretw0/airdesk/pkg/ports"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

// Runtime bundles a configured Agent with the resources backing it.
type Runtime struct {
	Agent    *airdesk.Agent
	Registry *prometheus.Registry

	closers []func() error
}

// Close releases backend connections.
func (r *Runtime) Close() error {
	var errs []error
	for i := len(r.closers) - 1; i >= 0; i-- {
		errs = append(errs, r.closers[i]())
	}
	return errors.Join(errs...)
}

// Build wires an Agent from cfg: session store, fixtures, metrics and dispatch.
func Build(ctx context.Context, cfg config.Config, logger *slog.Logger) (*Runtime, error) {
	rt := &Runtime{Registry: prometheus.NewRegistry()}

	opts := []airdesk.Option{
		airdesk.WithLogger(logger),
		airdesk.WithPolicy(cfg.Policy),
		airdesk.WithIntegrations(cfg.Integrations),
	}

	// 1. Session store
	store, storeOpts, err := createStore(ctx, cfg.Store, logger, rt)
	if err != nil {
		return nil, err
	}
	opts = append(opts, storeOpts...)

	if cfg.Store.EncryptionKey != "" {
		key, err := middleware.ParseKey(cfg.Store.EncryptionKey)
		if err != nil {
			_ = rt.Close()
			return nil, fmt.Errorf("store.encryption_key: %w", err)
		}
		encrypt, err := middleware.NewEncryptionMiddleware(middleware.EncryptionConfig{ActiveKey: key})
		if err != nil {
			_ = rt.Close()
			return nil, err
		}
		store = middleware.Chain(store, encrypt)
		logger.Info("Session encryption enabled")
	}
	opts = append(opts, airdesk.WithStore(store))

	// 2. Airline data
	ds, err := fixtures.Load(cfg.Data.Fixtures, time.Now())
	if err != nil {
		_ = rt.Close()
		return nil, err
	}
	opts = append(opts,
		airdesk.WithCatalog(ds.Catalog()),
		airdesk.WithRepository(ds.Repository()),
		airdesk.WithNormalizer(location.New(cfg.Data.Locations)),
	)
	schedules, err := cfg.FareSchedules()
	if err != nil {
		_ = rt.Close()
		return nil, fmt.Errorf("fares: %w", err)
	}
	opts = append(opts, airdesk.WithFareSchedules(schedules))
	if cfg.Server.MaxInputSize > 0 {
		opts = append(opts, airdesk.WithMaxInputSize(cfg.Server.MaxInputSize))
	}

	// 3. Observability
	rt.Registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	metrics, err := observability.NewMetrics(rt.Registry)
	if err != nil {
		_ = rt.Close()
		return nil, err
	}
	opts = append(opts, airdesk.WithLifecycleHooks(observability.Combine(
		metrics.Hooks(),
		observability.LogHooks(logger),
	)))

	// 4. Action delivery
	opts = append(opts, airdesk.WithDispatcher(createDispatcher(cfg, logger)))

	agent, err := airdesk.New(opts...)
	if err != nil {
		_ = rt.Close()
		return nil, fmt.Errorf("error initializing agent: %w", err)
	}
	rt.Agent = agent
	return rt, nil
}

func createStore(ctx context.Context, cfg config.Store, logger *slog.Logger, rt *Runtime) (ports.SessionStore, []airdesk.Option, error) {
	switch cfg.Driver {
	case config.DriverRedis:
		prefix := cfg.Prefix
		if prefix == "" {
			prefix = redisadapter.DefaultPrefix
		}
		storeOpts := []redisadapter.Option{redisadapter.WithPrefix(prefix)}
		if cfg.TTL > 0 {
			storeOpts = append(storeOpts, redisadapter.WithTTL(cfg.TTL))
		}
		store := redisadapter.New(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB, storeOpts...)
		rt.closers = append(rt.closers, store.Close)

		if err := store.Client().Ping(ctx).Err(); err != nil {
			_ = rt.Close()
			return nil, nil, fmt.Errorf("redis %s: %w", cfg.RedisAddr, err)
		}
		logger.Info("Using redis session store", "addr", cfg.RedisAddr, "db", cfg.RedisDB)

		return store, []airdesk.Option{
			airdesk.WithLocker(redisadapter.NewLocker(store.Client(), prefix)),
			airdesk.WithLockTTL(cfg.LockTTL),
		}, nil
	default:
		logger.Info("Using in-memory session store")
		return memory.NewStore(), nil, nil
	}
}

func createDispatcher(cfg config.Config, logger *slog.Logger) ports.ActionDispatcher {
	router := dispatch.NewRouter(dispatch.NewLog(logger))
	if cfg.Integrations.Email != "" {
		router.Handle(cfg.Integrations.Email, dispatch.NewLog(logger.With("channel", "email")))
	}
	if cfg.Integrations.SMS != "" {
		router.Handle(cfg.Integrations.SMS, dispatch.NewLog(logger.With("channel", "sms")))
	}
	return router
}
