package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-extras/cobraflags"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"github.com/safar/ar-storefront/internal/catalog"
	"github.com/safar/ar-storefront/internal/config"
	"github.com/safar/ar-storefront/internal/database"
	"github.com/safar/ar-storefront/internal/handler"
	"github.com/safar/ar-storefront/internal/homepage"
	"github.com/safar/ar-storefront/internal/metrics"
	"github.com/safar/ar-storefront/internal/middleware"
	"github.com/safar/ar-storefront/internal/storage"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

const shutdownTimeout = 15 * time.Second

const (
	portFlag       = "port"
	baseDomainFlag = "base-domain"
)

var serveFlags = map[string]cobraflags.Flag{
	portFlag: &cobraflags.StringFlag{
		Name:  portFlag,
		Value: "",
		Usage: "Port to listen on. Overrides SERVER_PORT",
	},
	baseDomainFlag: &cobraflags.StringFlag{
		Name:  baseDomainFlag,
		Value: "",
		Usage: "Domain tenant subdomains live under. Overrides BASE_DOMAIN",
	},
}

func newServeCommand() *cobra.Command {
	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		Args:  cobra.NoArgs,
		RunE:  serveCommand,
	}

	cobraflags.RegisterMap(serveCmd, serveFlags)
	return serveCmd
}

func serveCommand(cmd *cobra.Command, _ []string) error {
	a, err := setup(cmd.Context())
	if err != nil {
		return err
	}
	defer a.close()

	if port := serveFlags[portFlag].GetString(); port != "" {
		a.cfg.Server.Port = port
	}
	if domain := serveFlags[baseDomainFlag].GetString(); domain != "" {
		a.cfg.Server.BaseDomain = domain
	}

	ctx := cmd.Context()

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		collectors.NewDBStatsCollector(a.db, a.cfg.Metrics.Namespace),
	)
	m := metrics.New(reg, a.cfg.Metrics.Namespace)

	var rdb *redis.Client
	if a.cfg.UsesRedis() {
		rdb, err = connectRedis(ctx, a.cfg.Redis)
		if err != nil {
			return err
		}
		defer rdb.Close()
		a.log.Info("Connected to redis", zap.String("addr", a.cfg.Redis.Addr))
	}

	objects, err := storage.NewClient(a.cfg.Storage)
	if err != nil {
		return fmt.Errorf("init object storage: %w", err)
	}

	cacheTTL := storage.EffectiveCacheTTL(a.cfg.Signing.URLTTL, a.cfg.Signing.CacheTTL)
	cache := signingCache(a.cfg.Signing.Cache, cacheTTL, rdb)
	if mc, ok := cache.(*storage.MemoryCache); ok {
		defer mc.Close()
	}

	signer := storage.NewSigner(objects, storage.SignerOptions{
		URLTTL:      a.cfg.Signing.URLTTL,
		Concurrency: a.cfg.Signing.Concurrency,
		CacheTTL:    cacheTTL,
		Cache:       cache,
		Observer:    m,
		Logger:      a.log.Named("signer"),
	})

	svc := catalog.NewService(catalog.Dependencies{
		DB:       a.db,
		Signer:   signer,
		Uploader: objects,
		Observer: m,
		Logger:   a.log.Named("catalog"),
	})

	hp := homepage.NewStore(homepageBackend(a.cfg.Homepage, rdb), a.log.Named("homepage"))

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Use(echomw.Recover())
	e.Use(middleware.RequestID(a.log))
	e.Use(m.Middleware)
	e.Use(middleware.Tenant(a.cfg.Server.BaseDomain))

	e.GET("/metrics", echo.WrapHandler(promhttp.HandlerFor(reg, promhttp.HandlerOpts{})))

	h := handler.New(svc, hp, a.db, m).WithUploadLimit(a.cfg.Server.UploadMaxBytes)
	h.Register(e, middleware.EnsureSchema(database.NewInitializer(a.db, a.log.Named("database"))))

	server := &http.Server{
		Addr:         ":" + a.cfg.Server.Port,
		Handler:      e,
		ReadTimeout:  a.cfg.Server.ReadTimeout,
		WriteTimeout: a.cfg.Server.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		a.log.Info("Server starting",
			zap.String("port", a.cfg.Server.Port),
			zap.String("base_domain", a.cfg.Server.BaseDomain),
			zap.String("bucket", objects.Bucket()),
			zap.String("signing_cache", a.cfg.Signing.Cache),
			zap.String("homepage_backend", a.cfg.Homepage.Backend))
		errCh <- server.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	a.log.Info("Shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown server: %w", err)
	}
	return nil
}

func connectRedis(ctx context.Context, cfg config.RedisConfig) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := client.Ping(pingCtx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("connect to redis: %w", err)
	}
	return client, nil
}

// signingCache builds the configured cache. The memory janitor runs every
// cacheTTL, the lifetime the signer gives each entry.
func signingCache(kind string, cacheTTL time.Duration, rdb *redis.Client) storage.Cache {
	switch kind {
	case "redis":
		return storage.NewRedisCache(rdb, "storefront:signed:")
	case "none":
		return storage.NoopCache{}
	default:
		return storage.NewMemoryCache(cacheTTL)
	}
}

func homepageBackend(cfg config.HomepageConfig, rdb *redis.Client) homepage.Backend {
	if cfg.Backend == "redis" {
		return homepage.NewRedisBackend(rdb, cfg.RedisKey)
	}
	return homepage.NewFileBackend(cfg.File)
}
