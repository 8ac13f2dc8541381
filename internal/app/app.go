package app

import (
	"context"
	"errors"
	"net/http"
	"time"

	"fruit-order-service/internal/config"
	"fruit-order-service/internal/events"
	"fruit-order-service/internal/health"
	"fruit-order-service/internal/logger"
	"fruit-order-service/internal/metrics"
	"fruit-order-service/internal/order/handler"
	"fruit-order-service/internal/order/mapper"
	"fruit-order-service/internal/order/repository"
	"fruit-order-service/internal/order/service"
	"fruit-order-service/internal/version"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	pkgerrors "github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	log "github.com/sirupsen/logrus"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// OpenDatabase opens the gorm connection for the configured driver.
// The memory driver has no database and yields a nil *gorm.DB.
func OpenDatabase(cfg config.Config, logger *log.Entry) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch cfg.StorageDriver {
	case config.StorageDriverPostgres:
		dialector = postgres.Open(cfg.DatabaseURL)
	case config.StorageDriverSQLite:
		dialector = sqlite.Open(cfg.SQLitePath)
	default:
		return nil, nil
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: gormlogger.New(logger.WithField("component", "gorm"), gormlogger.Config{
			SlowThreshold:             200 * time.Millisecond,
			LogLevel:                  gormlogger.Warn,
			IgnoreRecordNotFoundError: true,
		}),
	})
	if err != nil {
		return nil, pkgerrors.Wrapf(err, "connect to %s", cfg.StorageDriver)
	}
	return db, nil
}

// Migrate creates the orders table and exits.
func Migrate(cfg config.Config, logger *log.Logger) error {
	entry := log.NewEntry(logger)
	db, err := OpenDatabase(cfg, entry)
	if err != nil {
		return err
	}
	if db == nil {
		entry.Info("memory storage driver has nothing to migrate")
		return nil
	}
	defer closeDatabase(db, entry)

	if err := repository.AutoMigrate(db); err != nil {
		return err
	}
	entry.WithField("driver", cfg.StorageDriver).Info("migration finished")
	return nil
}

// Dependencies are the pieces NewRouter mounts.
type Dependencies struct {
	Service  service.OrderService
	Health   *health.Handler
	Metrics  *metrics.Metrics
	Gatherer prometheus.Gatherer
	Logger   *log.Entry
}

// NewRouter builds the gin engine with the order, health and metrics routes.
func NewRouter(deps Dependencies) *gin.Engine {
	router := gin.New()
	_ = router.SetTrustedProxies(nil)
	router.Use(gin.Recovery())
	router.Use(logger.Middleware(deps.Logger.WithField("component", "http")))
	router.Use(deps.Metrics.Middleware())

	deps.Health.Register(router)
	router.GET("/metrics", gin.WrapH(promhttp.HandlerFor(deps.Gatherer, promhttp.HandlerOpts{})))

	handler.NewOrderHandler(deps.Service, deps.Logger).RegisterRoutes(router)
	return router
}

// Run wires storage, cache, broker and HTTP server, and serves until ctx is cancelled.
func Run(ctx context.Context, cfg config.Config, logger *log.Logger) error {
	entry := log.NewEntry(logger)
	healthHandler := health.NewHandler(version.Version())

	db, err := OpenDatabase(cfg, entry)
	if err != nil {
		return err
	}

	var repo repository.OrderRepository
	if db != nil {
		defer closeDatabase(db, entry)
		if cfg.AutoMigrate {
			if err := repository.AutoMigrate(db); err != nil {
				return err
			}
		}
		sqlDB, err := db.DB()
		if err != nil {
			return pkgerrors.Wrap(err, "get sql.DB")
		}
		healthHandler.RegisterChecker("database", health.NewSimpleChecker("database", sqlDB.PingContext))
		repo = repository.NewOrderRepository(db)
	} else {
		repo = repository.NewMemoryOrderRepository()
	}
	entry.WithField("driver", cfg.StorageDriver).Info("order store ready")

	if cfg.CacheEnabled() {
		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr(),
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		defer rdb.Close()

		if err := rdb.Ping(ctx).Err(); err != nil {
			return pkgerrors.Wrapf(err, "connect to redis at %s", cfg.RedisAddr())
		}
		healthHandler.RegisterChecker("redis", health.NewSimpleChecker("redis", func(ctx context.Context) error {
			return rdb.Ping(ctx).Err()
		}))
		repo = repository.NewCachedOrderRepository(repo, rdb, cfg.CacheTTL, entry)
		entry.WithField("addr", cfg.RedisAddr()).Info("redis cache enabled")
	}

	m := metrics.New(prometheus.DefaultRegisterer)

	var publisher events.Publisher = events.NoopPublisher{}
	if cfg.EventsEnabled() {
		conn, err := events.Dial(cfg.RabbitMQURL)
		if err != nil {
			return err
		}
		defer conn.Close()

		healthHandler.RegisterChecker("rabbitmq", health.NewSimpleChecker("rabbitmq", func(context.Context) error {
			if conn.IsClosed() {
				return errors.New("connection closed")
			}
			return nil
		}))
		publisher = events.NewAMQPPublisher(conn.Channel(), m, entry)

		if cfg.EventLoggerEnabled {
			go func() {
				if err := events.StartEventLogger(ctx, conn.Channel(), entry); err != nil {
					entry.WithError(err).Error("event logger stopped")
				}
			}()
		}
		entry.Info("rabbitmq publisher enabled")
	}

	svc := service.NewOrderService(repo, mapper.New(nil), publisher, entry)
	router := NewRouter(Dependencies{
		Service:  svc,
		Health:   healthHandler,
		Metrics:  m,
		Gatherer: prometheus.DefaultGatherer,
		Logger:   entry,
	})

	return serve(ctx, &http.Server{Addr: cfg.HTTPAddr, Handler: router}, cfg.ShutdownTimeout, entry)
}

func serve(ctx context.Context, srv *http.Server, shutdownTimeout time.Duration, logger *log.Entry) error {
	errCh := make(chan error, 1)
	go func() {
		logger.WithFields(log.Fields{
			"addr":    srv.Addr,
			"version": version.Version(),
		}).Info("fruit order service listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return pkgerrors.Wrap(err, "http server")
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return pkgerrors.Wrap(err, "graceful shutdown")
	}
	return nil
}

func closeDatabase(db *gorm.DB, logger *log.Entry) {
	sqlDB, err := db.DB()
	if err != nil {
		return
	}
	if err := sqlDB.Close(); err != nil {
		logger.WithError(err).Warn("close database")
	}
}
