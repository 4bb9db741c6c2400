package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/example/casino-admin/internal/auth"
	"github.com/example/casino-admin/internal/config"
	"github.com/example/casino-admin/internal/grpchealth"
	"github.com/example/casino-admin/internal/handlers"
	"github.com/example/casino-admin/internal/logging"
	"github.com/example/casino-admin/internal/metrics"
	"github.com/example/casino-admin/internal/repository"
	"github.com/example/casino-admin/internal/store"
	"github.com/example/casino-admin/internal/usecase"
)

func main() {
	healthcheck := flag.Bool("healthcheck", false, "probe the gRPC health endpoint and exit")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	if *healthcheck {
		os.Exit(runHealthcheck(cfg.GRPCHealthAddr))
	}

	if err := cfg.Validate(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	logger, err := logging.NewLogger(cfg.LogLevel)
	if err != nil {
		panic(err)
	}
	defer logger.Sync() //nolint:errcheck

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	backend, closeStore := openStore(ctx, cfg, logger)
	defer closeStore()

	var cache usecase.Cache = usecase.NoopCache{}
	if cfg.RedisAddr != "" && cfg.CacheTTL <= 0 {
		logger.Warn("REDIS_ADDR is set but CACHE_TTL is 0; dashboard caching stays off")
	}
	if cfg.RedisAddr != "" && cfg.CacheTTL > 0 {
		redisCtx, redisCancel := context.WithTimeout(ctx, 5*time.Second)
		defer redisCancel()
		redisClient := initRedis(redisCtx, cfg.RedisAddr, logger)
		defer redisClient.Close()
		cache = usecase.NewRetryCache(usecase.NewRedisCache(redisClient), 3, 50*time.Millisecond, 500*time.Millisecond, logger)
	}

	cols := store.NewCollections(backend)
	uc := usecase.NewAdminUseCase(cols, cache, cfg.CacheTTL, logger)

	gin.SetMode(gin.ReleaseMode)
	r := newRouter(cfg, uc, metrics.NewHTTPMetrics(nil), logger)

	stopHealth := startHealthServer(cfg.GRPCHealthAddr, cols.Ping, logger)
	defer stopHealth()

	server := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	logger.Info("casino admin API listening",
		zap.String("addr", cfg.HTTPAddr),
		zap.String("store_driver", cfg.StoreDriver),
		zap.Bool("cache", cfg.RedisAddr != "" && cfg.CacheTTL > 0),
	)
	if err := serveHTTPServer(server, cfg.ShutdownTimeout, logger); err != nil {
		logger.Fatal("server failed", zap.Error(err))
	}
}

func newRouter(cfg config.Config, uc *usecase.AdminUseCase, httpMetrics *metrics.HTTPMetrics, logger *zap.Logger) *gin.Engine {
	r := gin.New()
	r.Use(logging.GinLogger(logger), gin.Recovery(), httpMetrics.Middleware())
	r.GET("/metrics", gin.WrapH(httpMetrics.Handler()))

	authMiddleware := auth.JWTMiddleware(cfg.JWTSecret, cfg.JWTAudience)
	handlers.RegisterRoutes(r, uc, authMiddleware, handlers.Options{
		EnableSampleData: cfg.EnableSample,
		Logger:           logger,
	})
	return r
}

// openStore connects the configured document backend and returns a closer.
func openStore(ctx context.Context, cfg config.Config, logger *zap.Logger) (store.Backend, func()) {
	switch cfg.StoreDriver {
	case config.DriverMongo:
		client, db, err := store.ConnectMongo(ctx, cfg.MongoURL, cfg.DatabaseName)
		if err != nil {
			logger.Fatal("failed to connect to mongo", zap.Error(err))
		}
		return store.NewMongoBackend(db), func() {
			if err := client.Disconnect(context.Background()); err != nil {
				logger.Warn("mongo disconnect failed", zap.Error(err))
			}
		}
	case config.DriverPostgres:
		db := initDatabase(ctx, cfg.DatabaseDSN, logger)
		repo := repository.NewDocumentRepository(db, logger)
		if err := repo.AutoMigrate(ctx); err != nil {
			logger.Fatal("auto migrate failed", zap.Error(err))
		}
		return repo, func() {
			if sqlDB, err := db.DB(); err == nil {
				_ = sqlDB.Close()
			}
		}
	default:
		logger.Warn("using in-memory store; data is lost on restart")
		return store.NewMemoryBackend(), func() {}
	}
}

func initDatabase(ctx context.Context, dsn string, zapLogger *zap.Logger) *gorm.DB {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{Logger: gormlogger.Default.LogMode(gormlogger.Warn)})
	if err != nil {
		zapLogger.Fatal("failed to connect to database", zap.Error(err))
	}

	sqlDB, err := db.DB()
	if err != nil {
		zapLogger.Fatal("failed to access db handle", zap.Error(err))
	}
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetMaxOpenConns(10)
	sqlDB.SetConnMaxLifetime(time.Hour)

	if err := sqlDB.PingContext(ctx); err != nil {
		zapLogger.Fatal("database ping failed", zap.Error(err))
	}

	return db
}

func initRedis(ctx context.Context, addr string, zapLogger *zap.Logger) *redis.Client {
	client := redis.NewClient(&redis.Options{Addr: addr})
	if err := client.Ping(ctx).Err(); err != nil {
		zapLogger.Fatal("redis connection failed", zap.Error(err))
	}
	return client
}

// startHealthServer serves gRPC health on addr. An empty addr disables it.
func startHealthServer(addr string, check grpchealth.Checker, logger *zap.Logger) func() {
	if addr == "" {
		return func() {}
	}
	lis, err := net.Listen("tcp", addr)
	if err != nil {
		logger.Fatal("failed to listen for grpc health", zap.Error(err), zap.String("addr", addr))
	}

	hs := grpchealth.NewServer(check, 10*time.Second, logger.Named("grpc_health"))
	watchCtx, stopWatch := context.WithCancel(context.Background())
	go hs.Watch(watchCtx)
	go func() {
		if err := hs.Serve(lis); err != nil {
			logger.Error("grpc health server stopped", zap.Error(err))
		}
	}()
	logger.Info("grpc health listening", zap.String("addr", addr))

	return func() {
		stopWatch()
		hs.Stop()
	}
}

func runHealthcheck(addr string) int {
	if addr == "" {
		fmt.Fprintln(os.Stderr, "GRPC_HEALTH_ADDR is empty")
		return 1
	}
	target := addr
	if host, port, err := net.SplitHostPort(addr); err == nil && host == "" {
		target = net.JoinHostPort("127.0.0.1", port)
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := grpchealth.Probe(ctx, target, grpchealth.ServiceName); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	return 0
}

func serveHTTPServer(server *http.Server, shutdownTimeout time.Duration, logger *zap.Logger) error {
	return serveHTTPServerWithOptions(server, shutdownTimeout, logger, nil, nil)
}

func serveHTTPServerWithOptions(server *http.Server, shutdownTimeout time.Duration, logger *zap.Logger, listener net.Listener, signalCh <-chan os.Signal) error {
	errCh := make(chan error, 1)
	go func() {
		var err error
		if listener != nil {
			err = server.Serve(listener)
		} else {
			err = server.ListenAndServe()
		}
		if errors.Is(err, http.ErrServerClosed) {
			err = nil
		}
		errCh <- err
	}()

	var (
		sigCh       <-chan os.Signal
		stopSignals func()
	)

	if signalCh != nil {
		sigCh = signalCh
		stopSignals = func() {}
	} else {
		ch := make(chan os.Signal, 1)
		signal.Notify(ch, os.Interrupt, syscall.SIGTERM)
		sigCh = ch
		stopSignals = func() {
			signal.Stop(ch)
		}
	}
	defer stopSignals()

	select {
	case err := <-errCh:
		return err
	case sig, ok := <-sigCh:
		if !ok {
			return <-errCh
		}
		logger.Info("received shutdown signal", zap.String("signal", sig.String()))
		ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := server.Shutdown(ctx); err != nil && !errors.Is(err, context.Canceled) {
			return err
		}
		return <-errCh
	}
}
