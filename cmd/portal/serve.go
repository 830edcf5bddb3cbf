package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/fekuna/omnipos-portal/internal/auth"
	"github.com/fekuna/omnipos-portal/internal/broker"
	"github.com/fekuna/omnipos-portal/internal/currency"
	"github.com/fekuna/omnipos-portal/internal/database"
	"github.com/fekuna/omnipos-portal/internal/metrics"
	"github.com/fekuna/omnipos-portal/internal/server"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const (
	healthInterval = 10 * time.Second
	sweepInterval  = time.Minute
)

func serveCmd() *cobra.Command {
	var migrate bool

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API and the gRPC health endpoint",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return serve(cmd.Context(), migrate)
		},
	}
	cmd.Flags().BoolVar(&migrate, "migrate", false, "apply the schema before serving")
	return cmd
}

func serve(parent context.Context, migrate bool) error {
	// 1. Load Configuration
	cfg := loadConfig()
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("config: %w", err)
	}

	// 2. Initialize Logger
	appLogger := newLogger(cfg)
	defer appLogger.Sync()

	if cfg.Server.AppEnv != "development" {
		gin.SetMode(gin.ReleaseMode)
	}

	// 3. Connect to Database
	db, err := openDatabase(cfg)
	if err != nil {
		return fmt.Errorf("connect database: %w", err)
	}
	defer db.Close()
	appLogger.Info("Connected to database", zap.String("driver", db.DriverName()))

	if migrate {
		if err := database.Migrate(parent, db); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
		appLogger.Info("Schema is up to date")
	}

	// 4. Initialize Redis backed rate cache
	var rateCache currency.Cache
	if cfg.Redis.Addr != "" {
		redisClient := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		defer redisClient.Close()

		pingCtx, cancel := context.WithTimeout(parent, 3*time.Second)
		if err := redisClient.Ping(pingCtx).Err(); err != nil {
			appLogger.Warn("Could not reach Redis, rates will be fetched on every request", zap.Error(err))
		} else {
			appLogger.Info("Connected to Redis", zap.String("addr", cfg.Redis.Addr))
		}
		cancel()
		rateCache = currency.NewRedisCache(redisClient)
	}

	rates := currency.NewService(
		currency.NewHTTPFetcher(cfg.Currency.RatesURL, cfg.Currency.BaseCurrency, cfg.Currency.Timeout),
		rateCache,
		cfg.Currency.CacheTTL,
		cfg.Currency.BaseCurrency,
		appLogger,
	)

	// 5. Initialize Kafka Publisher
	var publisher broker.Publisher = broker.NopPublisher{}
	if len(cfg.Kafka.Brokers) > 0 {
		publisher = broker.NewKafkaPublisher(cfg.Kafka.Brokers, cfg.Kafka.LeadTopic, appLogger)
		appLogger.Info("Publishing lead events", zap.Strings("brokers", cfg.Kafka.Brokers), zap.String("topic", cfg.Kafka.LeadTopic))
	}
	defer publisher.Close()

	// 6. Initialize Handlers
	tokens := auth.NewTokenManager(cfg.JWT.SecretKey, cfg.JWT.TTL)
	handlers := server.Wire(db, server.Deps{
		Tokens:    tokens,
		Rates:     rates,
		Publisher: publisher,
		Admin:     cfg.Admin,
		Logger:    appLogger,
	})

	m := metrics.New()
	limiter := server.NewIPRateLimiter(cfg.RateLimit.RPS, cfg.RateLimit.Burst, m.HTTPRequestsLimited.Inc)
	router := server.NewRouter(handlers, server.RouterOptions{
		Tokens:  tokens,
		Limiter: limiter,
		Metrics: m,
		DB:      db,
		Logger:  appLogger,
	})

	httpServer := &http.Server{
		Addr:              normalizePort(cfg.Server.HTTPPort),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	grpcPort := normalizePort(cfg.Server.GRPCPort)
	lis, err := net.Listen("tcp", grpcPort)
	if err != nil {
		return fmt.Errorf("listen %s: %w", grpcPort, err)
	}
	grpcServer, healthServer := server.NewGRPCServer()

	// 7. Run until a signal arrives
	ctx, stop := signal.NotifyContext(parent, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		appLogger.Info("Starting HTTP server", zap.String("addr", httpServer.Addr))
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		appLogger.Info("Starting gRPC server", zap.String("port", grpcPort))
		if err := grpcServer.Serve(lis); err != nil {
			return fmt.Errorf("grpc server: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		server.WatchHealth(gctx, healthServer, db, healthInterval, appLogger)
		return nil
	})

	g.Go(func() error {
		ticker := time.NewTicker(sweepInterval)
		defer ticker.Stop()
		for {
			select {
			case <-gctx.Done():
				return nil
			case <-ticker.C:
				limiter.Sweep()
			}
		}
	})

	g.Go(func() error {
		<-gctx.Done()
		appLogger.Info("Shutting down server...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()

		err := httpServer.Shutdown(shutdownCtx)
		grpcServer.GracefulStop()
		return err
	})

	if err := g.Wait(); err != nil {
		return err
	}
	appLogger.Info("Server stopped")
	return nil
}

func normalizePort(port string) string {
	if !strings.Contains(port, ":") {
		return ":" + port
	}
	return port
}
