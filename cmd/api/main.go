package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"wallet-ledger/config"
	httpHandler "wallet-ledger/internal/adapter/http/handler"
	sqsEvents "wallet-ledger/internal/adapter/messaging/sqs"
	memStorage "wallet-ledger/internal/adapter/storage/memory"
	pgStorage "wallet-ledger/internal/adapter/storage/postgres"
	redisStorage "wallet-ledger/internal/adapter/storage/redis"
	"wallet-ledger/internal/core/ports"
	"wallet-ledger/internal/service"
	"wallet-ledger/pkg/logger"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/sqs"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"
)

const idempotencyTTL = 24 * time.Hour

// repositories groups the storage-backed ports for the selected driver.
type repositories struct {
	wallets    ports.WalletRepository
	txs        ports.TransactionRepository
	users      ports.UserRepository
	logins     ports.LoginHistoryRepository
	audit      ports.AuditRepository
	transactor ports.DBTransactor
	health     ports.HealthChecker
	close      func()
}

func main() {
	// A missing .env is fine.
	_ = godotenv.Load()

	cfg, err := config.Load("")
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "invalid config: %v\n", err)
		os.Exit(1)
	}

	log := logger.New(cfg.Log.Level, cfg.Log.Pretty)
	gin.SetMode(cfg.Server.Mode)

	log.Info().
		Str("mode", cfg.Server.Mode).
		Int("port", cfg.Server.Port).
		Str("storage", cfg.Storage.Driver).
		Msg("Starting Wallet Ledger")

	ctx := context.Background()

	repos, err := openStorage(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Str("driver", cfg.Storage.Driver).Msg("Failed to initialise storage")
	}
	defer repos.close()

	healthCheckers := []ports.HealthChecker{repos.health}

	var (
		rateLimitStore   *redisStorage.RateLimitStore
		idempotencyStore ports.IdempotencyStore
	)
	if cfg.Redis.Enabled {
		rdb, err := redisStorage.NewClient(ctx, cfg.Redis, log)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to connect to Redis")
		}
		defer rdb.Close()
		log.Info().Msg("Redis connected")

		if cfg.RateLimit.Enabled {
			rateLimitStore = redisStorage.NewRateLimitStore(rdb)
		}
		idempotencyStore = redisStorage.NewIdempotencyStore(rdb)
		healthCheckers = append(healthCheckers, redisStorage.NewHealthCheck(rdb))
	} else {
		log.Warn().Msg("Redis disabled: rate limiting and transfer idempotency are off")
	}

	var (
		events     ports.EventPublisher
		dispatcher *service.EventDispatcher
	)
	if cfg.Events.Enabled {
		awsCfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(cfg.Events.AWSRegion))
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to load AWS config")
		}
		publisher := sqsEvents.NewPublisher(sqs.NewFromConfig(awsCfg), cfg.Events.SQSQueueURL)
		dispatcher = service.NewEventDispatcher(publisher, service.DefaultEventRetryIntervals, log)
		events = dispatcher
		log.Info().Str("queue", cfg.Events.SQSQueueURL).Msg("Transfer events enabled")
	} else {
		events = sqsEvents.NopPublisher{}
	}

	hashSvc := service.NewBcryptHashService(bcrypt.DefaultCost)
	tokenSvc := service.NewJWTTokenService(cfg.JWT.Secret, cfg.JWT.Expiry, cfg.JWT.Issuer, cfg.JWT.Audience)

	authSvc := service.NewAuthService(repos.users, repos.logins, hashSvc, tokenSvc, log)
	walletSvc := service.NewWalletService(repos.wallets, repos.txs, repos.transactor, events, log)
	auditSvc := service.NewAuditService(repos.audit, log)

	// Load OpenAPI spec for Swagger UI
	if specBytes, err := os.ReadFile("docs/api/openapi.yaml"); err == nil {
		httpHandler.SetSwaggerSpec(specBytes)
		log.Info().Msg("OpenAPI spec loaded for Swagger UI at /swagger")
	} else {
		log.Warn().Err(err).Msg("OpenAPI spec not found, Swagger UI will be unavailable")
	}

	router := httpHandler.SetupRouter(httpHandler.RouterDeps{
		AuthSvc:          authSvc,
		WalletSvc:        walletSvc,
		TokenSvc:         tokenSvc,
		AuditSvc:         auditSvc,
		RateLimitStore:   rateLimitStore,
		IdempotencyStore: idempotencyStore,
		IdempotencyTTL:   idempotencyTTL,
		HealthCheckers:   healthCheckers,
		CORSOrigins:      cfg.Server.CORSOrigins,
		RequestTimeout:   cfg.Server.RequestTimeout,
		Logger:           log,
	})

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:              addr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Info().Str("addr", addr).Msg("HTTP server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("HTTP server failed")
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
	}
	if dispatcher != nil {
		if err := dispatcher.Wait(shutdownCtx); err != nil {
			log.Warn().Err(err).Msg("Pending transfer events abandoned")
		}
	}

	log.Info().Msg("Server exited")
}

func openStorage(ctx context.Context, cfg *config.Config, log zerolog.Logger) (*repositories, error) {
	switch cfg.Storage.Driver {
	case config.DriverMemory:
		store := memStorage.NewStore()
		log.Warn().Msg("Using in-memory storage; data is lost on restart")
		return &repositories{
			wallets:    memStorage.NewWalletRepo(store),
			txs:        memStorage.NewTransactionRepo(store),
			users:      memStorage.NewUserRepo(store),
			logins:     memStorage.NewLoginHistoryRepo(store),
			audit:      memStorage.NewAuditRepo(store),
			transactor: memStorage.NewTransactor(store),
			health:     memStorage.NewHealthCheck(),
			close:      func() {},
		}, nil

	case config.DriverPostgres:
		pool, err := pgStorage.NewPool(ctx, cfg.Database, log)
		if err != nil {
			return nil, err
		}
		log.Info().Msg("PostgreSQL connected")

		if cfg.Database.MigrateOnStart {
			if err := pgStorage.Migrate(ctx, pool, log); err != nil {
				pool.Close()
				return nil, err
			}
		}

		return &repositories{
			wallets:    pgStorage.NewWalletRepo(pool),
			txs:        pgStorage.NewTransactionRepo(pool),
			users:      pgStorage.NewUserRepo(pool),
			logins:     pgStorage.NewLoginHistoryRepo(pool),
			audit:      pgStorage.NewAuditRepo(pool),
			transactor: pgStorage.NewTransactor(pool),
			health:     pgStorage.NewHealthCheck(pool),
			close:      pool.Close,
		}, nil
	}
	return nil, fmt.Errorf("unknown storage driver %q", cfg.Storage.Driver)
}
