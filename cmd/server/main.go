package main

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"veriflow.backend/internal/config"
	"veriflow.backend/internal/domain/entities"
	domainrepos "veriflow.backend/internal/domain/repositories"
	"veriflow.backend/internal/infrastructure/jobs"
	"veriflow.backend/internal/infrastructure/repositories"
	"veriflow.backend/internal/infrastructure/transport"
	"veriflow.backend/internal/interfaces/http/handlers"
	"veriflow.backend/internal/interfaces/http/middleware"
	"veriflow.backend/internal/usecases"
	"veriflow.backend/pkg/jwt"
	"veriflow.backend/pkg/logger"
	"veriflow.backend/pkg/redis"
)

var (
	loadDotenv = godotenv.Load
	loadCfg    = config.Load
	initLog    = logger.Init
	initRedis  = redis.Init
	openDB     = func(dsn string) (*gorm.DB, error) {
		return gorm.Open(postgres.New(postgres.Config{
			DSN:                  dsn,
			PreferSimpleProtocol: true,
		}), &gorm.Config{
			PrepareStmt: false,
		})
	}
	runServer = func(r *gin.Engine, port string) error { return r.Run(":" + port) }
	getStdDB  = func(db *gorm.DB) (*sql.DB, error) { return db.DB() }
)

func main() {
	if err := runMainProcess(); err != nil {
		log.Fatal(err)
	}
}

func runMainProcess() error {
	// Load .env file
	if err := loadDotenv(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	// Load configuration
	cfg := loadCfg()

	// Initialize Logger
	initLog(cfg.Server.Env)
	logger.Info(context.Background(), "Logger initialized", zap.String("env", cfg.Server.Env))
	defer logger.Sync()

	// Set Gin mode
	if cfg.Server.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Connect to database using GORM
	dsn := cfg.Database.URL()
	db, err := openDB(dsn)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := getStdDB(db)
	if err != nil {
		return fmt.Errorf("failed to get generic database object: %w", err)
	}
	defer sqlDB.Close()

	if err := sqlDB.Ping(); err != nil {
		log.Printf("⚠️ Database not available: %v (endpoints will return errors)", err)
	} else {
		log.Println("✅ Connected to PostgreSQL via GORM")
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Pick the record store backend
	var (
		store   domainrepos.RecordStore
		sweeper *jobs.RecordSweeperJob
	)
	switch cfg.Verification.Store {
	case "postgres":
		sqlStore := repositories.NewRecordStore(db)
		store = sqlStore
		// expired rows are reclaimed lazily on read; the sweeper keeps the
		// table from growing unbounded
		sweeper = jobs.NewRecordSweeperJob(sqlStore, cfg.Verification.SweepInterval)
		go sweeper.Start(ctx)
		log.Println("✅ Verification records in PostgreSQL")
	default:
		if err := initRedis(cfg.Redis.URL, cfg.Redis.PASSWORD); err != nil {
			logger.Error(context.Background(), "Failed to initialize Redis", zap.Error(err))
			return fmt.Errorf("failed to initialize redis: %w", err)
		}
		store = redis.NewCodeStore()
		log.Println("✅ Verification records in Redis")
	}

	// Initialize JWT service
	jwtService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.Expiry)

	// Initialize repositories
	accountRepo := repositories.NewAccountRepository(db)

	// Initialize delivery transports; missing provider credentials fall back
	// to the log-only sender so local development works out of the box
	senders := buildSenders(cfg)

	// Initialize usecases
	issuanceUsecase := usecases.NewIssuanceUsecase(store, accountRepo, senders, cfg.Verification.CodeTTL)
	validationUsecase := usecases.NewValidationUsecase(store, usecases.NewAccountActivation(accountRepo))

	// Per-recipient issuance throttle
	limiter := middleware.NewRateLimiter(rate.Limit(float64(cfg.Verification.IssuePerMinute)/60.0), cfg.Verification.IssueBurst)

	// Initialize handlers
	verificationHandler := handlers.NewVerificationHandler(issuanceUsecase, validationUsecase, accountRepo, limiter)

	// Initialize router
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestIDMiddleware())
	r.Use(middleware.LoggerMiddleware())

	applyCORSMiddleware(r)
	registerHealthRoute(r)
	registerAPIV1Routes(r, routeDeps{
		verificationHandler: verificationHandler,
		authMiddleware:      middleware.AuthMiddleware(jwtService),
		issueLimiter:        limiter,
	})

	// Print all registered routes for debugging
	log.Println("📋 Registered Routes:")
	for _, route := range r.Routes() {
		log.Printf("   %s %s", route.Method, route.Path)
	}

	// Graceful shutdown
	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		<-quit
		log.Println("🛑 Shutting down server...")
		if sweeper != nil {
			sweeper.Stop()
		}
		cancel()
	}()

	// Start server
	log.Printf("🚀 Veriflow Backend starting on port %s", cfg.Server.Port)
	log.Printf("📚 API: http://localhost:%s/api/v1", cfg.Server.Port)
	log.Printf("❤️ Health: http://localhost:%s/health", cfg.Server.Port)

	if err := runServer(r, cfg.Server.Port); err != nil {
		return fmt.Errorf("failed to start server: %w", err)
	}
	return nil
}

func buildSenders(cfg *config.Config) map[entities.Channel]transport.CodeSender {
	senders := map[entities.Channel]transport.CodeSender{
		entities.ChannelEmail: transport.NewDevSender("email"),
		entities.ChannelPhone: transport.NewDevSender("phone"),
	}

	if email, err := transport.NewMailerSendSender(cfg.Transport.MailerSendKey, cfg.Transport.MailerFromName, cfg.Transport.MailerFromEmail); err == nil {
		senders[entities.ChannelEmail] = email
	} else {
		log.Printf("⚠️ MailerSend not configured, email codes go to the log: %v", err)
	}

	if sms, err := transport.NewSNSSender(cfg.Transport.SNSRegion); err == nil {
		senders[entities.ChannelPhone] = sms
	} else {
		log.Printf("⚠️ SNS not configured, SMS codes go to the log: %v", err)
	}

	return senders
}
