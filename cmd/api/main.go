package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/hamrostore/hamrostore-api/config"
	"github.com/hamrostore/hamrostore-api/internal/auth"
	"github.com/hamrostore/hamrostore-api/internal/notification/listener"
	"github.com/hamrostore/hamrostore-api/internal/pkg/broker"
	"github.com/hamrostore/hamrostore-api/internal/pkg/cache"
	"github.com/hamrostore/hamrostore-api/internal/pkg/database/postgres"
	"github.com/hamrostore/hamrostore-api/internal/pkg/logger"
	"github.com/hamrostore/hamrostore-api/internal/pkg/mailer"
	"github.com/hamrostore/hamrostore-api/internal/pkg/search"
	"github.com/hamrostore/hamrostore-api/internal/server"

	orderH "github.com/hamrostore/hamrostore-api/internal/order/handler"
	orderRepoPkg "github.com/hamrostore/hamrostore-api/internal/order/repository"
	orderUCPkg "github.com/hamrostore/hamrostore-api/internal/order/usecase"

	productH "github.com/hamrostore/hamrostore-api/internal/product/handler"
	productRepoPkg "github.com/hamrostore/hamrostore-api/internal/product/repository"
	productUCPkg "github.com/hamrostore/hamrostore-api/internal/product/usecase"

	userH "github.com/hamrostore/hamrostore-api/internal/user/handler"
	userRepoPkg "github.com/hamrostore/hamrostore-api/internal/user/repository"
	userUCPkg "github.com/hamrostore/hamrostore-api/internal/user/usecase"

	paymentH "github.com/hamrostore/hamrostore-api/internal/payment/handler"
)

func main() {
	// 1. Load Configuration
	_ = godotenv.Load()
	cfg := config.LoadEnv()

	// 2. Initialize Logger
	logConfig := &logger.Config{
		IsDevelopment:     false,
		Encoding:          "json",
		Level:             "info",
		DisableCaller:     cfg.Logger.DisableCaller,
		DisableStacktrace: cfg.Logger.DisableStacktrace,
	}
	if cfg.Server.AppEnv == "development" {
		logConfig.IsDevelopment = true
		logConfig.Encoding = "console"
		logConfig.Level = "debug"
	}

	appLogger := logger.New(logConfig)
	defer appLogger.Sync()

	// 3. Connect to Database
	db, err := postgres.NewPostgres(&postgres.Config{
		Host:            cfg.Postgres.Host,
		Port:            cfg.Postgres.Port,
		User:            cfg.Postgres.User,
		Password:        cfg.Postgres.Password,
		DBName:          cfg.Postgres.DBName,
		SSLMode:         cfg.Postgres.SSLMode,
		MaxOpenConns:    cfg.Postgres.MaxOpenConns,
		MaxIdleConns:    cfg.Postgres.MaxIdleConns,
		ConnMaxLifetime: time.Duration(cfg.Postgres.ConnMaxLifetime) * time.Second,
		ConnMaxIdleTime: time.Duration(cfg.Postgres.ConnMaxIdleTime) * time.Second,
	})
	if err != nil {
		appLogger.Fatal("Could not connect to database", zap.Error(err))
	}
	defer db.Close()
	appLogger.Info("Connected to PostgreSQL database", zap.String("db_name", cfg.Postgres.DBName))

	if err := postgres.Migrate(db); err != nil {
		appLogger.Fatal("Could not apply database schema", zap.Error(err))
	}

	// 4. Initialize Redis
	redisClient, err := cache.NewRedisClient(&cache.Config{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err != nil {
		appLogger.Warn("Could not connect to Redis (list caching disabled)", zap.Error(err))
		redisClient = nil
	} else {
		defer redisClient.Close()
		appLogger.Info("Connected to Redis", zap.String("addr", cfg.Redis.Addr))
	}

	// 5. Initialize Kafka
	kafkaProducer := broker.NewProducer(&broker.Config{
		Brokers: cfg.Kafka.Brokers,
		Topic:   cfg.Kafka.Topic,
	})
	defer kafkaProducer.Close()

	kafkaConsumer := broker.NewConsumer(&broker.Config{
		Brokers: cfg.Kafka.Brokers,
		Topic:   cfg.Kafka.Topic,
		GroupID: cfg.Kafka.GroupID,
	})
	defer kafkaConsumer.Close()
	appLogger.Info("Connected to Kafka", zap.Strings("brokers", cfg.Kafka.Brokers), zap.String("topic", cfg.Kafka.Topic))

	// 6. Initialize Elasticsearch
	esClient, err := search.NewClient(&search.Config{
		Addresses: cfg.Elastic.Addresses,
		Username:  cfg.Elastic.Username,
		Password:  cfg.Elastic.Password,
	})
	if err != nil {
		appLogger.Warn("Could not connect to Elasticsearch (search falls back to the database)", zap.Error(err))
		esClient = nil
	} else {
		appLogger.Info("Connected to Elasticsearch", zap.Strings("addresses", cfg.Elastic.Addresses))
	}

	// 7. Initialize Repositories
	productRepo := productRepoPkg.NewPGRepository(db)
	userRepo := userRepoPkg.NewPGRepository(db)
	orderRepo := orderRepoPkg.NewPGRepository(db)

	// 8. Initialize Auth
	jwtManager := auth.NewJWTManager(auth.JWTConfig{
		SecretKey: cfg.JWT.SecretKey,
		TokenTTL:  time.Duration(cfg.JWT.TTLHours) * time.Hour,
		Issuer:    cfg.JWT.Issuer,
	})
	hasher := auth.NewPasswordHasher()

	// 9. Initialize UseCases
	productUC := productUCPkg.NewProductUseCase(productRepo, redisClient, esClient, appLogger)
	userUC := userUCPkg.NewUserUseCase(userRepo, productRepo, hasher, jwtManager, appLogger)
	orderUC := orderUCPkg.NewOrderUseCase(orderRepo, userRepo, productRepo, kafkaProducer, cfg.Shipping, appLogger)

	// 10. Bootstrap the admin account
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	if err := userUC.EnsureAdmin(ctx, cfg.Admin.Username, cfg.Admin.Email, cfg.Admin.Password); err != nil {
		appLogger.Fatal("Could not bootstrap admin account", zap.Error(err))
	}

	// 11. Start Notification Listener
	smtpMailer := mailer.New(&mailer.Config{
		Host:     cfg.SMTP.Host,
		Port:     cfg.SMTP.Port,
		Username: cfg.SMTP.Username,
		Password: cfg.SMTP.Password,
		From:     cfg.SMTP.From,
	})
	notifListener := listener.NewNotificationListener(kafkaConsumer, smtpMailer, appLogger)
	go notifListener.Start(ctx)

	// 12. Initialize Handlers and Router
	handlers := server.Handlers{
		Products: productH.NewProductHandler(productUC, appLogger),
		Users:    userH.NewUserHandler(userUC, appLogger),
		Orders:   orderH.NewOrderHandler(orderUC, appLogger),
		Payments: paymentH.NewPaymentHandler(orderUC, cfg.Stripe.SecretKey, cfg.Stripe.Currency, appLogger),
	}
	router := server.NewRouter(cfg.Server.AppEnv, appLogger, jwtManager, handlers)

	// 13. Start HTTP Server
	port := cfg.Server.HTTPPort
	srv := &http.Server{
		Addr:    port,
		Handler: router,
	}

	go func() {
		appLogger.Info("Starting HTTP server", zap.String("port", port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("failed to serve: %v", err)
		}
	}()

	// Graceful Shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	appLogger.Info("Shutting down server...")
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		appLogger.Error("Forced shutdown", zap.Error(err))
	}
	appLogger.Info("Server stopped")
}
