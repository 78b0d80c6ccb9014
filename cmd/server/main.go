package main

import (
	"log"
	"net/http"
	"os"

	_ "cardvault/docs" // swagger docs

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"

	"cardvault/internal/auth"
	"cardvault/internal/config"
	"cardvault/internal/crypto"
	"cardvault/internal/db"
	"cardvault/internal/handler"
	"cardvault/internal/model"
	"cardvault/internal/repository"
	"cardvault/internal/router"
	"cardvault/internal/service"
)

// @title Card Vault API
// @version 1.0
// @description Credit card vault with session authentication, role-based access, field-level encryption and audit trail.
// @host localhost:5000
// @BasePath /
// @schemes http
func main() {
	cfg := config.Load()

	e := echo.New()
	e.Use(middleware.RequestID())

	gormDB, err := db.NewMySQL(cfg.MySQLDSN())
	if err != nil {
		log.Fatalf("database init: %v", err)
	}

	// Drop tables if RESET_DB environment variable is set
	if os.Getenv("RESET_DB") == "true" {
		log.Println("RESET_DB=true detected, dropping all tables...")
		tables := []interface{}{
			&model.AuditLog{},
			&model.Transaction{},
			&model.Card{},
			&model.Customer{},
			&model.Merchant{},
			&model.User{},
		}
		for _, table := range tables {
			if err := gormDB.Migrator().DropTable(table); err != nil {
				log.Printf("Warning: Failed to drop table (may not exist): %v", err)
			}
		}
		log.Println("Tables dropped")
	}

	// Run migrations for all models
	if err := gormDB.AutoMigrate(
		&model.User{},
		&model.Merchant{},
		&model.Customer{},
		&model.Card{},
		&model.Transaction{},
		&model.AuditLog{},
	); err != nil {
		log.Fatalf("auto-migrate: %v", err)
	}

	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPass,
		DB:       cfg.RedisDB,
	})

	cipher, err := crypto.NewCipherFromHex(cfg.AESKeyHex)
	if err != nil {
		log.Fatalf("field cipher init: %v", err)
	}

	sessions := auth.NewSessionManager(cfg.SessionSecret, auth.NewRedisSessionStore(redisClient))

	// Initialize repositories
	store := repository.NewStore(gormDB)
	txManager := repository.NewTxManager(gormDB)

	// Initialize services
	authService := service.NewAuthService(store.Users)
	customerService := service.NewCustomerService(store, txManager, cipher)
	cardService := service.NewCardService(store, txManager, cipher)
	merchantService := service.NewMerchantService(store, txManager, cipher)
	transactionService := service.NewTransactionService(store, txManager)
	auditService := service.NewAuditService(store.AuditLogs)

	// Initialize handlers
	authHandler := handler.NewAuthHandler(authService, sessions)
	customerHandler := handler.NewCustomerHandler(customerService)
	cardHandler := handler.NewCardHandler(cardService)
	merchantHandler := handler.NewMerchantHandler(merchantService)
	transactionHandler := handler.NewTransactionHandler(transactionService)
	auditHandler := handler.NewAuditHandler(auditService)

	// Register routes
	router.Register(
		e,
		cfg,
		sessions,
		authHandler,
		customerHandler,
		cardHandler,
		merchantHandler,
		transactionHandler,
		auditHandler,
	)

	addr := ":" + cfg.ServerPort
	if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
		log.Fatalf("server start: %v", err)
	}
}
