package main

import (
	"context"
	"errors"
	"log"
	"os"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"cardvault/internal/auth"
	"cardvault/internal/config"
	"cardvault/internal/db"
	"cardvault/internal/model"
	"cardvault/internal/repository"
)

func main() {
	log.Println("Starting seed script...")

	cfg := config.Load()

	gormDB, err := db.NewMySQL(cfg.MySQLDSN())
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	log.Println("Connected to database")

	if err := gormDB.AutoMigrate(
		&model.User{},
		&model.Merchant{},
	); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}
	log.Println("Database migrations completed")

	store := repository.NewStore(gormDB)
	ctx := context.Background()

	adminUser := getenv("SEED_ADMIN_USERNAME", "admin")
	adminEmail := getenv("SEED_ADMIN_EMAIL", "admin@cardvault.local")
	adminPass := os.Getenv("SEED_ADMIN_PASSWORD")
	generated := false
	if adminPass == "" {
		adminPass = uuid.New().String()
		generated = true
	}

	created, err := seedAdmin(ctx, store.Users, adminUser, adminEmail, adminPass)
	if err != nil {
		log.Fatalf("Failed to seed admin user: %v", err)
	}
	if created {
		if generated {
			log.Printf("Created admin user %q with generated password: %s", adminUser, adminPass)
		} else {
			log.Printf("Created admin user %q", adminUser)
		}
	} else {
		log.Printf("Admin user %q already exists, skipping", adminUser)
	}

	merchantName := getenv("SEED_MERCHANT_NAME", "Demo Merchant")
	merchantID, created, err := seedMerchant(ctx, gormDB, store.Merchants, merchantName)
	if err != nil {
		log.Fatalf("Failed to seed merchant: %v", err)
	}
	if created {
		log.Printf("Created merchant %q (id=%d)", merchantName, merchantID)
	} else {
		log.Printf("Merchant %q already exists (id=%d), skipping", merchantName, merchantID)
	}

	log.Println("Seed completed successfully!")
}

// seedAdmin creates the admin user unless one with the same username exists.
func seedAdmin(ctx context.Context, users repository.UserRepository, username, email, password string) (bool, error) {
	_, err := users.FindByUsername(ctx, username)
	if err == nil {
		return false, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return false, err
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return false, err
	}

	user := &model.User{
		Username:     username,
		Email:        email,
		PasswordHash: hash,
		Role:         model.RoleAdmin,
		Status:       model.StatusActive,
	}
	if err := users.Create(ctx, user); err != nil {
		return false, err
	}
	return true, nil
}

// seedMerchant creates a demo merchant unless one with the same name exists.
func seedMerchant(ctx context.Context, gormDB *gorm.DB, merchants repository.MerchantRepository, name string) (uint, bool, error) {
	var existing model.Merchant
	err := gormDB.WithContext(ctx).Where("merchant_name = ?", name).First(&existing).Error
	if err == nil {
		return existing.ID, false, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, false, err
	}

	merchant := &model.Merchant{
		MerchantName: name,
		ContactEmail: "merchant@cardvault.local",
		Status:       model.StatusActive,
	}
	if err := merchants.Create(ctx, merchant); err != nil {
		return 0, false, err
	}
	return merchant.ID, true, nil
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
