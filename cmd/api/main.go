package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/crystal-land-academy/api/internal/config"
	"github.com/crystal-land-academy/api/internal/domain"
	"github.com/crystal-land-academy/api/internal/infrastructure/dynamo"
	jwtinfra "github.com/crystal-land-academy/api/internal/infrastructure/jwt"
	s3infra "github.com/crystal-land-academy/api/internal/infrastructure/s3"
	"github.com/crystal-land-academy/api/internal/infrastructure/smtp"
	"github.com/crystal-land-academy/api/internal/infrastructure/sns"
	"github.com/crystal-land-academy/api/internal/pkg/id"
	transporthttp "github.com/crystal-land-academy/api/internal/transport/http"
	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, reading from environment")
	}

	cfg := config.Load()

	// Bootstrap DynamoDB tables (creates them if they don't exist).
	dynamoClient := dynamo.NewClient(cfg)
	dynamo.Bootstrap(context.Background(), dynamoClient, cfg.DynamoTables)

	// JWT provider (optional — graceful fallback if keys are missing).
	var jwtProvider *jwtinfra.Provider
	if p, err := jwtinfra.NewProvider(cfg); err == nil {
		jwtProvider = p
	} else {
		log.Printf("WARN: JWT provider not available: %v", err)
	}

	// S3 store for teacher profile pictures.
	s3Client := s3infra.NewClient(cfg)
	pictureStore := s3infra.NewStore(s3Client, cfg.S3BucketName)

	// SMTP mailer for PIN delivery.
	mailer := smtp.NewMailer(cfg)

	// SNS SMS sender (optional — graceful fallback).
	var smsSender sns.SMSSender
	if sender, err := sns.NewSender(cfg); err == nil {
		smsSender = sender
	} else {
		log.Printf("WARN: SNS sender not available: %v", err)
	}

	deps := &transporthttp.Deps{
		PinRepo:          dynamo.NewPinRepo(dynamoClient, cfg.DynamoTables.Pins),
		NotificationRepo: dynamo.NewNotificationRepo(dynamoClient, cfg.DynamoTables.Notifications),
		ClassLevelRepo:   dynamo.NewClassLevelRepo(dynamoClient, cfg.DynamoTables.ClassLevels),
		TeacherRepo:      dynamo.NewTeacherRepo(dynamoClient, cfg.DynamoTables.Teachers),
		StudentRepo:      dynamo.NewStudentRepo(dynamoClient, cfg.DynamoTables.Students),
		AcademicYearRepo: dynamo.NewAcademicYearRepo(dynamoClient, cfg.DynamoTables.AcademicYears),
		UserRepo:         dynamo.NewUserRepo(dynamoClient, cfg.DynamoTables.Users),
		PictureStore:     pictureStore,
		Mailer:           mailer,
		SMSSender:        smsSender,
		JWTProvider:      jwtProvider,
	}

	if cfg.AdminEmail != "" && cfg.AdminPassword != "" {
		seedAdmin(context.Background(), deps.UserRepo, cfg)
	}

	router := transporthttp.NewRouter(cfg, deps)

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.AppPort),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Printf("Server starting on :%s (env=%s)", cfg.AppPort, cfg.AppEnv)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("forced shutdown: %v", err)
	}
	log.Println("Server stopped")
}

// seedAdmin creates the configured admin account if no user holds its email.
func seedAdmin(ctx context.Context, users *dynamo.UserRepo, cfg *config.Config) {
	if _, err := users.GetByEmail(ctx, cfg.AdminEmail); err == nil {
		return
	} else if !errors.Is(err, domain.ErrNotFound) {
		log.Printf("WARN: admin seed lookup failed: %v", err)
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(cfg.AdminPassword), bcrypt.DefaultCost)
	if err != nil {
		log.Printf("WARN: admin seed hash failed: %v", err)
		return
	}
	u := &domain.User{
		UserID:       id.New(),
		Email:        cfg.AdminEmail,
		PasswordHash: string(hash),
		Role:         domain.RoleAdmin,
		CreatedAt:    time.Now().UTC(),
	}
	if err := users.Put(ctx, u); err != nil {
		log.Printf("WARN: admin seed write failed: %v", err)
		return
	}
	log.Printf("Seeded admin account %s", cfg.AdminEmail)
}
