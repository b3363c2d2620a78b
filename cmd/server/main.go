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

	"ironpeak/gym-app/internal/api"
	"ironpeak/gym-app/internal/config"
	"ironpeak/gym-app/internal/document"
	"ironpeak/gym-app/internal/repository/mongo"
	"ironpeak/gym-app/internal/service"
	"ironpeak/gym-app/internal/storage"

	"github.com/gin-gonic/gin"
)

func main() {
	log.Println("Starting Gym App Server...")

	// --- Configuration ---
	cfg, err := config.LoadConfig(".")
	if err != nil {
		log.Fatalf("FATAL: Could not load config: %v", err)
	}
	log.Println("Configuration loaded.")

	// --- Database Connection ---
	dbClient, err := mongo.ConnectDB(cfg.Database.URI)
	if err != nil {
		log.Fatalf("FATAL: Could not connect to MongoDB: %v", err)
	}
	defer func() {
		log.Println("Disconnecting MongoDB...")
		if err := mongo.DisconnectDB(dbClient); err != nil {
			log.Printf("ERROR: Failed to disconnect MongoDB: %v", err)
		}
	}()
	appDB := dbClient.Database(cfg.Database.Name)
	log.Println("Database connection established.")

	// --- Ensure Indexes ---
	// The unique memberId indexes back the one-request / one-program /
	// one-stats-row per member guarantees, so they are created up front.
	log.Println("Ensuring database indexes...")
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 1*time.Minute)
		defer cancel()
		mongo.EnsureMemberIndexes(ctx, appDB.Collection("members"))
		mongo.EnsureRequestIndexes(ctx, appDB.Collection("program_requests"))
		mongo.EnsureProgramIndexes(ctx, appDB.Collection("programs"))
		mongo.EnsureVideoIndexes(ctx, appDB.Collection("exercise_videos"))
		mongo.EnsureStatsIndexes(ctx, appDB.Collection("member_stats"))
		mongo.EnsureUserIndexes(ctx, appDB.Collection("users"))
		log.Println("Index creation process completed.")
	}()

	// --- Initialize Storage ---
	log.Println("Initializing file storage service...")
	fileStorage, err := storage.NewS3Storage(cfg.S3)
	if err != nil {
		log.Fatalf("FATAL: Failed to initialize S3 storage: %v", err)
	}

	// --- Initialize Repositories ---
	log.Println("Initializing repositories...")
	memberRepo := mongo.NewMongoMemberRepository(appDB)
	requestRepo := mongo.NewMongoRequestRepository(appDB)
	programRepo := mongo.NewMongoProgramRepository(appDB)
	videoRepo := mongo.NewMongoVideoRepository(appDB)
	statsRepo := mongo.NewMongoStatsRepository(appDB)
	userRepo := mongo.NewMongoUserRepository(appDB)

	// --- Initialize Services ---
	log.Println("Initializing services...")
	authService := service.NewAuthService(userRepo, cfg.JWT.Secret, cfg.JWT.Expiration)
	memberService := service.NewMemberService(memberRepo, requestRepo, programRepo, statsRepo, fileStorage)
	programService := service.NewProgramService(memberRepo, requestRepo, programRepo, document.NewPDFRenderer(), fileStorage)
	videoService := service.NewVideoService(videoRepo)
	tipsService := service.NewTipsService(service.BackendsFromConfig(cfg.AI), cfg.AI.AttemptTimeout)
	statsService := service.NewStatsService(statsRepo, memberRepo)

	// --- Initialize Gin Engine ---
	router := gin.Default() // Includes Logger and Recovery middleware

	// --- Setup Routes ---
	log.Println("Setting up API routes...")
	api.SetupRoutes(router, cfg.JWT.Secret, authService, memberService, programService, videoService, tipsService, statsService)

	// --- Start HTTP Server ---
	server := &http.Server{
		Addr:         cfg.Server.Address,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	log.Printf("Server starting on %s", cfg.Server.Address)

	// --- Graceful Shutdown ---
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("FATAL: ListenAndServe Error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	ctxShutdown, cancelShutdown := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancelShutdown()

	if err := server.Shutdown(ctxShutdown); err != nil {
		log.Fatalf("FATAL: Server forced to shutdown: %v", err)
	}

	log.Println("Server exiting.")
}
