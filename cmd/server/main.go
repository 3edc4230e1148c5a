package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"time"

	"pg-backend/internal/auth"
	"pg-backend/internal/cache"
	"pg-backend/internal/config"
	"pg-backend/internal/database"
	"pg-backend/internal/db"
	"pg-backend/internal/handlers"
	"pg-backend/internal/health"
	apihttp "pg-backend/internal/http"
	"pg-backend/internal/middleware"
	"pg-backend/internal/repositories"
	"pg-backend/internal/services"
	"pg-backend/internal/storage"
	"pg-backend/internal/ws"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Connect to Postgres
	pool := db.Connect(cfg)
	defer pool.Close()

	// Initialize Redis cache (optional - graceful fallback if unavailable)
	if err := cache.Init(); err != nil {
		log.Printf("[Redis] Cache unavailable: %v (list caching disabled)", err)
	} else {
		log.Println("[Redis] Cache connected successfully")
	}

	// Run database migrations
	log.Println("Running database migrations...")
	migrator := database.NewMigrator(pool, "migrations")
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := migrator.RunMigrations(ctx); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	// File storage for proofs, photos and documents
	files, err := storage.New(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize file storage: %v", err)
	}

	// Initialize JWT manager and health checker
	jwtManager := auth.NewJWTManager(cfg)
	healthChecker := health.NewHealthChecker(pool)

	// Initialize repositories
	userRepo := repositories.NewUserRepository(pool)
	tenantRepo := repositories.NewTenantRepository(pool)
	roomRepo := repositories.NewRoomRepository(pool)
	paymentRepo := repositories.NewPaymentRepository(pool)
	complaintRepo := repositories.NewComplaintRepository(pool)
	notificationRepo := repositories.NewNotificationRepository(pool)

	// Initialize services
	userService := services.NewUserService(userRepo, tenantRepo, jwtManager)
	tenantService := services.NewTenantService(tenantRepo, paymentRepo, complaintRepo)
	roomService := services.NewRoomService(roomRepo)
	paymentService := services.NewPaymentService(paymentRepo, tenantRepo, notificationRepo)
	complaintService := services.NewComplaintService(complaintRepo, tenantRepo, notificationRepo)
	notificationService := services.NewNotificationService(notificationRepo, userRepo)
	receiptService := services.NewReceiptService()

	// Websocket hub for live notification delivery
	hub := ws.NewHub()

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(userService, tenantService)
	tenantHandler := handlers.NewTenantHandler(tenantService, files)
	roomHandler := handlers.NewRoomHandler(roomService)
	paymentHandler := handlers.NewPaymentHandler(paymentService, tenantService, receiptService, files, hub)
	complaintHandler := handlers.NewComplaintHandler(complaintService, tenantService, files, hub)
	notificationHandler := handlers.NewNotificationHandler(notificationService, hub)
	monitoringHandler := handlers.NewMonitoringHandler(pool)
	healthHandler := handlers.NewHealthHandler(healthChecker)

	authMiddleware := middleware.NewAuthMiddleware(jwtManager, userRepo)

	router := apihttp.NewRouter(
		cfg,
		authHandler,
		tenantHandler,
		roomHandler,
		paymentHandler,
		complaintHandler,
		notificationHandler,
		monitoringHandler,
		healthHandler,
		authMiddleware,
	)

	corsMiddleware := middleware.NewCORS(cfg)
	handler := middleware.PanicRecovery(
		middleware.MetricsMiddleware(
			corsMiddleware(router)))

	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	log.Printf("Server running on %s", addr)
	if err := http.ListenAndServe(addr, handler); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}
