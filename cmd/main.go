package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	echoMiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/random"

	"staymart/internal/caching"
	"staymart/internal/handlers"
	"staymart/internal/jobs/background"
	"staymart/internal/middleware"
	"staymart/internal/models"
	"staymart/internal/repositories"
	"staymart/internal/services"
	"staymart/pkg/database"
)

const version = "1.0.0"

func main() {
	// Database connection
	databaseURL := os.Getenv("DATABASE_URL")
	if databaseURL == "" {
		log.Fatal("DATABASE_URL environment variable is required")
	}

	pool, err := database.NewPool(databaseURL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer pool.Close()

	// JWT configuration
	jwtSecret := os.Getenv("JWT_SECRET")
	if jwtSecret == "" {
		jwtSecret = random.String(32) // Generate random secret for development
		log.Println("WARNING: JWT_SECRET not set, using a generated secret; sessions will not survive restarts")
	}
	jwtExpiry := 72 * time.Hour
	if hoursStr := os.Getenv("JWT_EXPIRY_HOURS"); hoursStr != "" {
		if hours, err := strconv.Atoi(hoursStr); err == nil && hours > 0 {
			jwtExpiry = time.Duration(hours) * time.Hour
		}
	}
	cookieDomain := os.Getenv("COOKIE_DOMAIN")

	// Redis configuration
	redisAddr := os.Getenv("REDIS_ADDR")
	if redisAddr == "" {
		redisAddr = "localhost:6379"
	}
	redisPassword := os.Getenv("REDIS_PASSWORD")
	redisDB := 0
	if dbStr := os.Getenv("REDIS_DB"); dbStr != "" {
		if db, err := strconv.Atoi(dbStr); err == nil {
			redisDB = db
		}
	}

	// MinIO configuration
	minioEndpoint := os.Getenv("MINIO_ENDPOINT")
	if minioEndpoint == "" {
		minioEndpoint = "localhost:9000"
	}
	minioAccessKey := os.Getenv("MINIO_ACCESS_KEY")
	if minioAccessKey == "" {
		minioAccessKey = "minioadmin"
	}
	minioSecretKey := os.Getenv("MINIO_SECRET_KEY")
	if minioSecretKey == "" {
		minioSecretKey = "minioadmin"
	}
	minioUseSSL := os.Getenv("MINIO_USE_SSL") == "true"
	minioBucket := os.Getenv("MINIO_BUCKET")
	if minioBucket == "" {
		minioBucket = "staymart-pictures"
	}
	minioPublicURL := os.Getenv("MINIO_PUBLIC_URL")
	if minioPublicURL == "" {
		minioPublicURL = "http://" + minioEndpoint
	}

	mediaSvc, err := services.NewMinioMediaService(minioEndpoint, minioAccessKey, minioSecretKey, minioUseSSL, minioBucket, minioPublicURL)
	if err != nil {
		log.Fatalf("Failed to initialize media service: %v", err)
	}
	if err := mediaSvc.EnsureBucket(context.Background()); err != nil {
		log.Printf("WARN: could not ensure picture bucket exists: %v", err)
	}

	// Optional Google ID token verification for federated login
	var googleVerifier *services.GoogleVerifier
	if jwksURL := os.Getenv("GOOGLE_JWKS_URL"); jwksURL != "" {
		googleVerifier, err = services.NewGoogleVerifier(context.Background(), jwksURL)
		if err != nil {
			log.Fatalf("Failed to initialize Google token verifier: %v", err)
		}
	}

	// Repositories
	userRepo := repositories.NewUserRepo(pool)
	placeRepo := repositories.NewPlaceRepo(pool)
	bookingRepo := repositories.NewBookingRepo(pool)

	// Cache + services
	cacheSvc := caching.NewRedisCacheService(redisAddr, redisPassword, redisDB)
	tokenSvc := services.NewTokenService(jwtSecret, jwtExpiry, cookieDomain)
	userSvc := services.NewUserService(userRepo, tokenSvc, googleVerifier)
	placeSvc := services.NewPlaceService(placeRepo, cacheSvc)
	statsSvc := services.NewStatsService(userRepo, placeRepo, bookingRepo, cacheSvc)

	// Handlers
	userHandlers := handlers.NewUserHandlers(userSvc, tokenSvc, mediaSvc)
	placeHandlers := handlers.NewPlaceHandlers(placeSvc)
	adminHandlers := handlers.NewAdminHandlers(statsSvc)
	healthHandlers := handlers.NewHealthHandlers(pool, cacheSvc)

	// Background jobs
	scheduler, err := background.NewJobScheduler(statsSvc)
	if err != nil {
		log.Fatalf("Failed to create job scheduler: %v", err)
	}
	scheduler.Start()
	defer func() {
		if err := scheduler.Stop(); err != nil {
			log.Printf("Failed to stop job scheduler: %v", err)
		}
	}()

	e := echo.New()

	// Global middleware
	e.Use(echoMiddleware.Logger())
	e.Use(echoMiddleware.Recover())
	e.Use(echoMiddleware.CORS())
	e.Use(echoMiddleware.RemoveTrailingSlash())

	requireSession := middleware.RequireSession(tokenSvc)
	requireAdmin := middleware.RequireRole(userRepo, models.RoleAdmin)

	// Health endpoints
	e.GET("/health", healthHandlers.HealthCheck)
	e.GET("/health/ready", healthHandlers.ReadinessCheck)

	// User routes
	user := e.Group("/user")
	user.POST("/register", userHandlers.Register)
	user.POST("/login", userHandlers.Login)
	user.POST("/google/login", userHandlers.GoogleLogin)
	user.POST("/upload-picture", userHandlers.UploadPicture)
	user.GET("/logout", userHandlers.Logout)
	user.PUT("/update-user", userHandlers.UpdateUser, requireSession)
	user.GET("/owners", userHandlers.Owners, requireSession)
	user.PUT("/verify-owner/:id", userHandlers.VerifyOwner, requireSession, requireAdmin)
	user.PUT("/unverify-owner/:id", userHandlers.UnverifyOwner, requireSession, requireAdmin)

	// Place routes
	place := e.Group("/place")
	place.GET("", placeHandlers.GetPlaces)
	place.GET("/pending", placeHandlers.PendingPlaces)
	place.PUT("/activate/:id", placeHandlers.ActivatePlace, requireSession, requireAdmin)
	place.GET("/property-types", placeHandlers.PropertyTypes)
	place.POST("/add-places", placeHandlers.AddPlace, requireSession)
	place.GET("/user-places", placeHandlers.UserPlaces, requireSession)
	place.PUT("/update-place", placeHandlers.UpdatePlace, requireSession)
	place.GET("/search/:key", placeHandlers.SearchPlaces)
	place.GET("/:id", placeHandlers.SinglePlace)
	place.DELETE("/:id", placeHandlers.DeletePlace, requireSession)

	// Admin routes
	e.GET("/admin/stats", adminHandlers.GetStats)

	portStr := os.Getenv("PORT")
	if portStr == "" {
		portStr = "8080"
	}
	port, err := strconv.Atoi(portStr)
	if err != nil {
		log.Fatalf("Invalid port %s: %v", portStr, err)
	}

	log.Printf("staymart server v%s starting on port %d", version, port)
	e.Logger.Fatal(e.Start(fmt.Sprintf(":%d", port)))
}
