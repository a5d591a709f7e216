package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/roomly/roomly-api/internal/config"
	"github.com/roomly/roomly-api/internal/domain/admin"
	"github.com/roomly/roomly-api/internal/domain/auth"
	"github.com/roomly/roomly-api/internal/domain/booking"
	"github.com/roomly/roomly-api/internal/domain/chat"
	"github.com/roomly/roomly-api/internal/domain/dashboard"
	"github.com/roomly/roomly-api/internal/domain/favorite"
	"github.com/roomly/roomly-api/internal/domain/payment"
	"github.com/roomly/roomly-api/internal/domain/photo"
	"github.com/roomly/roomly-api/internal/domain/space"
	"github.com/roomly/roomly-api/internal/domain/user"
	"github.com/roomly/roomly-api/internal/middleware"
	"github.com/roomly/roomly-api/internal/pkg/checkout"
	"github.com/roomly/roomly-api/internal/pkg/database"
	"github.com/roomly/roomly-api/internal/pkg/imaging"
	"github.com/roomly/roomly-api/internal/pkg/jwt"
	pkgresponse "github.com/roomly/roomly-api/internal/pkg/response"
	"github.com/roomly/roomly-api/internal/pkg/storage"
)

func main() {
	cfg := config.Load()
	setupLogger(cfg)

	log.Info().
		Str("env", cfg.Env).
		Str("port", cfg.Port).
		Msg("Starting Roomly API")

	db, err := database.NewPostgres(cfg.DatabaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to PostgreSQL")
	}
	defer database.ClosePostgres(db)

	redisClient, err := database.NewRedis(cfg.RedisURL)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to Redis")
	}
	defer database.CloseRedis(redisClient)

	jwtService := jwt.NewService(cfg.JWTSecret, cfg.JWTAccessTTL, cfg.JWTRefreshTTL)

	store := newStorage(cfg)
	processor := imaging.NewProcessor(imaging.DefaultConfig())

	checkoutClient := checkout.NewClient(checkout.Config{
		MerchantID: cfg.CheckoutMerchantID,
		Secret1:    cfg.CheckoutSecret1,
		Secret2:    cfg.CheckoutSecret2,
		TestMode:   cfg.CheckoutTestMode,
		SuccessURL: cfg.FrontendURL + "/bookings?payment=success",
		FailURL:    cfg.FrontendURL + "/bookings?payment=failed",
	})

	// ---------- Repositories ----------
	userRepo := user.NewRepository(db)
	spaceRepo := space.NewRepository(db)
	bookingRepo := booking.NewRepository(db)
	chatRepo := chat.NewRepository(db)
	photoRepo := photo.NewRepository(db)
	favoriteRepo := favorite.NewRepository(db)
	adminRepo := admin.NewRepository(db)

	// ---------- WebSocket hub ----------
	chatHub := chat.NewHub(redisClient)
	go chatHub.Run()

	// ---------- Services ----------
	authService := auth.NewService(userRepo, jwtService, auth.NewRedisStore(redisClient))
	chatService := chat.NewService(chatRepo, chatHub)
	spaceService := space.NewService(spaceRepo, bookingRepo)
	bookingService := booking.NewService(bookingRepo, spaceRepo, chatService)
	photoService := photo.NewService(photoRepo, spaceRepo, store, processor)
	favoriteService := favorite.NewService(favoriteRepo, spaceRepo)
	paymentService := payment.NewService(bookingRepo, checkoutClient, cfg.CheckoutSecret2)
	dashboardService := dashboard.NewService(db)

	adminJWTService := admin.NewJWTService(cfg.JWTSecret, cfg.AdminJWTTTL)
	adminService := admin.NewService(adminRepo, adminJWTService, userRepo, spaceRepo, db)

	// ---------- Handlers ----------
	authHandler := auth.NewHandler(authService)
	spaceHandler := space.NewHandler(spaceService)
	bookingHandler := booking.NewHandler(bookingService)
	chatHandler := chat.NewHandler(chatService, chatHub, redisClient, cfg.AllowedOrigins)
	photoHandler := photo.NewHandler(photoService)
	favoriteHandler := favorite.NewHandler(favoriteService)
	paymentHandler := payment.NewHandler(paymentService)
	dashboardHandler := dashboard.NewHandler(dashboardService)
	adminHandler := admin.NewHandler(adminService)

	authMiddleware := middleware.Auth(jwtService)

	// ---------- Router ----------
	r := chi.NewRouter()

	r.Use(chimw.RealIP)
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger)
	r.Use(middleware.Recover)
	r.Use(middleware.CORSHandler(cfg.AllowedOrigins))

	// WebSocket clients cannot set headers from the browser, so the
	// token arrives as a query parameter.
	r.Get("/ws", func(w http.ResponseWriter, r *http.Request) {
		if token := r.URL.Query().Get("token"); token != "" {
			r.Header.Set("Authorization", "Bearer "+token)
		}
		authMiddleware(http.HandlerFunc(chatHandler.WebSocket)).ServeHTTP(w, r)
	})

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		pkgresponse.OK(w, map[string]string{
			"status":  "ok",
			"version": "1.0.0",
		})
	})

	if cfg.StorageDriver == "local" {
		fileServer := http.StripPrefix("/uploads/", http.FileServer(http.Dir(cfg.LocalStoragePath)))
		r.Get("/uploads/*", fileServer.ServeHTTP)
	}

	r.Route("/api/v1", func(r chi.Router) {
		// the chat mount carries its own WebSocket endpoint, which a
		// timeout handler would cut off
		r.Mount("/chat", chatHandler.Routes(authMiddleware))

		r.Group(func(r chi.Router) {
			r.Use(middleware.Timeout(30 * time.Second))

			r.Mount("/auth", authHandler.Routes(authMiddleware))
			r.Mount("/spaces", spaceHandler.Routes(authMiddleware))
			r.Mount("/bookings", bookingHandler.Routes(authMiddleware))
			r.Mount("/photos", photoHandler.Routes(authMiddleware))
			r.Mount("/favorites", favoriteHandler.Routes(authMiddleware))
			r.Mount("/payments", paymentHandler.Routes(authMiddleware))
			r.Mount("/dashboard", dashboardHandler.Routes(authMiddleware))
		})
	})

	r.Mount("/webhooks", paymentHandler.WebhookRoutes())
	r.Mount("/api/admin", adminHandler.Routes(adminJWTService, adminService))

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info().Str("addr", server.Addr).Msg("HTTP server listening")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("HTTP server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Fatal().Err(err).Msg("Server forced to shutdown")
	}

	chatHub.Shutdown()

	log.Info().Msg("Server exited properly")
}

func newStorage(cfg *config.Config) storage.Storage {
	if cfg.StorageDriver == "r2" {
		store, err := storage.NewR2Storage(storage.R2Config{
			AccountID:       cfg.R2AccountID,
			AccessKeyID:     cfg.R2AccessKeyID,
			AccessKeySecret: cfg.R2AccessKeySecret,
			BucketName:      cfg.R2BucketName,
			PublicURL:       cfg.R2PublicURL,
		})
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to create R2 storage")
		}
		return store
	}

	store, err := storage.NewLocalStorage(cfg.LocalStoragePath, cfg.LocalStorageURL)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to create local storage")
	}
	return store
}

func setupLogger(cfg *config.Config) {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix

	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = zerolog.DebugLevel
	}
	zerolog.SetGlobalLevel(level)

	if cfg.IsDevelopment() {
		log.Logger = log.Output(zerolog.ConsoleWriter{
			Out:        os.Stdout,
			TimeFormat: "15:04:05",
		})
	}
}
