package main

import (
	"context"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"medilink-backend/config"
	"medilink-backend/database"
	"medilink-backend/matcher"
	"medilink-backend/middleware"
	"medilink-backend/routes"
	"medilink-backend/services"

	"github.com/gin-gonic/gin"
)

func main() {
	// Load configuration
	if err := config.Load(); err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	cfg := config.Get()

	// Set Gin mode
	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	} else {
		slog.SetLogLoggerLevel(slog.LevelDebug)
	}

	// Connect to database
	if err := database.Connect(cfg); err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer database.Disconnect(cfg)

	db, err := database.GetMongoDB()
	if err != nil {
		log.Fatalf("Failed to get database: %v", err)
	}
	doctors := database.NewDoctorRepository(db)

	seedCtx, cancelSeed := context.WithTimeout(context.Background(), time.Minute)
	if _, err := database.SeedIfEmpty(seedCtx, doctors, cfg.Matching.DoctorSeedFile); err != nil {
		log.Printf("WARNING: doctor seed failed: %v", err)
	}
	cancelSeed()

	replies, err := newMatcher(cfg, doctors)
	if err != nil {
		log.Fatalf("Failed to create matcher: %v", err)
	}

	upstream := services.NewUpstreamService(cfg.Upstream)
	chatbotService := services.NewChatbotService(replies, upstream)
	whatsappService := services.NewWhatsAppService(cfg.WhatsApp)

	if upstream.Enabled() {
		log.Printf("Chat replies are proxied to %s", cfg.Upstream.URL)
	}
	if !cfg.WhatsApp.Enabled() {
		log.Println("WARNING: WhatsApp integration is not fully configured")
	}

	// Create Gin router
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(gin.Logger())
	router.Use(middleware.CORS(cfg.AllowedOrigins))

	whatsappController := routes.SetupRoutes(router, routes.Dependencies{
		Config:   cfg,
		Chatbot:  chatbotService,
		WhatsApp: whatsappService,
		Doctors:  doctors,
		HealthCheck: func(ctx context.Context) error {
			return database.HealthCheck(ctx, cfg)
		},
	})

	logAvailableEndpoints(router)

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: cfg.Upstream.Timeout + 15*time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Printf("Server starting on port %s", cfg.Port)
		log.Printf("Health check: http://localhost:%s/health", cfg.Port)
		log.Printf("WhatsApp webhook URL: http://localhost:%s/api/whatsapp/webhook", cfg.Port)

		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Printf("Server forced to shutdown: %v", err)
	}
	whatsappController.Wait()

	log.Println("Server exited")
}

// newMatcher builds the symptom matcher from the matching configuration
func newMatcher(cfg *config.Config, roster matcher.RosterProvider) (*matcher.Matcher, error) {
	opts := []matcher.Option{
		matcher.WithLogger(slog.Default()),
		matcher.WithMaxSuggestions(cfg.Matching.MaxSuggestions),
		matcher.WithConditionGate(cfg.Matching.RequireConditionHit),
	}

	if path := cfg.Matching.VocabularyFile; path != "" {
		vocab, err := matcher.LoadVocabulary(path)
		if err != nil {
			return nil, err
		}
		log.Printf("Loaded vocabulary from %s", path)
		opts = append(opts, matcher.WithVocabulary(vocab))
	}

	return matcher.New(roster, opts...)
}

// logAvailableEndpoints logs all registered routes
func logAvailableEndpoints(router *gin.Engine) {
	log.Println("Available endpoints:")
	for _, route := range router.Routes() {
		log.Printf("  %s %s", route.Method, route.Path)
	}
}
