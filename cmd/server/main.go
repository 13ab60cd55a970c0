package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"concierge-backend/internal/cache"
	"concierge-backend/internal/config"
	"concierge-backend/internal/database"
	"concierge-backend/internal/db"
	"concierge-backend/internal/handlers"
	"concierge-backend/internal/health"
	h "concierge-backend/internal/http"
	"concierge-backend/internal/identity"
	"concierge-backend/internal/middleware"
	"concierge-backend/internal/models"
	"concierge-backend/internal/monitoring"
	"concierge-backend/internal/notify"
	"concierge-backend/internal/realtime"
	"concierge-backend/internal/services"
	"concierge-backend/internal/store"
	"concierge-backend/migrations"

	"github.com/jackc/pgx/v5/pgxpool"
)

// buildChannels picks the outbound transports from config. Anything but
// an explicitly configured provider falls back to mocks that log instead
// of sending, so a fresh checkout runs without credentials.
func buildChannels(cfg *config.Config) (notify.SMSChannel, notify.EmailChannel) {
	var smsChannel notify.SMSChannel
	var emailChannel notify.EmailChannel

	switch cfg.Notify.Provider {
	case "twilio":
		if cfg.Notify.Twilio.AccountSID == "" || cfg.Notify.Twilio.AuthToken == "" {
			log.Fatal("notify provider is twilio but TWILIO_ACCOUNT_SID / TWILIO_AUTH_TOKEN are not set")
		}
		smsChannel = notify.NewTwilioChannel(
			cfg.Notify.Twilio.AccountSID,
			cfg.Notify.Twilio.AuthToken,
			cfg.Notify.Twilio.FromNumber,
		)
		log.Println("[Notify] SMS via Twilio")
	default:
		smsChannel = notify.NewMockSMSChannel()
		log.Println("[Notify] SMS via mock channel (messages print to logs)")
	}

	if cfg.Notify.SendGrid.APIKey != "" {
		emailChannel = notify.NewSendGridChannel(
			cfg.Notify.SendGrid.APIKey,
			cfg.Notify.SendGrid.FromEmail,
			cfg.Notify.SendGrid.FromName,
		)
		log.Println("[Notify] Email via SendGrid")
	} else {
		emailChannel = notify.NewMockEmailChannel()
		log.Println("[Notify] Email via mock channel")
	}

	return smsChannel, emailChannel
}

// seedDemoCompany creates a company in the in-memory store and prints a
// token for its staff account so the API is usable immediately.
func seedDemoCompany(companies *services.CompanyService, jwtManager *identity.JWTManager) {
	ctx := context.Background()

	company, err := companies.CreateCompany(ctx, &models.CreateCompanyRequest{
		Name:        "Harborview Residences",
		Address:     "400 Harborview Way",
		Phone:       "+15550100000",
		Email:       "frontdesk@harborview.example",
		StaffEmails: []string{"staff@harborview.example"},
	})
	if err != nil {
		log.Fatalf("Failed to seed demo company: %v", err)
	}

	token, err := jwtManager.GenerateToken("staff@harborview.example", 24*time.Hour)
	if err != nil {
		log.Fatalf("Failed to mint demo token: %v", err)
	}

	log.Printf("[Demo] Company %q ready (id %s)", company.Name, company.ID)
	log.Printf("[Demo] Authorization: Bearer %s", token)
}

func main() {
	port := flag.Int("port", 0, "Server port (overrides config)")
	demo := flag.Bool("demo", false, "Run with an in-memory store, mock channels, and a seeded company")
	flag.Parse()

	cfg := config.Load()
	if *port != 0 {
		cfg.Server.Port = *port
	}

	if cfg.JWT.Secret == "" {
		if *demo {
			cfg.JWT.Secret = "demo-secret-do-not-use-in-production"
		} else {
			log.Fatal("JWT_SECRET is required (or run with --demo)")
		}
	}

	// Storage backend: Postgres in production, in-memory for demos.
	var documentStore store.Store
	var pool *pgxpool.Pool
	if *demo {
		log.Println("[Demo] Using in-memory document store")
		documentStore = store.NewMemoryStore()
	} else {
		pool = db.Connect(cfg)
		defer pool.Close()

		log.Println("Running database migrations...")
		migrator := database.NewMigrator(pool, migrations.Files)
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		if err := migrator.RunMigrations(ctx); err != nil {
			cancel()
			log.Fatalf("Failed to run migrations: %v", err)
		}
		cancel()

		documentStore = store.NewPGStore(pool)
	}

	// Redis cache is optional; auth falls back to database lookups.
	if err := cache.Init(); err != nil {
		log.Printf("[Redis] Cache unavailable: %v (company lookups hit the database)", err)
	} else {
		log.Println("[Redis] Cache connected successfully")
	}

	jwtManager := identity.NewJWTManager(cfg.JWT.Secret, cfg.JWT.Issuer)
	healthChecker := health.NewHealthChecker(pool)
	collector := monitoring.NewCollector(pool)
	hub := realtime.NewHub()

	smsChannel, emailChannel := buildChannels(cfg)

	// Services
	companyService := services.NewCompanyService(documentStore)
	residentService := services.NewResidentService(documentStore)
	bookingService := services.NewBookingService(documentStore)
	packageService := services.NewPackageService(documentStore, residentService)
	visitorService := services.NewVisitorService(documentStore)
	messageService := services.NewMessageService(documentStore, residentService, smsChannel, hub)
	issueService := services.NewIssueService(documentStore)
	dashboardService := services.NewDashboardService(documentStore)
	notificationService := services.NewNotificationService(documentStore, smsChannel, emailChannel)
	if cfg.Notify.TimeoutSeconds > 0 {
		notificationService.Timeout = time.Duration(cfg.Notify.TimeoutSeconds) * time.Second
	}
	reportService := services.NewReportService(packageService, companyService)

	if *demo {
		seedDemoCompany(companyService, jwtManager)
	}

	// Middleware
	authMiddleware := middleware.NewAuthMiddleware(jwtManager, companyService)
	corsMiddleware := middleware.NewCORS(cfg)
	apiLogging := middleware.NewAPILoggingMiddleware()
	defer apiLogging.Close()

	router := h.NewRouter(
		handlers.NewCompanyHandler(companyService),
		handlers.NewResidentHandler(residentService),
		handlers.NewBookingHandler(bookingService),
		handlers.NewPackageHandler(packageService),
		handlers.NewVisitorHandler(visitorService),
		handlers.NewParkingHandler(visitorService),
		handlers.NewMessageHandler(messageService),
		handlers.NewIssueHandler(issueService),
		handlers.NewDashboardHandler(dashboardService),
		handlers.NewNotificationHandler(notificationService),
		handlers.NewReportHandler(reportService),
		handlers.NewWebhookHandler(messageService, companyService),
		handlers.NewMonitoringHandler(collector),
		handlers.NewHealthHandler(healthChecker),
		hub,
		authMiddleware,
	)

	handler := middleware.PanicRecovery(
		middleware.MetricsMiddleware(
			apiLogging.Handler(
				corsMiddleware(router),
			),
		),
	)

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Printf("Server listening on %s", server.Addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down...")
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		log.Printf("Forced shutdown: %v", err)
	}
}
