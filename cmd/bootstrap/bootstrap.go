package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"dawaksahl-api/config"
	deliveryHttp "dawaksahl-api/internal/delivery/http"
	"dawaksahl-api/internal/delivery/http/handler"
	"dawaksahl-api/internal/delivery/http/middleware"
	"dawaksahl-api/internal/infrastructure/cache"
	"dawaksahl-api/internal/infrastructure/database"
	"dawaksahl-api/internal/infrastructure/messaging"
	"dawaksahl-api/internal/infrastructure/metrics"
	"dawaksahl-api/internal/infrastructure/storage"
	"dawaksahl-api/internal/repository"
	"dawaksahl-api/internal/service"
	"dawaksahl-api/internal/usecase"
	"dawaksahl-api/pkg/i18n"
	"dawaksahl-api/pkg/jwt"
	"dawaksahl-api/pkg/validator"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

const limiterSweepInterval = time.Minute

// App holds all dependencies for the application
type App struct {
	Config      *config.Config
	DB          *gorm.DB
	RedisClient *redis.Client
	Server      *http.Server
	Log         *logrus.Logger

	publisher messaging.Publisher
	relay     *service.OutboxRelay
	stock     *service.StockReservationService
	scheduler *service.Scheduler
	limiters  []*middleware.RateLimiter
	cancel    context.CancelFunc
}

// New creates a new App instance with all dependencies initialized
func New() (*App, error) {
	app := &App{}

	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	app.Config = cfg

	// Setup logger
	app.Log = setupLogger(cfg.App.LogLevel)
	app.Log.Info("Configuration loaded successfully")

	// Initialize database
	db, err := database.NewPostgresConnection(cfg.DB, app.Log)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	app.DB = db
	app.Log.Info("Database connected successfully")

	if cfg.DB.AutoMigrate {
		if err := runMigrations(cfg.DB, app.Log); err != nil {
			app.Close()
			return nil, err
		}
	}

	// Initialize Redis
	redisClient, err := cache.NewRedisClient(cfg.Redis, app.Log)
	if err != nil {
		app.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}
	app.RedisClient = redisClient
	app.Log.Info("Redis connected successfully")

	// Initialize all layers
	if err := app.initialize(); err != nil {
		app.Close()
		return nil, err
	}

	return app, nil
}

// setupLogger configures the logrus logger; unknown levels fall back to info
func setupLogger(level string) *logrus.Logger {
	log := logrus.StandardLogger()
	log.SetFormatter(&logrus.JSONFormatter{})
	log.SetOutput(os.Stdout)

	parsed, err := logrus.ParseLevel(level)
	if err != nil {
		parsed = logrus.InfoLevel
	}
	log.SetLevel(parsed)
	return log
}

func runMigrations(cfg config.DBConfig, log *logrus.Logger) error {
	migrator, err := database.NewMigrator(cfg, log)
	if err != nil {
		return err
	}
	defer migrator.Close()

	if err := migrator.Up(); err != nil {
		return err
	}
	version, dirty, err := migrator.Version()
	if err == nil {
		log.WithFields(logrus.Fields{"version": version, "dirty": dirty}).Info("Migrations applied")
	}
	return nil
}

// initialize wires repositories, services, usecases and handlers into the HTTP server
func (app *App) initialize() error {
	cfg, db, redisClient, log := app.Config, app.DB, app.RedisClient, app.Log
	m := metrics.New()

	// Initialize JWT service
	jwtService := jwt.NewJWTService(cfg.JWT)

	// Initialize validator
	customValidator := validator.NewValidator()

	files, err := storage.NewLocalStorage(cfg.Upload.Dir, cfg.Upload.BaseURL)
	if err != nil {
		return fmt.Errorf("failed to prepare upload directory: %w", err)
	}

	// Initialize repositories
	userRepo := repository.NewUserRepository()
	addressRepo := repository.NewUserAddressRepository()
	patientProfileRepo := repository.NewPatientProfileRepository()
	pharmacyRepo := repository.NewPharmacyRepository()
	doctorProfileRepo := repository.NewDoctorProfileRepository()
	categoryRepo := repository.NewCategoryRepository()
	medicationRepo := repository.NewMedicationRepository()
	inventoryRepo := repository.NewInventoryRepository()
	prescriptionRepo := repository.NewPrescriptionRepository()
	orderRepo := repository.NewOrderRepository()
	conversationRepo := repository.NewConversationRepository()
	messageRepo := repository.NewMessageRepository()
	notificationRepo := repository.NewNotificationRepository()
	reviewRepo := repository.NewReviewRepository()
	timeSlotRepo := repository.NewTimeSlotRepository()
	appointmentRepo := repository.NewAppointmentRepository()
	favoriteRepo := repository.NewFavoriteRepository()
	cartRepo := repository.NewCartRepository()
	auditLogRepo := repository.NewAuditLogRepository()
	outboxRepo := repository.NewOutboxRepository()

	// Initialize services
	tokens := service.NewTokenStore(redisClient, log)
	hub := service.NewRealtimeHub(redisClient, log)
	auditService := service.NewAuditService(log, auditLogRepo)
	notificationService := service.NewNotificationService(log, notificationRepo, hub)
	outbox := service.NewOutboxRecorder(log, outboxRepo)

	app.stock = service.NewStockReservationService(db, redisClient, log, inventoryRepo, m)
	syncCtx, cancelSync := context.WithTimeout(context.Background(), time.Minute)
	defer cancelSync()
	if err := app.stock.SyncOnStartup(syncCtx); err != nil {
		return fmt.Errorf("failed to sync stock levels: %w", err)
	}

	if cfg.Kafka.Enabled() {
		app.publisher = messaging.NewKafkaProducer(cfg.Kafka.Brokers, cfg.Kafka.Topic, log)
		log.Infof("Publishing domain events to Kafka topic %s", cfg.Kafka.Topic)
	} else {
		app.publisher = messaging.NewLogPublisher(log)
		log.Info("No Kafka brokers configured, domain events are logged only")
	}
	app.relay = service.NewOutboxRelay(db, log, outboxRepo, app.publisher, m, cfg.Outbox)

	// Initialize usecases
	authUsecase := usecase.NewAuthUsecase(db, log, userRepo, patientProfileRepo, pharmacyRepo, doctorProfileRepo, jwtService, tokens, auditService)
	userUsecase := usecase.NewUserUsecase(db, log, userRepo, addressRepo, patientProfileRepo, files, tokens, auditService)
	pharmacyUsecase := usecase.NewPharmacyUsecase(db, log, cfg.Business, pharmacyRepo, inventoryRepo, orderRepo, auditService, notificationService)
	doctorUsecase := usecase.NewDoctorProfileUsecase(db, log, doctorProfileRepo, auditService)
	catalogUsecase := usecase.NewCatalogUsecase(db, log, redisClient, categoryRepo, medicationRepo, inventoryRepo, auditService)
	inventoryUsecase := usecase.NewInventoryUsecase(db, log, pharmacyRepo, medicationRepo, inventoryRepo, app.stock)
	prescriptionUsecase := usecase.NewPrescriptionUsecase(db, log, cfg.Business, prescriptionRepo, userRepo, pharmacyRepo, doctorProfileRepo, medicationRepo, files, auditService, notificationService, outbox, m)
	orderUsecase := usecase.NewOrderUsecase(db, log, cfg.Business, orderRepo, pharmacyRepo, inventoryRepo, prescriptionRepo, addressRepo, app.stock, auditService, notificationService, outbox, m)
	chatUsecase := usecase.NewChatUsecase(db, log, cfg.Business, conversationRepo, messageRepo, userRepo, orderRepo, files, hub, notificationService)
	notificationUsecase := usecase.NewNotificationUsecase(db, log, notificationRepo)
	reviewUsecase := usecase.NewReviewUsecase(db, log, reviewRepo, pharmacyRepo, medicationRepo, orderRepo, notificationService)
	appointmentUsecase := usecase.NewAppointmentUsecase(db, log, timeSlotRepo, appointmentRepo, doctorProfileRepo, notificationService)
	favoriteUsecase := usecase.NewFavoriteUsecase(db, log, favoriteRepo, medicationRepo, pharmacyRepo)
	cartUsecase := usecase.NewCartUsecase(db, log, cfg.Business, cartRepo, inventoryRepo)
	auditLogUsecase := usecase.NewAuditLogUsecase(db, log, auditLogRepo)
	healthUsecase := usecase.NewHealthUsecase(db, redisClient, log, cfg.App)

	// Background jobs
	app.scheduler = service.NewScheduler(log, m)
	jobs := []struct {
		name string
		spec string
		job  service.JobFunc
	}{
		{"expire_stale_orders", "@every 15m", orderUsecase.ExpireStale},
		{"expire_prescriptions", "@every 1h", prescriptionUsecase.ExpireDue},
		{"purge_notifications", "@daily", notificationUsecase.Purge},
		{"purge_outbox", "@daily", app.relay.PurgeProcessed},
	}
	for _, j := range jobs {
		if err := app.scheduler.Register(j.name, j.spec, j.job); err != nil {
			return err
		}
	}

	// Initialize handlers
	handlers := deliveryHttp.Handlers{
		Auth:         handler.NewAuthHandler(authUsecase, customValidator),
		User:         handler.NewUserHandler(userUsecase, customValidator, cfg.Upload),
		Pharmacy:     handler.NewPharmacyHandler(pharmacyUsecase, customValidator),
		Doctor:       handler.NewDoctorHandler(doctorUsecase, customValidator),
		Catalog:      handler.NewCatalogHandler(catalogUsecase, customValidator),
		Inventory:    handler.NewInventoryHandler(inventoryUsecase, customValidator),
		Prescription: handler.NewPrescriptionHandler(prescriptionUsecase, customValidator, cfg.Upload),
		Order:        handler.NewOrderHandler(orderUsecase, customValidator),
		Chat:         handler.NewChatHandler(chatUsecase, customValidator, cfg.Upload),
		WebSocket:    handler.NewWebSocketHandler(hub, cfg.CORS.AllowedOrigins, log),
		Notification: handler.NewNotificationHandler(notificationUsecase),
		Review:       handler.NewReviewHandler(reviewUsecase, customValidator),
		Appointment:  handler.NewAppointmentHandler(appointmentUsecase, customValidator),
		Favorite:     handler.NewFavoriteHandler(favoriteUsecase, customValidator),
		Cart:         handler.NewCartHandler(cartUsecase, customValidator),
		AuditLog:     handler.NewAuditLogHandler(auditLogUsecase),
		Health:       handler.NewHealthHandler(healthUsecase),
	}

	// Initialize middleware
	apiLimiter := middleware.NewRateLimiter("api", cfg.RateLimit.RequestsPerMinute, cfg.RateLimit.Burst, m, log).
		TrustProxyHops(cfg.RateLimit.TrustedProxyHops)
	authLimiter := middleware.NewRateLimiter("auth", cfg.RateLimit.AuthRequestsPerMinute, cfg.RateLimit.AuthBurst, m, log).
		TrustProxyHops(cfg.RateLimit.TrustedProxyHops)
	app.limiters = []*middleware.RateLimiter{apiLimiter, authLimiter}
	middlewares := deliveryHttp.Middlewares{
		Auth:      middleware.NewAuthMiddleware(jwtService, tokens, log),
		CORS:      middleware.NewCORSMiddleware(cfg.CORS),
		APILimit:  apiLimiter,
		AuthLimit: authLimiter,
	}

	// Initialize router
	language := i18n.Parse(cfg.App.DefaultLanguage, i18n.Arabic)
	router := deliveryHttp.NewRouter(handlers, middlewares, m, cfg.Upload.Dir, cfg.Upload.BaseURL, language, log)

	// Create server
	app.Server = &http.Server{
		Addr:              fmt.Sprintf(":%s", cfg.App.Port),
		Handler:           router.Setup(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	return nil
}

// Run starts the HTTP server and background workers, then handles graceful shutdown
func (app *App) Run() {
	ctx, cancel := context.WithCancel(context.Background())
	app.cancel = cancel

	for _, limiter := range app.limiters {
		go limiter.Run(ctx, limiterSweepInterval)
	}
	app.relay.Start()
	app.scheduler.Start()

	// Start server in goroutine
	go func() {
		app.Log.Infof("Server starting on port %s", app.Config.App.Port)
		app.Log.Infof("Environment: %s", app.Config.App.Env)
		if err := app.Server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			app.Log.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Wait for interrupt signal
	app.waitForShutdown()
}

// waitForShutdown blocks until an interrupt signal is received
func (app *App) waitForShutdown() {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	app.Log.Info("Shutting down server...")

	// Create shutdown context with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// Shutdown HTTP server gracefully
	if err := app.Server.Shutdown(ctx); err != nil {
		app.Log.Errorf("Server forced to shutdown: %v", err)
	}

	app.scheduler.Stop(ctx)
	app.relay.Stop()
	if app.cancel != nil {
		app.cancel()
	}

	// Close connections
	app.Close()

	app.Log.Info("Server shutdown complete")
}

// Close releases workers and connections (stock janitor, publisher, database, redis)
func (app *App) Close() {
	if app.stock != nil {
		app.stock.Stop()
	}

	if app.publisher != nil {
		if err := app.publisher.Close(); err != nil {
			app.Log.Warnf("Failed to close event publisher: %v", err)
		}
	}

	// Close database connection
	if app.DB != nil {
		sqlDB, err := app.DB.DB()
		if err == nil {
			sqlDB.Close()
		}
	}

	// Close Redis connection
	if app.RedisClient != nil {
		app.RedisClient.Close()
	}
}
