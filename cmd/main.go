package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/lib/pq"
	"github.com/redis/go-redis/v9"

	"github.com/m04kA/SMC-MeetingBooking/internal/api"
	approveBookingHandler "github.com/m04kA/SMC-MeetingBooking/internal/api/handlers/approve_booking"
	cancelBookingHandler "github.com/m04kA/SMC-MeetingBooking/internal/api/handlers/cancel_booking"
	createBookingHandler "github.com/m04kA/SMC-MeetingBooking/internal/api/handlers/create_booking"
	deleteBookingHandler "github.com/m04kA/SMC-MeetingBooking/internal/api/handlers/delete_booking"
	getAvailableSlotsHandler "github.com/m04kA/SMC-MeetingBooking/internal/api/handlers/get_available_slots"
	getBookingHandler "github.com/m04kA/SMC-MeetingBooking/internal/api/handlers/get_booking"
	getBookingsHandler "github.com/m04kA/SMC-MeetingBooking/internal/api/handlers/get_bookings"
	rejectBookingHandler "github.com/m04kA/SMC-MeetingBooking/internal/api/handlers/reject_booking"
	submitInquiryHandler "github.com/m04kA/SMC-MeetingBooking/internal/api/handlers/submit_inquiry"
	"github.com/m04kA/SMC-MeetingBooking/internal/api/middleware"
	"github.com/m04kA/SMC-MeetingBooking/internal/config"
	"github.com/m04kA/SMC-MeetingBooking/internal/infra/ratelimit"
	bookingRepo "github.com/m04kA/SMC-MeetingBooking/internal/infra/storage/booking"
	"github.com/m04kA/SMC-MeetingBooking/internal/integrations/calendar"
	"github.com/m04kA/SMC-MeetingBooking/internal/integrations/mailer"
	bookingsService "github.com/m04kA/SMC-MeetingBooking/internal/service/bookings"
	"github.com/m04kA/SMC-MeetingBooking/internal/service/notifications"
	approveBookingUC "github.com/m04kA/SMC-MeetingBooking/internal/usecase/approve_booking"
	createBookingUC "github.com/m04kA/SMC-MeetingBooking/internal/usecase/create_booking"
	getAvailableSlotsUC "github.com/m04kA/SMC-MeetingBooking/internal/usecase/get_available_slots"
	rejectBookingUC "github.com/m04kA/SMC-MeetingBooking/internal/usecase/reject_booking"
	submitInquiryUC "github.com/m04kA/SMC-MeetingBooking/internal/usecase/submit_inquiry"
	"github.com/m04kA/SMC-MeetingBooking/pkg/logger"
	"github.com/m04kA/SMC-MeetingBooking/pkg/metrics"
)

// bookingStore общий интерфейс хранилищ (memory и postgres) для use cases и сервиса
type bookingStore interface {
	createBookingUC.BookingRepository
	approveBookingUC.BookingRepository
	bookingsService.BookingRepository
}

func main() {
	// Загружаем конфигурацию
	cfg, err := config.Load("config.toml")
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Инициализируем логгер
	log, err := logger.New(cfg.Logs.File, cfg.Logs.Level, !cfg.IsProduction())
	if err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Close()

	log.Info("Starting SMC-MeetingBooking (environment=%s)...", cfg.App.Environment)

	policy, err := cfg.BusinessHours.Policy()
	if err != nil {
		log.Fatal("Invalid business hours: %v", err)
	}

	// Инициализируем метрики (если включены)
	var metricsCollector *metrics.Metrics
	if cfg.Metrics.Enabled {
		metricsCollector = metrics.New(cfg.Metrics.ServiceName)
		log.Info("Metrics enabled at %s", cfg.Metrics.Path)
	}

	ctx := context.Background()

	// Хранилище бронирований
	var store bookingStore
	switch cfg.Storage.Driver {
	case config.StoragePostgres:
		db, err := openDatabase(ctx, cfg.Database)
		if err != nil {
			log.Fatal("Failed to connect to database: %v", err)
		}
		defer db.Close()
		log.Info("Successfully connected to database (host=%s, port=%d, db=%s)",
			cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)

		if cfg.Database.AutoMigrate {
			if err := bookingRepo.Migrate(ctx, db); err != nil {
				log.Fatal("Failed to apply migrations: %v", err)
			}
			version, _ := bookingRepo.Version(ctx, db)
			log.Info("Database migrations applied (version=%d)", version)
		}

		store = bookingRepo.NewRepository(db)
	default:
		store = bookingRepo.NewMemoryRepository()
		log.Warn("Using in-memory booking storage: data is lost on restart")
	}

	// Календарь
	calendarProvider := newCalendarProvider(ctx, cfg, log, metricsCollector)

	// Почта и очередь уведомлений
	transport := newMailTransport(cfg, log)
	dispatcher := notifications.NewDispatcher(transport, notifications.DispatcherConfig{
		Workers:      cfg.Notifications.Workers,
		QueueSize:    cfg.Notifications.QueueSize,
		SendTimeout:  time.Duration(cfg.Notifications.SendTimeout) * time.Second,
		MaxPerSecond: cfg.Notifications.MaxPerSecond,
	}, log, metricsCollector)

	renderer, err := notifications.NewRenderer()
	if err != nil {
		log.Fatal("Failed to parse email templates: %v", err)
	}
	if cfg.Admin.Email == "" {
		log.Warn("admin.email is not configured: admin notifications and inquiries will not be delivered")
	}
	notifier := notifications.NewService(dispatcher, renderer, notifications.Config{
		AdminEmail:    cfg.Admin.Email,
		PublicBaseURL: cfg.App.PublicBaseURL,
		Timezone:      policy.TimezoneName(),
	}, log)

	// Лимитер запросов
	limiter, closeLimiter := newRateLimiter(cfg, log)
	defer closeLimiter()

	if cfg.Admin.Secret == "" {
		log.Warn("ADMIN_SECRET is not configured: all admin endpoints will answer 401")
	}

	// Инициализируем сервисы и use cases
	bookingSvc := bookingsService.NewService(store, metricsCollector, log)

	createBookingUseCase := createBookingUC.NewUseCase(store, notifier, metricsCollector, log)
	approveBookingUseCase := approveBookingUC.NewUseCase(store, calendarProvider, notifier, policy, metricsCollector, log)
	rejectBookingUseCase := rejectBookingUC.NewUseCase(store, notifier, metricsCollector, log)
	getAvailableSlotsUseCase := getAvailableSlotsUC.NewUseCase(calendarProvider, policy, log)
	submitInquiryUseCase := submitInquiryUC.NewUseCase(notifier, log)

	// Инициализируем handlers
	handlers := api.Handlers{
		CreateBooking:     createBookingHandler.NewHandler(createBookingUseCase, log),
		GetBooking:        getBookingHandler.NewHandler(bookingSvc, log),
		GetBookings:       getBookingsHandler.NewHandler(bookingSvc, log),
		ApproveBooking:    approveBookingHandler.NewHandler(approveBookingUseCase, log),
		RejectBooking:     rejectBookingHandler.NewHandler(rejectBookingUseCase, log),
		CancelBooking:     cancelBookingHandler.NewHandler(bookingSvc, log),
		DeleteBooking:     deleteBookingHandler.NewHandler(bookingSvc, log),
		GetAvailableSlots: getAvailableSlotsHandler.NewHandler(getAvailableSlotsUseCase, log),
		SubmitInquiry:     submitInquiryHandler.NewHandler(submitInquiryUseCase, !cfg.IsProduction(), log),
	}

	router := api.NewRouter(handlers, limiter, metricsCollector, api.RouterConfig{
		AdminSecret:  cfg.Admin.Secret,
		TrustProxy:   cfg.RateLimit.TrustProxy,
		MaxBodyBytes: cfg.Server.MaxBodyBytes,
		MetricsPath:  cfg.Metrics.Path,
	}, log)

	// Создаем HTTP сервер
	addr := fmt.Sprintf(":%d", cfg.Server.HTTPPort)
	srv := &http.Server{
		Addr:         addr,
		Handler:      router,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
	}

	// Graceful shutdown
	go func() {
		log.Info("Starting server on %s", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("Server failed to start: %v", err)
		}
	}()

	// Ожидаем сигнал завершения
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		time.Duration(cfg.Server.ShutdownTimeout)*time.Second,
	)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown: %v", err)
	}

	// Дожидаемся отправки писем из очереди
	if err := dispatcher.Stop(shutdownCtx); err != nil {
		log.Error("Notification queue was not drained: %v", err)
	}

	log.Info("Server stopped gracefully")
}

func openDatabase(ctx context.Context, cfg config.DatabaseConfig) (*sql.DB, error) {
	db, err := sql.Open("postgres", cfg.DSN())
	if err != nil {
		return nil, err
	}

	// Настраиваем connection pool
	db.SetMaxOpenConns(cfg.MaxOpenConns)
	db.SetMaxIdleConns(cfg.MaxIdleConns)
	db.SetConnMaxLifetime(time.Duration(cfg.ConnMaxLifetime) * time.Second)

	pingCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping: %w", err)
	}

	return db, nil
}

// newCalendarProvider в production без учетных данных все вызовы календаря завершаются ошибкой
func newCalendarProvider(ctx context.Context, cfg *config.Config, log *logger.Logger, m *metrics.Metrics) calendar.Provider {
	if !cfg.Calendar.IsConfigured() {
		if cfg.IsProduction() {
			log.Error("Google Calendar credentials are missing: slots and approvals will fail with 503")
			return calendar.NewUnconfigured()
		}
		log.Warn("Google Calendar credentials are missing: using mock calendar")
		return calendar.NewMock(log)
	}

	client, err := calendar.NewClient(ctx, calendar.Options{
		CalendarID:      cfg.Calendar.CalendarID,
		CredentialsJSON: cfg.Calendar.CredentialsJSON,
		CredentialsFile: cfg.Calendar.CredentialsFile,
		Timeout:         time.Duration(cfg.Calendar.Timeout) * time.Second,
	}, log, m)
	if err != nil {
		if cfg.IsProduction() {
			log.Fatal("Failed to initialize Google Calendar client: %v", err)
		}
		log.Warn("Failed to initialize Google Calendar client, using mock calendar: %v", err)
		return calendar.NewMock(log)
	}

	log.Info("Google Calendar client initialized (calendar_id=%s)", cfg.Calendar.CalendarID)
	if cfg.IsProduction() {
		return client
	}
	return calendar.NewFallback(client, log)
}

// newMailTransport в production без SMTP письма не отправляются и ошибка видна вызывающему
func newMailTransport(cfg *config.Config, log *logger.Logger) notifications.Transport {
	if !cfg.SMTP.IsConfigured() {
		if cfg.IsProduction() {
			log.Error("SMTP is not configured: emails will not be sent")
			return mailer.NewUnconfiguredTransport()
		}
		log.Warn("SMTP is not configured: emails are logged instead of sent")
		return mailer.NewNoopTransport(log)
	}

	transport, err := mailer.NewSMTPTransport(mailer.SMTPConfig{
		Host:     cfg.SMTP.Host,
		Port:     cfg.SMTP.Port,
		Username: cfg.SMTP.Username,
		Password: cfg.SMTP.Password,
		From:     cfg.SMTP.From,
		FromName: cfg.SMTP.FromName,
		Timeout:  time.Duration(cfg.SMTP.Timeout) * time.Second,
	})
	if err != nil {
		log.Fatal("Invalid SMTP configuration: %v", err)
	}

	log.Info("SMTP transport initialized (host=%s, port=%d)", cfg.SMTP.Host, cfg.SMTP.Port)
	return transport
}

func newRateLimiter(cfg *config.Config, log *logger.Logger) (middleware.RateLimiter, func()) {
	if !cfg.RateLimit.IsEnabled() {
		log.Warn("Rate limiting is disabled")
		return ratelimit.NewNoopLimiter(), func() {}
	}

	policy := ratelimit.Policy{Requests: cfg.RateLimit.Requests, Window: cfg.RateLimit.Window()}

	if cfg.RateLimit.Backend == config.RateLimitRedis {
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		log.Info("Redis rate limiter initialized (addr=%s, %d requests per %s)", cfg.Redis.Addr, policy.Requests, policy.Window)
		return ratelimit.NewRedisLimiter(client, cfg.Redis.Prefix, policy), func() { _ = client.Close() }
	}

	log.Info("In-memory rate limiter initialized (%d requests per %s)", policy.Requests, policy.Window)
	return ratelimit.NewMemoryLimiter(policy), func() {}
}
