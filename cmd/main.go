package main

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	cancelBookingHandler "github.com/mentorguru/MG-BookingService/internal/api/handlers/cancel_booking"
	createBookingHandler "github.com/mentorguru/MG-BookingService/internal/api/handlers/create_booking"
	getAvailableSlotsHandler "github.com/mentorguru/MG-BookingService/internal/api/handlers/get_available_slots"
	getBookingHandler "github.com/mentorguru/MG-BookingService/internal/api/handlers/get_booking"
	getMentorBookingsHandler "github.com/mentorguru/MG-BookingService/internal/api/handlers/get_mentor_bookings"
	getMentorReviewsHandler "github.com/mentorguru/MG-BookingService/internal/api/handlers/get_mentor_reviews"
	getUserBookingsHandler "github.com/mentorguru/MG-BookingService/internal/api/handlers/get_user_bookings"
	joinSessionHandler "github.com/mentorguru/MG-BookingService/internal/api/handlers/join_session"
	submitReviewHandler "github.com/mentorguru/MG-BookingService/internal/api/handlers/submit_review"
	updateStatusHandler "github.com/mentorguru/MG-BookingService/internal/api/handlers/update_status"
	"github.com/mentorguru/MG-BookingService/internal/api/middleware"
	"github.com/mentorguru/MG-BookingService/internal/config"
	bookingRepo "github.com/mentorguru/MG-BookingService/internal/infra/storage/booking"
	reviewRepo "github.com/mentorguru/MG-BookingService/internal/infra/storage/review"
	mentorServiceClient "github.com/mentorguru/MG-BookingService/internal/integrations/mentorservice"
	paymentServiceClient "github.com/mentorguru/MG-BookingService/internal/integrations/paymentservice"
	bookingsService "github.com/mentorguru/MG-BookingService/internal/service/bookings"
	reviewsService "github.com/mentorguru/MG-BookingService/internal/service/reviews"
	createBookingUC "github.com/mentorguru/MG-BookingService/internal/usecase/create_booking"
	getAvailableSlotsUC "github.com/mentorguru/MG-BookingService/internal/usecase/get_available_slots"
	"github.com/mentorguru/MG-BookingService/pkg/dbmetrics"
	"github.com/mentorguru/MG-BookingService/pkg/logger"
	"github.com/mentorguru/MG-BookingService/pkg/metrics"
	"github.com/mentorguru/MG-BookingService/pkg/simpletxmanager"
	"github.com/mentorguru/MG-BookingService/pkg/txmanager"
)

// TxManager объединяет транзакционные контракты usecases и сервисов
type TxManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

func main() {
	// Загружаем конфигурацию
	cfg, err := config.Load("config.toml")
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Инициализируем логгер
	log, err := logger.New(cfg.Logs.File, cfg.Logs.Level)
	if err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Close()

	log.Info("Starting MG-BookingService...")
	log.Info("Configuration loaded from config.toml")

	// Инициализируем метрики (если включены)
	var metricsCollector *metrics.Metrics
	var wrappedDB *dbmetrics.DB
	stopMetricsCh := make(chan struct{})

	if cfg.Metrics.Enabled {
		metricsCollector = metrics.New(cfg.Metrics.ServiceName)
		log.Info("Metrics enabled at %s", cfg.Metrics.Path)
	}

	// Подключаемся к базе данных
	db, err := sql.Open("postgres", cfg.Database.DSN())
	if err != nil {
		log.Fatal("Failed to connect to database: %v", err)
	}
	defer db.Close()

	// Настраиваем connection pool
	db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	db.SetConnMaxLifetime(time.Duration(cfg.Database.ConnMaxLifetime) * time.Second)

	// Проверяем соединение
	if err := db.Ping(); err != nil {
		log.Fatal("Failed to ping database: %v", err)
	}
	log.Info("Successfully connected to database (host=%s, port=%d, db=%s)",
		cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)

	// Инициализируем интеграционных клиентов
	mentorClient := mentorServiceClient.NewClient(
		cfg.MentorService.URL,
		time.Duration(cfg.MentorService.Timeout)*time.Second,
		log,
	)
	paymentClient := paymentServiceClient.NewClient(
		cfg.PaymentService.URL,
		time.Duration(cfg.PaymentService.Timeout)*time.Second,
		log,
	)
	log.Info("Integration clients initialized (MentorService=%s timeout=%ds, PaymentService=%s timeout=%ds)",
		cfg.MentorService.URL, cfg.MentorService.Timeout, cfg.PaymentService.URL, cfg.PaymentService.Timeout)

	// Инициализируем репозитории (с метриками или без)
	var (
		bookingRepository *bookingRepo.Repository
		reviewRepository  *reviewRepo.Repository
		txMgr             TxManager
	)

	if cfg.Metrics.Enabled {
		wrappedDB = dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
		log.Info("Database metrics collection started")

		bookingRepository = bookingRepo.NewRepository(wrappedDB)
		reviewRepository = reviewRepo.NewRepository(wrappedDB)
		txMgr = txmanager.NewTransactionManager(wrappedDB)
	} else {
		bookingRepository = bookingRepo.NewRepository(db)
		reviewRepository = reviewRepo.NewRepository(db)
		txMgr = simpletxmanager.NewTransactionManager(db)
	}

	// Метрики sweep-а нужны сервису и при выключенном prometheus
	var sweepMetrics bookingsService.SweepMetrics = noopSweepMetrics{}
	if cfg.Metrics.Enabled {
		sweepMetrics = metricsCollector
	}

	// Инициализируем сервисы
	bookingSvc := bookingsService.NewService(
		bookingRepository,
		paymentClient,
		sweepMetrics,
		log,
	)
	reviewSvc := reviewsService.NewService(
		reviewRepository,
		bookingRepository,
		txMgr,
		log,
	)

	// Инициализируем use cases
	createBookingUseCase := createBookingUC.NewUseCase(
		bookingRepository,
		mentorClient,
		txMgr,
		log,
	)

	getAvailableSlotsUseCase := getAvailableSlotsUC.NewUseCase(
		bookingRepository,
		mentorClient,
		log,
	)

	// Инициализируем handlers
	createBooking := createBookingHandler.NewHandler(createBookingUseCase, log)
	getAvailableSlots := getAvailableSlotsHandler.NewHandler(getAvailableSlotsUseCase, log)
	getBooking := getBookingHandler.NewHandler(bookingSvc, log)
	cancelBooking := cancelBookingHandler.NewHandler(bookingSvc, log)
	updateStatus := updateStatusHandler.NewHandler(bookingSvc, log)
	joinSession := joinSessionHandler.NewHandler(bookingSvc, log)
	getUserBookings := getUserBookingsHandler.NewHandler(bookingSvc, log)
	getMentorBookings := getMentorBookingsHandler.NewHandler(bookingSvc, log)
	submitReview := submitReviewHandler.NewHandler(reviewSvc, log)
	getMentorReviews := getMentorReviewsHandler.NewHandler(reviewSvc, log)

	// Настраиваем роутер
	r := mux.NewRouter()
	r.Use(middleware.RequestID)

	// Добавляем metrics middleware (если метрики включены)
	if cfg.Metrics.Enabled {
		r.Use(middleware.Metrics(metricsCollector))
		log.Info("HTTP metrics middleware enabled")
	}

	// Metrics endpoint (публичный, без аутентификации)
	if cfg.Metrics.Enabled {
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	// API prefix
	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// PUBLIC ROUTES (без аутентификации)
	// ============================================================

	// Доступные слоты ментора
	api.HandleFunc("/mentors/{mentorId}/slots", getAvailableSlots.Handle).Methods(http.MethodGet)

	// Отзывы о менторе с агрегатом рейтинга
	api.HandleFunc("/mentors/{mentorId}/reviews", getMentorReviews.Handle).Methods(http.MethodGet)

	// ============================================================
	// PROTECTED ROUTES (требуют X-User-ID и X-User-Role headers)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth(log))

	// --- Бронирования ---
	// Создание бронирования
	protected.HandleFunc("/bookings", createBooking.Handle).Methods(http.MethodPost)

	// Получение бронирования по ID
	protected.HandleFunc("/bookings/{bookingId}", getBooking.Handle).Methods(http.MethodGet)

	// Отмена бронирования с расчетом возврата
	protected.HandleFunc("/bookings/{bookingId}/cancel", cancelBooking.Handle).Methods(http.MethodPatch)

	// Перевод бронирования по таблице переходов статусов
	protected.HandleFunc("/bookings/{bookingId}/status", updateStatus.Handle).Methods(http.MethodPatch)

	// Присоединение участника к сессии
	protected.HandleFunc("/bookings/{bookingId}/join", joinSession.Handle).Methods(http.MethodPost)

	// История бронирований кандидата
	protected.HandleFunc("/users/me/bookings", getUserBookings.Handle).Methods(http.MethodGet)

	// Расписание ментора
	protected.HandleFunc("/mentors/{mentorId}/bookings", getMentorBookings.Handle).Methods(http.MethodGet)

	// --- Отзывы ---
	protected.HandleFunc("/reviews", submitReview.Handle).Methods(http.MethodPost)

	// Периодическое автозакрытие просроченных сессий
	sweepCtx, stopSweep := context.WithCancel(context.Background())
	go runAutoCloseSweeper(sweepCtx, bookingSvc, time.Duration(cfg.Sweeper.IntervalSeconds)*time.Second, log)
	log.Info("AutoClose sweeper started, interval=%ds", cfg.Sweeper.IntervalSeconds)

	// Создаем HTTP сервер
	addr := fmt.Sprintf(":%d", cfg.Server.HTTPPort)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
	}

	// Graceful shutdown
	go func() {
		log.Info("Starting server on %s", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Server failed to start: %v", err)
		}
	}()

	// Ожидаем сигнал завершения
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...")

	// Останавливаем sweeper и сбор метрик connection pool
	stopSweep()
	if cfg.Metrics.Enabled {
		close(stopMetricsCh)
		log.Info("Metrics collection stopped")
	}

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		time.Duration(cfg.Server.ShutdownTimeout)*time.Second,
	)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown: %v", err)
	}

	log.Info("Server stopped gracefully")
}

// runAutoCloseSweeper периодически запускает автозакрытие просроченных сессий
func runAutoCloseSweeper(ctx context.Context, svc *bookingsService.Service, interval time.Duration, log *logger.Logger) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Info("AutoClose sweeper stopped")
			return
		case <-ticker.C:
			if _, err := svc.AutoClose(ctx); err != nil {
				log.Error("AutoClose sweep failed: %v", err)
			}
		}
	}
}

// noopSweepMetrics заглушка метрик при выключенном prometheus
type noopSweepMetrics struct{}

func (noopSweepMetrics) IncSweepProcessed(string) {}
