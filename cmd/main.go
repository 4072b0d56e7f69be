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

	cancelBookingHandler "github.com/m04kA/SMC-RentalService/internal/api/handlers/cancel_booking"
	completeBookingHandler "github.com/m04kA/SMC-RentalService/internal/api/handlers/complete_booking"
	getBookingHandler "github.com/m04kA/SMC-RentalService/internal/api/handlers/get_booking"
	getBookingReminderHandler "github.com/m04kA/SMC-RentalService/internal/api/handlers/get_booking_reminder"
	getCompanyBookingsHandler "github.com/m04kA/SMC-RentalService/internal/api/handlers/get_company_bookings"
	getUserBookingsHandler "github.com/m04kA/SMC-RentalService/internal/api/handlers/get_user_bookings"
	handoverBookingHandler "github.com/m04kA/SMC-RentalService/internal/api/handlers/handover_booking"
	paymentWebhookHandler "github.com/m04kA/SMC-RentalService/internal/api/handlers/payment_webhook"
	reserveBookingHandler "github.com/m04kA/SMC-RentalService/internal/api/handlers/reserve_booking"
	searchVehiclesHandler "github.com/m04kA/SMC-RentalService/internal/api/handlers/search_vehicles"
	"github.com/m04kA/SMC-RentalService/internal/api/middleware"
	"github.com/m04kA/SMC-RentalService/internal/config"
	bookingRepo "github.com/m04kA/SMC-RentalService/internal/infra/storage/booking"
	vehicleRepo "github.com/m04kA/SMC-RentalService/internal/infra/storage/vehicle"
	paymentServiceClient "github.com/m04kA/SMC-RentalService/internal/integrations/paymentservice"
	bookingsService "github.com/m04kA/SMC-RentalService/internal/service/bookings"
	remindersService "github.com/m04kA/SMC-RentalService/internal/service/reminders"
	confirmPaymentUC "github.com/m04kA/SMC-RentalService/internal/usecase/confirm_payment"
	createBookingUC "github.com/m04kA/SMC-RentalService/internal/usecase/create_booking"
	reserveBookingUC "github.com/m04kA/SMC-RentalService/internal/usecase/reserve_booking"
	searchVehiclesUC "github.com/m04kA/SMC-RentalService/internal/usecase/search_vehicles"
	"github.com/m04kA/SMC-RentalService/internal/worker"
	"github.com/m04kA/SMC-RentalService/pkg/dbmetrics"
	"github.com/m04kA/SMC-RentalService/pkg/logger"
	"github.com/m04kA/SMC-RentalService/pkg/metrics"
	"github.com/m04kA/SMC-RentalService/pkg/simpletxmanager"
	"github.com/m04kA/SMC-RentalService/pkg/txmanager"
)

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

	log.Info("Starting SMC-RentalService...")
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

	// Инициализируем клиента платежного процессинга
	paymentClient := paymentServiceClient.NewClient(
		cfg.PaymentService.URL,
		time.Duration(cfg.PaymentService.Timeout)*time.Second,
		log,
	)
	log.Info("Payment service client initialized (url=%s, timeout=%ds)",
		cfg.PaymentService.URL, cfg.PaymentService.Timeout)

	// Инициализируем репозитории (с метриками или без)
	var (
		bookingRepository *bookingRepo.Repository
		vehicleRepository *vehicleRepo.Repository
	)

	// Интерфейс для transaction manager (используется в usecases)
	type TxManager interface {
		DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
	}
	var txMgr TxManager

	if cfg.Metrics.Enabled {
		wrappedDB = dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
		log.Info("Database metrics collection started")

		bookingRepository = bookingRepo.NewRepository(wrappedDB)
		vehicleRepository = vehicleRepo.NewRepository(wrappedDB)
		txMgr = txmanager.NewTransactionManager(wrappedDB)
	} else {
		bookingRepository = bookingRepo.NewRepository(db)
		vehicleRepository = vehicleRepo.NewRepository(db)
		txMgr = simpletxmanager.NewTransactionManager(db)
	}

	// Инициализируем сервисы
	bookingSvc := bookingsService.NewService(
		bookingRepository,
		vehicleRepository,
		log,
	)
	reminderSvc := remindersService.NewService(
		bookingRepository,
		time.Duration(cfg.Booking.ReminderLeadMinutes)*time.Minute,
		log,
	)

	// Инициализируем use cases
	createBookingUseCase := createBookingUC.NewUseCase(
		bookingRepository,
		vehicleRepository,
		txMgr,
		time.Duration(cfg.Booking.HoldTTLMinutes)*time.Minute,
		log,
	)

	searchVehiclesUseCase := searchVehiclesUC.NewUseCase(
		vehicleRepository,
		log,
	)

	reserveBookingUseCase := reserveBookingUC.NewUseCase(
		createBookingUseCase,
		bookingSvc,
		paymentClient,
		cfg.PaymentService.Currency,
		log,
	)

	confirmPaymentUseCase := confirmPaymentUC.NewUseCase(
		bookingRepository,
		bookingSvc,
		paymentClient,
		log,
	)

	// Инициализируем handlers
	searchVehicles := searchVehiclesHandler.NewHandler(searchVehiclesUseCase, log)
	reserveBooking := reserveBookingHandler.NewHandler(reserveBookingUseCase, log)
	paymentWebhook := paymentWebhookHandler.NewHandler(confirmPaymentUseCase, log)
	getBooking := getBookingHandler.NewHandler(bookingSvc, log)
	getBookingReminder := getBookingReminderHandler.NewHandler(reminderSvc, log)
	cancelBooking := cancelBookingHandler.NewHandler(bookingSvc, log)
	handoverBooking := handoverBookingHandler.NewHandler(bookingSvc, &bookingsService.RealTimeProvider{}, log)
	completeBooking := completeBookingHandler.NewHandler(bookingSvc, log)
	getUserBookings := getUserBookingsHandler.NewHandler(bookingSvc, log)
	getCompanyBookings := getCompanyBookingsHandler.NewHandler(bookingSvc, log)

	// Запускаем фоновую уборку просроченных pending-броней
	sweeper := worker.NewSweeper(
		bookingSvc,
		time.Duration(cfg.Booking.ExpireSweepSeconds)*time.Second,
		log,
	)
	sweeper.Start()

	// Настраиваем роутер
	r := mux.NewRouter()

	// Добавляем metrics middleware (если метрики включены)
	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector, cfg.Metrics.ServiceName))
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

	// Поиск автомобилей, доступных в интервал
	api.HandleFunc("/vehicles/search", searchVehicles.Handle).Methods(http.MethodGet)

	// Webhook платежного процессинга
	api.HandleFunc("/payments/webhook", paymentWebhook.Handle).Methods(http.MethodPost)

	// ============================================================
	// PROTECTED ROUTES (требуют X-User-ID header)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth)

	// --- Бронирования ---
	// Резервирование автомобиля с оплатой
	protected.HandleFunc("/bookings", reserveBooking.Handle).Methods(http.MethodPost)

	// Получение бронирования по ID
	protected.HandleFunc("/bookings/{bookingId}", getBooking.Handle).Methods(http.MethodGet)

	// Напоминание по бронированию
	protected.HandleFunc("/bookings/{bookingId}/reminder", getBookingReminder.Handle).Methods(http.MethodGet)

	// Отмена бронирования
	protected.HandleFunc("/bookings/{bookingId}/cancel", cancelBooking.Handle).Methods(http.MethodPatch)

	// Выдача автомобиля
	protected.HandleFunc("/bookings/{bookingId}/handover", handoverBooking.Handle).Methods(http.MethodPatch)

	// Возврат автомобиля
	protected.HandleFunc("/bookings/{bookingId}/complete", completeBooking.Handle).Methods(http.MethodPatch)

	// История бронирований пользователя
	protected.HandleFunc("/users/{userId}/bookings", getUserBookings.Handle).Methods(http.MethodGet)

	// --- Управление компанией (для менеджеров) ---
	// Список бронирований компании
	protected.HandleFunc("/companies/{companyId}/bookings", getCompanyBookings.Handle).Methods(http.MethodGet)

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

	// Останавливаем фоновую уборку
	sweeper.Stop()

	// Останавливаем сбор метрик connection pool
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
