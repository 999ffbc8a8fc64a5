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
	_ "modernc.org/sqlite"

	"github.com/m04kA/SMC-ResourceBooking/internal/api/handlers"
	checkAvailabilityHandler "github.com/m04kA/SMC-ResourceBooking/internal/api/handlers/check_availability"
	createBookingHandler "github.com/m04kA/SMC-ResourceBooking/internal/api/handlers/create_booking"
	createResourceHandler "github.com/m04kA/SMC-ResourceBooking/internal/api/handlers/create_resource"
	deleteBookingHandler "github.com/m04kA/SMC-ResourceBooking/internal/api/handlers/delete_booking"
	deleteResourceHandler "github.com/m04kA/SMC-ResourceBooking/internal/api/handlers/delete_resource"
	getBookingHandler "github.com/m04kA/SMC-ResourceBooking/internal/api/handlers/get_booking"
	getResourceHandler "github.com/m04kA/SMC-ResourceBooking/internal/api/handlers/get_resource"
	listBookingsHandler "github.com/m04kA/SMC-ResourceBooking/internal/api/handlers/list_bookings"
	listResourcesHandler "github.com/m04kA/SMC-ResourceBooking/internal/api/handlers/list_resources"
	reviewBookingHandler "github.com/m04kA/SMC-ResourceBooking/internal/api/handlers/review_booking"
	updateBookingHandler "github.com/m04kA/SMC-ResourceBooking/internal/api/handlers/update_booking"
	updateResourceHandler "github.com/m04kA/SMC-ResourceBooking/internal/api/handlers/update_resource"
	"github.com/m04kA/SMC-ResourceBooking/internal/api/middleware"
	"github.com/m04kA/SMC-ResourceBooking/internal/config"
	bookingRepo "github.com/m04kA/SMC-ResourceBooking/internal/infra/storage/booking"
	resourceRepo "github.com/m04kA/SMC-ResourceBooking/internal/infra/storage/resource"
	"github.com/m04kA/SMC-ResourceBooking/internal/infra/storage/schema"
	"github.com/m04kA/SMC-ResourceBooking/internal/integrations/events"
	"github.com/m04kA/SMC-ResourceBooking/internal/service/availability"
	bookingsService "github.com/m04kA/SMC-ResourceBooking/internal/service/bookings"
	"github.com/m04kA/SMC-ResourceBooking/internal/service/policy"
	resourcesService "github.com/m04kA/SMC-ResourceBooking/internal/service/resources"
	checkAvailabilityUC "github.com/m04kA/SMC-ResourceBooking/internal/usecase/check_availability"
	createBookingUC "github.com/m04kA/SMC-ResourceBooking/internal/usecase/create_booking"
	updateBookingUC "github.com/m04kA/SMC-ResourceBooking/internal/usecase/update_booking"
	"github.com/m04kA/SMC-ResourceBooking/pkg/dbmetrics"
	"github.com/m04kA/SMC-ResourceBooking/pkg/logger"
	"github.com/m04kA/SMC-ResourceBooking/pkg/metrics"
	"github.com/m04kA/SMC-ResourceBooking/pkg/psqlbuilder"
	"github.com/m04kA/SMC-ResourceBooking/pkg/resourcelock"
	"github.com/m04kA/SMC-ResourceBooking/pkg/txmanager"
)

// eventPublisher публикатор событий с закрытием соединения при остановке
type eventPublisher interface {
	Publish(ctx context.Context, event events.BookingEvent) error
	Close() error
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

	log.Info("Starting SMC-ResourceBooking...")
	log.Info("Configuration loaded from config.toml")

	// Инициализируем метрики (если включены). nil-метрики ничего не пишут.
	var metricsCollector *metrics.Metrics
	stopMetricsCh := make(chan struct{})

	if cfg.Metrics.Enabled {
		metricsCollector = metrics.New(cfg.Metrics.ServiceName)
		log.Info("Metrics enabled at %s", cfg.Metrics.Path)
	}

	// Подключаемся к базе данных
	db, err := sql.Open(cfg.Database.Driver, cfg.Database.DSN())
	if err != nil {
		log.Fatal("Failed to connect to database: %v", err)
	}
	defer db.Close()

	// Настраиваем connection pool. SQLite пишет через одно соединение.
	if cfg.Database.IsSQLite() {
		db.SetMaxOpenConns(1)
	} else {
		db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
		db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
		db.SetConnMaxLifetime(time.Duration(cfg.Database.ConnMaxLifetime) * time.Second)
	}

	// Проверяем соединение
	if err := db.Ping(); err != nil {
		log.Fatal("Failed to ping database: %v", err)
	}

	var wrappedDB *dbmetrics.DB
	if cfg.Metrics.Enabled {
		wrappedDB = dbmetrics.WrapWithDefault(db, metricsCollector, stopMetricsCh)
		log.Info("Database metrics collection started")
	} else {
		wrappedDB = dbmetrics.Wrap(db, nil)
	}

	var (
		qb    psqlbuilder.Builder
		txMgr *txmanager.TransactionManager
	)
	if cfg.Database.IsSQLite() {
		if err := schema.ApplySQLite(context.Background(), wrappedDB); err != nil {
			log.Fatal("Failed to apply sqlite schema: %v", err)
		}
		qb = psqlbuilder.New(psqlbuilder.DriverSQLite)
		txMgr = txmanager.NewTransactionManager(wrappedDB, txmanager.WithoutIsolationLevels())
		log.Info("Successfully opened sqlite database (path=%s)", cfg.Database.Path)
	} else {
		qb = psqlbuilder.Postgres()
		txMgr = txmanager.NewTransactionManager(wrappedDB)
		log.Info("Successfully connected to database (host=%s, port=%d, db=%s)",
			cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)
	}

	// Блокировки ресурсов: Redis для нескольких реплик, иначе в памяти процесса
	var locker resourcelock.Locker
	if cfg.Redis.Enabled {
		redisClient, err := resourcelock.NewRedisClient(context.Background(), cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
		if err != nil {
			log.Fatal("Failed to connect to redis: %v", err)
		}
		defer redisClient.Close()

		locker = resourcelock.NewRedisLocker(redisClient, log, time.Duration(cfg.Redis.LockTTL)*time.Millisecond, 0)
		log.Info("Redis resource locks enabled (addr=%s)", cfg.Redis.Addr)
	} else {
		locker = resourcelock.NewMemoryLocker()
		log.Info("In-memory resource locks enabled")
	}
	lockTimeout := time.Duration(cfg.Booking.LockTimeout) * time.Second

	// События бронирований
	var publisher eventPublisher = events.NoopPublisher{}
	if cfg.RabbitMQ.Enabled {
		p, err := events.NewPublisher(cfg.RabbitMQ.URL, cfg.RabbitMQ.Exchange, log)
		if err != nil {
			log.Fatal("Failed to connect to rabbitmq: %v", err)
		}
		publisher = p
		log.Info("Booking events are published to exchange %q", cfg.RabbitMQ.Exchange)
	}
	defer func() {
		if err := publisher.Close(); err != nil {
			log.Warn("Failed to close event publisher: %v", err)
		}
	}()

	// Инициализируем репозитории
	bookingRepository := bookingRepo.NewRepository(wrappedDB, qb)
	resourceRepository := resourceRepo.NewRepository(wrappedDB, qb)

	// Инициализируем доменные сервисы
	accessPolicy := policy.New()
	checker := availability.NewChecker(bookingRepository, availability.RealTimeProvider{}, metricsCollector, log)

	bookingSvc := bookingsService.NewService(
		bookingRepository,
		accessPolicy,
		locker,
		txMgr,
		publisher,
		metricsCollector,
		&bookingsService.RealTimeProvider{},
		lockTimeout,
		log,
	)
	resourceSvc := resourcesService.NewService(
		resourceRepository,
		accessPolicy,
		locker,
		txMgr,
		lockTimeout,
		log,
	)

	// Инициализируем use cases
	createBookingUseCase := createBookingUC.NewUseCase(
		bookingRepository,
		resourceRepository,
		checker,
		accessPolicy,
		locker,
		txMgr,
		publisher,
		metricsCollector,
		lockTimeout,
		log,
	)
	updateBookingUseCase := updateBookingUC.NewUseCase(
		bookingRepository,
		resourceRepository,
		checker,
		accessPolicy,
		locker,
		txMgr,
		publisher,
		lockTimeout,
		log,
	)
	checkAvailabilityUseCase := checkAvailabilityUC.NewUseCase(
		bookingRepository,
		resourceRepository,
		checker,
		accessPolicy,
		log,
	)

	// Инициализируем handlers
	listResources := listResourcesHandler.NewHandler(resourceSvc, log)
	getResource := getResourceHandler.NewHandler(resourceSvc, log)
	createResource := createResourceHandler.NewHandler(resourceSvc, log)
	updateResource := updateResourceHandler.NewHandler(resourceSvc, log)
	deleteResource := deleteResourceHandler.NewHandler(resourceSvc, log)
	checkAvailability := checkAvailabilityHandler.NewHandler(checkAvailabilityUseCase, log)
	createBooking := createBookingHandler.NewHandler(createBookingUseCase, log)
	listBookings := listBookingsHandler.NewHandler(bookingSvc, log)
	getBooking := getBookingHandler.NewHandler(bookingSvc, log)
	updateBooking := updateBookingHandler.NewHandler(updateBookingUseCase, log)
	reviewBooking := reviewBookingHandler.NewHandler(bookingSvc, log)
	deleteBooking := deleteBookingHandler.NewHandler(bookingSvc, log)

	// Настраиваем роутер
	r := mux.NewRouter()
	r.Use(middleware.RequestID)

	// Добавляем metrics middleware (если метрики включены)
	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector))
		log.Info("HTTP metrics middleware enabled")

		// Metrics endpoint (публичный, без аутентификации)
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	r.HandleFunc("/health", func(w http.ResponseWriter, _ *http.Request) {
		handlers.RespondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}).Methods(http.MethodGet)

	// API prefix, все маршруты требуют пользователя
	api := r.PathPrefix("/api/v1").Subrouter()
	api.Use(middleware.Auth(cfg.Auth.JWTSecret, cfg.Auth.TrustHeaders, log))

	// --- Ресурсы ---
	api.HandleFunc("/resources", listResources.Handle).Methods(http.MethodGet)
	api.HandleFunc("/resources", createResource.Handle).Methods(http.MethodPost)
	api.HandleFunc("/resources/{type}/{id}", getResource.Handle).Methods(http.MethodGet)
	api.HandleFunc("/resources/{type}/{id}", updateResource.Handle).Methods(http.MethodPut)
	api.HandleFunc("/resources/{type}/{id}", deleteResource.Handle).Methods(http.MethodDelete)

	// --- Проверка доступности ---
	api.HandleFunc("/availability", checkAvailability.Handle).Methods(http.MethodPost)

	// --- Бронирования ---
	api.HandleFunc("/bookings", createBooking.Handle).Methods(http.MethodPost)
	api.HandleFunc("/bookings", listBookings.Handle).Methods(http.MethodGet)
	api.HandleFunc("/bookings/{bookingId}", getBooking.Handle).Methods(http.MethodGet)
	api.HandleFunc("/bookings/{bookingId}", updateBooking.Handle).Methods(http.MethodPut)
	api.HandleFunc("/bookings/{bookingId}", deleteBooking.Handle).Methods(http.MethodDelete)

	// --- Подтверждение (администратор) ---
	api.HandleFunc("/bookings/{bookingId}/approve", reviewBooking.HandleApprove).Methods(http.MethodPatch)
	api.HandleFunc("/bookings/{bookingId}/reject", reviewBooking.HandleReject).Methods(http.MethodPatch)

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

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		time.Duration(cfg.Server.ShutdownTimeout)*time.Second,
	)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown: %v", err)
	}

	// Останавливаем сбор метрик connection pool
	if cfg.Metrics.Enabled {
		close(stopMetricsCh)
		log.Info("Metrics collection stopped")
	}

	log.Info("Server stopped gracefully")
}
