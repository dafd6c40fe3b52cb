package main

import (
	"context"
	"database/sql"
	"fmt"
	stdlog "log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"

	addAvailabilityHandler "github.com/lashroom/scheduling-service/internal/api/handlers/add_availability"
	cancelBookingHandler "github.com/lashroom/scheduling-service/internal/api/handlers/cancel_booking"
	completeBookingHandler "github.com/lashroom/scheduling-service/internal/api/handlers/complete_booking"
	confirmBookingHandler "github.com/lashroom/scheduling-service/internal/api/handlers/confirm_booking"
	createBookingHandler "github.com/lashroom/scheduling-service/internal/api/handlers/create_booking"
	deleteAvailabilityHandler "github.com/lashroom/scheduling-service/internal/api/handlers/delete_availability"
	deleteBookingHandler "github.com/lashroom/scheduling-service/internal/api/handlers/delete_booking"
	getAvailableDatesHandler "github.com/lashroom/scheduling-service/internal/api/handlers/get_available_dates"
	getAvailableSlotsHandler "github.com/lashroom/scheduling-service/internal/api/handlers/get_available_slots"
	getBookingHandler "github.com/lashroom/scheduling-service/internal/api/handlers/get_booking"
	getDayScheduleHandler "github.com/lashroom/scheduling-service/internal/api/handlers/get_day_schedule"
	getStudioConfigHandler "github.com/lashroom/scheduling-service/internal/api/handlers/get_studio_config"
	listBookingsHandler "github.com/lashroom/scheduling-service/internal/api/handlers/list_bookings"
	listServicesHandler "github.com/lashroom/scheduling-service/internal/api/handlers/list_services"
	updateStudioConfigHandler "github.com/lashroom/scheduling-service/internal/api/handlers/update_studio_config"
	"github.com/lashroom/scheduling-service/internal/api/middleware"
	"github.com/lashroom/scheduling-service/internal/config"
	"github.com/lashroom/scheduling-service/internal/infra/cache/slotscache"
	availabilityRepo "github.com/lashroom/scheduling-service/internal/infra/storage/availability"
	bookingRepo "github.com/lashroom/scheduling-service/internal/infra/storage/booking"
	catalogRepo "github.com/lashroom/scheduling-service/internal/infra/storage/catalog"
	studioConfigRepo "github.com/lashroom/scheduling-service/internal/infra/storage/studioconfig"
	bookingsService "github.com/lashroom/scheduling-service/internal/service/bookings"
	catalogService "github.com/lashroom/scheduling-service/internal/service/catalog"
	studioConfigService "github.com/lashroom/scheduling-service/internal/service/studioconfig"
	addAvailabilityUC "github.com/lashroom/scheduling-service/internal/usecase/add_availability"
	cancelBookingUC "github.com/lashroom/scheduling-service/internal/usecase/cancel_booking"
	confirmBookingUC "github.com/lashroom/scheduling-service/internal/usecase/confirm_booking"
	createBookingUC "github.com/lashroom/scheduling-service/internal/usecase/create_booking"
	deleteAvailabilityUC "github.com/lashroom/scheduling-service/internal/usecase/delete_availability"
	deleteBookingUC "github.com/lashroom/scheduling-service/internal/usecase/delete_booking"
	getAvailableDatesUC "github.com/lashroom/scheduling-service/internal/usecase/get_available_dates"
	getAvailableSlotsUC "github.com/lashroom/scheduling-service/internal/usecase/get_available_slots"
	getDayScheduleUC "github.com/lashroom/scheduling-service/internal/usecase/get_day_schedule"
	"github.com/lashroom/scheduling-service/migrations"
	"github.com/lashroom/scheduling-service/pkg/dbmetrics"
	"github.com/lashroom/scheduling-service/pkg/logger"
	"github.com/lashroom/scheduling-service/pkg/metrics"
	"github.com/lashroom/scheduling-service/pkg/simpletxmanager"
	"github.com/lashroom/scheduling-service/pkg/txmanager"
)

// TxManager общий интерфейс менеджеров транзакций
type TxManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
	DoReadOnly(ctx context.Context, fn func(ctx context.Context) error) error
}

func main() {
	// Загружаем конфигурацию
	cfg, err := config.Load("config.toml")
	if err != nil {
		stdlog.Fatalf("Failed to load config: %v", err)
	}

	// Инициализируем логгер
	log, err := logger.New(cfg.Logs.File, cfg.Logs.Level)
	if err != nil {
		stdlog.Fatalf("Failed to initialize logger: %v", err)
	}
	defer log.Close()

	log.Info("Starting scheduling service")

	// Инициализируем метрики (если включены)
	var metricsCollector *metrics.Metrics
	stopMetricsCh := make(chan struct{})
	if cfg.Metrics.Enabled {
		metricsCollector = metrics.New(cfg.Metrics.ServiceName)
		log.Info("Prometheus metrics enabled: service_name=%s", cfg.Metrics.ServiceName)
	}

	// Подключаемся к PostgreSQL
	db, err := sql.Open("postgres", cfg.Database.DSN())
	if err != nil {
		log.Fatal("Failed to open database: %v", err)
	}
	defer db.Close()

	db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	db.SetConnMaxLifetime(time.Duration(cfg.Database.ConnMaxLifetime) * time.Second)

	if err := db.Ping(); err != nil {
		log.Fatal("Failed to ping database: %v", err)
	}
	log.Info("Connected to PostgreSQL: host=%s, dbname=%s", cfg.Database.Host, cfg.Database.DBName)

	// Применяем миграции схемы
	if err := migrations.Apply(context.Background(), db); err != nil {
		log.Fatal("Failed to apply migrations: %v", err)
	}
	log.Info("Database migrations applied")

	// Инициализируем репозитории и менеджер транзакций
	var (
		bookingRepository      *bookingRepo.Repository
		availabilityRepository *availabilityRepo.Repository
		catalogRepository      *catalogRepo.Repository
		configRepository       *studioConfigRepo.Repository
		txMgr                  TxManager
	)

	if cfg.Metrics.Enabled {
		// Оборачиваем DB для сбора метрик запросов и connection pool
		wrappedDB := dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)

		bookingRepository = bookingRepo.NewRepository(wrappedDB)
		availabilityRepository = availabilityRepo.NewRepository(wrappedDB)
		catalogRepository = catalogRepo.NewRepository(wrappedDB)
		configRepository = studioConfigRepo.NewRepository(wrappedDB)
		txMgr = txmanager.NewTransactionManager(wrappedDB)
	} else {
		bookingRepository = bookingRepo.NewRepository(db)
		availabilityRepository = availabilityRepo.NewRepository(db)
		catalogRepository = catalogRepo.NewRepository(db)
		configRepository = studioConfigRepo.NewRepository(db)
		txMgr = simpletxmanager.NewTransactionManager(db)
	}

	// Инициализируем кэш доступных слотов (если включён)
	var slotsCache *slotscache.Cache
	if cfg.Cache.Enabled {
		redisClient := redis.NewClient(&redis.Options{
			Addr:     cfg.Cache.Addr,
			Password: cfg.Cache.Password,
			DB:       cfg.Cache.DB,
		})
		if err := redisClient.Ping(context.Background()).Err(); err != nil {
			log.Fatal("Failed to ping redis: %v", err)
		}
		defer redisClient.Close()

		slotsCache = slotscache.New(redisClient, time.Duration(cfg.Cache.TTLSeconds)*time.Second)
		log.Info("Slots cache enabled: addr=%s, ttl=%ds", cfg.Cache.Addr, cfg.Cache.TTLSeconds)
	}

	// Инициализируем сервисы
	bookingSvc := bookingsService.NewService(bookingRepository, log)
	catalogSvc := catalogService.NewService(catalogRepository, log)
	configSvc := studioConfigService.NewService(configRepository, slotsCache, log)

	// Инициализируем use cases
	createBookingUseCase := createBookingUC.NewUseCase(
		bookingRepository,
		availabilityRepository,
		catalogRepository,
		configRepository,
		txMgr,
		slotsCache,
		log,
	)

	getAvailableSlotsUseCase := getAvailableSlotsUC.NewUseCase(
		bookingRepository,
		availabilityRepository,
		catalogRepository,
		configRepository,
		slotsCache,
		log,
	)

	addAvailabilityUseCase := addAvailabilityUC.NewUseCase(
		availabilityRepository,
		txMgr,
		slotsCache,
		log,
	)

	deleteAvailabilityUseCase := deleteAvailabilityUC.NewUseCase(
		availabilityRepository,
		txMgr,
		slotsCache,
		log,
	)

	confirmBookingUseCase := confirmBookingUC.NewUseCase(
		bookingRepository,
		availabilityRepository,
		txMgr,
		slotsCache,
		log,
	)

	cancelBookingUseCase := cancelBookingUC.NewUseCase(
		bookingRepository,
		availabilityRepository,
		txMgr,
		slotsCache,
		log,
	)

	deleteBookingUseCase := deleteBookingUC.NewUseCase(
		bookingRepository,
		availabilityRepository,
		txMgr,
		slotsCache,
		log,
	)

	getAvailableDatesUseCase := getAvailableDatesUC.NewUseCase(
		availabilityRepository,
		log,
	)

	getDayScheduleUseCase := getDayScheduleUC.NewUseCase(
		bookingRepository,
		availabilityRepository,
		txMgr,
		log,
	)

	// Инициализируем handlers
	createBooking := createBookingHandler.NewHandler(createBookingUseCase, log)
	getAvailableSlots := getAvailableSlotsHandler.NewHandler(getAvailableSlotsUseCase, log)
	getAvailableDates := getAvailableDatesHandler.NewHandler(getAvailableDatesUseCase, log)
	getBooking := getBookingHandler.NewHandler(bookingSvc, log)
	listBookings := listBookingsHandler.NewHandler(bookingSvc, log)
	cancelBooking := cancelBookingHandler.NewHandler(cancelBookingUseCase, log)
	confirmBooking := confirmBookingHandler.NewHandler(confirmBookingUseCase, log)
	completeBooking := completeBookingHandler.NewHandler(bookingSvc, log)
	addAvailability := addAvailabilityHandler.NewHandler(addAvailabilityUseCase, log)
	deleteAvailability := deleteAvailabilityHandler.NewHandler(deleteAvailabilityUseCase, log)
	deleteBooking := deleteBookingHandler.NewHandler(deleteBookingUseCase, log)
	getDaySchedule := getDayScheduleHandler.NewHandler(getDayScheduleUseCase, log)
	listServices := listServicesHandler.NewHandler(catalogSvc, log)
	getStudioConfig := getStudioConfigHandler.NewHandler(configSvc, log)
	updateStudioConfig := updateStudioConfigHandler.NewHandler(configSvc, log)

	// Настраиваем роутер
	r := mux.NewRouter()

	r.Use(middleware.RequestID)

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
	// PUBLIC ROUTES (клиентская часть сайта)
	// ============================================================

	// Каталог услуг
	api.HandleFunc("/services", listServices.Handle).Methods(http.MethodGet)

	// Доступные слоты для записи
	api.HandleFunc("/available-slots", getAvailableSlots.Handle).Methods(http.MethodGet)

	// Даты со свободными интервалами (подсветка календаря)
	api.HandleFunc("/available-dates", getAvailableDates.Handle).Methods(http.MethodGet)

	// Создание записи клиентом
	api.HandleFunc("/bookings", createBooking.Handle).Methods(http.MethodPost)

	// Отмена записи (клиентом или мастером)
	api.HandleFunc("/bookings/{bookingId}/cancel", cancelBooking.Handle).Methods(http.MethodPatch)

	// ============================================================
	// PROTECTED ROUTES (кабинет мастера, требуют X-Master-Token)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth(cfg.Auth.MasterToken))

	// --- Записи ---
	// Список записей с фильтрами
	protected.HandleFunc("/bookings", listBookings.Handle).Methods(http.MethodGet)

	// Получение записи по ID
	protected.HandleFunc("/bookings/{bookingId}", getBooking.Handle).Methods(http.MethodGet)

	// Подтверждение записи мастером
	protected.HandleFunc("/bookings/{bookingId}/confirm", confirmBooking.Handle).Methods(http.MethodPatch)

	// Завершение выполненной записи
	protected.HandleFunc("/bookings/{bookingId}/complete", completeBooking.Handle).Methods(http.MethodPatch)

	// Физическое удаление записи (только неактивные записи)
	protected.HandleFunc("/bookings/{bookingId}", deleteBooking.Handle).Methods(http.MethodDelete)

	// --- Расписание мастера ---
	// Расписание дня: интервалы доступности и записи одной лентой
	protected.HandleFunc("/schedule/{date}", getDaySchedule.Handle).Methods(http.MethodGet)

	// Добавление интервала доступности
	protected.HandleFunc("/availability", addAvailability.Handle).Methods(http.MethodPost)

	// Удаление интервала доступности
	protected.HandleFunc("/availability/{intervalId}", deleteAvailability.Handle).Methods(http.MethodDelete)

	// --- Настройки студии ---
	protected.HandleFunc("/config", getStudioConfig.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/config", updateStudioConfig.Handle).Methods(http.MethodPut)

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
