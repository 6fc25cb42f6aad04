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

	"github.com/go-chi/chi/v5"
	"github.com/go-redis/redis/v8"
	"github.com/joho/godotenv"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/driver/pgdriver"

	"ms-attendance/internal/attendance"
	"ms-attendance/internal/attendance/attendance_api"
	attendance_db "ms-attendance/internal/attendance/db"
	"ms-attendance/internal/auth"
	"ms-attendance/internal/checkinpass"
	"ms-attendance/internal/config"
	"ms-attendance/internal/events"
	events_db "ms-attendance/internal/events/db"
	"ms-attendance/internal/events/events_api"
	"ms-attendance/internal/kafka"
	"ms-attendance/internal/logger"
	"ms-attendance/internal/notifier"
	"ms-attendance/internal/registration"
	registration_db "ms-attendance/internal/registration/db"
	"ms-attendance/internal/registration/registration_api"
	"ms-attendance/internal/reports"
	reports_db "ms-attendance/internal/reports/db"
	"ms-attendance/internal/reports/reports_api"
	"ms-attendance/internal/students"
	students_db "ms-attendance/internal/students/db"
	"ms-attendance/internal/students/students_api"
)

func connectPostgres(cfg config.DatabaseConfig, log *logger.Logger) *bun.DB {
	var sqldb *sql.DB
	var err error
	maxRetries := 5

	for i := 0; i < maxRetries; i++ {
		log.Info("DATABASE", fmt.Sprintf("Attempting to connect to PostgreSQL (attempt %d/%d)", i+1, maxRetries))
		sqldb = sql.OpenDB(pgdriver.NewConnector(pgdriver.WithDSN(cfg.DSN())))

		err = sqldb.Ping()
		if err == nil {
			break
		}

		log.Error("DATABASE", fmt.Sprintf("Failed to connect to PostgreSQL: %v", err))
		sqldb.Close()
		if i < maxRetries-1 {
			time.Sleep(2 * time.Second)
		}
	}
	if err != nil {
		log.Fatal("DATABASE", fmt.Sprintf("Failed to connect to PostgreSQL after %d attempts: %v", maxRetries, err))
	}

	sqldb.SetMaxOpenConns(cfg.MaxOpenConns)
	sqldb.SetMaxIdleConns(cfg.MaxIdleConns)
	sqldb.SetConnMaxLifetime(cfg.MaxLifetime)

	log.Info("DATABASE", "PostgreSQL connection successful")
	return bun.NewDB(sqldb, pgdialect.New())
}

func connectRedis(ctx context.Context, cfg config.RedisConfig, log *logger.Logger) *redis.Client {
	client := redis.NewClient(&redis.Options{
		Addr: cfg.Addr,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		log.Warn("REDIS", fmt.Sprintf("Redis unreachable at %s, stats caching disabled: %v", cfg.Addr, err))
		client.Close()
		return nil
	}
	log.Info("REDIS", fmt.Sprintf("Redis connection successful to %s", cfg.Addr))
	return client
}

func main() {
	logger := logger.NewLogger()
	defer logger.Close()

	logger.Info("APP", "Starting Attendance Service initialization")

	if err := godotenv.Load(); err != nil {
		logger.Warn("CONFIG", ".env file not found, using environment variables")
	} else {
		logger.Info("CONFIG", "Loaded environment variables from .env file")
	}

	cfg := config.Load()
	ctx := context.Background()

	bunDB := connectPostgres(cfg.Database, logger)
	defer bunDB.Close()

	redisClient := connectRedis(ctx, cfg.Redis, logger)
	if redisClient != nil {
		defer redisClient.Close()
	}

	var producer *kafka.Producer
	if cfg.Kafka.Enabled {
		producer = kafka.NewProducer(cfg.Kafka.Brokers, cfg.Kafka.Topics)
		defer producer.Close()
		logger.Info("KAFKA", "Kafka producer initialized successfully")

		requiredTopics := []string{
			cfg.Kafka.Topics.RegistrationCreated,
			cfg.Kafka.Topics.RegistrationCancelled,
			cfg.Kafka.Topics.AttendanceMarked,
		}
		if err := kafka.EnsureTopicsExist(cfg.Kafka.Brokers, requiredTopics); err != nil {
			logger.Warn("KAFKA", fmt.Sprintf("Topic creation might have failed: %v", err))
		} else {
			logger.Info("KAFKA", "Required topics ensured successfully")
		}
	} else {
		logger.Warn("KAFKA", "Kafka disabled, registration and attendance events will not be streamed")
	}

	attendanceDB := &attendance_db.DB{Bun: bunDB}

	// A nil *kafka.Producer must become a nil interface, not a typed nil.
	var regPublisher registration.KafkaPublisher
	var attPublisher attendance.KafkaPublisher
	if producer != nil {
		regPublisher = producer
		attPublisher = producer
	}

	eventService := events.NewEventService(&events_db.DB{Bun: bunDB}, logger)
	studentService := students.NewStudentService(&students_db.DB{Bun: bunDB}, logger)
	registrationService := registration.NewRegistrationService(&registration_db.DB{Bun: bunDB}, regPublisher, logger)
	attendanceService := attendance.NewAttendanceService(attendanceDB, attPublisher, logger)

	statsCache := reports.NewStatsCache(redisClient, cfg.Redis.StatsTTL)
	reportService := reports.NewReportService(&reports_db.DB{Bun: bunDB}, attendanceDB, statsCache, logger)

	dispatcher := notifier.NewDispatcher(cfg.Email, logger)
	passes := checkinpass.NewGenerator(cfg.QRSecret)

	eventHandler := events_api.NewHandler(eventService, logger)
	studentHandler := students_api.NewHandler(studentService, logger)
	registrationHandler := registration_api.NewHandler(registrationService, dispatcher, passes, logger)
	attendanceHandler := attendance_api.NewHandler(attendanceService, logger)
	reportHandler := reports_api.NewHandler(reportService, logger)

	logger.Info("HTTP", "Setting up router and middleware")
	r := chi.NewRouter()

	r.Group(func(r chi.Router) {
		r.Use(auth.Middleware())

		r.Route("/api", func(r chi.Router) {
			r.Route("/events", func(r chi.Router) {
				r.Post("/", eventHandler.Create)
				r.Get("/", eventHandler.GetAll)
				r.Get("/{eventId}", eventHandler.Get)

				r.Post("/{eventId}/registrations/{studentId}", registrationHandler.Register)
				r.Delete("/{eventId}/registrations/{studentId}", registrationHandler.Cancel)
				r.Get("/{eventId}/registrations", registrationHandler.ListRegistered)
				r.Get("/{eventId}/registrations/{studentId}/pass", registrationHandler.CheckinPass)
				r.Post("/{eventId}/notify", registrationHandler.Notify)

				r.Put("/{eventId}/attendance/{studentId}", attendanceHandler.Mark)
				r.Get("/{eventId}/attendance", attendanceHandler.ListForEvent)
				r.Get("/{eventId}/attendance/export", reportHandler.ExportAttendance)

				r.Get("/{eventId}/stats", reportHandler.Stats)
			})
			logger.Info("ROUTER", "Event routes registered under /api/events")

			r.Route("/students", func(r chi.Router) {
				r.Post("/", studentHandler.Add)
				r.Get("/", studentHandler.GetAll)
				r.Get("/{studentId}", studentHandler.Get)
				r.Put("/{studentId}", studentHandler.Update)
				r.Delete("/{studentId}", studentHandler.Delete)
			})
			logger.Info("ROUTER", "Student routes registered under /api/students")
		})
	})

	server := &http.Server{
		Addr:         cfg.Server.Port,
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	go func() {
		logger.Info("HTTP", fmt.Sprintf("Attendance Service running on %s", cfg.Server.Port))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("HTTP", fmt.Sprintf("HTTP server error: %v", err))
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	logger.Info("APP", "Service started successfully, waiting for shutdown signal")
	<-stop

	logger.Info("APP", "Shutdown signal received, initiating graceful shutdown")
	ctxShutdown, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := server.Shutdown(ctxShutdown); err != nil {
		logger.Error("HTTP", fmt.Sprintf("Server Shutdown Failed: %v", err))
	} else {
		logger.Info("HTTP", "Attendance Service shutdown complete")
	}
}
