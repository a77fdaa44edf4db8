package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	_ "time/tzdata"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"menvo.backend/internal/config"
	"menvo.backend/internal/domain/entities"
	datasource "menvo.backend/internal/infrastructure/datasources/postgres"
	"menvo.backend/internal/infrastructure/jobs"
	"menvo.backend/internal/infrastructure/notifier"
	"menvo.backend/internal/infrastructure/quizai"
	"menvo.backend/internal/infrastructure/repositories"
	"menvo.backend/internal/infrastructure/storage"
	"menvo.backend/internal/interfaces/http/handlers"
	"menvo.backend/internal/interfaces/http/middleware"
	"menvo.backend/internal/usecases"
	"menvo.backend/pkg/jwt"
	"menvo.backend/pkg/logger"
	"menvo.backend/pkg/redis"
)

var (
	loadDotenv = godotenv.Load
	loadCfg    = config.Load
	initLog    = logger.Init
	initRedis  = redis.Init
	openDB     = func(cfg config.DatabaseConfig) (*gorm.DB, error) {
		sqlDB, err := datasource.NewConnection(cfg)
		if err != nil {
			return nil, err
		}
		applied, err := datasource.Migrate(context.Background(), sqlDB)
		if err != nil {
			_ = sqlDB.Close()
			return nil, err
		}
		if len(applied) > 0 {
			logger.Info(context.Background(), "Migrations applied", zap.Strings("versions", applied))
		}
		return gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{
			TranslateError: true,
		})
	}
	newSessionStore = redis.NewSessionStore
	newUploader     = func(url string) (usecases.FileUploader, error) {
		uploader, err := storage.NewCloudinaryUploader(url)
		if err != nil {
			return nil, err
		}
		return uploader, nil
	}
	runServer = func(r *gin.Engine, port string) error { return r.Run(":" + port) }
	getStdDB  = func(db *gorm.DB) (*sql.DB, error) { return db.DB() }
)

func main() {
	if err := runMainProcess(); err != nil {
		log.Fatal(err)
	}
}

func runMainProcess() error {
	if err := entities.ValidatePermissionTable(); err != nil {
		return fmt.Errorf("invalid permission table: %w", err)
	}

	if err := loadDotenv(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg := loadCfg()

	initLog(cfg.Server.Env)
	ctx := context.Background()
	logger.Info(ctx, "Logger initialized", zap.String("env", cfg.Server.Env))

	if err := initRedis(cfg.Redis.URL, cfg.Redis.PASSWORD); err != nil {
		logger.Error(ctx, "Failed to initialize Redis", zap.Error(err))
		return fmt.Errorf("failed to initialize redis: %w", err)
	}
	defer redis.Close()
	logger.Info(ctx, "Redis initialized")

	if cfg.Server.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	db, err := openDB(cfg.Database)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := getStdDB(db)
	if err != nil {
		return fmt.Errorf("failed to get generic database object: %w", err)
	}
	defer sqlDB.Close()
	logger.Info(ctx, "Connected to PostgreSQL")

	jwtService := jwt.NewJWTService(
		cfg.JWT.Secret,
		cfg.JWT.AccessExpiry,
		cfg.JWT.RefreshExpiry,
	)

	sessionStore, err := newSessionStore(cfg.Security.SessionEncryptionKey)
	if err != nil {
		return fmt.Errorf("failed to initialize session store: %w", err)
	}

	// Repositories
	userRepo := repositories.NewUserRepository(db)
	profileRepo := repositories.NewProfileRepository(db)
	availabilityRepo := repositories.NewAvailabilityRepository(db)
	appointmentRepo := repositories.NewAppointmentRepository(db)
	organizationRepo := repositories.NewOrganizationRepository(db)
	subscriberRepo := repositories.NewSubscriberRepository(db)
	quizRepo := repositories.NewQuizRepository(db)
	documentRepo := repositories.NewDocumentRepository(db)
	uow := repositories.NewUnitOfWork(db)

	// Outbound services
	var appointmentNotifier usecases.AppointmentNotifier = notifier.LogNotifier{}
	if cfg.Kafka.Broker != "" {
		kafkaNotifier := notifier.NewKafkaNotifier(cfg.Kafka)
		defer kafkaNotifier.Close()
		appointmentNotifier = kafkaNotifier
		logger.Info(ctx, "Appointment events published to Kafka", zap.String("topic", cfg.Kafka.Topic))
	}

	uploader, err := newUploader(cfg.Cloudinary.URL)
	if err != nil {
		if !errors.Is(err, storage.ErrNotConfigured) {
			return fmt.Errorf("failed to initialize file storage: %w", err)
		}
		logger.Warn(ctx, "File storage not configured, uploads disabled")
		uploader = nil
	}

	var analyzer usecases.QuizAnalyzer
	if client := quizai.NewClient(cfg.QuizAI); client != nil {
		analyzer = client
	} else {
		logger.Warn(ctx, "Quiz analysis not configured, submissions stay pending")
	}

	// Usecases
	lifecycleUsecase := usecases.NewLifecycleUsecase(profileRepo)
	authUsecase := usecases.NewAuthUsecase(userRepo, jwtService, lifecycleUsecase, sessionStore, cfg.JWT.RefreshExpiry)
	profileUsecase := usecases.NewProfileUsecase(userRepo, profileRepo, authUsecase)
	availabilityUsecase := usecases.NewAvailabilityUsecase(availabilityRepo, appointmentRepo, userRepo, profileRepo, cfg.Booking)
	bookingUsecase := usecases.NewBookingUsecase(appointmentRepo, availabilityRepo, userRepo, profileRepo, appointmentNotifier, cfg.Booking)
	mentorUsecase := usecases.NewMentorUsecase(userRepo, profileRepo, availabilityRepo)
	organizationUsecase := usecases.NewOrganizationUsecase(organizationRepo, userRepo, uow)
	subscriptionUsecase := usecases.NewSubscriptionUsecase(subscriberRepo)
	quizUsecase := usecases.NewQuizUsecase(quizRepo, analyzer)
	uploadUsecase := usecases.NewUploadUsecase(uploader, documentRepo, profileRepo, cfg.Cloudinary.Folder)
	adminUsecase := usecases.NewAdminUsecase(userRepo, profileRepo, appointmentRepo, organizationRepo, subscriberRepo)

	// Handlers
	healthHandler := handlers.NewHealthHandler(map[string]handlers.Pinger{
		"database": sqlDB.PingContext,
		"redis":    redis.Ping,
	})

	reminderJob := jobs.NewAppointmentReminderJob(bookingUsecase, cfg.Booking.ReminderInterval, cfg.Booking.ReminderLead)
	jobCtx, cancel := context.WithCancel(ctx)
	defer cancel()
	go reminderJob.Start(jobCtx)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestIDMiddleware())
	r.Use(middleware.LoggerMiddleware())
	r.Use(middleware.MetricsMiddleware())

	applyCORSMiddleware(r, cfg.Server.AllowedOrigins)
	registerHealthRoute(r, healthHandler)
	registerAPIV1Routes(r, routeDeps{
		authHandler:            handlers.NewAuthHandler(authUsecase),
		lifecycleHandler:       handlers.NewLifecycleHandler(lifecycleUsecase),
		profileHandler:         handlers.NewProfileHandler(profileUsecase),
		availabilityHandler:    handlers.NewAvailabilityHandler(availabilityUsecase),
		mentorHandler:          handlers.NewMentorHandler(mentorUsecase, availabilityUsecase),
		appointmentHandler:     handlers.NewAppointmentHandler(bookingUsecase),
		uploadHandler:          handlers.NewUploadHandler(uploadUsecase),
		organizationHandler:    handlers.NewOrganizationHandler(organizationUsecase),
		subscriptionHandler:    handlers.NewSubscriptionHandler(subscriptionUsecase),
		quizHandler:            handlers.NewQuizHandler(quizUsecase),
		adminHandler:           handlers.NewAdminHandler(adminUsecase),
		authMiddleware:         middleware.AuthMiddleware(jwtService, sessionStore),
		optionalAuthMiddleware: middleware.OptionalAuthMiddleware(jwtService, sessionStore),
		lifecycleResolver:      lifecycleUsecase,
	})

	if cfg.Server.Env != "production" {
		for _, route := range r.Routes() {
			logger.Debug(ctx, "Route registered", zap.String("method", route.Method), zap.String("path", route.Path))
		}
	}

	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		<-quit
		logger.Info(ctx, "Shutting down server")
		reminderJob.Stop()
		cancel()
	}()

	logger.Info(ctx, "Menvo backend starting",
		zap.String("port", cfg.Server.Port),
		zap.String("api", "/api/v1"),
	)

	if err := runServer(r, cfg.Server.Port); err != nil {
		return fmt.Errorf("failed to start server: %w", err)
	}
	return nil
}
