package bootstrap

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go-hospital-server/config"
	"go-hospital-server/internal/delivery/tcp"
	"go-hospital-server/internal/delivery/tcp/handler"
	"go-hospital-server/internal/infrastructure/cache"
	"go-hospital-server/internal/infrastructure/database"
	"go-hospital-server/internal/repository"
	"go-hospital-server/internal/service"
	"go-hospital-server/internal/usecase"
	"go-hospital-server/pkg/validator"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// App holds all dependencies for the application
type App struct {
	Config      *config.Config
	DB          *gorm.DB
	RedisClient *redis.Client
	Server      *tcp.Server
}

// New creates a new App instance with all dependencies initialized
func New() (*App, error) {
	app := &App{}

	// Setup logger
	setupLogger()

	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	app.Config = cfg
	logrus.Info("Configuration loaded successfully")

	// Initialize database
	db, err := database.NewPostgresConnection(cfg.DB)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	app.DB = db

	// Apply schema migrations
	if err := database.RunMigrations(db); err != nil {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	// Initialize Redis
	redisClient, err := cache.NewRedisClient(cfg.Redis)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}
	app.RedisClient = redisClient

	// Initialize all layers
	server, err := initializeServer(cfg, db, redisClient)
	if err != nil {
		return nil, err
	}
	app.Server = server

	return app, nil
}

// setupLogger configures the logrus logger
func setupLogger() {
	logrus.SetFormatter(&logrus.JSONFormatter{})
	logrus.SetOutput(os.Stdout)
	logrus.SetLevel(logrus.InfoLevel)
}

// initializeServer wires repositories, usecases and handlers into the
// TCP action router and returns the server ready to start.
func initializeServer(cfg *config.Config, db *gorm.DB, redisClient *redis.Client) (*tcp.Server, error) {
	// Initialize validator
	customValidator := validator.NewValidator()

	// Initialize logger
	log := logrus.StandardLogger()

	// Initialize repositories
	userRepo := repository.NewUserRepository()
	doctorRepo := repository.NewDoctorRepository()
	appointmentRepo := repository.NewAppointmentRepository()
	hospitalizationRepo := repository.NewHospitalizationRepository()
	prescriptionRepo := repository.NewPrescriptionRepository()
	medicationRepo := repository.NewMedicationRepository()
	auditLogRepo := repository.NewAuditLogRepository()

	// Initialize services
	auditService := service.NewAuditService(log, auditLogRepo)
	idempotencyService := service.NewIdempotencyService(redisClient, log)

	// Initialize usecases
	authUsecase := usecase.NewAuthUsecase(db, log, userRepo, doctorRepo, auditService)
	appointmentUsecase := usecase.NewAppointmentUsecase(db, log, doctorRepo, appointmentRepo, userRepo, idempotencyService, auditService)
	hospitalizationUsecase := usecase.NewHospitalizationUsecase(db, log, hospitalizationRepo, userRepo, auditService)
	prescriptionUsecase := usecase.NewPrescriptionUsecase(db, log, prescriptionRepo, medicationRepo, userRepo, doctorRepo, auditService)

	// Initialize handlers
	authHandler := handler.NewAuthHandler(authUsecase, customValidator)
	appointmentHandler := handler.NewAppointmentHandler(appointmentUsecase, customValidator)
	hospitalizationHandler := handler.NewHospitalizationHandler(hospitalizationUsecase, customValidator)
	prescriptionHandler := handler.NewPrescriptionHandler(prescriptionUsecase, customValidator)

	// Initialize router
	router := tcp.NewRouter(log)
	registrations := map[string]tcp.HandlerFunc{
		"register": authHandler.Register,
		"login":    authHandler.Login,

		"get_all_doctors":             appointmentHandler.GetAllDoctors,
		"get_doctors_by_department":   appointmentHandler.GetDoctorsByDepartment,
		"register_doctor":             appointmentHandler.BookDoctor,
		"get_appointments_by_patient": appointmentHandler.GetAppointmentsByPatient,

		"create_hospitalization":          hospitalizationHandler.Create,
		"get_hospitalizations_by_patient": hospitalizationHandler.GetByPatient,
		"get_hospitalizations_by_doctor":  hospitalizationHandler.GetByDoctor,
		"get_all_hospitalizations":        hospitalizationHandler.GetAll,
		"update_hospitalization_status":   hospitalizationHandler.UpdateStatus,

		"get_all_medications":          prescriptionHandler.GetAllMedications,
		"create_prescription":          prescriptionHandler.Create,
		"get_prescription":             prescriptionHandler.GetByID,
		"get_prescriptions_by_patient": prescriptionHandler.GetByPatient,
	}
	for action, h := range registrations {
		if err := router.Register(action, h); err != nil {
			return nil, fmt.Errorf("failed to register action %q: %w", action, err)
		}
	}
	log.Infof("Registered %d actions", router.Actions())

	return tcp.NewServer(cfg.TCP, log, router), nil
}

// Run starts the TCP server and handles graceful shutdown
func (app *App) Run() {
	// Start server in goroutine
	errCh := make(chan error, 1)
	go func() {
		logrus.Infof("Environment: %s", app.Config.App.Env)
		errCh <- app.Server.Start()
	}()

	// Wait for interrupt signal
	app.waitForShutdown(errCh)
}

// waitForShutdown blocks until an interrupt signal is received
func (app *App) waitForShutdown(errCh chan error) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case <-quit:
	case err := <-errCh:
		if err != nil {
			logrus.Fatalf("Failed to start server: %v", err)
		}
		return
	}

	logrus.Info("Shutting down server...")

	// Create shutdown context with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// Shutdown TCP server gracefully
	if err := app.Server.Shutdown(ctx); err != nil {
		logrus.Errorf("Server forced to shutdown: %v", err)
	}

	// Close connections
	app.Close()

	logrus.Info("Server shutdown complete")
}

// Close closes all connections (database, redis, etc.)
func (app *App) Close() {
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
