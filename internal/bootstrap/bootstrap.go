package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	appAuth "github.com/unizg/careerhub/internal/app/auth"
	appControllers "github.com/unizg/careerhub/internal/app/controllers"
	appMigrations "github.com/unizg/careerhub/internal/app/migrations"
	appRepos "github.com/unizg/careerhub/internal/app/repositories"
	appRoutes "github.com/unizg/careerhub/internal/app/routes"
	appServices "github.com/unizg/careerhub/internal/app/services"
	"github.com/unizg/careerhub/internal/config"
	"github.com/unizg/careerhub/internal/db"
	appMiddleware "github.com/unizg/careerhub/internal/middleware"
	pkgAuth "github.com/unizg/careerhub/internal/pkg/auth"
	"github.com/unizg/careerhub/internal/pkg/filestorage"
	"github.com/unizg/careerhub/internal/pkg/llm"
	"github.com/unizg/careerhub/internal/pkg/logger"
	"github.com/unizg/careerhub/internal/pkg/recordstore"
	"github.com/unizg/careerhub/internal/pkg/websocket"
)

// Closer releases a resource acquired during startup
type Closer func(ctx context.Context) error

// Dependencies holds all the application dependencies
type Dependencies struct {
	Store       *recordstore.Store
	Repos       *appRepos.Repositories
	FileStorage filestorage.FileStorage

	JWTService *pkgAuth.JWTService
	Hasher     *pkgAuth.PasswordHasher
	Guard      *appAuth.Guard

	AuthService         *appServices.AuthService
	StudentService      *appServices.StudentService
	CompanyService      *appServices.CompanyService
	ApplicationService  *appServices.ApplicationService
	NotificationService *appServices.NotificationService
	AdviceService       *appServices.AdviceService
	ChatService         *appServices.ChatService
	ContentService      *appServices.ContentService

	Controllers    *appRoutes.Controllers
	AuthMiddleware *appMiddleware.AuthMiddleware
	ChatLimit      appRoutes.ChatLimit
	Hub            *websocket.Hub

	Logger  zerolog.Logger
	cancel  context.CancelFunc
	closers []Closer
}

// AddCloser registers fn to run on Close, in reverse order of registration
func (d *Dependencies) AddCloser(fn Closer) {
	d.closers = append(d.closers, fn)
}

// Close stops the notification hub and releases storage connections
func (d *Dependencies) Close(ctx context.Context) error {
	if d.cancel != nil {
		d.cancel()
	}
	var errs []error
	for i := len(d.closers) - 1; i >= 0; i-- {
		if err := d.closers[i](ctx); err != nil {
			errs = append(errs, err)
		}
	}
	d.closers = nil
	return errors.Join(errs...)
}

// LoadConfigAndSetupLogger loads configuration and initializes the logger.
// A .env file in the working directory is applied before the config is read.
func LoadConfigAndSetupLogger() (*config.Config, zerolog.Logger, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		logger.Warn().Err(err).Msg("Failed to load .env file")
	}

	configPath := filepath.Join("configs", "config.yaml")
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to load configuration")
		return nil, zerolog.Logger{}, err
	}

	format := strings.ToLower(cfg.Logging.Format)
	lgr := logger.Configure(logger.Config{
		Level:  logger.ParseLevel(cfg.Logging.Level),
		Pretty: format == "pretty" || format == "text",
	})
	lgr.Info().Str("logLevel", cfg.Logging.Level).Str("logFormat", cfg.Logging.Format).Msg("Logger configured")
	return cfg, lgr, nil
}

// SetupStore opens the record store on the configured driver. The returned
// closer releases the underlying connection.
func SetupStore(ctx context.Context, cfg *config.Config, lgr zerolog.Logger) (*recordstore.Store, Closer, error) {
	driver := strings.ToLower(cfg.Storage.Driver)
	lgr.Info().Str("driver", driver).Msg("Opening record store...")

	switch driver {
	case "file":
		backend, err := recordstore.NewFileBackend(cfg.Storage.DataDir)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to open data directory: %w", err)
		}
		store := recordstore.New(backend)
		return store, func(context.Context) error { return store.Close() }, nil

	case "postgres":
		database, err := db.NewPostgresDB(ctx, cfg)
		if err != nil {
			lgr.Error().Err(err).Msg("Failed to connect to database")
			return nil, nil, err
		}

		var migrations fs.FS = appMigrations.Embedded()
		if cfg.Database.MigrationsDir != "" {
			migrations = os.DirFS(cfg.Database.MigrationsDir)
		}
		lgr.Info().Msg("Running database migrations...")
		if err := appMigrations.NewMigrator(database.Pool, lgr).Migrate(ctx, migrations); err != nil {
			database.Close()
			return nil, nil, fmt.Errorf("database migrations failed: %w", err)
		}
		lgr.Info().Msg("Database migrations successfully applied.")

		store := recordstore.New(recordstore.NewPostgresBackend(database.Pool))
		return store, func(context.Context) error {
			err := store.Close()
			database.Close()
			return err
		}, nil

	case "mongo":
		database, err := db.NewMongoDB(ctx, cfg)
		if err != nil {
			lgr.Error().Err(err).Msg("Failed to connect to mongodb")
			return nil, nil, err
		}
		store := recordstore.New(recordstore.NewMongoBackend(database.Database))
		return store, func(ctx context.Context) error {
			return errors.Join(store.Close(), database.Close(ctx))
		}, nil
	}

	return nil, nil, fmt.Errorf("unsupported storage driver: %s", cfg.Storage.Driver)
}

// SetupFileStorage creates the upload backend
func SetupFileStorage(cfg *config.Config, lgr zerolog.Logger) (filestorage.FileStorage, error) {
	switch strings.ToLower(cfg.Storage.UploadDriver) {
	case "local":
		return filestorage.NewLocalStorage(cfg.Storage.UploadDir, lgr)
	case "s3":
		s3 := cfg.Storage.S3
		return filestorage.NewS3Storage(filestorage.S3Config{
			Bucket:    s3.Bucket,
			Region:    s3.Region,
			Endpoint:  s3.Endpoint,
			AccessKey: s3.AccessKey,
			SecretKey: s3.SecretKey,
			Prefix:    s3.Prefix,
		})
	}
	return nil, fmt.Errorf("unsupported upload driver: %s", cfg.Storage.UploadDriver)
}

// setupLimiter prefers Redis so limits hold across replicas
func setupLimiter(cfg *config.Config, lgr zerolog.Logger) (appMiddleware.Limiter, Closer) {
	if cfg.Redis.Addr == "" {
		lgr.Info().Msg("Using in-process rate limiter")
		return appMiddleware.NewMemoryLimiter(), nil
	}
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	lgr.Info().Str("addr", cfg.Redis.Addr).Msg("Using redis rate limiter")
	return appMiddleware.NewRedisLimiter(client), func(context.Context) error { return client.Close() }
}

// BuildDependencies initializes application repositories, services, and controllers,
// and starts the notification hub. Call Close on the result to stop it.
func BuildDependencies(cfg *config.Config, store *recordstore.Store, files filestorage.FileStorage, lgr zerolog.Logger) (*Dependencies, error) {
	deps := &Dependencies{
		Store:       store,
		FileStorage: files,
		Logger:      lgr,
	}
	maxUpload := cfg.MaxUploadBytes()

	deps.Repos = appRepos.NewRepositories(store)

	deps.JWTService = pkgAuth.NewJWTService(pkgAuth.JWTConfig{
		SecretKey:      cfg.JWT.Secret,
		AccessTokenExp: config.Duration(cfg.JWT.AccessTokenExpiration, time.Hour),
		TokenIssuer:    cfg.JWT.Issuer,
	})
	deps.Hasher = pkgAuth.NewPasswordHasher(cfg.Auth.BcryptCost)
	deps.Guard = appAuth.NewGuard(deps.JWTService, deps.Repos.StudentRepository, deps.Repos.CompanyRepository)

	contentService, err := appServices.NewContentService(cfg.Content.Path)
	if err != nil {
		lgr.Error().Err(err).Str("path", cfg.Content.Path).Msg("Failed to load content catalog")
		return nil, err
	}
	deps.ContentService = contentService

	ctx, cancel := context.WithCancel(context.Background())
	deps.cancel = cancel
	deps.Hub = websocket.NewHub(logger.WithComponent("websocket"))
	go deps.Hub.Run(ctx)

	deps.AuthService = appServices.NewAuthService(
		deps.Repos.StudentRepository,
		deps.Repos.CompanyRepository,
		deps.Hasher,
		deps.JWTService,
		lgr,
	)
	deps.StudentService = appServices.NewStudentService(deps.Repos.StudentRepository, deps.Guard, files, maxUpload, lgr)
	deps.CompanyService = appServices.NewCompanyService(
		deps.Repos.CompanyRepository,
		deps.Repos.ApplicationRepository,
		deps.Guard,
		files,
		maxUpload,
		lgr,
	)
	deps.NotificationService = appServices.NewNotificationService(deps.Repos.NotificationRepository, deps.Guard, deps.Hub, lgr)
	deps.ApplicationService = appServices.NewApplicationService(
		deps.Repos.ApplicationRepository,
		deps.Repos.StudentRepository,
		deps.Repos.CompanyRepository,
		deps.NotificationService,
		deps.Guard,
		files,
		maxUpload,
		lgr,
	)
	deps.AdviceService = appServices.NewAdviceService(deps.Repos.AdviceRepository, lgr)
	deps.ChatService = appServices.NewChatService(llm.NewClient(llm.Config{
		APIKey:  cfg.LLM.APIKey,
		BaseURL: cfg.LLM.BaseURL,
		Model:   cfg.LLM.Model,
		Timeout: config.Duration(cfg.LLM.Timeout, 30*time.Second),
	}), logger.WithComponent("chat"))

	websocket.NewMessageHandler(deps.Hub, deps.NotificationService, lgr).Start(ctx)

	limiter, closeLimiter := setupLimiter(cfg, lgr)
	if closeLimiter != nil {
		deps.AddCloser(closeLimiter)
	}
	deps.ChatLimit = appRoutes.ChatLimit{
		Limiter: limiter,
		Limit:   cfg.RateLimit.ChatLimit,
		Window:  config.Duration(cfg.RateLimit.ChatWindow, time.Minute),
	}

	deps.AuthMiddleware = appMiddleware.NewAuthMiddleware(deps.Guard)
	deps.Controllers = &appRoutes.Controllers{
		Auth:         appControllers.NewAuthController(deps.AuthService, lgr),
		Student:      appControllers.NewStudentController(deps.StudentService, maxUpload),
		Company:      appControllers.NewCompanyController(deps.CompanyService, maxUpload),
		Application:  appControllers.NewApplicationController(deps.ApplicationService, maxUpload),
		Notification: appControllers.NewNotificationController(deps.NotificationService),
		Advice:       appControllers.NewAdviceController(deps.AdviceService),
		Chat:         appControllers.NewChatController(deps.ChatService),
		Content:      appControllers.NewContentController(deps.ContentService, files),
		WebSocket:    websocket.NewHandler(deps.Hub, appMiddleware.CurrentUsername, logger.WithComponent("websocket")),
	}

	return deps, nil
}

// SetupRouter configures the Gin engine with middleware and routes.
func SetupRouter(cfg *config.Config, deps *Dependencies, lgr zerolog.Logger) *gin.Engine {
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
		lgr.Info().Msg("Setting Gin mode to release")
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(appMiddleware.RequestLogger(lgr))

	appRoutes.SetupSwagger(router)
	appRoutes.SetupRouter(router, deps.Controllers, deps.AuthMiddleware, deps.ChatLimit)

	return router
}
