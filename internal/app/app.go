package app

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"football_assistance_backend/internal/config"
	"football_assistance_backend/internal/controller"
	"football_assistance_backend/internal/repository"
	"football_assistance_backend/internal/service"
	"football_assistance_backend/internal/util"
	"football_assistance_backend/pkg/configwatcher"
	"football_assistance_backend/pkg/database"
	"football_assistance_backend/pkg/logger"
	"football_assistance_backend/pkg/monitoring"
	"football_assistance_backend/pkg/security"
	"football_assistance_backend/pkg/tracing"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.uber.org/zap"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

type App struct {
	Config          *config.Config
	ConfigFile      string
	Router          *gin.Engine
	DB              *gorm.DB
	Redis           *redis.Client
	services        *services
	tracer          *sdktrace.TracerProvider
	stopWatch       context.CancelFunc
	configCallbacks []func(*config.Config)
}

type repositories struct {
	user         *repository.UserRepository
	profile      *repository.ProfileRepository
	goal         *repository.GoalRepository
	training     *repository.TrainingRepository
	reflection   *repository.ReflectionRepository
	teamMember   *repository.TeamMemberRepository
	subscription *repository.SubscriptionRepository
	chat         *repository.ChatRepository
	token        *repository.TokenRepository
}

type services struct {
	auth       *service.AuthService
	storage    *service.StorageService
	ai         *service.AIService
	profile    *service.ProfileService
	goal       *service.GoalService
	training   *service.TrainingService
	team       *service.TeamService
	analysis   *service.VideoAnalysisService
	reflection *service.ReflectionService
	dashboard  *service.DashboardService
	backup     *service.BackupService
	chat       *service.ChatService
	payment    *service.PaymentService
	sweeper    *service.AnalysisSweeper
}

type controllers struct {
	auth       *controller.AuthController
	profile    *controller.ProfileController
	goal       *controller.GoalController
	training   *controller.TrainingController
	reflection *controller.ReflectionController
	team       *controller.TeamController
	dashboard  *controller.DashboardController
	backup     *controller.BackupController
	chat       *controller.ChatController
	payment    *controller.PaymentController
	function   *controller.FunctionController
	health     *controller.HealthController
}

func (a *App) RegisterConfigCallback(callback func(*config.Config)) {
	a.configCallbacks = append(a.configCallbacks, callback)
}

func (a *App) initRepositories(db *gorm.DB, rdb *redis.Client) *repositories {
	return &repositories{
		user:         repository.NewUserRepository(db),
		profile:      repository.NewProfileRepository(db),
		goal:         repository.NewGoalRepository(db),
		training:     repository.NewTrainingRepository(db),
		reflection:   repository.NewReflectionRepository(db),
		teamMember:   repository.NewTeamMemberRepository(db),
		subscription: repository.NewSubscriptionRepository(db),
		chat:         repository.NewChatRepository(db, rdb),
		token:        repository.NewTokenRepository(rdb),
	}
}

func (a *App) initServices(repos *repositories, cfg *config.Config) *services {
	s := &services{}

	s.storage = service.NewStorageService(cfg)
	s.auth = service.NewAuthService(repos.user, repos.profile, repos.token, cfg)

	ai, err := service.NewAIService(context.Background(), cfg.AI)
	if err != nil {
		logger.Log.Warn("AI provider unavailable, coach and analysis will fail", zap.String("provider", cfg.AI.Provider), zap.Error(err))
		ai = service.NewUnavailableAIService(err)
	}
	s.ai = ai

	s.profile = service.NewProfileService(repos.profile)
	s.goal = service.NewGoalService(repos.goal)
	s.training = service.NewTrainingService(repos.training)
	s.team = service.NewTeamService(repos.teamMember)
	s.analysis = service.NewVideoAnalysisService(repos.reflection, repos.profile, s.ai)
	s.reflection = service.NewReflectionService(repos.reflection, s.storage, s.analysis)
	s.dashboard = service.NewDashboardService(repos.goal, repos.training, repos.reflection, repos.subscription)
	s.backup = service.NewBackupService(repos.goal, repos.training, repos.reflection, repos.teamMember, repos.profile)
	s.chat = service.NewChatService(repos.chat, repos.profile, s.ai, cfg.AI.HistoryLimit)
	s.payment = service.NewPaymentService(repos.subscription, cfg.Stripe)
	s.sweeper = service.NewAnalysisSweeper(repos.reflection, s.analysis, cfg.Scheduler)

	return s
}

func (a *App) initControllers(s *services, db *gorm.DB, rdb *redis.Client) *controllers {
	return &controllers{
		auth:       controller.NewAuthController(s.auth),
		profile:    controller.NewProfileController(s.profile),
		goal:       controller.NewGoalController(s.goal),
		training:   controller.NewTrainingController(s.training),
		reflection: controller.NewReflectionController(s.reflection),
		team:       controller.NewTeamController(s.team),
		dashboard:  controller.NewDashboardController(s.dashboard),
		backup:     controller.NewBackupController(s.backup),
		chat:       controller.NewChatController(s.chat),
		payment:    controller.NewPaymentController(s.payment),
		function:   controller.NewFunctionController(s.chat, s.analysis, s.payment),
		health:     controller.NewHealthController(db, rdb),
	}
}

const (
	stripeWebhookPath = "/functions/v1/stripe-webhook"
	defaultBodyLimit  = 1 << 20
	maxBackupSize     = 50 << 20
)

func (a *App) setupMiddlewares(router *gin.Engine, cfg *config.Config) {
	router.Use(security.CORS(cfg.CORS.AllowedOrigins))
	router.Use(security.Secure())

	maxRequests := cfg.RateLimit.MaxRequests
	if maxRequests <= 0 {
		maxRequests = 1000
	}
	window := time.Duration(cfg.RateLimit.WindowMinutes) * time.Minute
	if window <= 0 {
		window = time.Minute
	}
	router.Use(security.RateLimiter(maxRequests, window, stripeWebhookPath))

	router.Use(security.BodyLimit(defaultBodyLimit, map[string]int64{
		"/api/reflections":   util.MaxVideoSize + 1<<20,
		"/api/backup/import": maxBackupSize,
		stripeWebhookPath:    64 << 10,
	}))

	// tracing
	if cfg.Tracing.Enabled {
		router.Use(tracing.GinMiddleware())
	}

	router.Use(monitoring.MetricsMiddleware())
}

func (a *App) startBackgroundTasks(s *services) {
	if a.Config.Scheduler.Enabled {
		if err := s.sweeper.Start(); err != nil {
			logger.Log.Error("Failed to start analysis sweeper", zap.Error(err))
		}
	}

	if a.ConfigFile == "" {
		return
	}
	ctx, cancel := context.WithCancel(context.Background())
	a.stopWatch = cancel
	go func() {
		err := configwatcher.WatchConfig(ctx, a.ConfigFile, func(newCfg *config.Config) {
			for _, callback := range a.configCallbacks {
				callback(newCfg)
			}
		})
		if err != nil {
			logger.Log.Warn("Config watcher stopped", zap.Error(err))
		}
	}()
}

func gormLogLevel(mode string) gormlogger.LogLevel {
	if mode == gin.DebugMode {
		return gormlogger.Info
	}
	return gormlogger.Warn
}

// NewApp wires the application from cfg. configDir is watched for config.yaml changes; pass "" to disable.
func NewApp(cfg *config.Config, configDir string) *App {
	logger.InitLogger(cfg)
	logger.Log.Info("Logger initialized successfully")

	if cfg.Server.Mode != "" {
		gin.SetMode(cfg.Server.Mode)
	}

	db, err := database.InitDB(&cfg.Database, gormLogLevel(cfg.Server.Mode))
	if err != nil {
		logger.Log.Fatal("Failed to initialize database", zap.Error(err))
	}

	// release mode migrates only when asked to
	if cfg.Server.Mode != gin.ReleaseMode || cfg.ForceMigrate {
		if err := database.Migrate(db); err != nil {
			logger.Log.Fatal("Failed to migrate database", zap.Error(err))
		}
	}

	app := &App{
		Config: cfg,
		DB:     db,
	}
	if configDir != "" {
		app.ConfigFile = filepath.Join(configDir, "config.yaml")
	}
	if cfg.MigrateOnly {
		return app
	}

	rdb, err := database.InitRedis(&cfg.Redis)
	if err != nil {
		logger.Log.Warn("Redis unavailable, chat cache and token revocation fall back to local state", zap.Error(err))
		rdb = nil
	}
	app.Redis = rdb

	repos := app.initRepositories(db, rdb)
	services := app.initServices(repos, cfg)
	app.services = services
	controllers := app.initControllers(services, db, rdb)

	app.RegisterConfigCallback(func(newCfg *config.Config) {
		logger.SetMode(newCfg.Server.Mode)
		services.ai.SetModels(newCfg.AI.Model, newCfg.AI.VideoModel)
	})

	// metrics
	monitoring.Init()

	if cfg.Tracing.Enabled {
		tp, err := tracing.InitTracer("football-assistance", cfg.Tracing.CollectorEndpoint)
		if err != nil {
			logger.Log.Error("Failed to initialize tracing", zap.Error(err))
		} else {
			app.tracer = tp
		}
	}

	router := gin.New()
	router.Use(gin.Recovery())
	app.Router = router

	app.setupMiddlewares(router, cfg)
	app.registerRoutes(router, controllers, services)

	if cfg.Storage.Type == util.StorageLocal || cfg.Storage.Type == "" {
		router.Static("/uploads", cfg.Storage.LocalPath)
	}

	app.startBackgroundTasks(services)

	return app
}

func (a *App) Run() {
	srv := &http.Server{
		Addr:              ":" + a.Config.Server.Port,
		Handler:           a.Router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Log.Info("Server running", zap.String("port", a.Config.Server.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("listen: %s\n", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Log.Error("Server forced to shutdown", zap.Error(err))
	}

	a.Close(ctx)
	logger.Log.Info("Server exiting")
	_ = logger.Log.Sync()
}

// Close stops background work: the config watcher, the sweeper, in-flight analyses and the tracer.
func (a *App) Close(ctx context.Context) {
	if a.stopWatch != nil {
		a.stopWatch()
	}
	if a.services != nil {
		if err := a.services.sweeper.Shutdown(); err != nil {
			logger.Log.Error("Failed to stop analysis sweeper", zap.Error(err))
		}

		done := make(chan struct{})
		go func() {
			a.services.analysis.Wait()
			close(done)
		}()
		select {
		case <-done:
		case <-ctx.Done():
			logger.Log.Warn("Gave up waiting for in-flight video analyses")
		}
	}
	if a.tracer != nil {
		if err := a.tracer.Shutdown(ctx); err != nil {
			logger.Log.Error("Failed to shutdown tracer provider", zap.Error(err))
		}
	}
	if a.Redis != nil {
		_ = a.Redis.Close()
	}
	if sqlDB, err := a.DB.DB(); err == nil {
		_ = sqlDB.Close()
	}
}
