package app

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"goalapp_backend/internal/config"
	"goalapp_backend/internal/controller"
	"goalapp_backend/internal/repository"
	"goalapp_backend/internal/service"
	"goalapp_backend/pkg/database"
	"goalapp_backend/pkg/logger"
	"goalapp_backend/pkg/monitoring"
	"goalapp_backend/pkg/scheduler"
	"goalapp_backend/pkg/security"
	"goalapp_backend/pkg/tracing"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type App struct {
	Config          *config.Config
	Router          *gin.Engine
	DB              *gorm.DB
	Redis           *redis.Client
	Scheduler       *scheduler.Scheduler
	services        *services
	configCallbacks []func(*config.Config)
}

type repositories struct {
	goal        *repository.GoalRepository
	deviceToken *repository.DeviceTokenRepository
	routine     *repository.RoutineRepository
	ledger      repository.NotificationLedger
}

type services struct {
	goal         *service.GoalService
	expiration   *service.GoalExpirationService
	notification *service.NotificationScheduler
	routine      *service.RoutineService
	deviceToken  *service.DeviceTokenService
	fcm          *service.FcmService
}

type controllers struct {
	goal        *controller.GoalController
	routine     *controller.RoutineController
	deviceToken *controller.DeviceTokenController
	scheduler   *controller.SchedulerController
	health      *controller.HealthController
}

func (a *App) RegisterConfigCallback(callback func(*config.Config)) {
	a.configCallbacks = append(a.configCallbacks, callback)
}

// ReloadConfig 配置热更新入口，通知所有已注册回调
func (a *App) ReloadConfig(cfg *config.Config) {
	a.Config = cfg
	for _, cb := range a.configCallbacks {
		cb(cfg)
	}
	logger.Log.Info("config reloaded")
}

func (a *App) initRepositories(db *gorm.DB, rdb *redis.Client, cfg *config.Config) *repositories {
	var ledger repository.NotificationLedger = repository.NopNotificationLedger{}
	if cfg.Scheduler.DedupEnabled {
		ledger = repository.NewRedisNotificationLedger(rdb, logger.Log)
	}

	return &repositories{
		goal:        repository.NewGoalRepository(db),
		deviceToken: repository.NewDeviceTokenRepository(db),
		routine:     repository.NewRoutineRepository(db),
		ledger:      ledger,
	}
}

func (a *App) initServices(repos *repositories, cfg *config.Config) *services {
	s := &services{}

	fcm, err := service.NewFcmService(&cfg.Firebase, logger.Log)
	if err != nil {
		logger.Log.Fatal("Failed to initialize FCM", zap.Error(err))
	}
	s.fcm = fcm

	retention := time.Duration(cfg.Scheduler.ArchiveAfterHours) * time.Hour

	s.goal = service.NewGoalService(repos.goal)
	s.expiration = service.NewGoalExpirationService(repos.goal, retention, logger.Log)
	s.notification = service.NewNotificationScheduler(repos.goal, repos.deviceToken, repos.ledger, fcm, logger.Log)
	s.routine = service.NewRoutineService(repos.routine)
	s.deviceToken = service.NewDeviceTokenService(repos.deviceToken)

	return s
}

func (a *App) initControllers(s *services, db *gorm.DB) *controllers {
	return &controllers{
		goal:        controller.NewGoalController(s.goal, s.expiration),
		routine:     controller.NewRoutineController(s.routine),
		deviceToken: controller.NewDeviceTokenController(s.deviceToken, s.notification),
		scheduler:   controller.NewSchedulerController(s.expiration),
		health:      controller.NewHealthController(db),
	}
}

func (a *App) setupMiddlewares(router *gin.Engine, cfg *config.Config) {
	router.Use(security.CORS(cfg.CORS.AllowedOrigins))
	router.Use(security.Secure())
	router.Use(security.RateLimiter(cfg.RateLimit.MaxRequests, time.Duration(cfg.RateLimit.WindowMinutes)*time.Minute))

	// 分布式追踪中间件
	if cfg.Tracing.Enabled {
		router.Use(tracing.GinMiddleware())
	}

	router.Use(monitoring.MetricsMiddleware())
}

// startBackgroundTasks 注册并启动四个周期任务：
// 过期探测、过期归档、每日到期提醒、紧急到期提醒
func (a *App) startBackgroundTasks(s *services, cfg *config.Config) {
	sched := scheduler.New(logger.Log)
	a.Scheduler = sched

	sched.Register("expire-check",
		time.Duration(cfg.Scheduler.ExpireCheckHours)*time.Hour,
		func() {
			if _, err := s.expiration.CheckAndExpireGoals(time.Now()); err != nil {
				logger.Log.Error("expire check failed", zap.Error(err))
			}
		})

	sched.Register("archive-check",
		time.Duration(cfg.Scheduler.ArchiveCheckHours)*time.Hour,
		func() {
			if _, err := s.expiration.ArchiveExpiredGoals(time.Now()); err != nil {
				logger.Log.Error("archive check failed", zap.Error(err))
			}
		})

	sched.Register("daily-expiration-warnings",
		time.Duration(cfg.Scheduler.DailyWarningHours)*time.Hour,
		func() {
			s.notification.SendExpirationWarnings(service.TierDaily,
				time.Duration(cfg.Scheduler.DailyWarningHorizon)*time.Hour, time.Now())
		})

	sched.Register("urgent-expiration-warnings",
		time.Duration(cfg.Scheduler.UrgentWarningHours)*time.Hour,
		func() {
			s.notification.SendExpirationWarnings(service.TierUrgent,
				time.Duration(cfg.Scheduler.UrgentWarningHorizon)*time.Hour, time.Now())
		})

	sched.Start()
}

func NewApp(cfg *config.Config) *App {
	logger.InitLogger(cfg)
	defer logger.Log.Sync()

	logger.Log.Info("Logger initialized successfully")

	db, err := database.InitDB(&cfg.Database)
	if err != nil {
		logger.Log.Fatal("Failed to initialize database", zap.Error(err))
		log.Fatalf("Failed to initialize database: %v", err)
	}

	rdb, err := database.InitRedis(&cfg.Redis)
	if err != nil {
		logger.Log.Fatal("Failed to initialize redis", zap.Error(err))
		log.Fatalf("Failed to initialize redis: %v", err)
	}

	app := &App{
		Config: cfg,
		DB:     db,
		Redis:  rdb,
	}

	repos := app.initRepositories(db, rdb, cfg)
	services := app.initServices(repos, cfg)
	app.services = services
	controllers := app.initControllers(services, db)

	// 监控初始化
	monitoring.Init()

	router := gin.Default()
	app.Router = router

	app.setupMiddlewares(router, cfg)

	if cfg.Tracing.Enabled {
		tp, err := tracing.InitTracer("goalapp", cfg.Tracing.CollectorEndpoint)
		if err != nil {
			logger.Log.Fatal("Failed to initialize tracing", zap.Error(err))
		}
		defer func() {
			if err := tp.Shutdown(context.Background()); err != nil {
				logger.Log.Error("Failed to shutdown tracer provider", zap.Error(err))
			}
		}()
	}

	app.registerRoutes(router, controllers)

	app.startBackgroundTasks(services, cfg)

	return app
}

func (a *App) Run() {
	srv := &http.Server{
		Addr:    ":" + a.Config.Server.Port,
		Handler: a.Router,
	}

	// 启动服务器
	go func() {
		log.Printf("Server running on port %s", a.Config.Server.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %s\n", err)
		}
	}()

	// 等待中断信号优雅地关闭服务器（设置5秒的超时时间）
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	// 先停调度器，避免关闭过程中再跑批
	if a.Scheduler != nil {
		a.Scheduler.Stop()
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown:", err)
	}

	log.Println("Server exiting")
}
