// Package app 提供应用程序的初始化和配置功能.
package app

import (
	contextPkg "context"
	"fmt"
	"os"

	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/yeisme/sitevault/pkg/api"
	"github.com/yeisme/sitevault/pkg/cache"
	"github.com/yeisme/sitevault/pkg/configs"
	"github.com/yeisme/sitevault/pkg/context"
	"github.com/yeisme/sitevault/pkg/internal/jobs"
	"github.com/yeisme/sitevault/pkg/internal/model"
	"github.com/yeisme/sitevault/pkg/internal/storage"
	"github.com/yeisme/sitevault/pkg/log"
	"github.com/yeisme/sitevault/pkg/metrics"
	"github.com/yeisme/sitevault/pkg/middleware"
	"github.com/yeisme/sitevault/pkg/scheduler"
	"github.com/yeisme/sitevault/pkg/tracing"
)

type App struct {
	Engine *gin.Engine
	config *configs.AppConfig
}

func NewApp(configPath string) *App {
	ctx := contextPkg.Background()
	engine := gin.New()

	// 初始化配置
	if err := configs.InitConfig(configPath); err != nil {
		fmt.Printf("Error initializing config: %v\n", err)
		os.Exit(1)
	}

	// 初始化追踪
	config := configs.GetConfig()
	if err := tracing.InitTracer(config.Tracing); err != nil {
		fmt.Printf("Error initializing tracing: %v\n", err)
		os.Exit(1)
	}

	// 初始化监控
	if err := metrics.InitMetrics(config.Metrics); err != nil {
		fmt.Printf("Error initializing metrics: %v\n", err)
		os.Exit(1)
	}

	manager, err := storage.Init(ctx)
	if err != nil {
		fmt.Printf("Error initializing storage: %v\n", err)
		os.Exit(1)
	}

	context.WithStorageManager(ctx, manager)

	// 同步表结构
	if err := manager.DB.AutoMigrate(
		&model.Project{},
		&model.Task{},
		&model.Issue{},
		&model.Attendance{},
		&model.Attachment{},
	); err != nil {
		fmt.Printf("Error migrating database: %v\n", err)
		os.Exit(1)
	}

	l := log.Logger()
	gin.DefaultWriter = log.NewGinWriter(l, zerolog.InfoLevel)
	gin.DefaultErrorWriter = log.NewGinWriter(l, zerolog.ErrorLevel)

	// 定时任务：孤儿附件清理与引用审计
	sched, err := scheduler.NewScheduler()
	if err != nil {
		fmt.Printf("Error initializing scheduler: %v\n", err)
		os.Exit(1)
	}

	if err := jobs.RegisterCronJobs(sched, manager); err != nil {
		fmt.Printf("Error registering cron jobs: %v\n", err)
		os.Exit(1)
	}

	sched.Start()

	engine.Use(
		gin.Recovery(),
		middleware.GinLoggerMiddleware(),
		middleware.CORSMiddleware(config.Server),
		middleware.AuthMiddleware(config.Auth),
		middleware.RoleMiddleware(),
		middleware.RateLimitMiddleware(config.RateLimit),
		middleware.CircuitBreakerMiddleware(config.CircuitBreaker),
		middleware.StorageMiddleware(manager),
		middleware.SchedulerMiddleware(sched),
		middleware.TracingMiddleware(),
		middleware.PrometheusMiddleware(),
		gzip.Gzip(gzip.DefaultCompression),
	)

	// 响应缓存：规则与统计这类读多写少的接口走 KV 缓存，下载等其余路径跳过
	if manager.KV != nil {
		cacheCfg := middleware.DefaultCacheConfig(cache.NewCache(manager.KV))
		cacheCfg.Skipper = func(c *gin.Context) bool {
			p := c.FullPath()

			return p != "/api/v1/files/rules" && p != "/api/v1/stats/files"
		}
		engine.Use(middleware.CacheMiddleware(cacheCfg))
	}

	api.RegisterRoutes(engine)

	if config.Metrics.Enabled {
		_ = metrics.StartMetricsServer(config.Metrics, engine)
	}

	return &App{
		Engine: engine,
		config: config,
	}
}

func (a *App) Run() error {
	return a.Engine.Run(fmt.Sprintf("%s:%d", a.config.Server.Host, a.config.Server.Port))
}
