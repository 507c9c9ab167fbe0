package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/edustack/edustack-backend/internal/config"
	"github.com/edustack/edustack-backend/internal/domain"
	"github.com/edustack/edustack-backend/internal/handler"
	"github.com/edustack/edustack-backend/internal/middleware"
	"github.com/edustack/edustack-backend/internal/repository"
	"github.com/edustack/edustack-backend/internal/routes"
	"github.com/edustack/edustack-backend/internal/service"
	pkgcache "github.com/edustack/edustack-backend/pkg/cache"
	"github.com/edustack/edustack-backend/pkg/jwt"
	pkglogger "github.com/edustack/edustack-backend/pkg/logger"
	pkgredis "github.com/edustack/edustack-backend/pkg/redis"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// getConfigPath returns the config file path based on APP_ENV
func getConfigPath() string {
	env := os.Getenv("APP_ENV")
	if env == "" {
		env = "local"
	}
	return fmt.Sprintf("configs/config.%s.yaml", env)
}

func main() {
	dotenvFiles := config.LoadDotEnv()

	env := os.Getenv("APP_ENV")
	if env == "" {
		env = "local"
	}
	pkglogger.InitStructured(env)
	appLog := pkglogger.GetLogger()
	appLog.Info().Str("env", env).Strs("dotenv", dotenvFiles).Msg("starting edustack-backend")

	cfg, err := config.Load(getConfigPath())
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	cfg.LogResolved()

	db, err := initDB(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	appLog.Info().Msg("connected to MySQL")

	if err := autoMigrate(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	redisClient, err := pkgredis.NewClient(
		cfg.Redis.Host,
		cfg.Redis.Port,
		cfg.Redis.Password,
		cfg.Redis.DB,
		cfg.Redis.PoolSize,
	)
	if err != nil {
		appLog.Warn().Err(err).Msg("redis unavailable, continuing without cache")
		redisClient = nil
	} else {
		appLog.Info().Msg("connected to Redis")
	}
	cacheService := pkgcache.NewService(redisClient)

	jwtManager := jwt.NewManager(cfg.JWT.Secret, cfg.JWT.ExpiresIn, cfg.JWT.RefreshIn)

	// Repositories
	curriculumRepo := repository.NewCurriculumRepository(db)
	subjectRepo := repository.NewSubjectRepository(db)
	chapterRepo := repository.NewChapterRepository(db)
	topicRepo := repository.NewTopicRepository(db)
	versionRepo := repository.NewVersionRepository(db)
	auditRepo := repository.NewAuditRepository(db)
	bookmarkRepo := repository.NewBookmarkRepository(db)
	enrollmentRepo := repository.NewEnrollmentRepository(db)

	// Services
	auditService := service.NewAuditService(auditRepo)
	contentService := service.NewContentService(db, subjectRepo, chapterRepo, topicRepo, versionRepo, auditService, cacheService)
	workflowService := service.NewWorkflowService(db, topicRepo, auditService, cacheService)
	curriculumService := service.NewCurriculumService(db, curriculumRepo, subjectRepo, auditService)
	readerService := service.NewReaderService(subjectRepo, chapterRepo, topicRepo, cacheService)

	// Handlers
	handlers := &routes.Handlers{
		Curriculum: handler.NewCurriculumHandler(curriculumService),
		Chapter:    handler.NewChapterHandler(contentService),
		Topic:      handler.NewTopicHandler(contentService),
		Version:    handler.NewVersionHandler(contentService),
		Workflow:   handler.NewWorkflowHandler(workflowService),
		Reader:     handler.NewReaderHandler(readerService),
		Bookmark:   handler.NewBookmarkHandler(bookmarkRepo, topicRepo),
		Enrollment: handler.NewEnrollmentHandler(enrollmentRepo, subjectRepo),
		Audit:      handler.NewAuditHandler(auditService),
	}

	if !cfg.IsDevelopment() {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery())

	corsConfig := cors.Config{
		AllowOrigins:     splitAndTrim(cfg.CORS.AllowOrigins, ","),
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Request-ID"},
		ExposeHeaders:    []string{"X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           86400,
	}
	router.Use(cors.New(corsConfig))
	router.Use(middleware.RequestLogger())
	router.Use(middleware.Metrics())

	router.GET("/metrics", gin.WrapH(promhttp.Handler()))
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"service": "edustack-backend",
			"time":    time.Now().Unix(),
		})
	})

	routes.Setup(router, handlers, jwtManager)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if cfg.Scheduler.Enabled {
		scheduler := service.NewScheduler(workflowService, time.Duration(cfg.Scheduler.Interval)*time.Second)
		go scheduler.Run(ctx)
	}

	srv := &http.Server{
		Addr:    ":" + cfg.Server.Port,
		Handler: router,
	}

	go func() {
		appLog.Info().Str("addr", srv.Addr).Msg("http server listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	appLog.Info().Msg("shutting down")
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		appLog.Error().Err(err).Msg("forced shutdown")
	}
	appLog.Info().Msg("server stopped")
}

func initDB(cfg *config.Config) (*gorm.DB, error) {
	logLevel := gormlogger.Warn
	if cfg.IsDevelopment() {
		logLevel = gormlogger.Info
	}
	return gorm.Open(mysql.Open(cfg.DSN()), &gorm.Config{
		Logger:         gormlogger.Default.LogMode(logLevel),
		TranslateError: true,
	})
}

func autoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&domain.University{},
		&domain.Campus{},
		&domain.Department{},
		&domain.Program{},
		&domain.Semester{},
		&domain.Subject{},
		&domain.Chapter{},
		&domain.Topic{},
		&domain.TopicVersion{},
		&domain.AuditLogEntry{},
		&domain.Bookmark{},
		&domain.Enrollment{},
	)
}

func splitAndTrim(s, sep string) []string {
	parts := strings.Split(s, sep)
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if t := strings.TrimSpace(p); t != "" {
			out = append(out, t)
		}
	}
	return out
}
