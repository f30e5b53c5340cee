package app

import (
	"backend/internal/app/attachment"
	"backend/internal/app/folder"
	"backend/internal/app/health"
	"backend/internal/app/link"
	"backend/internal/app/reconcile"
	"backend/internal/app/user"
	"backend/internal/config"
	"backend/internal/db"
	"backend/internal/db/seeder"
	"backend/internal/providers/minio"
	"backend/internal/providers/redis"
	"backend/internal/router"
	"backend/internal/utils"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Application struct {
	Router *router.Router
	DB     *gorm.DB
}

func Bootstrap(cfg *config.Config, logger *zap.Logger) (*Application, error) {
	dbConn, err := db.Connect(cfg, logger)
	if err != nil {
		return nil, err
	}

	if err := db.Migrate(dbConn, logger); err != nil {
		return nil, err
	}

	seed := seeder.NewSeeder(dbConn, logger)
	if err := seed.Seed(); err != nil {
		logger.Warn("Failed to run seeders", zap.Error(err))
	}

	redisProvider := redis.NewRedisProvider(cfg.RedisURL, logger, cfg.RedisTTL)
	minioProvider, err := minio.NewMinioProvider(cfg, logger)
	if err != nil {
		return nil, err
	}

	attachmentRepo := attachment.NewRepository(dbConn)
	linker := link.NewLinker(dbConn)
	userRepo := user.NewRepository(dbConn)
	folderRepo := folder.NewRepository(dbConn)

	attachmentService := attachment.NewService(attachmentRepo, minioProvider, logger)
	reconcileService := reconcile.NewService(attachmentRepo, linker, minioProvider, logger)
	userService := user.NewService(userRepo, redisProvider, logger)
	folderService := folder.NewService(folderRepo, userService, minioProvider, logger)

	healthHandler := health.NewHandler(&utils.HealthChecker{
		DB:    dbConn,
		Redis: redisProvider.Client,
		Blob:  minioProvider,
	})
	attachmentHandler := attachment.NewHandler(attachmentService)
	reconcileHandler := reconcile.NewHandler(reconcileService, logger)
	folderHandler := folder.NewHandler(folderService)

	r := router.NewRouter(logger)

	r.RegisterHealthRoutes(healthHandler)
	r.RegisterAttachmentRoutes(attachmentHandler)
	r.RegisterReconcileRoutes(reconcileHandler)
	r.RegisterFolderRoutes(folderHandler)

	return &Application{
		Router: r,
		DB:     dbConn,
	}, nil
}
