package db

import (
	"backend/internal/app/attachment"
	"backend/internal/app/folder"
	"backend/internal/app/link"
	"backend/internal/app/user"
	"backend/internal/config"

	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func Connect(cfg *config.Config, logger *zap.Logger) (*gorm.DB, error) {
	dsn := cfg.PostgresDSN()
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}

	if err := sqlDB.Ping(); err != nil {
		return nil, err
	}

	logger.Info("Connected to PostgreSQL",
		zap.String("host", cfg.DBHost),
		zap.String("database", cfg.DBName),
	)

	return db, nil
}

func Migrate(db *gorm.DB, logger *zap.Logger) error {
	if err := db.AutoMigrate(
		&user.User{},
		&attachment.Attachment{},
		&folder.Folder{},
		&folder.FolderFile{},
	); err != nil {
		return err
	}

	// one join table per parent kind, same row shape
	for _, kind := range link.Kinds() {
		if err := db.Table(kind.LinkTable).AutoMigrate(&link.Row{}); err != nil {
			return err
		}
	}

	logger.Info("Database migrated")
	return nil
}
