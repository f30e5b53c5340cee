package utils

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type HealthStatus struct {
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
	Services  []Service `json:"services"`
}

type Service struct {
	Name    string `json:"name"`
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
}

// Pinger is implemented by providers that can probe their backend.
type Pinger interface {
	Ping(ctx context.Context) error
}

type HealthChecker struct {
	DB    *gorm.DB
	Redis *redis.Client
	Blob  Pinger
}

func (h *HealthChecker) Check(ctx context.Context) HealthStatus {
	var services []Service
	overallStatus := "healthy"

	check := func(name string, ping func(ctx context.Context) error) {
		service := Service{Name: name}
		ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
		defer cancel()
		if err := ping(ctx); err != nil {
			service.Status = "down"
			service.Message = err.Error()
			overallStatus = "degraded"
		} else {
			service.Status = "up"
		}
		services = append(services, service)
	}

	if h.DB != nil {
		check("PostgreSQL", func(ctx context.Context) error {
			sqlDB, err := h.DB.DB()
			if err != nil {
				return err
			}
			return sqlDB.PingContext(ctx)
		})
	}

	if h.Redis != nil {
		check("Redis", func(ctx context.Context) error {
			return h.Redis.Ping(ctx).Err()
		})
	}

	if h.Blob != nil {
		check("MinIO", h.Blob.Ping)
	}

	return HealthStatus{
		Status:    overallStatus,
		Timestamp: time.Now().UTC(),
		Services:  services,
	}
}
