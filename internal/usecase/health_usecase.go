package usecase

import (
	"context"
	"time"

	"dawaksahl-api/config"
	"dawaksahl-api/internal/delivery/dto"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

const (
	HealthStatusHealthy   = "healthy"
	HealthStatusDegraded  = "degraded"
	HealthStatusUnhealthy = "unhealthy"

	checkOK   = "ok"
	checkDown = "unavailable"

	healthCheckTimeout = 2 * time.Second
)

type HealthUsecase interface {
	// Check reports healthy when every dependency answers. Only a database failure is unhealthy.
	Check(ctx context.Context) *dto.HealthResponse
}

type healthUsecase struct {
	db          *gorm.DB
	redisClient *redis.Client
	log         *logrus.Logger
	app         config.AppConfig
}

func NewHealthUsecase(db *gorm.DB, redisClient *redis.Client, log *logrus.Logger, app config.AppConfig) HealthUsecase {
	return &healthUsecase{
		db:          db,
		redisClient: redisClient,
		log:         log,
		app:         app,
	}
}

func (u *healthUsecase) Check(ctx context.Context) *dto.HealthResponse {
	ctx, cancel := context.WithTimeout(ctx, healthCheckTimeout)
	defer cancel()

	resp := &dto.HealthResponse{
		Status:    HealthStatusHealthy,
		App:       u.app.Name,
		Version:   u.app.Version,
		Timestamp: time.Now().UTC(),
		Checks:    map[string]string{"database": checkOK, "redis": checkOK},
	}

	if err := u.pingDatabase(ctx); err != nil {
		u.log.Warnf("Health check database failed: %+v", err)
		resp.Checks["database"] = checkDown
		resp.Status = HealthStatusUnhealthy
	}

	if err := u.redisClient.Ping(ctx).Err(); err != nil {
		u.log.Warnf("Health check redis failed: %+v", err)
		resp.Checks["redis"] = checkDown
		if resp.Status == HealthStatusHealthy {
			resp.Status = HealthStatusDegraded
		}
	}

	return resp
}

func (u *healthUsecase) pingDatabase(ctx context.Context) error {
	sqlDB, err := u.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}
