package usecase

import (
	"context"
	"time"

	"resume-agent-backend/pkg/redis"

	"github.com/jackc/pgx/v5/pgxpool"
)

type HealthUsecase interface {
	Check(ctx context.Context) map[string]string
	CheckDB(ctx context.Context) error
	CheckRedis(ctx context.Context) error
}

type healthUsecase struct {
	db *pgxpool.Pool
}

func NewHealthUsecase(db *pgxpool.Pool) HealthUsecase {
	return &healthUsecase{db: db}
}

func (u *healthUsecase) Check(ctx context.Context) map[string]string {
	status := map[string]string{
		"status": "ok",
	}
	if redis.IsAvailable() {
		status["redis"] = "up"
	} else {
		status["redis"] = "degraded"
	}
	return status
}

func (u *healthUsecase) CheckDB(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	return u.db.Ping(ctx)
}

func (u *healthUsecase) CheckRedis(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	return redis.HealthCheck(ctx)
}
