package usecase

import (
	"context"

	"go-outreach-backend/pkg/redis"
	"go-outreach-backend/pkg/storage"

	"github.com/jackc/pgx/v5/pgxpool"
)

type HealthUsecase interface {
	Check(ctx context.Context) map[string]string
}

type healthUsecase struct {
	pool  *pgxpool.Pool
	store storage.FileStore
}

func NewHealthUsecase(pool *pgxpool.Pool, store storage.FileStore) HealthUsecase {
	return &healthUsecase{pool: pool, store: store}
}

func (u *healthUsecase) Check(ctx context.Context) map[string]string {
	out := map[string]string{"status": "ok"}

	if u.pool != nil {
		if err := u.pool.Ping(ctx); err != nil {
			out["status"] = "degraded"
			out["database"] = err.Error()
		} else {
			out["database"] = "ok"
		}
	}

	if err := redis.HealthCheck(ctx); err != nil {
		out["redis"] = "unavailable"
	} else {
		out["redis"] = "ok"
	}

	if u.store != nil {
		if err := u.store.Ping(ctx); err != nil {
			out["status"] = "degraded"
			out["storage"] = err.Error()
		} else {
			out["storage"] = "ok"
		}
	}

	return out
}
