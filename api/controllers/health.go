package controllers

import (
	"context"
	"net/http"
	"time"

	"github.com/huydhb/greenfarm-backend/api/responses"
	"github.com/huydhb/greenfarm-backend/pkg/config"
	pkgerrors "github.com/huydhb/greenfarm-backend/pkg/errors"
	"github.com/huydhb/greenfarm-backend/pkg/logger"
)

const (
	envHeader        = "X-GreenFarm-Env"
	readinessTimeout = 2 * time.Second
)

type pinger interface {
	Ping(context.Context) error
}

func HealthLive(cfg *config.Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set(envHeader, cfg.App.Env)
		responses.WriteSuccess(w, map[string]string{"status": "live"})
	}
}

// HealthReady reports ready once Redis answers a ping. Without Redis the
// service is always ready.
func HealthReady(cfg *config.Config, redis pinger, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set(envHeader, cfg.App.Env)
		if redis != nil {
			ctx, cancel := context.WithTimeout(r.Context(), readinessTimeout)
			defer cancel()
			if err := redis.Ping(ctx); err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "redis unavailable"))
				return
			}
		}
		responses.WriteSuccess(w, map[string]string{"status": "ready"})
	}
}
