package controllers

import (
	"context"
	"net/http"

	"github.com/kojoasante/estimates-backend/api/responses"
	"github.com/kojoasante/estimates-backend/pkg/config"
	pkgerrors "github.com/kojoasante/estimates-backend/pkg/errors"
	"github.com/kojoasante/estimates-backend/pkg/logger"
)

// Pinger is satisfied by the database client and the redis client.
type Pinger interface {
	Ping(ctx context.Context) error
}

func HealthLive(cfg *config.Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Estimates-Env", cfg.App.Env)
		responses.WriteSuccess(w, map[string]string{"status": "live"})
	}
}

// HealthReady verifies the backing stores respond. A nil pinger is treated
// as not configured and skipped.
func HealthReady(cfg *config.Config, logg *logger.Logger, db, cache Pinger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Estimates-Env", cfg.App.Env)
		if db != nil {
			if err := db.Ping(r.Context()); err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "database unreachable"))
				return
			}
		}
		if cache != nil {
			if err := cache.Ping(r.Context()); err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "redis unreachable"))
				return
			}
		}
		responses.WriteSuccess(w, map[string]string{"status": "ready"})
	}
}
