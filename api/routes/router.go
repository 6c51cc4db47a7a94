package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/kojoasante/estimates-backend/api/controllers"
	"github.com/kojoasante/estimates-backend/api/middleware"
	"github.com/kojoasante/estimates-backend/internal/estimates"
	"github.com/kojoasante/estimates-backend/internal/materials"
	"github.com/kojoasante/estimates-backend/internal/profiles"
	"github.com/kojoasante/estimates-backend/pkg/config"
	"github.com/kojoasante/estimates-backend/pkg/logger"
	"github.com/kojoasante/estimates-backend/pkg/metrics"
	pkgredis "github.com/kojoasante/estimates-backend/pkg/redis"
)

// NewRouter assembles the full HTTP surface. The redis store and metrics may
// be nil; the affected middleware then passes through.
func NewRouter(
	cfg *config.Config,
	logg *logger.Logger,
	db controllers.Pinger,
	cache controllers.Pinger,
	idempotencyStore pkgredis.IdempotencyStore,
	httpMetrics *metrics.HTTPMetrics,
	profileService profiles.Service,
	materialService materials.Service,
	estimateService estimates.Service,
) http.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.CORS(cfg.App.CORSOrigins...),
		httpMetrics.Middleware(),
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, db, cache))
	})

	if httpMetrics != nil {
		r.Method(http.MethodGet, "/metrics", httpMetrics.Handler())
	}

	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/onboarding", controllers.Onboard(profileService, logg))
		r.Get("/onboarding", controllers.OnboardingLookup(profileService, logg))

		r.Get("/user-profile", controllers.UserProfileGet(profileService, logg))
		r.Put("/user-profile", controllers.UserProfileUpdate(profileService, logg))
		r.Get("/business-profile", controllers.BusinessProfileGet(profileService, logg))
		r.Put("/business-profile", controllers.BusinessProfileUpdate(profileService, logg))
		r.Post("/delete-account", controllers.DeleteAccount(profileService, logg))

		r.Get("/material-descriptions", controllers.MaterialList(materialService, logg))
		r.Post("/material-descriptions", controllers.MaterialEnsure(materialService, logg))

		r.Get("/all-estimates", controllers.EstimateList(estimateService, logg))
		r.With(middleware.Idempotency(idempotencyStore, logg)).Post("/estimates", controllers.EstimateCreate(estimateService, logg))
		r.Get("/estimates/{id}", controllers.EstimateGet(estimateService, logg))
		r.With(middleware.Idempotency(idempotencyStore, logg)).Put("/estimates/{id}/edit", controllers.EstimateEdit(estimateService, logg))
		r.Get("/estimates/{id}/preview", controllers.EstimatePreview(estimateService, logg))
	})

	return r
}
