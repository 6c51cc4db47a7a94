package controllers

import (
	"net/http"

	"github.com/kojoasante/estimates-backend/api/responses"
	"github.com/kojoasante/estimates-backend/api/validators"
	"github.com/kojoasante/estimates-backend/internal/materials"
	pkgerrors "github.com/kojoasante/estimates-backend/pkg/errors"
	"github.com/kojoasante/estimates-backend/pkg/logger"
)

// MaterialList returns the full material catalog.
func MaterialList(svc materials.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "material service unavailable"))
			return
		}

		list, err := svc.List(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, list)
	}
}

type materialEnsureRequest struct {
	Name string `json:"name" validate:"required,min=1,max=255"`
}

// MaterialEnsure upserts a catalog entry by name.
func MaterialEnsure(svc materials.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "material service unavailable"))
			return
		}

		var payload materialEnsureRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		dto, created, err := svc.Ensure(r.Context(), payload.Name)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		status := http.StatusOK
		if created {
			status = http.StatusCreated
		}
		responses.WriteSuccessStatus(w, status, dto)
	}
}
