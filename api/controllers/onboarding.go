package controllers

import (
	"net/http"
	"strings"

	"github.com/kojoasante/estimates-backend/api/responses"
	"github.com/kojoasante/estimates-backend/api/validators"
	"github.com/kojoasante/estimates-backend/internal/profiles"
	pkgerrors "github.com/kojoasante/estimates-backend/pkg/errors"
	"github.com/kojoasante/estimates-backend/pkg/logger"
)

type onboardingRequest struct {
	Email       string  `json:"email" validate:"required,email"`
	Name        string  `json:"name" validate:"required,min=1,max=255"`
	Phone       string  `json:"phone" validate:"required,max=50"`
	Address     string  `json:"address" validate:"required,max=255"`
	Website     string  `json:"website" validate:"omitempty,max=255"`
	TaxID       string  `json:"taxId" validate:"omitempty,max=100"`
	Established string  `json:"established" validate:"omitempty,max=20"`
	Industry    string  `json:"industry" validate:"omitempty,max=100"`
	Description string  `json:"description"`
	Image       *string `json:"image"`
}

func (r onboardingRequest) toInput() profiles.OnboardingInput {
	return profiles.OnboardingInput{
		Email:       strings.TrimSpace(r.Email),
		Name:        strings.TrimSpace(r.Name),
		Phone:       strings.TrimSpace(r.Phone),
		Address:     strings.TrimSpace(r.Address),
		Website:     strings.TrimSpace(r.Website),
		TaxID:       strings.TrimSpace(r.TaxID),
		Established: strings.TrimSpace(r.Established),
		Industry:    strings.TrimSpace(r.Industry),
		Description: r.Description,
		ImagePath:   r.Image,
	}
}

// Onboard creates or refreshes the user and business profile in one call.
func Onboard(svc profiles.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "profile service unavailable"))
			return
		}

		var payload onboardingRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		dto, err := svc.Onboard(r.Context(), payload.toInput())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, dto)
	}
}

// OnboardingLookup resolves the display identity by email or business name.
func OnboardingLookup(svc profiles.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "profile service unavailable"))
			return
		}

		email := r.URL.Query().Get("email")
		businessName := r.URL.Query().Get("business_name")

		dto, err := svc.Lookup(r.Context(), email, businessName)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, dto)
	}
}
