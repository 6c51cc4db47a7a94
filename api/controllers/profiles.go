package controllers

import (
	"net/http"

	"github.com/kojoasante/estimates-backend/api/responses"
	"github.com/kojoasante/estimates-backend/api/validators"
	"github.com/kojoasante/estimates-backend/internal/profiles"
	pkgerrors "github.com/kojoasante/estimates-backend/pkg/errors"
	"github.com/kojoasante/estimates-backend/pkg/logger"
)

// UserProfileGet returns the user addressed by the email query parameter.
func UserProfileGet(svc profiles.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "profile service unavailable"))
			return
		}

		email, err := validators.RequireQueryString(r, "email", "email is required")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		dto, err := svc.GetUser(r.Context(), email)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, dto)
	}
}

type userProfileUpdateRequest struct {
	Email      string  `json:"email" validate:"required,email"`
	OnlineName *string `json:"online_name,omitempty" validate:"omitempty,min=1,max=255"`
}

// UserProfileUpdate changes the mutable user fields; email only addresses
// the row.
func UserProfileUpdate(svc profiles.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "profile service unavailable"))
			return
		}

		var payload userProfileUpdateRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		dto, err := svc.UpdateUser(r.Context(), payload.Email, profiles.UpdateUserInput{
			OnlineName: payload.OnlineName,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, dto)
	}
}

// BusinessProfileGet returns the business profile for the email query
// parameter.
func BusinessProfileGet(svc profiles.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "profile service unavailable"))
			return
		}

		email, err := validators.RequireQueryString(r, "email", "email is required")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		dto, err := svc.GetBusiness(r.Context(), email)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, dto)
	}
}

type businessProfileUpdateRequest struct {
	Email           string  `json:"email" validate:"required,email"`
	BusinessName    *string `json:"business_name,omitempty" validate:"omitempty,min=1,max=255"`
	Phone           *string `json:"phone,omitempty" validate:"omitempty,max=50"`
	Address         *string `json:"address,omitempty" validate:"omitempty,max=255"`
	Website         *string `json:"website,omitempty" validate:"omitempty,max=255"`
	TaxID           *string `json:"tax_id,omitempty" validate:"omitempty,max=100"`
	Established     *string `json:"established,omitempty" validate:"omitempty,max=20"`
	Industry        *string `json:"industry,omitempty" validate:"omitempty,max=100"`
	Description     *string `json:"description,omitempty"`
	BackgroundImage *string `json:"background_image,omitempty"`
}

// BusinessProfileUpdate merges the submitted business fields.
func BusinessProfileUpdate(svc profiles.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "profile service unavailable"))
			return
		}

		var payload businessProfileUpdateRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		dto, err := svc.UpdateBusiness(r.Context(), payload.Email, profiles.UpdateBusinessInput{
			BusinessName:    payload.BusinessName,
			Phone:           payload.Phone,
			Address:         payload.Address,
			Website:         payload.Website,
			TaxID:           payload.TaxID,
			Established:     payload.Established,
			Industry:        payload.Industry,
			Description:     payload.Description,
			BackgroundImage: payload.BackgroundImage,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, dto)
	}
}

type deleteAccountRequest struct {
	Email string `json:"email" validate:"required,email"`
}

// DeleteAccount removes the account and everything it owns.
func DeleteAccount(svc profiles.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "profile service unavailable"))
			return
		}

		var payload deleteAccountRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := svc.DeleteAccount(r.Context(), payload.Email); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, map[string]string{"message": "Account deleted successfully"})
	}
}
