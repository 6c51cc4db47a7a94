package controllers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/kojoasante/estimates-backend/api/responses"
	"github.com/kojoasante/estimates-backend/api/validators"
	"github.com/kojoasante/estimates-backend/internal/estimates"
	"github.com/kojoasante/estimates-backend/pkg/enums"
	pkgerrors "github.com/kojoasante/estimates-backend/pkg/errors"
	"github.com/kojoasante/estimates-backend/pkg/logger"
	"github.com/kojoasante/estimates-backend/pkg/pagination"
)

type estimateItemRequest struct {
	ID               *uint            `json:"id,omitempty"`
	ChosenMaterialID *uint            `json:"chosen_material_id,omitempty"`
	Description      *string          `json:"description,omitempty"`
	Quantity         *decimal.Decimal `json:"quantity,omitempty"`
	Unit             *string          `json:"unit,omitempty" validate:"omitempty,oneof=pieces meters yards feet coils kg boxes units"`
	UnitPrice        *decimal.Decimal `json:"unit_price,omitempty"`
	Amount           *decimal.Decimal `json:"amount,omitempty"`
}

func (r estimateItemRequest) toPatch() estimates.ItemPatch {
	patch := estimates.ItemPatch{
		ID:               r.ID,
		ChosenMaterialID: r.ChosenMaterialID,
		Description:      r.Description,
		Quantity:         r.Quantity,
		UnitPrice:        r.UnitPrice,
		Amount:           r.Amount,
	}
	if r.Unit != nil {
		if unit, err := enums.ParseItemUnit(*r.Unit); err == nil {
			patch.Unit = &unit
		}
	}
	return patch
}

func toPatches(reqs []estimateItemRequest) []estimates.ItemPatch {
	patches := make([]estimates.ItemPatch, 0, len(reqs))
	for _, req := range reqs {
		patches = append(patches, req.toPatch())
	}
	return patches
}

type estimateCreateRequest struct {
	UserEmail      string                `json:"user_email" validate:"required,email"`
	ClientName     string                `json:"client_name" validate:"required,max=255"`
	EstimateTitle  string                `json:"estimate_title" validate:"required,max=255"`
	Notes          string                `json:"notes"`
	Workmanship    decimal.Decimal       `json:"workmanship"`
	TotalMaterials decimal.Decimal       `json:"total_materials"`
	GrandTotal     decimal.Decimal       `json:"grand_total"`
	Items          []estimateItemRequest `json:"items" validate:"dive"`
}

// EstimateCreate persists a new estimate with its item list.
func EstimateCreate(svc estimates.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "estimate service unavailable"))
			return
		}

		var payload estimateCreateRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		dto, err := svc.Create(r.Context(), estimates.CreateEstimateInput{
			UserEmail:      payload.UserEmail,
			ClientName:     payload.ClientName,
			EstimateTitle:  payload.EstimateTitle,
			Notes:          payload.Notes,
			Workmanship:    payload.Workmanship,
			TotalMaterials: payload.TotalMaterials,
			GrandTotal:     payload.GrandTotal,
			Items:          toPatches(payload.Items),
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, dto)
	}
}

type estimateEditRequest struct {
	ClientName     *string                `json:"client_name,omitempty" validate:"omitempty,min=1,max=255"`
	EstimateTitle  *string                `json:"estimate_title,omitempty" validate:"omitempty,min=1,max=255"`
	Notes          *string                `json:"notes,omitempty"`
	Workmanship    *decimal.Decimal       `json:"workmanship,omitempty"`
	TotalMaterials *decimal.Decimal       `json:"total_materials,omitempty"`
	GrandTotal     *decimal.Decimal       `json:"grand_total,omitempty"`
	Items          *[]estimateItemRequest `json:"items,omitempty" validate:"omitempty,dive"`
}

// EstimateEdit applies a partial update. An omitted items field keeps the
// stored item set; an empty list clears it.
func EstimateEdit(svc estimates.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "estimate service unavailable"))
			return
		}

		id, err := estimateIDParam(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload estimateEditRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		input := estimates.EditEstimateInput{
			ClientName:     payload.ClientName,
			EstimateTitle:  payload.EstimateTitle,
			Notes:          payload.Notes,
			Workmanship:    payload.Workmanship,
			TotalMaterials: payload.TotalMaterials,
			GrandTotal:     payload.GrandTotal,
		}
		if payload.Items != nil {
			patches := toPatches(*payload.Items)
			input.Items = &patches
		}

		dto, err := svc.Edit(r.Context(), id, input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, dto)
	}
}

// EstimateGet returns a single aggregate.
func EstimateGet(svc estimates.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "estimate service unavailable"))
			return
		}

		id, err := estimateIDParam(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		dto, err := svc.Get(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, dto)
	}
}

// EstimateList returns a page of estimates, newest first.
func EstimateList(svc estimates.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "estimate service unavailable"))
			return
		}

		limit, err := validators.ParseQueryInt(r, "limit", pagination.DefaultLimit, 1, pagination.MaxLimit)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		offset, err := validators.ParseQueryInt(r, "offset", 0, 0, 1<<30)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		list, err := svc.List(r.Context(), pagination.Params{Limit: limit, Offset: offset})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, list)
	}
}

// EstimatePreview streams the rendered PDF.
func EstimatePreview(svc estimates.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "estimate service unavailable"))
			return
		}

		id, err := estimateIDParam(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		preview, err := svc.Preview(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WritePDF(w, preview.Filename, preview.Payload)
	}
}

func estimateIDParam(r *http.Request) (uint, error) {
	raw := strings.TrimSpace(chi.URLParam(r, "id"))
	if raw == "" {
		return 0, pkgerrors.New(pkgerrors.CodeValidation, "estimate id is required")
	}
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil || id == 0 {
		return 0, pkgerrors.New(pkgerrors.CodeValidation, "invalid estimate id")
	}
	return uint(id), nil
}
