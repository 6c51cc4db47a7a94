package estimates

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/kojoasante/estimates-backend/internal/materials"
	"github.com/kojoasante/estimates-backend/pkg/db/models"
	"github.com/kojoasante/estimates-backend/pkg/enums"
)

// CreateEstimateInput is the full payload for a new estimate. The owner is
// addressed by email, never by id.
type CreateEstimateInput struct {
	UserEmail      string
	ClientName     string
	EstimateTitle  string
	Notes          string
	Workmanship    decimal.Decimal
	TotalMaterials decimal.Decimal
	GrandTotal     decimal.Decimal
	Items          []ItemPatch
}

// EditEstimateInput is a partial update. Nil header fields keep their stored
// value. Items distinguishes three cases: nil leaves the item set untouched,
// an empty slice clears it, and a populated slice is reconciled against it.
type EditEstimateInput struct {
	ClientName     *string
	EstimateTitle  *string
	Notes          *string
	Workmanship    *decimal.Decimal
	TotalMaterials *decimal.Decimal
	GrandTotal     *decimal.Decimal
	Items          *[]ItemPatch
}

// EstimateItemDTO exposes one line in API responses.
type EstimateItemDTO struct {
	ID             uint                   `json:"id"`
	ChosenMaterial *materials.MaterialDTO `json:"chosen_material"`
	Description    string                 `json:"description"`
	Quantity       decimal.Decimal        `json:"quantity"`
	Unit           enums.ItemUnit         `json:"unit"`
	UnitPrice      decimal.Decimal        `json:"unit_price"`
	Amount         decimal.Decimal        `json:"amount"`
}

// EstimateDTO exposes the aggregate in API responses.
type EstimateDTO struct {
	ID             uint              `json:"id"`
	ClientName     string            `json:"client_name"`
	EstimateTitle  string            `json:"estimate_title"`
	Notes          string            `json:"notes"`
	Workmanship    decimal.Decimal   `json:"workmanship"`
	TotalMaterials decimal.Decimal   `json:"total_materials"`
	GrandTotal     decimal.Decimal   `json:"grand_total"`
	CreatedAt      time.Time         `json:"created_at"`
	Items          []EstimateItemDTO `json:"items"`
}

// FromModel maps the persisted aggregate into a DTO, items in id order.
func FromModel(m *models.Estimate) *EstimateDTO {
	if m == nil {
		return nil
	}
	dto := &EstimateDTO{
		ID:             m.ID,
		ClientName:     m.ClientName,
		EstimateTitle:  m.EstimateTitle,
		Notes:          m.Notes,
		Workmanship:    m.Workmanship,
		TotalMaterials: m.TotalMaterials,
		GrandTotal:     m.GrandTotal,
		CreatedAt:      m.CreatedAt,
		Items:          make([]EstimateItemDTO, 0, len(m.Items)),
	}
	for i := range m.Items {
		item := &m.Items[i]
		dto.Items = append(dto.Items, EstimateItemDTO{
			ID:             item.ID,
			ChosenMaterial: materials.FromModel(item.ChosenMaterial),
			Description:    item.Description,
			Quantity:       item.Quantity,
			Unit:           item.Unit,
			UnitPrice:      item.UnitPrice,
			Amount:         item.Amount,
		})
	}
	return dto
}

// FromModels maps a slice of aggregates into DTOs.
func FromModels(ms []models.Estimate) []EstimateDTO {
	out := make([]EstimateDTO, 0, len(ms))
	for i := range ms {
		out = append(out, *FromModel(&ms[i]))
	}
	return out
}
