package materials

import "github.com/kojoasante/estimates-backend/pkg/db/models"

// MaterialDTO exposes a catalog entry in API responses.
type MaterialDTO struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}

// FromModel maps the persisted material into a DTO.
func FromModel(m *models.MaterialDescription) *MaterialDTO {
	if m == nil {
		return nil
	}
	return &MaterialDTO{ID: m.ID, Name: m.Name}
}

// FromModels maps a slice of materials into DTOs, preserving order.
func FromModels(ms []models.MaterialDescription) []MaterialDTO {
	out := make([]MaterialDTO, 0, len(ms))
	for i := range ms {
		out = append(out, *FromModel(&ms[i]))
	}
	return out
}
