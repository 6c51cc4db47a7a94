package render

import "github.com/kojoasante/estimates-backend/pkg/db/models"

// Document carries everything the PDF builder needs: the aggregate, the
// owner's display identity, and the optional letterhead image path.
type Document struct {
	Estimate       *models.Estimate
	BusinessName   string
	Phone          string
	Address        string
	LetterheadPath *string
}
