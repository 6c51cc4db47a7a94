package estimates

import (
	"github.com/shopspring/decimal"

	"github.com/kojoasante/estimates-backend/pkg/db/models"
	"github.com/kojoasante/estimates-backend/pkg/enums"
)

// ItemPatch is one incoming line in an edit or create payload. Pointer fields
// distinguish "not submitted" from zero values; ID is nil for new items.
type ItemPatch struct {
	ID               *uint
	ChosenMaterialID *uint
	Description      *string
	Quantity         *decimal.Decimal
	Unit             *enums.ItemUnit
	UnitPrice        *decimal.Decimal
	Amount           *decimal.Decimal
}

// ItemUpdate pairs an existing item with the patch that mutates it.
type ItemUpdate struct {
	Existing models.EstimateItem
	Patch    ItemPatch
}

// Plan is the computed outcome of diffing an incoming item list against the
// persisted one. Updates keep input order; DeleteIDs covers every existing
// item the incoming list did not mention.
type Plan struct {
	Updates   []ItemUpdate
	Creates   []ItemPatch
	DeleteIDs []uint
}

// BuildPlan diffs incoming patches against the estimate's persisted items by
// numeric id. A patch whose id matches an existing item becomes an update;
// any other patch, including one carrying an id this estimate does not own,
// becomes a create with the id stripped. Duplicate ids collapse into a single
// update whose patch is the field-wise merge of every submission, later
// fields overwriting earlier ones. Existing items absent from the incoming
// list are scheduled for deletion, so submitting an empty list clears the
// collection.
func BuildPlan(existing []models.EstimateItem, incoming []ItemPatch) Plan {
	existingByID := make(map[uint]models.EstimateItem, len(existing))
	for _, item := range existing {
		existingByID[item.ID] = item
	}

	updateIdx := make(map[uint]int, len(incoming))
	var plan Plan
	for _, patch := range incoming {
		if patch.ID != nil {
			if item, ok := existingByID[*patch.ID]; ok {
				if idx, dup := updateIdx[*patch.ID]; dup {
					mergePatch(&plan.Updates[idx].Patch, patch)
					continue
				}
				updateIdx[*patch.ID] = len(plan.Updates)
				plan.Updates = append(plan.Updates, ItemUpdate{Existing: item, Patch: patch})
				continue
			}
		}
		patch.ID = nil
		plan.Creates = append(plan.Creates, patch)
	}

	for _, item := range existing {
		if _, ok := updateIdx[item.ID]; !ok {
			plan.DeleteIDs = append(plan.DeleteIDs, item.ID)
		}
	}
	return plan
}

// mergePatch overlays the later patch's submitted fields onto the earlier
// one; fields the later patch omits keep their earlier values.
func mergePatch(dst *ItemPatch, src ItemPatch) {
	if src.ChosenMaterialID != nil {
		dst.ChosenMaterialID = src.ChosenMaterialID
	}
	if src.Description != nil {
		dst.Description = src.Description
	}
	if src.Quantity != nil {
		dst.Quantity = src.Quantity
	}
	if src.Unit != nil {
		dst.Unit = src.Unit
	}
	if src.UnitPrice != nil {
		dst.UnitPrice = src.UnitPrice
	}
	if src.Amount != nil {
		dst.Amount = src.Amount
	}
}

// applyPatch merges submitted patch fields onto the item, leaving identity
// and unsubmitted fields alone. Material binding is resolved separately.
func applyPatch(item *models.EstimateItem, patch ItemPatch) {
	if patch.Description != nil {
		item.Description = *patch.Description
	}
	if patch.Quantity != nil {
		item.Quantity = *patch.Quantity
	}
	if patch.Unit != nil {
		item.Unit = *patch.Unit
	}
	if patch.UnitPrice != nil {
		item.UnitPrice = *patch.UnitPrice
	}
	if patch.Amount != nil {
		item.Amount = *patch.Amount
	}
}
