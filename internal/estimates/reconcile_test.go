package estimates

import (
	"testing"

	"github.com/shopspring/decimal"

	"github.com/kojoasante/estimates-backend/pkg/db/models"
)

func uintPtr(v uint) *uint    { return &v }
func strPtr(v string) *string { return &v }

func decPtr(v int64) *decimal.Decimal {
	d := decimal.NewFromInt(v)
	return &d
}

func TestBuildPlanClassifiesUpdatesCreatesAndDeletes(t *testing.T) {
	existing := []models.EstimateItem{
		{ID: 1, Description: "A", Amount: decimal.NewFromInt(100)},
		{ID: 2, Description: "B", Amount: decimal.NewFromInt(50)},
	}
	incoming := []ItemPatch{
		{ID: uintPtr(1), Description: strPtr("A-updated"), Amount: decPtr(150)},
		{Description: strPtr("C"), Amount: decPtr(30)},
	}

	plan := BuildPlan(existing, incoming)

	if len(plan.Updates) != 1 || plan.Updates[0].Existing.ID != 1 {
		t.Fatalf("expected update for item 1, got %+v", plan.Updates)
	}
	if len(plan.Creates) != 1 || plan.Creates[0].Description == nil || *plan.Creates[0].Description != "C" {
		t.Fatalf("expected one create for C, got %+v", plan.Creates)
	}
	if len(plan.DeleteIDs) != 1 || plan.DeleteIDs[0] != 2 {
		t.Fatalf("expected item 2 scheduled for deletion, got %v", plan.DeleteIDs)
	}
}

func TestBuildPlanEmptyIncomingDeletesEverything(t *testing.T) {
	existing := []models.EstimateItem{{ID: 1}, {ID: 2}, {ID: 3}}
	plan := BuildPlan(existing, nil)

	if len(plan.Updates) != 0 || len(plan.Creates) != 0 {
		t.Fatalf("expected pure delete plan, got %+v", plan)
	}
	if len(plan.DeleteIDs) != 3 {
		t.Fatalf("expected all three deletions, got %v", plan.DeleteIDs)
	}
}

func TestBuildPlanUnknownIDBecomesCreateWithIDStripped(t *testing.T) {
	existing := []models.EstimateItem{{ID: 1}}
	incoming := []ItemPatch{{ID: uintPtr(99), Description: strPtr("foreign")}}

	plan := BuildPlan(existing, incoming)

	if len(plan.Creates) != 1 {
		t.Fatalf("expected foreign id to create, got %+v", plan)
	}
	if plan.Creates[0].ID != nil {
		t.Fatalf("expected id stripped from create patch, got %v", *plan.Creates[0].ID)
	}
	if len(plan.DeleteIDs) != 1 || plan.DeleteIDs[0] != 1 {
		t.Fatalf("untouched existing item must still be deleted, got %v", plan.DeleteIDs)
	}
}

func TestBuildPlanDuplicateIDsCollapseLastWriteWins(t *testing.T) {
	existing := []models.EstimateItem{{ID: 5, UnitPrice: decimal.NewFromInt(1)}}
	incoming := []ItemPatch{
		{ID: uintPtr(5), UnitPrice: decPtr(10)},
		{ID: uintPtr(5), UnitPrice: decPtr(20)},
	}

	plan := BuildPlan(existing, incoming)

	if len(plan.Updates) != 1 {
		t.Fatalf("expected duplicate patches collapsed into one update, got %d", len(plan.Updates))
	}
	if merged := plan.Updates[0].Patch; merged.UnitPrice == nil || !merged.UnitPrice.Equal(decimal.NewFromInt(20)) {
		t.Fatalf("expected later unit price to win, got %+v", merged)
	}
	if len(plan.DeleteIDs) != 0 {
		t.Fatalf("duplicated item must survive, got deletions %v", plan.DeleteIDs)
	}
}

func TestBuildPlanDuplicateIDsMergeDisjointFields(t *testing.T) {
	existing := []models.EstimateItem{{ID: 5, Description: "orig", UnitPrice: decimal.NewFromInt(1)}}
	incoming := []ItemPatch{
		{ID: uintPtr(5), Description: strPtr("patched-desc")},
		{ID: uintPtr(5), UnitPrice: decPtr(20)},
	}

	plan := BuildPlan(existing, incoming)

	if len(plan.Updates) != 1 {
		t.Fatalf("expected one merged update, got %d", len(plan.Updates))
	}
	merged := plan.Updates[0].Patch
	if merged.Description == nil || *merged.Description != "patched-desc" {
		t.Fatalf("earlier patch's description must survive the merge, got %+v", merged)
	}
	if merged.UnitPrice == nil || !merged.UnitPrice.Equal(decimal.NewFromInt(20)) {
		t.Fatalf("later patch's unit price must be merged, got %+v", merged)
	}
}

func TestApplyPatchMergesOnlySubmittedFields(t *testing.T) {
	item := models.EstimateItem{
		ID:          7,
		Description: "original",
		Quantity:    decimal.NewFromInt(3),
		UnitPrice:   decimal.NewFromInt(9),
	}
	applyPatch(&item, ItemPatch{UnitPrice: decPtr(12)})

	if item.Description != "original" || !item.Quantity.Equal(decimal.NewFromInt(3)) {
		t.Fatalf("unsubmitted fields must keep their values, got %+v", item)
	}
	if !item.UnitPrice.Equal(decimal.NewFromInt(12)) {
		t.Fatalf("submitted field must overwrite, got %s", item.UnitPrice)
	}
	if item.ID != 7 {
		t.Fatalf("identity must never change, got %d", item.ID)
	}
}
