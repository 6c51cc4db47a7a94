package estimates

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/kojoasante/estimates-backend/internal/materials"
	"github.com/kojoasante/estimates-backend/internal/profiles"
	"github.com/kojoasante/estimates-backend/internal/render"
	"github.com/kojoasante/estimates-backend/pkg/db/models"
	pkgerrors "github.com/kojoasante/estimates-backend/pkg/errors"
	"github.com/kojoasante/estimates-backend/pkg/pagination"
)

type testTx struct {
	db *gorm.DB
}

func (t *testTx) WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error {
	return t.db.WithContext(ctx).Transaction(fn)
}

type stubRenderer struct {
	payload []byte
	err     error
	lastDoc render.Document
}

func (s *stubRenderer) Render(_ context.Context, doc render.Document) ([]byte, error) {
	s.lastDoc = doc
	if s.err != nil {
		return nil, s.err
	}
	return s.payload, nil
}

type fixture struct {
	svc     Service
	conn    *gorm.DB
	render  *stubRenderer
	ownerID uint
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	conn, err := gorm.Open(sqlite.Open("file:estimates_test?mode=memory&cache=shared"), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to open sqlite: %v", err)
	}
	for _, table := range []any{
		&models.EstimateItem{},
		&models.Estimate{},
		&models.BusinessProfile{},
		&models.UserProfile{},
		&models.MaterialDescription{},
	} {
		if err := conn.Migrator().DropTable(table); err != nil {
			t.Fatalf("failed to reset table: %v", err)
		}
	}
	if err := conn.AutoMigrate(
		&models.UserProfile{},
		&models.BusinessProfile{},
		&models.MaterialDescription{},
		&models.Estimate{},
		&models.EstimateItem{},
	); err != nil {
		t.Fatalf("failed to migrate sqlite: %v", err)
	}

	owner := models.UserProfile{Email: "kwame@voltworks.example", OnlineName: "VoltWorks"}
	if err := conn.Create(&owner).Error; err != nil {
		t.Fatalf("create owner: %v", err)
	}

	renderer := &stubRenderer{payload: []byte("%PDF-1.4 stub")}
	svc, err := NewService(
		NewRepository(conn),
		profiles.NewRepository(conn),
		materials.NewRepository(conn),
		renderer,
		&testTx{db: conn},
		nil,
		nil,
	)
	if err != nil {
		t.Fatalf("failed to build service: %v", err)
	}
	return &fixture{svc: svc, conn: conn, render: renderer, ownerID: owner.ID}
}

func (f *fixture) createEstimate(t *testing.T, items []ItemPatch) *EstimateDTO {
	t.Helper()
	dto, err := f.svc.Create(context.Background(), CreateEstimateInput{
		UserEmail:     "kwame@voltworks.example",
		ClientName:    "ama mensah",
		EstimateTitle: "Site Wiring",
		Workmanship:   decimal.NewFromInt(500),
		GrandTotal:    decimal.NewFromInt(700),
		Items:         items,
	})
	if err != nil {
		t.Fatalf("create estimate failed: %v", err)
	}
	return dto
}

func TestCreateUnknownOwnerPersistsNothing(t *testing.T) {
	f := newFixture(t)
	_, err := f.svc.Create(context.Background(), CreateEstimateInput{
		UserEmail:  "nouser@x.com",
		ClientName: "Ama",
		Items:      []ItemPatch{{Description: strPtr("A")}},
	})
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error for unknown owner, got %v", err)
	}

	var estimates, items int64
	f.conn.Model(&models.Estimate{}).Count(&estimates)
	f.conn.Model(&models.EstimateItem{}).Count(&items)
	if estimates != 0 || items != 0 {
		t.Fatalf("nothing may persist on owner failure, got %d estimates %d items", estimates, items)
	}
}

func TestCreateThenGetRoundTrip(t *testing.T) {
	f := newFixture(t)
	created := f.createEstimate(t, []ItemPatch{
		{Description: strPtr("A"), Amount: decPtr(100)},
		{Description: strPtr("B"), Amount: decPtr(50)},
	})

	if len(created.Items) != 2 {
		t.Fatalf("expected 2 items, got %d", len(created.Items))
	}
	if created.Items[0].ID >= created.Items[1].ID {
		t.Fatalf("items must come back in id order, got %d then %d", created.Items[0].ID, created.Items[1].ID)
	}

	got, err := f.svc.Get(context.Background(), created.ID)
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if got.ClientName != "ama mensah" || len(got.Items) != 2 {
		t.Fatalf("round trip mismatch: %+v", got)
	}
}

func TestEditConcreteReconciliationScenario(t *testing.T) {
	f := newFixture(t)
	created := f.createEstimate(t, []ItemPatch{
		{Description: strPtr("A"), Amount: decPtr(100)},
		{Description: strPtr("B"), Amount: decPtr(50)},
	})
	idA := created.Items[0].ID
	idB := created.Items[1].ID

	items := []ItemPatch{
		{ID: &idA, Description: strPtr("A-updated"), Amount: decPtr(150)},
		{Description: strPtr("C"), Amount: decPtr(30)},
	}
	updated, err := f.svc.Edit(context.Background(), created.ID, EditEstimateInput{Items: &items})
	if err != nil {
		t.Fatalf("edit failed: %v", err)
	}

	if len(updated.Items) != 2 {
		t.Fatalf("expected 2 items after reconcile, got %d", len(updated.Items))
	}
	if updated.Items[0].ID != idA || updated.Items[0].Description != "A-updated" ||
		!updated.Items[0].Amount.Equal(decimal.NewFromInt(150)) {
		t.Fatalf("item A not updated in place: %+v", updated.Items[0])
	}
	if updated.Items[1].Description != "C" || updated.Items[1].ID == idB {
		t.Fatalf("expected fresh item C, got %+v", updated.Items[1])
	}

	var gone int64
	f.conn.Model(&models.EstimateItem{}).Where("id = ?", idB).Count(&gone)
	if gone != 0 {
		t.Fatalf("item B must be deleted by omission")
	}
}

func TestEditIdempotentResubmission(t *testing.T) {
	f := newFixture(t)
	created := f.createEstimate(t, []ItemPatch{
		{Description: strPtr("A"), Amount: decPtr(100)},
		{Description: strPtr("B"), Amount: decPtr(50)},
	})

	payload := make([]ItemPatch, 0, len(created.Items))
	for i := range created.Items {
		id := created.Items[i].ID
		desc := created.Items[i].Description
		amount := created.Items[i].Amount
		payload = append(payload, ItemPatch{ID: &id, Description: &desc, Amount: &amount})
	}

	first, err := f.svc.Edit(context.Background(), created.ID, EditEstimateInput{Items: &payload})
	if err != nil {
		t.Fatalf("first edit failed: %v", err)
	}
	second, err := f.svc.Edit(context.Background(), created.ID, EditEstimateInput{Items: &payload})
	if err != nil {
		t.Fatalf("second edit failed: %v", err)
	}

	if len(first.Items) != len(second.Items) {
		t.Fatalf("item count drifted: %d then %d", len(first.Items), len(second.Items))
	}
	for i := range first.Items {
		if first.Items[i].ID != second.Items[i].ID {
			t.Fatalf("ids must be stable across resubmission: %+v vs %+v", first.Items[i], second.Items[i])
		}
	}
}

func TestEditOmissionClearsVersusAbsentKeeps(t *testing.T) {
	f := newFixture(t)
	created := f.createEstimate(t, []ItemPatch{
		{Description: strPtr("A")},
		{Description: strPtr("B")},
	})

	notes := "header only"
	kept, err := f.svc.Edit(context.Background(), created.ID, EditEstimateInput{Notes: &notes})
	if err != nil {
		t.Fatalf("header-only edit failed: %v", err)
	}
	if len(kept.Items) != 2 {
		t.Fatalf("absent items field must keep the collection, got %d items", len(kept.Items))
	}
	if kept.Notes != "header only" {
		t.Fatalf("header merge lost notes, got %q", kept.Notes)
	}

	empty := []ItemPatch{}
	cleared, err := f.svc.Edit(context.Background(), created.ID, EditEstimateInput{Items: &empty})
	if err != nil {
		t.Fatalf("clearing edit failed: %v", err)
	}
	if len(cleared.Items) != 0 {
		t.Fatalf("present-but-empty items must clear the collection, got %d items", len(cleared.Items))
	}
}

func TestEditCrossEstimateIDIsolation(t *testing.T) {
	f := newFixture(t)
	a := f.createEstimate(t, []ItemPatch{{Description: strPtr("a-item"), Amount: decPtr(10)}})
	b := f.createEstimate(t, []ItemPatch{{Description: strPtr("b-item"), Amount: decPtr(20)}})
	foreignID := b.Items[0].ID

	items := []ItemPatch{
		{ID: &a.Items[0].ID, Description: strPtr("a-item")},
		{ID: &foreignID, Description: strPtr("stolen"), Amount: decPtr(99)},
	}
	updated, err := f.svc.Edit(context.Background(), a.ID, EditEstimateInput{Items: &items})
	if err != nil {
		t.Fatalf("edit failed: %v", err)
	}
	if len(updated.Items) != 2 {
		t.Fatalf("expected foreign id to create under A, got %d items", len(updated.Items))
	}
	for _, item := range updated.Items {
		if item.ID == foreignID {
			t.Fatalf("foreign id must not be adopted, got %+v", item)
		}
	}

	bAfter, err := f.svc.Get(context.Background(), b.ID)
	if err != nil {
		t.Fatalf("reload B failed: %v", err)
	}
	if len(bAfter.Items) != 1 || bAfter.Items[0].Description != "b-item" {
		t.Fatalf("estimate B must be untouched, got %+v", bAfter.Items)
	}
}

func TestEditDuplicateIDLastWriteWins(t *testing.T) {
	f := newFixture(t)
	created := f.createEstimate(t, []ItemPatch{{Description: strPtr("A"), UnitPrice: decPtr(1)}})
	id := created.Items[0].ID

	items := []ItemPatch{
		{ID: &id, UnitPrice: decPtr(10)},
		{ID: &id, UnitPrice: decPtr(20)},
	}
	updated, err := f.svc.Edit(context.Background(), created.ID, EditEstimateInput{Items: &items})
	if err != nil {
		t.Fatalf("edit failed: %v", err)
	}
	if len(updated.Items) != 1 {
		t.Fatalf("duplicated item must survive once, got %d", len(updated.Items))
	}
	if !updated.Items[0].UnitPrice.Equal(decimal.NewFromInt(20)) {
		t.Fatalf("expected last write to win, got %s", updated.Items[0].UnitPrice)
	}
}

func TestCreateMatchesOwnerEmailCaseInsensitively(t *testing.T) {
	f := newFixture(t)

	dto, err := f.svc.Create(context.Background(), CreateEstimateInput{
		UserEmail:     "Kwame@VoltWorks.Example",
		ClientName:    "ama mensah",
		EstimateTitle: "Site Wiring",
		Workmanship:   decimal.NewFromInt(500),
		GrandTotal:    decimal.NewFromInt(700),
	})
	if err != nil {
		t.Fatalf("create with mixed-case owner email failed: %v", err)
	}

	var stored models.Estimate
	if err := f.conn.First(&stored, "id = ?", dto.ID).Error; err != nil {
		t.Fatalf("reload estimate failed: %v", err)
	}
	if stored.CreatedByID != f.ownerID {
		t.Fatalf("expected estimate bound to owner %d, got %d", f.ownerID, stored.CreatedByID)
	}
}

func TestEditDuplicateIDMergesDisjointFields(t *testing.T) {
	f := newFixture(t)
	created := f.createEstimate(t, []ItemPatch{{Description: strPtr("orig"), UnitPrice: decPtr(1)}})
	id := created.Items[0].ID

	items := []ItemPatch{
		{ID: &id, Description: strPtr("patched-desc")},
		{ID: &id, UnitPrice: decPtr(20)},
	}
	updated, err := f.svc.Edit(context.Background(), created.ID, EditEstimateInput{Items: &items})
	if err != nil {
		t.Fatalf("edit failed: %v", err)
	}
	if len(updated.Items) != 1 {
		t.Fatalf("duplicated item must survive once, got %d", len(updated.Items))
	}
	if updated.Items[0].Description != "patched-desc" {
		t.Fatalf("earlier duplicate's description must persist, got %q", updated.Items[0].Description)
	}
	if !updated.Items[0].UnitPrice.Equal(decimal.NewFromInt(20)) {
		t.Fatalf("later duplicate's unit price must persist, got %s", updated.Items[0].UnitPrice)
	}
}

func TestUnknownMaterialToleratedKnownMaterialBound(t *testing.T) {
	f := newFixture(t)
	material := models.MaterialDescription{Name: "Breaker Box"}
	if err := f.conn.Create(&material).Error; err != nil {
		t.Fatalf("create material: %v", err)
	}
	unknown := material.ID + 1000

	created := f.createEstimate(t, []ItemPatch{
		{Description: strPtr("bound"), ChosenMaterialID: &material.ID},
		{Description: strPtr("unbound"), ChosenMaterialID: &unknown},
	})

	if created.Items[0].ChosenMaterial == nil || created.Items[0].ChosenMaterial.Name != "Breaker Box" {
		t.Fatalf("known material must bind, got %+v", created.Items[0].ChosenMaterial)
	}
	if created.Items[1].ChosenMaterial != nil {
		t.Fatalf("unknown material must be dropped silently, got %+v", created.Items[1].ChosenMaterial)
	}
}

func TestEditNotFound(t *testing.T) {
	f := newFixture(t)
	_, err := f.svc.Edit(context.Background(), 4242, EditEstimateInput{})
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestListPagination(t *testing.T) {
	f := newFixture(t)
	for i := 0; i < 3; i++ {
		f.createEstimate(t, nil)
	}

	page, err := f.svc.List(context.Background(), pagination.Params{Limit: 2})
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(page) != 2 {
		t.Fatalf("expected limited page of 2, got %d", len(page))
	}
	if page[0].ID < page[1].ID {
		t.Fatalf("expected newest first, got %d then %d", page[0].ID, page[1].ID)
	}
}

func TestPreviewBuildsDocumentAndFilename(t *testing.T) {
	f := newFixture(t)
	img := "voltworks.png"
	bp := models.BusinessProfile{
		UserID:              f.ownerID,
		BusinessName:        "VoltWorks Electricals",
		Phone:               "+233200000001",
		Address:             "12 Ring Road, Accra",
		BackgroundImagePath: &img,
	}
	if err := f.conn.Create(&bp).Error; err != nil {
		t.Fatalf("create business profile: %v", err)
	}
	created := f.createEstimate(t, []ItemPatch{{Description: strPtr("A")}})

	preview, err := f.svc.Preview(context.Background(), created.ID)
	if err != nil {
		t.Fatalf("preview failed: %v", err)
	}
	if preview.Filename != "Estimate for Ama Mensah.pdf" {
		t.Fatalf("unexpected filename %q", preview.Filename)
	}
	if string(preview.Payload) != "%PDF-1.4 stub" {
		t.Fatalf("unexpected payload %q", preview.Payload)
	}
	if f.render.lastDoc.BusinessName != "VoltWorks Electricals" {
		t.Fatalf("expected business profile on document, got %q", f.render.lastDoc.BusinessName)
	}
	if f.render.lastDoc.LetterheadPath == nil || *f.render.lastDoc.LetterheadPath != img {
		t.Fatalf("expected letterhead path on document, got %v", f.render.lastDoc.LetterheadPath)
	}
}

func TestPreviewSurfacesRenderFailure(t *testing.T) {
	f := newFixture(t)
	created := f.createEstimate(t, nil)
	f.render.err = pkgerrors.New(pkgerrors.CodeRenderFailure, "boom")

	_, err := f.svc.Preview(context.Background(), created.ID)
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeRenderFailure {
		t.Fatalf("expected render failure, got %v", err)
	}
}

func TestAmountPolicyRejectsBeforeAnyWrite(t *testing.T) {
	f := newFixture(t)
	policy := func(patch ItemPatch) error {
		if patch.Amount != nil && patch.Quantity != nil && patch.UnitPrice != nil &&
			!patch.Amount.Equal(patch.Quantity.Mul(*patch.UnitPrice)) {
			return errors.New("amount does not match quantity * unit_price")
		}
		return nil
	}
	svc, err := NewService(
		NewRepository(f.conn),
		profiles.NewRepository(f.conn),
		materials.NewRepository(f.conn),
		f.render,
		&testTx{db: f.conn},
		policy,
		nil,
	)
	if err != nil {
		t.Fatalf("build service with policy: %v", err)
	}

	_, err = svc.Create(context.Background(), CreateEstimateInput{
		UserEmail: "kwame@voltworks.example",
		Items: []ItemPatch{
			{Quantity: decPtr(2), UnitPrice: decPtr(10), Amount: decPtr(99)},
		},
	})
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation failure from amount policy, got %v", err)
	}

	var count int64
	f.conn.Model(&models.Estimate{}).Count(&count)
	if count != 0 {
		t.Fatalf("policy rejection must happen before persistence, got %d estimates", count)
	}
}
