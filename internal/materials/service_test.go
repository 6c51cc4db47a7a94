package materials

import (
	"context"
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/kojoasante/estimates-backend/pkg/db/models"
	pkgerrors "github.com/kojoasante/estimates-backend/pkg/errors"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	conn, err := gorm.Open(sqlite.Open("file:materials_test?mode=memory&cache=shared"), &gorm.Config{
		SkipDefaultTransaction: true,
	})
	if err != nil {
		t.Fatalf("failed to open sqlite: %v", err)
	}
	if err := conn.Migrator().DropTable(&models.MaterialDescription{}); err != nil {
		t.Fatalf("failed to reset table: %v", err)
	}
	if err := conn.AutoMigrate(&models.MaterialDescription{}); err != nil {
		t.Fatalf("failed to migrate sqlite: %v", err)
	}
	return conn
}

func newTestService(t *testing.T) (Service, *Repository) {
	t.Helper()
	repo := NewRepository(newTestDB(t))
	svc, err := NewService(repo, nil)
	if err != nil {
		t.Fatalf("failed to build service: %v", err)
	}
	return svc, repo
}

func TestEnsureCreatesOnceAndReuses(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	first, created, err := svc.Ensure(ctx, "  Transformer  ")
	if err != nil {
		t.Fatalf("ensure failed: %v", err)
	}
	if !created {
		t.Fatal("expected first ensure to create")
	}
	if first.Name != "Transformer" {
		t.Fatalf("expected trimmed name, got %q", first.Name)
	}

	second, created, err := svc.Ensure(ctx, "Transformer")
	if err != nil {
		t.Fatalf("second ensure failed: %v", err)
	}
	if created {
		t.Fatal("expected second ensure to reuse existing row")
	}
	if second.ID != first.ID {
		t.Fatalf("expected same id, got %d and %d", first.ID, second.ID)
	}
}

func TestEnsureRejectsBlankName(t *testing.T) {
	svc, _ := newTestService(t)
	_, _, err := svc.Ensure(context.Background(), "   ")
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestGetNotFound(t *testing.T) {
	svc, _ := newTestService(t)
	_, err := svc.Get(context.Background(), 999)
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not found error, got %v", err)
	}
}

func TestSeedIsIdempotent(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	first, err := svc.Seed(ctx)
	if err != nil {
		t.Fatalf("seed failed: %v", err)
	}
	if first.Added != len(defaultCatalog) || first.Skipped != 0 {
		t.Fatalf("expected %d added on empty catalog, got %+v", len(defaultCatalog), first)
	}

	second, err := svc.Seed(ctx)
	if err != nil {
		t.Fatalf("second seed failed: %v", err)
	}
	if second.Added != 0 || second.Skipped != len(defaultCatalog) {
		t.Fatalf("expected all skipped on reseed, got %+v", second)
	}

	list, err := svc.List(ctx)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(list) != len(defaultCatalog) {
		t.Fatalf("expected %d materials, got %d", len(defaultCatalog), len(list))
	}
}

func TestListKeepsInsertionOrder(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	names := []string{"Zinc Sheet", "Aluminum Cable", "Breaker Box"}
	for _, name := range names {
		if _, _, err := svc.Ensure(ctx, name); err != nil {
			t.Fatalf("ensure %q failed: %v", name, err)
		}
	}

	list, err := svc.List(ctx)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(list) != len(names) {
		t.Fatalf("expected %d materials, got %d", len(names), len(list))
	}
	for i, name := range names {
		if list[i].Name != name {
			t.Fatalf("expected insertion order %v, got %q at %d", names, list[i].Name, i)
		}
	}
}

func TestResolveWithTxToleratesUnknownID(t *testing.T) {
	db := newTestDB(t)
	repo := NewRepository(db)

	row, _, err := repo.Ensure(context.Background(), "Breaker Box")
	if err != nil {
		t.Fatalf("ensure failed: %v", err)
	}

	found, err := repo.ResolveWithTx(db, row.ID)
	if err != nil {
		t.Fatalf("resolve failed: %v", err)
	}
	if found == nil || found.Name != "Breaker Box" {
		t.Fatalf("expected material back, got %+v", found)
	}

	missing, err := repo.ResolveWithTx(db, 4242)
	if err != nil {
		t.Fatalf("resolve of unknown id should not error: %v", err)
	}
	if missing != nil {
		t.Fatalf("expected nil for unknown id, got %+v", missing)
	}
}
