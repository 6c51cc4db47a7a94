package estimates

import (
	"context"

	"gorm.io/gorm"

	"github.com/kojoasante/estimates-backend/pkg/db/models"
	"github.com/kojoasante/estimates-backend/pkg/pagination"
)

// Repository handles estimate persistence.
type Repository struct {
	db *gorm.DB
}

// NewRepository binds a GORM DB to estimate operations.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// FindByID loads the aggregate with items in id order and their material
// bindings.
func (r *Repository) FindByID(ctx context.Context, id uint) (*models.Estimate, error) {
	var estimate models.Estimate
	if err := r.db.WithContext(ctx).
		Preload("Items", func(db *gorm.DB) *gorm.DB {
			return db.Order("estimate_items.id asc")
		}).
		Preload("Items.ChosenMaterial").
		First(&estimate, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &estimate, nil
}

// List returns a page of estimates, newest id first, items preloaded.
func (r *Repository) List(ctx context.Context, params pagination.Params) ([]models.Estimate, error) {
	params = params.Normalize()
	var rows []models.Estimate
	if err := r.db.WithContext(ctx).
		Preload("Items", func(db *gorm.DB) *gorm.DB {
			return db.Order("estimate_items.id asc")
		}).
		Preload("Items.ChosenMaterial").
		Order("id desc").
		Limit(params.Limit).
		Offset(params.Offset).
		Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// CreateWithTx inserts the estimate header inside the transaction.
func (r *Repository) CreateWithTx(tx *gorm.DB, estimate *models.Estimate) error {
	if tx == nil {
		return gorm.ErrInvalidTransaction
	}
	return tx.Create(estimate).Error
}

// SaveHeaderWithTx persists the header fields inside the transaction without
// touching the item collection.
func (r *Repository) SaveHeaderWithTx(tx *gorm.DB, estimate *models.Estimate) error {
	if tx == nil {
		return gorm.ErrInvalidTransaction
	}
	return tx.Omit("Items").Save(estimate).Error
}

// materialResolver resolves a catalog id inside a transaction, returning nil
// without error when the id is unknown.
type materialResolver interface {
	ResolveWithTx(tx *gorm.DB, id uint) (*models.MaterialDescription, error)
}

// ApplyPlanWithTx executes a reconciliation plan against the estimate inside
// the provided transaction: merges updates in order, inserts creates with a
// fresh identity, then removes everything scheduled for deletion. Material
// references on each patch are resolved through the catalog; unknown ids are
// dropped rather than failing the batch.
func (r *Repository) ApplyPlanWithTx(tx *gorm.DB, estimateID uint, plan Plan, catalog materialResolver) error {
	if tx == nil {
		return gorm.ErrInvalidTransaction
	}

	for _, update := range plan.Updates {
		item := update.Existing
		applyPatch(&item, update.Patch)
		if err := resolveMaterial(tx, &item, update.Patch, catalog); err != nil {
			return err
		}
		item.EstimateID = estimateID
		if err := tx.Omit("ChosenMaterial").Save(&item).Error; err != nil {
			return err
		}
	}

	for _, patch := range plan.Creates {
		var item models.EstimateItem
		applyPatch(&item, patch)
		if err := resolveMaterial(tx, &item, patch, catalog); err != nil {
			return err
		}
		item.EstimateID = estimateID
		if err := tx.Omit("ChosenMaterial").Create(&item).Error; err != nil {
			return err
		}
	}

	if len(plan.DeleteIDs) > 0 {
		if err := tx.Where("estimate_id = ? AND id IN ?", estimateID, plan.DeleteIDs).
			Delete(&models.EstimateItem{}).Error; err != nil {
			return err
		}
	}
	return nil
}

func resolveMaterial(tx *gorm.DB, item *models.EstimateItem, patch ItemPatch, catalog materialResolver) error {
	if patch.ChosenMaterialID == nil || catalog == nil {
		return nil
	}
	material, err := catalog.ResolveWithTx(tx, *patch.ChosenMaterialID)
	if err != nil {
		return err
	}
	if material == nil {
		// Unknown catalog id: leave the item unlinked.
		return nil
	}
	item.ChosenMaterialID = &material.ID
	return nil
}
