package materials

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"

	"github.com/kojoasante/estimates-backend/pkg/db/models"
)

// Repository handles material catalog persistence.
type Repository struct {
	db *gorm.DB
}

// NewRepository binds a GORM DB to material operations.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// List returns the full catalog in insertion order.
func (r *Repository) List(ctx context.Context) ([]models.MaterialDescription, error) {
	var rows []models.MaterialDescription
	if err := r.db.WithContext(ctx).Order("id asc").Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// FindByID loads a single material.
func (r *Repository) FindByID(ctx context.Context, id uint) (*models.MaterialDescription, error) {
	var row models.MaterialDescription
	if err := r.db.WithContext(ctx).First(&row, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &row, nil
}

// Ensure returns the material with the given name, creating it if absent.
// Name matching is exact after trimming whitespace.
func (r *Repository) Ensure(ctx context.Context, name string) (*models.MaterialDescription, bool, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, false, gorm.ErrInvalidData
	}
	var row models.MaterialDescription
	err := r.db.WithContext(ctx).Where("name = ?", name).First(&row).Error
	if err == nil {
		return &row, false, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, false, err
	}
	row = models.MaterialDescription{Name: name}
	if err := r.db.WithContext(ctx).Create(&row).Error; err != nil {
		return nil, false, err
	}
	return &row, true, nil
}

// ResolveWithTx loads a material inside the provided transaction, returning
// nil (no error) when the id does not exist. Item references to unknown
// materials degrade to unlinked rather than failing the write.
func (r *Repository) ResolveWithTx(tx *gorm.DB, id uint) (*models.MaterialDescription, error) {
	if tx == nil {
		return nil, gorm.ErrInvalidTransaction
	}
	var row models.MaterialDescription
	if err := tx.First(&row, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &row, nil
}
