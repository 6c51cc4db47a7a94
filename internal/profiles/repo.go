package profiles

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"

	"github.com/kojoasante/estimates-backend/pkg/db/models"
)

// Repository handles user and business profile persistence.
type Repository struct {
	db *gorm.DB
}

// NewRepository binds a GORM DB to profile operations.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// FindUserByEmail matches a user by email, case-insensitively. Onboarding
// stores emails lowercased, so this is the single place lookups fold case.
func (r *Repository) FindUserByEmail(ctx context.Context, email string) (*models.UserProfile, error) {
	var user models.UserProfile
	if err := r.db.WithContext(ctx).Where("lower(email) = ?", strings.ToLower(email)).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// FindUserWithBusiness loads a user and preloads its business profile.
func (r *Repository) FindUserWithBusiness(ctx context.Context, email string) (*models.UserProfile, error) {
	var user models.UserProfile
	if err := r.db.WithContext(ctx).
		Preload("BusinessProfile").
		Where("lower(email) = ?", strings.ToLower(email)).
		First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// FindUserByID loads a user by primary key and preloads its business profile.
func (r *Repository) FindUserByID(ctx context.Context, id uint) (*models.UserProfile, error) {
	var user models.UserProfile
	if err := r.db.WithContext(ctx).
		Preload("BusinessProfile").
		First(&user, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// FindBusinessByName matches a business profile by name, case-insensitively,
// and loads its owning user.
func (r *Repository) FindBusinessByName(ctx context.Context, name string) (*models.BusinessProfile, *models.UserProfile, error) {
	var bp models.BusinessProfile
	if err := r.db.WithContext(ctx).
		Where("lower(business_name) = ?", strings.ToLower(name)).
		First(&bp).Error; err != nil {
		return nil, nil, err
	}
	var user models.UserProfile
	if err := r.db.WithContext(ctx).First(&user, "id = ?", bp.UserID).Error; err != nil {
		return nil, nil, err
	}
	return &bp, &user, nil
}

// UpsertUser creates the user for the email or updates its online name.
func (r *Repository) UpsertUser(ctx context.Context, email, onlineName string) (*models.UserProfile, error) {
	var user models.UserProfile
	err := r.db.WithContext(ctx).Where("lower(email) = ?", strings.ToLower(email)).First(&user).Error
	switch {
	case err == nil:
		user.OnlineName = onlineName
		if err := r.db.WithContext(ctx).Save(&user).Error; err != nil {
			return nil, err
		}
		return &user, nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		user = models.UserProfile{Email: email, OnlineName: onlineName}
		if err := r.db.WithContext(ctx).Create(&user).Error; err != nil {
			return nil, err
		}
		return &user, nil
	default:
		return nil, err
	}
}

// UpsertBusiness creates or replaces the business profile attached to the
// user. All submitted fields overwrite the stored row, matching the
// onboarding form which always posts the full detail set.
func (r *Repository) UpsertBusiness(ctx context.Context, userID uint, input OnboardingInput) (*models.BusinessProfile, error) {
	fresh := models.BusinessProfile{
		UserID:              userID,
		BusinessName:        input.Name,
		Phone:               input.Phone,
		Address:             input.Address,
		Website:             input.Website,
		TaxID:               input.TaxID,
		Established:         input.Established,
		Industry:            input.Industry,
		Description:         input.Description,
		BackgroundImagePath: input.ImagePath,
	}

	var existing models.BusinessProfile
	err := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&existing).Error
	switch {
	case err == nil:
		fresh.ID = existing.ID
		if input.ImagePath == nil {
			fresh.BackgroundImagePath = existing.BackgroundImagePath
		}
		if err := r.db.WithContext(ctx).Save(&fresh).Error; err != nil {
			return nil, err
		}
		return &fresh, nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		if err := r.db.WithContext(ctx).Create(&fresh).Error; err != nil {
			return nil, err
		}
		return &fresh, nil
	default:
		return nil, err
	}
}

// SaveUser persists the provided user.
func (r *Repository) SaveUser(ctx context.Context, user *models.UserProfile) error {
	if user == nil {
		return gorm.ErrInvalidData
	}
	return r.db.WithContext(ctx).Save(user).Error
}

// SaveBusiness persists the provided business profile.
func (r *Repository) SaveBusiness(ctx context.Context, bp *models.BusinessProfile) error {
	if bp == nil {
		return gorm.ErrInvalidData
	}
	return r.db.WithContext(ctx).Save(bp).Error
}

// DeleteUserCascade removes the user and everything hanging off it inside the
// provided transaction: estimate items, estimates, and the business profile.
func (r *Repository) DeleteUserCascade(tx *gorm.DB, userID uint) error {
	if tx == nil {
		return gorm.ErrInvalidTransaction
	}
	if err := tx.Where("estimate_id IN (?)",
		tx.Model(&models.Estimate{}).Select("id").Where("created_by_id = ?", userID),
	).Delete(&models.EstimateItem{}).Error; err != nil {
		return err
	}
	if err := tx.Where("created_by_id = ?", userID).Delete(&models.Estimate{}).Error; err != nil {
		return err
	}
	if err := tx.Where("user_id = ?", userID).Delete(&models.BusinessProfile{}).Error; err != nil {
		return err
	}
	return tx.Delete(&models.UserProfile{}, "id = ?", userID).Error
}
