package profiles

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/kojoasante/estimates-backend/pkg/db/models"
	pkgerrors "github.com/kojoasante/estimates-backend/pkg/errors"
	"github.com/kojoasante/estimates-backend/pkg/logger"
)

type profileRepository interface {
	FindUserByEmail(ctx context.Context, email string) (*models.UserProfile, error)
	FindUserWithBusiness(ctx context.Context, email string) (*models.UserProfile, error)
	FindBusinessByName(ctx context.Context, name string) (*models.BusinessProfile, *models.UserProfile, error)
	UpsertUser(ctx context.Context, email, onlineName string) (*models.UserProfile, error)
	UpsertBusiness(ctx context.Context, userID uint, input OnboardingInput) (*models.BusinessProfile, error)
	SaveUser(ctx context.Context, user *models.UserProfile) error
	SaveBusiness(ctx context.Context, bp *models.BusinessProfile) error
	DeleteUserCascade(tx *gorm.DB, userID uint) error
}

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

// Service exposes onboarding and profile operations.
type Service interface {
	Onboard(ctx context.Context, input OnboardingInput) (*OnboardingDTO, error)
	Lookup(ctx context.Context, email, businessName string) (*OnboardingDTO, error)
	GetUser(ctx context.Context, email string) (*UserProfileDTO, error)
	UpdateUser(ctx context.Context, email string, input UpdateUserInput) (*UserProfileDTO, error)
	GetBusiness(ctx context.Context, email string) (*BusinessProfileDTO, error)
	UpdateBusiness(ctx context.Context, email string, input UpdateBusinessInput) (*BusinessProfileDTO, error)
	DeleteAccount(ctx context.Context, email string) error
}

type service struct {
	repo profileRepository
	tx   txRunner
	logg *logger.Logger
}

// NewService builds a profile service with the provided collaborators.
func NewService(repo profileRepository, tx txRunner, logg *logger.Logger) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("profile repository required")
	}
	if tx == nil {
		return nil, fmt.Errorf("transaction runner required")
	}
	return &service{repo: repo, tx: tx, logg: logg}, nil
}

func (s *service) Onboard(ctx context.Context, input OnboardingInput) (*OnboardingDTO, error) {
	email := strings.ToLower(strings.TrimSpace(input.Email))
	if email == "" || !strings.Contains(email, "@") {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "a valid email is required")
	}
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "business name is required")
	}
	input.Email = email
	input.Name = name

	user, err := s.repo.UpsertUser(ctx, email, name)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "upsert user")
	}
	bp, err := s.repo.UpsertBusiness(ctx, user.ID, input)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "upsert business profile")
	}

	if s.logg != nil {
		s.logg.Info(s.logg.WithUserEmail(ctx, email), "business onboarded")
	}
	return &OnboardingDTO{OnlineName: user.OnlineName, ProfilePic: bp.BackgroundImagePath}, nil
}

// Lookup resolves the display identity by email, or by business name when no
// email is given. Business name matching is case-insensitive.
func (s *service) Lookup(ctx context.Context, email, businessName string) (*OnboardingDTO, error) {
	email = strings.TrimSpace(email)
	businessName = strings.TrimSpace(businessName)
	if email == "" && businessName == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "email or business name is required")
	}

	if email != "" {
		user, err := s.repo.FindUserWithBusiness(ctx, email)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, pkgerrors.New(pkgerrors.CodeNotFound, "user or business not found")
			}
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "lookup user")
		}
		dto := &OnboardingDTO{OnlineName: user.OnlineName}
		if user.BusinessProfile != nil {
			dto.ProfilePic = user.BusinessProfile.BackgroundImagePath
		}
		return dto, nil
	}

	bp, user, err := s.repo.FindBusinessByName(ctx, businessName)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "user or business not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "lookup business")
	}
	return &OnboardingDTO{OnlineName: user.OnlineName, ProfilePic: bp.BackgroundImagePath}, nil
}

func (s *service) GetUser(ctx context.Context, email string) (*UserProfileDTO, error) {
	user, err := s.loadUser(ctx, email)
	if err != nil {
		return nil, err
	}
	return UserFromModel(user), nil
}

func (s *service) UpdateUser(ctx context.Context, email string, input UpdateUserInput) (*UserProfileDTO, error) {
	user, err := s.loadUser(ctx, email)
	if err != nil {
		return nil, err
	}
	if input.OnlineName != nil {
		user.OnlineName = strings.TrimSpace(*input.OnlineName)
	}
	if err := s.repo.SaveUser(ctx, user); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update user")
	}
	return UserFromModel(user), nil
}

func (s *service) GetBusiness(ctx context.Context, email string) (*BusinessProfileDTO, error) {
	user, bp, err := s.loadBusiness(ctx, email)
	if err != nil {
		return nil, err
	}
	return BusinessFromModel(user.Email, bp), nil
}

func (s *service) UpdateBusiness(ctx context.Context, email string, input UpdateBusinessInput) (*BusinessProfileDTO, error) {
	user, bp, err := s.loadBusiness(ctx, email)
	if err != nil {
		return nil, err
	}

	if input.BusinessName != nil {
		bp.BusinessName = *input.BusinessName
	}
	if input.Phone != nil {
		bp.Phone = *input.Phone
	}
	if input.Address != nil {
		bp.Address = *input.Address
	}
	if input.Website != nil {
		bp.Website = *input.Website
	}
	if input.TaxID != nil {
		bp.TaxID = *input.TaxID
	}
	if input.Established != nil {
		bp.Established = *input.Established
	}
	if input.Industry != nil {
		bp.Industry = *input.Industry
	}
	if input.Description != nil {
		bp.Description = *input.Description
	}
	if input.BackgroundImage != nil {
		if *input.BackgroundImage == "" {
			bp.BackgroundImagePath = nil
		} else {
			bp.BackgroundImagePath = input.BackgroundImage
		}
	}

	if err := s.repo.SaveBusiness(ctx, bp); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update business profile")
	}
	return BusinessFromModel(user.Email, bp), nil
}

// DeleteAccount removes the user and everything it owns in one transaction.
func (s *service) DeleteAccount(ctx context.Context, email string) error {
	user, err := s.loadUser(ctx, email)
	if err != nil {
		return err
	}
	if err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		return s.repo.DeleteUserCascade(tx, user.ID)
	}); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete account")
	}
	if s.logg != nil {
		s.logg.Info(s.logg.WithUserEmail(ctx, user.Email), "account deleted")
	}
	return nil
}

func (s *service) loadUser(ctx context.Context, email string) (*models.UserProfile, error) {
	email = strings.TrimSpace(email)
	if email == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "email is required")
	}
	user, err := s.repo.FindUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "user not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "lookup user")
	}
	return user, nil
}

func (s *service) loadBusiness(ctx context.Context, email string) (*models.UserProfile, *models.BusinessProfile, error) {
	email = strings.TrimSpace(email)
	if email == "" {
		return nil, nil, pkgerrors.New(pkgerrors.CodeValidation, "email is required")
	}
	user, err := s.repo.FindUserWithBusiness(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, pkgerrors.New(pkgerrors.CodeNotFound, "user not found")
		}
		return nil, nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "lookup user")
	}
	if user.BusinessProfile == nil {
		return nil, nil, pkgerrors.New(pkgerrors.CodeNotFound, "business profile not found")
	}
	return user, user.BusinessProfile, nil
}
