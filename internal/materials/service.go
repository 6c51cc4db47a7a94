package materials

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/kojoasante/estimates-backend/pkg/db/models"
	pkgerrors "github.com/kojoasante/estimates-backend/pkg/errors"
	"github.com/kojoasante/estimates-backend/pkg/logger"
)

type materialRepository interface {
	List(ctx context.Context) ([]models.MaterialDescription, error)
	FindByID(ctx context.Context, id uint) (*models.MaterialDescription, error)
	Ensure(ctx context.Context, name string) (*models.MaterialDescription, bool, error)
}

// SeedResult reports what a catalog seed pass did.
type SeedResult struct {
	Added   int `json:"added"`
	Skipped int `json:"skipped"`
}

// Service exposes material catalog operations.
type Service interface {
	List(ctx context.Context) ([]MaterialDTO, error)
	Get(ctx context.Context, id uint) (*MaterialDTO, error)
	Ensure(ctx context.Context, name string) (*MaterialDTO, bool, error)
	Seed(ctx context.Context) (*SeedResult, error)
}

type service struct {
	repo materialRepository
	logg *logger.Logger
}

// NewService builds a material service over the provided repository.
func NewService(repo materialRepository, logg *logger.Logger) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("material repository required")
	}
	return &service{repo: repo, logg: logg}, nil
}

func (s *service) List(ctx context.Context) ([]MaterialDTO, error) {
	rows, err := s.repo.List(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list materials")
	}
	return FromModels(rows), nil
}

func (s *service) Get(ctx context.Context, id uint) (*MaterialDTO, error) {
	row, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "material not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load material")
	}
	return FromModel(row), nil
}

func (s *service) Ensure(ctx context.Context, name string) (*MaterialDTO, bool, error) {
	row, created, err := s.repo.Ensure(ctx, name)
	if err != nil {
		if errors.Is(err, gorm.ErrInvalidData) {
			return nil, false, pkgerrors.New(pkgerrors.CodeValidation, "material name is required")
		}
		return nil, false, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "ensure material")
	}
	return FromModel(row), created, nil
}

// Seed loads the default catalog, skipping names already present.
func (s *service) Seed(ctx context.Context) (*SeedResult, error) {
	result := &SeedResult{}
	for _, name := range defaultCatalog {
		_, created, err := s.repo.Ensure(ctx, name)
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "seed material")
		}
		if created {
			result.Added++
		} else {
			result.Skipped++
		}
	}
	if s.logg != nil {
		ctx = s.logg.WithFields(ctx, map[string]any{"added": result.Added, "skipped": result.Skipped})
		s.logg.Info(ctx, "material catalog seeded")
	}
	return result, nil
}
