package estimates

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"gorm.io/gorm"

	"github.com/kojoasante/estimates-backend/internal/render"
	"github.com/kojoasante/estimates-backend/pkg/db/models"
	pkgerrors "github.com/kojoasante/estimates-backend/pkg/errors"
	"github.com/kojoasante/estimates-backend/pkg/logger"
	"github.com/kojoasante/estimates-backend/pkg/pagination"
)

type estimateRepository interface {
	FindByID(ctx context.Context, id uint) (*models.Estimate, error)
	List(ctx context.Context, params pagination.Params) ([]models.Estimate, error)
	CreateWithTx(tx *gorm.DB, estimate *models.Estimate) error
	SaveHeaderWithTx(tx *gorm.DB, estimate *models.Estimate) error
	ApplyPlanWithTx(tx *gorm.DB, estimateID uint, plan Plan, catalog materialResolver) error
}

type ownerRepository interface {
	FindUserByEmail(ctx context.Context, email string) (*models.UserProfile, error)
	FindUserByID(ctx context.Context, id uint) (*models.UserProfile, error)
}

type documentRenderer interface {
	Render(ctx context.Context, doc render.Document) ([]byte, error)
}

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

// AmountPolicy inspects a patch before it is applied. The default accepts
// caller-supplied amounts as-is; a stricter deployment can plug in a policy
// that derives or validates amount against quantity and unit price.
type AmountPolicy func(patch ItemPatch) error

// Preview is a rendered estimate ready for download.
type Preview struct {
	Filename string
	Payload  []byte
}

// Service exposes estimate operations.
type Service interface {
	Create(ctx context.Context, input CreateEstimateInput) (*EstimateDTO, error)
	Edit(ctx context.Context, id uint, input EditEstimateInput) (*EstimateDTO, error)
	Get(ctx context.Context, id uint) (*EstimateDTO, error)
	List(ctx context.Context, params pagination.Params) ([]EstimateDTO, error)
	Preview(ctx context.Context, id uint) (*Preview, error)
}

type service struct {
	repo         estimateRepository
	owners       ownerRepository
	catalog      materialResolver
	renderer     documentRenderer
	tx           txRunner
	amountPolicy AmountPolicy
	logg         *logger.Logger
}

// NewService wires the estimate workflows to their collaborators. The
// renderer may be nil when preview is not served; amountPolicy may be nil to
// trust caller arithmetic.
func NewService(
	repo estimateRepository,
	owners ownerRepository,
	catalog materialResolver,
	renderer documentRenderer,
	tx txRunner,
	amountPolicy AmountPolicy,
	logg *logger.Logger,
) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("estimate repository required")
	}
	if owners == nil {
		return nil, fmt.Errorf("owner repository required")
	}
	if catalog == nil {
		return nil, fmt.Errorf("material catalog required")
	}
	if tx == nil {
		return nil, fmt.Errorf("transaction runner required")
	}
	return &service{
		repo:         repo,
		owners:       owners,
		catalog:      catalog,
		renderer:     renderer,
		tx:           tx,
		amountPolicy: amountPolicy,
		logg:         logg,
	}, nil
}

// Create persists a new estimate for the owner addressed by email. The item
// list goes through the same reconciliation path as edits, with an empty
// existing set.
func (s *service) Create(ctx context.Context, input CreateEstimateInput) (*EstimateDTO, error) {
	email := strings.TrimSpace(input.UserEmail)
	if email == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "user_email is required")
	}
	owner, err := s.owners.FindUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "user not found with this email").
				WithDetails(map[string]string{"user_email": "user not found with this email"})
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "lookup owner")
	}

	if err := s.checkAmounts(input.Items); err != nil {
		return nil, err
	}

	estimate := models.Estimate{
		CreatedByID:    owner.ID,
		ClientName:     input.ClientName,
		EstimateTitle:  input.EstimateTitle,
		Notes:          input.Notes,
		Workmanship:    input.Workmanship,
		TotalMaterials: input.TotalMaterials,
		GrandTotal:     input.GrandTotal,
	}
	plan := BuildPlan(nil, input.Items)

	if err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		if err := s.repo.CreateWithTx(tx, &estimate); err != nil {
			return err
		}
		return s.repo.ApplyPlanWithTx(tx, estimate.ID, plan, s.catalog)
	}); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create estimate")
	}

	if s.logg != nil {
		s.logg.Info(s.logg.WithEstimateID(ctx, estimate.ID), "estimate created")
	}
	return s.Get(ctx, estimate.ID)
}

// Edit applies a partial update. Header fields merge pointer-wise; the item
// set is reconciled only when the payload carried an items field, so an
// absent field leaves items alone while an empty list clears them.
func (s *service) Edit(ctx context.Context, id uint, input EditEstimateInput) (*EstimateDTO, error) {
	estimate, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.ClientName != nil {
		estimate.ClientName = *input.ClientName
	}
	if input.EstimateTitle != nil {
		estimate.EstimateTitle = *input.EstimateTitle
	}
	if input.Notes != nil {
		estimate.Notes = *input.Notes
	}
	if input.Workmanship != nil {
		estimate.Workmanship = *input.Workmanship
	}
	if input.TotalMaterials != nil {
		estimate.TotalMaterials = *input.TotalMaterials
	}
	if input.GrandTotal != nil {
		estimate.GrandTotal = *input.GrandTotal
	}

	var plan Plan
	reconcileItems := input.Items != nil
	if reconcileItems {
		if err := s.checkAmounts(*input.Items); err != nil {
			return nil, err
		}
		plan = BuildPlan(estimate.Items, *input.Items)
	}

	if err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		if err := s.repo.SaveHeaderWithTx(tx, estimate); err != nil {
			return err
		}
		if !reconcileItems {
			return nil
		}
		return s.repo.ApplyPlanWithTx(tx, estimate.ID, plan, s.catalog)
	}); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "edit estimate")
	}

	if s.logg != nil {
		s.logg.Info(s.logg.WithEstimateID(ctx, estimate.ID), "estimate edited")
	}
	return s.Get(ctx, estimate.ID)
}

func (s *service) Get(ctx context.Context, id uint) (*EstimateDTO, error) {
	estimate, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	return FromModel(estimate), nil
}

func (s *service) List(ctx context.Context, params pagination.Params) ([]EstimateDTO, error) {
	rows, err := s.repo.List(ctx, params)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list estimates")
	}
	return FromModels(rows), nil
}

// Preview renders the estimate to PDF with the owner's letterhead and names
// the download after the client.
func (s *service) Preview(ctx context.Context, id uint) (*Preview, error) {
	if s.renderer == nil {
		return nil, pkgerrors.New(pkgerrors.CodeRenderFailure, "renderer not configured")
	}
	estimate, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}

	doc := render.Document{Estimate: estimate}
	owner, err := s.owners.FindUserByID(ctx, estimate.CreatedByID)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "lookup owner")
	}
	if owner != nil {
		doc.BusinessName = owner.OnlineName
		if bp := owner.BusinessProfile; bp != nil {
			doc.BusinessName = bp.BusinessName
			doc.Phone = bp.Phone
			doc.Address = bp.Address
			doc.LetterheadPath = bp.BackgroundImagePath
		}
	}

	payload, err := s.renderer.Render(ctx, doc)
	if err != nil {
		return nil, err
	}
	return &Preview{Filename: previewFilename(estimate), Payload: payload}, nil
}

func (s *service) load(ctx context.Context, id uint) (*models.Estimate, error) {
	estimate, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "estimate not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load estimate")
	}
	return estimate, nil
}

func (s *service) checkAmounts(patches []ItemPatch) error {
	if s.amountPolicy == nil {
		return nil
	}
	for _, patch := range patches {
		if err := s.amountPolicy(patch); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeValidation, err, "item amount rejected")
		}
	}
	return nil
}

var filenameTitler = cases.Title(language.English)

func previewFilename(estimate *models.Estimate) string {
	client := strings.TrimSpace(estimate.ClientName)
	if client == "" {
		return fmt.Sprintf("Estimate for %d.pdf", estimate.ID)
	}
	return fmt.Sprintf("Estimate for %s.pdf", filenameTitler.String(client))
}
