package profiles

import "github.com/kojoasante/estimates-backend/pkg/db/models"

// OnboardingInput carries the fields accepted when a business signs up or
// refreshes its details. Name doubles as the user's online name.
type OnboardingInput struct {
	Email       string
	Name        string
	Phone       string
	Address     string
	Website     string
	TaxID       string
	Established string
	Industry    string
	Description string
	ImagePath   *string
}

// OnboardingDTO is the minimal identity payload returned after onboarding
// and lookups.
type OnboardingDTO struct {
	OnlineName string  `json:"online_name"`
	ProfilePic *string `json:"profile_pic"`
}

// UserProfileDTO exposes the account identity. Email is read-only after
// creation.
type UserProfileDTO struct {
	Email      string `json:"email"`
	OnlineName string `json:"online_name"`
}

// BusinessProfileDTO exposes the business details attached to a user.
type BusinessProfileDTO struct {
	UserEmail       string  `json:"user_email"`
	BusinessName    string  `json:"business_name"`
	Phone           string  `json:"phone"`
	Address         string  `json:"address"`
	Website         string  `json:"website"`
	TaxID           string  `json:"tax_id"`
	Established     string  `json:"established"`
	Industry        string  `json:"industry"`
	Description     string  `json:"description"`
	BackgroundImage *string `json:"background_image"`
}

// UpdateUserInput holds the mutable user fields.
type UpdateUserInput struct {
	OnlineName *string
}

// UpdateBusinessInput holds the mutable business profile fields.
type UpdateBusinessInput struct {
	BusinessName    *string
	Phone           *string
	Address         *string
	Website         *string
	TaxID           *string
	Established     *string
	Industry        *string
	Description     *string
	BackgroundImage *string
}

// UserFromModel maps the persisted user into a DTO.
func UserFromModel(m *models.UserProfile) *UserProfileDTO {
	if m == nil {
		return nil
	}
	return &UserProfileDTO{Email: m.Email, OnlineName: m.OnlineName}
}

// BusinessFromModel maps the persisted business profile into a DTO.
func BusinessFromModel(userEmail string, m *models.BusinessProfile) *BusinessProfileDTO {
	if m == nil {
		return nil
	}
	return &BusinessProfileDTO{
		UserEmail:       userEmail,
		BusinessName:    m.BusinessName,
		Phone:           m.Phone,
		Address:         m.Address,
		Website:         m.Website,
		TaxID:           m.TaxID,
		Established:     m.Established,
		Industry:        m.Industry,
		Description:     m.Description,
		BackgroundImage: m.BackgroundImagePath,
	}
}
