package models

// BusinessProfile holds the onboarding details for a user's business. One per
// user; the background image path is the letterhead used on estimate PDFs.
type BusinessProfile struct {
	ID                  uint    `gorm:"column:id;primaryKey;autoIncrement"`
	UserID              uint    `gorm:"column:user_id;not null;uniqueIndex"`
	BusinessName        string  `gorm:"column:business_name;not null"`
	Phone               string  `gorm:"column:phone;not null"`
	Address             string  `gorm:"column:address;not null"`
	Website             string  `gorm:"column:website;not null;default:''"`
	TaxID               string  `gorm:"column:tax_id;not null;default:''"`
	Established         string  `gorm:"column:established;not null;default:''"`
	Industry            string  `gorm:"column:industry;not null;default:''"`
	Description         string  `gorm:"column:description;not null;default:''"`
	BackgroundImagePath *string `gorm:"column:background_image_path"`
}
