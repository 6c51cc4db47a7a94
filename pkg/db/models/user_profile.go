package models

// UserProfile is the account a contractor works under. Deleting it cascades
// through the business profile and every owned estimate.
type UserProfile struct {
	ID         uint   `gorm:"column:id;primaryKey;autoIncrement"`
	Email      string `gorm:"column:email;type:text;not null;uniqueIndex"`
	OnlineName string `gorm:"column:online_name;not null;default:''"`

	BusinessProfile *BusinessProfile `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	Estimates       []Estimate       `gorm:"foreignKey:CreatedByID;constraint:OnDelete:CASCADE"`
}
