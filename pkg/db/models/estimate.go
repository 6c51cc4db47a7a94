package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estimate is the aggregate root: header fields plus the owned item
// collection, ordered by id. Items never outlive their estimate.
type Estimate struct {
	ID             uint            `gorm:"column:id;primaryKey;autoIncrement"`
	CreatedByID    uint            `gorm:"column:created_by_id;not null;index"`
	ClientName     string          `gorm:"column:client_name;not null"`
	EstimateTitle  string          `gorm:"column:estimate_title;not null"`
	Notes          string          `gorm:"column:notes;not null;default:''"`
	Workmanship    decimal.Decimal `gorm:"column:workmanship;type:numeric(10,2);not null;default:0"`
	TotalMaterials decimal.Decimal `gorm:"column:total_materials;type:numeric(10,2);not null;default:0"`
	GrandTotal     decimal.Decimal `gorm:"column:grand_total;type:numeric(10,2);not null;default:0"`
	CreatedAt      time.Time       `gorm:"column:created_at;autoCreateTime"`

	Items []EstimateItem `gorm:"foreignKey:EstimateID;constraint:OnDelete:CASCADE"`
}
