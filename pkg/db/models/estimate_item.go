package models

import (
	"github.com/shopspring/decimal"

	"github.com/kojoasante/estimates-backend/pkg/enums"
)

// EstimateItem is a single line on an estimate. The display label comes from
// the chosen material when one is bound, otherwise the free-text description.
// Amount is caller-supplied, never derived server-side.
type EstimateItem struct {
	ID               uint            `gorm:"column:id;primaryKey;autoIncrement"`
	EstimateID       uint            `gorm:"column:estimate_id;not null;index"`
	ChosenMaterialID *uint           `gorm:"column:chosen_material_id"`
	Description      string          `gorm:"column:description;not null;default:''"`
	Quantity         decimal.Decimal `gorm:"column:quantity;type:numeric(10,2);not null;default:0"`
	Unit             enums.ItemUnit  `gorm:"column:unit;type:text;not null;default:'pieces'"`
	UnitPrice        decimal.Decimal `gorm:"column:unit_price;type:numeric(10,2);not null;default:0"`
	Amount           decimal.Decimal `gorm:"column:amount;type:numeric(10,2);not null;default:0"`

	ChosenMaterial *MaterialDescription `gorm:"foreignKey:ChosenMaterialID;constraint:OnDelete:SET NULL"`
}

// Label returns the display text for the item, material name first.
func (i EstimateItem) Label() string {
	if i.ChosenMaterial != nil && i.ChosenMaterial.Name != "" {
		return i.ChosenMaterial.Name
	}
	return i.Description
}
