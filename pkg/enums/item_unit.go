package enums

import "fmt"

// ItemUnit is the measurement unit an estimate line item is quoted in.
type ItemUnit string

const (
	ItemUnitPieces ItemUnit = "pieces"
	ItemUnitMeters ItemUnit = "meters"
	ItemUnitYards  ItemUnit = "yards"
	ItemUnitFeet   ItemUnit = "feet"
	ItemUnitCoils  ItemUnit = "coils"
	ItemUnitKg     ItemUnit = "kg"
	ItemUnitBoxes  ItemUnit = "boxes"
	ItemUnitUnits  ItemUnit = "units"
)

var validItemUnits = []ItemUnit{
	ItemUnitPieces,
	ItemUnitMeters,
	ItemUnitYards,
	ItemUnitFeet,
	ItemUnitCoils,
	ItemUnitKg,
	ItemUnitBoxes,
	ItemUnitUnits,
}

// DefaultItemUnit is applied when a line item omits its unit.
const DefaultItemUnit = ItemUnitPieces

// String implements fmt.Stringer.
func (u ItemUnit) String() string {
	return string(u)
}

// IsValid reports whether the value is a known ItemUnit.
func (u ItemUnit) IsValid() bool {
	for _, candidate := range validItemUnits {
		if candidate == u {
			return true
		}
	}
	return false
}

// ParseItemUnit converts raw input into an ItemUnit.
func ParseItemUnit(value string) (ItemUnit, error) {
	for _, candidate := range validItemUnits {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid item unit %q", value)
}
