package models

// MaterialDescription is immutable reference data that estimate items may
// bind to by id. Rows are only ever created (seeded or ad hoc), never touched
// by estimate reconciliation.
type MaterialDescription struct {
	ID   uint   `gorm:"column:id;primaryKey;autoIncrement"`
	Name string `gorm:"column:name;type:text;not null;uniqueIndex"`
}
