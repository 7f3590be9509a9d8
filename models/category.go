package models

import "time"

// Category represents a named grouping of products.
// Names are unique across all categories; the unique index is the
// source of truth, the service-level check is an early exit only.
type Category struct {
	ID        uint      `gorm:"primaryKey"`
	Name      string    `gorm:"uniqueIndex;not null"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (c *Category) TableName() string {
	return "categories"
}
