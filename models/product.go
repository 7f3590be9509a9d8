package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product represents a catalog item. Every product belongs to exactly
// one category; the reference is required and validated at the service
// layer before any write.
type Product struct {
	ID          uint            `gorm:"primaryKey"`
	Name        string          `gorm:"not null"`
	Description string
	Price       decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	Stock       int             `gorm:"not null"`
	CategoryID  uint            `gorm:"not null"`
	Category    Category        `gorm:"foreignKey:CategoryID"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (p *Product) TableName() string {
	return "products"
}
