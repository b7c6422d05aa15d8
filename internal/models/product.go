// internal/models/product.go
package models

import (
	"github.com/shopspring/decimal"
)

// Product is a catalog entry. Slug is the public identifier.
type Product struct {
	ID          uint            `json:"id" gorm:"primaryKey"`
	Name        string          `json:"name" gorm:"size:200;not null"`
	Slug        string          `json:"slug" gorm:"size:200;not null;uniqueIndex"`
	Price       decimal.Decimal `json:"price" gorm:"type:decimal(10,2);not null"`
	ImageURL    *string         `json:"image_url" gorm:"size:500"`
	Description *string         `json:"description" gorm:"type:text"`
	Category    *string         `json:"category" gorm:"size:100"`
	// The column defaults to true in the database (see database.RunMigrations);
	// the gorm tag carries no default so that false is written on insert.
	InStock     bool            `json:"in_stock" gorm:"not null"`
}
