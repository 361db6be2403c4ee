package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product represents a product in the catalog.
type Product struct {
	ID          uint             `json:"id" gorm:"primaryKey"`
	Name        string           `json:"name" gorm:"type:varchar(20);not null"`
	Price       decimal.Decimal  `json:"price" gorm:"type:decimal(5,2);not null;index"`
	Rank        int              `json:"rank" gorm:"not null"`
	CategoryID  uint             `json:"category" gorm:"not null;index"`
	Category    *ProductCategory `json:"-" gorm:"constraint:OnDelete:CASCADE"`
	CreatedTime time.Time        `json:"created_time" gorm:"autoCreateTime"`
	UpdatedTime time.Time        `json:"updated_time" gorm:"autoUpdateTime"`
}
