package models

import "time"

// Wishlist is the single per-user list of products. No two of its products
// share a category.
type Wishlist struct {
	ID        uint              `json:"id" gorm:"primaryKey"`
	UserID    uint              `json:"user" gorm:"uniqueIndex;not null"`
	User      *User             `json:"-" gorm:"constraint:OnDelete:CASCADE"`
	Items     []WishlistProduct `json:"-" gorm:"constraint:OnDelete:CASCADE"`
	CreatedAt time.Time         `json:"created_at"`
}

// WishlistProduct is the wishlist <-> product association. Position keeps
// the order in which the products were submitted.
type WishlistProduct struct {
	WishlistID uint `gorm:"primaryKey"`
	ProductID  uint `gorm:"primaryKey;index"`
	Position   int  `gorm:"not null"`
}

// TableName overrides the default table name.
func (WishlistProduct) TableName() string {
	return "wishlist_products"
}

// ProductIDs returns the product ids in stored order. Items are expected to be
// loaded ordered by position.
func (w *Wishlist) ProductIDs() []uint {
	ids := make([]uint, 0, len(w.Items))
	for _, item := range w.Items {
		ids = append(ids, item.ProductID)
	}
	return ids
}
