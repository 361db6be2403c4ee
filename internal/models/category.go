package models

// ProductCategory groups products. Deleting a category removes its products.
type ProductCategory struct {
	ID   uint   `json:"id" gorm:"primaryKey"`
	Name string `json:"name" gorm:"type:varchar(20);not null"`
}
