package models

type Product struct {
	ID          uint    `json:"id" gorm:"primaryKey"`
	ProductName string  `json:"product_name" gorm:"size:100;not null"`
	Price       float64 `json:"price" gorm:"not null"`
}
