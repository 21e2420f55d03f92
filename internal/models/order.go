package models

import "time"

type Order struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	OrderDate time.Time `json:"order_date" gorm:"not null"`
	UserID    uint      `json:"user_id" gorm:"not null;index"`
	User      User      `json:"-" gorm:"foreignKey:UserID"`
	Products  []Product `json:"products" gorm:"many2many:order_products"`
}
