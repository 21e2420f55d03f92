package models

type User struct {
	ID      uint    `json:"id" gorm:"primaryKey"`
	Name    string  `json:"name" gorm:"size:100;not null"`
	Address string  `json:"address" gorm:"size:200;not null"`
	Email   string  `json:"email" gorm:"size:120;uniqueIndex;not null"`
	Orders  []Order `json:"-" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
}
