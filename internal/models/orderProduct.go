package models

// OrderProduct is the join row linking an order to a product. The composite
// primary key is the authoritative guard against duplicate associations.
type OrderProduct struct {
	OrderID   uint `json:"order_id" gorm:"primaryKey"`
	ProductID uint `json:"product_id" gorm:"primaryKey"`
}
