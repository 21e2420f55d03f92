package dto

import "github.com/yousafzeb-byte/Relational-Databases-API-Rest/internal/models"

type OrdersOutput struct {
	Body []models.Order
}

type OrderOutput struct {
	Body models.Order
}

type OrderCreateInput struct {
	Body struct {
		UserID    *uint   `json:"user_id,omitempty" doc:"Owning user"`
		OrderDate *string `json:"order_date,omitempty" doc:"ISO-8601 timestamp; defaults to the current UTC time"`
	}
}

type MessageOutput struct {
	Body struct {
		Message string `json:"message"`
	}
}
