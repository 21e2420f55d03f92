package dto

import "github.com/yousafzeb-byte/Relational-Databases-API-Rest/internal/models"

type ProductsOutput struct {
	Body []models.Product
}

type ProductOutput struct {
	Body models.Product
}

type ProductBody struct {
	ProductName *string  `json:"product_name,omitempty" maxLength:"100" doc:"Display name"`
	Price       *float64 `json:"price,omitempty" doc:"Unit price, non-negative"`
}

type ProductCreateInput struct {
	Body ProductBody
}

type ProductUpdateInput struct {
	Id   uint `path:"id"`
	Body ProductBody
}
