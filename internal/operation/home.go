package operation

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/yousafzeb-byte/Relational-Databases-API-Rest/internal/dto"
)

// RegisterHomeRoute serves a static index of every endpoint at the root.
func RegisterHomeRoute(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "home",
		Summary:     "API index",
		Method:      http.MethodGet,
		Path:        "/",
		Tags:        []string{"home"},
	}, func(ctx context.Context, input *struct{}) (*dto.HomeOutput, error) {
		resp := &dto.HomeOutput{}
		resp.Body.Message = "Welcome to E-commerce API"
		resp.Body.Endpoints = map[string]map[string]string{
			"users": {
				"GET /users":         "Retrieve all users",
				"GET /users/{id}":    "Retrieve a user by ID",
				"POST /users":        "Create a new user",
				"PUT /users/{id}":    "Update a user by ID",
				"DELETE /users/{id}": "Delete a user by ID",
			},
			"products": {
				"GET /products":         "Retrieve all products",
				"GET /products/{id}":    "Retrieve a product by ID",
				"POST /products":        "Create a new product",
				"PUT /products/{id}":    "Update a product by ID",
				"DELETE /products/{id}": "Delete a product by ID",
			},
			"orders": {
				"POST /orders": "Create a new order",
				"PUT /orders/{orderId}/add_product/{productId}":       "Add a product to an order",
				"DELETE /orders/{orderId}/remove_product/{productId}": "Remove a product from an order",
				"GET /orders/user/{userId}":                           "Get all orders for a user",
				"GET /orders/{orderId}/products":                      "Get all products for an order",
			},
		}
		return resp, nil
	})
}
