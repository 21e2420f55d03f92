package operation

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"gorm.io/gorm"

	"github.com/yousafzeb-byte/Relational-Databases-API-Rest/internal/dto"
	"github.com/yousafzeb-byte/Relational-Databases-API-Rest/internal/models"
	"github.com/yousafzeb-byte/Relational-Databases-API-Rest/internal/rabbitmq"
)

// ----------------------
// Order <-> Product association
// ----------------------

// findOrderAndProduct loads both entities, mapping a missing row to 404.
func findOrderAndProduct(tx *gorm.DB, orderID, productID uint) (*models.Order, *models.Product, error) {
	var order models.Order
	if err := tx.First(&order, orderID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, huma.NewError(http.StatusNotFound, "Order not found")
		}
		return nil, nil, err
	}

	var product models.Product
	if err := tx.First(&product, productID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, huma.NewError(http.StatusNotFound, "Product not found")
		}
		return nil, nil, err
	}

	return &order, &product, nil
}

// AddProductToOrder associates a product with an order. Adding a pair that
// is already present is rejected with a conflict, it is not a silent no-op.
// The pre-check supplies the common-case error; the composite primary key on
// order_products decides races, and its duplicate-key failure is mapped to
// the same conflict.
func AddProductToOrder(ctx context.Context, db *gorm.DB, pub *rabbitmq.Publisher, orderID, productID uint) (*dto.OrderOutput, error) {
	resp := &dto.OrderOutput{}

	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		order, _, err := findOrderAndProduct(tx, orderID, productID)
		if err != nil {
			return err
		}

		var existing models.OrderProduct
		err = tx.Where("order_id = ? AND product_id = ?", orderID, productID).First(&existing).Error
		if err == nil {
			return huma.NewError(http.StatusBadRequest, "Product already exists in this order")
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		pair := models.OrderProduct{OrderID: orderID, ProductID: productID}
		if err := tx.Create(&pair).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return huma.NewError(http.StatusBadRequest, "Product already exists in this order")
			}
			return err
		}

		if err := tx.Preload("Products").First(order, orderID).Error; err != nil {
			return err
		}
		resp.Body = *order
		return nil
	})
	if err != nil {
		return nil, err
	}

	if err := pub.Publish(rabbitmq.ProductAdded, models.OrderProduct{OrderID: orderID, ProductID: productID}); err != nil {
		log.Printf("Failed to publish order.product_added event: %v", err)
	}

	return resp, nil
}

// RemoveProductFromOrder dissociates a product from an order. A pair that
// was never associated is a distinct not-found from a missing entity.
func RemoveProductFromOrder(ctx context.Context, db *gorm.DB, pub *rabbitmq.Publisher, orderID, productID uint) (*dto.MessageOutput, error) {
	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if _, _, err := findOrderAndProduct(tx, orderID, productID); err != nil {
			return err
		}

		var pair models.OrderProduct
		err := tx.Where("order_id = ? AND product_id = ?", orderID, productID).First(&pair).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return huma.NewError(http.StatusNotFound, "Product not found in this order")
			}
			return err
		}

		return tx.Where("order_id = ? AND product_id = ?", orderID, productID).Delete(&models.OrderProduct{}).Error
	})
	if err != nil {
		return nil, err
	}

	if err := pub.Publish(rabbitmq.ProductRemoved, models.OrderProduct{OrderID: orderID, ProductID: productID}); err != nil {
		log.Printf("Failed to publish order.product_removed event: %v", err)
	}

	resp := &dto.MessageOutput{}
	resp.Body.Message = fmt.Sprintf("Product %d removed from order %d", productID, orderID)
	return resp, nil
}

// Get all products associated with an order
func GetOrderProducts(ctx context.Context, db *gorm.DB, orderID uint) (*dto.ProductsOutput, error) {
	var order models.Order
	if err := db.WithContext(ctx).Preload("Products").First(&order, orderID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, huma.NewError(http.StatusNotFound, "Order not found")
		}
		return nil, err
	}

	resp := &dto.ProductsOutput{Body: order.Products}
	if resp.Body == nil {
		resp.Body = []models.Product{}
	}
	return resp, nil
}

// ----------------------
// Register routes with Huma
// ----------------------

func registerAssociationRoutes(api huma.API, dbConn *gorm.DB, pub *rabbitmq.Publisher) {

	huma.Register(api, huma.Operation{
		OperationID: "add-product-to-order",
		Summary:     "Add a product to an order",
		Method:      http.MethodPut,
		Path:        "/orders/{orderId}/add_product/{productId}",
		Tags:        []string{"orders"},
	}, func(ctx context.Context, input *struct {
		OrderId   uint `path:"orderId"`
		ProductId uint `path:"productId"`
	}) (*dto.OrderOutput, error) {
		return AddProductToOrder(ctx, dbConn, pub, input.OrderId, input.ProductId)
	})

	huma.Register(api, huma.Operation{
		OperationID: "remove-product-from-order",
		Summary:     "Remove a product from an order",
		Method:      http.MethodDelete,
		Path:        "/orders/{orderId}/remove_product/{productId}",
		Tags:        []string{"orders"},
	}, func(ctx context.Context, input *struct {
		OrderId   uint `path:"orderId"`
		ProductId uint `path:"productId"`
	}) (*dto.MessageOutput, error) {
		return RemoveProductFromOrder(ctx, dbConn, pub, input.OrderId, input.ProductId)
	})

	huma.Register(api, huma.Operation{
		OperationID: "get-order-products",
		Summary:     "Get all products for an order",
		Method:      http.MethodGet,
		Path:        "/orders/{orderId}/products",
		Tags:        []string{"orders"},
	}, func(ctx context.Context, input *struct {
		OrderId uint `path:"orderId"`
	}) (*dto.ProductsOutput, error) {
		return GetOrderProducts(ctx, dbConn, input.OrderId)
	})
}
