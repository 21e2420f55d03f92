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
// Extracted CRUD Functions
// ----------------------

// Get all products
func GetProducts(ctx context.Context, db *gorm.DB) (*dto.ProductsOutput, error) {
	resp := &dto.ProductsOutput{Body: []models.Product{}}

	if err := db.WithContext(ctx).Find(&resp.Body).Error; err != nil {
		return nil, err
	}

	return resp, nil
}

// Get a single product by ID
func GetProduct(ctx context.Context, db *gorm.DB, id uint) (*dto.ProductOutput, error) {
	resp := &dto.ProductOutput{}

	if err := db.WithContext(ctx).First(&resp.Body, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, huma.NewError(http.StatusNotFound, "Product not found")
		}
		return nil, err
	}

	return resp, nil
}

func CreateProduct(ctx context.Context, db *gorm.DB, pub *rabbitmq.Publisher, body dto.ProductBody) (*dto.ProductOutput, error) {
	if body.ProductName == nil || body.Price == nil {
		return nil, huma.NewError(http.StatusBadRequest, "Missing required fields: product_name, price")
	}
	if *body.Price < 0 {
		return nil, huma.NewError(http.StatusBadRequest, "Price must be non-negative")
	}

	product := models.Product{
		ProductName: *body.ProductName,
		Price:       *body.Price,
	}

	if err := db.WithContext(ctx).Create(&product).Error; err != nil {
		return nil, err
	}

	if err := pub.Publish(rabbitmq.ProductCreated, product); err != nil {
		log.Printf("Failed to publish product.created event: %v", err)
	}

	return &dto.ProductOutput{Body: product}, nil
}

func UpdateProduct(ctx context.Context, db *gorm.DB, pub *rabbitmq.Publisher, id uint, body dto.ProductBody) (*dto.ProductOutput, error) {
	var product models.Product
	if err := db.WithContext(ctx).First(&product, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, huma.NewError(http.StatusNotFound, "Product not found")
		}
		return nil, err
	}

	updates := map[string]any{}
	if body.ProductName != nil {
		updates["product_name"] = *body.ProductName
	}
	if body.Price != nil {
		if *body.Price < 0 {
			return nil, huma.NewError(http.StatusBadRequest, "Price must be non-negative")
		}
		updates["price"] = *body.Price
	}

	if len(updates) > 0 {
		if err := db.WithContext(ctx).Model(&product).Updates(updates).Error; err != nil {
			return nil, err
		}
	}

	if err := pub.Publish(rabbitmq.ProductUpdated, product); err != nil {
		log.Printf("Failed to publish product.updated event: %v", err)
	}

	return &dto.ProductOutput{Body: product}, nil
}

// DeleteProduct removes the product and any association rows still pointing
// at it in one transaction. Orders that contained the product keep existing
// with it absent from their product list.
func DeleteProduct(ctx context.Context, db *gorm.DB, pub *rabbitmq.Publisher, id uint) (*dto.MessageOutput, error) {
	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var product models.Product
		if err := tx.First(&product, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return huma.NewError(http.StatusNotFound, "Product not found")
			}
			return err
		}

		if err := tx.Where("product_id = ?", id).Delete(&models.OrderProduct{}).Error; err != nil {
			return err
		}
		return tx.Delete(&product).Error
	})
	if err != nil {
		return nil, err
	}

	if err := pub.Publish(rabbitmq.ProductDeleted, map[string]uint{"id": id}); err != nil {
		log.Printf("Failed to publish product.deleted event: %v", err)
	}

	resp := &dto.MessageOutput{}
	resp.Body.Message = fmt.Sprintf("Product %d deleted successfully", id)
	return resp, nil
}

// ----------------------
// Register routes with Huma
// ----------------------

func RegisterProductsRoutes(api huma.API, dbConn *gorm.DB, pub *rabbitmq.Publisher) {

	huma.Register(api, huma.Operation{
		OperationID: "get-products",
		Summary:     "Get all products",
		Method:      http.MethodGet,
		Path:        "/products",
		Tags:        []string{"products"},
	}, func(ctx context.Context, input *struct{}) (*dto.ProductsOutput, error) {
		return GetProducts(ctx, dbConn)
	})

	huma.Register(api, huma.Operation{
		OperationID: "get-product",
		Summary:     "Get a product",
		Method:      http.MethodGet,
		Path:        "/products/{id}",
		Tags:        []string{"products"},
	}, func(ctx context.Context, input *struct {
		Id uint `path:"id"`
	}) (*dto.ProductOutput, error) {
		return GetProduct(ctx, dbConn, input.Id)
	})

	huma.Register(api, huma.Operation{
		OperationID:   "create-product",
		Summary:       "Create a product",
		Method:        http.MethodPost,
		DefaultStatus: http.StatusCreated,
		Path:          "/products",
		Tags:          []string{"products"},
	}, func(ctx context.Context, input *dto.ProductCreateInput) (*dto.ProductOutput, error) {
		return CreateProduct(ctx, dbConn, pub, input.Body)
	})

	huma.Register(api, huma.Operation{
		OperationID: "update-product",
		Summary:     "Update a product",
		Method:      http.MethodPut,
		Path:        "/products/{id}",
		Tags:        []string{"products"},
	}, func(ctx context.Context, input *dto.ProductUpdateInput) (*dto.ProductOutput, error) {
		return UpdateProduct(ctx, dbConn, pub, input.Id, input.Body)
	})

	huma.Register(api, huma.Operation{
		OperationID: "delete-product",
		Summary:     "Delete a product",
		Method:      http.MethodDelete,
		Path:        "/products/{id}",
		Tags:        []string{"products"},
	}, func(ctx context.Context, input *struct {
		Id uint `path:"id"`
	}) (*dto.MessageOutput, error) {
		return DeleteProduct(ctx, dbConn, pub, input.Id)
	})
}
