package operation

import (
	"context"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"gorm.io/gorm"

	"github.com/yousafzeb-byte/Relational-Databases-API-Rest/internal/dto"
	"github.com/yousafzeb-byte/Relational-Databases-API-Rest/internal/models"
	"github.com/yousafzeb-byte/Relational-Databases-API-Rest/internal/rabbitmq"
)

// Accepted order_date layouts, most specific first.
var orderDateLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

func parseOrderDate(value string) (time.Time, error) {
	for _, layout := range orderDateLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t, nil
		}
	}
	return time.Time{}, errors.New("unrecognized timestamp format")
}

// ----------------------
// Extracted CRUD Functions
// ----------------------

func CreateOrder(ctx context.Context, db *gorm.DB, pub *rabbitmq.Publisher, userID *uint, orderDate *string) (*dto.OrderOutput, error) {
	if userID == nil {
		return nil, huma.NewError(http.StatusBadRequest, "Missing required field: user_id")
	}

	var user models.User
	if err := db.WithContext(ctx).First(&user, *userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, huma.NewError(http.StatusNotFound, "User not found")
		}
		return nil, err
	}

	date := time.Now().UTC()
	if orderDate != nil {
		parsed, err := parseOrderDate(*orderDate)
		if err != nil {
			return nil, huma.NewError(http.StatusBadRequest, "Invalid date format. Use ISO format (YYYY-MM-DD HH:MM:SS)")
		}
		date = parsed
	}

	order := models.Order{
		OrderDate: date,
		UserID:    *userID,
	}

	if err := db.WithContext(ctx).Create(&order).Error; err != nil {
		return nil, err
	}

	// A fresh order has no associated products yet; keep the JSON array
	// non-null.
	order.Products = []models.Product{}

	if err := pub.Publish(rabbitmq.OrderCreated, order); err != nil {
		log.Printf("Failed to publish order.created event: %v", err)
	}

	return &dto.OrderOutput{Body: order}, nil
}

// Get all orders for a user, each with its products embedded
func GetUserOrders(ctx context.Context, db *gorm.DB, userID uint) (*dto.OrdersOutput, error) {
	var user models.User
	if err := db.WithContext(ctx).First(&user, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, huma.NewError(http.StatusNotFound, "User not found")
		}
		return nil, err
	}

	resp := &dto.OrdersOutput{Body: []models.Order{}}
	if err := db.WithContext(ctx).Preload("Products").Where("user_id = ?", userID).Find(&resp.Body).Error; err != nil {
		return nil, err
	}

	for i := range resp.Body {
		if resp.Body[i].Products == nil {
			resp.Body[i].Products = []models.Product{}
		}
	}

	return resp, nil
}

// ----------------------
// Register routes with Huma
// ----------------------

func RegisterOrdersRoutes(api huma.API, dbConn *gorm.DB, pub *rabbitmq.Publisher) {

	huma.Register(api, huma.Operation{
		OperationID:   "create-order",
		Summary:       "Create an order",
		Method:        http.MethodPost,
		DefaultStatus: http.StatusCreated,
		Path:          "/orders",
		Tags:          []string{"orders"},
	}, func(ctx context.Context, input *dto.OrderCreateInput) (*dto.OrderOutput, error) {
		return CreateOrder(ctx, dbConn, pub, input.Body.UserID, input.Body.OrderDate)
	})

	huma.Register(api, huma.Operation{
		OperationID: "get-user-orders",
		Summary:     "Get all orders for a user",
		Method:      http.MethodGet,
		Path:        "/orders/user/{userId}",
		Tags:        []string{"orders"},
	}, func(ctx context.Context, input *struct {
		UserId uint `path:"userId"`
	}) (*dto.OrdersOutput, error) {
		return GetUserOrders(ctx, dbConn, input.UserId)
	})

	registerAssociationRoutes(api, dbConn, pub)
}
