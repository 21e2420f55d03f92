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

// Get all users
func GetUsers(ctx context.Context, db *gorm.DB) (*dto.UsersOutput, error) {
	resp := &dto.UsersOutput{Body: []models.User{}}

	if err := db.WithContext(ctx).Find(&resp.Body).Error; err != nil {
		return nil, err
	}

	return resp, nil
}

// Get a single user by ID
func GetUser(ctx context.Context, db *gorm.DB, id uint) (*dto.UserOutput, error) {
	resp := &dto.UserOutput{}

	if err := db.WithContext(ctx).First(&resp.Body, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, huma.NewError(http.StatusNotFound, "User not found")
		}
		return nil, err
	}

	return resp, nil
}

func CreateUser(ctx context.Context, db *gorm.DB, pub *rabbitmq.Publisher, body dto.UserBody) (*dto.UserOutput, error) {
	if body.Name == nil || body.Address == nil || body.Email == nil {
		return nil, huma.NewError(http.StatusBadRequest, "Missing required fields: name, address, email")
	}

	user := models.User{
		Name:    *body.Name,
		Address: *body.Address,
		Email:   *body.Email,
	}

	if err := db.WithContext(ctx).Create(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, huma.NewError(http.StatusBadRequest, "Email already exists")
		}
		return nil, err
	}

	if err := pub.Publish(rabbitmq.UserCreated, user); err != nil {
		log.Printf("Failed to publish user.created event: %v", err)
	}

	return &dto.UserOutput{Body: user}, nil
}

func UpdateUser(ctx context.Context, db *gorm.DB, pub *rabbitmq.Publisher, id uint, body dto.UserBody) (*dto.UserOutput, error) {
	var user models.User
	if err := db.WithContext(ctx).First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, huma.NewError(http.StatusNotFound, "User not found")
		}
		return nil, err
	}

	// Apply only the fields present in the request.
	updates := map[string]any{}
	if body.Name != nil {
		updates["name"] = *body.Name
	}
	if body.Address != nil {
		updates["address"] = *body.Address
	}
	if body.Email != nil {
		updates["email"] = *body.Email
	}

	if len(updates) > 0 {
		if err := db.WithContext(ctx).Model(&user).Updates(updates).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return nil, huma.NewError(http.StatusBadRequest, "Email already exists")
			}
			return nil, err
		}
	}

	if err := pub.Publish(rabbitmq.UserUpdated, user); err != nil {
		log.Printf("Failed to publish user.updated event: %v", err)
	}

	return &dto.UserOutput{Body: user}, nil
}

// DeleteUser removes the user together with its orders and their association
// rows in a single transaction, so no orphan order can survive the delete.
func DeleteUser(ctx context.Context, db *gorm.DB, pub *rabbitmq.Publisher, id uint) (*dto.MessageOutput, error) {
	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var user models.User
		if err := tx.First(&user, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return huma.NewError(http.StatusNotFound, "User not found")
			}
			return err
		}

		orderIDs := tx.Model(&models.Order{}).Select("id").Where("user_id = ?", id)
		if err := tx.Where("order_id IN (?)", orderIDs).Delete(&models.OrderProduct{}).Error; err != nil {
			return err
		}
		if err := tx.Where("user_id = ?", id).Delete(&models.Order{}).Error; err != nil {
			return err
		}
		return tx.Delete(&user).Error
	})
	if err != nil {
		return nil, err
	}

	if err := pub.Publish(rabbitmq.UserDeleted, map[string]uint{"id": id}); err != nil {
		log.Printf("Failed to publish user.deleted event: %v", err)
	}

	resp := &dto.MessageOutput{}
	resp.Body.Message = fmt.Sprintf("User %d deleted successfully", id)
	return resp, nil
}

// ----------------------
// Register routes with Huma
// ----------------------

func RegisterUsersRoutes(api huma.API, dbConn *gorm.DB, pub *rabbitmq.Publisher) {

	huma.Register(api, huma.Operation{
		OperationID: "get-users",
		Summary:     "Get all users",
		Method:      http.MethodGet,
		Path:        "/users",
		Tags:        []string{"users"},
	}, func(ctx context.Context, input *struct{}) (*dto.UsersOutput, error) {
		return GetUsers(ctx, dbConn)
	})

	huma.Register(api, huma.Operation{
		OperationID: "get-user",
		Summary:     "Get a user",
		Method:      http.MethodGet,
		Path:        "/users/{id}",
		Tags:        []string{"users"},
	}, func(ctx context.Context, input *struct {
		Id uint `path:"id"`
	}) (*dto.UserOutput, error) {
		return GetUser(ctx, dbConn, input.Id)
	})

	huma.Register(api, huma.Operation{
		OperationID:   "create-user",
		Summary:       "Create a user",
		Method:        http.MethodPost,
		DefaultStatus: http.StatusCreated,
		Path:          "/users",
		Tags:          []string{"users"},
	}, func(ctx context.Context, input *dto.UserCreateInput) (*dto.UserOutput, error) {
		return CreateUser(ctx, dbConn, pub, input.Body)
	})

	huma.Register(api, huma.Operation{
		OperationID: "update-user",
		Summary:     "Update a user",
		Method:      http.MethodPut,
		Path:        "/users/{id}",
		Tags:        []string{"users"},
	}, func(ctx context.Context, input *dto.UserUpdateInput) (*dto.UserOutput, error) {
		return UpdateUser(ctx, dbConn, pub, input.Id, input.Body)
	})

	huma.Register(api, huma.Operation{
		OperationID: "delete-user",
		Summary:     "Delete a user",
		Method:      http.MethodDelete,
		Path:        "/users/{id}",
		Tags:        []string{"users"},
	}, func(ctx context.Context, input *struct {
		Id uint `path:"id"`
	}) (*dto.MessageOutput, error) {
		return DeleteUser(ctx, dbConn, pub, input.Id)
	})
}
