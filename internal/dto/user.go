package dto

import "github.com/yousafzeb-byte/Relational-Databases-API-Rest/internal/models"

type UsersOutput struct {
	Body []models.User
}

type UserOutput struct {
	Body models.User
}

// UserBody carries every user field as optional; create checks presence so
// missing fields surface as 400 rather than schema-level 422, and update
// applies only the fields that are set.
type UserBody struct {
	Name    *string `json:"name,omitempty" maxLength:"100" doc:"Full name"`
	Address *string `json:"address,omitempty" maxLength:"200" doc:"Postal address"`
	Email   *string `json:"email,omitempty" maxLength:"120" format:"email" doc:"Email address, unique across users"`
}

type UserCreateInput struct {
	Body UserBody
}

type UserUpdateInput struct {
	Id   uint `path:"id"`
	Body UserBody
}
