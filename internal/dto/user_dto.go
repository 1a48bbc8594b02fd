package dto

import (
	"time"

	"github.com/primestaffing/recruiter-tracker/internal/models"
)

// UserCreateRequest captures the payload for creating an account.
type UserCreateRequest struct {
	Email          string   `json:"email" validate:"required,email"`
	Password       string   `json:"password" validate:"required,min=8,max=72"`
	FirstName      string   `json:"firstName" validate:"required,min=1,max=120"`
	LastName       string   `json:"lastName" validate:"required,min=1,max=120"`
	Role           string   `json:"role" validate:"omitempty,oneof=RECRUITER ADMIN"`
	CommissionRate *float64 `json:"commissionRate" validate:"omitempty,gte=0,lte=100"`
}

// UserUpdateRequest captures partial updates. Absent fields are left untouched.
type UserUpdateRequest struct {
	FirstName      *string       `json:"firstName" validate:"omitempty,min=1,max=120"`
	LastName       *string       `json:"lastName" validate:"omitempty,min=1,max=120"`
	Email          *string       `json:"email" validate:"omitempty,email"`
	Role           *string       `json:"role" validate:"omitempty,oneof=RECRUITER ADMIN"`
	CommissionRate NullableFloat `json:"commissionRate"`
	Status         *string       `json:"status" validate:"omitempty,oneof=ACTIVE INACTIVE"`
}

// UserResponse serializes an account without credentials.
type UserResponse struct {
	ID             uint      `json:"id"`
	Email          string    `json:"email"`
	FirstName      string    `json:"firstName"`
	LastName       string    `json:"lastName"`
	Role           string    `json:"role"`
	Status         string    `json:"status"`
	CommissionRate *float64  `json:"commissionRate"`
	CreatedAt      time.Time `json:"createdAt"`
}

// NewUserResponse converts a user model into a DTO.
func NewUserResponse(user models.User) UserResponse {
	var rate *float64
	if user.CommissionRate != nil {
		value := *user.CommissionRate
		rate = &value
	}

	return UserResponse{
		ID:             user.ID,
		Email:          user.Email,
		FirstName:      user.FirstName,
		LastName:       user.LastName,
		Role:           string(user.Role),
		Status:         string(user.Status),
		CommissionRate: rate,
		CreatedAt:      user.CreatedAt,
	}
}

// NewUserResponseSlice converts a list of users.
func NewUserResponseSlice(users []models.User) []UserResponse {
	result := make([]UserResponse, 0, len(users))
	for _, user := range users {
		result = append(result, NewUserResponse(user))
	}
	return result
}
