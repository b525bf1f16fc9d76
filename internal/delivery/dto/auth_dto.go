package dto

import "time"

// Request DTOs

type RegisterRequest struct {
	Username string `json:"username" validate:"required,max=100"`
	Password string `json:"password" validate:"required"`
	Role     string `json:"role" validate:"required,oneof=patient doctor admin"`
	Age      int    `json:"age" validate:"gte=0,lte=150"`
	Phone    string `json:"phone" validate:"max=20"`
	Address  string `json:"address" validate:"max=500"`
}

type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// Response DTOs

type UserResponse struct {
	Username  string    `json:"username"`
	Role      string    `json:"role"`
	Age       int       `json:"age"`
	Phone     string    `json:"phone,omitempty"`
	Address   string    `json:"address,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

type LoginResponse struct {
	Username string `json:"username"`
	Role     string `json:"role"`
}
