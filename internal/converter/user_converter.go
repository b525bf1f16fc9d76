package converter

import (
	"go-hospital-server/internal/delivery/dto"
	"go-hospital-server/internal/domain/entity"
)

// UserToResponse converts a User entity to its DTO. The password hash
// never crosses this boundary.
func UserToResponse(user *entity.User) *dto.UserResponse {
	if user == nil {
		return nil
	}

	return &dto.UserResponse{
		Username:  user.Username,
		Role:      user.Role,
		Age:       user.Age,
		Phone:     user.Phone,
		Address:   user.Address,
		CreatedAt: user.CreatedAt,
	}
}
