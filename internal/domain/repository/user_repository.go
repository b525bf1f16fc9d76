package repository

import (
	"go-hospital-server/internal/domain/entity"

	"gorm.io/gorm"
)

type UserRepository interface {
	Create(db *gorm.DB, user *entity.User) error
	FindByUsername(db *gorm.DB, username string) (*entity.User, error)
	ExistsByUsername(db *gorm.DB, username string) (bool, error)
}
