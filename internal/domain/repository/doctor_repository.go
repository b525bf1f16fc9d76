package repository

import (
	"go-hospital-server/internal/domain/entity"

	"gorm.io/gorm"
)

type DoctorRepository interface {
	Create(db *gorm.DB, doctor *entity.Doctor) error
	FindAll(db *gorm.DB) ([]entity.Doctor, error)
	FindByDepartment(db *gorm.DB, department string) ([]entity.Doctor, error)
	FindByName(db *gorm.DB, name string) (*entity.Doctor, error)
	FindByUsername(db *gorm.DB, username string) (*entity.Doctor, error)
	// FindByIDForUpdate locks the doctor row for the duration of the
	// enclosing transaction so capacity checks cannot race.
	FindByIDForUpdate(db *gorm.DB, id int) (*entity.Doctor, error)
	IncrementReserved(db *gorm.DB, id int) error
}
