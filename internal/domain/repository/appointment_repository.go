package repository

import (
	"go-hospital-server/internal/domain/entity"

	"gorm.io/gorm"
)

type AppointmentRepository interface {
	Create(db *gorm.DB, appointment *entity.Appointment) error
	FindByPatient(db *gorm.DB, patientUsername string) ([]entity.Appointment, error)
	FindByDedupToken(db *gorm.DB, token string) (*entity.Appointment, error)
}
