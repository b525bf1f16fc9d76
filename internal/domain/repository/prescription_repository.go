package repository

import (
	"go-hospital-server/internal/domain/entity"

	"gorm.io/gorm"
)

type PrescriptionRepository interface {
	Create(db *gorm.DB, prescription *entity.Prescription) error
	CreateItem(db *gorm.DB, item *entity.PrescriptionItem) error
	FindByID(db *gorm.DB, id int) (*entity.Prescription, error)
	FindByPatient(db *gorm.DB, patientUsername string) ([]entity.Prescription, error)
	UpdateStatus(db *gorm.DB, id int, status entity.PrescriptionStatus) error
}

type MedicationRepository interface {
	FindByID(db *gorm.DB, id int) (*entity.Medication, error)
	FindAll(db *gorm.DB) ([]entity.Medication, error)
}
