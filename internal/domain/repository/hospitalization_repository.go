package repository

import (
	"go-hospital-server/internal/domain/entity"

	"gorm.io/gorm"
)

type HospitalizationRepository interface {
	Create(db *gorm.DB, hospitalization *entity.Hospitalization) error
	FindByID(db *gorm.DB, id int) (*entity.Hospitalization, error)
	FindByPatient(db *gorm.DB, patientUsername string) ([]entity.Hospitalization, error)
	FindByDoctor(db *gorm.DB, doctorUsername string) ([]entity.Hospitalization, error)
	FindAll(db *gorm.DB) ([]entity.Hospitalization, error)
	// TransitionStatus moves an admitted record to a terminal status.
	// Returns affected rows: 0 means the record was not admitted.
	TransitionStatus(db *gorm.DB, id int, status entity.HospitalizationStatus, dischargeDate *string) (int64, error)
}
