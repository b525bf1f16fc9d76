package repository

import (
	"errors"

	"go-hospital-server/internal/domain/entity"
	domainRepo "go-hospital-server/internal/domain/repository"

	"gorm.io/gorm"
)

type hospitalizationRepository struct{}

func NewHospitalizationRepository() domainRepo.HospitalizationRepository {
	return &hospitalizationRepository{}
}

func (r *hospitalizationRepository) Create(db *gorm.DB, hospitalization *entity.Hospitalization) error {
	return db.Create(hospitalization).Error
}

func (r *hospitalizationRepository) FindByID(db *gorm.DB, id int) (*entity.Hospitalization, error) {
	var hospitalization entity.Hospitalization
	err := db.Where("id = ?", id).First(&hospitalization).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &hospitalization, nil
}

func (r *hospitalizationRepository) FindByPatient(db *gorm.DB, patientUsername string) ([]entity.Hospitalization, error) {
	var hospitalizations []entity.Hospitalization
	err := db.Where("patient_username = ?", patientUsername).
		Order("admission_date DESC").
		Find(&hospitalizations).Error
	if err != nil {
		return nil, err
	}
	return hospitalizations, nil
}

func (r *hospitalizationRepository) FindByDoctor(db *gorm.DB, doctorUsername string) ([]entity.Hospitalization, error) {
	var hospitalizations []entity.Hospitalization
	err := db.Where("doctor_username = ?", doctorUsername).
		Order("admission_date DESC").
		Find(&hospitalizations).Error
	if err != nil {
		return nil, err
	}
	return hospitalizations, nil
}

func (r *hospitalizationRepository) FindAll(db *gorm.DB) ([]entity.Hospitalization, error) {
	var hospitalizations []entity.Hospitalization
	err := db.Order("admission_date DESC").Find(&hospitalizations).Error
	if err != nil {
		return nil, err
	}
	return hospitalizations, nil
}

// TransitionStatus atomically moves an admitted record to a terminal
// status. The WHERE clause makes double transitions report zero rows
// instead of silently overwriting a terminal state.
func (r *hospitalizationRepository) TransitionStatus(db *gorm.DB, id int, status entity.HospitalizationStatus, dischargeDate *string) (int64, error) {
	updates := map[string]interface{}{"status": status}
	if dischargeDate != nil {
		updates["discharge_date"] = *dischargeDate
	}
	result := db.Model(&entity.Hospitalization{}).
		Where("id = ? AND status = ?", id, entity.HospitalizationStatusAdmitted).
		Updates(updates)
	return result.RowsAffected, result.Error
}
