package repository

import (
	"errors"

	"go-hospital-server/internal/domain/entity"
	domainRepo "go-hospital-server/internal/domain/repository"

	"gorm.io/gorm"
)

type prescriptionRepository struct{}

func NewPrescriptionRepository() domainRepo.PrescriptionRepository {
	return &prescriptionRepository{}
}

func (r *prescriptionRepository) Create(db *gorm.DB, prescription *entity.Prescription) error {
	return db.Omit("Items").Create(prescription).Error
}

func (r *prescriptionRepository) CreateItem(db *gorm.DB, item *entity.PrescriptionItem) error {
	return db.Create(item).Error
}

func (r *prescriptionRepository) FindByID(db *gorm.DB, id int) (*entity.Prescription, error) {
	var prescription entity.Prescription
	err := db.Preload("Items", func(db *gorm.DB) *gorm.DB {
		return db.Order("prescription_items.id")
	}).Preload("Items.Medication").
		Where("id = ?", id).
		First(&prescription).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &prescription, nil
}

func (r *prescriptionRepository) FindByPatient(db *gorm.DB, patientUsername string) ([]entity.Prescription, error) {
	var prescriptions []entity.Prescription
	err := db.Preload("Items", func(db *gorm.DB) *gorm.DB {
		return db.Order("prescription_items.id")
	}).Preload("Items.Medication").
		Where("patient_username = ?", patientUsername).
		Order("prescription_date DESC").
		Find(&prescriptions).Error
	if err != nil {
		return nil, err
	}
	return prescriptions, nil
}

func (r *prescriptionRepository) UpdateStatus(db *gorm.DB, id int, status entity.PrescriptionStatus) error {
	return db.Model(&entity.Prescription{}).
		Where("id = ?", id).
		Update("status", status).Error
}

type medicationRepository struct{}

func NewMedicationRepository() domainRepo.MedicationRepository {
	return &medicationRepository{}
}

func (r *medicationRepository) FindByID(db *gorm.DB, id int) (*entity.Medication, error) {
	var medication entity.Medication
	err := db.Where("id = ?", id).First(&medication).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &medication, nil
}

func (r *medicationRepository) FindAll(db *gorm.DB) ([]entity.Medication, error) {
	var medications []entity.Medication
	err := db.Order("id").Find(&medications).Error
	if err != nil {
		return nil, err
	}
	return medications, nil
}
