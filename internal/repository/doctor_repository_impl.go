package repository

import (
	"errors"

	"go-hospital-server/internal/domain/entity"
	domainRepo "go-hospital-server/internal/domain/repository"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type doctorRepository struct{}

func NewDoctorRepository() domainRepo.DoctorRepository {
	return &doctorRepository{}
}

func (r *doctorRepository) Create(db *gorm.DB, doctor *entity.Doctor) error {
	return db.Create(doctor).Error
}

func (r *doctorRepository) FindAll(db *gorm.DB) ([]entity.Doctor, error) {
	var doctors []entity.Doctor
	err := db.Order("department, name").Find(&doctors).Error
	if err != nil {
		return nil, err
	}
	return doctors, nil
}

func (r *doctorRepository) FindByDepartment(db *gorm.DB, department string) ([]entity.Doctor, error) {
	var doctors []entity.Doctor
	err := db.Where("department = ?", department).Order("name").Find(&doctors).Error
	if err != nil {
		return nil, err
	}
	return doctors, nil
}

func (r *doctorRepository) FindByName(db *gorm.DB, name string) (*entity.Doctor, error) {
	var doctor entity.Doctor
	err := db.Where("name = ?", name).First(&doctor).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &doctor, nil
}

func (r *doctorRepository) FindByUsername(db *gorm.DB, username string) (*entity.Doctor, error) {
	var doctor entity.Doctor
	err := db.Where("username = ?", username).First(&doctor).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &doctor, nil
}

func (r *doctorRepository) FindByIDForUpdate(db *gorm.DB, id int) (*entity.Doctor, error) {
	var doctor entity.Doctor
	err := db.Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id = ?", id).
		First(&doctor).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &doctor, nil
}

func (r *doctorRepository) IncrementReserved(db *gorm.DB, id int) error {
	return db.Model(&entity.Doctor{}).
		Where("id = ?", id).
		UpdateColumn("reserved_patients", gorm.Expr("reserved_patients + 1")).Error
}
