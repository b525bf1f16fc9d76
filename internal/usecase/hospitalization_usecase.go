package usecase

import (
	"context"
	"errors"
	"strconv"

	"go-hospital-server/internal/converter"
	"go-hospital-server/internal/delivery/dto"
	"go-hospital-server/internal/domain/entity"
	"go-hospital-server/internal/domain/repository"
	"go-hospital-server/internal/service"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

var (
	ErrBedOccupied             = errors.New("bed is already occupied")
	ErrInvalidStatus           = errors.New("invalid hospitalization status")
	ErrHospitalizationNotFound = errors.New("hospitalization not found")
	ErrNotAdmitted             = errors.New("hospitalization is not in admitted status")
)

type HospitalizationUsecase interface {
	Create(ctx context.Context, req *dto.CreateHospitalizationRequest) (*dto.HospitalizationResponse, error)
	GetByPatient(ctx context.Context, patientUsername string) ([]dto.HospitalizationResponse, error)
	GetByDoctor(ctx context.Context, doctorUsername string) ([]dto.HospitalizationResponse, error)
	GetAll(ctx context.Context) ([]dto.HospitalizationResponse, error)
	UpdateStatus(ctx context.Context, req *dto.UpdateHospitalizationStatusRequest) (*dto.HospitalizationResponse, error)
}

type hospitalizationUsecase struct {
	db                  *gorm.DB
	log                 *logrus.Logger
	hospitalizationRepo repository.HospitalizationRepository
	userRepo            repository.UserRepository
	auditService        service.AuditService
}

func NewHospitalizationUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	hospitalizationRepo repository.HospitalizationRepository,
	userRepo repository.UserRepository,
	auditService service.AuditService,
) HospitalizationUsecase {
	return &hospitalizationUsecase{
		db:                  db,
		log:                 log,
		hospitalizationRepo: hospitalizationRepo,
		userRepo:            userRepo,
		auditService:        auditService,
	}
}

// Create admits a patient. The single-active-occupant-per-bed invariant
// is enforced by a partial unique index on bed_number where status is
// admitted, so two concurrent admissions to one bed cannot both commit.
func (u *hospitalizationUsecase) Create(ctx context.Context, req *dto.CreateHospitalizationRequest) (*dto.HospitalizationResponse, error) {
	data := req.Data

	status := entity.HospitalizationStatus(data.Status)
	if data.Status == "" {
		status = entity.HospitalizationStatusAdmitted
	}
	if !entity.ValidHospitalizationStatus(status) {
		return nil, ErrInvalidStatus
	}

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	patientExists, err := u.userRepo.ExistsByUsername(tx, data.PatientUsername)
	if err != nil {
		u.log.Warnf("Failed to check patient %s: %+v", data.PatientUsername, err)
		return nil, err
	}
	if !patientExists {
		return nil, ErrPatientNotFound
	}

	doctorExists, err := u.userRepo.ExistsByUsername(tx, data.DoctorUsername)
	if err != nil {
		u.log.Warnf("Failed to check doctor %s: %+v", data.DoctorUsername, err)
		return nil, err
	}
	if !doctorExists {
		return nil, ErrDoctorNotFound
	}

	hospitalization := &entity.Hospitalization{
		PatientUsername: data.PatientUsername,
		DoctorUsername:  data.DoctorUsername,
		AdmissionDate:   data.AdmissionDate,
		Ward:            data.Ward,
		BedNumber:       data.BedNumber,
		Diagnosis:       data.Diagnosis,
		TreatmentPlan:   data.TreatmentPlan,
		DailyCost:       decimal.NewFromFloat(data.DailyCost),
		Status:          status,
		Notes:           data.Notes,
	}

	if err := u.hospitalizationRepo.Create(tx, hospitalization); err != nil {
		if isDuplicateKeyError(err, "bed") {
			return nil, ErrBedOccupied
		}
		u.log.Warnf("Failed to create hospitalization: %+v", err)
		return nil, err
	}

	if err := u.auditService.LogCreate(tx, data.DoctorUsername, entity.AuditActionHospitalizationCreate, "hospitalization", strconv.Itoa(hospitalization.ID), map[string]interface{}{
		"patient": data.PatientUsername,
		"ward":    data.Ward,
		"bed":     data.BedNumber,
	}); err != nil {
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	u.log.Infof("Hospitalization created: id=%d, patient=%s, bed=%s", hospitalization.ID, data.PatientUsername, data.BedNumber)
	return converter.HospitalizationToResponse(hospitalization), nil
}

func (u *hospitalizationUsecase) GetByPatient(ctx context.Context, patientUsername string) ([]dto.HospitalizationResponse, error) {
	hospitalizations, err := u.hospitalizationRepo.FindByPatient(u.db.WithContext(ctx), patientUsername)
	if err != nil {
		u.log.Warnf("Failed to find hospitalizations for patient %s: %+v", patientUsername, err)
		return nil, err
	}
	return converter.HospitalizationsToResponses(hospitalizations), nil
}

func (u *hospitalizationUsecase) GetByDoctor(ctx context.Context, doctorUsername string) ([]dto.HospitalizationResponse, error) {
	hospitalizations, err := u.hospitalizationRepo.FindByDoctor(u.db.WithContext(ctx), doctorUsername)
	if err != nil {
		u.log.Warnf("Failed to find hospitalizations for doctor %s: %+v", doctorUsername, err)
		return nil, err
	}
	return converter.HospitalizationsToResponses(hospitalizations), nil
}

func (u *hospitalizationUsecase) GetAll(ctx context.Context) ([]dto.HospitalizationResponse, error) {
	hospitalizations, err := u.hospitalizationRepo.FindAll(u.db.WithContext(ctx))
	if err != nil {
		u.log.Warnf("Failed to list hospitalizations: %+v", err)
		return nil, err
	}
	return converter.HospitalizationsToResponses(hospitalizations), nil
}

// UpdateStatus moves an admitted record to discharged or transferred.
// The conditional update reports zero affected rows when the record is
// already terminal, which also prevents double-discharge races.
func (u *hospitalizationUsecase) UpdateStatus(ctx context.Context, req *dto.UpdateHospitalizationStatusRequest) (*dto.HospitalizationResponse, error) {
	status := entity.HospitalizationStatus(req.Status)
	if status != entity.HospitalizationStatusDischarged && status != entity.HospitalizationStatusTransferred {
		return nil, ErrInvalidStatus
	}

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	existing, err := u.hospitalizationRepo.FindByID(tx, req.HospitalizationID)
	if err != nil {
		u.log.Warnf("Failed to find hospitalization %d: %+v", req.HospitalizationID, err)
		return nil, err
	}
	if existing == nil {
		return nil, ErrHospitalizationNotFound
	}
	if !existing.CanTransitionTo(status) {
		return nil, ErrNotAdmitted
	}

	var dischargeDate *string
	if status == entity.HospitalizationStatusDischarged {
		date := req.DischargeDate
		if date == "" {
			date = nowDateString()
		}
		dischargeDate = &date
	}

	affected, err := u.hospitalizationRepo.TransitionStatus(tx, req.HospitalizationID, status, dischargeDate)
	if err != nil {
		u.log.Warnf("Failed to transition hospitalization %d: %+v", req.HospitalizationID, err)
		return nil, err
	}
	if affected == 0 {
		// Lost a race with a concurrent transition of the same record.
		return nil, ErrNotAdmitted
	}

	if err := u.auditService.LogUpdate(tx, existing.DoctorUsername, entity.AuditActionHospitalizationStatus, "hospitalization", strconv.Itoa(existing.ID), string(existing.Status), string(status)); err != nil {
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	existing.Status = status
	existing.DischargeDate = dischargeDate
	u.log.Infof("Hospitalization status updated: id=%d, status=%s", existing.ID, status)
	return converter.HospitalizationToResponse(existing), nil
}
