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
	ErrMedicationNotFound   = errors.New("medication not found")
	ErrPrescriptionNotFound = errors.New("prescription not found")
	ErrEmptyPrescription    = errors.New("prescription has no items")
)

type PrescriptionUsecase interface {
	Create(ctx context.Context, req *dto.CreatePrescriptionRequest) (*dto.CreatePrescriptionResponse, error)
	GetByID(ctx context.Context, id int) (*dto.PrescriptionResponse, error)
	GetByPatient(ctx context.Context, patientUsername string) ([]dto.PrescriptionResponse, error)
	GetAllMedications(ctx context.Context) ([]dto.MedicationResponse, error)
}

type prescriptionUsecase struct {
	db               *gorm.DB
	log              *logrus.Logger
	prescriptionRepo repository.PrescriptionRepository
	medicationRepo   repository.MedicationRepository
	userRepo         repository.UserRepository
	doctorRepo       repository.DoctorRepository
	auditService     service.AuditService
}

func NewPrescriptionUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	prescriptionRepo repository.PrescriptionRepository,
	medicationRepo repository.MedicationRepository,
	userRepo repository.UserRepository,
	doctorRepo repository.DoctorRepository,
	auditService service.AuditService,
) PrescriptionUsecase {
	return &prescriptionUsecase{
		db:               db,
		log:              log,
		prescriptionRepo: prescriptionRepo,
		medicationRepo:   medicationRepo,
		userRepo:         userRepo,
		doctorRepo:       doctorRepo,
		auditService:     auditService,
	}
}

// priceItem carries one validated item with its price snapshot, ready
// to be persisted.
type pricedItem struct {
	data       dto.PrescriptionItemData
	unitPrice  decimal.Decimal
	totalPrice decimal.Decimal
}

// priceItems resolves each requested medication through lookup, snapshots
// its catalog price and computes line and grand totals. A single missing
// medication rejects the whole request.
func priceItems(items []dto.PrescriptionItemData, lookup func(medicationID int) (*entity.Medication, error)) ([]pricedItem, decimal.Decimal, error) {
	priced := make([]pricedItem, 0, len(items))
	totalAmount := decimal.Zero

	for _, item := range items {
		medication, err := lookup(item.MedicationID)
		if err != nil {
			return nil, decimal.Zero, err
		}
		if medication == nil {
			return nil, decimal.Zero, ErrMedicationNotFound
		}

		unitPrice := medication.Price
		totalPrice := unitPrice.Mul(decimal.NewFromInt(int64(item.Quantity)))
		totalAmount = totalAmount.Add(totalPrice)

		priced = append(priced, pricedItem{
			data:       item,
			unitPrice:  unitPrice,
			totalPrice: totalPrice,
		})
	}

	return priced, totalAmount, nil
}

// Create issues a prescription: every item's unit price is snapshotted
// from the catalog inside one transaction, and the prescription row
// plus all item rows commit together or not at all.
func (u *prescriptionUsecase) Create(ctx context.Context, req *dto.CreatePrescriptionRequest) (*dto.CreatePrescriptionResponse, error) {
	data := req.Data
	if len(data.Items) == 0 {
		return nil, ErrEmptyPrescription
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

	priced, totalAmount, err := priceItems(data.Items, func(medicationID int) (*entity.Medication, error) {
		return u.medicationRepo.FindByID(tx, medicationID)
	})
	if err != nil {
		if !errors.Is(err, ErrMedicationNotFound) {
			u.log.Warnf("Failed to price prescription items: %+v", err)
		}
		return nil, err
	}

	prescriptionDate := data.PrescriptionDate
	if prescriptionDate == "" {
		prescriptionDate = nowDateString()
	}

	prescription := &entity.Prescription{
		RecordID:         data.RecordID,
		PatientUsername:  data.PatientUsername,
		DoctorUsername:   data.DoctorUsername,
		PrescriptionDate: prescriptionDate,
		TotalAmount:      totalAmount,
		Status:           entity.PrescriptionStatusPending,
		Notes:            data.Notes,
	}

	if err := u.prescriptionRepo.Create(tx, prescription); err != nil {
		u.log.Warnf("Failed to create prescription: %+v", err)
		return nil, err
	}

	for _, item := range priced {
		prescriptionItem := &entity.PrescriptionItem{
			PrescriptionID: prescription.ID,
			MedicationID:   item.data.MedicationID,
			Quantity:       item.data.Quantity,
			Dosage:         item.data.Dosage,
			Frequency:      item.data.Frequency,
			Duration:       item.data.Duration,
			Instructions:   item.data.Instructions,
			UnitPrice:      item.unitPrice,
			TotalPrice:     item.totalPrice,
		}
		if err := u.prescriptionRepo.CreateItem(tx, prescriptionItem); err != nil {
			if isForeignKeyError(err, "medication") {
				return nil, ErrMedicationNotFound
			}
			u.log.Warnf("Failed to create prescription item: %+v", err)
			return nil, err
		}
	}

	// All items written: the prescription is ready for dispensing.
	if err := u.prescriptionRepo.UpdateStatus(tx, prescription.ID, entity.PrescriptionStatusDispensed); err != nil {
		u.log.Warnf("Failed to update prescription status: %+v", err)
		return nil, err
	}

	if err := u.auditService.LogCreate(tx, data.DoctorUsername, entity.AuditActionPrescriptionCreate, "prescription", strconv.Itoa(prescription.ID), map[string]interface{}{
		"patient":      data.PatientUsername,
		"record_id":    data.RecordID,
		"item_count":   len(priced),
		"total_amount": totalAmount.String(),
	}); err != nil {
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	u.log.Infof("Prescription created: id=%d, patient=%s, items=%d, total=%s",
		prescription.ID, data.PatientUsername, len(priced), totalAmount.String())

	return &dto.CreatePrescriptionResponse{
		PrescriptionID: prescription.ID,
		TotalAmount:    totalAmount.InexactFloat64(),
		Status:         string(entity.PrescriptionStatusDispensed),
	}, nil
}

func (u *prescriptionUsecase) GetByID(ctx context.Context, id int) (*dto.PrescriptionResponse, error) {
	prescription, err := u.prescriptionRepo.FindByID(u.db.WithContext(ctx), id)
	if err != nil {
		u.log.Warnf("Failed to find prescription %d: %+v", id, err)
		return nil, err
	}
	if prescription == nil {
		return nil, ErrPrescriptionNotFound
	}

	resp := converter.PrescriptionToResponse(prescription)
	u.annotateDepartment(ctx, resp)
	return resp, nil
}

func (u *prescriptionUsecase) GetByPatient(ctx context.Context, patientUsername string) ([]dto.PrescriptionResponse, error) {
	prescriptions, err := u.prescriptionRepo.FindByPatient(u.db.WithContext(ctx), patientUsername)
	if err != nil {
		u.log.Warnf("Failed to find prescriptions for patient %s: %+v", patientUsername, err)
		return nil, err
	}

	responses := converter.PrescriptionsToResponses(prescriptions)
	for i := range responses {
		u.annotateDepartment(ctx, &responses[i])
	}
	return responses, nil
}

func (u *prescriptionUsecase) GetAllMedications(ctx context.Context) ([]dto.MedicationResponse, error) {
	medications, err := u.medicationRepo.FindAll(u.db.WithContext(ctx))
	if err != nil {
		u.log.Warnf("Failed to list medications: %+v", err)
		return nil, err
	}
	return converter.MedicationsToResponses(medications), nil
}

// annotateDepartment fills in the issuing doctor's department when the
// doctor has a booking profile. Missing profiles are not an error.
func (u *prescriptionUsecase) annotateDepartment(ctx context.Context, resp *dto.PrescriptionResponse) {
	if resp == nil || resp.DoctorUsername == "" {
		return
	}
	doctor, err := u.doctorRepo.FindByUsername(u.db.WithContext(ctx), resp.DoctorUsername)
	if err != nil || doctor == nil {
		return
	}
	resp.Department = doctor.Department
}
