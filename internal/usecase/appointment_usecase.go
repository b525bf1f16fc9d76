package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"strconv"
	"time"

	"go-hospital-server/internal/converter"
	"go-hospital-server/internal/delivery/dto"
	"go-hospital-server/internal/domain/entity"
	"go-hospital-server/internal/domain/repository"
	"go-hospital-server/internal/service"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

var (
	ErrDoctorNotFound    = errors.New("doctor not found")
	ErrPatientNotFound   = errors.New("patient not found")
	ErrDoctorFullyBooked = errors.New("doctor is fully booked")
	ErrBookingInFlight   = errors.New("a booking with this token is still in progress")
)

type AppointmentUsecase interface {
	GetAllDoctors(ctx context.Context) ([]dto.DoctorResponse, error)
	GetDoctorsByDepartment(ctx context.Context, department string) ([]dto.DoctorResponse, error)
	BookDoctor(ctx context.Context, req *dto.BookDoctorRequest) (*dto.AppointmentResponse, error)
	GetAppointmentsByPatient(ctx context.Context, username string) ([]dto.AppointmentResponse, error)
}

type appointmentUsecase struct {
	db              *gorm.DB
	log             *logrus.Logger
	doctorRepo      repository.DoctorRepository
	appointmentRepo repository.AppointmentRepository
	userRepo        repository.UserRepository
	idempotency     *service.IdempotencyService
	auditService    service.AuditService
}

func NewAppointmentUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	doctorRepo repository.DoctorRepository,
	appointmentRepo repository.AppointmentRepository,
	userRepo repository.UserRepository,
	idempotency *service.IdempotencyService,
	auditService service.AuditService,
) AppointmentUsecase {
	return &appointmentUsecase{
		db:              db,
		log:             log,
		doctorRepo:      doctorRepo,
		appointmentRepo: appointmentRepo,
		userRepo:        userRepo,
		idempotency:     idempotency,
		auditService:    auditService,
	}
}

func (u *appointmentUsecase) GetAllDoctors(ctx context.Context) ([]dto.DoctorResponse, error) {
	doctors, err := u.doctorRepo.FindAll(u.db.WithContext(ctx))
	if err != nil {
		u.log.Warnf("Failed to list doctors: %+v", err)
		return nil, err
	}
	return converter.DoctorsToResponses(doctors), nil
}

func (u *appointmentUsecase) GetDoctorsByDepartment(ctx context.Context, department string) ([]dto.DoctorResponse, error) {
	doctors, err := u.doctorRepo.FindByDepartment(u.db.WithContext(ctx), department)
	if err != nil {
		u.log.Warnf("Failed to list doctors for department %s: %+v", department, err)
		return nil, err
	}
	return converter.DoctorsToResponses(doctors), nil
}

// BookDoctor books an appointment.
//
// Flow:
// 1. Claim the dedup token in Redis; a replay returns the cached outcome
// 2. Lock the doctor row FOR UPDATE so capacity checks cannot race
// 3. Verify the patient exists, check remaining capacity
// 4. Insert the appointment; the dedup_token unique constraint is the
//    durable dedup authority if the Redis cache was lost
// 5. Commit, then cache the outcome for later replays
func (u *appointmentUsecase) BookDoctor(ctx context.Context, req *dto.BookDoctorRequest) (*dto.AppointmentResponse, error) {
	token := req.DedupToken
	if token == "" {
		// Clients that do not retry get a server-generated token.
		token = uuid.NewString()
	}

	cached, err := u.idempotency.Claim(ctx, token)
	if err != nil {
		if errors.Is(err, service.ErrRequestInFlight) {
			return nil, ErrBookingInFlight
		}
		u.log.Warnf("Failed Redis dedup claim for token %s: %+v", token, err)
		return nil, err
	}
	if cached != nil {
		var resp dto.AppointmentResponse
		if err := json.Unmarshal(cached, &resp); err == nil {
			u.log.Infof("Booking replayed from dedup cache: token=%s, appointment=%d", token, resp.ID)
			return &resp, nil
		}
		// Corrupt cache entry: fall through and let the DB constraint decide.
	}

	resp, err := u.bookInTx(ctx, req, token)
	if err != nil {
		u.idempotency.Release(context.WithoutCancel(ctx), token)
		return nil, err
	}

	if outcome, marshalErr := json.Marshal(resp); marshalErr == nil {
		if storeErr := u.idempotency.StoreOutcome(context.WithoutCancel(ctx), token, outcome); storeErr != nil {
			// Non-fatal: the dedup_token unique constraint still holds.
			u.log.Warnf("Failed to cache booking outcome for token %s: %+v", token, storeErr)
		}
	}

	return resp, nil
}

func (u *appointmentUsecase) bookInTx(ctx context.Context, req *dto.BookDoctorRequest, token string) (*dto.AppointmentResponse, error) {
	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	doctor, err := u.resolveDoctorForUpdate(tx, req)
	if err != nil {
		return nil, err
	}

	patientExists, err := u.userRepo.ExistsByUsername(tx, req.PatientName)
	if err != nil {
		u.log.Warnf("Failed to check patient %s: %+v", req.PatientName, err)
		return nil, err
	}
	if !patientExists {
		return nil, ErrPatientNotFound
	}

	if doctor.RemainingSlots() <= 0 {
		return nil, ErrDoctorFullyBooked
	}

	appointment := &entity.Appointment{
		PatientUsername: req.PatientName,
		DoctorID:        doctor.ID,
		DoctorName:      doctor.Name,
		RequestedAt:     time.Now().UTC(),
		Status:          entity.AppointmentStatusBooked,
		DedupToken:      token,
	}

	if err := u.appointmentRepo.Create(tx, appointment); err != nil {
		if isDuplicateKeyError(err, "dedup_token") {
			// Redis lost the claim but the row exists: return the original.
			return u.findOriginalBooking(ctx, token)
		}
		u.log.Warnf("Failed to create appointment: %+v", err)
		return nil, err
	}

	if err := u.doctorRepo.IncrementReserved(tx, doctor.ID); err != nil {
		u.log.Warnf("Failed to increment reserved count for doctor %d: %+v", doctor.ID, err)
		return nil, err
	}

	if err := u.auditService.LogCreate(tx, req.PatientName, entity.AuditActionAppointmentBook, "appointment", strconv.Itoa(appointment.ID), map[string]interface{}{
		"doctor_id":   doctor.ID,
		"doctor_name": doctor.Name,
		"dedup_token": token,
	}); err != nil {
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	u.log.Infof("Appointment booked: id=%d, doctor=%s, patient=%s", appointment.ID, doctor.Name, req.PatientName)
	appointment.Doctor = *doctor
	return converter.AppointmentToResponse(appointment), nil
}

func (u *appointmentUsecase) resolveDoctorForUpdate(tx *gorm.DB, req *dto.BookDoctorRequest) (*entity.Doctor, error) {
	if req.DoctorID > 0 {
		doctor, err := u.doctorRepo.FindByIDForUpdate(tx, req.DoctorID)
		if err != nil {
			u.log.Warnf("Failed to find doctor %d: %+v", req.DoctorID, err)
			return nil, err
		}
		if doctor == nil {
			return nil, ErrDoctorNotFound
		}
		return doctor, nil
	}

	if req.DoctorName == "" {
		return nil, ErrDoctorNotFound
	}

	doctor, err := u.doctorRepo.FindByName(tx, req.DoctorName)
	if err != nil {
		u.log.Warnf("Failed to find doctor %q: %+v", req.DoctorName, err)
		return nil, err
	}
	if doctor == nil {
		return nil, ErrDoctorNotFound
	}
	// Re-read under lock now that the id is known.
	return u.doctorRepo.FindByIDForUpdate(tx, doctor.ID)
}

func (u *appointmentUsecase) findOriginalBooking(ctx context.Context, token string) (*dto.AppointmentResponse, error) {
	appointment, err := u.appointmentRepo.FindByDedupToken(u.db.WithContext(ctx), token)
	if err != nil {
		return nil, err
	}
	if appointment == nil {
		return nil, ErrDoctorNotFound
	}
	return converter.AppointmentToResponse(appointment), nil
}

func (u *appointmentUsecase) GetAppointmentsByPatient(ctx context.Context, username string) ([]dto.AppointmentResponse, error) {
	appointments, err := u.appointmentRepo.FindByPatient(u.db.WithContext(ctx), username)
	if err != nil {
		u.log.Warnf("Failed to find appointments for patient %s: %+v", username, err)
		return nil, err
	}
	return converter.AppointmentsToResponses(appointments), nil
}
