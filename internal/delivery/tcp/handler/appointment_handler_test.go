package handler

import (
	"context"
	"testing"

	"go-hospital-server/internal/delivery/dto"
	"go-hospital-server/internal/usecase"
	"go-hospital-server/pkg/validator"
)

type fakeAppointmentUsecase struct {
	bookErr error
	gotBook *dto.BookDoctorRequest
}

func (f *fakeAppointmentUsecase) GetAllDoctors(context.Context) ([]dto.DoctorResponse, error) {
	return []dto.DoctorResponse{{DoctorID: 1, Name: "Dr. Chen", Department: "Cardiology"}}, nil
}

func (f *fakeAppointmentUsecase) GetDoctorsByDepartment(_ context.Context, department string) ([]dto.DoctorResponse, error) {
	if department != "Cardiology" {
		return nil, nil
	}
	return []dto.DoctorResponse{{DoctorID: 1, Name: "Dr. Chen", Department: department}}, nil
}

func (f *fakeAppointmentUsecase) BookDoctor(_ context.Context, req *dto.BookDoctorRequest) (*dto.AppointmentResponse, error) {
	f.gotBook = req
	if f.bookErr != nil {
		return nil, f.bookErr
	}
	return &dto.AppointmentResponse{ID: 7, PatientUsername: req.PatientName, DoctorID: req.DoctorID}, nil
}

func (f *fakeAppointmentUsecase) GetAppointmentsByPatient(context.Context, string) ([]dto.AppointmentResponse, error) {
	return nil, nil
}

func TestAppointmentHandlerGetAllDoctors(t *testing.T) {
	h := NewAppointmentHandler(&fakeAppointmentUsecase{}, validator.NewValidator())

	resp := h.GetAllDoctors(context.Background(), nil)
	if !resp.Success {
		t.Fatalf("expected success, got error %q", resp.Error)
	}
	if resp.Type != "doctors_response" {
		t.Fatalf("expected doctors_response, got %q", resp.Type)
	}
}

func TestAppointmentHandlerGetDoctorsByDepartment(t *testing.T) {
	h := NewAppointmentHandler(&fakeAppointmentUsecase{}, validator.NewValidator())

	resp := h.GetDoctorsByDepartment(context.Background(), []byte(`{"department":"Cardiology"}`))
	if !resp.Success {
		t.Fatalf("expected success, got error %q", resp.Error)
	}

	resp = h.GetDoctorsByDepartment(context.Background(), []byte(`{}`))
	if resp.Success {
		t.Fatal("expected validation failure for missing department")
	}
	if resp.Type != "doctors_response" {
		t.Fatalf("failures must keep the shared type name, got %q", resp.Type)
	}
}

func TestAppointmentHandlerBookDoctor(t *testing.T) {
	fake := &fakeAppointmentUsecase{}
	h := NewAppointmentHandler(fake, validator.NewValidator())

	resp := h.BookDoctor(context.Background(), []byte(`{"doctorId":1,"patientName":"alice","uuid":"tok-1"}`))
	if !resp.Success {
		t.Fatalf("expected success, got error %q", resp.Error)
	}
	if fake.gotBook == nil || fake.gotBook.DedupToken != "tok-1" {
		t.Fatalf("dedup token not carried through: %+v", fake.gotBook)
	}
}

func TestAppointmentHandlerBookDoctorDomainErrors(t *testing.T) {
	for _, domainErr := range []error{
		usecase.ErrDoctorNotFound,
		usecase.ErrPatientNotFound,
		usecase.ErrDoctorFullyBooked,
		usecase.ErrBookingInFlight,
	} {
		h := NewAppointmentHandler(&fakeAppointmentUsecase{bookErr: domainErr}, validator.NewValidator())
		resp := h.BookDoctor(context.Background(), []byte(`{"doctorId":1,"patientName":"alice"}`))
		if resp.Success {
			t.Fatalf("expected failure for %v", domainErr)
		}
		if resp.Error != domainErr.Error() {
			t.Fatalf("expected %q, got %q", domainErr.Error(), resp.Error)
		}
	}
}

func TestAppointmentHandlerBookDoctorRequiresPatient(t *testing.T) {
	fake := &fakeAppointmentUsecase{}
	h := NewAppointmentHandler(fake, validator.NewValidator())

	resp := h.BookDoctor(context.Background(), []byte(`{"doctorId":1}`))
	if resp.Success {
		t.Fatal("expected validation failure for missing patient name")
	}
	if fake.gotBook != nil {
		t.Fatal("invalid request must not reach the usecase")
	}
}
