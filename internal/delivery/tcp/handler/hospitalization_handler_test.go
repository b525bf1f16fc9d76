package handler

import (
	"context"
	"testing"

	"go-hospital-server/internal/delivery/dto"
	"go-hospital-server/internal/usecase"
	"go-hospital-server/pkg/validator"
)

type fakeHospitalizationUsecase struct {
	createErr error
	updateErr error
	gotCreate *dto.CreateHospitalizationRequest
	gotUpdate *dto.UpdateHospitalizationStatusRequest
}

func (f *fakeHospitalizationUsecase) Create(_ context.Context, req *dto.CreateHospitalizationRequest) (*dto.HospitalizationResponse, error) {
	f.gotCreate = req
	if f.createErr != nil {
		return nil, f.createErr
	}
	return &dto.HospitalizationResponse{ID: 3, BedNumber: req.Data.BedNumber, Status: "admitted"}, nil
}

func (f *fakeHospitalizationUsecase) GetByPatient(context.Context, string) ([]dto.HospitalizationResponse, error) {
	return []dto.HospitalizationResponse{{ID: 3}}, nil
}

func (f *fakeHospitalizationUsecase) GetByDoctor(context.Context, string) ([]dto.HospitalizationResponse, error) {
	return nil, nil
}

func (f *fakeHospitalizationUsecase) GetAll(context.Context) ([]dto.HospitalizationResponse, error) {
	return nil, nil
}

func (f *fakeHospitalizationUsecase) UpdateStatus(_ context.Context, req *dto.UpdateHospitalizationStatusRequest) (*dto.HospitalizationResponse, error) {
	f.gotUpdate = req
	if f.updateErr != nil {
		return nil, f.updateErr
	}
	return &dto.HospitalizationResponse{ID: req.HospitalizationID, Status: req.Status}, nil
}

const createHospitalizationBody = `{"data":{"patient_username":"alice","doctor_username":"dr_chen","admission_date":"2025-03-01","ward":"Cardiology","bed_number":"A-101","daily_cost":120.5}}`

func TestHospitalizationHandlerCreate(t *testing.T) {
	fake := &fakeHospitalizationUsecase{}
	h := NewHospitalizationHandler(fake, validator.NewValidator())

	resp := h.Create(context.Background(), []byte(createHospitalizationBody))
	if !resp.Success {
		t.Fatalf("expected success, got error %q", resp.Error)
	}
	if fake.gotCreate == nil || fake.gotCreate.Data.BedNumber != "A-101" {
		t.Fatalf("request did not reach the usecase: %+v", fake.gotCreate)
	}
}

func TestHospitalizationHandlerCreateMissingFields(t *testing.T) {
	fake := &fakeHospitalizationUsecase{}
	h := NewHospitalizationHandler(fake, validator.NewValidator())

	resp := h.Create(context.Background(), []byte(`{"data":{"patient_username":"alice"}}`))
	if resp.Success {
		t.Fatal("expected validation failure")
	}
	if fake.gotCreate != nil {
		t.Fatal("invalid request must not reach the usecase")
	}
}

func TestHospitalizationHandlerCreateBedOccupied(t *testing.T) {
	h := NewHospitalizationHandler(&fakeHospitalizationUsecase{createErr: usecase.ErrBedOccupied}, validator.NewValidator())

	resp := h.Create(context.Background(), []byte(createHospitalizationBody))
	if resp.Success {
		t.Fatal("expected failure")
	}
	if resp.Error != usecase.ErrBedOccupied.Error() {
		t.Fatalf("expected bed occupied error, got %q", resp.Error)
	}
}

func TestHospitalizationHandlerGetByPatient(t *testing.T) {
	h := NewHospitalizationHandler(&fakeHospitalizationUsecase{}, validator.NewValidator())

	resp := h.GetByPatient(context.Background(), []byte(`{"patient_username":"alice"}`))
	if !resp.Success {
		t.Fatalf("expected success, got error %q", resp.Error)
	}
	if resp.Type != "hospitalizations_response" {
		t.Fatalf("expected hospitalizations_response, got %q", resp.Type)
	}

	resp = h.GetByPatient(context.Background(), []byte(`{}`))
	if resp.Success {
		t.Fatal("expected validation failure for missing patient username")
	}
}

func TestHospitalizationHandlerUpdateStatus(t *testing.T) {
	fake := &fakeHospitalizationUsecase{}
	h := NewHospitalizationHandler(fake, validator.NewValidator())

	resp := h.UpdateStatus(context.Background(), []byte(`{"hospitalization_id":3,"status":"discharged"}`))
	if !resp.Success {
		t.Fatalf("expected success, got error %q", resp.Error)
	}
	if fake.gotUpdate == nil || fake.gotUpdate.Status != "discharged" {
		t.Fatalf("request did not reach the usecase: %+v", fake.gotUpdate)
	}

	// "admitted" is not a legal target state.
	resp = h.UpdateStatus(context.Background(), []byte(`{"hospitalization_id":3,"status":"admitted"}`))
	if resp.Success {
		t.Fatal("expected validation failure for admitted target")
	}
}

func TestHospitalizationHandlerUpdateStatusNotAdmitted(t *testing.T) {
	h := NewHospitalizationHandler(&fakeHospitalizationUsecase{updateErr: usecase.ErrNotAdmitted}, validator.NewValidator())

	resp := h.UpdateStatus(context.Background(), []byte(`{"hospitalization_id":3,"status":"transferred"}`))
	if resp.Success {
		t.Fatal("expected failure")
	}
	if resp.Error != usecase.ErrNotAdmitted.Error() {
		t.Fatalf("expected not admitted error, got %q", resp.Error)
	}
}
