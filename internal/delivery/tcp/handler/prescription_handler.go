package handler

import (
	"context"
	"encoding/json"
	"errors"

	"go-hospital-server/internal/delivery/dto"
	"go-hospital-server/internal/usecase"
	"go-hospital-server/pkg/response"
	"go-hospital-server/pkg/validator"
)

type PrescriptionHandler struct {
	prescriptionUsecase usecase.PrescriptionUsecase
	validator           *validator.CustomValidator
}

func NewPrescriptionHandler(prescriptionUsecase usecase.PrescriptionUsecase, validator *validator.CustomValidator) *PrescriptionHandler {
	return &PrescriptionHandler{
		prescriptionUsecase: prescriptionUsecase,
		validator:           validator,
	}
}

// Create handles the "create_prescription" action
func (h *PrescriptionHandler) Create(ctx context.Context, payload []byte) *response.Response {
	var req dto.CreatePrescriptionRequest
	if err := json.Unmarshal(payload, &req); err != nil {
		return response.Failure("invalid request body")
	}

	if err := h.validator.Validate(&req.Data); err != nil {
		return response.Failure(h.validator.FormatValidationError(err))
	}

	result, err := h.prescriptionUsecase.Create(ctx, &req)
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrPatientNotFound),
			errors.Is(err, usecase.ErrMedicationNotFound),
			errors.Is(err, usecase.ErrEmptyPrescription):
			return response.Failure(err.Error())
		default:
			return response.Failure("failed to create prescription")
		}
	}

	return response.Success(result)
}

// GetByID handles the "get_prescription" action
func (h *PrescriptionHandler) GetByID(ctx context.Context, payload []byte) *response.Response {
	var req dto.GetPrescriptionRequest
	if err := json.Unmarshal(payload, &req); err != nil {
		return response.Failure("invalid request body")
	}

	if err := h.validator.Validate(&req); err != nil {
		return response.Failure(h.validator.FormatValidationError(err))
	}

	prescription, err := h.prescriptionUsecase.GetByID(ctx, req.PrescriptionID)
	if err != nil {
		if errors.Is(err, usecase.ErrPrescriptionNotFound) {
			return response.Failure(err.Error())
		}
		return response.Failure("failed to load prescription")
	}

	return response.Success(prescription)
}

// GetByPatient handles the "get_prescriptions_by_patient" action
func (h *PrescriptionHandler) GetByPatient(ctx context.Context, payload []byte) *response.Response {
	var req dto.PrescriptionsByPatientRequest
	if err := json.Unmarshal(payload, &req); err != nil {
		return response.Failure("invalid request body").WithType("prescriptions_response")
	}

	if err := h.validator.Validate(&req); err != nil {
		return response.Failure(h.validator.FormatValidationError(err)).WithType("prescriptions_response")
	}

	prescriptions, err := h.prescriptionUsecase.GetByPatient(ctx, req.PatientUsername)
	if err != nil {
		return response.Failure("failed to list prescriptions").WithType("prescriptions_response")
	}
	return response.Success(prescriptions).WithType("prescriptions_response")
}

// GetAllMedications handles the "get_all_medications" action
func (h *PrescriptionHandler) GetAllMedications(ctx context.Context, _ []byte) *response.Response {
	medications, err := h.prescriptionUsecase.GetAllMedications(ctx)
	if err != nil {
		return response.Failure("failed to list medications").WithType("medications_response")
	}
	return response.Success(medications).WithType("medications_response")
}
