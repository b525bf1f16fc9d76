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

type HospitalizationHandler struct {
	hospitalizationUsecase usecase.HospitalizationUsecase
	validator              *validator.CustomValidator
}

func NewHospitalizationHandler(hospitalizationUsecase usecase.HospitalizationUsecase, validator *validator.CustomValidator) *HospitalizationHandler {
	return &HospitalizationHandler{
		hospitalizationUsecase: hospitalizationUsecase,
		validator:              validator,
	}
}

// Create handles the "create_hospitalization" action
func (h *HospitalizationHandler) Create(ctx context.Context, payload []byte) *response.Response {
	var req dto.CreateHospitalizationRequest
	if err := json.Unmarshal(payload, &req); err != nil {
		return response.Failure("invalid request body")
	}

	if err := h.validator.Validate(&req.Data); err != nil {
		return response.Failure(h.validator.FormatValidationError(err))
	}

	hospitalization, err := h.hospitalizationUsecase.Create(ctx, &req)
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrPatientNotFound),
			errors.Is(err, usecase.ErrDoctorNotFound),
			errors.Is(err, usecase.ErrBedOccupied),
			errors.Is(err, usecase.ErrInvalidStatus):
			return response.Failure(err.Error())
		default:
			return response.Failure("failed to create hospitalization")
		}
	}

	return response.Success(hospitalization)
}

// GetByPatient handles the "get_hospitalizations_by_patient" action
func (h *HospitalizationHandler) GetByPatient(ctx context.Context, payload []byte) *response.Response {
	var req dto.HospitalizationsByPatientRequest
	if err := json.Unmarshal(payload, &req); err != nil {
		return response.Failure("invalid request body").WithType("hospitalizations_response")
	}

	if err := h.validator.Validate(&req); err != nil {
		return response.Failure(h.validator.FormatValidationError(err)).WithType("hospitalizations_response")
	}

	hospitalizations, err := h.hospitalizationUsecase.GetByPatient(ctx, req.PatientUsername)
	if err != nil {
		return response.Failure("failed to list hospitalizations").WithType("hospitalizations_response")
	}
	return response.Success(hospitalizations).WithType("hospitalizations_response")
}

// GetByDoctor handles the "get_hospitalizations_by_doctor" action
func (h *HospitalizationHandler) GetByDoctor(ctx context.Context, payload []byte) *response.Response {
	var req dto.HospitalizationsByDoctorRequest
	if err := json.Unmarshal(payload, &req); err != nil {
		return response.Failure("invalid request body").WithType("hospitalizations_response")
	}

	if err := h.validator.Validate(&req); err != nil {
		return response.Failure(h.validator.FormatValidationError(err)).WithType("hospitalizations_response")
	}

	hospitalizations, err := h.hospitalizationUsecase.GetByDoctor(ctx, req.DoctorUsername)
	if err != nil {
		return response.Failure("failed to list hospitalizations").WithType("hospitalizations_response")
	}
	return response.Success(hospitalizations).WithType("hospitalizations_response")
}

// GetAll handles the "get_all_hospitalizations" action
func (h *HospitalizationHandler) GetAll(ctx context.Context, _ []byte) *response.Response {
	hospitalizations, err := h.hospitalizationUsecase.GetAll(ctx)
	if err != nil {
		return response.Failure("failed to list hospitalizations").WithType("hospitalizations_response")
	}
	return response.Success(hospitalizations).WithType("hospitalizations_response")
}

// UpdateStatus handles the "update_hospitalization_status" action
func (h *HospitalizationHandler) UpdateStatus(ctx context.Context, payload []byte) *response.Response {
	var req dto.UpdateHospitalizationStatusRequest
	if err := json.Unmarshal(payload, &req); err != nil {
		return response.Failure("invalid request body")
	}

	if err := h.validator.Validate(&req); err != nil {
		return response.Failure(h.validator.FormatValidationError(err))
	}

	hospitalization, err := h.hospitalizationUsecase.UpdateStatus(ctx, &req)
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrHospitalizationNotFound),
			errors.Is(err, usecase.ErrInvalidStatus),
			errors.Is(err, usecase.ErrNotAdmitted):
			return response.Failure(err.Error())
		default:
			return response.Failure("failed to update hospitalization status")
		}
	}

	return response.Success(hospitalization)
}
