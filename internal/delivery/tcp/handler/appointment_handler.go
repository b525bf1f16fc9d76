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

type AppointmentHandler struct {
	appointmentUsecase usecase.AppointmentUsecase
	validator          *validator.CustomValidator
}

func NewAppointmentHandler(appointmentUsecase usecase.AppointmentUsecase, validator *validator.CustomValidator) *AppointmentHandler {
	return &AppointmentHandler{
		appointmentUsecase: appointmentUsecase,
		validator:          validator,
	}
}

// GetAllDoctors handles the "get_all_doctors" action
func (h *AppointmentHandler) GetAllDoctors(ctx context.Context, _ []byte) *response.Response {
	doctors, err := h.appointmentUsecase.GetAllDoctors(ctx)
	if err != nil {
		return response.Failure("failed to list doctors").WithType("doctors_response")
	}
	return response.Success(doctors).WithType("doctors_response")
}

// GetDoctorsByDepartment handles the "get_doctors_by_department" action
func (h *AppointmentHandler) GetDoctorsByDepartment(ctx context.Context, payload []byte) *response.Response {
	var req dto.DoctorsByDepartmentRequest
	if err := json.Unmarshal(payload, &req); err != nil {
		return response.Failure("invalid request body").WithType("doctors_response")
	}

	if err := h.validator.Validate(&req); err != nil {
		return response.Failure(h.validator.FormatValidationError(err)).WithType("doctors_response")
	}

	doctors, err := h.appointmentUsecase.GetDoctorsByDepartment(ctx, req.Department)
	if err != nil {
		return response.Failure("failed to list doctors").WithType("doctors_response")
	}
	return response.Success(doctors).WithType("doctors_response")
}

// BookDoctor handles the "register_doctor" action
func (h *AppointmentHandler) BookDoctor(ctx context.Context, payload []byte) *response.Response {
	var req dto.BookDoctorRequest
	if err := json.Unmarshal(payload, &req); err != nil {
		return response.Failure("invalid request body")
	}

	if err := h.validator.Validate(&req); err != nil {
		return response.Failure(h.validator.FormatValidationError(err))
	}

	appointment, err := h.appointmentUsecase.BookDoctor(ctx, &req)
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrDoctorNotFound),
			errors.Is(err, usecase.ErrPatientNotFound),
			errors.Is(err, usecase.ErrDoctorFullyBooked),
			errors.Is(err, usecase.ErrBookingInFlight):
			return response.Failure(err.Error())
		default:
			return response.Failure("failed to book appointment")
		}
	}

	return response.Success(appointment)
}

// GetAppointmentsByPatient handles the "get_appointments_by_patient" action
func (h *AppointmentHandler) GetAppointmentsByPatient(ctx context.Context, payload []byte) *response.Response {
	var req dto.AppointmentsByPatientRequest
	if err := json.Unmarshal(payload, &req); err != nil {
		return response.Failure("invalid request body").WithType("appointments_response")
	}

	if err := h.validator.Validate(&req); err != nil {
		return response.Failure(h.validator.FormatValidationError(err)).WithType("appointments_response")
	}

	appointments, err := h.appointmentUsecase.GetAppointmentsByPatient(ctx, req.Username)
	if err != nil {
		return response.Failure("failed to list appointments").WithType("appointments_response")
	}
	return response.Success(appointments).WithType("appointments_response")
}
