package converter

import (
	"go-hospital-server/internal/delivery/dto"
	"go-hospital-server/internal/domain/entity"
)

// DoctorToResponse converts a Doctor entity to its booking-list row
func DoctorToResponse(doctor *entity.Doctor) *dto.DoctorResponse {
	if doctor == nil {
		return nil
	}

	return &dto.DoctorResponse{
		DoctorID:          doctor.ID,
		Name:              doctor.Name,
		Department:        doctor.Department,
		JobNumber:         doctor.JobNumber,
		Profile:           doctor.Profile,
		WorkTime:          doctor.WorkTime,
		Fee:               doctor.Fee.InexactFloat64(),
		MaxPatientsPerDay: doctor.MaxPatientsPerDay,
		ReservedPatients:  doctor.ReservedPatients,
		RemainingSlots:    doctor.RemainingSlots(),
	}
}

// DoctorsToResponses converts a slice of Doctor entities
func DoctorsToResponses(doctors []entity.Doctor) []dto.DoctorResponse {
	responses := make([]dto.DoctorResponse, len(doctors))
	for i, doctor := range doctors {
		if resp := DoctorToResponse(&doctor); resp != nil {
			responses[i] = *resp
		}
	}
	return responses
}

// AppointmentToResponse converts an Appointment entity to its DTO
func AppointmentToResponse(appointment *entity.Appointment) *dto.AppointmentResponse {
	if appointment == nil {
		return nil
	}

	response := &dto.AppointmentResponse{
		ID:              appointment.ID,
		PatientUsername: appointment.PatientUsername,
		DoctorID:        appointment.DoctorID,
		DoctorName:      appointment.DoctorName,
		RequestedAt:     appointment.RequestedAt,
		Status:          string(appointment.Status),
		DedupToken:      appointment.DedupToken,
	}

	if appointment.Doctor.ID != 0 {
		response.Department = appointment.Doctor.Department
	}

	return response
}

// AppointmentsToResponses converts a slice of Appointment entities
func AppointmentsToResponses(appointments []entity.Appointment) []dto.AppointmentResponse {
	responses := make([]dto.AppointmentResponse, len(appointments))
	for i, appointment := range appointments {
		if resp := AppointmentToResponse(&appointment); resp != nil {
			responses[i] = *resp
		}
	}
	return responses
}
