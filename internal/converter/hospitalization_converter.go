package converter

import (
	"go-hospital-server/internal/delivery/dto"
	"go-hospital-server/internal/domain/entity"
)

// HospitalizationToResponse converts a Hospitalization entity to its DTO
func HospitalizationToResponse(hospitalization *entity.Hospitalization) *dto.HospitalizationResponse {
	if hospitalization == nil {
		return nil
	}

	return &dto.HospitalizationResponse{
		ID:              hospitalization.ID,
		PatientUsername: hospitalization.PatientUsername,
		DoctorUsername:  hospitalization.DoctorUsername,
		AdmissionDate:   hospitalization.AdmissionDate,
		DischargeDate:   hospitalization.DischargeDate,
		Ward:            hospitalization.Ward,
		BedNumber:       hospitalization.BedNumber,
		Diagnosis:       hospitalization.Diagnosis,
		TreatmentPlan:   hospitalization.TreatmentPlan,
		DailyCost:       hospitalization.DailyCost.InexactFloat64(),
		Status:          string(hospitalization.Status),
		Notes:           hospitalization.Notes,
	}
}

// HospitalizationsToResponses converts a slice of Hospitalization entities
func HospitalizationsToResponses(hospitalizations []entity.Hospitalization) []dto.HospitalizationResponse {
	responses := make([]dto.HospitalizationResponse, len(hospitalizations))
	for i, hospitalization := range hospitalizations {
		if resp := HospitalizationToResponse(&hospitalization); resp != nil {
			responses[i] = *resp
		}
	}
	return responses
}
