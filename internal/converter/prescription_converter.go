package converter

import (
	"go-hospital-server/internal/delivery/dto"
	"go-hospital-server/internal/domain/entity"
)

// PrescriptionToResponse converts a Prescription entity, including its
// items joined with medication name and unit.
func PrescriptionToResponse(prescription *entity.Prescription) *dto.PrescriptionResponse {
	if prescription == nil {
		return nil
	}

	items := make([]dto.PrescriptionItemResponse, len(prescription.Items))
	for i, item := range prescription.Items {
		items[i] = dto.PrescriptionItemResponse{
			ID:             item.ID,
			MedicationID:   item.MedicationID,
			MedicationName: item.Medication.Name,
			Unit:           item.Medication.Unit,
			Quantity:       item.Quantity,
			Dosage:         item.Dosage,
			Frequency:      item.Frequency,
			Duration:       item.Duration,
			Instructions:   item.Instructions,
			UnitPrice:      item.UnitPrice.InexactFloat64(),
			TotalPrice:     item.TotalPrice.InexactFloat64(),
		}
	}

	return &dto.PrescriptionResponse{
		ID:               prescription.ID,
		RecordID:         prescription.RecordID,
		PatientUsername:  prescription.PatientUsername,
		DoctorUsername:   prescription.DoctorUsername,
		PrescriptionDate: prescription.PrescriptionDate,
		TotalAmount:      prescription.TotalAmount.InexactFloat64(),
		Status:           string(prescription.Status),
		Notes:            prescription.Notes,
		Items:            items,
	}
}

// PrescriptionsToResponses converts a slice of Prescription entities
func PrescriptionsToResponses(prescriptions []entity.Prescription) []dto.PrescriptionResponse {
	responses := make([]dto.PrescriptionResponse, len(prescriptions))
	for i, prescription := range prescriptions {
		if resp := PrescriptionToResponse(&prescription); resp != nil {
			responses[i] = *resp
		}
	}
	return responses
}

// MedicationToResponse converts a Medication catalog row
func MedicationToResponse(medication *entity.Medication) *dto.MedicationResponse {
	if medication == nil {
		return nil
	}

	return &dto.MedicationResponse{
		ID:    medication.ID,
		Name:  medication.Name,
		Price: medication.Price.InexactFloat64(),
		Unit:  medication.Unit,
	}
}

// MedicationsToResponses converts a slice of Medication entities
func MedicationsToResponses(medications []entity.Medication) []dto.MedicationResponse {
	responses := make([]dto.MedicationResponse, len(medications))
	for i, medication := range medications {
		if resp := MedicationToResponse(&medication); resp != nil {
			responses[i] = *resp
		}
	}
	return responses
}
