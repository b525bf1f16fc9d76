package dto

// Request DTOs

type CreatePrescriptionRequest struct {
	Data PrescriptionData `json:"data" validate:"required"`
}

type PrescriptionData struct {
	RecordID         int                    `json:"record_id" validate:"required,min=1"`
	PatientUsername  string                 `json:"patient_username" validate:"required"`
	DoctorUsername   string                 `json:"doctor_username" validate:"required"`
	PrescriptionDate string                 `json:"prescription_date"`
	Notes            string                 `json:"notes"`
	Items            []PrescriptionItemData `json:"items" validate:"required,min=1,dive"`
}

type PrescriptionItemData struct {
	MedicationID int    `json:"medication_id" validate:"required,min=1"`
	Quantity     int    `json:"quantity" validate:"required,min=1"`
	Dosage       string `json:"dosage"`
	Frequency    string `json:"frequency"`
	Duration     string `json:"duration"`
	Instructions string `json:"instructions"`
}

type GetPrescriptionRequest struct {
	PrescriptionID int `json:"prescription_id" validate:"required,min=1"`
}

type PrescriptionsByPatientRequest struct {
	PatientUsername string `json:"patient_username" validate:"required"`
}

// Response DTOs

type CreatePrescriptionResponse struct {
	PrescriptionID int     `json:"prescription_id"`
	TotalAmount    float64 `json:"total_amount"`
	Status         string  `json:"status"`
}

type PrescriptionResponse struct {
	ID               int                        `json:"id"`
	RecordID         int                        `json:"record_id"`
	PatientUsername  string                     `json:"patient_username"`
	DoctorUsername   string                     `json:"doctor_username"`
	Department       string                     `json:"department,omitempty"`
	PrescriptionDate string                     `json:"prescription_date"`
	TotalAmount      float64                    `json:"total_amount"`
	Status           string                     `json:"status"`
	Notes            string                     `json:"notes,omitempty"`
	Items            []PrescriptionItemResponse `json:"items"`
}

type PrescriptionItemResponse struct {
	ID             int     `json:"id"`
	MedicationID   int     `json:"medication_id"`
	MedicationName string  `json:"medication_name"`
	Unit           string  `json:"unit"`
	Quantity       int     `json:"quantity"`
	Dosage         string  `json:"dosage,omitempty"`
	Frequency      string  `json:"frequency,omitempty"`
	Duration       string  `json:"duration,omitempty"`
	Instructions   string  `json:"instructions,omitempty"`
	UnitPrice      float64 `json:"unit_price"`
	TotalPrice     float64 `json:"total_price"`
}

type MedicationResponse struct {
	ID    int     `json:"id"`
	Name  string  `json:"name"`
	Price float64 `json:"price"`
	Unit  string  `json:"unit"`
}
