package dto

// Request DTOs

type CreateHospitalizationRequest struct {
	Data HospitalizationData `json:"data" validate:"required"`
}

type HospitalizationData struct {
	PatientUsername string  `json:"patient_username" validate:"required"`
	DoctorUsername  string  `json:"doctor_username" validate:"required"`
	AdmissionDate   string  `json:"admission_date" validate:"required"`
	Ward            string  `json:"ward" validate:"required"`
	BedNumber       string  `json:"bed_number" validate:"required"`
	Diagnosis       string  `json:"diagnosis"`
	TreatmentPlan   string  `json:"treatment_plan"`
	DailyCost       float64 `json:"daily_cost" validate:"gte=0"`
	Status          string  `json:"status" validate:"omitempty,oneof=admitted discharged transferred"`
	Notes           string  `json:"notes"`
}

type HospitalizationsByPatientRequest struct {
	PatientUsername string `json:"patient_username" validate:"required"`
}

type HospitalizationsByDoctorRequest struct {
	DoctorUsername string `json:"doctor_username" validate:"required"`
}

type UpdateHospitalizationStatusRequest struct {
	HospitalizationID int    `json:"hospitalization_id" validate:"required,min=1"`
	Status            string `json:"status" validate:"required,oneof=discharged transferred"`
	DischargeDate     string `json:"discharge_date"`
}

// Response DTOs

type HospitalizationResponse struct {
	ID              int     `json:"id"`
	PatientUsername string  `json:"patient_username"`
	DoctorUsername  string  `json:"doctor_username"`
	AdmissionDate   string  `json:"admission_date"`
	DischargeDate   *string `json:"discharge_date,omitempty"`
	Ward            string  `json:"ward"`
	BedNumber       string  `json:"bed_number"`
	Diagnosis       string  `json:"diagnosis,omitempty"`
	TreatmentPlan   string  `json:"treatment_plan,omitempty"`
	DailyCost       float64 `json:"daily_cost"`
	Status          string  `json:"status"`
	Notes           string  `json:"notes,omitempty"`
}
