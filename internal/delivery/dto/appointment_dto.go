package dto

import "time"

// Request DTOs

// BookDoctorRequest carries a booking. Clients identify the doctor by
// numeric id or by display name; the uuid field is the client-supplied
// idempotency token.
type BookDoctorRequest struct {
	DoctorID    int    `json:"doctorId" validate:"omitempty,min=1"`
	DoctorName  string `json:"doctor_name"`
	PatientName string `json:"patientName" validate:"required"`
	DedupToken  string `json:"uuid" validate:"max=100"`
}

type AppointmentsByPatientRequest struct {
	Username string `json:"username" validate:"required"`
}

type DoctorsByDepartmentRequest struct {
	Department string `json:"department" validate:"required"`
}

// Response DTOs

type DoctorResponse struct {
	DoctorID          int     `json:"doctorId"`
	Name              string  `json:"name"`
	Department        string  `json:"department"`
	JobNumber         string  `json:"jobNumber,omitempty"`
	Profile           string  `json:"profile,omitempty"`
	WorkTime          string  `json:"workTime,omitempty"`
	Fee               float64 `json:"fee"`
	MaxPatientsPerDay int     `json:"maxPatientsPerDay"`
	ReservedPatients  int     `json:"reservedPatients"`
	RemainingSlots    int     `json:"remainingSlots"`
}

type AppointmentResponse struct {
	ID              int       `json:"id"`
	PatientUsername string    `json:"patient_username"`
	DoctorID        int       `json:"doctor_id"`
	DoctorName      string    `json:"doctor_name"`
	Department      string    `json:"department,omitempty"`
	RequestedAt     time.Time `json:"requested_at"`
	Status          string    `json:"status"`
	DedupToken      string    `json:"dedup_token"`
}
