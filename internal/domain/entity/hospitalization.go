package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// HospitalizationStatus represents the admission lifecycle state
type HospitalizationStatus string

const (
	HospitalizationStatusAdmitted    HospitalizationStatus = "admitted"
	HospitalizationStatusDischarged  HospitalizationStatus = "discharged"
	HospitalizationStatusTransferred HospitalizationStatus = "transferred"
)

// ValidHospitalizationStatus reports whether status is a known state.
func ValidHospitalizationStatus(status HospitalizationStatus) bool {
	switch status {
	case HospitalizationStatusAdmitted, HospitalizationStatusDischarged, HospitalizationStatusTransferred:
		return true
	}
	return false
}

// Hospitalization is one admission record. A partial unique index on
// bed_number (status = 'admitted') guarantees at most one active
// occupant per bed.
type Hospitalization struct {
	ID              int                   `gorm:"primaryKey;autoIncrement" json:"id"`
	PatientUsername string                `gorm:"type:varchar(100);not null;index" json:"patient_username"`
	DoctorUsername  string                `gorm:"type:varchar(100);not null;index" json:"doctor_username"`
	AdmissionDate   string                `gorm:"type:varchar(10);not null" json:"admission_date"`
	DischargeDate   *string               `gorm:"type:varchar(10)" json:"discharge_date,omitempty"`
	Ward            string                `gorm:"type:varchar(100);not null" json:"ward"`
	BedNumber       string                `gorm:"type:varchar(20);not null" json:"bed_number"`
	Diagnosis       string                `gorm:"type:text" json:"diagnosis,omitempty"`
	TreatmentPlan   string                `gorm:"type:text" json:"treatment_plan,omitempty"`
	DailyCost       decimal.Decimal       `gorm:"type:decimal(10,2);not null;default:0" json:"daily_cost"`
	Status          HospitalizationStatus `gorm:"type:varchar(20);not null;default:'admitted';index" json:"status"`
	Notes           string                `gorm:"type:text" json:"notes,omitempty"`
	CreatedAt       time.Time             `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt       time.Time             `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Hospitalization) TableName() string {
	return "hospitalizations"
}

// IsAdmitted reports whether the record still occupies its bed.
func (h *Hospitalization) IsAdmitted() bool {
	return h.Status == HospitalizationStatusAdmitted
}

// CanTransitionTo reports whether the status change is allowed.
// Admitted records may be discharged or transferred; terminal states
// never go back to admitted without a new record.
func (h *Hospitalization) CanTransitionTo(next HospitalizationStatus) bool {
	if !h.IsAdmitted() {
		return false
	}
	return next == HospitalizationStatusDischarged || next == HospitalizationStatusTransferred
}
