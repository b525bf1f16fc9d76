package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// PrescriptionStatus represents the lifecycle state of a prescription
type PrescriptionStatus string

const (
	PrescriptionStatusPending   PrescriptionStatus = "pending"
	PrescriptionStatusDispensed PrescriptionStatus = "dispensed"
	PrescriptionStatusCancelled PrescriptionStatus = "cancelled"
)

// Prescription is created atomically with its items. TotalAmount caches
// the sum of the item totals; the two must never drift apart.
type Prescription struct {
	ID               int                `gorm:"primaryKey;autoIncrement" json:"id"`
	RecordID         int                `gorm:"not null;index" json:"record_id"`
	PatientUsername  string             `gorm:"type:varchar(100);not null;index" json:"patient_username"`
	DoctorUsername   string             `gorm:"type:varchar(100);not null;index" json:"doctor_username"`
	PrescriptionDate string             `gorm:"type:varchar(10);not null" json:"prescription_date"`
	TotalAmount      decimal.Decimal    `gorm:"type:decimal(10,2);not null;default:0" json:"total_amount"`
	Status           PrescriptionStatus `gorm:"type:varchar(20);not null;default:'pending';index" json:"status"`
	Notes            string             `gorm:"type:text" json:"notes,omitempty"`
	CreatedAt        time.Time          `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt        time.Time          `gorm:"autoUpdateTime" json:"updated_at"`

	// Relationships
	Items []PrescriptionItem `gorm:"foreignKey:PrescriptionID;constraint:OnDelete:CASCADE" json:"items,omitempty"`
}

func (Prescription) TableName() string {
	return "prescriptions"
}

// PrescriptionItem holds one catalog medication on a prescription.
// UnitPrice is a snapshot of the catalog price at issuance time and is
// never updated when the catalog price changes.
type PrescriptionItem struct {
	ID             int             `gorm:"primaryKey;autoIncrement" json:"id"`
	PrescriptionID int             `gorm:"not null;index" json:"prescription_id"`
	MedicationID   int             `gorm:"not null;index" json:"medication_id"`
	Quantity       int             `gorm:"not null" json:"quantity"`
	Dosage         string          `gorm:"type:varchar(100)" json:"dosage,omitempty"`
	Frequency      string          `gorm:"type:varchar(100)" json:"frequency,omitempty"`
	Duration       string          `gorm:"type:varchar(100)" json:"duration,omitempty"`
	Instructions   string          `gorm:"type:text" json:"instructions,omitempty"`
	UnitPrice      decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"unit_price"`
	TotalPrice     decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"total_price"`
	CreatedAt      time.Time       `gorm:"autoCreateTime" json:"created_at"`

	// Relationships
	Medication Medication `gorm:"foreignKey:MedicationID" json:"medication,omitempty"`
}

func (PrescriptionItem) TableName() string {
	return "prescription_items"
}
