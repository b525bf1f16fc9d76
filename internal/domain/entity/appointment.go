package entity

import "time"

// AppointmentStatus represents the status of a booking
type AppointmentStatus string

const (
	AppointmentStatusBooked    AppointmentStatus = "booked"
	AppointmentStatusCompleted AppointmentStatus = "completed"
	AppointmentStatusCancelled AppointmentStatus = "cancelled"
)

// Appointment is one booking of a doctor by a patient. DedupToken is
// the client-supplied idempotency key; its unique index is what makes
// a replayed booking request collapse into a single row.
type Appointment struct {
	ID              int               `gorm:"primaryKey;autoIncrement" json:"id"`
	PatientUsername string            `gorm:"type:varchar(100);not null;index" json:"patient_username"`
	DoctorID        int               `gorm:"not null;index" json:"doctor_id"`
	DoctorName      string            `gorm:"type:varchar(100);not null" json:"doctor_name"`
	RequestedAt     time.Time         `gorm:"not null;index" json:"requested_at"`
	Status          AppointmentStatus `gorm:"type:varchar(20);not null;default:'booked'" json:"status"`
	DedupToken      string            `gorm:"type:varchar(100);uniqueIndex;not null" json:"dedup_token"`
	CreatedAt       time.Time         `gorm:"autoCreateTime" json:"created_at"`

	// Relationships
	Doctor Doctor `gorm:"foreignKey:DoctorID" json:"doctor,omitempty"`
}

func (Appointment) TableName() string {
	return "appointments"
}
