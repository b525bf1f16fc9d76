package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Doctor represents a bookable doctor profile. ReservedPatients is a
// per-day counter guarded by a row lock during booking, so remaining
// capacity can be computed without scanning appointments.
type Doctor struct {
	ID                int             `gorm:"primaryKey;autoIncrement" json:"id"`
	Username          string          `gorm:"type:varchar(100);uniqueIndex;not null" json:"username"`
	Name              string          `gorm:"type:varchar(100);not null" json:"name"`
	Department        string          `gorm:"type:varchar(100);not null;index" json:"department"`
	JobNumber         string          `gorm:"type:varchar(50)" json:"job_number,omitempty"`
	Profile           string          `gorm:"type:text" json:"profile,omitempty"`
	WorkTime          string          `gorm:"type:varchar(100)" json:"work_time,omitempty"`
	Fee               decimal.Decimal `gorm:"type:decimal(10,2);not null;default:0" json:"fee"`
	MaxPatientsPerDay int             `gorm:"not null;default:30" json:"max_patients_per_day"`
	ReservedPatients  int             `gorm:"not null;default:0" json:"reserved_patients"`
	CreatedAt         time.Time       `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt         time.Time       `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Doctor) TableName() string {
	return "doctors"
}

// RemainingSlots returns how many bookings the doctor can still take today.
func (d *Doctor) RemainingSlots() int {
	remaining := d.MaxPatientsPerDay - d.ReservedPatients
	if remaining < 0 {
		return 0
	}
	return remaining
}
