package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Medication is a row of the read-only drug catalog. The catalog is
// loaded by a seed migration; this service only reads it and copies
// prices into prescription items at issuance time.
type Medication struct {
	ID        int             `gorm:"primaryKey;autoIncrement" json:"id"`
	Name      string          `gorm:"type:varchar(255);not null;index" json:"name"`
	Price     decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"price"`
	Unit      string          `gorm:"type:varchar(20);not null" json:"unit"`
	CreatedAt time.Time       `gorm:"autoCreateTime" json:"created_at"`
}

func (Medication) TableName() string {
	return "medications"
}
