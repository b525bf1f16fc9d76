package usecase

import (
	"errors"
	"testing"

	"go-hospital-server/internal/delivery/dto"
	"go-hospital-server/internal/domain/entity"

	"github.com/shopspring/decimal"
)

func catalogLookup(catalog map[int]*entity.Medication) func(int) (*entity.Medication, error) {
	return func(medicationID int) (*entity.Medication, error) {
		return catalog[medicationID], nil
	}
}

func TestPriceItemsSnapshotsAndTotals(t *testing.T) {
	catalog := map[int]*entity.Medication{
		1: {ID: 1, Name: "Amoxicillin 500mg", Price: decimal.RequireFromString("12.50")},
		2: {ID: 2, Name: "Ibuprofen 200mg", Price: decimal.RequireFromString("6.80")},
	}

	items := []dto.PrescriptionItemData{
		{MedicationID: 1, Quantity: 2},
		{MedicationID: 2, Quantity: 3},
	}

	priced, total, err := priceItems(items, catalogLookup(catalog))
	if err != nil {
		t.Fatalf("failed to price items: %v", err)
	}
	if len(priced) != 2 {
		t.Fatalf("expected 2 priced items, got %d", len(priced))
	}

	if !priced[0].unitPrice.Equal(decimal.RequireFromString("12.50")) {
		t.Fatalf("unit price not snapshotted: %s", priced[0].unitPrice)
	}
	if !priced[0].totalPrice.Equal(decimal.RequireFromString("25.00")) {
		t.Fatalf("line total wrong: %s", priced[0].totalPrice)
	}
	if !priced[1].totalPrice.Equal(decimal.RequireFromString("20.40")) {
		t.Fatalf("line total wrong: %s", priced[1].totalPrice)
	}

	// 25.00 + 20.40, exact decimal arithmetic, no float drift.
	if !total.Equal(decimal.RequireFromString("45.40")) {
		t.Fatalf("grand total wrong: %s", total)
	}
}

func TestPriceItemsRejectsUnknownMedication(t *testing.T) {
	catalog := map[int]*entity.Medication{
		1: {ID: 1, Price: decimal.RequireFromString("4.20")},
	}

	items := []dto.PrescriptionItemData{
		{MedicationID: 1, Quantity: 1},
		{MedicationID: 99, Quantity: 1},
	}

	_, _, err := priceItems(items, catalogLookup(catalog))
	if !errors.Is(err, ErrMedicationNotFound) {
		t.Fatalf("expected ErrMedicationNotFound, got %v", err)
	}
}

func TestPriceItemsPropagatesLookupErrors(t *testing.T) {
	lookupErr := errors.New("connection reset")
	_, _, err := priceItems([]dto.PrescriptionItemData{{MedicationID: 1, Quantity: 1}}, func(int) (*entity.Medication, error) {
		return nil, lookupErr
	})
	if !errors.Is(err, lookupErr) {
		t.Fatalf("expected lookup error to propagate, got %v", err)
	}
}

func TestPriceItemsEmptyInput(t *testing.T) {
	priced, total, err := priceItems(nil, catalogLookup(nil))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(priced) != 0 {
		t.Fatalf("expected no priced items, got %d", len(priced))
	}
	if !total.IsZero() {
		t.Fatalf("expected zero total, got %s", total)
	}
}
