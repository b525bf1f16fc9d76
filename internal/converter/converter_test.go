package converter

import (
	"testing"

	"go-hospital-server/internal/domain/entity"

	"github.com/shopspring/decimal"
)

func TestDoctorToResponse(t *testing.T) {
	doctor := &entity.Doctor{
		ID:                1,
		Name:              "Dr. Chen",
		Department:        "Cardiology",
		Fee:               decimal.RequireFromString("50.00"),
		MaxPatientsPerDay: 30,
		ReservedPatients:  12,
	}

	resp := DoctorToResponse(doctor)
	if resp.DoctorID != 1 || resp.Department != "Cardiology" {
		t.Fatalf("unexpected response: %+v", resp)
	}
	if resp.RemainingSlots != 18 {
		t.Fatalf("expected 18 remaining slots, got %d", resp.RemainingSlots)
	}
	if resp.Fee != 50.0 {
		t.Fatalf("expected fee 50.0, got %v", resp.Fee)
	}

	if DoctorToResponse(nil) != nil {
		t.Fatal("nil doctor must convert to nil")
	}
}

func TestAppointmentToResponseDepartment(t *testing.T) {
	appointment := &entity.Appointment{
		ID:              7,
		PatientUsername: "alice",
		DoctorID:        1,
		DoctorName:      "Dr. Chen",
		Status:          entity.AppointmentStatusBooked,
	}

	// Without the preloaded doctor the department stays empty.
	resp := AppointmentToResponse(appointment)
	if resp.Department != "" {
		t.Fatalf("expected empty department, got %q", resp.Department)
	}

	appointment.Doctor = entity.Doctor{ID: 1, Department: "Cardiology"}
	resp = AppointmentToResponse(appointment)
	if resp.Department != "Cardiology" {
		t.Fatalf("expected preloaded department, got %q", resp.Department)
	}
}

func TestPrescriptionToResponseJoinsItems(t *testing.T) {
	prescription := &entity.Prescription{
		ID:              11,
		PatientUsername: "alice",
		TotalAmount:     decimal.RequireFromString("45.40"),
		Status:          entity.PrescriptionStatusDispensed,
		Items: []entity.PrescriptionItem{
			{
				ID:           1,
				MedicationID: 1,
				Quantity:     2,
				UnitPrice:    decimal.RequireFromString("12.50"),
				TotalPrice:   decimal.RequireFromString("25.00"),
				Medication:   entity.Medication{ID: 1, Name: "Amoxicillin 500mg", Unit: "box"},
			},
		},
	}

	resp := PrescriptionToResponse(prescription)
	if len(resp.Items) != 1 {
		t.Fatalf("expected 1 item, got %d", len(resp.Items))
	}
	item := resp.Items[0]
	if item.MedicationName != "Amoxicillin 500mg" || item.Unit != "box" {
		t.Fatalf("medication join missing: %+v", item)
	}
	if item.UnitPrice != 12.50 || item.TotalPrice != 25.00 {
		t.Fatalf("price snapshot mismatch: %+v", item)
	}
	if resp.TotalAmount != 45.40 {
		t.Fatalf("expected total 45.40, got %v", resp.TotalAmount)
	}
	if resp.Status != "dispensed" {
		t.Fatalf("unexpected status %q", resp.Status)
	}
}

func TestUserToResponseOmitsPassword(t *testing.T) {
	user := &entity.User{Username: "alice", Password: "$2a$10$hash", Role: entity.RolePatient, Age: 30}

	resp := UserToResponse(user)
	if resp.Username != "alice" || resp.Role != entity.RolePatient {
		t.Fatalf("unexpected response: %+v", resp)
	}
	// UserResponse has no password field at all; this conversion is the
	// only path a user entity takes to the wire.
}
