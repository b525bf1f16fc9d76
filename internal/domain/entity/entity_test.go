package entity

import (
	"testing"
)

func TestValidRole(t *testing.T) {
	for _, role := range []string{RolePatient, RoleDoctor, RoleAdmin} {
		if !ValidRole(role) {
			t.Fatalf("expected %q to be a valid role", role)
		}
	}
	for _, role := range []string{"", "nurse", "Patient", "ADMIN"} {
		if ValidRole(role) {
			t.Fatalf("expected %q to be rejected", role)
		}
	}
}

func TestDoctorRemainingSlots(t *testing.T) {
	doctor := Doctor{MaxPatientsPerDay: 30, ReservedPatients: 12}
	if got := doctor.RemainingSlots(); got != 18 {
		t.Fatalf("expected 18 remaining slots, got %d", got)
	}

	doctor.ReservedPatients = 30
	if got := doctor.RemainingSlots(); got != 0 {
		t.Fatalf("expected 0 remaining slots when full, got %d", got)
	}

	// Counter drift past the limit must not report negative capacity.
	doctor.ReservedPatients = 35
	if got := doctor.RemainingSlots(); got != 0 {
		t.Fatalf("expected 0 remaining slots when over limit, got %d", got)
	}
}

func TestHospitalizationTransitions(t *testing.T) {
	admitted := Hospitalization{Status: HospitalizationStatusAdmitted}
	if !admitted.CanTransitionTo(HospitalizationStatusDischarged) {
		t.Fatal("admitted must be dischargeable")
	}
	if !admitted.CanTransitionTo(HospitalizationStatusTransferred) {
		t.Fatal("admitted must be transferable")
	}
	if admitted.CanTransitionTo(HospitalizationStatusAdmitted) {
		t.Fatal("re-admitting an admitted record must be rejected")
	}

	discharged := Hospitalization{Status: HospitalizationStatusDischarged}
	if discharged.CanTransitionTo(HospitalizationStatusTransferred) {
		t.Fatal("terminal states must not transition")
	}
	if discharged.CanTransitionTo(HospitalizationStatusAdmitted) {
		t.Fatal("terminal states must not go back to admitted")
	}
	if discharged.IsAdmitted() {
		t.Fatal("discharged record reported as admitted")
	}
}

func TestValidHospitalizationStatus(t *testing.T) {
	for _, status := range []HospitalizationStatus{
		HospitalizationStatusAdmitted,
		HospitalizationStatusDischarged,
		HospitalizationStatusTransferred,
	} {
		if !ValidHospitalizationStatus(status) {
			t.Fatalf("expected %q to be valid", status)
		}
	}
	if ValidHospitalizationStatus("released") {
		t.Fatal("unknown status accepted")
	}
}

func TestAuditJSONRoundTrip(t *testing.T) {
	original := JSON{"patient": "alice", "bed": "A-101"}

	value, err := original.Value()
	if err != nil {
		t.Fatalf("failed to marshal JSONB value: %v", err)
	}

	var decoded JSON
	if err := decoded.Scan(value); err != nil {
		t.Fatalf("failed to scan JSONB value: %v", err)
	}
	if decoded["patient"] != "alice" || decoded["bed"] != "A-101" {
		t.Fatalf("round trip mismatch: %v", decoded)
	}

	var empty JSON
	if err := empty.Scan(nil); err != nil {
		t.Fatalf("failed to scan nil value: %v", err)
	}
	if empty != nil {
		t.Fatalf("expected nil map after scanning nil, got %v", empty)
	}

	nilValue, err := JSON(nil).Value()
	if err != nil || nilValue != nil {
		t.Fatalf("empty JSON must store as NULL, got %v, %v", nilValue, err)
	}
}
