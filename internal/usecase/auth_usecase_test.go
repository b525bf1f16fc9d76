package usecase

import (
	"testing"

	"go-hospital-server/internal/domain/entity"
)

func TestDoctorProfileForDoctorRole(t *testing.T) {
	user := &entity.User{Username: "dr_chen", Role: entity.RoleDoctor}

	doctor := doctorProfileFor(user)
	if doctor == nil {
		t.Fatal("registering a doctor must produce a bookable profile")
	}
	if doctor.Username != "dr_chen" {
		t.Fatalf("profile username mismatch: %q", doctor.Username)
	}
	// The display name defaults to the username until filled in.
	if doctor.Name != "dr_chen" {
		t.Fatalf("profile name must default to the username, got %q", doctor.Name)
	}
}

func TestDoctorProfileForOtherRoles(t *testing.T) {
	for _, role := range []string{entity.RolePatient, entity.RoleAdmin} {
		user := &entity.User{Username: "alice", Role: role}
		if doctorProfileFor(user) != nil {
			t.Fatalf("role %q must not get a doctor profile", role)
		}
	}
}
