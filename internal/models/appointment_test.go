package models

import (
	"testing"
)

var allStatuses = []AppointmentStatus{
	StatusPending, StatusApproved, StatusRejected, StatusCancelled, StatusCompleted,
}

var allRoles = []Role{RolePatient, RoleDoctor, RoleAdmin}

// allowedTransitions is the complete set of (target, role, source) triples
// that must be accepted. Everything else must be rejected.
var allowedTransitions = map[[3]string]bool{
	{"approved", "doctor", "pending"}:    true,
	{"rejected", "doctor", "pending"}:    true,
	{"completed", "doctor", "approved"}:  true,
	{"cancelled", "patient", "pending"}:  true,
	{"cancelled", "patient", "approved"}: true,
	{"cancelled", "admin", "pending"}:    true,
	{"cancelled", "admin", "approved"}:   true,
	{"pending", "doctor", "pending"}:     true,
}

func TestTransitionMatrix(t *testing.T) {
	for _, target := range allStatuses {
		rule, known := TransitionRuleFor(target)
		if !known {
			t.Fatalf("TransitionRuleFor(%s): no rule for a known status", target)
		}
		for _, role := range allRoles {
			for _, from := range allStatuses {
				got := rule.RoleAllowed(role) && rule.FromAllowed(from)
				want := allowedTransitions[[3]string{string(target), string(role), string(from)}]
				if got != want {
					t.Errorf("transition %s -> %s as %s: got allowed=%v, want %v",
						from, target, role, got, want)
				}
			}
		}
	}
}

func TestTransitionRuleForUnknownStatus(t *testing.T) {
	for _, target := range []AppointmentStatus{"", "archived", "Pending", "CANCELLED"} {
		if _, known := TransitionRuleFor(target); known {
			t.Errorf("TransitionRuleFor(%q): expected unknown target", target)
		}
	}
}

// Cancelling is only legal while an appointment still holds a slot. Once it
// reaches a terminal status, every cancel attempt must be rejected.
func TestCancelAfterTerminalStatus(t *testing.T) {
	rule, _ := TransitionRuleFor(StatusCancelled)
	for _, from := range []AppointmentStatus{StatusCompleted, StatusRejected, StatusCancelled} {
		for _, role := range allRoles {
			if rule.RoleAllowed(role) && rule.FromAllowed(from) {
				t.Errorf("cancel from %s as %s: expected rejection", from, role)
			}
		}
	}
}

// Walks the happy path a booking takes: requested, approved, completed, then
// a late cancel attempt that must fail.
func TestAppointmentLifecycle(t *testing.T) {
	status := StatusPending

	steps := []struct {
		target AppointmentStatus
		role   Role
	}{
		{StatusApproved, RoleDoctor},
		{StatusCompleted, RoleDoctor},
	}
	for _, step := range steps {
		rule, known := TransitionRuleFor(step.target)
		if !known {
			t.Fatalf("no rule for %s", step.target)
		}
		if !rule.RoleAllowed(step.role) || !rule.FromAllowed(status) {
			t.Fatalf("transition %s -> %s as %s: expected allowed", status, step.target, step.role)
		}
		status = step.target
	}

	if status != StatusCompleted {
		t.Fatalf("expected completed, got %s", status)
	}

	rule, _ := TransitionRuleFor(StatusCancelled)
	if rule.FromAllowed(status) {
		t.Errorf("cancel from %s: expected rejection", status)
	}
}

func TestRoleValid(t *testing.T) {
	for _, role := range allRoles {
		if !role.Valid() {
			t.Errorf("Role(%q).Valid() = false, want true", role)
		}
	}
	for _, role := range []Role{"", "nurse", "Patient"} {
		if role.Valid() {
			t.Errorf("Role(%q).Valid() = true, want false", role)
		}
	}
}
