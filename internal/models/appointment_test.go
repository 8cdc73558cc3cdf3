package models

import "testing"

func TestAppointmentStatusTransitions(t *testing.T) {
	cases := []struct {
		from    AppointmentStatus
		to      AppointmentStatus
		allowed bool
	}{
		{StatusPending, StatusConfirmed, true},
		{StatusPending, StatusCanceled, true},
		{StatusConfirmed, StatusCanceled, true},
		{StatusConfirmed, StatusPending, false},
		{StatusConfirmed, StatusConfirmed, false},
		{StatusCanceled, StatusPending, false},
		{StatusCanceled, StatusConfirmed, false},
		{StatusCanceled, StatusCanceled, false},
		{StatusPending, StatusPending, false},
	}

	for _, tc := range cases {
		if got := tc.from.CanTransitionTo(tc.to); got != tc.allowed {
			t.Errorf("%s -> %s: expected %v, got %v", tc.from, tc.to, tc.allowed, got)
		}
	}
}

func TestNoteAuthorValid(t *testing.T) {
	if !NoteAuthorDoctor.Valid() || !NoteAuthorPatient.Valid() {
		t.Fatal("doctor and patient must be valid author types")
	}
	for _, a := range []NoteAuthor{"admin", "nurse", "", "Doctor"} {
		if a.Valid() {
			t.Errorf("author type %q should be invalid", a)
		}
	}
}

func TestValidRole(t *testing.T) {
	for _, r := range []Role{RoleAdmin, RoleDoctor, RolePatient} {
		if !ValidRole(r) {
			t.Errorf("role %q should be valid", r)
		}
	}
	if ValidRole("user") || ValidRole("") {
		t.Error("unknown roles should be invalid")
	}
}
