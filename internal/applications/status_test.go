package applications_test

import (
	"testing"

	"jobmatch-engine/internal/applications"
)

func TestParseStatus_ValidValues(t *testing.T) {
	valid := []string{"applied", "reviewed", "interview", "offered", "rejected"}
	for _, s := range valid {
		got, err := applications.ParseStatus(s)
		if err != nil {
			t.Errorf("ParseStatus(%q) returned unexpected error: %v", s, err)
		}
		if string(got) != s {
			t.Errorf("ParseStatus(%q) = %q, want %q", s, got, s)
		}
	}
}

func TestParseStatus_InvalidValue(t *testing.T) {
	if _, err := applications.ParseStatus("ghosted"); err == nil {
		t.Error("ParseStatus(\"ghosted\") expected error, got nil")
	}
	if _, err := applications.ParseStatus(""); err == nil {
		t.Error("ParseStatus(\"\") expected error, got nil")
	}
}

func TestIsTransitionAllowed_ForwardSteps(t *testing.T) {
	cases := []struct {
		from applications.Status
		to   applications.Status
	}{
		{applications.StatusApplied, applications.StatusReviewed},
		{applications.StatusReviewed, applications.StatusInterview},
		{applications.StatusInterview, applications.StatusOffered},
	}
	for _, c := range cases {
		if !applications.IsTransitionAllowed(c.from, c.to) {
			t.Errorf("IsTransitionAllowed(%s -> %s) should be true", c.from, c.to)
		}
	}
}

func TestIsTransitionAllowed_SkippingStagesForbidden(t *testing.T) {
	cases := []struct {
		from applications.Status
		to   applications.Status
	}{
		{applications.StatusApplied, applications.StatusInterview},
		{applications.StatusApplied, applications.StatusOffered},
		{applications.StatusReviewed, applications.StatusOffered},
	}
	for _, c := range cases {
		if applications.IsTransitionAllowed(c.from, c.to) {
			t.Errorf("IsTransitionAllowed(%s -> %s) should be false", c.from, c.to)
		}
	}
}

func TestIsTransitionAllowed_BackwardForbidden(t *testing.T) {
	cases := []struct {
		from applications.Status
		to   applications.Status
	}{
		{applications.StatusReviewed, applications.StatusApplied},
		{applications.StatusOffered, applications.StatusInterview},
	}
	for _, c := range cases {
		if applications.IsTransitionAllowed(c.from, c.to) {
			t.Errorf("IsTransitionAllowed(%s -> %s) should be false", c.from, c.to)
		}
	}
}

func TestIsTransitionAllowed_RejectionFromAnyNonTerminal(t *testing.T) {
	for _, from := range []applications.Status{
		applications.StatusApplied,
		applications.StatusReviewed,
		applications.StatusInterview,
		applications.StatusOffered,
	} {
		if !applications.IsTransitionAllowed(from, applications.StatusRejected) {
			t.Errorf("IsTransitionAllowed(%s -> rejected) should be true", from)
		}
	}
}

func TestIsTransitionAllowed_NothingLeavesRejected(t *testing.T) {
	for _, to := range []applications.Status{
		applications.StatusApplied,
		applications.StatusReviewed,
		applications.StatusInterview,
		applications.StatusOffered,
		applications.StatusRejected,
	} {
		if applications.IsTransitionAllowed(applications.StatusRejected, to) {
			t.Errorf("IsTransitionAllowed(rejected -> %s) should be false", to)
		}
	}
}
