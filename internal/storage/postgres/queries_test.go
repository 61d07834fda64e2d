package postgres

import (
	"strings"
	"testing"
	"time"

	"jobmatch-engine/internal/models"

	"github.com/gocraft/dbr/v2"
	"github.com/gocraft/dbr/v2/dialect"
)

// dbr interpolates raw SQL itself before anything reaches the driver, and
// it recognizes only ? placeholders; a $n query with args fails with a
// placeholder-count error without ever touching postgres. These tests run
// every raw statement through the interpolator with representative args.

func interpolate(t *testing.T, query string, args []interface{}) string {
	t.Helper()

	out, err := dbr.InterpolateForDialect(query, args, dialect.PostgreSQL)
	if err != nil {
		t.Fatalf("interpolate: %v", err)
	}
	if strings.Contains(out, "?") {
		t.Fatalf("placeholders left uninterpolated:\n%s", out)
	}
	return out
}

func strp(s string) *string { return &s }

func intp(v int) *int { return &v }

func TestInsertMatchQueryInterpolates(t *testing.T) {
	out := interpolate(t, insertMatchSQL, []interface{}{
		int64(1),
		int64(101),
		81.5,
		80.0,
		100.0,
		100.0,
		90.0,
		models.StringList{"Go", "SQL"},
		models.StringList{},
		"🎯 Excellent match!",
		true,
	})

	if !strings.Contains(out, "ON CONFLICT (candidate_id, job_id) DO NOTHING") {
		t.Errorf("conflict clause missing:\n%s", out)
	}
}

func TestUpsertJobQueryInterpolates(t *testing.T) {
	posted := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	out := interpolate(t, upsertJobSQL, []interface{}{
		"Go Engineer",
		"Acme",
		strp("Austin, TX"),
		strp("remote"),
		strp("mid"),
		(*string)(nil),
		intp(140000),
		(*int)(nil),
		models.StringList{"Go"},
		models.StringList(nil),
		"board",
		"j-1",
		strp("https://board.example/jobs/j-1"),
		true,
		&posted,
		time.Now(),
	})

	if !strings.Contains(out, "ON CONFLICT (source, external_id) DO UPDATE") {
		t.Errorf("conflict clause missing:\n%s", out)
	}
	if !strings.Contains(out, "NULL") {
		t.Errorf("nil optional columns should interpolate as NULL:\n%s", out)
	}
}

func TestActivateResumeQueryInterpolates(t *testing.T) {
	out := interpolate(t, activateResumeSQL, []interface{}{int64(7), int64(1)})

	// Arg order: the resume id fills the is_active comparison, the
	// candidate id fills the WHERE clause.
	if !strings.Contains(out, "is_active = (id = 7)") {
		t.Errorf("resume id must land in the is_active comparison:\n%s", out)
	}
	if !strings.Contains(out, "candidate_id = 1") {
		t.Errorf("candidate id must land in the WHERE clause:\n%s", out)
	}
}

func TestDigestCandidatesQueryInterpolates(t *testing.T) {
	out := interpolate(t, digestCandidatesSQL, []interface{}{models.NotifyDaily})

	if !strings.Contains(out, "notify_frequency = 'daily'") {
		t.Errorf("frequency arg not interpolated:\n%s", out)
	}
}
