package rotation_test

import (
	"testing"
	"time"

	"reviewrota/internal/domain/rotation"
)

func TestParseRotationHeader(t *testing.T) {
	got, err := rotation.ParseRotationHeader("15-08-2026")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := time.Date(2026, 8, 15, 0, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
}

func TestParseRotationHeader_ManualRunSuffix(t *testing.T) {
	// Manual runs keep the scheduled date in the header prefix so the
	// cadence is not reset.
	got, err := rotation.ParseRotationHeader("15-08-2026 / Manual Run on: 20-08-2026")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := time.Date(2026, 8, 15, 0, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Fatalf("expected scheduled date %v, got %v", want, got)
	}
}

func TestParseRotationHeader_Invalid(t *testing.T) {
	for _, header := range []string{"", "Exception 15-08-2026", "2026-08-15"} {
		if _, err := rotation.ParseRotationHeader(header); err == nil {
			t.Fatalf("expected error for header %q", header)
		}
	}
}

func TestDue(t *testing.T) {
	last := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)

	cases := []struct {
		name string
		now  time.Time
		want bool
	}{
		{"same day", last, false},
		{"one day short", last.AddDate(0, 0, 14), false},
		{"exactly on cadence", last.AddDate(0, 0, 15), true},
		{"past cadence", last.AddDate(0, 0, 40), true},
	}
	for _, tc := range cases {
		if got := rotation.Due(last, tc.now, 15); got != tc.want {
			t.Fatalf("%s: expected %t, got %t", tc.name, tc.want, got)
		}
	}
}

func TestNextDue(t *testing.T) {
	last := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	want := time.Date(2026, 8, 16, 0, 0, 0, 0, time.UTC)
	if got := rotation.NextDue(last, 15); !got.Equal(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
}
