package config_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/spf13/viper"

	"reviewrota/internal/app/config"
)

func newViper(values map[string]string) *viper.Viper {
	v := viper.New()
	for key, value := range values {
		v.Set(key, value)
	}
	return v
}

func TestLoad(t *testing.T) {
	v := newViper(map[string]string{
		"spreadsheet_ids":         "sheet-a, sheet-b\nsheet-c",
		"credentials_file":        "/secrets/sa.json",
		"default_reviewer_number": "2",
		"experienced_developers":  "Pavel, Claudiu",
	})

	cfg, err := config.Load(v)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := config.Config{
		SpreadsheetIDs:        []string{"sheet-a", "sheet-b", "sheet-c"},
		CredentialsFile:       "/secrets/sa.json",
		DefaultReviewerNumber: 2,
		ExperiencedDevelopers: []string{"Pavel", "Claudiu"},
		MinDaysBetweenRuns:    15,
	}
	if diff := cmp.Diff(want, cfg); diff != "" {
		t.Fatalf("config mismatch (-want +got):\n%s", diff)
	}
}

func TestLoad_Defaults(t *testing.T) {
	v := newViper(map[string]string{
		"spreadsheet_ids":  "sheet-a",
		"credentials_file": "/secrets/sa.json",
	})

	cfg, err := config.Load(v)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.DefaultReviewerNumber != 1 {
		t.Fatalf("expected default reviewer number 1, got %d", cfg.DefaultReviewerNumber)
	}
	if cfg.MinDaysBetweenRuns != 15 {
		t.Fatalf("expected 15-day cadence, got %d", cfg.MinDaysBetweenRuns)
	}
}

func TestLoad_MissingRequired(t *testing.T) {
	if _, err := config.Load(newViper(map[string]string{
		"credentials_file": "/secrets/sa.json",
	})); err == nil {
		t.Fatal("expected error for missing spreadsheet ids")
	}

	if _, err := config.Load(newViper(map[string]string{
		"spreadsheet_ids": "sheet-a",
	})); err == nil {
		t.Fatal("expected error for missing credentials file")
	}
}
