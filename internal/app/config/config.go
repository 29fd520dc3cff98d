package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"

	"reviewrota/internal/domain/rotation"
)

// Config is the process configuration, resolved from ROTA_* environment
// variables and CLI flags. Per-spreadsheet settings (default reviewer
// number, experienced developers) can be overridden by each spreadsheet's
// Config tab; the values here are the fallback.
type Config struct {
	SpreadsheetIDs        []string
	CredentialsFile       string
	DefaultReviewerNumber int
	ExperiencedDevelopers []string
	MinDaysBetweenRuns    int
	LastRotationDate      string
}

func Load(v *viper.Viper) (Config, error) {
	cfg := Config{
		SpreadsheetIDs:        splitList(v.GetString("spreadsheet_ids")),
		CredentialsFile:       v.GetString("credentials_file"),
		DefaultReviewerNumber: v.GetInt("default_reviewer_number"),
		ExperiencedDevelopers: splitList(v.GetString("experienced_developers")),
		MinDaysBetweenRuns:    v.GetInt("min_days_between_runs"),
		LastRotationDate:      v.GetString("last_rotation_date"),
	}

	if len(cfg.SpreadsheetIDs) == 0 {
		return Config{}, fmt.Errorf("at least one spreadsheet id is required (ROTA_SPREADSHEET_IDS)")
	}
	if cfg.CredentialsFile == "" {
		return Config{}, fmt.Errorf("credentials file is required (ROTA_CREDENTIALS_FILE)")
	}
	if cfg.DefaultReviewerNumber == 0 {
		cfg.DefaultReviewerNumber = 1
	}
	if cfg.MinDaysBetweenRuns == 0 {
		cfg.MinDaysBetweenRuns = rotation.DefaultMinDaysBetweenRuns
	}

	return cfg, nil
}

// splitList accepts comma- or newline-separated values, matching how the
// id list is kept in a single CI variable.
func splitList(s string) []string {
	var out []string
	for _, part := range strings.FieldsFunc(s, func(r rune) bool {
		return r == ',' || r == '\n'
	}) {
		if v := strings.TrimSpace(part); v != "" {
			out = append(out, v)
		}
	}
	return out
}
