package rotation

import (
	"strings"
	"time"

	"reviewrota/internal/domain"
)

// DateLayout is the column-header date format used in the sheet.
const DateLayout = "02-01-2006"

// ManualRunSeparator joins the scheduled date and the manual-run date in a
// column header, e.g. "15-08-2026 / Manual Run on: 20-08-2026". The
// scheduled date before the separator is what keeps the cadence.
const ManualRunSeparator = " / Manual Run on:"

// DefaultMinDaysBetweenRuns is the rotation cadence: a new rotation is due
// once this many days have passed since the last one.
const DefaultMinDaysBetweenRuns = 15

// ParseRotationHeader extracts the scheduled rotation date from a column
// header, tolerating the manual-run suffix.
func ParseRotationHeader(header string) (time.Time, error) {
	value := header
	if i := strings.Index(header, ManualRunSeparator); i >= 0 {
		value = header[:i]
	}
	t, err := time.Parse(DateLayout, strings.TrimSpace(value))
	if err != nil {
		return time.Time{}, &domain.DomainError{
			Code:    domain.ErrorCodeSheetFormat,
			Message: "column header is not a rotation date: " + header,
		}
	}
	return t, nil
}

// Due reports whether enough days have passed since the last rotation.
func Due(last, now time.Time, minDays int) bool {
	return int(now.Sub(last).Hours()/24) >= minDays
}

// NextDue is the first day a rotation becomes due again.
func NextDue(last time.Time, minDays int) time.Time {
	return last.AddDate(0, 0, minDays)
}
