package domain

import "fmt"

type ErrorCode string

const (
	ErrorCodeInvalidConfig      ErrorCode = "INVALID_CONFIG"
	ErrorCodeDuplicateEntity    ErrorCode = "DUPLICATE_ENTITY"
	ErrorCodeSelectionShortfall ErrorCode = "SELECTION_SHORTFALL"
	ErrorCodeNotFound           ErrorCode = "NOT_FOUND"
	ErrorCodeSheetFormat        ErrorCode = "SHEET_FORMAT"
)

// DomainError carries a machine-readable code plus the entity it concerns,
// so callers can decide whether to abort or log-and-skip.
type DomainError struct {
	Code    ErrorCode
	Entity  string
	Message string
}

func (e *DomainError) Error() string {
	if e.Entity == "" {
		return fmt.Sprintf("%s: %s", e.Code, e.Message)
	}
	return fmt.Sprintf("%s: %s: %s", e.Code, e.Entity, e.Message)
}
