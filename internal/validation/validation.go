package validation

import (
	"fmt"
	"strings"

	"github.com/ndewijer/Investment-Admin-Console/internal/model"
)

// Common validation errors
var (
	ErrEmptyID   = fmt.Errorf("id cannot be empty")
	ErrInvalidID = fmt.Errorf("id cannot contain ':' or '/'")
)

// ValidateRecordID checks that id can be used as the suffix of a store key.
// Ids are assigned by whoever creates the record and need not be UUIDs.
func ValidateRecordID(id string) error {
	if strings.TrimSpace(id) == "" {
		return ErrEmptyID
	}
	if strings.ContainsAny(id, ":/") {
		return fmt.Errorf("%w: %s", ErrInvalidID, id)
	}
	return nil
}

// ParseStatusFilter parses an optional status query parameter.
// An empty value means no filter.
func ParseStatusFilter(raw string) (model.Status, error) {
	raw = strings.TrimSpace(strings.ToLower(raw))
	if raw == "" {
		return "", nil
	}
	status := model.Status(raw)
	if !status.Valid() {
		return "", &Error{Fields: map[string]string{"status": fmt.Sprintf("invalid status: %s", raw)}}
	}
	return status, nil
}
