package constants

import (
	"strconv"
	"strings"
)

// Status is the lifecycle value stored in the status column of every catalog table.
type Status int

// Stable values (store these exact integers in DB).
const (
	StatusDeleted  Status = -2 // soft delete, hidden from default listings
	StatusDisabled Status = -1
	StatusInactive Status = 0
	StatusActive   Status = 1
)

var allStatuses = []Status{StatusDeleted, StatusDisabled, StatusInactive, StatusActive}

// Valid reports whether s is one of the known statuses.
func (s Status) Valid() bool {
	for _, v := range allStatuses {
		if s == v {
			return true
		}
	}
	return false
}

// Editable reports whether s may be set through a create or edit form.
// Deletion only goes through update-status.
func (s Status) Editable() bool {
	return s.Valid() && s != StatusDeleted
}

// Label is the display name of s; -1 and 0 both read as Inactive.
func (s Status) Label() string {
	switch s {
	case StatusActive:
		return "Active"
	case StatusDeleted:
		return "Deleted"
	case StatusInactive, StatusDisabled:
		return "Inactive"
	default:
		return "Unknown"
	}
}

// AllStatuses returns the known statuses as ints, used for schema enums.
func AllStatuses() []int {
	out := make([]int, len(allStatuses))
	for i, s := range allStatuses {
		out[i] = int(s)
	}
	return out
}

// ParseStatus parses a query-string status value. ok is false for anything
// that is not one of the known statuses.
func ParseStatus(raw string) (Status, bool) {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return 0, false
	}
	s := Status(n)
	return s, s.Valid()
}
