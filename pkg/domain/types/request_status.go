package types

import "fmt"

// RequestStatus represents the status of a submitted vetting request
type RequestStatus string

const (
	// RequestStatusPendingConsent means at least one check waits for subject consent
	RequestStatusPendingConsent RequestStatus = "pending-consent"
	RequestStatusSubmitted      RequestStatus = "submitted"
)

// AllRequestStatuses returns all valid request statuses
func AllRequestStatuses() []RequestStatus {
	return []RequestStatus{
		RequestStatusPendingConsent,
		RequestStatusSubmitted,
	}
}

// IsValid checks if the request status is valid
func (s RequestStatus) IsValid() bool {
	switch s {
	case RequestStatusPendingConsent,
		RequestStatusSubmitted:
		return true
	default:
		return false
	}
}

// String returns the string representation of the request status
func (s RequestStatus) String() string {
	return string(s)
}

// ParseRequestStatus parses a string into a RequestStatus
func ParseRequestStatus(s string) (RequestStatus, error) {
	status := RequestStatus(s)
	if !status.IsValid() {
		return "", fmt.Errorf("invalid request status: %s", s)
	}
	return status, nil
}
