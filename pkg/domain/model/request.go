package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/secmon-lab/vetplan/pkg/domain/types"
)

// RequestID is a UUID-based identifier for a submitted vetting request
type RequestID string

// NewRequestID generates a new UUID v4 RequestID
func NewRequestID() RequestID {
	return RequestID(uuid.New().String())
}

// String returns the string representation of RequestID
func (id RequestID) String() string {
	return string(id)
}

// VettingRequest is a finalized selection submitted for a subject
type VettingRequest struct {
	ID                      RequestID           `json:"id"`
	SubjectName             string              `json:"subject_name"`
	EntityType              types.EntityType    `json:"entity_type"`
	Mode                    types.SelectionMode `json:"mode"`
	PackageID               types.PackageID     `json:"package_id,omitempty"`
	CheckIDs                []types.CheckID     `json:"check_ids"`
	ConsentRequiredCheckIDs []types.CheckID     `json:"consent_required_check_ids"`
	TotalCost               float64             `json:"total_cost"`
	TurnaroundDays          int                 `json:"turnaround_days"`
	Status                  types.RequestStatus `json:"status"`
	CreatedAt               time.Time           `json:"created_at"`
}
