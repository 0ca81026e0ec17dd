package interfaces

import (
	"context"

	"github.com/secmon-lab/vetplan/pkg/domain/model"
)

// Repository defines the interface for data persistence
type Repository interface {
	Request() RequestRepository

	Close() error
}

type RequestRepository interface {
	// Create stores a new vetting request. The ID and CreatedAt must already be set.
	Create(ctx context.Context, req *model.VettingRequest) (*model.VettingRequest, error)

	// Get retrieves a vetting request by ID
	Get(ctx context.Context, id model.RequestID) (*model.VettingRequest, error)

	// List retrieves all vetting requests, newest first
	List(ctx context.Context) ([]*model.VettingRequest, error)
}
