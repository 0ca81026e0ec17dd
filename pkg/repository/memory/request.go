package memory

import (
	"cmp"
	"context"
	"slices"
	"sync"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/vetplan/pkg/domain/model"
)

type requestRepository struct {
	mu       sync.RWMutex
	requests map[model.RequestID]*model.VettingRequest
}

func newRequestRepository() *requestRepository {
	return &requestRepository{
		requests: make(map[model.RequestID]*model.VettingRequest),
	}
}

func copyRequest(req *model.VettingRequest) *model.VettingRequest {
	copied := *req
	copied.CheckIDs = slices.Clone(req.CheckIDs)
	copied.ConsentRequiredCheckIDs = slices.Clone(req.ConsentRequiredCheckIDs)
	return &copied
}

func (r *requestRepository) Create(ctx context.Context, req *model.VettingRequest) (*model.VettingRequest, error) {
	if req.ID == "" {
		return nil, goerr.New("vetting request ID is required")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.requests[req.ID]; exists {
		return nil, goerr.New("vetting request already exists", goerr.V(model.RequestIDKey, req.ID))
	}

	r.requests[req.ID] = copyRequest(req)
	return copyRequest(req), nil
}

func (r *requestRepository) Get(ctx context.Context, id model.RequestID) (*model.VettingRequest, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	req, exists := r.requests[id]
	if !exists {
		return nil, goerr.Wrap(model.ErrRequestNotFound, "vetting request not found", goerr.V(model.RequestIDKey, id))
	}

	// Return a copy to prevent external modification
	return copyRequest(req), nil
}

func (r *requestRepository) List(ctx context.Context) ([]*model.VettingRequest, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	reqs := make([]*model.VettingRequest, 0, len(r.requests))
	for _, req := range r.requests {
		reqs = append(reqs, copyRequest(req))
	}

	slices.SortFunc(reqs, func(a, b *model.VettingRequest) int {
		if c := b.CreatedAt.Compare(a.CreatedAt); c != 0 {
			return c
		}
		return cmp.Compare(a.ID, b.ID)
	})
	return reqs, nil
}
