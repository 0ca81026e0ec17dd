package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/vetplan/pkg/domain/interfaces"
	"github.com/secmon-lab/vetplan/pkg/domain/model"
	"github.com/secmon-lab/vetplan/pkg/domain/types"
	"github.com/secmon-lab/vetplan/pkg/utils/logging"
)

type RequestUseCase struct {
	repo      interfaces.Repository
	selection *SelectionUseCase
	pricing   *PricingUseCase
	now       func() time.Time
}

func NewRequestUseCase(repo interfaces.Repository, selection *SelectionUseCase, pricing *PricingUseCase) *RequestUseCase {
	return &RequestUseCase{
		repo:      repo,
		selection: selection,
		pricing:   pricing,
		now:       func() time.Time { return time.Now().UTC() },
	}
}

// Submit finalizes the selection into a vetting request for the subject.
// The selection must resolve to at least one check.
func (uc *RequestUseCase) Submit(ctx context.Context, subjectName string, sel model.Selection) (*model.VettingRequest, error) {
	subjectName = strings.TrimSpace(subjectName)
	if subjectName == "" {
		return nil, goerr.Wrap(ErrSubjectNameRequired, "cannot submit vetting request")
	}

	checks, err := uc.selection.ResolveEffectiveChecks(sel)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to resolve selection", goerr.V(SubjectNameKey, subjectName))
	}
	if len(checks) == 0 {
		return nil, goerr.Wrap(ErrEmptySelection, "cannot submit vetting request", goerr.V(SubjectNameKey, subjectName))
	}

	checkIDs := make([]types.CheckID, len(checks))
	for i, check := range checks {
		checkIDs[i] = check.ID
	}
	consent := uc.pricing.ConsentRequired(checks)

	status := types.RequestStatusSubmitted
	if len(consent) > 0 {
		status = types.RequestStatusPendingConsent
	}

	req := &model.VettingRequest{
		ID:                      model.NewRequestID(),
		SubjectName:             subjectName,
		EntityType:              sel.EntityType,
		Mode:                    sel.Mode,
		CheckIDs:                checkIDs,
		ConsentRequiredCheckIDs: consent,
		TotalCost:               uc.pricing.TotalCost(checks, sel),
		TurnaroundDays:          uc.pricing.MaxTurnaroundDays(checks, sel),
		Status:                  status,
		CreatedAt:               uc.now(),
	}
	if sel.Mode == types.SelectionModePackage {
		req.PackageID = sel.PackageID
	}

	created, err := uc.repo.Request().Create(ctx, req)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create vetting request", goerr.V(model.RequestIDKey, req.ID))
	}

	logging.From(ctx).Info("vetting request submitted",
		"request_id", created.ID,
		"entity_type", created.EntityType,
		"check_count", len(created.CheckIDs),
		"status", created.Status,
	)
	return created, nil
}

func (uc *RequestUseCase) Get(ctx context.Context, id model.RequestID) (*model.VettingRequest, error) {
	req, err := uc.repo.Request().Get(ctx, id)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to get vetting request", goerr.V(model.RequestIDKey, id))
	}
	return req, nil
}

func (uc *RequestUseCase) List(ctx context.Context) ([]*model.VettingRequest, error) {
	reqs, err := uc.repo.Request().List(ctx)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to list vetting requests")
	}
	return reqs, nil
}
