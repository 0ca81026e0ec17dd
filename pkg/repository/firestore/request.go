package firestore

import (
	"context"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/vetplan/pkg/domain/model"
	"github.com/secmon-lab/vetplan/pkg/domain/types"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

type requestDocument struct {
	ID                      string    `firestore:"id"`
	SubjectName             string    `firestore:"subject_name"`
	EntityType              string    `firestore:"entity_type"`
	Mode                    string    `firestore:"mode"`
	PackageID               string    `firestore:"package_id"`
	CheckIDs                []string  `firestore:"check_ids"`
	ConsentRequiredCheckIDs []string  `firestore:"consent_required_check_ids"`
	TotalCost               float64   `firestore:"total_cost"`
	TurnaroundDays          int       `firestore:"turnaround_days"`
	Status                  string    `firestore:"status"`
	CreatedAt               time.Time `firestore:"created_at"`
}

func toRequestDocument(req *model.VettingRequest) *requestDocument {
	return &requestDocument{
		ID:                      req.ID.String(),
		SubjectName:             req.SubjectName,
		EntityType:              req.EntityType.String(),
		Mode:                    req.Mode.String(),
		PackageID:               req.PackageID.String(),
		CheckIDs:                checkIDsToStrings(req.CheckIDs),
		ConsentRequiredCheckIDs: checkIDsToStrings(req.ConsentRequiredCheckIDs),
		TotalCost:               req.TotalCost,
		TurnaroundDays:          req.TurnaroundDays,
		Status:                  req.Status.String(),
		CreatedAt:               req.CreatedAt,
	}
}

func fromRequestDocument(d *requestDocument) *model.VettingRequest {
	return &model.VettingRequest{
		ID:                      model.RequestID(d.ID),
		SubjectName:             d.SubjectName,
		EntityType:              types.EntityType(d.EntityType),
		Mode:                    types.SelectionMode(d.Mode),
		PackageID:               types.PackageID(d.PackageID),
		CheckIDs:                stringsToCheckIDs(d.CheckIDs),
		ConsentRequiredCheckIDs: stringsToCheckIDs(d.ConsentRequiredCheckIDs),
		TotalCost:               d.TotalCost,
		TurnaroundDays:          d.TurnaroundDays,
		Status:                  types.RequestStatus(d.Status),
		CreatedAt:               d.CreatedAt,
	}
}

func checkIDsToStrings(ids []types.CheckID) []string {
	result := make([]string, len(ids))
	for i, id := range ids {
		result[i] = id.String()
	}
	return result
}

func stringsToCheckIDs(values []string) []types.CheckID {
	result := make([]types.CheckID, len(values))
	for i, v := range values {
		result[i] = types.CheckID(v)
	}
	return result
}

type requestRepository struct {
	client           *firestore.Client
	collectionPrefix string
}

func newRequestRepository(client *firestore.Client) *requestRepository {
	return &requestRepository{
		client:           client,
		collectionPrefix: "",
	}
}

func (r *requestRepository) requestsCollection() *firestore.CollectionRef {
	if r.collectionPrefix != "" {
		return r.client.Collection(r.collectionPrefix + "_requests")
	}
	return r.client.Collection("requests")
}

func (r *requestRepository) Create(ctx context.Context, req *model.VettingRequest) (*model.VettingRequest, error) {
	if req.ID == "" {
		return nil, goerr.New("vetting request ID is required")
	}

	doc := toRequestDocument(req)
	if _, err := r.requestsCollection().Doc(doc.ID).Create(ctx, doc); err != nil {
		if status.Code(err) == codes.AlreadyExists {
			return nil, goerr.Wrap(err, "vetting request already exists", goerr.V(model.RequestIDKey, req.ID))
		}
		return nil, goerr.Wrap(err, "failed to create vetting request", goerr.V(model.RequestIDKey, req.ID))
	}

	return fromRequestDocument(doc), nil
}

func (r *requestRepository) Get(ctx context.Context, id model.RequestID) (*model.VettingRequest, error) {
	snap, err := r.requestsCollection().Doc(id.String()).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, goerr.Wrap(model.ErrRequestNotFound, "vetting request not found", goerr.V(model.RequestIDKey, id))
		}
		return nil, goerr.Wrap(err, "failed to get vetting request", goerr.V(model.RequestIDKey, id))
	}

	var doc requestDocument
	if err := snap.DataTo(&doc); err != nil {
		return nil, goerr.Wrap(err, "failed to unmarshal vetting request", goerr.V(model.RequestIDKey, id))
	}

	return fromRequestDocument(&doc), nil
}

func (r *requestRepository) List(ctx context.Context) ([]*model.VettingRequest, error) {
	iter := r.requestsCollection().OrderBy("created_at", firestore.Desc).Documents(ctx)
	defer iter.Stop()

	reqs := make([]*model.VettingRequest, 0)
	for {
		snap, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, goerr.Wrap(err, "failed to iterate vetting requests")
		}

		var doc requestDocument
		if err := snap.DataTo(&doc); err != nil {
			return nil, goerr.Wrap(err, "failed to unmarshal vetting request", goerr.V("doc_id", snap.Ref.ID))
		}
		reqs = append(reqs, fromRequestDocument(&doc))
	}

	return reqs, nil
}
