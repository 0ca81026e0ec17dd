package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/vetplan/pkg/domain/model"
	"github.com/secmon-lab/vetplan/pkg/domain/types"
	"github.com/secmon-lab/vetplan/pkg/usecase"
	"github.com/secmon-lab/vetplan/pkg/utils/errutil"
	"github.com/secmon-lab/vetplan/pkg/utils/logging"
	"github.com/secmon-lab/vetplan/pkg/utils/safe"
)

var errInvalidBody = goerr.New("invalid request body")

// statusOf maps domain and use case errors to HTTP status codes
func statusOf(err error) int {
	switch {
	case errors.Is(err, errInvalidBody):
		return http.StatusBadRequest
	case errors.Is(err, model.ErrNotFound),
		errors.Is(err, model.ErrRequestNotFound):
		return http.StatusNotFound
	case errors.Is(err, model.ErrInapplicableEntityType),
		errors.Is(err, usecase.ErrEmptySelection),
		errors.Is(err, usecase.ErrSubjectNameRequired),
		errors.Is(err, usecase.ErrInvalidEntityType),
		errors.Is(err, usecase.ErrInvalidSelectionMode):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

func handleError(w http.ResponseWriter, r *http.Request, err error) {
	errutil.HandleHTTP(r.Context(), w, err, statusOf(err))
}

func writeJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logging.From(r.Context()).Error("failed to write response", "error", err)
	}
}

func decodeJSON(w http.ResponseWriter, r *http.Request, v any) error {
	body := http.MaxBytesReader(w, r.Body, maxBodyBytes)
	defer safe.Close(r.Context(), body, "request body")

	if err := json.NewDecoder(body).Decode(v); err != nil {
		return goerr.Wrap(errInvalidBody, "failed to decode JSON", goerr.V("cause", err.Error()))
	}
	return nil
}

// entityTypeParam parses the optional entity_type query parameter
func entityTypeParam(r *http.Request) (types.EntityType, bool, error) {
	raw := r.URL.Query().Get("entity_type")
	if raw == "" {
		return "", false, nil
	}
	t, err := types.ParseEntityType(raw)
	if err != nil {
		return "", false, goerr.Wrap(usecase.ErrInvalidEntityType, "invalid entity_type parameter", goerr.V(model.EntityTypeKey, raw))
	}
	return t, true, nil
}

func (s *Server) listChecks(w http.ResponseWriter, r *http.Request) {
	entityType, filtered, err := entityTypeParam(r)
	if err != nil {
		handleError(w, r, err)
		return
	}

	checks := s.uc.Catalog().Checks()
	if filtered {
		checks = s.uc.Catalog().ChecksFor(entityType)
	}
	if checks == nil {
		checks = []*model.CheckDefinition{}
	}
	writeJSON(w, r, http.StatusOK, map[string]any{"checks": checks})
}

func (s *Server) listPackages(w http.ResponseWriter, r *http.Request) {
	entityType, filtered, err := entityTypeParam(r)
	if err != nil {
		handleError(w, r, err)
		return
	}

	packages := s.uc.Catalog().Packages()
	if filtered {
		packages = s.uc.Catalog().PackagesFor(entityType)
	}
	if packages == nil {
		packages = []*model.Package{}
	}
	writeJSON(w, r, http.StatusOK, map[string]any{"packages": packages})
}

func (s *Server) quote(w http.ResponseWriter, r *http.Request) {
	var in usecase.QuoteInput
	if err := decodeJSON(w, r, &in); err != nil {
		handleError(w, r, err)
		return
	}

	calc, err := s.uc.Quote(r.Context(), in)
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, calc)
}

type selectionResponse struct {
	Selection model.Selection `json:"selection"`
}

func (s *Server) toggleCheck(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Selection model.Selection `json:"selection"`
		CheckID   types.CheckID   `json:"check_id"`
	}
	if err := decodeJSON(w, r, &req); err != nil {
		handleError(w, r, err)
		return
	}

	sel, err := s.uc.Selection.ToggleCheck(req.Selection, req.CheckID)
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, selectionResponse{Selection: sel})
}

func (s *Server) selectPackage(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Selection model.Selection `json:"selection"`
		PackageID types.PackageID `json:"package_id"`
	}
	if err := decodeJSON(w, r, &req); err != nil {
		handleError(w, r, err)
		return
	}

	sel, err := s.uc.Selection.SelectPackage(req.Selection, req.PackageID)
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, selectionResponse{Selection: sel})
}

func (s *Server) changeEntityType(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Selection  model.Selection  `json:"selection"`
		EntityType types.EntityType `json:"entity_type"`
	}
	if err := decodeJSON(w, r, &req); err != nil {
		handleError(w, r, err)
		return
	}

	sel, err := s.uc.Selection.ChangeEntityType(req.Selection, req.EntityType)
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, selectionResponse{Selection: sel})
}

func (s *Server) submitRequest(w http.ResponseWriter, r *http.Request) {
	var req struct {
		SubjectName string          `json:"subject_name"`
		Selection   model.Selection `json:"selection"`
	}
	if err := decodeJSON(w, r, &req); err != nil {
		handleError(w, r, err)
		return
	}

	created, err := s.uc.Request.Submit(r.Context(), req.SubjectName, req.Selection)
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusCreated, created)
}

func (s *Server) listRequests(w http.ResponseWriter, r *http.Request) {
	reqs, err := s.uc.Request.List(r.Context())
	if err != nil {
		handleError(w, r, err)
		return
	}
	if reqs == nil {
		reqs = []*model.VettingRequest{}
	}
	writeJSON(w, r, http.StatusOK, map[string]any{"requests": reqs})
}

func (s *Server) getRequest(w http.ResponseWriter, r *http.Request) {
	id := model.RequestID(chi.URLParam(r, "id"))
	req, err := s.uc.Request.Get(r.Context(), id)
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, req)
}
