package http_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/m-mizutani/gt"
	httpctrl "github.com/secmon-lab/vetplan/pkg/controller/http"
	"github.com/secmon-lab/vetplan/pkg/domain/model"
	"github.com/secmon-lab/vetplan/pkg/domain/types"
	"github.com/secmon-lab/vetplan/pkg/repository/memory"
	"github.com/secmon-lab/vetplan/pkg/usecase"
)

func newTestServer(t *testing.T) http.Handler {
	t.Helper()
	individual := []types.EntityType{types.EntityTypeIndividual}
	company := []types.EntityType{types.EntityTypeCompany}

	catalog, err := model.NewCatalog(
		[]model.CheckDefinition{
			{ID: "id-verify", Name: "ID Verification", Category: types.CategoryIdentity,
				ApplicableEntityTypes: individual, EstimatedCost: 50, EstimatedTurnaroundDays: 1,
				RiskLevel: types.RiskLevelMedium, Provider: "Home Affairs"},
			{ID: "criminal", Name: "Criminal Record", Category: types.CategoryCriminal,
				ApplicableEntityTypes: individual, EstimatedCost: 150, EstimatedTurnaroundDays: 2,
				ConsentRequired: true, RiskLevel: types.RiskLevelHigh, Provider: "SAPS"},
			{ID: "cipc", Name: "CIPC Registration", Category: types.CategoryCompliance,
				ApplicableEntityTypes: company, EstimatedCost: 100, EstimatedTurnaroundDays: 2,
				RiskLevel: types.RiskLevelLow, Provider: "CIPC"},
		},
		[]model.Package{
			{ID: "basic", Name: "Basic", ApplicableEntityTypes: individual,
				CheckIDs:           []types.CheckID{"id-verify", "criminal"},
				TotalEstimatedCost: 180, TotalEstimatedTurnaroundDays: 2, IsPopular: true},
		},
		nil,
	)
	gt.NoError(t, err).Required()

	return httpctrl.New(usecase.New(memory.New(), catalog))
}

func doJSON(t *testing.T, h http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		gt.NoError(t, json.NewEncoder(&buf).Encode(body)).Required()
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	gt.NoError(t, json.Unmarshal(w.Body.Bytes(), &v)).Required()
	return v
}

func TestListChecks(t *testing.T) {
	srv := newTestServer(t)

	t.Run("all checks", func(t *testing.T) {
		w := doJSON(t, srv, http.MethodGet, "/api/checks", nil)
		gt.Value(t, w.Code).Equal(http.StatusOK)
		resp := decode[struct {
			Checks []model.CheckDefinition `json:"checks"`
		}](t, w)
		gt.Array(t, resp.Checks).Length(3)
	})

	t.Run("filtered by entity type", func(t *testing.T) {
		w := doJSON(t, srv, http.MethodGet, "/api/checks?entity_type=company", nil)
		gt.Value(t, w.Code).Equal(http.StatusOK)
		resp := decode[struct {
			Checks []model.CheckDefinition `json:"checks"`
		}](t, w)
		gt.Array(t, resp.Checks).Length(1).Required()
		gt.Value(t, resp.Checks[0].ID).Equal(types.CheckID("cipc"))
	})

	t.Run("invalid entity type", func(t *testing.T) {
		w := doJSON(t, srv, http.MethodGet, "/api/checks?entity_type=robot", nil)
		gt.Value(t, w.Code).Equal(http.StatusUnprocessableEntity)
	})
}

func TestListPackages(t *testing.T) {
	srv := newTestServer(t)

	w := doJSON(t, srv, http.MethodGet, "/api/packages?entity_type=company", nil)
	gt.Value(t, w.Code).Equal(http.StatusOK)
	resp := decode[struct {
		Packages []model.Package `json:"packages"`
	}](t, w)
	gt.Array(t, resp.Packages).Length(0)
	gt.String(t, w.Body.String()).Contains(`"packages":[]`)
}

func TestQuote(t *testing.T) {
	srv := newTestServer(t)

	t.Run("individual selection", func(t *testing.T) {
		w := doJSON(t, srv, http.MethodPost, "/api/quote", usecase.QuoteInput{
			EntityType: types.EntityTypeIndividual,
			Mode:       types.SelectionModeIndividual,
			CheckIDs:   []types.CheckID{"id-verify", "criminal"},
		})
		gt.Value(t, w.Code).Equal(http.StatusOK)

		calc := decode[model.Calculation](t, w)
		gt.Value(t, calc.TotalCost).Equal(200.0)
		gt.Value(t, calc.TotalTurnaroundDays).Equal(2)
		gt.Value(t, calc.ConsentRequired).Equal([]types.CheckID{"criminal"})
		gt.Array(t, calc.PackageSuggestions).Length(1)
	})

	t.Run("invalid mode", func(t *testing.T) {
		w := doJSON(t, srv, http.MethodPost, "/api/quote", map[string]string{
			"entity_type": "individual",
			"mode":        "bundle",
		})
		gt.Value(t, w.Code).Equal(http.StatusUnprocessableEntity)
		gt.String(t, w.Body.String()).Contains("invalid selection mode")
	})

	t.Run("malformed body", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/api/quote", bytes.NewBufferString("{"))
		w := httptest.NewRecorder()
		srv.ServeHTTP(w, req)
		gt.Value(t, w.Code).Equal(http.StatusBadRequest)
	})
}

func TestSelectionTransitions(t *testing.T) {
	srv := newTestServer(t)
	empty := model.NewSelection(types.EntityTypeIndividual)

	type selectionResp struct {
		Selection model.Selection `json:"selection"`
	}

	t.Run("toggle", func(t *testing.T) {
		w := doJSON(t, srv, http.MethodPost, "/api/selection/toggle", map[string]any{
			"selection": empty,
			"check_id":  "criminal",
		})
		gt.Value(t, w.Code).Equal(http.StatusOK)
		resp := decode[selectionResp](t, w)
		gt.Value(t, resp.Selection.Mode).Equal(types.SelectionModeIndividual)
		gt.Value(t, resp.Selection.CheckIDs).Equal([]types.CheckID{"criminal"})
	})

	t.Run("toggle from package given only its ID", func(t *testing.T) {
		w := doJSON(t, srv, http.MethodPost, "/api/selection/toggle", map[string]any{
			"selection": map[string]any{"entity_type": "individual", "mode": "package", "package_id": "basic"},
			"check_id":  "criminal",
		})
		gt.Value(t, w.Code).Equal(http.StatusOK)
		resp := decode[selectionResp](t, w)
		gt.Value(t, resp.Selection.Mode).Equal(types.SelectionModeIndividual)
		gt.Value(t, resp.Selection.PackageID).Equal(types.PackageID(""))
		gt.Value(t, resp.Selection.CheckIDs).Equal([]types.CheckID{"id-verify"})
	})

	t.Run("toggle from unknown package", func(t *testing.T) {
		w := doJSON(t, srv, http.MethodPost, "/api/selection/toggle", map[string]any{
			"selection": map[string]any{"entity_type": "individual", "mode": "package", "package_id": "ghost"},
			"check_id":  "criminal",
		})
		gt.Value(t, w.Code).Equal(http.StatusNotFound)
	})

	t.Run("toggle unknown check", func(t *testing.T) {
		w := doJSON(t, srv, http.MethodPost, "/api/selection/toggle", map[string]any{
			"selection": empty,
			"check_id":  "ghost",
		})
		gt.Value(t, w.Code).Equal(http.StatusNotFound)
	})

	t.Run("toggle inapplicable check", func(t *testing.T) {
		w := doJSON(t, srv, http.MethodPost, "/api/selection/toggle", map[string]any{
			"selection": empty,
			"check_id":  "cipc",
		})
		gt.Value(t, w.Code).Equal(http.StatusUnprocessableEntity)
	})

	t.Run("select package", func(t *testing.T) {
		w := doJSON(t, srv, http.MethodPost, "/api/selection/package", map[string]any{
			"selection":  empty,
			"package_id": "basic",
		})
		gt.Value(t, w.Code).Equal(http.StatusOK)
		resp := decode[selectionResp](t, w)
		gt.Value(t, resp.Selection.Mode).Equal(types.SelectionModePackage)
		gt.Value(t, resp.Selection.PackageID).Equal(types.PackageID("basic"))
	})

	t.Run("change entity type", func(t *testing.T) {
		w := doJSON(t, srv, http.MethodPost, "/api/selection/entity-type", map[string]any{
			"selection":   model.Selection{EntityType: types.EntityTypeIndividual, Mode: types.SelectionModeIndividual, CheckIDs: []types.CheckID{"criminal"}},
			"entity_type": "company",
		})
		gt.Value(t, w.Code).Equal(http.StatusOK)
		resp := decode[selectionResp](t, w)
		gt.Value(t, resp.Selection).Equal(model.NewSelection(types.EntityTypeCompany))
	})
}

func TestRequests(t *testing.T) {
	srv := newTestServer(t)

	w := doJSON(t, srv, http.MethodPost, "/api/requests", map[string]any{
		"subject_name": "Sipho Dlamini",
		"selection": model.Selection{
			EntityType: types.EntityTypeIndividual,
			Mode:       types.SelectionModePackage,
			PackageID:  "basic",
		},
	})
	gt.Value(t, w.Code).Equal(http.StatusCreated)
	created := decode[model.VettingRequest](t, w)
	gt.Value(t, created.Status).Equal(types.RequestStatusPendingConsent)
	gt.Value(t, created.TotalCost).Equal(180.0)

	t.Run("get", func(t *testing.T) {
		w := doJSON(t, srv, http.MethodGet, "/api/requests/"+created.ID.String(), nil)
		gt.Value(t, w.Code).Equal(http.StatusOK)
		got := decode[model.VettingRequest](t, w)
		gt.Value(t, got.SubjectName).Equal("Sipho Dlamini")
	})

	t.Run("list", func(t *testing.T) {
		w := doJSON(t, srv, http.MethodGet, "/api/requests", nil)
		gt.Value(t, w.Code).Equal(http.StatusOK)
		resp := decode[struct {
			Requests []model.VettingRequest `json:"requests"`
		}](t, w)
		gt.Array(t, resp.Requests).Length(1)
	})

	t.Run("unknown request", func(t *testing.T) {
		w := doJSON(t, srv, http.MethodGet, "/api/requests/"+model.NewRequestID().String(), nil)
		gt.Value(t, w.Code).Equal(http.StatusNotFound)
	})

	t.Run("empty selection", func(t *testing.T) {
		w := doJSON(t, srv, http.MethodPost, "/api/requests", map[string]any{
			"subject_name": "Nobody",
			"selection":    model.NewSelection(types.EntityTypeIndividual),
		})
		gt.Value(t, w.Code).Equal(http.StatusUnprocessableEntity)
	})

	t.Run("missing subject", func(t *testing.T) {
		w := doJSON(t, srv, http.MethodPost, "/api/requests", map[string]any{
			"selection": model.Selection{
				EntityType: types.EntityTypeIndividual,
				Mode:       types.SelectionModeIndividual,
				CheckIDs:   []types.CheckID{"id-verify"},
			},
		})
		gt.Value(t, w.Code).Equal(http.StatusUnprocessableEntity)
	})
}

func TestHealth(t *testing.T) {
	w := doJSON(t, newTestServer(t), http.MethodGet, "/health", nil)
	gt.Value(t, w.Code).Equal(http.StatusOK)
}
