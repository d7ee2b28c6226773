package handlers

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/mmdatafocus/intake_backend/ferb"
	"github.com/mmdatafocus/intake_backend/models"
	"github.com/mmdatafocus/intake_backend/session"
	"github.com/mmdatafocus/intake_backend/utils"
	"github.com/mmdatafocus/intake_backend/workflow"
	"github.com/sirupsen/logrus"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func str(s string) *string { return &s }

type stubAPI struct {
	deleteErr error
}

func (stubAPI) screening() models.ScreeningPayload {
	return models.ScreeningPayload{
		ID:   "42",
		Name: str("Intake"),
		Participants: []models.Participant{
			{ID: "v", FirstName: str("Vic"), Roles: []string{models.RoleVictim}},
			{ID: "p", FirstName: str("Per"), Roles: []string{models.RolePerpetrator}},
		},
	}
}

func (a stubAPI) GetScreening(ctx context.Context, id string) (models.ScreeningPayload, error) {
	if id != "42" {
		return models.ScreeningPayload{}, &ferb.APIError{Status: http.StatusNotFound, Body: []byte(`{"error":"no such screening"}`)}
	}
	return a.screening(), nil
}
func (a stubAPI) CreateScreening(ctx context.Context, in models.ScreeningPayload) (models.ScreeningPayload, error) {
	return a.screening(), nil
}
func (a stubAPI) UpdateScreening(ctx context.Context, in models.ScreeningPayload) (models.ScreeningPayload, error) {
	return in, nil
}
func (a stubAPI) SubmitScreening(ctx context.Context, id string) (models.ScreeningPayload, error) {
	return a.screening(), nil
}
func (a stubAPI) GetAllegations(ctx context.Context, screeningId string) ([]models.AllegationPayload, error) {
	return []models.AllegationPayload{}, nil
}
func (a stubAPI) GetRelationships(ctx context.Context, screeningId string) ([]models.RelatedPerson, error) {
	return []models.RelatedPerson{}, nil
}
func (a stubAPI) GetHistoryOfInvolvements(ctx context.Context, screeningId string) (models.HistoryOfInvolvement, error) {
	return models.HistoryOfInvolvement{}, nil
}
func (a stubAPI) DeleteParticipant(ctx context.Context, id string) error { return a.deleteErr }
func (a stubAPI) CreateParticipant(ctx context.Context, in models.NewParticipant) (models.Participant, error) {
	return models.Participant{}, nil
}
func (a stubAPI) GetSystemCodes(ctx context.Context) ([]models.SystemCode, error) {
	return []models.SystemCode{}, nil
}

type stubAudit struct{}

func (stubAudit) List(ctx context.Context, screeningId string) ([]*models.AuditEntry, error) {
	return nil, utils.ErrorRecordNotFound
}

func newTestRouter(api workflow.API) (*gin.Engine, *session.Registry, *[]string) {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	reg := session.NewRegistry(0)
	svc := workflow.NewService(api, workflow.WithLogger(logger))
	revoked := &[]string{}

	r := gin.New()
	r.Use(func(c *gin.Context) {
		ctx := c.Request.Context()
		if u := c.GetHeader("X-Test-User"); u != "" {
			ctx = utils.SetUsernameInContext(ctx, u)
			ctx = utils.SetTokenInContext(ctx, "tok-"+u)
		}
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	})
	RegisterRoutes(r.Group("/api/v1"), reg, svc, stubAudit{}, func(token string) error {
		*revoked = append(*revoked, token)
		return nil
	})
	return r, reg, revoked
}

func do(r http.Handler, method, path, user, body string) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if user != "" {
		req.Header.Set("X-Test-User", user)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func openSession(t *testing.T, r http.Handler) string {
	t.Helper()
	w := do(r, http.MethodPost, "/api/v1/screenings/42/sessions", "ann", "")
	if w.Code != http.StatusCreated {
		t.Fatalf("open session: expected 201, got %d %s", w.Code, w.Body.String())
	}
	var resp struct {
		SessionId string `json:"session_id"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil || resp.SessionId == "" {
		t.Fatalf("no session id in %s", w.Body.String())
	}
	return resp.SessionId
}

func TestOpenScreening_UnknownScreeningPassesFerbStatus(t *testing.T) {
	r, reg, _ := newTestRouter(stubAPI{})
	w := do(r, http.MethodPost, "/api/v1/screenings/99/sessions", "ann", "")
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), `"body":{"error":"no such screening"}`) {
		t.Fatalf("ferb body not passed through: %s", w.Body.String())
	}
	if reg.Len() != 0 {
		t.Fatalf("failed open left a session behind")
	}
}

func TestDispatch_AppliesUIMessagesOnly(t *testing.T) {
	r, _, _ := newTestRouter(stubAPI{})
	sid := openSession(t, r)

	w := do(r, http.MethodPost, "/api/v1/sessions/"+sid+"/messages", "ann",
		`{"type":"form_field_set","payload":{"form":"narrative","field":"report_narrative","value":"typed"}}`)
	if w.Code != http.StatusOK || !strings.Contains(w.Body.String(), `"value":"typed"`) {
		t.Fatalf("dispatch failed: %d %s", w.Code, w.Body.String())
	}

	w = do(r, http.MethodPost, "/api/v1/sessions/"+sid+"/messages", "ann", `{"type":"fetch_completed","payload":{"ok":true}}`)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("completion kinds must be rejected, got %d", w.Code)
	}

	w = do(r, http.MethodPost, "/api/v1/sessions/"+sid+"/messages", "bob",
		`{"type":"form_reset","payload":{"form":"narrative"}}`)
	if w.Code != http.StatusForbidden {
		t.Fatalf("another worker's session must be forbidden, got %d", w.Code)
	}
}

func TestAllegationsView(t *testing.T) {
	r, _, _ := newTestRouter(stubAPI{})
	sid := openSession(t, r)

	do(r, http.MethodPost, "/api/v1/sessions/"+sid+"/messages", "ann",
		`{"type":"allegation_types_set","payload":{"victim_id":"v","perpetrator_id":"p","allegation_types":["General neglect"]}}`)
	w := do(r, http.MethodGet, "/api/v1/sessions/"+sid+"/allegations", "ann", "")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	var view struct {
		Rows []struct {
			VictimID        string   `json:"victim_id"`
			AllegationTypes []string `json:"allegation_types"`
		} `json:"rows"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &view); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(view.Rows) != 1 || view.Rows[0].VictimID != "v" || len(view.Rows[0].AllegationTypes) != 1 {
		t.Fatalf("unexpected view %s", w.Body.String())
	}
}

func TestRemoveParticipant(t *testing.T) {
	r, _, _ := newTestRouter(stubAPI{})
	sid := openSession(t, r)

	w := do(r, http.MethodDelete, "/api/v1/sessions/"+sid+"/participants/v", "ann", "")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d %s", w.Code, w.Body.String())
	}
	if !strings.Contains(w.Body.String(), `"participant_id":"v"`) {
		t.Fatalf("unexpected body %s", w.Body.String())
	}

	failing, _, _ := newTestRouter(stubAPI{deleteErr: &ferb.APIError{Status: http.StatusInternalServerError, Body: []byte(`{"error":"db"}`)}})
	sid = openSession(t, failing)
	w = do(failing, http.MethodDelete, "/api/v1/sessions/"+sid+"/participants/v", "ann", "")
	if w.Code != http.StatusBadGateway {
		t.Fatalf("expected 502 for a ferb 500, got %d", w.Code)
	}
	w = do(failing, http.MethodGet, "/api/v1/sessions/"+sid+"/errors", "ann", "")
	if !strings.Contains(w.Body.String(), `"delete_participant":{"status":500,"body":{"error":"db"}}`) {
		t.Fatalf("delete notice missing: %s", w.Body.String())
	}
}

func TestSaveCard_UnknownCard(t *testing.T) {
	r, _, _ := newTestRouter(stubAPI{})
	sid := openSession(t, r)
	if w := do(r, http.MethodPost, "/api/v1/sessions/"+sid+"/cards/contacts/save", "ann", ""); w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
	if w := do(r, http.MethodPost, "/api/v1/sessions/"+sid+"/cards/narrative/save", "ann", ""); w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d %s", w.Code, w.Body.String())
	}
}

func TestAttach_RequiresLegacyId(t *testing.T) {
	r, _, _ := newTestRouter(stubAPI{})
	sid := openSession(t, r)
	if w := do(r, http.MethodPost, "/api/v1/sessions/"+sid+"/relationships/attach", "ann", `{}`); w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
	if w := do(r, http.MethodPost, "/api/v1/sessions/"+sid+"/relationships/attach", "ann", `{"legacy_id":"L-1"}`); w.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for an unknown related person, got %d", w.Code)
	}
}

func TestLogoutClosesSessionsAndRevokesToken(t *testing.T) {
	r, reg, revoked := newTestRouter(stubAPI{})
	sid := openSession(t, r)

	w := do(r, http.MethodPost, "/api/v1/logout", "ann", "")
	if w.Code != http.StatusOK || w.Body.String() != `{"closed_sessions":1}` {
		t.Fatalf("unexpected logout response %d %s", w.Code, w.Body.String())
	}
	if reg.Len() != 0 || len(*revoked) != 1 || (*revoked)[0] != "tok-ann" {
		t.Fatalf("logout did not close and revoke: %d %v", reg.Len(), *revoked)
	}
	if w := do(r, http.MethodGet, "/api/v1/sessions/"+sid, "ann", ""); w.Code != http.StatusNotFound {
		t.Fatalf("expected 404 after logout, got %d", w.Code)
	}
}

func TestAuditDisabled(t *testing.T) {
	r, _, _ := newTestRouter(stubAPI{})
	if w := do(r, http.MethodGet, "/api/v1/screenings/42/audit", "ann", ""); w.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503, got %d", w.Code)
	}
}
