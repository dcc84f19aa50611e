package routes

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"bookingops/handlers"
	"bookingops/models"
	"bookingops/services/booking"
	"bookingops/services/bookingops"
	"bookingops/services/reasoning"
	"bookingops/utils"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testSecret = []byte("console-secret")

func newRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	engine := reasoning.NewEngine(reasoning.WithStrict(true))
	svc := bookingops.NewService(booking.NewStore(), reasoning.NewCachedReasoner(engine, nil, nil), nil, nil)
	bh := handlers.NewBookingHandler(svc, nil, 40)
	hb := handlers.NewHandlerBundle(bh, handlers.HealthHandler(nil), testSecret, 1000)

	r := gin.New()
	r.Use(utils.ErrorHandler())
	RegisterRoutes(r, hb)
	return r
}

func token(t *testing.T, role string) string {
	t.Helper()
	tok, err := utils.GenerateRoleToken(testSecret, "tester", role, time.Hour)
	require.NoError(t, err)
	return tok
}

func do(r *gin.Engine, method, path, role string, body any, t *testing.T) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if role != "" {
		req.Header.Set("Authorization", "Bearer "+token(t, role))
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func intakeBody() map[string]any {
	return map[string]any{
		"contact": map[string]any{"firstName": "Amara", "lastName": "Okafor", "email": "amara@example.com"},
		"booking": map[string]any{
			"serviceCategory":  "accommodation",
			"desiredDateStart": "2026-11-02",
			"timezone":         "Africa/Nairobi",
			"budgetLevel":      "luxury",
			"urgency":          "urgent",
		},
		"preferences": map[string]any{"followUpByHuman": false, "notifications": []string{"email"}},
		"notes":       map[string]any{"tags": "vip, repeat"},
		"channelMeta": map[string]any{"inboundChannel": "web", "leadSource": "direct-site"},
	}
}

type recordResponse struct {
	Record models.BookingRecord `json:"record"`
}

func createBooking(t *testing.T, r *gin.Engine) models.BookingRecord {
	t.Helper()
	w := do(r, http.MethodPost, "/api/bookings", "", intakeBody(), t)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var resp recordResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp.Record
}

func TestCreateBooking(t *testing.T) {
	r := newRouter(t)
	rec := createBooking(t, r)

	assert.NotEmpty(t, rec.ID)
	assert.Equal(t, models.OwnerAutomation, rec.RoleOwner)
	assert.Equal(t, models.StatusAcknowledged, rec.Status)
	assert.Equal(t, models.IntentLuxuryLodgingRush, rec.Reasoning.IntentLabel)
	assert.Equal(t, []string{"vip", "repeat"}, rec.Payload.Notes.Tags)
}

func TestCreateBookingValidationFailure(t *testing.T) {
	r := newRouter(t)
	body := intakeBody()
	body["contact"] = map[string]any{"firstName": "Amara"}

	w := do(r, http.MethodPost, "/api/bookings", "", body, t)
	require.Equal(t, http.StatusBadRequest, w.Code)

	var resp struct {
		Message string `json:"message"`
		Fields  []struct {
			Field  string `json:"field"`
			Reason string `json:"reason"`
		} `json:"fields"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "Invalid booking intake", resp.Message)
	var fields []string
	for _, f := range resp.Fields {
		fields = append(fields, f.Field)
	}
	assert.ElementsMatch(t, []string{"contact.lastName", "contact.email"}, fields)

	w = do(r, http.MethodPost, "/api/bookings", "", "not an object", t)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestConsoleRequiresRole(t *testing.T) {
	r := newRouter(t)
	rec := createBooking(t, r)

	tests := []struct {
		name   string
		method string
		path   string
		role   string
		want   int
	}{
		{"list without token", http.MethodGet, "/api/bookings", "", http.StatusUnauthorized},
		{"list as automation", http.MethodGet, "/api/bookings", "automation", http.StatusForbidden},
		{"list as operations", http.MethodGet, "/api/bookings", "operations", http.StatusOK},
		{"get as admin", http.MethodGet, "/api/bookings/" + rec.ID, "admin", http.StatusOK},
		{"get unknown", http.MethodGet, "/api/bookings/nope", "admin", http.StatusNotFound},
		{"audits without token", http.MethodGet, "/api/audits", "", http.StatusUnauthorized},
		{"sla as operations", http.MethodGet, "/api/sla", "operations", http.StatusOK},
		{"health is public", http.MethodGet, "/health", "", http.StatusOK},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			w := do(r, tc.method, tc.path, tc.role, nil, t)
			assert.Equalf(t, tc.want, w.Code, "%s: %s", tc.name, w.Body.String())
		})
	}
}

func TestRejectsTokenSignedWithOtherSecret(t *testing.T) {
	r := newRouter(t)
	forged, err := utils.GenerateRoleToken([]byte("other"), "mallory", "admin", time.Hour)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/api/bookings", nil)
	req.Header.Set("Authorization", "Bearer "+forged)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestListBookingsReportsRole(t *testing.T) {
	r := newRouter(t)
	first := createBooking(t, r)
	second := createBooking(t, r)

	w := do(r, http.MethodGet, "/api/bookings", "operations", nil, t)
	require.Equal(t, http.StatusOK, w.Code)
	var resp struct {
		Role    string                 `json:"role"`
		Records []models.BookingRecord `json:"records"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "operations", resp.Role)
	require.Len(t, resp.Records, 2)
	assert.Equal(t, second.ID, resp.Records[0].ID)
	assert.Equal(t, first.ID, resp.Records[1].ID)
}

func TestPatchBookingAsAdmin(t *testing.T) {
	r := newRouter(t)
	rec := createBooking(t, r)

	w := do(r, http.MethodPatch, "/api/bookings/"+rec.ID, "admin",
		map[string]any{"status": "in_follow_up", "note": "Upgraded to suite"}, t)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp recordResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, models.StatusInFollowUp, resp.Record.Status)
	assert.Equal(t, models.OwnerAdmin, resp.Record.RoleOwner)
	require.Len(t, resp.Record.AuditTrail, 3)
	assert.Equal(t, models.ActionNoteAppended, resp.Record.AuditTrail[2].Action)

	w = do(r, http.MethodPatch, "/api/bookings/"+rec.ID, "admin", map[string]any{"status": "archived"}, t)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = do(r, http.MethodPatch, "/api/bookings/"+rec.ID, "operations", map[string]any{"status": ""}, t)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, models.StatusInFollowUp, resp.Record.Status)
	assert.Len(t, resp.Record.AuditTrail, 3)

	w = do(r, http.MethodPatch, "/api/bookings/missing", "operations", map[string]any{"note": "hello"}, t)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestRecentAuditsAndSLA(t *testing.T) {
	r := newRouter(t)
	rec := createBooking(t, r)
	createBooking(t, r)
	w := do(r, http.MethodPatch, "/api/bookings/"+rec.ID, "operations", map[string]any{"note": "Called guest"}, t)
	require.Equal(t, http.StatusOK, w.Code)

	w = do(r, http.MethodGet, "/api/audits?limit=2", "operations", nil, t)
	require.Equal(t, http.StatusOK, w.Code)
	var feed struct {
		Entries []struct {
			Action    string `json:"action"`
			BookingID string `json:"bookingId"`
		} `json:"entries"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &feed))
	require.Len(t, feed.Entries, 2)
	assert.Equal(t, models.ActionNoteAppended, feed.Entries[0].Action)
	assert.Equal(t, rec.ID, feed.Entries[0].BookingID)

	w = do(r, http.MethodGet, "/api/audits?limit=-1", "operations", nil, t)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = do(r, http.MethodGet, "/api/sla", "admin", nil, t)
	require.Equal(t, http.StatusOK, w.Code)
	var sla struct {
		SLA booking.SLASummary `json:"sla"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &sla))
	assert.Equal(t, 2, sla.SLA.Total)
	assert.Equal(t, 2, sla.SLA.Urgent)
	assert.Equal(t, 100, sla.SLA.AutomationShare)
}
