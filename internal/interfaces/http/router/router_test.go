package router

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	appbooking "github.com/smbc/backend/internal/application/booking"
	appledger "github.com/smbc/backend/internal/application/ledger"
	appreport "github.com/smbc/backend/internal/application/report"
	"github.com/smbc/backend/internal/infrastructure/auth"
	"github.com/smbc/backend/internal/infrastructure/cache"
	"github.com/smbc/backend/internal/infrastructure/config"
	"github.com/smbc/backend/internal/infrastructure/persistence"
	"github.com/smbc/backend/internal/interfaces/http/handler"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type testServer struct {
	engine *gin.Engine
	tokens *auth.JWTService
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := persistence.NewDatabase(&config.DatabaseConfig{
		Driver:   config.DriverSQLite,
		Path:     filepath.Join(t.TempDir(), "ventures.db"),
		LogLevel: "silent",
	}, zap.NewNop())
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	require.NoError(t, db.AutoMigrate(t.Context()))

	manila, err := time.LoadLocation("Asia/Manila")
	require.NoError(t, err)
	clock := func() time.Time { return time.Date(2026, 2, 10, 9, 0, 0, 0, manila) }

	scope := persistence.NewGormTransactionScope(db.DB)
	entries := persistence.NewGormEntryRepository(db.DB)
	wages := persistence.NewGormWageRepository(db.DB)
	projects := persistence.NewGormProjectRepository(db.DB)
	bookings := persistence.NewGormBookingRepository(db.DB)

	recorder := appledger.NewRecordingService(scope.Ledger(), entries, projects, persistence.NewGormInvoiceSequence(db.DB), nil)
	recorder.SetClock(clock)
	bookingSvc := appbooking.NewBookingService(scope.Booking(), bookings, entries, nil)
	bookingSvc.SetClock(clock)
	reports := appreport.NewService(entries, wages, projects, nil)
	reports.SetClock(clock)

	store := cache.NewInMemoryIdempotencyStore()
	t.Cleanup(func() { store.Close() })

	tokens := auth.NewJWTService(config.JWTConfig{Secret: "router-test-secret-0123456789abcdef", Issuer: "ventures-backend", Expiration: time.Hour})

	engine, err := New(Config{ServiceName: "test", MaxBodySize: 1 << 20, IdempotencyTTL: time.Hour},
		Deps{Tokens: tokens, Idempotency: store},
		Handlers{
			System:   handler.NewSystemHandler("ventures-backend", db),
			Ledger:   handler.NewLedgerHandler(recorder, appledger.NewProjectService(projects, nil)),
			Booking:  handler.NewBookingHandler(bookingSvc),
			Report:   handler.NewReportHandler(reports),
			Activity: handler.NewActivityHandler(appledger.NewActivityService(persistence.NewGormActivityRepository(db.DB), projects, nil)),
		})
	require.NoError(t, err)
	return &testServer{engine: engine, tokens: tokens}
}

func (s *testServer) token(t *testing.T, role, dept string) string {
	t.Helper()
	token, _, err := s.tokens.Issue(auth.IssueInput{UserID: uuid.New(), Role: role, Department: dept})
	require.NoError(t, err)
	return token
}

type call struct {
	method, path, token, idemKey string
	body                         any
}

func (s *testServer) do(t *testing.T, c call) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()
	var buf bytes.Buffer
	if c.body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(c.body))
	}
	req := httptest.NewRequest(c.method, c.path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
	if c.idemKey != "" {
		req.Header.Set("Idempotency-Key", c.idemKey)
	}
	w := httptest.NewRecorder()
	s.engine.ServeHTTP(w, req)

	var out map[string]any
	if ct := w.Header().Get("Content-Type"); len(ct) >= 16 && ct[:16] == "application/json" {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	}
	return w, out
}

func data(t *testing.T, body map[string]any) map[string]any {
	t.Helper()
	d, ok := body["data"].(map[string]any)
	require.True(t, ok, "response has no data object: %v", body)
	return d
}

func errorCode(body map[string]any) string {
	e, _ := body["error"].(map[string]any)
	code, _ := e["code"].(string)
	return code
}

func TestHealth(t *testing.T) {
	s := newTestServer(t)
	w, body := s.do(t, call{method: http.MethodGet, path: "/health"})
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "ok", data(t, body)["database"])
}

func TestUnknownRoute(t *testing.T) {
	s := newTestServer(t)
	w, body := s.do(t, call{method: http.MethodGet, path: "/nope"})
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "ROUTE_NOT_FOUND", errorCode(body))
}

func TestCarenderiaFlow(t *testing.T) {
	s := newTestServer(t)
	staff := s.token(t, "Staff", "Carenderia")
	path := "/api/v1/carenderia/transactions"

	w, _ := s.do(t, call{method: http.MethodPost, path: path, body: map[string]any{}})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w, body := s.do(t, call{method: http.MethodPost, path: path, token: s.token(t, "Staff", "Catering"),
		body: map[string]any{"lines": []any{}}})
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Equal(t, "FORBIDDEN", errorCode(body))

	batch := map[string]any{"lines": []map[string]any{
		{"date": "2026-02-03", "category": "DAILY_SALES", "amount": "1500.00"},
		{"date": "2026-02-03", "category": "ELECTRIC_BILL", "amount": "320.50"},
	}}
	w, body = s.do(t, call{method: http.MethodPost, path: path, token: staff, idemKey: "batch-1", body: batch})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	assert.EqualValues(t, 2, data(t, body)["count"])

	w, body = s.do(t, call{method: http.MethodPost, path: path, token: staff, idemKey: "batch-1", body: batch})
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "DUPLICATE_REQUEST", errorCode(body))

	w, body = s.do(t, call{method: http.MethodGet, path: path + "?month=2026-02", token: staff})
	require.Equal(t, http.StatusOK, w.Code)
	rows := body["data"].([]any)
	require.Len(t, rows, 2)
	id := rows[0].(map[string]any)["id"].(string)

	// staff cannot delete, corporate can
	w, _ = s.do(t, call{method: http.MethodDelete, path: path + "/" + id, token: staff})
	assert.Equal(t, http.StatusForbidden, w.Code)
	w, _ = s.do(t, call{method: http.MethodDelete, path: path + "/" + id, token: s.token(t, "Staff", "Corporate")})
	assert.Equal(t, http.StatusNoContent, w.Code)

	w, body = s.do(t, call{method: http.MethodGet, path: "/api/v1/carenderia/reports/trial-balance?month=2026-02", token: staff})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, "2026-02", data(t, body)["month"])

	w, body = s.do(t, call{method: http.MethodGet, path: "/api/v1/carenderia/reports/trial-balance?month=2026-03", token: staff})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "VALIDATION_ERROR", errorCode(body))
}

func TestValidationDetails(t *testing.T) {
	s := newTestServer(t)
	w, body := s.do(t, call{
		method: http.MethodPost,
		path:   "/api/v1/catering/expenses",
		token:  s.token(t, "Staff", "Catering"),
		body: map[string]any{"lines": []map[string]any{
			{"date": "10/02/2026", "category": "NOT_A_CATEGORY", "amount": "10"},
		}},
	})
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "VALIDATION_ERROR", errorCode(body))
	details := body["error"].(map[string]any)["details"].([]any)
	assert.Len(t, details, 2)
}

func TestConstructionInvoiceFlow(t *testing.T) {
	s := newTestServer(t)
	token := s.token(t, "Staff", "Construction")

	w, body := s.do(t, call{method: http.MethodPost, path: "/api/v1/construction/projects", token: token, body: map[string]any{
		"contractor_name": "SMBC", "project_name": "Barangay Hall", "duration_days": 90, "contract_price": "1500000",
	}})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	projectID := data(t, body)["id"].(string)

	w, body = s.do(t, call{method: http.MethodGet, path: "/api/v1/construction/invoice-numbers/next", token: token})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "INV-20260210-0001", data(t, body)["invoice_number"])

	w, body = s.do(t, call{method: http.MethodPost, path: "/api/v1/construction/materials", token: token, body: map[string]any{
		"project_id":   projectID,
		"expense_date": "2026-02-09",
		"lines": []map[string]any{
			{"item": "Cement", "quantity": "10", "unit": "bag", "unit_price": "250"},
		},
	}})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	assert.Equal(t, "INV-20260210-0001", data(t, body)["invoice_number"])

	w, body = s.do(t, call{method: http.MethodGet, path: "/api/v1/construction/invoice-numbers/next", token: token})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "INV-20260210-0002", data(t, body)["invoice_number"])

	w, body = s.do(t, call{method: http.MethodGet, path: "/api/v1/construction/projects/" + uuid.NewString(), token: token})
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "NOT_FOUND", errorCode(body))
}

func TestConstructionEntryEdit(t *testing.T) {
	s := newTestServer(t)
	staff := s.token(t, "Staff", "Construction")
	corporate := s.token(t, "Staff", "Corporate")

	w, body := s.do(t, call{method: http.MethodPost, path: "/api/v1/construction/projects", token: staff, body: map[string]any{
		"contractor_name": "SMBC", "project_name": "Covered Court", "duration_days": 60, "contract_price": "800000",
	}})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	projectID := data(t, body)["id"].(string)

	w, body = s.do(t, call{method: http.MethodPost, path: "/api/v1/construction/gasoline", token: staff, body: map[string]any{
		"project_id":   projectID,
		"expense_date": "2026-02-09",
		"lines":        []map[string]any{{"amount": "1500", "reference": "OR-1"}},
	}})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	entries := data(t, body)["entries"].([]any)
	require.Len(t, entries, 1)
	path := "/api/v1/construction/entries/" + entries[0].(map[string]any)["id"].(string)

	edit := map[string]any{"date": "2026-02-08", "amount": "1750"}
	w, _ = s.do(t, call{method: http.MethodPut, path: path, token: staff, body: edit})
	assert.Equal(t, http.StatusForbidden, w.Code)

	w, body = s.do(t, call{method: http.MethodPut, path: path, token: corporate, body: edit})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, "1750", data(t, body)["amount"])
	assert.Equal(t, "2026-02-08", data(t, body)["date"])
	assert.Equal(t, "INV-20260210-0001", data(t, body)["invoice_number"])

	w, _ = s.do(t, call{method: http.MethodDelete, path: path, token: corporate})
	assert.Equal(t, http.StatusNoContent, w.Code)

	w, body = s.do(t, call{method: http.MethodPut, path: path, token: corporate, body: edit})
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "NOT_FOUND", errorCode(body))
}

func TestConstructionProjectViews(t *testing.T) {
	s := newTestServer(t)
	staff := s.token(t, "Staff", "Construction")
	corporate := s.token(t, "Staff", "Corporate")
	base := "/api/v1/construction"

	w, body := s.do(t, call{method: http.MethodPost, path: base + "/projects", token: staff, body: map[string]any{
		"contractor_name": "SMBC", "project_name": "Covered Court", "duration_days": 60, "contract_price": "800000",
	}})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	projectID := data(t, body)["id"].(string)

	w, _ = s.do(t, call{method: http.MethodPost, path: base + "/gasoline", token: staff, body: map[string]any{
		"project_id":   projectID,
		"expense_date": "2026-02-09",
		"lines":        []map[string]any{{"amount": "1500", "reference": "OR-1"}},
	}})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w, body = s.do(t, call{method: http.MethodGet, path: base + "/projects", token: staff})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, body["data"].([]any), 1)

	w, body = s.do(t, call{method: http.MethodGet, path: base + "/reports/balance-sheet?project_id=" + projectID, token: staff})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	sheet := data(t, body)
	assert.Equal(t, "Covered Court", sheet["scope"])
	summary := sheet["summary"].(map[string]any)
	assert.Equal(t, "800000", summary["overall_contract_total"])
	assert.Equal(t, "1500", summary["overall_expense_total"])
	assert.Equal(t, "798500", summary["overall_balance"])

	w, body = s.do(t, call{method: http.MethodGet, path: base + "/reports/balance-sheet", token: staff})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "All Projects", data(t, body)["scope"])

	w, _ = s.do(t, call{method: http.MethodGet, path: base + "/reports/balance-sheet?project_id=nope", token: staff})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	w, body = s.do(t, call{method: http.MethodGet, path: base + "/reports/balance-sheet?project_id=" + uuid.NewString(), token: staff})
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "NOT_FOUND", errorCode(body))

	w, body = s.do(t, call{method: http.MethodGet, path: base + "/projects/" + projectID + "/overview", token: staff})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	overview := data(t, body)
	assert.Equal(t, "798500", overview["balance"])
	expenses := overview["expenses"].([]any)
	require.Len(t, expenses, 1)
	assert.Equal(t, "gasoline", expenses[0].(map[string]any)["kind"])

	// activities carry no amount and leave the balance alone
	activities := base + "/projects/" + projectID + "/activities"
	w, body = s.do(t, call{method: http.MethodPost, path: activities, token: staff, body: map[string]any{
		"expense_date": "2026-02-09",
		"activity_entries": []map[string]any{
			{"activity": "Poured footing", "activity_date": "2026-02-09T08:30"},
			{"activity": ""},
		},
	}})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w, body = s.do(t, call{method: http.MethodGet, path: activities, token: staff})
	require.Equal(t, http.StatusOK, w.Code)
	rows := body["data"].([]any)
	require.Len(t, rows, 1)
	row := rows[0].(map[string]any)
	assert.Equal(t, "08:30", row["activity_time"])
	assert.Equal(t, "Pending", row["activity_status"])
	activityPath := activities + "/" + row["id"].(string)

	edit := map[string]any{"activity": "Poured footing", "activity_date": "2026-02-09T15:00", "activity_status": "Done"}
	w, _ = s.do(t, call{method: http.MethodPut, path: activityPath, token: staff, body: edit})
	assert.Equal(t, http.StatusForbidden, w.Code)
	w, body = s.do(t, call{method: http.MethodPut, path: activityPath, token: corporate, body: edit})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, "Done", data(t, body)["activity_status"])

	w, _ = s.do(t, call{method: http.MethodDelete, path: activityPath, token: corporate})
	assert.Equal(t, http.StatusNoContent, w.Code)
	w, _ = s.do(t, call{method: http.MethodDelete, path: activityPath, token: corporate})
	assert.Equal(t, http.StatusNotFound, w.Code)

	w, body = s.do(t, call{method: http.MethodGet, path: base + "/reports/balance-sheet?project_id=" + projectID, token: staff})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "798500", data(t, body)["summary"].(map[string]any)["overall_balance"])
}

func TestBookingPaymentFlow(t *testing.T) {
	s := newTestServer(t)
	token := s.token(t, "Staff", "Catering")

	w, body := s.do(t, call{method: http.MethodPost, path: "/api/v1/catering/bookings", token: token, body: map[string]any{
		"requestor_name": "Maria", "event_date": "2026-02-20", "contract_amount": "1000.00",
	}})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	id := data(t, body)["id"].(string)
	base := "/api/v1/catering/bookings/" + id

	w, _ = s.do(t, call{method: http.MethodPut, path: base + "/status", token: token, body: map[string]any{"status": "Confirmed"}})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w, body = s.do(t, call{method: http.MethodPost, path: base + "/payments", token: token, body: map[string]any{
		"amount": "400.00", "payment_type": "Down Payment",
	}})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	assert.Equal(t, "600", data(t, body)["running_balance"])
	assert.Equal(t, false, data(t, body)["booking_status_updated"])

	w, body = s.do(t, call{method: http.MethodPost, path: base + "/payments", token: token, body: map[string]any{
		"amount": "600.00", "payment_type": "Full Payment",
	}})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	assert.Equal(t, true, data(t, body)["booking_status_updated"])
	assert.Equal(t, "Completed", data(t, body)["booking_status"])

	w, body = s.do(t, call{method: http.MethodGet, path: base + "/payments/total", token: token})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "1000", data(t, body)["total_paid"])

	w, body = s.do(t, call{method: http.MethodPost, path: base + "/payments", token: token, body: map[string]any{
		"amount": "1.00", "payment_type": "Partial Payment",
	}})
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Equal(t, "INVALID_STATE_TRANSITION", errorCode(body))
}
