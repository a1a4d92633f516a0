package http_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nurpe/busfleet/internal/auth"
	httphandler "github.com/nurpe/busfleet/internal/http"
	"github.com/nurpe/busfleet/internal/http/middleware"
	"github.com/nurpe/busfleet/internal/model"
	"github.com/nurpe/busfleet/internal/service"
)

type mockResource[T any] struct {
	ListFn   func(ctx context.Context, filter service.ListFilter) ([]T, error)
	GetFn    func(ctx context.Context, id uint) (*T, error)
	CreateFn func(ctx context.Context, item *T) (*T, error)
	UpdateFn func(ctx context.Context, id uint, item *T) (*T, error)
	DeleteFn func(ctx context.Context, id uint) error
}

var _ httphandler.Resource[model.Bus] = (*mockResource[model.Bus])(nil)

func (m *mockResource[T]) List(ctx context.Context, filter service.ListFilter) ([]T, error) {
	return m.ListFn(ctx, filter)
}

func (m *mockResource[T]) Get(ctx context.Context, id uint) (*T, error) {
	return m.GetFn(ctx, id)
}

func (m *mockResource[T]) Create(ctx context.Context, item *T) (*T, error) {
	return m.CreateFn(ctx, item)
}

func (m *mockResource[T]) Update(ctx context.Context, id uint, item *T) (*T, error) {
	return m.UpdateFn(ctx, id, item)
}

func (m *mockResource[T]) Delete(ctx context.Context, id uint) error {
	return m.DeleteFn(ctx, id)
}

type mockAuth struct {
	SignupAdminFn func(ctx context.Context, input service.AdminSignupInput) (*service.AuthResult, error)
	SignupUserFn  func(ctx context.Context, input service.UserSignupInput) (*service.AuthResult, error)
	LoginAdminFn  func(ctx context.Context, input service.LoginInput) (*service.AuthResult, error)
	LoginUserFn   func(ctx context.Context, input service.LoginInput) (*service.AuthResult, error)
	MeFn          func(ctx context.Context, principal model.Principal) (*service.Profile, error)
}

var _ httphandler.AuthService = (*mockAuth)(nil)

func (m *mockAuth) SignupAdmin(ctx context.Context, input service.AdminSignupInput) (*service.AuthResult, error) {
	return m.SignupAdminFn(ctx, input)
}

func (m *mockAuth) SignupUser(ctx context.Context, input service.UserSignupInput) (*service.AuthResult, error) {
	return m.SignupUserFn(ctx, input)
}

func (m *mockAuth) LoginAdmin(ctx context.Context, input service.LoginInput) (*service.AuthResult, error) {
	return m.LoginAdminFn(ctx, input)
}

func (m *mockAuth) LoginUser(ctx context.Context, input service.LoginInput) (*service.AuthResult, error) {
	return m.LoginUserFn(ctx, input)
}

func (m *mockAuth) Me(ctx context.Context, principal model.Principal) (*service.Profile, error) {
	return m.MeFn(ctx, principal)
}

type mockReports struct {
	BusUsageFn        func(ctx context.Context, q service.ReportQuery) (*model.BusUsageReport, error)
	ComplaintsFn      func(ctx context.Context, q service.ReportQuery) (*model.ComplaintsReport, error)
	ShiftComplianceFn func(ctx context.Context, q service.ReportQuery) (*model.ShiftComplianceReport, error)
	SummaryFn         func(ctx context.Context, q service.ReportQuery) (*model.SummaryReport, error)
	AccidentsFn       func(ctx context.Context, q service.ReportQuery) (*model.AccidentsReport, error)
	ExportFn          func(ctx context.Context, q service.ReportQuery, format string) (*service.ExportResult, error)
}

var _ httphandler.ReportService = (*mockReports)(nil)

func (m *mockReports) BusUsage(ctx context.Context, q service.ReportQuery) (*model.BusUsageReport, error) {
	return m.BusUsageFn(ctx, q)
}

func (m *mockReports) Complaints(ctx context.Context, q service.ReportQuery) (*model.ComplaintsReport, error) {
	return m.ComplaintsFn(ctx, q)
}

func (m *mockReports) ShiftCompliance(ctx context.Context, q service.ReportQuery) (*model.ShiftComplianceReport, error) {
	return m.ShiftComplianceFn(ctx, q)
}

func (m *mockReports) Summary(ctx context.Context, q service.ReportQuery) (*model.SummaryReport, error) {
	return m.SummaryFn(ctx, q)
}

func (m *mockReports) Accidents(ctx context.Context, q service.ReportQuery) (*model.AccidentsReport, error) {
	return m.AccidentsFn(ctx, q)
}

func (m *mockReports) Export(ctx context.Context, q service.ReportQuery, format string) (*service.ExportResult, error) {
	return m.ExportFn(ctx, q, format)
}

type testServer struct {
	router     *gin.Engine
	tokens     *auth.TokenManager
	buses      *mockResource[model.Bus]
	authSvc    *mockAuth
	reports    *mockReports
	adminToken string
	userToken  string
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)

	ts := &testServer{
		tokens:  auth.NewTokenManager("test-secret", time.Hour),
		buses:   &mockResource[model.Bus]{},
		authSvc: &mockAuth{},
		reports: &mockReports{},
	}
	handler := httphandler.NewHandler(httphandler.Services{
		Drivers:    &mockResource[model.Driver]{},
		Conductors: &mockResource[model.Conductor]{},
		Buses:      ts.buses,
		Routes:     &mockResource[model.Route]{},
		Shifts:     &mockResource[model.Shift]{},
		Complaints: &mockResource[model.Complaint]{},
		Accidents:  &mockResource[model.AccidentReport]{},
		Auth:       ts.authSvc,
		Reports:    ts.reports,
	}, zerolog.Nop())
	ts.router = httphandler.NewRouter(handler, middleware.Auth(ts.tokens), "test", []string{"*"}, zerolog.Nop())

	var err error
	ts.adminToken, _, err = ts.tokens.Issue(model.Principal{ID: 1, Role: model.RoleAdmin})
	require.NoError(t, err)
	ts.userToken, _, err = ts.tokens.Issue(model.Principal{ID: 2, Role: model.RoleUser})
	require.NoError(t, err)
	return ts
}

func (ts *testServer) do(method, path, token, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	ts.router.ServeHTTP(rec, req)
	return rec
}

func TestBuses_CreateRequiresAdmin(t *testing.T) {
	ts := newTestServer(t)
	ts.buses.CreateFn = func(_ context.Context, b *model.Bus) (*model.Bus, error) {
		b.ID = 10
		return b, nil
	}
	body := `{"depot_name":"North","capacity":40,"type":"AC","registration_number":"KA-1"}`

	rec := ts.do(http.MethodPost, "/buses", "", body)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = ts.do(http.MethodPost, "/buses", ts.userToken, body)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = ts.do(http.MethodPost, "/buses", ts.adminToken, body)
	require.Equal(t, http.StatusCreated, rec.Code)
	var got model.Bus
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, uint(10), got.ID)
	assert.Equal(t, "KA-1", got.RegistrationNumber)
}

func TestBuses_ReadsAllowAnyPrincipal(t *testing.T) {
	ts := newTestServer(t)
	var filter service.ListFilter
	ts.buses.ListFn = func(_ context.Context, f service.ListFilter) ([]model.Bus, error) {
		filter = f
		return []model.Bus{{ID: 1, DepotName: "North"}}, nil
	}

	rec := ts.do(http.MethodGet, "/buses?depot=north", ts.userToken, "")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "north", filter.Depot)
	var got []model.Bus
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Len(t, got, 1)
}

func TestBuses_ErrorMapping(t *testing.T) {
	ts := newTestServer(t)
	ts.buses.GetFn = func(context.Context, uint) (*model.Bus, error) { return nil, service.ErrNotFound }
	ts.buses.UpdateFn = func(context.Context, uint, *model.Bus) (*model.Bus, error) {
		return nil, service.ErrConflict
	}
	ts.buses.DeleteFn = func(_ context.Context, id uint) error {
		if id == 3 {
			return nil
		}
		return errors.New("disk full")
	}

	rec := ts.do(http.MethodGet, "/buses/9", ts.userToken, "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.JSONEq(t, `{"error":"not found"}`, rec.Body.String())

	rec = ts.do(http.MethodGet, "/buses/abc", ts.userToken, "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = ts.do(http.MethodPut, "/buses/3", ts.adminToken, `{"registration_number":"KA-2"}`)
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec = ts.do(http.MethodPut, "/buses/3", ts.adminToken, `{"capacity":"many"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = ts.do(http.MethodDelete, "/buses/3", ts.adminToken, "")
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = ts.do(http.MethodDelete, "/buses/4", ts.adminToken, "")
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.JSONEq(t, `{"error":"internal error"}`, rec.Body.String())
}

func TestAuth_SignupAndLogin(t *testing.T) {
	ts := newTestServer(t)
	ts.authSvc.SignupUserFn = func(_ context.Context, in service.UserSignupInput) (*service.AuthResult, error) {
		assert.Equal(t, "rider@example.com", in.Email)
		return &service.AuthResult{Token: "tok", Role: model.RoleUser, ID: 4}, nil
	}
	ts.authSvc.LoginAdminFn = func(_ context.Context, in service.LoginInput) (*service.AuthResult, error) {
		assert.Equal(t, "root", in.Login)
		return nil, service.ErrUnauthorized
	}

	rec := ts.do(http.MethodPost, "/auth/user/signup", "", `{"name":"Rider","email":"rider@example.com","password":"secret1"}`)
	require.Equal(t, http.StatusCreated, rec.Code)
	var res map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
	assert.Equal(t, "tok", res["token"])
	assert.Equal(t, "user", res["role"])
	assert.Equal(t, float64(4), res["id"])

	rec = ts.do(http.MethodPost, "/auth/admin/login", "", `{"username":"root","password":"nope"}`)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.JSONEq(t, `{"error":"invalid credentials"}`, rec.Body.String())

	rec = ts.do(http.MethodPost, "/auth/user/login", "", `{"password":"nope"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestAuth_Me(t *testing.T) {
	ts := newTestServer(t)
	ts.authSvc.MeFn = func(_ context.Context, p model.Principal) (*service.Profile, error) {
		return &service.Profile{ID: p.ID, Role: p.Role, Name: "root"}, nil
	}

	rec := ts.do(http.MethodGet, "/auth/me", ts.adminToken, "")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"role":"admin"`)
}

func TestReports_Summary(t *testing.T) {
	ts := newTestServer(t)
	var query service.ReportQuery
	ts.reports.SummaryFn = func(_ context.Context, q service.ReportQuery) (*model.SummaryReport, error) {
		query = q
		return &model.SummaryReport{
			ReportPeriod: model.ReportPeriod{Period: "week", StartDate: "2024-05-13", EndDate: "2024-05-20"},
			KeyMetrics:   model.KeyMetrics{BusUtilization: "0%"},
		}, nil
	}

	rec := ts.do(http.MethodGet, "/reports/summary?period=week&anchor=latest", ts.userToken, "")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, service.ReportQuery{Period: "week", Anchor: "latest"}, query)
	assert.Contains(t, rec.Body.String(), `"bus_utilization":"0%"`)
	assert.Contains(t, rec.Body.String(), `"start_date":"2024-05-13"`)
}

func TestReports_FailureIsOpaque(t *testing.T) {
	ts := newTestServer(t)
	ts.reports.BusUsageFn = func(context.Context, service.ReportQuery) (*model.BusUsageReport, error) {
		return nil, errors.New("db down")
	}
	ts.reports.ComplaintsFn = func(context.Context, service.ReportQuery) (*model.ComplaintsReport, error) {
		return nil, service.ErrInvalidInput
	}

	rec := ts.do(http.MethodGet, "/reports/bus-usage", ts.userToken, "")
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.JSONEq(t, `{"error":"failed to generate report"}`, rec.Body.String())

	rec = ts.do(http.MethodGet, "/reports/complaints?anchor=soon", ts.userToken, "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = ts.do(http.MethodGet, "/reports/bus-usage", "", "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestReports_Export(t *testing.T) {
	ts := newTestServer(t)
	ts.reports.ExportFn = func(_ context.Context, _ service.ReportQuery, format string) (*service.ExportResult, error) {
		assert.Equal(t, "pdf", format)
		return &service.ExportResult{
			FileName:    "fleet-report-month-2024-05-01-2024-05-20.pdf",
			ContentType: "application/pdf",
			Content:     []byte("%PDF"),
		}, nil
	}

	rec := ts.do(http.MethodGet, "/reports/summary/export?format=pdf", ts.userToken, "")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/pdf", rec.Header().Get("Content-Type"))
	assert.Equal(t, `attachment; filename="fleet-report-month-2024-05-01-2024-05-20.pdf"`, rec.Header().Get("Content-Disposition"))
	assert.Equal(t, "%PDF", rec.Body.String())
}

func TestRouter_CORSAndRequestID(t *testing.T) {
	ts := newTestServer(t)

	req := httptest.NewRequest(http.MethodOptions, "/buses", nil)
	req.Header.Set("Origin", "https://ops.example.com")
	req.Header.Set("Access-Control-Request-Method", http.MethodGet)
	rec := httptest.NewRecorder()
	ts.router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
	assert.NotEmpty(t, rec.Header().Get(middleware.RequestIDHeader))

	rec = ts.do(http.MethodGet, "/healthz", "", "")
	assert.Equal(t, http.StatusOK, rec.Code)
}
