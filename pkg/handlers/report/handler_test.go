package report

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/expense-tools/expense-atlas/pkg/models/api"
	"github.com/expense-tools/expense-atlas/pkg/models/domain"
	"github.com/expense-tools/expense-atlas/pkg/services/auth"
	reportsvc "github.com/expense-tools/expense-atlas/pkg/services/report"
)

type mockReportService struct {
	mock.Mock
}

func (m *mockReportService) Summary(ctx context.Context, req domain.ReportRequest) (domain.Summary, error) {
	args := m.Called(ctx, req)
	return args.Get(0).(domain.Summary), args.Error(1)
}

func (m *mockReportService) ExportCSV(ctx context.Context, userID int64, req domain.ReportRequest) ([]byte, error) {
	args := m.Called(ctx, userID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

func (m *mockReportService) UserSummary(ctx context.Context, userID int64, req domain.ReportRequest) (domain.Summary, error) {
	args := m.Called(ctx, userID, req)
	return args.Get(0).(domain.Summary), args.Error(1)
}

func (m *mockReportService) ExportUserCSV(ctx context.Context, userID int64, req domain.ReportRequest) ([]byte, error) {
	args := m.Called(ctx, userID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

func authedRequest(t *testing.T, target string, id auth.Identity) *http.Request {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	return req.WithContext(auth.ContextWithIdentity(req.Context(), id))
}

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) api.Response {
	t.Helper()
	var resp api.Response
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	return resp
}

func TestHandler_MySummary(t *testing.T) {
	t.Run("missing identity maps to 404, not 401", func(t *testing.T) {
		h := NewHandler(&mockReportService{})

		rec := httptest.NewRecorder()
		h.MySummary(rec, httptest.NewRequest(http.MethodGet, "/api/report/my-summary", nil))

		assert.Equal(t, http.StatusNotFound, rec.Code)
		resp := decodeEnvelope(t, rec)
		assert.False(t, resp.Succeeded)
		assert.Equal(t, "User not found", resp.Message)
	})

	t.Run("zero user id in token maps to 404", func(t *testing.T) {
		h := NewHandler(&mockReportService{})

		rec := httptest.NewRecorder()
		h.MySummary(rec, authedRequest(t, "/api/report/my-summary", auth.Identity{UserID: 0}))

		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("range validation failure surfaces the rule key", func(t *testing.T) {
		svc := &mockReportService{}
		svc.On("UserSummary", mock.Anything, int64(3), mock.Anything).
			Return(domain.Summary{}, reportsvc.ErrStartMonthAfterEndMonth)
		h := NewHandler(svc)

		rec := httptest.NewRecorder()
		target := "/api/report/my-summary?reportType=monthly&rangeType=custom&startMonth=3&startYear=2024&endMonth=2&endYear=2024"
		h.MySummary(rec, authedRequest(t, target, auth.Identity{UserID: 3}))

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		resp := decodeEnvelope(t, rec)
		require.Len(t, resp.Errors, 1)
		assert.Equal(t, "StartMonthAfterEndMonth", resp.Errors[0])
	})

	t.Run("unparsable report type is a 400", func(t *testing.T) {
		h := NewHandler(&mockReportService{})

		rec := httptest.NewRecorder()
		h.MySummary(rec, authedRequest(t, "/api/report/my-summary?reportType=weekly", auth.Identity{UserID: 3}))

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("success wraps the summary in the envelope", func(t *testing.T) {
		svc := &mockReportService{}
		svc.On("UserSummary", mock.Anything, int64(3), domain.ReportRequest{Kind: domain.ReportDaily}).
			Return(domain.Summary{}, nil)
		h := NewHandler(svc)

		rec := httptest.NewRecorder()
		h.MySummary(rec, authedRequest(t, "/api/report/my-summary", auth.Identity{UserID: 3}))

		assert.Equal(t, http.StatusOK, rec.Code)
		resp := decodeEnvelope(t, rec)
		assert.True(t, resp.Succeeded)
		assert.Equal(t, http.StatusOK, resp.StatusCode)
	})
}

func TestHandler_MyReportCSV(t *testing.T) {
	t.Run("streams csv with the user-scoped filename", func(t *testing.T) {
		svc := &mockReportService{}
		svc.On("ExportUserCSV", mock.Anything, int64(3), mock.Anything).
			Return([]byte(`"Date","Category","Amount","Note"`+"\n"), nil)
		h := NewHandler(svc)

		rec := httptest.NewRecorder()
		h.MyReportCSV(rec, authedRequest(t, "/api/report/my-report-csv", auth.Identity{UserID: 3}))

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "text/csv", rec.Header().Get("Content-Type"))
		assert.Equal(t, "attachment; filename=My_Expense_Report.csv", rec.Header().Get("Content-Disposition"))
		assert.Contains(t, rec.Body.String(), `"Date","Category","Amount","Note"`)
	})

	t.Run("store failure is a 500 envelope", func(t *testing.T) {
		svc := &mockReportService{}
		svc.On("ExportUserCSV", mock.Anything, int64(3), mock.Anything).
			Return(nil, assert.AnError)
		h := NewHandler(svc)

		rec := httptest.NewRecorder()
		h.MyReportCSV(rec, authedRequest(t, "/api/report/my-report-csv", auth.Identity{UserID: 3}))

		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		resp := decodeEnvelope(t, rec)
		assert.False(t, resp.Succeeded)
		require.Len(t, resp.Errors, 1)
	})
}
