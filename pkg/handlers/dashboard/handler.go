package dashboard

import (
	"errors"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/expense-tools/expense-atlas/pkg/adapters"
	"github.com/expense-tools/expense-atlas/pkg/handlers/respond"
	"github.com/expense-tools/expense-atlas/pkg/models/api"
	"github.com/expense-tools/expense-atlas/pkg/services/auth"
	"github.com/expense-tools/expense-atlas/pkg/services/report"
)

const exportFilename = "Expense_Report.csv"

// Handler serves the admin-wide summary and CSV export.
type Handler struct {
	reports report.Service
}

func NewHandler(reports report.Service) *Handler {
	return &Handler{reports: reports}
}

func (h *Handler) Summary(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	req, err := adapters.ParseReportRequest(r.URL.Query(), true)
	if err != nil {
		respond.JSON(w, r, api.Fail(http.StatusBadRequest, "Invalid report request", err.Error()))
		return
	}

	summary, err := h.reports.Summary(ctx, req)
	if err != nil {
		writeReportError(w, r, err, "Failed to build summary")
		return
	}

	respond.JSON(w, r, api.OK(http.StatusOK, "Summary retrieved successfully", adapters.MapDomainSummaryToAPI(summary)))
}

func (h *Handler) ExportCSV(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, ok := auth.IdentityFromContext(ctx)
	if !ok || id.UserID == 0 {
		respond.JSON(w, r, api.Fail(http.StatusNotFound, "User not found"))
		return
	}

	req, err := adapters.ParseReportRequest(r.URL.Query(), true)
	if err != nil {
		respond.JSON(w, r, api.Fail(http.StatusBadRequest, "Invalid report request", err.Error()))
		return
	}

	doc, err := h.reports.ExportCSV(ctx, id.UserID, req)
	if err != nil {
		writeReportError(w, r, err, "Failed to export report")
		return
	}

	respond.CSV(w, r, exportFilename, doc)
}

// writeReportError maps range-validation failures to 400 envelopes whose
// single errors entry is the rule key.
func writeReportError(w http.ResponseWriter, r *http.Request, err error, message string) {
	var validation *report.ValidationError
	if errors.As(err, &validation) {
		respond.JSON(w, r, api.Fail(http.StatusBadRequest, message, validation.Key))
		return
	}

	zerolog.Ctx(r.Context()).Error().Err(err).Msg("report operation failed")
	respond.JSON(w, r, api.Fail(http.StatusInternalServerError, message, err.Error()))
}
