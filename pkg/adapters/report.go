package adapters

import (
	"fmt"
	"net/url"
	"strconv"
	"time"

	"github.com/expense-tools/expense-atlas/pkg/models/domain"
)

// ParseReportRequest maps report query parameters onto a domain
// ReportRequest. Username/category filters are only read when
// adminFilters is set; user-scoped endpoints never honor them.
func ParseReportRequest(q url.Values, adminFilters bool) (domain.ReportRequest, error) {
	req := domain.ReportRequest{}

	switch q.Get("reportType") {
	case "", string(domain.ReportDaily):
		req.Kind = domain.ReportDaily
	case string(domain.ReportMonthly):
		req.Kind = domain.ReportMonthly
	default:
		return req, fmt.Errorf("invalid reportType %q", q.Get("reportType"))
	}

	switch q.Get("rangeType") {
	case "":
	case string(domain.RangeLastMonth):
		req.Range = domain.RangeLastMonth
	case string(domain.RangeLast3Months):
		req.Range = domain.RangeLast3Months
	case string(domain.RangeCustom):
		req.Range = domain.RangeCustom
	default:
		return req, fmt.Errorf("invalid rangeType %q", q.Get("rangeType"))
	}

	var err error
	if req.StartDate, err = parseDateParam(q, "startDate"); err != nil {
		return req, err
	}
	if req.EndDate, err = parseDateParam(q, "endDate"); err != nil {
		return req, err
	}
	if req.StartMonth, err = parseIntParam(q, "startMonth"); err != nil {
		return req, err
	}
	if req.StartYear, err = parseIntParam(q, "startYear"); err != nil {
		return req, err
	}
	if req.EndMonth, err = parseIntParam(q, "endMonth"); err != nil {
		return req, err
	}
	if req.EndYear, err = parseIntParam(q, "endYear"); err != nil {
		return req, err
	}

	if adminFilters {
		req.Username = q.Get("username")
		req.Category = q.Get("category")
	}

	return req, nil
}

func parseDateParam(q url.Values, name string) (*time.Time, error) {
	raw := q.Get(name)
	if raw == "" {
		return nil, nil
	}
	t, err := time.Parse(DateLayout, raw)
	if err != nil {
		return nil, fmt.Errorf("invalid %s %q, expected format YYYY-MM-DD", name, raw)
	}
	return &t, nil
}

func parseIntParam(q url.Values, name string) (*int, error) {
	raw := q.Get(name)
	if raw == "" {
		return nil, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return nil, fmt.Errorf("invalid %s %q, expected a number", name, raw)
	}
	return &n, nil
}
