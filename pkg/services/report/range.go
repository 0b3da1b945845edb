package report

import (
	"time"

	"github.com/expense-tools/expense-atlas/pkg/models/domain"
)

// ValidationError is a report-range rule violation. Key is the
// caller-visible message surfaced in the error envelope.
type ValidationError struct {
	Key string
}

func (e *ValidationError) Error() string { return e.Key }

var (
	ErrStartDateInFuture        = &ValidationError{"StartDateInFuture"}
	ErrEndDateInFuture          = &ValidationError{"EndDateInFuture"}
	ErrStartDateAfterEndDate    = &ValidationError{"StartDateAfterEndDate"}
	ErrCustomMonthRangeRequired = &ValidationError{"CustomMonthRangeRequired"}
	ErrStartMonthInFuture       = &ValidationError{"StartMonthInFuture"}
	ErrEndMonthInFuture         = &ValidationError{"EndMonthInFuture"}
	ErrStartMonthAfterEndMonth  = &ValidationError{"StartMonthAfterEndMonth"}
)

// ResolveInterval turns a report request into the concrete inclusive date
// range to filter on, validating against today. Rules are checked in
// order; the first violation wins and no store access may happen after a
// failure.
//
// The future check is two-track on purpose: daily bounds are compared at
// day granularity, while a monthly custom end month is compared at
// year-month granularity. An end month equal to the current month is
// always allowed even though its computed last day lies ahead of today.
func ResolveInterval(req domain.ReportRequest, today time.Time) (domain.Interval, error) {
	today = midnight(today)

	if req.Kind == domain.ReportDaily {
		if req.StartDate != nil && midnight(*req.StartDate).After(today) {
			return domain.Interval{}, ErrStartDateInFuture
		}
		if req.EndDate != nil && midnight(*req.EndDate).After(today) {
			return domain.Interval{}, ErrEndDateInFuture
		}
		if req.StartDate != nil && req.EndDate != nil && req.StartDate.After(*req.EndDate) {
			return domain.Interval{}, ErrStartDateAfterEndDate
		}
		return domain.Interval{From: req.StartDate, To: req.EndDate}, nil
	}

	switch req.Range {
	case domain.RangeCustom:
		if req.StartMonth == nil || req.StartYear == nil || req.EndMonth == nil || req.EndYear == nil {
			return domain.Interval{}, ErrCustomMonthRangeRequired
		}

		from := firstOfMonth(*req.StartYear, *req.StartMonth)
		to := lastOfMonth(*req.EndYear, *req.EndMonth)

		if from.After(today) {
			return domain.Interval{}, ErrStartMonthInFuture
		}
		if *req.EndYear > today.Year() ||
			(*req.EndYear == today.Year() && *req.EndMonth > int(today.Month())) {
			return domain.Interval{}, ErrEndMonthInFuture
		}
		if from.After(to) {
			return domain.Interval{}, ErrStartMonthAfterEndMonth
		}
		return domain.Interval{From: &from, To: &to}, nil

	case domain.RangeLastMonth:
		prev := firstOfMonth(today.Year(), int(today.Month())).AddDate(0, -1, 0)
		from := prev
		to := lastOfMonth(prev.Year(), int(prev.Month()))
		return domain.Interval{From: &from, To: &to}, nil

	case domain.RangeLast3Months:
		start := firstOfMonth(today.Year(), int(today.Month())).AddDate(0, -3, 0)
		to := lastOfMonth(today.Year(), int(today.Month()))
		return domain.Interval{From: &start, To: &to}, nil
	}

	return domain.Interval{}, nil
}

func midnight(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func firstOfMonth(year, month int) time.Time {
	return time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
}

func lastOfMonth(year, month int) time.Time {
	// Day 0 of the next month is the last day of this one.
	return time.Date(year, time.Month(month)+1, 0, 0, 0, 0, 0, time.UTC)
}
