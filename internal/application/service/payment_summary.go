package service

import (
	"encoding/json"
	"math"
	"time"

	"github.com/ventapos/ventapos-api/internal/domain/entity"
	"github.com/ventapos/ventapos-api/internal/domain/enum"
)

// PaymentSummary aggregates payment obligations into the buckets the
// dashboard cards show. Amounts are integer cents. Cancelled payments are
// excluded from every bucket. CustomersWithDebt is filled in separately
// from the customer table, not by the fold.
type PaymentSummary struct {
	TotalPending       int64     `json:"-"`
	TotalPaid          int64     `json:"-"`
	TotalOverdue       int64     `json:"-"`
	ThisMonthCollected int64     `json:"-"`
	CountPending       int       `json:"count_pending"`
	CountPaid          int       `json:"count_paid"`
	CountOverdue       int       `json:"count_overdue"`
	CustomersWithDebt  int64     `json:"customers_with_debt"`
	GeneratedAt        time.Time `json:"generated_at"`
}

// MarshalJSON converts cent amounts to decimals for API responses
func (s PaymentSummary) MarshalJSON() ([]byte, error) {
	type Alias PaymentSummary
	return json.Marshal(&struct {
		Alias
		TotalPending       float64 `json:"total_pending"`
		TotalPaid          float64 `json:"total_paid"`
		TotalOverdue       float64 `json:"total_overdue"`
		ThisMonthCollected float64 `json:"this_month_collected"`
	}{
		Alias:              Alias(s),
		TotalPending:       float64(s.TotalPending) / 100,
		TotalPaid:          float64(s.TotalPaid) / 100,
		TotalOverdue:       float64(s.TotalOverdue) / 100,
		ThisMonthCollected: float64(s.ThisMonthCollected) / 100,
	})
}

// UnmarshalJSON restores the cent amounts from the decimal representation,
// so cached summaries round-trip.
func (s *PaymentSummary) UnmarshalJSON(data []byte) error {
	type Alias PaymentSummary
	aux := &struct {
		*Alias
		TotalPending       float64 `json:"total_pending"`
		TotalPaid          float64 `json:"total_paid"`
		TotalOverdue       float64 `json:"total_overdue"`
		ThisMonthCollected float64 `json:"this_month_collected"`
	}{Alias: (*Alias)(s)}

	if err := json.Unmarshal(data, aux); err != nil {
		return err
	}

	s.TotalPending = int64(math.Round(aux.TotalPending * 100))
	s.TotalPaid = int64(math.Round(aux.TotalPaid * 100))
	s.TotalOverdue = int64(math.Round(aux.TotalOverdue * 100))
	s.ThisMonthCollected = int64(math.Round(aux.ThisMonthCollected * 100))
	return nil
}

// IsOverdue reports whether a pending payment has slipped past its due date.
// Only pending payments can be overdue; a payment due exactly at now is not
// overdue, and one without a due date never is.
func IsOverdue(p *entity.Payment, now time.Time) bool {
	if p.Status != enum.PaymentStatusPending {
		return false
	}
	if p.DueDate == nil {
		return false
	}
	return p.DueDate.Before(now)
}

// SummarizePayments folds a payment list into bucket totals. The fold is
// order-independent. Every pending payment counts toward the pending bucket,
// and one past its due date counts toward the overdue bucket as well;
// payments already marked overdue stay in that bucket only. Paid payments
// whose paid date falls within the current calendar month also accumulate
// into ThisMonthCollected.
func SummarizePayments(payments []entity.Payment, now time.Time) PaymentSummary {
	summary := PaymentSummary{GeneratedAt: now}
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())

	for i := range payments {
		p := &payments[i]
		switch p.Status {
		case enum.PaymentStatusPaid:
			summary.TotalPaid += p.Amount
			summary.CountPaid++
			if p.PaidDate != nil && !p.PaidDate.Before(monthStart) {
				summary.ThisMonthCollected += p.Amount
			}
		case enum.PaymentStatusOverdue:
			summary.TotalOverdue += p.Amount
			summary.CountOverdue++
		case enum.PaymentStatusPending:
			summary.TotalPending += p.Amount
			summary.CountPending++
			if IsOverdue(p, now) {
				summary.TotalOverdue += p.Amount
				summary.CountOverdue++
			}
		case enum.PaymentStatusCancelled:
			// excluded
		}
	}

	return summary
}
