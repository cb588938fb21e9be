package service

import (
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/ventapos/ventapos-api/internal/domain/entity"
	"github.com/ventapos/ventapos-api/internal/domain/enum"
)

func paymentWith(status enum.PaymentStatus, amount int64, due *time.Time) entity.Payment {
	return entity.Payment{Status: status, Amount: amount, DueDate: due}
}

func TestIsOverdue(t *testing.T) {
	now := time.Date(2026, 2, 1, 12, 0, 0, 0, time.UTC)
	yesterday := now.Add(-24 * time.Hour)
	tomorrow := now.Add(24 * time.Hour)

	tests := []struct {
		name    string
		payment entity.Payment
		want    bool
	}{
		{"pending past due", paymentWith(enum.PaymentStatusPending, 100, &yesterday), true},
		{"pending not yet due", paymentWith(enum.PaymentStatusPending, 100, &tomorrow), false},
		{"pending due exactly now", paymentWith(enum.PaymentStatusPending, 100, &now), false},
		{"pending without due date", paymentWith(enum.PaymentStatusPending, 100, nil), false},
		{"paid past due", paymentWith(enum.PaymentStatusPaid, 100, &yesterday), false},
		{"cancelled past due", paymentWith(enum.PaymentStatusCancelled, 100, &yesterday), false},
		{"already overdue status", paymentWith(enum.PaymentStatusOverdue, 100, &yesterday), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsOverdue(&tt.payment, now))
		})
	}
}

func TestSummarizePayments(t *testing.T) {
	now := time.Date(2026, 2, 10, 12, 0, 0, 0, time.UTC)
	yesterday := now.Add(-24 * time.Hour)
	nextWeek := now.Add(7 * 24 * time.Hour)
	lastMonth := time.Date(2026, 1, 15, 0, 0, 0, 0, time.UTC)

	paidThisMonth := paymentWith(enum.PaymentStatusPaid, 120000, &yesterday)
	paidThisMonth.PaidDate = &yesterday
	paidLastMonth := paymentWith(enum.PaymentStatusPaid, 3000, nil)
	paidLastMonth.PaidDate = &lastMonth

	payments := []entity.Payment{
		paymentWith(enum.PaymentStatusPending, 10000, &nextWeek),
		paymentWith(enum.PaymentStatusPending, 25050, nil),
		paymentWith(enum.PaymentStatusPending, 5000, &yesterday), // past due, counts pending and overdue
		paymentWith(enum.PaymentStatusOverdue, 7500, &yesterday), // stored overdue
		paidThisMonth,
		paidLastMonth,
		paymentWith(enum.PaymentStatusPaid, 2000, nil), // no paid date recorded
		paymentWith(enum.PaymentStatusCancelled, 99999, &yesterday), // excluded entirely
	}

	summary := SummarizePayments(payments, now)

	assert.Equal(t, int64(40050), summary.TotalPending)
	assert.Equal(t, 3, summary.CountPending)
	assert.Equal(t, int64(12500), summary.TotalOverdue)
	assert.Equal(t, 2, summary.CountOverdue)
	assert.Equal(t, int64(125000), summary.TotalPaid)
	assert.Equal(t, 3, summary.CountPaid)
	assert.Equal(t, int64(120000), summary.ThisMonthCollected)
}

func TestSummarizePaymentsPendingPastDueCountsBothBuckets(t *testing.T) {
	now := time.Date(2026, 2, 10, 12, 0, 0, 0, time.UTC)
	yesterday := now.Add(-24 * time.Hour)

	paid := paymentWith(enum.PaymentStatusPaid, 5000, nil)
	paid.PaidDate = &now

	payments := []entity.Payment{
		paymentWith(enum.PaymentStatusPending, 10000, &yesterday),
		paid,
	}

	summary := SummarizePayments(payments, now)

	assert.Equal(t, int64(10000), summary.TotalPending)
	assert.Equal(t, 1, summary.CountPending)
	assert.Equal(t, int64(10000), summary.TotalOverdue)
	assert.Equal(t, 1, summary.CountOverdue)
	assert.Equal(t, int64(5000), summary.TotalPaid)
	assert.Equal(t, 1, summary.CountPaid)
	assert.Equal(t, int64(5000), summary.ThisMonthCollected)
}

func TestSummarizePaymentsOrderIndependent(t *testing.T) {
	now := time.Date(2026, 2, 1, 12, 0, 0, 0, time.UTC)
	yesterday := now.Add(-24 * time.Hour)
	nextWeek := now.Add(7 * 24 * time.Hour)

	payments := []entity.Payment{
		paymentWith(enum.PaymentStatusPending, 100, &nextWeek),
		paymentWith(enum.PaymentStatusPending, 200, &yesterday),
		paymentWith(enum.PaymentStatusPaid, 300, nil),
		paymentWith(enum.PaymentStatusOverdue, 400, &yesterday),
		paymentWith(enum.PaymentStatusCancelled, 500, nil),
	}

	want := SummarizePayments(payments, now)

	rng := rand.New(rand.NewSource(1))
	for i := 0; i < 10; i++ {
		shuffled := make([]entity.Payment, len(payments))
		copy(shuffled, payments)
		rng.Shuffle(len(shuffled), func(a, b int) { shuffled[a], shuffled[b] = shuffled[b], shuffled[a] })

		assert.Equal(t, want, SummarizePayments(shuffled, now))
	}
}

func TestSummarizePaymentsEmpty(t *testing.T) {
	now := time.Now()
	summary := SummarizePayments(nil, now)

	assert.Zero(t, summary.TotalPending)
	assert.Zero(t, summary.TotalPaid)
	assert.Zero(t, summary.TotalOverdue)
	assert.Zero(t, summary.CountPending+summary.CountPaid+summary.CountOverdue)
}
