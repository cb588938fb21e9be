package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/ventapos/ventapos-api/internal/domain/entity"
	"github.com/ventapos/ventapos-api/internal/domain/enum"
	"github.com/ventapos/ventapos-api/internal/domain/repository"
	"github.com/ventapos/ventapos-api/pkg/apperror"
	"github.com/ventapos/ventapos-api/pkg/pagination"
	"github.com/ventapos/ventapos-api/pkg/whatsapp"
)

// ReminderService composes and sends WhatsApp payment reminders
type ReminderService struct {
	paymentRepo  repository.PaymentRepository
	reminderRepo repository.PaymentReminderRepository
	settingsRepo repository.SettingsRepository
	sender       *whatsapp.Sender
	logger       *zap.Logger
}

// NewReminderService creates a new reminder service
func NewReminderService(
	paymentRepo repository.PaymentRepository,
	reminderRepo repository.PaymentReminderRepository,
	settingsRepo repository.SettingsRepository,
	sender *whatsapp.Sender,
	logger *zap.Logger,
) *ReminderService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ReminderService{
		paymentRepo:  paymentRepo,
		reminderRepo: reminderRepo,
		settingsRepo: settingsRepo,
		sender:       sender,
		logger:       logger,
	}
}

// ComposedReminder is a rendered reminder ready to deliver. DeepLink opens
// the chat manually when the Cloud API integration is disabled.
type ComposedReminder struct {
	PaymentID uuid.UUID `json:"payment_id"`
	Phone     string    `json:"phone,omitempty"`
	Message   string    `json:"message"`
	DeepLink  string    `json:"deep_link,omitempty"`
	Sent      bool      `json:"sent"`
	Error     string    `json:"error,omitempty"`
}

// templateFor picks the overdue or reminder template based on the payment's
// effective state at now.
func (s *ReminderService) templateFor(ctx context.Context, p *entity.Payment, now time.Time) (string, error) {
	settings, err := s.settingsRepo.Get(ctx)
	if err != nil {
		return "", err
	}
	if settings == nil {
		return "", apperror.NewAppError(500, "Company settings not initialized")
	}

	if p.Status == enum.PaymentStatusOverdue || IsOverdue(p, now) {
		return settings.OverdueTemplate, nil
	}
	return settings.ReminderTemplate, nil
}

// compose renders the message and deep link for one payment.
func (s *ReminderService) compose(ctx context.Context, p *entity.Payment, now time.Time) (*ComposedReminder, error) {
	template, err := s.templateFor(ctx, p, now)
	if err != nil {
		return nil, err
	}

	description := ""
	if p.Description != nil {
		description = *p.Description
	}

	message := whatsapp.RenderTemplate(template, whatsapp.TemplateData{
		Name:        p.CustomerName,
		AmountCents: p.Amount,
		DueDate:     p.DueDate,
		Description: description,
	})

	composed := &ComposedReminder{
		PaymentID: p.ID,
		Message:   message,
	}

	if p.Customer != nil && p.Customer.Phone != nil && *p.Customer.Phone != "" {
		composed.Phone = whatsapp.NormalizePhone(*p.Customer.Phone)
		composed.DeepLink = whatsapp.DeepLink(*p.Customer.Phone, message)
	}

	return composed, nil
}

// PreviewReminder renders the reminder for one payment without sending or
// recording anything.
func (s *ReminderService) PreviewReminder(ctx context.Context, paymentID uuid.UUID) (*ComposedReminder, error) {
	payment, err := s.paymentRepo.GetByID(ctx, paymentID)
	if err != nil {
		return nil, err
	}
	if payment == nil {
		return nil, apperror.NewNotFoundError("Payment")
	}

	return s.compose(ctx, payment, time.Now())
}

// SendReminders composes reminders for the selected payments, delivers them
// through the Cloud API when enabled, and records every composed reminder.
// Payments without a reachable phone still get a recorded reminder with a
// deep link for manual delivery.
func (s *ReminderService) SendReminders(ctx context.Context, paymentIDs []uuid.UUID, sentBy uuid.UUID) ([]ComposedReminder, error) {
	if len(paymentIDs) == 0 {
		return nil, apperror.NewBadRequestError("No payments selected")
	}

	payments := make([]entity.Payment, 0, len(paymentIDs))
	for _, id := range paymentIDs {
		payment, err := s.paymentRepo.GetByID(ctx, id)
		if err != nil {
			return nil, err
		}
		if payment == nil {
			return nil, apperror.NewNotFoundError("Payment")
		}
		payments = append(payments, *payment)
	}

	return s.deliver(ctx, payments, sentBy)
}

// SendOverdueReminders composes and delivers a reminder for every payment
// currently in the overdue state.
func (s *ReminderService) SendOverdueReminders(ctx context.Context, sentBy uuid.UUID) ([]ComposedReminder, error) {
	payments, err := s.paymentRepo.ListOverdue(ctx, time.Now())
	if err != nil {
		return nil, err
	}
	if len(payments) == 0 {
		return []ComposedReminder{}, nil
	}

	return s.deliver(ctx, payments, sentBy)
}

func (s *ReminderService) deliver(ctx context.Context, payments []entity.Payment, sentBy uuid.UUID) ([]ComposedReminder, error) {
	now := time.Now()
	composed := make([]ComposedReminder, 0, len(payments))
	reminders := make([]entity.PaymentReminder, 0, len(payments))

	var outbound []whatsapp.BulkMessage
	var outboundIdx []int

	for i := range payments {
		payment := &payments[i]
		if payment.Status == enum.PaymentStatusPaid || payment.Status == enum.PaymentStatusCancelled {
			continue
		}

		c, err := s.compose(ctx, payment, now)
		if err != nil {
			return nil, err
		}

		if s.sender.Enabled() && c.Phone != "" {
			outbound = append(outbound, whatsapp.BulkMessage{Phone: c.Phone, Body: c.Message})
			outboundIdx = append(outboundIdx, len(composed))
		}

		composed = append(composed, *c)
		reminders = append(reminders, entity.PaymentReminder{
			PaymentID: payment.ID,
			Message:   c.Message,
			SentAt:    now,
			SentBy:    sentBy,
		})
	}

	if len(outbound) > 0 {
		results := s.sender.SendBulk(ctx, outbound)
		for i, res := range results {
			composed[outboundIdx[i]].Sent = res.Sent
			if res.Err != nil {
				composed[outboundIdx[i]].Error = res.Err.Error()
			}
		}
	}

	if err := s.reminderRepo.CreateBatch(ctx, reminders); err != nil {
		return nil, err
	}

	s.logger.Info("reminders composed",
		zap.Int("total", len(composed)),
		zap.Int("delivered", len(outbound)))

	return composed, nil
}

// GetPaymentReminders returns the reminder history for a payment
func (s *ReminderService) GetPaymentReminders(ctx context.Context, paymentID uuid.UUID) ([]entity.PaymentReminder, error) {
	return s.reminderRepo.GetByPaymentID(ctx, paymentID)
}

// ListReminders returns the full reminder log with pagination
func (s *ReminderService) ListReminders(ctx context.Context, params *pagination.PaginationParams) (*pagination.PaginatedResult[entity.PaymentReminder], error) {
	reminders, total, err := s.reminderRepo.List(ctx, params)
	if err != nil {
		return nil, err
	}

	pag := pagination.NewPagination(params.Page, params.PerPage, total)
	return pagination.NewPaginatedResult(reminders, pag), nil
}
