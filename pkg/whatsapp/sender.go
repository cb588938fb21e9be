package whatsapp

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// BulkMessage is a single rendered message addressed to one recipient.
type BulkMessage struct {
	Phone string
	Body  string
}

// BulkResult reports the outcome of one message in a bulk send.
type BulkResult struct {
	Phone string
	Sent  bool
	Err   error
}

// Sender sends reminder messages through the Cloud API, pausing between
// messages to stay under Meta's rate limits. A nil client means the
// integration is disabled and sends are skipped.
type Sender struct {
	client Client
	delay  time.Duration
	logger *zap.Logger
}

// NewSender builds a Sender. Pass a nil client to disable outbound sends.
func NewSender(client Client, delay time.Duration, logger *zap.Logger) *Sender {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Sender{client: client, delay: delay, logger: logger}
}

// Enabled reports whether the Cloud API integration is configured.
func (s *Sender) Enabled() bool {
	return s.client != nil
}

// Send delivers a single message.
func (s *Sender) Send(ctx context.Context, phone, body string) error {
	if s.client == nil {
		return nil
	}

	_, err := s.client.SendTextMessage(ctx, SendTextMessageRequest{
		To:   phone,
		Body: body,
	})
	return err
}

// SendBulk delivers messages sequentially with a pause between each one.
// A failed send does not stop the batch.
func (s *Sender) SendBulk(ctx context.Context, messages []BulkMessage) []BulkResult {
	results := make([]BulkResult, 0, len(messages))

	for i, msg := range messages {
		if i > 0 && s.delay > 0 {
			select {
			case <-ctx.Done():
				results = append(results, BulkResult{Phone: msg.Phone, Err: ctx.Err()})
				continue
			case <-time.After(s.delay):
			}
		}

		err := s.Send(ctx, msg.Phone, msg.Body)
		if err != nil {
			s.logger.Warn("whatsapp send failed",
				zap.String("phone", NormalizePhone(msg.Phone)),
				zap.Error(err))
		}
		results = append(results, BulkResult{Phone: msg.Phone, Sent: err == nil, Err: err})
	}

	return results
}
