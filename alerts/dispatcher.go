// Package alerts turns severe findings into outbound notifications.
// Dispatching is fire and forget from the caller's perspective: every
// attempt is recorded in the delivery log, and transport failures never
// become insight generation failures.
package alerts

import (
	"context"
	"time"

	retry "github.com/avast/retry-go"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/healthmitra/insights/risk"
)

//go:generate go tool mockgen -source=./dispatcher.go -destination=./test/mock_dispatcher.go -package test

type Dispatcher interface {
	// Dispatch formats and sends an alert message for a finding of the
	// given severity. The returned error is informational; callers are
	// expected to log it and move on.
	Dispatch(ctx context.Context, contact string, severity risk.Severity, message string) error
}

type dispatcher struct {
	transport  Transport
	deliveries DeliveriesRepository
	logger     *zap.SugaredLogger
}

var _ Dispatcher = &dispatcher{}

func NewDispatcher(transport Transport, deliveries DeliveriesRepository, logger *zap.SugaredLogger) (Dispatcher, error) {
	return &dispatcher{
		transport:  transport,
		deliveries: deliveries,
		logger:     logger,
	}, nil
}

func (d *dispatcher) Dispatch(ctx context.Context, contact string, severity risk.Severity, message string) error {
	urgent := severity.AtLeast(risk.SeverityHigh)
	formatted := HealthAlertMessage(message, urgent)

	var sid string
	sendErr := retry.Do(
		func() error {
			var err error
			sid, err = d.transport.Send(ctx, contact, formatted)
			return err
		},
		retry.Attempts(3),
		retry.Delay(250*time.Millisecond),
		retry.DelayType(retry.FixedDelay),
		retry.LastErrorOnly(true),
	)

	delivery := Delivery{
		ReceiptId:   uuid.NewString(),
		To:          contact,
		Message:     formatted,
		Severity:    severity,
		ProviderSid: sid,
		Succeeded:   sendErr == nil,
		CreatedTime: time.Now(),
	}
	if sendErr != nil {
		delivery.Error = sendErr.Error()
		d.logger.Errorw("alert delivery failed", "to", contact, "severity", severity, "error", sendErr)
	}

	if err := d.deliveries.Create(ctx, delivery); err != nil {
		d.logger.Errorw("unable to record alert delivery", "receiptId", delivery.ReceiptId, "error", err)
	}

	return sendErr
}
