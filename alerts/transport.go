package alerts

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
)

//go:generate go tool mockgen -source=./transport.go -destination=./test/mock_transport.go -package test

// Transport delivers a formatted message to a contact address. The SMS
// provider integration lives behind this interface.
type Transport interface {
	Send(ctx context.Context, to string, message string) (sid string, err error)
}

// LogTransport is the development transport: it records outbound
// messages in the service log instead of handing them to a provider.
type LogTransport struct {
	logger *zap.SugaredLogger
}

func NewLogTransport(logger *zap.SugaredLogger) Transport {
	return &LogTransport{logger: logger}
}

func (t *LogTransport) Send(_ context.Context, to string, message string) (string, error) {
	sid := fmt.Sprintf("log-%d", time.Now().UnixMilli())
	t.logger.Infow("sending sms", "to", to, "message", message, "sid", sid)
	return sid, nil
}
