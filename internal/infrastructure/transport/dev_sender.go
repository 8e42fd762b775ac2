package transport

import (
	"context"

	"go.uber.org/zap"
	"veriflow.backend/pkg/logger"
)

// DevSender logs codes instead of delivering them. For local development and
// tests only; never wire it in production.
type DevSender struct {
	channel string
}

// NewDevSender creates a logging sender labeled with the channel it stands in for
func NewDevSender(channel string) *DevSender {
	return &DevSender{channel: channel}
}

// Send logs the code
func (d *DevSender) Send(ctx context.Context, recipient, code string) error {
	logger.Info(ctx, "DEV verification code",
		zap.String("channel", d.channel),
		zap.String("recipient", recipient),
		zap.String("code", code),
	)
	return nil
}
