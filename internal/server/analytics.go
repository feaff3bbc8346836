package server

import (
	"context"
	"encoding/json"
	"time"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

const analyticsWriteTimeout = 2 * time.Second

// Analytics publishes room and game lifecycle events to Kafka. A nil
// Analytics is valid and emits nothing; write failures are logged and
// never affect gameplay.
type Analytics struct {
	logger *zap.Logger
	writer *kafka.Writer
}

func NewAnalytics(brokers, topic string, logger *zap.Logger) *Analytics {
	if brokers == "" {
		return nil
	}
	return &Analytics{
		logger: logger,
		writer: &kafka.Writer{
			Addr:     kafka.TCP(brokers),
			Topic:    topic,
			Balancer: &kafka.LeastBytes{},
		},
	}
}

func (a *Analytics) Emit(event string, payload map[string]any) {
	if a == nil || a.writer == nil {
		return
	}

	payload["event"] = event
	payload["ts"] = time.Now().UTC()
	value, err := json.Marshal(payload)
	if err != nil {
		a.logger.Error("failed to marshal analytics event", zap.Error(err))
		return
	}

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), analyticsWriteTimeout)
		defer cancel()
		if err := a.writer.WriteMessages(ctx, kafka.Message{Value: value}); err != nil {
			a.logger.Warn("failed to emit analytics event",
				zap.String("event", event),
				zap.Error(err),
			)
		}
	}()
}

func (a *Analytics) Close() {
	if a == nil || a.writer == nil {
		return
	}
	if err := a.writer.Close(); err != nil {
		a.logger.Warn("failed to close analytics writer", zap.Error(err))
	}
}
