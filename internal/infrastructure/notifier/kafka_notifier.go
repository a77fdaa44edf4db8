package notifier

import (
	"context"
	"crypto/tls"
	"encoding/json"
	"fmt"
	"time"

	"github.com/segmentio/kafka-go"
	"github.com/segmentio/kafka-go/sasl/plain"
	"go.uber.org/zap"
	"menvo.backend/internal/config"
	"menvo.backend/internal/domain/entities"
	"menvo.backend/internal/infrastructure/metrics"
	"menvo.backend/pkg/logger"
)

const publishTimeout = 5 * time.Second

type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// KafkaNotifier publishes appointment events to a topic; the mail service consumes them
type KafkaNotifier struct {
	writer messageWriter
	topic  string
}

// NewKafkaNotifier builds a synchronous writer. SASL/TLS is enabled when a username is configured.
func NewKafkaNotifier(cfg config.KafkaConfig) *KafkaNotifier {
	transport := &kafka.Transport{}
	if cfg.Username != "" {
		transport.SASL = plain.Mechanism{
			Username: cfg.Username,
			Password: cfg.Password,
		}
		transport.TLS = &tls.Config{MinVersion: tls.VersionTLS12}
	}

	return &KafkaNotifier{
		topic: cfg.Topic,
		writer: &kafka.Writer{
			Addr:         kafka.TCP(cfg.Broker),
			Topic:        cfg.Topic,
			Balancer:     &kafka.LeastBytes{},
			RequiredAcks: kafka.RequireAll,
			Async:        false,
			Transport:    transport,
			WriteTimeout: 10 * time.Second,
		},
	}
}

// Publish writes one event keyed by appointment so a recipient's events stay ordered
func (n *KafkaNotifier) Publish(ctx context.Context, event *entities.AppointmentEvent) error {
	value, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("encode appointment event: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, publishTimeout)
	defer cancel()

	msg := kafka.Message{
		Key:   []byte(event.AppointmentID.String()),
		Value: value,
		Time:  event.OccurredAt,
		Headers: []kafka.Header{
			{Key: "event-type", Value: []byte(event.Type)},
			{Key: "recipient", Value: []byte(event.Recipient)},
		},
	}
	if err := n.writer.WriteMessages(ctx, msg); err != nil {
		metrics.NotificationsTotal.WithLabelValues(event.Type, "error").Inc()
		return fmt.Errorf("publish %s to %s: %w", event.Type, n.topic, err)
	}
	metrics.NotificationsTotal.WithLabelValues(event.Type, "ok").Inc()
	return nil
}

func (n *KafkaNotifier) Close() error {
	return n.writer.Close()
}

// LogNotifier stands in when no broker is configured. Events are logged and dropped.
type LogNotifier struct{}

func (LogNotifier) Publish(ctx context.Context, event *entities.AppointmentEvent) error {
	logger.Info(ctx, "kafka not configured, dropping appointment event",
		zap.String("type", event.Type),
		zap.String("appointment_id", event.AppointmentID.String()),
		zap.String("recipient", string(event.Recipient)),
	)
	return nil
}
