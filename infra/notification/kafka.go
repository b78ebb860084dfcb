package notification

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"github.com/amirasaad/brokerage/pkg/notification"
	"github.com/segmentio/kafka-go"
)

// KafkaNotifier publishes mismatch reports to a kafka topic consumed by
// the monitoring service.
type KafkaNotifier struct {
	writer *kafka.Writer
	logger *slog.Logger
}

// NewKafkaNotifier creates a kafka-backed notifier.
// brokers is a comma-separated broker list (e.g. "localhost:9092").
func NewKafkaNotifier(brokers, topic string, logger *slog.Logger) (*KafkaNotifier, error) {
	parsed := parseBrokers(brokers)
	if len(parsed) == 0 {
		return nil, fmt.Errorf("kafka notifier: brokers are required")
	}
	if topic == "" {
		return nil, fmt.Errorf("kafka notifier: topic is required")
	}
	if logger == nil {
		logger = slog.Default()
	}

	writer := &kafka.Writer{
		Addr:                   kafka.TCP(parsed...),
		Topic:                  topic,
		AllowAutoTopicCreation: true,
		RequiredAcks:           kafka.RequireOne,
		Balancer:               &kafka.Hash{},
	}

	return &KafkaNotifier{writer: writer, logger: logger}, nil
}

// ReportMismatch implements notification.Notifier. The message key is the
// mismatch pair, so repeated mismatches for one pair land in one partition.
func (n *KafkaNotifier) ReportMismatch(ctx context.Context, m notification.Mismatch) error {
	payload, err := json.Marshal(m)
	if err != nil {
		return fmt.Errorf("kafka notifier: marshal mismatch: %w", err)
	}

	err = n.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(m.Source + "/" + m.Target),
		Value: payload,
	})
	if err != nil {
		return fmt.Errorf("kafka notifier: write mismatch: %w", err)
	}

	n.logger.Debug("mismatch published", "id", m.ID, "source", m.Source, "target", m.Target)
	return nil
}

// Close flushes and closes the underlying writer.
func (n *KafkaNotifier) Close() error {
	return n.writer.Close()
}

func parseBrokers(brokers string) []string {
	var parsed []string
	for _, b := range strings.Split(brokers, ",") {
		if b = strings.TrimSpace(b); b != "" {
			parsed = append(parsed, b)
		}
	}
	return parsed
}

var _ notification.Notifier = (*KafkaNotifier)(nil)
