package notify

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"

	"github.com/umituz/turkticaret-case-sub003/internal/domain"
)

// StatusChangedEvent is published after a transition has been committed.
// Downstream consumers (mail workers, partner webhooks) react to it; the
// transition itself never waits for them.
type StatusChangedEvent struct {
	OrderID     string              `json:"order_id"`
	OrderNumber string              `json:"order_number"`
	OldStatus   *domain.OrderStatus `json:"old_status,omitempty"`
	NewStatus   domain.OrderStatus  `json:"new_status"`
	OccurredAt  time.Time           `json:"occurred_at"`
}

// Notifier publishes order status events to Kafka. A notifier built
// without brokers is disabled and drops events silently.
type Notifier struct {
	writer *kafka.Writer
	logger *zap.Logger
}

func New(brokersCSV, topic string, logger *zap.Logger) *Notifier {
	brokers := []string{}
	for _, b := range strings.Split(brokersCSV, ",") {
		b = strings.TrimSpace(b)
		if b != "" {
			brokers = append(brokers, b)
		}
	}
	if len(brokers) == 0 {
		return &Notifier{logger: logger}
	}

	return &Notifier{
		writer: &kafka.Writer{
			Addr:         kafka.TCP(brokers...),
			Topic:        topic,
			Balancer:     &kafka.Hash{},
			RequiredAcks: kafka.RequireOne,
		},
		logger: logger,
	}
}

func (n *Notifier) Enabled() bool {
	return n.writer != nil
}

// StatusChanged publishes fire-and-forget: the caller has already
// committed and must not fail or block on notification delivery.
func (n *Notifier) StatusChanged(event StatusChangedEvent) {
	if !n.Enabled() {
		return
	}

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		data, err := json.Marshal(event)
		if err != nil {
			n.logger.Error("Failed to marshal status event", zap.Error(err))
			return
		}

		err = n.writer.WriteMessages(ctx, kafka.Message{
			Key:   []byte(event.OrderID),
			Value: data,
			Time:  event.OccurredAt,
		})
		if err != nil {
			n.logger.Error("Failed to publish status event",
				zap.String("order_id", event.OrderID),
				zap.Error(err))
		}
	}()
}

func (n *Notifier) Close() error {
	if n.writer == nil {
		return nil
	}
	return n.writer.Close()
}
