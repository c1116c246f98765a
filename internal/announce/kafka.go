// Package announce delivers roster change events to Kafka for downstream
// consumers such as attendance dashboards.
package announce

import (
	"context"
	"encoding/json"
	"time"

	"github.com/segmentio/kafka-go"

	"example.com/extracurricular/internal/events"
)

// KafkaAnnouncer publishes roster events to a single topic.
type KafkaAnnouncer struct {
	writer  *kafka.Writer
	timeout time.Duration
}

// NewKafkaAnnouncer creates an announcer for the given brokers and topic.
// A positive timeout bounds each publish attempt.
func NewKafkaAnnouncer(brokers []string, topic string, timeout time.Duration) *KafkaAnnouncer {
	return &KafkaAnnouncer{
		writer: &kafka.Writer{
			Addr:         kafka.TCP(brokers...),
			Topic:        topic,
			RequiredAcks: kafka.RequireAll,
			Compression:  kafka.Snappy,
			Async:        false,
		},
		timeout: timeout,
	}
}

// Publish writes the event keyed by activity name, so all roster changes for
// one activity land on the same partition in order.
func (a *KafkaAnnouncer) Publish(ctx context.Context, event events.RosterChanged) error {
	if a.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, a.timeout)
		defer cancel()
	}

	payload, err := json.Marshal(event)
	if err != nil {
		return err
	}

	msg := kafka.Message{
		Key:   []byte(event.Activity),
		Value: payload,
		Headers: []kafka.Header{
			{Key: "event_type", Value: []byte("roster." + string(event.Action))},
			{Key: "event_id", Value: []byte(event.EventID)},
		},
	}
	return a.writer.WriteMessages(ctx, msg)
}

// Close releases the underlying writer.
func (a *KafkaAnnouncer) Close() error {
	return a.writer.Close()
}
