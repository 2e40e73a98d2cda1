package audit

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/twmb/franz-go/pkg/kgo"
)

// KafkaSink mirrors every audit event onto a Kafka topic for downstream
// analytics (programme monitoring, review-latency dashboards). Delivery is
// synchronous per event; the publisher joins sink errors so a broker outage
// never masks the primary store write.
type KafkaSink struct {
	client *kgo.Client
	topic  string
}

// NewKafkaSink builds a sink over the given brokers.
func NewKafkaSink(brokers []string, topic string) (*KafkaSink, error) {
	client, err := kgo.NewClient(
		kgo.SeedBrokers(brokers...),
		kgo.DefaultProduceTopic(topic),
	)
	if err != nil {
		return nil, fmt.Errorf("create kafka client: %w", err)
	}
	return &KafkaSink{client: client, topic: topic}, nil
}

type kafkaEvent struct {
	Timestamp  string `json:"timestamp"`
	Action     string `json:"action"`
	ChildID    string `json:"child_id,omitempty"`
	ProgressID string `json:"progress_id,omitempty"`
	Actor      string `json:"actor,omitempty"`
	RequestID  string `json:"request_id,omitempty"`
	Detail     string `json:"detail,omitempty"`
}

func (s *KafkaSink) Append(ctx context.Context, event Event) error {
	payload := kafkaEvent{
		Timestamp: event.Timestamp.UTC().Format("2006-01-02T15:04:05.000Z07:00"),
		Action:    string(event.Action),
		Actor:     event.Actor,
		RequestID: event.RequestID,
		Detail:    event.Detail,
	}
	if !event.ChildID.IsNil() {
		payload.ChildID = event.ChildID.String()
	}
	if !event.ProgressID.IsNil() {
		payload.ProgressID = event.ProgressID.String()
	}

	value, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("encode audit event: %w", err)
	}

	record := &kgo.Record{Topic: s.topic, Key: []byte(payload.ChildID), Value: value}
	if err := s.client.ProduceSync(ctx, record).FirstErr(); err != nil {
		return fmt.Errorf("produce audit event: %w", err)
	}
	return nil
}

// Close flushes outstanding records and releases the client.
func (s *KafkaSink) Close() {
	s.client.Close()
}
