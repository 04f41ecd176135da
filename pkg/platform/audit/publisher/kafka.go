// Package publisher ships audit events to Kafka. The store remains the
// queryable record; Kafka feeds downstream compliance and SIEM tooling.
package publisher

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/twmb/franz-go/pkg/kadm"
	"github.com/twmb/franz-go/pkg/kerr"
	"github.com/twmb/franz-go/pkg/kgo"

	"github.com/google/uuid"

	audit "driveguard/pkg/platform/audit"
)

// Kafka publishes audit events to a single topic, keyed by driver ID so one
// driver's trail stays ordered within a partition.
type Kafka struct {
	client *kgo.Client
	topic  string
	logger *slog.Logger
}

type Option func(*Kafka)

func WithLogger(logger *slog.Logger) Option {
	return func(k *Kafka) {
		k.logger = logger
	}
}

// New connects to the brokers and ensures the audit topic exists. Topic
// creation races are tolerated: an "already exists" response is success.
func New(ctx context.Context, brokers []string, topic string, opts ...Option) (*Kafka, error) {
	client, err := kgo.NewClient(
		kgo.SeedBrokers(brokers...),
		kgo.DefaultProduceTopic(topic),
		kgo.ProducerBatchCompression(kgo.SnappyCompression()),
	)
	if err != nil {
		return nil, fmt.Errorf("connect kafka: %w", err)
	}

	k := &Kafka{client: client, topic: topic}
	for _, opt := range opts {
		opt(k)
	}

	if err := k.ensureTopic(ctx); err != nil {
		client.Close()
		return nil, err
	}
	return k, nil
}

func (k *Kafka) ensureTopic(ctx context.Context) error {
	adm := kadm.NewClient(k.client)
	resp, err := adm.CreateTopics(ctx, 3, 1, nil, k.topic)
	if err != nil {
		return fmt.Errorf("create topic %q: %w", k.topic, err)
	}
	for _, r := range resp {
		if r.Err != nil && !errors.Is(r.Err, kerr.TopicAlreadyExists) {
			return fmt.Errorf("create topic %q: %w", r.Topic, r.Err)
		}
	}
	return nil
}

// wireEvent is the JSON shape on the topic. Optional IDs are omitted rather
// than serialized as zero UUIDs.
type wireEvent struct {
	ID        string `json:"id"`
	Category  string `json:"category"`
	Timestamp string `json:"timestamp"`
	UserID    string `json:"user_id,omitempty"`
	OrgID     string `json:"org_id,omitempty"`
	DriverID  string `json:"driver_id,omitempty"`
	Action    string `json:"action"`
	Outcome   string `json:"outcome,omitempty"`
	Reason    string `json:"reason,omitempty"`
	RequestID string `json:"request_id,omitempty"`
	ClientIP  string `json:"client_ip,omitempty"`
	UserAgent string `json:"user_agent,omitempty"`
}

// Emit produces one event synchronously. Callers that must not block sit
// behind the worker, which drains a channel into this method.
func (k *Kafka) Emit(ctx context.Context, event audit.Event) error {
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}

	wire := wireEvent{
		ID:        uuid.NewString(),
		Category:  string(audit.AuditEvent(event.Action).Category()),
		Timestamp: event.Timestamp.Format(time.RFC3339Nano),
		Action:    event.Action,
		Outcome:   event.Outcome,
		Reason:    event.Reason,
		RequestID: event.RequestID,
		ClientIP:  event.ClientIP,
		UserAgent: event.UserAgent,
	}
	if !event.UserID.IsNil() {
		wire.UserID = event.UserID.String()
	}
	if !event.OrgID.IsNil() {
		wire.OrgID = event.OrgID.String()
	}
	if !event.DriverID.IsNil() {
		wire.DriverID = event.DriverID.String()
	}

	value, err := json.Marshal(wire)
	if err != nil {
		return fmt.Errorf("marshal audit event: %w", err)
	}

	record := &kgo.Record{
		Topic: k.topic,
		Key:   []byte(wire.DriverID),
		Value: value,
	}
	if err := k.client.ProduceSync(ctx, record).FirstErr(); err != nil {
		if k.logger != nil {
			k.logger.ErrorContext(ctx, "audit publish failed",
				"action", event.Action,
				"error", err,
			)
		}
		return fmt.Errorf("produce audit event: %w", err)
	}
	return nil
}

func (k *Kafka) Close() error {
	k.client.Close()
	return nil
}
