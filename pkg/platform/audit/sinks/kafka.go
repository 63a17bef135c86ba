package sinks

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/twmb/franz-go/pkg/kadm"
	"github.com/twmb/franz-go/pkg/kgo"

	"intake/pkg/platform/audit"
)

// Kafka publishes audit events to a topic asynchronously. Produce errors are
// logged, never surfaced: the audit channel must not fail the operation being
// audited.
type Kafka struct {
	client *kgo.Client
	topic  string
	logger *slog.Logger
}

// NewKafka connects to the given brokers and ensures the audit topic exists.
func NewKafka(ctx context.Context, brokers []string, topic string, logger *slog.Logger) (*Kafka, error) {
	client, err := kgo.NewClient(
		kgo.SeedBrokers(brokers...),
		kgo.DefaultProduceTopic(topic),
	)
	if err != nil {
		return nil, fmt.Errorf("create kafka client: %w", err)
	}

	adm := kadm.NewClient(client)
	if _, err := adm.CreateTopics(ctx, 1, 1, nil, topic); err != nil {
		// Topic may already exist; per-topic errors are reported in the
		// response, not here, so a transport-level failure is fatal.
		client.Close()
		return nil, fmt.Errorf("ensure audit topic: %w", err)
	}

	return &Kafka{client: client, topic: topic, logger: logger}, nil
}

func (k *Kafka) Emit(ctx context.Context, event audit.Event) {
	payload, err := json.Marshal(event)
	if err != nil {
		if k.logger != nil {
			k.logger.WarnContext(ctx, "audit event not serializable", "event", event.Name, "error", err.Error())
		}
		return
	}

	record := &kgo.Record{
		Key:   []byte(event.Name),
		Value: payload,
	}
	k.client.Produce(ctx, record, func(_ *kgo.Record, err error) {
		if err != nil && k.logger != nil {
			k.logger.Warn("audit kafka produce failed", "event", event.Name, "error", err.Error())
		}
	})
}

// Close flushes buffered records and releases the client.
func (k *Kafka) Close(ctx context.Context) error {
	if err := k.client.Flush(ctx); err != nil {
		k.client.Close()
		return fmt.Errorf("flush audit events: %w", err)
	}
	k.client.Close()
	return nil
}
