package event

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/segmentio/kafka-go"

	"github.com/haintran/portfolio-api/internal/application/service"
	"github.com/haintran/portfolio-api/internal/config"
)

const TopicProfileEvents = "profile.events"

// KafkaAuditProducer writes profile audit events to the profile.events
// topic, keyed by owner id so one owner's history stays ordered.
type KafkaAuditProducer struct {
	writer *kafka.Writer
}

func NewKafkaAuditProducer(cfg config.Config) (*KafkaAuditProducer, error) {
	brokers := cfg.Kafka.Brokers
	if len(brokers) == 0 {
		return nil, fmt.Errorf("config Kafka brokers not found")
	}

	writer := &kafka.Writer{
		Addr:     kafka.TCP(brokers...),
		Topic:    TopicProfileEvents,
		Balancer: &kafka.LeastBytes{},
	}

	return &KafkaAuditProducer{writer: writer}, nil
}

func (p *KafkaAuditProducer) Publish(ctx context.Context, event service.AuditEvent) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal audit event: %w", err)
	}
	err = p.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(event.OwnerID.String()),
		Value: payload,
	})
	if err != nil {
		return fmt.Errorf("failed to write audit event: %w", err)
	}
	return nil
}

func (p *KafkaAuditProducer) Close() {
	if p.writer != nil {
		p.writer.Close()
	}
}
