package main

import (
	"context"
	"encoding/json"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"

	"github.com/haintran/portfolio-api/adapters/event"
	"github.com/haintran/portfolio-api/internal/application/service"
	"github.com/haintran/portfolio-api/internal/config"
	"github.com/haintran/portfolio-api/pkg/logger"
)

// The worker tails the audit topic and writes a structured audit trail.
// It is the durable record of dashboard edits; the API treats publishing
// as best effort.
func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		panic("cannot load config: " + err.Error())
	}

	log := logger.NewZapLogger(cfg.App.Env)
	log.Info("Starting portfolio audit worker...")

	consumer := kafka.NewReader(kafka.ReaderConfig{
		Brokers:  cfg.Kafka.Brokers,
		Topic:    event.TopicProfileEvents,
		GroupID:  "audit-log-group",
		MinBytes: 10e3,
		MaxBytes: 10e6,
	})
	defer consumer.Close()

	log.Info("Worker listening", zap.String("topic", event.TopicProfileEvents))

	ctx := context.Background()
	for {
		msg, err := consumer.ReadMessage(ctx)
		if err != nil {
			log.Error("failed to read message from Kafka", err)
			continue
		}

		var audit service.AuditEvent
		if err := json.Unmarshal(msg.Value, &audit); err != nil {
			log.Error("failed to unmarshal audit event, skipping", err, zap.ByteString("value", msg.Value))
			commitMessage(log, consumer, msg)
			continue
		}

		log.Info("audit",
			zap.String("type", audit.Type),
			zap.String("owner_id", audit.OwnerID.String()),
			zap.String("resource", audit.Resource),
			zap.String("item_id", audit.ItemID),
			zap.Int64("at", audit.At),
		)
		commitMessage(log, consumer, msg)
	}
}

func commitMessage(log logger.Logger, consumer *kafka.Reader, msg kafka.Message) {
	if err := consumer.CommitMessages(context.Background(), msg); err != nil {
		log.Error("failed to commit message", err)
	}
}
