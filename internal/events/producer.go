// Package events streams site activity (payment initiations, admin
// mutations) to Kafka for downstream reporting. Publishing is fire and
// forget: a broker outage never blocks or fails a user action.
package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/segmentio/kafka-go"

	"etiket-museum/internal/config"
	"etiket-museum/internal/logger"
)

type Event struct {
	Type     string    `json:"type"`
	Actor    string    `json:"actor,omitempty"`
	Entity   string    `json:"entity"`
	EntityID string    `json:"entityId,omitempty"`
	At       time.Time `json:"at"`
}

type Producer struct {
	writer   *kafka.Writer
	enabled  bool
	mockMode bool
	logger   *logger.Logger
}

func NewProducer(cfg config.KafkaConfig, log *logger.Logger) *Producer {
	p := &Producer{
		enabled:  cfg.Enabled,
		mockMode: cfg.MockMode,
		logger:   log,
	}
	if cfg.Enabled && !cfg.MockMode {
		p.writer = kafka.NewWriter(kafka.WriterConfig{
			Brokers: cfg.Brokers,
			Topic:   cfg.Topic,
		})
	}
	return p
}

// Publish emits one activity event. Disabled producers drop it, mock mode
// only logs it, and write failures are logged and swallowed.
func (p *Producer) Publish(eventType, actor, entity, entityID string) {
	if p == nil || !p.enabled {
		return
	}

	event := Event{
		Type:     eventType,
		Actor:    actor,
		Entity:   entity,
		EntityID: entityID,
		At:       time.Now().UTC(),
	}

	if p.mockMode || p.writer == nil {
		p.logger.Info("EVENTS", fmt.Sprintf("[mock] %s %s/%s", event.Type, event.Entity, event.EntityID))
		return
	}

	value, err := json.Marshal(event)
	if err != nil {
		p.logger.Error("EVENTS", fmt.Sprintf("failed to marshal event: %v", err))
		return
	}

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		err := p.writer.WriteMessages(ctx, kafka.Message{
			Key:   []byte(event.Type),
			Value: value,
		})
		if err != nil {
			p.logger.Error("EVENTS", fmt.Sprintf("failed to publish %s: %v", event.Type, err))
		}
	}()
}

func (p *Producer) Close() {
	if p != nil && p.writer != nil {
		p.writer.Close()
	}
}
