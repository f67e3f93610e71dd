package events

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"etiket-museum/internal/config"
	"etiket-museum/internal/logger"
)

func newTestProducer(t *testing.T, cfg config.KafkaConfig) *Producer {
	t.Helper()
	log := logger.NewLogger()
	t.Cleanup(func() { log.Close() })
	p := NewProducer(cfg, log)
	t.Cleanup(p.Close)
	return p
}

func TestPublishDisabledIsNoOp(t *testing.T) {
	p := newTestProducer(t, config.KafkaConfig{Enabled: false})

	assert.NotPanics(t, func() {
		p.Publish("payment.initiated", "budi@example.com", "order", "1")
	})
}

func TestPublishMockModeSkipsBroker(t *testing.T) {
	p := newTestProducer(t, config.KafkaConfig{
		Brokers:  []string{"localhost:9092"},
		Topic:    "museum.site.activity",
		Enabled:  true,
		MockMode: true,
	})

	// no broker is running; mock mode must not attempt a connection
	assert.NotPanics(t, func() {
		p.Publish("ticket.created", "admin@example.com", "ticket", "3")
	})
}
