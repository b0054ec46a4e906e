package producer

import (
	"context"
	"encoding/json"
	"time"

	"negociolisto-core/internal/service"

	"github.com/segmentio/kafka-go"
)

// AnalyticsProducer publishes business events to Kafka. Callers treat
// publishing as best-effort; the producer only bounds how long a publish
// may hang.
type AnalyticsProducer struct {
	writer *kafka.Writer
}

func NewAnalyticsProducer(brokers []string, topic string) *AnalyticsProducer {
	return &AnalyticsProducer{
		writer: &kafka.Writer{
			Addr:         kafka.TCP(brokers...),
			Topic:        topic,
			Balancer:     &kafka.LeastBytes{},
			RequiredAcks: kafka.RequireOne,
		},
	}
}

func (p *AnalyticsProducer) PublishSaleCreated(ctx context.Context, e service.SaleCreatedEvent) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	value, err := json.Marshal(e)
	if err != nil {
		return err
	}
	return p.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(e.SaleID),
		Value: value,
	})
}

func (p *AnalyticsProducer) Close() error {
	return p.writer.Close()
}
