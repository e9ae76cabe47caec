package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/IBM/sarama"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/jhoicas/textil-erp/internal/application/ports"
)

// EventTypeOrderStatusChanged valor del header event_type.
const EventTypeOrderStatusChanged = "order.status_changed"

var _ ports.EventPublisher = (*Publisher)(nil)

// OrderStatusEvent sobre JSON que viaja en el mensaje.
type OrderStatusEvent struct {
	EventID     string    `json:"event_id"`
	EventType   string    `json:"event_type"`
	OrderType   string    `json:"order_type"`
	OrderID     string    `json:"order_id"`
	OrderNumber string    `json:"order_number"`
	From        string    `json:"from"`
	To          string    `json:"to"`
	UserID      string    `json:"user_id,omitempty"`
	Timestamp   time.Time `json:"timestamp"`
}

// Publisher envía los cambios de estado de órdenes a un topic de Kafka.
type Publisher struct {
	producer sarama.SyncProducer
	topic    string
	log      zerolog.Logger
}

// NewProducerConfig configuración del productor: espera ack de todas las réplicas y reintenta 3 veces.
func NewProducerConfig(clientID string) *sarama.Config {
	config := sarama.NewConfig()
	config.ClientID = clientID
	config.Producer.Return.Successes = true
	config.Producer.Retry.Max = 3
	config.Producer.RequiredAcks = sarama.WaitForAll
	config.Producer.Compression = sarama.CompressionSnappy
	config.Producer.Timeout = 5 * time.Second
	return config
}

// NewPublisher conecta un SyncProducer a los brokers.
func NewPublisher(brokers []string, topic, clientID string, log zerolog.Logger) (*Publisher, error) {
	producer, err := sarama.NewSyncProducer(brokers, NewProducerConfig(clientID))
	if err != nil {
		return nil, fmt.Errorf("crear productor Kafka: %w", err)
	}
	log.Info().Strs("brokers", brokers).Str("topic", topic).Msg("publicador Kafka inicializado")
	return NewPublisherWithProducer(producer, topic, log), nil
}

// NewPublisherWithProducer permite inyectar el productor (tests con sarama/mocks).
func NewPublisherWithProducer(producer sarama.SyncProducer, topic string, log zerolog.Logger) *Publisher {
	return &Publisher{producer: producer, topic: topic, log: log}
}

// PublishOrderStatusChanged serializa el evento y lo envía con la orden como clave,
// así todos los cambios de una misma orden caen en la misma partición.
func (p *Publisher) PublishOrderStatusChanged(ctx context.Context, ev ports.OrderStatusChanged) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	at := ev.At
	if at.IsZero() {
		at = time.Now().UTC()
	}
	event := OrderStatusEvent{
		EventID:     uuid.NewString(),
		EventType:   EventTypeOrderStatusChanged,
		OrderType:   ev.OrderType,
		OrderID:     ev.OrderID,
		OrderNumber: ev.OrderNumber,
		From:        ev.From,
		To:          ev.To,
		UserID:      ev.UserID,
		Timestamp:   at,
	}
	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("serializar evento: %w", err)
	}

	msg := &sarama.ProducerMessage{
		Topic: p.topic,
		Key:   sarama.StringEncoder(ev.OrderID),
		Value: sarama.ByteEncoder(body),
		Headers: []sarama.RecordHeader{
			{Key: []byte("event_type"), Value: []byte(EventTypeOrderStatusChanged)},
			{Key: []byte("event_id"), Value: []byte(event.EventID)},
			{Key: []byte("order_type"), Value: []byte(ev.OrderType)},
		},
	}

	partition, offset, err := p.producer.SendMessage(msg)
	if err != nil {
		return fmt.Errorf("enviar a Kafka: %w", err)
	}

	p.log.Debug().
		Str("event_id", event.EventID).
		Str("order_number", ev.OrderNumber).
		Str("to", ev.To).
		Int32("partition", partition).
		Int64("offset", offset).
		Msg("cambio de estado publicado")
	return nil
}

// Close cierra el productor.
func (p *Publisher) Close() error {
	if p.producer != nil {
		return p.producer.Close()
	}
	return nil
}
