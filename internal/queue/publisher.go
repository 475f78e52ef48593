package queue

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/segmentio/kafka-go"
)

// Publisher delivers booking events to a broker.  Callers treat failures as
// non-fatal: the booking is already committed.
type Publisher interface {
	PublishBookingConfirmed(ctx context.Context, ev BookingConfirmedEvent) error
	Close() error
}

// NewPublisher returns the publisher for backend ("rabbitmq", "kafka" or
// "none").
func NewPublisher(backend, amqpURL string, kafkaBrokers []string, kafkaTopic string) (Publisher, error) {
	switch backend {
	case "rabbitmq":
		return NewAMQPPublisher(amqpURL), nil
	case "kafka":
		return NewKafkaPublisher(kafkaBrokers, kafkaTopic), nil
	case "none", "":
		return NopPublisher{}, nil
	}
	return nil, fmt.Errorf("unknown events backend %q", backend)
}

// AMQPPublisher publishes persistent JSON messages to the booking.confirmed
// queue through the default exchange.  A connection is dialled per publish;
// booking volume is low and this keeps the publisher free of reconnect
// state.
type AMQPPublisher struct {
	url string
}

func NewAMQPPublisher(url string) *AMQPPublisher { return &AMQPPublisher{url: url} }

func (p *AMQPPublisher) PublishBookingConfirmed(ctx context.Context, ev BookingConfirmedEvent) error {
	body, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}

	conn, err := amqp.DialConfig(p.url, amqp.Config{Dial: amqp.DefaultDial(3 * time.Second)})
	if err != nil {
		return fmt.Errorf("rabbitmq dial: %w", err)
	}
	defer func() { _ = conn.Close() }()

	ch, err := conn.Channel()
	if err != nil {
		return fmt.Errorf("rabbitmq channel: %w", err)
	}
	defer func() { _ = ch.Close() }()

	// Durable so messages survive broker restarts.
	if _, err := ch.QueueDeclare(BookingConfirmedQueue, true, false, false, false, nil); err != nil {
		return fmt.Errorf("rabbitmq queue declare: %w", err)
	}

	pub := amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Timestamp:    time.Now().UTC(),
		MessageId:    fmt.Sprintf("booking-%d", ev.BookingID),
		Body:         body,
	}
	if err := ch.PublishWithContext(ctx, "", BookingConfirmedQueue, false, false, pub); err != nil {
		return fmt.Errorf("rabbitmq publish: %w", err)
	}
	return nil
}

func (p *AMQPPublisher) Close() error { return nil }

// KafkaPublisher writes events keyed by booking ID so that all messages of
// one booking land on the same partition.
type KafkaPublisher struct {
	writer *kafka.Writer
}

func NewKafkaPublisher(brokers []string, topic string) *KafkaPublisher {
	if topic == "" {
		topic = BookingConfirmedQueue
	}
	return &KafkaPublisher{writer: &kafka.Writer{
		Addr:                   kafka.TCP(brokers...),
		Topic:                  topic,
		Balancer:               &kafka.Hash{},
		RequiredAcks:           kafka.RequireOne,
		AllowAutoTopicCreation: true,
		WriteTimeout:           3 * time.Second,
	}}
}

func (p *KafkaPublisher) PublishBookingConfirmed(ctx context.Context, ev BookingConfirmedEvent) error {
	body, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}
	msg := kafka.Message{
		Key:   []byte(fmt.Sprintf("%d", ev.BookingID)),
		Value: body,
		Time:  time.Now().UTC(),
	}
	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("kafka write: %w", err)
	}
	return nil
}

func (p *KafkaPublisher) Close() error { return p.writer.Close() }

// NopPublisher drops every event.
type NopPublisher struct{}

func (NopPublisher) PublishBookingConfirmed(context.Context, BookingConfirmedEvent) error { return nil }

func (NopPublisher) Close() error { return nil }
