package messaging

import (
	"context"
	"fmt"
	"time"

	"github.com/segmentio/kafka-go"
	"github.com/sirupsen/logrus"
)

// Publisher delivers serialized domain events to a broker
type Publisher interface {
	Publish(ctx context.Context, key, eventType string, payload []byte) error
	Close() error
}

// KafkaProducer publishes to one topic, keyed by aggregate so events of the same
// order or prescription stay ordered within a partition
type KafkaProducer struct {
	writer *kafka.Writer
	log    *logrus.Logger
}

func NewKafkaProducer(brokers []string, topic string, log *logrus.Logger) *KafkaProducer {
	writer := &kafka.Writer{
		Addr:                   kafka.TCP(brokers...),
		Topic:                  topic,
		Balancer:               &kafka.Hash{},
		RequiredAcks:           kafka.RequireAll,
		WriteTimeout:           10 * time.Second,
		AllowAutoTopicCreation: true,
	}

	log.Infof("Kafka producer created for topic %s", topic)
	return &KafkaProducer{writer: writer, log: log}
}

func (p *KafkaProducer) Publish(ctx context.Context, key, eventType string, payload []byte) error {
	err := p.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(key),
		Value: payload,
		Headers: []kafka.Header{
			{Key: "event_type", Value: []byte(eventType)},
		},
	})
	if err != nil {
		return fmt.Errorf("failed to publish message: %w", err)
	}

	p.log.WithFields(logrus.Fields{"topic": p.writer.Topic, "key": key, "event_type": eventType}).Debug("Event published")
	return nil
}

func (p *KafkaProducer) Topic() string {
	return p.writer.Topic
}

func (p *KafkaProducer) Close() error {
	return p.writer.Close()
}

// LogPublisher stands in for Kafka when no brokers are configured
type LogPublisher struct {
	log *logrus.Logger
}

func NewLogPublisher(log *logrus.Logger) *LogPublisher {
	return &LogPublisher{log: log}
}

func (p *LogPublisher) Publish(ctx context.Context, key, eventType string, payload []byte) error {
	p.log.WithFields(logrus.Fields{
		"key":        key,
		"event_type": eventType,
		"payload":    string(payload),
	}).Info("Domain event")
	return nil
}

func (p *LogPublisher) Close() error {
	return nil
}
