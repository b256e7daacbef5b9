package mykafka

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/segmentio/kafka-go"
)

type kafkaWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// Producer keeps one writer onto a durable, named topic and publishes plain
// text notifications to it.
type Producer struct {
	mu        sync.Mutex
	w         kafkaWriter
	newWriter func() kafkaWriter
	log       *slog.Logger
}

func NewProducer(brokers []string, topic string, log *slog.Logger) *Producer {
	nw := func() kafkaWriter {
		return &kafka.Writer{
			Addr:                   kafka.TCP(brokers...),
			Topic:                  topic,
			Balancer:               &kafka.LeastBytes{},
			RequiredAcks:           kafka.RequireOne,
			AllowAutoTopicCreation: true,
		}
	}
	return &Producer{w: nw(), newWriter: nw, log: log}
}

// Publish sends one message. On a broken writer it recreates the connection
// and retries exactly once; the second failure is returned to the caller, who
// treats the message as dropped.
func (p *Producer) Publish(ctx context.Context, message string) error {
	if message == "" {
		p.log.Warn("attempted to publish an empty message")
		return nil
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	msg := kafka.Message{Value: []byte(message)}
	err := p.w.WriteMessages(ctx, msg)
	if err == nil {
		p.log.Info("notification published", "message", message)
		return nil
	}

	p.log.Warn("kafka publish failed, reconnecting", "error", err)
	_ = p.w.Close()
	p.w = p.newWriter()

	if err := p.w.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("kafka publish failed after reconnect: %w", err)
	}
	p.log.Info("notification published after reconnect", "message", message)
	return nil
}

func (p *Producer) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.w.Close()
}
