// Package sink consumes change notifications and appends them to a local
// log file. Offsets are committed on receipt, before the file write is
// confirmed: a crash between receipt and write drops that message. This is an
// accepted failure mode of the sink and is not retried.
package sink

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/segmentio/kafka-go"
)

type kafkaReader interface {
	ReadMessage(ctx context.Context) (kafka.Message, error)
	Close() error
}

type Sink struct {
	r    kafkaReader
	path string
	log  *slog.Logger
}

func New(brokers []string, topic, groupID, path string, log *slog.Logger) *Sink {
	r := kafka.NewReader(kafka.ReaderConfig{
		Brokers:  brokers,
		Topic:    topic,
		GroupID:  groupID,
		MinBytes: 1,
		MaxBytes: 10e6,
		MaxWait:  time.Second,
	})
	return &Sink{r: r, path: path, log: log}
}

// Run reads until ctx is cancelled. Write failures are logged and the
// message is skipped.
func (s *Sink) Run(ctx context.Context) error {
	s.log.Info("notification sink started", "file", s.path)
	for {
		m, err := s.r.ReadMessage(ctx)
		if err != nil {
			if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
				return nil
			}
			return fmt.Errorf("sink read failed: %w", err)
		}

		if err := s.appendLine(string(m.Value)); err != nil {
			s.log.Error("failed to write notification to file", "error", err)
			continue
		}
		s.log.Info("notification recorded", "length", len(m.Value))
	}
}

func (s *Sink) appendLine(message string) error {
	f, err := os.OpenFile(s.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return err
	}
	defer f.Close()

	line := fmt.Sprintf("%s | %s\n", time.Now().UTC().Format("2006-01-02 15:04:05"), message)
	_, err = f.WriteString(line)
	return err
}

func (s *Sink) Close() error {
	return s.r.Close()
}
