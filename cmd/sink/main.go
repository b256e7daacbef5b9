package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/Skotchmaster/customer_orders/internal/config"
	"github.com/Skotchmaster/customer_orders/internal/logging"
	"github.com/Skotchmaster/customer_orders/internal/sink"
)

func main() {
	configuration, err := config.LoadConfig()
	if err != nil {
		log.Fatal(err)
	}

	logger := logging.New(configuration.LOG_LEVEL)

	s := sink.New(
		[]string{configuration.KAFKA_ADDRESS},
		configuration.KAFKA_TOPIC,
		configuration.KAFKA_GROUP,
		configuration.SINK_FILE,
		logger,
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := s.Run(ctx); err != nil {
		logger.Error("sink stopped", "error", err)
	}

	if err := s.Close(); err != nil {
		log.Printf("sink close error: %v", err)
	}
}
