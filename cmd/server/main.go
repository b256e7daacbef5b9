package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/Skotchmaster/customer_orders/internal/cache"
	"github.com/Skotchmaster/customer_orders/internal/config"
	"github.com/Skotchmaster/customer_orders/internal/es"
	"github.com/Skotchmaster/customer_orders/internal/handlers"
	"github.com/Skotchmaster/customer_orders/internal/logging"
	loggingmw "github.com/Skotchmaster/customer_orders/internal/middleware/logging"
	"github.com/Skotchmaster/customer_orders/internal/mykafka"
	"github.com/Skotchmaster/customer_orders/internal/repo"
	"github.com/Skotchmaster/customer_orders/internal/service"
	httpserver "github.com/Skotchmaster/customer_orders/internal/transport/http"
)

func main() {
	configuration, err := config.LoadConfig()
	if err != nil {
		log.Fatal(err)
	}

	logger := logging.New(configuration.LOG_LEVEL)

	db, err := config.InitDB(configuration)
	if err != nil {
		log.Fatalf("database init error: %v", err)
	}

	cacheDB, err := cache.Open(configuration.CACHE_PATH)
	if err != nil {
		log.Fatalf("cache open error: %v", err)
	}
	productCache := cache.New(cacheDB, cache.DefaultTTL, logger)

	producer := mykafka.NewProducer([]string{configuration.KAFKA_ADDRESS}, configuration.KAFKA_TOPIC, logger)

	esClient, err := es.NewClient(configuration, logger)
	if err != nil {
		log.Printf("elasticsearch unavailable, search disabled: %v", err)
		esClient = nil
	}

	productRepo := &repo.ProductRepo{DB: db}
	orderRepo := &repo.OrderRepo{DB: db}
	customerRepo := &repo.CustomerRepo{DB: db}

	orderSvc := &service.OrderService{
		Orders:   orderRepo,
		Products: productRepo,
		Notifier: producer,
		Log:      logger,
	}
	productSvc := &service.ProductService{
		Repo:     productRepo,
		Cache:    productCache,
		Notifier: producer,
		ES:       esClient,
		ESIndex:  "product",
		Log:      logger,
	}
	customerSvc := &service.CustomerService{
		Repo:     customerRepo,
		Notifier: producer,
		Log:      logger,
	}

	e := echo.New()
	e.Pre(middleware.RemoveTrailingSlash())
	e.Use(middleware.Recover(), middleware.RequestID())
	e.Use(loggingmw.RequestLogger(logger))
	e.Use(loggingmw.PersistRequests(db, logger))

	deps := httpserver.Deps{
		DB:              db,
		OrderHandler:    &handlers.OrderHandler{Svc: orderSvc},
		ProductHandler:  &handlers.ProductHandler{Svc: productSvc},
		CustomerHandler: &handlers.CustomerHandler{Svc: customerSvc},
	}
	if esClient != nil {
		deps.SearchHandler = &handlers.SearchHandler{ES: esClient, Index: "product"}
	}

	httpserver.Register(e, &deps)

	srv := &http.Server{
		Addr:         ":8080",
		Handler:      e,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Printf("http server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Printf("server shutdown error: %v", err)
	}

	if sqlDB, err := db.DB(); err == nil {
		if err := sqlDB.Close(); err != nil {
			log.Printf("db close error: %v", err)
		}
	} else {
		log.Printf("db() error: %v", err)
	}

	if err := producer.Close(); err != nil {
		log.Printf("kafka close error: %v", err)
	}

	if err := cacheDB.Close(); err != nil {
		log.Printf("cache close error: %v", err)
	}

	log.Println("shutdown complete")
}
