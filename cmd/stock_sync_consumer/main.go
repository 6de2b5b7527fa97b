package main

// Consumes stock-sync events and pushes each size's stock to the external
// inventory system. Transient push failures are requeued; malformed messages
// are dropped.

import (
	"context"
	"encoding/json"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Rasouli77/ellenovastyle/internal/client/stockmgmt"
	"github.com/Rasouli77/ellenovastyle/internal/mq"
	"github.com/Rasouli77/ellenovastyle/pkg/app"
	"github.com/Rasouli77/ellenovastyle/pkg/logger"

	"github.com/streadway/amqp"
)

func main() {
	cfg := app.BootstrapApp()

	conn, ch, msgs, err := mq.NewConsumerChannel(&cfg.MQ, mq.StockSyncQueue, mq.StockSyncKey, mq.Exchange, true, cfg.MQ.ConsumerPrefetch)
	if err != nil {
		logger.Fatal("consumer init failed", "error", err)
	}
	defer mq.CloseConsumer(conn, ch)

	pusher := stockmgmt.NewClient(&cfg.StockManagement)

	done := make(chan struct{})
	go func() {
		defer close(done)
		for d := range msgs {
			handle(pusher, d)
		}
	}()
	logger.Info("Stock sync consumer started", "queue", mq.StockSyncQueue)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	select {
	case <-quit:
		logger.Info("Shutting down stock sync consumer")
	case <-done:
		logger.Warn("Delivery channel closed")
	}
}

func handle(pusher *stockmgmt.Client, d amqp.Delivery) {
	var msg mq.StockSyncMessage
	if err := json.Unmarshal(d.Body, &msg); err != nil {
		logger.Error("malformed stock sync message", "error", err)
		_ = d.Nack(false, false)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := pusher.PushStock(ctx, msg.ProductCode, msg.Stock); err != nil {
		logger.Warn("stock push failed, requeueing", "product_code", msg.ProductCode, "error", err)
		_ = d.Nack(false, true)
		return
	}
	logger.Info("stock pushed", "product_code", msg.ProductCode, "stock", msg.Stock)
	_ = d.Ack(false)
}
