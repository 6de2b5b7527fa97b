package mq

// RabbitMQ wrapper for the stock-sync event stream:
// - a producer channel pool with async confirms (publishers never block on ACK)
// - consumers create their own channel, independent of the pool

import (
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/Rasouli77/ellenovastyle/config"
	"github.com/Rasouli77/ellenovastyle/pkg/logger"
	"github.com/streadway/amqp"
)

// Exchange carries every storefront event; routing keys select consumers.
const (
	Exchange       = "shop.exchange"
	StockSyncKey   = "stock.sync"
	StockSyncQueue = "shop.stock_sync"
)

// StockSyncMessage asks the consumer to push one size's stock to the
// external inventory system.
type StockSyncMessage struct {
	ProductCode string `json:"product_code"`
	Stock       int    `json:"stock"`
	TimeUnix    int64  `json:"time_unix"`
}

type channelWrapper struct {
	ch       *amqp.Channel
	confirms <-chan amqp.Confirmation
}

// Pool holds one connection and a set of producer channels in confirm mode.
type Pool struct {
	conn     *amqp.Connection
	channels chan *channelWrapper
	size     int
	mu       sync.Mutex
	closed   bool
}

// Init dials RabbitMQ and fills the producer channel pool.
func Init(cfg *config.MQConfig) (*Pool, error) {
	url := fmt.Sprintf("amqp://%s:%s@%s:%d/", cfg.User, cfg.Password, cfg.Host, cfg.Port)
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("dial rabbitmq failed: %w", err)
	}
	size := cfg.ChannelPoolSize
	if size <= 0 {
		size = 8
	}

	p := &Pool{conn: conn, channels: make(chan *channelWrapper, size), size: size}
	for i := 0; i < size; i++ {
		cw, err := p.createChannelWrapper()
		if err != nil {
			_ = conn.Close()
			return nil, fmt.Errorf("open channel failed: %w", err)
		}
		p.channels <- cw
	}
	logger.Info("MQ producer channel pool initialized", "size", size)
	return p, nil
}

func (p *Pool) createChannelWrapper() (*channelWrapper, error) {
	ch, err := p.conn.Channel()
	if err != nil {
		return nil, err
	}
	if err := ch.Confirm(false); err != nil {
		_ = ch.Close()
		return nil, fmt.Errorf("enable confirm failed: %w", err)
	}

	conf := ch.NotifyPublish(make(chan amqp.Confirmation, 1024))
	// Confirms are drained in the background; only Nacks are worth logging.
	go func(c <-chan amqp.Confirmation) {
		for cf := range c {
			if !cf.Ack {
				logger.Warn("publish not acked", "delivery_tag", cf.DeliveryTag)
			}
		}
	}(conf)
	return &channelWrapper{ch: ch, confirms: conf}, nil
}

func (p *Pool) acquire() *channelWrapper {
	return <-p.channels
}

func (p *Pool) release(cw *channelWrapper) {
	if cw == nil || p.closed {
		return
	}
	p.channels <- cw
}

// Close shuts down all channels and the connection.
func (p *Pool) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return
	}
	p.closed = true
	close(p.channels)
	for cw := range p.channels {
		_ = cw.ch.Close()
	}
	_ = p.conn.Close()
}

// EnsureBaseTopology declares the exchange; queues are declared by their
// consumers to avoid argument conflicts.
func (p *Pool) EnsureBaseTopology() error {
	ch, err := p.conn.Channel()
	if err != nil {
		return err
	}
	defer ch.Close()
	if err := ch.ExchangeDeclare(Exchange, "topic", true, false, false, false, nil); err != nil {
		return fmt.Errorf("declare exchange failed: %w", err)
	}
	logger.Info("Base MQ exchange ensured")
	return nil
}

// PublishAsync publishes without waiting for the broker's confirm.
func (p *Pool) PublishAsync(exchange, key string, body []byte) error {
	cw := p.acquire()
	defer p.release(cw)
	return cw.ch.Publish(exchange, key, false, false, amqp.Publishing{
		ContentType:  "application/json",
		Body:         body,
		DeliveryMode: amqp.Persistent,
		Timestamp:    time.Now(),
	})
}

// PublishStockSync enqueues an inventory push for the consumer.
func (p *Pool) PublishStockSync(productCode string, stock int) error {
	body, err := json.Marshal(StockSyncMessage{
		ProductCode: productCode,
		Stock:       stock,
		TimeUnix:    time.Now().Unix(),
	})
	if err != nil {
		return err
	}
	return p.PublishAsync(Exchange, StockSyncKey, body)
}

// NewConsumerChannel creates an independent consumer connection and channel.
func NewConsumerChannel(cfg *config.MQConfig, queue, bindKey, exchange string, durable bool, prefetch int) (*amqp.Connection, *amqp.Channel, <-chan amqp.Delivery, error) {
	url := fmt.Sprintf("amqp://%s:%s@%s:%d/", cfg.User, cfg.Password, cfg.Host, cfg.Port)
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("dial rabbitmq failed: %w", err)
	}
	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, nil, nil, fmt.Errorf("open channel failed: %w", err)
	}
	if exchange != "" {
		if err := ch.ExchangeDeclare(exchange, "topic", true, false, false, false, nil); err != nil {
			ch.Close()
			conn.Close()
			return nil, nil, nil, fmt.Errorf("declare exchange failed: %w", err)
		}
	}
	if _, err := ch.QueueDeclare(queue, durable, false, false, false, nil); err != nil {
		ch.Close()
		conn.Close()
		return nil, nil, nil, fmt.Errorf("declare queue failed: %w", err)
	}

	if bindKey != "" && exchange != "" {
		if err := ch.QueueBind(queue, bindKey, exchange, false, nil); err != nil {
			ch.Close()
			conn.Close()
			return nil, nil, nil, fmt.Errorf("bind queue failed: %w", err)
		}
	}
	if prefetch > 0 {
		if err := ch.Qos(prefetch, 0, false); err != nil {
			ch.Close()
			conn.Close()
			return nil, nil, nil, fmt.Errorf("set qos failed: %w", err)
		}
	}
	msgs, err := ch.Consume(queue, "", false, false, false, false, nil)
	if err != nil {
		ch.Close()
		conn.Close()
		return nil, nil, nil, fmt.Errorf("consume failed: %w", err)
	}
	return conn, ch, msgs, nil
}

// CloseConsumer releases a consumer connection and channel.
func CloseConsumer(conn *amqp.Connection, ch *amqp.Channel) {
	if ch != nil {
		_ = ch.Close()
	}
	if conn != nil {
		_ = conn.Close()
	}
}
