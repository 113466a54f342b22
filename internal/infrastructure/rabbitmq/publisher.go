package rabbitmq

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/rs/zerolog"

	"github.com/jhoicas/buen-sabor-api/internal/application/ordering"
	"github.com/jhoicas/buen-sabor-api/pkg/config"
)

var _ ordering.EventPublisher = (*Publisher)(nil)

// DefaultExchange exchange topic de eventos de pedido si la config no define otro.
const DefaultExchange = "order_exchange"

const dialAttempts = 5

// Publisher publica eventos JSON persistentes en un exchange topic.
type Publisher struct {
	conn     *amqp.Connection
	mu       sync.Mutex // amqp.Channel no es seguro para publicar desde varias goroutines
	channel  *amqp.Channel
	exchange string
	log      zerolog.Logger
}

// NewPublisher conecta con reintentos y backoff creciente y declara el exchange.
func NewPublisher(cfg config.RabbitMQConfig, log zerolog.Logger) (*Publisher, error) {
	exchange := cfg.Exchange
	if exchange == "" {
		exchange = DefaultExchange
	}

	var conn *amqp.Connection
	var err error
	for i := 0; i < dialAttempts; i++ {
		conn, err = amqp.Dial(cfg.URL)
		if err == nil {
			break
		}
		wait := time.Duration(i*i)*time.Second + time.Second
		log.Warn().Err(err).Dur("retry_in", wait).Msg("no se pudo conectar a RabbitMQ")
		time.Sleep(wait)
	}
	if err != nil {
		return nil, fmt.Errorf("connect rabbitmq after %d attempts: %w", dialAttempts, err)
	}

	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("open channel: %w", err)
	}
	if err := ch.ExchangeDeclare(
		exchange, // name
		"topic",  // type
		true,     // durable
		false,    // auto-deleted
		false,    // internal
		false,    // no-wait
		nil,      // arguments
	); err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return nil, fmt.Errorf("declare exchange %s: %w", exchange, err)
	}
	log.Info().Str("exchange", exchange).Msg("exchange de eventos declarado")
	return &Publisher{conn: conn, channel: ch, exchange: exchange, log: log}, nil
}

// Publish serializa event a JSON y lo publica con la routing key dada.
func (p *Publisher) Publish(ctx context.Context, routingKey string, event any) error {
	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	err = p.channel.PublishWithContext(ctx,
		p.exchange, // exchange
		routingKey, // routing key
		false,      // mandatory
		false,      // immediate
		amqp.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp.Persistent,
			Timestamp:    time.Now(),
			Body:         body,
		},
	)
	if err != nil {
		return fmt.Errorf("publish %s to %s: %w", routingKey, p.exchange, err)
	}
	p.log.Debug().Str("routing_key", routingKey).Msg("evento publicado")
	return nil
}

// Close cierra canal y conexión.
func (p *Publisher) Close() error {
	var errs []error
	if p.channel != nil {
		errs = append(errs, p.channel.Close())
	}
	if p.conn != nil {
		errs = append(errs, p.conn.Close())
	}
	return errors.Join(errs...)
}
