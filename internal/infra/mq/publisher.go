package mq

import (
	"context"

	"github.com/bytedance/sonic"
	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/subtrackhq/subtrack/internal/config"
)

// Publisher pushes domain events to the notification collaborator. Delivery
// is fire-and-forget from the business operation's point of view: a failed
// publish is logged by the caller and never rolls anything back.
type Publisher struct {
	ch       *amqp.Channel
	exchange string
}

func NewPublisher(conn *amqp.Connection, cfg *config.Config) (*Publisher, error) {
	ch, err := conn.Channel()
	if err != nil {
		return nil, err
	}
	if err := ch.ExchangeDeclare(cfg.RabbitMQ.Exchange, "topic", true, false, false, false, nil); err != nil {
		return nil, err
	}
	return &Publisher{ch: ch, exchange: cfg.RabbitMQ.Exchange}, nil
}

func (p *Publisher) PublishJSON(ctx context.Context, routingKey string, payload any) error {
	body, err := sonic.Marshal(payload)
	if err != nil {
		return err
	}
	return p.ch.PublishWithContext(ctx, p.exchange, routingKey, false, false, amqp.Publishing{
		ContentType: "application/json",
		Body:        body,
	})
}

func (p *Publisher) Close() error { return p.ch.Close() }
