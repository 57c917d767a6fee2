package queue

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
)

// WorkflowTrigger é o disparo de um workflow externo (busca de leads ou automação LinkedIn).
type WorkflowTrigger struct {
	TriggerID   string                 `json:"trigger_id"`
	UserID      string                 `json:"user_id"`
	Kind        string                 `json:"kind"`
	WebhookURL  string                 `json:"webhook_url"`
	Params      map[string]interface{} `json:"params"`
	RequestedAt time.Time              `json:"requested_at"`
}

type Publisher interface {
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
}

type RabbitMQProducer struct {
	Ch Publisher
}

func NewProducer(ch Publisher) *RabbitMQProducer {
	return &RabbitMQProducer{Ch: ch}
}

// Dispatch publica o trigger para o worker entregar.
func (p *RabbitMQProducer) Dispatch(ctx context.Context, trigger WorkflowTrigger) error {
	body, err := json.Marshal(trigger)
	if err != nil {
		return fmt.Errorf("erro ao converter payload: %w", err)
	}

	err = p.Ch.PublishWithContext(ctx,
		ExchangeName,
		RoutingKey,
		false, // Mandatory
		false, // Immediate
		amqp.Publishing{
			ContentType:  "application/json",
			MessageId:    trigger.TriggerID,
			Timestamp:    trigger.RequestedAt,
			Body:         body,
			DeliveryMode: amqp.Persistent,
		},
	)
	if err != nil {
		return fmt.Errorf("falha ao publicar no RabbitMQ: %w", err)
	}
	return nil
}
