package queue

import (
	"context"
	"encoding/json"
	"fmt"

	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"
)

// WorkflowClient entrega o trigger para o motor de automação.
type WorkflowClient interface {
	Trigger(ctx context.Context, trigger WorkflowTrigger) error
}

type Consumer interface {
	Consume(queue, consumer string, autoAck, exclusive, noLocal, noWait bool, args amqp.Table) (<-chan amqp.Delivery, error)
}

type Worker struct {
	Channel Consumer
	Client  WorkflowClient
	Logger  *zap.Logger
}

func NewWorker(ch Consumer, client WorkflowClient, logger *zap.Logger) *Worker {
	return &Worker{
		Channel: ch,
		Client:  client,
		Logger:  logger,
	}
}

// Start consome até o ctx ser cancelado ou o canal fechar.
func (w *Worker) Start(ctx context.Context, queueName string) error {
	msgs, err := w.Channel.Consume(
		queueName,
		"",    // consumer
		false, // auto-ack
		false, // exclusive
		false, // no-local
		false, // no-wait
		nil,
	)
	if err != nil {
		return fmt.Errorf("falha ao registrar consumidor RabbitMQ: %w", err)
	}

	w.Logger.Info(" [*] Worker aguardando triggers", zap.String("queue", queueName))
	for {
		select {
		case <-ctx.Done():
			w.Logger.Info("⚠️ Worker encerrado")
			return nil
		case d, ok := <-msgs:
			if !ok {
				return fmt.Errorf("canal de consumo fechado")
			}
			w.handle(ctx, d)
		}
	}
}

// handle não faz retentativa: falha vai para a DLQ.
func (w *Worker) handle(ctx context.Context, d amqp.Delivery) {
	var trigger WorkflowTrigger
	if err := json.Unmarshal(d.Body, &trigger); err != nil {
		w.Logger.Error("❌ [WORKER] JSON inválido", zap.Error(err))
		d.Nack(false, false)
		return
	}

	log := w.Logger.With(
		zap.String("trigger_id", trigger.TriggerID),
		zap.String("user_id", trigger.UserID),
		zap.String("kind", trigger.Kind),
	)

	if err := w.Client.Trigger(ctx, trigger); err != nil {
		log.Error("❌ [WORKER] falha ao disparar workflow", zap.Error(err))
		d.Nack(false, false)
		return
	}

	log.Info("✅ [WORKER] workflow disparado")
	d.Ack(false)
}
