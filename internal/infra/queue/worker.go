package queue

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/xavierca1/ligue-leads/internal/infra/logger"
)

// OpportunityNotifier avisa o time comercial sobre uma nova oportunidade.
type OpportunityNotifier interface {
	NotifyOpportunity(ctx context.Context, payload LeadConvertedPayload) error
}

// Consumer é o pedaço do *amqp.Channel que o worker usa.
type Consumer interface {
	Consume(queue, consumer string, autoAck, exclusive, noLocal, noWait bool, args amqp.Table) (<-chan amqp.Delivery, error)
}

var errMalformed = errors.New("payload malformado")

type Worker struct {
	Channel  Consumer
	Notifier OpportunityNotifier
	log      *logger.Logger
}

func NewWorker(ch Consumer, notifier OpportunityNotifier, log *logger.Logger) *Worker {
	return &Worker{
		Channel:  ch,
		Notifier: notifier,
		log:      log.Component("queue-worker"),
	}
}

// Start consome a fila até o contexto ser cancelado ou o canal fechar.
func (w *Worker) Start(ctx context.Context, queueName string) error {
	msgs, err := w.Channel.Consume(
		queueName, // fila
		"",        // consumer
		false,     // auto-ack (manual é mais seguro)
		false,     // exclusive
		false,     // no-local
		false,     // no-wait
		nil,       // args
	)
	if err != nil {
		return fmt.Errorf("falha ao registrar consumidor RabbitMQ: %w", err)
	}

	w.log.Info().Str("queue", queueName).Msg("👷 worker aguardando eventos de conversão")

	for {
		select {
		case <-ctx.Done():
			w.log.Info().Msg("⚠️ worker encerrado")
			return nil
		case d, ok := <-msgs:
			if !ok {
				w.log.Warn().Msg("canal de entregas fechado")
				return nil
			}
			w.handle(ctx, d)
		}
	}
}

func (w *Worker) handle(ctx context.Context, d amqp.Delivery) {
	err := w.Process(ctx, d.Body)
	switch {
	case err == nil:
		if ackErr := d.Ack(false); ackErr != nil {
			w.log.Error().Err(ackErr).Msg("falha no ack")
		}
	default:
		// Sem requeue: mensagem vai pra DLQ e não trava a fila.
		w.log.Error().Err(err).Msg("❌ falha ao processar evento, enviando pra DLQ")
		if nackErr := d.Nack(false, false); nackErr != nil {
			w.log.Error().Err(nackErr).Msg("falha no nack")
		}
	}
}

// Process decodifica e entrega o evento ao notifier.
func (w *Worker) Process(ctx context.Context, body []byte) error {
	var payload LeadConvertedPayload
	if err := json.Unmarshal(body, &payload); err != nil {
		return fmt.Errorf("%w: %v", errMalformed, err)
	}
	if payload.OpportunityID == "" {
		return fmt.Errorf("%w: opportunity_id vazio", errMalformed)
	}

	w.log.Info().
		Str("opportunity_id", payload.OpportunityID).
		Str("account", payload.AccountName).
		Msg("📥 evento lead.converted recebido")

	if err := w.Notifier.NotifyOpportunity(ctx, payload); err != nil {
		return fmt.Errorf("erro ao notificar oportunidade %s: %w", payload.OpportunityID, err)
	}
	return nil
}
