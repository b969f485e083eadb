package queue

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/xavierca1/ligue-leads/internal/infra/logger"
)

// LeadConvertedPayload é publicado quando um lead vira oportunidade.
type LeadConvertedPayload struct {
	OpportunityID string    `json:"opportunity_id"`
	LeadID        int       `json:"lead_id"`
	Name          string    `json:"name"`
	AccountName   string    `json:"account_name"`
	Email         string    `json:"email"`
	Source        string    `json:"source"`
	Score         int       `json:"score"`
	Stage         string    `json:"stage"`
	ConvertedAt   time.Time `json:"converted_at"`
}

type EventPublisherInterface interface {
	PublishLeadConverted(ctx context.Context, payload LeadConvertedPayload) error
}

// Channel é o pedaço do *amqp.Channel que o producer usa.
type Channel interface {
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
}

type RabbitMQProducer struct {
	Ch Channel
}

func NewProducer(ch Channel) *RabbitMQProducer {
	return &RabbitMQProducer{Ch: ch}
}

func (p *RabbitMQProducer) PublishLeadConverted(ctx context.Context, payload LeadConvertedPayload) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("erro ao converter payload: %w", err)
	}

	err = p.Ch.PublishWithContext(ctx,
		ExchangeName, // ex.leads
		RoutingKey,   // k.lead.converted
		false,        // Mandatory
		false,        // Immediate
		amqp.Publishing{
			ContentType:  "application/json",
			Body:         body,
			DeliveryMode: amqp.Persistent,
			Timestamp:    payload.ConvertedAt,
		},
	)
	if err != nil {
		return fmt.Errorf("falha ao publicar no RabbitMQ: %w", err)
	}
	return nil
}

// LogPublisher é usado quando não há RabbitMQ configurado: só registra o evento.
type LogPublisher struct {
	Log *logger.Logger
}

func (p LogPublisher) PublishLeadConverted(_ context.Context, payload LeadConvertedPayload) error {
	p.Log.Info().
		Str("opportunity_id", payload.OpportunityID).
		Int("lead_id", payload.LeadID).
		Msg("📭 RabbitMQ não configurado, evento lead.converted apenas registrado")
	return nil
}
