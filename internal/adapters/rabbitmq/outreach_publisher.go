package rabbitmq_adapter

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/albertoDabu/crm-immobiliaria/internal/constants"
	"github.com/albertoDabu/crm-immobiliaria/internal/contextkeys"
	"github.com/albertoDabu/crm-immobiliaria/internal/contracts"
	"github.com/albertoDabu/crm-immobiliaria/internal/core/domain"
	"github.com/albertoDabu/crm-immobiliaria/internal/core/port"
)

const publishTimeout = 10 * time.Second

// MessagePublisher - то, что нужно адаптеру от rabbitmq.Publisher.
type MessagePublisher interface {
	Publish(ctx context.Context, routingKey string, msg amqp.Publishing) error
}

// OutreachEventPublisher отправляет событие о записанной рассылке в обменник CRM.
type OutreachEventPublisher struct {
	producer   MessagePublisher
	routingKey string
}

func NewOutreachEventPublisher(producer MessagePublisher, routingKey string) (*OutreachEventPublisher, error) {
	if producer == nil {
		return nil, fmt.Errorf("producer cannot be nil")
	}
	if routingKey == "" {
		return nil, fmt.Errorf("routingKey cannot be empty")
	}
	return &OutreachEventPublisher{producer: producer, routingKey: routingKey}, nil
}

var _ port.OutreachEventPublisherPort = (*OutreachEventPublisher)(nil)

func (a *OutreachEventPublisher) PublishOutreachRecorded(ctx context.Context, event domain.OutreachRecordedEvent) error {
	adapterLogger := contextkeys.LoggerFromContext(ctx).WithFields(port.Fields{
		"component":   "OutreachEventPublisher",
		"routing_key": a.routingKey,
	})

	body, err := json.Marshal(event)
	if err != nil {
		adapterLogger.Error("Failed to marshal outreach event", err, nil)
		return fmt.Errorf("failed to marshal outreach event: %w", err)
	}
	if err := contracts.Validate(contracts.OutreachRecordedEventV1, body); err != nil {
		adapterLogger.Error("Outreach event does not match its contract", err, nil)
		return err
	}

	msg := amqp.Publishing{
		ContentType:  "application/json",
		Body:         body,
		DeliveryMode: amqp.Persistent,
		Timestamp:    event.RecordedAt,
		Headers: amqp.Table{
			constants.HeaderEventType:    "OutreachRecordedEvent",
			constants.HeaderEventVersion: "1.0.0",
		},
	}
	if traceID := contextkeys.TraceIDFromContext(ctx); traceID != "" {
		msg.Headers[constants.HeaderTraceID] = traceID
	}

	publishCtx, cancel := context.WithTimeout(ctx, publishTimeout)
	defer cancel()

	if err := a.producer.Publish(publishCtx, a.routingKey, msg); err != nil {
		adapterLogger.Error("Failed to publish outreach event", err, nil)
		return err
	}

	adapterLogger.Info("Successfully published outreach event", port.Fields{"contacts": len(event.ContactIDs)})
	return nil
}

// NoopOutreachPublisher используется, когда RabbitMQ выключен.
type NoopOutreachPublisher struct{}

func (NoopOutreachPublisher) PublishOutreachRecorded(ctx context.Context, event domain.OutreachRecordedEvent) error {
	contextkeys.LoggerFromContext(ctx).Debug("Messaging disabled, outreach event dropped", port.Fields{
		"contacts": len(event.ContactIDs),
	})
	return nil
}
