package service

import (
	"context"

	"tv-keuzehulp-be/internal/constant"
	"tv-keuzehulp-be/internal/pkg/logger"
	"tv-keuzehulp-be/pkg/events"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
)

// EventForwarder ships events off-process (NATS in production)
type EventForwarder interface {
	Publish(ctx context.Context, event events.Event) error
}

type IEventService interface {
	// Emit publishes on the in-process bus; failures are logged, never returned
	Emit(ctx context.Context, eventType string, data map[string]interface{})
	Consume(ctx context.Context) error
}

type eventService struct {
	pubSub    *gochannel.GoChannel
	topicName string
	forwarder EventForwarder
	audit     logger.ILogger
	logger    logger.ILogger
}

func NewEventService(
	pubSub *gochannel.GoChannel,
	topicName string,
	forwarder EventForwarder,
	audit logger.ILogger,
	log logger.ILogger,
) IEventService {
	return &eventService{
		pubSub:    pubSub,
		topicName: topicName,
		forwarder: forwarder,
		audit:     audit,
		logger:    log,
	}
}

func (s *eventService) Emit(ctx context.Context, eventType string, data map[string]interface{}) {
	event := events.New(eventType, data)

	payload, err := events.Marshal(event)
	if err != nil {
		s.logger.Warn(constant.ModuleEvents, "failed to marshal event", map[string]interface{}{
			"type":  eventType,
			"error": err.Error(),
		})
		return
	}

	msg := message.NewMessage(event.EventID(), payload)
	msg.SetContext(ctx)
	if err := s.pubSub.Publish(s.topicName, msg); err != nil {
		s.logger.Warn(constant.ModuleEvents, "failed to publish event", map[string]interface{}{
			"type":  eventType,
			"error": err.Error(),
		})
	}
}

func (s *eventService) Consume(ctx context.Context) error {
	messages, err := s.pubSub.Subscribe(ctx, s.topicName)
	if err != nil {
		return err
	}

	go func() {
		for msg := range messages {
			s.processMessage(ctx, msg)
		}
	}()

	return nil
}

func (s *eventService) processMessage(ctx context.Context, msg *message.Message) {
	event, err := events.Unmarshal(msg.Payload)
	if err != nil {
		s.logger.Error(constant.ModuleEvents, "failed to unmarshal event", map[string]interface{}{
			"message_id": msg.UUID,
			"error":      err.Error(),
		})
		msg.Ack() // Ack invalid messages to prevent infinite redelivery
		return
	}

	s.audit.Info(constant.ModuleEvents, event.EventType(), event.Payload())

	if s.forwarder != nil {
		if err := s.forwarder.Publish(ctx, event); err != nil {
			s.logger.Warn(constant.ModuleEvents, "failed to forward event", map[string]interface{}{
				"type":  event.EventType(),
				"error": err.Error(),
			})
		}
	}

	msg.Ack()
}
