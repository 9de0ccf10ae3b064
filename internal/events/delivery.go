package events

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/ThreeDotsLabs/watermill/message"
)

// CodeDeliverySubscriber consumes code-issuance events and logs the code.
// There is no real email channel; this subscriber is the delivery path an
// operator (or a future mailer) would hook into.
type CodeDeliverySubscriber struct {
	subscriber message.Subscriber
	logger     *slog.Logger
}

func NewCodeDeliverySubscriber(subscriber message.Subscriber, logger *slog.Logger) *CodeDeliverySubscriber {
	return &CodeDeliverySubscriber{
		subscriber: subscriber,
		logger:     logger,
	}
}

// Run consumes events until the context is canceled.
func (s *CodeDeliverySubscriber) Run(ctx context.Context) error {
	messages, err := s.subscriber.Subscribe(ctx, AccountEventsTopic)
	if err != nil {
		return err
	}

	for msg := range messages {
		s.handle(msg)
		msg.Ack()
	}
	return nil
}

func (s *CodeDeliverySubscriber) handle(msg *message.Message) {
	var event Event
	if err := json.Unmarshal(msg.Payload, &event); err != nil {
		s.logger.Error("failed to decode account event", "error", err, "message_id", msg.UUID)
		return
	}

	switch event.Type {
	case EventVerificationCodeIssued, EventResetCodeIssued:
		// Data round-trips as a JSON object here.
		raw, err := json.Marshal(event.Data)
		if err != nil {
			return
		}
		var issued CodeIssuedEvent
		if err := json.Unmarshal(raw, &issued); err != nil {
			s.logger.Error("failed to decode code event", "error", err, "event_id", event.ID)
			return
		}
		s.logger.Info("code issued",
			"event_type", event.Type,
			"email", issued.Email,
			"role", issued.Role,
			"code", issued.Code,
		)
	default:
		s.logger.Debug("account event", "event_type", event.Type, "event_id", event.ID)
	}
}
