package services

import (
	log "github.com/sirupsen/logrus"
)

// Domain event types.
const (
	EventUserSignedUp       = "user.signed_up"
	EventPromptCreated      = "prompt.created"
	EventSubmissionReviewed = "submission.reviewed"
)

// EventPublisher emits domain events. *rabbitmq.Client satisfies it.
type EventPublisher interface {
	PublishEvent(eventType string, data map[string]interface{}) error
}

// publish sends an event if a publisher is wired. Failures never reach the caller.
func publish(p EventPublisher, eventType string, data map[string]interface{}) {
	if p == nil {
		return
	}
	if err := p.PublishEvent(eventType, data); err != nil {
		log.WithError(err).WithField("event", eventType).Warn("Failed to publish event")
	}
}
