package services

import (
	"github.com/sirupsen/logrus"
)

// Domain event names published after successful writes.
const (
	EventUserRegistered  = "user.registered"
	EventCategoryCreated = "category.created"
	EventCategoryDeleted = "category.deleted"
	EventProductCreated  = "product.created"
	EventProductUpdated  = "product.updated"
	EventProductDeleted  = "product.deleted"
	EventWishlistCreated = "wishlist.created"
	EventWishlistDeleted = "wishlist.deleted"
)

// EventPublisher delivers domain events to a message broker.
type EventPublisher interface {
	Publish(event string, data map[string]interface{}) error
}

type noopPublisher struct{}

func (noopPublisher) Publish(string, map[string]interface{}) error { return nil }

func publisherOrNoop(p EventPublisher) EventPublisher {
	if p == nil {
		return noopPublisher{}
	}
	return p
}

// publish sends the event and only logs a failure: the write it describes
// has already been committed.
func publish(p EventPublisher, event string, data map[string]interface{}) {
	if err := p.Publish(event, data); err != nil {
		logrus.WithError(err).WithField("event", event).Warn("Failed to publish domain event")
	}
}
