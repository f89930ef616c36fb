package services

import (
	"context"

	"github.com/rs/zerolog/log"
)

// Routing keys of the catalog change events.
const (
	EventCategoryCreated       = "category.created"
	EventCategoryUpdated       = "category.updated"
	EventCategoryDeleted       = "category.deleted"
	EventProductCreated        = "product.created"
	EventProductUpdated        = "product.updated"
	EventProductStockIncreased = "product.stock_increased"
	EventProductDeactivated    = "product.deactivated"
	EventProductActivated      = "product.activated"
	EventProductDeleted        = "product.deleted"
)

// EventPublisher delivers catalog change events to interested parties.
type EventPublisher interface {
	Publish(ctx context.Context, routingKey string, payload interface{}) error
}

// NopPublisher discards every event.
type NopPublisher struct{}

func (NopPublisher) Publish(context.Context, string, interface{}) error { return nil }

// deletedEvent is the payload of the *.deleted events.
type deletedEvent struct {
	CategoryID int64 `json:"category_id,omitempty"`
	ProductID  int64 `json:"product_id,omitempty"`
}

// publish sends an event after a committed write. A failure is logged and
// never reaches the caller.
func publish(ctx context.Context, events EventPublisher, routingKey string, payload interface{}) {
	if err := events.Publish(ctx, routingKey, payload); err != nil {
		log.Warn().Err(err).Str("routing_key", routingKey).Msg("failed to publish catalog event")
	}
}
