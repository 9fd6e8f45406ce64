package ports

import (
	"context"
	"time"
)

// OrderChangedEvent describes a committed order status transition.
type OrderChangedEvent struct {
	OrderID   string    `json:"order_id"`
	Reference string    `json:"reference"`
	Status    string    `json:"status"`
	DriverID  string    `json:"driver_id,omitempty"`
	At        time.Time `json:"at"`
}

// DriverLocationEvent describes a committed driver location fix.
type DriverLocationEvent struct {
	DriverID  string    `json:"driver_id"`
	Latitude  float64   `json:"latitude"`
	Longitude float64   `json:"longitude"`
	At        time.Time `json:"at"`
}

// EventPublisher pushes committed state changes to observers (websocket
// subscribers, message brokers). Publication is decoupled from the write
// path: it happens after commit, and a slow or failing observer never blocks
// or fails the operation that produced the event.
type EventPublisher interface {
	PublishOrderChanged(ctx context.Context, event OrderChangedEvent) error
	PublishDriverLocation(ctx context.Context, event DriverLocationEvent) error
}
