package queries

import (
	"context"
	"errors"
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/pkg/guard"
)

var ErrGetOrderQueryIsNotConstructed = errors.New(
	"GetOrderQuery must be created via NewGetOrderQuery constructor",
)

// GetOrderQuery retrieves a single order with its complete timeline.
type GetOrderQuery struct {
	orderID kernel.UUID

	guard guard.ConstructorGuard
}

// NewGetOrderQuery creates a query for one order's detail view.
func NewGetOrderQuery(orderID kernel.UUID) (GetOrderQuery, error) {
	if err := orderID.Validate(); err != nil {
		return GetOrderQuery{}, err
	}

	return GetOrderQuery{
		orderID: orderID,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetOrderQuery) Validate() error {
	return q.guard.Validate(ErrGetOrderQueryIsNotConstructed)
}

// OrderID returns the order to fetch.
func (q GetOrderQuery) OrderID() kernel.UUID {
	return q.orderID
}

// TimelineEntryResponse is one transition in the order history.
type TimelineEntryResponse struct {
	Status    order.Status
	Timestamp time.Time
	Note      string
}

// GetOrderQueryResponse is the order detail read model.
type GetOrderQueryResponse struct {
	ID               kernel.UUID
	Reference        string
	CustomerName     string
	CustomerPhone    string
	Address          string
	Status           order.Status
	AssignedDriverID *kernel.UUID
	CashDue          int64
	CashCollected    int64
	Timeline         []TimelineEntryResponse
}

// GetOrderHandler is implemented per storage backend. Returns an
// ObjectNotFoundError for unknown ids.
type GetOrderHandler interface {
	Handle(ctx context.Context, query GetOrderQuery) (GetOrderQueryResponse, error)
}
