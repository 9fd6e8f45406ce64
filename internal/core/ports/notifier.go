package ports

import (
	"context"

	"dispatch/internal/core/domain/model/kernel"
)

// Channel is a delivery channel for driver notifications.
type Channel string

// Supported notification channels.
const (
	ChannelWhatsApp Channel = "whatsapp"
	ChannelSMS      Channel = "sms"
)

// Notification carries everything a delivery channel needs to inform a
// driver about an assignment or status push.
type Notification struct {
	OrderReference string
	DriverID       kernel.UUID
	Phone          string
	Message        string
	Channels       []Channel
}

// Notifier is the one-way notification port. Calls are best-effort: the
// engine invokes it only after a state mutation has committed, never while
// holding entity locks, and a failure never rolls the mutation back. Retry
// policy, if any, belongs to the implementation.
type Notifier interface {
	Notify(ctx context.Context, notification Notification) error
}
