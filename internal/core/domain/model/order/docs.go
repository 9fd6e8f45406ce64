// Package order contains the Order aggregate: a delivery task with a
// cash-on-delivery amount, an append-only transition timeline, and the status
// state machine pending → accepted → picked_up → in_transit →
// {delivered, returned}. All mutation goes through the aggregate so the
// adjacency and the timeline invariants cannot be bypassed.
package order
