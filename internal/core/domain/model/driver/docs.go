// Package driver contains the Driver aggregate: a field courier with a last
// known location fix, an active-order set kept mutually consistent with
// Order.assignedDriverID, and an activity classification (active/idle/offline)
// derived from fix recency rather than stored as independent state.
package driver
