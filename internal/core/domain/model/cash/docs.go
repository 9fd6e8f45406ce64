// Package cash contains the CashHandover aggregate: a driver's report of
// cash physically handed to finance, created pending and resolved to
// approved or rejected exactly once.
package cash
