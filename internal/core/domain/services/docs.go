// Package services contains stateless domain services that coordinate
// multiple aggregates without owning state themselves.
package services
