// Package kernel contains the shared value objects of the dispatch domain:
// identifiers, geographic locations, and monetary amounts. Everything here is
// immutable after construction and validated at the boundary, so aggregates
// built on these types never hold an out-of-domain value.
package kernel
