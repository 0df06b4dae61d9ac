// Package kernel provides core domain primitives shared across the order
// dispatch system.
//
// The package includes:
//   - UUID: a value object for unique identifiers with validation and comparison
//   - TimeWindow: the validated pickup/dropoff interval of an order
//
// These primitives enforce their invariants at construction time, are
// immutable and safe for concurrent use.
package kernel
