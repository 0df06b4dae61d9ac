// Package services contains domain services that operate across aggregates.
//
// CapacityLedger is the in-memory authority over per-driver per-day booked
// load. ShiftIndex enumerates drivers working at a given moment. OrderMatcher
// combines the two into the first-fit booking algorithm used by the order
// lifecycle handlers.
package services
