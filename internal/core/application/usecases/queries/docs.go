// Package queries contains read-only operations that bypass the domain
// aggregates and read straight from the database. This is the read side of
// the CQRS split: listings need joins and pagination, not domain behavior.
package queries
