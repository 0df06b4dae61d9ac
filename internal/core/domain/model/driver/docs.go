// Package driver provides the Driver aggregate root together with its
// Vehicle and Shift entities.
//
// A driver owns at most one vehicle and at most one shift per calendar day.
// The vehicle carries the per-day capacity limits (order count and total
// weight); shifts define when the driver can pick orders up.
package driver
