// Package order provides the Order aggregate root and its lifecycle state
// machine.
//
// Key business rules:
//   - Orders carry a validated pickup/dropoff window and a positive weight
//   - Lifecycle: Pending -> Assigned -> Completed, with reassignment while
//     Assigned, fallback to Pending on failed rebooking, and cancellation
//     from Pending or Assigned
//   - Completed and Cancelled are terminal; such orders are immutable
//   - Driver and vehicle ids are set exactly while Assigned or Completed
package order
