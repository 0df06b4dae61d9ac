// Package merchant provides the Merchant aggregate root. Merchants place
// orders and own them for the purpose of updates and cancellations.
package merchant
