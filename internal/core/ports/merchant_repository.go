package ports

import (
	"context"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/merchant"
)

// MerchantRepository defines the persistence contract for merchant aggregates.
type MerchantRepository interface {
	// Add persists a new merchant aggregate to storage.
	Add(ctx context.Context, aggregate *merchant.Merchant) error

	// Get retrieves a merchant aggregate by its unique identifier.
	Get(ctx context.Context, id kernel.UUID) (*merchant.Merchant, error)
}
