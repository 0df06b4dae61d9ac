package queries

import (
	"errors"
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/guard"
)

const (
	defaultPerPage = 20
	maxPerPage     = 100
)

var ErrGetMerchantOrdersQueryIsNotConstructed = errors.New(
	"GetMerchantOrdersQuery must be created via NewGetMerchantOrdersQuery constructor",
)

// GetMerchantOrdersQuery retrieves a merchant's orders with pagination and
// an optional substring search over order id, description and assigned
// driver name.
type GetMerchantOrdersQuery struct {
	merchantID kernel.UUID
	page       int
	perPage    int
	search     string

	guard guard.ConstructorGuard
}

// NewGetMerchantOrdersQuery creates a query for a merchant's order list.
// Page and perPage are normalized: non-positive values fall back to the
// first page and the default page size, oversized pages are capped.
func NewGetMerchantOrdersQuery(merchantID kernel.UUID, page, perPage int, search string) (GetMerchantOrdersQuery, error) {
	if err := merchantID.Validate(); err != nil {
		return GetMerchantOrdersQuery{}, err
	}

	if page < 1 {
		page = 1
	}
	if perPage < 1 {
		perPage = defaultPerPage
	}
	if perPage > maxPerPage {
		perPage = maxPerPage
	}

	return GetMerchantOrdersQuery{
		merchantID: merchantID,
		page:       page,
		perPage:    perPage,
		search:     search,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetMerchantOrdersQuery) Validate() error {
	return q.guard.Validate(ErrGetMerchantOrdersQueryIsNotConstructed)
}

// MerchantID returns the merchant whose orders are listed.
func (q GetMerchantOrdersQuery) MerchantID() kernel.UUID {
	return q.merchantID
}

// Page returns the 1-based page number.
func (q GetMerchantOrdersQuery) Page() int {
	return q.page
}

// PerPage returns the page size.
func (q GetMerchantOrdersQuery) PerPage() int {
	return q.perPage
}

// Search returns the substring filter, empty when unfiltered.
func (q GetMerchantOrdersQuery) Search() string {
	return q.search
}

// MerchantOrderResponse is one order row in a merchant's order list.
// DriverID and DriverName are nil for orders without a booking.
type MerchantOrderResponse struct {
	ID          kernel.UUID
	Status      string
	PickupAt    time.Time
	DropoffAt   time.Time
	Weight      float64
	Description string
	DriverID    *kernel.UUID
	DriverName  *string
}

// GetMerchantOrdersQueryResponse is a page of a merchant's orders together
// with the unpaginated total.
type GetMerchantOrdersQueryResponse struct {
	Orders  []MerchantOrderResponse
	Total   int64
	Page    int
	PerPage int
}
