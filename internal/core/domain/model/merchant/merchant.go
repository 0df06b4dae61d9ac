package merchant

import (
	"errors"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"
	"dispatch/internal/pkg/guard"
)

var (
	// ErrNameIsRequired is returned when attempting to create a merchant without a name.
	ErrNameIsRequired = errs.NewValueIsRequiredError("name")
	// ErrEmailIsRequired is returned when attempting to create a merchant without an email.
	ErrEmailIsRequired = errs.NewValueIsRequiredError("email")
	// ErrMerchantIsNotConstructed is returned when using an improperly initialized Merchant.
	ErrMerchantIsNotConstructed = errors.New("Merchant must be created via NewMerchant constructor")
)

// Merchant represents a business that places delivery orders. Orders reference
// their merchant by id; update and cancel operations verify ownership against
// it.
type Merchant struct {
	id    kernel.UUID
	name  string
	email string
	guard guard.ConstructorGuard
}

// NewMerchant creates a new Merchant. Name and email are both required.
func NewMerchant(id kernel.UUID, name string, email string) (*Merchant, error) {
	m := &Merchant{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		m.setID(id),
		m.setName(name),
		m.setEmail(email),
	); err != nil {
		return nil, err
	}

	return m, nil
}

// RestoreMerchant reconstructs a Merchant from persistent storage.
func RestoreMerchant(id kernel.UUID, name string, email string) (*Merchant, error) {
	return NewMerchant(id, name, email)
}

// Validate ensures the Merchant instance was properly constructed.
func (m *Merchant) Validate() error {
	if m == nil {
		return ErrMerchantIsNotConstructed
	}
	return m.guard.Validate(ErrMerchantIsNotConstructed)
}

// IsEqual compares two merchants by their unique identifiers.
func (m *Merchant) IsEqual(other *Merchant) bool {
	return other != nil && m.id.IsEqual(other.id)
}

// ID returns the merchant's unique identifier.
func (m *Merchant) ID() kernel.UUID {
	return m.id
}

// Name returns the merchant's business name.
func (m *Merchant) Name() string {
	return m.name
}

// Email returns the merchant's contact email.
func (m *Merchant) Email() string {
	return m.email
}

func (m *Merchant) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	m.id = id
	return nil
}

func (m *Merchant) setName(name string) error {
	if name == "" {
		return ErrNameIsRequired
	}
	m.name = name
	return nil
}

func (m *Merchant) setEmail(email string) error {
	if email == "" {
		return ErrEmailIsRequired
	}
	m.email = email
	return nil
}
