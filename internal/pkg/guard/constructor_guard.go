// Package guard implements the constructor guard pattern used by aggregates,
// entities and commands to reject zero-value instances that bypassed their
// constructors.
package guard

import "errors"

// ErrDefaultConstructorGuard is returned by Validate when no specific error
// is supplied for an unconstructed object.
var ErrDefaultConstructorGuard = errors.New("object must be created via its constructor")

// ConstructorGuard marks an object as having been created through its
// designated constructor. The zero value fails validation, which lets domain
// types detect struct literals and uninitialized values.
//
// Embed a ConstructorGuard in the guarded type, set it with
// NewConstructorGuard inside the constructor, and call Validate from the
// type's own Validate method:
//
//	type Shift struct {
//	    start time.Time
//	    end   time.Time
//	    guard guard.ConstructorGuard
//	}
//
//	func (s Shift) Validate() error {
//	    return s.guard.Validate(ErrShiftIsNotConstructed)
//	}
type ConstructorGuard struct {
	isConstructed bool
}

// NewConstructorGuard returns a guard marking the owning object as properly
// constructed.
func NewConstructorGuard() ConstructorGuard {
	return ConstructorGuard{isConstructed: true}
}

// Validate returns nil for a properly constructed guard. For a zero-value
// guard it returns validationError, or ErrDefaultConstructorGuard when
// validationError is nil.
func (g ConstructorGuard) Validate(validationError error) error {
	if validationError == nil {
		validationError = ErrDefaultConstructorGuard
	}
	if !g.isConstructed {
		return validationError
	}
	return nil
}
