// Package guard provides a defensive programming pattern that ensures value
// objects and entities are only created through their designated constructor
// functions. By embedding a ConstructorGuard in a struct, you can detect
// whether the struct was properly initialized through its constructor or
// created as a zero value.
package guard

import "errors"

// ErrDefaultConstructorGuard is the default error returned by ConstructorGuard.Validate()
// when a nil error is passed as the validation error. This ensures that validation
// always fails with a meaningful message even if no specific error is provided.
var ErrDefaultConstructorGuard = errors.New("object must be created via its constructor")

// ConstructorGuard maintains an internal flag that is only set to true when
// the object is created through the proper constructor function. Any attempt
// to use a zero-value struct will fail validation.
//
// Example usage:
//
//	type Money struct {
//	    amount   int
//	    currency string
//	    guard    guard.ConstructorGuard
//	}
//
//	func NewMoney(amount int, currency string) (Money, error) {
//	    if amount < 0 {
//	        return Money{}, errors.New("amount cannot be negative")
//	    }
//	    return Money{
//	        amount:   amount,
//	        currency: currency,
//	        guard:    guard.NewConstructorGuard(),
//	    }, nil
//	}
//
//	func (m Money) Validate() error {
//	    return m.guard.Validate(ErrMoneyNotConstructed)
//	}
type ConstructorGuard struct {
	isConstructed bool
}

// NewConstructorGuard creates a new ConstructorGuard that marks an object as
// properly constructed. This should be called in the constructor of domain objects
// to ensure they can be distinguished from zero-value instances.
func NewConstructorGuard() ConstructorGuard {
	return ConstructorGuard{isConstructed: true}
}

// Validate checks whether the guarded object was properly constructed through
// its designated constructor function.
//
// If the object was created as a zero value (not through the constructor),
// this method returns the provided validation error. If validationError is nil,
// ErrDefaultConstructorGuard is returned instead.
func (g ConstructorGuard) Validate(validationError error) error {
	if validationError == nil {
		validationError = ErrDefaultConstructorGuard
	}
	if !g.isConstructed {
		return validationError
	}
	return nil
}
