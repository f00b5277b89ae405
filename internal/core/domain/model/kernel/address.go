package kernel

import (
	"errors"
	"strings"

	"shipping/internal/pkg/errs"
	"shipping/internal/pkg/guard"
)

// ErrAddressIsNotConstructed is returned when a zero-value Address is validated.
var ErrAddressIsNotConstructed = errs.NewValueIsRequiredError("address must be created via NewAddress constructor")

// Address is the delivery destination of an order. Only Country takes part in the
// service coverage decision; the remaining lines are carried for the host.
type Address struct {
	street     string
	city       string
	postalCode string
	country    Country
	guard      guard.ConstructorGuard
}

// NewAddress validates every line. Street, city and country are required; the postal
// code may be empty for countries that do not use one.
func NewAddress(street, city, postalCode string, country Country) (Address, error) {
	a := Address{guard: guard.NewConstructorGuard()}

	if err := errors.Join(
		a.setStreet(street),
		a.setCity(city),
		a.setCountry(country),
	); err != nil {
		return Address{}, err
	}
	a.postalCode = strings.TrimSpace(postalCode)

	return a, nil
}

func (a Address) Street() string     { return a.street }
func (a Address) City() string       { return a.city }
func (a Address) PostalCode() string { return a.postalCode }
func (a Address) Country() Country   { return a.country }

// Validate returns ErrAddressIsNotConstructed for a zero value.
func (a Address) Validate() error {
	return a.guard.Validate(ErrAddressIsNotConstructed)
}

func (a *Address) setStreet(street string) error {
	street = strings.TrimSpace(street)
	if street == "" {
		return errs.NewValueIsRequiredError("street")
	}
	a.street = street
	return nil
}

func (a *Address) setCity(city string) error {
	city = strings.TrimSpace(city)
	if city == "" {
		return errs.NewValueIsRequiredError("city")
	}
	a.city = city
	return nil
}

func (a *Address) setCountry(country Country) error {
	if err := country.Validate(); err != nil {
		return err
	}
	a.country = country
	return nil
}
