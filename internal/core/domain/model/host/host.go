// Package host models the people who receive, weigh and ship items in their country.
package host

import (
	"errors"
	"strings"

	"shipping/internal/core/domain/model/kernel"
	"shipping/internal/pkg/errs"
)

// ErrHostIsNotConstructed is returned when a Host was not created through NewHost.
var ErrHostIsNotConstructed = errors.New("Host must be created via NewHost constructor")

// Host serves exactly one origin country. Only available hosts are matched to new
// orders; toggling availability is an operator concern.
type Host struct {
	id            kernel.UUID
	name          string
	originCountry kernel.Country
	available     bool
	isConstructed bool
}

// NewHost creates an available host.
func NewHost(id kernel.UUID, name string, originCountry kernel.Country) (*Host, error) {
	h := &Host{available: true, isConstructed: true}

	if err := errors.Join(
		h.setID(id),
		h.setName(name),
		h.setOriginCountry(originCountry),
	); err != nil {
		return nil, err
	}

	return h, nil
}

// RestoreHost rebuilds a host from persistence.
func RestoreHost(id kernel.UUID, name string, originCountry kernel.Country, available bool) (*Host, error) {
	h, err := NewHost(id, name, originCountry)
	if err != nil {
		return nil, err
	}
	h.available = available
	return h, nil
}

// Validate ensures the Host was created through its constructor.
func (h *Host) Validate() error {
	if h == nil || !h.isConstructed {
		return ErrHostIsNotConstructed
	}
	return nil
}

func (h *Host) ID() kernel.UUID               { return h.id }
func (h *Host) Name() string                  { return h.name }
func (h *Host) OriginCountry() kernel.Country { return h.originCountry }
func (h *Host) IsAvailable() bool             { return h.available }

// CanServe reports whether the host is available in the given origin country.
func (h *Host) CanServe(origin kernel.Country) bool {
	return h.available && h.originCountry.IsEqual(origin)
}

// SetAvailable toggles whether the host accepts new orders.
func (h *Host) SetAvailable(available bool) {
	h.available = available
}

func (h *Host) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	h.id = id
	return nil
}

func (h *Host) setName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return errs.NewValueIsRequiredError("name")
	}
	h.name = name
	return nil
}

func (h *Host) setOriginCountry(country kernel.Country) error {
	if err := country.Validate(); err != nil {
		return err
	}
	h.originCountry = country
	return nil
}
