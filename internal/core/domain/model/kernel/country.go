package kernel

import (
	"fmt"
	"strings"

	"shipping/internal/pkg/errs"
	"shipping/internal/pkg/guard"
)

// ErrCountryIsNotConstructed is returned when a zero-value Country is validated.
var ErrCountryIsNotConstructed = errs.NewValueIsRequiredError("country must be created via NewCountry constructor")

// Country is an ISO 3166-1 alpha-2 code such as "US" or "DE". Codes are normalized
// to upper case; user-assigned codes (e.g. "ZZ") are accepted since the coverage
// lists decide what is actually serviceable.
type Country struct {
	code  string
	guard guard.ConstructorGuard
}

// NewCountry validates and normalizes an alpha-2 code.
func NewCountry(code string) (Country, error) {
	normalized := strings.ToUpper(strings.TrimSpace(code))
	if len(normalized) != 2 || !isUpperLetters(normalized) {
		return Country{}, errs.NewValueIsInvalidErrorWithCause(
			"country",
			fmt.Errorf("%q is not an ISO 3166-1 alpha-2 code", code),
		)
	}

	return Country{code: normalized, guard: guard.NewConstructorGuard()}, nil
}

// MustNewCountry is NewCountry for literals known to be valid.
func MustNewCountry(code string) Country {
	c, err := NewCountry(code)
	if err != nil {
		panic(err)
	}
	return c
}

// Code returns the upper-case alpha-2 code.
func (c Country) Code() string {
	return c.code
}

func (c Country) String() string {
	return c.code
}

// IsEqual compares country codes.
func (c Country) IsEqual(other Country) bool {
	return c.code == other.code
}

// Validate returns ErrCountryIsNotConstructed for a zero value.
func (c Country) Validate() error {
	return c.guard.Validate(ErrCountryIsNotConstructed)
}

func isUpperLetters(s string) bool {
	for _, r := range s {
		if r < 'A' || r > 'Z' {
			return false
		}
	}
	return true
}
