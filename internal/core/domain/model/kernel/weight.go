package kernel

import (
	"fmt"

	"shipping/internal/pkg/errs"
	"shipping/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

// ErrWeightIsNotConstructed is returned when a zero-value Weight is validated.
var ErrWeightIsNotConstructed = errs.NewValueIsRequiredError("weight must be created via NewWeight constructor")

// Weight is a strictly positive mass in kilograms.
type Weight struct {
	kilograms decimal.Decimal
	guard     guard.ConstructorGuard
}

// NewWeight rejects zero and negative values.
func NewWeight(kilograms decimal.Decimal) (Weight, error) {
	if !kilograms.IsPositive() {
		return Weight{}, errs.NewValueIsInvalidErrorWithCause(
			"weight",
			fmt.Errorf("%s is not greater than 0", kilograms.String()),
		)
	}
	return Weight{kilograms: kilograms, guard: guard.NewConstructorGuard()}, nil
}

func (w Weight) Kilograms() decimal.Decimal { return w.kilograms }

func (w Weight) String() string {
	return w.kilograms.String() + " kg"
}

// Validate returns ErrWeightIsNotConstructed for a zero value.
func (w Weight) Validate() error {
	return w.guard.Validate(ErrWeightIsNotConstructed)
}
