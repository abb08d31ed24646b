package metrics

import (
	"fmt"

	"production/internal/pkg/errs"
)

// DefaultReferenceRate is the theoretical line speed in units per hour.
const DefaultReferenceRate = 4000

// ReferenceRate is the theoretical production rate in units per hour.
type ReferenceRate struct {
	unitsPerHour float64
}

func NewReferenceRate(unitsPerHour float64) (ReferenceRate, error) {
	if unitsPerHour <= 0 {
		return ReferenceRate{}, errs.NewValueIsInvalidErrorWithCause(
			"reference rate",
			fmt.Errorf("%v is not greater than 0", unitsPerHour),
		)
	}
	return ReferenceRate{unitsPerHour: unitsPerHour}, nil
}

func (r ReferenceRate) UnitsPerHour() float64 {
	return r.unitsPerHour
}

func (r ReferenceRate) UnitsPerMinute() float64 {
	return r.unitsPerHour / 60
}

// EstimatedHours returns target / rate, rounded.
func (r ReferenceRate) EstimatedHours(targetUnits int) float64 {
	if r.unitsPerHour <= 0 {
		return 0
	}
	return Round6(float64(targetUnits) / r.unitsPerHour)
}

func (r ReferenceRate) Validate() error {
	if r.unitsPerHour <= 0 {
		return errs.NewValueIsRequiredError("reference rate")
	}
	return nil
}
