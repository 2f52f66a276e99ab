package pricing

import (
	"github.com/shopspring/decimal"

	"partnerportal/internal/domain/shared/money"
)

// SlabCount is fixed by the partner form: five duration bands in hours.
const SlabCount = 5

// SlabLabels name the duration bands in document order.
var SlabLabels = [SlabCount]string{"0-12", "12-24", "24-48", "48-96", "96+"}

var slabLowerHours = [SlabCount]int64{0, 12, 24, 48, 96}

// SlabDurationTable is the alternate pricing mode: a flat hourly rate picked
// by total booking duration. Band boundaries are not configurable.
type SlabDurationTable struct {
	Enabled bool
	// Rates holds the per-hour rate of each band, in band order.
	Rates [SlabCount]money.Money
}

// Validate checks the rate grid when slab pricing is enabled.
func (s SlabDurationTable) Validate(prefix string) ValidationResult {
	var res ValidationResult
	if !s.Enabled {
		return res
	}
	for i, rate := range s.Rates {
		checkRate(&res, prefix+".slabs."+SlabLabels[i], rate)
	}
	return res
}

// RateFor returns the hourly rate of the band covering the duration. The
// last band is uncapped, so any duration from 96 hours up uses its rate.
func (s SlabDurationTable) RateFor(durationHours decimal.Decimal) (money.Money, error) {
	band := 0
	for i := SlabCount - 1; i > 0; i-- {
		if durationHours.GreaterThanOrEqual(decimal.NewFromInt(slabLowerHours[i])) {
			band = i
			break
		}
	}
	rate := s.Rates[band]
	if rate.Currency == "" {
		return money.Money{}, reject(RejectMisconfigured, "no slab rate for band "+SlabLabels[band])
	}
	return rate, nil
}
