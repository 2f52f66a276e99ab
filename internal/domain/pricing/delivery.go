package pricing

import (
	"github.com/shopspring/decimal"

	"partnerportal/internal/domain/shared/money"
)

// DeliveryBandCount is fixed by the partner form: 0-10, 10-25 and 25-50 km.
const DeliveryBandCount = 3

// DeliveryBandLabels name the bands in document order.
var DeliveryBandLabels = [DeliveryBandCount]string{"0-10", "10-25", "25-50"}

var deliveryBandUpper = [DeliveryBandCount]int64{10, 25, 50}

// DeliveryChargeTable maps doorstep-delivery distance bands to flat fees.
type DeliveryChargeTable struct {
	Enabled bool
	// Fees holds one flat fee per band, in band order. A fee with no
	// currency set is treated as misconfigured, never as zero.
	Fees [DeliveryBandCount]money.Money
}

// Validate checks the fee grid when delivery is enabled.
func (d DeliveryChargeTable) Validate(prefix string) ValidationResult {
	var res ValidationResult
	if !d.Enabled {
		return res
	}
	for i, fee := range d.Fees {
		checkRate(&res, prefix+".charges."+DeliveryBandLabels[i], fee)
	}
	return res
}

// ChargeFor returns the flat fee for the band covering the distance.
// Distances beyond the top band are rejected rather than extrapolated, and
// an enabled band with no fee value rejects as misconfigured.
func (d DeliveryChargeTable) ChargeFor(distanceKm decimal.Decimal) (money.Money, error) {
	if !d.Enabled {
		return money.Money{}, nil
	}
	if distanceKm.IsNegative() {
		return money.Money{}, reject(RejectOutOfRange, "distance cannot be negative")
	}
	for i, upper := range deliveryBandUpper {
		if distanceKm.LessThanOrEqual(decimal.NewFromInt(upper)) {
			fee := d.Fees[i]
			if fee.Currency == "" {
				return money.Money{}, reject(RejectMisconfigured, "no fee for band "+DeliveryBandLabels[i])
			}
			return fee, nil
		}
	}
	return money.Money{}, reject(RejectOutOfRange, "distance "+distanceKm.String()+" km exceeds the 50 km delivery range")
}
