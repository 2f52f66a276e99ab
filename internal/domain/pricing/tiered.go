package pricing

import (
	"errors"
	"strconv"

	"github.com/shopspring/decimal"

	"partnerportal/internal/domain/shared/money"
)

var ErrModeUnset = errors.New("pricing: limit type not chosen")

// LimitMode tells whether a rental period is priced by capped packages or a
// single flat rate. Unset marks an incomplete configuration and blocks
// quoting.
type LimitMode string

const (
	LimitUnset     LimitMode = ""
	LimitLimited   LimitMode = "Limited"
	LimitUnlimited LimitMode = "Unlimited"
)

// Period is the rental unit a tiered table prices.
type Period string

const (
	PeriodHourly  Period = "hourly"
	PeriodWeekly  Period = "weekly"
	PeriodMonthly Period = "monthly"
)

// UnitHours returns the billing unit length in hours.
func (p Period) UnitHours() int64 {
	switch p {
	case PeriodWeekly:
		return 7 * 24
	case PeriodMonthly:
		return 30 * 24
	default:
		return 1
	}
}

const maxPackages = 5

// RatePackage is one capped bundle: up to Cap booked units for the flat
// Rate. Packages are kept sorted ascending by cap so resolution picks the
// smallest bundle that covers the request.
type RatePackage struct {
	Cap  decimal.Decimal
	Rate money.Money
}

// LimitedRates prices a period through capped packages plus overage rates
// for usage past the largest cap.
type LimitedRates struct {
	Packages      []RatePackage
	ExtraKmRate   money.Money
	ExtraHourRate money.Money
}

// UnlimitedRates prices a period as flat rate per unit with an extra-hour
// rate for the remainder past whole units.
type UnlimitedRates struct {
	FlatRate      money.Money
	ExtraHourRate money.Money
}

// TieredRateTable holds one rental period's rate card. Exactly one of
// Limited/Unlimited is populated, matching Mode.
type TieredRateTable struct {
	Period    Period
	Available bool
	Mode      LimitMode
	Limited   *LimitedRates
	Unlimited *UnlimitedRates
}

// Usage is the requested consumption the table resolves a rate for.
type Usage struct {
	// Units is the booked duration in the table's period unit, whole
	// units with any started unit counted.
	Units int64
	// ExtraHours is the remainder past whole units, billed at the
	// extra-hour rate. Zero for hourly tables.
	ExtraHours decimal.Decimal
	// DistanceKm is the caller's distance estimate.
	DistanceKm decimal.Decimal
}

// Validate checks the table against its mode. The prefix names the wire
// field the table came from so editing sessions can attribute errors.
func (t TieredRateTable) Validate(prefix string) ValidationResult {
	var res ValidationResult
	switch t.Mode {
	case LimitUnset:
		res.Add(prefix+".limit", "limit type not chosen")
	case LimitLimited:
		if t.Unlimited != nil {
			res.Add(prefix, "unlimited rates present on a limited table")
		}
		if t.Limited == nil {
			res.Add(prefix+".limited", "limited rates missing")
			return res
		}
		t.Limited.validate(prefix+".limited", &res)
	case LimitUnlimited:
		if t.Limited != nil {
			res.Add(prefix, "limited rates present on an unlimited table")
		}
		if t.Unlimited == nil {
			res.Add(prefix+".unlimited", "unlimited rates missing")
			return res
		}
		t.Unlimited.validate(prefix+".unlimited", &res)
	default:
		res.Add(prefix+".limit", "unknown limit type %q", string(t.Mode))
	}
	return res
}

func (l LimitedRates) validate(prefix string, res *ValidationResult) {
	if len(l.Packages) == 0 {
		res.Add(prefix+".packages", "at least one package is required")
	}
	if len(l.Packages) > maxPackages {
		res.Add(prefix+".packages", "at most %d packages allowed", maxPackages)
	}
	prev := decimal.Zero
	for i, pkg := range l.Packages {
		field := fieldIndex(prefix+".packages", i)
		if !pkg.Cap.IsPositive() {
			res.Add(field, "cap must be greater than zero")
		} else if pkg.Cap.LessThanOrEqual(prev) && i > 0 {
			res.Add(field, "caps must increase strictly")
		}
		prev = pkg.Cap
		checkRate(res, field+".rate", pkg.Rate)
	}
	checkRate(res, prefix+".extraKmRate", l.ExtraKmRate)
	checkRate(res, prefix+".extraHourRate", l.ExtraHourRate)
}

func (u UnlimitedRates) validate(prefix string, res *ValidationResult) {
	checkRate(res, prefix+".fixedRate", u.FlatRate)
	checkRate(res, prefix+".extraHourRate", u.ExtraHourRate)
}

func checkRate(res *ValidationResult, field string, m money.Money) {
	if m.Currency == "" {
		res.Add(field, "rate missing")
		return
	}
	if m.IsNegative() {
		res.Add(field, "rate cannot be negative")
	}
}

func fieldIndex(prefix string, i int) string {
	return prefix + "[" + strconv.Itoa(i) + "]"
}

// ResolveRate computes the base charge for the requested usage. Limited
// tables pick the smallest package covering the booked units; usage past
// the largest cap bills the largest package plus per-unit overage. The
// table must have passed Validate.
func (t TieredRateTable) ResolveRate(u Usage) (money.Money, error) {
	switch t.Mode {
	case LimitLimited:
		if t.Limited == nil {
			return money.Money{}, ErrModeUnset
		}
		return t.Limited.resolve(u)
	case LimitUnlimited:
		if t.Unlimited == nil {
			return money.Money{}, ErrModeUnset
		}
		return t.Unlimited.resolve(u)
	default:
		return money.Money{}, ErrModeUnset
	}
}

func (l LimitedRates) resolve(u Usage) (money.Money, error) {
	units := decimal.NewFromInt(u.Units)
	for _, pkg := range l.Packages {
		if pkg.Cap.GreaterThanOrEqual(units) {
			return l.addExtraHours(pkg.Rate, u.ExtraHours)
		}
	}

	largest := l.Packages[len(l.Packages)-1]
	charge := largest.Rate

	timeOverage := units.Sub(largest.Cap)
	charge, err := charge.Add(l.ExtraHourRate.Mul(timeOverage))
	if err != nil {
		return money.Money{}, err
	}

	if distOverage := u.DistanceKm.Sub(largest.Cap); distOverage.IsPositive() {
		charge, err = charge.Add(l.ExtraKmRate.Mul(distOverage))
		if err != nil {
			return money.Money{}, err
		}
	}
	return l.addExtraHours(charge, u.ExtraHours)
}

func (l LimitedRates) addExtraHours(base money.Money, extraHours decimal.Decimal) (money.Money, error) {
	if !extraHours.IsPositive() {
		return base, nil
	}
	return base.Add(l.ExtraHourRate.Mul(extraHours))
}

func (u UnlimitedRates) resolve(usage Usage) (money.Money, error) {
	charge := u.FlatRate.MulInt(usage.Units)
	if usage.ExtraHours.IsPositive() {
		return charge.Add(u.ExtraHourRate.Mul(usage.ExtraHours))
	}
	return charge, nil
}
