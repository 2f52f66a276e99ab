package editor

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"partnerportal/internal/domain/availability"
	"partnerportal/internal/domain/pricing"
	"partnerportal/internal/domain/shared/money"
)

var (
	ErrBadIndex   = errors.New("editor: package index out of range")
	ErrBadBand    = errors.New("editor: unknown band label")
	ErrBadDecimal = errors.New("editor: value is not a valid decimal")
)

// FieldEdit is one vendor-initiated change to a draft configuration. Each
// edit carries raw form input and validates it before touching the draft;
// a failing edit leaves the draft untouched.
type FieldEdit interface {
	// Field names the wire field the edit targets, for error reporting.
	Field() string
	apply(cfg *pricing.Configuration) error
}

// SetLimitMode chooses Limited or Unlimited pricing for a period and
// initialises the matching rate block, clearing the other.
type SetLimitMode struct {
	Period pricing.Period
	Mode   pricing.LimitMode
}

func (e SetLimitMode) Field() string { return string(e.Period) + "Rental.limit" }

func (e SetLimitMode) apply(cfg *pricing.Configuration) error {
	table := cfg.Table(e.Period)
	switch e.Mode {
	case pricing.LimitLimited:
		table.Mode = pricing.LimitLimited
		if table.Limited == nil {
			table.Limited = &pricing.LimitedRates{}
		}
		table.Unlimited = nil
	case pricing.LimitUnlimited:
		table.Mode = pricing.LimitUnlimited
		if table.Unlimited == nil {
			table.Unlimited = &pricing.UnlimitedRates{}
		}
		table.Limited = nil
	case pricing.LimitUnset:
		table.Mode = pricing.LimitUnset
		table.Limited = nil
		table.Unlimited = nil
	default:
		return fmt.Errorf("editor: unknown limit mode %q", string(e.Mode))
	}
	return nil
}

// SetPeriodAvailable toggles weekly or monthly rental on a listing.
type SetPeriodAvailable struct {
	Period    pricing.Period
	Available bool
}

func (e SetPeriodAvailable) Field() string { return string(e.Period) + "Rental.available" }

func (e SetPeriodAvailable) apply(cfg *pricing.Configuration) error {
	if e.Period == pricing.PeriodHourly {
		return errors.New("editor: hourly rental cannot be toggled off")
	}
	cfg.Table(e.Period).Available = e.Available
	return nil
}

// UpsertPackage adds or replaces one capped package. Index == len(packages)
// appends.
type UpsertPackage struct {
	Period pricing.Period
	Index  int
	Cap    string
	Rate   string
}

func (e UpsertPackage) Field() string {
	return fmt.Sprintf("%sRental.limited.packages[%d]", e.Period, e.Index)
}

func (e UpsertPackage) apply(cfg *pricing.Configuration) error {
	limited, err := limitedBlock(cfg, e.Period)
	if err != nil {
		return err
	}
	capValue, err := decimal.NewFromString(e.Cap)
	if err != nil {
		return fmt.Errorf("%w: cap %q", ErrBadDecimal, e.Cap)
	}
	rate, err := money.Parse(e.Rate, cfg.Currency)
	if err != nil {
		return fmt.Errorf("editor: rate %q: %w", e.Rate, err)
	}
	pkg := pricing.RatePackage{Cap: capValue, Rate: rate}
	switch {
	case e.Index >= 0 && e.Index < len(limited.Packages):
		limited.Packages[e.Index] = pkg
	case e.Index == len(limited.Packages):
		limited.Packages = append(limited.Packages, pkg)
	default:
		return ErrBadIndex
	}
	return nil
}

// RemovePackage drops one capped package.
type RemovePackage struct {
	Period pricing.Period
	Index  int
}

func (e RemovePackage) Field() string {
	return fmt.Sprintf("%sRental.limited.packages[%d]", e.Period, e.Index)
}

func (e RemovePackage) apply(cfg *pricing.Configuration) error {
	limited, err := limitedBlock(cfg, e.Period)
	if err != nil {
		return err
	}
	if e.Index < 0 || e.Index >= len(limited.Packages) {
		return ErrBadIndex
	}
	limited.Packages = append(limited.Packages[:e.Index], limited.Packages[e.Index+1:]...)
	return nil
}

// SetOverageRates sets the limited block's extra-km and extra-hour rates.
type SetOverageRates struct {
	Period        pricing.Period
	ExtraKmRate   string
	ExtraHourRate string
}

func (e SetOverageRates) Field() string { return string(e.Period) + "Rental.limited" }

func (e SetOverageRates) apply(cfg *pricing.Configuration) error {
	limited, err := limitedBlock(cfg, e.Period)
	if err != nil {
		return err
	}
	if limited.ExtraKmRate, err = money.Parse(e.ExtraKmRate, cfg.Currency); err != nil {
		return fmt.Errorf("editor: extraKmRate %q: %w", e.ExtraKmRate, err)
	}
	if limited.ExtraHourRate, err = money.Parse(e.ExtraHourRate, cfg.Currency); err != nil {
		return fmt.Errorf("editor: extraHourRate %q: %w", e.ExtraHourRate, err)
	}
	return nil
}

// SetUnlimitedRates sets the flat and extra-hour rates of an unlimited
// period.
type SetUnlimitedRates struct {
	Period        pricing.Period
	FlatRate      string
	ExtraHourRate string
}

func (e SetUnlimitedRates) Field() string { return string(e.Period) + "Rental.unlimited" }

func (e SetUnlimitedRates) apply(cfg *pricing.Configuration) error {
	table := cfg.Table(e.Period)
	if table.Mode != pricing.LimitUnlimited || table.Unlimited == nil {
		return fmt.Errorf("editor: %s rental is not in unlimited mode", e.Period)
	}
	var err error
	if table.Unlimited.FlatRate, err = money.Parse(e.FlatRate, cfg.Currency); err != nil {
		return fmt.Errorf("editor: fixed rate %q: %w", e.FlatRate, err)
	}
	if table.Unlimited.ExtraHourRate, err = money.Parse(e.ExtraHourRate, cfg.Currency); err != nil {
		return fmt.Errorf("editor: extraHourRate %q: %w", e.ExtraHourRate, err)
	}
	return nil
}

// SetDeliveryEnabled toggles doorstep delivery.
type SetDeliveryEnabled struct{ Enabled bool }

func (e SetDeliveryEnabled) Field() string { return "deliveryCharges.enabled" }

func (e SetDeliveryEnabled) apply(cfg *pricing.Configuration) error {
	cfg.Delivery.Enabled = e.Enabled
	return nil
}

// SetDeliveryFee sets one distance band's flat fee.
type SetDeliveryFee struct {
	Band string
	Fee  string
}

func (e SetDeliveryFee) Field() string { return "deliveryCharges.charges." + e.Band }

func (e SetDeliveryFee) apply(cfg *pricing.Configuration) error {
	for i, label := range pricing.DeliveryBandLabels {
		if label == e.Band {
			fee, err := money.Parse(e.Fee, cfg.Currency)
			if err != nil {
				return fmt.Errorf("editor: fee %q: %w", e.Fee, err)
			}
			cfg.Delivery.Fees[i] = fee
			return nil
		}
	}
	return fmt.Errorf("%w: %q", ErrBadBand, e.Band)
}

// SetSlabsEnabled toggles slab-wise pricing.
type SetSlabsEnabled struct{ Enabled bool }

func (e SetSlabsEnabled) Field() string { return "slabRates.enabled" }

func (e SetSlabsEnabled) apply(cfg *pricing.Configuration) error {
	cfg.Slabs.Enabled = e.Enabled
	return nil
}

// SetSlabRate sets the hourly rate of one duration band.
type SetSlabRate struct {
	Band string
	Rate string
}

func (e SetSlabRate) Field() string { return "slabRates.slabs." + e.Band }

func (e SetSlabRate) apply(cfg *pricing.Configuration) error {
	for i, label := range pricing.SlabLabels {
		if label == e.Band {
			rate, err := money.Parse(e.Rate, cfg.Currency)
			if err != nil {
				return fmt.Errorf("editor: rate %q: %w", e.Rate, err)
			}
			cfg.Slabs.Rates[i] = rate
			return nil
		}
	}
	return fmt.Errorf("%w: %q", ErrBadBand, e.Band)
}

// SetDailyBlackout sets the recurring unavailable hours.
type SetDailyBlackout struct {
	Start string
	End   string
}

func (e SetDailyBlackout) Field() string { return "unavailableHours" }

func (e SetDailyBlackout) apply(cfg *pricing.Configuration) error {
	start, err := availability.ParseClock(e.Start)
	if err != nil {
		return fmt.Errorf("editor: start: %w", err)
	}
	end, err := availability.ParseClock(e.End)
	if err != nil {
		return fmt.Errorf("editor: end: %w", err)
	}
	window, err := availability.NewWindow(start, end, cfg.Window.BlackoutDates())
	if err != nil {
		return err
	}
	cfg.Window = window
	return nil
}

// AddBlackoutDate marks one calendar date unavailable.
type AddBlackoutDate struct{ Date string }

func (e AddBlackoutDate) Field() string { return "unavailableDates" }

func (e AddBlackoutDate) apply(cfg *pricing.Configuration) error {
	return cfg.Window.AddBlackoutDate(e.Date)
}

// RemoveBlackoutDate clears one blackout date.
type RemoveBlackoutDate struct{ Date string }

func (e RemoveBlackoutDate) Field() string { return "unavailableDates" }

func (e RemoveBlackoutDate) apply(cfg *pricing.Configuration) error {
	cfg.Window.RemoveBlackoutDate(e.Date)
	return nil
}

// SetMinimumDuration sets the minimum booking duration and its unit.
type SetMinimumDuration struct {
	Value int
	Unit  pricing.DurationUnit
}

func (e SetMinimumDuration) Field() string { return "minBookingDuration" }

func (e SetMinimumDuration) apply(cfg *pricing.Configuration) error {
	if e.Value < 1 {
		return errors.New("editor: minimum booking duration must be at least 1")
	}
	switch e.Unit {
	case pricing.UnitHours, pricing.UnitDays:
	default:
		return fmt.Errorf("editor: unknown duration unit %q", string(e.Unit))
	}
	cfg.MinBookingDuration = e.Value
	cfg.Unit = e.Unit
	return nil
}

func limitedBlock(cfg *pricing.Configuration, period pricing.Period) (*pricing.LimitedRates, error) {
	table := cfg.Table(period)
	if table.Mode != pricing.LimitLimited || table.Limited == nil {
		return nil, fmt.Errorf("editor: %s rental is not in limited mode", period)
	}
	return table.Limited, nil
}
