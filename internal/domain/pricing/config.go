package pricing

import (
	"context"
	"errors"
	"time"

	"partnerportal/internal/domain/availability"
)

var (
	ErrConfigNotFound = errors.New("pricing: configuration not found")
	ErrVendorRequired = errors.New("pricing: vendor id is required")
	ErrCarRequired    = errors.New("pricing: car id is required")
)

// VendorID identifies the partner owning a listing.
type VendorID string

// CarID identifies one uploaded car.
type CarID string

// DurationUnit is the unit of the minimum booking duration.
type DurationUnit string

const (
	UnitHours DurationUnit = "hours"
	UnitDays  DurationUnit = "days"
)

// State tracks a configuration through its editing lifecycle. Only a Valid
// configuration is eligible for quoting.
type State string

const (
	StateDraft   State = "DRAFT"
	StateValid   State = "VALID"
	StateInvalid State = "INVALID"
)

// Configuration aggregates one car's complete rate card: the tiered tables
// per rental period, the delivery and slab grids, the availability window
// and the minimum booking duration. It is persisted as a whole document
// keyed by (vendor, car); saves replace the previous document outright.
type Configuration struct {
	Vendor   VendorID
	Car      CarID
	Currency string

	Hourly  TieredRateTable
	Weekly  TieredRateTable
	Monthly TieredRateTable

	Delivery DeliveryChargeTable
	Slabs    SlabDurationTable
	Window   availability.Window

	MinBookingDuration int
	Unit               DurationUnit

	State     State
	UpdatedAt time.Time
}

// NewConfiguration starts an empty draft for a vendor's car. All rate
// tables begin unset; the vendor fills them through the editing session.
func NewConfiguration(vendor VendorID, car CarID, currency string) (*Configuration, error) {
	if vendor == "" {
		return nil, ErrVendorRequired
	}
	if car == "" {
		return nil, ErrCarRequired
	}
	if currency == "" {
		currency = "INR"
	}
	return &Configuration{
		Vendor:             vendor,
		Car:                car,
		Currency:           currency,
		Hourly:             TieredRateTable{Period: PeriodHourly, Available: true},
		Weekly:             TieredRateTable{Period: PeriodWeekly},
		Monthly:            TieredRateTable{Period: PeriodMonthly},
		MinBookingDuration: 1,
		Unit:               UnitHours,
		State:              StateDraft,
	}, nil
}

// Validate runs every child validation plus the cross-field rules and
// transitions the configuration to Valid or Invalid.
func (c *Configuration) Validate() ValidationResult {
	res := c.check()
	if res.OK() {
		c.State = StateValid
	} else {
		c.State = StateInvalid
	}
	return res
}

func (c *Configuration) check() ValidationResult {
	var res ValidationResult
	if c.Vendor == "" {
		res.Add("vendorId", "vendor id missing")
	}
	if c.Car == "" {
		res.Add("carId", "car id missing")
	}
	if c.Currency == "" {
		res.Add("currency", "currency missing")
	}

	// The hourly table is mandatory; weekly and monthly count only when
	// the vendor switched them on. An unset hourly table is tolerated
	// when slab rates cover hourly bookings instead.
	if c.Hourly.Mode != LimitUnset || !c.Slabs.Enabled {
		res.Merge(c.Hourly.Validate("hourlyRental"))
	}
	if c.Weekly.Available {
		res.Merge(c.Weekly.Validate("weeklyRental"))
	}
	if c.Monthly.Available {
		res.Merge(c.Monthly.Validate("monthlyRental"))
	}
	res.Merge(c.Delivery.Validate("deliveryCharges"))
	res.Merge(c.Slabs.Validate("slabRates"))

	if c.MinBookingDuration < 1 {
		res.Add("minBookingDuration", "must be at least 1")
	}
	switch c.Unit {
	case UnitHours, UnitDays:
	default:
		res.Add("unit", "must be hours or days")
	}
	return res
}

// MinBookingHours converts the minimum duration to hours.
func (c *Configuration) MinBookingHours() int64 {
	hours := int64(c.MinBookingDuration)
	if c.Unit == UnitDays {
		hours *= 24
	}
	return hours
}

// Table returns the tiered table for a period.
func (c *Configuration) Table(p Period) *TieredRateTable {
	switch p {
	case PeriodWeekly:
		return &c.Weekly
	case PeriodMonthly:
		return &c.Monthly
	default:
		return &c.Hourly
	}
}

// Clone deep-copies the configuration so editing sessions can hand out
// immutable snapshots.
func (c *Configuration) Clone() *Configuration {
	clone := *c
	clone.Hourly = cloneTable(c.Hourly)
	clone.Weekly = cloneTable(c.Weekly)
	clone.Monthly = cloneTable(c.Monthly)

	clone.Window = c.Window.Clone()
	return &clone
}

func cloneTable(t TieredRateTable) TieredRateTable {
	out := t
	if t.Limited != nil {
		limited := *t.Limited
		limited.Packages = append([]RatePackage(nil), t.Limited.Packages...)
		out.Limited = &limited
	}
	if t.Unlimited != nil {
		unlimited := *t.Unlimited
		out.Unlimited = &unlimited
	}
	return out
}

// Repository is the whole-document store for configurations. Save replaces
// the stored document; there are no partial-field updates, the last writer
// wins.
type Repository interface {
	Get(ctx context.Context, vendor VendorID, car CarID) (*Configuration, error)
	Save(ctx context.Context, cfg *Configuration) error
	Delete(ctx context.Context, vendor VendorID, car CarID) error
}
