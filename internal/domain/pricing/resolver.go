package pricing

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"partnerportal/internal/domain/shared/money"
	"partnerportal/internal/domain/shared/timespan"
)

// DeliveryMode says how the renter receives the car.
type DeliveryMode string

const (
	DeliverySelfPickup DeliveryMode = "self_pickup"
	DeliveryDoorstep   DeliveryMode = "doorstep"
)

// RateSource records which table priced the quote.
type RateSource string

const (
	SourceTiered RateSource = "tiered"
	SourceSlab   RateSource = "slab"
)

// QuoteRequest is one booking inquiry against a stored configuration.
type QuoteRequest struct {
	Period     Period
	Span       timespan.Span
	DistanceKm decimal.Decimal
	Delivery   DeliveryMode
	// Location is the listing's local time zone for blackout checks.
	// Nil means UTC.
	Location *time.Location
}

// Quote is the resolved charge for a booking request.
type Quote struct {
	BaseCharge     money.Money
	DeliveryCharge money.Money
	Total          money.Money
	Currency       string
	Period         Period
	Source         RateSource
	Units          int64
	ExtraHours     decimal.Decimal
}

// Calculator quotes booking requests. Implementations must be pure: the
// same request against an unchanged configuration yields the same quote.
type Calculator interface {
	Quote(ctx context.Context, cfg *Configuration, req QuoteRequest) (Quote, error)
}

// Resolver is the stateless Calculator over stored configurations.
type Resolver struct{}

// Quote resolves a charge or returns a typed Rejection. The configuration
// is never mutated, so concurrent readers may share one instance.
func (Resolver) Quote(_ context.Context, cfg *Configuration, req QuoteRequest) (Quote, error) {
	if res := cfg.check(); !res.OK() {
		return Quote{}, reject(RejectInvalidConfig, res.String())
	}

	if at, blocked := cfg.Window.FirstConflict(req.Span, req.Location); blocked {
		return Quote{}, reject(RejectUnavailable, "listing blacked out at "+at.Format(time.RFC3339))
	}

	billedHours := req.Span.BilledHours()
	if minHours := cfg.MinBookingHours(); billedHours < minHours {
		return Quote{}, reject(RejectBelowMinimum, "booking shorter than the minimum duration")
	}

	base, source, usage, err := resolveBase(cfg, req.Period, billedHours, req.DistanceKm)
	if err != nil {
		return Quote{}, err
	}

	delivery := money.Zero(cfg.Currency)
	if req.Delivery == DeliveryDoorstep {
		fee, err := cfg.Delivery.ChargeFor(req.DistanceKm)
		if err != nil {
			return Quote{}, err
		}
		if fee.Currency != "" {
			delivery = fee
		}
	}

	total, err := base.Add(delivery)
	if err != nil {
		return Quote{}, err
	}
	return Quote{
		BaseCharge:     base,
		DeliveryCharge: delivery,
		Total:          total,
		Currency:       cfg.Currency,
		Period:         req.Period,
		Source:         source,
		Units:          usage.Units,
		ExtraHours:     usage.ExtraHours,
	}, nil
}

// resolveBase applies the pricing-mode precedence: the caller's period
// selection wins; slab rates only price an hourly request whose tiered
// table was left unset. When both hourly tiers and slabs are configured,
// tiers win.
func resolveBase(cfg *Configuration, period Period, billedHours int64, distanceKm decimal.Decimal) (money.Money, RateSource, Usage, error) {
	table := cfg.Table(period)

	if period != PeriodHourly && !table.Available {
		return money.Money{}, "", Usage{}, reject(RejectPeriodNotSold, string(period)+" rental is not offered for this car")
	}

	if period == PeriodHourly && table.Mode == LimitUnset {
		if cfg.Slabs.Enabled {
			rate, err := cfg.Slabs.RateFor(decimal.NewFromInt(billedHours))
			if err != nil {
				return money.Money{}, "", Usage{}, err
			}
			base := rate.MulInt(billedHours)
			return base, SourceSlab, Usage{Units: billedHours}, nil
		}
		return money.Money{}, "", Usage{}, reject(RejectPeriodNotSold, "hourly rates not configured")
	}

	usage := usageFor(period, billedHours, distanceKm)
	base, err := table.ResolveRate(usage)
	if err != nil {
		return money.Money{}, "", Usage{}, err
	}
	return base, SourceTiered, usage, nil
}

func usageFor(period Period, billedHours int64, distanceKm decimal.Decimal) Usage {
	unit := period.UnitHours()
	if unit <= 1 {
		return Usage{Units: billedHours, DistanceKm: distanceKm}
	}
	units := billedHours / unit
	remainder := billedHours % unit
	if units == 0 {
		// Under one period still books one whole unit.
		units = 1
		remainder = 0
	}
	return Usage{
		Units:      units,
		ExtraHours: decimal.NewFromInt(remainder),
		DistanceKm: distanceKm,
	}
}
