package dto

import (
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"partnerportal/internal/domain/availability"
	"partnerportal/internal/domain/pricing"
	"partnerportal/internal/domain/shared/money"
)

// The partner app stores every monetary field as a decimal string. The
// codec must reproduce those strings exactly; nothing here goes through
// a float.

var ErrUnknownSlabLabel = errors.New("dto: unknown slab duration label")

// LimitTypePlaceholder is what the form writes before a vendor picks a
// limit type. It decodes to the unset mode.
const LimitTypePlaceholder = "Limit Type"

type RentalPackage struct {
	HourlyRate  string `json:"hourlyRate,omitempty" bson:"hourlyRate,omitempty"`
	KmPerHour   string `json:"kmPerHour,omitempty" bson:"kmPerHour,omitempty"`
	WeeklyRate  string `json:"weeklyRate,omitempty" bson:"weeklyRate,omitempty"`
	KmPerWeek   string `json:"kmPerWeek,omitempty" bson:"kmPerWeek,omitempty"`
	MonthlyRate string `json:"monthlyRate,omitempty" bson:"monthlyRate,omitempty"`
	KmPerMonth  string `json:"kmPerMonth,omitempty" bson:"kmPerMonth,omitempty"`
}

type LimitedRental struct {
	Packages      []RentalPackage `json:"packages" bson:"packages"`
	ExtraKmRate   string          `json:"extraKmRate" bson:"extraKmRate"`
	ExtraHourRate string          `json:"extraHourRate" bson:"extraHourRate"`
}

type UnlimitedRental struct {
	FixedHourlyRate  string `json:"fixedHourlyRate,omitempty" bson:"fixedHourlyRate,omitempty"`
	FixedWeeklyRate  string `json:"fixedWeeklyRate,omitempty" bson:"fixedWeeklyRate,omitempty"`
	FixedMonthlyRate string `json:"fixedMonthlyRate,omitempty" bson:"fixedMonthlyRate,omitempty"`
	ExtraHourRate    string `json:"extraHourRate" bson:"extraHourRate"`
}

type Rental struct {
	Available *bool           `json:"available,omitempty" bson:"available,omitempty"`
	Limit     string          `json:"limit" bson:"limit"`
	Limited   LimitedRental   `json:"limited" bson:"limited"`
	Unlimited UnlimitedRental `json:"unlimited" bson:"unlimited"`
}

type DeliveryCharges struct {
	Enabled bool            `json:"enabled" bson:"enabled"`
	Charges DeliveryBandMap `json:"charges" bson:"charges"`
}

type DeliveryBandMap struct {
	UpTo10 string `json:"0-10" bson:"0-10"`
	UpTo25 string `json:"10-25" bson:"10-25"`
	UpTo50 string `json:"25-50" bson:"25-50"`
}

type Slab struct {
	Duration string `json:"duration" bson:"duration"`
	Rate     string `json:"rate" bson:"rate"`
}

type SlabRates struct {
	Enabled bool   `json:"enabled" bson:"enabled"`
	Slabs   []Slab `json:"slabs" bson:"slabs"`
}

type UnavailableHours struct {
	Start string `json:"start" bson:"start"`
	End   string `json:"end" bson:"end"`
}

// PricingDocument is the whole-document wire shape of one car's pricing
// configuration, matching what the partner form writes.
type PricingDocument struct {
	VendorID           string           `json:"vendorId" bson:"vendor_id"`
	CarID              string           `json:"carId" bson:"car_id"`
	Currency           string           `json:"currency,omitempty" bson:"currency,omitempty"`
	HourlyRental       Rental           `json:"hourlyRental" bson:"hourlyRental"`
	WeeklyRental       Rental           `json:"weeklyRental" bson:"weeklyRental"`
	MonthlyRental      Rental           `json:"monthlyRental" bson:"monthlyRental"`
	DeliveryCharges    DeliveryCharges  `json:"deliveryCharges" bson:"deliveryCharges"`
	SlabRates          SlabRates        `json:"slabRates" bson:"slabRates"`
	UnavailableHours   UnavailableHours `json:"unavailableHours" bson:"unavailableHours"`
	UnavailableDates   []string         `json:"unavailableDates" bson:"unavailableDates"`
	MinBookingDuration int              `json:"minBookingDuration" bson:"minBookingDuration"`
	Unit               string           `json:"unit" bson:"unit"`
	UpdatedAt          time.Time        `json:"updatedAt,omitempty" bson:"updated_at,omitempty"`
}

// EncodePricing renders a configuration into the wire document.
func EncodePricing(cfg *pricing.Configuration) *PricingDocument {
	doc := &PricingDocument{
		VendorID:           string(cfg.Vendor),
		CarID:              string(cfg.Car),
		Currency:           cfg.Currency,
		HourlyRental:       encodeRental(cfg.Hourly, nil),
		WeeklyRental:       encodeRental(cfg.Weekly, &cfg.Weekly.Available),
		MonthlyRental:      encodeRental(cfg.Monthly, &cfg.Monthly.Available),
		DeliveryCharges:    encodeDelivery(cfg.Delivery),
		SlabRates:          encodeSlabs(cfg.Slabs),
		UnavailableHours:   UnavailableHours{Start: cfg.Window.DailyStart.String(), End: cfg.Window.DailyEnd.String()},
		UnavailableDates:   cfg.Window.BlackoutDates(),
		MinBookingDuration: cfg.MinBookingDuration,
		Unit:               string(cfg.Unit),
		UpdatedAt:          cfg.UpdatedAt,
	}
	return doc
}

func encodeRental(t pricing.TieredRateTable, available *bool) Rental {
	r := Rental{Limit: encodeLimit(t.Mode)}
	if available != nil {
		v := *available
		r.Available = &v
	}
	if t.Limited != nil {
		r.Limited = LimitedRental{
			Packages:      encodePackages(t.Period, t.Limited.Packages),
			ExtraKmRate:   encodeMoney(t.Limited.ExtraKmRate),
			ExtraHourRate: encodeMoney(t.Limited.ExtraHourRate),
		}
	}
	if t.Unlimited != nil {
		r.Unlimited = UnlimitedRental{ExtraHourRate: encodeMoney(t.Unlimited.ExtraHourRate)}
		flat := encodeMoney(t.Unlimited.FlatRate)
		switch t.Period {
		case pricing.PeriodWeekly:
			r.Unlimited.FixedWeeklyRate = flat
		case pricing.PeriodMonthly:
			r.Unlimited.FixedMonthlyRate = flat
		default:
			r.Unlimited.FixedHourlyRate = flat
		}
	}
	return r
}

func encodePackages(period pricing.Period, pkgs []pricing.RatePackage) []RentalPackage {
	out := make([]RentalPackage, len(pkgs))
	for i, pkg := range pkgs {
		capValue := pkg.Cap.String()
		rate := encodeMoney(pkg.Rate)
		switch period {
		case pricing.PeriodWeekly:
			out[i] = RentalPackage{WeeklyRate: rate, KmPerWeek: capValue}
		case pricing.PeriodMonthly:
			out[i] = RentalPackage{MonthlyRate: rate, KmPerMonth: capValue}
		default:
			out[i] = RentalPackage{HourlyRate: rate, KmPerHour: capValue}
		}
	}
	return out
}

func encodeDelivery(d pricing.DeliveryChargeTable) DeliveryCharges {
	return DeliveryCharges{
		Enabled: d.Enabled,
		Charges: DeliveryBandMap{
			UpTo10: encodeMoney(d.Fees[0]),
			UpTo25: encodeMoney(d.Fees[1]),
			UpTo50: encodeMoney(d.Fees[2]),
		},
	}
}

func encodeSlabs(s pricing.SlabDurationTable) SlabRates {
	out := SlabRates{Enabled: s.Enabled, Slabs: make([]Slab, pricing.SlabCount)}
	for i := range s.Rates {
		out.Slabs[i] = Slab{Duration: pricing.SlabLabels[i], Rate: encodeMoney(s.Rates[i])}
	}
	return out
}

func encodeLimit(m pricing.LimitMode) string {
	if m == pricing.LimitUnset {
		return LimitTypePlaceholder
	}
	return string(m)
}

func encodeMoney(m money.Money) string {
	if m.Currency == "" {
		return ""
	}
	return m.Amount.String()
}

// DecodePricing parses a wire document into the domain configuration.
// Empty rate strings stay unset; malformed decimals fail decoding.
func (doc *PricingDocument) DecodePricing() (*pricing.Configuration, error) {
	currency := doc.Currency
	if currency == "" {
		currency = "INR"
	}
	cfg, err := pricing.NewConfiguration(pricing.VendorID(doc.VendorID), pricing.CarID(doc.CarID), currency)
	if err != nil {
		return nil, err
	}

	if cfg.Hourly, err = decodeRental(doc.HourlyRental, pricing.PeriodHourly, currency); err != nil {
		return nil, fmt.Errorf("dto: hourlyRental: %w", err)
	}
	cfg.Hourly.Available = true
	if cfg.Weekly, err = decodeRental(doc.WeeklyRental, pricing.PeriodWeekly, currency); err != nil {
		return nil, fmt.Errorf("dto: weeklyRental: %w", err)
	}
	if cfg.Monthly, err = decodeRental(doc.MonthlyRental, pricing.PeriodMonthly, currency); err != nil {
		return nil, fmt.Errorf("dto: monthlyRental: %w", err)
	}
	if cfg.Delivery, err = decodeDelivery(doc.DeliveryCharges, currency); err != nil {
		return nil, fmt.Errorf("dto: deliveryCharges: %w", err)
	}
	if cfg.Slabs, err = decodeSlabs(doc.SlabRates, currency); err != nil {
		return nil, fmt.Errorf("dto: slabRates: %w", err)
	}

	start, err := decodeClock(doc.UnavailableHours.Start)
	if err != nil {
		return nil, fmt.Errorf("dto: unavailableHours.start: %w", err)
	}
	end, err := decodeClock(doc.UnavailableHours.End)
	if err != nil {
		return nil, fmt.Errorf("dto: unavailableHours.end: %w", err)
	}
	if cfg.Window, err = availability.NewWindow(start, end, doc.UnavailableDates); err != nil {
		return nil, fmt.Errorf("dto: unavailableDates: %w", err)
	}

	cfg.MinBookingDuration = doc.MinBookingDuration
	if doc.Unit != "" {
		cfg.Unit = pricing.DurationUnit(doc.Unit)
	}
	cfg.UpdatedAt = doc.UpdatedAt
	return cfg, nil
}

func decodeRental(r Rental, period pricing.Period, currency string) (pricing.TieredRateTable, error) {
	table := pricing.TieredRateTable{Period: period}
	if r.Available != nil {
		table.Available = *r.Available
	}
	switch r.Limit {
	case "", LimitTypePlaceholder, "Limit type":
		table.Mode = pricing.LimitUnset
		return table, nil
	case string(pricing.LimitLimited):
		table.Mode = pricing.LimitLimited
	case string(pricing.LimitUnlimited):
		table.Mode = pricing.LimitUnlimited
	default:
		return table, fmt.Errorf("unknown limit %q", r.Limit)
	}

	if table.Mode == pricing.LimitLimited {
		limited := &pricing.LimitedRates{}
		for i, p := range r.Limited.Packages {
			pkg, empty, err := decodePackage(p, period, currency)
			if err != nil {
				return table, fmt.Errorf("packages[%d]: %w", i, err)
			}
			if empty {
				continue
			}
			limited.Packages = append(limited.Packages, pkg)
		}
		var err error
		if limited.ExtraKmRate, err = decodeMoney(r.Limited.ExtraKmRate, currency); err != nil {
			return table, fmt.Errorf("extraKmRate: %w", err)
		}
		if limited.ExtraHourRate, err = decodeMoney(r.Limited.ExtraHourRate, currency); err != nil {
			return table, fmt.Errorf("extraHourRate: %w", err)
		}
		table.Limited = limited
		return table, nil
	}

	unlimited := &pricing.UnlimitedRates{}
	flat := r.Unlimited.FixedHourlyRate
	switch period {
	case pricing.PeriodWeekly:
		flat = r.Unlimited.FixedWeeklyRate
	case pricing.PeriodMonthly:
		flat = r.Unlimited.FixedMonthlyRate
	}
	var err error
	if unlimited.FlatRate, err = decodeMoney(flat, currency); err != nil {
		return table, fmt.Errorf("fixed rate: %w", err)
	}
	if unlimited.ExtraHourRate, err = decodeMoney(r.Unlimited.ExtraHourRate, currency); err != nil {
		return table, fmt.Errorf("extraHourRate: %w", err)
	}
	table.Unlimited = unlimited
	return table, nil
}

func decodePackage(p RentalPackage, period pricing.Period, currency string) (pricing.RatePackage, bool, error) {
	rate, rawCap := p.HourlyRate, p.KmPerHour
	switch period {
	case pricing.PeriodWeekly:
		rate, rawCap = p.WeeklyRate, p.KmPerWeek
	case pricing.PeriodMonthly:
		rate, rawCap = p.MonthlyRate, p.KmPerMonth
	}
	if rate == "" && rawCap == "" {
		// The form seeds one empty package; skip it.
		return pricing.RatePackage{}, true, nil
	}
	capValue, err := decimal.NewFromString(rawCap)
	if err != nil {
		return pricing.RatePackage{}, false, fmt.Errorf("cap %q: %w", rawCap, money.ErrInvalidAmount)
	}
	rateValue, err := decodeMoney(rate, currency)
	if err != nil {
		return pricing.RatePackage{}, false, err
	}
	return pricing.RatePackage{Cap: capValue, Rate: rateValue}, false, nil
}

func decodeDelivery(d DeliveryCharges, currency string) (pricing.DeliveryChargeTable, error) {
	table := pricing.DeliveryChargeTable{Enabled: d.Enabled}
	raw := [pricing.DeliveryBandCount]string{d.Charges.UpTo10, d.Charges.UpTo25, d.Charges.UpTo50}
	for i, s := range raw {
		fee, err := decodeMoney(s, currency)
		if err != nil {
			return table, fmt.Errorf("charges.%s: %w", pricing.DeliveryBandLabels[i], err)
		}
		table.Fees[i] = fee
	}
	return table, nil
}

func decodeSlabs(s SlabRates, currency string) (pricing.SlabDurationTable, error) {
	table := pricing.SlabDurationTable{Enabled: s.Enabled}
	for _, slab := range s.Slabs {
		idx := -1
		for i, label := range pricing.SlabLabels {
			if slab.Duration == label {
				idx = i
				break
			}
		}
		if idx < 0 {
			return table, fmt.Errorf("%w: %q", ErrUnknownSlabLabel, slab.Duration)
		}
		rate, err := decodeMoney(slab.Rate, currency)
		if err != nil {
			return table, fmt.Errorf("slabs.%s: %w", slab.Duration, err)
		}
		table.Rates[idx] = rate
	}
	return table, nil
}

func decodeClock(s string) (availability.Clock, error) {
	if s == "" {
		return availability.Clock{}, nil
	}
	return availability.ParseClock(s)
}

func decodeMoney(s, currency string) (money.Money, error) {
	if s == "" {
		return money.Money{}, nil
	}
	return money.Parse(s, currency)
}
