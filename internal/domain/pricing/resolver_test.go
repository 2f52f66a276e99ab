package pricing

import (
	"context"
	"testing"
	"time"

	"partnerportal/internal/domain/availability"
	"partnerportal/internal/domain/shared/timespan"
)

func span(t *testing.T, start time.Time, d time.Duration) timespan.Span {
	t.Helper()
	s, err := timespan.New(start, start.Add(d))
	if err != nil {
		t.Fatalf("timespan.New: %v", err)
	}
	return s
}

func hourlyRequest(t *testing.T, d time.Duration) QuoteRequest {
	t.Helper()
	start := time.Date(2026, 3, 10, 10, 0, 0, 0, time.UTC)
	return QuoteRequest{
		Period:   PeriodHourly,
		Span:     span(t, start, d),
		Delivery: DeliverySelfPickup,
	}
}

func TestQuoteHourlyUnlimited(t *testing.T) {
	cfg := validConfig(t) // hourly unlimited: flat 500, extra hour 100
	var r Resolver

	q, err := r.Quote(context.Background(), cfg, hourlyRequest(t, 3*time.Hour))
	if err != nil {
		t.Fatalf("Quote: %v", err)
	}
	if !q.BaseCharge.Equal(inr("1500")) {
		t.Fatalf("base = %s, want 1500 INR", q.BaseCharge)
	}
	if !q.Total.Equal(inr("1500")) || !q.DeliveryCharge.IsZero() {
		t.Fatalf("total = %s, delivery = %s", q.Total, q.DeliveryCharge)
	}
	if q.Source != SourceTiered || q.Units != 3 {
		t.Fatalf("source = %s, units = %d", q.Source, q.Units)
	}
}

func TestQuoteHourlyLimitedOverage(t *testing.T) {
	cfg := validConfig(t)
	cfg.Hourly = limitedTable([]RatePackage{{Cap: dec("4"), Rate: inr("800")}}, "10", "150")
	var r Resolver

	q, err := r.Quote(context.Background(), cfg, hourlyRequest(t, 6*time.Hour))
	if err != nil {
		t.Fatalf("Quote: %v", err)
	}
	if !q.BaseCharge.Equal(inr("1100")) {
		t.Fatalf("base = %s, want 1100 INR", q.BaseCharge)
	}
}

func TestQuoteRejectsInvalidConfig(t *testing.T) {
	cfg := validConfig(t)
	cfg.MinBookingDuration = 0
	var r Resolver

	_, err := r.Quote(context.Background(), cfg, hourlyRequest(t, 3*time.Hour))
	rej, ok := AsRejection(err)
	if !ok || rej.Code != RejectInvalidConfig {
		t.Fatalf("Quote error = %v, want %s", err, RejectInvalidConfig)
	}
}

func TestQuoteDoesNotMutateState(t *testing.T) {
	cfg := validConfig(t)
	var r Resolver
	if _, err := r.Quote(context.Background(), cfg, hourlyRequest(t, 3*time.Hour)); err != nil {
		t.Fatalf("Quote: %v", err)
	}
	if cfg.State != StateDraft {
		t.Fatalf("Quote changed state to %s; quoting must be read-only", cfg.State)
	}
}

func TestQuoteBelowMinimumDuration(t *testing.T) {
	cfg := validConfig(t)
	cfg.MinBookingDuration = 4
	var r Resolver

	_, err := r.Quote(context.Background(), cfg, hourlyRequest(t, 2*time.Hour))
	rej, ok := AsRejection(err)
	if !ok || rej.Code != RejectBelowMinimum {
		t.Fatalf("Quote error = %v, want %s", err, RejectBelowMinimum)
	}

	if _, err := r.Quote(context.Background(), cfg, hourlyRequest(t, 4*time.Hour)); err != nil {
		t.Fatalf("four hour booking should pass: %v", err)
	}
}

func TestQuoteBlackoutRejection(t *testing.T) {
	cfg := validConfig(t)
	window, err := availability.NewWindow(availability.MustClock("22:00"), availability.MustClock("06:00"), []string{"2026-03-12"})
	if err != nil {
		t.Fatalf("NewWindow: %v", err)
	}
	cfg.Window = window
	var r Resolver

	// Daytime booking clears the nightly blackout.
	if _, err := r.Quote(context.Background(), cfg, hourlyRequest(t, 8*time.Hour)); err != nil {
		t.Fatalf("daytime booking rejected: %v", err)
	}

	// A booking running into 22:00 hits the daily window.
	req := hourlyRequest(t, 13*time.Hour) // 10:00 - 23:00
	_, err = r.Quote(context.Background(), cfg, req)
	rej, ok := AsRejection(err)
	if !ok || rej.Code != RejectUnavailable {
		t.Fatalf("Quote error = %v, want %s", err, RejectUnavailable)
	}

	// An early-morning booking sits wholly inside the tail the nightly
	// window carries past midnight.
	start := time.Date(2026, 3, 10, 2, 0, 0, 0, time.UTC)
	req = QuoteRequest{Period: PeriodHourly, Span: span(t, start, 2*time.Hour), Delivery: DeliverySelfPickup}
	_, err = r.Quote(context.Background(), cfg, req)
	if rej, ok := AsRejection(err); !ok || rej.Code != RejectUnavailable {
		t.Fatalf("Quote error = %v, want %s", err, RejectUnavailable)
	}

	// A multi-day booking touching the blackout date is rejected even at
	// daytime hours.
	start = time.Date(2026, 3, 11, 10, 0, 0, 0, time.UTC)
	req = QuoteRequest{Period: PeriodHourly, Span: span(t, start, 30*time.Hour), Delivery: DeliverySelfPickup}
	_, err = r.Quote(context.Background(), cfg, req)
	if rej, ok := AsRejection(err); !ok || rej.Code != RejectUnavailable {
		t.Fatalf("Quote error = %v, want %s", err, RejectUnavailable)
	}
}

func TestQuoteDeliveryCharge(t *testing.T) {
	cfg := validConfig(t)
	cfg.Delivery = enabledDelivery()
	var r Resolver

	req := hourlyRequest(t, 3*time.Hour)
	req.Delivery = DeliveryDoorstep
	req.DistanceKm = dec("30")

	q, err := r.Quote(context.Background(), cfg, req)
	if err != nil {
		t.Fatalf("Quote: %v", err)
	}
	if !q.DeliveryCharge.Equal(inr("400")) {
		t.Fatalf("delivery = %s, want 400 INR (25-50 band)", q.DeliveryCharge)
	}
	if !q.Total.Equal(inr("1900")) {
		t.Fatalf("total = %s, want 1900 INR", q.Total)
	}

	req.DistanceKm = dec("60")
	_, err = r.Quote(context.Background(), cfg, req)
	if rej, ok := AsRejection(err); !ok || rej.Code != RejectOutOfRange {
		t.Fatalf("Quote error = %v, want %s", err, RejectOutOfRange)
	}

	// Self pickup never charges delivery, whatever the distance.
	req.Delivery = DeliverySelfPickup
	q, err = r.Quote(context.Background(), cfg, req)
	if err != nil {
		t.Fatalf("Quote: %v", err)
	}
	if !q.DeliveryCharge.IsZero() {
		t.Fatalf("self pickup charged delivery: %s", q.DeliveryCharge)
	}
}

func TestQuoteTieredWinsOverSlabs(t *testing.T) {
	cfg := validConfig(t)
	cfg.Slabs = enabledSlabs()
	var r Resolver

	q, err := r.Quote(context.Background(), cfg, hourlyRequest(t, 3*time.Hour))
	if err != nil {
		t.Fatalf("Quote: %v", err)
	}
	if q.Source != SourceTiered {
		t.Fatalf("source = %s, want tiered when both are configured", q.Source)
	}
}

func TestQuoteSlabFallback(t *testing.T) {
	cfg := validConfig(t)
	cfg.Hourly = TieredRateTable{Period: PeriodHourly, Available: true}
	cfg.Slabs = enabledSlabs()
	var r Resolver

	q, err := r.Quote(context.Background(), cfg, hourlyRequest(t, 6*time.Hour))
	if err != nil {
		t.Fatalf("Quote: %v", err)
	}
	if q.Source != SourceSlab {
		t.Fatalf("source = %s, want slab fallback", q.Source)
	}
	// 6 hours in the 0-12 band at 120/hr.
	if !q.BaseCharge.Equal(inr("720")) {
		t.Fatalf("base = %s, want 720 INR", q.BaseCharge)
	}
}

func TestQuoteWeeklyPeriod(t *testing.T) {
	cfg := validConfig(t)
	cfg.Weekly = TieredRateTable{
		Period:    PeriodWeekly,
		Available: true,
		Mode:      LimitUnlimited,
		Unlimited: &UnlimitedRates{FlatRate: inr("7000"), ExtraHourRate: inr("50")},
	}
	var r Resolver

	start := time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC)
	req := QuoteRequest{
		Period:   PeriodWeekly,
		Span:     span(t, start, 8*24*time.Hour), // one week + one day
		Delivery: DeliverySelfPickup,
	}
	q, err := r.Quote(context.Background(), cfg, req)
	if err != nil {
		t.Fatalf("Quote: %v", err)
	}
	// One whole week plus 24 remainder hours at 50/hr.
	if !q.BaseCharge.Equal(inr("8200")) {
		t.Fatalf("base = %s, want 8200 INR", q.BaseCharge)
	}
	if q.Units != 1 {
		t.Fatalf("units = %d, want 1", q.Units)
	}

	// Weekly not offered on a fresh config.
	fresh := validConfig(t)
	_, err = r.Quote(context.Background(), fresh, req)
	if rej, ok := AsRejection(err); !ok || rej.Code != RejectPeriodNotSold {
		t.Fatalf("Quote error = %v, want %s", err, RejectPeriodNotSold)
	}
}

func TestQuoteIdempotent(t *testing.T) {
	cfg := validConfig(t)
	cfg.Delivery = enabledDelivery()
	var r Resolver

	req := hourlyRequest(t, 5*time.Hour)
	req.Delivery = DeliveryDoorstep
	req.DistanceKm = dec("8")

	first, err := r.Quote(context.Background(), cfg, req)
	if err != nil {
		t.Fatalf("Quote: %v", err)
	}
	second, err := r.Quote(context.Background(), cfg, req)
	if err != nil {
		t.Fatalf("Quote: %v", err)
	}
	if !first.Total.Equal(second.Total) || !first.BaseCharge.Equal(second.BaseCharge) || !first.DeliveryCharge.Equal(second.DeliveryCharge) {
		t.Fatalf("quotes differ: %v vs %v", first, second)
	}
}
