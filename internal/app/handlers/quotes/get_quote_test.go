package quotes

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"partnerportal/internal/domain/pricing"
	"partnerportal/internal/domain/shared/money"
	"partnerportal/internal/infra/storage/memory"
)

var bookingStart = time.Date(2025, time.July, 10, 10, 0, 0, 0, time.UTC)

func seedConfig(t *testing.T, repo *memory.ConfigRepository) {
	t.Helper()
	cfg, err := pricing.NewConfiguration("vendor-1", "car-1", "INR")
	if err != nil {
		t.Fatalf("NewConfiguration: %v", err)
	}
	cfg.Hourly.Mode = pricing.LimitUnlimited
	cfg.Hourly.Unlimited = &pricing.UnlimitedRates{
		FlatRate:      money.Must("500", "INR"),
		ExtraHourRate: money.Must("150", "INR"),
	}
	cfg.Delivery = pricing.DeliveryChargeTable{
		Enabled: true,
		Fees: [pricing.DeliveryBandCount]money.Money{
			money.Must("200", "INR"),
			money.Must("300", "INR"),
			money.Must("400", "INR"),
		},
	}
	if res := cfg.Validate(); !res.OK() {
		t.Fatalf("fixture should validate: %v", res.Errors)
	}
	if err := repo.Save(context.Background(), cfg); err != nil {
		t.Fatalf("Save: %v", err)
	}
}

func newHandler(t *testing.T) (*GetQuoteHandler, *memory.ConfigRepository) {
	t.Helper()
	repo := memory.NewConfigRepository()
	seedConfig(t, repo)
	return &GetQuoteHandler{Configs: repo, Calculator: pricing.Resolver{}}, repo
}

func TestGetQuote(t *testing.T) {
	h, _ := newHandler(t)
	view, err := h.Handle(context.Background(), GetQuoteQuery{
		VendorID: "vendor-1",
		CarID:    "car-1",
		Period:   "hourly",
		Start:    bookingStart,
		End:      bookingStart.Add(3 * time.Hour),
	})
	if err != nil {
		t.Fatalf("Handle: %v", err)
	}
	if view.Total != "1500" {
		t.Fatalf("total = %q, want 1500", view.Total)
	}
	if view.Source != string(pricing.SourceTiered) {
		t.Fatalf("source = %q", view.Source)
	}
}

func TestGetQuoteWithDoorstepDelivery(t *testing.T) {
	h, _ := newHandler(t)
	view, err := h.Handle(context.Background(), GetQuoteQuery{
		VendorID:   "vendor-1",
		CarID:      "car-1",
		Start:      bookingStart,
		End:        bookingStart.Add(3 * time.Hour),
		DistanceKm: "30",
		Doorstep:   true,
	})
	if err != nil {
		t.Fatalf("Handle: %v", err)
	}
	if view.DeliveryCharge != "400" {
		t.Fatalf("delivery = %q, want the 25-50 band fee", view.DeliveryCharge)
	}
	if view.Total != "1900" {
		t.Fatalf("total = %q, want 1900", view.Total)
	}
}

func TestGetQuoteRejectionPassesThrough(t *testing.T) {
	h, _ := newHandler(t)
	_, err := h.Handle(context.Background(), GetQuoteQuery{
		VendorID:   "vendor-1",
		CarID:      "car-1",
		Start:      bookingStart,
		End:        bookingStart.Add(3 * time.Hour),
		DistanceKm: "60",
		Doorstep:   true,
	})
	rej, ok := pricing.AsRejection(err)
	if !ok {
		t.Fatalf("err = %v, want a rejection", err)
	}
	if rej.Code != pricing.RejectOutOfRange {
		t.Fatalf("code = %q, want %q", rej.Code, pricing.RejectOutOfRange)
	}
}

func TestGetQuoteUnknownCar(t *testing.T) {
	h, _ := newHandler(t)
	_, err := h.Handle(context.Background(), GetQuoteQuery{
		VendorID: "vendor-1",
		CarID:    "other",
		Start:    bookingStart,
		End:      bookingStart.Add(3 * time.Hour),
	})
	if !errors.Is(err, pricing.ErrConfigNotFound) {
		t.Fatalf("err = %v, want %v", err, pricing.ErrConfigNotFound)
	}
}

func TestGetQuoteInputValidation(t *testing.T) {
	h, _ := newHandler(t)
	cases := []struct {
		name  string
		query GetQuoteQuery
	}{
		{
			name: "missing vendor",
			query: GetQuoteQuery{
				CarID: "car-1",
				Start: bookingStart,
				End:   bookingStart.Add(time.Hour),
			},
		},
		{
			name: "unknown period",
			query: GetQuoteQuery{
				VendorID: "vendor-1",
				CarID:    "car-1",
				Period:   "fortnightly",
				Start:    bookingStart,
				End:      bookingStart.Add(time.Hour),
			},
		},
		{
			name: "end before start",
			query: GetQuoteQuery{
				VendorID: "vendor-1",
				CarID:    "car-1",
				Start:    bookingStart,
				End:      bookingStart.Add(-time.Hour),
			},
		},
		{
			name: "garbled distance",
			query: GetQuoteQuery{
				VendorID:   "vendor-1",
				CarID:      "car-1",
				Start:      bookingStart,
				End:        bookingStart.Add(time.Hour),
				DistanceKm: "ten",
			},
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := h.Handle(context.Background(), tc.query); err == nil {
				t.Fatal("expected an error")
			}
		})
	}
}

func TestBuildRequestDefaults(t *testing.T) {
	req, err := buildRequest(GetQuoteQuery{
		VendorID: "vendor-1",
		CarID:    "car-1",
		Start:    bookingStart,
		End:      bookingStart.Add(time.Hour),
	})
	if err != nil {
		t.Fatalf("buildRequest: %v", err)
	}
	if req.Period != pricing.PeriodHourly {
		t.Fatalf("period = %q, want hourly default", req.Period)
	}
	if req.Delivery != pricing.DeliverySelfPickup {
		t.Fatalf("delivery = %q, want self pickup default", req.Delivery)
	}
	if !req.DistanceKm.Equal(decimal.Zero) {
		t.Fatalf("distance = %s, want zero", req.DistanceKm)
	}
	if req.Location != time.UTC {
		t.Fatalf("location = %v, want UTC", req.Location)
	}
}
