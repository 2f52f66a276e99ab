package quotes

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"partnerportal/internal/app/dto"
	"partnerportal/internal/domain/pricing"
	"partnerportal/internal/domain/shared/timespan"
)

const getQuoteKey = "quotes.get"

var (
	ErrNoCalculator = errors.New("quotes: calculator unavailable")
	ErrNoStore      = errors.New("quotes: configuration store unavailable")
)

// GetQuoteQuery asks what one booking of a car would cost.
type GetQuoteQuery struct {
	VendorID   string
	CarID      string
	Period     string
	Start      time.Time
	End        time.Time
	DistanceKm string
	Doorstep   bool
	// Timezone is the IANA zone of the listing's city. Empty means UTC.
	Timezone string
}

func (q GetQuoteQuery) Key() string { return getQuoteKey }

// GetQuoteHandler loads the car's stored rate card and resolves the
// request against it. Rejections come back as *pricing.Rejection so the
// caller can render the typed code instead of a bare failure.
type GetQuoteHandler struct {
	Logger     *slog.Logger
	Configs    pricing.Repository
	Calculator pricing.Calculator
}

func (h *GetQuoteHandler) Handle(ctx context.Context, q GetQuoteQuery) (dto.QuoteView, error) {
	var zero dto.QuoteView
	if h.Configs == nil {
		return zero, ErrNoStore
	}
	if h.Calculator == nil {
		return zero, ErrNoCalculator
	}

	req, err := buildRequest(q)
	if err != nil {
		return zero, err
	}

	cfg, err := h.Configs.Get(ctx, pricing.VendorID(q.VendorID), pricing.CarID(q.CarID))
	if err != nil {
		return zero, err
	}

	quote, err := h.Calculator.Quote(ctx, cfg, req)
	if err != nil {
		if rej, ok := pricing.AsRejection(err); ok && h.Logger != nil {
			h.Logger.Info("quote rejected",
				"vendor_id", q.VendorID,
				"car_id", q.CarID,
				"code", rej.Code,
			)
		}
		return zero, err
	}

	if h.Logger != nil {
		h.Logger.Info("quote resolved",
			"vendor_id", q.VendorID,
			"car_id", q.CarID,
			"period", quote.Period,
			"total", quote.Total.String(),
		)
	}
	return dto.NewQuoteView(quote), nil
}

func buildRequest(q GetQuoteQuery) (pricing.QuoteRequest, error) {
	var zero pricing.QuoteRequest
	if strings.TrimSpace(q.VendorID) == "" {
		return zero, errors.New("quotes: vendor id is required")
	}
	if strings.TrimSpace(q.CarID) == "" {
		return zero, errors.New("quotes: car id is required")
	}

	period, err := parsePeriod(q.Period)
	if err != nil {
		return zero, err
	}

	span, err := timespan.New(q.Start, q.End)
	if err != nil {
		return zero, err
	}

	distance := decimal.Zero
	if s := strings.TrimSpace(q.DistanceKm); s != "" {
		distance, err = decimal.NewFromString(s)
		if err != nil {
			return zero, fmt.Errorf("quotes: bad distance %q: %w", s, err)
		}
	}

	loc := time.UTC
	if q.Timezone != "" {
		loc, err = time.LoadLocation(q.Timezone)
		if err != nil {
			return zero, fmt.Errorf("quotes: bad timezone %q: %w", q.Timezone, err)
		}
	}

	delivery := pricing.DeliverySelfPickup
	if q.Doorstep {
		delivery = pricing.DeliveryDoorstep
	}

	return pricing.QuoteRequest{
		Period:     period,
		Span:       span,
		DistanceKm: distance,
		Delivery:   delivery,
		Location:   loc,
	}, nil
}

func parsePeriod(s string) (pricing.Period, error) {
	switch pricing.Period(strings.ToLower(strings.TrimSpace(s))) {
	case pricing.PeriodHourly, "":
		return pricing.PeriodHourly, nil
	case pricing.PeriodWeekly:
		return pricing.PeriodWeekly, nil
	case pricing.PeriodMonthly:
		return pricing.PeriodMonthly, nil
	default:
		return "", fmt.Errorf("quotes: unknown rental period %q", s)
	}
}
