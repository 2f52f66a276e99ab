package dto

import "partnerportal/internal/domain/pricing"

// QuoteView is the quote as returned to the booking caller, with all
// monetary values rendered as decimal strings.
type QuoteView struct {
	BaseCharge     string `json:"baseCharge"`
	DeliveryCharge string `json:"deliveryCharge"`
	Total          string `json:"total"`
	Currency       string `json:"currency"`
	Period         string `json:"period"`
	Source         string `json:"source"`
	Units          int64  `json:"units"`
	ExtraHours     string `json:"extraHours,omitempty"`
}

// NewQuoteView renders a resolved quote.
func NewQuoteView(q pricing.Quote) QuoteView {
	view := QuoteView{
		BaseCharge:     q.BaseCharge.Amount.String(),
		DeliveryCharge: q.DeliveryCharge.Amount.String(),
		Total:          q.Total.Amount.String(),
		Currency:       q.Currency,
		Period:         string(q.Period),
		Source:         string(q.Source),
		Units:          q.Units,
	}
	if q.ExtraHours.IsPositive() {
		view.ExtraHours = q.ExtraHours.String()
	}
	return view
}

// RejectionView is the typed refusal rendered for the caller.
type RejectionView struct {
	Code   string `json:"code"`
	Detail string `json:"detail,omitempty"`
}

// NewRejectionView renders a rejection.
func NewRejectionView(r *pricing.Rejection) RejectionView {
	return RejectionView{Code: string(r.Code), Detail: r.Detail}
}
