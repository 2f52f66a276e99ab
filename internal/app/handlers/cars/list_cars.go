package cars

import (
	"context"
	"log/slog"

	"partnerportal/internal/app/dto"
	"partnerportal/internal/domain/listings"
	"partnerportal/internal/domain/pricing"
)

const listCarsKey = "cars.list"

// ListCarsQuery returns every car the vendor has uploaded, drafts included.
type ListCarsQuery struct {
	VendorID string
}

func (q ListCarsQuery) Key() string { return listCarsKey }

type ListCarsHandler struct {
	Logger *slog.Logger
	Cars   listings.Repository
}

func (h *ListCarsHandler) Handle(ctx context.Context, q ListCarsQuery) ([]dto.CarView, error) {
	cars, err := h.Cars.ListByVendor(ctx, pricing.VendorID(q.VendorID))
	if err != nil {
		return nil, err
	}
	views := make([]dto.CarView, 0, len(cars))
	for _, car := range cars {
		views = append(views, dto.NewCarView(car))
	}
	return views, nil
}
