package cars

import (
	"context"
	"log/slog"
	"time"

	"partnerportal/internal/app/dto"
	"partnerportal/internal/domain/listings"
	"partnerportal/internal/domain/pricing"
)

const publishCarKey = "cars.publish"

// PublishCarCommand puts a draft car on the catalog. Publishing is gated
// on the car's pricing configuration having passed validation.
type PublishCarCommand struct {
	VendorID string
	CarID    string
}

func (c PublishCarCommand) Key() string { return publishCarKey }

type PublishCarHandler struct {
	Logger  *slog.Logger
	Cars    listings.Repository
	Configs pricing.Repository
	Now     func() time.Time
}

func (h *PublishCarHandler) Handle(ctx context.Context, cmd PublishCarCommand) (dto.CarView, error) {
	var zero dto.CarView
	vendorID := pricing.VendorID(cmd.VendorID)
	carID := pricing.CarID(cmd.CarID)

	car, err := h.Cars.ByID(ctx, vendorID, carID)
	if err != nil {
		return zero, err
	}
	if car.Vendor != vendorID {
		return zero, ErrNotOwned
	}

	cfg, err := h.Configs.Get(ctx, vendorID, carID)
	if err != nil {
		return zero, err
	}

	now := time.Now()
	if h.Now != nil {
		now = h.Now()
	}
	if err := car.Publish(cfg, now); err != nil {
		return zero, err
	}
	if err := h.Cars.Save(ctx, car); err != nil {
		return zero, err
	}

	if h.Logger != nil {
		h.Logger.Info("car published", "vendor_id", cmd.VendorID, "car_id", cmd.CarID)
	}
	return dto.NewCarView(car), nil
}
