package cars

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"partnerportal/internal/app/dto"
	"partnerportal/internal/domain/listings"
	"partnerportal/internal/domain/pricing"
	"partnerportal/internal/domain/vendor"
	"partnerportal/internal/infra/storage/s3"
)

const uploadCarKey = "cars.upload"

var (
	ErrNoUploader = errors.New("cars: image uploader unavailable")
	ErrNotOwned   = errors.New("cars: car belongs to another vendor")
)

// ImageUpload is one photo from the upload form.
type ImageUpload struct {
	FileName    string
	ContentType string
	Reader      io.Reader
}

// UploadCarCommand creates a listing from the partner's upload form. The
// car starts in draft together with an empty pricing configuration the
// vendor completes afterwards.
type UploadCarCommand struct {
	VendorID           string
	Name               string
	Cities             []string
	PickupLocations    map[string]string
	SecurityDeposit    string
	YearOfRegistration int
	FuelType           string
	CarType            string
	TransmissionType   string
	Seats              int
	Images             []ImageUpload
}

func (c UploadCarCommand) Key() string { return uploadCarKey }

type UploadCarHandler struct {
	Logger   *slog.Logger
	Cars     listings.Repository
	Profiles vendor.Repository
	Configs  pricing.Repository
	Uploader s3.Uploader
	Now      func() time.Time
}

func (h *UploadCarHandler) Handle(ctx context.Context, cmd UploadCarCommand) (dto.CarView, error) {
	var zero dto.CarView
	if h.Uploader == nil && len(cmd.Images) > 0 {
		return zero, ErrNoUploader
	}

	profile, err := h.Profiles.ByID(ctx, pricing.VendorID(cmd.VendorID))
	if err != nil {
		return zero, err
	}

	cities := cmd.Cities
	if len(cities) == 0 {
		cities = profile.Cities
	}

	now := h.now()
	carID := pricing.CarID(uuid.NewString())

	urls, err := h.uploadImages(ctx, cmd.VendorID, string(carID), cmd.Images)
	if err != nil {
		return zero, err
	}

	car, err := listings.NewCar(listings.CreateCarParams{
		ID:                 carID,
		Vendor:             profile.ID,
		Name:               cmd.Name,
		Cities:             cities,
		PickupLocations:    cmd.PickupLocations,
		SecurityDeposit:    cmd.SecurityDeposit,
		YearOfRegistration: cmd.YearOfRegistration,
		FuelType:           cmd.FuelType,
		CarType:            cmd.CarType,
		TransmissionType:   cmd.TransmissionType,
		Seats:              cmd.Seats,
		Images:             urls,
		Now:                now,
	})
	if err != nil {
		return zero, err
	}

	if err := h.Cars.Save(ctx, car); err != nil {
		return zero, err
	}

	// Seed the rate card draft so the pricing form opens pre-filled with
	// the vendor's default nightly blackout.
	cfg, err := pricing.NewConfiguration(profile.ID, car.ID, "INR")
	if err != nil {
		return zero, err
	}
	cfg.Window = profile.DefaultBlackout
	cfg.UpdatedAt = now
	if err := h.Configs.Save(ctx, cfg); err != nil {
		return zero, err
	}

	if h.Logger != nil {
		h.Logger.Info("car uploaded",
			"vendor_id", cmd.VendorID,
			"car_id", car.ID,
			"images", len(urls),
		)
	}
	return dto.NewCarView(car), nil
}

func (h *UploadCarHandler) uploadImages(ctx context.Context, vendorID, carID string, images []ImageUpload) ([]string, error) {
	urls := make([]string, 0, len(images))
	for i, img := range images {
		if img.Reader == nil {
			return nil, fmt.Errorf("cars: image %d has no content", i)
		}
		key := imageKey(vendorID, carID, i, img.FileName)
		url, err := h.Uploader.Upload(ctx, key, img.Reader, img.ContentType)
		if err != nil {
			return nil, fmt.Errorf("cars: upload image %d: %w", i, err)
		}
		urls = append(urls, url)
	}
	return urls, nil
}

func imageKey(vendorID, carID string, index int, fileName string) string {
	ext := ""
	if dot := strings.LastIndex(fileName, "."); dot >= 0 {
		ext = strings.ToLower(fileName[dot:])
	}
	return fmt.Sprintf("cars/%s/%s/%d%s", vendorID, carID, index, ext)
}

func (h *UploadCarHandler) now() time.Time {
	if h.Now != nil {
		return h.Now()
	}
	return time.Now()
}
