package listings

import (
	"context"
	"errors"
	"strings"
	"time"

	"partnerportal/internal/domain/pricing"
)

var (
	ErrNameRequired    = errors.New("listings: car name is required")
	ErrCityRequired    = errors.New("listings: at least one city is required")
	ErrSeatsRange      = errors.New("listings: seat count must be between 2 and 12")
	ErrYearRange       = errors.New("listings: registration year is out of range")
	ErrInvalidState    = errors.New("listings: invalid state transition")
	ErrPricingNotValid = errors.New("listings: pricing configuration must be valid before publishing")
	ErrCarNotFound     = errors.New("listings: car not found")
	ErrDepositNegative = errors.New("listings: security deposit cannot be negative")
	ErrUnknownFuelType = errors.New("listings: unknown fuel type")
	ErrUnknownCarType  = errors.New("listings: unknown car type")
	ErrUnknownGearbox  = errors.New("listings: unknown transmission type")
)

// CarState tracks a listing through review.
type CarState string

const (
	CarDraft     CarState = "DRAFT"
	CarActive    CarState = "ACTIVE"
	CarSuspended CarState = "SUSPENDED"
)

// Option lists mirror what the partner upload form offers.
var (
	FuelTypes         = []string{"Petrol", "Diesel", "CNG", "Electric"}
	CarTypes          = []string{"Hatchback", "Sedan", "SUV", "MUV", "Luxury"}
	TransmissionTypes = []string{"Manual", "Automatic"}
)

// Car is one vehicle a vendor rents out. Its rate card lives in a separate
// pricing configuration document sharing the (vendor, car) key.
type Car struct {
	ID                 pricing.CarID
	Vendor             pricing.VendorID
	Name               string
	Images             []string
	Cities             []string
	PickupLocations    map[string]string
	SecurityDeposit    string
	YearOfRegistration int
	FuelType           string
	CarType            string
	TransmissionType   string
	Seats              int
	State              CarState
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

// Repository stores car documents whole, keyed by (vendor, car).
type Repository interface {
	ByID(ctx context.Context, vendor pricing.VendorID, id pricing.CarID) (*Car, error)
	ListByVendor(ctx context.Context, vendor pricing.VendorID) ([]*Car, error)
	Save(ctx context.Context, car *Car) error
	Delete(ctx context.Context, vendor pricing.VendorID, id pricing.CarID) error
}

// CreateCarParams carries the upload form's fields.
type CreateCarParams struct {
	ID                 pricing.CarID
	Vendor             pricing.VendorID
	Name               string
	Cities             []string
	PickupLocations    map[string]string
	SecurityDeposit    string
	YearOfRegistration int
	FuelType           string
	CarType            string
	TransmissionType   string
	Seats              int
	Images             []string
	Now                time.Time
}

// NewCar validates the form fields and starts the listing in draft.
func NewCar(params CreateCarParams) (*Car, error) {
	if strings.TrimSpace(string(params.ID)) == "" {
		return nil, errors.New("listings: id is required")
	}
	if strings.TrimSpace(string(params.Vendor)) == "" {
		return nil, errors.New("listings: vendor is required")
	}
	if strings.TrimSpace(params.Name) == "" {
		return nil, ErrNameRequired
	}
	if len(params.Cities) == 0 {
		return nil, ErrCityRequired
	}
	if params.Seats < 2 || params.Seats > 12 {
		return nil, ErrSeatsRange
	}
	year := params.YearOfRegistration
	if year != 0 && (year < 1990 || year > params.Now.Year()+1) {
		return nil, ErrYearRange
	}
	if strings.HasPrefix(strings.TrimSpace(params.SecurityDeposit), "-") {
		return nil, ErrDepositNegative
	}
	if !contains(FuelTypes, params.FuelType) {
		return nil, ErrUnknownFuelType
	}
	if !contains(CarTypes, params.CarType) {
		return nil, ErrUnknownCarType
	}
	if !contains(TransmissionTypes, params.TransmissionType) {
		return nil, ErrUnknownGearbox
	}

	locations := make(map[string]string, len(params.PickupLocations))
	for city, loc := range params.PickupLocations {
		locations[city] = strings.TrimSpace(loc)
	}

	now := params.Now.UTC()
	return &Car{
		ID:                 params.ID,
		Vendor:             params.Vendor,
		Name:               strings.TrimSpace(params.Name),
		Images:             append([]string(nil), params.Images...),
		Cities:             append([]string(nil), params.Cities...),
		PickupLocations:    locations,
		SecurityDeposit:    strings.TrimSpace(params.SecurityDeposit),
		YearOfRegistration: year,
		FuelType:           params.FuelType,
		CarType:            params.CarType,
		TransmissionType:   params.TransmissionType,
		Seats:              params.Seats,
		State:              CarDraft,
		CreatedAt:          now,
		UpdatedAt:          now,
	}, nil
}

// Publish makes the listing bookable. It requires a pricing configuration
// that passed validation.
func (c *Car) Publish(cfg *pricing.Configuration, now time.Time) error {
	if c.State == CarActive {
		return nil
	}
	if cfg == nil || cfg.State != pricing.StateValid {
		return ErrPricingNotValid
	}
	c.State = CarActive
	c.UpdatedAt = now.UTC()
	return nil
}

// Suspend takes an active listing off the catalog; used by the admin
// review flow.
func (c *Car) Suspend(now time.Time) error {
	if c.State != CarActive {
		return ErrInvalidState
	}
	c.State = CarSuspended
	c.UpdatedAt = now.UTC()
	return nil
}

// Clone deep-copies the car so stores can hand out independent snapshots.
func (c *Car) Clone() *Car {
	clone := *c
	clone.Images = append([]string(nil), c.Images...)
	clone.Cities = append([]string(nil), c.Cities...)
	if c.PickupLocations != nil {
		clone.PickupLocations = make(map[string]string, len(c.PickupLocations))
		for city, loc := range c.PickupLocations {
			clone.PickupLocations[city] = loc
		}
	}
	return &clone
}

// AttachImages appends uploaded image URLs.
func (c *Car) AttachImages(urls []string, now time.Time) {
	c.Images = append(c.Images, urls...)
	c.UpdatedAt = now.UTC()
}

func contains(options []string, v string) bool {
	for _, o := range options {
		if o == v {
			return true
		}
	}
	return false
}
