package dto

import (
	"time"

	"partnerportal/internal/domain/listings"
)

// CarView is a listing as shown on the partner dashboard.
type CarView struct {
	ID                 string            `json:"id"`
	VendorID           string            `json:"vendorId"`
	Name               string            `json:"name"`
	Images             []string          `json:"images"`
	Cities             []string          `json:"cities"`
	PickupLocations    map[string]string `json:"pickupLocations,omitempty"`
	SecurityDeposit    string            `json:"securityDeposit,omitempty"`
	YearOfRegistration int               `json:"yearOfRegistration,omitempty"`
	FuelType           string            `json:"fuelType"`
	CarType            string            `json:"carType"`
	TransmissionType   string            `json:"transmissionType"`
	Seats              int               `json:"noOfSeats"`
	Status             string            `json:"status"`
	UpdatedAt          time.Time         `json:"updatedAt"`
}

// NewCarView renders a car aggregate.
func NewCarView(c *listings.Car) CarView {
	return CarView{
		ID:                 string(c.ID),
		VendorID:           string(c.Vendor),
		Name:               c.Name,
		Images:             append([]string(nil), c.Images...),
		Cities:             append([]string(nil), c.Cities...),
		PickupLocations:    c.PickupLocations,
		SecurityDeposit:    c.SecurityDeposit,
		YearOfRegistration: c.YearOfRegistration,
		FuelType:           c.FuelType,
		CarType:            c.CarType,
		TransmissionType:   c.TransmissionType,
		Seats:              c.Seats,
		Status:             string(c.State),
		UpdatedAt:          c.UpdatedAt,
	}
}
