package memory

import (
	"context"
	"errors"
	"testing"
	"time"

	"partnerportal/internal/domain/listings"
	"partnerportal/internal/domain/pricing"
	"partnerportal/internal/domain/vendor"
)

func TestConfigRepositoryRoundTrip(t *testing.T) {
	ctx := context.Background()
	repo := NewConfigRepository()

	if _, err := repo.Get(ctx, "v1", "c1"); !errors.Is(err, pricing.ErrConfigNotFound) {
		t.Fatalf("err = %v, want %v", err, pricing.ErrConfigNotFound)
	}

	cfg, err := pricing.NewConfiguration("v1", "c1", "INR")
	if err != nil {
		t.Fatalf("NewConfiguration: %v", err)
	}
	if err := repo.Save(ctx, cfg); err != nil {
		t.Fatalf("Save: %v", err)
	}

	got, err := repo.Get(ctx, "v1", "c1")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.Vendor != "v1" || got.Car != "c1" {
		t.Fatalf("stored key mismatch: %s / %s", got.Vendor, got.Car)
	}

	// Mutating the returned copy must not leak into the store.
	got.Currency = "USD"
	again, err := repo.Get(ctx, "v1", "c1")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if again.Currency != "INR" {
		t.Fatalf("currency = %q, copy leaked into store", again.Currency)
	}

	if err := repo.Delete(ctx, "v1", "c1"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := repo.Get(ctx, "v1", "c1"); !errors.Is(err, pricing.ErrConfigNotFound) {
		t.Fatalf("err after delete = %v", err)
	}
}

func TestConfigRepositoryLastWriterWins(t *testing.T) {
	ctx := context.Background()
	repo := NewConfigRepository()

	first, _ := pricing.NewConfiguration("v1", "c1", "INR")
	first.MinBookingDuration = 4
	if err := repo.Save(ctx, first); err != nil {
		t.Fatalf("Save: %v", err)
	}

	second, _ := pricing.NewConfiguration("v1", "c1", "INR")
	second.MinBookingDuration = 12
	if err := repo.Save(ctx, second); err != nil {
		t.Fatalf("Save: %v", err)
	}

	got, err := repo.Get(ctx, "v1", "c1")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.MinBookingDuration != 12 {
		t.Fatalf("MinBookingDuration = %d, want the later write", got.MinBookingDuration)
	}
}

func TestCarRepository(t *testing.T) {
	ctx := context.Background()
	repo := NewCarRepository()
	now := time.Date(2025, time.May, 1, 10, 0, 0, 0, time.UTC)

	for _, name := range []string{"Swift", "Baleno", "Creta"} {
		car, err := listings.NewCar(listings.CreateCarParams{
			ID:               pricing.CarID("car-" + name),
			Vendor:           "v1",
			Name:             name,
			Cities:           []string{"Bangalore"},
			FuelType:         "Petrol",
			CarType:          "Hatchback",
			TransmissionType: "Manual",
			Seats:            5,
			Now:              now,
		})
		if err != nil {
			t.Fatalf("NewCar: %v", err)
		}
		if err := repo.Save(ctx, car); err != nil {
			t.Fatalf("Save: %v", err)
		}
	}

	cars, err := repo.ListByVendor(ctx, "v1")
	if err != nil {
		t.Fatalf("ListByVendor: %v", err)
	}
	if len(cars) != 3 {
		t.Fatalf("len = %d, want 3", len(cars))
	}
	if cars[0].Name != "Baleno" || cars[2].Name != "Swift" {
		t.Fatalf("not sorted by name: %s, %s, %s", cars[0].Name, cars[1].Name, cars[2].Name)
	}

	other, err := repo.ListByVendor(ctx, "v2")
	if err != nil {
		t.Fatalf("ListByVendor: %v", err)
	}
	if len(other) != 0 {
		t.Fatalf("vendor isolation broken: %d cars", len(other))
	}

	if _, err := repo.ByID(ctx, "v1", "missing"); !errors.Is(err, listings.ErrCarNotFound) {
		t.Fatalf("err = %v, want %v", err, listings.ErrCarNotFound)
	}
}

func TestCarRepositoryReturnsCopies(t *testing.T) {
	ctx := context.Background()
	repo := NewCarRepository()
	now := time.Date(2025, time.May, 1, 10, 0, 0, 0, time.UTC)

	car, err := listings.NewCar(listings.CreateCarParams{
		ID:               "car-1",
		Vendor:           "v1",
		Name:             "Swift",
		Cities:           []string{"Bangalore"},
		PickupLocations:  map[string]string{"Bangalore": "Indiranagar metro"},
		FuelType:         "Petrol",
		CarType:          "Hatchback",
		TransmissionType: "Manual",
		Seats:            5,
		Images:           []string{"https://cdn.example.com/car-1/front.jpg"},
		Now:              now,
	})
	if err != nil {
		t.Fatalf("NewCar: %v", err)
	}
	if err := repo.Save(ctx, car); err != nil {
		t.Fatalf("Save: %v", err)
	}

	// Mutating the caller's aggregate after Save must not reach the store.
	car.PickupLocations["Bangalore"] = "changed"
	car.Images[0] = "changed"
	car.Cities[0] = "changed"

	got, err := repo.ByID(ctx, "v1", "car-1")
	if err != nil {
		t.Fatalf("ByID: %v", err)
	}
	if got.PickupLocations["Bangalore"] != "Indiranagar metro" {
		t.Fatalf("pickup location leaked: %q", got.PickupLocations["Bangalore"])
	}
	if got.Images[0] != "https://cdn.example.com/car-1/front.jpg" {
		t.Fatalf("image leaked: %q", got.Images[0])
	}
	if got.Cities[0] != "Bangalore" {
		t.Fatalf("city leaked: %q", got.Cities[0])
	}

	// And neither must mutating the copy handed back by ByID.
	got.PickupLocations["Bangalore"] = "changed again"
	again, err := repo.ByID(ctx, "v1", "car-1")
	if err != nil {
		t.Fatalf("ByID: %v", err)
	}
	if again.PickupLocations["Bangalore"] != "Indiranagar metro" {
		t.Fatalf("read copy leaked: %q", again.PickupLocations["Bangalore"])
	}
}

func TestProfileRepositoryReturnsCopies(t *testing.T) {
	ctx := context.Background()
	repo := NewProfileRepository()
	now := time.Date(2025, time.May, 1, 10, 0, 0, 0, time.UTC)

	p, err := vendor.NewProfile(vendor.CreateProfileParams{
		ID:        "v1",
		Email:     "asha@wheelsup.example",
		BrandName: "WheelsUp Rentals",
		Cities:    []string{"Bangalore"},
		Now:       now,
	})
	if err != nil {
		t.Fatalf("NewProfile: %v", err)
	}
	if err := repo.Save(ctx, p); err != nil {
		t.Fatalf("Save: %v", err)
	}

	p.Cities[0] = "changed"
	if err := p.DefaultBlackout.AddBlackoutDate("2025-05-02"); err != nil {
		t.Fatalf("AddBlackoutDate: %v", err)
	}

	got, err := repo.ByID(ctx, "v1")
	if err != nil {
		t.Fatalf("ByID: %v", err)
	}
	if got.Cities[0] != "Bangalore" {
		t.Fatalf("city leaked: %q", got.Cities[0])
	}
	if len(got.DefaultBlackout.BlackoutDates()) != 0 {
		t.Fatalf("blackout dates leaked: %v", got.DefaultBlackout.BlackoutDates())
	}
}
