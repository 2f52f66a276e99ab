package memory

import (
	"context"
	"sort"
	"sync"

	"partnerportal/internal/domain/listings"
	"partnerportal/internal/domain/pricing"
	"partnerportal/internal/domain/vendor"
)

type configKey struct {
	vendor pricing.VendorID
	car    pricing.CarID
}

// ConfigRepository keeps pricing configurations in memory. Saves replace
// the stored document whole, matching the persistent implementation.
type ConfigRepository struct {
	mu    sync.RWMutex
	items map[configKey]*pricing.Configuration
}

// NewConfigRepository builds an empty repository.
func NewConfigRepository() *ConfigRepository {
	return &ConfigRepository{items: make(map[configKey]*pricing.Configuration)}
}

// Get returns a deep copy so callers can edit without racing each other.
func (r *ConfigRepository) Get(ctx context.Context, vendorID pricing.VendorID, carID pricing.CarID) (*pricing.Configuration, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	cfg, ok := r.items[configKey{vendor: vendorID, car: carID}]
	if !ok {
		return nil, pricing.ErrConfigNotFound
	}
	return cfg.Clone(), nil
}

// Save overwrites whatever was stored before; the last writer wins.
func (r *ConfigRepository) Save(ctx context.Context, cfg *pricing.Configuration) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.items[configKey{vendor: cfg.Vendor, car: cfg.Car}] = cfg.Clone()
	return nil
}

// Delete removes a configuration; deleting a missing one is a no-op.
func (r *ConfigRepository) Delete(ctx context.Context, vendorID pricing.VendorID, carID pricing.CarID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.items, configKey{vendor: vendorID, car: carID})
	return nil
}

// CarRepository keeps car listings in memory.
type CarRepository struct {
	mu    sync.RWMutex
	items map[configKey]*listings.Car
}

// NewCarRepository builds an empty repository.
func NewCarRepository() *CarRepository {
	return &CarRepository{items: make(map[configKey]*listings.Car)}
}

// ByID returns a deep copy or listings.ErrCarNotFound.
func (r *CarRepository) ByID(ctx context.Context, vendorID pricing.VendorID, id pricing.CarID) (*listings.Car, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	car, ok := r.items[configKey{vendor: vendorID, car: id}]
	if !ok {
		return nil, listings.ErrCarNotFound
	}
	return car.Clone(), nil
}

// ListByVendor returns the vendor's cars sorted by name.
func (r *CarRepository) ListByVendor(ctx context.Context, vendorID pricing.VendorID) ([]*listings.Car, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var cars []*listings.Car
	for key, car := range r.items {
		if key.vendor != vendorID {
			continue
		}
		cars = append(cars, car.Clone())
	}
	sort.Slice(cars, func(i, j int) bool { return cars[i].Name < cars[j].Name })
	return cars, nil
}

// Save stores or replaces a car.
func (r *CarRepository) Save(ctx context.Context, car *listings.Car) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.items[configKey{vendor: car.Vendor, car: car.ID}] = car.Clone()
	return nil
}

// Delete removes a car; deleting a missing one is a no-op.
func (r *CarRepository) Delete(ctx context.Context, vendorID pricing.VendorID, id pricing.CarID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.items, configKey{vendor: vendorID, car: id})
	return nil
}

// ProfileRepository keeps vendor profiles in memory.
type ProfileRepository struct {
	mu    sync.RWMutex
	items map[pricing.VendorID]*vendor.Profile
}

// NewProfileRepository builds an empty repository.
func NewProfileRepository() *ProfileRepository {
	return &ProfileRepository{items: make(map[pricing.VendorID]*vendor.Profile)}
}

// ByID returns a deep copy or vendor.ErrProfileNotFound.
func (r *ProfileRepository) ByID(ctx context.Context, id pricing.VendorID) (*vendor.Profile, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.items[id]
	if !ok {
		return nil, vendor.ErrProfileNotFound
	}
	return p.Clone(), nil
}

// Save stores or replaces a profile.
func (r *ProfileRepository) Save(ctx context.Context, p *vendor.Profile) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.items[p.ID] = p.Clone()
	return nil
}
