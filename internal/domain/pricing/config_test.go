package pricing

import (
	"testing"

	"partnerportal/internal/domain/availability"
)

func validConfig(t *testing.T) *Configuration {
	t.Helper()
	cfg, err := NewConfiguration("vendor-1", "car-1", "INR")
	if err != nil {
		t.Fatalf("NewConfiguration: %v", err)
	}
	cfg.Hourly = unlimitedTable("500", "100")
	return cfg
}

func TestNewConfiguration(t *testing.T) {
	if _, err := NewConfiguration("", "car-1", "INR"); err != ErrVendorRequired {
		t.Fatalf("missing vendor error = %v, want ErrVendorRequired", err)
	}
	if _, err := NewConfiguration("vendor-1", "", "INR"); err != ErrCarRequired {
		t.Fatalf("missing car error = %v, want ErrCarRequired", err)
	}
	cfg, err := NewConfiguration("vendor-1", "car-1", "")
	if err != nil {
		t.Fatalf("NewConfiguration: %v", err)
	}
	if cfg.State != StateDraft {
		t.Fatalf("new configuration state = %s, want DRAFT", cfg.State)
	}
	if cfg.Currency != "INR" {
		t.Fatalf("default currency = %s, want INR", cfg.Currency)
	}
	if cfg.MinBookingDuration != 1 || cfg.Unit != UnitHours {
		t.Fatalf("default minimum = %d %s, want 1 hours", cfg.MinBookingDuration, cfg.Unit)
	}
}

func TestValidateTransitionsState(t *testing.T) {
	cfg := validConfig(t)
	if res := cfg.Validate(); !res.OK() {
		t.Fatalf("Validate failed: %s", res)
	}
	if cfg.State != StateValid {
		t.Fatalf("state after valid pass = %s, want VALID", cfg.State)
	}

	cfg.MinBookingDuration = 0
	if res := cfg.Validate(); res.OK() {
		t.Fatal("Validate passed with zero minimum duration")
	}
	if cfg.State != StateInvalid {
		t.Fatalf("state after failed pass = %s, want INVALID", cfg.State)
	}
}

func TestValidateSkipsUnavailablePeriods(t *testing.T) {
	cfg := validConfig(t)
	// Weekly is off, so its unset mode must not fail validation.
	if res := cfg.Validate(); !res.OK() {
		t.Fatalf("Validate failed: %s", res)
	}

	cfg.Weekly.Available = true
	res := cfg.Validate()
	if _, ok := res.ErrorFor("weeklyRental.limit"); !ok {
		t.Fatalf("enabled weekly table with unset mode not reported: %s", res)
	}
}

func TestValidateSlabCoversUnsetHourly(t *testing.T) {
	cfg := validConfig(t)
	cfg.Hourly = TieredRateTable{Period: PeriodHourly, Available: true}

	if res := cfg.Validate(); res.OK() {
		t.Fatal("unset hourly with no slabs should fail")
	}

	cfg.Slabs = enabledSlabs()
	if res := cfg.Validate(); !res.OK() {
		t.Fatalf("unset hourly with slabs enabled should pass: %s", res)
	}
}

func TestMinBookingHours(t *testing.T) {
	cfg := validConfig(t)
	cfg.MinBookingDuration = 4
	if got := cfg.MinBookingHours(); got != 4 {
		t.Fatalf("MinBookingHours(4 hours) = %d, want 4", got)
	}
	cfg.Unit = UnitDays
	if got := cfg.MinBookingHours(); got != 96 {
		t.Fatalf("MinBookingHours(4 days) = %d, want 96", got)
	}
}

func TestCloneIsDeep(t *testing.T) {
	cfg := validConfig(t)
	cfg.Hourly = limitedTable([]RatePackage{{Cap: dec("4"), Rate: inr("800")}}, "10", "150")
	window, err := availability.NewWindow(availability.MustClock("22:00"), availability.MustClock("06:00"), []string{"2026-03-11"})
	if err != nil {
		t.Fatalf("NewWindow: %v", err)
	}
	cfg.Window = window

	clone := cfg.Clone()
	clone.Hourly.Limited.Packages[0].Rate = inr("999")
	if err := clone.Window.AddBlackoutDate("2026-04-01"); err != nil {
		t.Fatalf("AddBlackoutDate: %v", err)
	}

	if cfg.Hourly.Limited.Packages[0].Rate.Equal(inr("999")) {
		t.Fatal("mutating the clone's packages leaked into the original")
	}
	if len(cfg.Window.BlackoutDates()) != 1 {
		t.Fatal("mutating the clone's blackout dates leaked into the original")
	}
}
