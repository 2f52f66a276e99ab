package money

import (
	"errors"
	"testing"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name     string
		amount   string
		currency string
		wantErr  error
		want     string
	}{
		{name: "plain integer", amount: "500", currency: "INR", want: "500 INR"},
		{name: "trailing zeros kept", amount: "149.50", currency: "INR", want: "149.50 INR"},
		{name: "whitespace trimmed", amount: " 12.25 ", currency: "inr", want: "12.25 INR"},
		{name: "bad decimal", amount: "12,5", currency: "INR", wantErr: ErrInvalidAmount},
		{name: "empty amount", amount: "", currency: "INR", wantErr: ErrInvalidAmount},
		{name: "bad currency", amount: "10", currency: "RUPEES", wantErr: ErrInvalidCurrency},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, err := Parse(tt.amount, tt.currency)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("Parse(%q) error = %v, want %v", tt.amount, err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("Parse(%q) unexpected error: %v", tt.amount, err)
			}
			if got := m.String(); got != tt.want {
				t.Fatalf("Parse(%q) = %s, want %s", tt.amount, got, tt.want)
			}
		})
	}
}

func TestArithmeticExactness(t *testing.T) {
	// 0.1 + 0.2 must be exactly 0.3, the whole reason rates are decimals.
	a := Must("0.1", "INR")
	b := Must("0.2", "INR")
	sum, err := a.Add(b)
	if err != nil {
		t.Fatalf("Add: %v", err)
	}
	if !sum.Equal(Must("0.3", "INR")) {
		t.Fatalf("0.1 + 0.2 = %s, want 0.3 INR", sum)
	}

	rate := Must("150", "INR")
	if got := rate.MulInt(2); !got.Equal(Must("300", "INR")) {
		t.Fatalf("150 * 2 = %s, want 300 INR", got)
	}
}

func TestCurrencyMismatch(t *testing.T) {
	a := Must("10", "INR")
	b := Must("10", "USD")
	if _, err := a.Add(b); !errors.Is(err, ErrCurrencyMismatch) {
		t.Fatalf("Add mismatched currencies error = %v, want ErrCurrencyMismatch", err)
	}
	if _, err := a.Sub(b); !errors.Is(err, ErrCurrencyMismatch) {
		t.Fatalf("Sub mismatched currencies error = %v, want ErrCurrencyMismatch", err)
	}
}

func TestZeroAndNeg(t *testing.T) {
	z := Zero("inr")
	if !z.IsZero() || z.Currency != "INR" {
		t.Fatalf("Zero() = %s", z)
	}
	n := Must("5", "INR").Neg()
	if !n.IsNegative() {
		t.Fatalf("Neg() = %s, want negative", n)
	}
}
