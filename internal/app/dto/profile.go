package dto

import (
	"time"

	"partnerportal/internal/domain/vendor"
)

// ProfileView is the partner account as shown on the profile page. Bank
// details are masked down to the last four digits.
type ProfileView struct {
	ID          string   `json:"id"`
	Username    string   `json:"username,omitempty"`
	Email       string   `json:"email"`
	BrandName   string   `json:"brandName"`
	Phone       string   `json:"phone,omitempty"`
	GSTNumber   string   `json:"gstNumber,omitempty"`
	BankAccount string   `json:"bankAccount,omitempty"`
	IFSCCode    string   `json:"ifscCode,omitempty"`
	Cities      []string `json:"cities"`
	LogoURL     string   `json:"logoUrl,omitempty"`
	Visibility  bool     `json:"visibility"`

	UpdatedAt time.Time `json:"updatedAt"`
}

// NewProfileView renders a profile.
func NewProfileView(p *vendor.Profile) ProfileView {
	return ProfileView{
		ID:          string(p.ID),
		Username:    p.Username,
		Email:       p.Email,
		BrandName:   p.BrandName,
		Phone:       p.Phone,
		GSTNumber:   p.GSTNumber,
		BankAccount: maskAccount(p.Bank.Account),
		IFSCCode:    p.Bank.IFSC,
		Cities:      append([]string(nil), p.Cities...),
		LogoURL:     p.LogoURL,
		Visibility:  p.Visibility,
		UpdatedAt:   p.UpdatedAt,
	}
}

func maskAccount(account string) string {
	if len(account) <= 4 {
		return account
	}
	masked := make([]byte, len(account)-4)
	for i := range masked {
		masked[i] = 'X'
	}
	return string(masked) + account[len(account)-4:]
}
