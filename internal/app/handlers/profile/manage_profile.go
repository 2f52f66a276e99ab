package profile

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"partnerportal/internal/app/dto"
	"partnerportal/internal/domain/pricing"
	"partnerportal/internal/domain/vendor"
	"partnerportal/internal/infra/places"
	"partnerportal/internal/infra/storage/s3"
)

const (
	createProfileKey = "profile.create"
	uploadLogoKey    = "profile.logo.upload"
	suggestCitiesKey = "profile.cities.suggest"
)

var ErrNoSuggester = errors.New("profile: city suggester unavailable")

// CreateProfileCommand registers a partner account.
type CreateProfileCommand struct {
	VendorID  string
	Username  string
	Email     string
	BrandName string
	Phone     string
	GSTNumber string
	Bank      vendor.BankDetails
	Cities    []string
}

func (c CreateProfileCommand) Key() string { return createProfileKey }

type CreateProfileHandler struct {
	Logger   *slog.Logger
	Profiles vendor.Repository
	Now      func() time.Time
}

func (h *CreateProfileHandler) Handle(ctx context.Context, cmd CreateProfileCommand) (dto.ProfileView, error) {
	var zero dto.ProfileView
	now := time.Now()
	if h.Now != nil {
		now = h.Now()
	}
	p, err := vendor.NewProfile(vendor.CreateProfileParams{
		ID:        pricing.VendorID(cmd.VendorID),
		Username:  cmd.Username,
		Email:     cmd.Email,
		BrandName: cmd.BrandName,
		Phone:     cmd.Phone,
		GSTNumber: cmd.GSTNumber,
		Bank:      cmd.Bank,
		Cities:    cmd.Cities,
		Now:       now,
	})
	if err != nil {
		return zero, err
	}
	if err := h.Profiles.Save(ctx, p); err != nil {
		return zero, err
	}
	if h.Logger != nil {
		h.Logger.Info("profile created", "vendor_id", cmd.VendorID, "brand", p.BrandName)
	}
	return dto.NewProfileView(p), nil
}

// UploadLogoCommand replaces the brand logo shown beside every listing.
type UploadLogoCommand struct {
	VendorID    string
	FileName    string
	ContentType string
	Reader      io.Reader
}

func (c UploadLogoCommand) Key() string { return uploadLogoKey }

type UploadLogoHandler struct {
	Logger   *slog.Logger
	Profiles vendor.Repository
	Uploader s3.Uploader
	Now      func() time.Time
}

func (h *UploadLogoHandler) Handle(ctx context.Context, cmd UploadLogoCommand) (dto.ProfileView, error) {
	var zero dto.ProfileView
	if h.Uploader == nil {
		return zero, errors.New("profile: logo uploader unavailable")
	}
	if cmd.Reader == nil {
		return zero, errors.New("profile: logo content is required")
	}

	p, err := h.Profiles.ByID(ctx, pricing.VendorID(cmd.VendorID))
	if err != nil {
		return zero, err
	}

	ext := ""
	if dot := strings.LastIndex(cmd.FileName, "."); dot >= 0 {
		ext = strings.ToLower(cmd.FileName[dot:])
	}
	key := fmt.Sprintf("logos/%s/logo%s", cmd.VendorID, ext)
	url, err := h.Uploader.Upload(ctx, key, cmd.Reader, cmd.ContentType)
	if err != nil {
		return zero, fmt.Errorf("profile: upload logo: %w", err)
	}

	now := time.Now()
	if h.Now != nil {
		now = h.Now()
	}
	p.AttachLogo(url, now)
	if err := h.Profiles.Save(ctx, p); err != nil {
		return zero, err
	}
	if h.Logger != nil {
		h.Logger.Info("logo uploaded", "vendor_id", cmd.VendorID, "url", url)
	}
	return dto.NewProfileView(p), nil
}

// SuggestCitiesQuery completes a partial city name for the profile and
// upload forms.
type SuggestCitiesQuery struct {
	Input string
}

func (q SuggestCitiesQuery) Key() string { return suggestCitiesKey }

type SuggestCitiesHandler struct {
	Suggester places.CitySuggester
}

func (h *SuggestCitiesHandler) Handle(ctx context.Context, q SuggestCitiesQuery) ([]string, error) {
	if h.Suggester == nil {
		return nil, ErrNoSuggester
	}
	return h.Suggester.SuggestCities(ctx, q.Input)
}
