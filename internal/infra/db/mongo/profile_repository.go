package mongo

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"partnerportal/internal/domain/availability"
	"partnerportal/internal/domain/pricing"
	"partnerportal/internal/domain/vendor"
)

type ProfileRepository struct {
	col *mongo.Collection
}

func NewProfileRepository(db *mongo.Database) *ProfileRepository {
	return &ProfileRepository{col: db.Collection("vendor_profiles")}
}

type profileDocument struct {
	ID              string    `bson:"_id"`
	Username        string    `bson:"username,omitempty"`
	Email           string    `bson:"email"`
	BrandName       string    `bson:"brand_name"`
	Phone           string    `bson:"phone,omitempty"`
	GSTNumber       string    `bson:"gst_number,omitempty"`
	BankAccountName string    `bson:"bank_account_name,omitempty"`
	BankAccount     string    `bson:"bank_account,omitempty"`
	IFSCCode        string    `bson:"ifsc_code,omitempty"`
	Cities          []string  `bson:"cities"`
	LogoURL         string    `bson:"logo_url,omitempty"`
	BlackoutStart   string    `bson:"blackout_start"`
	BlackoutEnd     string    `bson:"blackout_end"`
	Visibility      bool      `bson:"visibility"`
	CreatedAt       time.Time `bson:"created_at"`
	UpdatedAt       time.Time `bson:"updated_at"`
}

func newProfileDocument(p *vendor.Profile) profileDocument {
	return profileDocument{
		ID:              string(p.ID),
		Username:        p.Username,
		Email:           p.Email,
		BrandName:       p.BrandName,
		Phone:           p.Phone,
		GSTNumber:       p.GSTNumber,
		BankAccountName: p.Bank.AccountName,
		BankAccount:     p.Bank.Account,
		IFSCCode:        p.Bank.IFSC,
		Cities:          p.Cities,
		LogoURL:         p.LogoURL,
		BlackoutStart:   p.DefaultBlackout.DailyStart.String(),
		BlackoutEnd:     p.DefaultBlackout.DailyEnd.String(),
		Visibility:      p.Visibility,
		CreatedAt:       p.CreatedAt,
		UpdatedAt:       p.UpdatedAt,
	}
}

func (d profileDocument) toAggregate() (*vendor.Profile, error) {
	start, err := availability.ParseClock(d.BlackoutStart)
	if err != nil {
		return nil, err
	}
	end, err := availability.ParseClock(d.BlackoutEnd)
	if err != nil {
		return nil, err
	}
	window, err := availability.NewWindow(start, end, nil)
	if err != nil {
		return nil, err
	}
	return &vendor.Profile{
		ID:        pricing.VendorID(d.ID),
		Username:  d.Username,
		Email:     d.Email,
		BrandName: d.BrandName,
		Phone:     d.Phone,
		GSTNumber: d.GSTNumber,
		Bank: vendor.BankDetails{
			AccountName: d.BankAccountName,
			Account:     d.BankAccount,
			IFSC:        d.IFSCCode,
		},
		Cities:          d.Cities,
		LogoURL:         d.LogoURL,
		DefaultBlackout: window,
		Visibility:      d.Visibility,
		CreatedAt:       d.CreatedAt.UTC(),
		UpdatedAt:       d.UpdatedAt.UTC(),
	}, nil
}

func (r *ProfileRepository) ByID(ctx context.Context, id pricing.VendorID) (*vendor.Profile, error) {
	var doc profileDocument
	if err := r.col.FindOne(ctx, bson.M{"_id": string(id)}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, vendor.ErrProfileNotFound
		}
		return nil, storeErr("get profile", string(id), err)
	}
	return doc.toAggregate()
}

func (r *ProfileRepository) Save(ctx context.Context, p *vendor.Profile) error {
	doc := newProfileDocument(p)
	opts := options.Replace().SetUpsert(true)
	_, err := r.col.ReplaceOne(ctx, bson.M{"_id": doc.ID}, doc, opts)
	return storeErr("save profile", doc.ID, err)
}
