package mongo

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"partnerportal/internal/app/dto"
	"partnerportal/internal/domain/pricing"
)

// PricingRepository stores each rate card as one document in the same
// field layout the portal's API speaks. Saves replace the whole document;
// there is no per-field merging and the last writer wins.
type PricingRepository struct {
	col *mongo.Collection
}

func NewPricingRepository(db *mongo.Database) *PricingRepository {
	return &PricingRepository{col: db.Collection("pricing_configs")}
}

type pricingRecord struct {
	ID                  string `bson:"_id"`
	State               string `bson:"state"`
	dto.PricingDocument `bson:",inline"`
}

func pricingID(vendorID pricing.VendorID, carID pricing.CarID) string {
	return string(vendorID) + ":" + string(carID)
}

func (r *PricingRepository) Get(ctx context.Context, vendorID pricing.VendorID, carID pricing.CarID) (*pricing.Configuration, error) {
	id := pricingID(vendorID, carID)
	var rec pricingRecord
	err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&rec)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, pricing.ErrConfigNotFound
		}
		return nil, storeErr("get pricing", id, err)
	}
	cfg, err := rec.DecodePricing()
	if err != nil {
		return nil, err
	}
	if rec.State != "" {
		cfg.State = pricing.State(rec.State)
	}
	return cfg, nil
}

func (r *PricingRepository) Save(ctx context.Context, cfg *pricing.Configuration) error {
	rec := pricingRecord{
		ID:              pricingID(cfg.Vendor, cfg.Car),
		State:           string(cfg.State),
		PricingDocument: *dto.EncodePricing(cfg),
	}
	opts := options.Replace().SetUpsert(true)
	_, err := r.col.ReplaceOne(ctx, bson.M{"_id": rec.ID}, rec, opts)
	return storeErr("save pricing", rec.ID, err)
}

func (r *PricingRepository) Delete(ctx context.Context, vendorID pricing.VendorID, carID pricing.CarID) error {
	id := pricingID(vendorID, carID)
	_, err := r.col.DeleteOne(ctx, bson.M{"_id": id})
	return storeErr("delete pricing", id, err)
}
