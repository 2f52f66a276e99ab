package mongo

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"partnerportal/internal/domain/listings"
	"partnerportal/internal/domain/pricing"
)

type CarRepository struct {
	col *mongo.Collection
}

func NewCarRepository(db *mongo.Database) *CarRepository {
	return &CarRepository{col: db.Collection("cars")}
}

type carDocument struct {
	ID                 string            `bson:"_id"`
	VendorID           string            `bson:"vendor_id"`
	Name               string            `bson:"name"`
	Images             []string          `bson:"images"`
	Cities             []string          `bson:"cities"`
	PickupLocations    map[string]string `bson:"pickup_locations,omitempty"`
	SecurityDeposit    string            `bson:"security_deposit,omitempty"`
	YearOfRegistration int               `bson:"year_of_registration,omitempty"`
	FuelType           string            `bson:"fuel_type"`
	CarType            string            `bson:"car_type"`
	TransmissionType   string            `bson:"transmission_type"`
	Seats              int               `bson:"no_of_seats"`
	State              string            `bson:"state"`
	CreatedAt          time.Time         `bson:"created_at"`
	UpdatedAt          time.Time         `bson:"updated_at"`
}

func newCarDocument(c *listings.Car) carDocument {
	return carDocument{
		ID:                 string(c.ID),
		VendorID:           string(c.Vendor),
		Name:               c.Name,
		Images:             c.Images,
		Cities:             c.Cities,
		PickupLocations:    c.PickupLocations,
		SecurityDeposit:    c.SecurityDeposit,
		YearOfRegistration: c.YearOfRegistration,
		FuelType:           c.FuelType,
		CarType:            c.CarType,
		TransmissionType:   c.TransmissionType,
		Seats:              c.Seats,
		State:              string(c.State),
		CreatedAt:          c.CreatedAt,
		UpdatedAt:          c.UpdatedAt,
	}
}

func (d carDocument) toAggregate() *listings.Car {
	return &listings.Car{
		ID:                 pricing.CarID(d.ID),
		Vendor:             pricing.VendorID(d.VendorID),
		Name:               d.Name,
		Images:             d.Images,
		Cities:             d.Cities,
		PickupLocations:    d.PickupLocations,
		SecurityDeposit:    d.SecurityDeposit,
		YearOfRegistration: d.YearOfRegistration,
		FuelType:           d.FuelType,
		CarType:            d.CarType,
		TransmissionType:   d.TransmissionType,
		Seats:              d.Seats,
		State:              listings.CarState(d.State),
		CreatedAt:          d.CreatedAt.UTC(),
		UpdatedAt:          d.UpdatedAt.UTC(),
	}
}

func (r *CarRepository) ByID(ctx context.Context, vendorID pricing.VendorID, id pricing.CarID) (*listings.Car, error) {
	var doc carDocument
	filter := bson.M{"_id": string(id), "vendor_id": string(vendorID)}
	if err := r.col.FindOne(ctx, filter).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, listings.ErrCarNotFound
		}
		return nil, storeErr("get car", string(id), err)
	}
	return doc.toAggregate(), nil
}

func (r *CarRepository) ListByVendor(ctx context.Context, vendorID pricing.VendorID) ([]*listings.Car, error) {
	opts := options.Find().SetSort(bson.D{{Key: "name", Value: 1}})
	cursor, err := r.col.Find(ctx, bson.M{"vendor_id": string(vendorID)}, opts)
	if err != nil {
		return nil, storeErr("list cars", string(vendorID), err)
	}
	defer cursor.Close(ctx)

	var cars []*listings.Car
	for cursor.Next(ctx) {
		var doc carDocument
		if err := cursor.Decode(&doc); err != nil {
			return nil, storeErr("list cars", string(vendorID), err)
		}
		cars = append(cars, doc.toAggregate())
	}
	return cars, storeErr("list cars", string(vendorID), cursor.Err())
}

func (r *CarRepository) Save(ctx context.Context, car *listings.Car) error {
	doc := newCarDocument(car)
	opts := options.Replace().SetUpsert(true)
	_, err := r.col.ReplaceOne(ctx, bson.M{"_id": doc.ID}, doc, opts)
	return storeErr("save car", doc.ID, err)
}

func (r *CarRepository) Delete(ctx context.Context, vendorID pricing.VendorID, id pricing.CarID) error {
	_, err := r.col.DeleteOne(ctx, bson.M{"_id": string(id), "vendor_id": string(vendorID)})
	return storeErr("delete car", string(id), err)
}
