package discountRepo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"cleanhaven/database"
	"cleanhaven/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// ErrNotFound is returned when no discount code matches.
var ErrNotFound = errors.New("discount code not found")

// DiscountRepository defines the interface for discount code lookup.
type DiscountRepository interface {
	GetByCode(ctx context.Context, code string) (*models.DiscountCode, error)
	IncrementUsage(ctx context.Context, id string) error
}

// MongoDiscountRepo implements DiscountRepository backed by MongoDB.
type MongoDiscountRepo struct {
	coll *mongo.Collection
}

func NewMongoDiscountRepo() *MongoDiscountRepo {
	return &MongoDiscountRepo{
		coll: database.MongoClient.Database(database.DatabaseName).Collection("discount_codes"),
	}
}

// GetByCode retrieves a discount code record. The code is matched exactly;
// callers normalize before lookup.
func (repo *MongoDiscountRepo) GetByCode(ctx context.Context, code string) (*models.DiscountCode, error) {
	ctxWithTimeout, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var dc models.DiscountCode
	err := repo.coll.FindOne(ctxWithTimeout, bson.M{"code": code}).Decode(&dc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("error fetching discount code: %w", err)
	}
	return &dc, nil
}

// IncrementUsage bumps the usage counter after a successful booking.
func (repo *MongoDiscountRepo) IncrementUsage(ctx context.Context, id string) error {
	ctxWithTimeout, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{"id": id}
	update := bson.M{"$inc": bson.M{"usage_count": 1}}
	if _, err := repo.coll.UpdateOne(ctxWithTimeout, filter, update); err != nil {
		return fmt.Errorf("error incrementing discount usage %s: %w", id, err)
	}
	return nil
}
