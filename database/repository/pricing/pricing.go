package pricingRepo

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"cleanhaven/database"
	"cleanhaven/models"
	"cleanhaven/utils"

	"github.com/go-redis/redis/v8"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

const (
	pricingCacheKey = "pricing:active"
	pricingCacheTTL = 10 * time.Minute
)

// PricingRepository serves the active rate table. It is reference data:
// read once per page load and reused for every recomputation.
type PricingRepository interface {
	GetActiveConfig(ctx context.Context) (models.PricingConfig, error)
}

// MongoPricingRepo reads the active pricing document from MongoDB with a
// Redis cache in front. Every failure degrades to the built-in default
// table; pricing must never block the booking flow.
type MongoPricingRepo struct {
	coll  *mongo.Collection
	cache *redis.Client
}

func NewMongoPricingRepo(cache *redis.Client) *MongoPricingRepo {
	return &MongoPricingRepo{
		coll:  database.MongoClient.Database(database.DatabaseName).Collection("pricing_configs"),
		cache: cache,
	}
}

func (repo *MongoPricingRepo) GetActiveConfig(ctx context.Context) (models.PricingConfig, error) {
	logger := utils.GetLogger()

	if repo.cache != nil {
		cached, err := repo.cache.Get(ctx, pricingCacheKey).Result()
		if err == nil {
			var cfg models.PricingConfig
			if jsonErr := json.Unmarshal([]byte(cached), &cfg); jsonErr == nil {
				return cfg, nil
			}
			// Corrupt cache entry: fall through to Mongo and overwrite.
		} else if !errors.Is(err, redis.Nil) {
			logger.Warn("pricing cache read failed", zap.Error(err))
		}
	}

	ctxWithTimeout, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var cfg models.PricingConfig
	err := repo.coll.FindOne(ctxWithTimeout, bson.M{"active": true}).Decode(&cfg)
	if errors.Is(err, mongo.ErrNoDocuments) {
		cfg = models.DefaultPricingConfig()
	} else if err != nil {
		logger.Warn("pricing config fetch failed, using defaults", zap.Error(err))
		return models.DefaultPricingConfig(), nil
	}

	if repo.cache != nil {
		if data, jsonErr := json.Marshal(cfg); jsonErr == nil {
			if err := repo.cache.Set(ctx, pricingCacheKey, data, pricingCacheTTL).Err(); err != nil {
				logger.Warn("pricing cache write failed", zap.Error(err))
			}
		}
	}
	return cfg, nil
}

// StaticPricingRepo always serves a fixed config. Used in tests and as a
// bootstrap fallback before Mongo is reachable.
type StaticPricingRepo struct {
	Config models.PricingConfig
}

func (repo *StaticPricingRepo) GetActiveConfig(ctx context.Context) (models.PricingConfig, error) {
	return repo.Config, nil
}
