package customerRepo

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

// ErrNotFound is returned when no customer matches the query.
var ErrNotFound = errors.New("customer not found")

// CustomerRepository defines the interface for customer account access.
type CustomerRepository interface {
	Create(ctx context.Context, customer *models.Customer) error
	GetByID(ctx context.Context, id string) (*models.Customer, error)
	GetByEmail(ctx context.Context, email string) (*models.Customer, error)
	Update(ctx context.Context, customer *models.Customer) error
}

// MongoCustomerRepo implements CustomerRepository backed by MongoDB.
type MongoCustomerRepo struct {
	coll *mongo.Collection
}

func NewMongoCustomerRepo() *MongoCustomerRepo {
	return &MongoCustomerRepo{
		coll: database.MongoClient.Database(database.DatabaseName).Collection("customers"),
	}
}

func (repo *MongoCustomerRepo) Create(ctx context.Context, customer *models.Customer) error {
	ctxWithTimeout, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if _, err := repo.coll.InsertOne(ctxWithTimeout, customer); err != nil {
		return fmt.Errorf("error creating customer: %w", err)
	}
	return nil
}

func (repo *MongoCustomerRepo) GetByID(ctx context.Context, id string) (*models.Customer, error) {
	return repo.findOne(ctx, bson.M{"id": id})
}

func (repo *MongoCustomerRepo) GetByEmail(ctx context.Context, email string) (*models.Customer, error) {
	return repo.findOne(ctx, bson.M{"email": email})
}

func (repo *MongoCustomerRepo) findOne(ctx context.Context, filter bson.M) (*models.Customer, error) {
	ctxWithTimeout, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var customer models.Customer
	err := repo.coll.FindOne(ctxWithTimeout, filter).Decode(&customer)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("error fetching customer: %w", err)
	}
	return &customer, nil
}

func (repo *MongoCustomerRepo) Update(ctx context.Context, customer *models.Customer) error {
	ctxWithTimeout, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{"id": customer.ID}
	update := bson.M{"$set": customer}
	if _, err := repo.coll.UpdateOne(ctxWithTimeout, filter, update); err != nil {
		return fmt.Errorf("error updating customer %s: %w", customer.ID, err)
	}
	return nil
}
