package bookingRepo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"cleanhaven/database"
	"cleanhaven/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ErrNotFound is returned when no booking matches the query.
var ErrNotFound = errors.New("booking not found")

// BookingRepository defines the interface for booking data access.
type BookingRepository interface {
	Create(ctx context.Context, booking *models.Booking) error
	GetByReference(ctx context.Context, reference string) (*models.Booking, error)
	GetByPaymentReference(ctx context.Context, paymentRef string) (*models.Booking, error)
	ListByEmail(ctx context.Context, email string) ([]models.Booking, error)
	ListByCustomerID(ctx context.Context, customerID string) ([]models.Booking, error)
	UpdateStatus(ctx context.Context, reference, status string) error
}

// MongoBookingRepo implements BookingRepository backed by MongoDB.
type MongoBookingRepo struct {
	coll *mongo.Collection
}

func NewMongoBookingRepo() *MongoBookingRepo {
	return &MongoBookingRepo{
		coll: database.MongoClient.Database(database.DatabaseName).Collection("bookings"),
	}
}

// Create inserts a new booking document.
func (repo *MongoBookingRepo) Create(ctx context.Context, booking *models.Booking) error {
	ctxWithTimeout, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if _, err := repo.coll.InsertOne(ctxWithTimeout, booking); err != nil {
		return fmt.Errorf("error creating booking: %w", err)
	}
	return nil
}

// GetByReference retrieves a booking by its human-readable reference.
func (repo *MongoBookingRepo) GetByReference(ctx context.Context, reference string) (*models.Booking, error) {
	return repo.findOne(ctx, bson.M{"reference": reference})
}

// GetByPaymentReference retrieves a booking by the payment gateway reference.
func (repo *MongoBookingRepo) GetByPaymentReference(ctx context.Context, paymentRef string) (*models.Booking, error) {
	return repo.findOne(ctx, bson.M{"payment_reference": paymentRef})
}

func (repo *MongoBookingRepo) findOne(ctx context.Context, filter bson.M) (*models.Booking, error) {
	ctxWithTimeout, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var booking models.Booking
	err := repo.coll.FindOne(ctxWithTimeout, filter).Decode(&booking)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("error fetching booking: %w", err)
	}
	return &booking, nil
}

// ListByEmail returns all bookings made with the given contact email,
// newest first.
func (repo *MongoBookingRepo) ListByEmail(ctx context.Context, email string) ([]models.Booking, error) {
	return repo.list(ctx, bson.M{"email": email})
}

// ListByCustomerID returns all bookings linked to a customer account,
// newest first.
func (repo *MongoBookingRepo) ListByCustomerID(ctx context.Context, customerID string) ([]models.Booking, error) {
	return repo.list(ctx, bson.M{"customer_id": customerID})
}

func (repo *MongoBookingRepo) list(ctx context.Context, filter bson.M) ([]models.Booking, error) {
	ctxWithTimeout, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.M{"created_at": -1})
	cursor, err := repo.coll.Find(ctxWithTimeout, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("error listing bookings: %w", err)
	}
	defer cursor.Close(ctxWithTimeout)

	var bookings []models.Booking
	if err := cursor.All(ctxWithTimeout, &bookings); err != nil {
		return nil, fmt.Errorf("error decoding bookings: %w", err)
	}
	return bookings, nil
}

// UpdateStatus sets the booking status for the given reference.
func (repo *MongoBookingRepo) UpdateStatus(ctx context.Context, reference, status string) error {
	ctxWithTimeout, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{"reference": reference}
	update := bson.M{"$set": bson.M{"status": status}}
	if _, err := repo.coll.UpdateOne(ctxWithTimeout, filter, update); err != nil {
		return fmt.Errorf("error updating booking %s: %w", reference, err)
	}
	return nil
}
