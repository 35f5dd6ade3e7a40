package customer

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"cleanhaven/database/repository"
	customerRepo "cleanhaven/database/repository/customer"
	"cleanhaven/models"
	"cleanhaven/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

const tokenDuration = 72 * time.Hour

// CustomerService manages customer accounts for the dashboard surfaces.
type CustomerService interface {
	Register(ctx context.Context, firstName, lastName, email, phone, password string) (*models.CustomerAuthResponse, error)
	Authenticate(ctx context.Context, email, password string) (*models.CustomerAuthResponse, error)
	GetByID(ctx context.Context, id string) (*models.Customer, error)
	GetBookings(ctx context.Context, customerID string) ([]models.Booking, error)
	UpdateFCMToken(ctx context.Context, customerID, token string) error
}

// DefaultCustomerService implements CustomerService.
type DefaultCustomerService struct {
	Repo     repository.CustomerRepository
	Bookings repository.BookingRepository
}

func (s *DefaultCustomerService) Register(ctx context.Context, firstName, lastName, email, phone, password string) (*models.CustomerAuthResponse, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		return nil, errors.New("email and password are required")
	}

	if _, err := s.Repo.GetByEmail(ctx, email); err == nil {
		return nil, errors.New("an account with this email already exists")
	} else if !errors.Is(err, customerRepo.ErrNotFound) {
		return nil, fmt.Errorf("failed to check existing account: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	now := time.Now()
	cust := models.Customer{
		ID:           uuid.New().String(),
		FirstName:    strings.TrimSpace(firstName),
		LastName:     strings.TrimSpace(lastName),
		Email:        email,
		Phone:        strings.TrimSpace(phone),
		PasswordHash: string(hash),
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.Repo.Create(ctx, &cust); err != nil {
		return nil, fmt.Errorf("failed to create customer: %w", err)
	}

	token, err := utils.GenerateToken(cust.ID, cust.Email, tokenDuration)
	if err != nil {
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}
	return &models.CustomerAuthResponse{Customer: cust, Token: token}, nil
}

func (s *DefaultCustomerService) Authenticate(ctx context.Context, email, password string) (*models.CustomerAuthResponse, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	cust, err := s.Repo.GetByEmail(ctx, email)
	if err != nil {
		utils.GetLogger().Debug("sign-in lookup failed", zap.String("email", email), zap.Error(err))
		return nil, errors.New("invalid email or password")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(cust.PasswordHash), []byte(password)); err != nil {
		return nil, errors.New("invalid email or password")
	}

	token, err := utils.GenerateToken(cust.ID, cust.Email, tokenDuration)
	if err != nil {
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}

	// Cache the token hash so the auth middleware can verify without a
	// database round trip.
	if authCache := utils.AuthCacheClient; authCache != nil {
		cacheKey := "auth:" + cust.ID
		if err := authCache.Set(ctx, cacheKey, utils.HashToken(token), time.Hour).Err(); err != nil {
			utils.GetLogger().Warn("failed to cache auth token", zap.Error(err))
		}
	}

	return &models.CustomerAuthResponse{Customer: *cust, Token: token}, nil
}

func (s *DefaultCustomerService) GetByID(ctx context.Context, id string) (*models.Customer, error) {
	return s.Repo.GetByID(ctx, id)
}

// GetBookings returns the customer's booking history: records linked to
// the account plus guest bookings made with the same email.
func (s *DefaultCustomerService) GetBookings(ctx context.Context, customerID string) ([]models.Booking, error) {
	cust, err := s.Repo.GetByID(ctx, customerID)
	if err != nil {
		return nil, err
	}

	linked, err := s.Bookings.ListByCustomerID(ctx, customerID)
	if err != nil {
		return nil, err
	}
	byEmail, err := s.Bookings.ListByEmail(ctx, cust.Email)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]bool, len(linked))
	for _, b := range linked {
		seen[b.Reference] = true
	}
	for _, b := range byEmail {
		if !seen[b.Reference] {
			linked = append(linked, b)
		}
	}
	return linked, nil
}

func (s *DefaultCustomerService) UpdateFCMToken(ctx context.Context, customerID, token string) error {
	cust, err := s.Repo.GetByID(ctx, customerID)
	if err != nil {
		return err
	}
	cust.FCMToken = token
	cust.UpdatedAt = time.Now()
	return s.Repo.Update(ctx, cust)
}
