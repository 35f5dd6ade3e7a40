package models

import "time"

// Customer is a registered account used by the dashboard surfaces.
// Guests can still book; the customer record only links bookings to a
// login and carries the push token for reminders.
type Customer struct {
	ID           string    `bson:"id" json:"id"`
	FirstName    string    `bson:"first_name" json:"firstName"`
	LastName     string    `bson:"last_name" json:"lastName"`
	Email        string    `bson:"email" json:"email"`
	Phone        string    `bson:"phone" json:"phone"`
	PasswordHash string    `bson:"password_hash" json:"-"`
	FCMToken     string    `bson:"fcm_token,omitempty" json:"-"`
	CreatedAt    time.Time `bson:"created_at" json:"createdAt"`
	UpdatedAt    time.Time `bson:"updated_at" json:"updatedAt"`
}

// CustomerAuthResponse is returned on successful sign-in.
type CustomerAuthResponse struct {
	Customer Customer `json:"customer"`
	Token    string   `json:"token"`
}
