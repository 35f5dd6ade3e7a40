package models

import "time"

// Booking statuses.
const (
	BookingStatusPending   = "pending"
	BookingStatusConfirmed = "confirmed"
	BookingStatusCompleted = "completed"
	BookingStatusCancelled = "cancelled"
)

// Payment statuses.
const (
	PaymentStatusPending   = "pending"
	PaymentStatusCompleted = "completed"
	PaymentStatusFailed    = "failed"
)

// Booking is the finalized, persisted record produced once a draft passes
// validation. Status transitions after creation belong to the staff and
// cleaner surfaces; core logic never deletes a booking.
type Booking struct {
	ID                  string    `bson:"id" json:"id"`
	Reference           string    `bson:"reference" json:"reference"` // human-readable booking reference, e.g. "CH-4F2A9C"
	CustomerID          string    `bson:"customer_id,omitempty" json:"customerId,omitempty"`
	ServiceType         string    `bson:"service_type" json:"serviceType"`
	Frequency           string    `bson:"frequency" json:"frequency"`
	Bedrooms            int       `bson:"bedrooms" json:"bedrooms"`
	Bathrooms           int       `bson:"bathrooms" json:"bathrooms"`
	OfficeSize          string    `bson:"office_size,omitempty" json:"officeSize,omitempty"`
	Extras              []string  `bson:"extras" json:"extras"`
	ScheduledDate       string    `bson:"scheduled_date" json:"scheduledDate"`
	ScheduledTime       string    `bson:"scheduled_time" json:"scheduledTime"`
	Street              string    `bson:"street" json:"street"`
	Unit                string    `bson:"unit,omitempty" json:"unit,omitempty"`
	Suburb              string    `bson:"suburb" json:"suburb"`
	City                string    `bson:"city" json:"city"`
	CleanerPreference   string    `bson:"cleaner_preference" json:"cleanerPreference"`
	SpecialInstructions string    `bson:"special_instructions,omitempty" json:"specialInstructions,omitempty"`
	DiscountCode        string    `bson:"discount_code,omitempty" json:"discountCode,omitempty"`
	FirstName           string    `bson:"first_name" json:"firstName"`
	LastName            string    `bson:"last_name" json:"lastName"`
	Email               string    `bson:"email" json:"email"`
	Phone               string    `bson:"phone" json:"phone"`
	Subtotal            float64   `bson:"subtotal" json:"subtotal"`
	FrequencyDiscount   float64   `bson:"frequency_discount" json:"frequencyDiscount"`
	CodeDiscount        float64   `bson:"code_discount" json:"codeDiscount"`
	TotalAmount         float64   `bson:"total_amount" json:"totalAmount"`
	Currency            string    `bson:"currency" json:"currency"`
	PaymentStatus       string    `bson:"payment_status" json:"paymentStatus"`
	PaymentReference    string    `bson:"payment_reference,omitempty" json:"paymentReference,omitempty"`
	Status              string    `bson:"status" json:"status"`
	CreatedAt           time.Time `bson:"created_at" json:"createdAt"`
}
