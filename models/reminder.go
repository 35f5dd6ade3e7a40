package models

// ReminderPayload is the asynq task payload for a scheduled cleaning
// reminder push.
type ReminderPayload struct {
	BookingReference string `json:"bookingReference"`
	CustomerID       string `json:"customerId,omitempty"`
	Email            string `json:"email"`
	Title            string `json:"title"`
	Body             string `json:"body"`
	FireDate         string `json:"fireDate"`
}
