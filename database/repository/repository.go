package repository

import (
	bookingRepo "cleanhaven/database/repository/booking"
	customerRepo "cleanhaven/database/repository/customer"
	discountRepo "cleanhaven/database/repository/discount"
	pricingRepo "cleanhaven/database/repository/pricing"
)

// Re-export the BookingRepository interface and constructor.
type BookingRepository = bookingRepo.BookingRepository

var NewMongoBookingRepo = bookingRepo.NewMongoBookingRepo

// Re-export the DiscountRepository interface and constructor.
type DiscountRepository = discountRepo.DiscountRepository

var NewMongoDiscountRepo = discountRepo.NewMongoDiscountRepo

// Re-export the PricingRepository interface and constructor.
type PricingRepository = pricingRepo.PricingRepository

var NewMongoPricingRepo = pricingRepo.NewMongoPricingRepo

// Re-export the CustomerRepository interface and constructor.
type CustomerRepository = customerRepo.CustomerRepository

var NewMongoCustomerRepo = customerRepo.NewMongoCustomerRepo
