package routes

import (
	"cleanhaven/handlers"

	"github.com/gin-gonic/gin"
)

// RegisterBookingRoutes registers all endpoints for the booking engine.
func RegisterBookingRoutes(r *gin.Engine, bh *handlers.BookingHandler) {
	booking := r.Group("/api/booking")
	{
		booking.POST("/draft", bh.InitDraft)                          // start or resume a draft
		booking.GET("/draft/:draftID", bh.GetDraft)                   // load a draft with its breakdown
		booking.PATCH("/draft/:draftID", bh.UpdateDraft)              // merge a partial update
		booking.DELETE("/draft/:draftID", bh.ClearDraft)              // discard a draft
		booking.POST("/quote", bh.Quote)                              // price a draft without saving
		booking.POST("/discount/validate", bh.ValidateDiscount)       // resolve a discount code
		booking.POST("/submit", bh.SubmitBooking)                     // finalize a booking
		booking.GET("/confirm", bh.ConfirmPayment)                    // gateway redirect landing
		booking.GET("/reference/:reference", bh.GetBookingByReference)
		booking.GET("/services", bh.GetServices)                      // active rate table
	}
}
