package routes

import (
	"net/http"

	"cleanhaven/handlers"
	"cleanhaven/middleware"
	"cleanhaven/utils"

	"github.com/gin-gonic/gin"
)

// RegisterCustomerRoutes registers customer account endpoints.
func RegisterCustomerRoutes(r *gin.Engine, ch *handlers.CustomerHandler) {
	api := r.Group("/api/customers")
	{
		api.POST("/register", ch.Register)
		api.POST("/signin", ch.SignIn)

		// Protected routes (require authentication)
		me := api.Group("/me")
		me.Use(middleware.CustomerAuthMiddleware())
		me.GET("", ch.Me)
		me.GET("/bookings", ch.MyBookings)
		me.PUT("/fcm-token", ch.UpdateFCMToken)
	}
}

// RegisterHealthRoute registers a health-check endpoint.
func RegisterHealthRoute(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status": "ok",
			"deps":   utils.GetHealthStatus(),
		})
	})
}
