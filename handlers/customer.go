package handlers

import (
	"errors"
	"net/http"

	customerRepo "cleanhaven/database/repository/customer"
	"cleanhaven/services/customer"
	"cleanhaven/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// CustomerHandler exposes customer account endpoints.
type CustomerHandler struct {
	Svc    customer.CustomerService
	Logger *zap.Logger
}

// Register handles POST /api/customers/register.
func (h *CustomerHandler) Register(c *gin.Context) {
	var body struct {
		FirstName string `json:"firstName"`
		LastName  string `json:"lastName"`
		Email     string `json:"email" binding:"required"`
		Phone     string `json:"phone"`
		Password  string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "message": err.Error()})
		return
	}

	resp, err := h.Svc.Register(c.Request.Context(), body.FirstName, body.LastName, body.Email, body.Phone, body.Password)
	if err != nil {
		h.Logger.Warn("Register: failed", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// SignIn handles POST /api/customers/signin.
func (h *CustomerHandler) SignIn(c *gin.Context) {
	var body struct {
		Email    string `json:"email" binding:"required"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "message": err.Error()})
		return
	}

	resp, err := h.Svc.Authenticate(c.Request.Context(), body.Email, body.Password)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Me handles GET /api/customers/me.
func (h *CustomerHandler) Me(c *gin.Context) {
	customerID := c.GetString("customerID")

	cust, err := h.Svc.GetByID(c.Request.Context(), customerID)
	if err != nil {
		if errors.Is(err, customerRepo.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "account not found"})
			return
		}
		h.Logger.Error("Me: lookup failed", zap.String("customerID", customerID), zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, "failed to fetch account", "")
		return
	}
	c.JSON(http.StatusOK, cust)
}

// MyBookings handles GET /api/customers/me/bookings.
func (h *CustomerHandler) MyBookings(c *gin.Context) {
	customerID := c.GetString("customerID")

	bookings, err := h.Svc.GetBookings(c.Request.Context(), customerID)
	if err != nil {
		h.Logger.Error("MyBookings: lookup failed", zap.String("customerID", customerID), zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, "failed to fetch bookings", "")
		return
	}
	c.JSON(http.StatusOK, gin.H{"bookings": bookings})
}

// UpdateFCMToken handles PUT /api/customers/me/fcm-token. The dashboard
// registers the device token here so confirmations and reminders reach
// the customer's phone.
func (h *CustomerHandler) UpdateFCMToken(c *gin.Context) {
	customerID := c.GetString("customerID")

	var body struct {
		Token string `json:"token" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "message": err.Error()})
		return
	}

	if err := h.Svc.UpdateFCMToken(c.Request.Context(), customerID, body.Token); err != nil {
		h.Logger.Error("UpdateFCMToken: failed", zap.String("customerID", customerID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update device token"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"updated": true})
}
