package handlers

import (
	"errors"
	"net/http"
	"strings"

	bookingRepo "cleanhaven/database/repository/booking"
	"cleanhaven/models"
	"cleanhaven/services/booking"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// BookingHandler exposes the booking engine over HTTP.
type BookingHandler struct {
	Svc    booking.BookingService
	Logger *zap.Logger
}

// InitDraft handles POST /api/booking/draft. The client may supply its
// own draft ID to resume an earlier session; otherwise one is minted.
func (h *BookingHandler) InitDraft(c *gin.Context) {
	var body struct {
		DraftID string `json:"draftId"`
	}
	// An empty body is fine; only malformed JSON is rejected.
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&body); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "message": err.Error()})
			return
		}
	}

	draftID := strings.TrimSpace(body.DraftID)
	if draftID == "" {
		draftID = uuid.New().String()
	}

	draft, breakdown, err := h.Svc.InitDraft(c.Request.Context(), draftID)
	if err != nil {
		h.Logger.Error("InitDraft: failed to initialise draft", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to initialise booking draft"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"draftId":   draftID,
		"draft":     draft,
		"breakdown": breakdown,
	})
}

// GetDraft handles GET /api/booking/draft/:draftID.
func (h *BookingHandler) GetDraft(c *gin.Context) {
	draftID := c.Param("draftID")

	draft, breakdown, err := h.Svc.GetDraft(c.Request.Context(), draftID)
	if err != nil {
		h.Logger.Error("GetDraft: failed to load draft",
			zap.String("draftID", draftID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load booking draft"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"draftId":   draftID,
		"draft":     draft,
		"breakdown": breakdown,
	})
}

// UpdateDraft handles PATCH /api/booking/draft/:draftID. Only the fields
// present in the body change; everything else in the draft is preserved.
func (h *BookingHandler) UpdateDraft(c *gin.Context) {
	draftID := c.Param("draftID")

	var patch models.DraftPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "message": err.Error()})
		return
	}

	draft, breakdown, err := h.Svc.UpdateDraft(c.Request.Context(), draftID, patch)
	if err != nil {
		h.Logger.Error("UpdateDraft: failed to update draft",
			zap.String("draftID", draftID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update booking draft"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"draftId":   draftID,
		"draft":     draft,
		"breakdown": breakdown,
	})
}

// ClearDraft handles DELETE /api/booking/draft/:draftID.
func (h *BookingHandler) ClearDraft(c *gin.Context) {
	draftID := c.Param("draftID")
	if err := h.Svc.ClearDraft(c.Request.Context(), draftID); err != nil {
		h.Logger.Error("ClearDraft: failed to clear draft",
			zap.String("draftID", draftID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to clear booking draft"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"cleared": true})
}

// Quote handles POST /api/booking/quote. It prices the posted draft
// without persisting anything, so the wizard can show live totals.
func (h *BookingHandler) Quote(c *gin.Context) {
	var draft models.BookingDraft
	if err := c.ShouldBindJSON(&draft); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "message": err.Error()})
		return
	}

	breakdown, resolution, err := h.Svc.Quote(c.Request.Context(), draft)
	if err != nil {
		h.Logger.Error("Quote: failed to price draft", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to compute quote"})
		return
	}

	resp := gin.H{"breakdown": breakdown}
	if draft.DiscountCode != "" {
		resp["discount"] = resolution
	}
	c.JSON(http.StatusOK, resp)
}

// ValidateDiscount handles POST /api/booking/discount/validate.
func (h *BookingHandler) ValidateDiscount(c *gin.Context) {
	var body struct {
		Code   string  `json:"code" binding:"required"`
		Amount float64 `json:"amount"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "message": err.Error()})
		return
	}

	resolution := h.Svc.ValidateDiscount(c.Request.Context(), body.Code, body.Amount)
	c.JSON(http.StatusOK, resolution)
}

// SubmitBooking handles POST /api/booking/submit. Validation failures
// come back as 422 with field-keyed messages so the wizard can highlight
// each gap.
func (h *BookingHandler) SubmitBooking(c *gin.Context) {
	var body struct {
		Draft            models.BookingDraft `json:"draft"`
		DraftID          string              `json:"draftId"`
		PaymentReference string              `json:"paymentReference"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "message": err.Error()})
		return
	}

	result, err := h.Svc.SubmitBooking(c.Request.Context(), body.Draft, body.PaymentReference)
	if err != nil {
		h.Logger.Error("SubmitBooking: submission failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to submit booking"})
		return
	}
	if !result.Success {
		c.JSON(http.StatusUnprocessableEntity, result)
		return
	}

	if body.DraftID != "" {
		if err := h.Svc.ClearDraft(c.Request.Context(), body.DraftID); err != nil {
			h.Logger.Warn("SubmitBooking: failed to clear draft after submission",
				zap.String("draftID", body.DraftID), zap.Error(err))
		}
	}
	c.JSON(http.StatusOK, result)
}

// ConfirmPayment handles GET /api/booking/confirm. The customer lands
// here after the payment gateway redirect; the reference query parameter
// carries the gateway's transaction reference.
func (h *BookingHandler) ConfirmPayment(c *gin.Context) {
	reference := strings.TrimSpace(c.Query("reference"))
	if reference == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing payment reference"})
		return
	}
	draftID := strings.TrimSpace(c.Query("draftId"))

	result, err := h.Svc.ReconcilePayment(c.Request.Context(), reference, draftID)
	if err != nil {
		h.Logger.Error("ConfirmPayment: reconciliation failed",
			zap.String("paymentRef", reference), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to confirm payment"})
		return
	}

	// An unrecoverable validation failure gets the same status code a
	// direct submission would.
	if result.Outcome == models.ReconcileInvalid {
		c.JSON(http.StatusUnprocessableEntity, result)
		return
	}
	c.JSON(http.StatusOK, result)
}

// GetBookingByReference handles GET /api/booking/reference/:reference.
func (h *BookingHandler) GetBookingByReference(c *gin.Context) {
	reference := c.Param("reference")

	record, err := h.Svc.GetBookingByReference(c.Request.Context(), reference)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "booking not found"})
			return
		}
		h.Logger.Error("GetBookingByReference: lookup failed",
			zap.String("reference", reference), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch booking"})
		return
	}

	c.JSON(http.StatusOK, record)
}

// GetServices handles GET /api/booking/services. It returns the active
// rate table the wizard renders its options and prices from.
func (h *BookingHandler) GetServices(c *gin.Context) {
	cfg, err := h.Svc.GetPricingConfig(c.Request.Context())
	if err != nil {
		h.Logger.Error("GetServices: failed to fetch pricing config", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch services"})
		return
	}
	c.JSON(http.StatusOK, cfg)
}
