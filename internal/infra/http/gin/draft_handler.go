package ginserver

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	gin "github.com/gin-gonic/gin"

	"hotelier/internal/app/drafts"
	"hotelier/internal/domain/catalog"
)

type DraftHandler struct {
	Drafts *drafts.Service
	Logger *slog.Logger
}

type createDraftRequest struct {
	Category   string    `json:"category" binding:"required"`
	CheckIn    time.Time `json:"check_in" binding:"required"`
	CheckOut   time.Time `json:"check_out" binding:"required"`
	GuestName  string    `json:"guest_name" binding:"required"`
	GuestEmail string    `json:"guest_email"`
	GuestPhone string    `json:"guest_phone"`
}

func (h DraftHandler) Create(c *gin.Context) {
	var req createDraftRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	draft, err := h.Drafts.CreateFromStay(c.Request.Context(), drafts.CreateQuery{
		PropertyID:  c.Param("id"),
		CategoryKey: req.Category,
		CheckIn:     req.CheckIn,
		CheckOut:    req.CheckOut,
		Guest: drafts.Guest{
			Name:  req.GuestName,
			Email: req.GuestEmail,
			Phone: req.GuestPhone,
		},
	})
	switch {
	case err == nil:
	case errors.Is(err, catalog.ErrPropertyNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "property not found"})
		return
	case errors.Is(err, drafts.ErrQuoteUnavailable), errors.Is(err, drafts.ErrGuestRequired):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return
	default:
		if h.Logger != nil {
			h.Logger.Error("draft creation failed", "error", err, "property_id", c.Param("id"))
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create draft"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"draft_id":       draft.ID,
		"reference_code": draft.ReferenceCode,
		"total":          draft.TotalWithCommission,
		"hotel_payout":   draft.HotelPayout,
		"currency":       draft.Currency,
	})
}

var _ DraftHTTP = DraftHandler{}
