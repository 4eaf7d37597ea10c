package ginserver

import (
	"errors"
	"net/http"
	"time"

	gin "github.com/gin-gonic/gin"

	quotesapp "hotelier/internal/app/handlers/quotes"
	"hotelier/internal/domain/catalog"
	"hotelier/internal/domain/shared/daterange"
)

type QuoteHandler struct {
	Quotes *quotesapp.Handler
}

func (h QuoteHandler) Quote(c *gin.Context) {
	checkIn, ok := parseDateQuery(c, "check_in")
	if !ok {
		return
	}
	checkOut, ok := parseDateQuery(c, "check_out")
	if !ok {
		return
	}
	categoryKey := c.Query("category")
	if categoryKey == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "category is required"})
		return
	}

	result, err := h.Quotes.Handle(c.Request.Context(), quotesapp.QuoteQuery{
		PropertyID:  c.Param("id"),
		CategoryKey: categoryKey,
		CheckIn:     checkIn,
		CheckOut:    checkOut,
	})
	if err != nil {
		if errors.Is(err, catalog.ErrPropertyNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "property not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to compute quote"})
		return
	}
	c.JSON(http.StatusOK, result)
}

func parseDateQuery(c *gin.Context, name string) (time.Time, bool) {
	raw := c.Query(name)
	if raw == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": name + " is required"})
		return time.Time{}, false
	}
	t, err := time.Parse(daterange.DayKeyFormat, raw)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": name + " must be YYYY-MM-DD"})
		return time.Time{}, false
	}
	return t, true
}

var _ QuoteHTTP = QuoteHandler{}
