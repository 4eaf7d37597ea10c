package ginserver

import (
	"log/slog"
	"net/http"
	"strconv"
	"time"

	gin "github.com/gin-gonic/gin"

	availabilityapp "hotelier/internal/app/handlers/availability"
)

type AvailabilityHandler struct {
	Availability *availabilityapp.Handler
	Logger       *slog.Logger

	// DefaultDays is the rolling-window length when the request does not ask
	// for one (ROLLING_WINDOW_DAYS). Zero defers to the reconciler's default.
	DefaultDays int
}

func (h AvailabilityHandler) Window(c *gin.Context) {
	from, ok := parseDateQuery(c, "from")
	if !ok {
		return
	}
	to, ok := parseDateQuery(c, "to")
	if !ok {
		return
	}
	rows, err := h.Availability.Window(c.Request.Context(), availabilityapp.WindowQuery{
		PropertyID: c.Param("id"),
		From:       from,
		To:         to,
	})
	if err != nil {
		h.fail(c, "availability window failed", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"days": rows})
}

func (h AvailabilityHandler) Rolling(c *gin.Context) {
	query, ok := h.rollingQuery(c)
	if !ok {
		return
	}
	rows, err := h.Availability.Rolling(c.Request.Context(), query)
	if err != nil {
		h.fail(c, "rolling availability failed", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"days": rows})
}

func (h AvailabilityHandler) Split(c *gin.Context) {
	from, ok := parseDateQuery(c, "from")
	if !ok {
		return
	}
	to, ok := parseDateQuery(c, "to")
	if !ok {
		return
	}
	rows, err := h.Availability.Split(c.Request.Context(), availabilityapp.WindowQuery{
		PropertyID: c.Param("id"),
		From:       from,
		To:         to,
	})
	if err != nil {
		h.fail(c, "availability split failed", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"categories": rows})
}

func (h AvailabilityHandler) Snapshot(c *gin.Context) {
	label := c.Query("room_type")
	if label == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "room_type is required"})
		return
	}
	row, err := h.Availability.Snapshot(c.Request.Context(), c.Param("id"), label)
	if err != nil {
		h.fail(c, "availability snapshot failed", err)
		return
	}
	c.JSON(http.StatusOK, row)
}

func (h AvailabilityHandler) Export(c *gin.Context) {
	query, ok := h.rollingQuery(c)
	if !ok {
		return
	}
	url, err := h.Availability.Export(c.Request.Context(), query)
	if err != nil {
		h.fail(c, "availability export failed", err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"report_url": url})
}

func (h AvailabilityHandler) rollingQuery(c *gin.Context) (availabilityapp.RollingQuery, bool) {
	query := availabilityapp.RollingQuery{
		PropertyID: c.Param("id"),
		Start:      time.Now().UTC(),
		Days:       h.DefaultDays,
	}
	if raw := c.Query("start"); raw != "" {
		start, ok := parseDateQuery(c, "start")
		if !ok {
			return availabilityapp.RollingQuery{}, false
		}
		query.Start = start
	}
	if raw := c.Query("days"); raw != "" {
		days, err := strconv.Atoi(raw)
		if err != nil || days < 1 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "days must be a positive integer"})
			return availabilityapp.RollingQuery{}, false
		}
		query.Days = days
	}
	return query, true
}

func (h AvailabilityHandler) fail(c *gin.Context, msg string, err error) {
	if h.Logger != nil {
		h.Logger.Error(msg, "error", err, "property_id", c.Param("id"))
	}
	c.JSON(http.StatusInternalServerError, gin.H{"error": msg})
}

var _ AvailabilityHTTP = AvailabilityHandler{}
