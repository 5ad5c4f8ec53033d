package ginserver

import (
	"net/http"
	"time"

	gin "github.com/gin-gonic/gin"

	"masseria/internal/app/dto"
	"masseria/internal/app/policies"
	"masseria/internal/domain/calendar"
	"masseria/internal/domain/room"
)

// CatalogHandler serves the read-only room and upsell catalogs by proxying
// the remote booking API.
type CatalogHandler struct {
	API        policies.RemoteAPI
	WindowDays int
	Now        func() time.Time
}

func (h CatalogHandler) Rooms(c *gin.Context) {
	rooms, err := h.API.Rooms(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": "room catalog unavailable"})
		return
	}
	c.JSON(http.StatusOK, dto.MapRooms(rooms))
}

func (h CatalogHandler) Availability(c *gin.Context) {
	roomID := room.ID(c.Param("roomID"))
	today := calendar.DateOf(h.now())
	from, to := today, today.AddDays(h.windowDays())
	if raw := c.Query("start_date"); raw != "" {
		d, err := calendar.ParseDate(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid start_date"})
			return
		}
		from = d
	}
	if raw := c.Query("end_date"); raw != "" {
		d, err := calendar.ParseDate(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid end_date"})
			return
		}
		to = d
	}
	if !from.Before(to) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "end_date must be after start_date"})
		return
	}
	cal, err := h.API.Availability(c.Request.Context(), roomID, from, to)
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": "availability unavailable"})
		return
	}
	c.JSON(http.StatusOK, dto.MapAvailability(roomID, cal))
}

func (h CatalogHandler) Upsells(c *gin.Context) {
	activeOnly := c.DefaultQuery("active_only", "true") != "false"
	upsells, err := h.API.Upsells(c.Request.Context(), activeOnly)
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": "upsell catalog unavailable"})
		return
	}
	c.JSON(http.StatusOK, dto.MapUpsells(upsells))
}

func (h CatalogHandler) StayReasons(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"items": dto.StayReasons()})
}

func (h CatalogHandler) now() time.Time {
	if h.Now != nil {
		return h.Now()
	}
	return time.Now()
}

func (h CatalogHandler) windowDays() int {
	if h.WindowDays > 0 {
		return h.WindowDays
	}
	return 365
}

var _ CatalogHTTP = CatalogHandler{}
