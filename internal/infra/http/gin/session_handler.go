package ginserver

import (
	"errors"
	"log/slog"
	"net/http"

	gin "github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"masseria/internal/app/dto"
	"masseria/internal/app/policies"
	"masseria/internal/app/session"
	"masseria/internal/domain/booking"
	"masseria/internal/domain/calendar"
	"masseria/internal/domain/room"
	"masseria/internal/domain/upsell"
	"masseria/internal/infra/remote"
)

// SessionHandler exposes the booking draft workflow over HTTP. Every
// mutation replies with the full session view so the front end rerenders
// from a single source of truth.
type SessionHandler struct {
	Store          *session.Store
	API            policies.RemoteAPI
	Logger         *slog.Logger
	WindowDays     int
	SessionOptions []session.Option
}

func (h SessionHandler) Create(c *gin.Context) {
	opts := h.SessionOptions
	if h.WindowDays > 0 {
		opts = append(opts, session.WithAvailabilityWindow(h.WindowDays))
	}
	s := session.New(uuid.NewString(), h.API, h.Logger, opts...)
	if err := s.Start(c.Request.Context()); err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": "booking service unavailable"})
		return
	}
	h.Store.Put(s)
	c.JSON(http.StatusCreated, dto.MapSession(s.Snapshot()))
}

func (h SessionHandler) Get(c *gin.Context) {
	s, ok := h.load(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, dto.MapSession(s.Snapshot()))
}

type selectRoomRequest struct {
	RoomID string `json:"room_id" binding:"required"`
}

func (h SessionHandler) SelectRoom(c *gin.Context) {
	s, ok := h.load(c)
	if !ok {
		return
	}
	var req selectRoomRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := s.SelectRoom(c.Request.Context(), room.ID(req.RoomID)); err != nil {
		if errors.Is(err, session.ErrUnknownRoom) {
			c.JSON(http.StatusNotFound, gin.H{"error": "unknown room"})
			return
		}
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, dto.MapSession(s.Snapshot()))
}

type setDatesRequest struct {
	CheckIn  string `json:"check_in"`
	CheckOut string `json:"check_out"`
}

func (h SessionHandler) SetDates(c *gin.Context) {
	s, ok := h.load(c)
	if !ok {
		return
	}
	var req setDatesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	var from, to calendar.Date
	var err error
	if req.CheckIn != "" {
		if from, err = calendar.ParseDate(req.CheckIn); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid check_in"})
			return
		}
	}
	if req.CheckOut != "" {
		if to, err = calendar.ParseDate(req.CheckOut); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid check_out"})
			return
		}
	}
	s.SetDates(from, to)
	c.JSON(http.StatusOK, dto.MapSession(s.Snapshot()))
}

type setGuestRequest struct {
	GuestName  string `json:"guest_name"`
	GuestEmail string `json:"guest_email"`
	GuestPhone string `json:"guest_phone"`
	NumGuests  int    `json:"num_guests"`
	Notes      string `json:"notes"`
	StayReason string `json:"stay_reason"`
}

func (h SessionHandler) SetGuest(c *gin.Context) {
	s, ok := h.load(c)
	if !ok {
		return
	}
	var req setGuestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	count := req.NumGuests
	if count < 1 {
		count = 1
	}
	s.SetGuest(booking.Guest{
		Name:       req.GuestName,
		Email:      req.GuestEmail,
		Phone:      req.GuestPhone,
		Count:      count,
		Notes:      req.Notes,
		StayReason: req.StayReason,
	})
	c.JSON(http.StatusOK, dto.MapSession(s.Snapshot()))
}

type addUpsellRequest struct {
	UpsellID string `json:"upsell_id" binding:"required"`
}

func (h SessionHandler) AddUpsell(c *gin.Context) {
	s, ok := h.load(c)
	if !ok {
		return
	}
	var req addUpsellRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := s.SelectUpsell(upsell.ID(req.UpsellID)); err != nil {
		c.JSON(http.StatusConflict, gin.H{"error": "upsell not eligible for this stay"})
		return
	}
	c.JSON(http.StatusOK, dto.MapSession(s.Snapshot()))
}

func (h SessionHandler) RemoveUpsell(c *gin.Context) {
	s, ok := h.load(c)
	if !ok {
		return
	}
	s.DeselectUpsell(upsell.ID(c.Param("upsellID")))
	c.JSON(http.StatusOK, dto.MapSession(s.Snapshot()))
}

type setCouponRequest struct {
	Code string `json:"code"`
}

func (h SessionHandler) SetCoupon(c *gin.Context) {
	s, ok := h.load(c)
	if !ok {
		return
	}
	var req setCouponRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	s.SetCouponCode(req.Code)
	c.JSON(http.StatusOK, dto.MapSession(s.Snapshot()))
}

func (h SessionHandler) ValidateCoupon(c *gin.Context) {
	s, ok := h.load(c)
	if !ok {
		return
	}
	status := s.ValidateCoupon(c.Request.Context())
	c.JSON(http.StatusOK, gin.H{
		"coupon_status": string(status),
		"session":       dto.MapSession(s.Snapshot()),
	})
}

func (h SessionHandler) Quote(c *gin.Context) {
	s, ok := h.load(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, dto.MapQuote(s.Quote()))
}

type submitRequest struct {
	OriginURL string `json:"origin_url"`
}

func (h SessionHandler) Submit(c *gin.Context) {
	s, ok := h.load(c)
	if !ok {
		return
	}
	var req submitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.OriginURL == "" {
		req.OriginURL = c.GetHeader("Origin")
	}
	cs, err := s.Submit(c.Request.Context(), req.OriginURL)
	if err != nil {
		h.submitError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.MapCheckout(cs))
}

func (h SessionHandler) submitError(c *gin.Context, err error) {
	var verr *booking.ValidationError
	if errors.As(err, &verr) {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": verr.Reason, "field": verr.Field})
		return
	}
	if errors.Is(err, session.ErrAlreadySubmitted) {
		c.JSON(http.StatusConflict, gin.H{"error": "booking already submitted"})
		return
	}
	var apiErr *remote.APIError
	if errors.As(err, &apiErr) {
		c.JSON(http.StatusBadGateway, gin.H{"error": apiErr.Detail()})
		return
	}
	c.JSON(http.StatusBadGateway, gin.H{"error": "booking submission failed"})
}

func (h SessionHandler) load(c *gin.Context) (*session.Session, bool) {
	s, err := h.Store.Get(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "session not found"})
		return nil, false
	}
	return s, true
}

var _ SessionHTTP = SessionHandler{}
