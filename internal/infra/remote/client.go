// Package remote implements the HTTP client for the booking API, the one
// external collaborator of the engine. Dates travel as ISO YYYY-MM-DD
// strings and amounts as plain decimal numbers in euro.
package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"masseria/internal/app/policies"
	"masseria/internal/domain/calendar"
	"masseria/internal/domain/coupon"
	"masseria/internal/domain/money"
	"masseria/internal/domain/room"
	"masseria/internal/domain/upsell"
)

// Config defines booking API client settings.
type Config struct {
	BaseURL string
	Timeout time.Duration
}

// SnapshotCache stores raw availability payloads so browsing survives a
// flapping remote. Both methods are best-effort.
type SnapshotCache interface {
	Get(ctx context.Context, key string) ([]byte, bool)
	Set(ctx context.Context, key string, payload []byte)
}

// Client talks to the remote booking API.
type Client struct {
	http    *http.Client
	baseURL string
	cache   SnapshotCache
	logger  *slog.Logger
}

// NewClient validates the config and returns a ready client. cache may be
// nil.
func NewClient(cfg Config, cache SnapshotCache, logger *slog.Logger) (*Client, error) {
	if cfg.BaseURL == "" {
		return nil, errors.New("remote: base url required")
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		http:    &http.Client{Timeout: timeout},
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		cache:   cache,
		logger:  logger,
	}, nil
}

type roomImageDTO struct {
	ID    string `json:"id"`
	URL   string `json:"url"`
	AltIT string `json:"alt_it"`
	AltEN string `json:"alt_en"`
	Order int    `json:"order"`
}

type roomDTO struct {
	ID            string         `json:"id"`
	Slug          string         `json:"slug"`
	NameIT        string         `json:"name_it"`
	NameEN        string         `json:"name_en"`
	DescriptionIT string         `json:"description_it"`
	DescriptionEN string         `json:"description_en"`
	PricePerNight float64        `json:"price_per_night"`
	MaxGuests     int            `json:"max_guests"`
	Amenities     []string       `json:"amenities"`
	Images        []roomImageDTO `json:"images"`
}

// Rooms fetches the room catalog.
func (c *Client) Rooms(ctx context.Context) ([]room.Room, error) {
	var payload []roomDTO
	if err := c.getJSON(ctx, "/rooms", &payload); err != nil {
		return nil, err
	}
	rooms := make([]room.Room, 0, len(payload))
	for _, dto := range payload {
		rooms = append(rooms, mapRoom(dto))
	}
	return rooms, nil
}

func mapRoom(dto roomDTO) room.Room {
	images := make([]room.Image, 0, len(dto.Images))
	for _, img := range dto.Images {
		images = append(images, room.Image{ID: img.ID, URL: img.URL, AltIT: img.AltIT, AltEN: img.AltEN, Order: img.Order})
	}
	return room.Room{
		ID:            room.ID(dto.ID),
		Slug:          dto.Slug,
		NameIT:        dto.NameIT,
		NameEN:        dto.NameEN,
		DescriptionIT: dto.DescriptionIT,
		DescriptionEN: dto.DescriptionEN,
		NightlyRate:   money.FromDecimal(dto.PricePerNight),
		MaxGuests:     dto.MaxGuests,
		Amenities:     dto.Amenities,
		Images:        images,
	}
}

type availabilityDTO struct {
	UnavailableDates []string           `json:"unavailable_dates"`
	CustomPrices     map[string]float64 `json:"custom_prices"`
}

// Availability loads the blocked dates and price overrides for a room in
// [from, to]. On transport failure it falls back to the last cached
// snapshot, if any; the caller decides what to do when both fail.
func (c *Client) Availability(ctx context.Context, roomID room.ID, from, to calendar.Date) (*calendar.Calendar, error) {
	path := fmt.Sprintf("/availability/%s?start_date=%s&end_date=%s",
		url.PathEscape(string(roomID)), from, to)
	key := fmt.Sprintf("availability:%s:%s:%s", roomID, from, to)

	raw, err := c.getRaw(ctx, path)
	if err != nil {
		if cached, ok := c.cacheGet(ctx, key); ok {
			c.logWarn("availability served from cache", "room_id", roomID, "error", err)
			raw = cached
		} else {
			return nil, err
		}
	} else {
		c.cacheSet(ctx, key, raw)
	}

	var dto availabilityDTO
	if err := json.Unmarshal(raw, &dto); err != nil {
		return nil, fmt.Errorf("remote: decode availability: %w", err)
	}
	return mapAvailability(dto)
}

func mapAvailability(dto availabilityDTO) (*calendar.Calendar, error) {
	blocked := make([]calendar.Date, 0, len(dto.UnavailableDates))
	for _, s := range dto.UnavailableDates {
		d, err := calendar.ParseDate(s)
		if err != nil {
			return nil, fmt.Errorf("remote: unavailable date %q: %w", s, err)
		}
		blocked = append(blocked, d)
	}
	overrides := make(map[calendar.Date]money.Money, len(dto.CustomPrices))
	for s, price := range dto.CustomPrices {
		d, err := calendar.ParseDate(s)
		if err != nil {
			return nil, fmt.Errorf("remote: custom price date %q: %w", s, err)
		}
		overrides[d] = money.FromDecimal(price)
	}
	return calendar.New(blocked, overrides), nil
}

type upsellDTO struct {
	ID            string  `json:"id"`
	Slug          string  `json:"slug"`
	TitleIT       string  `json:"title_it"`
	TitleEN       string  `json:"title_en"`
	DescriptionIT string  `json:"description_it"`
	DescriptionEN string  `json:"description_en"`
	Price         float64 `json:"price"`
	MinNights     int     `json:"min_nights"`
	IsActive      bool    `json:"is_active"`
	Icon          string  `json:"icon"`
}

// Upsells fetches the add-on catalog.
func (c *Client) Upsells(ctx context.Context, activeOnly bool) ([]upsell.Upsell, error) {
	path := "/upsells"
	if activeOnly {
		path += "?active_only=true"
	}
	var payload []upsellDTO
	if err := c.getJSON(ctx, path, &payload); err != nil {
		return nil, err
	}
	upsells := make([]upsell.Upsell, 0, len(payload))
	for _, dto := range payload {
		upsells = append(upsells, upsell.Upsell{
			ID:            upsell.ID(dto.ID),
			Slug:          dto.Slug,
			TitleIT:       dto.TitleIT,
			TitleEN:       dto.TitleEN,
			DescriptionIT: dto.DescriptionIT,
			DescriptionEN: dto.DescriptionEN,
			Price:         money.FromDecimal(dto.Price),
			MinNights:     dto.MinNights,
			Active:        dto.IsActive,
			Icon:          dto.Icon,
		})
	}
	return upsells, nil
}

type couponDTO struct {
	Code         string  `json:"code"`
	DiscountType string  `json:"discount_type"`
	DiscountVal  float64 `json:"discount_value"`
}

// ValidateCoupon asks the remote rule set to resolve a code for the given
// stay length. A 4xx answer maps to policies.ErrCouponRejected.
func (c *Client) ValidateCoupon(ctx context.Context, code string, nights int) (*coupon.Discount, error) {
	path := fmt.Sprintf("/coupons/validate/%s?nights=%d", url.PathEscape(code), nights)
	var dto couponDTO
	if err := c.getJSON(ctx, path, &dto); err != nil {
		var apiErr *APIError
		if errors.As(err, &apiErr) && apiErr.StatusCode >= 400 && apiErr.StatusCode < 500 {
			return nil, fmt.Errorf("%w: %s", policies.ErrCouponRejected, apiErr.Detail())
		}
		return nil, err
	}
	return &coupon.Discount{
		Code:  dto.Code,
		Kind:  coupon.Kind(dto.DiscountType),
		Value: dto.DiscountVal,
	}, nil
}

type createBookingRequest struct {
	RoomID     string   `json:"room_id"`
	GuestEmail string   `json:"guest_email"`
	GuestName  string   `json:"guest_name"`
	GuestPhone string   `json:"guest_phone,omitempty"`
	CheckIn    string   `json:"check_in"`
	CheckOut   string   `json:"check_out"`
	NumGuests  int      `json:"num_guests"`
	Notes      string   `json:"notes,omitempty"`
	OriginURL  string   `json:"origin_url"`
	CouponCode string   `json:"coupon_code,omitempty"`
	UpsellIDs  []string `json:"upsell_ids,omitempty"`
	StayReason string   `json:"stay_reason,omitempty"`
}

type createBookingResponse struct {
	BookingID   string  `json:"booking_id"`
	CheckoutURL string  `json:"checkout_url"`
	SessionID   string  `json:"session_id"`
	TotalPrice  float64 `json:"total_price"`
	Nights      int     `json:"nights"`
}

// CreateBooking submits a validated draft and returns the payment session.
func (c *Client) CreateBooking(ctx context.Context, sub policies.Submission) (policies.CheckoutSession, error) {
	req := createBookingRequest{
		RoomID:     string(sub.RoomID),
		GuestEmail: sub.GuestEmail,
		GuestName:  sub.GuestName,
		GuestPhone: sub.GuestPhone,
		CheckIn:    sub.CheckIn.String(),
		CheckOut:   sub.CheckOut.String(),
		NumGuests:  sub.NumGuests,
		Notes:      sub.Notes,
		OriginURL:  sub.OriginURL,
		CouponCode: sub.CouponCode,
		StayReason: sub.StayReason,
	}
	for _, id := range sub.UpsellIDs {
		req.UpsellIDs = append(req.UpsellIDs, string(id))
	}
	var resp createBookingResponse
	if err := c.postJSON(ctx, "/bookings", req, &resp); err != nil {
		return policies.CheckoutSession{}, err
	}
	return policies.CheckoutSession{
		BookingID:   resp.BookingID,
		SessionID:   resp.SessionID,
		CheckoutURL: resp.CheckoutURL,
		TotalPrice:  resp.TotalPrice,
		Nights:      resp.Nights,
	}, nil
}

type bookingRecordDTO struct {
	ID            string  `json:"id"`
	RoomID        string  `json:"room_id"`
	GuestName     string  `json:"guest_name"`
	GuestEmail    string  `json:"guest_email"`
	CheckIn       string  `json:"check_in"`
	CheckOut      string  `json:"check_out"`
	NumGuests     int     `json:"num_guests"`
	TotalPrice    float64 `json:"total_price"`
	Status        string  `json:"status"`
	PaymentStatus string  `json:"payment_status"`
}

type bookingStatusResponse struct {
	PaymentStatus string            `json:"payment_status"`
	Status        string            `json:"status"`
	Booking       *bookingRecordDTO `json:"booking"`
}

// BookingStatus checks a payment session once.
func (c *Client) BookingStatus(ctx context.Context, sessionID string) (policies.BookingStatus, error) {
	path := "/bookings/status/" + url.PathEscape(sessionID)
	var resp bookingStatusResponse
	if err := c.getJSON(ctx, path, &resp); err != nil {
		return policies.BookingStatus{}, err
	}
	status := policies.BookingStatus{
		PaymentStatus: resp.PaymentStatus,
		Status:        resp.Status,
	}
	if resp.Booking != nil {
		status.Booking = &policies.BookingRecord{
			ID:            resp.Booking.ID,
			RoomID:        resp.Booking.RoomID,
			GuestName:     resp.Booking.GuestName,
			GuestEmail:    resp.Booking.GuestEmail,
			CheckIn:       resp.Booking.CheckIn,
			CheckOut:      resp.Booking.CheckOut,
			NumGuests:     resp.Booking.NumGuests,
			TotalPrice:    resp.Booking.TotalPrice,
			Status:        resp.Booking.Status,
			PaymentStatus: resp.Booking.PaymentStatus,
		}
	}
	return status, nil
}

var _ policies.RemoteAPI = (*Client)(nil)

// APIError carries a non-2xx answer from the booking API with a body
// snippet for logs.
type APIError struct {
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("remote: booking api returned status %d: %s", e.StatusCode, e.Body)
}

// Detail extracts the FastAPI-style {"detail": ...} message when present.
func (e *APIError) Detail() string {
	var payload struct {
		Detail string `json:"detail"`
	}
	if err := json.Unmarshal([]byte(e.Body), &payload); err == nil && payload.Detail != "" {
		return payload.Detail
	}
	return e.Body
}

func (c *Client) getRaw(ctx context.Context, path string) ([]byte, error) {
	request, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return nil, err
	}
	return c.do(request)
}

func (c *Client) getJSON(ctx context.Context, path string, out any) error {
	raw, err := c.getRaw(ctx, path)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("remote: decode %s: %w", path, err)
	}
	return nil
}

func (c *Client) postJSON(ctx context.Context, path string, in, out any) error {
	body, err := json.Marshal(in)
	if err != nil {
		return err
	}
	request, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return err
	}
	request.Header.Set("Content-Type", "application/json")
	raw, err := c.do(request)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("remote: decode %s: %w", path, err)
	}
	return nil
}

func (c *Client) do(request *http.Request) ([]byte, error) {
	resp, err := c.http.Do(request)
	if err != nil {
		c.logWarn("booking api request failed", "path", request.URL.Path, "error", err)
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		apiErr := &APIError{StatusCode: resp.StatusCode, Body: string(snippet)}
		c.logWarn("booking api returned error", "path", request.URL.Path, "status", resp.StatusCode)
		return nil, apiErr
	}
	return io.ReadAll(resp.Body)
}

func (c *Client) cacheGet(ctx context.Context, key string) ([]byte, bool) {
	if c.cache == nil {
		return nil, false
	}
	return c.cache.Get(ctx, key)
}

func (c *Client) cacheSet(ctx context.Context, key string, payload []byte) {
	if c.cache == nil {
		return
	}
	c.cache.Set(ctx, key, payload)
}

func (c *Client) logWarn(msg string, args ...any) {
	if c.logger != nil {
		c.logger.Warn(msg, args...)
	}
}
