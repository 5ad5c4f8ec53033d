// Package dto maps domain types onto the JSON shapes served to the booking
// front end. Monetary amounts cross the wire as decimal euros; cents exist
// only inside the engine.
package dto

import (
	"sort"

	"masseria/internal/domain/calendar"
	"masseria/internal/domain/money"
	"masseria/internal/domain/room"
	"masseria/internal/domain/upsell"
)

type ImageDTO struct {
	ID    string `json:"id"`
	URL   string `json:"url"`
	AltIT string `json:"alt_it,omitempty"`
	AltEN string `json:"alt_en,omitempty"`
	Order int    `json:"order"`
}

type RoomDTO struct {
	ID            string     `json:"id"`
	Slug          string     `json:"slug"`
	NameIT        string     `json:"name_it"`
	NameEN        string     `json:"name_en"`
	DescriptionIT string     `json:"description_it,omitempty"`
	DescriptionEN string     `json:"description_en,omitempty"`
	PricePerNight float64    `json:"price_per_night"`
	MaxGuests     int        `json:"max_guests"`
	Amenities     []string   `json:"amenities"`
	Images        []ImageDTO `json:"images"`
}

type RoomCollection struct {
	Items []RoomDTO `json:"items"`
}

type AvailabilityDTO struct {
	RoomID           string             `json:"room_id"`
	UnavailableDates []string           `json:"unavailable_dates"`
	CustomPrices     map[string]float64 `json:"custom_prices"`
}

type UpsellDTO struct {
	ID            string  `json:"id"`
	Slug          string  `json:"slug"`
	TitleIT       string  `json:"title_it"`
	TitleEN       string  `json:"title_en"`
	DescriptionIT string  `json:"description_it,omitempty"`
	DescriptionEN string  `json:"description_en,omitempty"`
	Price         float64 `json:"price"`
	MinNights     int     `json:"min_nights"`
	Icon          string  `json:"icon,omitempty"`
}

type UpsellCollection struct {
	Items []UpsellDTO `json:"items"`
}

type StayReasonDTO struct {
	Value   string `json:"value"`
	LabelIT string `json:"label_it"`
	LabelEN string `json:"label_en"`
}

func MapRoom(rm room.Room) RoomDTO {
	out := RoomDTO{
		ID:            string(rm.ID),
		Slug:          rm.Slug,
		NameIT:        rm.NameIT,
		NameEN:        rm.NameEN,
		DescriptionIT: rm.DescriptionIT,
		DescriptionEN: rm.DescriptionEN,
		PricePerNight: rm.NightlyRate.Decimal(),
		MaxGuests:     rm.MaxGuests,
		Amenities:     rm.Amenities,
		Images:        make([]ImageDTO, 0, len(rm.Images)),
	}
	if out.Amenities == nil {
		out.Amenities = []string{}
	}
	for _, img := range rm.Images {
		out.Images = append(out.Images, ImageDTO{
			ID:    img.ID,
			URL:   img.URL,
			AltIT: img.AltIT,
			AltEN: img.AltEN,
			Order: img.Order,
		})
	}
	return out
}

func MapRooms(rooms []room.Room) RoomCollection {
	items := make([]RoomDTO, 0, len(rooms))
	for _, rm := range rooms {
		items = append(items, MapRoom(rm))
	}
	return RoomCollection{Items: items}
}

func MapAvailability(roomID room.ID, cal *calendar.Calendar) AvailabilityDTO {
	out := AvailabilityDTO{
		RoomID:           string(roomID),
		UnavailableDates: []string{},
		CustomPrices:     map[string]float64{},
	}
	if cal == nil {
		return out
	}
	for _, d := range cal.BlockedDates() {
		out.UnavailableDates = append(out.UnavailableDates, d.String())
	}
	sort.Strings(out.UnavailableDates)
	for d, price := range cal.Overrides() {
		out.CustomPrices[d.String()] = price.Decimal()
	}
	return out
}

func MapUpsell(u upsell.Upsell) UpsellDTO {
	return UpsellDTO{
		ID:            string(u.ID),
		Slug:          u.Slug,
		TitleIT:       u.TitleIT,
		TitleEN:       u.TitleEN,
		DescriptionIT: u.DescriptionIT,
		DescriptionEN: u.DescriptionEN,
		Price:         u.Price.Decimal(),
		MinNights:     u.MinNights,
		Icon:          u.Icon,
	}
}

func MapUpsells(upsells []upsell.Upsell) UpsellCollection {
	items := make([]UpsellDTO, 0, len(upsells))
	for _, u := range upsells {
		items = append(items, MapUpsell(u))
	}
	return UpsellCollection{Items: items}
}

// StayReasons lists the reasons offered by the booking form dropdown.
func StayReasons() []StayReasonDTO {
	return []StayReasonDTO{
		{Value: "vacanza", LabelIT: "Vacanza", LabelEN: "Vacation"},
		{Value: "romantico", LabelIT: "Weekend romantico", LabelEN: "Romantic getaway"},
		{Value: "famiglia", LabelIT: "Viaggio in famiglia", LabelEN: "Family trip"},
		{Value: "relax", LabelIT: "Relax e benessere", LabelEN: "Rest and wellness"},
		{Value: "lavoro", LabelIT: "Lavoro", LabelEN: "Business"},
	}
}

func decimalOrZero(m money.Money) float64 {
	if m.IsNegative() {
		return 0
	}
	return m.Decimal()
}
