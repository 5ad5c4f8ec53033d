package room

import (
	"context"
	"errors"

	"masseria/internal/domain/money"
)

var ErrRoomNotFound = errors.New("room: not found")

type ID string

// Image is a gallery entry; URLs and alt texts are owned by the booking API
// and opaque to the engine.
type Image struct {
	ID    string
	URL   string
	AltIT string
	AltEN string
	Order int
}

// Room is a bookable unit as fetched from the booking API. Immutable for the
// lifetime of a session.
type Room struct {
	ID            ID
	Slug          string
	NameIT        string
	NameEN        string
	DescriptionIT string
	DescriptionEN string
	NightlyRate   money.Money
	MaxGuests     int
	Amenities     []string
	Images        []Image
}

// Catalog is a read port over the available rooms.
type Catalog interface {
	Rooms(ctx context.Context) ([]Room, error)
}

// Find returns the room with the given id from a fetched list.
func Find(rooms []Room, id ID) (Room, bool) {
	for _, r := range rooms {
		if r.ID == id {
			return r, true
		}
	}
	return Room{}, false
}
