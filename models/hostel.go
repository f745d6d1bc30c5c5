package models

// Hostel is an upstream-owned entity; this service only reads it.
type Hostel struct {
	ID      uint   `json:"id"`
	Slug    string `json:"slug"`
	Name    string `json:"name"`
	Address string `json:"address,omitempty"`
	Email   string `json:"email,omitempty"`
	Phone   string `json:"phone,omitempty"`
	Rooms   []Room `json:"rooms,omitempty"`
}

type RoomType struct {
	ID          uint   `json:"id"`
	TypeName    string `json:"typeName"`
	Description string `json:"description,omitempty"`
	MaxGuests   int    `json:"maxGuests"`
}

// AvailabilityResult is one hostel's block in the public search response.
type AvailabilityResult struct {
	Slug           string `json:"slug"`
	Name           string `json:"name"`
	AvailableRooms []Room `json:"availableRooms"`
}
