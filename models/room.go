package models

type Room struct {
	ID       uint     `json:"id"`
	HostelID uint     `json:"hostelId,omitempty"`
	Slug     string   `json:"slug"`
	Name     string   `json:"name"`
	Capacity int      `json:"capacity"`
	Price    float64  `json:"price,omitempty"`
	Features []string `json:"features,omitempty"`
}

// RoomAvailability is one cell of the dashboard availability calendar:
// how many guests are booked into the room on that date.
type RoomAvailability struct {
	Date   string `json:"date"`
	Guests int    `json:"guests"`
}

// RoomCalendar is one row of the calendar: a room plus its per-day load.
type RoomCalendar struct {
	ID           uint               `json:"id"`
	Name         string             `json:"name"`
	Capacity     int                `json:"capacity"`
	Availability []RoomAvailability `json:"availability"`
}
