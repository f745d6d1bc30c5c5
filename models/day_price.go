package models

// DayPrice is the nightly rate and sellable capacity for one (room, date)
// cell. Dates travel as YYYY-MM-DD strings. AvailableCapacity nil means
// "unconstrained, use room capacity". At most one record exists per cell;
// the backend owns uniqueness.
type DayPrice struct {
	ID                uint     `json:"id"`
	RoomID            uint     `json:"roomId"`
	Date              string   `json:"date"`
	Price             *float64 `json:"price,omitempty"`
	AvailableCapacity *int     `json:"availableCapacity,omitempty"`
}

// DayPriceFields carries a partial update: nil fields are left untouched
// upstream.
type DayPriceFields struct {
	Price             *float64 `json:"price,omitempty"`
	AvailableCapacity *int     `json:"availableCapacity,omitempty"`
}

func (f DayPriceFields) Empty() bool {
	return f.Price == nil && f.AvailableCapacity == nil
}

// Populated reports whether the cell would count as a conflict for a bulk
// overwrite: any non-null price or capacity.
func (p DayPrice) Populated() bool {
	return p.Price != nil || p.AvailableCapacity != nil
}
