package models

type Reservation struct {
	ID            uint    `json:"id"`
	ReferenceCode string  `json:"referenceCode,omitempty"`
	RoomID        uint    `json:"roomId"`
	RoomName      string  `json:"roomName,omitempty"`
	HostelID      uint    `json:"hostelId,omitempty"`
	Name          string  `json:"name"`
	Email         string  `json:"email"`
	From          string  `json:"from"`
	To            string  `json:"to"`
	Guests        int     `json:"guests"`
	PaymentMethod string  `json:"paymentMethod,omitempty"`
	IsResident    bool    `json:"isResident"`
	LoyaltyTier   string  `json:"loyaltyTier,omitempty"`
	Status        string  `json:"status,omitempty"`
	Total         float64 `json:"total"`
	PaidAmount    float64 `json:"paidAmount,omitempty"`
	CreatedAt     string  `json:"createdAt,omitempty"`
}

// CreateReservationRequest is the public booking payload forwarded
// upstream. PaymentMethod and loyalty flags are derived from the
// PricingSelection, never taken raw from the client.
type CreateReservationRequest struct {
	Name           string `json:"name"`
	Email          string `json:"email"`
	RoomID         uint   `json:"roomId"`
	From           string `json:"from"`
	To             string `json:"to"`
	Guests         int    `json:"guests"`
	PaymentMethod  string `json:"paymentMethod"`
	IsResident     bool   `json:"isResident"`
	HasLoyaltyCard bool   `json:"hasLoyaltyCard"`
	LoyaltyTier    string `json:"loyaltyTier,omitempty"`
	Lang           string `json:"lang,omitempty"`
}

type CreateReservationResult struct {
	Reservation Reservation `json:"reservation"`
	Total       float64     `json:"total"`
}

type Payment struct {
	ID            uint    `json:"id"`
	ReservationID uint    `json:"reservationId"`
	Amount        float64 `json:"amount"`
	Method        string  `json:"method"`
	Note          string  `json:"note,omitempty"`
	CreatedAt     string  `json:"createdAt,omitempty"`
}

type ChannelSyncLog struct {
	ID            uint   `json:"id"`
	HostelID      uint   `json:"hostelId"`
	ExternalResID string `json:"externalResId"`
	Channel       string `json:"channel,omitempty"`
	Status        string `json:"status"`
	Message       string `json:"message,omitempty"`
	CreatedAt     string `json:"createdAt,omitempty"`
}

// ChannelSyncLogPage is the paginated log listing.
type ChannelSyncLogPage struct {
	Items []ChannelSyncLog `json:"items"`
	Total int              `json:"total"`
}

type Operator struct {
	ID       uint   `json:"id"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	Role     string `json:"role,omitempty"`
	HostelID uint   `json:"hostelId,omitempty"`
	Active   bool   `json:"active"`
}

type OccupancyRow struct {
	Date     string `json:"date"`
	RoomID   uint   `json:"roomId,omitempty"`
	RoomName string `json:"roomName,omitempty"`
	Guests   int    `json:"guests"`
	Capacity int    `json:"capacity"`
}

type IncomeRow struct {
	Period string  `json:"period"`
	Amount float64 `json:"amount"`
}
