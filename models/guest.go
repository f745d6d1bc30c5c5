package models

// Guest is an upstream-owned guest profile, kept independently of any
// single reservation so repeat stays share one record.
type Guest struct {
	ID    uint   `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone,omitempty"`
}

type Pagination struct {
	Page       int `json:"page"`
	TotalPages int `json:"totalPages"`
	Total      int `json:"total"`
}

// GuestPage is the paginated guest listing (searchable by name or email).
type GuestPage struct {
	Data       []Guest    `json:"data"`
	Pagination Pagination `json:"pagination"`
}

// AdminUser is a hostel-scoped administrator account. Credentials live
// upstream; the password only travels on creation.
type AdminUser struct {
	ID       uint   `json:"id"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	HostelID uint   `json:"hostelId"`
}

type CreateAdminUserRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	HostelID uint   `json:"hostelId"`
}
