package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"totalhub-web/models"
)

// BackendClient is the typed client for the upstream booking backend, which
// owns all real state. Administrative calls take the request-scoped bearer
// token explicitly; nothing here reads ambient session state.
type BackendClient struct {
	BaseURL string
	Client  *http.Client
}

func NewBackendClient(baseURL string) *BackendClient {
	return &BackendClient{
		BaseURL: strings.TrimRight(baseURL, "/"),
		Client:  &http.Client{Timeout: 15 * time.Second},
	}
}

func (b *BackendClient) do(ctx context.Context, method, path, token string, query url.Values, body, out interface{}) error {
	endpoint := b.BaseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request body: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := b.Client.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrBackendUnavailable, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusUnauthorized:
		return ErrUnauthorized
	case resp.StatusCode >= 500:
		return fmt.Errorf("%w: status %d", ErrBackendUnavailable, resp.StatusCode)
	case resp.StatusCode >= 400:
		var apiErr struct {
			Message string `json:"message"`
		}
		_ = json.NewDecoder(resp.Body).Decode(&apiErr)
		return &BackendError{Status: resp.StatusCode, Message: apiErr.Message}
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode backend response: %w", err)
	}
	return nil
}

func roomIDValues(roomIDs []uint) url.Values {
	q := url.Values{}
	for _, id := range roomIDs {
		q.Add("roomIds[]", strconv.FormatUint(uint64(id), 10))
	}
	return q
}

// ---------------------------------------------------------------------
// Public booking flow
// ---------------------------------------------------------------------

func (b *BackendClient) SearchAvailability(ctx context.Context, from, to string, guests int) ([]models.AvailabilityResult, error) {
	q := url.Values{"from": {from}, "to": {to}, "guests": {strconv.Itoa(guests)}}
	var out []models.AvailabilityResult
	if err := b.do(ctx, http.MethodGet, "/public/availability", "", q, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (b *BackendClient) GetHostel(ctx context.Context, slug string) (*models.Hostel, error) {
	var out models.Hostel
	if err := b.do(ctx, http.MethodGet, "/public/hostels/"+slug, "", nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (b *BackendClient) GetRoom(ctx context.Context, slug, roomSlug string) (*models.Room, error) {
	var out models.Room
	if err := b.do(ctx, http.MethodGet, "/public/hostels/"+slug+"/rooms/"+roomSlug, "", nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// PricePreview asks the backend for the method/residency-specific nightly
// pricing. The discount is already reflected in the returned rates; no
// percentage math happens on this side.
func (b *BackendClient) PricePreview(ctx context.Context, slug string, stay models.Stay, isResident bool, paymentMethod string, hasLoyaltyCard bool, loyaltyTier string) (*models.ReservationQuote, error) {
	q := url.Values{
		"from":           {stay.From.Format("2006-01-02")},
		"to":             {stay.To.Format("2006-01-02")},
		"guests":         {strconv.Itoa(stay.Guests)},
		"isResident":     {strconv.FormatBool(isResident)},
		"paymentMethod":  {paymentMethod},
		"hasLoyaltyCard": {strconv.FormatBool(hasLoyaltyCard)},
		"loyaltyTier":    {loyaltyTier},
	}
	path := fmt.Sprintf("/public/hostels/preview/%s/%d", slug, stay.RoomID)
	var out models.ReservationQuote
	if err := b.do(ctx, http.MethodGet, path, "", q, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (b *BackendClient) CreateReservation(ctx context.Context, slug string, req models.CreateReservationRequest) (*models.CreateReservationResult, error) {
	endpoint := b.BaseURL + "/public/hostels/" + slug + "/reservations"
	payload, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal reservation: %w", err)
	}
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "application/json")
	// Retries after a network failure must not double-book.
	httpReq.Header.Set("Idempotency-Key", uuid.NewString())

	resp, err := b.Client.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBackendUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 500 {
		return nil, fmt.Errorf("%w: status %d", ErrBackendUnavailable, resp.StatusCode)
	}
	if resp.StatusCode >= 400 {
		var apiErr struct {
			Message string `json:"message"`
		}
		_ = json.NewDecoder(resp.Body).Decode(&apiErr)
		return nil, &BackendError{Status: resp.StatusCode, Message: apiErr.Message}
	}

	var out models.CreateReservationResult
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("failed to decode backend response: %w", err)
	}
	return &out, nil
}

func (b *BackendClient) LookupReservation(ctx context.Context, slug, email, reference string) (*models.Reservation, error) {
	q := url.Values{"email": {email}, "reference": {reference}}
	var out models.Reservation
	if err := b.do(ctx, http.MethodGet, "/public/hostels/"+slug+"/reservations/lookup", "", q, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ---------------------------------------------------------------------
// Day-price grid
// ---------------------------------------------------------------------

func (b *BackendClient) GetDayPrices(ctx context.Context, token string, roomIDs []uint, from, to string) ([]models.DayPrice, error) {
	q := roomIDValues(roomIDs)
	q.Set("from", from)
	q.Set("to", to)
	var out []models.DayPrice
	if err := b.do(ctx, http.MethodGet, "/day-prices", token, q, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (b *BackendClient) UpsertDayPrice(ctx context.Context, token string, roomID uint, date string, fields models.DayPriceFields) (*models.DayPrice, error) {
	body := struct {
		RoomID uint   `json:"roomId"`
		Date   string `json:"date"`
		models.DayPriceFields
	}{RoomID: roomID, Date: date, DayPriceFields: fields}

	var out models.DayPrice
	if err := b.do(ctx, http.MethodPost, "/day-prices", token, nil, body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (b *BackendClient) CheckBulkConflicts(ctx context.Context, token string, roomIDs []uint, from, to string) (bool, error) {
	body := struct {
		RoomIDs []uint `json:"roomIds"`
		From    string `json:"from"`
		To      string `json:"to"`
	}{roomIDs, from, to}

	var out struct {
		HasConflicts bool `json:"hasConflicts"`
	}
	if err := b.do(ctx, http.MethodPost, "/day-prices/conflicts", token, nil, body, &out); err != nil {
		return false, err
	}
	return out.HasConflicts, nil
}

// BulkUpsertDayPrices issues the single batch call; the backend applies the
// whole range and reports one aggregated written-count or one error. There
// is deliberately no per-day loop here.
func (b *BackendClient) BulkUpsertDayPrices(ctx context.Context, token string, roomIDs []uint, from, to string, fields models.DayPriceFields, overwrite bool) (int, error) {
	body := struct {
		RoomIDs   []uint `json:"roomIds"`
		From      string `json:"from"`
		To        string `json:"to"`
		Overwrite bool   `json:"overwrite"`
		models.DayPriceFields
	}{roomIDs, from, to, overwrite, fields}

	var out struct {
		Written int `json:"written"`
	}
	if err := b.do(ctx, http.MethodPost, "/day-prices/bulk", token, nil, body, &out); err != nil {
		return 0, err
	}
	return out.Written, nil
}

// ---------------------------------------------------------------------
// Dashboard
// ---------------------------------------------------------------------

func (b *BackendClient) ListReservations(ctx context.Context, token string, filters url.Values) ([]models.Reservation, error) {
	var out []models.Reservation
	if err := b.do(ctx, http.MethodGet, "/reservations", token, filters, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (b *BackendClient) GetReservation(ctx context.Context, token string, id uint) (*models.Reservation, error) {
	var out models.Reservation
	if err := b.do(ctx, http.MethodGet, fmt.Sprintf("/reservations/%d", id), token, nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (b *BackendClient) UpdateReservation(ctx context.Context, token string, id uint, patch map[string]interface{}) (*models.Reservation, error) {
	var out models.Reservation
	if err := b.do(ctx, http.MethodPatch, fmt.Sprintf("/reservations/%d", id), token, nil, patch, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (b *BackendClient) ReservationHistory(ctx context.Context, token string, filters url.Values) ([]models.Reservation, error) {
	var out []models.Reservation
	if err := b.do(ctx, http.MethodGet, "/reservations/history", token, filters, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (b *BackendClient) HostelCalendar(ctx context.Context, token, from, to string) ([]models.RoomCalendar, error) {
	q := url.Values{"from": {from}, "to": {to}}
	var out []models.RoomCalendar
	if err := b.do(ctx, http.MethodGet, "/reservations/calendar/hostel", token, q, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (b *BackendClient) OccupancyReport(ctx context.Context, token, from, to string) ([]models.OccupancyRow, error) {
	q := url.Values{"from": {from}, "to": {to}}
	var out []models.OccupancyRow
	if err := b.do(ctx, http.MethodGet, "/reservations/occupancy", token, q, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (b *BackendClient) IncomeReport(ctx context.Context, token, from, to string) ([]models.IncomeRow, error) {
	q := url.Values{"from": {from}, "to": {to}}
	var out []models.IncomeRow
	if err := b.do(ctx, http.MethodGet, "/reservations/income", token, q, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (b *BackendClient) ListPayments(ctx context.Context, token string, filters url.Values) ([]models.Payment, error) {
	var out []models.Payment
	if err := b.do(ctx, http.MethodGet, "/payments", token, filters, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (b *BackendClient) AddPayment(ctx context.Context, token string, reservationID uint, payment models.Payment) (*models.Payment, error) {
	var out models.Payment
	path := fmt.Sprintf("/reservations/%d/payments", reservationID)
	if err := b.do(ctx, http.MethodPost, path, token, nil, payment, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (b *BackendClient) ChannelSyncLogs(ctx context.Context, token string, filters url.Values) (*models.ChannelSyncLogPage, error) {
	var out models.ChannelSyncLogPage
	if err := b.do(ctx, http.MethodGet, "/channel-sync/logs", token, filters, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (b *BackendClient) ConfirmChannelSync(ctx context.Context, token string, id uint) error {
	return b.do(ctx, http.MethodPost, fmt.Sprintf("/channel-sync/logs/%d/confirm", id), token, nil, nil, nil)
}

func (b *BackendClient) ListGuests(ctx context.Context, token string, filters url.Values) (*models.GuestPage, error) {
	var out models.GuestPage
	if err := b.do(ctx, http.MethodGet, "/guests/all", token, filters, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (b *BackendClient) GetGuest(ctx context.Context, token string, id uint) (*models.Guest, error) {
	var out models.Guest
	if err := b.do(ctx, http.MethodGet, fmt.Sprintf("/guests/%d", id), token, nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (b *BackendClient) CreateGuest(ctx context.Context, token string, guest models.Guest) (*models.Guest, error) {
	var out models.Guest
	if err := b.do(ctx, http.MethodPost, "/guests", token, nil, guest, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (b *BackendClient) UpdateGuest(ctx context.Context, token string, id uint, patch map[string]interface{}) (*models.Guest, error) {
	var out models.Guest
	if err := b.do(ctx, http.MethodPut, fmt.Sprintf("/guests/%d", id), token, nil, patch, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// GuestPayments backs the guest detail view's payment history panel.
func (b *BackendClient) GuestPayments(ctx context.Context, token string, id uint) ([]models.Payment, error) {
	var out []models.Payment
	if err := b.do(ctx, http.MethodGet, fmt.Sprintf("/payments/by-guest/%d", id), token, nil, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (b *BackendClient) ListAdminUsers(ctx context.Context, token string) ([]models.AdminUser, error) {
	var out []models.AdminUser
	if err := b.do(ctx, http.MethodGet, "/admin-users", token, nil, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (b *BackendClient) CreateAdminUser(ctx context.Context, token string, req models.CreateAdminUserRequest) (*models.AdminUser, error) {
	var out models.AdminUser
	if err := b.do(ctx, http.MethodPost, "/admin-users", token, nil, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (b *BackendClient) UpdateAdminUser(ctx context.Context, token string, id uint, patch map[string]interface{}) (*models.AdminUser, error) {
	var out models.AdminUser
	if err := b.do(ctx, http.MethodPut, fmt.Sprintf("/admin-users/%d", id), token, nil, patch, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (b *BackendClient) ListOperators(ctx context.Context, token string) ([]models.Operator, error) {
	var out []models.Operator
	if err := b.do(ctx, http.MethodGet, "/operators", token, nil, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (b *BackendClient) GetOperator(ctx context.Context, token string, id uint) (*models.Operator, error) {
	var out models.Operator
	if err := b.do(ctx, http.MethodGet, fmt.Sprintf("/operators/%d", id), token, nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (b *BackendClient) CreateOperator(ctx context.Context, token string, op models.Operator) (*models.Operator, error) {
	var out models.Operator
	if err := b.do(ctx, http.MethodPost, "/operators", token, nil, op, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (b *BackendClient) UpdateOperator(ctx context.Context, token string, id uint, patch map[string]interface{}) (*models.Operator, error) {
	var out models.Operator
	if err := b.do(ctx, http.MethodPatch, fmt.Sprintf("/operators/%d", id), token, nil, patch, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (b *BackendClient) DeleteOperator(ctx context.Context, token string, id uint) error {
	return b.do(ctx, http.MethodDelete, fmt.Sprintf("/operators/%d", id), token, nil, nil, nil)
}

func (b *BackendClient) ListRooms(ctx context.Context, token string) ([]models.Room, error) {
	var out []models.Room
	if err := b.do(ctx, http.MethodGet, "/rooms", token, nil, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (b *BackendClient) CreateRoom(ctx context.Context, token string, room models.Room) (*models.Room, error) {
	var out models.Room
	if err := b.do(ctx, http.MethodPost, "/rooms", token, nil, room, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (b *BackendClient) UpdateRoom(ctx context.Context, token string, id uint, patch map[string]interface{}) (*models.Room, error) {
	var out models.Room
	if err := b.do(ctx, http.MethodPatch, fmt.Sprintf("/rooms/%d", id), token, nil, patch, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (b *BackendClient) DeleteRoom(ctx context.Context, token string, id uint) error {
	return b.do(ctx, http.MethodDelete, fmt.Sprintf("/rooms/%d", id), token, nil, nil, nil)
}

func (b *BackendClient) ListRoomTypes(ctx context.Context, token string) ([]models.RoomType, error) {
	var out []models.RoomType
	if err := b.do(ctx, http.MethodGet, "/room-types", token, nil, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (b *BackendClient) CreateRoomType(ctx context.Context, token string, rt models.RoomType) (*models.RoomType, error) {
	var out models.RoomType
	if err := b.do(ctx, http.MethodPost, "/room-types", token, nil, rt, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (b *BackendClient) DeleteRoomType(ctx context.Context, token string, id uint) error {
	return b.do(ctx, http.MethodDelete, fmt.Sprintf("/room-types/%d", id), token, nil, nil, nil)
}

func (b *BackendClient) ListHostels(ctx context.Context, token string) ([]models.Hostel, error) {
	var out []models.Hostel
	if err := b.do(ctx, http.MethodGet, "/hostels", token, nil, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (b *BackendClient) CreateHostel(ctx context.Context, token string, h models.Hostel) (*models.Hostel, error) {
	var out models.Hostel
	if err := b.do(ctx, http.MethodPost, "/hostels", token, nil, h, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (b *BackendClient) UpdateHostel(ctx context.Context, token string, id uint, patch map[string]interface{}) (*models.Hostel, error) {
	var out models.Hostel
	if err := b.do(ctx, http.MethodPatch, fmt.Sprintf("/hostels/%d", id), token, nil, patch, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Login exchanges credentials for a bearer token at the external auth
// collaborator. Credential policy lives upstream.
func (b *BackendClient) Login(ctx context.Context, email, password string) (string, error) {
	body := struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}{email, password}

	var out struct {
		Token string `json:"token"`
	}
	if err := b.do(ctx, http.MethodPost, "/auth/login", "", nil, body, &out); err != nil {
		return "", err
	}
	return out.Token, nil
}
