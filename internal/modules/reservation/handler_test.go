package reservation

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"nyumbastay/internal/database"
	"nyumbastay/internal/domain"
	"nyumbastay/internal/repository"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// End-to-end flow over the real handler, service and sqlite-backed
// repositories: book, read masked, settle payment, read disclosed, confirm,
// cancel.

type flowEnv struct {
	router       *gin.Engine
	reservations *repository.ReservationRepository
	room         *domain.Room
}

func setupFlow(t *testing.T) *flowEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := database.Connect(filepath.Join(t.TempDir(), "flow_test.db"))
	require.NoError(t, err)

	reservations := repository.NewReservationRepository(db)
	rooms := repository.NewRoomRepository(db)
	require.NoError(t, reservations.Migrate())
	require.NoError(t, rooms.Migrate())

	room := &domain.Room{
		PropertyID:   1,
		RoomType:     "standard",
		NightlyRate:  5000,
		Capacity:     4,
		ContactPhone: "+254722000111",
		ContactEmail: "frontdesk@savannahstays.co.ke",
		Address:      "Moi Avenue 14, Nairobi",
		MapLink:      "https://maps.example.com/savannah-stays",
	}
	require.NoError(t, rooms.Create(context.Background(), room))

	service := NewService(reservations, rooms, nil)
	handler := NewHandler(service)

	router := gin.New()
	router.Use(func(c *gin.Context) {
		c.Set("user_id", int64(7))
		c.Set("role", "guest")
	})
	v1 := router.Group("/api/v1")
	handler.RegisterRoutes(v1)
	handler.RegisterPartnerRoutes(v1)

	return &flowEnv{router: router, reservations: reservations, room: room}
}

func (e *flowEnv) do(t *testing.T, method, path string, body any) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)

	var parsed map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &parsed))
	return w, parsed
}

func TestReservationFlow(t *testing.T) {
	env := setupFlow(t)

	checkIn := time.Now().AddDate(0, 0, 7).Truncate(24 * time.Hour)
	createBody := map[string]any{
		"room_id":     env.room.ID,
		"user_id":     7,
		"check_in":    checkIn.Format(time.RFC3339),
		"check_out":   checkIn.AddDate(0, 0, 3).Format(time.RFC3339),
		"guest_count": 2,
		"guest_name":  "Wanjiku Kamau",
		"guest_email": "wanjiku@gmail.com",
		"guest_phone": "+254712345678",
		"client_ref":  "flow-click-1",
	}

	// book: 3 nights at 5000 = 15000
	w, body := env.do(t, http.MethodPost, "/api/v1/reservations", createBody)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	created := body["data"].(map[string]any)["reservation"].(map[string]any)
	assert.Equal(t, float64(15000), created["total_amount"])
	assert.Equal(t, "pending", created["status"])
	id := int64(created["id"].(float64))

	// unpaid read: contact masked
	w, body = env.do(t, http.MethodGet, fmt.Sprintf("/api/v1/reservations/%d", id), nil)
	require.Equal(t, http.StatusOK, w.Code)
	view := body["data"].(map[string]any)["reservation"].(map[string]any)
	contact := view["contact"].(map[string]any)
	assert.Equal(t, false, contact["visible"])
	assert.Equal(t, "Available after payment", contact["phone"])
	assert.Equal(t, "upcoming", view["status"])

	// duplicate submit: same booking handed back, nothing new minted
	w, body = env.do(t, http.MethodPost, "/api/v1/reservations", createBody)
	require.Equal(t, http.StatusOK, w.Code)
	dup := body["data"].(map[string]any)
	assert.Equal(t, true, dup["duplicate"])
	assert.Equal(t, float64(id), dup["reservation"].(map[string]any)["id"])

	// settlement lands
	_, err := env.reservations.UpdatePaymentStatus(context.Background(), id, domain.PaymentPaid)
	require.NoError(t, err)

	// paid read: contact disclosed, lifecycle untouched
	w, body = env.do(t, http.MethodGet, fmt.Sprintf("/api/v1/reservations/%d", id), nil)
	require.Equal(t, http.StatusOK, w.Code)
	view = body["data"].(map[string]any)["reservation"].(map[string]any)
	contact = view["contact"].(map[string]any)
	assert.Equal(t, true, contact["visible"])
	assert.Equal(t, "+254722000111", contact["phone"])
	assert.Equal(t, "paid", view["payment_status"])
	assert.Equal(t, "upcoming", view["status"])

	// partner confirms
	w, body = env.do(t, http.MethodPatch, fmt.Sprintf("/api/v1/reservations/%d/status", id), map[string]any{"status": "confirmed"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	// repeating the transition is reported, not silently absorbed
	w, body = env.do(t, http.MethodPatch, fmt.Sprintf("/api/v1/reservations/%d/status", id), map[string]any{"status": "confirmed"})
	require.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "ALREADY_IN_STATUS", body["error"].(map[string]any)["code"])

	// cancel without the confirmation flag is refused
	w, body = env.do(t, http.MethodPost, fmt.Sprintf("/api/v1/reservations/%d/cancel", id), map[string]any{"reason": "changed plans"})
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "CONFIRMATION_REQUIRED", body["error"].(map[string]any)["code"])

	// confirmed cancel commits
	w, body = env.do(t, http.MethodPost, fmt.Sprintf("/api/v1/reservations/%d/cancel", id), map[string]any{"reason": "changed plans", "confirm": true})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	cancelled := body["data"].(map[string]any)["reservation"].(map[string]any)
	assert.Equal(t, "canceled", cancelled["status"])

	// the guest view reads it back as cancelled
	w, body = env.do(t, http.MethodGet, fmt.Sprintf("/api/v1/reservations/%d", id), nil)
	require.Equal(t, http.StatusOK, w.Code)
	view = body["data"].(map[string]any)["reservation"].(map[string]any)
	assert.Equal(t, "cancelled", view["status"])
}
