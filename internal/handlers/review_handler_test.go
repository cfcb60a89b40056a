package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/kwame-owusu/staybay/internal/helpers"
	"github.com/kwame-owusu/staybay/internal/models"
	"github.com/kwame-owusu/staybay/internal/services"
	"github.com/kwame-owusu/staybay/internal/store"
)

func setClaims(userID uuid.UUID, role string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set("user", &helpers.EnhancedClaims{
			UserID: userID.String(),
			Role:   role,
		})
		c.Next()
	}
}

func newReviewRouter(m *store.MemStore, userID uuid.UUID, role string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	svc := services.NewRatingService(m, nil)

	r := gin.New()
	r.PUT("/hotels/:id/reviews", setClaims(userID, role), UpsertReview(svc))
	r.DELETE("/hotels/:id/reviews", setClaims(userID, role), DeleteOwnReview(svc))
	r.DELETE("/hotels/:id/reviews/:customer_id", setClaims(userID, role), ModerateReview(svc))
	return r
}

func TestUpsertReviewHandler(t *testing.T) {
	m := store.NewMemStore()
	hotelID := uuid.New()
	customerID := uuid.New()
	m.SeedHotel(models.Hotel{ID: hotelID})

	r := newReviewRouter(m, customerID, models.RoleCustomer)

	req := httptest.NewRequest(http.MethodPut, "/hotels/"+hotelID.String()+"/reviews",
		strings.NewReader(`{"rating": 4, "comment": "clean rooms"}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}

	var res models.ApiResponse
	if err := json.Unmarshal(w.Body.Bytes(), &res); err != nil {
		t.Fatalf("bad response body: %v", err)
	}
	if !res.Success {
		t.Errorf("expected success response, got %s", w.Body.String())
	}

	h, _ := m.Hotel(hotelID)
	if h.AvgRating != 4 || h.ReviewCount != 1 {
		t.Errorf("aggregate = (%v, %d), want (4, 1)", h.AvgRating, h.ReviewCount)
	}
}

func TestUpsertReviewHandlerRejectsBadPayload(t *testing.T) {
	m := store.NewMemStore()
	hotelID := uuid.New()
	m.SeedHotel(models.Hotel{ID: hotelID})

	r := newReviewRouter(m, uuid.New(), models.RoleCustomer)

	cases := []string{
		`{"rating": 0}`,
		`{"rating": 6}`,
		`{"comment": "no rating"}`,
		`not json`,
	}
	for _, body := range cases {
		req := httptest.NewRequest(http.MethodPut, "/hotels/"+hotelID.String()+"/reviews",
			strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusBadRequest {
			t.Errorf("body %q: status = %d, want 400", body, w.Code)
		}
	}
}

func TestUpsertReviewHandlerMissingHotel(t *testing.T) {
	r := newReviewRouter(store.NewMemStore(), uuid.New(), models.RoleCustomer)

	req := httptest.NewRequest(http.MethodPut, "/hotels/"+uuid.NewString()+"/reviews",
		strings.NewReader(`{"rating": 3}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", w.Code)
	}
}

func TestDeleteOwnReviewHandler(t *testing.T) {
	m := store.NewMemStore()
	hotelID := uuid.New()
	customerID := uuid.New()
	m.SeedHotel(models.Hotel{ID: hotelID})

	r := newReviewRouter(m, customerID, models.RoleCustomer)

	put := httptest.NewRequest(http.MethodPut, "/hotels/"+hotelID.String()+"/reviews",
		strings.NewReader(`{"rating": 5}`))
	put.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, put)
	if w.Code != http.StatusOK {
		t.Fatalf("put status = %d", w.Code)
	}

	del := httptest.NewRequest(http.MethodDelete, "/hotels/"+hotelID.String()+"/reviews", nil)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, del)
	if w.Code != http.StatusOK {
		t.Fatalf("delete status = %d, body = %s", w.Code, w.Body.String())
	}

	h, _ := m.Hotel(hotelID)
	if h.AvgRating != 0 || h.ReviewCount != 0 {
		t.Errorf("aggregate = (%v, %d), want (0, 0)", h.AvgRating, h.ReviewCount)
	}

	// Deleting again is a 404.
	del = httptest.NewRequest(http.MethodDelete, "/hotels/"+hotelID.String()+"/reviews", nil)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, del)
	if w.Code != http.StatusNotFound {
		t.Errorf("second delete status = %d, want 404", w.Code)
	}
}

func TestModerateReviewHandler(t *testing.T) {
	m := store.NewMemStore()
	hotelID := uuid.New()
	customerID := uuid.New()
	adminID := uuid.New()
	m.SeedHotel(models.Hotel{ID: hotelID})

	customerRouter := newReviewRouter(m, customerID, models.RoleCustomer)
	put := httptest.NewRequest(http.MethodPut, "/hotels/"+hotelID.String()+"/reviews",
		strings.NewReader(`{"rating": 1, "comment": "spam"}`))
	put.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	customerRouter.ServeHTTP(w, put)
	if w.Code != http.StatusOK {
		t.Fatalf("put status = %d", w.Code)
	}

	adminRouter := newReviewRouter(m, adminID, models.RoleAdmin)
	del := httptest.NewRequest(http.MethodDelete,
		"/hotels/"+hotelID.String()+"/reviews/"+customerID.String(), nil)
	w = httptest.NewRecorder()
	adminRouter.ServeHTTP(w, del)
	if w.Code != http.StatusOK {
		t.Fatalf("moderate status = %d, body = %s", w.Code, w.Body.String())
	}

	if got := len(m.Reviews(hotelID)); got != 0 {
		t.Errorf("review survived moderation, count = %d", got)
	}
}
