package payments

import (
	"encoding/json"
	"testing"

	"github.com/google/uuid"
	stripe "github.com/stripe/stripe-go/v76"

	"github.com/kwame-owusu/staybay/internal/models"
)

func sessionWith(t *testing.T, items []models.OrderItem, meta map[string]string) *stripe.CheckoutSession {
	t.Helper()
	if meta == nil {
		meta = map[string]string{}
	}
	if _, ok := meta["items"]; !ok && items != nil {
		b, err := json.Marshal(items)
		if err != nil {
			t.Fatalf("marshal items: %v", err)
		}
		meta["items"] = string(b)
	}
	return &stripe.CheckoutSession{
		ID:          "cs_test_abc",
		AmountTotal: 23000,
		Metadata:    meta,
	}
}

func TestConfirmationFromSession(t *testing.T) {
	customerID := uuid.New()
	hotelID := uuid.New()
	ownerID := uuid.New()
	items := []models.OrderItem{
		{Kind: models.ItemKindRoom, RefID: uuid.New(), Name: "Deluxe", Quantity: 2, UnitPrice: 100},
		{Kind: models.ItemKindFood, RefID: uuid.New(), Name: "Waakye", Quantity: 2, UnitPrice: 15},
	}

	s := sessionWith(t, items, map[string]string{
		"customer_id": customerID.String(),
		"hotel_id":    hotelID.String(),
		"owner_id":    ownerID.String(),
	})

	conf, err := ConfirmationFromSession(s)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if conf.SessionID != "cs_test_abc" {
		t.Errorf("session ID = %s", conf.SessionID)
	}
	if conf.CustomerID != customerID || conf.HotelID != hotelID || conf.OwnerID != ownerID {
		t.Error("IDs did not round-trip through metadata")
	}
	if len(conf.Items) != 2 || conf.Items[0].Quantity != 2 || conf.Items[1].Name != "Waakye" {
		t.Errorf("items did not round-trip: %+v", conf.Items)
	}
	if conf.Total != 230 {
		t.Errorf("total = %v, want 230 (from %d cents)", conf.Total, s.AmountTotal)
	}
}

func TestConfirmationFromSessionRejectsBadMetadata(t *testing.T) {
	items := []models.OrderItem{{Kind: models.ItemKindRoom, RefID: uuid.New(), Quantity: 1}}
	valid := map[string]string{
		"customer_id": uuid.NewString(),
		"hotel_id":    uuid.NewString(),
		"owner_id":    uuid.NewString(),
	}

	cases := []struct {
		name   string
		mutate func(m map[string]string)
	}{
		{"missing customer", func(m map[string]string) { delete(m, "customer_id") }},
		{"bad hotel", func(m map[string]string) { m["hotel_id"] = "not-a-uuid" }},
		{"missing owner", func(m map[string]string) { delete(m, "owner_id") }},
		{"bad items", func(m map[string]string) { m["items"] = "{" }},
		{"empty items", func(m map[string]string) { m["items"] = "[]" }},
	}

	for _, tc := range cases {
		meta := map[string]string{}
		for k, v := range valid {
			meta[k] = v
		}
		s := sessionWith(t, items, meta)
		tc.mutate(s.Metadata)

		if _, err := ConfirmationFromSession(s); err == nil {
			t.Errorf("%s: expected error", tc.name)
		}
	}
}

func TestConfirmationFromSessionRequiresID(t *testing.T) {
	if _, err := ConfirmationFromSession(&stripe.CheckoutSession{}); err == nil {
		t.Error("session without ID accepted")
	}
}
