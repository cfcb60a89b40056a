package payments

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	stripe "github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/client"
	"github.com/stripe/stripe-go/v76/webhook"

	"github.com/kwame-owusu/staybay/internal/models"
)

// Checkout wraps the Stripe client. Order details ride on the checkout
// session as metadata so the webhook can rebuild the confirmation without a
// second lookup.
type Checkout struct {
	api           *client.API
	webhookSecret string
}

func NewCheckout(apiKey, webhookSecret string) *Checkout {
	sc := &client.API{}
	sc.Init(apiKey, nil)
	return &Checkout{
		api:           sc,
		webhookSecret: webhookSecret,
	}
}

// CreateSession opens a Stripe checkout session for the cart. The session ID
// Stripe assigns becomes the order's idempotency key once payment completes.
func (c *Checkout) CreateSession(ctx context.Context, conf *models.OrderConfirmation, successURL, cancelURL string) (*stripe.CheckoutSession, error) {
	if len(conf.Items) == 0 {
		return nil, fmt.Errorf("cart is empty")
	}

	var lineItems []*stripe.CheckoutSessionLineItemParams
	for _, item := range conf.Items {
		lineItems = append(lineItems, &stripe.CheckoutSessionLineItemParams{
			PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
				Currency: stripe.String(string(stripe.CurrencyUSD)),
				ProductData: &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
					Name: stripe.String(item.Name),
				},
				UnitAmount: stripe.Int64(int64(item.UnitPrice * 100)),
			},
			Quantity: stripe.Int64(int64(item.Quantity)),
		})
	}

	itemsJSON, err := json.Marshal(conf.Items)
	if err != nil {
		return nil, fmt.Errorf("failed to encode order items: %v", err)
	}

	params := &stripe.CheckoutSessionParams{
		Mode:       stripe.String(string(stripe.CheckoutSessionModePayment)),
		LineItems:  lineItems,
		SuccessURL: stripe.String(successURL),
		CancelURL:  stripe.String(cancelURL),
	}
	params.Context = ctx
	params.AddMetadata("customer_id", conf.CustomerID.String())
	params.AddMetadata("hotel_id", conf.HotelID.String())
	params.AddMetadata("owner_id", conf.OwnerID.String())
	params.AddMetadata("items", string(itemsJSON))

	session, err := c.api.CheckoutSessions.New(params)
	if err != nil {
		return nil, fmt.Errorf("failed to create checkout session: %v", err)
	}
	return session, nil
}

// ParseWebhook verifies the signature and, for a completed checkout, returns
// the order confirmation. Other event types return (nil, false, nil).
func (c *Checkout) ParseWebhook(payload []byte, sigHeader string) (*models.OrderConfirmation, bool, error) {
	event, err := webhook.ConstructEvent(payload, sigHeader, c.webhookSecret)
	if err != nil {
		return nil, false, fmt.Errorf("webhook signature verification failed: %v", err)
	}

	if event.Type != "checkout.session.completed" {
		return nil, false, nil
	}

	var session stripe.CheckoutSession
	if err := json.Unmarshal(event.Data.Raw, &session); err != nil {
		return nil, false, fmt.Errorf("failed to parse checkout session: %v", err)
	}

	conf, err := ConfirmationFromSession(&session)
	if err != nil {
		return nil, false, err
	}
	return conf, true, nil
}

// ConfirmationFromSession rebuilds the order confirmation from the metadata
// CreateSession attached.
func ConfirmationFromSession(s *stripe.CheckoutSession) (*models.OrderConfirmation, error) {
	if s.ID == "" {
		return nil, fmt.Errorf("session has no ID")
	}

	customerID, err := uuid.Parse(s.Metadata["customer_id"])
	if err != nil {
		return nil, fmt.Errorf("invalid customer_id in session metadata: %v", err)
	}
	hotelID, err := uuid.Parse(s.Metadata["hotel_id"])
	if err != nil {
		return nil, fmt.Errorf("invalid hotel_id in session metadata: %v", err)
	}
	ownerID, err := uuid.Parse(s.Metadata["owner_id"])
	if err != nil {
		return nil, fmt.Errorf("invalid owner_id in session metadata: %v", err)
	}

	var items []models.OrderItem
	if err := json.Unmarshal([]byte(s.Metadata["items"]), &items); err != nil {
		return nil, fmt.Errorf("invalid items in session metadata: %v", err)
	}
	if len(items) == 0 {
		return nil, fmt.Errorf("session metadata has no items")
	}

	return &models.OrderConfirmation{
		SessionID:  s.ID,
		CustomerID: customerID,
		HotelID:    hotelID,
		OwnerID:    ownerID,
		Items:      items,
		Total:      float64(s.AmountTotal) / 100,
	}, nil
}
