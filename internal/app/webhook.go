package app

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/metinatakli/cinex-booking/api"
	"github.com/stripe/stripe-go/v82"
	"github.com/stripe/stripe-go/v82/webhook"
)

const (
	maxWebhookBytes = 65_536
	webhookEventTTL = 24 * time.Hour
)

var checkoutEvents = map[stripe.EventType]bool{
	stripe.EventTypeCheckoutSessionCompleted:             true,
	stripe.EventTypeCheckoutSessionAsyncPaymentSucceeded: true,
	stripe.EventTypeCheckoutSessionAsyncPaymentFailed:    true,
	stripe.EventTypeCheckoutSessionExpired:               true,
}

func webhookEventKey(eventID string) string {
	return "stripe_event:" + eventID
}

// HandleStripeWebhook verifies the event signature and reconciles the checkout
// session it refers to. The event payload is only used to find the session;
// its status is always read back from the provider. Each event id is processed
// once; a failed attempt releases the id so the provider's retry can succeed.
func (app *Application) HandleStripeWebhook(w http.ResponseWriter, r *http.Request, params api.HandleStripeWebhookParams) {
	logger := app.contextGetLogger(r)

	payload, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxWebhookBytes))
	if err != nil {
		app.badRequestResponse(w, r, errors.New("unable to read webhook payload"))
		return
	}

	event, err := webhook.ConstructEventWithOptions(
		payload,
		params.StripeSignature,
		app.config.Stripe.WebhookSecret,
		webhook.ConstructEventOptions{IgnoreAPIVersionMismatch: true},
	)
	if err != nil {
		logger.Warn("rejected webhook with invalid signature", "error", err)
		app.badRequestResponse(w, r, errors.New("invalid webhook signature"))
		return
	}

	logger = logger.With("event_id", event.ID, "event_type", string(event.Type))

	if !checkoutEvents[event.Type] {
		logger.Debug("ignoring webhook event")
		app.webhookAccepted(w, r, "event ignored")
		return
	}

	var cs stripe.CheckoutSession

	err = json.Unmarshal(event.Data.Raw, &cs)
	if err != nil || cs.ID == "" {
		logger.Error("failed to parse checkout session from webhook", "error", err)
		app.badRequestResponse(w, r, errors.New("webhook payload is not a checkout session"))
		return
	}

	key := webhookEventKey(event.ID)

	claimed, err := app.redis.SetNX(r.Context(), key, cs.ID, webhookEventTTL).Result()
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	if !claimed {
		logger.Info("webhook event already processed")
		app.webhookAccepted(w, r, "event already processed")
		return
	}

	err = app.bookings.ReconcilePayment(r.Context(), cs.ID, "status-"+event.ID)
	if err != nil {
		if delErr := app.redis.Del(context.WithoutCancel(r.Context()), key).Err(); delErr != nil {
			logger.Error("failed to release webhook event", "error", delErr)
		}

		app.bookingErrorResponse(w, r, err)
		return
	}

	logger.Info("webhook event processed", "payment_id", cs.ID)
	app.webhookAccepted(w, r, "event processed")
}

func (app *Application) webhookAccepted(w http.ResponseWriter, r *http.Request, message string) {
	err := app.writeJSON(w, http.StatusOK, api.MessageResponse{Message: message}, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}
