package payments

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	types "github.com/yungbote/designhire-backend/internal/domain"
	"github.com/yungbote/designhire-backend/internal/domain/marketplace"
	"github.com/yungbote/designhire-backend/internal/platform/apierr"
	"github.com/yungbote/designhire-backend/internal/platform/dbctx"
)

const (
	BoostPrice        = 10.00
	BoostCurrency     = "usd"
	BoostDuration     = 7 * 24 * time.Hour
	checkoutURLPrefix = "https://checkout.stripe.com/pay/"
	sessionPrefix     = "cs_test_"

	DefaultListLimit = 50
	MaxListLimit     = 100
)

type Actor struct {
	UserID uuid.UUID
	Role   string
}

type CheckoutSession struct {
	SessionID   string    `json:"session_id"`
	CheckoutURL string    `json:"checkout_url"`
	PaymentID   uuid.UUID `json:"payment_id"`
}

type ConfirmResult struct {
	Message      string         `json:"message"`
	BoostedUntil *time.Time     `json:"boosted_until"`
	Payment      *types.Payment `json:"payment"`
}

type WebhookAck struct {
	Received bool `json:"received"`
}

// CreateBoostCheckout records a pending boost payment and returns a
// simulated hosted-checkout session for it.
func (u Usecases) CreateBoostCheckout(ctx context.Context, actor Actor, listingID uuid.UUID) (*CheckoutSession, error) {
	dbc := dbctx.Context{Ctx: ctx}
	listing, err := u.deps.Listings.GetByID(dbc, listingID)
	if err != nil {
		return nil, apierr.Internal("load_listing_failed", err)
	}
	if listing == nil {
		return nil, apierr.NotFound("listing_not_found", "Listing not found")
	}
	if listing.UserID != actor.UserID && actor.Role != types.RoleAdmin {
		return nil, apierr.Forbidden("You don't own this listing")
	}

	now := u.deps.Now().UTC()
	paymentID := uuid.New()
	sessionID := sessionPrefix + paymentID.String()
	meta, _ := json.Marshal(map[string]any{"listing_title": listing.Title, "boost_days": int(BoostDuration.Hours() / 24)})
	lid := listing.ID
	payment := &types.Payment{
		ID:                      paymentID,
		UserID:                  actor.UserID,
		PaymentType:             marketplace.PaymentTypeBoost,
		StripeCheckoutSessionID: &sessionID,
		Amount:                  BoostPrice,
		Currency:                BoostCurrency,
		Status:                  marketplace.PaymentStatusPending,
		ListingID:               &lid,
		Metadata:                datatypes.JSON(meta),
		CreatedAt:               now,
		UpdatedAt:               now,
	}
	if _, err := u.deps.Payments.Create(dbc, []*types.Payment{payment}); err != nil {
		return nil, apierr.Internal("create_payment_failed", err)
	}
	if u.deps.Log != nil {
		u.deps.Log.Info("Boost checkout created", "payment_id", payment.ID, "listing_id", listing.ID, "user_id", actor.UserID)
	}
	return &CheckoutSession{
		SessionID:   sessionID,
		CheckoutURL: checkoutURLPrefix + sessionID,
		PaymentID:   payment.ID,
	}, nil
}

// ConfirmBoost completes the payment and boosts its listing. Confirming an
// already completed payment returns it unchanged.
func (u Usecases) ConfirmBoost(ctx context.Context, actor Actor, sessionID string) (*ConfirmResult, error) {
	sessionID = strings.TrimSpace(sessionID)
	if sessionID == "" {
		return nil, apierr.BadRequest("invalid_request", "session_id is required")
	}
	payment, err := u.deps.Payments.GetByCheckoutSessionID(dbctx.Context{Ctx: ctx}, sessionID)
	if err != nil {
		return nil, apierr.Internal("load_payment_failed", err)
	}
	if payment == nil {
		return nil, apierr.NotFound("payment_not_found", "Payment not found")
	}
	if payment.UserID != actor.UserID {
		return nil, apierr.Forbidden("Not your payment")
	}
	if payment.Status == marketplace.PaymentStatusCompleted {
		var until *time.Time
		if payment.ListingID != nil {
			if l, err := u.deps.Listings.GetByID(dbctx.Context{Ctx: ctx}, *payment.ListingID); err == nil && l != nil {
				until = l.BoostedUntil
			}
		}
		return &ConfirmResult{Message: "Boost already active", BoostedUntil: until, Payment: payment}, nil
	}

	now := u.deps.Now().UTC()
	var boostedUntil *time.Time
	err = u.deps.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		dbc := dbctx.Context{Ctx: ctx, Tx: tx}
		if payment.ListingID != nil {
			listing, err := u.deps.Listings.GetByID(dbc, *payment.ListingID)
			if err != nil {
				return fmt.Errorf("load listing: %w", err)
			}
			if listing != nil {
				until := now.Add(BoostDuration)
				if err := u.deps.Listings.UpdateFields(dbc, listing.ID, map[string]interface{}{
					"is_boosted":    true,
					"boosted_until": until,
				}); err != nil {
					return fmt.Errorf("boost listing: %w", err)
				}
				boostedUntil = &until
			}
		}
		return u.deps.Payments.UpdateFields(dbc, payment.ID, map[string]interface{}{
			"status":       marketplace.PaymentStatusCompleted,
			"completed_at": now,
		})
	})
	if err != nil {
		return nil, apierr.Internal("confirm_payment_failed", err)
	}
	payment.Status = marketplace.PaymentStatusCompleted
	payment.CompletedAt = &now
	payment.UpdatedAt = now
	if u.deps.Log != nil {
		u.deps.Log.Info("Boost activated", "payment_id", payment.ID, "listing_id", payment.ListingID)
	}
	if u.deps.OnCompleted != nil {
		u.deps.OnCompleted(payment.PaymentType, payment.Amount)
	}
	return &ConfirmResult{Message: "Boost activated successfully", BoostedUntil: boostedUntil, Payment: payment}, nil
}

func (u Usecases) Mine(ctx context.Context, actorID uuid.UUID, skip, limit int) ([]*types.Payment, error) {
	if limit == 0 {
		limit = DefaultListLimit
	}
	if skip < 0 || limit < 1 || limit > MaxListLimit {
		return nil, apierr.BadRequest("invalid_paging", fmt.Sprintf("skip must be >= 0 and limit between 1 and %d", MaxListLimit))
	}
	rows, err := u.deps.Payments.ListByUser(dbctx.Context{Ctx: ctx}, actorID, skip, limit)
	if err != nil {
		return nil, apierr.Internal("list_payments_failed", err)
	}
	return rows, nil
}

// Webhook acknowledges provider events. Signatures are not verified.
func (u Usecases) Webhook(ctx context.Context, payload []byte) *WebhookAck {
	var evt struct {
		ID   string `json:"id"`
		Type string `json:"type"`
	}
	if err := json.Unmarshal(payload, &evt); err != nil {
		if u.deps.Log != nil {
			u.deps.Log.Warn("Webhook payload not JSON", "bytes", len(payload))
		}
		return &WebhookAck{Received: true}
	}
	if u.deps.Log != nil {
		u.deps.Log.Info("Webhook received", "event_id", evt.ID, "event_type", evt.Type)
	}
	return &WebhookAck{Received: true}
}
