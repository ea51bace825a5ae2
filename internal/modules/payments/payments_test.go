package payments

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/yungbote/designhire-backend/internal/data/repos"
	"github.com/yungbote/designhire-backend/internal/data/repos/testutil"
	types "github.com/yungbote/designhire-backend/internal/domain"
	"github.com/yungbote/designhire-backend/internal/platform/apierr"
	"github.com/yungbote/designhire-backend/internal/platform/dbctx"
)

var t0 = time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

func newTestUsecases(t *testing.T) (Usecases, *gorm.DB, repos.ListingRepo) {
	t.Helper()
	db := testutil.DB(t)
	log := testutil.Logger(t)
	listingRepo := repos.NewListingRepo(db, log)
	return New(UsecasesDeps{
		DB:       db,
		Log:      log,
		Payments: repos.NewPaymentRepo(db, log),
		Listings: listingRepo,
		Now:      func() time.Time { return t0 },
	}), db, listingRepo
}

func expectAPIErr(t *testing.T, err error, status int, code string) {
	t.Helper()
	var ae *apierr.Error
	if !errors.As(err, &ae) {
		t.Fatalf("expected *apierr.Error, got %T (%v)", err, err)
	}
	if ae.Status != status || ae.Code != code {
		t.Fatalf("expected %d/%s, got %d/%s (%v)", status, code, ae.Status, ae.Code, ae.Err)
	}
}

func TestBoostCheckoutAndConfirm(t *testing.T) {
	uc, db, listingRepo := newTestUsecases(t)
	ctx := context.Background()
	owner := testutil.SeedUser(t, ctx, db, types.RoleHirer)
	other := testutil.SeedUser(t, ctx, db, types.RoleHirer)
	listing := testutil.SeedListing(t, ctx, db, owner.ID, "Designer")
	ownerActor := Actor{UserID: owner.ID, Role: owner.Role}

	_, err := uc.CreateBoostCheckout(ctx, Actor{UserID: other.ID, Role: other.Role}, listing.ID)
	expectAPIErr(t, err, http.StatusForbidden, "forbidden")
	_, err = uc.CreateBoostCheckout(ctx, ownerActor, uuid.New())
	expectAPIErr(t, err, http.StatusNotFound, "listing_not_found")

	session, err := uc.CreateBoostCheckout(ctx, ownerActor, listing.ID)
	if err != nil {
		t.Fatalf("CreateBoostCheckout: %v", err)
	}
	if session.SessionID != "cs_test_"+session.PaymentID.String() ||
		session.CheckoutURL != "https://checkout.stripe.com/pay/"+session.SessionID {
		t.Fatalf("unexpected session: %+v", session)
	}

	_, err = uc.ConfirmBoost(ctx, Actor{UserID: other.ID, Role: other.Role}, session.SessionID)
	expectAPIErr(t, err, http.StatusForbidden, "forbidden")
	_, err = uc.ConfirmBoost(ctx, ownerActor, "cs_test_missing")
	expectAPIErr(t, err, http.StatusNotFound, "payment_not_found")

	res, err := uc.ConfirmBoost(ctx, ownerActor, session.SessionID)
	if err != nil {
		t.Fatalf("ConfirmBoost: %v", err)
	}
	wantUntil := t0.Add(7 * 24 * time.Hour)
	if res.BoostedUntil == nil || !res.BoostedUntil.Equal(wantUntil) || res.Payment.Status != "completed" {
		t.Fatalf("unexpected confirm result: %+v", res)
	}

	boosted, err := listingRepo.GetByID(dbctx.Context{Ctx: ctx}, listing.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if !boosted.IsBoosted || boosted.BoostedUntil == nil || !boosted.BoostedUntil.Equal(wantUntil) {
		t.Fatalf("listing not boosted: %+v", boosted)
	}

	again, err := uc.ConfirmBoost(ctx, ownerActor, session.SessionID)
	if err != nil {
		t.Fatalf("second ConfirmBoost: %v", err)
	}
	if again.Payment.Status != "completed" || again.Message != "Boost already active" {
		t.Fatalf("unexpected second confirm: %+v", again)
	}

	mine, err := uc.Mine(ctx, owner.ID, 0, 0)
	if err != nil || len(mine) != 1 || mine[0].Amount != 10 || mine[0].Currency != "usd" {
		t.Fatalf("Mine: rows=%d err=%v", len(mine), err)
	}
}

func TestWebhookAcknowledges(t *testing.T) {
	uc, _, _ := newTestUsecases(t)
	if ack := uc.Webhook(context.Background(), []byte(`{"id":"evt_1","type":"checkout.session.completed"}`)); !ack.Received {
		t.Fatalf("webhook not acknowledged")
	}
	if ack := uc.Webhook(context.Background(), []byte("not json")); !ack.Received {
		t.Fatalf("webhook not acknowledged for bad payload")
	}
}
