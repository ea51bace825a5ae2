package matches

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
	pkgerrors "github.com/yungbote/designhire-backend/internal/pkg/errors"
	"github.com/yungbote/designhire-backend/internal/platform/apierr"
)

var t0 = time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

func newTestUsecases(t *testing.T) (Usecases, *gorm.DB) {
	t.Helper()
	db := testutil.DB(t)
	log := testutil.Logger(t)
	return New(UsecasesDeps{
		DB:           db,
		Log:          log,
		Profiles:     repos.NewProfileRepo(db, log),
		Interactions: repos.NewInteractionRepo(db, log),
		Matches:      repos.NewMatchRepo(db, log),
		Now:          func() time.Time { return t0 },
	}), db
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

type person struct {
	user    *types.User
	profile *types.Profile
}

func seedPerson(t *testing.T, ctx context.Context, db *gorm.DB, role string) person {
	t.Helper()
	u := testutil.SeedUser(t, ctx, db, role)
	return person{user: u, profile: testutil.SeedProfile(t, ctx, db, u.ID, "headline")}
}

func like(t *testing.T, ctx context.Context, db *gorm.DB, from, to person, at time.Time) {
	t.Helper()
	testutil.SeedInteraction(t, ctx, db, from.user.ID, types.TargetProfile, to.profile.ID, types.ActionLike, at)
}

func TestDetectMutualLikeScenario(t *testing.T) {
	uc, db := newTestUsecases(t)
	ctx := context.Background()
	a := seedPerson(t, ctx, db, types.RoleDesigner)
	b := seedPerson(t, ctx, db, types.RoleHirer)

	like(t, ctx, db, a, b, t0.Add(-2*time.Hour))
	like(t, ctx, db, b, a, t0.Add(-time.Hour))

	m, err := uc.DetectAndCreate(ctx, a.user.ID)
	if err != nil {
		t.Fatalf("DetectAndCreate(A): %v", err)
	}
	if m.User1ID != a.user.ID || m.User2ID != b.user.ID || m.MatchType != "like" || !m.IsActive || m.Unmatched {
		t.Fatalf("unexpected match: %+v", m)
	}

	_, err = uc.DetectAndCreate(ctx, b.user.ID)
	expectAPIErr(t, err, http.StatusNotFound, "no_new_matches")
	if !errors.Is(err, pkgerrors.ErrNoNewMatch) {
		t.Fatalf("expected ErrNoNewMatch sentinel")
	}
	_, err = uc.DetectAndCreate(ctx, a.user.ID)
	expectAPIErr(t, err, http.StatusNotFound, "no_new_matches")

	list, err := uc.List(ctx, b.user.ID, 0, 0)
	if err != nil || len(list) != 1 || list[0].ID != m.ID {
		t.Fatalf("List(B): rows=%d err=%v", len(list), err)
	}
}

func TestDetectWithoutReciprocityFindsNothing(t *testing.T) {
	uc, db := newTestUsecases(t)
	ctx := context.Background()
	a := seedPerson(t, ctx, db, types.RoleDesigner)
	b := seedPerson(t, ctx, db, types.RoleHirer)

	like(t, ctx, db, a, b, t0.Add(-time.Hour))
	testutil.SeedInteraction(t, ctx, db, b.user.ID, types.TargetProfile, a.profile.ID, types.ActionSkip, t0.Add(-time.Minute))

	_, err := uc.DetectAndCreate(ctx, a.user.ID)
	expectAPIErr(t, err, http.StatusNotFound, "no_new_matches")
}

func TestDetectReturnsEarliestLikedPeer(t *testing.T) {
	uc, db := newTestUsecases(t)
	ctx := context.Background()
	a := seedPerson(t, ctx, db, types.RoleDesigner)
	early := seedPerson(t, ctx, db, types.RoleHirer)
	late := seedPerson(t, ctx, db, types.RoleHirer)

	like(t, ctx, db, a, late, t0.Add(-time.Hour))
	like(t, ctx, db, a, early, t0.Add(-3*time.Hour))
	like(t, ctx, db, early, a, t0.Add(-30*time.Minute))
	like(t, ctx, db, late, a, t0.Add(-20*time.Minute))

	m, err := uc.DetectAndCreate(ctx, a.user.ID)
	if err != nil {
		t.Fatalf("DetectAndCreate: %v", err)
	}
	if m.User2ID != early.user.ID {
		t.Fatalf("expected earliest liked peer %s, got %s", early.user.ID, m.User2ID)
	}
	list, err := uc.List(ctx, a.user.ID, 0, 10)
	if err != nil || len(list) != 2 {
		t.Fatalf("expected both matches created, rows=%d err=%v", len(list), err)
	}
}

func TestUnmatchIsIdempotentAndHidesMatch(t *testing.T) {
	uc, db := newTestUsecases(t)
	ctx := context.Background()
	a := testutil.SeedUser(t, ctx, db, types.RoleDesigner)
	b := testutil.SeedUser(t, ctx, db, types.RoleHirer)
	m := testutil.SeedMatch(t, ctx, db, a.ID, b.ID)

	res, err := uc.Unmatch(ctx, b.ID, m.ID)
	if err != nil {
		t.Fatalf("Unmatch: %v", err)
	}
	if res.MatchID != m.ID || res.Message != "Match unmatched successfully" {
		t.Fatalf("unexpected result: %+v", res)
	}
	if _, err := uc.Unmatch(ctx, a.ID, m.ID); err != nil {
		t.Fatalf("second Unmatch: %v", err)
	}
	list, err := uc.List(ctx, a.ID, 0, 10)
	if err != nil || len(list) != 0 {
		t.Fatalf("unmatched match still listed: rows=%d err=%v", len(list), err)
	}
	got, err := uc.Get(ctx, a.ID, m.ID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if !got.Unmatched || got.IsActive || got.UnmatchedAt == nil {
		t.Fatalf("unexpected state after unmatch: %+v", got)
	}

	// An unmatched pair does not rematch.
	_, err = uc.DetectAndCreate(ctx, a.ID)
	expectAPIErr(t, err, http.StatusNotFound, "no_new_matches")
}

func TestGetAndUnmatchRequireMembership(t *testing.T) {
	uc, db := newTestUsecases(t)
	ctx := context.Background()
	a := testutil.SeedUser(t, ctx, db, types.RoleDesigner)
	b := testutil.SeedUser(t, ctx, db, types.RoleHirer)
	stranger := testutil.SeedUser(t, ctx, db, types.RoleHirer)
	m := testutil.SeedMatch(t, ctx, db, a.ID, b.ID)

	_, err := uc.Get(ctx, stranger.ID, m.ID)
	expectAPIErr(t, err, http.StatusForbidden, "forbidden")
	_, err = uc.Unmatch(ctx, stranger.ID, m.ID)
	expectAPIErr(t, err, http.StatusForbidden, "forbidden")
	_, err = uc.Get(ctx, a.ID, uuid.New())
	expectAPIErr(t, err, http.StatusNotFound, "match_not_found")
}
