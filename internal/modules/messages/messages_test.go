package messages

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/yungbote/designhire-backend/internal/data/repos"
	"github.com/yungbote/designhire-backend/internal/data/repos/testutil"
	types "github.com/yungbote/designhire-backend/internal/domain"
	pkgerrors "github.com/yungbote/designhire-backend/internal/pkg/errors"
	"github.com/yungbote/designhire-backend/internal/platform/apierr"
	"github.com/yungbote/designhire-backend/internal/platform/dbctx"
)

func newTestUsecases(t *testing.T) (Usecases, *gorm.DB, repos.MatchRepo) {
	t.Helper()
	db := testutil.DB(t)
	log := testutil.Logger(t)
	matchRepo := repos.NewMatchRepo(db, log)
	return New(UsecasesDeps{
		Log:      log,
		Matches:  matchRepo,
		Messages: repos.NewMessageRepo(db, log),
	}), db, matchRepo
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

func TestSendAndList(t *testing.T) {
	uc, db, _ := newTestUsecases(t)
	ctx := context.Background()
	a := testutil.SeedUser(t, ctx, db, types.RoleDesigner)
	b := testutil.SeedUser(t, ctx, db, types.RoleHirer)
	m := testutil.SeedMatch(t, ctx, db, a.ID, b.ID)

	first, err := uc.Send(ctx, SendInput{SenderID: a.ID, MatchID: m.ID, Content: "  hello  "})
	if err != nil {
		t.Fatalf("Send: %v", err)
	}
	if first.Content != "hello" || first.Read {
		t.Fatalf("unexpected message: %+v", first)
	}
	time.Sleep(2 * time.Millisecond)
	if _, err := uc.Send(ctx, SendInput{SenderID: b.ID, MatchID: m.ID, Content: "hi back"}); err != nil {
		t.Fatalf("Send reply: %v", err)
	}

	rows, err := uc.ListForMatch(ctx, b.ID, m.ID, 0, 0)
	if err != nil {
		t.Fatalf("ListForMatch: %v", err)
	}
	if len(rows) != 2 || rows[0].ID != first.ID {
		t.Fatalf("expected oldest first, got %d rows", len(rows))
	}
}

func TestSendValidation(t *testing.T) {
	uc, db, _ := newTestUsecases(t)
	ctx := context.Background()
	a := testutil.SeedUser(t, ctx, db, types.RoleDesigner)
	b := testutil.SeedUser(t, ctx, db, types.RoleHirer)
	stranger := testutil.SeedUser(t, ctx, db, types.RoleHirer)
	m := testutil.SeedMatch(t, ctx, db, a.ID, b.ID)

	_, err := uc.Send(ctx, SendInput{SenderID: a.ID, MatchID: m.ID, Content: "   "})
	expectAPIErr(t, err, http.StatusBadRequest, "invalid_content")
	_, err = uc.Send(ctx, SendInput{SenderID: a.ID, MatchID: m.ID, Content: strings.Repeat("x", 5001)})
	expectAPIErr(t, err, http.StatusBadRequest, "invalid_content")
	if _, err := uc.Send(ctx, SendInput{SenderID: a.ID, MatchID: m.ID, Content: strings.Repeat("x", 5000)}); err != nil {
		t.Fatalf("5000 chars should be accepted: %v", err)
	}
	_, err = uc.Send(ctx, SendInput{SenderID: stranger.ID, MatchID: m.ID, Content: "hey"})
	expectAPIErr(t, err, http.StatusForbidden, "forbidden")
	_, err = uc.Send(ctx, SendInput{SenderID: a.ID, MatchID: uuid.New(), Content: "hey"})
	expectAPIErr(t, err, http.StatusNotFound, "match_not_found")
}

func TestSendAllowedAfterUnmatch(t *testing.T) {
	uc, db, matchRepo := newTestUsecases(t)
	ctx := context.Background()
	a := testutil.SeedUser(t, ctx, db, types.RoleDesigner)
	b := testutil.SeedUser(t, ctx, db, types.RoleHirer)
	m := testutil.SeedMatch(t, ctx, db, a.ID, b.ID)
	if err := matchRepo.Unmatch(dbctx.Context{Ctx: ctx}, m.ID, time.Now()); err != nil {
		t.Fatalf("Unmatch: %v", err)
	}
	if _, err := uc.Send(ctx, SendInput{SenderID: a.ID, MatchID: m.ID, Content: "still here"}); err != nil {
		t.Fatalf("Send on unmatched match: %v", err)
	}
}

func TestMarkRead(t *testing.T) {
	uc, db, _ := newTestUsecases(t)
	ctx := context.Background()
	a := testutil.SeedUser(t, ctx, db, types.RoleDesigner)
	b := testutil.SeedUser(t, ctx, db, types.RoleHirer)
	stranger := testutil.SeedUser(t, ctx, db, types.RoleHirer)
	m := testutil.SeedMatch(t, ctx, db, a.ID, b.ID)
	msg := testutil.SeedMessage(t, ctx, db, m.ID, a.ID, "ping")

	_, err := uc.MarkRead(ctx, a.ID, msg.ID)
	expectAPIErr(t, err, http.StatusBadRequest, "self_read")
	if !errors.Is(err, pkgerrors.ErrSelfRead) {
		t.Fatalf("expected ErrSelfRead sentinel")
	}
	_, err = uc.MarkRead(ctx, stranger.ID, msg.ID)
	expectAPIErr(t, err, http.StatusForbidden, "forbidden")
	_, err = uc.MarkRead(ctx, b.ID, uuid.New())
	expectAPIErr(t, err, http.StatusNotFound, "message_not_found")

	read, err := uc.MarkRead(ctx, b.ID, msg.ID)
	if err != nil {
		t.Fatalf("MarkRead: %v", err)
	}
	if !read.Read || read.ReadAt == nil {
		t.Fatalf("message not marked read: %+v", read)
	}
	if _, err := uc.MarkRead(ctx, b.ID, msg.ID); err != nil {
		t.Fatalf("second MarkRead: %v", err)
	}
}

func TestUnreadCountExcludesOwnAndUnmatched(t *testing.T) {
	uc, db, matchRepo := newTestUsecases(t)
	ctx := context.Background()
	a := testutil.SeedUser(t, ctx, db, types.RoleDesigner)
	b := testutil.SeedUser(t, ctx, db, types.RoleHirer)
	c := testutil.SeedUser(t, ctx, db, types.RoleHirer)
	ab := testutil.SeedMatch(t, ctx, db, a.ID, b.ID)
	ac := testutil.SeedMatch(t, ctx, db, c.ID, a.ID)

	testutil.SeedMessage(t, ctx, db, ab.ID, b.ID, "one")
	testutil.SeedMessage(t, ctx, db, ab.ID, b.ID, "two")
	testutil.SeedMessage(t, ctx, db, ab.ID, a.ID, "mine")
	testutil.SeedMessage(t, ctx, db, ac.ID, c.ID, "from c")

	got, err := uc.UnreadCount(ctx, a.ID)
	if err != nil {
		t.Fatalf("UnreadCount: %v", err)
	}
	if got.UnreadCount != 3 {
		t.Fatalf("unread = %d, want 3", got.UnreadCount)
	}

	if err := matchRepo.Unmatch(dbctx.Context{Ctx: ctx}, ac.ID, time.Now()); err != nil {
		t.Fatalf("Unmatch: %v", err)
	}
	got, err = uc.UnreadCount(ctx, a.ID)
	if err != nil {
		t.Fatalf("UnreadCount: %v", err)
	}
	if got.UnreadCount != 2 {
		t.Fatalf("unread after unmatch = %d, want 2", got.UnreadCount)
	}
}
