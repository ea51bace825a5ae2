package admin

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/google/uuid"

	"github.com/yungbote/designhire-backend/internal/data/repos"
	"github.com/yungbote/designhire-backend/internal/data/repos/testutil"
	types "github.com/yungbote/designhire-backend/internal/domain"
	"github.com/yungbote/designhire-backend/internal/platform/apierr"
	"github.com/yungbote/designhire-backend/internal/platform/dbctx"
)

func wantAPIErr(t *testing.T, err error, status int, code string) {
	t.Helper()
	var ae *apierr.Error
	if !errors.As(err, &ae) {
		t.Fatalf("expected *apierr.Error, got %v", err)
	}
	if ae.Status != status || ae.Code != code {
		t.Fatalf("want %d/%s got %d/%s (%v)", status, code, ae.Status, ae.Code, ae.Err)
	}
}

func TestAdminUserManagement(t *testing.T) {
	db := testutil.DB(t)
	log := testutil.Logger(t)
	ctx := context.Background()
	users := repos.NewUserRepo(db, log)
	uc := New(UsecasesDeps{Log: log, Users: users})

	adminUser := testutil.SeedUser(t, ctx, db, types.RoleAdmin)
	designer := testutil.SeedUser(t, ctx, db, types.RoleDesigner)
	testutil.SeedUser(t, ctx, db, types.RoleHirer)

	designers, err := uc.ListUsers(ctx, ListUsersInput{Role: "designer"})
	if err != nil {
		t.Fatalf("ListUsers: %v", err)
	}
	if len(designers) != 1 || designers[0].ID != designer.ID {
		t.Fatalf("role filter: got %d users", len(designers))
	}
	_, err = uc.ListUsers(ctx, ListUsersInput{Role: "owner"})
	wantAPIErr(t, err, http.StatusBadRequest, "invalid_role")

	if _, err := uc.Deactivate(ctx, adminUser.ID, designer.ID); err != nil {
		t.Fatalf("Deactivate: %v", err)
	}
	inactive := false
	got, err := uc.ListUsers(ctx, ListUsersInput{IsActive: &inactive})
	if err != nil || len(got) != 1 || got[0].ID != designer.ID {
		t.Fatalf("inactive filter: users=%v err=%v", got, err)
	}
	if _, err := uc.Activate(ctx, designer.ID); err != nil {
		t.Fatalf("Activate: %v", err)
	}
	reloaded, _ := users.GetByID(dbctx.Context{Ctx: ctx}, designer.ID)
	if !reloaded.IsActive {
		t.Fatalf("user should be active again")
	}

	_, err = uc.Deactivate(ctx, adminUser.ID, adminUser.ID)
	wantAPIErr(t, err, http.StatusBadRequest, "self_deactivation")

	_, err = uc.Activate(ctx, uuid.New())
	wantAPIErr(t, err, http.StatusNotFound, "user_not_found")

	res, err := uc.ChangeRole(ctx, designer.ID, "Hirer")
	if err != nil {
		t.Fatalf("ChangeRole: %v", err)
	}
	if res.NewRole != types.RoleHirer {
		t.Fatalf("new role: got=%s", res.NewRole)
	}
	_, err = uc.ChangeRole(ctx, designer.ID, "superuser")
	wantAPIErr(t, err, http.StatusBadRequest, "invalid_role")
}
