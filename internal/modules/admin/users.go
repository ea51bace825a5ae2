package admin

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/yungbote/designhire-backend/internal/data/repos"
	types "github.com/yungbote/designhire-backend/internal/domain"
	"github.com/yungbote/designhire-backend/internal/domain/user"
	"github.com/yungbote/designhire-backend/internal/platform/apierr"
	"github.com/yungbote/designhire-backend/internal/platform/dbctx"
)

const (
	DefaultListLimit = 50
	MaxListLimit     = 100
)

type ListUsersInput struct {
	Role     string
	IsActive *bool
	Skip     int
	Limit    int
}

type UserStatusResult struct {
	Message string    `json:"message"`
	UserID  uuid.UUID `json:"user_id"`
}

type RoleResult struct {
	Message string    `json:"message"`
	UserID  uuid.UUID `json:"user_id"`
	NewRole string    `json:"new_role"`
}

func invalidRole() error {
	return apierr.BadRequest("invalid_role",
		fmt.Sprintf("Invalid role. Must be one of: %s, %s, %s", types.RoleDesigner, types.RoleHirer, types.RoleAdmin))
}

func (u Usecases) ListUsers(ctx context.Context, in ListUsersInput) ([]*types.User, error) {
	role := strings.ToLower(strings.TrimSpace(in.Role))
	if role != "" && !user.ValidRole(role) {
		return nil, invalidRole()
	}
	if in.Skip < 0 || in.Limit < 0 || in.Limit > MaxListLimit {
		return nil, apierr.BadRequest("invalid_paging", fmt.Sprintf("skip must be >= 0 and limit between 1 and %d", MaxListLimit))
	}
	limit := in.Limit
	if limit == 0 {
		limit = DefaultListLimit
	}
	out, err := u.deps.Users.List(dbctx.Context{Ctx: ctx}, repos.UserFilter{Role: role, IsActive: in.IsActive}, in.Skip, limit)
	if err != nil {
		return nil, apierr.Internal("list_users_failed", err)
	}
	return out, nil
}

func (u Usecases) loadUser(ctx context.Context, id uuid.UUID) (*types.User, error) {
	target, err := u.deps.Users.GetByID(dbctx.Context{Ctx: ctx}, id)
	if err != nil {
		return nil, apierr.Internal("load_user_failed", err)
	}
	if target == nil {
		return nil, apierr.NotFound("user_not_found", "User not found")
	}
	return target, nil
}

func (u Usecases) Activate(ctx context.Context, id uuid.UUID) (*UserStatusResult, error) {
	if _, err := u.loadUser(ctx, id); err != nil {
		return nil, err
	}
	if err := u.deps.Users.UpdateFields(dbctx.Context{Ctx: ctx}, id, map[string]interface{}{"is_active": true}); err != nil {
		return nil, apierr.Internal("update_user_failed", err)
	}
	u.deps.Log.Info("User activated", "user_id", id)
	return &UserStatusResult{Message: "User activated successfully", UserID: id}, nil
}

func (u Usecases) Deactivate(ctx context.Context, adminID, id uuid.UUID) (*UserStatusResult, error) {
	if adminID == id {
		return nil, apierr.BadRequest("self_deactivation", "You cannot deactivate your own account")
	}
	if _, err := u.loadUser(ctx, id); err != nil {
		return nil, err
	}
	if err := u.deps.Users.UpdateFields(dbctx.Context{Ctx: ctx}, id, map[string]interface{}{"is_active": false}); err != nil {
		return nil, apierr.Internal("update_user_failed", err)
	}
	u.deps.Log.Info("User deactivated", "user_id", id, "admin_id", adminID)
	return &UserStatusResult{Message: "User deactivated successfully", UserID: id}, nil
}

func (u Usecases) ChangeRole(ctx context.Context, id uuid.UUID, newRole string) (*RoleResult, error) {
	role := strings.ToLower(strings.TrimSpace(newRole))
	if !user.ValidRole(role) {
		return nil, invalidRole()
	}
	if _, err := u.loadUser(ctx, id); err != nil {
		return nil, err
	}
	if err := u.deps.Users.UpdateFields(dbctx.Context{Ctx: ctx}, id, map[string]interface{}{"role": role}); err != nil {
		return nil, apierr.Internal("update_user_failed", err)
	}
	u.deps.Log.Info("User role changed", "user_id", id, "role", role)
	return &RoleResult{Message: "User role updated successfully", UserID: id, NewRole: role}, nil
}
