package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/yungbote/designhire-backend/internal/http/response"
	"github.com/yungbote/designhire-backend/internal/modules/admin"
)

type AdminHandler struct {
	admin admin.Usecases
}

func NewAdminHandler(uc admin.Usecases) *AdminHandler {
	return &AdminHandler{admin: uc}
}

// GET /api/admin/users?role=&is_active=&skip=&limit=
func (h *AdminHandler) ListUsers(c *gin.Context) {
	skip, limit, ok := paging(c)
	if !ok {
		return
	}
	active, ok := queryBool(c, "is_active")
	if !ok {
		return
	}
	users, err := h.admin.ListUsers(c.Request.Context(), admin.ListUsersInput{
		Role:     c.Query("role"),
		IsActive: active,
		Skip:     skip,
		Limit:    limit,
	})
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	response.RespondOK(c, users)
}

// PUT /api/admin/users/:id/activate
func (h *AdminHandler) Activate(c *gin.Context) {
	id, ok := pathUUID(c, "id", "invalid_user_id")
	if !ok {
		return
	}
	res, err := h.admin.Activate(c.Request.Context(), id)
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	response.RespondOK(c, res)
}

// PUT /api/admin/users/:id/deactivate
func (h *AdminHandler) Deactivate(c *gin.Context) {
	rd, ok := caller(c)
	if !ok {
		return
	}
	id, ok := pathUUID(c, "id", "invalid_user_id")
	if !ok {
		return
	}
	res, err := h.admin.Deactivate(c.Request.Context(), rd.UserID, id)
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	response.RespondOK(c, res)
}

// PUT /api/admin/users/:id/role?new_role=designer
// A JSON body {"role": "..."} is accepted as well.
func (h *AdminHandler) ChangeRole(c *gin.Context) {
	id, ok := pathUUID(c, "id", "invalid_user_id")
	if !ok {
		return
	}
	role := c.Query("new_role")
	if role == "" && c.Request.ContentLength > 0 {
		var req struct {
			Role string `json:"role"`
		}
		if !bindJSON(c, &req) {
			return
		}
		role = req.Role
	}
	res, err := h.admin.ChangeRole(c.Request.Context(), id, role)
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	response.RespondOK(c, res)
}
