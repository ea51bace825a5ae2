package handlers

import (
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/yungbote/designhire-backend/internal/http/response"
	"github.com/yungbote/designhire-backend/internal/platform/apierr"
	"github.com/yungbote/designhire-backend/internal/platform/ctxutil"
)

// caller returns the authenticated user. RequireAuth guarantees it on
// protected routes; the 401 covers misconfigured routers.
func caller(c *gin.Context) (*ctxutil.RequestData, bool) {
	rd := ctxutil.GetRequestData(c.Request.Context())
	if rd == nil || rd.UserID == uuid.Nil {
		response.RespondAPIError(c, apierr.Unauthorized("unauthorized", "Not authenticated"))
		return nil, false
	}
	return rd, true
}

func pathUUID(c *gin.Context, name, code string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		response.RespondAPIError(c, apierr.BadRequest(code, "Invalid "+name))
		return uuid.Nil, false
	}
	return id, true
}

func queryInt(c *gin.Context, name string, def int) (int, bool) {
	raw := strings.TrimSpace(c.Query(name))
	if raw == "" {
		return def, true
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		response.RespondAPIError(c, apierr.BadRequest("invalid_request", name+" must be an integer"))
		return 0, false
	}
	return n, true
}

func queryFloat(c *gin.Context, name string) (*float64, bool) {
	raw := strings.TrimSpace(c.Query(name))
	if raw == "" {
		return nil, true
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		response.RespondAPIError(c, apierr.BadRequest("invalid_request", name+" must be a number"))
		return nil, false
	}
	return &f, true
}

func queryBool(c *gin.Context, name string) (*bool, bool) {
	raw := strings.TrimSpace(c.Query(name))
	if raw == "" {
		return nil, true
	}
	b, err := strconv.ParseBool(raw)
	if err != nil {
		response.RespondAPIError(c, apierr.BadRequest("invalid_request", name+" must be a boolean"))
		return nil, false
	}
	return &b, true
}

func paging(c *gin.Context) (skip, limit int, ok bool) {
	if skip, ok = queryInt(c, "skip", 0); !ok {
		return 0, 0, false
	}
	if limit, ok = queryInt(c, "limit", 0); !ok {
		return 0, 0, false
	}
	return skip, limit, true
}

// queryList accepts both ?k=a&k=b and ?k=a,b.
func queryList(c *gin.Context, name string) []string {
	var out []string
	for _, v := range c.QueryArray(name) {
		for _, part := range strings.Split(v, ",") {
			if p := strings.TrimSpace(part); p != "" {
				out = append(out, p)
			}
		}
	}
	return out
}

func bindJSON(c *gin.Context, dst any) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		response.RespondAPIError(c, apierr.BadRequest("invalid_request", "Invalid request body: "+err.Error()))
		return false
	}
	return true
}
