package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/yungbote/designhire-backend/internal/http/response"
	"github.com/yungbote/designhire-backend/internal/modules/listings"
	"github.com/yungbote/designhire-backend/internal/platform/ctxutil"
)

type ListingHandler struct {
	listings listings.Usecases
}

func NewListingHandler(uc listings.Usecases) *ListingHandler {
	return &ListingHandler{listings: uc}
}

func listingActor(rd *ctxutil.RequestData) listings.Actor {
	return listings.Actor{UserID: rd.UserID, Role: rd.Role}
}

// POST /api/listings
func (h *ListingHandler) Create(c *gin.Context) {
	rd, ok := caller(c)
	if !ok {
		return
	}
	var in listings.ListingInput
	if !bindJSON(c, &in) {
		return
	}
	l, err := h.listings.Create(c.Request.Context(), listingActor(rd), in)
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	response.RespondCreated(c, l)
}

// GET /api/listings?status=&location=&remote_preference=&min_salary=&max_salary=&skills=a,b
func (h *ListingHandler) Search(c *gin.Context) {
	skip, limit, ok := paging(c)
	if !ok {
		return
	}
	minSalary, ok := queryFloat(c, "min_salary")
	if !ok {
		return
	}
	maxSalary, ok := queryFloat(c, "max_salary")
	if !ok {
		return
	}
	cards, err := h.listings.Search(c.Request.Context(), listings.SearchInput{
		Status:           c.Query("status"),
		Location:         c.Query("location"),
		RemotePreference: c.Query("remote_preference"),
		MinSalary:        minSalary,
		MaxSalary:        maxSalary,
		Skills:           queryList(c, "skills"),
		Skip:             skip,
		Limit:            limit,
	})
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	response.RespondOK(c, cards)
}

// GET /api/listings/my-listings
func (h *ListingHandler) Mine(c *gin.Context) {
	rd, ok := caller(c)
	if !ok {
		return
	}
	skip, limit, ok := paging(c)
	if !ok {
		return
	}
	rows, err := h.listings.Mine(c.Request.Context(), rd.UserID, skip, limit)
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	response.RespondOK(c, rows)
}

// GET /api/listings/:id
func (h *ListingHandler) Get(c *gin.Context) {
	id, ok := pathUUID(c, "id", "invalid_listing_id")
	if !ok {
		return
	}
	l, err := h.listings.Get(c.Request.Context(), id)
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	response.RespondOK(c, l)
}

// PUT /api/listings/:id
func (h *ListingHandler) Update(c *gin.Context) {
	rd, ok := caller(c)
	if !ok {
		return
	}
	id, ok := pathUUID(c, "id", "invalid_listing_id")
	if !ok {
		return
	}
	var in listings.ListingInput
	if !bindJSON(c, &in) {
		return
	}
	l, err := h.listings.Update(c.Request.Context(), listingActor(rd), id, in)
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	response.RespondOK(c, l)
}

// DELETE /api/listings/:id
func (h *ListingHandler) Delete(c *gin.Context) {
	rd, ok := caller(c)
	if !ok {
		return
	}
	id, ok := pathUUID(c, "id", "invalid_listing_id")
	if !ok {
		return
	}
	res, err := h.listings.Delete(c.Request.Context(), listingActor(rd), id)
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	response.RespondOK(c, res)
}
