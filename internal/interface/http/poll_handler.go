package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/oksasatya/votiy-api/internal/application"
	"github.com/oksasatya/votiy-api/internal/domain/entity"
	"github.com/oksasatya/votiy-api/pkg/response"
)

type PollHandler struct {
	Svc *application.PollService
}

func NewPollHandler(svc *application.PollService) *PollHandler {
	return &PollHandler{Svc: svc}
}

type pollOptionRequest struct {
	Text        string  `json:"text" binding:"required,notblank"`
	Description *string `json:"description"`
	OrderIndex  *int    `json:"order_index"`
}

type createPollRequest struct {
	Title       string              `json:"title" binding:"required,notblank"`
	Description string              `json:"description"`
	StartDate   *time.Time          `json:"startDate"`
	EndDate     *time.Time          `json:"endDate"`
	IsPublic    *bool               `json:"isPublic"`
	Options     []pollOptionRequest `json:"options" binding:"omitempty,dive"`
}

// input defaults a missing order_index to the option's position in the request.
func (r createPollRequest) input() application.CreatePollInput {
	in := application.CreatePollInput{
		Title:       r.Title,
		Description: r.Description,
		StartDate:   r.StartDate,
		EndDate:     r.EndDate,
		IsPublic:    r.IsPublic,
	}
	for i, o := range r.Options {
		idx := i
		if o.OrderIndex != nil {
			idx = *o.OrderIndex
		}
		in.Options = append(in.Options, application.OptionInput{Text: o.Text, Description: o.Description, OrderIndex: idx})
	}
	return in
}

type updatePollRequest struct {
	Title       *string    `json:"title"`
	Description *string    `json:"description"`
	StartDate   *time.Time `json:"startDate"`
	EndDate     *time.Time `json:"endDate"`
	IsPublic    *bool      `json:"isPublic"`
}

// List GET /api/polls
func (h *PollHandler) List(c *gin.Context) {
	polls, err := h.Svc.ListPublic(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	response.JSON(c, http.StatusOK, gin.H{"polls": polls})
}

// MyPolls GET /api/polls/my-polls
func (h *PollHandler) MyPolls(c *gin.Context) {
	polls, err := h.Svc.ListByCreator(c.Request.Context(), currentUserID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	response.JSON(c, http.StatusOK, gin.H{"polls": polls})
}

// Search GET /api/polls/search?q=&size=
func (h *PollHandler) Search(c *gin.Context) {
	size, _ := strconv.Atoi(c.Query("size"))
	polls, err := h.Svc.SearchPublic(c.Request.Context(), c.Query("q"), size)
	if err != nil {
		respondError(c, err)
		return
	}
	response.JSON(c, http.StatusOK, gin.H{"polls": polls})
}

// Get GET /api/polls/:id
func (h *PollHandler) Get(c *gin.Context) {
	id, ok := int64Param(c, "id")
	if !ok {
		return
	}
	p, err := h.Svc.Get(c.Request.Context(), id, currentUserID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	response.JSON(c, http.StatusOK, gin.H{"poll": p})
}

// Create POST /api/polls
func (h *PollHandler) Create(c *gin.Context) {
	var req createPollRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	p, err := h.Svc.Create(c.Request.Context(), currentUserID(c), req.input())
	if err != nil {
		respondError(c, err)
		return
	}
	response.JSON(c, http.StatusCreated, gin.H{"message": "Poll created successfully", "poll": p})
}

// Update PUT /api/polls/:id
func (h *PollHandler) Update(c *gin.Context) {
	id, ok := int64Param(c, "id")
	if !ok {
		return
	}
	var req updatePollRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	patch := entity.PollPatch{
		Title:       req.Title,
		Description: req.Description,
		StartDate:   req.StartDate,
		EndDate:     req.EndDate,
		IsPublic:    req.IsPublic,
	}
	p, err := h.Svc.Update(c.Request.Context(), id, currentUserID(c), patch)
	if err != nil {
		respondError(c, err)
		return
	}
	response.JSON(c, http.StatusOK, gin.H{"message": "Poll updated successfully", "poll": p})
}

// Delete DELETE /api/polls/:id
func (h *PollHandler) Delete(c *gin.Context) {
	id, ok := int64Param(c, "id")
	if !ok {
		return
	}
	if err := h.Svc.Delete(c.Request.Context(), id, currentUserID(c)); err != nil {
		respondError(c, err)
		return
	}
	response.Message(c, http.StatusOK, "Poll deleted successfully")
}
