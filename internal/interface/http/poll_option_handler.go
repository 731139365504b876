package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/oksasatya/votiy-api/internal/application"
	"github.com/oksasatya/votiy-api/internal/domain/entity"
	"github.com/oksasatya/votiy-api/pkg/response"
)

type PollOptionHandler struct {
	Svc *application.PollOptionService
}

func NewPollOptionHandler(svc *application.PollOptionService) *PollOptionHandler {
	return &PollOptionHandler{Svc: svc}
}

type createOptionRequest struct {
	PollID      int64   `json:"poll_id"`
	Text        string  `json:"text"`
	Description *string `json:"description"`
	OrderIndex  int     `json:"order_index"`
}

type updateOptionRequest struct {
	Text        *string `json:"text"`
	Description *string `json:"description"`
	OrderIndex  *int    `json:"order_index"`
}

func (h *PollOptionHandler) list(c *gin.Context, pollID int64) {
	opts, err := h.Svc.List(c.Request.Context(), pollID)
	if err != nil {
		respondError(c, err)
		return
	}
	response.JSON(c, http.StatusOK, gin.H{"poll_options": opts})
}

// List GET /api/poll-options
func (h *PollOptionHandler) List(c *gin.Context) { h.list(c, 0) }

// ListByPoll GET /api/poll-options/poll/:pollId
func (h *PollOptionHandler) ListByPoll(c *gin.Context) {
	pollID, ok := int64Param(c, "pollId")
	if !ok {
		return
	}
	h.list(c, pollID)
}

// Get GET /api/poll-options/:id
func (h *PollOptionHandler) Get(c *gin.Context) {
	id, ok := int64Param(c, "id")
	if !ok {
		return
	}
	o, err := h.Svc.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	response.JSON(c, http.StatusOK, gin.H{"poll_option": o})
}

// Create POST /api/poll-options
func (h *PollOptionHandler) Create(c *gin.Context) {
	var req createOptionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	o, err := h.Svc.Create(c.Request.Context(), application.CreateOptionInput{
		PollID:      req.PollID,
		Text:        req.Text,
		Description: req.Description,
		OrderIndex:  req.OrderIndex,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	response.JSON(c, http.StatusCreated, gin.H{"poll_option": o})
}

// Update PUT /api/poll-options/:id
func (h *PollOptionHandler) Update(c *gin.Context) {
	id, ok := int64Param(c, "id")
	if !ok {
		return
	}
	var req updateOptionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	o, err := h.Svc.Update(c.Request.Context(), id, entity.PollOptionPatch{
		Text:        req.Text,
		Description: req.Description,
		OrderIndex:  req.OrderIndex,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	response.JSON(c, http.StatusOK, gin.H{"poll_option": o})
}

// Delete DELETE /api/poll-options/:id
func (h *PollOptionHandler) Delete(c *gin.Context) {
	id, ok := int64Param(c, "id")
	if !ok {
		return
	}
	if err := h.Svc.Delete(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	response.Message(c, http.StatusOK, "Poll option deleted successfully")
}
