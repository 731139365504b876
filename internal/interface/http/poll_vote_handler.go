package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/oksasatya/votiy-api/internal/application"
	repo "github.com/oksasatya/votiy-api/internal/domain/repository"
	"github.com/oksasatya/votiy-api/pkg/response"
)

type PollVoteHandler struct {
	Svc *application.PollVoteService
}

func NewPollVoteHandler(svc *application.PollVoteService) *PollVoteHandler {
	return &PollVoteHandler{Svc: svc}
}

type castVoteRequest struct {
	PollID   int64  `json:"poll_id"`
	OptionID int64  `json:"option_id"`
	UserID   string `json:"user_id"`
}

type changeVoteRequest struct {
	OptionID int64 `json:"option_id"`
}

func (h *PollVoteHandler) list(c *gin.Context, f repo.VoteFilter) {
	votes, err := h.Svc.List(c.Request.Context(), f)
	if err != nil {
		respondError(c, err)
		return
	}
	response.JSON(c, http.StatusOK, gin.H{"poll_votes": votes})
}

// List GET /api/poll-votes
func (h *PollVoteHandler) List(c *gin.Context) { h.list(c, repo.VoteFilter{}) }

// ListByPoll GET /api/poll-votes/poll/:pollId
func (h *PollVoteHandler) ListByPoll(c *gin.Context) {
	pollID, ok := int64Param(c, "pollId")
	if !ok {
		return
	}
	h.list(c, repo.VoteFilter{PollID: pollID})
}

// ListByUser GET /api/poll-votes/user/:userId
func (h *PollVoteHandler) ListByUser(c *gin.Context) {
	userID, ok := userIDParam(c, "userId")
	if !ok {
		return
	}
	h.list(c, repo.VoteFilter{UserID: userID})
}

// Results GET /api/poll-votes/poll/:pollId/results
func (h *PollVoteHandler) Results(c *gin.Context) {
	pollID, ok := int64Param(c, "pollId")
	if !ok {
		return
	}
	tally, err := h.Svc.Results(c.Request.Context(), pollID)
	if err != nil {
		respondError(c, err)
		return
	}
	var total int64
	for _, t := range tally {
		total += t.Votes
	}
	response.JSON(c, http.StatusOK, gin.H{"poll_id": pollID, "results": tally, "total_votes": total})
}

// Get GET /api/poll-votes/:id
func (h *PollVoteHandler) Get(c *gin.Context) {
	id, ok := int64Param(c, "id")
	if !ok {
		return
	}
	v, err := h.Svc.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	response.JSON(c, http.StatusOK, gin.H{"poll_vote": v})
}

// Create POST /api/poll-votes. A repeated vote is a 400, not a 409, on this route.
func (h *PollVoteHandler) Create(c *gin.Context) {
	var req castVoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	v, err := h.Svc.Cast(c.Request.Context(), application.CastVoteInput{
		PollID:   req.PollID,
		OptionID: req.OptionID,
		UserID:   req.UserID,
	})
	if errors.Is(err, application.ErrAlreadyVoted) {
		response.Error(c, http.StatusBadRequest, application.ErrAlreadyVoted.Message, nil)
		return
	}
	if err != nil {
		respondError(c, err)
		return
	}
	response.JSON(c, http.StatusCreated, gin.H{"poll_vote": v})
}

// Update PUT /api/poll-votes/:id
func (h *PollVoteHandler) Update(c *gin.Context) {
	id, ok := int64Param(c, "id")
	if !ok {
		return
	}
	var req changeVoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	v, err := h.Svc.ChangeOption(c.Request.Context(), id, req.OptionID)
	if err != nil {
		respondError(c, err)
		return
	}
	response.JSON(c, http.StatusOK, gin.H{"poll_vote": v})
}

// Delete DELETE /api/poll-votes/:id
func (h *PollVoteHandler) Delete(c *gin.Context) {
	id, ok := int64Param(c, "id")
	if !ok {
		return
	}
	if err := h.Svc.Delete(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	response.Message(c, http.StatusOK, "Poll vote deleted successfully")
}
