// Mission HTTP handlers.
//
// This file exposes REST endpoints for letter missions and matches:
//   - POST /missions/{id}/cancel-request  (file a cancellation request)
//   - GET  /missions/{id}                 (fetch one mission)
//   - GET  /matches/{id}                  (fetch one match)
//
// Handlers are transport-thin: they validate input, call application services,
// and translate results into HTTP responses. Filing a cancellation never
// mutates the mission itself; it creates a pending request plus a pending
// penalty that an administrator later resolves.
package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/lettermate/go-penpal-backend/internal/repo"
	"github.com/lettermate/go-penpal-backend/internal/services"
)

//
// DTOs
//

// CancelMissionRequest is the JSON payload for filing a cancellation request.
type CancelMissionRequest struct {
	// RequesterName labels the requester in the admin review screen.
	RequesterName string `json:"requester_name" example:"Alice"`
	// PartnerID identifies the other mission participant.
	PartnerID string `json:"partner_id" binding:"required,min=1" example:"user456"`
	// PartnerName labels the partner in the admin review screen.
	PartnerName string `json:"partner_name" example:"Bob"`
	// Reason explains why the requester wants out. It must be non-empty.
	Reason string `json:"reason" binding:"required,min=1" example:"My pen pal stopped replying"`
}

// CancelMissionResponse reports the records created by a cancellation request.
type CancelMissionResponse struct {
	CancelRequestID string `json:"cancel_request_id" example:"0b4f5b3a-7e41-4a1e-9a64-2a3f8c9d1e00"`
	PenaltyID       string `json:"penalty_id"        example:"6f1d2c3b-8a90-4f12-bc45-7d8e9f0a1b2c"`
}

//
// Handlers
//

// CancelMission godoc
// @ID          cancelMission
// @Summary     Request cancellation of a mission
// @Description Files a pending cancellation request and a pending penalty against the requester.
// @Description The mission itself stays active until an administrator approves the request.
// @Tags        Missions
// @Accept      json
// @Produce     json
//
// @Param       X-User-ID  header  string  true  "Requesting participant"  example(user123)
// @Param       id         path    string  true  "Mission ID"
// @Param       body       body    handlers.CancelMissionRequest true "Cancellation payload"
//
// @Success     201  {object}  handlers.CancelMissionResponse  "Request filed"
// @Failure     400  {object}  handlers.ErrorResponse          "Missing fields"
// @Failure     404  {object}  handlers.ErrorResponse          "Mission not found"
// @Failure     409  {object}  handlers.ErrorResponse          "Mission already cancelled"
// @Failure     500  {object}  handlers.ErrorResponse          "Internal error"
// @Router      /missions/{id}/cancel-request [post]
func (h *Handlers) CancelMission(c *gin.Context) {
	missionID := c.Param("id")

	var req CancelMissionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "partner_id and reason required")
		return
	}

	out, err := h.cancelSvc.Request(c.Request.Context(), missionID, userID(c), req.RequesterName, req.PartnerID, req.PartnerName, req.Reason)
	if err != nil {
		switch err {
		case services.ErrMissingFields:
			fail(c, http.StatusBadRequest, ErrCodeBadRequest, "partner_id and reason required")
		case services.ErrMissionNotFound:
			fail(c, http.StatusNotFound, ErrCodeNotFound, "mission not found")
		case services.ErrAlreadyCancelled:
			fail(c, http.StatusConflict, ErrCodeConflict, "mission already cancelled")
		default:
			fail(c, http.StatusInternalServerError, ErrCodeInternal, err.Error())
		}
		return
	}

	ok(c, http.StatusCreated, CancelMissionResponse{
		CancelRequestID: out.CancelRequestID,
		PenaltyID:       out.PenaltyID,
	})
}

// GetMission godoc
// @ID          getMission
// @Summary     Fetch a mission
// @Description Returns one letter mission by id.
// @Tags        Missions
// @Produce     json
//
// @Param       id  path  string  true  "Mission ID"
//
// @Success     200  {object}  domain.LetterMission
// @Failure     404  {object}  handlers.ErrorResponse "Mission not found"
// @Failure     500  {object}  handlers.ErrorResponse "Internal error"
// @Router      /missions/{id} [get]
func (h *Handlers) GetMission(c *gin.Context) {
	db := h.rewardDB()
	if db == nil {
		fail(c, http.StatusInternalServerError, ErrCodeInternal, "storage unavailable")
		return
	}

	m, err := repo.GetMission(c.Request.Context(), db, c.Param("id"))
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			fail(c, http.StatusNotFound, ErrCodeNotFound, "mission not found")
			return
		}
		fail(c, http.StatusInternalServerError, ErrCodeInternal, err.Error())
		return
	}
	ok(c, http.StatusOK, m)
}

// GetMatch godoc
// @ID          getMatch
// @Summary     Fetch a match
// @Description Returns one pen pal match by id.
// @Tags        Matches
// @Produce     json
//
// @Param       id  path  string  true  "Match ID"
//
// @Success     200  {object}  domain.PenpalMatch
// @Failure     404  {object}  handlers.ErrorResponse "Match not found"
// @Failure     500  {object}  handlers.ErrorResponse "Internal error"
// @Router      /matches/{id} [get]
func (h *Handlers) GetMatch(c *gin.Context) {
	db := h.rewardDB()
	if db == nil {
		fail(c, http.StatusInternalServerError, ErrCodeInternal, "storage unavailable")
		return
	}

	m, err := repo.GetMatch(c.Request.Context(), db, c.Param("id"))
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			fail(c, http.StatusNotFound, ErrCodeNotFound, "match not found")
			return
		}
		fail(c, http.StatusInternalServerError, ErrCodeInternal, err.Error())
		return
	}
	ok(c, http.StatusOK, m)
}
