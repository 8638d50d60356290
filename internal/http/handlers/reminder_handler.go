// Address reminder HTTP handlers.
//
// This file exposes the REST endpoint for broadcasting mailing-address
// reminders within a match:
//   - POST /matches/{id}/address-reminders
//
// The caller supplies the match participants with their submission state;
// every participant still missing an address gets one ephemeral reminder
// naming the other participant. Inserts are best effort and the response
// carries the per-item tally.
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/lettermate/go-penpal-backend/internal/services"
)

// SendRemindersRequest is the JSON payload for an address reminder broadcast.
type SendRemindersRequest struct {
	// Participants are the match members with their address submission state.
	Participants []services.Participant `json:"participants" binding:"required,min=1,dive"`
}

// SendAddressReminders godoc
// @ID          sendAddressReminders
// @Summary     Remind participants to submit a mailing address
// @Description Creates one expiring reminder per participant who has not yet submitted an address.
// @Tags        Reminders
// @Accept      json
// @Produce     json
//
// @Param       id    path  string  true  "Match ID"
// @Param       body  body  handlers.SendRemindersRequest true "Participants payload"
//
// @Success     200  {object}  services.ReminderResult "Reminders created"
// @Failure     400  {object}  handlers.ErrorResponse  "Missing participants"
// @Failure     500  {object}  handlers.ErrorResponse  "Internal error"
// @Router      /matches/{id}/address-reminders [post]
func (h *Handlers) SendAddressReminders(c *gin.Context) {
	matchID := c.Param("id")

	var req SendRemindersRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "participants required")
		return
	}

	res, err := h.reminderSvc.Send(c.Request.Context(), matchID, req.Participants)
	if err != nil {
		switch err {
		case services.ErrMissingFields:
			fail(c, http.StatusBadRequest, ErrCodeBadRequest, "participants required")
		default:
			fail(c, http.StatusInternalServerError, ErrCodeInternal, err.Error())
		}
		return
	}

	ok(c, http.StatusOK, res)
}
