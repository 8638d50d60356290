// Dispute HTTP handlers.
//
// This file exposes the REST endpoint for reporting letter non-delivery:
//   - POST /proofs/{id}/dispute  (receiver reports a letter as never arrived)
//
// A dispute may only be opened by the recorded receiver, only once per proof,
// and only after the configured waiting period (whole days since the letter
// was sent). The service fans out operator and sender notifications best
// effort; the response carries the per-item tally.
package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/lettermate/go-penpal-backend/internal/services"
)

// ReportDisputeRequest is the JSON payload for a non-delivery report.
type ReportDisputeRequest struct {
	// Reason describes the non-delivery from the receiver's side.
	Reason string `json:"reason" binding:"required,min=1" example:"Nothing arrived after three weeks"`
}

// ReportDispute godoc
// @ID          reportDispute
// @Summary     Report a letter as not delivered
// @Description Marks the letter proof disputed and alerts the operations team and the sender.
// @Description Only the recorded receiver may report, and only after the waiting period has passed.
// @Tags        Disputes
// @Accept      json
// @Produce     json
//
// @Param       X-User-ID  header  string  true  "Reporting receiver"  example(user123)
// @Param       id         path    string  true  "Letter proof ID"
// @Param       body       body    handlers.ReportDisputeRequest true "Dispute payload"
//
// @Success     200  {object}  services.DisputeResult  "Dispute filed"
// @Failure     400  {object}  handlers.ErrorResponse  "Too early or bad input"
// @Failure     403  {object}  handlers.ErrorResponse  "Caller is not the receiver"
// @Failure     404  {object}  handlers.ErrorResponse  "Proof not found"
// @Failure     409  {object}  handlers.ErrorResponse  "Already disputed"
// @Failure     500  {object}  handlers.ErrorResponse  "Internal error"
// @Router      /proofs/{id}/dispute [post]
func (h *Handlers) ReportDispute(c *gin.Context) {
	proofID := c.Param("id")

	var req ReportDisputeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "reason required")
		return
	}

	res, err := h.disputeSvc.Report(c.Request.Context(), proofID, userID(c), req.Reason)
	if err != nil {
		// ErrDisputeTooEarly arrives wrapped with the elapsed-day count, so
		// this mapping matches by errors.Is rather than identity.
		switch {
		case errors.Is(err, services.ErrMissingFields):
			fail(c, http.StatusBadRequest, ErrCodeBadRequest, "reason required")
		case errors.Is(err, services.ErrProofNotFound):
			fail(c, http.StatusNotFound, ErrCodeNotFound, "letter proof not found")
		case errors.Is(err, services.ErrNotReceiver):
			fail(c, http.StatusForbidden, ErrCodeForbidden, "only the receiver may report non-delivery")
		case errors.Is(err, services.ErrAlreadyDisputed):
			fail(c, http.StatusConflict, ErrCodeConflict, "proof already disputed")
		case errors.Is(err, services.ErrDisputeTooEarly):
			fail(c, http.StatusBadRequest, ErrCodeDisputeTooEarly, err.Error())
		default:
			fail(c, http.StatusInternalServerError, ErrCodeInternal, err.Error())
		}
		return
	}

	ok(c, http.StatusOK, res)
}
