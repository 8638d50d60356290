// Points HTTP handlers.
//
// This file exposes the REST endpoint for reading a user's point ledger:
//   - GET /users/{id}/points  (balance plus paginated history, ETag support)
//
// The balance is reported zero-valued for users without a ledger row yet, so
// clients never need to special-case first-time users. History pagination
// follows the page/page_size query convention with capped page sizes.
package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/lettermate/go-penpal-backend/internal/domain"
	"github.com/lettermate/go-penpal-backend/internal/repo"
	"github.com/lettermate/go-penpal-backend/internal/utils"
)

//
// DTOs
//

// Pagination carries pagination metadata for list responses.
type Pagination struct {
	Page       int   `json:"page"`
	PageSize   int   `json:"page_size"`
	Total      int64 `json:"total"`
	TotalPages int   `json:"total_pages"`
	HasNext    bool  `json:"has_next"`
}

// PointsResponse contains a user's balance and one page of ledger history.
type PointsResponse struct {
	// TotalPoints is the current spendable balance.
	TotalPoints int `json:"total_points" example:"150"`
	// EarnedPoints is the lifetime sum of credits.
	EarnedPoints int `json:"earned_points" example:"200"`
	// SpentPoints is the lifetime sum of debits.
	SpentPoints int `json:"spent_points" example:"50"`

	History    []domain.PointTransaction `json:"history"`
	Pagination Pagination                `json:"pagination"`
}

//
// Helpers
//

// clampHistoryPagination parses page/page_size from query parameters, applies
// sane defaults and caps, and returns the validated (page, pageSize).
func clampHistoryPagination(c *gin.Context) (page, pageSize int) {
	const (
		defaultPage     = 1
		defaultPageSize = 20
		maxPageSize     = 100
	)
	page = utils.AtoiDefault(c.Query("page"), defaultPage)
	if page < 1 {
		page = 1
	}
	pageSize = utils.ClampInt(utils.AtoiDefault(c.Query("page_size"), defaultPageSize), 1, maxPageSize)
	return
}

//
// Handlers
//

// GetPoints godoc
// @ID          getPoints
// @Summary     Read a user's point balance and history
// @Description Returns the ledger balance (zero-valued for users without one yet)
// @Description and a page of transaction history in append order.
// @Tags        Points
// @Produce     json
//
// @Param       id         path   string  true  "User ID"
// @Param       page       query  int     false "Page number"     minimum(1) default(1)
// @Param       page_size  query  int     false "Items per page"  minimum(1) maximum(100) default(20)
//
// @Success     200  {object} handlers.PointsResponse
// @Failure     500  {object} handlers.ErrorResponse "Internal error"
// @Router      /users/{id}/points [get]
func (h *Handlers) GetPoints(c *gin.Context) {
	ctx := c.Request.Context()
	uid := c.Param("id")

	db := h.rewardDB()
	if db == nil {
		fail(c, http.StatusInternalServerError, ErrCodeInternal, "storage unavailable")
		return
	}

	// ETag pre-check (best effort).
	count, maxTS, err := repo.LedgerStats(ctx, db, uid)
	if err == nil {
		var ts int64
		if maxTS != nil {
			ts = maxTS.Unix()
		}
		etag := fmt.Sprintf(`W/"points:%s:%d:%d"`, uid, count, ts)
		c.Header("ETag", etag)
		if inm := c.GetHeader("If-None-Match"); inm != "" && inm == etag {
			c.Status(http.StatusNotModified)
			return
		}
	}

	resp := PointsResponse{History: []domain.PointTransaction{}}

	acc, err := repo.GetAccount(ctx, db, uid)
	switch {
	case err == nil:
		resp.TotalPoints = acc.TotalPoints
		resp.EarnedPoints = acc.EarnedPoints
		resp.SpentPoints = acc.SpentPoints
	case errors.Is(err, repo.ErrNotFound):
		// No ledger yet: report zeros rather than 404.
	default:
		fail(c, http.StatusInternalServerError, ErrCodeInternal, err.Error())
		return
	}

	page, pageSize := clampHistoryPagination(c)

	total, err := repo.CountTransactions(ctx, db, uid)
	if err != nil {
		fail(c, http.StatusInternalServerError, ErrCodeListFailed, err.Error())
		return
	}
	items, err := repo.ListTransactionsPage(ctx, db, uid, (page-1)*pageSize, pageSize)
	if err != nil {
		fail(c, http.StatusInternalServerError, ErrCodeListFailed, err.Error())
		return
	}
	if items != nil {
		resp.History = items
	}

	totalPages := int((total + int64(pageSize) - 1) / int64(pageSize))
	resp.Pagination = Pagination{
		Page:       page,
		PageSize:   pageSize,
		Total:      total,
		TotalPages: totalPages,
		HasNext:    page < totalPages,
	}

	ok(c, http.StatusOK, resp)
}
