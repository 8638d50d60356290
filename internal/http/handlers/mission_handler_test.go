package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/lettermate/go-penpal-backend/internal/services"
)

func TestCancelMission_BindingError(t *testing.T) {
	gin.SetMode(gin.TestMode)

	cancel := stubCancelSvc{fn: func(ctx context.Context, missionID, requesterID, requesterName, partnerID, partnerName, reason string) (*services.CancelOutcome, error) {
		t.Fatalf("service should not be called on binding error")
		return nil, nil
	}}
	h := newStubHandlers(stubRewardSvc{}, cancel, stubDisputeSvc{}, stubReminderSvc{})

	r := gin.New()
	r.POST("/missions/:id/cancel-request", h.CancelMission)

	w := httptest.NewRecorder()
	// Missing partner_id and reason → binding error
	req := httptest.NewRequest(http.MethodPost, "/missions/ms-1/cancel-request", bytes.NewBufferString(`{}`))
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("binding error expected 400, got %d", w.Code)
	}
}

func TestCancelMission_Success(t *testing.T) {
	gin.SetMode(gin.TestMode)

	cancel := stubCancelSvc{fn: func(ctx context.Context, missionID, requesterID, requesterName, partnerID, partnerName, reason string) (*services.CancelOutcome, error) {
		if missionID != "ms-1" || requesterID != "u-123" || partnerID != "u-456" {
			t.Fatalf("unexpected passthrough: %q %q %q", missionID, requesterID, partnerID)
		}
		if reason != "pen pal went quiet" {
			t.Fatalf("unexpected reason %q", reason)
		}
		return &services.CancelOutcome{CancelRequestID: "cr-1", PenaltyID: "pn-1"}, nil
	}}
	h := newStubHandlers(stubRewardSvc{}, cancel, stubDisputeSvc{}, stubReminderSvc{})

	r := gin.New()
	r.POST("/missions/:id/cancel-request", h.CancelMission)

	body := `{"partner_id":"u-456","partner_name":"Bob","reason":"pen pal went quiet"}`
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/missions/ms-1/cancel-request", bytes.NewBufferString(body))
	req.Header.Set("X-User-ID", "u-123")
	r.ServeHTTP(w, req)

	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d (%s)", w.Code, w.Body.String())
	}
	var resp CancelMissionResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("json: %v", err)
	}
	if resp.CancelRequestID != "cr-1" || resp.PenaltyID != "pn-1" {
		t.Fatalf("unexpected response: %+v", resp)
	}
}

func TestCancelMission_ErrorMappings(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
	}{
		{"missing", services.ErrMissingFields, http.StatusBadRequest, ErrCodeBadRequest},
		{"not_found", services.ErrMissionNotFound, http.StatusNotFound, ErrCodeNotFound},
		{"cancelled", services.ErrAlreadyCancelled, http.StatusConflict, ErrCodeConflict},
		{"internal", context.DeadlineExceeded, http.StatusInternalServerError, ErrCodeInternal},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			cancel := stubCancelSvc{fn: func(ctx context.Context, missionID, requesterID, requesterName, partnerID, partnerName, reason string) (*services.CancelOutcome, error) {
				return nil, tc.err
			}}
			h := newStubHandlers(stubRewardSvc{}, cancel, stubDisputeSvc{}, stubReminderSvc{})

			r := gin.New()
			r.POST("/missions/:id/cancel-request", h.CancelMission)

			body := `{"partner_id":"u-456","reason":"x"}`
			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodPost, "/missions/ms-1/cancel-request", bytes.NewBufferString(body))
			r.ServeHTTP(w, req)

			if w.Code != tc.wantStatus {
				t.Fatalf("expected %d, got %d", tc.wantStatus, w.Code)
			}
			var er ErrorResponse
			if err := json.Unmarshal(w.Body.Bytes(), &er); err != nil {
				t.Fatalf("json: %v", err)
			}
			if er.Code != tc.wantCode {
				t.Fatalf("expected code %q, got %q", tc.wantCode, er.Code)
			}
		})
	}
}

func TestGetMission_NoStorage(t *testing.T) {
	gin.SetMode(gin.TestMode)

	// Stubbed services expose no DB handle; reads must fail cleanly.
	h := newStubHandlers(stubRewardSvc{}, stubCancelSvc{}, stubDisputeSvc{}, stubReminderSvc{})

	r := gin.New()
	r.GET("/missions/:id", h.GetMission)
	r.GET("/matches/:id", h.GetMatch)

	for _, path := range []string{"/missions/ms-1", "/matches/mt-1"} {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, path, nil)
		r.ServeHTTP(w, req)

		if w.Code != http.StatusInternalServerError {
			t.Fatalf("%s: expected 500, got %d", path, w.Code)
		}
	}
}
