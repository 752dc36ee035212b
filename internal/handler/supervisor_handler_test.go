package handler

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/campuskeep/outpass-api/internal/middleware"
	"github.com/campuskeep/outpass-api/internal/models"
	"github.com/campuskeep/outpass-api/internal/service"
)

type stubSupervisorReader struct {
	profile *models.SupervisorProfile
}

func (s *stubSupervisorReader) FindSupervisor(context.Context, string) (*models.SupervisorProfile, error) {
	if s.profile == nil {
		return nil, sql.ErrNoRows
	}
	return s.profile, nil
}

func supervisorTestContext(t *testing.T, body interface{}, id string) (*gin.Context, *httptest.ResponseRecorder) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	recorder := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(recorder)

	payload, err := json.Marshal(body)
	require.NoError(t, err)
	c.Request = httptest.NewRequest(http.MethodPost, "/api/v1/supervisor/outpasses/"+id+"/review", bytes.NewReader(payload))
	c.Request.Header.Set("Content-Type", "application/json")
	c.Params = gin.Params{{Key: "id", Value: id}}
	c.Set(middleware.ContextUserKey, &models.JWTClaims{UserID: "s-1", Role: models.RoleSupervisor})
	return c, recorder
}

func newSupervisorTestHandler(store *stubOutpassStore, accounts *stubSupervisorReader) *SupervisorHandler {
	outpasses := service.NewOutpassService(store, accounts, nil, nil)
	dashboard := service.NewDashboardService(nil, nil, nil, nil, 0, nil, nil)
	return NewSupervisorHandler(outpasses, dashboard, nil)
}

func TestSupervisorHandlerReviewApprove(t *testing.T) {
	store := &stubOutpassStore{
		record: &models.Outpass{
			ID: "op-1", ResidentID: "r-1",
			Status: models.StatusPending, HostelName: "North Block",
		},
		reviewOK: true,
	}
	accounts := &stubSupervisorReader{profile: &models.SupervisorProfile{HostelAssigned: "North Block"}}
	h := newSupervisorTestHandler(store, accounts)

	c, recorder := supervisorTestContext(t, map[string]interface{}{
		"approved": true,
		"comments": "travel confirmed",
	}, "op-1")

	h.Review(c)

	assert.Equal(t, http.StatusOK, recorder.Code)
	var envelope struct {
		Data models.Outpass `json:"data"`
	}
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &envelope))
	assert.Equal(t, models.StatusApproved, envelope.Data.Status)
	require.NotNil(t, envelope.Data.ReviewerID)
	assert.Equal(t, "s-1", *envelope.Data.ReviewerID)
}

func TestSupervisorHandlerReviewWrongHostel(t *testing.T) {
	store := &stubOutpassStore{
		record: &models.Outpass{
			ID: "op-1", ResidentID: "r-1",
			Status: models.StatusPending, HostelName: "North Block",
		},
	}
	accounts := &stubSupervisorReader{profile: &models.SupervisorProfile{HostelAssigned: "South Block"}}
	h := newSupervisorTestHandler(store, accounts)

	c, recorder := supervisorTestContext(t, map[string]interface{}{"approved": true}, "op-1")

	h.Review(c)

	assert.Equal(t, http.StatusForbidden, recorder.Code)
	var envelope struct {
		Error struct {
			Code string `json:"code"`
		} `json:"error"`
	}
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &envelope))
	assert.Equal(t, "FORBIDDEN", envelope.Error.Code)
}

func TestSupervisorHandlerReviewNoProfile(t *testing.T) {
	store := &stubOutpassStore{
		record: &models.Outpass{ID: "op-1", Status: models.StatusPending, HostelName: "North Block"},
	}
	h := newSupervisorTestHandler(store, &stubSupervisorReader{})

	c, recorder := supervisorTestContext(t, map[string]interface{}{"approved": false}, "op-1")

	h.Review(c)
	assert.Equal(t, http.StatusForbidden, recorder.Code)
}
