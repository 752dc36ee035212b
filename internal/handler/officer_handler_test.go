package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/campuskeep/outpass-api/internal/middleware"
	"github.com/campuskeep/outpass-api/internal/models"
	"github.com/campuskeep/outpass-api/internal/repository"
	"github.com/campuskeep/outpass-api/internal/service"
)

type stubOutpassStore struct {
	record      *models.Outpass
	reviewOK    bool
	returnOK    bool
	returnStamp repository.ReturnStamp
}

func (s *stubOutpassStore) Create(context.Context, *models.Outpass) error { return nil }

func (s *stubOutpassStore) FindByID(context.Context, string) (*models.Outpass, error) {
	copied := *s.record
	return &copied, nil
}

func (s *stubOutpassStore) ListByResident(context.Context, string) ([]models.Outpass, error) {
	return nil, nil
}

func (s *stubOutpassStore) ListByStatus(context.Context, models.OutpassStatus, string) ([]models.Outpass, error) {
	return nil, nil
}

func (s *stubOutpassStore) ListAll(context.Context, string) ([]models.Outpass, error) {
	return nil, nil
}

func (s *stubOutpassStore) UpdateContent(context.Context, *models.Outpass) (bool, error) {
	return false, nil
}

func (s *stubOutpassStore) Cancel(context.Context, string, models.OutpassStatus) (bool, error) {
	return false, nil
}

func (s *stubOutpassStore) Review(context.Context, string, models.OutpassStatus, string, string, time.Time) (bool, error) {
	return s.reviewOK, nil
}

func (s *stubOutpassStore) MarkDeparture(context.Context, string, string, string, time.Time) (bool, error) {
	return false, nil
}

func (s *stubOutpassStore) MarkReturn(_ context.Context, _ string, stamp repository.ReturnStamp) (bool, error) {
	s.returnStamp = stamp
	return s.returnOK, nil
}

func officerTestContext(t *testing.T, method, path string, body interface{}, id string) (*gin.Context, *httptest.ResponseRecorder) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	recorder := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(recorder)

	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}
	c.Request = httptest.NewRequest(method, path, reader)
	c.Request.Header.Set("Content-Type", "application/json")
	c.Params = gin.Params{{Key: "id", Value: id}}
	c.Set(middleware.ContextUserKey, &models.JWTClaims{UserID: "o-1", Role: models.RoleOfficer})
	return c, recorder
}

func TestOfficerHandlerReturn(t *testing.T) {
	departed := time.Now().UTC().Add(-4 * time.Hour)
	store := &stubOutpassStore{
		record: &models.Outpass{
			ID:                "op-1",
			Status:            models.StatusActive,
			ExpectedReturnAt:  time.Now().UTC().Add(2 * time.Hour),
			ActualDepartureAt: &departed,
			HostelName:        "North Block",
		},
		returnOK: true,
	}
	outpasses := service.NewOutpassService(store, nil, nil, nil)
	dashboard := service.NewDashboardService(nil, nil, nil, nil, 0, nil, nil)
	h := NewOfficerHandler(outpasses, dashboard, nil)

	c, recorder := officerTestContext(t, http.MethodPost,
		"/api/v1/officer/outpasses/op-1/return",
		map[string]string{"comments": "all good"}, "op-1")

	h.Return(c)

	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.Equal(t, "Return: all good", store.returnStamp.Comments)
	assert.False(t, store.returnStamp.IsLateReturn)

	var envelope struct {
		Data models.Outpass `json:"data"`
	}
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &envelope))
	assert.Equal(t, models.StatusCompleted, envelope.Data.Status)
}

func TestOfficerHandlerReturnWrongState(t *testing.T) {
	store := &stubOutpassStore{
		record: &models.Outpass{ID: "op-1", Status: models.StatusApproved},
	}
	outpasses := service.NewOutpassService(store, nil, nil, nil)
	dashboard := service.NewDashboardService(nil, nil, nil, nil, 0, nil, nil)
	h := NewOfficerHandler(outpasses, dashboard, nil)

	c, recorder := officerTestContext(t, http.MethodPost,
		"/api/v1/officer/outpasses/op-1/return",
		map[string]string{}, "op-1")

	h.Return(c)

	assert.Equal(t, http.StatusConflict, recorder.Code)

	var envelope struct {
		Error struct {
			Code string `json:"code"`
		} `json:"error"`
	}
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &envelope))
	assert.Equal(t, "INVALID_STATE", envelope.Error.Code)
}

func TestOfficerHandlerReturnMissingClaims(t *testing.T) {
	store := &stubOutpassStore{record: &models.Outpass{ID: "op-1", Status: models.StatusActive}}
	outpasses := service.NewOutpassService(store, nil, nil, nil)
	dashboard := service.NewDashboardService(nil, nil, nil, nil, 0, nil, nil)
	h := NewOfficerHandler(outpasses, dashboard, nil)

	gin.SetMode(gin.TestMode)
	recorder := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(recorder)
	c.Request = httptest.NewRequest(http.MethodPost, "/api/v1/officer/outpasses/op-1/return", bytes.NewReader([]byte(`{}`)))
	c.Request.Header.Set("Content-Type", "application/json")
	c.Params = gin.Params{{Key: "id", Value: "op-1"}}

	h.Return(c)
	assert.Equal(t, http.StatusUnauthorized, recorder.Code)
}
