package miningpool

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/robsahakyan/mining-pools/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockService struct {
	mock.Mock
}

func (m *MockService) EnsureSeeded(ctx context.Context) error {
	args := m.Called()
	return args.Error(0)
}

func (m *MockService) ListSummaries(ctx context.Context) ([]models.PoolSummary, error) {
	args := m.Called()
	return args.Get(0).([]models.PoolSummary), args.Error(1)
}

func (m *MockService) GetDetail(ctx context.Context, id string) (*models.PoolDetail, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.PoolDetail), args.Error(1)
}

func setupRouter(service Service) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	NewHandler(service).RegisterRoutes(router.Group("/"))
	return router
}

func TestListMiningPoolsHandler(t *testing.T) {
	mockService := new(MockService)
	router := setupRouter(mockService)

	expected := []models.PoolSummary{
		{ID: "pool-1", Name: "US East Pool", HashrateTHs: 830.5, ActiveWorkers: 1240, RejectRate: 0.012, Status: models.PoolStatusOnline},
		{ID: "pool-2", Name: "EU Central Pool", HashrateTHs: 460.3, ActiveWorkers: 876, RejectRate: 0.045, Status: models.PoolStatusDegraded},
	}
	mockService.On("ListSummaries").Return(expected, nil)

	req, _ := http.NewRequest(http.MethodGet, "/mining-pools", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	assert.Equal(t, http.StatusOK, resp.Code)

	var pools []models.PoolSummary
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &pools))
	assert.Equal(t, expected, pools)
	mockService.AssertExpectations(t)
}

func TestListMiningPoolsHandler_Empty(t *testing.T) {
	mockService := new(MockService)
	router := setupRouter(mockService)

	mockService.On("ListSummaries").Return([]models.PoolSummary{}, nil)

	req, _ := http.NewRequest(http.MethodGet, "/mining-pools", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	assert.Equal(t, http.StatusOK, resp.Code)
	assert.JSONEq(t, `[]`, resp.Body.String())
}

func TestListMiningPoolsHandler_Error(t *testing.T) {
	mockService := new(MockService)
	router := setupRouter(mockService)

	mockService.On("ListSummaries").Return([]models.PoolSummary(nil), errors.New("db down"))

	req, _ := http.NewRequest(http.MethodGet, "/mining-pools", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	assert.Equal(t, http.StatusInternalServerError, resp.Code)
	assert.NotContains(t, resp.Body.String(), "db down")
}

func TestGetMiningPoolHandler(t *testing.T) {
	mockService := new(MockService)
	router := setupRouter(mockService)

	expected := &models.PoolDetail{
		PoolSummary: models.PoolSummary{
			ID: "pool-3", Name: "Asia Pacific Pool", HashrateTHs: 1234.7,
			ActiveWorkers: 1890, RejectRate: 0.008, Status: models.PoolStatusOnline,
		},
		Last24hRevenueBTC: 0.058,
		UptimePercent:     99.95,
		Location:          "Singapore",
		FeePercent:        0.75,
	}
	mockService.On("GetDetail", "pool-3").Return(expected, nil)

	req, _ := http.NewRequest(http.MethodGet, "/mining-pools/pool-3", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	assert.Equal(t, http.StatusOK, resp.Code)

	var pool models.PoolDetail
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &pool))
	assert.Equal(t, *expected, pool)
	mockService.AssertExpectations(t)
}

func TestGetMiningPoolHandler_NotFound(t *testing.T) {
	mockService := new(MockService)
	router := setupRouter(mockService)

	mockService.On("GetDetail", "pool-unknown").Return(nil, ErrNotFound)

	req, _ := http.NewRequest(http.MethodGet, "/mining-pools/pool-unknown", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	assert.Equal(t, http.StatusNotFound, resp.Code)
	assert.JSONEq(t, `{
		"statusCode": 404,
		"message": "Mining pool with id pool-unknown not found",
		"error": "Not Found"
	}`, resp.Body.String())
	mockService.AssertExpectations(t)
}

func TestGetMiningPoolHandler_Error(t *testing.T) {
	mockService := new(MockService)
	router := setupRouter(mockService)

	mockService.On("GetDetail", "pool-1").Return(nil, errors.New("db down"))

	req, _ := http.NewRequest(http.MethodGet, "/mining-pools/pool-1", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	assert.Equal(t, http.StatusInternalServerError, resp.Code)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &body))
	assert.Equal(t, float64(http.StatusInternalServerError), body["statusCode"])
}
