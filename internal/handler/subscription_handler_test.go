package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"msghub/internal/dto"
	"msghub/internal/webpush"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// MockSubscriptionService mocks the SubscriptionService interface
type MockSubscriptionService struct {
	mock.Mock
}

func (m *MockSubscriptionService) Subscribe(ctx context.Context, userID int64, endpoint, p256dh, auth string) error {
	args := m.Called(userID, endpoint, p256dh, auth)
	return args.Error(0)
}

func (m *MockSubscriptionService) Unsubscribe(ctx context.Context, userID int64, endpoint string) error {
	args := m.Called(userID, endpoint)
	return args.Error(0)
}

func setupRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(func(c *gin.Context) {
		c.Set("userID", int64(42))
		c.Next()
	})
	return router
}

func subscribeBody(endpoint string) *bytes.Buffer {
	body, _ := json.Marshal(dto.SubscribeDTO{
		Endpoint: endpoint,
		Keys:     dto.SubscriptionKeysDTO{P256dh: "p256dh-key", Auth: "auth-secret"},
	})
	return bytes.NewBuffer(body)
}

func TestSubscribe_Success(t *testing.T) {
	mockSvc := new(MockSubscriptionService)
	handler := NewSubscriptionHandler(mockSvc)
	router := setupRouter()
	router.POST("/subscriptions", handler.Subscribe)

	endpoint := "https://fcm.googleapis.com/fcm/send/abc123"
	mockSvc.On("Subscribe", int64(42), endpoint, "p256dh-key", "auth-secret").Return(nil)

	req, _ := http.NewRequest("POST", "/subscriptions", subscribeBody(endpoint))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)
	mockSvc.AssertExpectations(t)
}

func TestSubscribe_UntrustedEndpoint(t *testing.T) {
	mockSvc := new(MockSubscriptionService)
	handler := NewSubscriptionHandler(mockSvc)
	router := setupRouter()
	router.POST("/subscriptions", handler.Subscribe)

	endpoint := "https://evilfcm.googleapis.com/fcm/send/abc"
	mockSvc.On("Subscribe", int64(42), endpoint, "p256dh-key", "auth-secret").
		Return(webpush.ErrUntrustedDomain)

	req, _ := http.NewRequest("POST", "/subscriptions", subscribeBody(endpoint))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)

	var response map[string]string
	json.Unmarshal(w.Body.Bytes(), &response)
	assert.Contains(t, response["error"], "domain")
}

func TestSubscribe_MissingKeys(t *testing.T) {
	mockSvc := new(MockSubscriptionService)
	handler := NewSubscriptionHandler(mockSvc)
	router := setupRouter()
	router.POST("/subscriptions", handler.Subscribe)

	body, _ := json.Marshal(map[string]string{"endpoint": "https://fcm.googleapis.com/fcm/send/abc"})
	req, _ := http.NewRequest("POST", "/subscriptions", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	mockSvc.AssertNotCalled(t, "Subscribe")
}

func TestUnsubscribe_NotFound(t *testing.T) {
	mockSvc := new(MockSubscriptionService)
	handler := NewSubscriptionHandler(mockSvc)
	router := setupRouter()
	router.DELETE("/subscriptions", handler.Unsubscribe)

	endpoint := "https://fcm.googleapis.com/fcm/send/gone"
	mockSvc.On("Unsubscribe", int64(42), endpoint).Return(errors.New("subscription not found"))

	body, _ := json.Marshal(dto.UnsubscribeDTO{Endpoint: endpoint})
	req, _ := http.NewRequest("DELETE", "/subscriptions", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}
