package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/dailyjobboost/api/internal/adapters/http/dto"
	"github.com/dailyjobboost/api/internal/app"
	"github.com/dailyjobboost/api/internal/domain"
	"github.com/dailyjobboost/api/internal/mocks"
)

// stubTokenVerifier returns a fixed email or error for any token.
type stubTokenVerifier struct {
	email string
	err   error
}

func (s *stubTokenVerifier) VerifyUnsubscribeToken(string) (string, error) {
	return s.email, s.err
}

// stubDailyDispatcher returns a fixed all-zones dispatch outcome.
type stubDailyDispatcher struct {
	result *domain.DispatchResult
	err    error
}

func (s *stubDailyDispatcher) DispatchAll(context.Context) (*domain.DispatchResult, error) {
	return s.result, s.err
}

type subscriptionFixture struct {
	subscribers *mocks.MockSubscriberRepository
	deliveryLog *mocks.MockDeliveryLogRepository
	mailer      *mocks.MockQuoteMailer
	tokens      *stubTokenVerifier
	dispatch    *stubDailyDispatcher
	router      *gin.Engine
}

func setupSubscriptionHandler(t *testing.T) *subscriptionFixture {
	t.Helper()

	f := &subscriptionFixture{
		subscribers: mocks.NewMockSubscriberRepository(t),
		deliveryLog: mocks.NewMockDeliveryLogRepository(t),
		mailer:      mocks.NewMockQuoteMailer(t),
		tokens:      &stubTokenVerifier{},
		dispatch:    &stubDailyDispatcher{},
	}

	service := app.NewSubscriptionService(app.SubscriptionServiceConfig{
		Subscribers: f.subscribers,
		DeliveryLog: f.deliveryLog,
		Mailer:      f.mailer,
		Logger:      slog.New(slog.NewTextHandler(io.Discard, nil)),
	})

	handler := NewSubscriptionHandler(service, f.tokens, f.dispatch)

	f.router = gin.New()
	handler.RegisterSubscriptionRoutes(f.router.Group("/api/v1"))

	return f
}

func TestSubscriptionHandler_Subscribe(t *testing.T) {
	f := setupSubscriptionHandler(t)

	f.subscribers.EXPECT().GetByEmail(mock.Anything, "jane@example.com").
		Return(nil, domain.NewNotFoundError("subscriber", "jane@example.com"))
	f.subscribers.EXPECT().Upsert(mock.Anything, mock.Anything).Return(nil)
	f.mailer.EXPECT().SendWelcome(mock.Anything, mock.Anything).Return(nil)
	f.deliveryLog.EXPECT().Append(mock.Anything, mock.Anything).Return(nil)

	body, _ := json.Marshal(SubscribeRequest{
		Email:    "jane@example.com",
		Timezone: "America/New_York",
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/users/subscribe", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	f.router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)

	var resp SubscriberResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "jane@example.com", resp.Email)
	assert.Equal(t, "America/New_York", resp.Timezone)
	assert.True(t, resp.Active)
	assert.NotEmpty(t, resp.ID)
}

func TestSubscriptionHandler_Subscribe_InvalidEmail(t *testing.T) {
	f := setupSubscriptionHandler(t)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/users/subscribe",
		bytes.NewReader([]byte(`{"email":"not-an-email","timezone":"America/New_York"}`)))
	req.Header.Set("Content-Type", "application/json")
	f.router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), dto.ErrorCodeValidation)
}

func TestSubscriptionHandler_Subscribe_UnsupportedTimezone(t *testing.T) {
	f := setupSubscriptionHandler(t)

	body, _ := json.Marshal(SubscribeRequest{
		Email:    "jane@example.com",
		Timezone: "Pacific/Chatham",
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/users/subscribe", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	f.router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Pacific/Chatham")
}

func TestSubscriptionHandler_Unsubscribe(t *testing.T) {
	f := setupSubscriptionHandler(t)
	f.tokens.email = "jane@example.com"

	f.subscribers.EXPECT().SetActive(mock.Anything, "jane@example.com", false).Return(nil)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/users/unsubscribe/signed-token", nil)
	f.router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp unsubscribeResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "unsubscribed", resp.Status)
	assert.Equal(t, "jane@example.com", resp.Email)
}

func TestSubscriptionHandler_Unsubscribe_InvalidToken(t *testing.T) {
	f := setupSubscriptionHandler(t)
	f.tokens.err = domain.ErrUnauthorized

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/users/unsubscribe/garbage", nil)
	f.router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), dto.ErrorCodeUnauthorized)
}

func TestSubscriptionHandler_Unsubscribe_UnknownSubscriber(t *testing.T) {
	f := setupSubscriptionHandler(t)
	f.tokens.email = "gone@example.com"

	f.subscribers.EXPECT().SetActive(mock.Anything, "gone@example.com", false).
		Return(domain.NewNotFoundError("subscriber", "gone@example.com"))

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/users/unsubscribe/signed-token", nil)
	f.router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestSubscriptionHandler_ManualUnsubscribe(t *testing.T) {
	f := setupSubscriptionHandler(t)

	f.subscribers.EXPECT().SetActive(mock.Anything, "jane@example.com", false).Return(nil)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/users/unsubscribe",
		bytes.NewReader([]byte(`{"email":"jane@example.com"}`)))
	req.Header.Set("Content-Type", "application/json")
	f.router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp unsubscribeResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "unsubscribed", resp.Status)
}

func TestSubscriptionHandler_ManualUnsubscribe_MissingEmail(t *testing.T) {
	f := setupSubscriptionHandler(t)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/users/unsubscribe",
		bytes.NewReader([]byte(`{}`)))
	req.Header.Set("Content-Type", "application/json")
	f.router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), dto.ErrorCodeValidation)
	assert.Contains(t, w.Body.String(), "email")
}

func TestSubscriptionHandler_TriggerDailyEmails(t *testing.T) {
	f := setupSubscriptionHandler(t)
	f.dispatch.result = &domain.DispatchResult{Successful: 5, Failed: 1}

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/users/test-daily-emails", nil)
	f.router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp DispatchResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 6, resp.Total)
	assert.Equal(t, 5, resp.Successful)
	assert.Equal(t, 1, resp.Failed)
}

func TestSubscriptionHandler_TriggerDailyEmails_NoQuotes(t *testing.T) {
	f := setupSubscriptionHandler(t)
	f.dispatch.err = domain.ErrNoQuotesAvailable

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/users/test-daily-emails", nil)
	f.router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}

func TestSubscriptionHandler_Subscribe_StorageError(t *testing.T) {
	f := setupSubscriptionHandler(t)

	f.subscribers.EXPECT().GetByEmail(mock.Anything, "jane@example.com").
		Return(nil, errors.New("connection reset"))

	body, _ := json.Marshal(SubscribeRequest{
		Email:    "jane@example.com",
		Timezone: "America/New_York",
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/users/subscribe", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	f.router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	// Internal errors must not leak details
	assert.NotContains(t, w.Body.String(), "connection reset")
}
