package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/dailyjobboost/api/internal/adapters/http/dto"
	"github.com/dailyjobboost/api/internal/app"
	"github.com/dailyjobboost/api/internal/domain"
)

// UnsubscribeTokenVerifier verifies an unsubscribe token and returns the
// subscriber email it was issued for.
type UnsubscribeTokenVerifier interface {
	VerifyUnsubscribeToken(token string) (string, error)
}

// DailyDispatcher runs a delivery for every timezone at once.
type DailyDispatcher interface {
	DispatchAll(ctx context.Context) (*domain.DispatchResult, error)
}

// SubscriptionHandler handles subscriber lifecycle endpoints.
type SubscriptionHandler struct {
	service  *app.SubscriptionService
	tokens   UnsubscribeTokenVerifier
	dispatch DailyDispatcher
}

// NewSubscriptionHandler creates a new subscription handler.
func NewSubscriptionHandler(service *app.SubscriptionService, tokens UnsubscribeTokenVerifier, dispatch DailyDispatcher) *SubscriptionHandler {
	return &SubscriptionHandler{
		service:  service,
		tokens:   tokens,
		dispatch: dispatch,
	}
}

// SubscribeRequest is the request body for subscribing to daily emails.
type SubscribeRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Timezone string `json:"timezone" validate:"required,notempty"`
}

// SubscriberResponse is the HTTP response structure for a subscriber.
type SubscriberResponse struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Timezone  string    `json:"timezone"`
	Active    bool      `json:"active"`
	CreatedAt time.Time `json:"createdAt"`
}

// toSubscriberResponse converts a domain Subscriber to an HTTP response.
func toSubscriberResponse(s *domain.Subscriber) SubscriberResponse {
	return SubscriberResponse{
		ID:        s.ID,
		Email:     s.Email,
		Timezone:  s.Timezone,
		Active:    s.Active,
		CreatedAt: s.CreatedAt,
	}
}

// Subscribe handles POST /api/v1/users/subscribe
// Subscribing an existing address updates its timezone and reactivates it.
func (h *SubscriptionHandler) Subscribe(c *gin.Context) {
	var req SubscribeRequest
	if err := dto.BindAndValidate(c, &req); err != nil {
		dto.RespondWithValidationErrors(c, dto.ValidationErrors(err))
		return
	}

	sub, err := h.service.Subscribe(c.Request.Context(), req.Email, req.Timezone)
	if err != nil {
		dto.HandleError(c, err)
		return
	}

	c.JSON(http.StatusCreated, toSubscriberResponse(sub))
}

// unsubscribeResponse confirms an unsubscribe request.
type unsubscribeResponse struct {
	Status string `json:"status"`
	Email  string `json:"email"`
}

// Unsubscribe handles GET /api/v1/users/unsubscribe/:token
// The token is the signed unsubscribe link embedded in every email, so the
// endpoint needs no other authentication. It is a GET because mail clients
// open the link in a browser.
func (h *SubscriptionHandler) Unsubscribe(c *gin.Context) {
	token := c.Param("token")
	if token == "" {
		dto.RespondWithErrorCode(c, dto.ErrorCodeBadRequest, "unsubscribe token is required")
		return
	}

	email, err := h.tokens.VerifyUnsubscribeToken(token)
	if err != nil {
		dto.HandleError(c, err)
		return
	}

	if err := h.service.Unsubscribe(c.Request.Context(), email); err != nil {
		dto.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, unsubscribeResponse{
		Status: "unsubscribed",
		Email:  email,
	})
}

// ManualUnsubscribeRequest is the request body for unsubscribing by email.
type ManualUnsubscribeRequest struct {
	Email string `json:"email" validate:"required,email"`
}

// ManualUnsubscribe handles POST /api/v1/users/unsubscribe
// Deactivates a subscriber by plain email, without a token.
func (h *SubscriptionHandler) ManualUnsubscribe(c *gin.Context) {
	var req ManualUnsubscribeRequest
	if err := dto.BindAndValidate(c, &req); err != nil {
		dto.RespondWithValidationErrors(c, dto.ValidationErrors(err))
		return
	}

	if err := h.service.Unsubscribe(c.Request.Context(), req.Email); err != nil {
		dto.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, unsubscribeResponse{
		Status: "unsubscribed",
		Email:  req.Email,
	})
}

// TriggerDailyEmails handles POST /api/v1/users/test-daily-emails
// Sends the daily quote to every timezone cohort immediately, skipping the
// scheduler's local-time gate. Meant for smoke-testing a deployment.
func (h *SubscriptionHandler) TriggerDailyEmails(c *gin.Context) {
	result, err := h.dispatch.DispatchAll(c.Request.Context())
	if err != nil {
		dto.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, DispatchResponse{
		Total:      result.Total(),
		Successful: result.Successful,
		Failed:     result.Failed,
	})
}

// RegisterSubscriptionRoutes registers subscriber routes on the given group.
func (h *SubscriptionHandler) RegisterSubscriptionRoutes(rg *gin.RouterGroup) {
	users := rg.Group("/users")
	users.POST("/subscribe", h.Subscribe)
	users.GET("/unsubscribe/:token", h.Unsubscribe)
	users.POST("/unsubscribe", h.ManualUnsubscribe)
	users.POST("/test-daily-emails", h.TriggerDailyEmails)
}
