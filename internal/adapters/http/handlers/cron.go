package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/dailyjobboost/api/internal/adapters/http/dto"
	"github.com/dailyjobboost/api/internal/domain"
)

// HeaderTimezone names the timezone a webhook invocation targets.
const HeaderTimezone = "x-timezone"

// TimezoneDispatcher sends the daily email to every active subscriber in
// one timezone.
type TimezoneDispatcher interface {
	DispatchTimezone(ctx context.Context, zone string) (*domain.DispatchResult, error)
}

// CronHandler handles the webhook endpoint an external scheduler calls to
// trigger a timezone's daily send.
type CronHandler struct {
	dispatcher TimezoneDispatcher
}

// NewCronHandler creates a new cron webhook handler.
func NewCronHandler(dispatcher TimezoneDispatcher) *CronHandler {
	return &CronHandler{
		dispatcher: dispatcher,
	}
}

// DispatchResponse summarizes a completed dispatch. Timezone is empty for
// the all-zones manual trigger.
type DispatchResponse struct {
	Timezone   string `json:"timezone,omitempty"`
	Total      int    `json:"total"`
	Successful int    `json:"successful"`
	Failed     int    `json:"failed"`
}

// SendEmails handles POST /api/v1/cron/send-emails
// The target timezone comes from the x-timezone header. Partial delivery
// failure still returns 200; the counts tell the caller what happened.
func (h *CronHandler) SendEmails(c *gin.Context) {
	header := c.GetHeader(HeaderTimezone)
	if header == "" {
		dto.RespondWithErrorCode(c, dto.ErrorCodeBadRequest, "x-timezone header is required")
		return
	}

	// Accept the same short labels (pst, est, ...) the signup form does.
	zone, err := domain.NormalizeTimezone(header)
	if err != nil {
		dto.HandleError(c, err)
		return
	}

	result, err := h.dispatcher.DispatchTimezone(c.Request.Context(), zone)
	if err != nil {
		dto.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, DispatchResponse{
		Timezone:   zone,
		Total:      result.Total(),
		Successful: result.Successful,
		Failed:     result.Failed,
	})
}

// RegisterCronRoutes registers the webhook routes on the given group.
// The group is expected to carry signature verification middleware.
func (h *CronHandler) RegisterCronRoutes(rg *gin.RouterGroup) {
	cron := rg.Group("/cron")
	cron.POST("/send-emails", h.SendEmails)
}
