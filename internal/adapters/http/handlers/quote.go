package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/dailyjobboost/api/internal/adapters/http/dto"
	"github.com/dailyjobboost/api/internal/app"
	"github.com/dailyjobboost/api/internal/domain"
)

// QuoteHandler handles the admin quote catalog endpoints.
type QuoteHandler struct {
	service *app.QuoteService
}

// NewQuoteHandler creates a new quote handler.
func NewQuoteHandler(service *app.QuoteService) *QuoteHandler {
	return &QuoteHandler{
		service: service,
	}
}

// CreateQuoteRequest is the request body for creating a quote.
type CreateQuoteRequest struct {
	Content  string `json:"content" validate:"required,notempty"`
	Author   string `json:"author" validate:"omitempty,max=200"`
	Category string `json:"category" validate:"omitempty,max=100"`
}

// UpdateQuoteRequest is the request body for updating a quote.
type UpdateQuoteRequest struct {
	Content  string `json:"content" validate:"required,notempty"`
	Author   string `json:"author" validate:"omitempty,max=200"`
	Category string `json:"category" validate:"omitempty,max=100"`
}

// QuoteResponse is the HTTP response structure for a quote.
type QuoteResponse struct {
	ID        string    `json:"id"`
	Content   string    `json:"content"`
	Author    string    `json:"author,omitempty"`
	Category  string    `json:"category,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

// toQuoteResponse converts a domain Quote to an HTTP response.
func toQuoteResponse(q *domain.Quote) QuoteResponse {
	return QuoteResponse{
		ID:        q.ID,
		Content:   q.Content,
		Author:    q.Author,
		Category:  q.Category,
		CreatedAt: q.CreatedAt,
	}
}

// CreateQuote handles POST /api/v1/quotes
func (h *QuoteHandler) CreateQuote(c *gin.Context) {
	var req CreateQuoteRequest
	if err := dto.BindAndValidate(c, &req); err != nil {
		dto.RespondWithValidationErrors(c, dto.ValidationErrors(err))
		return
	}

	quote, err := h.service.CreateQuote(c.Request.Context(), req.Content, req.Author, req.Category)
	if err != nil {
		dto.HandleError(c, err)
		return
	}

	c.JSON(http.StatusCreated, toQuoteResponse(quote))
}

// GetQuote handles GET /api/v1/quotes/:id
func (h *QuoteHandler) GetQuote(c *gin.Context) {
	quote, err := h.service.GetQuote(c.Request.Context(), c.Param("id"))
	if err != nil {
		dto.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, toQuoteResponse(quote))
}

// ListQuotes handles GET /api/v1/quotes
// Supports cursor pagination via ?cursor= and ?limit= query parameters.
// The catalog is small enough to page over the full ordered list.
func (h *QuoteHandler) ListQuotes(c *gin.Context) {
	var page dto.PaginationRequest
	if err := dto.BindQueryAndValidate(c, &page); err != nil {
		dto.RespondWithValidationErrors(c, dto.ValidationErrors(err))
		return
	}

	quotes, err := h.service.ListQuotes(c.Request.Context())
	if err != nil {
		dto.HandleError(c, err)
		return
	}

	quotes, err = skipToCursor(quotes, &page)
	if err != nil {
		dto.RespondWithErrorCode(c, dto.ErrorCodeBadRequest, "invalid cursor")
		return
	}

	limit := page.GetLimit()

	items := make([]QuoteResponse, 0, min(len(quotes), limit+1))
	for i := range quotes {
		if len(items) > limit {
			break
		}

		items = append(items, toQuoteResponse(&quotes[i]))
	}

	resp := dto.NewPaginatedResponse(items, limit, func(q QuoteResponse) *dto.CursorData {
		return &dto.CursorData{
			Field: "created_at",
			Value: q.CreatedAt.UTC().Format(time.RFC3339Nano),
			ID:    q.ID,
		}
	})

	c.JSON(http.StatusOK, resp)
}

// GetRandomQuote handles GET /api/v1/quotes/random
// The one unauthenticated read on the catalog, for signup-page previews.
func (h *QuoteHandler) GetRandomQuote(c *gin.Context) {
	quote, err := h.service.RandomQuote(c.Request.Context())
	if err != nil {
		dto.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, toQuoteResponse(quote))
}

// UpdateQuote handles PUT /api/v1/quotes/:id
func (h *QuoteHandler) UpdateQuote(c *gin.Context) {
	var req UpdateQuoteRequest
	if err := dto.BindAndValidate(c, &req); err != nil {
		dto.RespondWithValidationErrors(c, dto.ValidationErrors(err))
		return
	}

	quote, err := h.service.UpdateQuote(c.Request.Context(), c.Param("id"), req.Content, req.Author, req.Category)
	if err != nil {
		dto.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, toQuoteResponse(quote))
}

// DeleteQuote handles DELETE /api/v1/quotes/:id
func (h *QuoteHandler) DeleteQuote(c *gin.Context) {
	if err := h.service.DeleteQuote(c.Request.Context(), c.Param("id")); err != nil {
		dto.HandleError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// RegisterQuoteRoutes registers the quote catalog routes on the given group.
// The group is expected to carry admin authentication middleware.
func (h *QuoteHandler) RegisterQuoteRoutes(rg *gin.RouterGroup) {
	quotes := rg.Group("/quotes")
	quotes.POST("", h.CreateQuote)
	quotes.GET("", h.ListQuotes)
	quotes.GET("/:id", h.GetQuote)
	quotes.PUT("/:id", h.UpdateQuote)
	quotes.DELETE("/:id", h.DeleteQuote)
}

// RegisterPublicQuoteRoutes registers the unauthenticated quote routes on
// the given group.
func (h *QuoteHandler) RegisterPublicQuoteRoutes(rg *gin.RouterGroup) {
	rg.GET("/quotes/random", h.GetRandomQuote)
}

// skipToCursor drops quotes up to and including the cursor position.
// Quotes are listed newest first, so the cursor marks the last item of the
// previous page.
func skipToCursor(quotes []domain.Quote, page *dto.PaginationRequest) ([]domain.Quote, error) {
	cursor, err := page.DecodeCursor()
	if err != nil {
		if errors.Is(err, dto.ErrNoCursor) {
			return quotes, nil
		}

		return nil, err
	}

	for i := range quotes {
		if quotes[i].ID == cursor.ID {
			return quotes[i+1:], nil
		}
	}

	// Cursor item was deleted since the last page; restart from the
	// cursor's sort position instead of failing the request.
	mark, parseErr := time.Parse(time.RFC3339Nano, cursor.Value)
	if parseErr != nil {
		return nil, dto.ErrInvalidCursor
	}

	for i := range quotes {
		if quotes[i].CreatedAt.Before(mark) {
			return quotes[i:], nil
		}
	}

	return nil, nil
}
