package mail

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/dailyjobboost/api/internal/adapters/http/handlers"
	"github.com/dailyjobboost/api/internal/app"
	"github.com/dailyjobboost/api/internal/domain"
	"github.com/dailyjobboost/api/internal/mocks"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type staticTokenIssuer struct {
	token string
}

func (s *staticTokenIssuer) UnsubscribeToken(*domain.Subscriber) (string, error) {
	return s.token, nil
}

func newTestMailer(t *testing.T, baseURL string, tokens TokenIssuer) *Mailer {
	t.Helper()

	m, err := New(Config{
		Host:    "smtp.example.com",
		Port:    587,
		From:    "hello@example.com",
		BaseURL: baseURL,
	}, tokens, nil)
	require.NoError(t, err)

	return m
}

func TestMailer_UnsubscribeURL(t *testing.T) {
	t.Parallel()

	m := newTestMailer(t, "http://svc.example.com", &staticTokenIssuer{token: "tok123"})

	link, err := m.unsubscribeURL(&domain.Subscriber{Email: "reader@example.com"})
	require.NoError(t, err)

	assert.Equal(t, "http://svc.example.com/api/v1/users/unsubscribe/tok123", link)
}

func TestMailer_UnsubscribeURL_EscapesToken(t *testing.T) {
	t.Parallel()

	m := newTestMailer(t, "http://svc.example.com", &staticTokenIssuer{token: "a/b?c"})

	link, err := m.unsubscribeURL(&domain.Subscriber{Email: "reader@example.com"})
	require.NoError(t, err)

	assert.Equal(t, "http://svc.example.com/api/v1/users/unsubscribe/a%2Fb%3Fc", link)
}

// The link embedded in every email footer must resolve against the
// service's own router, token and route shape included.
func TestMailer_UnsubscribeLinkServedByRouter(t *testing.T) {
	t.Parallel()

	const baseURL = "http://svc.example.com"

	auth, err := app.NewAuthService(app.AuthServiceConfig{
		Secret: "0123456789abcdef0123456789abcdef",
	})
	require.NoError(t, err)

	mailer := newTestMailer(t, baseURL, auth)

	sub := &domain.Subscriber{
		ID:       "sub-1",
		Email:    "reader@example.com",
		Timezone: "Asia/Tokyo",
		Active:   true,
	}

	link, err := mailer.unsubscribeURL(sub)
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(link, baseURL))

	subscribers := mocks.NewMockSubscriberRepository(t)
	subscribers.EXPECT().
		SetActive(mock.Anything, "reader@example.com", false).
		Return(nil)

	service := app.NewSubscriptionService(app.SubscriptionServiceConfig{
		Subscribers: subscribers,
		DeliveryLog: mocks.NewMockDeliveryLogRepository(t),
		Mailer:      mocks.NewMockQuoteMailer(t),
	})

	router := gin.New()
	handlers.NewSubscriptionHandler(service, auth, nil).
		RegisterSubscriptionRoutes(router.Group("/api/v1"))

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, strings.TrimPrefix(link, baseURL), nil)
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code, "body: %s", w.Body.String())
	assert.Contains(t, w.Body.String(), "unsubscribed")
	assert.Contains(t, w.Body.String(), "reader@example.com")
}
