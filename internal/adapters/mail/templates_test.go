package mail

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dailyjobboost/api/internal/domain"
)

func TestRenderDaily(t *testing.T) {
	t.Parallel()

	quote := &domain.Quote{
		ID:      "q-1",
		Content: "Fall seven times, stand up eight.",
		Author:  "Japanese proverb",
	}

	body, err := renderDaily(quote, "https://dailyjobboost.example/api/v1/users/unsubscribe?token=abc")
	require.NoError(t, err)

	assert.Contains(t, body, "Fall seven times, stand up eight.")
	assert.Contains(t, body, "Japanese proverb")
	assert.Contains(t, body, "unsubscribe?token=abc")
}

func TestRenderDaily_NoAuthor(t *testing.T) {
	t.Parallel()

	quote := &domain.Quote{ID: "q-1", Content: "Just keep going."}

	body, err := renderDaily(quote, "https://example.com/u")
	require.NoError(t, err)

	assert.Contains(t, body, "Just keep going.")
	assert.NotContains(t, body, "&mdash;")
}

func TestRenderDaily_EscapesQuoteContent(t *testing.T) {
	t.Parallel()

	quote := &domain.Quote{
		ID:      "q-1",
		Content: `<script>alert("x")</script>`,
	}

	body, err := renderDaily(quote, "https://example.com/u")
	require.NoError(t, err)

	assert.NotContains(t, body, "<script>")
}

func TestRenderWelcome(t *testing.T) {
	t.Parallel()

	body, err := renderWelcome("Europe/Paris", "https://example.com/u")
	require.NoError(t, err)

	assert.Contains(t, body, "Welcome")
	assert.Contains(t, body, "Europe/Paris")
	assert.Contains(t, body, "https://example.com/u")
}
