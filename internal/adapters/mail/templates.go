package mail

import (
	"embed"
	"fmt"
	"html/template"
	"strings"

	"github.com/dailyjobboost/api/internal/domain"
)

//go:embed templates/*.html
var templateFS embed.FS

// templates holds the parsed email bodies. html/template is the right
// tool here: quote content is subscriber-visible user data and must be
// escaped into the HTML.
var templates = template.Must(template.ParseFS(templateFS, "templates/*.html"))

type dailyTemplateData struct {
	Quote          *domain.Quote
	UnsubscribeURL string
}

type welcomeTemplateData struct {
	Timezone       string
	UnsubscribeURL string
}

func renderDaily(quote *domain.Quote, unsubscribeURL string) (string, error) {
	var buf strings.Builder

	err := templates.ExecuteTemplate(&buf, "daily.html", dailyTemplateData{
		Quote:          quote,
		UnsubscribeURL: unsubscribeURL,
	})
	if err != nil {
		return "", fmt.Errorf("rendering daily template: %w", err)
	}

	return buf.String(), nil
}

func renderWelcome(timezone, unsubscribeURL string) (string, error) {
	var buf strings.Builder

	err := templates.ExecuteTemplate(&buf, "welcome.html", welcomeTemplateData{
		Timezone:       timezone,
		UnsubscribeURL: unsubscribeURL,
	})
	if err != nil {
		return "", fmt.Errorf("rendering welcome template: %w", err)
	}

	return buf.String(), nil
}
