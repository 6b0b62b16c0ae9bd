// Package digest renders a group's reviewed items into the HTML email body.
// Pure formatting; no decision logic beyond the relevance tier colors.
package digest

import (
	"fmt"
	"html/template"
	"strings"
	"time"

	"ResearchDigest/internal/domain"
)

// Tier colors for the relevance bar: green for 9+, blue for 7+, orange
// below (only reachable if the threshold ever drops).
const (
	tierHigh   = "#28a745"
	tierMedium = "#4a90d9"
	tierLow    = "#fd7e14"
)

var bodyTemplate = template.Must(template.New("digest").Funcs(template.FuncMap{
	"tierColor": TierColor,
}).Parse(`<html>
<body style="font-family: Arial, sans-serif; max-width: 720px; margin: 0 auto; padding: 20px; color: #333; background: #fff;">
  <div style="background: #1a1a2e; padding: 25px; border-radius: 8px; margin-bottom: 20px;">
    <h1 style="color: #fff; margin: 0; font-size: 24px;">AI Research Digest</h1>
    <p style="color: #aac4e8; margin: 8px 0 0 0; font-size: 14px;">{{.Date}} &nbsp;&middot;&nbsp; {{len .Reviews}} articles found</p>
  </div>
  <p style="color: #666; font-size: 13px; padding: 0 5px;">Topics: <em>{{.Topics}}</em></p>
  <hr style="border: none; border-top: 1px solid #eee; margin: 15px 0;">
{{- if not .Reviews}}
  <p style="padding: 20px; color: #888;">No relevant articles found today. Check back tomorrow!</p>
{{- else}}
{{- range .Reviews}}
  <div style="margin: 20px 0; padding: 18px; border-left: 4px solid {{tierColor .Score}}; background: #f8f9fa; border-radius: 0 6px 6px 0;">
    <h3 style="margin: 0 0 6px 0; font-size: 16px; line-height: 1.4;">
      <a href="{{.Item.URL}}" style="color: #1a1a2e; text-decoration: none;">{{.Item.Title}}</a>
    </h3>
    <p style="color: #999; font-size: 12px; margin: 0 0 10px 0;">
      {{.Item.Source}} &nbsp;&middot;&nbsp; {{.Item.Published}} &nbsp;&middot;&nbsp; Relevance: {{.Score}}/10{{if .Sentiment}} &nbsp;&middot;&nbsp; {{.Sentiment}}{{end}}
    </p>
    <div style="font-size: 14px; line-height: 1.7; color: #444;">
{{- range .Bullets}}
      &#8226; {{.}}<br>
{{- end}}
    </div>
  </div>
{{- end}}
{{- end}}
  <hr style="border: none; border-top: 1px solid #eee; margin-top: 30px;">
  <p style="color: #bbb; font-size: 11px; text-align: center; padding: 10px 0;">
    Generated by ResearchDigest &nbsp;&middot;&nbsp; Powered by Groq + Llama 3.3
  </p>
</body>
</html>`))

// TierColor maps a relevance score onto its visual tier.
func TierColor(score int) template.CSS {
	switch {
	case score >= 9:
		return tierHigh
	case score >= 7:
		return tierMedium
	default:
		return tierLow
	}
}

// Compile renders the digest body for one group. An empty review list is a
// valid input and produces the explicit no-results body.
func Compile(reviews []domain.ItemReview, topics []string, now time.Time) (string, error) {
	data := struct {
		Date    string
		Topics  string
		Reviews []domain.ItemReview
	}{
		Date:    now.Format("January 2, 2006"),
		Topics:  strings.Join(topics, "  |  "),
		Reviews: reviews,
	}

	var b strings.Builder
	if err := bodyTemplate.Execute(&b, data); err != nil {
		return "", fmt.Errorf("render digest: %w", err)
	}
	return b.String(), nil
}

// Subject builds the per-run email subject line.
func Subject(now time.Time) string {
	return "AI Research Digest - " + now.Format("2006-01-02")
}
