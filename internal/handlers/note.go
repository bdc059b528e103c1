package handlers

import (
	"bytes"
	"fmt"
	"html/template"
	"net/http"
	"time"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	ghhtml "github.com/yuin/goldmark/renderer/html"

	"daylog/internal/apperr"
	"daylog/internal/contextutil"
	"daylog/internal/journal"
	"daylog/internal/service"
	"daylog/internal/storage"
)

// NoteHandler serves stored daily notes as rendered HTML pages.
type NoteHandler struct {
	journal  service.JournalService
	parser   goldmark.Markdown
	policy   *bluemonday.Policy
	template *template.Template
}

// notePageData holds template data for a rendered day page.
type notePageData struct {
	Title    string
	Vault    string
	Filename string
	Metrics  []metricLine
	Entries  []entryLine
	Content  template.HTML
}

type metricLine struct {
	Label string
	Value string
}

type entryLine struct {
	Category string
	Content  string
}

const notePageTemplate = `<!DOCTYPE html>
<html lang="en">
<head>
  <meta charset="utf-8">
  <meta name="viewport" content="width=device-width, initial-scale=1">
  <title>{{.Title}}</title>
  <style>
    body { font-family: Georgia, 'Times New Roman', serif; max-width: 760px; margin: 0 auto; padding: 2rem 1.25rem; line-height: 1.6; color: #2b2a28; background: #faf8f3; }
    h1 { font-size: 1.8rem; margin: 0 0 .25rem; }
    .source { color: #7a756c; font-size: .9rem; margin: 0 0 1.5rem; }
    .metrics { display: flex; flex-wrap: wrap; gap: .75rem; margin-bottom: 1.5rem; padding: 0; list-style: none; }
    .metrics li { background: #fff; border: 1px solid #e4dfd4; border-radius: 8px; padding: .5rem .9rem; }
    .metrics span { display: block; font-size: .75rem; text-transform: uppercase; color: #7a756c; }
    dl.entries { display: grid; grid-template-columns: max-content 1fr; gap: .4rem 1rem; margin-bottom: 2rem; }
    dl.entries dt { font-weight: bold; color: #8a5a2b; }
    dl.entries dd { margin: 0; }
    article { border-top: 1px solid #e4dfd4; padding-top: 1rem; }
    pre, code { font-family: Menlo, Consolas, monospace; font-size: .9em; background: #f0ece3; border-radius: 4px; }
    pre { padding: .75rem; overflow-x: auto; }
    blockquote { margin-left: 0; padding-left: 1rem; border-left: 3px solid #d9c9a8; color: #5c574f; }
  </style>
</head>
<body>
  <h1>{{.Title}}</h1>
  <p class="source">{{.Vault}} &middot; {{.Filename}}</p>
  {{if .Metrics}}<ul class="metrics">{{range .Metrics}}<li><span>{{.Label}}</span>{{.Value}}</li>{{end}}</ul>{{end}}
  {{if .Entries}}<dl class="entries">{{range .Entries}}<dt>{{.Category}}</dt><dd>{{.Content}}</dd>{{end}}</dl>{{end}}
  <article>{{.Content}}</article>
</body>
</html>`

// NewNoteHandler creates a new handler for serving stored notes.
func NewNoteHandler(journal service.JournalService) *NoteHandler {
	tmpl := template.Must(template.New("note").Parse(notePageTemplate))

	return &NoteHandler{
		journal: journal,
		parser: goldmark.New(
			goldmark.WithExtensions(
				extension.GFM,
				extension.Table,
				extension.TaskList,
				extension.Strikethrough,
				extension.Linkify,
				extension.Typographer,
			),
			goldmark.WithRendererOptions(
				ghhtml.WithUnsafe(),
			),
			goldmark.WithParserOptions(
				parser.WithAutoHeadingID(),
			),
		),
		policy:   bluemonday.UGCPolicy(),
		template: tmpl,
	}
}

// ServeHTTP renders the note stored for {day} as HTML.
func (h *NoteHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := contextutil.LoggerFromContext(ctx)

	day, err := dayParam(r)
	if err != nil {
		handleServiceError(w, ctx, err)
		return
	}

	detail, err := h.journal.DayDetail(ctx, day)
	if err != nil {
		handleServiceError(w, ctx, err)
		return
	}
	if detail.Note == nil {
		handleServiceError(w, ctx, apperr.ErrNoteNotFound)
		return
	}

	htmlContent, err := h.RenderMarkdown([]byte(detail.Note.RawText))
	if err != nil {
		logger.ErrorContext(ctx, "failed to render markdown", "day", day.String(), "error", err)
		http.Error(w, "failed to render note", http.StatusInternalServerError)
		return
	}

	vaultName := h.journal.VaultStatus().Name
	if vaultName == "" {
		vaultName = "disconnected"
	}
	pageData := notePageData{
		Title:    formatTitle(day),
		Vault:    vaultName,
		Filename: detail.Note.Filename,
		Metrics:  metricLines(detail.Metrics),
		Entries:  make([]entryLine, 0, len(detail.Entries)),
		Content:  template.HTML(htmlContent),
	}
	for _, e := range detail.Entries {
		pageData.Entries = append(pageData.Entries, entryLine{Category: e.Category.DisplayName(), Content: e.Content})
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := h.template.Execute(w, pageData); err != nil {
		logger.ErrorContext(ctx, "failed to execute note template", "day", day.String(), "error", err)
		http.Error(w, "failed to render note", http.StatusInternalServerError)
		return
	}
}

// RenderMarkdown converts note markdown to sanitized HTML.
func (h *NoteHandler) RenderMarkdown(content []byte) (string, error) {
	var buf bytes.Buffer
	if err := h.parser.Convert(content, &buf); err != nil {
		return "", fmt.Errorf("convert markdown: %w", err)
	}
	return h.policy.Sanitize(buf.String()), nil
}

// metricLines lists the recorded metrics of a day, skipping missing ones.
func metricLines(m *storage.MetricsRecord) []metricLine {
	if m == nil {
		return nil
	}
	var lines []metricLine
	for _, l := range []metricLine{
		{Label: "Steps", Value: m.FormattedSteps()},
		{Label: "Sleep", Value: m.FormattedSleep()},
		{Label: "Weight", Value: m.FormattedWeight()},
		{Label: "Resting HR", Value: m.FormattedHeartRate()},
	} {
		if l.Value != "" {
			lines = append(lines, l)
		}
	}
	return lines
}

func formatTitle(day journal.DateKey) string {
	return day.Time(time.UTC).Format("Monday, January 2, 2006")
}
