package handlers

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"daylog/internal/journal"
	"daylog/internal/service"
	"daylog/internal/storage"
	"daylog/internal/timeline"
)

// JournalHandler exposes the journal operations over HTTP.
type JournalHandler struct {
	journal service.JournalService
}

// NewJournalHandler creates a new JournalHandler.
func NewJournalHandler(journal service.JournalService) *JournalHandler {
	return &JournalHandler{journal: journal}
}

// MetricsResponse wraps a list of metrics records with display strings.
type MetricsResponse struct {
	Metrics []MetricsView `json:"metrics"`
}

// MetricsView is a MetricsRecord plus its formatted values.
type MetricsView struct {
	storage.MetricsRecord
	Display map[string]string `json:"display"`
}

func newMetricsView(rec storage.MetricsRecord) MetricsView {
	return MetricsView{
		MetricsRecord: rec,
		Display: map[string]string{
			"steps":              rec.FormattedSteps(),
			"sleep":              rec.FormattedSleep(),
			"weight":             rec.FormattedWeight(),
			"resting_heart_rate": rec.FormattedHeartRate(),
		},
	}
}

// CategorizeResponse reports a categorization run.
type CategorizeResponse struct {
	Parsed   int    `json:"parsed"`
	Upserted int    `json:"upserted"`
	Skipped  int    `json:"skipped"`
	Message  string `json:"message"`
}

// TimelineResponse is the grouped entry timeline.
type TimelineResponse struct {
	Weeks []WeekView `json:"weeks"`
}

// WeekView is a week bucket with its display label.
type WeekView struct {
	Start journal.DateKey `json:"start"`
	End   journal.DateKey `json:"end"`
	Label string          `json:"label"`
	Days  []DayView       `json:"days"`
}

// DayView is a day bucket with its display label.
type DayView struct {
	Day     journal.DateKey `json:"day"`
	Label   string          `json:"label"`
	Entries []EntryView     `json:"entries"`
}

// EntryView is one entry with its category display name.
type EntryView struct {
	ID          string           `json:"id"`
	Category    journal.Category `json:"category"`
	DisplayName string           `json:"display_name"`
	Content     string           `json:"content"`
}

func newTimelineResponse(weeks []timeline.WeekGroup) TimelineResponse {
	resp := TimelineResponse{Weeks: make([]WeekView, 0, len(weeks))}
	for _, w := range weeks {
		wv := WeekView{Start: w.Start, End: w.End, Label: w.DisplayRange()}
		for _, d := range w.Days {
			dv := DayView{Day: d.Day, Label: d.DisplayDate()}
			for _, e := range d.Entries {
				dv.Entries = append(dv.Entries, EntryView{
					ID:          e.ID,
					Category:    e.Category,
					DisplayName: e.Category.DisplayName(),
					Content:     e.Content,
				})
			}
			wv.Days = append(wv.Days, dv)
		}
		resp.Weeks = append(resp.Weeks, wv)
	}
	return resp
}

// Status handles GET /api/status.
func (h *JournalHandler) Status(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, r.Context(), http.StatusOK, h.journal.Status())
}

// SyncMetrics handles POST /api/metrics/sync?days=N.
func (h *JournalHandler) SyncMetrics(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	days, err := intQuery(r, "days")
	if err != nil {
		handleServiceError(w, ctx, err)
		return
	}

	report, err := h.journal.SyncMetrics(ctx, days)
	if err != nil {
		handleServiceError(w, ctx, err)
		return
	}
	writeJSON(w, ctx, http.StatusOK, report)
}

// RecentMetrics handles GET /api/metrics?days=N.
func (h *JournalHandler) RecentMetrics(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	days, err := intQuery(r, "days")
	if err != nil {
		handleServiceError(w, ctx, err)
		return
	}

	records, err := h.journal.RecentMetrics(ctx, days)
	if err != nil {
		handleServiceError(w, ctx, err)
		return
	}
	resp := MetricsResponse{Metrics: make([]MetricsView, 0, len(records))}
	for _, rec := range records {
		resp.Metrics = append(resp.Metrics, newMetricsView(rec))
	}
	writeJSON(w, ctx, http.StatusOK, resp)
}

// IngestToday handles POST /api/notes/today/ingest.
func (h *JournalHandler) IngestToday(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	note, err := h.journal.IngestToday(ctx)
	if err != nil {
		handleServiceError(w, ctx, err)
		return
	}
	writeJSON(w, ctx, http.StatusOK, note)
}

// IngestDay handles POST /api/notes/{day}/ingest.
func (h *JournalHandler) IngestDay(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	day, err := dayParam(r)
	if err != nil {
		handleServiceError(w, ctx, err)
		return
	}

	note, err := h.journal.IngestDay(ctx, day)
	if err != nil {
		handleServiceError(w, ctx, err)
		return
	}
	writeJSON(w, ctx, http.StatusOK, note)
}

// Backfill handles POST /api/notes/backfill?from=YYYY-MM-DD&to=YYYY-MM-DD.
func (h *JournalHandler) Backfill(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	from, err := dayQuery(r, "from")
	if err != nil {
		handleServiceError(w, ctx, err)
		return
	}
	to, err := dayQuery(r, "to")
	if err != nil {
		handleServiceError(w, ctx, err)
		return
	}

	report, err := h.journal.Backfill(ctx, from, to)
	if err != nil {
		handleServiceError(w, ctx, err)
		return
	}
	writeJSON(w, ctx, http.StatusOK, report)
}

// Categorize handles POST /api/entries/categorize.
func (h *JournalHandler) Categorize(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	result, err := h.journal.CategorizeLastNote(ctx)
	if err != nil {
		handleServiceError(w, ctx, err)
		return
	}
	writeJSON(w, ctx, http.StatusOK, CategorizeResponse{
		Parsed:   result.Parsed,
		Upserted: result.Upserted,
		Skipped:  result.Skipped,
		Message:  fmt.Sprintf("Parsed %d categories.", result.Parsed),
	})
}

// Timeline handles GET /api/timeline?category=code.
func (h *JournalHandler) Timeline(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var filter *journal.Category
	if raw := strings.TrimSpace(r.URL.Query().Get("category")); raw != "" {
		category, err := journal.ParseCategory(raw)
		if err != nil {
			handleServiceError(w, ctx, &service.ValidationError{Field: "category", Message: err.Error()})
			return
		}
		filter = &category
	}

	weeks, err := h.journal.Timeline(ctx, filter)
	if err != nil {
		handleServiceError(w, ctx, err)
		return
	}
	writeJSON(w, ctx, http.StatusOK, newTimelineResponse(weeks))
}

// DayDetail handles GET /api/days/{day}.
func (h *JournalHandler) DayDetail(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
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
	writeJSON(w, ctx, http.StatusOK, detail)
}

// ValidateCredentials handles POST /api/credentials/validate.
func (h *JournalHandler) ValidateCredentials(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	if err := h.journal.ValidateCredentials(ctx); err != nil {
		handleServiceError(w, ctx, err)
		return
	}
	writeJSON(w, ctx, http.StatusOK, map[string]bool{"valid": true})
}

// VaultStatus handles GET /api/vault.
func (h *JournalHandler) VaultStatus(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, r.Context(), http.StatusOK, h.journal.VaultStatus())
}

// DisconnectVault handles DELETE /api/vault.
func (h *JournalHandler) DisconnectVault(w http.ResponseWriter, r *http.Request) {
	h.journal.DisconnectVault()
	w.WriteHeader(http.StatusNoContent)
}

func dayParam(r *http.Request) (journal.DateKey, error) {
	day, err := journal.ParseDateKey(chi.URLParam(r, "day"))
	if err != nil {
		return journal.DateKey{}, &service.ValidationError{Field: "day", Message: "must be YYYY-MM-DD"}
	}
	return day, nil
}

// dayQuery parses an optional YYYY-MM-DD query parameter.
func dayQuery(r *http.Request, name string) (journal.DateKey, error) {
	raw := strings.TrimSpace(r.URL.Query().Get(name))
	if raw == "" {
		return journal.DateKey{}, nil
	}
	day, err := journal.ParseDateKey(raw)
	if err != nil {
		return journal.DateKey{}, &service.ValidationError{Field: name, Message: "must be YYYY-MM-DD"}
	}
	return day, nil
}

// intQuery parses an optional non-negative integer query parameter.
func intQuery(r *http.Request, name string) (int, error) {
	raw := strings.TrimSpace(r.URL.Query().Get(name))
	if raw == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		return 0, &service.ValidationError{Field: name, Message: "must be a non-negative integer"}
	}
	return n, nil
}
