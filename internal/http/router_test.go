package http

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"go.uber.org/mock/gomock"

	"daylog/internal/journal"
	"daylog/internal/metrics"
	"daylog/internal/service"
	"daylog/internal/service/mocks"
	"daylog/internal/storage"
	"daylog/internal/timeline"
)

type stubPinger struct{}

func (stubPinger) Ping(context.Context) error { return nil }

func TestNewRouter(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	router := NewRouter(&Deps{Journal: mocks.NewMockJournalService(ctrl), Store: stubPinger{}})

	if router == nil {
		t.Fatal("NewRouter() returned nil")
	}
}

func TestRouter_Routes(t *testing.T) {
	day := journal.NewDateKey(2024, time.January, 15)

	tests := []struct {
		name       string
		method     string
		path       string
		setup      func(m *mocks.MockJournalService)
		wantStatus int
	}{
		{
			name:   "GET /api/health",
			method: http.MethodGet,
			path:   "/api/health",
			setup: func(m *mocks.MockJournalService) {
				m.EXPECT().VaultStatus().Return(service.VaultStatus{Configured: true})
			},
			wantStatus: http.StatusOK,
		},
		{
			name:   "GET /api/status",
			method: http.MethodGet,
			path:   "/api/status",
			setup: func(m *mocks.MockJournalService) {
				m.EXPECT().Status().Return(service.Status{})
			},
			wantStatus: http.StatusOK,
		},
		{
			name:   "POST /api/metrics/sync",
			method: http.MethodPost,
			path:   "/api/metrics/sync",
			setup: func(m *mocks.MockJournalService) {
				m.EXPECT().SyncMetrics(gomock.Any(), 0).Return(metrics.SyncReport{}, nil)
			},
			wantStatus: http.StatusOK,
		},
		{
			name:   "POST /api/notes/{day}/ingest",
			method: http.MethodPost,
			path:   "/api/notes/2024-01-15/ingest",
			setup: func(m *mocks.MockJournalService) {
				m.EXPECT().IngestDay(gomock.Any(), day).Return(&storage.NoteRecord{Day: day}, nil)
			},
			wantStatus: http.StatusOK,
		},
		{
			name:   "GET /api/timeline",
			method: http.MethodGet,
			path:   "/api/timeline",
			setup: func(m *mocks.MockJournalService) {
				m.EXPECT().Timeline(gomock.Any(), gomock.Nil()).Return([]timeline.WeekGroup{}, nil)
			},
			wantStatus: http.StatusOK,
		},
		{
			name:   "GET /api/days/{day}",
			method: http.MethodGet,
			path:   "/api/days/2024-01-15",
			setup: func(m *mocks.MockJournalService) {
				m.EXPECT().DayDetail(gomock.Any(), day).Return(service.DayDetail{Day: day}, nil)
			},
			wantStatus: http.StatusOK,
		},
		{
			name:   "DELETE /api/vault",
			method: http.MethodDelete,
			path:   "/api/vault",
			setup: func(m *mocks.MockJournalService) {
				m.EXPECT().DisconnectVault()
			},
			wantStatus: http.StatusNoContent,
		},
		{
			name:       "GET /api/entries/categorize not allowed",
			method:     http.MethodGet,
			path:       "/api/entries/categorize",
			setup:      func(m *mocks.MockJournalService) {},
			wantStatus: http.StatusMethodNotAllowed,
		},
		{
			name:       "unknown route",
			method:     http.MethodGet,
			path:       "/api/unknown",
			setup:      func(m *mocks.MockJournalService) {},
			wantStatus: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			svc := mocks.NewMockJournalService(ctrl)
			tt.setup(svc)

			router := NewRouter(&Deps{Journal: svc, Store: stubPinger{}})
			req := httptest.NewRequest(tt.method, tt.path, nil)
			w := httptest.NewRecorder()

			router.ServeHTTP(w, req)

			if w.Code != tt.wantStatus {
				t.Errorf("%s %s status = %v, want %v", tt.method, tt.path, w.Code, tt.wantStatus)
			}
		})
	}
}
