package handlers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"go.uber.org/mock/gomock"

	"daylog/internal/journal"
	"daylog/internal/service"
	"daylog/internal/service/mocks"
	"daylog/internal/storage"
)

func TestNoteHandler_ServeHTTP(t *testing.T) {
	day := journal.NewDateKey(2024, time.January, 15)
	steps := 12345

	tests := []struct {
		name       string
		param      string
		setup      func(m *mocks.MockJournalService)
		wantStatus int
		wantBody   []string
		rejectBody []string
	}{
		{
			name:  "renders and sanitizes",
			param: "2024-01-15",
			setup: func(m *mocks.MockJournalService) {
				m.EXPECT().DayDetail(gomock.Any(), day).Return(service.DayDetail{
					Day:     day,
					Metrics: &storage.MetricsRecord{Day: day, Steps: &steps},
					Note:    &storage.NoteRecord{Day: day, Filename: "2024-01-15.md", RawText: "# Morning\n\nRan **5k**.\n\n<script>alert(1)</script>"},
					Entries: []storage.EntryRecord{{Day: day, Category: journal.Workout, Content: "Ran 5k"}},
				}, nil)
				m.EXPECT().VaultStatus().Return(service.VaultStatus{Configured: true, Name: "Personal"})
			},
			wantStatus: http.StatusOK,
			wantBody:   []string{"<strong>5k</strong>", "Monday, January 15, 2024", "2024-01-15.md", "Personal", "12,345", "<dt>Workout</dt><dd>Ran 5k</dd>"},
			rejectBody: []string{"<script>", "Sleep"},
		},
		{
			name:  "no stored note",
			param: "2024-01-15",
			setup: func(m *mocks.MockJournalService) {
				m.EXPECT().DayDetail(gomock.Any(), day).Return(service.DayDetail{Day: day}, nil)
			},
			wantStatus: http.StatusNotFound,
		},
		{
			name:       "bad day",
			param:      "15-01-2024",
			setup:      func(m *mocks.MockJournalService) {},
			wantStatus: http.StatusBadRequest,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			svc := mocks.NewMockJournalService(ctrl)
			tt.setup(svc)

			req := withURLParam(httptest.NewRequest(http.MethodGet, "/api/notes/"+tt.param, nil), "day", tt.param)
			w := httptest.NewRecorder()
			NewNoteHandler(svc).ServeHTTP(w, req)

			if w.Code != tt.wantStatus {
				t.Fatalf("status = %d, want %d", w.Code, tt.wantStatus)
			}
			body := w.Body.String()
			for _, want := range tt.wantBody {
				if !strings.Contains(body, want) {
					t.Errorf("body missing %q", want)
				}
			}
			for _, reject := range tt.rejectBody {
				if strings.Contains(body, reject) {
					t.Errorf("body contains %q", reject)
				}
			}
		})
	}
}
