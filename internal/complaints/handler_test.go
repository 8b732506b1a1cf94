package complaints_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/JaimeStill/triage/internal/complaints"
	"github.com/JaimeStill/triage/internal/enrichment"
	"github.com/JaimeStill/triage/pkg/handlers"
	"github.com/JaimeStill/triage/pkg/pagination"
)

const testMaxBody = 1024

type mockSystem struct {
	createFn       func(ctx context.Context, cmd complaints.CreateCommand) (*complaints.Complaint, error)
	listFn         func(ctx context.Context, filters complaints.Filters) ([]complaints.Complaint, error)
	searchFn       func(ctx context.Context, page pagination.PageRequest, filters complaints.Filters) (*pagination.PageResult[complaints.Complaint], error)
	findFn         func(ctx context.Context, id uuid.UUID) (*complaints.Complaint, error)
	updateStatusFn func(ctx context.Context, id uuid.UUID, cmd complaints.UpdateStatusCommand) (*complaints.Complaint, error)
}

func (m *mockSystem) Handler(maxBodySize int64) *complaints.Handler {
	return complaints.NewHandler(m, discard(), pagination.Config{DefaultPageSize: 20, MaxPageSize: 100}, maxBodySize)
}

func (m *mockSystem) Create(ctx context.Context, cmd complaints.CreateCommand) (*complaints.Complaint, error) {
	return m.createFn(ctx, cmd)
}

func (m *mockSystem) List(ctx context.Context, filters complaints.Filters) ([]complaints.Complaint, error) {
	return m.listFn(ctx, filters)
}

func (m *mockSystem) Search(ctx context.Context, page pagination.PageRequest, filters complaints.Filters) (*pagination.PageResult[complaints.Complaint], error) {
	return m.searchFn(ctx, page, filters)
}

func (m *mockSystem) Find(ctx context.Context, id uuid.UUID) (*complaints.Complaint, error) {
	return m.findFn(ctx, id)
}

func (m *mockSystem) UpdateStatus(ctx context.Context, id uuid.UUID, cmd complaints.UpdateStatusCommand) (*complaints.Complaint, error) {
	return m.updateStatusFn(ctx, id, cmd)
}

func discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func setupMux(sys *mockSystem) *http.ServeMux {
	h := sys.Handler(testMaxBody)
	mux := http.NewServeMux()
	group := h.Routes()
	for _, route := range group.Routes {
		pattern := route.Method + " " + group.Prefix + route.Pattern
		mux.HandleFunc(pattern, route.Handler)
	}
	return mux
}

func sampleComplaint() complaints.Complaint {
	now := time.Now().Truncate(time.Second)
	return complaints.Complaint{
		ID:        uuid.MustParse("550e8400-e29b-41d4-a716-446655440000"),
		Text:      "Не открывается сайт, ошибка 500",
		Status:    complaints.StatusOpen,
		Sentiment: enrichment.SentimentNegative,
		Category:  enrichment.CategoryTechnical,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func serve(mux *http.ServeMux, method, path string, body io.Reader) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(method, path, body))
	return rec
}

func errorBody(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var resp handlers.ErrorResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode error body: %v", err)
	}
	return resp.Error
}

func TestHandlerCreate(t *testing.T) {
	c := sampleComplaint()
	var received complaints.CreateCommand

	sys := &mockSystem{
		createFn: func(_ context.Context, cmd complaints.CreateCommand) (*complaints.Complaint, error) {
			received = cmd
			if strings.TrimSpace(cmd.Text) == "" {
				return nil, complaints.ErrEmptyText
			}
			return &c, nil
		},
	}
	mux := setupMux(sys)

	t.Run("returns 201 with stored complaint", func(t *testing.T) {
		rec := serve(mux, "POST", "/complaints", strings.NewReader(`{"text":"Не открывается сайт, ошибка 500"}`))

		if rec.Code != http.StatusCreated {
			t.Fatalf("status = %d, want 201", rec.Code)
		}
		if received.Text != c.Text {
			t.Errorf("received text = %q, want %q", received.Text, c.Text)
		}

		var got complaints.Complaint
		if err := json.NewDecoder(rec.Body).Decode(&got); err != nil {
			t.Fatalf("decode: %v", err)
		}
		if got.ID != c.ID || got.Category != enrichment.CategoryTechnical {
			t.Errorf("got %+v, want %+v", got, c)
		}
	})

	t.Run("empty text returns 400", func(t *testing.T) {
		rec := serve(mux, "POST", "/complaints", strings.NewReader(`{"text":"   "}`))
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("status = %d, want 400", rec.Code)
		}
		if msg := errorBody(t, rec); msg != complaints.ErrEmptyText.Error() {
			t.Errorf("error = %q", msg)
		}
	})

	t.Run("malformed body returns 400", func(t *testing.T) {
		rec := serve(mux, "POST", "/complaints", strings.NewReader(`{"text":`))
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("status = %d, want 400", rec.Code)
		}
	})

	t.Run("oversized body returns 413", func(t *testing.T) {
		body := `{"text":"` + strings.Repeat("a", testMaxBody*2) + `"}`
		rec := serve(mux, "POST", "/complaints", strings.NewReader(body))
		if rec.Code != http.StatusRequestEntityTooLarge {
			t.Fatalf("status = %d, want 413", rec.Code)
		}
		if msg := errorBody(t, rec); !strings.Contains(msg, "1 KB") {
			t.Errorf("error = %q, want limit in message", msg)
		}
	})
}

func TestHandlerList(t *testing.T) {
	c := sampleComplaint()
	var received complaints.Filters

	sys := &mockSystem{
		listFn: func(_ context.Context, filters complaints.Filters) ([]complaints.Complaint, error) {
			received = filters
			return []complaints.Complaint{c}, nil
		},
	}
	mux := setupMux(sys)

	t.Run("returns array with parsed filters", func(t *testing.T) {
		rec := serve(mux, "GET", "/complaints?status=open&from_timestamp=3600", nil)

		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d, want 200", rec.Code)
		}

		var items []complaints.Complaint
		if err := json.NewDecoder(rec.Body).Decode(&items); err != nil {
			t.Fatalf("decode: %v", err)
		}
		if len(items) != 1 {
			t.Fatalf("len = %d, want 1", len(items))
		}
		if received.Status == nil || *received.Status != complaints.StatusOpen {
			t.Errorf("status filter = %v, want open", received.Status)
		}
		if received.FromTimestamp == nil || *received.FromTimestamp != 3600 {
			t.Errorf("from_timestamp filter = %v, want 3600", received.FromTimestamp)
		}
	})

	t.Run("empty result is an empty array", func(t *testing.T) {
		empty := &mockSystem{
			listFn: func(context.Context, complaints.Filters) ([]complaints.Complaint, error) {
				return []complaints.Complaint{}, nil
			},
		}
		rec := serve(setupMux(empty), "GET", "/complaints", nil)
		if body := strings.TrimSpace(rec.Body.String()); body != "[]" {
			t.Errorf("body = %s, want []", body)
		}
	})

	for _, q := range []string{"status=pending", "from_timestamp=abc", "from_timestamp=-5"} {
		t.Run("invalid "+q+" returns 400", func(t *testing.T) {
			rec := serve(mux, "GET", "/complaints?"+q, nil)
			if rec.Code != http.StatusBadRequest {
				t.Fatalf("status = %d, want 400", rec.Code)
			}
		})
	}
}

func TestHandlerSearch(t *testing.T) {
	c := sampleComplaint()
	var receivedPage pagination.PageRequest
	var receivedFilters complaints.Filters

	sys := &mockSystem{
		searchFn: func(_ context.Context, page pagination.PageRequest, filters complaints.Filters) (*pagination.PageResult[complaints.Complaint], error) {
			receivedPage = page
			receivedFilters = filters
			result := pagination.NewPageResult([]complaints.Complaint{c}, 1, page.Page, page.PageSize)
			return &result, nil
		},
	}
	mux := setupMux(sys)

	body := `{"page":2,"page_size":500,"search":"сайт","sort":"-CreatedAt","status":"closed"}`
	rec := serve(mux, "POST", "/complaints/search", bytes.NewBufferString(body))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	if receivedPage.Page != 2 {
		t.Errorf("page = %d, want 2", receivedPage.Page)
	}
	if receivedPage.PageSize != 100 {
		t.Errorf("page_size = %d, want clamped to 100", receivedPage.PageSize)
	}
	if receivedPage.Search == nil || *receivedPage.Search != "сайт" {
		t.Errorf("search = %v", receivedPage.Search)
	}
	if len(receivedPage.Sort) != 1 || !receivedPage.Sort[0].Descending {
		t.Errorf("sort = %+v", receivedPage.Sort)
	}
	if receivedFilters.Status == nil || *receivedFilters.Status != complaints.StatusClosed {
		t.Errorf("status filter = %v", receivedFilters.Status)
	}

	var result pagination.PageResult[complaints.Complaint]
	if err := json.NewDecoder(rec.Body).Decode(&result); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if result.Total != 1 || len(result.Data) != 1 {
		t.Errorf("result = %+v", result)
	}
}

func TestHandlerFind(t *testing.T) {
	c := sampleComplaint()
	sys := &mockSystem{
		findFn: func(_ context.Context, id uuid.UUID) (*complaints.Complaint, error) {
			if id == c.ID {
				return &c, nil
			}
			return nil, complaints.ErrNotFound
		},
	}
	mux := setupMux(sys)

	tests := []struct {
		name string
		path string
		want int
	}{
		{"found", "/complaints/" + c.ID.String(), http.StatusOK},
		{"not found", "/complaints/" + uuid.New().String(), http.StatusNotFound},
		{"malformed id", "/complaints/not-a-uuid", http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if rec := serve(mux, "GET", tt.path, nil); rec.Code != tt.want {
				t.Errorf("status = %d, want %d", rec.Code, tt.want)
			}
		})
	}
}

func TestHandlerUpdateStatus(t *testing.T) {
	c := sampleComplaint()
	sys := &mockSystem{
		updateStatusFn: func(_ context.Context, id uuid.UUID, cmd complaints.UpdateStatusCommand) (*complaints.Complaint, error) {
			if !cmd.Status.Valid() {
				return nil, complaints.ErrInvalidStatus
			}
			if id != c.ID {
				return nil, complaints.ErrNotFound
			}
			updated := c
			updated.Status = cmd.Status
			return &updated, nil
		},
	}
	mux := setupMux(sys)

	t.Run("updates status", func(t *testing.T) {
		rec := serve(mux, "PATCH", "/complaints/"+c.ID.String(), strings.NewReader(`{"status":"closed"}`))
		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d, want 200", rec.Code)
		}

		var got complaints.Complaint
		if err := json.NewDecoder(rec.Body).Decode(&got); err != nil {
			t.Fatalf("decode: %v", err)
		}
		if got.Status != complaints.StatusClosed {
			t.Errorf("status = %s, want closed", got.Status)
		}
	})

	tests := []struct {
		name string
		id   string
		body string
		want int
	}{
		{"unknown id", uuid.New().String(), `{"status":"closed"}`, http.StatusNotFound},
		{"invalid status", c.ID.String(), `{"status":"archived"}`, http.StatusBadRequest},
		{"malformed id", "42", `{"status":"closed"}`, http.StatusBadRequest},
		{"malformed body", c.ID.String(), `status=closed`, http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := serve(mux, "PATCH", "/complaints/"+tt.id, strings.NewReader(tt.body))
			if rec.Code != tt.want {
				t.Errorf("status = %d, want %d", rec.Code, tt.want)
			}
		})
	}
}

func TestMapHTTPStatus(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{complaints.ErrNotFound, http.StatusNotFound},
		{complaints.ErrEmptyText, http.StatusBadRequest},
		{complaints.ErrInvalidStatus, http.StatusBadRequest},
		{complaints.ErrInvalidFilter, http.StatusBadRequest},
		{complaints.ErrInvalidID, http.StatusBadRequest},
		{complaints.ErrInvalidBody, http.StatusBadRequest},
		{complaints.ErrBodyTooLarge, http.StatusRequestEntityTooLarge},
		{context.Canceled, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.err.Error(), func(t *testing.T) {
			if got := complaints.MapHTTPStatus(tt.err); got != tt.want {
				t.Errorf("MapHTTPStatus(%v) = %d, want %d", tt.err, got, tt.want)
			}
		})
	}
}
