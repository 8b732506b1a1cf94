package routes_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/JaimeStill/triage/pkg/openapi"
	"github.com/JaimeStill/triage/pkg/routes"
)

func status(code int) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(code)
	}
}

func testGroup() routes.Group {
	return routes.Group{
		Prefix: "/complaints",
		Tags:   []string{"Complaints"},
		Routes: []routes.Route{
			{Method: "GET", Pattern: "", Handler: status(http.StatusOK), OpenAPI: &openapi.Operation{Summary: "List"}},
			{Method: "PATCH", Pattern: "/{id}", Handler: status(http.StatusAccepted), OpenAPI: &openapi.Operation{Summary: "Update"}},
			{Method: "GET", Pattern: "/{id}", Handler: status(http.StatusOK)},
		},
		Children: []routes.Group{
			{
				Prefix: "/stats",
				Routes: []routes.Route{
					{Method: "GET", Pattern: "", Handler: status(http.StatusTeapot), OpenAPI: &openapi.Operation{Summary: "Stats"}},
				},
			},
		},
	}
}

func TestRegister(t *testing.T) {
	mux := http.NewServeMux()
	routes.Register(mux, testGroup())

	tests := []struct {
		method, path string
		want         int
	}{
		{"GET", "/complaints", http.StatusOK},
		{"PATCH", "/complaints/123", http.StatusAccepted},
		{"GET", "/complaints/123", http.StatusOK},
		{"GET", "/complaints/stats", http.StatusTeapot},
		{"DELETE", "/complaints/123", http.StatusMethodNotAllowed},
	}

	for _, tt := range tests {
		t.Run(tt.method+" "+tt.path, func(t *testing.T) {
			rec := httptest.NewRecorder()
			mux.ServeHTTP(rec, httptest.NewRequest(tt.method, tt.path, nil))
			if rec.Code != tt.want {
				t.Errorf("status = %d, want %d", rec.Code, tt.want)
			}
		})
	}
}

func TestDescribe(t *testing.T) {
	spec := openapi.NewSpec("Test", "1.0.0")
	routes.Describe(spec, testGroup())

	list := spec.Paths["/complaints"]
	if list == nil || list.Get == nil {
		t.Fatal("missing GET /complaints")
	}
	if list.Get.Tags[0] != "Complaints" {
		t.Errorf("tags = %v, want group tags", list.Get.Tags)
	}

	item := spec.Paths["/complaints/{id}"]
	if item == nil || item.Patch == nil {
		t.Fatal("missing PATCH /complaints/{id}")
	}
	if item.Get != nil {
		t.Error("routes without an operation should not be described")
	}

	stats := spec.Paths["/complaints/stats"]
	if stats == nil || stats.Get == nil || stats.Get.Tags[0] != "Complaints" {
		t.Error("child group should inherit parent tags")
	}
}
