package report

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"caktus/internal/llm"
	"caktus/internal/sensor"

	"github.com/gin-gonic/gin"
)

func setupReportRouter(svc *Service) *gin.Engine {
	gin.SetMode(gin.TestMode)

	h := NewHandler(svc)
	r := gin.New()
	r.Use(func(c *gin.Context) {
		c.Set("userID", "user-1")
		c.Next()
	})
	r.GET("/plants/:id/conditions", h.Conditions)
	r.POST("/plants/:id/report", h.Generate)
	return r
}

func TestReportHandlerSuccess(t *testing.T) {
	r := sensor.NewReading("dev", 24, 35, 60)
	svc, p := newFixture(t, &fakeLLM{reply: "• ok"}, &r)
	router := setupReportRouter(svc)

	req := httptest.NewRequest(http.MethodPost, "/plants/"+p.ID+"/report", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d: %s", http.StatusOK, w.Code, w.Body.String())
	}

	var body CareReport
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if len(body.Lines) != 1 || body.Lines[0].Text != "ok" {
		t.Errorf("unexpected lines: %+v", body.Lines)
	}
}

func TestReportHandlerErrors(t *testing.T) {
	r := sensor.NewReading("dev", 24, 35, 60)

	tests := []struct {
		name    string
		client  *fakeLLM
		reading *sensor.Reading
		method  string
		path    func(id string) string
		want    int
	}{
		{
			name:    "llm unavailable",
			client:  &fakeLLM{err: llm.ErrUnavailable},
			reading: &r,
			method:  http.MethodPost,
			path:    func(id string) string { return "/plants/" + id + "/report" },
			want:    http.StatusServiceUnavailable,
		},
		{
			name:    "no reading",
			client:  &fakeLLM{reply: "x"},
			reading: nil,
			method:  http.MethodGet,
			path:    func(id string) string { return "/plants/" + id + "/conditions" },
			want:    http.StatusConflict,
		},
		{
			name:    "unknown plant",
			client:  &fakeLLM{reply: "x"},
			reading: &r,
			method:  http.MethodGet,
			path:    func(string) string { return "/plants/missing/conditions" },
			want:    http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, p := newFixture(t, tt.client, tt.reading)
			router := setupReportRouter(svc)

			req := httptest.NewRequest(tt.method, tt.path(p.ID), nil)
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			if w.Code != tt.want {
				t.Errorf("expected status %d, got %d", tt.want, w.Code)
			}
		})
	}
}
