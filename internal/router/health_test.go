package router

import (
	"bytes"
	"context"
	"encoding/json"
	"math/rand"
	"net/http"
	"net/http/httptest"
	"testing"

	"caktus/internal/auth"
	"caktus/internal/llm"
	"caktus/internal/plant"
	"caktus/internal/report"
	"caktus/internal/sensor"

	"github.com/gin-gonic/gin"
)

type cannedLLM struct{ reply string }

func (c cannedLLM) Complete(ctx context.Context, req llm.Request) (string, error) {
	return c.reply, nil
}

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	t.Setenv("JWT_SECRET", "router-test-secret")

	client := cannedLLM{reply: "**Tudo certo**\n• Regue no sábado"}

	plantService := plant.NewService(plant.NewInMemoryRepository(), client, nil)

	readings := sensor.NewInMemoryRepository()
	manager := sensor.NewManager(
		sensor.NewSimulatedScanner(sensor.DefaultDiscoveries()...),
		sensor.NewSimulator(rand.New(rand.NewSource(1))),
		readings,
		sensor.DefaultOptions(),
	)
	t.Cleanup(manager.Close)

	return NewRouter(Deps{
		Auth:          auth.NewHandler(auth.NewService(auth.NewInMemoryUserRepository())),
		Plants:        plant.NewHandler(plantService),
		Reports:       report.NewHandler(report.NewService(plantService, manager, client)),
		Sensors:       sensor.NewHandler(manager, readings),
		CORSOrigins:   []string{"http://localhost:8081"},
		LLMRatePerMin: 20,
	})
}

func send(r *gin.Engine, method, path, token string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestHealthCheck(t *testing.T) {
	r := newTestRouter(t)

	w := send(r, http.MethodGet, "/health", "", nil)

	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", w.Code)
	}
}

func TestProtectedRoutesNeedToken(t *testing.T) {
	r := newTestRouter(t)

	for _, path := range []string{"/plants", "/devices", "/readings/latest"} {
		if w := send(r, http.MethodGet, path, "", nil); w.Code != http.StatusUnauthorized {
			t.Errorf("%s: expected status 401, got %d", path, w.Code)
		}
	}
}

func TestLoginThenListPlants(t *testing.T) {
	r := newTestRouter(t)

	creds := map[string]string{"name": "Ana", "email": "ana@caktus.app", "password": "segredo"}
	if w := send(r, http.MethodPost, "/auth/register", "", creds); w.Code != http.StatusCreated {
		t.Fatalf("register: expected 201, got %d", w.Code)
	}

	w := send(r, http.MethodPost, "/auth/login", "", creds)
	if w.Code != http.StatusOK {
		t.Fatalf("login: expected 200, got %d", w.Code)
	}

	var login struct {
		Token string `json:"token"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &login); err != nil {
		t.Fatalf("invalid json: %v", err)
	}

	w = send(r, http.MethodGet, "/plants", login.Token, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("plants: expected 200, got %d", w.Code)
	}

	var list struct {
		Plants []plant.Plant `json:"plants"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &list); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if len(list.Plants) != 3 {
		t.Fatalf("expected 3 seeded plants, got %d", len(list.Plants))
	}

	// no sensor connected yet
	w = send(r, http.MethodGet, "/plants/"+list.Plants[0].ID+"/conditions", login.Token, nil)
	if w.Code != http.StatusConflict {
		t.Errorf("conditions: expected 409, got %d", w.Code)
	}

	if w := send(r, http.MethodGet, "/plants/presets", login.Token, nil); w.Code != http.StatusOK {
		t.Errorf("presets: expected 200, got %d", w.Code)
	}
	if w := send(r, http.MethodGet, "/devices", login.Token, nil); w.Code != http.StatusOK {
		t.Errorf("devices: expected 200, got %d", w.Code)
	}
}
