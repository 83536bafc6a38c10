package api_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"

	"fixqueue/internal/platform/config"
	phttp "fixqueue/internal/platform/net/http"

	"fixqueue/internal/services/api"
)

var apiNow = time.Date(2026, 8, 28, 12, 0, 0, 0, time.UTC)

// envelope mirrors the wire shape for assertions
type envelope struct {
	StatusCode int             `json:"status_code"`
	Status     string          `json:"status"`
	Error      string          `json:"error"`
	Data       json.RawMessage `json:"data"`
}

func newAPI(t *testing.T) *chi.Mux {
	t.Helper()
	mux := chi.NewRouter()
	api.Mount(phttp.AdaptChi(mux), api.Options{
		Config: config.New(),
		Clock:  func() time.Time { return apiNow },
	})
	return mux
}

func do(t *testing.T, mux *chi.Mux, method, path, body string, hdr map[string]string) (*httptest.ResponseRecorder, envelope) {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	for k, v := range hdr {
		req.Header.Set(k, v)
	}
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	var env envelope
	if rec.Body.Len() > 0 {
		if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
			t.Fatalf("response is not an envelope: %v\n%s", err, rec.Body.String())
		}
	}
	return rec, env
}

func TestHealth(t *testing.T) {
	mux := newAPI(t)
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("health = %d", rec.Code)
	}
}

func TestPriorityUpdateAndRead(t *testing.T) {
	mux := newAPI(t)

	old := apiNow.Add(-96 * time.Hour).Format(time.RFC3339)
	fresh := apiNow.Add(-6 * time.Hour).Format(time.RFC3339)
	body := `{"repairs":[
		{"id":"b","urgency":1,"createdAt":"` + fresh + `","stage":"received"},
		{"id":"a","urgency":5,"createdAt":"` + old + `","stage":"diagnosis"}
	]}`

	rec, env := do(t, mux, http.MethodPost, "/api/v1/repairs/priority", body, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("update status = %d, body %s", rec.Code, rec.Body.String())
	}

	var out struct {
		Queue []struct {
			ID    string  `json:"id"`
			Score float64 `json:"score"`
		} `json:"queue"`
	}
	if err := json.Unmarshal(env.Data, &out); err != nil {
		t.Fatalf("decode data: %v", err)
	}
	if len(out.Queue) != 2 || out.Queue[0].ID != "a" {
		t.Fatalf("old urgent repair should rank first, got %+v", out.Queue)
	}
	if out.Queue[0].Score <= out.Queue[1].Score {
		t.Fatalf("scores not descending: %+v", out.Queue)
	}

	// GET reads the same snapshot back without a body
	rec, env = do(t, mux, http.MethodGet, "/api/v1/repairs/priority", "", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("read status = %d", rec.Code)
	}
	if err := json.Unmarshal(env.Data, &out); err != nil {
		t.Fatalf("decode data: %v", err)
	}
	if len(out.Queue) != 2 {
		t.Fatalf("queue should persist across requests, got %+v", out.Queue)
	}
}

func TestPriorityRejectsMalformedBody(t *testing.T) {
	mux := newAPI(t)

	rec, env := do(t, mux, http.MethodPost, "/api/v1/repairs/priority", `{"repairs": not-json`, nil)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("malformed body should 400, got %d", rec.Code)
	}
	if env.Error == "" {
		t.Fatalf("error envelope should carry a message: %s", rec.Body.String())
	}
}

func TestPriorityRejectsRepairWithoutID(t *testing.T) {
	mux := newAPI(t)

	body := `{"repairs":[{"urgency":3,"createdAt":"2026-08-20T10:00:00Z","stage":"received"}]}`
	rec, env := do(t, mux, http.MethodPost, "/api/v1/repairs/priority", body, nil)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("missing id should 400, got %d body %s", rec.Code, rec.Body.String())
	}
	if !strings.Contains(env.Error, "id") {
		t.Fatalf("error should name the missing field: %q", env.Error)
	}
}

func TestAnalyticsRequiresRepairs(t *testing.T) {
	mux := newAPI(t)

	rec, _ := do(t, mux, http.MethodPost, "/api/v1/repairs/analytics", `{}`, nil)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("missing repairs should 400, got %d", rec.Code)
	}
}

func TestAnalyticsPass(t *testing.T) {
	mux := newAPI(t)

	done := apiNow.Add(-24 * time.Hour).Format(time.RFC3339)
	started := apiNow.Add(-36 * time.Hour).Format(time.RFC3339)
	body := `{"repairs":[
		{"id":"r1","deviceModel":"iPhone 12","issueDescription":"cracked screen","resolution":"replaced display",
		 "createdAt":"` + started + `","updatedAt":"` + done + `","stage":"delivered"},
		{"id":"r2","deviceModel":"iPhone 12","issueDescription":"screen cracked again",
		 "createdAt":"` + started + `","stage":"received"}
	],"issueText":"cracked screen"}`

	rec, env := do(t, mux, http.MethodPost, "/api/v1/repairs/analytics", body, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("analytics status = %d, body %s", rec.Code, rec.Body.String())
	}

	var out struct {
		Metrics         map[string]json.RawMessage `json:"metrics"`
		Recommendations []struct {
			RepairID string `json:"repairId"`
		} `json:"recommendations"`
	}
	if err := json.Unmarshal(env.Data, &out); err != nil {
		t.Fatalf("decode data: %v", err)
	}
	if _, ok := out.Metrics["iphone|screen"]; !ok {
		t.Fatalf("expected iphone|screen metric group, got %v", out.Metrics)
	}
	if len(out.Recommendations) == 0 || out.Recommendations[0].RepairID != "r1" {
		t.Fatalf("resolved history should drive recommendations, got %+v", out.Recommendations)
	}
}

func TestInventorySync(t *testing.T) {
	mux := newAPI(t)

	created := apiNow.Add(-4 * time.Hour).Format(time.RFC3339)
	body := `{
		"repairs":[{"id":"r1","urgency":4,"issueDescription":"pantalla rota, cracked screen","createdAt":"` + created + `","stage":"received"}],
		"products":[{"sku":"display-assembly","name":"Display","quantityAvailable":2,"unitCost":"39.90"}]
	}`

	rec, env := do(t, mux, http.MethodPost, "/api/v1/repairs/inventory", body, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("sync status = %d, body %s", rec.Code, rec.Body.String())
	}

	var out struct {
		Reservations []struct {
			RepairID string `json:"repairId"`
			SKU      string `json:"sku"`
			Qty      int    `json:"qty"`
		} `json:"reservations"`
		Alerts []struct {
			SKU       string `json:"sku"`
			Projected int    `json:"projected"`
		} `json:"alerts"`
	}
	if err := json.Unmarshal(env.Data, &out); err != nil {
		t.Fatalf("decode data: %v", err)
	}
	if len(out.Reservations) != 1 || out.Reservations[0].SKU != "display-assembly" {
		t.Fatalf("expected a display reservation, got %+v", out.Reservations)
	}
	// 2 - 1 = 1 remaining, at or below the default threshold of 3
	if len(out.Alerts) != 1 || out.Alerts[0].Projected != 1 {
		t.Fatalf("expected a reorder alert at projection 1, got %+v", out.Alerts)
	}
}

func TestInventoryAlertsAPIKey(t *testing.T) {
	t.Setenv("PRIORITIZATION_API_KEY", "sekret")
	mux := newAPI(t)

	body := `{"products":[{"sku":"p1","name":"Part","quantityAvailable":1,"unitCost":"1"}]}`

	rec, _ := do(t, mux, http.MethodPost, "/api/v1/inventory/alerts", body, nil)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("missing key should 401, got %d", rec.Code)
	}

	rec, _ = do(t, mux, http.MethodPost, "/api/v1/inventory/alerts", body, map[string]string{"X-Api-Key": "wrong"})
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("wrong key should 401, got %d", rec.Code)
	}

	rec, env := do(t, mux, http.MethodPost, "/api/v1/inventory/alerts", body, map[string]string{"X-Api-Key": "sekret"})
	if rec.Code != http.StatusOK {
		t.Fatalf("correct key should 200, got %d body %s", rec.Code, rec.Body.String())
	}
	var out struct {
		Alerts []struct {
			Deficit int `json:"deficit"`
		} `json:"alerts"`
	}
	if err := json.Unmarshal(env.Data, &out); err != nil {
		t.Fatalf("decode data: %v", err)
	}
	if len(out.Alerts) != 1 || out.Alerts[0].Deficit != 2 {
		t.Fatalf("quantity 1 under default threshold 3 should alert with deficit 2, got %+v", out.Alerts)
	}
}

func TestInventoryAlertsOpenWithoutConfiguredKey(t *testing.T) {
	mux := newAPI(t)

	body := `{"products":[{"sku":"p1","quantityAvailable":10,"unitCost":"1"}]}`
	rec, _ := do(t, mux, http.MethodPost, "/api/v1/inventory/alerts", body, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("endpoint should be open when no key is configured, got %d", rec.Code)
	}
}

func TestCommunicationsSendAndList(t *testing.T) {
	mux := newAPI(t)

	body := `{
		"repair":{"id":"r1","customerName":"Ana","deviceModel":"iPhone 12","createdAt":"2026-08-20T10:00:00Z","stage":"ready"},
		"channel":"sms",
		"content":"Hola {{name}}, tu {{device}} está listo"
	}`

	rec, env := do(t, mux, http.MethodPost, "/api/v1/repairs/communications", body, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("send status = %d, body %s", rec.Code, rec.Body.String())
	}

	var out struct {
		Message struct {
			Body   string `json:"body"`
			Status string `json:"status"`
		} `json:"message"`
	}
	if err := json.Unmarshal(env.Data, &out); err != nil {
		t.Fatalf("decode data: %v", err)
	}
	if out.Message.Body != "Hola Ana, tu iPhone 12 está listo" {
		t.Fatalf("placeholders not expanded: %q", out.Message.Body)
	}
	if out.Message.Status != "sent" {
		t.Fatalf("valid sms should be sent, got %q", out.Message.Status)
	}

	rec, env = do(t, mux, http.MethodGet, "/api/v1/repairs/communications", "", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("list status = %d", rec.Code)
	}
	var list struct {
		Messages []json.RawMessage `json:"messages"`
	}
	if err := json.Unmarshal(env.Data, &list); err != nil {
		t.Fatalf("decode data: %v", err)
	}
	if len(list.Messages) != 1 {
		t.Fatalf("store should hold the sent message, got %d", len(list.Messages))
	}
}

func TestCommunicationsInvalidChannel(t *testing.T) {
	mux := newAPI(t)

	body := `{"repair":{"id":"r1","createdAt":"2026-08-20T10:00:00Z","stage":"ready"},"channel":"fax","content":"hi"}`
	rec, _ := do(t, mux, http.MethodPost, "/api/v1/repairs/communications", body, nil)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("unknown channel should 400, got %d", rec.Code)
	}
}

func TestCommunicationsReminderPass(t *testing.T) {
	mux := newAPI(t)

	stale := apiNow.Add(-72 * time.Hour).Format(time.RFC3339)
	body := `{
		"rules":[{"id":"ru1","stage":"awaiting_parts","afterHours":48,"templateId":"t1"}],
		"templates":[{"id":"t1","channel":"sms","body":"Hola {{name}}, seguimos esperando piezas"}],
		"repairs":[{"id":"r1","customerName":"Ana","createdAt":"` + stale + `","stage":"awaiting_parts"}]
	}`

	rec, env := do(t, mux, http.MethodPost, "/api/v1/repairs/communications/reminders", body, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("reminders status = %d, body %s", rec.Code, rec.Body.String())
	}
	var out struct {
		Messages []struct {
			RepairID string `json:"repairId"`
			Status   string `json:"status"`
		} `json:"messages"`
	}
	if err := json.Unmarshal(env.Data, &out); err != nil {
		t.Fatalf("decode data: %v", err)
	}
	if len(out.Messages) != 1 || out.Messages[0].RepairID != "r1" || out.Messages[0].Status != "sent" {
		t.Fatalf("expected one sent reminder for r1, got %+v", out.Messages)
	}
}
