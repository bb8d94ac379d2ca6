// Integration tests driving the full router over in-process HTTP: login,
// account and SNI lifecycles, auth gating, and the notify bridge against a
// stubbed push backend.
package server

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/hussein34535/waledapi/internal/config"
	"github.com/hussein34535/waledapi/internal/database"
	"github.com/hussein34535/waledapi/internal/events"
	"github.com/hussein34535/waledapi/internal/server/handlers"
	"github.com/hussein34535/waledapi/internal/services"
	"github.com/hussein34535/waledapi/internal/store"
)

var dbSeq int64

const (
	testAdminEmail    = "admin@test.local"
	testAdminPassword = "admin1234"
)

func newTestApp(t *testing.T, fcmEndpoint string) *fiber.App {
	t.Helper()
	config.Current.JWTSecret = "test-secret"

	dsn := fmt.Sprintf("file:server%d?mode=memory&cache=shared", atomic.AddInt64(&dbSeq, 1))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqlDB, _ := db.DB()
	sqlDB.SetMaxOpenConns(1)
	if err := database.AutoMigrateAndSeed(db, testAdminEmail, testAdminPassword); err != nil {
		t.Fatalf("migrate/seed: %v", err)
	}

	st := store.NewStore(db)
	fcm := services.NewFCMClient(fcmEndpoint, "test-key", "all")
	app := fiber.New()
	RegisterRoutes(app, handlers.New(st, fcm, events.NewHub()), st)
	return app
}

// doJSON sends a JSON request, asserts the status code, and decodes the
// response body into out when non-nil.
func doJSON(t *testing.T, app *fiber.App, method, url, token string, body any, wantCode int, out any) {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, url, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("%s %s: %v", method, url, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != wantCode {
		raw, _ := io.ReadAll(resp.Body)
		t.Fatalf("%s %s: code=%d want=%d body=%s", method, url, resp.StatusCode, wantCode, raw)
	}
	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			t.Fatalf("%s %s: decode: %v", method, url, err)
		}
	}
}

func login(t *testing.T, app *fiber.App) string {
	t.Helper()
	var out struct {
		Token string `json:"token"`
	}
	doJSON(t, app, http.MethodPost, "/login", "", map[string]string{
		"email":    testAdminEmail,
		"password": testAdminPassword,
	}, http.StatusOK, &out)
	if out.Token == "" {
		t.Fatal("login returned no token")
	}
	return out.Token
}

func TestLogin(t *testing.T) {
	app := newTestApp(t, "http://unused.invalid")
	login(t, app)

	doJSON(t, app, http.MethodPost, "/login", "", map[string]string{
		"email":    testAdminEmail,
		"password": "wrong",
	}, http.StatusUnauthorized, nil)
}

func TestAuthGating(t *testing.T) {
	app := newTestApp(t, "http://unused.invalid")
	doJSON(t, app, http.MethodGet, "/sni", "", nil, http.StatusUnauthorized, nil)
	doJSON(t, app, http.MethodGet, "/sni", "not-a-token", nil, http.StatusUnauthorized, nil)
	doJSON(t, app, http.MethodGet, "/healthz", "", nil, http.StatusOK, nil)
}

func TestAccountRoundTrip(t *testing.T) {
	app := newTestApp(t, "http://unused.invalid")
	token := login(t, app)

	// creating with a missing password never reaches the store
	doJSON(t, app, http.MethodPost, "/accounts", token, map[string]string{
		"type":        "SSH",
		"server_name": "DE-1",
		"ip_address":  "10.0.0.1",
		"username":    "root",
		"expiry_date": "2026-12-31",
	}, http.StatusBadRequest, nil)

	var accounts []map[string]any
	doJSON(t, app, http.MethodGet, "/accounts", token, nil, http.StatusOK, &accounts)
	if len(accounts) != 0 {
		t.Fatalf("rejected create wrote to the store: %v", accounts)
	}

	var created struct {
		ID string `json:"id"`
	}
	doJSON(t, app, http.MethodPost, "/accounts", token, map[string]string{
		"type":        "SSH",
		"server_name": "DE-1",
		"ip_address":  "10.0.0.1",
		"username":    "root",
		"password":    "hunter2",
		"expiry_date": "2026-12-31",
	}, http.StatusCreated, &created)
	if created.ID == "" {
		t.Fatal("no id returned")
	}

	doJSON(t, app, http.MethodGet, "/accounts", token, nil, http.StatusOK, &accounts)
	if len(accounts) != 1 || accounts[0]["id"] != created.ID {
		t.Fatalf("created account not listed: %v", accounts)
	}
	if _, hasConfig := accounts[0]["config"]; hasConfig {
		t.Errorf("config present on SSH account: %v", accounts[0])
	}
	for _, field := range []string{"ip_address", "username", "password", "expiry_date"} {
		if accounts[0][field] == "" || accounts[0][field] == nil {
			t.Errorf("SSH field %s missing: %v", field, accounts[0])
		}
	}

	time.Sleep(2 * time.Millisecond)
	var updated map[string]any
	doJSON(t, app, http.MethodPut, "/accounts/"+created.ID, token, map[string]string{
		"type":   "VLESS",
		"config": "vless://uuid@host:443",
	}, http.StatusOK, &updated)
	if updated["config"] != "vless://uuid@host:443" {
		t.Errorf("config not updated: %v", updated)
	}
	if _, hasPassword := updated["password"]; hasPassword {
		t.Errorf("SSH group survived type switch: %v", updated)
	}

	doJSON(t, app, http.MethodPut, "/accounts/no-such-id", token, map[string]string{
		"server_name": "ghost",
	}, http.StatusNotFound, nil)

	doJSON(t, app, http.MethodDelete, "/accounts/"+created.ID, token, nil, http.StatusOK, nil)
	// idempotent
	doJSON(t, app, http.MethodDelete, "/accounts/"+created.ID, token, nil, http.StatusOK, nil)

	doJSON(t, app, http.MethodGet, "/accounts", token, nil, http.StatusOK, &accounts)
	for _, acc := range accounts {
		if acc["id"] == created.ID {
			t.Fatal("deleted account still listed")
		}
	}
}

func TestAccountTypeFilter(t *testing.T) {
	app := newTestApp(t, "http://unused.invalid")
	token := login(t, app)

	doJSON(t, app, http.MethodPost, "/accounts", token, map[string]string{
		"type": "TROJAN", "server_name": "NL-1", "config": "trojan://x",
	}, http.StatusCreated, nil)
	doJSON(t, app, http.MethodPost, "/accounts", token, map[string]string{
		"type": "VLESS", "server_name": "NL-2", "config": "vless://y",
	}, http.StatusCreated, nil)

	var trojans []map[string]any
	doJSON(t, app, http.MethodGet, "/accounts?type=trojan", token, nil, http.StatusOK, &trojans)
	if len(trojans) != 1 || trojans[0]["type"] != "TROJAN" {
		t.Fatalf("type filter failed: %v", trojans)
	}
}

func TestSNIFlow(t *testing.T) {
	app := newTestApp(t, "http://unused.invalid")
	token := login(t, app)

	doJSON(t, app, http.MethodPost, "/sni", token, map[string]string{"name": "a", "host": "x.com"}, http.StatusCreated, nil)
	doJSON(t, app, http.MethodPost, "/sni", token, map[string]string{"name": "b", "host": "y.com"}, http.StatusCreated, nil)
	doJSON(t, app, http.MethodPost, "/sni", token, map[string]string{"name": "", "host": "x.com"}, http.StatusBadRequest, nil)

	var list []struct {
		ID   string `json:"id"`
		Host string `json:"host"`
	}
	doJSON(t, app, http.MethodGet, "/sni", token, nil, http.StatusOK, &list)
	if len(list) != 2 {
		t.Fatalf("len = %d, want 2: %v", len(list), list)
	}
	byID := map[string]string{}
	for _, rec := range list {
		byID[rec.ID] = rec.Host
	}
	if byID["a"] != "x.com" || byID["b"] != "y.com" {
		t.Fatalf("records not retrievable by name: %v", byID)
	}

	doJSON(t, app, http.MethodPut, "/sni", token, map[string]string{"id": "a", "host": "z.com"}, http.StatusOK, nil)
	doJSON(t, app, http.MethodGet, "/sni", token, nil, http.StatusOK, &list)
	for _, rec := range list {
		if rec.ID == "a" && rec.Host != "z.com" {
			t.Errorf("update not visible: %v", rec)
		}
	}

	doJSON(t, app, http.MethodPut, "/sni", token, map[string]string{"id": "missing", "host": "z.com"}, http.StatusNotFound, nil)
	doJSON(t, app, http.MethodPut, "/sni", token, map[string]string{"id": "a", "host": ""}, http.StatusBadRequest, nil)

	doJSON(t, app, http.MethodDelete, "/sni", token, nil, http.StatusBadRequest, nil)
	doJSON(t, app, http.MethodDelete, "/sni?id=a", token, nil, http.StatusOK, nil)
	doJSON(t, app, http.MethodDelete, "/sni?id=a", token, nil, http.StatusOK, nil) // idempotent

	doJSON(t, app, http.MethodGet, "/sni", token, nil, http.StatusOK, &list)
	if len(list) != 1 || list[0].ID != "b" {
		t.Fatalf("delete not applied: %v", list)
	}
}

func TestNotify(t *testing.T) {
	fcmStub := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{"message_id": 42})
	}))
	defer fcmStub.Close()

	app := newTestApp(t, fcmStub.URL)
	token := login(t, app)

	var out struct {
		MessageID string `json:"messageId"`
	}
	doJSON(t, app, http.MethodPost, "/notify", token, map[string]string{
		"title": "maintenance", "body": "tonight 02:00 UTC",
	}, http.StatusOK, &out)
	if out.MessageID != "42" {
		t.Errorf("messageId = %q", out.MessageID)
	}

	var failed struct {
		Error     string `json:"error"`
		MessageID string `json:"messageId"`
	}
	doJSON(t, app, http.MethodPost, "/notify", token, map[string]string{
		"title": "", "body": "",
	}, http.StatusInternalServerError, &failed)
	if failed.Error == "" {
		t.Error("no error reported for empty notification")
	}
	if failed.MessageID != "" {
		t.Error("message id returned on failure")
	}
}
