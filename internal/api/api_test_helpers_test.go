package api

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/bloom/internal/db"
	"github.com/terraincognita07/bloom/internal/i18n"
	"github.com/terraincognita07/bloom/internal/services"
	"golang.org/x/crypto/bcrypt"
)

var testNow = time.Date(2024, time.February, 20, 10, 0, 0, 0, time.UTC)

const (
	testSecretKey  = "test-secret"
	testPassphrase = "test-passphrase"
)

func newTestApp(t *testing.T) (*fiber.App, *Handler) {
	t.Helper()

	database, err := db.OpenSQLite(filepath.Join(t.TempDir(), "bloom-api.db"))
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	t.Cleanup(func() {
		if sqlDB, err := database.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})

	manager, err := i18n.NewEmbeddedManager("en")
	if err != nil {
		t.Fatalf("init i18n: %v", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(testPassphrase), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hash passphrase: %v", err)
	}
	access, err := services.NewAccessService([]byte(testSecretKey), hash)
	if err != nil {
		t.Fatalf("init access: %v", err)
	}

	handler, err := NewHandler(database, time.UTC, manager, access)
	if err != nil {
		t.Fatalf("init handler: %v", err)
	}
	handler.now = func() time.Time { return testNow }
	if err := handler.SymptomService().EnsureBuiltinSymptoms(context.Background()); err != nil {
		t.Fatalf("seed symptoms: %v", err)
	}

	app := fiber.New()
	RegisterRoutes(app, handler)
	return app, handler
}

func doRequest(t *testing.T, app *fiber.App, method string, path string, body string) *http.Response {
	t.Helper()
	return doRequestWithToken(t, app, method, path, body, testAccessToken(t, services.AccessScopeAPI))
}

func doAnonymousRequest(t *testing.T, app *fiber.App, method string, path string, body string) *http.Response {
	t.Helper()
	return doRequestWithToken(t, app, method, path, body, "")
}

func testAccessToken(t *testing.T, scope string) string {
	t.Helper()

	token, err := services.BuildAccessToken([]byte(testSecretKey), scope, time.Hour, testNow)
	if err != nil {
		t.Fatalf("build access token: %v", err)
	}
	return token
}

func doRequestWithToken(t *testing.T, app *fiber.App, method string, path string, body string, token string) *http.Response {
	t.Helper()

	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	request, err := http.NewRequest(method, path, reader)
	if err != nil {
		t.Fatalf("build request: %v", err)
	}
	if body != "" {
		request.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		request.Header.Set("Authorization", "Bearer "+token)
	}

	response, err := app.Test(request, -1)
	if err != nil {
		t.Fatalf("%s %s failed: %v", method, path, err)
	}
	return response
}

func decodeJSON(t *testing.T, response *http.Response, target any) {
	t.Helper()

	defer response.Body.Close()
	if err := json.NewDecoder(response.Body).Decode(target); err != nil {
		t.Fatalf("decode response: %v", err)
	}
}

func expectStatus(t *testing.T, response *http.Response, expected int) {
	t.Helper()

	if response.StatusCode != expected {
		body, _ := io.ReadAll(response.Body)
		t.Fatalf("expected status %d, got %d: %s", expected, response.StatusCode, string(body))
	}
}

func logTestPeriod(t *testing.T, app *fiber.App, start string, end string) string {
	t.Helper()

	response := doRequest(t, app, http.MethodPost, "/api/entries/period", `{"start_date":"`+start+`","end_date":"`+end+`","flow_intensity":"medium"}`)
	expectStatus(t, response, http.StatusCreated)

	var created struct {
		ID string `json:"id"`
	}
	decodeJSON(t, response, &created)
	if created.ID == "" {
		t.Fatalf("expected created entry id")
	}
	return created.ID
}
