package routes

import (
	"bytes"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/ahmetcoskunkizilkaya/excel-analytics/internal/config"
	"github.com/ahmetcoskunkizilkaya/excel-analytics/internal/database"
	"github.com/ahmetcoskunkizilkaya/excel-analytics/internal/handlers"
	"github.com/ahmetcoskunkizilkaya/excel-analytics/internal/services"
	"github.com/ahmetcoskunkizilkaya/excel-analytics/internal/storage"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupApp(t *testing.T) *fiber.App {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file:http_"+t.Name()+"?mode=memory&cache=shared"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	database.DB = db

	cfg := config.Load()
	cfg.JWTSecret = "test-secret"
	cfg.AdminSecretKey = "let-me-in"

	store, err := storage.NewStore(t.TempDir())
	require.NoError(t, err)

	authService := services.NewAuthService(db, cfg)
	uploadService := services.NewUploadService(db, store)
	chartService := services.NewChartService(db)
	adminService := services.NewAdminService(db)

	app := fiber.New()
	Setup(app, cfg, db,
		handlers.NewAuthHandler(authService),
		handlers.NewUploadHandler(uploadService),
		handlers.NewChartHandler(chartService),
		handlers.NewAdminHandler(adminService),
		handlers.NewHealthHandler(),
	)
	return app
}

func doJSON(t *testing.T, app *fiber.App, method, path, token string, body interface{}) (*http.Response, map[string]interface{}) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(b)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := app.Test(req, -1)
	require.NoError(t, err)

	var decoded map[string]interface{}
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	if len(raw) > 0 {
		require.NoError(t, json.Unmarshal(raw, &decoded))
	}
	return resp, decoded
}

func register(t *testing.T, app *fiber.App, username, email, adminKey string) string {
	t.Helper()
	resp, body := doJSON(t, app, http.MethodPost, "/api/auth/register", "", map[string]string{
		"username": username,
		"email":    email,
		"password": "p",
		"adminKey": adminKey,
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	token, _ := body["token"].(string)
	require.NotEmpty(t, token)
	return token
}

func TestRegisterLoginMe(t *testing.T) {
	app := setupApp(t)

	register(t, app, "u1", "u1@x.com", "")

	resp, body := doJSON(t, app, http.MethodPost, "/api/auth/login", "", map[string]string{
		"email": "u1@x.com", "password": "p",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	token := body["token"].(string)

	resp, body = doJSON(t, app, http.MethodGet, "/api/auth/me", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	user := body["user"].(map[string]interface{})
	require.Equal(t, "u1", user["username"])
	require.Equal(t, "u1@x.com", user["email"])
	require.Equal(t, "user", user["role"])
}

func TestRegister_Duplicate(t *testing.T) {
	app := setupApp(t)

	register(t, app, "u1", "u1@x.com", "")

	resp, _ := doJSON(t, app, http.MethodPost, "/api/auth/register", "", map[string]string{
		"username": "someone", "email": "u1@x.com", "password": "other",
	})
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestProtectedRoutesRequireToken(t *testing.T) {
	app := setupApp(t)

	for _, path := range []string{"/api/auth/me", "/api/upload/history", "/api/charts"} {
		resp, _ := doJSON(t, app, http.MethodGet, path, "", nil)
		require.Equal(t, http.StatusUnauthorized, resp.StatusCode, path)
	}
}

func TestAdminRoutesRequireAdminRole(t *testing.T) {
	app := setupApp(t)

	userToken := register(t, app, "u1", "u1@x.com", "")
	adminToken := register(t, app, "boss", "boss@x.com", "let-me-in")

	resp, _ := doJSON(t, app, http.MethodGet, "/api/admin/users", userToken, nil)
	require.Equal(t, http.StatusForbidden, resp.StatusCode)

	resp, body := doJSON(t, app, http.MethodGet, "/api/admin/users", adminToken, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Len(t, body["users"], 2)
}

func TestDeletedUserTokenRejected(t *testing.T) {
	app := setupApp(t)

	userToken := register(t, app, "doomed", "doomed@x.com", "")
	adminToken := register(t, app, "boss", "boss@x.com", "let-me-in")

	resp, body := doJSON(t, app, http.MethodGet, "/api/auth/me", userToken, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	userID := body["user"].(map[string]interface{})["id"].(string)

	resp, _ = doJSON(t, app, http.MethodDelete, "/api/admin/users/"+userID, adminToken, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	// The signed token is still valid but no longer resolves to a user.
	resp, _ = doJSON(t, app, http.MethodGet, "/api/auth/me", userToken, nil)
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestUploadAndChartFlow(t *testing.T) {
	app := setupApp(t)

	token := register(t, app, "u1", "u1@x.com", "")

	// Build a small workbook and post it as multipart.
	f := excelize.NewFile()
	require.NoError(t, f.SetSheetRow("Sheet1", "A1", &[]interface{}{"month", "revenue"}))
	require.NoError(t, f.SetSheetRow("Sheet1", "A2", &[]interface{}{"jan", 100}))
	wb, err := f.WriteToBuffer()
	require.NoError(t, err)

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile("excelFile", "report.xlsx")
	require.NoError(t, err)
	_, err = part.Write(wb.Bytes())
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/upload", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var uploaded map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&uploaded))
	summary := uploaded["upload"].(map[string]interface{})
	require.Equal(t, float64(1), summary["rowCount"])
	uploadID := summary["id"].(string)

	resp, body := doJSON(t, app, http.MethodPost, "/api/charts", token, map[string]interface{}{
		"title": "Revenue", "type": "bar", "xAxis": "month", "yAxis": "revenue",
		"uploadId": uploadID,
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	chart := body["chart"].(map[string]interface{})
	require.Equal(t, "bar", chart["type"])

	resp, body = doJSON(t, app, http.MethodGet, "/api/charts", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	charts := body["charts"].([]interface{})
	require.Len(t, charts, 1)
	require.Equal(t, "report.xlsx", charts[0].(map[string]interface{})["upload_name"])
}

func TestHealth(t *testing.T) {
	app := setupApp(t)

	resp, body := doJSON(t, app, http.MethodGet, "/api/health", "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Equal(t, "ok", body["status"])
}
