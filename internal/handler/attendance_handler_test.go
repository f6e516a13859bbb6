package handler_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"attendance-backend/internal/model"
	"attendance-backend/internal/routes"
)

func testApp(t *testing.T) *fiber.App {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&model.User{}, &model.Attendance{}))

	app := fiber.New()
	routes.SetupAuthRoutes(app, db)
	routes.SetupAttendanceRoutes(app, db)
	routes.SetupDashboardRoutes(app, db)
	routes.SetupManagerRoutes(app, db)
	return app
}

func doJSON(t *testing.T, app *fiber.App, method, path, token string, body interface{}) (*http.Response, map[string]interface{}) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := app.Test(req, -1)
	require.NoError(t, err)

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	var decoded map[string]interface{}
	if len(raw) > 0 && json.Valid(raw) {
		json.Unmarshal(raw, &decoded)
	}
	return resp, decoded
}

func registerAndLogin(t *testing.T, app *fiber.App, email, role string) string {
	t.Helper()

	resp, body := doJSON(t, app, "POST", "/api/auth/register", "", fiber.Map{
		"name":     "Test User",
		"email":    email,
		"password": "secret123",
		"role":     role,
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	token, _ := body["token"].(string)
	require.NotEmpty(t, token)
	return token
}

func TestCheckInCheckOutFlow(t *testing.T) {
	app := testApp(t)
	token := registerAndLogin(t, app, "alice@test.io", "employee")

	// First check-in succeeds
	resp, body := doJSON(t, app, "POST", "/api/attendance/checkin", token, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.NotNil(t, body["attendance"])

	// Duplicate check-in is rejected
	resp, body = doJSON(t, app, "POST", "/api/attendance/checkin", token, nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "Already checked in today", body["message"])

	// Today shows the record
	resp, body = doJSON(t, app, "GET", "/api/attendance/today", token, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.NotNil(t, body["check_in_time"])

	// Check-out succeeds once
	resp, _ = doJSON(t, app, "POST", "/api/attendance/checkout", token, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp, body = doJSON(t, app, "POST", "/api/attendance/checkout", token, nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "Already checked out", body["message"])
}

func TestCheckOutWithoutCheckIn(t *testing.T) {
	app := testApp(t)
	token := registerAndLogin(t, app, "bob@test.io", "employee")

	resp, body := doJSON(t, app, "POST", "/api/attendance/checkout", token, nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "Check-in not found", body["message"])
}

func TestTodayWhenNotMarked(t *testing.T) {
	app := testApp(t)
	token := registerAndLogin(t, app, "carol@test.io", "employee")

	resp, body := doJSON(t, app, "GET", "/api/attendance/today", token, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "not-marked", body["status"])
}

func TestAttendanceRequiresAuth(t *testing.T) {
	app := testApp(t)

	resp, _ := doJSON(t, app, "POST", "/api/attendance/checkin", "", nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestManagerRoutesNeedManagerRole(t *testing.T) {
	app := testApp(t)
	employeeToken := registerAndLogin(t, app, "dave@test.io", "employee")
	managerToken := registerAndLogin(t, app, "boss@test.io", "manager")

	resp, _ := doJSON(t, app, "GET", "/api/manager/attendance/summary", employeeToken, nil)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	resp, body := doJSON(t, app, "GET", "/api/manager/attendance/summary", managerToken, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.EqualValues(t, 1, body["totalEmployees"])
}

func TestManagerExportCSV(t *testing.T) {
	app := testApp(t)
	employeeToken := registerAndLogin(t, app, "eve@test.io", "employee")
	managerToken := registerAndLogin(t, app, "boss2@test.io", "manager")

	resp, _ := doJSON(t, app, "POST", "/api/attendance/checkin", employeeToken, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	req := httptest.NewRequest("GET", "/api/manager/attendance/export?format=csv", nil)
	req.Header.Set("Authorization", "Bearer "+managerToken)
	rawResp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, rawResp.StatusCode)
	assert.Equal(t, "text/csv", rawResp.Header.Get("Content-Type"))

	content, err := io.ReadAll(rawResp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(content), "Employee,Email,Employee ID")
	assert.Contains(t, string(content), "eve@test.io")
}
