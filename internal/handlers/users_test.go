package handlers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http/httptest"
	"testing"

	"github.com/freewall/freewall/internal/handlers"
	"github.com/freewall/freewall/internal/models"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func newUsersApp(db *gorm.DB) *fiber.App {
	app := fiber.New()
	handler := &handlers.UsersHandler{DB: db}
	app.Get("/api/users", handler.ListUsers)
	app.Post("/api/users", handler.CreateUser)
	app.Put("/api/users/:id", handler.UpdateUser)
	app.Delete("/api/users/:id", handler.DeleteUser)
	return app
}

// TestCreateUserEndpoint tests POST /api/users
func TestCreateUserEndpoint(t *testing.T) {
	db := setupTestDB(t)
	role := models.Role{RoleTitle: "Admin"}
	if err := db.Create(&role).Error; err != nil {
		t.Fatalf("Failed to create role: %v", err)
	}
	app := newUsersApp(db)

	body, _ := json.Marshal(map[string]interface{}{
		"nickname": "alice",
		"role_id":  role.ID,
	})
	req := httptest.NewRequest("POST", "/api/users", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("Failed to execute request: %v", err)
	}
	if resp.StatusCode != 201 {
		t.Errorf("Expected status 201, got %d", resp.StatusCode)
	}

	var result map[string]interface{}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if result["nickname"] != "alice" {
		t.Errorf("Expected nickname alice, got %v", result["nickname"])
	}
	if result["role"] != "Admin" {
		t.Errorf("Expected role Admin, got %v", result["role"])
	}
}

// TestCreateUserEndpointStringRoleID tests that role_id accepts a numeric string
func TestCreateUserEndpointStringRoleID(t *testing.T) {
	db := setupTestDB(t)
	role := models.Role{RoleTitle: "Admin"}
	if err := db.Create(&role).Error; err != nil {
		t.Fatalf("Failed to create role: %v", err)
	}
	app := newUsersApp(db)

	body := []byte(fmt.Sprintf(`{"nickname":"alice","role_id":"%d"}`, role.ID))
	req := httptest.NewRequest("POST", "/api/users", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("Failed to execute request: %v", err)
	}
	if resp.StatusCode != 201 {
		t.Errorf("Expected status 201 for string role_id, got %d", resp.StatusCode)
	}
}

// TestCreateUserEndpointInvalidRole tests that an unresolved role id is a 400
func TestCreateUserEndpointInvalidRole(t *testing.T) {
	db := setupTestDB(t)
	app := newUsersApp(db)

	body, _ := json.Marshal(map[string]interface{}{
		"nickname": "alice",
		"role_id":  999,
	})
	req := httptest.NewRequest("POST", "/api/users", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("Failed to execute request: %v", err)
	}
	if resp.StatusCode != 400 {
		t.Errorf("Expected status 400, got %d", resp.StatusCode)
	}

	var result map[string]interface{}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if result["message"] != "Invalid role_id" {
		t.Errorf("Expected message 'Invalid role_id', got %v", result["message"])
	}
}

// TestCreateUserEndpointDuplicate tests that an active nickname collision is a 400
func TestCreateUserEndpointDuplicate(t *testing.T) {
	db := setupTestDB(t)
	role, _ := seedRoleAndUser(t, db, "User", "alice")
	app := newUsersApp(db)

	body, _ := json.Marshal(map[string]interface{}{
		"nickname": "alice",
		"role_id":  role.ID,
	})
	req := httptest.NewRequest("POST", "/api/users", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("Failed to execute request: %v", err)
	}
	if resp.StatusCode != 400 {
		t.Errorf("Expected status 400, got %d", resp.StatusCode)
	}

	var result map[string]interface{}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if result["message"] != "User with this nickname already exists" {
		t.Errorf("Expected duplicate nickname message, got %v", result["message"])
	}
}

// TestListUsersEndpoint tests GET /api/users
func TestListUsersEndpoint(t *testing.T) {
	db := setupTestDB(t)
	seedRoleAndUser(t, db, "User", "alice")
	app := newUsersApp(db)

	req := httptest.NewRequest("GET", "/api/users", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("Failed to execute request: %v", err)
	}
	if resp.StatusCode != 200 {
		t.Errorf("Expected status 200, got %d", resp.StatusCode)
	}

	var result []map[string]interface{}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if len(result) != 1 || result[0]["nickname"] != "alice" {
		t.Errorf("Expected [alice], got %v", result)
	}
}

// TestUpdateUserEndpoint tests PUT /api/users/:id
func TestUpdateUserEndpoint(t *testing.T) {
	db := setupTestDB(t)
	role, user := seedRoleAndUser(t, db, "User", "alice")
	app := newUsersApp(db)

	body, _ := json.Marshal(map[string]interface{}{
		"nickname": "alice2",
		"role_id":  role.ID,
	})
	req := httptest.NewRequest("PUT", fmt.Sprintf("/api/users/%d", user.ID), bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("Failed to execute request: %v", err)
	}
	if resp.StatusCode != 200 {
		t.Errorf("Expected status 200, got %d", resp.StatusCode)
	}

	var result map[string]interface{}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if result["nickname"] != "alice2" {
		t.Errorf("Expected nickname alice2, got %v", result["nickname"])
	}
}

// TestDeleteUserEndpoint tests DELETE /api/users/:id
func TestDeleteUserEndpoint(t *testing.T) {
	db := setupTestDB(t)
	_, user := seedRoleAndUser(t, db, "User", "alice")
	app := newUsersApp(db)

	req := httptest.NewRequest("DELETE", fmt.Sprintf("/api/users/%d", user.ID), nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("Failed to execute request: %v", err)
	}
	if resp.StatusCode != 200 {
		t.Errorf("Expected status 200, got %d", resp.StatusCode)
	}

	var result map[string]interface{}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if result["message"] != "User deleted successfully" {
		t.Errorf("Expected ack message, got %v", result["message"])
	}

	// A second delete is a 404
	req = httptest.NewRequest("DELETE", fmt.Sprintf("/api/users/%d", user.ID), nil)
	resp, err = app.Test(req)
	if err != nil {
		t.Fatalf("Failed to execute request: %v", err)
	}
	if resp.StatusCode != 404 {
		t.Errorf("Expected status 404 on second delete, got %d", resp.StatusCode)
	}
}

// TestDeleteUserEndpointNotFound tests DELETE against a missing id
func TestDeleteUserEndpointNotFound(t *testing.T) {
	db := setupTestDB(t)
	app := newUsersApp(db)

	req := httptest.NewRequest("DELETE", "/api/users/999", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("Failed to execute request: %v", err)
	}
	if resp.StatusCode != 404 {
		t.Errorf("Expected status 404, got %d", resp.StatusCode)
	}
}
