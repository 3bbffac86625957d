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

func newRolesApp(db *gorm.DB) *fiber.App {
	app := fiber.New()
	handler := &handlers.RolesHandler{DB: db}
	app.Get("/api/roles", handler.ListRoles)
	app.Get("/api/roles/permissions", handler.ListPermissions)
	app.Get("/api/roles/:id/permissions", handler.GetRolePermissions)
	app.Put("/api/roles/:id/permissions", handler.ReplaceRolePermissions)
	return app
}

func seedRBAC(t *testing.T, db *gorm.DB) (models.Role, []models.Permission) {
	role := models.Role{RoleTitle: "Moderator"}
	if err := db.Create(&role).Error; err != nil {
		t.Fatalf("Failed to create role: %v", err)
	}
	titles := []string{"read_note", "create_note", "delete_note"}
	permissions := make([]models.Permission, 0, len(titles))
	for _, title := range titles {
		permission := models.Permission{PermissionTitle: title}
		if err := db.Create(&permission).Error; err != nil {
			t.Fatalf("Failed to create permission: %v", err)
		}
		permissions = append(permissions, permission)
	}
	return role, permissions
}

// TestListRolesEndpoint tests GET /api/roles
func TestListRolesEndpoint(t *testing.T) {
	db := setupTestDB(t)
	seedRBAC(t, db)
	app := newRolesApp(db)

	req := httptest.NewRequest("GET", "/api/roles", nil)
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
	if len(result) != 1 || result[0]["role_title"] != "Moderator" {
		t.Errorf("Expected [Moderator], got %v", result)
	}
}

// TestListPermissionsEndpoint tests GET /api/roles/permissions
func TestListPermissionsEndpoint(t *testing.T) {
	db := setupTestDB(t)
	seedRBAC(t, db)
	app := newRolesApp(db)

	req := httptest.NewRequest("GET", "/api/roles/permissions", nil)
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
	if len(result) != 3 {
		t.Fatalf("Expected 3 permissions, got %d", len(result))
	}
	// Ordered by title
	if result[0]["permission_title"] != "create_note" {
		t.Errorf("Expected create_note first, got %v", result[0]["permission_title"])
	}
}

// TestReplacePermissionsEndpoint tests PUT /api/roles/:id/permissions
func TestReplacePermissionsEndpoint(t *testing.T) {
	db := setupTestDB(t)
	role, permissions := seedRBAC(t, db)
	app := newRolesApp(db)

	body, _ := json.Marshal(map[string]interface{}{
		"permissions": []uint64{permissions[0].ID, permissions[1].ID},
	})
	req := httptest.NewRequest("PUT", fmt.Sprintf("/api/roles/%d/permissions", role.ID), bytes.NewReader(body))
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
	if result["message"] != "Permissions updated successfully" {
		t.Errorf("Expected update message, got %v", result["message"])
	}
	roleBody, ok := result["role"].(map[string]interface{})
	if !ok {
		t.Fatalf("Expected role object in response, got %v", result["role"])
	}
	granted, ok := roleBody["permissions"].([]interface{})
	if !ok || len(granted) != 2 {
		t.Errorf("Expected 2 permissions in role body, got %v", roleBody["permissions"])
	}
}

// TestReplacePermissionsEndpointLenientBody tests single-value and string id forms
func TestReplacePermissionsEndpointLenientBody(t *testing.T) {
	db := setupTestDB(t)
	role, permissions := seedRBAC(t, db)
	app := newRolesApp(db)

	// A bare value instead of an array, as a numeric string
	body := []byte(fmt.Sprintf(`{"permissions":"%d"}`, permissions[2].ID))
	req := httptest.NewRequest("PUT", fmt.Sprintf("/api/roles/%d/permissions", role.ID), bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("Failed to execute request: %v", err)
	}
	if resp.StatusCode != 200 {
		t.Errorf("Expected status 200 for lenient body, got %d", resp.StatusCode)
	}

	var result map[string]interface{}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	roleBody := result["role"].(map[string]interface{})
	granted := roleBody["permissions"].([]interface{})
	if len(granted) != 1 {
		t.Errorf("Expected 1 permission granted, got %v", granted)
	}
}

// TestReplacePermissionsEndpointInvalidIDs tests the 400 with the invalid id list
func TestReplacePermissionsEndpointInvalidIDs(t *testing.T) {
	db := setupTestDB(t)
	role, permissions := seedRBAC(t, db)
	app := newRolesApp(db)

	body, _ := json.Marshal(map[string]interface{}{
		"permissions": []uint64{permissions[0].ID, 777},
	})
	req := httptest.NewRequest("PUT", fmt.Sprintf("/api/roles/%d/permissions", role.ID), bytes.NewReader(body))
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
	if result["message"] != "Some permission IDs are invalid" {
		t.Errorf("Expected invalid ids message, got %v", result["message"])
	}
	invalid, ok := result["invalidIds"].([]interface{})
	if !ok || len(invalid) != 1 || invalid[0].(float64) != 777 {
		t.Errorf("Expected invalidIds [777], got %v", result["invalidIds"])
	}
}

// TestReplacePermissionsEndpointMissingBody tests that an absent id list is a 400
func TestReplacePermissionsEndpointMissingBody(t *testing.T) {
	db := setupTestDB(t)
	role, _ := seedRBAC(t, db)
	app := newRolesApp(db)

	req := httptest.NewRequest("PUT", fmt.Sprintf("/api/roles/%d/permissions", role.ID), bytes.NewReader([]byte(`{}`)))
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
	if result["message"] != "Invalid permissions format" {
		t.Errorf("Expected format message, got %v", result["message"])
	}
}

// TestGetRolePermissionsEndpoint tests GET /api/roles/:id/permissions
func TestGetRolePermissionsEndpoint(t *testing.T) {
	db := setupTestDB(t)
	role, permissions := seedRBAC(t, db)
	pair := models.RolePermission{RoleID: role.ID, PermissionID: permissions[0].ID}
	if err := db.Create(&pair).Error; err != nil {
		t.Fatalf("Failed to grant permission: %v", err)
	}
	app := newRolesApp(db)

	req := httptest.NewRequest("GET", fmt.Sprintf("/api/roles/%d/permissions", role.ID), nil)
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
	if len(result) != 1 || result[0]["permission_title"] != "read_note" {
		t.Errorf("Expected [read_note], got %v", result)
	}
}

// TestGetRolePermissionsEndpointNotFound tests GET against a missing role id
func TestGetRolePermissionsEndpointNotFound(t *testing.T) {
	db := setupTestDB(t)
	app := newRolesApp(db)

	req := httptest.NewRequest("GET", "/api/roles/999/permissions", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("Failed to execute request: %v", err)
	}
	if resp.StatusCode != 404 {
		t.Errorf("Expected status 404, got %d", resp.StatusCode)
	}
}
