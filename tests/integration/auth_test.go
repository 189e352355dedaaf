package integration

import (
	"net/http"
	"testing"

	"oceanlk/internal/models"
)

func TestAuthFlow(t *testing.T) {
	t.Run("login and profile", func(t *testing.T) {
		app := setupApp(t)
		app.seedUser(t, "admin@oceanlk.com", models.RoleAdmin)

		token, _ := app.loginUser(t, "admin@oceanlk.com", "password123")

		rec := app.request("GET", "/api/v1/profile", "", token)
		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}
		user := parseJSON(t, rec)["user"].(map[string]interface{})
		if user["email"] != "admin@oceanlk.com" {
			t.Errorf("expected admin email, got %v", user["email"])
		}
		if user["role"] != "ADMIN" {
			t.Errorf("expected ADMIN role, got %v", user["role"])
		}
	})

	t.Run("wrong password rejected", func(t *testing.T) {
		app := setupApp(t)
		app.seedUser(t, "admin@oceanlk.com", models.RoleAdmin)

		rec := app.request("POST", "/api/v1/auth/login",
			`{"email":"admin@oceanlk.com","password":"wrong"}`, "")
		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("expected 401, got %d: %s", rec.Code, rec.Body.String())
		}
	})

	t.Run("refresh rotates the token", func(t *testing.T) {
		app := setupApp(t)
		app.seedUser(t, "admin@oceanlk.com", models.RoleAdmin)

		_, refresh := app.loginUser(t, "admin@oceanlk.com", "password123")

		rec := app.request("POST", "/api/v1/auth/refresh",
			`{"refresh_token":"`+refresh+`"}`, "")
		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}
		result := parseJSON(t, rec)
		if result["access_token"] == "" || result["refresh_token"] == "" {
			t.Fatal("expected a new token pair")
		}

		// The old refresh token is no longer accepted.
		rec = app.request("POST", "/api/v1/auth/refresh",
			`{"refresh_token":"`+refresh+`"}`, "")
		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("expected 401 for reused token, got %d: %s", rec.Code, rec.Body.String())
		}
	})

	t.Run("refresh token rejected as access token", func(t *testing.T) {
		app := setupApp(t)
		app.seedUser(t, "admin@oceanlk.com", models.RoleAdmin)

		_, refresh := app.loginUser(t, "admin@oceanlk.com", "password123")

		rec := app.request("GET", "/api/v1/profile", "", refresh)
		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("expected 401, got %d: %s", rec.Code, rec.Body.String())
		}
	})

	t.Run("missing token rejected", func(t *testing.T) {
		app := setupApp(t)

		rec := app.request("GET", "/api/v1/profile", "", "")
		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("expected 401, got %d", rec.Code)
		}
	})

	t.Run("user management is super admin only", func(t *testing.T) {
		app := setupApp(t)
		app.seedUser(t, "admin@oceanlk.com", models.RoleAdmin)
		app.seedUser(t, "super@oceanlk.com", models.RoleSuperAdmin)
		adminToken, _ := app.loginUser(t, "admin@oceanlk.com", "password123")
		superToken, _ := app.loginUser(t, "super@oceanlk.com", "password123")

		body := `{"email":"new@oceanlk.com","password":"secret123","role":"ADMIN"}`

		rec := app.request("POST", "/api/v1/users", body, adminToken)
		if rec.Code != http.StatusForbidden {
			t.Fatalf("expected 403 for admin, got %d: %s", rec.Code, rec.Body.String())
		}

		rec = app.request("POST", "/api/v1/users", body, superToken)
		if rec.Code != http.StatusCreated {
			t.Fatalf("expected 201 for super admin, got %d: %s", rec.Code, rec.Body.String())
		}
	})
}

func TestPublicReads(t *testing.T) {
	app := setupApp(t)

	active := &models.Company{Name: "Visible", IsActive: true}
	hidden := &models.Company{Name: "Hidden", IsActive: false}
	if err := app.DB.Create(active).Error; err != nil {
		t.Fatalf("failed to seed company: %v", err)
	}
	if err := app.DB.Create(hidden).Error; err != nil {
		t.Fatalf("failed to seed company: %v", err)
	}

	rec := app.request("GET", "/api/v1/public/companies", "", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	result := parseJSON(t, rec)
	if result["total_items"] != float64(1) {
		t.Errorf("expected only the active company, got %v", result["total_items"])
	}
}
