package middleware

import (
	"testing"

	"oceanlk/internal/models"
)

func TestTokenGeneration(t *testing.T) {
	user := &models.User{
		Base:  models.Base{ID: "user-1"},
		Email: "admin@test.com",
		Role:  models.RoleAdmin,
	}

	t.Run("consecutive_refresh_tokens_are_unique", func(t *testing.T) {
		first, err := GenerateRefreshToken(user)
		if err != nil {
			t.Fatalf("failed to generate refresh token: %v", err)
		}
		second, err := GenerateRefreshToken(user)
		if err != nil {
			t.Fatalf("failed to generate refresh token: %v", err)
		}

		if first == second {
			t.Error("consecutive refresh tokens are identical; rotation would not invalidate the old token")
		}
		if HashToken(first) == HashToken(second) {
			t.Error("consecutive refresh tokens hash to the same value")
		}
	})

	t.Run("refresh_token_round_trips", func(t *testing.T) {
		token, err := GenerateRefreshToken(user)
		if err != nil {
			t.Fatalf("failed to generate refresh token: %v", err)
		}

		claims, err := ValidateRefreshToken(token)
		if err != nil {
			t.Fatalf("failed to validate refresh token: %v", err)
		}
		if claims.UserID != user.ID {
			t.Errorf("expected user ID %q, got %q", user.ID, claims.UserID)
		}
		if claims.ID == "" {
			t.Error("expected a token ID claim")
		}
	})

	t.Run("access_token_rejected_as_refresh", func(t *testing.T) {
		token, err := GenerateAccessToken(user)
		if err != nil {
			t.Fatalf("failed to generate access token: %v", err)
		}

		if _, err := ValidateRefreshToken(token); err == nil {
			t.Error("expected access token to be rejected as a refresh token")
		}
	})
}
