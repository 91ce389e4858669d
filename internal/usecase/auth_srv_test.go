package usecase

import (
	"context"
	"strings"
	"testing"

	"media-reviews/internal/data/entity"
	"media-reviews/internal/dto/request"
	"media-reviews/pkg/mailer"
	"media-reviews/pkg/utils"
)

func newAuthFixture(store *memStore) AuthService {
	config := &utils.Config{JWT: utils.JWTConfig{Secret: "test-secret", ExpiryHours: 1}}
	mail := mailer.New(utils.EmailConfig{}, nopLogger())
	return NewAuthService(newFakeRepository(store), config, mail, nopLogger())
}

func TestSignupCreatesUser(t *testing.T) {
	store := newMemStore()
	svc := newAuthFixture(store)

	resp, err := svc.Signup(context.Background(), &request.SignupRequest{
		Email:    "alice@example.com",
		Username: "alice",
	})
	if err != nil {
		t.Fatalf("signup: %v", err)
	}
	if resp.Username != "alice" || resp.Email != "alice@example.com" {
		t.Errorf("unexpected response: %+v", resp)
	}

	if len(store.users) != 1 {
		t.Fatalf("got %d users, want 1", len(store.users))
	}
	user := store.users[0]
	if user.Role != entity.RoleUser {
		t.Errorf("role = %s, want user", user.Role)
	}
	if user.ConfirmationHash == "" {
		t.Error("confirmation hash not set")
	}
}

func TestSignupReservedUsername(t *testing.T) {
	svc := newAuthFixture(newMemStore())

	_, err := svc.Signup(context.Background(), &request.SignupRequest{
		Email:    "me@example.com",
		Username: "me",
	})
	if err == nil || !strings.Contains(err.Error(), "validation failed") {
		t.Fatalf("expected validation error, got %v", err)
	}

	_, err = svc.Signup(context.Background(), &request.SignupRequest{
		Email:    "bad@example.com",
		Username: "has spaces",
	})
	if err == nil || !strings.Contains(err.Error(), "validation failed") {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestSignupConflicts(t *testing.T) {
	store := newMemStore()
	seedUser(store, "alice", "alice@example.com", entity.RoleUser)
	svc := newAuthFixture(store)

	// same username, different email
	_, err := svc.Signup(context.Background(), &request.SignupRequest{
		Email:    "other@example.com",
		Username: "alice",
	})
	if err == nil || !strings.Contains(err.Error(), "username already taken") {
		t.Fatalf("expected username conflict, got %v", err)
	}

	// same email, different username
	_, err = svc.Signup(context.Background(), &request.SignupRequest{
		Email:    "alice@example.com",
		Username: "alice2",
	})
	if err == nil || !strings.Contains(err.Error(), "email already registered") {
		t.Fatalf("expected email conflict, got %v", err)
	}
}

func TestSignupReissuesCode(t *testing.T) {
	store := newMemStore()
	user := seedUser(store, "alice", "alice@example.com", entity.RoleUser)
	user.ConfirmationHash = "old-hash"
	svc := newAuthFixture(store)

	// matching pair is not a conflict, just a fresh code
	if _, err := svc.Signup(context.Background(), &request.SignupRequest{
		Email:    "alice@example.com",
		Username: "alice",
	}); err != nil {
		t.Fatalf("signup: %v", err)
	}

	if len(store.users) != 1 {
		t.Fatalf("got %d users, want 1", len(store.users))
	}
	if store.users[0].ConfirmationHash == "old-hash" {
		t.Error("confirmation hash not refreshed")
	}
}

func TestTokenUnknownUser(t *testing.T) {
	svc := newAuthFixture(newMemStore())

	_, err := svc.Token(context.Background(), &request.TokenRequest{
		Username:         "ghost",
		ConfirmationCode: "whatever",
	})
	if err == nil || !strings.Contains(err.Error(), "not found") {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestTokenWrongCode(t *testing.T) {
	store := newMemStore()
	user := seedUser(store, "alice", "alice@example.com", entity.RoleUser)
	hash, err := utils.HashSecret("right-code")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	user.ConfirmationHash = hash
	svc := newAuthFixture(store)

	_, err = svc.Token(context.Background(), &request.TokenRequest{
		Username:         "alice",
		ConfirmationCode: "wrong-code",
	})
	if err == nil || !strings.Contains(err.Error(), "validation failed") {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestTokenIssuesJWT(t *testing.T) {
	store := newMemStore()
	user := seedUser(store, "alice", "alice@example.com", entity.RoleModerator)
	hash, err := utils.HashSecret("right-code")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	user.ConfirmationHash = hash
	svc := newAuthFixture(store)

	resp, err := svc.Token(context.Background(), &request.TokenRequest{
		Username:         "alice",
		ConfirmationCode: "right-code",
	})
	if err != nil {
		t.Fatalf("token: %v", err)
	}

	claims, err := utils.ParseToken(resp.Token, utils.JWTConfig{Secret: "test-secret", ExpiryHours: 1})
	if err != nil {
		t.Fatalf("parse issued token: %v", err)
	}
	if claims.Username != "alice" {
		t.Errorf("username = %s", claims.Username)
	}
	if claims.Role != string(entity.RoleModerator) {
		t.Errorf("role = %s, want moderator", claims.Role)
	}
	if claims.UserID != user.ID.String() {
		t.Errorf("user id = %s, want %s", claims.UserID, user.ID)
	}
}
