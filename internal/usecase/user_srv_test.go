package usecase

import (
	"context"
	"strings"
	"testing"

	"media-reviews/internal/data/entity"
	"media-reviews/internal/dto/request"
)

func strPtr(s string) *string { return &s }

func TestUserCreateWithRole(t *testing.T) {
	store := newMemStore()
	svc := NewUserService(newFakeRepository(store).User, nopLogger())

	resp, err := svc.Create(context.Background(), &request.CreateUserRequest{
		Username: "mod",
		Email:    "mod@example.com",
		Role:     "moderator",
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if resp.Role != entity.RoleModerator {
		t.Errorf("role = %s, want moderator", resp.Role)
	}
}

func TestUserCreateDefaultsToUserRole(t *testing.T) {
	store := newMemStore()
	svc := NewUserService(newFakeRepository(store).User, nopLogger())

	resp, err := svc.Create(context.Background(), &request.CreateUserRequest{
		Username: "plain",
		Email:    "plain@example.com",
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if resp.Role != entity.RoleUser {
		t.Errorf("role = %s, want user", resp.Role)
	}
}

func TestUserCreateRejectsDuplicates(t *testing.T) {
	store := newMemStore()
	seedUser(store, "alice", "alice@example.com", entity.RoleUser)
	svc := NewUserService(newFakeRepository(store).User, nopLogger())

	_, err := svc.Create(context.Background(), &request.CreateUserRequest{
		Username: "alice",
		Email:    "fresh@example.com",
	})
	if err == nil || !strings.Contains(err.Error(), "username already taken") {
		t.Fatalf("expected username conflict, got %v", err)
	}
}

func TestUserGetUnknown(t *testing.T) {
	svc := NewUserService(newFakeRepository(newMemStore()).User, nopLogger())

	_, err := svc.GetByUsername(context.Background(), "ghost")
	if err == nil || !strings.Contains(err.Error(), "not found") {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestUserAdminCanChangeRole(t *testing.T) {
	store := newMemStore()
	seedUser(store, "alice", "alice@example.com", entity.RoleUser)
	svc := NewUserService(newFakeRepository(store).User, nopLogger())

	resp, err := svc.UpdateByUsername(context.Background(), "alice", &request.UpdateUserRequest{
		Role: strPtr("admin"),
	})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if resp.Role != entity.RoleAdmin {
		t.Errorf("role = %s, want admin", resp.Role)
	}
}

func TestUserUpdateMePatchesProfile(t *testing.T) {
	store := newMemStore()
	user := seedUser(store, "alice", "alice@example.com", entity.RoleUser)
	svc := NewUserService(newFakeRepository(store).User, nopLogger())

	resp, err := svc.UpdateMe(context.Background(), user.ID, &request.UpdateMeRequest{
		FirstName: strPtr("Alice"),
		Bio:       strPtr("reader of everything"),
	})
	if err != nil {
		t.Fatalf("update me: %v", err)
	}
	if resp.FirstName != "Alice" {
		t.Errorf("first name = %q", resp.FirstName)
	}
	if resp.Bio == nil || *resp.Bio != "reader of everything" {
		t.Errorf("bio = %v", resp.Bio)
	}
	// untouched fields survive the patch
	if resp.Username != "alice" || resp.Role != entity.RoleUser {
		t.Errorf("unexpected response: %+v", resp)
	}
}

func TestUserUpdateMeRejectsTakenUsername(t *testing.T) {
	store := newMemStore()
	seedUser(store, "bob", "bob@example.com", entity.RoleUser)
	user := seedUser(store, "alice", "alice@example.com", entity.RoleUser)
	svc := NewUserService(newFakeRepository(store).User, nopLogger())

	_, err := svc.UpdateMe(context.Background(), user.ID, &request.UpdateMeRequest{
		Username: strPtr("bob"),
	})
	if err == nil || !strings.Contains(err.Error(), "username already taken") {
		t.Fatalf("expected username conflict, got %v", err)
	}
}

func TestUserDeleteHidesAccount(t *testing.T) {
	store := newMemStore()
	seedUser(store, "alice", "alice@example.com", entity.RoleUser)
	svc := NewUserService(newFakeRepository(store).User, nopLogger())

	if err := svc.DeleteByUsername(context.Background(), "alice"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := svc.GetByUsername(context.Background(), "alice"); err == nil {
		t.Fatal("deleted user still visible")
	}
}
