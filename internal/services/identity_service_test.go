package services

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/coopera/savings-backend/internal/identity"
	"github.com/coopera/savings-backend/internal/models"
	"github.com/coopera/savings-backend/internal/repository/memory"
)

func TestResolveCreatesOnFirstSight(t *testing.T) {
	store := memory.NewStore()
	svc := NewIdentityService(store.Users())

	ident := identity.Identity{
		ExternalID: "ext-42",
		FirstName:  "Ada",
		LastName:   "Lovelace",
		Email:      "ada@example.com",
		AvatarURL:  "https://cdn.example.com/ada.png",
	}
	u, err := svc.Resolve(context.Background(), ident)
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if u.Name != "Ada Lovelace" || u.Email != "ada@example.com" {
		t.Errorf("unexpected profile: %+v", u)
	}
	if u.AvatarURL == nil || *u.AvatarURL != "https://cdn.example.com/ada.png" {
		t.Error("avatar not carried over")
	}
}

func TestResolveIdempotent(t *testing.T) {
	store := memory.NewStore()
	svc := NewIdentityService(store.Users())
	ident := identity.Identity{ExternalID: "ext-42", Username: "ada"}

	first, err := svc.Resolve(context.Background(), ident)
	if err != nil {
		t.Fatalf("first Resolve: %v", err)
	}
	second, err := svc.Resolve(context.Background(), ident)
	if err != nil {
		t.Fatalf("second Resolve: %v", err)
	}
	if first.ID != second.ID {
		t.Errorf("resolved different users: %s vs %s", first.ID, second.ID)
	}
	if store.UserCount() != 1 {
		t.Errorf("users = %d, want 1", store.UserCount())
	}
}

func TestResolveFallbackProfile(t *testing.T) {
	store := memory.NewStore()
	svc := NewIdentityService(store.Users())

	u, err := svc.Resolve(context.Background(), identity.Identity{ExternalID: "ext-noprofile"})
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if !strings.HasPrefix(u.Name, "user-") {
		t.Errorf("placeholder name = %q", u.Name)
	}
	if !strings.HasSuffix(u.Email, "@placeholder.local") {
		t.Errorf("synthesized email = %q", u.Email)
	}
}

func TestConditionalInsertIsNoOpOnConflict(t *testing.T) {
	store := memory.NewStore()
	users := store.Users()
	ctx := context.Background()

	// two handlers racing on the same brand-new identity: the second insert
	// hits the unique constraint and must be a silent no-op
	if err := users.Insert(ctx, models.User{AuthID: "ext-race", Name: "First", Email: "first@example.com"}); err != nil {
		t.Fatalf("first insert: %v", err)
	}
	if err := users.Insert(ctx, models.User{AuthID: "ext-race", Name: "Second", Email: "second@example.com"}); err != nil {
		t.Fatalf("conflicting insert: %v", err)
	}
	u, err := users.GetByAuthID(ctx, "ext-race")
	if err != nil {
		t.Fatalf("GetByAuthID: %v", err)
	}
	if u.Name != "First" {
		t.Errorf("expected first row to win, got %+v", u)
	}
	if store.UserCount() != 1 {
		t.Errorf("users = %d, want 1", store.UserCount())
	}
}

func TestResolveRequiresIdentity(t *testing.T) {
	store := memory.NewStore()
	svc := NewIdentityService(store.Users())

	if _, err := svc.Resolve(context.Background(), identity.Identity{}); !errors.Is(err, ErrAuthenticationRequired) {
		t.Errorf("err = %v, want ErrAuthenticationRequired", err)
	}
}
