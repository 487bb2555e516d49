package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/coopera/savings-backend/internal/identity"
	"github.com/coopera/savings-backend/internal/models"
	repo "github.com/coopera/savings-backend/internal/repository"
)

// ErrAuthenticationRequired signals that no external identity was present
// upstream.
var ErrAuthenticationRequired = errors.New("authentication required")

// IdentityService maps a verified external identity to the internal user
// record, creating one on first sight.
type IdentityService struct {
	users repo.Users
}

func NewIdentityService(users repo.Users) *IdentityService {
	return &IdentityService{users: users}
}

// Resolve is idempotent: the unique constraint on the external reference
// guarantees at most one row per identity. A concurrent first-sight insert
// is a conditional no-op followed by a re-read, never an error.
func (s *IdentityService) Resolve(ctx context.Context, ident identity.Identity) (models.User, error) {
	if ident.ExternalID == "" {
		return models.User{}, ErrAuthenticationRequired
	}

	u, err := s.users.GetByAuthID(ctx, ident.ExternalID)
	if err == nil {
		return u, nil
	}
	if !errors.Is(err, repo.ErrNotFound) {
		return models.User{}, err
	}

	nu := models.User{
		AuthID: ident.ExternalID,
		Name:   ident.DisplayName(),
		Email:  ident.Email,
	}
	if ident.AvatarURL != "" {
		av := ident.AvatarURL
		nu.AvatarURL = &av
	}
	if nu.Name == "" {
		nu.Name = fmt.Sprintf("user-%d", time.Now().UnixMilli())
	}
	if nu.Email == "" {
		nu.Email = nu.Name + "@placeholder.local"
	}

	if err := s.users.Insert(ctx, nu); err != nil {
		return models.User{}, err
	}
	return s.users.GetByAuthID(ctx, ident.ExternalID)
}
