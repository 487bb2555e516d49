package services

import (
	"context"

	"github.com/coopera/savings-backend/internal/models"
	repo "github.com/coopera/savings-backend/internal/repository"
)

type ProfileService struct {
	agg   repo.PersonalSavings
	notif repo.Notifications
}

func NewProfileService(a repo.PersonalSavings, n repo.Notifications) *ProfileService {
	return &ProfileService{agg: a, notif: n}
}

func (s *ProfileService) PersonalSavings(ctx context.Context, userID string) (models.PersonalSavings, error) {
	return s.agg.GetOrCreate(ctx, userID)
}

func (s *ProfileService) Notifications(ctx context.Context, userID string) ([]models.Notification, error) {
	return s.notif.ListByUser(ctx, userID)
}
