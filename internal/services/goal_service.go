package services

import (
	"context"

	"github.com/coopera/savings-backend/internal/api/validate"
	"github.com/coopera/savings-backend/internal/models"
	repo "github.com/coopera/savings-backend/internal/repository"
)

type GoalService struct {
	goals repo.Goals
	trx   repo.SavingsTransactions
}

func NewGoalService(g repo.Goals, t repo.SavingsTransactions) *GoalService {
	return &GoalService{goals: g, trx: t}
}

func (s *GoalService) Create(ctx context.Context, userID string, g models.SavingsGoal) (models.SavingsGoal, error) {
	var errs validate.Errs
	if ef := validate.Required("name", g.Name); ef != nil {
		errs = append(errs, *ef)
	}
	if ef := validate.PositiveAmount("target_amount", g.TargetAmount); ef != nil {
		errs = append(errs, *ef)
	}
	if len(errs) > 0 {
		return models.SavingsGoal{}, errs
	}
	g.UserID = userID
	return s.goals.Create(ctx, g)
}

func (s *GoalService) List(ctx context.Context, userID string) ([]models.SavingsGoal, error) {
	return s.goals.ListByUser(ctx, userID)
}

// Get returns one owned goal with its transaction history attached.
func (s *GoalService) Get(ctx context.Context, userID, goalID string) (models.SavingsGoal, error) {
	g, err := s.goals.GetOwned(ctx, goalID, userID)
	if err != nil {
		return models.SavingsGoal{}, err
	}
	history, err := s.trx.ListByGoal(ctx, goalID)
	if err != nil {
		return models.SavingsGoal{}, err
	}
	g.Transactions = history
	return g, nil
}
