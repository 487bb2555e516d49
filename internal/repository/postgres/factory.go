package postgres

import (
	"github.com/jackc/pgx/v5/pgxpool"

	repo "github.com/coopera/savings-backend/internal/repository"
)

type Repositories struct {
	Users           repo.Users
	Goals           repo.Goals
	Transactions    repo.SavingsTransactions
	PersonalSavings repo.PersonalSavings
	AuditLogs       repo.AuditLogs
	Notifications   repo.Notifications
}

func NewRepositories(pool *pgxpool.Pool) Repositories {
	return Repositories{
		Users:           &usersRepo{pool},
		Goals:           &goalsRepo{pool},
		Transactions:    &transactionsRepo{pool},
		PersonalSavings: &personalSavingsRepo{pool},
		AuditLogs:       &auditLogsRepo{pool},
		Notifications:   &notificationsRepo{pool},
	}
}
