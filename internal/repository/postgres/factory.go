package postgres

import (
	"github.com/jackc/pgx/v5/pgxpool"

	repo "github.com/ugcforge/escrow-backend/internal/repository"
)

type Repositories struct {
	Users         repo.Users
	Campaigns     repo.Campaigns
	Submissions   repo.Submissions
	Ledger        repo.Ledger
	Balances      repo.Balances
	Notifications repo.Notifications
	AuditLogs     repo.AuditLogs
	Release       repo.ReleaseStore
}

func NewRepositories(pool *pgxpool.Pool) Repositories {
	return Repositories{
		Users:         &usersRepo{pool},
		Campaigns:     &campaignsRepo{pool},
		Submissions:   &submissionsRepo{pool},
		Ledger:        &ledgerRepo{pool},
		Balances:      &balancesRepo{pool},
		Notifications: &notificationsRepo{pool},
		AuditLogs:     &auditLogsRepo{pool},
		Release:       &releaseStore{pool},
	}
}
