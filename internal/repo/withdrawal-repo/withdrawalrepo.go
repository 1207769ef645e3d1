package withdrawalrepo

import (
	"context"

	"github.com/goalux/goalux/internal/domain"
	"github.com/goalux/goalux/internal/pg"
	"go.uber.org/zap"
)

type Repository struct {
	db pg.Database
}

func New(db pg.Database) *Repository {
	return &Repository{
		db: db,
	}
}

func (r *Repository) Create(ctx context.Context, withdrawal *domain.Withdrawal) (*domain.Withdrawal, error) {
	query := `
		INSERT INTO withdrawals (user_id, phone, upi_id, amount, status, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id
	`
	err := r.db.QueryRow(ctx, query, withdrawal.UserID, withdrawal.Phone, withdrawal.UPIID,
		withdrawal.Amount, withdrawal.Status, withdrawal.CreatedAt).Scan(&withdrawal.ID)
	if err != nil {
		zap.L().Error("can't save withdrawal", zap.Error(err))
		return nil, err
	}
	return withdrawal, nil
}

func (r *Repository) FindAll(ctx context.Context) ([]domain.Withdrawal, error) {
	query := `
        SELECT id, user_id, phone, upi_id, amount, status, created_at
        FROM withdrawals
        ORDER BY created_at DESC
    `
	return r.findMany(ctx, query)
}

func (r *Repository) FindByStatus(ctx context.Context, status string) ([]domain.Withdrawal, error) {
	query := `
        SELECT id, user_id, phone, upi_id, amount, status, created_at
        FROM withdrawals
        WHERE status = $1
        ORDER BY created_at DESC
    `
	return r.findMany(ctx, query, status)
}

// UpdateStatus returns false when no withdrawal has the given id.
func (r *Repository) UpdateStatus(ctx context.Context, id int, status string) (bool, error) {
	query := `
		UPDATE withdrawals
		SET status = $1
		WHERE id = $2
	`
	tag, err := r.db.Exec(ctx, query, status, id)
	if err != nil {
		zap.L().Error("can't update withdrawal status", zap.Error(err))
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

func (r *Repository) findMany(ctx context.Context, query string, args ...interface{}) ([]domain.Withdrawal, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		zap.L().Error("failed to fetch withdrawals", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	var withdrawals []domain.Withdrawal
	for rows.Next() {
		var wd domain.Withdrawal
		err := rows.Scan(&wd.ID, &wd.UserID, &wd.Phone, &wd.UPIID, &wd.Amount, &wd.Status, &wd.CreatedAt)
		if err != nil {
			zap.L().Error("failed to scan withdrawal row", zap.Error(err))
			return nil, err
		}
		withdrawals = append(withdrawals, wd)
	}

	return withdrawals, nil
}
