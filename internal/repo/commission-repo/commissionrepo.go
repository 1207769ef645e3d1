package commissionrepo

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

func (r *Repository) Create(ctx context.Context, commission *domain.Commission) (*domain.Commission, error) {
	query := `
		INSERT INTO commissions (user_id, source_user_id, level, amount, created_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`
	err := r.db.QueryRow(ctx, query, commission.UserID, commission.SourceUserID,
		commission.Level, commission.Amount, commission.CreatedAt).Scan(&commission.ID)
	if err != nil {
		zap.L().Error("can't save commission", zap.Error(err))
		return nil, err
	}
	return commission, nil
}

// TotalByUserID sums everything the account has actually been credited,
// which keeps the reported figure in step with the wallet.
func (r *Repository) TotalByUserID(ctx context.Context, userID int) (float64, error) {
	query := `SELECT COALESCE(SUM(amount), 0) FROM commissions WHERE user_id = $1`
	var total float64
	err := r.db.QueryRow(ctx, query, userID).Scan(&total)
	if err != nil {
		zap.L().Error("can't sum commissions", zap.Error(err))
		return 0, err
	}
	return total, nil
}
