package paymentrepo

import (
	"context"
	"time"

	"github.com/goalux/goalux/internal/domain"
	"github.com/goalux/goalux/internal/pg"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type Repository struct {
	db        pg.Database
	txManager pg.TXManager
}

func New(db pg.Database, txManager pg.TXManager) *Repository {
	return &Repository{
		db:        db,
		txManager: txManager,
	}
}

const paymentColumns = "id, user_id, phone, order_id, amount, status, txn_id, created_at, updated_at"

func (r *Repository) Create(ctx context.Context, payment *domain.Payment) (*domain.Payment, error) {
	query := `
		INSERT INTO payments (user_id, phone, order_id, amount, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $6)
		RETURNING id
	`
	err := r.db.QueryRow(ctx, query, payment.UserID, payment.Phone, payment.OrderID,
		payment.Amount, payment.Status, payment.CreatedAt).Scan(&payment.ID)
	if err != nil {
		zap.L().Error("can't save payment", zap.Error(err))
		return nil, err
	}
	return payment, nil
}

func (r *Repository) FindByOrderID(ctx context.Context, orderID string) (*domain.Payment, error) {
	query := `SELECT ` + paymentColumns + ` FROM payments WHERE order_id = $1`
	row := r.db.QueryRow(ctx, query, orderID)

	var payment domain.Payment
	err := row.Scan(&payment.ID, &payment.UserID, &payment.Phone, &payment.OrderID, &payment.Amount,
		&payment.Status, &payment.TxnID, &payment.CreatedAt, &payment.UpdatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		zap.L().Error("can't find payment", zap.Error(err))
		return nil, err
	}
	return &payment, nil
}

func (r *Repository) UpdateStatus(ctx context.Context, paymentID int, status, txnID string) error {
	query := `
		UPDATE payments
		SET status = $1, txn_id = $2, updated_at = NOW()
		WHERE id = $3
	`
	err := r.txManager.Begin(ctx, func(ctx context.Context) error {
		_, err := r.db.Exec(ctx, query, status, txnID, paymentID)
		if err != nil {
			zap.L().Error("can't update payment status", zap.Error(err))
			return err
		}
		return nil
	})
	if err != nil {
		return err
	}
	return nil
}

func (r *Repository) FindSettled(ctx context.Context) ([]domain.Payment, error) {
	query := `
		SELECT ` + paymentColumns + `
		FROM payments
		WHERE status = 'SUCCESS'
		ORDER BY created_at DESC
	`
	return r.findMany(ctx, query)
}

// FindForReconciliation returns initiated payments old enough that the
// gateway callback is presumed lost.
func (r *Repository) FindForReconciliation(ctx context.Context, cutoff time.Time, limit uint32) ([]domain.Payment, error) {
	query := `
		SELECT ` + paymentColumns + `
		FROM payments
		WHERE status = 'INITIATED' AND created_at < $1
		ORDER BY created_at ASC
		LIMIT $2
	`
	return r.findMany(ctx, query, cutoff, int(limit))
}

func (r *Repository) findMany(ctx context.Context, query string, args ...interface{}) ([]domain.Payment, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		zap.L().Error("can't get payments", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	var payments []domain.Payment
	for rows.Next() {
		var payment domain.Payment
		err := rows.Scan(&payment.ID, &payment.UserID, &payment.Phone, &payment.OrderID, &payment.Amount,
			&payment.Status, &payment.TxnID, &payment.CreatedAt, &payment.UpdatedAt)
		if err != nil {
			zap.L().Error("can't scan payment row", zap.Error(err))
			return nil, err
		}
		payments = append(payments, payment)
	}
	return payments, nil
}
