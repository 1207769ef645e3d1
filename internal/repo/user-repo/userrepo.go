package userrepo

import (
	"context"

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

const userColumns = "id, phone, password_hash, referred_by, referral_code, wallet, has_paid, role, created_at"

func scanUser(row pgx.Row) (*domain.User, error) {
	var user domain.User
	err := row.Scan(&user.ID, &user.Phone, &user.PasswordHash, &user.ReferredBy, &user.ReferralCode,
		&user.Wallet, &user.HasPaid, &user.Role, &user.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (repo *Repository) FindByPhone(ctx context.Context, phone string) (*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE phone = $1`
	user, err := scanUser(repo.db.QueryRow(ctx, query, phone))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		zap.L().Error("can't find user by phone", zap.Error(err))
		return nil, err
	}
	return user, nil
}

func (repo *Repository) FindByReferralCode(ctx context.Context, code string) (*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE referral_code = $1`
	user, err := scanUser(repo.db.QueryRow(ctx, query, code))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		zap.L().Error("can't find user by referral code", zap.Error(err))
		return nil, err
	}
	return user, nil
}

func (repo *Repository) Create(ctx context.Context, user *domain.User) (*domain.User, error) {
	query := `
		INSERT INTO users (phone, password_hash, referred_by, referral_code)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`
	err := repo.db.QueryRow(ctx, query, user.Phone, user.PasswordHash, user.ReferredBy, user.ReferralCode).Scan(&user.ID)
	if err != nil {
		zap.L().Error("can't save user", zap.Error(err))
		return nil, err
	}
	user.Role = domain.MemberRole
	return user, nil
}

// CreditWallet adds amount to the wallet in a single statement, so concurrent
// credits on the same account cannot lose updates.
func (repo *Repository) CreditWallet(ctx context.Context, userID int, amount float64) error {
	query := `
		UPDATE users
		SET wallet = wallet + $1
		WHERE id = $2
	`
	err := repo.txManager.Begin(ctx, func(ctx context.Context) error {
		_, err := repo.db.Exec(ctx, query, amount, userID)
		if err != nil {
			zap.L().Error("can't credit wallet", zap.Error(err))
			return err
		}
		return nil
	})
	if err != nil {
		return err
	}
	return nil
}

func (repo *Repository) DebitWallet(ctx context.Context, userID int, amount float64) error {
	query := `
		UPDATE users
		SET wallet = wallet - $1
		WHERE id = $2
	`
	_, err := repo.db.Exec(ctx, query, amount, userID)
	if err != nil {
		zap.L().Error("can't debit wallet", zap.Error(err))
		return err
	}
	return nil
}

// MarkPaid settles the one-time membership fee: credits the wallet and flips
// the paid flag in one statement.
func (repo *Repository) MarkPaid(ctx context.Context, userID int, amount float64) error {
	query := `
		UPDATE users
		SET wallet = wallet + $1, has_paid = TRUE
		WHERE id = $2
	`
	err := repo.txManager.Begin(ctx, func(ctx context.Context) error {
		_, err := repo.db.Exec(ctx, query, amount, userID)
		if err != nil {
			zap.L().Error("can't mark user as paid", zap.Error(err))
			return err
		}
		return nil
	})
	if err != nil {
		return err
	}
	return nil
}

func (repo *Repository) FindAll(ctx context.Context) ([]domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users ORDER BY created_at DESC`
	rows, err := repo.db.Query(ctx, query)
	if err != nil {
		zap.L().Error("can't get users", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	var users []domain.User
	for rows.Next() {
		var user domain.User
		err := rows.Scan(&user.ID, &user.Phone, &user.PasswordHash, &user.ReferredBy, &user.ReferralCode,
			&user.Wallet, &user.HasPaid, &user.Role, &user.CreatedAt)
		if err != nil {
			zap.L().Error("can't scan user row", zap.Error(err))
			return nil, err
		}
		users = append(users, user)
	}
	return users, nil
}

func (repo *Repository) CountReferrals(ctx context.Context, referralCode string) (int, error) {
	query := `SELECT COUNT(*) FROM users WHERE referred_by = $1`
	var count int
	err := repo.db.QueryRow(ctx, query, referralCode).Scan(&count)
	if err != nil {
		zap.L().Error("can't count referrals", zap.Error(err))
		return 0, err
	}
	return count, nil
}
