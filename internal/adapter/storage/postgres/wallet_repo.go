package postgres

import (
	"context"
	"errors"
	"fmt"

	"wallet-service/internal/core/domain"
	"wallet-service/internal/core/ports"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// WalletRepo implements ports.WalletRepository.
type WalletRepo struct {
	pool       Pool
	transactor *Transactor
	hashSvc    ports.HashService
}

// NewWalletRepo creates a new WalletRepo. hashSvc hashes transfer PINs
// before they are stored.
func NewWalletRepo(pool Pool, hashSvc ports.HashService) *WalletRepo {
	return &WalletRepo{pool: pool, transactor: NewTransactor(pool), hashSvc: hashSvc}
}

// Create inserts the wallet and its balances in a single transaction.
// Nothing is written when the user already owns a wallet.
func (r *WalletRepo) Create(ctx context.Context, w *domain.Wallet) error {
	return r.transactor.WithinTx(ctx, func(tx pgx.Tx) error {
		exists, err := r.userHasWallet(ctx, tx, w.UserID)
		if err != nil {
			return err
		}
		if exists {
			return domain.ErrWalletExists
		}

		query, args, err := psql.Insert("wallet").
			Columns("id", "user_id", "password_hash", "created_on", "updated_on").
			Values(w.ID, w.UserID, w.PasswordHash, w.CreatedOn, w.UpdatedOn).
			ToSql()
		if err != nil {
			return fmt.Errorf("build wallet insert: %w", err)
		}
		if _, err := tx.Exec(ctx, query, args...); err != nil {
			if isUniqueViolation(err) {
				return domain.ErrWalletExists
			}
			return fmt.Errorf("insert wallet: %w", err)
		}

		if len(w.Balances) == 0 {
			return nil
		}
		b := psql.Insert("wallet_balances").
			Columns("wallet_id", "currency_code", "currency_symbol", "balance")
		for _, bal := range w.Balances {
			b = b.Values(w.ID, bal.CurrencyCode, bal.CurrencySymbol, bal.Balance)
		}
		query, args, err = b.ToSql()
		if err != nil {
			return fmt.Errorf("build balance insert: %w", err)
		}
		if _, err := tx.Exec(ctx, query, args...); err != nil {
			return fmt.Errorf("insert balances: %w", err)
		}
		return nil
	})
}

func (r *WalletRepo) userHasWallet(ctx context.Context, tx pgx.Tx, userID int64) (bool, error) {
	query, args, err := psql.Select("1").From("wallet").Where(sq.Eq{"user_id": userID}).ToSql()
	if err != nil {
		return false, fmt.Errorf("build wallet lookup: %w", err)
	}

	var one int
	err = tx.QueryRow(ctx, query, args...).Scan(&one)
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, pgx.ErrNoRows):
		return false, nil
	default:
		return false, fmt.Errorf("check existing wallet: %w", err)
	}
}

// UpdatePin hashes pin and stores it on the user's wallet.
func (r *WalletRepo) UpdatePin(ctx context.Context, userID int64, pin string) error {
	hash, err := r.hashSvc.Hash(pin)
	if err != nil {
		return fmt.Errorf("hash pin: %w", err)
	}

	query, args, err := psql.Update("wallet").
		Set("password_hash", hash).
		Set("updated_on", sq.Expr("NOW()")).
		Where(sq.Eq{"user_id": userID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build pin update: %w", err)
	}

	tag, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("update pin: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrWalletNotFound
	}
	return nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation
}
