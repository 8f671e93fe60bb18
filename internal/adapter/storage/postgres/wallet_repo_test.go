package postgres

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"wallet-service/internal/core/domain"
	"wallet-service/internal/core/ports/mocks"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

var (
	selectWalletSQL   = regexp.QuoteMeta("SELECT 1 FROM wallet WHERE user_id = $1")
	insertWalletSQL   = regexp.QuoteMeta("INSERT INTO wallet (id,user_id,password_hash,created_on,updated_on) VALUES ($1,$2,$3,$4,$5)")
	insertBalancesSQL = regexp.QuoteMeta("INSERT INTO wallet_balances (wallet_id,currency_code,currency_symbol,balance) VALUES ($1,$2,$3,$4),")
	updatePinSQL      = regexp.QuoteMeta("UPDATE wallet SET password_hash = $1, updated_on = NOW() WHERE user_id = $2")
)

func newTestWallet(userID int64) *domain.Wallet {
	return domain.NewWallet(userID, time.Now().UTC().Truncate(time.Microsecond))
}

func balanceArgs(w *domain.Wallet) []any {
	args := make([]any, 0, len(w.Balances)*4)
	for _, b := range w.Balances {
		args = append(args, w.ID, b.CurrencyCode, b.CurrencySymbol, pgxmock.AnyArg())
	}
	return args
}

func setupWalletRepo(t *testing.T) (pgxmock.PgxPoolIface, *mocks.MockHashService, *WalletRepo) {
	t.Helper()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(mock.Close)

	hashSvc := mocks.NewMockHashService(gomock.NewController(t))
	return mock, hashSvc, NewWalletRepo(mock, hashSvc)
}

func TestWalletRepo_Create(t *testing.T) {
	mock, _, repo := setupWalletRepo(t)
	w := newTestWallet(42)

	mock.ExpectBegin()
	mock.ExpectQuery(selectWalletSQL).
		WithArgs(int64(42)).
		WillReturnRows(pgxmock.NewRows([]string{"?column?"}))
	mock.ExpectExec(insertWalletSQL).
		WithArgs(w.ID, int64(42), w.PasswordHash, w.CreatedOn, w.UpdatedOn).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))
	mock.ExpectExec(insertBalancesSQL).
		WithArgs(balanceArgs(w)...).
		WillReturnResult(pgxmock.NewResult("INSERT", 10))
	mock.ExpectCommit()

	err := repo.Create(context.Background(), w)
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestWalletRepo_Create_BalancesInSeedOrder(t *testing.T) {
	mock, _, repo := setupWalletRepo(t)
	w := newTestWallet(3)

	mock.ExpectBegin()
	mock.ExpectQuery(selectWalletSQL).
		WithArgs(int64(3)).
		WillReturnRows(pgxmock.NewRows([]string{"?column?"}))
	mock.ExpectExec(insertWalletSQL).
		WithArgs(pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg()).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))
	// USD first, INR last
	args := balanceArgs(w)
	assert.Equal(t, "USD", args[1])
	assert.Equal(t, "INR", args[len(args)-3])
	mock.ExpectExec(insertBalancesSQL).
		WithArgs(args...).
		WillReturnResult(pgxmock.NewResult("INSERT", 10))
	mock.ExpectCommit()

	require.NoError(t, repo.Create(context.Background(), w))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestWalletRepo_Create_AlreadyExists(t *testing.T) {
	mock, _, repo := setupWalletRepo(t)
	w := newTestWallet(42)

	mock.ExpectBegin()
	mock.ExpectQuery(selectWalletSQL).
		WithArgs(int64(42)).
		WillReturnRows(pgxmock.NewRows([]string{"?column?"}).AddRow(1))
	mock.ExpectRollback()

	err := repo.Create(context.Background(), w)
	assert.ErrorIs(t, err, domain.ErrWalletExists)
	assert.NoError(t, mock.ExpectationsWereMet(), "no insert may run for an existing wallet")
}

func TestWalletRepo_Create_UniqueViolation(t *testing.T) {
	mock, _, repo := setupWalletRepo(t)
	w := newTestWallet(42)

	mock.ExpectBegin()
	mock.ExpectQuery(selectWalletSQL).
		WithArgs(int64(42)).
		WillReturnRows(pgxmock.NewRows([]string{"?column?"}))
	mock.ExpectExec(insertWalletSQL).
		WithArgs(pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg()).
		WillReturnError(&pgconn.PgError{Code: pgerrcode.UniqueViolation, ConstraintName: "wallet_user_id_key"})
	mock.ExpectRollback()

	err := repo.Create(context.Background(), w)
	assert.ErrorIs(t, err, domain.ErrWalletExists)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestWalletRepo_Create_BalanceInsertFailsRollsBack(t *testing.T) {
	mock, _, repo := setupWalletRepo(t)
	w := newTestWallet(42)

	mock.ExpectBegin()
	mock.ExpectQuery(selectWalletSQL).
		WithArgs(int64(42)).
		WillReturnRows(pgxmock.NewRows([]string{"?column?"}))
	mock.ExpectExec(insertWalletSQL).
		WithArgs(pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg()).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))
	mock.ExpectExec(insertBalancesSQL).
		WithArgs(balanceArgs(w)...).
		WillReturnError(errors.New("check constraint violated"))
	mock.ExpectRollback()

	err := repo.Create(context.Background(), w)
	require.Error(t, err)
	assert.NotErrorIs(t, err, domain.ErrWalletExists)
	assert.Contains(t, err.Error(), "insert balances")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestWalletRepo_Create_LookupFails(t *testing.T) {
	mock, _, repo := setupWalletRepo(t)
	w := newTestWallet(42)

	mock.ExpectBegin()
	mock.ExpectQuery(selectWalletSQL).
		WithArgs(int64(42)).
		WillReturnError(errors.New("conn closed"))
	mock.ExpectRollback()

	err := repo.Create(context.Background(), w)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "check existing wallet")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestWalletRepo_Create_BeginFails(t *testing.T) {
	mock, _, repo := setupWalletRepo(t)

	mock.ExpectBegin().WillReturnError(errors.New("pool exhausted"))

	err := repo.Create(context.Background(), newTestWallet(1))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "begin tx")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestWalletRepo_UpdatePin(t *testing.T) {
	mock, hashSvc, repo := setupWalletRepo(t)

	hashSvc.EXPECT().Hash("4821").Return("$argon2id$v=19$m=65536,t=1,p=4$salt$hash", nil)
	mock.ExpectExec(updatePinSQL).
		WithArgs("$argon2id$v=19$m=65536,t=1,p=4$salt$hash", int64(42)).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))

	err := repo.UpdatePin(context.Background(), 42, "4821")
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestWalletRepo_UpdatePin_NotFound(t *testing.T) {
	mock, hashSvc, repo := setupWalletRepo(t)

	hashSvc.EXPECT().Hash("1234").Return("hashed", nil)
	mock.ExpectExec(updatePinSQL).
		WithArgs("hashed", int64(99)).
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))

	err := repo.UpdatePin(context.Background(), 99, "1234")
	assert.ErrorIs(t, err, domain.ErrWalletNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestWalletRepo_UpdatePin_HashFails(t *testing.T) {
	mock, hashSvc, repo := setupWalletRepo(t)

	hashSvc.EXPECT().Hash("1234").Return("", errors.New("entropy unavailable"))

	err := repo.UpdatePin(context.Background(), 1, "1234")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "hash pin")
	assert.NoError(t, mock.ExpectationsWereMet(), "no statement may run when hashing fails")
}
