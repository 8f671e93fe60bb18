package service

import (
	"context"
	"errors"
	"fmt"
	"time"
	"unicode/utf8"

	"wallet-service/internal/core/domain"
	"wallet-service/internal/core/ports"
	"wallet-service/pkg/apperror"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
)

const minPinLength = 4

// WalletServiceImpl implements ports.WalletService.
type WalletServiceImpl struct {
	walletRepo ports.WalletRepository
	validate   *validator.Validate
	log        zerolog.Logger
}

// NewWalletService creates a new WalletServiceImpl.
func NewWalletService(walletRepo ports.WalletRepository, log zerolog.Logger) *WalletServiceImpl {
	return &WalletServiceImpl{
		walletRepo: walletRepo,
		validate:   validator.New(validator.WithRequiredStructEnabled()),
		log:        log,
	}
}

// CreateWallet creates a wallet seeded with zero balances for every
// supported currency.
func (s *WalletServiceImpl) CreateWallet(ctx context.Context, req ports.CreateWalletRequest) (*ports.CreateWalletResult, error) {
	if req.UserID < 1 {
		return nil, apperror.ErrInvalidUserID()
	}

	wallet := domain.NewWallet(req.UserID, time.Now().UTC())
	if err := s.validateWallet(wallet); err != nil {
		return nil, err
	}

	if err := s.walletRepo.Create(ctx, wallet); err != nil {
		if errors.Is(err, domain.ErrWalletExists) {
			return nil, apperror.ErrWalletExists(req.UserID)
		}
		return nil, apperror.InternalError(fmt.Errorf("create wallet: %w", err))
	}

	s.log.Info().
		Str("wallet_id", wallet.ID.String()).
		Int64("user_id", wallet.UserID).
		Int("currencies", len(wallet.Balances)).
		Msg("wallet created")

	return &ports.CreateWalletResult{WalletID: wallet.ID}, nil
}

// UpdateTransferPin replaces the wallet's transfer PIN. The PIN is checked
// before storage is touched.
func (s *WalletServiceImpl) UpdateTransferPin(ctx context.Context, userID int64, pin string) error {
	if utf8.RuneCountInString(pin) < minPinLength {
		return apperror.ErrInvalidPin()
	}

	if err := s.walletRepo.UpdatePin(ctx, userID, pin); err != nil {
		if errors.Is(err, domain.ErrWalletNotFound) {
			return apperror.ErrWalletNotFound()
		}
		return apperror.InternalError(fmt.Errorf("update pin: %w", err))
	}

	s.log.Info().Int64("user_id", userID).Msg("transfer pin updated")

	return nil
}

func (s *WalletServiceImpl) validateWallet(w *domain.Wallet) error {
	if err := s.validate.Struct(w); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			return apperror.Validation(fmt.Sprintf("invalid wallet field %s", verrs[0].Namespace()))
		}
		return apperror.InternalError(fmt.Errorf("validate wallet: %w", err))
	}
	for _, b := range w.Balances {
		if b.IsNegative() {
			return apperror.Validation(fmt.Sprintf("negative balance for %s", b.CurrencyCode))
		}
	}
	return nil
}
