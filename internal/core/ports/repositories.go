package ports

import (
	"context"

	"wallet-service/internal/core/domain"
)

// WalletRepository defines persistence operations for wallets.
type WalletRepository interface {
	// Create persists the wallet and all its balances atomically. Returns
	// domain.ErrWalletExists when the user already owns a wallet.
	Create(ctx context.Context, wallet *domain.Wallet) error
	// UpdatePin hashes pin and stores it as the wallet's transfer PIN.
	// Returns domain.ErrWalletNotFound when the user has no wallet.
	UpdatePin(ctx context.Context, userID int64, pin string) error
}

// AuditRepository persists audit entries.
type AuditRepository interface {
	Create(ctx context.Context, entry *domain.AuditLog) error
}
