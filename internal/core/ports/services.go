package ports

import (
	"context"

	"wallet-service/internal/core/domain"

	"github.com/google/uuid"
)

// HashService handles credential hashing (Argon2id).
type HashService interface {
	Hash(secret string) (string, error)
	Verify(secret string, encoded string) (bool, error)
}

// TokenService verifies bearer tokens.
type TokenService interface {
	Validate(tokenString string) (*domain.Identity, error)
}

// AuditService records audit entries without blocking the caller.
type AuditService interface {
	Log(ctx context.Context, entry *domain.AuditLog)
}

// --- Service Ports (Business Logic) ---

// WalletService defines wallet business logic.
type WalletService interface {
	CreateWallet(ctx context.Context, req CreateWalletRequest) (*CreateWalletResult, error)
	UpdateTransferPin(ctx context.Context, userID int64, pin string) error
}

// CreateWalletRequest holds input for wallet creation.
type CreateWalletRequest struct {
	UserID int64
}

// CreateWalletResult holds the persisted wallet id.
type CreateWalletResult struct {
	WalletID uuid.UUID
}
