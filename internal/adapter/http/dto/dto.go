package dto

// CreateWalletRequest is the request body for wallet creation. user_id is
// range-checked by the wallet service so that a missing or non-positive id
// yields invalid_user_id.
type CreateWalletRequest struct {
	UserID int64 `json:"user_id"`
}

// UpdatePinRequest is the request body for a transfer PIN change.
type UpdatePinRequest struct {
	Pin string `json:"pin"`
}

// StatusResponse is the success payload for wallet writes.
type StatusResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

// CreateWalletResponse is the success payload for wallet creation.
type CreateWalletResponse struct {
	Status   string `json:"status"`
	Message  string `json:"message"`
	WalletID string `json:"wallet_id"`
}

// DependencyStatus reports one dependency in the health check.
type DependencyStatus struct {
	Status string `json:"status"`
	Error  string `json:"error,omitempty"`
}

// HealthResponse is the body of GET /health.
type HealthResponse struct {
	Status       string                      `json:"status"`
	Version      string                      `json:"version"`
	Dependencies map[string]DependencyStatus `json:"dependencies"`
}
