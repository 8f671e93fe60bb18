package handler

import (
	"net/http"

	"wallet-service/internal/adapter/http/dto"
	"wallet-service/internal/adapter/http/middleware"
	"wallet-service/internal/core/ports"
	"wallet-service/pkg/apperror"
	"wallet-service/pkg/response"

	"github.com/gin-gonic/gin"
)

const statusSuccess = "success"

// WalletHandler handles wallet-related endpoints.
type WalletHandler struct {
	walletSvc ports.WalletService
}

// NewWalletHandler creates a new WalletHandler.
func NewWalletHandler(walletSvc ports.WalletService) *WalletHandler {
	return &WalletHandler{walletSvc: walletSvc}
}

// GetWallet handles GET /wallet/.
func (h *WalletHandler) GetWallet(c *gin.Context) {
	c.String(http.StatusOK, "Get wallet")
}

// CreateWallet handles POST /wallet/create.
func (h *WalletHandler) CreateWallet(c *gin.Context) {
	var req dto.CreateWalletRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Validation("Invalid request body"))
		return
	}

	result, err := h.walletSvc.CreateWallet(c.Request.Context(), ports.CreateWalletRequest{
		UserID: req.UserID,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	c.Set(middleware.CtxAuditUserID, req.UserID)
	c.Set(middleware.CtxResourceID, result.WalletID.String())

	response.OK(c, dto.CreateWalletResponse{
		Status:   statusSuccess,
		Message:  "Wallet created successfully",
		WalletID: result.WalletID.String(),
	})
}

// UpdatePin handles PUT /action/pin/update for the authenticated caller.
func (h *WalletHandler) UpdatePin(c *gin.Context) {
	identity, ok := middleware.IdentityFrom(c)
	if !ok {
		response.Error(c, apperror.ErrAuthenticationRequired())
		return
	}

	var req dto.UpdatePinRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Validation("Invalid request body"))
		return
	}

	if err := h.walletSvc.UpdateTransferPin(c.Request.Context(), identity.SubjectID, req.Pin); err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, dto.StatusResponse{
		Status:  statusSuccess,
		Message: "Transfer PIN updated successfully",
	})
}

// Deposit handles POST /action/deposit. Not implemented yet.
func (h *WalletHandler) Deposit(c *gin.Context) {
	c.String(http.StatusOK, "Wallet Deposit")
}

// Withdraw handles PUT /action/withdraw. Not implemented yet.
func (h *WalletHandler) Withdraw(c *gin.Context) {
	c.String(http.StatusOK, "Wallet Withdraw")
}
