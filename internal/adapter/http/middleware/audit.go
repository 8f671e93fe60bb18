package middleware

import (
	"encoding/json"
	"net/http"
	"time"

	"wallet-service/internal/core/domain"
	"wallet-service/internal/core/ports"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// AuditLog creates an audit middleware that logs successful write operations.
// It maps HTTP methods and paths to audit actions.
func AuditLog(auditSvc ports.AuditService) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		// Only audit successful write operations (status 2xx)
		if c.Writer.Status() < 200 || c.Writer.Status() >= 300 {
			return
		}

		action, resourceType := mapPathToAction(c.FullPath(), c.Request.Method)
		if action == "" {
			return
		}

		details, _ := json.Marshal(map[string]any{
			"method":     c.Request.Method,
			"path":       c.Request.URL.Path,
			"status":     c.Writer.Status(),
			"request_id": c.GetString(CtxRequestID),
		})

		auditSvc.Log(c.Request.Context(), &domain.AuditLog{
			ID:           uuid.New(),
			UserID:       auditUserID(c),
			Action:       action,
			ResourceType: resourceType,
			ResourceID:   c.GetString(CtxResourceID),
			IPAddress:    c.ClientIP(),
			Details:      string(details),
			CreatedAt:    time.Now().UTC(),
		})
	}
}

// auditUserID prefers the authenticated subject, then a user id the
// handler recorded for public routes.
func auditUserID(c *gin.Context) *int64 {
	if identity, ok := IdentityFrom(c); ok {
		id := identity.SubjectID
		return &id
	}
	if v, exists := c.Get(CtxAuditUserID); exists {
		if id, ok := v.(int64); ok {
			return &id
		}
	}
	return nil
}

func mapPathToAction(route, method string) (domain.AuditAction, string) {
	switch {
	case route == "/wallet/create" && method == http.MethodPost:
		return domain.AuditActionCreateWallet, "wallet"
	case route == "/action/pin/update" && method == http.MethodPut:
		return domain.AuditActionUpdatePin, "wallet"
	case route == "/action/deposit" && method == http.MethodPost:
		return domain.AuditActionDeposit, "wallet"
	case route == "/action/withdraw" && method == http.MethodPut:
		return domain.AuditActionWithdraw, "wallet"
	}
	return "", ""
}
