package middleware

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"wallet-ledger/internal/core/domain"
	"wallet-ledger/internal/core/ports"
	"wallet-ledger/pkg/response"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// AuditLog creates an audit middleware that logs successful write operations.
// Actions are resolved from the matched route, not the raw path.
func AuditLog(auditSvc ports.AuditService) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		status := c.Writer.Status()
		if status < 200 || status >= 300 {
			return
		}
		// Replays did not run the action again.
		if c.Writer.Header().Get(HeaderIdempotentReplay) != "" {
			return
		}
		switch c.Request.Method {
		case http.MethodGet, http.MethodHead, http.MethodOptions:
			return
		}

		action, resourceType := mapRouteToAction(c.FullPath(), c.Request.Method)
		if action == "" {
			return
		}

		resourceID := c.Param("id")
		if resourceID == "" {
			resourceID = c.GetString(CtxAuditSubject)
		}
		username := c.GetString(CtxUsername)
		if username == "" && (resourceType == "user" || resourceType == "session") {
			username = resourceID
		}

		details, _ := json.Marshal(map[string]interface{}{
			"method":     c.Request.Method,
			"path":       c.Request.URL.Path,
			"status":     status,
			"request_id": c.GetString(response.CtxRequestID),
		})

		auditSvc.Log(c.Request.Context(), &domain.AuditLog{
			ID:           uuid.New(),
			Username:     username,
			Action:       action,
			ResourceType: resourceType,
			ResourceID:   resourceID,
			IPAddress:    c.ClientIP(),
			Details:      string(details),
			CreatedAt:    time.Now().UTC(),
		})
	}
}

// CtxAuditSubject lets handlers name the resource an action created or
// concerns when the route carries no :id.
const CtxAuditSubject = "audit_subject"

func mapRouteToAction(route, method string) (domain.AuditAction, string) {
	route = strings.TrimSuffix(route, "/")
	switch {
	case route == "/api/auth/register" && method == http.MethodPost:
		return domain.AuditActionRegister, "user"
	case route == "/api/auth/login" && method == http.MethodPost:
		return domain.AuditActionLogin, "session"
	case route == "/api/wallets" && method == http.MethodPost:
		return domain.AuditActionWalletCreate, "wallet"
	case route == "/api/wallets/:id" && method == http.MethodPut:
		return domain.AuditActionWalletUpdate, "wallet"
	case route == "/api/wallets/:id" && method == http.MethodDelete:
		return domain.AuditActionWalletDelete, "wallet"
	case route == "/api/wallets/transfer" && method == http.MethodPost:
		return domain.AuditActionTransfer, "transfer"
	}
	return "", ""
}
