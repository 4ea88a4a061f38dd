package api

import (
	"crypto/subtle"
	"log"
	"net/http"
	"os"
	"strings"

	"github.com/gin-gonic/gin"
)

// ──────────────────────────────────────────────────────────────────
// Bearer Token Authentication Middleware
//
// Reads AUDIT_ADMIN_TOKEN / JURISDICTION_ADMIN_TOKEN from the
// environment. If a role's token is set, its routes require:
// Authorization: Bearer <token>. OAuth-based admin login itself stays
// out of scope (external collaborator, per spec §1) — this middleware
// only distinguishes the two static roles the boundary needs.
// ──────────────────────────────────────────────────────────────────

const roleContextKey = "audit_role"

const (
	RoleAuditAdmin        = "audit-admin"
	RoleJurisdictionAdmin = "jurisdiction-admin"
)

// RequireRole returns a Gin middleware that validates a bearer token
// against the given role's configured token. If that role's token is
// not configured, all requests are allowed (dev mode).
func RequireRole(role string) gin.HandlerFunc {
	token := roleToken(role)

	if token == "" && os.Getenv("GIN_MODE") == "release" {
		log.Printf("[SECURITY WARNING] no token configured for role %q in release mode. "+
			"All %q endpoints are publicly accessible.", role, role)
	}

	return func(c *gin.Context) {
		if token == "" {
			c.Set(roleContextKey, role)
			c.Next()
			return
		}

		header := c.GetHeader("Authorization")
		if header == "" {
			c.JSON(http.StatusUnauthorized, gin.H{
				"errors": []gin.H{{"message": "missing Authorization header", "errorType": "Unauthorized"}},
			})
			c.Abort()
			return
		}

		parts := strings.SplitN(header, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" {
			c.JSON(http.StatusForbidden, gin.H{
				"errors": []gin.H{{"message": "invalid Authorization header format", "errorType": "Forbidden"}},
			})
			c.Abort()
			return
		}

		if subtle.ConstantTimeCompare([]byte(parts[1]), []byte(token)) != 1 {
			c.JSON(http.StatusForbidden, gin.H{
				"errors": []gin.H{{"message": "invalid or expired token", "errorType": "Forbidden"}},
			})
			c.Abort()
			return
		}

		c.Set(roleContextKey, role)
		c.Next()
	}
}

func roleToken(role string) string {
	switch role {
	case RoleAuditAdmin:
		return os.Getenv("AUDIT_ADMIN_TOKEN")
	case RoleJurisdictionAdmin:
		return os.Getenv("JURISDICTION_ADMIN_TOKEN")
	default:
		return ""
	}
}
