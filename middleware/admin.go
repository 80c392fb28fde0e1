package middleware

import (
	"net/http"
	"os"
	"strings"

	"github.com/gin-gonic/gin"
)

// defaultAdminEmails mirrors the resort's staff accounts; override with the
// ADMIN_EMAILS env (comma-separated).
var defaultAdminEmails = []string{
	"admin@bluewaveresort.com",
	"manager@bluewaveresort.com",
	"supervisor@bluewaveresort.com",
}

func adminAllowList() map[string]bool {
	raw := strings.TrimSpace(os.Getenv("ADMIN_EMAILS"))
	emails := defaultAdminEmails
	if raw != "" {
		emails = strings.Split(raw, ",")
	}
	allow := make(map[string]bool, len(emails))
	for _, e := range emails {
		e = strings.ToLower(strings.TrimSpace(e))
		if e != "" {
			allow[e] = true
		}
	}
	return allow
}

// RequireAdmin gates the admin console routes by an email allow-list. The
// identity itself comes from the caller's X-User-Email header — the trust
// boundary is the presentation layer's authentication, not ours.
func RequireAdmin() gin.HandlerFunc {
	allow := adminAllowList()
	return func(c *gin.Context) {
		email := strings.ToLower(strings.TrimSpace(c.GetHeader("X-User-Email")))
		if email == "" || !allow[email] {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
				"success": false,
				"error":   "admin access required",
			})
			return
		}
		c.Next()
	}
}
