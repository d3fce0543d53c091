// README: Caller identification; a client-supplied id or the remote IP keys the usage quota.
package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
)

const (
	ClientIDHeader = "X-Client-ID"
	clientIDKey    = "client_id"
	maxClientIDLen = 64
)

// ClientID resolves the caller id. There are no accounts, so a well-formed X-Client-ID header
// wins and everything else falls back to the remote IP.
func ClientID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := strings.TrimSpace(c.GetHeader(ClientIDHeader))
		if !validClientID(id) {
			id = "ip:" + c.ClientIP()
		}
		c.Set(clientIDKey, id)
		c.Next()
	}
}

// CallerID returns the id set by ClientID, or "" when the middleware did not run.
func CallerID(c *gin.Context) string {
	return c.GetString(clientIDKey)
}

func validClientID(v string) bool {
	if v == "" || len(v) > maxClientIDLen {
		return false
	}
	for _, c := range v {
		if (c >= '0' && c <= '9') || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || c == '-' || c == '_' {
			continue
		}
		return false
	}
	return true
}
