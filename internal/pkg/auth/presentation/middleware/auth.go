package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/trang-ptt/INSTARE-BE/internal/pkg/auth/application/token"
	user "github.com/trang-ptt/INSTARE-BE/internal/pkg/user/application/domain"
	userrepo "github.com/trang-ptt/INSTARE-BE/internal/pkg/user/persistence/repository/port"
)

const userContextKey = "currentUser"

// BearerToken extracts the bearer credential from the Authorization header,
// falling back to the "token" query parameter for websocket clients that
// cannot set headers.
func BearerToken(r *http.Request) string {
	header := r.Header.Get("Authorization")
	if parts := strings.SplitN(header, " ", 2); len(parts) == 2 && strings.EqualFold(parts[0], "Bearer") {
		return strings.TrimSpace(parts[1])
	}
	return r.URL.Query().Get("token")
}

// Authenticate verifies the bearer token and loads the account into the
// request context. Requests without a valid credential are rejected with 401.
func Authenticate(tokens *token.Service, users userrepo.UserRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		raw := BearerToken(c.Request)
		if raw == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing bearer token"})
			return
		}
		claims, err := tokens.Verify(raw)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			return
		}
		u, err := users.FindByID(c.Request.Context(), claims.UserID)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
			return
		}
		if u == nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unknown user"})
			return
		}
		c.Set(userContextKey, u)
		c.Next()
	}
}

// CurrentUser returns the authenticated account loaded by Authenticate.
func CurrentUser(c *gin.Context) *user.User {
	v, ok := c.Get(userContextKey)
	if !ok {
		return nil
	}
	u, _ := v.(*user.User)
	return u
}
