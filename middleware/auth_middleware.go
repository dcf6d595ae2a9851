package middleware

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/storefront-api/dto"
	"github.com/storefront-api/models"
	"github.com/storefront-api/services"
)

// Context keys set by AuthMiddleware
const (
	UserIDKey = "userId"
	RoleKey   = "role"
)

// Authenticator resolves a bearer token to the acting user
type Authenticator interface {
	Authenticate(ctx context.Context, token string) (services.Actor, error)
}

// AuthMiddleware attaches the caller's identity when the request carries a
// valid bearer token. Requests without one, or with a rejected token,
// continue anonymously; AccessRules decides whether that is allowed. Other
// lookup failures end the request with a 500.
func AuthMiddleware(auth Authenticator) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c.GetHeader("Authorization"))
		if token == "" {
			c.Next()
			return
		}

		actor, err := auth.Authenticate(c.Request.Context(), token)
		switch {
		case err == nil:
			c.Set(UserIDKey, actor.UserID)
			c.Set(RoleKey, actor.Role)
		case !errors.Is(err, services.ErrUnauthenticated):
			slog.ErrorContext(c.Request.Context(), "authentication failed",
				slog.String("path", c.Request.URL.Path),
				slog.String("error", err.Error()),
			)
			c.AbortWithStatusJSON(http.StatusInternalServerError,
				dto.NewErrorResponse(http.StatusInternalServerError, "internal server error"))
			return
		}
		c.Next()
	}
}

// CurrentActor returns the identity set by AuthMiddleware
func CurrentActor(c *gin.Context) (services.Actor, bool) {
	userID, ok := c.Get(UserIDKey)
	if !ok {
		return services.Actor{}, false
	}
	role, _ := c.Get(RoleKey)

	id, _ := userID.(uint)
	r, _ := role.(models.Role)
	return services.Actor{UserID: id, Role: r}, true
}

func bearerToken(header string) string {
	scheme, token, ok := strings.Cut(strings.TrimSpace(header), " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return ""
	}
	return strings.TrimSpace(token)
}
