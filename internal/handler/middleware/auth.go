package middleware

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"barbershop-booking/internal/handler/httperr"
	"barbershop-booking/internal/usecase"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

var errMissingToken = errors.New("missing bearer token")

type AuthMiddleware struct {
	tokenValidator usecase.TokenValidator
}

const (
	ctxUserIDKey   = "user_id"
	ctxShopIDKey   = "shop_id"
	ctxUserRoleKey = "user_role"
)

func NewAuthMiddleware(tokenValidator usecase.TokenValidator) *AuthMiddleware {
	return &AuthMiddleware{
		tokenValidator: tokenValidator,
	}
}

// RequireStaff guards dashboard routes. Only bearer tokens are accepted.
func (m *AuthMiddleware) RequireStaff() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c)
		if token == "" {
			httperr.AbortWithError(c, http.StatusUnauthorized, errMissingToken, "Access token required", nil)
			return
		}

		identity, err := m.tokenValidator.ValidateToken(token)
		if err != nil {
			slog.Warn("Token validation failed in auth middleware", "error", err.Error())
			httperr.AbortWithError(c, http.StatusUnauthorized, err, "Invalid or expired token", nil)
			return
		}

		SetStaff(c, identity)
		c.Next()
	}
}

// SetStaff stores the identity the way RequireStaff does.
func SetStaff(c *gin.Context, identity *usecase.StaffIdentity) {
	c.Set(ctxUserIDKey, identity.UserID)
	c.Set(ctxShopIDKey, identity.ShopID)
	c.Set(ctxUserRoleKey, identity.Role)
	c.Set("jwt_claims", map[string]any{
		"user_id": identity.UserID.String(),
		"shop_id": identity.ShopID.String(),
		"role":    identity.Role,
	})
}

func bearerToken(c *gin.Context) string {
	authHeader := c.GetHeader("Authorization")
	if authHeader != "" && strings.HasPrefix(authHeader, "Bearer ") {
		return strings.TrimSpace(authHeader[len("Bearer "):])
	}
	return ""
}

func GetUserID(c *gin.Context) (uuid.UUID, bool) {
	return getUUID(c, ctxUserIDKey)
}

func GetShopID(c *gin.Context) (uuid.UUID, bool) {
	return getUUID(c, ctxShopIDKey)
}

func getUUID(c *gin.Context, key string) (uuid.UUID, bool) {
	v, exists := c.Get(key)
	if !exists {
		return uuid.Nil, false
	}

	id, ok := v.(uuid.UUID)
	return id, ok
}
