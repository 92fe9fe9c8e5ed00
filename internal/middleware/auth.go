package middleware

import (
	"errors"
	"net/http"
	"strings"

	apperrors "wellness-events/pkg/app_errors"
	"wellness-events/pkg/logger"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"
)

const (
	AdminSubjectKey = "admin_sub"
	AdminEmailKey   = "admin_email"
)

// Claims is the subset of the auth provider's access token we rely on.
type Claims struct {
	Email string `json:"email"`
	Role  string `json:"role"`
	jwt.RegisteredClaims
}

// ParseToken verifies an HS256 token signed with secret.
func ParseToken(raw, secret string) (*Claims, error) {
	tok, err := jwt.ParseWithClaims(raw, &Claims{}, func(t *jwt.Token) (any, error) {
		// block alg confusion
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, apperrors.ErrUnauthorized
		}
		return []byte(secret), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return nil, err
	}
	c, ok := tok.Claims.(*Claims)
	if !ok || !tok.Valid {
		return nil, apperrors.ErrUnauthorized
	}
	return c, nil
}

// RequireAdmin gates a route group behind a bearer token issued by the hosted
// auth provider. When admins is non-empty the token's email must be listed.
func RequireAdmin(secret string, admins []string) gin.HandlerFunc {
	allowed := make(map[string]struct{}, len(admins))
	for _, a := range admins {
		allowed[strings.ToLower(a)] = struct{}{}
	}
	log := logger.WithComponent("auth")

	return func(c *gin.Context) {
		if secret == "" {
			log.Error("admin route hit without AUTH_JWT_SECRET configured")
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authentication is not configured"})
			return
		}

		header := c.GetHeader("Authorization")
		parts := strings.SplitN(header, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || parts[1] == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Missing or malformed Authorization header"})
			return
		}

		claims, err := ParseToken(parts[1], secret)
		if err != nil {
			log.Warn("rejected token", zap.Error(err))
			msg := "Invalid token"
			if errors.Is(err, jwt.ErrTokenExpired) {
				msg = "Token expired"
			}
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": msg})
			return
		}

		if len(allowed) > 0 {
			if _, ok := allowed[strings.ToLower(claims.Email)]; !ok {
				log.Warn("non-admin token", zap.String("sub", claims.Subject))
				c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Admin access required"})
				return
			}
		}

		c.Set(AdminSubjectKey, claims.Subject)
		c.Set(AdminEmailKey, claims.Email)
		c.Next()
	}
}
