package middleware

import (
	"strings"

	"go-interview-booking/internal/domain"
	"go-interview-booking/pkg/apperror"
	"go-interview-booking/pkg/auth"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const tokenCookie = "token"

// AuthMiddleware verifies the bearer token, syncs the local user and stores
// the resulting Principal on the context
func AuthMiddleware(verifier *auth.Verifier, authUC domain.AuthUsecase, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := bearerToken(c)
		if tokenString == "" {
			abortUnauthorized(c)
			return
		}

		claims, err := verifier.Parse(tokenString)
		if err != nil {
			logger.Debug("token rejected", zap.Error(err), zap.String("request_id", c.GetString(KeyRequestID)))
			abortUnauthorized(c)
			return
		}
		if claims.Role != "" && !domain.ValidRole(claims.Role) {
			logger.Debug("token role rejected", zap.String("role", claims.Role), zap.String("request_id", c.GetString(KeyRequestID)))
			abortUnauthorized(c)
			return
		}

		user, err := authUC.EnsureUserExists(c.Request.Context(), &domain.User{
			ID:    claims.Subject,
			Email: claims.Email,
			Name:  claims.Name,
			Role:  claims.Role,
		})
		if err != nil {
			c.Error(err)
			c.Abort()
			return
		}

		c.Set(string(domain.KeyPrincipal), domain.Principal{ID: user.ID, Email: user.Email, Role: user.Role})
		c.Next()
	}
}

// PrincipalFrom returns the caller set by AuthMiddleware, or the zero Principal
func PrincipalFrom(c *gin.Context) domain.Principal {
	v, ok := c.Get(string(domain.KeyPrincipal))
	if !ok {
		return domain.Principal{}
	}
	p, _ := v.(domain.Principal)
	return p
}

// bearerToken reads the Authorization header first and the token cookie second
func bearerToken(c *gin.Context) string {
	if header := c.GetHeader("Authorization"); strings.HasPrefix(header, "Bearer ") {
		return strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))
	}
	if cookie, err := c.Cookie(tokenCookie); err == nil {
		return cookie
	}
	return ""
}

func abortUnauthorized(c *gin.Context) {
	c.Error(apperror.Unauthorized("Not authorized to access this route"))
	c.Abort()
}
