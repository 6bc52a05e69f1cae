package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/campusflow/enroll/internal/app/models"
	"github.com/campusflow/enroll/internal/app/models/dto"
	"github.com/campusflow/enroll/internal/app/repositories"
	"github.com/campusflow/enroll/internal/pkg/apperrors"
	"github.com/campusflow/enroll/internal/pkg/auth"
	"github.com/campusflow/enroll/internal/pkg/session"
)

// ContextUserKey is the gin context key holding the authenticated user
const ContextUserKey = "authUser"

// AuthMiddleware resolves the caller's identity and enforces roles
type AuthMiddleware struct {
	store      repositories.Store
	sessions   *session.Manager
	jwtService *auth.JWTService
}

// NewAuthMiddleware creates a new AuthMiddleware
func NewAuthMiddleware(store repositories.Store, sessions *session.Manager, jwtService *auth.JWTService) *AuthMiddleware {
	return &AuthMiddleware{
		store:      store,
		sessions:   sessions,
		jwtService: jwtService,
	}
}

// Identity authenticates the request from the session cookie first, then
// from a bearer token. The user record is re-fetched on every request so
// role or account changes take effect immediately.
func (m *AuthMiddleware) Identity() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, err := m.resolveUserID(c)
		if err != nil {
			abortUnauthorized(c, err)
			return
		}

		user, err := m.store.GetUserByID(c.Request.Context(), userID)
		if err != nil {
			// A valid credential for a deleted account is still a 401.
			abortUnauthorized(c, apperrors.ErrAuthRequired)
			return
		}

		c.Set(ContextUserKey, user)
		c.Next()
	}
}

// RequireRoles allows only the given roles past. Must run after Identity.
func (m *AuthMiddleware) RequireRoles(roles ...models.RoleType) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := CurrentUser(c)
		if !ok {
			abortUnauthorized(c, apperrors.ErrAuthRequired)
			return
		}
		for _, role := range roles {
			if user.RoleType == role {
				c.Next()
				return
			}
		}

		errorDetail := dto.NewErrorDetail(dto.ErrorCodeForbidden, "Access denied")
		errorDetail = errorDetail.WithDetails("You don't have sufficient permissions for this operation")
		c.AbortWithStatusJSON(http.StatusForbidden, dto.NewErrorResponse(errorDetail))
	}
}

// CurrentUser returns the authenticated user set by Identity
func CurrentUser(c *gin.Context) (*models.User, bool) {
	value, exists := c.Get(ContextUserKey)
	if !exists {
		return nil, false
	}
	user, ok := value.(*models.User)
	return user, ok
}

func (m *AuthMiddleware) resolveUserID(c *gin.Context) (int64, error) {
	userID, err := m.sessions.Resolve(c)
	if err == nil {
		return userID, nil
	}

	// No usable session, fall through to the bearer token.
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		return 0, apperrors.ErrAuthRequired
	}
	tokenString, err := auth.ExtractBearerToken(authHeader)
	if err != nil {
		return 0, apperrors.ErrTokenInvalid
	}
	claims, err := m.jwtService.ValidateToken(tokenString)
	if err != nil {
		return 0, err
	}
	return claims.UserID, nil
}

func abortUnauthorized(c *gin.Context, err error) {
	errorCode := dto.ErrorCodeUnauthorized
	message := "Authentication required"

	switch {
	case errors.Is(err, auth.ErrExpiredToken) || errors.Is(err, apperrors.ErrTokenExpired):
		errorCode = dto.ErrorCodeExpiredToken
		message = "Token has expired"
	case errors.Is(err, auth.ErrInvalidToken) || errors.Is(err, apperrors.ErrTokenInvalid):
		errorCode = dto.ErrorCodeInvalidToken
		message = "Invalid token"
	}

	c.AbortWithStatusJSON(http.StatusUnauthorized, dto.NewErrorResponse(dto.NewErrorDetail(errorCode, message)))
}
