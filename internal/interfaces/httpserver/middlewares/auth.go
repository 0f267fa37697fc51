package middlewares

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"visioneer-server/internal/domain"
	"visioneer-server/internal/domain/user"
	authvalidator "visioneer-server/internal/infrastructure/auth"
	"visioneer-server/internal/interfaces/httpserver/responses"
)

const principalContextKey = "principal"

// AuthMiddleware validates bearer tokens against the configured OIDC
// provider and resolves the caller to an internal user record. The
// resolved principal carries both the external subject and the internal
// numeric user id that repositories key on.
func AuthMiddleware(validator *authvalidator.OIDCValidator, users *user.Service, logger zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		principal, hasToken, jwtErr := principalFromJWT(c, validator)
		if jwtErr != nil && !errors.Is(jwtErr, http.ErrNoCookie) {
			logger.Warn().Err(jwtErr).Str("path", c.FullPath()).Msg("jwt validation failed")
			responses.HandleErrorWithStatus(c, http.StatusUnauthorized, jwtErr, "unauthorized")
			return
		}
		if !hasToken {
			logger.Warn().
				Str("path", c.FullPath()).
				Str("method", c.Request.Method).
				Msg("unauthenticated request")
			responses.HandleErrorWithStatus(c, http.StatusUnauthorized, errors.New("authentication required"), "unauthorized")
			return
		}

		record, err := users.EnsureUser(c.Request.Context(), user.Identity{
			Issuer:   principal.Issuer,
			Subject:  principal.Subject,
			Username: optional(principal.Username),
			Email:    optional(principal.Email),
			Name:     optional(principal.Name),
		})
		if err != nil {
			logger.Error().Err(err).Str("subject", principal.Subject).Msg("user resolution failed")
			responses.HandleErrorWithStatus(c, http.StatusUnauthorized, err, "user resolution failed")
			return
		}
		principal.UserID = record.ID

		setPrincipal(c, principal)
		c.Next()
	}
}

// PrincipalFromContext returns the authenticated principal, if any.
func PrincipalFromContext(c *gin.Context) (domain.Principal, bool) {
	val, ok := c.Get(principalContextKey)
	if !ok {
		return domain.Principal{}, false
	}
	principal, ok := val.(domain.Principal)
	return principal, ok
}

func setPrincipal(c *gin.Context, principal domain.Principal) {
	c.Set(principalContextKey, principal)
	c.Set("user_id", principal.UserID)
	if principal.Subject != "" {
		c.Writer.Header().Set("X-User-Subject", principal.Subject)
	}
}

func principalFromJWT(c *gin.Context, validator *authvalidator.OIDCValidator) (domain.Principal, bool, error) {
	if validator == nil {
		return domain.Principal{}, false, http.ErrNoCookie
	}

	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		return domain.Principal{}, false, http.ErrNoCookie
	}
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return domain.Principal{}, false, http.ErrNoCookie
	}
	token := strings.TrimSpace(parts[1])
	if token == "" {
		return domain.Principal{}, false, http.ErrNoCookie
	}

	claims, err := validator.Validate(c.Request.Context(), token)
	if err != nil {
		return domain.Principal{}, false, err
	}

	return domain.Principal{
		ID:       claims.Subject,
		Subject:  claims.Subject,
		Issuer:   claims.Issuer,
		Username: claims.PreferredUsername,
		Email:    claims.Email,
		Name:     claims.Name,
		Scopes:   claims.Scopes,
	}, true, nil
}

func optional(value string) *string {
	if value == "" {
		return nil
	}
	return &value
}
