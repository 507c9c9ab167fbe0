package middleware

import (
	"errors"
	"strings"

	"github.com/edustack/edustack-backend/internal/common"
	"github.com/edustack/edustack-backend/internal/domain"
	"github.com/edustack/edustack-backend/pkg/jwt"
	"github.com/gin-gonic/gin"
)

const actorKey = "actor"

// JWTAuth JWT authentication middleware. Verified claims become the
// request's Actor; requests without a valid token are rejected.
func JWTAuth(jwtManager *jwt.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		actor, err := actorFromHeader(c, jwtManager)
		if err != nil {
			if errors.Is(err, jwt.ErrExpiredToken) {
				common.ErrorResponse(c, 401, "Token expired", err)
			} else {
				common.ErrorResponse(c, 401, "Invalid or missing token", err)
			}
			c.Abort()
			return
		}

		c.Set(actorKey, actor)
		c.Next()
	}
}

// OptionalJWTAuth resolves the Actor when a valid token is present and
// falls back to the anonymous actor otherwise. Read endpoints use this
// so published content stays reachable without credentials.
func OptionalJWTAuth(jwtManager *jwt.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		actor, err := actorFromHeader(c, jwtManager)
		if err != nil {
			actor = domain.Anonymous()
		}
		c.Set(actorKey, actor)
		c.Next()
	}
}

func actorFromHeader(c *gin.Context, jwtManager *jwt.Manager) (domain.Actor, error) {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		return domain.Anonymous(), jwt.ErrInvalidToken
	}

	parts := strings.Split(authHeader, " ")
	if len(parts) != 2 || parts[0] != "Bearer" {
		return domain.Anonymous(), jwt.ErrInvalidToken
	}

	claims, err := jwtManager.VerifyToken(parts[1])
	if err != nil {
		return domain.Anonymous(), err
	}

	return domain.Actor{
		UserID:   claims.UserID,
		Nickname: claims.Nickname,
		Level:    domain.Role(claims.Level),
	}, nil
}

// GetActor extracts the request actor from context. Returns the
// anonymous actor when no auth middleware ran.
func GetActor(c *gin.Context) domain.Actor {
	v, exists := c.Get(actorKey)
	if !exists {
		return domain.Anonymous()
	}
	if actor, ok := v.(domain.Actor); ok {
		return actor
	}
	return domain.Anonymous()
}
