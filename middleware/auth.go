package middleware

import (
	"context"
	"log"
	"net/http"
	"strings"

	userRepo "quadras/database/repository/user"
	"quadras/models"
	"quadras/utils"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"go.mongodb.org/mongo-driver/bson"
)

// ActorKey is the gin context key holding the authenticated models.Actor.
const ActorKey = "actor"

// Actor pulls the authenticated actor out of the gin context.
func Actor(c *gin.Context) models.Actor {
	if v, ok := c.Get(ActorKey); ok {
		if actor, ok := v.(models.Actor); ok {
			return actor
		}
	}
	return models.Actor{}
}

// JWTAuthMiddleware validates the bearer token, checks its hash against the
// auth cache and falls back to a database lookup on a miss. The resolved
// actor is stored on the context for handlers and role gates.
func JWTAuthMiddleware(users userRepo.UserRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if r := recover(); r != nil {
				c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
					"error": "Internal server error",
					"code":  500,
				})
			}
		}()

		ctx := context.Background()

		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": "Insufficient authorization",
				"code":  0,
			})
			return
		}
		tokenString := strings.TrimPrefix(authHeader, "Bearer ")

		userID, err := utils.ExtractIDFromToken(tokenString)
		if err != nil || userID == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": "Insufficient authorization",
				"code":  0,
			})
			return
		}

		computedHash := utils.HashToken(tokenString)
		cacheKey := utils.AuthCachePrefix + userID

		authCache := utils.GetAuthCacheClient()
		cacheEnabled := authCache != nil
		if !cacheEnabled {
			log.Printf("WARNING: Auth cache client not available. Falling back to DB lookup.")
		}

		cacheValid := false
		if cacheEnabled {
			cachedHash, err := authCache.Get(ctx, cacheKey).Result()
			if err == nil {
				if cachedHash != computedHash {
					c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
						"error": "Token mismatch",
						"code":  0,
					})
					return
				}
				_ = authCache.Expire(ctx, cacheKey, utils.AuthCacheTTL).Err()
				cacheValid = true
			} else if err != redis.Nil {
				log.Printf("WARNING: Error retrieving auth cache key: %v. Falling back to DB lookup.", err)
			}
		}

		// Role and activation always come from the user document.
		usr, err := users.GetByIDWithProjection(userID, bson.M{
			"id": 1, "role": 1, "is_active": 1,
		})
		if err != nil || usr == nil || !usr.IsActive {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": "Authentication error",
				"code":  0,
			})
			return
		}

		if !cacheValid && cacheEnabled {
			_ = authCache.Set(ctx, cacheKey, computedHash, utils.AuthCacheTTL).Err()
		}

		c.Set("userID", userID)
		c.Set(ActorKey, models.Actor{ID: userID, Role: usr.Role})
		c.Next()
	}
}
