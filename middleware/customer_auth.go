package middleware

import (
	"context"
	"net/http"
	"strings"
	"time"

	"cleanhaven/utils"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
)

// CustomerAuthMiddleware guards the customer dashboard routes. It
// validates the bearer token, then checks the token hash cached at
// sign-in. A cache miss or unavailable cache falls back to trusting the
// signed token alone.
func CustomerAuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := context.Background()

		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Insufficient authorization"})
			return
		}
		tokenString := strings.TrimPrefix(authHeader, "Bearer ")

		customerID, err := utils.ExtractIDFromToken(tokenString)
		if err != nil || customerID == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Insufficient authorization"})
			return
		}

		computedHash := utils.HashToken(tokenString)
		cacheKey := "auth:" + customerID

		authCache := utils.GetAuthCacheClient()
		if authCache != nil {
			cachedHash, err := authCache.Get(ctx, cacheKey).Result()
			if err == nil {
				if cachedHash != computedHash {
					c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Token mismatch"})
					return
				}
				// Sliding expiry: an active session stays signed in.
				_ = authCache.Expire(ctx, cacheKey, time.Hour).Err()
			} else if err == redis.Nil {
				_ = authCache.Set(ctx, cacheKey, computedHash, time.Hour).Err()
			}
		}

		c.Set("customerID", customerID)
		c.Next()
	}
}
