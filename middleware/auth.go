package middleware

import (
	"context"
	"net/http"
	"strings"
	"time"

	userRepo "mendwell/database/repository/user"
	"mendwell/models"
	"mendwell/utils"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"
)

// authCacheTTL bounds how long a token hash stays authoritative in Redis
// before the next request falls through to MongoDB.
const authCacheTTL = time.Hour

// JWTAuthMiddleware authenticates requests by bearer token. The token hash
// is checked against the Redis auth cache first and MongoDB on a miss.
// Banned accounts are rejected even with a valid token.
func JWTAuthMiddleware(users userRepo.UserRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := context.Background()

		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			utils.JSONError(c, http.StatusUnauthorized, "Missing or invalid Authorization header", "")
			c.Abort()
			return
		}
		tokenString := strings.TrimPrefix(authHeader, "Bearer ")

		token, err := utils.ValidateToken(tokenString)
		if err != nil || !token.Valid {
			utils.JSONError(c, http.StatusUnauthorized, "Invalid token", "")
			c.Abort()
			return
		}
		tokenUserID, err := utils.ExtractIDFromToken(tokenString)
		if err != nil {
			utils.JSONError(c, http.StatusUnauthorized, "Invalid token", "")
			c.Abort()
			return
		}

		computedHash := utils.HashToken(tokenString)
		cacheKey := utils.AuthCachePrefix + computedHash
		authCache := utils.GetAuthCacheClient()

		// Fast path: the hash-to-id mapping is cached.
		cachedID, err := authCache.Get(ctx, cacheKey).Result()
		if err == nil {
			if cachedID != tokenUserID {
				utils.JSONError(c, http.StatusUnauthorized, "Token mismatch", "")
				c.Abort()
				return
			}
			_ = authCache.Expire(ctx, cacheKey, authCacheTTL).Err()
			c.Set("userID", tokenUserID)
			c.Next()
			return
		}
		if err != redis.Nil {
			utils.GetLogger().Warn("auth cache read failed, falling back to DB", zap.Error(err))
		}

		// Cache miss: the persisted token hash is the source of truth.
		usr, err := users.GetByTokenHash(computedHash)
		if err != nil {
			utils.GetLogger().Error("auth DB lookup failed", zap.Error(err))
			utils.JSONError(c, http.StatusUnauthorized, "Authentication error", "")
			c.Abort()
			return
		}
		if usr == nil || usr.ID != tokenUserID {
			utils.JSONError(c, http.StatusUnauthorized, "Token mismatch", "")
			c.Abort()
			return
		}
		if usr.Status == models.StatusBanned {
			utils.JSONError(c, http.StatusForbidden, "This account has been suspended", "")
			c.Abort()
			return
		}

		if err := authCache.Set(ctx, cacheKey, usr.ID, authCacheTTL).Err(); err != nil {
			utils.GetLogger().Warn("auth cache write failed", zap.Error(err))
		}

		c.Set("userID", usr.ID)
		c.Next()
	}
}

// BanCheckMiddleware re-reads the account status on sensitive routes so a
// ban takes effect even while the auth cache entry is still warm.
func BanCheckMiddleware(users userRepo.UserRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetString("userID")
		if userID == "" {
			c.Next()
			return
		}
		usr, err := users.GetByIDWithProjection(userID, bson.M{"status": 1})
		if err == nil && usr != nil && usr.Status == models.StatusBanned {
			utils.JSONError(c, http.StatusForbidden, "This account has been suspended", "")
			c.Abort()
			return
		}
		c.Next()
	}
}
