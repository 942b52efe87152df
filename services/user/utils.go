package user

import (
	"context"
	"fmt"
	"regexp"
	"time"

	"mendwell/models"
	"mendwell/utils"

	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"
)

var emailRegexp = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

// VerifyPasswordComplexity checks that the password meets complexity requirements.
func VerifyPasswordComplexity(pw string) error {
	var (
		hasMinLen = len(pw) >= 8
		hasUpper  = regexp.MustCompile(`[A-Z]`).MatchString(pw)
		hasLower  = regexp.MustCompile(`[a-z]`).MatchString(pw)
		hasNumber = regexp.MustCompile(`[0-9]`).MatchString(pw)
		hasSymbol = regexp.MustCompile(`[\W_]`).MatchString(pw)
	)
	if !hasMinLen {
		return fmt.Errorf("password must be at least 8 characters long")
	}
	if !hasUpper {
		return fmt.Errorf("password must include at least one uppercase letter")
	}
	if !hasLower {
		return fmt.Errorf("password must include at least one lowercase letter")
	}
	if !hasNumber {
		return fmt.Errorf("password must include at least one number")
	}
	if !hasSymbol {
		return fmt.Errorf("password must include at least one symbol")
	}
	return nil
}

// issueSession generates a fresh JWT for the user, persists its hash, and
// caches the hash-to-id mapping so the auth middleware can skip MongoDB on
// the hot path. Any previous session for the user is evicted first.
func (s *DefaultUserService) issueSession(userRec *models.User, firstSignup bool) (*AuthResponse, error) {
	ctx := context.Background()
	sessionClient := utils.GetAuthCacheClient()

	if userRec.TokenHash != "" {
		if err := sessionClient.Del(ctx, utils.AuthCachePrefix+userRec.TokenHash).Err(); err != nil {
			utils.GetLogger().Warn("failed to evict previous session", zap.String("userID", userRec.ID), zap.Error(err))
		}
	}

	token, err := utils.GenerateToken(userRec.ID, userRec.Email, tokenTTL)
	if err != nil {
		utils.GetLogger().Error("failed to generate token", zap.String("userID", userRec.ID), zap.Error(err))
		return nil, fmt.Errorf("authentication failed, please try again")
	}
	tokenHash := utils.HashToken(token)

	update := bson.M{"$set": bson.M{
		"token_hash": tokenHash,
		"updated_at": time.Now(),
	}}
	if err := s.Repo.UpdateWithDocument(userRec.ID, update); err != nil {
		utils.GetLogger().Error("failed to persist token hash", zap.String("userID", userRec.ID), zap.Error(err))
		return nil, fmt.Errorf("authentication failed, please try again")
	}

	if err := sessionClient.Set(ctx, utils.AuthCachePrefix+tokenHash, userRec.ID, tokenTTL).Err(); err != nil {
		utils.GetLogger().Warn("failed to cache session", zap.String("userID", userRec.ID), zap.Error(err))
	}

	return &AuthResponse{
		ID:           userRec.ID,
		Token:        token,
		Email:        userRec.Email,
		Nickname:     userRec.Nickname,
		ProfileImage: userRec.ProfileImage,
		UserType:     userRec.UserType,
		FirstSignup:  firstSignup,
	}, nil
}

// clearSession drops the user's persisted token hash and its cache entry.
func (s *DefaultUserService) clearSession(userRec *models.User) error {
	ctx := context.Background()
	if userRec.TokenHash != "" {
		if err := utils.GetAuthCacheClient().Del(ctx, utils.AuthCachePrefix+userRec.TokenHash).Err(); err != nil {
			utils.GetLogger().Warn("failed to evict session cache entry", zap.String("userID", userRec.ID), zap.Error(err))
		}
	}
	update := bson.M{
		"$unset": bson.M{"token_hash": ""},
		"$set":   bson.M{"updated_at": time.Now()},
	}
	return s.Repo.UpdateWithDocument(userRec.ID, update)
}
