package user

import (
	"context"
	"fmt"
	"time"

	"mendwell/models"
	"mendwell/utils"

	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"
)

// BanUser marks the account as banned and force-closes its session. The
// cached role is invalidated so middleware stops honoring it immediately.
func (s *DefaultUserService) BanUser(userID string) error {
	userRec, err := s.Repo.GetByID(userID)
	if err != nil {
		return fmt.Errorf("failed to fetch user: %w", err)
	}
	if userRec == nil {
		return fmt.Errorf("user with id %s not found", userID)
	}

	update := bson.M{"$set": bson.M{
		"status":     models.StatusBanned,
		"updated_at": time.Now(),
	}}
	if err := s.Repo.UpdateWithDocument(userID, update); err != nil {
		return fmt.Errorf("failed to ban user: %w", err)
	}

	if err := s.clearSession(userRec); err != nil {
		utils.GetLogger().Warn("BanUser: failed to clear session", zap.String("userID", userID), zap.Error(err))
	}
	if s.Roles != nil {
		s.Roles.Invalidate(context.Background(), userID)
	}
	return nil
}

// UnbanUser reactivates a banned account. The user has to sign in again.
func (s *DefaultUserService) UnbanUser(userID string) error {
	update := bson.M{"$set": bson.M{
		"status":     models.StatusActive,
		"updated_at": time.Now(),
	}}
	if err := s.Repo.UpdateWithDocument(userID, update); err != nil {
		return fmt.Errorf("failed to unban user: %w", err)
	}
	return nil
}
