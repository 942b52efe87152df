package user

import (
	"context"
	"fmt"
	"strings"

	"mendwell/models"
	"mendwell/utils"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// Authenticate verifies email/password credentials and opens a session.
func (s *DefaultUserService) Authenticate(email, password string) (*AuthResponse, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	userRec, err := s.Repo.GetByEmail(email)
	if err != nil {
		utils.GetLogger().Error("Authenticate: failed to fetch user", zap.Error(err))
		return nil, fmt.Errorf("authentication failed, please try again")
	}
	if userRec == nil || userRec.PasswordHash == "" {
		return nil, InvalidCredentialsError{}
	}
	if userRec.Status == models.StatusBanned {
		return nil, AccountBannedError{UserID: userRec.ID}
	}

	if err := bcrypt.CompareHashAndPassword([]byte(userRec.PasswordHash), []byte(password)); err != nil {
		return nil, InvalidCredentialsError{}
	}

	return s.issueSession(userRec, false)
}

// SignOut closes the user's session and drops their cached role, so the next
// request resolves the role from scratch.
func (s *DefaultUserService) SignOut(userID string) error {
	userRec, err := s.Repo.GetByID(userID)
	if err != nil {
		return fmt.Errorf("sign-out failed: %w", err)
	}
	if userRec == nil {
		return fmt.Errorf("user with id %s not found", userID)
	}

	if err := s.clearSession(userRec); err != nil {
		return fmt.Errorf("sign-out failed: %w", err)
	}
	if s.Roles != nil {
		s.Roles.Invalidate(context.Background(), userID)
	}
	return nil
}

// UpdatePassword rotates the password after verifying the current one. The
// open session survives the rotation.
func (s *DefaultUserService) UpdatePassword(userID, currentPassword, newPassword string) error {
	userRec, err := s.Repo.GetByID(userID)
	if err != nil {
		utils.GetLogger().Error("UpdatePassword: failed to fetch user", zap.Error(err))
		return fmt.Errorf("password update failed, please try again")
	}
	if userRec == nil {
		return fmt.Errorf("user with id %s not found", userID)
	}
	if userRec.PasswordHash == "" {
		return fmt.Errorf("this account signs in with %s and has no password", userRec.AuthProvider)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(userRec.PasswordHash), []byte(currentPassword)); err != nil {
		return InvalidCredentialsError{}
	}
	if err := VerifyPasswordComplexity(newPassword); err != nil {
		return err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		utils.GetLogger().Error("UpdatePassword: failed to hash password", zap.Error(err))
		return fmt.Errorf("password update failed, please try again")
	}

	userRec.PasswordHash = string(hashed)
	if err := s.Repo.Update(userRec); err != nil {
		utils.GetLogger().Error("UpdatePassword: failed to persist password", zap.Error(err))
		return fmt.Errorf("password update failed, please try again")
	}
	return nil
}
