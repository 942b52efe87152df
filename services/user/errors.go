package user

import "fmt"

// InvalidCredentialsError covers both unknown emails and wrong passwords so
// callers cannot distinguish the two.
type InvalidCredentialsError struct{}

func (e InvalidCredentialsError) Error() string {
	return "invalid email or password"
}

// EmailTakenError signals a registration attempt with an email that already
// has an account.
type EmailTakenError struct {
	Email string
}

func (e EmailTakenError) Error() string {
	return fmt.Sprintf("an account with email %s already exists", e.Email)
}

// AccountBannedError signals that the account is banned and must not receive
// a session.
type AccountBannedError struct {
	UserID string
}

func (e AccountBannedError) Error() string {
	return "this account has been suspended"
}
