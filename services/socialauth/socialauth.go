// Package socialauth verifies third-party sign-in credentials and normalizes
// them into a profile the user service can link or register.
package socialauth

import (
	"mendwell/services/user"
)

type Service interface {
	// VerifyGoogle validates a Google ID token and extracts the identity.
	VerifyGoogle(idToken string) (user.SocialProfile, error)
	// ExchangeKakao trades a Kakao authorization code for the identity.
	ExchangeKakao(code string) (user.SocialProfile, error)
}

// DefaultService is the production implementation.
type DefaultService struct {
	Google *GoogleVerifier
	Kakao  *KakaoClient
}

// NewDefaultService wires verifiers from the application config.
func NewDefaultService() *DefaultService {
	return &DefaultService{
		Google: NewGoogleVerifier(),
		Kakao:  NewKakaoClient(),
	}
}

func (s *DefaultService) VerifyGoogle(idToken string) (user.SocialProfile, error) {
	return s.Google.Verify(idToken)
}

func (s *DefaultService) ExchangeKakao(code string) (user.SocialProfile, error) {
	return s.Kakao.Exchange(code)
}
