package socialauth

import (
	"crypto/rsa"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math/big"
	"net/http"
	"sync"
	"time"

	"mendwell/config"
	"mendwell/services/user"

	jwtv4 "github.com/golang-jwt/jwt/v4"
)

const googleCertsURL = "https://www.googleapis.com/oauth2/v3/certs"

var googleIssuers = map[string]bool{
	"accounts.google.com":         true,
	"https://accounts.google.com": true,
}

// GoogleVerifier validates Google ID tokens against Google's published JWKS.
// Keys are cached and refreshed hourly.
type GoogleVerifier struct {
	ClientID string
	HTTP     *http.Client

	mu      sync.RWMutex
	keys    map[string]*rsa.PublicKey
	expires time.Time
}

// NewGoogleVerifier builds a verifier from the application config.
func NewGoogleVerifier() *GoogleVerifier {
	return &GoogleVerifier{
		ClientID: config.AppConfig.GoogleClientID,
		HTTP:     &http.Client{Timeout: 10 * time.Second},
	}
}

// Verify checks the token's signature, issuer, audience, and expiry, and
// returns the normalized identity.
func (v *GoogleVerifier) Verify(idToken string) (user.SocialProfile, error) {
	claims := jwtv4.MapClaims{}
	token, err := jwtv4.ParseWithClaims(idToken, claims, func(t *jwtv4.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwtv4.SigningMethodRSA); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		kid, ok := t.Header["kid"].(string)
		if !ok || kid == "" {
			return nil, errors.New("token missing kid header")
		}
		keys, err := v.publicKeys()
		if err != nil {
			return nil, err
		}
		key, ok := keys[kid]
		if !ok {
			return nil, fmt.Errorf("no Google key matches kid %q", kid)
		}
		return key, nil
	})
	if err != nil {
		return user.SocialProfile{}, fmt.Errorf("failed to verify Google token: %w", err)
	}
	if !token.Valid {
		return user.SocialProfile{}, errors.New("invalid Google token")
	}

	if iss, _ := claims["iss"].(string); !googleIssuers[iss] {
		return user.SocialProfile{}, fmt.Errorf("unexpected token issuer %q", iss)
	}
	if v.ClientID != "" {
		if aud, _ := claims["aud"].(string); aud != v.ClientID {
			return user.SocialProfile{}, errors.New("token was issued for a different client")
		}
	}

	sub, _ := claims["sub"].(string)
	email, _ := claims["email"].(string)
	name, _ := claims["name"].(string)
	picture, _ := claims["picture"].(string)
	if sub == "" {
		return user.SocialProfile{}, errors.New("token does not identify a Google account")
	}

	return user.SocialProfile{
		Provider:     "google",
		Subject:      sub,
		Email:        email,
		Nickname:     name,
		ProfileImage: picture,
	}, nil
}

// publicKeys returns the cached JWKS, refetching when stale.
func (v *GoogleVerifier) publicKeys() (map[string]*rsa.PublicKey, error) {
	v.mu.RLock()
	if time.Now().Before(v.expires) && v.keys != nil {
		keys := v.keys
		v.mu.RUnlock()
		return keys, nil
	}
	v.mu.RUnlock()

	resp, err := v.HTTP.Get(googleCertsURL)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch Google certs: %w", err)
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read Google certs: %w", err)
	}

	var certs struct {
		Keys []struct {
			Kid string `json:"kid"`
			N   string `json:"n"`
			E   string `json:"e"`
		} `json:"keys"`
	}
	if err := json.Unmarshal(body, &certs); err != nil {
		return nil, fmt.Errorf("failed to unmarshal Google certs: %w", err)
	}

	keys := make(map[string]*rsa.PublicKey, len(certs.Keys))
	for _, key := range certs.Keys {
		pub, err := parseRSAKey(key.N, key.E)
		if err != nil {
			return nil, fmt.Errorf("failed to parse Google key %s: %w", key.Kid, err)
		}
		keys[key.Kid] = pub
	}

	v.mu.Lock()
	v.keys = keys
	v.expires = time.Now().Add(time.Hour)
	v.mu.Unlock()

	return keys, nil
}

// parseRSAKey builds an RSA public key from base64url modulus and exponent.
func parseRSAKey(n, e string) (*rsa.PublicKey, error) {
	nBytes, err := base64.RawURLEncoding.DecodeString(n)
	if err != nil {
		return nil, fmt.Errorf("bad modulus: %w", err)
	}
	eBytes, err := base64.RawURLEncoding.DecodeString(e)
	if err != nil {
		return nil, fmt.Errorf("bad exponent: %w", err)
	}
	exponent := 0
	for _, b := range eBytes {
		exponent = exponent<<8 | int(b)
	}
	if exponent == 0 {
		return nil, errors.New("zero exponent")
	}
	return &rsa.PublicKey{
		N: new(big.Int).SetBytes(nBytes),
		E: exponent,
	}, nil
}
