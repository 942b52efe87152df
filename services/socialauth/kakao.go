package socialauth

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"mendwell/config"
	"mendwell/services/user"
	"mendwell/utils"

	jwtv4 "github.com/golang-jwt/jwt/v4"
	"go.uber.org/zap"
)

const (
	kakaoTokenURL   = "https://kauth.kakao.com/oauth/token"
	kakaoProfileURL = "https://kapi.kakao.com/v2/user/me"
)

// KakaoExchangeError carries Kakao's structured failure response so callers
// can surface the provider error code instead of a generic message.
type KakaoExchangeError struct {
	Code        string
	Description string
}

func (e KakaoExchangeError) Error() string {
	if e.Description != "" {
		return fmt.Sprintf("kakao token exchange failed: %s (%s)", e.Description, e.Code)
	}
	return fmt.Sprintf("kakao token exchange failed: %s", e.Code)
}

// KakaoClient exchanges an authorization code for tokens and reads the
// account profile.
type KakaoClient struct {
	ClientID     string
	ClientSecret string
	RedirectURI  string
	HTTP         *http.Client
}

// NewKakaoClient builds a client from the application config.
func NewKakaoClient() *KakaoClient {
	return &KakaoClient{
		ClientID:     config.AppConfig.KakaoClientID,
		ClientSecret: config.AppConfig.KakaoClientSecret,
		RedirectURI:  config.AppConfig.KakaoRedirectURI,
		HTTP:         &http.Client{Timeout: 10 * time.Second},
	}
}

type kakaoTokenResponse struct {
	AccessToken      string `json:"access_token"`
	IDToken          string `json:"id_token"`
	Error            string `json:"error"`
	ErrorDescription string `json:"error_description"`
}

type kakaoAccount struct {
	ID           int64 `json:"id"`
	KakaoAccount struct {
		Email   string `json:"email"`
		Profile struct {
			Nickname        string `json:"nickname"`
			ProfileImageURL string `json:"profile_image_url"`
		} `json:"profile"`
	} `json:"kakao_account"`
}

// Exchange trades the authorization code for an access token and returns the
// normalized identity.
func (c *KakaoClient) Exchange(code string) (user.SocialProfile, error) {
	tokens, err := c.exchangeCode(code)
	if err != nil {
		return user.SocialProfile{}, err
	}

	profile, err := c.fetchProfile(tokens.AccessToken)
	if err != nil {
		return user.SocialProfile{}, err
	}

	// Prefer the OIDC subject when an id_token was issued; the numeric
	// account id is the fallback.
	subject := strconv.FormatInt(profile.ID, 10)
	if tokens.IDToken != "" {
		if sub := subjectFromIDToken(tokens.IDToken); sub != "" {
			subject = sub
		}
	}

	return user.SocialProfile{
		Provider:     "kakao",
		Subject:      subject,
		Email:        profile.KakaoAccount.Email,
		Nickname:     profile.KakaoAccount.Profile.Nickname,
		ProfileImage: profile.KakaoAccount.Profile.ProfileImageURL,
	}, nil
}

func (c *KakaoClient) exchangeCode(code string) (*kakaoTokenResponse, error) {
	form := url.Values{}
	form.Set("grant_type", "authorization_code")
	form.Set("client_id", c.ClientID)
	form.Set("redirect_uri", c.RedirectURI)
	form.Set("code", code)
	if c.ClientSecret != "" {
		form.Set("client_secret", c.ClientSecret)
	}

	resp, err := c.HTTP.Post(kakaoTokenURL, "application/x-www-form-urlencoded", strings.NewReader(form.Encode()))
	if err != nil {
		return nil, fmt.Errorf("failed to reach Kakao: %w", err)
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read Kakao response: %w", err)
	}

	var tokens kakaoTokenResponse
	if err := json.Unmarshal(body, &tokens); err != nil {
		return nil, fmt.Errorf("failed to decode Kakao response: %w", err)
	}
	if tokens.Error != "" {
		return nil, KakaoExchangeError{Code: tokens.Error, Description: tokens.ErrorDescription}
	}
	if tokens.AccessToken == "" {
		return nil, errors.New("kakao returned no access token")
	}
	return &tokens, nil
}

func (c *KakaoClient) fetchProfile(accessToken string) (*kakaoAccount, error) {
	req, err := http.NewRequest(http.MethodGet, kakaoProfileURL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+accessToken)

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch Kakao profile: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("kakao profile request returned status %d", resp.StatusCode)
	}

	var account kakaoAccount
	if err := json.NewDecoder(resp.Body).Decode(&account); err != nil {
		return nil, fmt.Errorf("failed to decode Kakao profile: %w", err)
	}
	if account.ID == 0 {
		return nil, errors.New("kakao profile has no account id")
	}
	return &account, nil
}

// subjectFromIDToken reads the sub claim without signature verification. The
// id_token arrived over TLS on the code-exchange response, so it is already
// bound to this client.
func subjectFromIDToken(idToken string) string {
	claims := jwtv4.MapClaims{}
	parser := jwtv4.NewParser()
	if _, _, err := parser.ParseUnverified(idToken, claims); err != nil {
		utils.GetLogger().Warn("failed to parse Kakao id_token", zap.Error(err))
		return ""
	}
	sub, _ := claims["sub"].(string)
	return sub
}
