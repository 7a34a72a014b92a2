package auth

import (
	"time"

	"github.com/golang-jwt/jwt/v5"

	"taskhub/internal/constants"
)

// Claims represents JWT claims for issued access tokens.
type Claims struct {
	UserID   uint64 `json:"user_id"`
	Username string `json:"username"`
	jwt.RegisteredClaims
}

// TokenService signs access tokens. Nothing in the API validates them on
// inbound requests; issuance exists so clients can obtain credentials.
type TokenService struct {
	secret []byte
	method jwt.SigningMethod
}

// NewTokenService creates a token service with the given secret and signing
// algorithm name. Unknown algorithm names fall back to HS256.
func NewTokenService(secret, algorithm string) *TokenService {
	method := jwt.GetSigningMethod(algorithm)
	if method == nil {
		method = jwt.SigningMethodHS256
	}

	return &TokenService{
		secret: []byte(secret),
		method: method,
	}
}

// GenerateAccessToken generates a new access token for the user.
func (s *TokenService) GenerateAccessToken(userID uint64, username string) (string, error) {
	now := time.Now()
	claims := &Claims{
		UserID:   userID,
		Username: username,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(constants.AccessTokenExpiry)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(s.method, claims)
	return token.SignedString(s.secret)
}
