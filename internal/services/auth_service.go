package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/dgrijalva/jwt-go"
)

// DefaultTokenTTL is how long issued tokens stay valid unless told otherwise.
const DefaultTokenTTL = 24 * time.Hour

// AuthService verifies the bearer tokens that guard mutating operations.
// Claims other than exp are passed through uninterpreted.
type AuthService struct {
	jwtSecret []byte
	method    jwt.SigningMethod
	tokenTTL  time.Duration
}

// NewAuthService creates a new AuthService for an HMAC algorithm
// (HS256, HS384 or HS512).
func NewAuthService(jwtSecret, algorithm string, tokenTTL time.Duration) (*AuthService, error) {
	if jwtSecret == "" {
		return nil, errors.New("jwt secret must not be empty")
	}
	method, ok := jwt.GetSigningMethod(algorithm).(*jwt.SigningMethodHMAC)
	if !ok {
		return nil, fmt.Errorf("unsupported signing algorithm %q", algorithm)
	}
	if tokenTTL <= 0 {
		tokenTTL = DefaultTokenTTL
	}
	return &AuthService{
		jwtSecret: []byte(jwtSecret),
		method:    method,
		tokenTTL:  tokenTTL,
	}, nil
}

// IssueToken signs a token for subject that expires after ttl, or after the
// configured lifetime when ttl is zero.
func (s *AuthService) IssueToken(subject string, ttl time.Duration) (string, error) {
	if ttl <= 0 {
		ttl = s.tokenTTL
	}
	now := jwt.TimeFunc()
	token := jwt.NewWithClaims(s.method, jwt.MapClaims{
		"sub": subject,
		"iat": now.Unix(),
		"exp": now.Add(ttl).Unix(),
	})

	tokenString, err := token.SignedString(s.jwtSecret)
	if err != nil {
		return "", fmt.Errorf("failed to generate token: %w", err)
	}
	return tokenString, nil
}

// ValidateToken parses and validates a JWT token, returning the claims if
// valid. Failures are *AuthError with reason missing credential, expired or
// invalid.
func (s *AuthService) ValidateToken(tokenString string) (jwt.MapClaims, error) {
	tokenString = strings.TrimSpace(tokenString)
	if tokenString == "" {
		return nil, &AuthError{Reason: AuthMissingCredential}
	}

	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		// Validate the alg is what we expect:
		if token.Method.Alg() != s.method.Alg() {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.jwtSecret, nil
	})
	if err != nil {
		return nil, &AuthError{Reason: reasonFor(err), Err: err}
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return nil, &AuthError{Reason: AuthInvalid}
	}
	if _, ok := claims["exp"].(float64); !ok {
		return nil, &AuthError{Reason: AuthInvalid, Err: errors.New("token has no exp claim")}
	}
	return claims, nil
}

// reasonFor reports expired only for well formed, correctly signed tokens.
func reasonFor(err error) string {
	var ve *jwt.ValidationError
	if !errors.As(err, &ve) {
		return AuthInvalid
	}
	const broken = jwt.ValidationErrorMalformed |
		jwt.ValidationErrorUnverifiable |
		jwt.ValidationErrorSignatureInvalid
	if ve.Errors&broken == 0 && ve.Errors&jwt.ValidationErrorExpired != 0 {
		return AuthExpired
	}
	return AuthInvalid
}
