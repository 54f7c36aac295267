// Package auth implements the admin session gate: one fixed credential pair,
// checked against a bcrypt hash, unlocking the admin surface via a signed
// token. Tokens carry no expiry; a session stays valid until the signing key
// changes.
package auth

import (
	"crypto/subtle"
	"errors"
	"fmt"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	dErrors "regportal/pkg/domain-errors"
)

// Claims are the admin session token claims.
type Claims struct {
	Username string `json:"username"`
	jwt.RegisteredClaims
}

// Service checks admin credentials and issues/validates session tokens.
type Service struct {
	username     string
	passwordHash []byte
	signingKey   []byte
}

// New builds the auth service. Exactly one of passwordHash/plainPassword must
// be non-empty; a plaintext password is hashed immediately so the plaintext
// never lives beyond startup.
func New(username, passwordHash, plainPassword, signingKey string) (*Service, error) {
	hash := passwordHash
	if hash == "" {
		if plainPassword == "" {
			return nil, fmt.Errorf("no admin password configured")
		}
		hashed, err := HashPassword(plainPassword)
		if err != nil {
			return nil, err
		}
		hash = hashed
	}
	return &Service{
		username:     username,
		passwordHash: []byte(hash),
		signingKey:   []byte(signingKey),
	}, nil
}

// HashPassword creates a bcrypt hash of the provided password.
func HashPassword(password string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("could not hash password: %w", err)
	}
	return string(hashed), nil
}

// Login verifies the credential pair and returns a signed session token.
// Wrong username and wrong password are indistinguishable to the caller.
func (s *Service) Login(username, password string) (string, error) {
	userOK := subtle.ConstantTimeCompare([]byte(username), []byte(s.username)) == 1
	passErr := bcrypt.CompareHashAndPassword(s.passwordHash, []byte(password))
	if !userOK || passErr != nil {
		return "", dErrors.New(dErrors.CodeUnauthorized, "invalid username or password")
	}

	// No ExpiresAt: admin sessions do not expire.
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		Username: s.username,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:     uuid.NewString(),
			Issuer: "regportal",
		},
	})
	signed, err := token.SignedString(s.signingKey)
	if err != nil {
		return "", fmt.Errorf("sign session token: %w", err)
	}
	return signed, nil
}

// Validate parses and verifies a session token, returning its claims.
func (s *Service) Validate(tokenString string) (*Claims, error) {
	parsed, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrTokenUnverifiable
		}
		return s.signingKey, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, dErrors.New(dErrors.CodeUnauthorized, "session has expired")
		}
		return nil, dErrors.New(dErrors.CodeUnauthorized, "invalid session token")
	}

	claims, ok := parsed.Claims.(*Claims)
	if !ok || !parsed.Valid {
		return nil, dErrors.New(dErrors.CodeUnauthorized, "invalid session token")
	}
	return claims, nil
}
