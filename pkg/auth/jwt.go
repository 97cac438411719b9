// Package auth verifies bearer tokens issued by the external identity
// provider and carries the resulting user through request contexts.
package auth

import (
	"errors"
	"fmt"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"
)

var (
	ErrMissingToken = errors.New("missing bearer token")
	ErrInvalidToken = errors.New("invalid bearer token")
)

type UserMetadata struct {
	Name string `json:"name,omitempty"`
}

// Claims mirrors the access tokens minted by the hosted auth backend.
// The user id travels in the registered "sub" claim.
type Claims struct {
	Email        string       `json:"email"`
	UserMetadata UserMetadata `json:"user_metadata"`
	jwt.RegisteredClaims
}

type User struct {
	ID    string
	Email string
	Name  string
}

// DisplayName falls back to the email address when no name was recorded.
func (u *User) DisplayName() string {
	if u.Name != "" {
		return u.Name
	}
	return u.Email
}

type Verifier struct {
	secret []byte
	issuer string
	parser *jwt.Parser
}

func NewVerifier(secret, issuer string) *Verifier {
	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithLeeway(30 * time.Second),
	}
	if issuer != "" {
		opts = append(opts, jwt.WithIssuer(issuer))
	}

	return &Verifier{
		secret: []byte(secret),
		issuer: issuer,
		parser: jwt.NewParser(opts...),
	}
}

func (v *Verifier) Verify(tokenStr string) (*User, error) {
	if tokenStr == "" {
		return nil, ErrMissingToken
	}

	token, err := v.parser.ParseWithClaims(tokenStr, &Claims{}, func(t *jwt.Token) (any, error) {
		return v.secret, nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidToken, err)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}
	if claims.Subject == "" {
		return nil, fmt.Errorf("%w: subject is empty", ErrInvalidToken)
	}

	return &User{
		ID:    claims.Subject,
		Email: claims.Email,
		Name:  claims.UserMetadata.Name,
	}, nil
}

// Issue signs a token for user with the verifier's secret. Production tokens
// come from the identity provider; this exists for local tooling and tests.
func (v *Verifier) Issue(user User, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := Claims{
		Email:        user.Email,
		UserMetadata: UserMetadata{Name: user.Name},
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID,
			Issuer:    v.issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(v.secret)
}
