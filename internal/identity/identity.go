// Package identity verifies tokens issued by the external identity provider
// and exposes the profile fields the provider attaches to them. This system
// never issues tokens of its own.
package identity

import (
	"errors"
	"fmt"
	"strings"

	"github.com/golang-jwt/jwt/v5"
)

// Claims is the shape of the provider's JWT payload. Profile fields are
// optional; Subject carries the opaque external identity reference.
type Claims struct {
	jwt.RegisteredClaims
	Email        string `json:"email"`
	UserMetadata struct {
		FirstName string `json:"first_name"`
		LastName  string `json:"last_name"`
		Username  string `json:"username"`
		AvatarURL string `json:"avatar_url"`
	} `json:"user_metadata"`
}

// Identity is the verified external identity handed to request handlers.
type Identity struct {
	ExternalID string
	FirstName  string
	LastName   string
	Username   string
	Email      string
	AvatarURL  string
}

// DisplayName assembles the best available human name, empty when the
// provider supplied none.
func (i Identity) DisplayName() string {
	full := strings.TrimSpace(strings.TrimSpace(i.FirstName) + " " + strings.TrimSpace(i.LastName))
	if full != "" {
		return full
	}
	return strings.TrimSpace(i.Username)
}

type Verifier struct {
	secret []byte
	issuer string
}

func NewVerifier(secret, issuer string) *Verifier {
	return &Verifier{secret: []byte(secret), issuer: issuer}
}

var ErrInvalidToken = errors.New("invalid identity token")

// Verify parses and validates a provider-issued HS256 token and returns the
// identity it asserts.
func (v *Verifier) Verify(tokenStr string) (Identity, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenStr, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return v.secret, nil
	})
	if err != nil || !token.Valid {
		return Identity{}, ErrInvalidToken
	}
	if v.issuer != "" && claims.Issuer != v.issuer {
		return Identity{}, ErrInvalidToken
	}
	if claims.Subject == "" {
		return Identity{}, ErrInvalidToken
	}
	return Identity{
		ExternalID: claims.Subject,
		FirstName:  claims.UserMetadata.FirstName,
		LastName:   claims.UserMetadata.LastName,
		Username:   claims.UserMetadata.Username,
		Email:      claims.Email,
		AvatarURL:  claims.UserMetadata.AvatarURL,
	}, nil
}
