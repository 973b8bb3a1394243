// Package auth verifies access tokens issued by the identity provider.
package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/heartmarshall/lugatlab/internal/domain"
)

// leeway absorbs small clock differences with the token issuer.
const leeway = 30 * time.Second

// Verifier validates HS256 access tokens signed with the project JWT secret.
type Verifier struct {
	secret []byte
	parser *jwt.Parser
}

// NewVerifier creates a token verifier. Empty issuer or audience disables
// the corresponding check.
func NewVerifier(secret, issuer, audience string) *Verifier {
	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithLeeway(leeway),
	}
	if issuer != "" {
		opts = append(opts, jwt.WithIssuer(issuer))
	}
	if audience != "" {
		opts = append(opts, jwt.WithAudience(audience))
	}

	return &Verifier{
		secret: []byte(secret),
		parser: jwt.NewParser(opts...),
	}
}

// accessClaims are the claims carried by provider access tokens.
type accessClaims struct {
	jwt.RegisteredClaims
	Email string `json:"email,omitempty"`
	Role  string `json:"role,omitempty"`
}

// Resolve validates the token and returns the caller identity.
// Every failure wraps domain.ErrUnauthorized.
func (v *Verifier) Resolve(_ context.Context, token string) (domain.Identity, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return domain.Identity{}, fmt.Errorf("auth: token is empty: %w", domain.ErrUnauthorized)
	}

	var claims accessClaims
	_, err := v.parser.ParseWithClaims(token, &claims, func(*jwt.Token) (any, error) {
		return v.secret, nil
	})
	if err != nil {
		return domain.Identity{}, fmt.Errorf("auth: %w: %w", domain.ErrUnauthorized, err)
	}

	userID, err := uuid.Parse(claims.Subject)
	if err != nil {
		return domain.Identity{}, fmt.Errorf("auth: invalid subject: %w", errors.Join(domain.ErrUnauthorized, err))
	}
	if userID == uuid.Nil {
		return domain.Identity{}, fmt.Errorf("auth: nil subject: %w", domain.ErrUnauthorized)
	}

	return domain.Identity{ID: userID, Email: claims.Email}, nil
}
