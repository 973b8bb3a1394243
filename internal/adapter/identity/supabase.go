// Package identity resolves bearer tokens by asking the hosted auth service.
package identity

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/lugatlab/internal/domain"
)

const userPath = "/auth/v1/user"

// Supabase resolves tokens through GET {url}/auth/v1/user.
type Supabase struct {
	baseURL string
	anonKey string
	client  *http.Client
	log     *slog.Logger
}

// NewSupabase creates a resolver. client may be nil, in which case an
// *http.Client with timeout is used.
func NewSupabase(baseURL, anonKey string, timeout time.Duration, client *http.Client, log *slog.Logger) *Supabase {
	if client == nil {
		client = &http.Client{Timeout: timeout}
	}
	return &Supabase{
		baseURL: strings.TrimRight(baseURL, "/"),
		anonKey: anonKey,
		client:  client,
		log:     log.With("adapter", "identity"),
	}
}

type userResponse struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

// Resolve returns the identity behind token. Rejected tokens wrap
// domain.ErrUnauthorized; an unreachable service wraps domain.ErrStorage.
func (s *Supabase) Resolve(ctx context.Context, token string) (domain.Identity, error) {
	if strings.TrimSpace(token) == "" {
		return domain.Identity{}, fmt.Errorf("identity: token is empty: %w", domain.ErrUnauthorized)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.baseURL+userPath, nil)
	if err != nil {
		return domain.Identity{}, fmt.Errorf("identity: build request: %w", err)
	}
	req.Header.Set("apikey", s.anonKey)
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Accept", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		s.log.WarnContext(ctx, "auth service unreachable", slog.String("error", err.Error()))
		return domain.Identity{}, fmt.Errorf("identity: %w: %w", domain.ErrStorage, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		_, _ = io.Copy(io.Discard, resp.Body)
		return domain.Identity{}, fmt.Errorf("identity: token rejected: %w", domain.ErrUnauthorized)
	case resp.StatusCode != http.StatusOK:
		_, _ = io.Copy(io.Discard, resp.Body)
		s.log.WarnContext(ctx, "auth service error", slog.Int("status", resp.StatusCode))
		return domain.Identity{}, fmt.Errorf("identity: auth service returned %d: %w", resp.StatusCode, domain.ErrStorage)
	}

	var u userResponse
	if err := json.NewDecoder(resp.Body).Decode(&u); err != nil {
		return domain.Identity{}, fmt.Errorf("identity: decode user: %w: %w", domain.ErrStorage, err)
	}

	id, err := uuid.Parse(u.ID)
	if err != nil || id == uuid.Nil {
		return domain.Identity{}, fmt.Errorf("identity: invalid user id %q: %w", u.ID, domain.ErrUnauthorized)
	}

	return domain.Identity{ID: id, Email: u.Email}, nil
}
