package middleware

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/heartmarshall/lugatlab/internal/domain"
	"github.com/heartmarshall/lugatlab/pkg/ctxutil"
)

type identityResolver interface {
	Resolve(ctx context.Context, token string) (domain.Identity, error)
}

// Auth resolves the bearer token into the caller identity. Requests without
// a token pass through anonymously; an invalid token is rejected with 401.
func Auth(resolver identityResolver, logger *slog.Logger) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := BearerToken(r)
			if token == "" {
				next.ServeHTTP(w, r)
				return
			}

			id, err := resolver.Resolve(r.Context(), token)
			if err != nil {
				if errors.Is(err, domain.ErrUnauthorized) {
					writeError(w, http.StatusUnauthorized, "unauthorized")
					return
				}
				logger.WarnContext(r.Context(), "identity resolution failed", slog.String("error", err.Error()))
				writeError(w, http.StatusServiceUnavailable, "authentication unavailable")
				return
			}

			ctx := ctxutil.WithUser(r.Context(), id.ID, id.Email)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// LocalIdentity assigns the local profile to requests that carry no user.
// Used with the local storage backend only.
func LocalIdentity(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := ctxutil.UserIDFromCtx(r.Context()); ok {
			next.ServeHTTP(w, r)
			return
		}
		ctx := ctxutil.WithUserID(r.Context(), domain.LocalUserID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// BearerToken returns the token of an "Authorization: Bearer" header, or "".
// The scheme is matched case-insensitively.
func BearerToken(r *http.Request) string {
	scheme, token, ok := strings.Cut(r.Header.Get("Authorization"), " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return ""
	}
	return strings.TrimSpace(token)
}
