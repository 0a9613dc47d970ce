package middleware

import (
	"context"
	"net/http"
	"strings"

	goIdentity "github.com/MrEthical07/goIdentity"
	"github.com/MrEthical07/goIdentity/role"
)

type identityContextKey struct{}

// IdentityFromContext returns the authenticated caller placed on the
// request context by [Authenticate] or [Require].
func IdentityFromContext(ctx context.Context) (*goIdentity.Identity, bool) {
	id, ok := ctx.Value(identityContextKey{}).(*goIdentity.Identity)
	return id, ok
}

// Authenticate verifies the bearer token on each request and attaches the
// resolved identity to the request context. Requests without a valid
// token get 401; no role check is performed.
func Authenticate(engine *goIdentity.Engine) func(http.Handler) http.Handler {
	return guard(engine, role.Set(0))
}

// Require verifies the bearer token and then checks the caller's role
// against the given set. A missing or invalid token gets 401; a valid
// token whose role is outside the set gets 403. The two are never
// conflated.
func Require(engine *goIdentity.Engine, roles ...role.Role) func(http.Handler) http.Handler {
	return guard(engine, role.NewSet(roles...))
}

func guard(engine *goIdentity.Engine, required role.Set) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if engine == nil {
				http.Error(w, "unauthorized", http.StatusUnauthorized)
				return
			}

			token, ok := bearerToken(r.Header.Get("Authorization"))
			if !ok {
				http.Error(w, "unauthorized", http.StatusUnauthorized)
				return
			}

			identity, err := engine.Authenticate(r.Context(), token)
			if err != nil {
				http.Error(w, "unauthorized", http.StatusUnauthorized)
				return
			}

			if err := engine.Authorize(identity, required); err != nil {
				http.Error(w, "forbidden", http.StatusForbidden)
				return
			}

			ctx := context.WithValue(r.Context(), identityContextKey{}, identity)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func bearerToken(value string) (string, bool) {
	const bearer = "Bearer "
	if !strings.HasPrefix(value, bearer) {
		return "", false
	}

	token := value[len(bearer):]
	if token == "" {
		return "", false
	}

	return token, true
}
